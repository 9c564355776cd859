package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/hospital-core/hospitalload"
)

var (
	configFile string
	overrides  = &hospitalload.Config{}
	promEnable bool
	promPort   int
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "hospitalload",
	Short: "Concurrent load generator for the hospital api",
	Long: `Authenticates with a password grant, then runs a fixed pool of virtual users.
Each user searches patients by random email (70%) or lists appointments (30%)
until the duration elapses or the process is interrupted.

Examples:
  hospitalload                                   # defaults, 7 users for 300s
  hospitalload -u 20 -d 60                       # 20 users for a minute
  hospitalload -c load.yaml --transport fasthttp # config file, fasthttp client`,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := buildConfig(cmd)
		if err != nil {
			return err
		}
		ctx, stop := hospitalload.ShutdownContext(context.Background())
		defer stop()
		r, err := hospitalload.NewRunner(cfg)
		if err != nil {
			return err
		}
		_, err = r.Run(ctx)
		return err
	},
}

func buildConfig(cmd *cobra.Command) (*hospitalload.Config, error) {
	cfg := hospitalload.DefaultConfig()
	if configFile != "" {
		var err error
		if cfg, err = hospitalload.LoadConfigFile(configFile); err != nil {
			return nil, err
		}
	}
	f := cmd.Flags()
	if f.Changed("base-url") {
		cfg.BaseURL = overrides.BaseURL
	}
	if f.Changed("token-url") {
		cfg.TokenURL = overrides.TokenURL
	}
	if f.Changed("client-id") {
		cfg.ClientID = overrides.ClientID
	}
	if f.Changed("username") {
		cfg.Username = overrides.Username
	}
	if f.Changed("password") {
		cfg.Password = overrides.Password
	}
	if f.Changed("duration") {
		cfg.DurationSec = overrides.DurationSec
	}
	if f.Changed("users") {
		cfg.Users = overrides.Users
	}
	if f.Changed("max-rps") {
		cfg.MaxRPS = overrides.MaxRPS
	}
	if f.Changed("transport") {
		cfg.Transport = overrides.Transport
	}
	if f.Changed("dump") {
		cfg.DumpTransport = overrides.DumpTransport
	}
	if f.Changed("goroutines-dump") {
		cfg.GoroutinesDump = overrides.GoroutinesDump
	}
	if f.Changed("log-level") {
		cfg.LogLevel = overrides.LogLevel
	}
	if f.Changed("log-encoding") {
		cfg.LogEncoding = overrides.LogEncoding
	}
	if promEnable {
		cfg.Prometheus = &hospitalload.Prometheus{Enable: true, Port: promPort}
	}
	cfg.DefaultCfgValues()
	return cfg, nil
}

func init() {
	f := rootCmd.Flags()
	f.StringVarP(&configFile, "config", "c", "", "yaml config file")
	f.StringVar(&overrides.BaseURL, "base-url", hospitalload.DefaultBaseURL, "api base url")
	f.StringVar(&overrides.TokenURL, "token-url", hospitalload.DefaultTokenURL, "password grant token endpoint")
	f.StringVar(&overrides.ClientID, "client-id", hospitalload.DefaultClientID, "oauth client id")
	f.StringVar(&overrides.Username, "username", hospitalload.DefaultUsername, "user name")
	f.StringVar(&overrides.Password, "password", hospitalload.DefaultPassword, "user password")
	f.IntVarP(&overrides.DurationSec, "duration", "d", hospitalload.DefaultDurationSec, "run duration, seconds")
	f.IntVarP(&overrides.Users, "users", "u", hospitalload.DefaultUsers, "concurrent virtual users")
	f.IntVar(&overrides.MaxRPS, "max-rps", 0, "requests per second cap for all users, 0 is unlimited")
	f.StringVar(&overrides.Transport, "transport", hospitalload.TransportHTTP, "http client: http|fasthttp")
	f.BoolVar(&overrides.DumpTransport, "dump", false, "dump requests and responses to stdout")
	f.BoolVar(&overrides.GoroutinesDump, "goroutines-dump", false, "dump goroutines on interrupt")
	f.StringVar(&overrides.LogLevel, "log-level", "info", "debug|info|warn|error")
	f.StringVar(&overrides.LogEncoding, "log-encoding", "console", "console|json")
	f.BoolVar(&promEnable, "prometheus", false, "serve outcome counters on /metrics")
	f.IntVar(&promPort, "prometheus-port", hospitalload.DefaultPrometheusPort, "metrics port")
}

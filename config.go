/*
 * // Copyright 2020 Insolar Network Ltd.
 * // All rights reserved.
 * // This material is licensed under the Insolar License version 1.0,
 * // available at https://github.com/insolar/assured-ledger/blob/master/LICENSE.md.
 */

package hospitalload

import (
	"fmt"
	"io/ioutil"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	DefaultBaseURL  = "http://localhost:8080/api/v1"
	DefaultTokenURL = "http://localhost:8180/auth/realms/hospital-realm/protocol/openid-connect/token"
	DefaultClientID = "hospital-app"
	DefaultUsername = "testuser"
	DefaultPassword = "password123"

	DefaultDurationSec           = 300
	DefaultUsers                 = 7
	DefaultSearchTimeoutSec      = 5
	DefaultAppointmentTimeoutSec = 10
	DefaultTokenTimeoutSec       = 10
	DefaultPacingMs              = 50
	DefaultPrometheusPort        = 2112

	// SearchShare is the fraction of iterations that fire a patient search,
	// the rest list appointments.
	SearchShare = 0.7
)

const (
	TransportHTTP     = "http"
	TransportFastHTTP = "fasthttp"
)

// Prometheus exposes outcome counters on /metrics when enabled
type Prometheus struct {
	Enable bool `yaml:"enable"`
	Port   int  `yaml:"port"`
}

// Config load generator configuration
type Config struct {
	// Name of a runner instance, used in logs
	Name string `yaml:"name"`
	// BaseURL api base url, e.g. http://localhost:8080/api/v1
	BaseURL string `yaml:"base_url"`
	// TokenURL password grant token endpoint
	TokenURL string `yaml:"token_url"`
	ClientID string `yaml:"client_id"`
	Username string `yaml:"username"`
	Password string `yaml:"password"`
	// DurationSec total run time
	DurationSec int `yaml:"duration_sec"`
	// Users constant amount of virtual users
	Users int `yaml:"users"`
	// SearchTimeoutSec timeout of a single patient search
	SearchTimeoutSec int `yaml:"search_timeout_sec"`
	// AppointmentTimeoutSec timeout of a single appointments listing
	AppointmentTimeoutSec int `yaml:"appointment_timeout_sec"`
	// TokenTimeoutSec timeout of a token request
	TokenTimeoutSec int `yaml:"token_timeout_sec"`
	// PacingMs delay between two requests of one virtual user
	PacingMs int `yaml:"pacing_ms"`
	// MaxRPS caps requests per second across all users, 0 is unlimited
	MaxRPS int `yaml:"max_rps"`
	// Transport http|fasthttp
	Transport string `yaml:"transport"`
	// DumpTransport dump http requests to stdout
	DumpTransport bool `yaml:"dump_transport"`
	// GoroutinesDump dump goroutines on manual stop
	GoroutinesDump bool `yaml:"goroutines_dump"`
	// LogLevel debug|info, etc.
	LogLevel string `yaml:"log_level"`
	// LogEncoding json|console
	LogEncoding string      `yaml:"log_encoding"`
	Prometheus  *Prometheus `yaml:"prometheus"`
}

// DefaultConfig returns config built from compile-time defaults
func DefaultConfig() *Config {
	cfg := &Config{}
	cfg.DefaultCfgValues()
	return cfg
}

// DefaultCfgValues fills zero fields with defaults
func (c *Config) DefaultCfgValues() {
	if c.Name == "" {
		c.Name = "hospital"
	}
	if c.BaseURL == "" {
		c.BaseURL = DefaultBaseURL
	}
	if c.TokenURL == "" {
		c.TokenURL = DefaultTokenURL
	}
	if c.ClientID == "" {
		c.ClientID = DefaultClientID
	}
	if c.Username == "" {
		c.Username = DefaultUsername
	}
	if c.Password == "" {
		c.Password = DefaultPassword
	}
	if c.DurationSec == 0 {
		c.DurationSec = DefaultDurationSec
	}
	if c.Users == 0 {
		c.Users = DefaultUsers
	}
	if c.SearchTimeoutSec == 0 {
		c.SearchTimeoutSec = DefaultSearchTimeoutSec
	}
	if c.AppointmentTimeoutSec == 0 {
		c.AppointmentTimeoutSec = DefaultAppointmentTimeoutSec
	}
	if c.TokenTimeoutSec == 0 {
		c.TokenTimeoutSec = DefaultTokenTimeoutSec
	}
	if c.PacingMs == 0 {
		c.PacingMs = DefaultPacingMs
	}
	if c.Transport == "" {
		c.Transport = TransportHTTP
	}
	if c.LogLevel == "" {
		c.LogLevel = "info"
	}
	if c.LogEncoding == "" {
		c.LogEncoding = "console"
	}
	if c.Prometheus != nil && c.Prometheus.Enable && c.Prometheus.Port == 0 {
		c.Prometheus.Port = DefaultPrometheusPort
	}
}

// Validate checks all settings and returns a list of strings with problems.
func (c Config) Validate() (list []string) {
	if c.BaseURL == "" {
		list = append(list, "please set base url")
	}
	if c.TokenURL == "" {
		list = append(list, "please set token url")
	}
	if c.Users <= 0 {
		list = append(list, "please set users > 0")
	}
	if c.DurationSec <= 0 {
		list = append(list, "please set duration > 0, seconds")
	}
	if c.SearchTimeoutSec <= 0 {
		list = append(list, "please set search timeout > 0, seconds")
	}
	if c.AppointmentTimeoutSec <= 0 {
		list = append(list, "please set appointment timeout > 0, seconds")
	}
	if c.TokenTimeoutSec <= 0 {
		list = append(list, "please set token timeout > 0, seconds")
	}
	if c.PacingMs < 0 {
		list = append(list, "please set pacing >= 0, milliseconds")
	}
	if c.MaxRPS < 0 {
		list = append(list, "please set max rps >= 0")
	}
	if c.Transport != TransportHTTP && c.Transport != TransportFastHTTP {
		list = append(list, fmt.Sprintf("unknown transport %q, use http or fasthttp", c.Transport))
	}
	return
}

func (c Config) Duration() time.Duration {
	return time.Duration(c.DurationSec) * time.Second
}

func (c Config) Pacing() time.Duration {
	return time.Duration(c.PacingMs) * time.Millisecond
}

// LoadConfigFile reads yaml config, fields absent in the file keep their defaults
func LoadConfigFile(path string) (*Config, error) {
	b, err := ioutil.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(b, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	cfg.DefaultCfgValues()
	return cfg, nil
}

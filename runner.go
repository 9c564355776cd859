/*
 * // Copyright 2020 Insolar Network Ltd.
 * // All rights reserved.
 * // This material is licensed under the Insolar License version 1.0,
 * // available at https://github.com/insolar/assured-ledger/blob/master/LICENSE.md.
 */

package hospitalload

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"go.uber.org/ratelimit"
)

// Runner owns everything shared by virtual users during one load run
type Runner struct {
	// Name of a runner
	Name string
	// Cfg runner config
	Cfg *Config
	L   *Logger
	// Session current bearer token
	Session *Session
	// Counters request outcomes
	Counters  *Counters
	Transport Transport

	tokenSource  TokenSource
	search       Trigger
	appointments Trigger
	// rl caps requests across all users, unlimited by default
	rl   ratelimit.Limiter
	prom *PromReporter
	out  io.Writer

	stop     chan struct{}
	stopOnce sync.Once
	wg       sync.WaitGroup
}

type Option func(r *Runner)

// WithTransport replaces transport built from config
func WithTransport(t Transport) Option {
	return func(r *Runner) {
		r.Transport = t
	}
}

// WithTokenSource replaces password grant token source
func WithTokenSource(s TokenSource) Option {
	return func(r *Runner) {
		r.tokenSource = s
	}
}

// WithOutput sets writer for the final summary, stdout by default
func WithOutput(w io.Writer) Option {
	return func(r *Runner) {
		r.out = w
	}
}

func WithLogger(l *Logger) Option {
	return func(r *Runner) {
		r.L = l
	}
}

// NewRunner creates new runner with constant amount of virtual users
func NewRunner(cfg *Config, opts ...Option) (*Runner, error) {
	cfg.DefaultCfgValues()
	if problems := cfg.Validate(); len(problems) > 0 {
		return nil, fmt.Errorf("%w: %s", ErrInvalidConfig, strings.Join(problems, "; "))
	}
	r := &Runner{
		Name: cfg.Name,
		Cfg:  cfg,
		out:  os.Stdout,
		stop: make(chan struct{}),
	}
	for _, o := range opts {
		o(r)
	}
	if r.L == nil {
		l, err := NewLogger(cfg)
		if err != nil {
			return nil, err
		}
		r.L = l
	}
	r.L = r.L.With("runner", cfg.Name)
	if r.Transport == nil {
		r.Transport = NewTransport(cfg)
	}
	if r.tokenSource == nil {
		r.tokenSource = NewPasswordGrant(cfg, r.L)
	}
	if cfg.MaxRPS > 0 {
		r.rl = ratelimit.New(cfg.MaxRPS)
	} else {
		r.rl = ratelimit.NewUnlimited()
	}
	r.prom = NewPromReporter(cfg.Name)
	r.Session = NewSession(r.tokenSource)
	r.Counters = NewCounters(r.prom)
	r.search = NewSearchTrigger(r)
	r.appointments = NewAppointmentTrigger(r)
	return r, nil
}

// Run authenticates, runs virtual users for configured duration or until ctx is done,
// then waits for all of them and prints counters. Runner is not reusable.
func (r *Runner) Run(ctx context.Context) (Summary, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	if err := r.Session.Acquire(ctx); err != nil {
		return Summary{}, fmt.Errorf("%w: %w", ErrInitialToken, err)
	}
	if r.Cfg.Prometheus != nil && r.Cfg.Prometheus.Enable {
		stopMetrics := r.servePrometheus()
		defer stopMetrics()
	}
	r.L.Infof("starting load for %d seconds, users: %d, transport: %s", r.Cfg.DurationSec, r.Cfg.Users, r.Cfg.Transport)
	// requests must outlive stop, they are bounded by their own timeouts
	reqCtx := context.WithoutCancel(ctx)
	for i := 0; i < r.Cfg.Users; i++ {
		r.wg.Add(1)
		go work(reqCtx, r, i)
	}
	r.waitDuration(ctx)
	r.L.Infof("stopping virtual users")
	r.Stop()
	r.wg.Wait()
	s := r.Counters.Snapshot()
	r.printSummary(s)
	r.L.Infof("runner exited, token refreshes: %d", r.Session.Refreshes())
	return s, nil
}

// Stop signals all virtual users to exit after current iteration, safe to call many times
func (r *Runner) Stop() {
	r.stopOnce.Do(func() {
		close(r.stop)
	})
}

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
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	promOutcomes = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "hospitalload_requests_total",
		Help: "Completed requests by outcome",
	}, []string{"runner", "outcome"})
	promUsers = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Name: "hospitalload_active_users",
		Help: "Running virtual users",
	}, []string{"runner"})
)

// PromReporter mirrors counters into prometheus, nil reporter is a no-op
type PromReporter struct {
	runner string
}

func NewPromReporter(runner string) *PromReporter {
	return &PromReporter{runner: runner}
}

func (m *PromReporter) inc(o Outcome) {
	if m == nil {
		return
	}
	promOutcomes.WithLabelValues(m.runner, string(o)).Inc()
}

func (m *PromReporter) userStarted() {
	if m == nil {
		return
	}
	promUsers.WithLabelValues(m.runner).Inc()
}

func (m *PromReporter) userStopped() {
	if m == nil {
		return
	}
	promUsers.WithLabelValues(m.runner).Dec()
}

// servePrometheus starts /metrics endpoint, returns stop func
func (r *Runner) servePrometheus() func() {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", r.Cfg.Prometheus.Port),
		Handler: mux,
	}
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			r.L.Errorf("metrics endpoint: %v", err)
		}
	}()
	r.L.Infof("serving metrics on %s/metrics", srv.Addr)
	return func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(ctx)
	}
}

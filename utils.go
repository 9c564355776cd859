/*
 * // Copyright 2020 Insolar Network Ltd.
 * // All rights reserved.
 * // This material is licensed under the Insolar License version 1.0,
 * // available at https://github.com/insolar/assured-ledger/blob/master/LICENSE.md.
 */

package hospitalload

import (
	"context"
	"os/signal"
	"runtime"
	"syscall"
	"time"
)

// ShutdownContext is cancelled on SIGINT or SIGTERM
func ShutdownContext(parent context.Context) (context.Context, context.CancelFunc) {
	return signal.NotifyContext(parent, syscall.SIGINT, syscall.SIGTERM)
}

// waitDuration blocks for test duration, until ctx is done or Stop is called
func (r *Runner) waitDuration(ctx context.Context) {
	timer := time.NewTimer(r.Cfg.Duration())
	defer timer.Stop()
	select {
	case <-timer.C:
	case <-r.stop:
	case <-ctx.Done():
		r.L.Infof("manual stop detected")
		if r.Cfg.GoroutinesDump {
			buf := make([]byte, 1<<20)
			stacklen := runtime.Stack(buf, true)
			r.L.Infof("=== received stop ===\n*** goroutine dump...\n%s\n*** end\n", buf[:stacklen])
		}
	}
}

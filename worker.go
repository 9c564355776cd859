package hospitalload

import (
	"context"
	"math/rand"
	"time"
)

// work is a virtual user loop, stop is checked between iterations only,
// a request in flight always finishes or times out by itself
func work(ctx context.Context, r *Runner, num int) {
	defer r.wg.Done()
	l := r.L.With("user", num)
	r.prom.userStarted()
	defer r.prom.userStopped()
	l.Infof("virtual user started")
	rnd := rand.New(rand.NewSource(time.Now().UnixNano() + int64(num)))
	for {
		select {
		case <-r.stop:
			l.Infof("virtual user stopping")
			return
		default:
		}
		r.rl.Take()
		t := r.pick(rnd.Float64())
		l.Debugf("firing %s", t.Name())
		t.Fire(ctx)
		if !r.pace() {
			l.Infof("virtual user stopping")
			return
		}
	}
}

// pick chooses trigger for a uniform fraction in [0, 1)
func (r *Runner) pick(f float64) Trigger {
	if f < SearchShare {
		return r.search
	}
	return r.appointments
}

// pace sleeps pacing interval, returns false if stopped meanwhile
func (r *Runner) pace() bool {
	t := time.NewTimer(r.Cfg.Pacing())
	defer t.Stop()
	select {
	case <-r.stop:
		return false
	case <-t.C:
		return true
	}
}

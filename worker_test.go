package hospitalload

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestPickSplitsBySearchShare(t *testing.T) {
	r := newMockRunner(t, DefaultRunnerCfg(), &ControlTransportMock{}, &TokenSourceMock{})
	require.Equal(t, "search", r.pick(0).Name())
	require.Equal(t, "search", r.pick(0.69).Name())
	require.Equal(t, "appointments", r.pick(0.7).Name())
	require.Equal(t, "appointments", r.pick(0.999).Name())
}

func TestStopJoinsAllUsers(t *testing.T) {
	defer goleak.VerifyNone(t, goleak.IgnoreCurrent())

	cfg := DefaultRunnerCfg()
	cfg.Users = 8
	cfg.DurationSec = 60
	cfg.PacingMs = 50
	tr := &ControlTransportMock{Sleep: 100 * time.Millisecond}
	r := newMockRunner(t, cfg, tr, &TokenSourceMock{})

	done := make(chan Summary)
	go func() {
		s, err := r.Run(context.Background())
		require.NoError(t, err)
		done <- s
	}()
	time.Sleep(300 * time.Millisecond)
	stopped := time.Now()
	r.Stop()

	var s Summary
	select {
	case s = <-done:
	case <-time.After(time.Duration(cfg.SearchTimeoutSec)*time.Second + cfg.Pacing() + time.Second):
		t.Fatal("users did not stop in time")
	}
	require.Less(t, int64(time.Since(stopped)), int64(time.Duration(cfg.SearchTimeoutSec)*time.Second+cfg.Pacing()))
	require.Greater(t, s.Total(), int64(0))
	require.Equal(t, tr.Calls(), s.Total())

	// nothing is counted after users joined
	time.Sleep(200 * time.Millisecond)
	require.Equal(t, s, r.Counters.Snapshot())
	r.Stop()
}

func TestUsersFollowRequestMix(t *testing.T) {
	cfg := DefaultRunnerCfg()
	cfg.Users = 4
	cfg.PacingMs = 1
	tr := &ControlTransportMock{}
	r := newMockRunner(t, cfg, tr, &TokenSourceMock{})
	s, err := r.Run(context.Background())
	require.NoError(t, err)

	var searches int
	reqs := tr.Requests()
	for _, req := range reqs {
		if strings.HasSuffix(req.URL, SearchPath) {
			searches++
		}
	}
	require.Greater(t, len(reqs), 500)
	share := float64(searches) / float64(len(reqs))
	require.InDelta(t, SearchShare, share, 0.08)
	require.Equal(t, int64(searches), s.SearchHits)
	require.Equal(t, int64(len(reqs)-searches), s.AppointmentHits)
}

func TestMaxRPSCapsRequests(t *testing.T) {
	cfg := DefaultRunnerCfg()
	cfg.Users = 4
	cfg.PacingMs = 1
	cfg.MaxRPS = 20
	tr := &ControlTransportMock{}
	r := newMockRunner(t, cfg, tr, &TokenSourceMock{})
	s, err := r.Run(context.Background())
	require.NoError(t, err)
	require.LessOrEqual(t, s.Total(), int64(30))
	require.Greater(t, s.Total(), int64(5))
}

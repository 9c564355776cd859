package hospitalload

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCountersConcurrentIncrements(t *testing.T) {
	const workers, perWorker = 50, 1000
	c := NewCounters(nil)
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < perWorker; j++ {
				c.Add(OutcomeSearchHit)
			}
		}()
	}
	wg.Wait()
	require.Equal(t, int64(workers*perWorker), c.Get(OutcomeSearchHit))
	require.Equal(t, int64(0), c.Get(OutcomeError))
}

func TestCountersConcurrentTriggers(t *testing.T) {
	const workers, perWorker = 16, 200
	tr := &ControlTransportMock{}
	r := newMockRunner(t, DefaultRunnerCfg(), tr, &TokenSourceMock{})
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < perWorker; j++ {
				r.search.Fire(context.Background())
				r.appointments.Fire(context.Background())
			}
		}()
	}
	wg.Wait()
	s := r.Counters.Snapshot()
	require.Equal(t, int64(workers*perWorker), s.SearchHits)
	require.Equal(t, int64(workers*perWorker), s.AppointmentHits)
	require.Equal(t, tr.Calls(), s.Total())
}

func TestCountersFirstStatusErrorReportedOnce(t *testing.T) {
	c := NewCounters(NewPromReporter("test_counters"))
	c.Add(OutcomeError)
	require.True(t, c.AddStatusError())
	require.False(t, c.AddStatusError())
	require.False(t, c.AddStatusError())
	require.Equal(t, Summary{Errors: 4}, c.Snapshot())
}

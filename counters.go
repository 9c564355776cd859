package hospitalload

import (
	"sync"
)

type Outcome string

const (
	OutcomeSearchHit      Outcome = "search_hits"
	OutcomeAppointmentHit Outcome = "appointment_hits"
	OutcomeError          Outcome = "errors"
)

// Summary is a snapshot of counters
type Summary struct {
	SearchHits      int64
	AppointmentHits int64
	Errors          int64
}

func (s Summary) Total() int64 {
	return s.SearchHits + s.AppointmentHits + s.Errors
}

// Counters of request outcomes, one increment per completed trigger call
type Counters struct {
	mu              sync.Mutex
	m               map[Outcome]int64
	statusErrorSeen bool
	prom            *PromReporter
}

func NewCounters(prom *PromReporter) *Counters {
	return &Counters{
		m: map[Outcome]int64{
			OutcomeSearchHit:      0,
			OutcomeAppointmentHit: 0,
			OutcomeError:          0,
		},
		prom: prom,
	}
}

func (c *Counters) Add(o Outcome) {
	c.mu.Lock()
	c.m[o]++
	c.mu.Unlock()
	c.prom.inc(o)
}

// AddStatusError counts an unexpected http status, returns true only for the first one in a run
func (c *Counters) AddStatusError() (first bool) {
	c.mu.Lock()
	c.m[OutcomeError]++
	first = !c.statusErrorSeen
	c.statusErrorSeen = true
	c.mu.Unlock()
	c.prom.inc(OutcomeError)
	return first
}

func (c *Counters) Get(o Outcome) int64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.m[o]
}

func (c *Counters) Snapshot() Summary {
	c.mu.Lock()
	defer c.mu.Unlock()
	return Summary{
		SearchHits:      c.m[OutcomeSearchHit],
		AppointmentHits: c.m[OutcomeAppointmentHit],
		Errors:          c.m[OutcomeError],
	}
}

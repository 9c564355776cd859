package hospitalload

import (
	"context"
	"sync"
	"sync/atomic"

	"golang.org/x/sync/singleflight"
)

// Session holds current bearer token shared by all virtual users
type Session struct {
	src       TokenSource
	mu        sync.RWMutex
	token     string
	refreshes int64
	sf        singleflight.Group
}

func NewSession(src TokenSource) *Session {
	return &Session{src: src}
}

func (s *Session) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token
}

func (s *Session) set(token string) {
	s.mu.Lock()
	s.token = token
	s.mu.Unlock()
}

// Acquire fetches initial token
func (s *Session) Acquire(ctx context.Context) error {
	tok, err := s.src.Acquire(ctx)
	if err != nil {
		return err
	}
	s.set(tok)
	return nil
}

// Refresh replaces the stale token, concurrent callers share one fetch.
// If the token was already replaced, the current one is returned without a fetch.
func (s *Session) Refresh(ctx context.Context, stale string) (string, error) {
	v, err, _ := s.sf.Do("token", func() (interface{}, error) {
		if cur := s.Token(); cur != stale {
			return cur, nil
		}
		atomic.AddInt64(&s.refreshes, 1)
		tok, err := s.src.Acquire(ctx)
		if err != nil {
			return "", err
		}
		s.set(tok)
		return tok, nil
	})
	if err != nil {
		return "", err
	}
	return v.(string), nil
}

// Refreshes amount of token fetches after the initial one
func (s *Session) Refreshes() int64 {
	return atomic.LoadInt64(&s.refreshes)
}

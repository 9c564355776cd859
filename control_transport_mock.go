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
	"sync"
	"sync/atomic"
	"time"
)

// ControlTransportMock answers without network, Respond nil means 200 for everything
type ControlTransportMock struct {
	Respond func(r Request) (Response, error)
	// Sleep emulates service latency, request ctx deadline is honoured
	Sleep time.Duration

	calls    int64
	mu       sync.Mutex
	requests []Request
}

func (m *ControlTransportMock) Get(ctx context.Context, r Request) (Response, error) {
	atomic.AddInt64(&m.calls, 1)
	m.mu.Lock()
	m.requests = append(m.requests, r)
	m.mu.Unlock()
	if m.Sleep > 0 {
		select {
		case <-time.After(m.Sleep):
		case <-ctx.Done():
			return Response{}, ctx.Err()
		}
	}
	if m.Respond == nil {
		return Response{StatusCode: 200}, nil
	}
	return m.Respond(r)
}

func (m *ControlTransportMock) Calls() int64 {
	return atomic.LoadInt64(&m.calls)
}

func (m *ControlTransportMock) Requests() []Request {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]Request(nil), m.requests...)
}

// StatusResponder always answers with code
func StatusResponder(code int) func(r Request) (Response, error) {
	return func(_ Request) (Response, error) {
		return Response{StatusCode: code, Body: []byte(fmt.Sprintf(`{"status":%d}`, code))}, nil
	}
}

// TokenSourceMock issues token-1, token-2, ... or fails with Err
type TokenSourceMock struct {
	Err   error
	calls int64
}

func (m *TokenSourceMock) Acquire(_ context.Context) (string, error) {
	n := atomic.AddInt64(&m.calls, 1)
	if m.Err != nil {
		return "", m.Err
	}
	return fmt.Sprintf("token-%d", n), nil
}

func (m *TokenSourceMock) Calls() int64 {
	return atomic.LoadInt64(&m.calls)
}

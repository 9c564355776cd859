/*
 * // Copyright 2020 Insolar Network Ltd.
 * // All rights reserved.
 * // This material is licensed under the Insolar License version 1.0,
 * // available at https://github.com/insolar/assured-ledger/blob/master/LICENSE.md.
 */

package hospitalload

import (
	"context"
	"io/ioutil"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
)

func DefaultRunnerCfg() *Config {
	return &Config{
		Name:                  "test_runner",
		BaseURL:               "http://hospital.test/api/v1",
		TokenURL:              "http://hospital.test/token",
		Users:                 1,
		DurationSec:           1,
		SearchTimeoutSec:      1,
		AppointmentTimeoutSec: 1,
		TokenTimeoutSec:       1,
		PacingMs:              1,
		LogLevel:              "error",
	}
}

// newMockRunner builds runner on mocks and acquires the initial token
func newMockRunner(t *testing.T, cfg *Config, tr *ControlTransportMock, ts *TokenSourceMock) *Runner {
	r, err := NewRunner(cfg,
		WithTransport(tr),
		WithTokenSource(ts),
		WithLogger(NewNopLogger()),
		WithOutput(ioutil.Discard),
	)
	require.NoError(t, err)
	require.NoError(t, r.Session.Acquire(context.Background()))
	return r
}

// withDummyHospital serves d and points cfg urls at it
func withDummyHospital(t *testing.T, cfg *Config, d *DummyHospital) *Config {
	srv := httptest.NewServer(d.Handler())
	t.Cleanup(srv.Close)
	cfg.BaseURL = srv.URL + DummyAPIPrefix
	cfg.TokenURL = srv.URL + DummyTokenPath
	return cfg
}

// tokenFor returns a valid dummy hospital token
func tokenFor(t *testing.T, cfg *Config) string {
	tok, err := NewPasswordGrant(cfg, NewNopLogger()).Acquire(context.Background())
	require.NoError(t, err)
	return tok
}

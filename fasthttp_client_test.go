/*
 * // Copyright 2020 Insolar Network Ltd.
 * // All rights reserved.
 * // This material is licensed under the Insolar License version 1.0,
 * // available at https://github.com/insolar/assured-ledger/blob/master/LICENSE.md.
 */

package hospitalload

import (
	"context"
	"net/http"
	"net/url"
	"testing"
	"time"

	jsoniter "github.com/json-iterator/go"
	"github.com/stretchr/testify/require"
)

func transportsUnderTest() map[string]Transport {
	return map[string]Transport{
		TransportHTTP:     NewHTTPTransport(DefaultRunnerCfg()),
		TransportFastHTTP: NewLoggingFastHTTPClient(false),
	}
}

func TestTransportsAgainstDummyHospital(t *testing.T) {
	d := NewDummyHospital(5, 3)
	cfg := withDummyHospital(t, DefaultRunnerCfg(), d)
	cfg.DefaultCfgValues()
	tok := tokenFor(t, cfg)
	known := d.PatientEmails()[0]

	for name, tr := range transportsUnderTest() {
		ctx, cancel := context.WithTimeout(context.Background(), time.Second)
		res, err := tr.Get(ctx, Request{
			URL:   cfg.BaseURL + SearchPath,
			Query: url.Values{"email": []string{known}},
			Token: tok,
		})
		require.NoError(t, err, name)
		require.Equal(t, http.StatusOK, res.StatusCode, name)
		var env struct {
			Status int
			Data   Patient
		}
		require.NoError(t, jsoniter.Unmarshal(res.Body, &env), name)
		require.Equal(t, known, env.Data.Email, name)

		res, err = tr.Get(ctx, Request{
			URL:   cfg.BaseURL + SearchPath,
			Query: url.Values{"email": []string{"nobody@hospital.com"}},
			Token: tok,
		})
		require.NoError(t, err, name)
		require.Equal(t, http.StatusNotFound, res.StatusCode, name)

		res, err = tr.Get(ctx, Request{URL: cfg.BaseURL + AppointmentsPath, Token: "expired"})
		require.NoError(t, err, name)
		require.Equal(t, http.StatusUnauthorized, res.StatusCode, name)

		res, err = tr.Get(ctx, Request{URL: cfg.BaseURL + AppointmentsPath, Token: tok})
		require.NoError(t, err, name)
		require.Equal(t, http.StatusOK, res.StatusCode, name)
		var list struct {
			Data []AppointmentResponse
		}
		require.NoError(t, jsoniter.Unmarshal(res.Body, &list), name)
		require.Len(t, list.Data, 3, name)
		cancel()
	}
}

func TestTransportsHonourDeadline(t *testing.T) {
	d := NewDummyHospital(1, 1)
	d.Sleep = 500 * time.Millisecond
	cfg := withDummyHospital(t, DefaultRunnerCfg(), d)
	cfg.DefaultCfgValues()
	tok := tokenFor(t, cfg)

	for name, tr := range transportsUnderTest() {
		ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
		_, err := tr.Get(ctx, Request{URL: cfg.BaseURL + AppointmentsPath, Token: tok})
		cancel()
		require.Error(t, err, name)
	}
}

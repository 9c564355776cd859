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
	"time"

	"github.com/google/uuid"
)

const (
	SearchPath       = "/patients/search"
	AppointmentsPath = "/appointments"
	searchKeyDomain  = "@hospital.com"
)

// Trigger is one request pattern, Fire must count exactly one outcome
type Trigger interface {
	Name() string
	Fire(ctx context.Context)
}

// SearchTrigger looks up a random email that never exists, forcing a full scan
// on an unindexed column
type SearchTrigger struct {
	*Runner
	l *Logger
}

func NewSearchTrigger(r *Runner) *SearchTrigger {
	return &SearchTrigger{Runner: r, l: r.L.With("trigger", "search")}
}

func (a *SearchTrigger) Name() string {
	return "search"
}

func (a *SearchTrigger) Fire(ctx context.Context) {
	a.FireWithKey(ctx, uuid.New().String()+searchKeyDomain)
}

// FireWithKey searches given email, on 401 refreshes the token and retries once
func (a *SearchTrigger) FireWithKey(ctx context.Context, email string) {
	token := a.Session.Token()
	res, err := a.get(ctx, email, token)
	if err == nil && res.StatusCode == http.StatusUnauthorized {
		a.l.Infof("token expired, re-authenticating")
		token, err = a.Session.Refresh(ctx, token)
		if err != nil {
			a.l.Warnf("token refresh failed: %v", err)
			a.Counters.Add(OutcomeError)
			return
		}
		res, err = a.get(ctx, email, token)
		if err == nil && res.StatusCode == http.StatusUnauthorized {
			a.l.Debug(errStillForbidden)
		}
	}
	if err != nil {
		a.l.Debugf("search failed: %v", err)
		a.Counters.Add(OutcomeError)
		return
	}
	switch res.StatusCode {
	case http.StatusOK, http.StatusNotFound:
		a.Counters.Add(OutcomeSearchHit)
	default:
		if a.Counters.AddStatusError() {
			a.l.Infof("first error code: %d | body: %s", res.StatusCode, res.Body)
		}
	}
}

func (a *SearchTrigger) get(ctx context.Context, email, token string) (Response, error) {
	ctx, cancel := context.WithTimeout(ctx, time.Duration(a.Cfg.SearchTimeoutSec)*time.Second)
	defer cancel()
	return a.Transport.Get(ctx, Request{
		URL:   a.Cfg.BaseURL + SearchPath,
		Query: url.Values{"email": []string{email}},
		Token: token,
	})
}

// AppointmentTrigger lists all appointments, the server resolves patient names one by one.
// Token is not refreshed on this path.
type AppointmentTrigger struct {
	*Runner
	l *Logger
}

func NewAppointmentTrigger(r *Runner) *AppointmentTrigger {
	return &AppointmentTrigger{Runner: r, l: r.L.With("trigger", "appointments")}
}

func (a *AppointmentTrigger) Name() string {
	return "appointments"
}

func (a *AppointmentTrigger) Fire(ctx context.Context) {
	ctx, cancel := context.WithTimeout(ctx, time.Duration(a.Cfg.AppointmentTimeoutSec)*time.Second)
	defer cancel()
	res, err := a.Transport.Get(ctx, Request{
		URL:   a.Cfg.BaseURL + AppointmentsPath,
		Token: a.Session.Token(),
	})
	if err != nil {
		a.l.Debugf("appointments failed: %v", err)
		a.Counters.Add(OutcomeError)
		return
	}
	if res.StatusCode != http.StatusOK {
		a.l.Debugf("appointments status: %d", res.StatusCode)
		a.Counters.Add(OutcomeError)
		return
	}
	a.Counters.Add(OutcomeAppointmentHit)
}

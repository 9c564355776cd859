/*
 * // Copyright 2020 Insolar Network Ltd.
 * // All rights reserved.
 * // This material is licensed under the Insolar License version 1.0,
 * // available at https://github.com/insolar/assured-ledger/blob/master/LICENSE.md.
 */

package hospitalload

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"

	"golang.org/x/oauth2"
)

// TokenSource exchanges credentials for a bearer token
type TokenSource interface {
	Acquire(ctx context.Context) (string, error)
}

// PasswordGrant fetches tokens with resource owner password credentials grant
type PasswordGrant struct {
	oauth    oauth2.Config
	username string
	password string
	client   *http.Client
	L        *Logger
}

func NewPasswordGrant(cfg *Config, l *Logger) *PasswordGrant {
	return &PasswordGrant{
		oauth: oauth2.Config{
			ClientID: cfg.ClientID,
			Endpoint: oauth2.Endpoint{
				TokenURL:  cfg.TokenURL,
				AuthStyle: oauth2.AuthStyleInParams,
			},
		},
		username: cfg.Username,
		password: cfg.Password,
		client:   NewLoggingHTTPClient(cfg.DumpTransport, cfg.TokenTimeoutSec),
		L:        l.With("component", "token"),
	}
}

// Acquire returns ErrTokenRejected for non 2xx or malformed answers and
// ErrTokenConnect when endpoint can't be reached in time
func (p *PasswordGrant) Acquire(ctx context.Context) (string, error) {
	ctx = context.WithValue(ctx, oauth2.HTTPClient, p.client)
	tok, err := p.oauth.PasswordCredentialsToken(ctx, p.username, p.password)
	if err != nil {
		var re *oauth2.RetrieveError
		var ue *url.Error
		switch {
		case errors.As(err, &re):
			p.L.Errorf("failed to get token: %s", re.Body)
			return "", fmt.Errorf("%w: status %d: %s", ErrTokenRejected, re.Response.StatusCode, re.Body)
		case errors.As(err, &ue):
			p.L.Errorf("connection error to token endpoint: %v", err)
			return "", fmt.Errorf("%w: %w", ErrTokenConnect, err)
		default:
			p.L.Errorf("failed to get token: %v", err)
			return "", fmt.Errorf("%w: %w", ErrTokenRejected, err)
		}
	}
	p.L.Infof("successfully retrieved token")
	return tok.AccessToken, nil
}

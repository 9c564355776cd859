package hospitalload

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestPasswordGrantSuccess(t *testing.T) {
	d := NewDummyHospital(1, 1)
	cfg := withDummyHospital(t, DefaultRunnerCfg(), d)
	cfg.DefaultCfgValues()
	tok, err := NewPasswordGrant(cfg, NewNopLogger()).Acquire(context.Background())
	require.NoError(t, err)
	require.NotEmpty(t, tok)
	require.Equal(t, int64(1), d.TokensIssued())
}

func TestPasswordGrantWrongCredentials(t *testing.T) {
	d := NewDummyHospital(1, 1)
	cfg := withDummyHospital(t, DefaultRunnerCfg(), d)
	cfg.DefaultCfgValues()
	cfg.Password = "wrong"
	_, err := NewPasswordGrant(cfg, NewNopLogger()).Acquire(context.Background())
	require.ErrorIs(t, err, ErrTokenRejected)
	require.Contains(t, err.Error(), "status 401")
	require.Contains(t, err.Error(), "invalid_grant")
	require.Equal(t, int64(0), d.TokensIssued())
}

func TestPasswordGrantMissingAccessToken(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"token_type":"Bearer"}`))
	}))
	defer srv.Close()
	cfg := DefaultRunnerCfg()
	cfg.DefaultCfgValues()
	cfg.TokenURL = srv.URL
	_, err := NewPasswordGrant(cfg, NewNopLogger()).Acquire(context.Background())
	require.ErrorIs(t, err, ErrTokenRejected)
}

func TestPasswordGrantUnreachable(t *testing.T) {
	cfg := DefaultRunnerCfg()
	cfg.DefaultCfgValues()
	cfg.TokenURL = "http://127.0.0.1:1/token"
	_, err := NewPasswordGrant(cfg, NewNopLogger()).Acquire(context.Background())
	require.ErrorIs(t, err, ErrTokenConnect)
}

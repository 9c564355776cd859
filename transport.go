package hospitalload

import (
	"context"
	"io/ioutil"
	"net/http"
	"net/url"
)

// Request is a bearer authenticated GET
type Request struct {
	URL   string
	Query url.Values
	Token string
}

func (r Request) target() string {
	if len(r.Query) == 0 {
		return r.URL
	}
	return r.URL + "?" + r.Query.Encode()
}

// Response holds status code and a copy of the body
type Response struct {
	StatusCode int
	Body       []byte
}

// Transport performs a single request, ctx carries the request timeout.
// An error means no HTTP status was received.
type Transport interface {
	Get(ctx context.Context, req Request) (Response, error)
}

// HTTPTransport is a net/http Transport
type HTTPTransport struct {
	Client *http.Client
}

func NewHTTPTransport(cfg *Config) *HTTPTransport {
	return &HTTPTransport{Client: NewLoggingHTTPClient(cfg.DumpTransport, 0)}
}

func (t *HTTPTransport) Get(ctx context.Context, r Request) (Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, r.target(), nil)
	if err != nil {
		return Response{}, err
	}
	req.Header.Set("Authorization", "Bearer "+r.Token)
	res, err := t.Client.Do(req)
	if err != nil {
		return Response{}, err
	}
	defer res.Body.Close()
	body, err := ioutil.ReadAll(res.Body)
	if err != nil {
		return Response{}, err
	}
	return Response{StatusCode: res.StatusCode, Body: body}, nil
}

// NewTransport picks transport implementation by config
func NewTransport(cfg *Config) Transport {
	if cfg.Transport == TransportFastHTTP {
		return NewLoggingFastHTTPClient(cfg.DumpTransport)
	}
	return NewHTTPTransport(cfg)
}

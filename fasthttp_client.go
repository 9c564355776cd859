/*
 * // Copyright 2020 Insolar Network Ltd.
 * // All rights reserved.
 * // This material is licensed under the Insolar License version 1.0,
 * // available at https://github.com/insolar/assured-ledger/blob/master/LICENSE.md.
 */

package hospitalload

import (
	"context"
	"log"
	"time"

	"github.com/valyala/fasthttp"
)

// FastHTTPClient is a fasthttp Transport
type FastHTTPClient struct {
	dump bool
	fasthttp.Client
}

// NewLoggingFastHTTPClient creates new client with debug http
func NewLoggingFastHTTPClient(debug bool) *FastHTTPClient {
	return &FastHTTPClient{
		debug,
		fasthttp.Client{
			MaxConnsPerHost:           65535,
			MaxIdleConnDuration:       90 * time.Second,
			MaxIdemponentCallAttempts: 1,
		},
	}
}

func (m *FastHTTPClient) Get(ctx context.Context, r Request) (Response, error) {
	req := fasthttp.AcquireRequest()
	resp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseRequest(req)
	defer fasthttp.ReleaseResponse(resp)
	req.SetRequestURI(r.target())
	req.Header.SetMethod("GET")
	req.Header.Set("Authorization", "Bearer "+r.Token)
	if err := m.do(ctx, req, resp); err != nil {
		return Response{}, err
	}
	// resp is released on return
	body := append([]byte(nil), resp.Body()...)
	return Response{StatusCode: resp.StatusCode(), Body: body}, nil
}

func (m *FastHTTPClient) do(ctx context.Context, req *fasthttp.Request, resp *fasthttp.Response) error {
	if m.dump {
		log.Printf(RequestHeader, req.String())
	}
	var err error
	if deadline, ok := ctx.Deadline(); ok {
		err = m.Client.DoDeadline(req, resp, deadline)
	} else {
		err = m.Client.Do(req, resp)
	}
	if err != nil {
		return err
	}
	if m.dump {
		log.Printf(ResponseHeader, resp.String())
	}
	return nil
}

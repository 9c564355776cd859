/*
 * // Copyright 2020 Insolar Network Ltd.
 * // All rights reserved.
 * // This material is licensed under the Insolar License version 1.0,
 * // available at https://github.com/insolar/assured-ledger/blob/master/LICENSE.md.
 */

package hospitalload

import (
	"fmt"
	"io"
	"net/http"
	"net/http/httputil"
	"os"
	"strings"
	"time"

	jsoniter "github.com/json-iterator/go"
)

// NewLoggingHTTPClient creates new client with debug http, timeoutSec 0 leaves timeouts to request contexts
func NewLoggingHTTPClient(debug bool, timeoutSec int) *http.Client {
	t := http.DefaultTransport.(*http.Transport).Clone()
	t.MaxConnsPerHost = 65535
	t.MaxIdleConns = 65535
	t.MaxIdleConnsPerHost = 65535
	t.DisableCompression = true
	if timeoutSec > 0 {
		t.ResponseHeaderTimeout = time.Duration(timeoutSec) * time.Second
	}
	var transport http.RoundTripper = t
	if debug {
		transport = &DumpTransport{r: t, w: os.Stdout}
	}
	return &http.Client{
		Transport: transport,
		Timeout:   time.Duration(timeoutSec) * time.Second,
	}
}

const (
	RequestHeader      = "========== REQUEST ==========\n%s\n"
	RequestHeaderBody  = "========== REQUEST ==========\n%s\n%s\n"
	ResponseHeaderBody = "========== RESPONSE ==========\n%s\n%s\n"
	ResponseHeader     = "========== RESPONSE ==========\n%s\n"
	HTTPBodyDelimiter  = "\r\n\r\n"
)

// DumpTransport log http request/responses, pprint bodies
type DumpTransport struct {
	r http.RoundTripper
	w io.Writer
}

func (d *DumpTransport) RoundTrip(h *http.Request) (*http.Response, error) {
	dump, _ := httputil.DumpRequestOut(h, true)
	if bodyIsJson(h.Header) {
		req, pprintBody := prettyPrintJsonBody(dump)
		fmt.Fprintf(d.w, RequestHeaderBody, req, pprintBody)
	} else {
		fmt.Fprintf(d.w, RequestHeader, dump)
	}
	resp, err := d.r.RoundTrip(h)
	if err != nil {
		return nil, err
	}
	// DumpResponse restores the body, caller still owns it
	dump, _ = httputil.DumpResponse(resp, true)
	if bodyIsJson(resp.Header) {
		respString, pprintBody := prettyPrintJsonBody(dump)
		fmt.Fprintf(d.w, ResponseHeaderBody, respString, pprintBody)
		return resp, nil
	}
	fmt.Fprintf(d.w, ResponseHeader, dump)
	return resp, nil
}

// prettyPrintJsonBody returns http format head and pretty printed json body,
// body that is not json is returned as is
func prettyPrintJsonBody(b []byte) (string, string) {
	sp := strings.SplitN(string(b), HTTPBodyDelimiter, 2)
	if len(sp) != 2 {
		return sp[0], ""
	}
	var obj interface{}
	if err := jsoniter.Unmarshal([]byte(sp[1]), &obj); err != nil {
		return sp[0], sp[1]
	}
	pprintBody, err := jsoniter.MarshalIndent(obj, "", "    ")
	if err != nil {
		return sp[0], sp[1]
	}
	return sp[0], string(pprintBody)
}

func bodyIsJson(h http.Header) bool {
	return strings.Contains(h.Get("content-type"), "application/json")
}

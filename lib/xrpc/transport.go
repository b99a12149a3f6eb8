// Copyright 2026 The atproto-go Authors
// SPDX-License-Identifier: Apache-2.0

package xrpc

import (
	"context"
	"fmt"
	"io"
	"net/http"
)

// Request is a transport-agnostic HTTP request.
type Request struct {
	Method  string
	URL     string
	Header  http.Header
	Body    io.Reader
}

// Response is a transport-agnostic HTTP response. Body is always
// non-nil and must be closed by the caller.
type Response struct {
	StatusCode int
	Header     http.Header
	Body       io.ReadCloser
}

// Executor performs a single HTTP round trip. The default
// implementation wraps *http.Client; tests substitute a fake via
// [NewForTesting].
type Executor interface {
	Do(ctx context.Context, req *Request) (*Response, error)
}

// httpExecutor is the default Executor, backed by a *http.Client whose
// Transport may be swapped for tests.
type httpExecutor struct {
	httpClient *http.Client
}

// NewExecutor returns the default net/http-backed Executor.
func NewExecutor() Executor {
	return &httpExecutor{httpClient: &http.Client{}}
}

// NewExecutorForTesting returns an Executor backed by the given
// http.RoundTripper, for redirecting requests to a httptest.Server.
func NewExecutorForTesting(transport http.RoundTripper) Executor {
	return &httpExecutor{httpClient: &http.Client{Transport: transport}}
}

func (e *httpExecutor) Do(ctx context.Context, req *Request) (*Response, error) {
	httpReq, err := http.NewRequestWithContext(ctx, req.Method, req.URL, req.Body)
	if err != nil {
		return nil, fmt.Errorf("xrpc: building request: %w", err)
	}
	httpReq.Header = req.Header

	httpResp, err := e.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("xrpc: request failed: %w", err)
	}
	return &Response{
		StatusCode: httpResp.StatusCode,
		Header:     httpResp.Header,
		Body:       httpResp.Body,
	}, nil
}

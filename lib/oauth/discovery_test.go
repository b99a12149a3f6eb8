// Copyright 2026 The atproto-go Authors
// SPDX-License-Identifier: Apache-2.0

package oauth

import (
	"context"
	"io"
	"net/http"
	"strings"
	"testing"

	"github.com/atproto-go/sdk/lib/xrpc"
)

type countingExecutor struct {
	calls int
	do    func(ctx context.Context, req *xrpc.Request) (*xrpc.Response, error)
}

func (c *countingExecutor) Do(ctx context.Context, req *xrpc.Request) (*xrpc.Response, error) {
	c.calls++
	return c.do(ctx, req)
}

func jsonResp(status int, body string) *xrpc.Response {
	return &xrpc.Response{StatusCode: status, Header: make(http.Header), Body: io.NopCloser(strings.NewReader(body))}
}

func TestAuthServerDiscovery_MemoizesByIssuer(t *testing.T) {
	exec := &countingExecutor{do: func(ctx context.Context, req *xrpc.Request) (*xrpc.Response, error) {
		return jsonResp(200, `{"issuer":"https://auth.example.com","authorization_endpoint":"https://auth.example.com/authorize","token_endpoint":"https://auth.example.com/token","pushed_authorization_request_endpoint":"https://auth.example.com/par"}`), nil
	}}
	discovery := NewAuthServerDiscovery(exec)

	first, err := discovery.Discover(context.Background(), "https://auth.example.com")
	if err != nil {
		t.Fatalf("Discover() error: %v", err)
	}
	second, err := discovery.Discover(context.Background(), "https://auth.example.com")
	if err != nil {
		t.Fatalf("Discover() second call error: %v", err)
	}
	if exec.calls != 1 {
		t.Errorf("executor called %d times, want 1 (second call should hit cache)", exec.calls)
	}
	if first != second {
		t.Errorf("cached metadata mismatch: %+v vs %+v", first, second)
	}
}

func TestAuthServerDiscovery_RejectsMismatchedIssuer(t *testing.T) {
	exec := &countingExecutor{do: func(ctx context.Context, req *xrpc.Request) (*xrpc.Response, error) {
		return jsonResp(200, `{"issuer":"https://attacker.example.com"}`), nil
	}}
	discovery := NewAuthServerDiscovery(exec)
	_, err := discovery.Discover(context.Background(), "https://auth.example.com")
	if err == nil {
		t.Fatal("Discover() should fail when the issuer claim does not match")
	}
}

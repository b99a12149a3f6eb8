// Copyright 2026 The atproto-go Authors
// SPDX-License-Identifier: Apache-2.0

package atidentity

import (
	"context"
	"io"
	"net/http"
	"strings"
	"testing"

	"github.com/atproto-go/sdk/lib/atid"
	"github.com/atproto-go/sdk/lib/xrpc"
)

type fakeExecutor struct {
	do func(ctx context.Context, req *xrpc.Request) (*xrpc.Response, error)
}

func (f *fakeExecutor) Do(ctx context.Context, req *xrpc.Request) (*xrpc.Response, error) {
	return f.do(ctx, req)
}

func jsonXRPCResponse(status int, body string) *xrpc.Response {
	return &xrpc.Response{StatusCode: status, Header: make(http.Header), Body: io.NopCloser(strings.NewReader(body))}
}

func TestPLCResolver_ResolveDID(t *testing.T) {
	var capturedURL string
	exec := &fakeExecutor{do: func(ctx context.Context, req *xrpc.Request) (*xrpc.Response, error) {
		capturedURL = req.URL
		return jsonXRPCResponse(200, `{"id":"did:plc:z72i7hdynmk6r22z27h6tvur","service":[{"id":"#atproto_pds","type":"AtprotoPersonalDataServer","serviceEndpoint":"https://pds.example.com"}]}`), nil
	}}

	resolver := NewPLCResolver("https://plc.directory", exec)
	did := atid.MustParseDID("did:plc:z72i7hdynmk6r22z27h6tvur")
	doc, err := resolver.ResolveDID(context.Background(), did)
	if err != nil {
		t.Fatalf("ResolveDID() error: %v", err)
	}
	if doc.ID != did.String() {
		t.Errorf("doc.ID = %q, want %q", doc.ID, did.String())
	}
	if capturedURL != "https://plc.directory/did:plc:z72i7hdynmk6r22z27h6tvur" {
		t.Errorf("request URL = %q", capturedURL)
	}
}

func TestPLCResolver_RejectsNonPLCMethod(t *testing.T) {
	resolver := NewPLCResolver("https://plc.directory", &fakeExecutor{})
	_, err := resolver.ResolveDID(context.Background(), atid.MustParseDID("did:web:example.com"))
	if err == nil {
		t.Error("ResolveDID(did:web) should fail on a PLC resolver")
	}
}

func TestWebResolver_BareDomain(t *testing.T) {
	var capturedURL string
	exec := &fakeExecutor{do: func(ctx context.Context, req *xrpc.Request) (*xrpc.Response, error) {
		capturedURL = req.URL
		return jsonXRPCResponse(200, `{"id":"did:web:example.com"}`), nil
	}}
	resolver := NewWebResolver(exec)
	_, err := resolver.ResolveDID(context.Background(), atid.MustParseDID("did:web:example.com"))
	if err != nil {
		t.Fatalf("ResolveDID() error: %v", err)
	}
	if capturedURL != "https://example.com/.well-known/did.json" {
		t.Errorf("request URL = %q", capturedURL)
	}
}

func TestWebResolver_DomainWithPath(t *testing.T) {
	var capturedURL string
	exec := &fakeExecutor{do: func(ctx context.Context, req *xrpc.Request) (*xrpc.Response, error) {
		capturedURL = req.URL
		return jsonXRPCResponse(200, `{"id":"did:web:example.com:user:alice"}`), nil
	}}
	resolver := NewWebResolver(exec)
	_, err := resolver.ResolveDID(context.Background(), atid.MustParseDID("did:web:example.com:user:alice"))
	if err != nil {
		t.Fatalf("ResolveDID() error: %v", err)
	}
	if capturedURL != "https://example.com/user/alice/did.json" {
		t.Errorf("request URL = %q", capturedURL)
	}
}

func TestCompositeResolver_DispatchesByMethod(t *testing.T) {
	plcExec := &fakeExecutor{do: func(ctx context.Context, req *xrpc.Request) (*xrpc.Response, error) {
		return jsonXRPCResponse(200, `{"id":"did:plc:abc"}`), nil
	}}
	webExec := &fakeExecutor{do: func(ctx context.Context, req *xrpc.Request) (*xrpc.Response, error) {
		return jsonXRPCResponse(200, `{"id":"did:web:example.com"}`), nil
	}}
	composite := NewCompositeResolver(NewPLCResolver("https://plc.directory", plcExec), NewWebResolver(webExec))

	if _, err := composite.ResolveDID(context.Background(), atid.MustParseDID("did:plc:abc")); err != nil {
		t.Errorf("ResolveDID(plc) error: %v", err)
	}
	if _, err := composite.ResolveDID(context.Background(), atid.MustParseDID("did:web:example.com")); err != nil {
		t.Errorf("ResolveDID(web) error: %v", err)
	}
	if _, err := composite.ResolveDID(context.Background(), atid.MustParseDID("did:key:z6Mk")); err == nil {
		t.Error("ResolveDID(key) should fail with unsupported method")
	}
}

func TestHandleResolver_ResolveHandle(t *testing.T) {
	var capturedAccept string
	exec := &fakeExecutor{do: func(ctx context.Context, req *xrpc.Request) (*xrpc.Response, error) {
		capturedAccept = req.Header.Get("Accept")
		return jsonXRPCResponse(200, "  did:plc:z72i7hdynmk6r22z27h6tvur  \n"), nil
	}}
	resolver := NewHandleResolver(exec)
	did, err := resolver.ResolveHandle(context.Background(), atid.MustParseHandle("alice.bsky.social"))
	if err != nil {
		t.Fatalf("ResolveHandle() error: %v", err)
	}
	if did.String() != "did:plc:z72i7hdynmk6r22z27h6tvur" {
		t.Errorf("did = %q", did.String())
	}
	if capturedAccept != "text/plain" {
		t.Errorf("Accept = %q, want text/plain", capturedAccept)
	}
}

func TestDiscoverPDS(t *testing.T) {
	exec := &fakeExecutor{do: func(ctx context.Context, req *xrpc.Request) (*xrpc.Response, error) {
		return jsonXRPCResponse(200, `{"id":"did:plc:abc","service":[{"id":"#other","type":"Other","serviceEndpoint":"https://ignored"},{"id":"#atproto_pds","type":"AtprotoPersonalDataServer","serviceEndpoint":"https://pds.example.com"}]}`), nil
	}}
	resolver := NewPLCResolver("https://plc.directory", exec)
	endpoint, err := DiscoverPDS(context.Background(), resolver, atid.MustParseDID("did:plc:abc"))
	if err != nil {
		t.Fatalf("DiscoverPDS() error: %v", err)
	}
	if endpoint != "https://pds.example.com" {
		t.Errorf("endpoint = %q", endpoint)
	}
}

func TestDiscoverPDS_NoMatchingService(t *testing.T) {
	exec := &fakeExecutor{do: func(ctx context.Context, req *xrpc.Request) (*xrpc.Response, error) {
		return jsonXRPCResponse(200, `{"id":"did:plc:abc"}`), nil
	}}
	resolver := NewPLCResolver("https://plc.directory", exec)
	_, err := DiscoverPDS(context.Background(), resolver, atid.MustParseDID("did:plc:abc"))
	if err == nil {
		t.Error("DiscoverPDS() with no matching service should fail")
	}
}

func TestDiscoverAuthServer(t *testing.T) {
	exec := &fakeExecutor{do: func(ctx context.Context, req *xrpc.Request) (*xrpc.Response, error) {
		return jsonXRPCResponse(200, `{"authorization_servers":["https://auth.example.com"]}`), nil
	}}
	server, err := DiscoverAuthServer(context.Background(), exec, "https://pds.example.com")
	if err != nil {
		t.Fatalf("DiscoverAuthServer() error: %v", err)
	}
	if server != "https://auth.example.com" {
		t.Errorf("server = %q", server)
	}
}

// Copyright 2026 The atproto-go Authors
// SPDX-License-Identifier: Apache-2.0

package oauth

import (
	"context"
	"fmt"
	"net/http"
	"sync"

	"github.com/atproto-go/sdk/lib/atperror"
	"github.com/atproto-go/sdk/lib/netutil"
	"github.com/atproto-go/sdk/lib/xrpc"
)

// AuthServerMetadata is the subset of RFC 8414 authorization server
// metadata this package needs.
type AuthServerMetadata struct {
	Issuer                             string `json:"issuer"`
	AuthorizationEndpoint              string `json:"authorization_endpoint"`
	TokenEndpoint                      string `json:"token_endpoint"`
	PushedAuthorizationRequestEndpoint string `json:"pushed_authorization_request_endpoint"`
}

// AuthServerDiscovery fetches and memoizes authorization server
// metadata by issuer URL. Safe for concurrent use.
type AuthServerDiscovery struct {
	executor xrpc.Executor

	mu     sync.Mutex
	caches map[string]AuthServerMetadata
}

// NewAuthServerDiscovery returns a discovery cache using executor for
// metadata fetches.
func NewAuthServerDiscovery(executor xrpc.Executor) *AuthServerDiscovery {
	return &AuthServerDiscovery{executor: executor, caches: make(map[string]AuthServerMetadata)}
}

// Discover returns the cached metadata for issuer, fetching and
// validating it on the first call. The fetched issuer claim must
// equal issuer exactly; otherwise Discover fails with an OAuth
// invalid_issuer error.
func (d *AuthServerDiscovery) Discover(ctx context.Context, issuer string) (AuthServerMetadata, error) {
	d.mu.Lock()
	cached, ok := d.caches[issuer]
	d.mu.Unlock()
	if ok {
		return cached, nil
	}

	header := make(http.Header)
	header.Set("Accept", "application/json")
	resp, err := d.executor.Do(ctx, &xrpc.Request{
		Method: http.MethodGet,
		URL:    issuer + "/.well-known/oauth-authorization-server",
		Header: header,
	})
	if err != nil {
		return AuthServerMetadata{}, atperror.Wrap(atperror.KindOAuthError, "fetching authorization server metadata for "+issuer, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return AuthServerMetadata{}, atperror.New(atperror.KindOAuthError, fmt.Sprintf("authorization server metadata fetch for %s returned status %d", issuer, resp.StatusCode))
	}

	var metadata AuthServerMetadata
	if err := netutil.DecodeResponse(resp.Body, &metadata); err != nil {
		return AuthServerMetadata{}, atperror.Wrap(atperror.KindOAuthError, "decoding authorization server metadata", err)
	}
	if metadata.Issuer != issuer {
		return AuthServerMetadata{}, atperror.NewOAuthError("invalid_issuer", fmt.Sprintf("metadata issuer %q does not match requested issuer %q", metadata.Issuer, issuer), "")
	}

	d.mu.Lock()
	d.caches[issuer] = metadata
	d.mu.Unlock()
	return metadata, nil
}

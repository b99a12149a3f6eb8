// Copyright 2026 The atproto-go Authors
// SPDX-License-Identifier: Apache-2.0

package atidentity

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/atproto-go/sdk/lib/atid"
	"github.com/atproto-go/sdk/lib/atperror"
	"github.com/atproto-go/sdk/lib/netutil"
	"github.com/atproto-go/sdk/lib/xrpc"
)

// WebResolver resolves did:web DIDs by fetching a well-known document
// from the DID's encoded domain.
type WebResolver struct {
	executor xrpc.Executor
}

// NewWebResolver returns a did:web resolver using executor for the
// underlying HTTPS fetch.
func NewWebResolver(executor xrpc.Executor) *WebResolver {
	return &WebResolver{executor: executor}
}

// ResolveDID fetches the DID document for did, which must use the web
// method. The identifier is split on ":"; a bare domain resolves
// "https://<domain>/.well-known/did.json", and a domain with a path
// resolves "https://<domain>/<path>/did.json".
func (r *WebResolver) ResolveDID(ctx context.Context, did atid.DID) (*DIDDocument, error) {
	if did.MethodKind() != atid.MethodWeb {
		return nil, atperror.New(atperror.KindDIDResolutionFailed, "web resolver requires a did:web DID, got "+did.Method())
	}

	parts := strings.Split(did.Identifier(), ":")
	var url string
	if len(parts) == 1 {
		url = "https://" + parts[0] + "/.well-known/did.json"
	} else {
		url = "https://" + parts[0] + "/" + strings.Join(parts[1:], "/") + "/did.json"
	}

	header := make(http.Header)
	header.Set("Accept", "application/json")
	resp, err := r.executor.Do(ctx, &xrpc.Request{Method: http.MethodGet, URL: url, Header: header})
	if err != nil {
		return nil, atperror.Wrap(atperror.KindDIDResolutionFailed, "fetching did:web document for "+did.String(), err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, atperror.New(atperror.KindDIDResolutionFailed, "did:web document fetch returned status "+strconv.Itoa(resp.StatusCode))
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, netutil.MaxResponseSize))
	if err != nil {
		return nil, atperror.Wrap(atperror.KindDIDResolutionFailed, "reading did:web document", err)
	}
	var doc DIDDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, atperror.Wrap(atperror.KindDIDResolutionFailed, "decoding did:web document", err)
	}
	return &doc, nil
}

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

// PLCResolver resolves did:plc DIDs against a PLC directory service.
type PLCResolver struct {
	directoryURL string
	executor     xrpc.Executor
}

// NewPLCResolver returns a resolver that queries directoryURL (e.g.
// "https://plc.directory") via executor.
func NewPLCResolver(directoryURL string, executor xrpc.Executor) *PLCResolver {
	return &PLCResolver{directoryURL: strings.TrimSuffix(directoryURL, "/"), executor: executor}
}

// ResolveDID fetches the DID document for did, which must use the plc
// method.
func (r *PLCResolver) ResolveDID(ctx context.Context, did atid.DID) (*DIDDocument, error) {
	if did.MethodKind() != atid.MethodPLC {
		return nil, atperror.New(atperror.KindDIDResolutionFailed, "PLC resolver requires a did:plc DID, got "+did.Method())
	}

	header := make(http.Header)
	header.Set("Accept", "application/json")
	resp, err := r.executor.Do(ctx, &xrpc.Request{
		Method: http.MethodGet,
		URL:    r.directoryURL + "/" + did.String(),
		Header: header,
	})
	if err != nil {
		return nil, atperror.Wrap(atperror.KindDIDResolutionFailed, "fetching PLC document for "+did.String(), err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, atperror.New(atperror.KindDIDResolutionFailed, "PLC directory returned status "+strconv.Itoa(resp.StatusCode))
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, netutil.MaxResponseSize))
	if err != nil {
		return nil, atperror.Wrap(atperror.KindDIDResolutionFailed, "reading PLC document", err)
	}
	var doc DIDDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, atperror.Wrap(atperror.KindDIDResolutionFailed, "decoding PLC document", err)
	}
	return &doc, nil
}

// Copyright 2026 The atproto-go Authors
// SPDX-License-Identifier: Apache-2.0

package atidentity

import (
	"context"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/atproto-go/sdk/lib/atid"
	"github.com/atproto-go/sdk/lib/atperror"
	"github.com/atproto-go/sdk/lib/netutil"
	"github.com/atproto-go/sdk/lib/xrpc"
)

// HandleResolver resolves a Handle to a DID via the HTTP well-known
// endpoint. DNS-TXT resolution is not implemented — see SPEC_FULL.md's
// supplemented-features notes for why.
type HandleResolver struct {
	executor xrpc.Executor
}

// NewHandleResolver returns a resolver using executor for the
// underlying HTTPS fetch.
func NewHandleResolver(executor xrpc.Executor) *HandleResolver {
	return &HandleResolver{executor: executor}
}

// ResolveHandle fetches "https://<handle>/.well-known/atproto-did" and
// parses the trimmed response body as a DID.
func (r *HandleResolver) ResolveHandle(ctx context.Context, handle atid.Handle) (atid.DID, error) {
	header := make(http.Header)
	header.Set("Accept", "text/plain")
	resp, err := r.executor.Do(ctx, &xrpc.Request{
		Method: http.MethodGet,
		URL:    "https://" + handle.String() + "/.well-known/atproto-did",
		Header: header,
	})
	if err != nil {
		return atid.DID{}, atperror.Wrap(atperror.KindHandleResolutionFailed, "fetching atproto-did for "+handle.String(), err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return atid.DID{}, atperror.New(atperror.KindHandleResolutionFailed, "atproto-did fetch returned status "+strconv.Itoa(resp.StatusCode))
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, netutil.MaxResponseSize))
	if err != nil {
		return atid.DID{}, atperror.Wrap(atperror.KindHandleResolutionFailed, "reading atproto-did response", err)
	}

	did, err := atid.ParseDID(strings.TrimSpace(string(data)))
	if err != nil {
		return atid.DID{}, atperror.Wrap(atperror.KindHandleResolutionFailed, "atproto-did response is not a valid DID", err)
	}
	return did, nil
}

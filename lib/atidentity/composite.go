// Copyright 2026 The atproto-go Authors
// SPDX-License-Identifier: Apache-2.0

package atidentity

import (
	"context"

	"github.com/atproto-go/sdk/lib/atid"
	"github.com/atproto-go/sdk/lib/atperror"
)

// CompositeResolver dispatches ResolveDID by method: plc to PLC, web to
// Web. The key and other methods fail with an explicit
// "unsupported method" error rather than attempting resolution.
type CompositeResolver struct {
	plc *PLCResolver
	web *WebResolver
}

// NewCompositeResolver returns a resolver combining plc and web.
func NewCompositeResolver(plc *PLCResolver, web *WebResolver) *CompositeResolver {
	return &CompositeResolver{plc: plc, web: web}
}

func (r *CompositeResolver) ResolveDID(ctx context.Context, did atid.DID) (*DIDDocument, error) {
	switch did.MethodKind() {
	case atid.MethodPLC:
		return r.plc.ResolveDID(ctx, did)
	case atid.MethodWeb:
		return r.web.ResolveDID(ctx, did)
	default:
		return nil, atperror.New(atperror.KindDIDResolutionFailed, "unsupported method: "+did.Method())
	}
}

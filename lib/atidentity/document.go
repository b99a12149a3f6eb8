// Copyright 2026 The atproto-go Authors
// SPDX-License-Identifier: Apache-2.0

package atidentity

import (
	"context"

	"github.com/atproto-go/sdk/lib/atid"
)

// DIDDocument is the subset of a W3C DID document this module resolves:
// the DID itself, known handles, and service endpoints.
type DIDDocument struct {
	ID                 string               `json:"id"`
	AlsoKnownAs        []string             `json:"alsoKnownAs,omitempty"`
	VerificationMethod []VerificationMethod `json:"verificationMethod,omitempty"`
	Service            []ServiceEndpoint    `json:"service,omitempty"`
}

// VerificationMethod is a single entry in a DID document's
// verificationMethod array.
type VerificationMethod struct {
	ID                 string `json:"id"`
	Type               string `json:"type"`
	Controller         string `json:"controller"`
	PublicKeyMultibase string `json:"publicKeyMultibase,omitempty"`
}

// ServiceEndpoint is a single entry in a DID document's service array.
type ServiceEndpoint struct {
	ID              string `json:"id"`
	Type            string `json:"type"`
	ServiceEndpoint string `json:"serviceEndpoint"`
}

// DIDResolver resolves a DID to its document. Implemented by
// [PLCResolver], [WebResolver], and [CompositeResolver].
type DIDResolver interface {
	ResolveDID(ctx context.Context, did atid.DID) (*DIDDocument, error)
}

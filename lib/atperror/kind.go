// Copyright 2026 The atproto-go Authors
// SPDX-License-Identifier: Apache-2.0

package atperror

// Kind identifies which member of the error sum type an [Error] value
// represents. Branch on Kind, not on Go type or Error() text.
type Kind string

const (
	// Validation kinds.
	KindInvalidDID    Kind = "invalid-did"
	KindInvalidHandle Kind = "invalid-handle"
	KindInvalidNSID   Kind = "invalid-nsid"
	KindInvalidATURI  Kind = "invalid-at-uri"
	KindInvalidTID    Kind = "invalid-tid"

	// Transport kinds.
	KindNetworkError Kind = "network-error"
	KindTimeout      Kind = "timeout"
	KindInvalidURL   Kind = "invalid-url"

	// RPC kinds.
	KindXRPCError     Kind = "xrpc-error"
	KindInvalidResponse Kind = "invalid-response"
	KindDecodingError Kind = "decoding-error"
	KindEncodingError Kind = "encoding-error"

	// Auth kinds.
	KindUnauthorized      Kind = "unauthorized"
	KindTokenExpired      Kind = "token-expired"
	KindTokenRefreshFailed Kind = "token-refresh-failed"
	KindOAuthError        Kind = "oauth-error"
	KindSessionRequired   Kind = "session-required"

	// Identity kinds.
	KindDIDResolutionFailed    Kind = "did-resolution-failed"
	KindHandleResolutionFailed Kind = "handle-resolution-failed"
	KindPDSNotFound            Kind = "pds-not-found"

	// Repository kinds.
	KindInvalidRecord    Kind = "invalid-record"
	KindRecordNotFound   Kind = "record-not-found"
	KindRepositoryError  Kind = "repository-error"
	KindMSTError         Kind = "mst-error"

	// Crypto kinds.
	KindCryptoError          Kind = "crypto-error"
	KindInvalidSignature     Kind = "invalid-signature"
	KindUnsupportedAlgorithm Kind = "unsupported-algorithm"

	// Stream kinds.
	KindConnectionClosed   Kind = "connection-closed"
	KindFrameDecodingError Kind = "frame-decoding-error"

	// Other.
	KindInternalError Kind = "internal-error"
)

// Copyright 2026 The atproto-go Authors
// SPDX-License-Identifier: Apache-2.0

package atperror

// Sentinel values for errors.Is comparisons against a specific kind,
// e.g. errors.Is(err, atperror.ErrTokenExpired). Only the Kind field
// is compared — see (*Error).Is.
var (
	ErrUnauthorized       = &Error{Kind: KindUnauthorized}
	ErrTokenExpired       = &Error{Kind: KindTokenExpired}
	ErrTokenRefreshFailed = &Error{Kind: KindTokenRefreshFailed}
	ErrSessionRequired    = &Error{Kind: KindSessionRequired}
	ErrRecordNotFound     = &Error{Kind: KindRecordNotFound}
	ErrInvalidSignature   = &Error{Kind: KindInvalidSignature}
	ErrConnectionClosed   = &Error{Kind: KindConnectionClosed}
)

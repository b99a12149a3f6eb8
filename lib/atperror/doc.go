// Copyright 2026 The atproto-go Authors
// SPDX-License-Identifier: Apache-2.0

// Package atperror provides the single error-kind taxonomy shared
// across this module: validation, transport, RPC, auth, identity,
// repository, crypto, and stream failures.
//
// Every failure surfaced across package boundaries is an *[Error]
// carrying a [Kind]. Callers branch on kind with [KindOf] or
// [errors.Is] against the package's Err* sentinels
// (e.g. errors.Is(err, atperror.ErrTokenExpired)), not on Go type
// assertions or string matching against Error(). Underlying causes
// (a wrapped transport error, a JSON decode error) are preserved via
// Unwrap and surfaced with the standard `%w` convention elsewhere in
// this module's non-exported error returns.
package atperror

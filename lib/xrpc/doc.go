// Copyright 2026 The atproto-go Authors
// SPDX-License-Identifier: Apache-2.0

// Package xrpc is a typed client for the AT Protocol's XRPC convention:
// query and procedure calls to a service's /xrpc/<nsid> endpoints, blob
// upload, and structured error mapping.
//
// [Client] wraps an [Executor] — by default a *http.Client-backed
// implementation, swappable via [NewForTesting] for a fake
// http.RoundTripper in tests, the same narrow transport-seam pattern
// used throughout this module's HTTP-facing clients.
package xrpc

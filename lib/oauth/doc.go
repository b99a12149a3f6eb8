// Copyright 2026 The atproto-go Authors
// SPDX-License-Identifier: Apache-2.0

// Package oauth implements the OAuth 2.1 authorization flow used to
// authenticate against a personal data server: Pushed Authorization
// Requests, PKCE (S256), DPoP-bound tokens with nonce retry, and
// refresh-token lifecycle management.
//
// DPoPManager mints a proof JWT for every authorization-server
// request. AuthServerDiscovery fetches and memoizes authorization
// server metadata. OAuthClient drives authorize/callback/refresh
// against that metadata. TokenManager owns the current token set and
// decides when it needs refreshing, optionally persisting it through
// a caller-supplied SecureStorage backend.
package oauth

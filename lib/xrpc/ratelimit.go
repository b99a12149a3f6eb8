// Copyright 2026 The atproto-go Authors
// SPDX-License-Identifier: Apache-2.0

package xrpc

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"golang.org/x/time/rate"
)

// RateLimit carries the rate-limit accounting an XRPC response
// reported via its ratelimit-* headers. Missing or unparsable values
// are nil.
type RateLimit struct {
	Limit     *int
	Remaining *int
	Reset     *time.Time
	Policy    *string
}

// parseRateLimit extracts rate-limit headers using a case-insensitive
// lookup (http.Header.Get already folds to canonical case, which
// handles case-insensitivity for standard header names).
func parseRateLimit(header http.Header) RateLimit {
	var rl RateLimit

	if v := header.Get("ratelimit-limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			rl.Limit = &n
		}
	}
	if v := header.Get("ratelimit-remaining"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			rl.Remaining = &n
		}
	}
	if v := header.Get("ratelimit-reset"); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			t := time.Unix(n, 0)
			rl.Reset = &t
		}
	}
	if v := header.Get("ratelimit-policy"); v != "" {
		rl.Policy = &v
	}

	return rl
}

// Wait blocks until the rate limit this RateLimit describes has
// replenished enough to make another request, using a token-bucket
// limiter derived from Reset/Remaining. A RateLimit with no Reset or
// Remaining information returns immediately.
func (rl RateLimit) Wait(ctx context.Context) error {
	if rl.Reset == nil || rl.Remaining == nil || *rl.Remaining > 0 {
		return nil
	}
	until := time.Until(*rl.Reset)
	if until <= 0 {
		return nil
	}
	limiter := rate.NewLimiter(rate.Every(until), 1)
	_ = limiter.Reserve() // consume the initial token so Wait blocks for `until`
	return limiter.Wait(ctx)
}

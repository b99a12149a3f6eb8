// Copyright 2026 The atproto-go Authors
// SPDX-License-Identifier: Apache-2.0

package xrpc

import (
	"net/http"
	"testing"
)

func TestParseRateLimit_CaseInsensitiveLookup(t *testing.T) {
	header := make(http.Header)
	header.Set("RateLimit-Limit", "100")
	header.Set("RateLimit-Remaining", "99")
	header.Set("RateLimit-Reset", "1700000000")
	header.Set("RateLimit-Policy", "100;w=3600")

	rl := parseRateLimit(header)
	if rl.Limit == nil || *rl.Limit != 100 {
		t.Errorf("Limit = %v, want 100", rl.Limit)
	}
	if rl.Remaining == nil || *rl.Remaining != 99 {
		t.Errorf("Remaining = %v, want 99", rl.Remaining)
	}
	if rl.Reset == nil || rl.Reset.Unix() != 1700000000 {
		t.Errorf("Reset = %v, want unix 1700000000", rl.Reset)
	}
	if rl.Policy == nil || *rl.Policy != "100;w=3600" {
		t.Errorf("Policy = %v, want 100;w=3600", rl.Policy)
	}
}

func TestParseRateLimit_MissingHeadersYieldNil(t *testing.T) {
	rl := parseRateLimit(make(http.Header))
	if rl.Limit != nil || rl.Remaining != nil || rl.Reset != nil || rl.Policy != nil {
		t.Errorf("parseRateLimit(empty) = %+v, want all nil", rl)
	}
}

func TestParseRateLimit_UnparsableValuesYieldNil(t *testing.T) {
	header := make(http.Header)
	header.Set("ratelimit-limit", "not-a-number")
	rl := parseRateLimit(header)
	if rl.Limit != nil {
		t.Errorf("Limit = %v, want nil for unparsable value", rl.Limit)
	}
}

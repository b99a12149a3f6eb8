// Copyright 2026 The atproto-go Authors
// SPDX-License-Identifier: Apache-2.0

package atperror

import (
	"errors"
	"fmt"
	"testing"
)

func TestError_IsMatchesByKindOnly(t *testing.T) {
	err := NewXRPCError(401, "ExpiredToken", "Token has expired")
	wrapped := fmt.Errorf("dispatch failed: %w", &Error{Kind: KindTokenExpired})

	if errors.Is(err, ErrTokenExpired) {
		t.Error("xrpc-error kind should not match token-expired sentinel")
	}
	if !errors.Is(wrapped, ErrTokenExpired) {
		t.Error("wrapped token-expired error should match sentinel via errors.Is")
	}
}

func TestKindOf(t *testing.T) {
	err := NewRecordNotFound("app.bsky.feed.post", "abc")
	kind, ok := KindOf(err)
	if !ok || kind != KindRecordNotFound {
		t.Fatalf("KindOf() = (%v, %v), want (%v, true)", kind, ok, KindRecordNotFound)
	}

	_, ok = KindOf(errors.New("plain error"))
	if ok {
		t.Error("KindOf(plain error) should report ok=false")
	}
}

func TestError_UnwrapPreservesCause(t *testing.T) {
	cause := errors.New("connection refused")
	err := Wrap(KindNetworkError, "dialing pds", cause)

	if !errors.Is(err, cause) {
		t.Error("Wrap() should preserve the underlying cause for errors.Is")
	}
}

func TestNewXRPCError_Message(t *testing.T) {
	err := NewXRPCError(429, "RateLimitExceeded", "Rate limit exceeded")
	got := err.Error()
	want := "xrpc error: status 429, RateLimitExceeded: Rate limit exceeded"
	if got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
}

func TestNewOAuthError_Message(t *testing.T) {
	err := NewOAuthError("invalid_issuer", "issuer mismatch", "")
	got := err.Error()
	want := "oauth error: invalid_issuer: issuer mismatch"
	if got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
}

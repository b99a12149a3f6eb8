// Copyright 2026 The atproto-go Authors
// SPDX-License-Identifier: Apache-2.0

package atid

import (
	"fmt"
	"strings"
)

// Handle is a validated, domain-style handle (e.g., "alice.bsky.social").
//
// Handles are case-normalized to lowercase on ingest; equality and hashing
// operate on the normalized form. Handle is an immutable value type. The
// zero value is not valid; use IsZero to check.
type Handle struct {
	normalized string
}

const (
	maxHandleLength  = 253
	maxHandleLabel   = 63
	minHandleLength  = 1
)

// ParseHandle validates and normalizes a raw handle string. Rules: 1-253
// characters total; at least two dot-separated labels; each label 1-63
// characters of ASCII letters, digits, or hyphens, never starting or
// ending with a hyphen; no empty labels; the top-level label must not be
// entirely digits.
func ParseHandle(raw string) (Handle, error) {
	if raw == "" {
		return Handle{}, fmt.Errorf("atid: handle is empty")
	}
	if len(raw) > maxHandleLength {
		return Handle{}, fmt.Errorf("atid: handle %q is %d characters, maximum is %d", raw, len(raw), maxHandleLength)
	}

	normalized := strings.ToLower(raw)
	labels := strings.Split(normalized, ".")
	if len(labels) < 2 {
		return Handle{}, fmt.Errorf("atid: handle %q must have at least two labels", raw)
	}

	for _, label := range labels {
		if err := validateHandleLabel(label); err != nil {
			return Handle{}, fmt.Errorf("atid: handle %q: %w", raw, err)
		}
	}

	tld := labels[len(labels)-1]
	if isAllDigits(tld) {
		return Handle{}, fmt.Errorf("atid: handle %q has an all-numeric top-level label %q", raw, tld)
	}

	return Handle{normalized: normalized}, nil
}

// MustParseHandle is like ParseHandle but panics on error. Use in tests
// and static initialization where the input is known-valid.
func MustParseHandle(raw string) Handle {
	h, err := ParseHandle(raw)
	if err != nil {
		panic(fmt.Sprintf("atid.MustParseHandle(%q): %v", raw, err))
	}
	return h
}

func validateHandleLabel(label string) error {
	if label == "" {
		return fmt.Errorf("contains an empty label")
	}
	if len(label) > maxHandleLabel {
		return fmt.Errorf("label %q is %d characters, maximum is %d", label, len(label), maxHandleLabel)
	}
	if label[0] == '-' || label[len(label)-1] == '-' {
		return fmt.Errorf("label %q must not start or end with a hyphen", label)
	}
	for i := 0; i < len(label); i++ {
		c := label[i]
		isLetter := (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
		isDigit := c >= '0' && c <= '9'
		if !isLetter && !isDigit && c != '-' {
			return fmt.Errorf("label %q contains invalid character %q", label, c)
		}
	}
	return nil
}

func isAllDigits(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

// Labels returns the dot-separated labels of the normalized handle.
func (h Handle) Labels() []string { return strings.Split(h.normalized, ".") }

// TLD returns the top-level (final) label.
func (h Handle) TLD() string {
	labels := h.Labels()
	return labels[len(labels)-1]
}

// String returns the normalized (lowercase) handle string.
func (h Handle) String() string { return h.normalized }

// Equal reports whether two handles have the same normalized form.
func (h Handle) Equal(other Handle) bool { return h.normalized == other.normalized }

// IsZero reports whether the Handle is the zero value (uninitialized).
func (h Handle) IsZero() bool { return h.normalized == "" }

// MarshalText implements encoding.TextMarshaler.
func (h Handle) MarshalText() ([]byte, error) {
	if h.normalized == "" {
		return []byte{}, nil
	}
	return []byte(h.normalized), nil
}

// UnmarshalText implements encoding.TextUnmarshaler. An empty input
// produces the zero value.
func (h *Handle) UnmarshalText(data []byte) error {
	if len(data) == 0 {
		*h = Handle{}
		return nil
	}
	parsed, err := ParseHandle(string(data))
	if err != nil {
		return err
	}
	*h = parsed
	return nil
}

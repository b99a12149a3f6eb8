// Copyright 2026 The atproto-go Authors
// SPDX-License-Identifier: Apache-2.0

package atid

import (
	"fmt"
	"strings"
)

const (
	maxNSIDLength        = 317
	maxNSIDSegmentLength = 63
)

// NSID is a validated Namespaced Identifier, a reverse-domain-notation
// name with at least three dot-separated segments (e.g.,
// "app.bsky.feed.post").
//
// NSID is an immutable value type. The zero value is not valid; use
// IsZero to check.
type NSID struct {
	raw string
}

// ParseNSID validates and wraps a raw NSID string. The authority segments
// (all but the last) must be 1-63 characters starting with a letter, with
// letters, digits, or hyphens afterward. The terminal name segment must
// be 1-63 characters starting with a letter, with only letters and digits
// afterward (no hyphens). The total length must not exceed 317 characters.
func ParseNSID(raw string) (NSID, error) {
	if len(raw) > maxNSIDLength {
		return NSID{}, fmt.Errorf("atid: NSID %q is %d characters, maximum is %d", raw, len(raw), maxNSIDLength)
	}

	segments := strings.Split(raw, ".")
	if len(segments) < 3 {
		return NSID{}, fmt.Errorf("atid: NSID %q must have at least three segments", raw)
	}

	for _, segment := range segments[:len(segments)-1] {
		if err := validateNSIDAuthoritySegment(segment); err != nil {
			return NSID{}, fmt.Errorf("atid: NSID %q: %w", raw, err)
		}
	}

	name := segments[len(segments)-1]
	if err := validateNSIDNameSegment(name); err != nil {
		return NSID{}, fmt.Errorf("atid: NSID %q: %w", raw, err)
	}

	return NSID{raw: raw}, nil
}

// MustParseNSID is like ParseNSID but panics on error. Use in tests and
// static initialization where the input is known-valid.
func MustParseNSID(raw string) NSID {
	n, err := ParseNSID(raw)
	if err != nil {
		panic(fmt.Sprintf("atid.MustParseNSID(%q): %v", raw, err))
	}
	return n
}

func validateNSIDAuthoritySegment(segment string) error {
	if segment == "" {
		return fmt.Errorf("contains an empty segment")
	}
	if len(segment) > maxNSIDSegmentLength {
		return fmt.Errorf("segment %q is %d characters, maximum is %d", segment, len(segment), maxNSIDSegmentLength)
	}
	if !isASCIILetter(segment[0]) {
		return fmt.Errorf("segment %q must start with a letter", segment)
	}
	for i := 1; i < len(segment); i++ {
		c := segment[i]
		if !isASCIILetter(c) && !isASCIIDigit(c) && c != '-' {
			return fmt.Errorf("segment %q contains invalid character %q", segment, c)
		}
	}
	return nil
}

func validateNSIDNameSegment(segment string) error {
	if segment == "" {
		return fmt.Errorf("terminal name segment is empty")
	}
	if len(segment) > maxNSIDSegmentLength {
		return fmt.Errorf("name segment %q is %d characters, maximum is %d", segment, len(segment), maxNSIDSegmentLength)
	}
	if !isASCIILetter(segment[0]) {
		return fmt.Errorf("name segment %q must start with a letter", segment)
	}
	for i := 1; i < len(segment); i++ {
		c := segment[i]
		if !isASCIILetter(c) && !isASCIIDigit(c) {
			return fmt.Errorf("name segment %q must contain only letters and digits, found %q", segment, c)
		}
	}
	return nil
}

func isASCIILetter(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isASCIIDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

// Authority returns the dot-separated authority segments (all segments
// but the last), in the order they appear (e.g., for "app.bsky.feed.post"
// this returns ["app", "bsky", "feed"]).
func (n NSID) Authority() []string {
	segments := strings.Split(n.raw, ".")
	return segments[:len(segments)-1]
}

// Name returns the terminal name segment (e.g., "post" for
// "app.bsky.feed.post").
func (n NSID) Name() string {
	segments := strings.Split(n.raw, ".")
	return segments[len(segments)-1]
}

// String returns the full NSID string.
func (n NSID) String() string { return n.raw }

// IsZero reports whether the NSID is the zero value (uninitialized).
func (n NSID) IsZero() bool { return n.raw == "" }

// MarshalText implements encoding.TextMarshaler.
func (n NSID) MarshalText() ([]byte, error) {
	if n.raw == "" {
		return []byte{}, nil
	}
	return []byte(n.raw), nil
}

// UnmarshalText implements encoding.TextUnmarshaler. An empty input
// produces the zero value.
func (n *NSID) UnmarshalText(data []byte) error {
	if len(data) == 0 {
		*n = NSID{}
		return nil
	}
	parsed, err := ParseNSID(string(data))
	if err != nil {
		return err
	}
	*n = parsed
	return nil
}

// Copyright 2026 The atproto-go Authors
// SPDX-License-Identifier: Apache-2.0

package atid

import (
	"fmt"
	"strings"
)

// MethodKind classifies a DID's method into the small set the core cares
// about. Unknown methods tag as MethodOther rather than failing to parse —
// the DID itself is still structurally valid.
type MethodKind int

const (
	MethodPLC MethodKind = iota
	MethodWeb
	MethodKey
	MethodOther
)

// String returns the method kind's name, matching the literal method
// string for the three known kinds.
func (k MethodKind) String() string {
	switch k {
	case MethodPLC:
		return "plc"
	case MethodWeb:
		return "web"
	case MethodKey:
		return "key"
	default:
		return "other"
	}
}

// DID is a validated Decentralized Identifier of the form
// "did:<method>:<identifier>".
//
// DID is an immutable value type. The zero value is not valid; use IsZero
// to check.
type DID struct {
	raw        string
	method     string
	identifier string
}

// ParseDID validates and wraps a raw DID string. Returns an error if the
// string does not start with "did:", has an empty method, or has an empty
// identifier. The identifier is the substring after the second colon and
// may itself contain colons (taken literally, as did:web requires).
func ParseDID(raw string) (DID, error) {
	const prefix = "did:"
	if !strings.HasPrefix(raw, prefix) {
		return DID{}, fmt.Errorf("atid: DID %q must start with %q", raw, prefix)
	}

	rest := raw[len(prefix):]
	colon := strings.IndexByte(rest, ':')
	if colon < 0 {
		return DID{}, fmt.Errorf("atid: DID %q missing method separator", raw)
	}

	method := rest[:colon]
	identifier := rest[colon+1:]

	if method == "" {
		return DID{}, fmt.Errorf("atid: DID %q has empty method", raw)
	}
	if !isLowerAlphanumeric(method) {
		return DID{}, fmt.Errorf("atid: DID %q method %q must be lowercase alphanumeric", raw, method)
	}
	if identifier == "" {
		return DID{}, fmt.Errorf("atid: DID %q has empty identifier", raw)
	}

	return DID{raw: raw, method: method, identifier: identifier}, nil
}

// MustParseDID is like ParseDID but panics on error. Use in tests and
// static initialization where the input is known-valid.
func MustParseDID(raw string) DID {
	d, err := ParseDID(raw)
	if err != nil {
		panic(fmt.Sprintf("atid.MustParseDID(%q): %v", raw, err))
	}
	return d
}

func isLowerAlphanumeric(s string) bool {
	for i := 0; i < len(s); i++ {
		c := s[i]
		if !(c >= 'a' && c <= 'z') && !(c >= '0' && c <= '9') {
			return false
		}
	}
	return true
}

// Method returns the DID's method string (e.g., "plc", "web").
func (d DID) Method() string { return d.method }

// MethodKind classifies the method into the known kinds, tagging anything
// not recognized as MethodOther.
func (d DID) MethodKind() MethodKind {
	switch d.method {
	case "plc":
		return MethodPLC
	case "web":
		return MethodWeb
	case "key":
		return MethodKey
	default:
		return MethodOther
	}
}

// Identifier returns the method-specific identifier portion (everything
// after the second colon, which may itself contain colons).
func (d DID) Identifier() string { return d.identifier }

// String returns the full DID string (e.g., "did:plc:z72i7hdynmk6r22z27h6tvur").
func (d DID) String() string { return d.raw }

// IsZero reports whether the DID is the zero value (uninitialized).
func (d DID) IsZero() bool { return d.raw == "" }

// MarshalText implements encoding.TextMarshaler.
func (d DID) MarshalText() ([]byte, error) {
	if d.raw == "" {
		return []byte{}, nil
	}
	return []byte(d.raw), nil
}

// UnmarshalText implements encoding.TextUnmarshaler. An empty input
// produces the zero value.
func (d *DID) UnmarshalText(data []byte) error {
	if len(data) == 0 {
		*d = DID{}
		return nil
	}
	parsed, err := ParseDID(string(data))
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

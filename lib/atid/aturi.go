// Copyright 2026 The atproto-go Authors
// SPDX-License-Identifier: Apache-2.0

package atid

import (
	"fmt"
	"strings"
)

// AuthorityKind tags which concrete identifier kind an AT-URI's authority
// holds. A closed two-way union, not a type hierarchy.
type AuthorityKind int

const (
	AuthorityDID AuthorityKind = iota
	AuthorityHandle
)

// ATURI is a validated AT Protocol URI of the form
// "at://<authority>[/<nsid>[/<rkey>]]".
//
// ATURI is an immutable value type. The zero value is not valid; use
// IsZero to check.
type ATURI struct {
	raw           string
	authorityKind AuthorityKind
	did           DID
	handle        Handle
	collection    *NSID
	rkey          string
}

// ParseATURI validates and wraps a raw AT-URI string. The authority must
// parse as either a DID or a Handle. When present, the collection segment
// must parse as a valid NSID; the record key, when present, must be a
// non-empty opaque string.
func ParseATURI(raw string) (ATURI, error) {
	const prefix = "at://"
	if !strings.HasPrefix(raw, prefix) {
		return ATURI{}, fmt.Errorf("atid: AT-URI %q must start with %q", raw, prefix)
	}

	rest := raw[len(prefix):]
	if rest == "" {
		return ATURI{}, fmt.Errorf("atid: AT-URI %q has no authority", raw)
	}

	var authority, path string
	if slash := strings.IndexByte(rest, '/'); slash >= 0 {
		authority, path = rest[:slash], rest[slash+1:]
	} else {
		authority = rest
	}
	if authority == "" {
		return ATURI{}, fmt.Errorf("atid: AT-URI %q has an empty authority", raw)
	}

	result := ATURI{raw: raw}
	if did, err := ParseDID(authority); err == nil {
		result.authorityKind = AuthorityDID
		result.did = did
	} else if handle, err := ParseHandle(authority); err == nil {
		result.authorityKind = AuthorityHandle
		result.handle = handle
	} else {
		return ATURI{}, fmt.Errorf("atid: AT-URI %q authority %q is neither a valid DID nor a valid handle", raw, authority)
	}

	if path == "" {
		return result, nil
	}

	var collectionStr, rkey string
	if slash := strings.IndexByte(path, '/'); slash >= 0 {
		collectionStr, rkey = path[:slash], path[slash+1:]
	} else {
		collectionStr = path
	}

	collection, err := ParseNSID(collectionStr)
	if err != nil {
		return ATURI{}, fmt.Errorf("atid: AT-URI %q collection: %w", raw, err)
	}
	result.collection = &collection

	if rkey != "" {
		result.rkey = rkey
	}

	return result, nil
}

// MustParseATURI is like ParseATURI but panics on error. Use in tests and
// static initialization where the input is known-valid.
func MustParseATURI(raw string) ATURI {
	a, err := ParseATURI(raw)
	if err != nil {
		panic(fmt.Sprintf("atid.MustParseATURI(%q): %v", raw, err))
	}
	return a
}

// NewATURI constructs an AT-URI from its parts, mirroring ParseATURI's
// round-trip contract: NewATURI(authority, collection, rkey).String()
// parses back to an equal value.
func NewATURI(did DID, collection *NSID, rkey string) ATURI {
	var builder strings.Builder
	builder.WriteString("at://")
	builder.WriteString(did.String())
	if collection != nil {
		builder.WriteByte('/')
		builder.WriteString(collection.String())
		if rkey != "" {
			builder.WriteByte('/')
			builder.WriteString(rkey)
		}
	}
	raw := builder.String()
	return ATURI{
		raw:           raw,
		authorityKind: AuthorityDID,
		did:           did,
		collection:    collection,
		rkey:          rkey,
	}
}

// AuthorityKind reports whether the authority is a DID or a Handle.
func (a ATURI) AuthorityKind() AuthorityKind { return a.authorityKind }

// AuthorityDID returns the DID authority. Only meaningful when
// AuthorityKind() == AuthorityDID.
func (a ATURI) AuthorityDID() DID { return a.did }

// AuthorityHandle returns the Handle authority. Only meaningful when
// AuthorityKind() == AuthorityHandle.
func (a ATURI) AuthorityHandle() Handle { return a.handle }

// Authority returns the authority segment as it was written.
func (a ATURI) Authority() string {
	if a.authorityKind == AuthorityDID {
		return a.did.String()
	}
	return a.handle.String()
}

// Collection returns the collection NSID, or nil if absent.
func (a ATURI) Collection() *NSID { return a.collection }

// RKey returns the record key, or "" if absent.
func (a ATURI) RKey() string { return a.rkey }

// String returns the full AT-URI string.
func (a ATURI) String() string { return a.raw }

// IsZero reports whether the ATURI is the zero value (uninitialized).
func (a ATURI) IsZero() bool { return a.raw == "" }

// MarshalText implements encoding.TextMarshaler.
func (a ATURI) MarshalText() ([]byte, error) {
	if a.raw == "" {
		return []byte{}, nil
	}
	return []byte(a.raw), nil
}

// UnmarshalText implements encoding.TextUnmarshaler. An empty input
// produces the zero value.
func (a *ATURI) UnmarshalText(data []byte) error {
	if len(data) == 0 {
		*a = ATURI{}
		return nil
	}
	parsed, err := ParseATURI(string(data))
	if err != nil {
		return err
	}
	*a = parsed
	return nil
}

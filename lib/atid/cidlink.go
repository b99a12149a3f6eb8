// Copyright 2026 The atproto-go Authors
// SPDX-License-Identifier: Apache-2.0

package atid

import (
	"encoding/json"
	"fmt"
)

// CIDLink is a content-address reference. In JSON it serializes as the
// single-field map {"$link": "<cid>"}; decoding also accepts a bare
// string for compatibility with producers that skip the envelope.
//
// This package does not validate CID structure beyond non-emptiness —
// content-address validation is out of scope for the core.
type CIDLink struct {
	cid string
}

// NewCIDLink wraps a CID string. Returns an error if the string is empty.
func NewCIDLink(cid string) (CIDLink, error) {
	if cid == "" {
		return CIDLink{}, fmt.Errorf("atid: CIDLink value is empty")
	}
	return CIDLink{cid: cid}, nil
}

// String returns the bare CID string.
func (c CIDLink) String() string { return c.cid }

// IsZero reports whether the CIDLink is the zero value (uninitialized).
func (c CIDLink) IsZero() bool { return c.cid == "" }

type cidLinkWire struct {
	Link string `json:"$link"`
}

// MarshalJSON emits the structured {"$link": "..."} envelope.
func (c CIDLink) MarshalJSON() ([]byte, error) {
	return json.Marshal(cidLinkWire{Link: c.cid})
}

// UnmarshalJSON accepts either the {"$link": "..."} envelope or a bare
// JSON string.
func (c *CIDLink) UnmarshalJSON(data []byte) error {
	var bare string
	if err := json.Unmarshal(data, &bare); err == nil {
		if bare == "" {
			return fmt.Errorf("atid: CIDLink value is empty")
		}
		*c = CIDLink{cid: bare}
		return nil
	}

	var wire cidLinkWire
	if err := json.Unmarshal(data, &wire); err != nil {
		return fmt.Errorf("atid: decoding CIDLink: %w", err)
	}
	if wire.Link == "" {
		return fmt.Errorf("atid: CIDLink value is empty")
	}
	*c = CIDLink{cid: wire.Link}
	return nil
}

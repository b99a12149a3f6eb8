// Copyright 2026 The atproto-go Authors
// SPDX-License-Identifier: Apache-2.0

package atid

import (
	"encoding/json"
	"fmt"
)

// BlobRef references an uploaded blob by content address, MIME type, and
// size.
type BlobRef struct {
	Ref      CIDLink
	MimeType string
	Size     int64
}

type blobRefWire struct {
	Type     string  `json:"$type,omitempty"`
	Ref      CIDLink `json:"ref"`
	MimeType string  `json:"mimeType"`
	Size     int64   `json:"size"`
}

// MarshalJSON always emits "$type":"blob", per the wire contract.
func (b BlobRef) MarshalJSON() ([]byte, error) {
	return json.Marshal(blobRefWire{
		Type:     "blob",
		Ref:      b.Ref,
		MimeType: b.MimeType,
		Size:     b.Size,
	})
}

// UnmarshalJSON decodes a BlobRef. The "$type" field may be omitted; if
// present, it must be exactly "blob" or decoding fails.
func (b *BlobRef) UnmarshalJSON(data []byte) error {
	var wire blobRefWire
	if err := json.Unmarshal(data, &wire); err != nil {
		return fmt.Errorf("atid: decoding BlobRef: %w", err)
	}
	if wire.Type != "" && wire.Type != "blob" {
		return fmt.Errorf("atid: BlobRef has unexpected $type %q, want %q", wire.Type, "blob")
	}
	*b = BlobRef{Ref: wire.Ref, MimeType: wire.MimeType, Size: wire.Size}
	return nil
}

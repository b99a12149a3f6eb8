// Copyright 2026 The atproto-go Authors
// SPDX-License-Identifier: Apache-2.0

package atid

import (
	"fmt"

	"github.com/atproto-go/sdk/lib/clock"
)

// tidAlphabet is the sortable base32 alphabet used by TID encoding. Its
// character order matches ASCII order, which is what makes string
// lexicographic order equal packed numeric order.
const tidAlphabet = "234567abcdefghijklmnopqrstuvwxyz"

// tidLength is the fixed length of every encoded TID.
const tidLength = 13

var tidDecodeTable [256]int8

func init() {
	for i := range tidDecodeTable {
		tidDecodeTable[i] = -1
	}
	for i := 0; i < len(tidAlphabet); i++ {
		tidDecodeTable[tidAlphabet[i]] = int8(i)
	}
}

// TID is a validated 13-character timestamp identifier. It encodes a
// 64-bit value packed as (timestamp_us << 10) | (clock_id & 0x3FF); its
// string form sorts identically to its packed numeric form.
//
// TID is an immutable value type. The zero value is not valid; use
// IsZero to check.
type TID struct {
	raw    string
	packed uint64
}

// ParseTID validates and decodes a raw TID string. Returns an error
// unless the string is exactly 13 characters, every character is in the
// sortable base32 alphabet, and the first character's index is less than
// 16 (so the packed value's high bit is zero).
func ParseTID(raw string) (TID, error) {
	if len(raw) != tidLength {
		return TID{}, fmt.Errorf("atid: TID %q must be %d characters, got %d", raw, tidLength, len(raw))
	}

	var packed uint64
	for i := 0; i < tidLength; i++ {
		value := tidDecodeTable[raw[i]]
		if value < 0 {
			return TID{}, fmt.Errorf("atid: TID %q contains invalid character %q at position %d", raw, raw[i], i)
		}
		if i == 0 && value >= 16 {
			return TID{}, fmt.Errorf("atid: TID %q has an out-of-range first character (index %d, must be < 16)", raw, value)
		}
		packed = (packed << 5) | uint64(value)
	}

	return TID{raw: raw, packed: packed}, nil
}

// MustParseTID is like ParseTID but panics on error. Use in tests and
// static initialization where the input is known-valid.
func MustParseTID(raw string) TID {
	t, err := ParseTID(raw)
	if err != nil {
		panic(fmt.Sprintf("atid.MustParseTID(%q): %v", raw, err))
	}
	return t
}

// NewTID constructs a TID from a microsecond timestamp and a clock ID.
// clockID is masked to its low 10 bits, matching the protocol's packing
// rule; callers do not need to pre-mask it.
func NewTID(timestampUS int64, clockID uint16) TID {
	packed := (uint64(timestampUS) << 10) | uint64(clockID&0x3FF)
	return tidFromPacked(packed)
}

// NowTID constructs a TID using the given clock's current time (converted
// to microseconds since the Unix epoch) and the given clock ID.
func NowTID(c clock.Clock, clockID uint16) TID {
	return NewTID(c.Now().UnixMicro(), clockID)
}

func tidFromPacked(packed uint64) TID {
	original := packed
	buf := make([]byte, tidLength)
	for i := tidLength - 1; i >= 0; i-- {
		buf[i] = tidAlphabet[packed&0x1F]
		packed >>= 5
	}
	return TID{raw: string(buf), packed: original}
}

// Packed returns the 64-bit packed representation.
func (t TID) Packed() uint64 { return t.packed }

// Timestamp returns the microsecond timestamp component.
func (t TID) Timestamp() int64 { return int64(t.packed >> 10) }

// ClockID returns the 10-bit clock ID component.
func (t TID) ClockID() uint16 { return uint16(t.packed & 0x3FF) }

// String returns the 13-character encoded TID.
func (t TID) String() string { return t.raw }

// IsZero reports whether the TID is the zero value (uninitialized).
func (t TID) IsZero() bool { return t.raw == "" }

// Less reports whether t sorts before other, by string (equivalently,
// packed numeric) order.
func (t TID) Less(other TID) bool { return t.raw < other.raw }

// MarshalText implements encoding.TextMarshaler.
func (t TID) MarshalText() ([]byte, error) {
	if t.raw == "" {
		return []byte{}, nil
	}
	return []byte(t.raw), nil
}

// UnmarshalText implements encoding.TextUnmarshaler. An empty input
// produces the zero value.
func (t *TID) UnmarshalText(data []byte) error {
	if len(data) == 0 {
		*t = TID{}
		return nil
	}
	parsed, err := ParseTID(string(data))
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

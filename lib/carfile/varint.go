// Copyright 2026 The atproto-go Authors
// SPDX-License-Identifier: Apache-2.0

package carfile

import (
	"fmt"
	"io"
)

// writeVarint writes value as an unsigned LEB128 varint.
func writeVarint(w io.Writer, value uint64) error {
	var buf [10]byte
	n := 0
	for {
		b := byte(value & 0x7f)
		value >>= 7
		if value != 0 {
			b |= 0x80
		}
		buf[n] = b
		n++
		if value == 0 {
			break
		}
	}
	_, err := w.Write(buf[:n])
	return err
}

// readVarint reads an unsigned LEB128 varint from r.
func readVarint(r io.ByteReader) (uint64, error) {
	var result uint64
	var shift uint
	for {
		b, err := r.ReadByte()
		if err != nil {
			return 0, err
		}
		result |= uint64(b&0x7f) << shift
		if b&0x80 == 0 {
			return result, nil
		}
		shift += 7
		if shift >= 64 {
			return 0, fmt.Errorf("carfile: varint overflows 64 bits")
		}
	}
}

// Copyright 2026 The atproto-go Authors
// SPDX-License-Identifier: Apache-2.0

package carfile

import (
	"bytes"
	"strings"
	"testing"
)

func TestWriteEmptyRoots(t *testing.T) {
	var buf bytes.Buffer
	car := &CARFile{Blocks: map[string][]byte{}}
	if err := Write(&buf, car); err != nil {
		t.Fatalf("Write: %v", err)
	}

	out := buf.Bytes()
	if len(out) == 0 || out[0] != 0x11 {
		t.Fatalf("expected first byte 0x11, got %#x", out[0])
	}
	if len(out) != 18 {
		t.Fatalf("expected 18 bytes (1 varint + 17 header), got %d", len(out))
	}
	if !bytes.Equal(out[1:], canonicalEmptyRootsHeader) {
		t.Fatalf("header mismatch: got %x, want %x", out[1:], canonicalEmptyRootsHeader)
	}
}

func TestWriteReadRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	car := &CARFile{Blocks: map[string][]byte{}}
	if err := Write(&buf, car); err != nil {
		t.Fatalf("Write: %v", err)
	}

	got, err := Read(&buf)
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if len(got.Blocks) != 0 {
		t.Fatalf("expected 0 blocks, got %d", len(got.Blocks))
	}
	if !bytes.Equal(got.Header, canonicalEmptyRootsHeader) {
		t.Fatalf("header mismatch: got %x, want %x", got.Header, canonicalEmptyRootsHeader)
	}
}

func TestWriteReadBlocks(t *testing.T) {
	car := &CARFile{
		Blocks: map[string][]byte{
			"b": []byte("second block payload"),
			"a": []byte("first block payload"),
			"c": []byte("third"),
		},
	}

	var buf bytes.Buffer
	if err := Write(&buf, car); err != nil {
		t.Fatalf("Write: %v", err)
	}

	got, err := Read(&buf)
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if len(got.Blocks) != 3 {
		t.Fatalf("expected 3 blocks, got %d", len(got.Blocks))
	}

	want := []string{"first block payload", "second block payload", "third"}
	for i, w := range want {
		key := "block-" + string(rune('0'+i))
		data, ok := got.Blocks[key]
		if !ok {
			t.Fatalf("missing %s", key)
		}
		if string(data) != w {
			t.Fatalf("block %d: got %q, want %q (ascending key order not preserved)", i, data, w)
		}
	}
}

func TestReadRejectsTooSmall(t *testing.T) {
	_, err := Read(bytes.NewReader([]byte{0x01}))
	if err == nil {
		t.Fatal("expected error for 1-byte input")
	}
	if !strings.Contains(err.Error(), "too small") {
		t.Fatalf("expected 'too small' in error, got %v", err)
	}

	_, err = Read(bytes.NewReader(nil))
	if err == nil {
		t.Fatal("expected error for empty input")
	}
	if !strings.Contains(err.Error(), "too small") {
		t.Fatalf("expected 'too small' in error, got %v", err)
	}
}

func TestVarintRoundTrip(t *testing.T) {
	values := []uint64{0, 1, 127, 128, 300, 16384, 1 << 32, 1<<64 - 1}
	for _, v := range values {
		var buf bytes.Buffer
		if err := writeVarint(&buf, v); err != nil {
			t.Fatalf("writeVarint(%d): %v", v, err)
		}
		got, err := readVarint(&buf)
		if err != nil {
			t.Fatalf("readVarint(%d): %v", v, err)
		}
		if got != v {
			t.Fatalf("roundtrip mismatch: got %d, want %d", got, v)
		}
	}
}

func TestVarintOverflow(t *testing.T) {
	overflow := []byte{0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff}
	_, err := readVarint(bytes.NewReader(overflow))
	if err == nil {
		t.Fatal("expected overflow error")
	}
}

// Copyright 2026 The atproto-go Authors
// SPDX-License-Identifier: Apache-2.0

package atcrypto

import (
	"bytes"
	"testing"
)

func TestBase64URLEncode_Empty(t *testing.T) {
	if got := Base64URLEncode(nil); got != "" {
		t.Errorf("Base64URLEncode(nil) = %q, want empty string", got)
	}
}

func TestBase64URLEncode_NoPaddingNoReservedChars(t *testing.T) {
	data := bytes.Repeat([]byte{0xfb, 0xff}, 10)
	got := Base64URLEncode(data)
	if bytes.ContainsAny([]byte(got), "+/=") {
		t.Errorf("Base64URLEncode(%x) = %q, contains reserved base64 characters", data, got)
	}
}

func TestBase64URLEncodeDecode_RoundTrip(t *testing.T) {
	cases := [][]byte{
		{},
		{0x00},
		{0x00, 0x01},
		{0x00, 0x01, 0x02},
		bytes.Repeat([]byte{0xde, 0xad, 0xbe, 0xef}, 8),
	}
	for _, data := range cases {
		encoded := Base64URLEncode(data)
		decoded, err := Base64URLDecode(encoded)
		if err != nil {
			t.Fatalf("Base64URLDecode(%q) error: %v", encoded, err)
		}
		if !bytes.Equal(decoded, data) && !(len(decoded) == 0 && len(data) == 0) {
			t.Errorf("round trip mismatch: got %x, want %x", decoded, data)
		}
	}
}

func TestBase64URLDecode_Invalid(t *testing.T) {
	if _, err := Base64URLDecode("not valid base64url!!"); err == nil {
		t.Error("Base64URLDecode(invalid) should return error")
	}
}

// Copyright 2026 The atproto-go Authors
// SPDX-License-Identifier: Apache-2.0

package atcrypto

import (
	"encoding/base64"
	"fmt"
)

// Base64URLEncode encodes data as unpadded base64url (RFC 4648 §5).
// Empty input encodes to the empty string.
func Base64URLEncode(data []byte) string {
	return base64.RawURLEncoding.EncodeToString(data)
}

// Base64URLDecode decodes unpadded base64url text. Input that carries
// "=" padding is rejected.
func Base64URLDecode(text string) ([]byte, error) {
	data, err := base64.RawURLEncoding.DecodeString(text)
	if err != nil {
		return nil, fmt.Errorf("atcrypto: decoding base64url: %w", err)
	}
	return data, nil
}

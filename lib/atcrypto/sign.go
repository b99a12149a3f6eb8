// Copyright 2026 The atproto-go Authors
// SPDX-License-Identifier: Apache-2.0

package atcrypto

import (
	"crypto/ecdsa"
	"crypto/rand"
	"crypto/sha256"
	"fmt"
)

// Sign signs data with priv, returning a DER-encoded ECDSA signature
// over the SHA-256 digest of data.
func Sign(data []byte, priv *PrivateKey) ([]byte, error) {
	key, err := priv.ecdsaKey()
	if err != nil {
		return nil, fmt.Errorf("atcrypto: sign: %w", err)
	}
	digest := sha256.Sum256(data)
	sig, err := ecdsa.SignASN1(rand.Reader, key, digest[:])
	if err != nil {
		return nil, fmt.Errorf("atcrypto: sign: %w", err)
	}
	return sig, nil
}

// Verify reports whether sig is a valid DER-encoded ECDSA signature
// over the SHA-256 digest of data under pub.
func Verify(sig []byte, data []byte, pub PublicKey) (bool, error) {
	key, err := pub.ecdsaKey()
	if err != nil {
		return false, fmt.Errorf("atcrypto: verify: %w", err)
	}
	digest := sha256.Sum256(data)
	return ecdsa.VerifyASN1(key, digest[:], sig), nil
}

// SHA256 returns the SHA-256 digest of data.
func SHA256(data []byte) [32]byte {
	return sha256.Sum256(data)
}

// GenerateRandomBytes returns n cryptographically random bytes.
func GenerateRandomBytes(n int) ([]byte, error) {
	buf := make([]byte, n)
	if _, err := rand.Read(buf); err != nil {
		return nil, fmt.Errorf("atcrypto: generating random bytes: %w", err)
	}
	return buf, nil
}

// Copyright 2026 The atproto-go Authors
// SPDX-License-Identifier: Apache-2.0

package atcrypto

import (
	"crypto/sha256"
	"fmt"
)

// JWK is a JSON Web Key for a P-256 (ES256) key, public or private.
type JWK struct {
	Kty string `json:"kty"`
	Crv string `json:"crv"`
	X   string `json:"x"`
	Y   string `json:"y"`
	D   string `json:"d,omitempty"`
	Alg string `json:"alg,omitempty"`
}

const coordinateLength = 32

// NewJWKFromPublicKey builds a public-only JWK (no "d", no "alg").
func NewJWKFromPublicKey(pub PublicKey) (JWK, error) {
	uncompressed, err := pub.uncompressed()
	if err != nil {
		return JWK{}, fmt.Errorf("atcrypto: jwk from public key: %w", err)
	}
	// 0x04 || X(32) || Y(32)
	x := uncompressed[1 : 1+coordinateLength]
	y := uncompressed[1+coordinateLength : 1+2*coordinateLength]
	return JWK{
		Kty: "EC",
		Crv: "P-256",
		X:   Base64URLEncode(x),
		Y:   Base64URLEncode(y),
	}, nil
}

// NewJWKFromPrivateKey builds a JWK including the private scalar "d"
// and alg="ES256".
func NewJWKFromPrivateKey(priv *PrivateKey) (JWK, error) {
	pub, err := priv.PublicKey()
	if err != nil {
		return JWK{}, fmt.Errorf("atcrypto: jwk from private key: %w", err)
	}
	jwk, err := NewJWKFromPublicKey(pub)
	if err != nil {
		return JWK{}, err
	}
	jwk.D = Base64URLEncode(priv.Bytes())
	jwk.Alg = "ES256"
	return jwk, nil
}

// Thumbprint computes the RFC 7638 JWK thumbprint: the base64url
// encoding of the SHA-256 digest of the JWK's required members
// serialized with lexicographically sorted keys and no whitespace.
func (j JWK) Thumbprint() (string, error) {
	if j.Kty != "EC" {
		return "", fmt.Errorf("atcrypto: thumbprint: unsupported kty %q", j.Kty)
	}
	if j.Crv == "" || j.X == "" || j.Y == "" {
		return "", fmt.Errorf("atcrypto: thumbprint: missing crv/x/y")
	}
	canonical := fmt.Sprintf(`{"crv":%q,"kty":%q,"x":%q,"y":%q}`, j.Crv, j.Kty, j.X, j.Y)
	digest := sha256.Sum256([]byte(canonical))
	return Base64URLEncode(digest[:]), nil
}

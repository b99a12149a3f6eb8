// Copyright 2026 The atproto-go Authors
// SPDX-License-Identifier: Apache-2.0

package atcrypto

import "testing"

func TestNewJWKFromPrivateKey(t *testing.T) {
	_, priv, err := GenerateP256Keypair()
	if err != nil {
		t.Fatalf("GenerateP256Keypair() error: %v", err)
	}
	defer priv.Close()

	jwk, err := NewJWKFromPrivateKey(priv)
	if err != nil {
		t.Fatalf("NewJWKFromPrivateKey() error: %v", err)
	}
	if jwk.Kty != "EC" || jwk.Crv != "P-256" || jwk.Alg != "ES256" {
		t.Errorf("jwk = %+v, want kty=EC crv=P-256 alg=ES256", jwk)
	}
	if jwk.X == "" || jwk.Y == "" || jwk.D == "" {
		t.Errorf("jwk = %+v, want non-empty x/y/d", jwk)
	}
}

func TestNewJWKFromPublicKey_NoPrivateMaterial(t *testing.T) {
	pub, priv, err := GenerateP256Keypair()
	if err != nil {
		t.Fatalf("GenerateP256Keypair() error: %v", err)
	}
	defer priv.Close()

	jwk, err := NewJWKFromPublicKey(pub)
	if err != nil {
		t.Fatalf("NewJWKFromPublicKey() error: %v", err)
	}
	if jwk.D != "" || jwk.Alg != "" {
		t.Errorf("jwk = %+v, want empty d and alg", jwk)
	}
	if jwk.X == "" || jwk.Y == "" {
		t.Errorf("jwk = %+v, want non-empty x/y", jwk)
	}
}

func TestThumbprint_DeterministicAndDistinct(t *testing.T) {
	pub1, priv1, err := GenerateP256Keypair()
	if err != nil {
		t.Fatalf("GenerateP256Keypair() error: %v", err)
	}
	defer priv1.Close()
	pub2, priv2, err := GenerateP256Keypair()
	if err != nil {
		t.Fatalf("GenerateP256Keypair() error: %v", err)
	}
	defer priv2.Close()

	jwk1, err := NewJWKFromPublicKey(pub1)
	if err != nil {
		t.Fatalf("NewJWKFromPublicKey() error: %v", err)
	}
	jwk2, err := NewJWKFromPublicKey(pub2)
	if err != nil {
		t.Fatalf("NewJWKFromPublicKey() error: %v", err)
	}

	thumb1a, err := jwk1.Thumbprint()
	if err != nil {
		t.Fatalf("Thumbprint() error: %v", err)
	}
	thumb1b, err := jwk1.Thumbprint()
	if err != nil {
		t.Fatalf("Thumbprint() error: %v", err)
	}
	if thumb1a != thumb1b {
		t.Error("Thumbprint() is not deterministic")
	}
	if len(thumb1a) != 43 {
		t.Errorf("Thumbprint() length = %d, want 43 (unpadded base64url of 32 bytes)", len(thumb1a))
	}

	thumb2, err := jwk2.Thumbprint()
	if err != nil {
		t.Fatalf("Thumbprint() error: %v", err)
	}
	if thumb1a == thumb2 {
		t.Error("Thumbprint() of distinct keys should differ")
	}
}

func TestThumbprint_UnsupportedKty(t *testing.T) {
	jwk := JWK{Kty: "RSA", Crv: "P-256", X: "x", Y: "y"}
	if _, err := jwk.Thumbprint(); err == nil {
		t.Error("Thumbprint() with unsupported kty should return error")
	}
}

func TestThumbprint_MissingFields(t *testing.T) {
	jwk := JWK{Kty: "EC"}
	if _, err := jwk.Thumbprint(); err == nil {
		t.Error("Thumbprint() with missing crv/x/y should return error")
	}
}

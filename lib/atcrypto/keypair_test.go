// Copyright 2026 The atproto-go Authors
// SPDX-License-Identifier: Apache-2.0

package atcrypto

import "testing"

func TestGenerateP256Keypair_SignVerifyRoundTrip(t *testing.T) {
	pub, priv, err := GenerateP256Keypair()
	if err != nil {
		t.Fatalf("GenerateP256Keypair() error: %v", err)
	}
	defer priv.Close()

	data := []byte("hello atproto")
	sig, err := Sign(data, priv)
	if err != nil {
		t.Fatalf("Sign() error: %v", err)
	}

	ok, err := Verify(sig, data, pub)
	if err != nil {
		t.Fatalf("Verify() error: %v", err)
	}
	if !ok {
		t.Error("Verify() = false, want true")
	}

	ok, err = Verify(sig, []byte("tampered"), pub)
	if err != nil {
		t.Fatalf("Verify() error: %v", err)
	}
	if ok {
		t.Error("Verify(tampered) = true, want false")
	}
}

func TestGenerateP256Keypair_Unique(t *testing.T) {
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

	if string(pub1.Bytes()) == string(pub2.Bytes()) {
		t.Error("two generated keypairs have identical public keys")
	}
	if string(priv1.Bytes()) == string(priv2.Bytes()) {
		t.Error("two generated keypairs have identical private keys")
	}
}

func TestParsePublicKey_RoundTrip(t *testing.T) {
	pub, priv, err := GenerateP256Keypair()
	if err != nil {
		t.Fatalf("GenerateP256Keypair() error: %v", err)
	}
	defer priv.Close()

	parsed, err := ParsePublicKey(pub.Bytes())
	if err != nil {
		t.Fatalf("ParsePublicKey() error: %v", err)
	}
	if string(parsed.Bytes()) != string(pub.Bytes()) {
		t.Error("ParsePublicKey() round trip mismatch")
	}
}

func TestParsePublicKey_InvalidLength(t *testing.T) {
	if _, err := ParsePublicKey([]byte{0x02, 0x01}); err == nil {
		t.Error("ParsePublicKey(short) should return error")
	}
}

func TestNewPrivateKeyFromScalar_InvalidLength(t *testing.T) {
	if _, err := NewPrivateKeyFromScalar([]byte{1, 2, 3}); err == nil {
		t.Error("NewPrivateKeyFromScalar(short) should return error")
	}
}

func TestNewPrivateKeyFromScalar_InvalidScalar(t *testing.T) {
	zero := make([]byte, scalarLength)
	if _, err := NewPrivateKeyFromScalar(zero); err == nil {
		t.Error("NewPrivateKeyFromScalar(zero scalar) should return error")
	}
}

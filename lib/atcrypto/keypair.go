// Copyright 2026 The atproto-go Authors
// SPDX-License-Identifier: Apache-2.0

package atcrypto

import (
	"crypto/ecdsa"
	"crypto/elliptic"
	"crypto/rand"
	"fmt"
	"math/big"

	"github.com/atproto-go/sdk/lib/secret"
)

const (
	// scalarLength is the byte length of a P-256 private key scalar.
	scalarLength = 32
	// compressedPointLength is the byte length of a compressed P-256 public point.
	compressedPointLength = 33
)

// PublicKey is a P-256 public key in compressed point form (33 bytes:
// a 0x02/0x03 prefix byte followed by the 32-byte X coordinate).
type PublicKey struct {
	data [compressedPointLength]byte
}

// ParsePublicKey parses a compressed P-256 public key. Returns an error
// if data is not exactly 33 bytes or does not decode to a point on the
// curve.
func ParsePublicKey(data []byte) (PublicKey, error) {
	if len(data) != compressedPointLength {
		return PublicKey{}, fmt.Errorf("atcrypto: public key must be %d bytes, got %d", compressedPointLength, len(data))
	}
	x, y := elliptic.UnmarshalCompressed(elliptic.P256(), data)
	if x == nil {
		return PublicKey{}, fmt.Errorf("atcrypto: invalid compressed P-256 point")
	}
	_ = y
	var pub PublicKey
	copy(pub.data[:], data)
	return pub, nil
}

// Bytes returns the compressed point encoding.
func (p PublicKey) Bytes() []byte {
	out := make([]byte, compressedPointLength)
	copy(out, p.data[:])
	return out
}

func (p PublicKey) ecdsaKey() (*ecdsa.PublicKey, error) {
	x, y := elliptic.UnmarshalCompressed(elliptic.P256(), p.data[:])
	if x == nil {
		return nil, fmt.Errorf("atcrypto: invalid compressed P-256 point")
	}
	return &ecdsa.PublicKey{Curve: elliptic.P256(), X: x, Y: y}, nil
}

// uncompressed returns the 65-byte uncompressed point (0x04 || X || Y),
// used by JWK construction which needs X and Y separately.
func (p PublicKey) uncompressed() ([]byte, error) {
	key, err := p.ecdsaKey()
	if err != nil {
		return nil, err
	}
	return elliptic.Marshal(elliptic.P256(), key.X, key.Y), nil
}

// PrivateKey is a P-256 private key: a raw 32-byte scalar held in
// mmap-backed memory locked against swap. Call Close when the key is
// no longer needed.
type PrivateKey struct {
	buf *secret.Buffer
}

// NewPrivateKeyFromScalar wraps a raw 32-byte scalar in a PrivateKey.
// The scalar is copied into protected memory; the caller's slice is
// left unchanged.
func NewPrivateKeyFromScalar(scalar []byte) (*PrivateKey, error) {
	if len(scalar) != scalarLength {
		return nil, fmt.Errorf("atcrypto: private key scalar must be %d bytes, got %d", scalarLength, len(scalar))
	}
	curve := elliptic.P256()
	d := new(big.Int).SetBytes(scalar)
	if d.Sign() == 0 || d.Cmp(curve.Params().N) >= 0 {
		return nil, fmt.Errorf("atcrypto: private key scalar is not a valid P-256 scalar")
	}
	buf, err := secret.NewFromBytes(append([]byte(nil), scalar...))
	if err != nil {
		return nil, fmt.Errorf("atcrypto: protecting private key: %w", err)
	}
	return &PrivateKey{buf: buf}, nil
}

// Close releases the private key's protected memory. Idempotent.
func (p *PrivateKey) Close() error {
	if p == nil || p.buf == nil {
		return nil
	}
	return p.buf.Close()
}

// Bytes returns the raw 32-byte scalar. The returned slice aliases
// mmap-backed memory — do not retain it past the PrivateKey's lifetime.
func (p *PrivateKey) Bytes() []byte {
	return p.buf.Bytes()[:scalarLength]
}

func (p *PrivateKey) ecdsaKey() (*ecdsa.PrivateKey, error) {
	curve := elliptic.P256()
	d := new(big.Int).SetBytes(p.Bytes())
	x, y := curve.ScalarBaseMult(d.Bytes())
	return &ecdsa.PrivateKey{
		PublicKey: ecdsa.PublicKey{Curve: curve, X: x, Y: y},
		D:         d,
	}, nil
}

// PublicKey derives the compressed public key corresponding to p.
func (p *PrivateKey) PublicKey() (PublicKey, error) {
	key, err := p.ecdsaKey()
	if err != nil {
		return PublicKey{}, err
	}
	var pub PublicKey
	copy(pub.data[:], elliptic.MarshalCompressed(elliptic.P256(), key.X, key.Y))
	return pub, nil
}

// GenerateP256Keypair generates a new P-256 keypair. The caller must
// call Close on the returned private key when it is no longer needed.
func GenerateP256Keypair() (PublicKey, *PrivateKey, error) {
	key, err := ecdsa.GenerateKey(elliptic.P256(), rand.Reader)
	if err != nil {
		return PublicKey{}, nil, fmt.Errorf("atcrypto: generating P-256 keypair: %w", err)
	}
	scalar := make([]byte, scalarLength)
	key.D.FillBytes(scalar)

	priv, err := NewPrivateKeyFromScalar(scalar)
	for index := range scalar {
		scalar[index] = 0
	}
	if err != nil {
		return PublicKey{}, nil, err
	}

	var pub PublicKey
	copy(pub.data[:], elliptic.MarshalCompressed(elliptic.P256(), key.X, key.Y))
	return pub, priv, nil
}

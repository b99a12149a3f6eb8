// Copyright 2026 The atproto-go Authors
// SPDX-License-Identifier: Apache-2.0

package atcrypto

import (
	"fmt"
	"strings"

	"github.com/mr-tron/base58"
)

// Algorithm identifies the signing algorithm a multikey encodes.
type Algorithm int

const (
	AlgorithmUnknown Algorithm = iota
	AlgorithmP256
	AlgorithmSecp256k1
)

// multicodec prefixes, RFC per the did:key spec's registered table.
var (
	p256Prefix       = [2]byte{0x80, 0x24}
	secp256k1Prefix  = [2]byte{0xe7, 0x01}
	didKeyPrefix     = "did:key:"
	multibaseBase58B = "z"
)

// EncodeMultikey encodes a compressed public key as
// did:key:z<base58btc(multicodec_prefix ++ pubkey)>.
func EncodeMultikey(alg Algorithm, pub []byte) (string, error) {
	var prefix [2]byte
	switch alg {
	case AlgorithmP256:
		prefix = p256Prefix
	case AlgorithmSecp256k1:
		prefix = secp256k1Prefix
	default:
		return "", fmt.Errorf("atcrypto: encode multikey: unsupported algorithm")
	}
	data := make([]byte, 0, 2+len(pub))
	data = append(data, prefix[0], prefix[1])
	data = append(data, pub...)
	return didKeyPrefix + multibaseBase58B + base58.Encode(data), nil
}

// DecodeMultikey decodes a did:key string (the "did:key:" prefix is
// optional) into an algorithm tag and the raw compressed public key
// bytes. Returns an error if the multibase marker is missing, the
// base58btc decode fails, or the multicodec prefix is unrecognized.
func DecodeMultikey(s string) (Algorithm, []byte, error) {
	s = strings.TrimPrefix(s, didKeyPrefix)
	if !strings.HasPrefix(s, multibaseBase58B) {
		return AlgorithmUnknown, nil, fmt.Errorf("atcrypto: decode multikey: missing %q multibase marker", multibaseBase58B)
	}
	s = strings.TrimPrefix(s, multibaseBase58B)

	data, err := base58.Decode(s)
	if err != nil {
		return AlgorithmUnknown, nil, fmt.Errorf("atcrypto: decode multikey: base58btc decode: %w", err)
	}
	if len(data) < 2 {
		return AlgorithmUnknown, nil, fmt.Errorf("atcrypto: decode multikey: too short")
	}

	switch {
	case data[0] == p256Prefix[0] && data[1] == p256Prefix[1]:
		return AlgorithmP256, data[2:], nil
	case data[0] == secp256k1Prefix[0] && data[1] == secp256k1Prefix[1]:
		return AlgorithmSecp256k1, data[2:], nil
	default:
		return AlgorithmUnknown, nil, fmt.Errorf("atcrypto: decode multikey: unsupported algorithm (prefix 0x%02x%02x)", data[0], data[1])
	}
}

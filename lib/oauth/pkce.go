// Copyright 2026 The atproto-go Authors
// SPDX-License-Identifier: Apache-2.0

package oauth

import (
	"fmt"

	"github.com/atproto-go/sdk/lib/atcrypto"
)

// pkceVerifierBytes is the entropy of a generated code_verifier: 32
// random bytes, base64url-encoded to a fixed 43-character string.
const pkceVerifierBytes = 32

// stateBytes is the entropy of a generated state parameter: 16 random
// bytes.
const stateBytes = 16

// pkcePair is a generated PKCE verifier/challenge pair.
type pkcePair struct {
	Verifier  string
	Challenge string
}

// newPKCEPair generates a fresh code_verifier and its S256
// code_challenge.
func newPKCEPair() (pkcePair, error) {
	verifier, err := atcrypto.GenerateRandomBytes(pkceVerifierBytes)
	if err != nil {
		return pkcePair{}, fmt.Errorf("oauth: generating pkce verifier: %w", err)
	}
	verifierText := atcrypto.Base64URLEncode(verifier)
	return pkcePair{
		Verifier:  verifierText,
		Challenge: pkceChallenge(verifierText),
	}, nil
}

// pkceChallenge computes the S256 code_challenge for a code_verifier:
// base64url(SHA-256(verifier_ascii_bytes)).
func pkceChallenge(verifier string) string {
	digest := atcrypto.SHA256([]byte(verifier))
	return atcrypto.Base64URLEncode(digest[:])
}

// newState generates a fresh state parameter.
func newState() (string, error) {
	state, err := atcrypto.GenerateRandomBytes(stateBytes)
	if err != nil {
		return "", fmt.Errorf("oauth: generating state: %w", err)
	}
	return atcrypto.Base64URLEncode(state), nil
}

// Copyright 2026 The atproto-go Authors
// SPDX-License-Identifier: Apache-2.0

package oauth

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/atproto-go/sdk/lib/atcrypto"
	"github.com/atproto-go/sdk/lib/clock"
)

// dpopJWK is the header's embedded public key: only the four members
// DPoP needs, in lexicographically sorted key order.
type dpopJWK struct {
	Crv string `json:"crv"`
	Kty string `json:"kty"`
	X   string `json:"x"`
	Y   string `json:"y"`
}

// dpopHeader is the DPoP JWT header, fields declared in
// lexicographically sorted key order so json.Marshal emits them that
// way.
type dpopHeader struct {
	Alg string  `json:"alg"`
	JWK dpopJWK `json:"jwk"`
	Typ string  `json:"typ"`
}

// dpopPayload is the DPoP JWT payload, fields declared in
// lexicographically sorted key order.
type dpopPayload struct {
	Ath   string `json:"ath,omitempty"`
	Htm   string `json:"htm"`
	Htu   string `json:"htu"`
	Iat   int64  `json:"iat"`
	Jti   string `json:"jti"`
	Nonce string `json:"nonce,omitempty"`
}

// DPoPManager owns a P-256 keypair generated at construction and
// mints a DPoP proof JWT for each authorization-server or resource
// request. Safe for concurrent use.
type DPoPManager struct {
	priv  *atcrypto.PrivateKey
	pub   atcrypto.PublicKey
	clock clock.Clock

	mu    sync.Mutex
	nonce string
}

// NewDPoPManager generates a fresh P-256 keypair and returns a manager
// bound to it, using c for the "iat" claim. The caller must call
// Close when the manager is no longer needed.
func NewDPoPManager(c clock.Clock) (*DPoPManager, error) {
	pub, priv, err := atcrypto.GenerateP256Keypair()
	if err != nil {
		return nil, fmt.Errorf("oauth: generating DPoP keypair: %w", err)
	}
	return &DPoPManager{priv: priv, pub: pub, clock: c}, nil
}

// Close releases the manager's private key.
func (m *DPoPManager) Close() error {
	return m.priv.Close()
}

// UpdateNonce stores nonce for inclusion in subsequent proofs,
// replacing any previously stored value.
func (m *DPoPManager) UpdateNonce(nonce string) {
	m.mu.Lock()
	m.nonce = nonce
	m.mu.Unlock()
}

func (m *DPoPManager) currentNonce() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.nonce
}

// Proof mints a DPoP proof JWT for method and rawURL, with no access
// token binding. Used for PAR and token-endpoint requests.
func (m *DPoPManager) Proof(ctx context.Context, method, rawURL string) (string, error) {
	return m.proof(method, rawURL, "")
}

// ProofForAccessToken mints a DPoP proof JWT bound to accessToken via
// the "ath" claim, for use on resource requests carrying that token.
func (m *DPoPManager) ProofForAccessToken(ctx context.Context, method, rawURL, accessToken string) (string, error) {
	digest := atcrypto.SHA256([]byte(accessToken))
	return m.proof(method, rawURL, atcrypto.Base64URLEncode(digest[:]))
}

func (m *DPoPManager) proof(method, rawURL, ath string) (string, error) {
	htu, err := stripQueryAndFragment(rawURL)
	if err != nil {
		return "", fmt.Errorf("oauth: dpop proof: %w", err)
	}

	jwk, err := atcrypto.NewJWKFromPublicKey(m.pub)
	if err != nil {
		return "", fmt.Errorf("oauth: dpop proof: %w", err)
	}
	header := dpopHeader{
		Alg: "ES256",
		JWK: dpopJWK{Crv: jwk.Crv, Kty: jwk.Kty, X: jwk.X, Y: jwk.Y},
		Typ: "dpop+jwt",
	}
	payload := dpopPayload{
		Ath:   ath,
		Htm:   strings.ToUpper(method),
		Htu:   htu,
		Iat:   m.clock.Now().Unix(),
		Jti:   uuid.NewString(),
		Nonce: m.currentNonce(),
	}

	headerJSON, err := json.Marshal(header)
	if err != nil {
		return "", fmt.Errorf("oauth: dpop proof: encoding header: %w", err)
	}
	payloadJSON, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("oauth: dpop proof: encoding payload: %w", err)
	}

	signingInput := atcrypto.Base64URLEncode(headerJSON) + "." + atcrypto.Base64URLEncode(payloadJSON)
	der, err := atcrypto.Sign([]byte(signingInput), m.priv)
	if err != nil {
		return "", fmt.Errorf("oauth: dpop proof: signing: %w", err)
	}
	raw, err := atcrypto.DERToRawES256(der)
	if err != nil {
		return "", fmt.Errorf("oauth: dpop proof: converting signature: %w", err)
	}

	return signingInput + "." + atcrypto.Base64URLEncode(raw[:]), nil
}

// stripQueryAndFragment drops the query string and fragment from
// rawURL, as required for the "htu" claim.
func stripQueryAndFragment(rawURL string) (string, error) {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return "", fmt.Errorf("parsing url %q: %w", rawURL, err)
	}
	parsed.RawQuery = ""
	parsed.Fragment = ""
	parsed.RawFragment = ""
	return parsed.String(), nil
}

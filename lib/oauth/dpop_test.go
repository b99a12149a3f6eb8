// Copyright 2026 The atproto-go Authors
// SPDX-License-Identifier: Apache-2.0

package oauth

import (
	"context"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/atproto-go/sdk/lib/atcrypto"
	"github.com/atproto-go/sdk/lib/clock"
)

func TestDPoPManager_ProofShape(t *testing.T) {
	fake := clock.Fake(time.Unix(1700000000, 0))
	manager, err := NewDPoPManager(fake)
	if err != nil {
		t.Fatalf("NewDPoPManager() error: %v", err)
	}
	defer manager.Close()

	proof, err := manager.Proof(context.Background(), "get", "https://pds.example.com/xrpc/foo?x=1#frag")
	if err != nil {
		t.Fatalf("Proof() error: %v", err)
	}

	parts := strings.Split(proof, ".")
	if len(parts) != 3 {
		t.Fatalf("proof has %d parts, want 3", len(parts))
	}

	headerJSON, err := atcrypto.Base64URLDecode(parts[0])
	if err != nil {
		t.Fatalf("decoding header: %v", err)
	}
	if !strings.HasPrefix(string(headerJSON), `{"alg":"ES256","jwk":{"crv":`) {
		t.Errorf("header not in sorted key order: %s", headerJSON)
	}
	if !strings.Contains(string(headerJSON), `"typ":"dpop+jwt"`) {
		t.Errorf("header missing typ: %s", headerJSON)
	}

	payloadJSON, err := atcrypto.Base64URLDecode(parts[1])
	if err != nil {
		t.Fatalf("decoding payload: %v", err)
	}
	var payload map[string]any
	if err := json.Unmarshal(payloadJSON, &payload); err != nil {
		t.Fatalf("unmarshaling payload: %v", err)
	}
	if payload["htm"] != "GET" {
		t.Errorf("htm = %v, want GET", payload["htm"])
	}
	if payload["htu"] != "https://pds.example.com/xrpc/foo" {
		t.Errorf("htu = %v, want stripped of query/fragment", payload["htu"])
	}
	if payload["iat"] != float64(1700000000) {
		t.Errorf("iat = %v, want 1700000000", payload["iat"])
	}
	if _, ok := payload["jti"]; !ok {
		t.Error("payload missing jti")
	}
	if _, ok := payload["nonce"]; ok {
		t.Error("payload should omit nonce when none is set")
	}
}

func TestDPoPManager_UpdateNonceIncludedInNextProof(t *testing.T) {
	manager, err := NewDPoPManager(clock.Real())
	if err != nil {
		t.Fatalf("NewDPoPManager() error: %v", err)
	}
	defer manager.Close()

	manager.UpdateNonce("n1")
	proof, err := manager.Proof(context.Background(), "POST", "https://auth.example.com/par")
	if err != nil {
		t.Fatalf("Proof() error: %v", err)
	}
	parts := strings.Split(proof, ".")
	payloadJSON, err := atcrypto.Base64URLDecode(parts[1])
	if err != nil {
		t.Fatalf("decoding payload: %v", err)
	}
	if !strings.Contains(string(payloadJSON), `"nonce":"n1"`) {
		t.Errorf("payload missing updated nonce: %s", payloadJSON)
	}

	manager.UpdateNonce("n2")
	proof2, err := manager.Proof(context.Background(), "POST", "https://auth.example.com/par")
	if err != nil {
		t.Fatalf("Proof() error: %v", err)
	}
	parts2 := strings.Split(proof2, ".")
	payload2JSON, err := atcrypto.Base64URLDecode(parts2[1])
	if err != nil {
		t.Fatalf("decoding payload: %v", err)
	}
	if strings.Contains(string(payload2JSON), `"nonce":"n1"`) {
		t.Error("stale nonce n1 should not appear after UpdateNonce(n2)")
	}
	if !strings.Contains(string(payload2JSON), `"nonce":"n2"`) {
		t.Errorf("payload missing n2: %s", payload2JSON)
	}
}

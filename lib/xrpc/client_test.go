// Copyright 2026 The atproto-go Authors
// SPDX-License-Identifier: Apache-2.0

package xrpc

import (
	"context"
	"errors"
	"io"
	"net/http"
	"strings"
	"testing"

	"github.com/atproto-go/sdk/lib/atperror"
)

type roundTripFunc func(req *http.Request) (*http.Response, error)

func (f roundTripFunc) RoundTrip(req *http.Request) (*http.Response, error) {
	return f(req)
}

func jsonResponse(status int, body string, header http.Header) *http.Response {
	if header == nil {
		header = make(http.Header)
	}
	return &http.Response{
		StatusCode: status,
		Header:     header,
		Body:       io.NopCloser(strings.NewReader(body)),
	}
}

type actorProfile struct {
	Handle      string `json:"handle"`
	DisplayName string `json:"displayName"`
}

func TestQuery_RoundTripAndRequestShape(t *testing.T) {
	var capturedURL string
	var capturedAccept string

	transport := roundTripFunc(func(req *http.Request) (*http.Response, error) {
		capturedURL = req.URL.String()
		capturedAccept = req.Header.Get("Accept")
		return jsonResponse(200, `{"handle":"alice.bsky.social","displayName":"Alice"}`, nil), nil
	})

	client := NewForTesting("https://bsky.social", transport)
	profile, err := Query[actorProfile](context.Background(), client, "app.bsky.actor.getProfile", map[string][]string{
		"actor": {"alice.bsky.social"},
	})
	if err != nil {
		t.Fatalf("Query() error: %v", err)
	}
	if profile.Handle != "alice.bsky.social" {
		t.Errorf("Handle = %q, want alice.bsky.social", profile.Handle)
	}

	wantURL := "https://bsky.social/xrpc/app.bsky.actor.getProfile?actor=alice.bsky.social"
	if capturedURL != wantURL {
		t.Errorf("request URL = %q, want %q", capturedURL, wantURL)
	}
	if capturedAccept != "application/json" {
		t.Errorf("Accept header = %q, want application/json", capturedAccept)
	}
}

func TestQuery_TokenExpiredMapping(t *testing.T) {
	transport := roundTripFunc(func(req *http.Request) (*http.Response, error) {
		return jsonResponse(401, `{"error":"ExpiredToken","message":"Token has expired"}`, nil), nil
	})

	client := NewForTesting("https://bsky.social", transport)
	_, err := Query[actorProfile](context.Background(), client, "app.bsky.actor.getProfile", nil)
	if err == nil {
		t.Fatal("Query() expected error, got nil")
	}
	if !errors.Is(err, atperror.ErrTokenExpired) {
		t.Errorf("error = %v, want token-expired kind", err)
	}
	if errors.Is(err, atperror.ErrUnauthorized) {
		t.Error("error should not also match unauthorized")
	}
}

func TestQuery_GenericUnauthorized(t *testing.T) {
	transport := roundTripFunc(func(req *http.Request) (*http.Response, error) {
		return jsonResponse(401, `{"error":"AuthMissing","message":"no token"}`, nil), nil
	})

	client := NewForTesting("https://bsky.social", transport)
	_, err := Query[actorProfile](context.Background(), client, "app.bsky.actor.getProfile", nil)
	if !errors.Is(err, atperror.ErrUnauthorized) {
		t.Errorf("error = %v, want unauthorized kind", err)
	}
}

func TestProcedure_EncodesJSONBody(t *testing.T) {
	var capturedContentType string
	transport := roundTripFunc(func(req *http.Request) (*http.Response, error) {
		capturedContentType = req.Header.Get("Content-Type")
		return jsonResponse(200, `{}`, nil), nil
	})

	client := NewForTesting("https://bsky.social", transport)
	_, err := Procedure[map[string]any](context.Background(), client, "com.atproto.repo.createRecord", map[string]string{"text": "hi"})
	if err != nil {
		t.Fatalf("Procedure() error: %v", err)
	}
	if capturedContentType != "application/json" {
		t.Errorf("Content-Type = %q, want application/json", capturedContentType)
	}
}

func TestProcedureNoContent_ValidatesStatusOnly(t *testing.T) {
	transport := roundTripFunc(func(req *http.Request) (*http.Response, error) {
		return jsonResponse(200, ``, nil), nil
	})

	client := NewForTesting("https://bsky.social", transport)
	if err := client.ProcedureNoContent(context.Background(), "com.atproto.repo.deleteRecord", nil); err != nil {
		t.Errorf("ProcedureNoContent() error: %v", err)
	}
}

func TestUploadBlob_SetsCallerContentType(t *testing.T) {
	var capturedContentType string
	transport := roundTripFunc(func(req *http.Request) (*http.Response, error) {
		capturedContentType = req.Header.Get("Content-Type")
		return jsonResponse(200, `{"blob":{"$type":"blob","ref":{"$link":"bafy"},"mimeType":"image/png","size":3}}`, nil), nil
	})

	client := NewForTesting("https://bsky.social", transport)
	_, err := client.UploadBlob(context.Background(), []byte{1, 2, 3}, "image/png")
	if err != nil {
		t.Fatalf("UploadBlob() error: %v", err)
	}
	if capturedContentType != "image/png" {
		t.Errorf("Content-Type = %q, want image/png", capturedContentType)
	}
}

func TestMapError_GenericXRPCError(t *testing.T) {
	transport := roundTripFunc(func(req *http.Request) (*http.Response, error) {
		return jsonResponse(500, `{"error":"InternalServerError","message":"boom"}`, nil), nil
	})

	client := NewForTesting("https://bsky.social", transport)
	_, err := Query[actorProfile](context.Background(), client, "app.bsky.actor.getProfile", nil)
	kind, ok := atperror.KindOf(err)
	if !ok || kind != atperror.KindXRPCError {
		t.Fatalf("KindOf() = (%v, %v), want (%v, true)", kind, ok, atperror.KindXRPCError)
	}
}

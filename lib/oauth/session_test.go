// Copyright 2026 The atproto-go Authors
// SPDX-License-Identifier: Apache-2.0

package oauth

import "testing"

func TestSession_IsAuthenticated(t *testing.T) {
	cases := []struct {
		tag  SessionTag
		want bool
	}{
		{SessionUnauthenticated, false},
		{SessionAuthorizing, false},
		{SessionAuthenticated, true},
		{SessionExpired, false},
		{SessionFailed, false},
	}
	for _, c := range cases {
		session := Session{Tag: c.tag}
		if got := session.IsAuthenticated(); got != c.want {
			t.Errorf("Session{Tag: %v}.IsAuthenticated() = %v, want %v", c.tag, got, c.want)
		}
	}
}

func TestSessionTag_String(t *testing.T) {
	if SessionAuthenticated.String() != "authenticated" {
		t.Errorf("SessionAuthenticated.String() = %q", SessionAuthenticated.String())
	}
	if SessionTag(99).String() != "unknown" {
		t.Errorf("unrecognized tag should stringify to unknown")
	}
}

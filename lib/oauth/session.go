// Copyright 2026 The atproto-go Authors
// SPDX-License-Identifier: Apache-2.0

package oauth

// SessionTag identifies which variant of Session is populated.
type SessionTag int

const (
	// SessionUnauthenticated means no tokens are stored and no
	// authorization is in flight.
	SessionUnauthenticated SessionTag = iota
	// SessionAuthorizing means Authorize has been called and is
	// awaiting HandleCallback; State carries the pending state
	// parameter.
	SessionAuthorizing
	// SessionAuthenticated means a valid token set is stored; DID
	// carries the authenticated subject.
	SessionAuthenticated
	// SessionExpired means a token set is stored but
	// TokenManager.IsExpired reports true.
	SessionExpired
	// SessionFailed means the most recent authorization attempt
	// failed; Err carries the cause.
	SessionFailed
)

func (t SessionTag) String() string {
	switch t {
	case SessionUnauthenticated:
		return "unauthenticated"
	case SessionAuthorizing:
		return "authorizing"
	case SessionAuthenticated:
		return "authenticated"
	case SessionExpired:
		return "expired"
	case SessionFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// Session is a closed tagged union describing the current
// authorization state of an OAuthClient. Only the fields relevant to
// Tag are populated.
type Session struct {
	Tag   SessionTag
	State string // SessionAuthorizing
	DID   string // SessionAuthenticated
	Err   error  // SessionFailed
}

// IsAuthenticated reports whether the session's tag is
// SessionAuthenticated.
func (s Session) IsAuthenticated() bool {
	return s.Tag == SessionAuthenticated
}

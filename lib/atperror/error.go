// Copyright 2026 The atproto-go Authors
// SPDX-License-Identifier: Apache-2.0

package atperror

import (
	"errors"
	"fmt"
)

// Error is the single error type this module returns across package
// boundaries. Its Kind selects which sum-type member it represents;
// the remaining fields are populated according to that kind (see the
// New* constructors).
type Error struct {
	Kind    Kind
	Message string

	// RPC: xrpc-error.
	Status int
	RPCErr string

	// Auth: oauth-error.
	OAuthError       string
	OAuthDescription string
	OAuthURI         string

	// Repository: record-not-found.
	Collection string
	RKey       string

	Err error
}

func (e *Error) Error() string {
	switch e.Kind {
	case KindXRPCError:
		if e.RPCErr != "" {
			return fmt.Sprintf("xrpc error: status %d, %s: %s", e.Status, e.RPCErr, e.Message)
		}
		return fmt.Sprintf("xrpc error: status %d: %s", e.Status, e.Message)
	case KindOAuthError:
		if e.OAuthDescription != "" {
			return fmt.Sprintf("oauth error: %s: %s", e.OAuthError, e.OAuthDescription)
		}
		return fmt.Sprintf("oauth error: %s", e.OAuthError)
	case KindRecordNotFound:
		return fmt.Sprintf("record not found: %s/%s", e.Collection, e.RKey)
	default:
		if e.Err != nil {
			return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Err)
		}
		if e.Message != "" {
			return fmt.Sprintf("%s: %s", e.Kind, e.Message)
		}
		return string(e.Kind)
	}
}

// Unwrap exposes the wrapped underlying cause, if any, to errors.Is /
// errors.As chains.
func (e *Error) Unwrap() error {
	return e.Err
}

// Is reports whether target is an *Error of the same Kind, allowing
// errors.Is(err, atperror.New(kind, "")) style comparisons. A bare
// Kind value is not itself an error; use one of the Err* sentinels or
// compare via [KindOf] instead when a sentinel *Error is inconvenient
// to construct.
func (e *Error) Is(target error) bool {
	other, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.Kind == other.Kind
}

// KindOf extracts the Kind of err if it is (or wraps) an *Error,
// reporting ok=false otherwise.
func KindOf(err error) (Kind, bool) {
	var perr *Error
	if !errors.As(err, &perr) {
		return "", false
	}
	return perr.Kind, true
}

// New constructs a bare *Error of the given kind with a message.
func New(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

// Wrap constructs an *Error of the given kind wrapping an underlying
// cause.
func Wrap(kind Kind, message string, err error) *Error {
	return &Error{Kind: kind, Message: message, Err: err}
}

// NewXRPCError constructs the xrpc-error kind with a status code and
// optional body-derived error name and message.
func NewXRPCError(status int, rpcErr, message string) *Error {
	return &Error{Kind: KindXRPCError, Status: status, RPCErr: rpcErr, Message: message}
}

// NewOAuthError constructs the oauth-error kind.
func NewOAuthError(errorCode, description, uri string) *Error {
	return &Error{Kind: KindOAuthError, OAuthError: errorCode, OAuthDescription: description, OAuthURI: uri}
}

// NewRecordNotFound constructs the record-not-found kind.
func NewRecordNotFound(collection, rkey string) *Error {
	return &Error{Kind: KindRecordNotFound, Collection: collection, RKey: rkey}
}

// Copyright 2026 The atproto-go Authors
// SPDX-License-Identifier: Apache-2.0

package xrpc

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/atproto-go/sdk/lib/atperror"
	"github.com/atproto-go/sdk/lib/netutil"
)

// errorBody is the conventional XRPC error response shape:
// {"error": "SomeErrorName", "message": "human readable"}.
type errorBody struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

// mapError converts a non-2xx response into the *atperror.Error kind
// spec.md §4.3's error-mapping table prescribes. The response body is
// read and closed.
func mapError(resp *Response) error {
	body, readErr := io.ReadAll(io.LimitReader(resp.Body, netutil.MaxResponseSize))
	resp.Body.Close()

	var parsed errorBody
	if readErr == nil {
		_ = json.Unmarshal(body, &parsed)
	}

	switch resp.StatusCode {
	case http.StatusUnauthorized:
		if parsed.Error == "ExpiredToken" {
			return &atperror.Error{Kind: atperror.KindTokenExpired, Message: parsed.Message}
		}
		return &atperror.Error{Kind: atperror.KindUnauthorized, Message: parsed.Message}

	case http.StatusTooManyRequests:
		errName := parsed.Error
		if errName == "" {
			errName = "RateLimitExceeded"
		}
		message := parsed.Message
		if message == "" {
			message = "Rate limit exceeded"
		}
		return atperror.NewXRPCError(resp.StatusCode, errName, message)

	default:
		return atperror.NewXRPCError(resp.StatusCode, parsed.Error, parsed.Message)
	}
}

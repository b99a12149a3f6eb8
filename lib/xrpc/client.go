// Copyright 2026 The atproto-go Authors
// SPDX-License-Identifier: Apache-2.0

package xrpc

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sort"
	"strings"

	"github.com/atproto-go/sdk/lib/atperror"
	"github.com/atproto-go/sdk/lib/netutil"
)

// AuthorizationProvider supplies the value of the Authorization header
// for a request, called once per dispatch just before the request is
// sent. A nil provider means requests are sent unauthenticated.
type AuthorizationProvider func(ctx context.Context) (string, error)

// Client is a typed XRPC client scoped to a single service base URL.
type Client struct {
	serviceURL string
	executor   Executor
	authorize  AuthorizationProvider
}

// NewClient returns a Client that dispatches requests to
// <serviceURL>/xrpc/<nsid> via the default net/http Executor.
func NewClient(serviceURL string) *Client {
	return &Client{serviceURL: strings.TrimSuffix(serviceURL, "/"), executor: NewExecutor()}
}

// NewForTesting returns a Client backed by the given http.RoundTripper,
// for redirecting requests to a httptest.Server.
func NewForTesting(serviceURL string, transport http.RoundTripper) *Client {
	return &Client{serviceURL: strings.TrimSuffix(serviceURL, "/"), executor: NewExecutorForTesting(transport)}
}

// SetAuthorizationProvider installs the callback consulted before each
// dispatch to populate the Authorization header.
func (c *Client) SetAuthorizationProvider(provider AuthorizationProvider) {
	c.authorize = provider
}

func (c *Client) endpoint(nsid string, params url.Values) string {
	base := c.serviceURL + "/xrpc/" + nsid
	if len(params) == 0 {
		return base
	}
	keys := make([]string, 0, len(params))
	for key := range params {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	var query strings.Builder
	for i, key := range keys {
		for j, value := range params[key] {
			if i > 0 || j > 0 {
				query.WriteByte('&')
			}
			query.WriteString(url.QueryEscape(key))
			query.WriteByte('=')
			query.WriteString(url.QueryEscape(value))
		}
	}
	return base + "?" + query.String()
}

func (c *Client) newRequest(ctx context.Context, method, endpointURL string, body io.Reader) (*Request, error) {
	header := make(http.Header)
	header.Set("Accept", "application/json")
	if body != nil {
		header.Set("Content-Type", "application/json")
	}
	if c.authorize != nil {
		token, err := c.authorize(ctx)
		if err != nil {
			return nil, fmt.Errorf("xrpc: authorization provider: %w", err)
		}
		header.Set("Authorization", token)
	}
	return &Request{Method: method, URL: endpointURL, Header: header, Body: body}, nil
}

func decodeSuccess[T any](resp *Response) (T, error) {
	var out T
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, netutil.MaxResponseSize))
	if err != nil {
		return out, atperror.Wrap(atperror.KindDecodingError, "reading response body", err)
	}
	if len(data) == 0 {
		// An empty body for a declared "empty" response type succeeds
		// without decoding.
		return out, nil
	}
	if err := json.Unmarshal(data, &out); err != nil {
		return out, atperror.Wrap(atperror.KindDecodingError, "decoding response body", err)
	}
	return out, nil
}

// Query performs a GET request to nsid with the given query
// parameters (emitted in key-sorted order) and decodes a 2xx JSON body
// into T.
func Query[T any](ctx context.Context, c *Client, nsid string, params url.Values) (T, error) {
	var zero T
	req, err := c.newRequest(ctx, http.MethodGet, c.endpoint(nsid, params), nil)
	if err != nil {
		return zero, err
	}
	resp, err := c.executor.Do(ctx, req)
	if err != nil {
		return zero, atperror.Wrap(atperror.KindNetworkError, "xrpc query "+nsid, err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return zero, mapError(resp)
	}
	return decodeSuccess[T](resp)
}

// Procedure performs a POST request to nsid with a JSON-encoded input
// body and decodes a 2xx JSON response into T.
func Procedure[T any](ctx context.Context, c *Client, nsid string, input any) (T, error) {
	var zero T
	var body io.Reader
	if input != nil {
		encoded, err := json.Marshal(input)
		if err != nil {
			return zero, atperror.Wrap(atperror.KindEncodingError, "encoding procedure input", err)
		}
		body = bytes.NewReader(encoded)
	}

	req, err := c.newRequest(ctx, http.MethodPost, c.endpoint(nsid, nil), body)
	if err != nil {
		return zero, err
	}
	resp, err := c.executor.Do(ctx, req)
	if err != nil {
		return zero, atperror.Wrap(atperror.KindNetworkError, "xrpc procedure "+nsid, err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return zero, mapError(resp)
	}
	return decodeSuccess[T](resp)
}

// ProcedureNoContent performs a POST request to nsid, validating only
// the HTTP status; the response body is discarded.
func (c *Client) ProcedureNoContent(ctx context.Context, nsid string, input any) error {
	var body io.Reader
	if input != nil {
		encoded, err := json.Marshal(input)
		if err != nil {
			return atperror.Wrap(atperror.KindEncodingError, "encoding procedure input", err)
		}
		body = bytes.NewReader(encoded)
	}

	req, err := c.newRequest(ctx, http.MethodPost, c.endpoint(nsid, nil), body)
	if err != nil {
		return err
	}
	resp, err := c.executor.Do(ctx, req)
	if err != nil {
		return atperror.Wrap(atperror.KindNetworkError, "xrpc procedure "+nsid, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return mapError(resp)
	}
	return nil
}

// BlobUploadResponse is the {blob: ...} response of UploadBlob. Blob
// holds the blob reference as raw JSON; lib/atid.BlobRef decodes the
// full CID-link/$type form from it.
type BlobUploadResponse struct {
	Blob json.RawMessage `json:"blob"`
}

// uploadBlobNSID is the fixed endpoint blob uploads are posted to.
const uploadBlobNSID = "com.atproto.repo.uploadBlob"

// UploadBlob posts raw bytes with the given MIME type to
// com.atproto.repo.uploadBlob and decodes the {blob: BlobRef} response.
func (c *Client) UploadBlob(ctx context.Context, data []byte, mimeType string) (BlobUploadResponse, error) {
	var zero BlobUploadResponse
	req, err := c.newRequest(ctx, http.MethodPost, c.endpoint(uploadBlobNSID, nil), bytes.NewReader(data))
	if err != nil {
		return zero, err
	}
	req.Header.Set("Content-Type", mimeType)

	resp, err := c.executor.Do(ctx, req)
	if err != nil {
		return zero, atperror.Wrap(atperror.KindNetworkError, "xrpc upload blob", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return zero, mapError(resp)
	}
	return decodeSuccess[BlobUploadResponse](resp)
}

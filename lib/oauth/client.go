// Copyright 2026 The atproto-go Authors
// SPDX-License-Identifier: Apache-2.0

package oauth

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"sync"

	"github.com/atproto-go/sdk/lib/atperror"
	"github.com/atproto-go/sdk/lib/netutil"
	"github.com/atproto-go/sdk/lib/xrpc"
)

// OAuthClient drives the authorize/callback/refresh flow against a
// single authorization server, using a DPoPManager for proof minting
// and a TokenManager for token lifecycle.
type OAuthClient struct {
	clientID    string
	redirectURI string
	executor    xrpc.Executor
	dpop        *DPoPManager
	discovery   *AuthServerDiscovery
	tokens      *TokenManager

	mu             sync.Mutex
	currentPKCE    *pkcePair
	currentState   string
	serverMetadata *AuthServerMetadata
}

// NewOAuthClient returns a client identified by clientID, redirecting
// to redirectURI after authorization. executor performs HTTP requests;
// dpop mints proof JWTs; discovery resolves and caches authorization
// server metadata; tokens owns the current token set.
func NewOAuthClient(clientID, redirectURI string, executor xrpc.Executor, dpop *DPoPManager, discovery *AuthServerDiscovery, tokens *TokenManager) *OAuthClient {
	return &OAuthClient{
		clientID:    clientID,
		redirectURI: redirectURI,
		executor:    executor,
		dpop:        dpop,
		discovery:   discovery,
		tokens:      tokens,
	}
}

// Authorize discovers authServerURL's metadata, pushes an
// authorization request with fresh PKCE and state parameters, and
// returns the URL the caller should redirect the end user to.
func (c *OAuthClient) Authorize(ctx context.Context, authServerURL, scope string) (string, error) {
	metadata, err := c.discovery.Discover(ctx, authServerURL)
	if err != nil {
		return "", err
	}
	if metadata.PushedAuthorizationRequestEndpoint == "" {
		return "", atperror.New(atperror.KindOAuthError, "authorization server does not advertise a pushed_authorization_request_endpoint")
	}

	pkce, err := newPKCEPair()
	if err != nil {
		return "", err
	}
	state, err := newState()
	if err != nil {
		return "", err
	}

	form := url.Values{}
	form.Set("client_id", c.clientID)
	form.Set("redirect_uri", c.redirectURI)
	form.Set("response_type", "code")
	form.Set("scope", scope)
	form.Set("state", state)
	form.Set("code_challenge", pkce.Challenge)
	form.Set("code_challenge_method", "S256")

	resp, err := c.postFormWithNonceRetry(ctx, metadata.PushedAuthorizationRequestEndpoint, form)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", mapOAuthError(resp)
	}

	var parResponse struct {
		RequestURI string `json:"request_uri"`
		ExpiresIn  *int64 `json:"expires_in,omitempty"`
	}
	if err := netutil.DecodeResponse(resp.Body, &parResponse); err != nil {
		return "", atperror.Wrap(atperror.KindDecodingError, "decoding pushed authorization response", err)
	}

	c.mu.Lock()
	c.currentPKCE = &pkce
	c.currentState = state
	c.serverMetadata = &metadata
	c.mu.Unlock()

	return fmt.Sprintf("%s?client_id=%s&request_uri=%s", metadata.AuthorizationEndpoint, url.QueryEscape(c.clientID), parResponse.RequestURI), nil
}

// HandleCallback processes the redirect URL the authorization server
// sent the end user back to, exchanging the authorization code for
// tokens on success.
func (c *OAuthClient) HandleCallback(ctx context.Context, callbackURL string) (Session, error) {
	parsed, err := url.Parse(callbackURL)
	if err != nil {
		wrapped := fmt.Errorf("oauth: parsing callback url: %w", err)
		return Session{Tag: SessionFailed, Err: wrapped}, wrapped
	}
	query := parsed.Query()

	if errorCode := query.Get("error"); errorCode != "" {
		oauthErr := atperror.NewOAuthError(errorCode, query.Get("error_description"), query.Get("error_uri"))
		return Session{Tag: SessionFailed, Err: oauthErr}, oauthErr
	}

	code := query.Get("code")
	state := query.Get("state")
	if code == "" || state == "" {
		oauthErr := atperror.New(atperror.KindOAuthError, "callback is missing code or state")
		return Session{Tag: SessionFailed, Err: oauthErr}, oauthErr
	}

	c.mu.Lock()
	storedState := c.currentState
	storedPKCE := c.currentPKCE
	metadata := c.serverMetadata
	c.mu.Unlock()

	if storedState == "" || state != storedState {
		oauthErr := atperror.NewOAuthError("invalid_state", "callback state does not match the pending authorization", "")
		return Session{Tag: SessionFailed, Err: oauthErr}, oauthErr
	}
	if metadata == nil || storedPKCE == nil {
		oauthErr := atperror.New(atperror.KindOAuthError, "handle_callback called with no pending authorization")
		return Session{Tag: SessionFailed, Err: oauthErr}, oauthErr
	}

	form := url.Values{}
	form.Set("grant_type", "authorization_code")
	form.Set("code", code)
	form.Set("redirect_uri", c.redirectURI)
	form.Set("client_id", c.clientID)
	form.Set("code_verifier", storedPKCE.Verifier)

	resp, err := c.postFormWithNonceRetry(ctx, metadata.TokenEndpoint, form)
	if err != nil {
		return Session{Tag: SessionFailed, Err: err}, err
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		oauthErr := mapOAuthError(resp)
		return Session{Tag: SessionFailed, Err: oauthErr}, oauthErr
	}

	var tokens TokenSet
	if err := netutil.DecodeResponse(resp.Body, &tokens); err != nil {
		wrapped := atperror.Wrap(atperror.KindDecodingError, "decoding token response", err)
		return Session{Tag: SessionFailed, Err: wrapped}, wrapped
	}
	if err := c.tokens.StoreTokens(ctx, tokens); err != nil {
		return Session{Tag: SessionFailed, Err: err}, err
	}

	c.mu.Lock()
	c.currentPKCE = nil
	c.currentState = ""
	c.mu.Unlock()

	return Session{Tag: SessionAuthenticated, DID: tokens.Sub}, nil
}

// RefreshTokens exchanges the stored refresh token for a new token
// set. Fails with atperror.KindTokenRefreshFailed when no refresh
// token is stored.
func (c *OAuthClient) RefreshTokens(ctx context.Context) error {
	current, err := c.tokens.GetTokens(ctx)
	if err != nil {
		return err
	}
	if current == nil || current.RefreshToken == "" {
		return atperror.New(atperror.KindTokenRefreshFailed, "no refresh token stored")
	}

	c.mu.Lock()
	metadata := c.serverMetadata
	c.mu.Unlock()
	if metadata == nil {
		return atperror.New(atperror.KindTokenRefreshFailed, "no authorization server metadata available; call Authorize first")
	}

	form := url.Values{}
	form.Set("grant_type", "refresh_token")
	form.Set("refresh_token", current.RefreshToken)
	form.Set("client_id", c.clientID)

	resp, err := c.postFormWithNonceRetry(ctx, metadata.TokenEndpoint, form)
	if err != nil {
		return atperror.Wrap(atperror.KindTokenRefreshFailed, "refreshing tokens", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return atperror.Wrap(atperror.KindTokenRefreshFailed, "refresh request failed", mapOAuthError(resp))
	}

	var tokens TokenSet
	if err := netutil.DecodeResponse(resp.Body, &tokens); err != nil {
		return atperror.Wrap(atperror.KindTokenRefreshFailed, "decoding refreshed token response", err)
	}
	return c.tokens.StoreTokens(ctx, tokens)
}

// GetAccessToken refreshes the token set first if NeedsRefresh, then
// returns the stored access token.
func (c *OAuthClient) GetAccessToken(ctx context.Context) (string, error) {
	needsRefresh, err := c.tokens.NeedsRefresh(ctx)
	if err != nil {
		return "", err
	}
	if needsRefresh {
		if err := c.RefreshTokens(ctx); err != nil {
			return "", err
		}
	}
	tokens, err := c.tokens.GetTokens(ctx)
	if err != nil {
		return "", err
	}
	if tokens == nil {
		return "", atperror.New(atperror.KindSessionRequired, "no tokens available; call Authorize and HandleCallback first")
	}
	return tokens.AccessToken, nil
}

// GetSession reports the client's current authorization state:
// Authorizing if a state parameter is pending, Unauthenticated if no
// tokens are stored, Expired if the stored tokens are expired, and
// Authenticated otherwise.
func (c *OAuthClient) GetSession(ctx context.Context) (Session, error) {
	c.mu.Lock()
	pendingState := c.currentState
	c.mu.Unlock()
	if pendingState != "" {
		return Session{Tag: SessionAuthorizing, State: pendingState}, nil
	}

	tokens, err := c.tokens.GetTokens(ctx)
	if err != nil {
		return Session{}, err
	}
	if tokens == nil {
		return Session{Tag: SessionUnauthenticated}, nil
	}

	expired, err := c.tokens.IsExpired(ctx)
	if err != nil {
		return Session{}, err
	}
	if expired {
		return Session{Tag: SessionExpired}, nil
	}
	return Session{Tag: SessionAuthenticated, DID: tokens.Sub}, nil
}

// postFormWithNonceRetry posts form to endpoint with a fresh DPoP
// proof. If the response is 400 and carries a DPoP-Nonce header, the
// nonce is stored and the request is retried exactly once with a
// proof that includes it.
func (c *OAuthClient) postFormWithNonceRetry(ctx context.Context, endpoint string, form url.Values) (*xrpc.Response, error) {
	resp, err := c.postForm(ctx, endpoint, form)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusBadRequest {
		return resp, nil
	}
	nonce := resp.Header.Get("DPoP-Nonce")
	if nonce == "" {
		return resp, nil
	}
	resp.Body.Close()
	c.dpop.UpdateNonce(nonce)
	return c.postForm(ctx, endpoint, form)
}

func (c *OAuthClient) postForm(ctx context.Context, endpoint string, form url.Values) (*xrpc.Response, error) {
	proof, err := c.dpop.Proof(ctx, http.MethodPost, endpoint)
	if err != nil {
		return nil, fmt.Errorf("oauth: minting dpop proof: %w", err)
	}
	header := make(http.Header)
	header.Set("Content-Type", "application/x-www-form-urlencoded")
	header.Set("DPoP", proof)

	resp, err := c.executor.Do(ctx, &xrpc.Request{
		Method: http.MethodPost,
		URL:    endpoint,
		Header: header,
		Body:   strings.NewReader(form.Encode()),
	})
	if err != nil {
		return nil, atperror.Wrap(atperror.KindNetworkError, "posting to "+endpoint, err)
	}
	return resp, nil
}

// mapOAuthError decodes resp's body as an RFC 6749 error response. If
// decoding fails or no "error" field is present, it falls back to a
// status-coded OAuth error.
func mapOAuthError(resp *xrpc.Response) error {
	var body struct {
		Error            string `json:"error"`
		ErrorDescription string `json:"error_description"`
		ErrorURI         string `json:"error_uri"`
	}
	if err := netutil.DecodeResponse(resp.Body, &body); err != nil || body.Error == "" {
		return atperror.New(atperror.KindOAuthError, fmt.Sprintf("oauth request failed with status %d", resp.StatusCode))
	}
	return atperror.NewOAuthError(body.Error, body.ErrorDescription, body.ErrorURI)
}

// Copyright 2026 The atproto-go Authors
// SPDX-License-Identifier: Apache-2.0

package oauth

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/atproto-go/sdk/lib/atperror"
	"github.com/atproto-go/sdk/lib/binhash"
	"github.com/atproto-go/sdk/lib/clock"
	"github.com/atproto-go/sdk/lib/sealed"
)

// needsRefreshWindow is the hard 60-second window before expiry at
// which a token set is considered due for refresh.
const needsRefreshWindow = 60 * time.Second

// TokenSet is the OAuth token response, normalized at store time.
type TokenSet struct {
	AccessToken  string     `json:"access_token"`
	RefreshToken string     `json:"refresh_token,omitempty"`
	TokenType    string     `json:"token_type"`
	ExpiresIn    *int64     `json:"expires_in,omitempty"`
	Scope        string     `json:"scope,omitempty"`
	Sub          string     `json:"sub,omitempty"`
	ExpiresAt    *time.Time `json:"expires_at,omitempty"`
}

// SecureStorage is the narrow capability a caller supplies for
// persisting a TokenManager's current TokenSet across process
// restarts. Get returns a nil slice and nil error when key has never
// been stored.
type SecureStorage interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Put(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
}

// TokenManager owns the current TokenSet, deciding when it needs
// refreshing and optionally persisting it through a SecureStorage
// backend. Safe for concurrent use.
type TokenManager struct {
	clock   clock.Clock
	storage SecureStorage
	key     string

	mu     sync.Mutex
	tokens *TokenSet
	loaded bool
}

// NewTokenManager returns a manager using c for time and, if storage
// is non-nil, persisting tokens under key.
func NewTokenManager(c clock.Clock, storage SecureStorage, key string) *TokenManager {
	return &TokenManager{clock: c, storage: storage, key: key}
}

// StoreTokens normalizes expires_at (filling it from expires_in when
// absent) and stores tokens as the current set, persisting them to
// the storage backend if one is configured.
func (m *TokenManager) StoreTokens(ctx context.Context, tokens TokenSet) error {
	if tokens.ExpiresAt == nil && tokens.ExpiresIn != nil {
		expiresAt := m.clock.Now().Add(time.Duration(*tokens.ExpiresIn) * time.Second)
		tokens.ExpiresAt = &expiresAt
	}

	m.mu.Lock()
	m.tokens = &tokens
	m.loaded = true
	m.mu.Unlock()

	if m.storage == nil {
		return nil
	}
	data, err := json.Marshal(tokens)
	if err != nil {
		return fmt.Errorf("oauth: marshaling token set: %w", err)
	}
	if err := m.storage.Put(ctx, m.key, data); err != nil {
		return fmt.Errorf("oauth: persisting token set: %w", err)
	}
	return nil
}

// GetTokens returns the current token set, loading it from storage on
// the first call for a cold manager. Returns nil, nil if no tokens
// are stored anywhere.
func (m *TokenManager) GetTokens(ctx context.Context) (*TokenSet, error) {
	if err := m.loadOnce(ctx); err != nil {
		return nil, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.tokens == nil {
		return nil, nil
	}
	copied := *m.tokens
	return &copied, nil
}

// ClearTokens removes the current token set from memory and, if
// configured, from the storage backend.
func (m *TokenManager) ClearTokens(ctx context.Context) error {
	m.mu.Lock()
	m.tokens = nil
	m.loaded = true
	m.mu.Unlock()

	if m.storage == nil {
		return nil
	}
	if err := m.storage.Delete(ctx, m.key); err != nil {
		return fmt.Errorf("oauth: clearing persisted token set: %w", err)
	}
	return nil
}

// NeedsRefresh reports whether the current token set needs refreshing:
// true when no tokens are stored, when expires_at is absent, or when
// now + 60s >= expires_at.
func (m *TokenManager) NeedsRefresh(ctx context.Context) (bool, error) {
	tokens, err := m.GetTokens(ctx)
	if err != nil {
		return false, err
	}
	if tokens == nil || tokens.ExpiresAt == nil {
		return true, nil
	}
	return !m.clock.Now().Add(needsRefreshWindow).Before(*tokens.ExpiresAt), nil
}

// IsExpired reports whether the current token set is expired: true
// when no tokens are stored, when expires_at is absent, or when
// now >= expires_at.
func (m *TokenManager) IsExpired(ctx context.Context) (bool, error) {
	tokens, err := m.GetTokens(ctx)
	if err != nil {
		return false, err
	}
	if tokens == nil || tokens.ExpiresAt == nil {
		return true, nil
	}
	return !m.clock.Now().Before(*tokens.ExpiresAt), nil
}

func (m *TokenManager) loadOnce(ctx context.Context) error {
	m.mu.Lock()
	if m.loaded || m.storage == nil {
		m.loaded = true
		m.mu.Unlock()
		return nil
	}
	m.mu.Unlock()

	data, err := m.storage.Get(ctx, m.key)
	if err != nil {
		return fmt.Errorf("oauth: loading persisted token set: %w", err)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if m.loaded {
		// Another call populated memory while storage was being read.
		return nil
	}
	m.loaded = true
	if len(data) == 0 {
		return nil
	}
	var tokens TokenSet
	if err := json.Unmarshal(data, &tokens); err != nil {
		return fmt.Errorf("oauth: decoding persisted token set: %w", err)
	}
	m.tokens = &tokens
	return nil
}

// FileSecureStorage is a reference SecureStorage backend that
// age-encrypts each blob (via lib/sealed) to a keypair held by the
// caller and writes it under dir, one file per key.
type FileSecureStorage struct {
	dir     string
	keypair *sealed.Keypair
}

// NewFileSecureStorage returns a storage backend rooted at dir,
// encrypting and decrypting with keypair. dir is created if absent.
func NewFileSecureStorage(dir string, keypair *sealed.Keypair) (*FileSecureStorage, error) {
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return nil, fmt.Errorf("oauth: creating secure storage directory: %w", err)
	}
	return &FileSecureStorage{dir: dir, keypair: keypair}, nil
}

func (s *FileSecureStorage) path(key string) string {
	digest := binhash.HashBytes([]byte(key))
	return filepath.Join(s.dir, binhash.FormatDigest(digest)+".age")
}

// Get returns the decrypted blob stored for key, or a nil slice and
// nil error if key has never been stored.
func (s *FileSecureStorage) Get(ctx context.Context, key string) ([]byte, error) {
	ciphertext, err := os.ReadFile(s.path(key))
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, atperror.Wrap(atperror.KindInternalError, "reading secure storage file", err)
	}

	plaintext, err := sealed.Decrypt(string(ciphertext), s.keypair.PrivateKey)
	if err != nil {
		return nil, atperror.Wrap(atperror.KindInternalError, "decrypting secure storage blob", err)
	}
	defer plaintext.Close()
	return append([]byte(nil), plaintext.Bytes()...), nil
}

// Put encrypts value to the storage keypair and writes it for key.
func (s *FileSecureStorage) Put(ctx context.Context, key string, value []byte) error {
	ciphertext, err := sealed.Encrypt(value, []string{s.keypair.PublicKey})
	if err != nil {
		return atperror.Wrap(atperror.KindInternalError, "encrypting secure storage blob", err)
	}
	if err := os.WriteFile(s.path(key), []byte(ciphertext), 0o600); err != nil {
		return atperror.Wrap(atperror.KindInternalError, "writing secure storage file", err)
	}
	return nil
}

// Delete removes the file stored for key, if any.
func (s *FileSecureStorage) Delete(ctx context.Context, key string) error {
	err := os.Remove(s.path(key))
	if err != nil && !os.IsNotExist(err) {
		return atperror.Wrap(atperror.KindInternalError, "removing secure storage file", err)
	}
	return nil
}

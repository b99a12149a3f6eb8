// Copyright 2026 The atproto-go Authors
// SPDX-License-Identifier: Apache-2.0

package mst

import (
	"context"
	"sync"

	"github.com/atproto-go/sdk/lib/atid"
	"github.com/atproto-go/sdk/lib/binhash"
)

// BlockStore is the narrow capability a Walk needs to dereference CID
// links: fetch raw block bytes by content address. Nothing in this
// package writes through BlockStore during a walk -- put/delete exist
// only so a reference implementation can be populated and torn down
// in tests and tooling.
type BlockStore interface {
	Get(ctx context.Context, cid atid.CIDLink) ([]byte, bool, error)
	Has(ctx context.Context, cid atid.CIDLink) (bool, error)
	Put(ctx context.Context, data []byte) (atid.CIDLink, error)
	Delete(ctx context.Context, cid atid.CIDLink) error
	Count() int
}

// MemoryBlockStore is an in-memory BlockStore that mints real CIDv1
// identifiers (multihash SHA-256, codec 0x71 dag-cbor) for every
// block it stores, rather than a language-specific hash.
type MemoryBlockStore struct {
	mu     sync.RWMutex
	blocks map[string][]byte
}

// NewMemoryBlockStore returns an empty MemoryBlockStore.
func NewMemoryBlockStore() *MemoryBlockStore {
	return &MemoryBlockStore{blocks: make(map[string][]byte)}
}

// Put stores data and returns its content address.
func (s *MemoryBlockStore) Put(ctx context.Context, data []byte) (atid.CIDLink, error) {
	cid, err := encodeCIDv1(data)
	if err != nil {
		return atid.CIDLink{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.blocks[cid.String()] = data
	return cid, nil
}

// Get returns the block stored under cid, if any.
func (s *MemoryBlockStore) Get(ctx context.Context, cid atid.CIDLink) ([]byte, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	data, ok := s.blocks[cid.String()]
	return data, ok, nil
}

// Has reports whether cid is present.
func (s *MemoryBlockStore) Has(ctx context.Context, cid atid.CIDLink) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.blocks[cid.String()]
	return ok, nil
}

// Delete removes the block stored under cid. Deleting an absent CID
// is not an error.
func (s *MemoryBlockStore) Delete(ctx context.Context, cid atid.CIDLink) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.blocks, cid.String())
	return nil
}

// Count returns the number of blocks currently stored.
func (s *MemoryBlockStore) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.blocks)
}

// cidv1Prefix is the uvarint-encoded (version=1, codec=0x71 dag-cbor,
// multihash-code=0x12 sha2-256, multihash-length=0x20) header that
// precedes the raw digest in a binary CIDv1.
var cidv1Prefix = []byte{0x01, 0x71, 0x12, 0x20}

// encodeCIDv1 hashes data with SHA-256 and wraps the digest in a
// binary CIDv1 (dag-cbor codec), returning its canonical base32
// multibase string form.
func encodeCIDv1(data []byte) (atid.CIDLink, error) {
	digest := binhash.HashBytes(data)
	raw := make([]byte, 0, len(cidv1Prefix)+len(digest))
	raw = append(raw, cidv1Prefix...)
	raw = append(raw, digest[:]...)
	return atid.NewCIDLink("b" + encodeBase32Multibase(raw))
}

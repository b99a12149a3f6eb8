// Copyright 2026 The atproto-go Authors
// SPDX-License-Identifier: Apache-2.0

// Package mst implements read-only traversal of a Merkle Search Tree:
// the prefix-compressed, content-addressed structure a repository
// uses to index its records.
//
// This package only walks an existing tree through a [BlockStore]
// capability -- it has no write path, no rebalancing, and no
// knowledge of how a tree was constructed. [MemoryBlockStore] is a
// reference store for tests and tooling, minting real CIDv1
// identifiers for whatever it is given.
package mst

// Copyright 2026 The atproto-go Authors
// SPDX-License-Identifier: Apache-2.0

// Package secret provides a memory-safe buffer for sensitive data such
// as passwords, access tokens, and encryption keys.
//
// [Buffer] allocates memory outside the Go heap via mmap(MAP_ANONYMOUS),
// locks it into physical RAM via mlock (preventing swap), and marks it
// excluded from core dumps via madvise(MADV_DONTDUMP). On Close, the
// memory is zeroed, unlocked, and unmapped. Because the memory lives
// outside the Go heap, the garbage collector cannot copy or relocate
// it, guaranteeing secret material does not persist after release.
//
// Constructors:
//
//   - [New] -- allocates a zero-filled buffer of a given size
//   - [NewFromBytes] -- copies into protected memory, zeros the source
//   - [ReadFromPath] -- reads a whitespace-trimmed secret from a file or stdin
//
// Access via [Buffer.Bytes] (slice into mmap region) or
// [Buffer.String] (heap copy for API boundaries); [Buffer.Len] reports
// the size. After Close, Bytes and String panic. Close is idempotent.
// [Zero] overwrites an ordinary byte slice in place.
//
// Depends on golang.org/x/sys/unix, with no dependency on any other
// package in this module.
// Imported by lib/sealed for age keypair and token protection, and by
// lib/atcrypto for private key material.
package secret

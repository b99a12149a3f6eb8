// Copyright 2026 The atproto-go Authors
// SPDX-License-Identifier: Apache-2.0

// Package binhash provides SHA256 content hashing for binary data.
//
// lib/mst uses this package to mint CIDv1 identifiers for MST nodes and
// record values: a block's CID is a multihash wrapping its SHA256
// digest. Comparing digests is also how cached blocks and CAR file
// content are verified against their claimed CID.
//
// The API surface is four functions:
//
//   - [HashBytes] -- hashes an in-memory byte slice
//   - [HashFile] -- streams a file through SHA256, returning a [32]byte
//     digest with constant memory usage regardless of file size
//   - [FormatDigest] -- converts a [32]byte digest to its canonical
//     hex-encoded string representation
//   - [ParseDigest] -- parses a hex-encoded digest string back to a
//     [32]byte array, validating length and encoding
//
// This package has no dependency on any other package in this module.
package binhash

// Copyright 2026 The atproto-go Authors
// SPDX-License-Identifier: Apache-2.0

// Package codec provides this module's standard CBOR encoding configuration.
//
// Two serialization formats are in play, with a clear boundary:
//
//   - JSON for the XRPC/HTTP surface: query and procedure request/response
//     bodies, OAuth metadata and token responses, DID documents.
//   - CBOR for content-addressed and wire-framed data: CAR file headers
//     and blocks, MST nodes, and firehose event frames — all of it
//     DAG-CBOR-shaped data defined by the protocol, not by this module.
//
// This package provides the shared CBOR encoding and decoding modes so
// that every package in this module encodes identically without
// duplicating configuration. The encoder uses Core Deterministic Encoding
// (RFC 8949 §4.2): sorted map keys, smallest integer encoding, no
// indefinite-length items. Same logical data always produces identical
// bytes.
//
// For buffer-oriented operations (CAR blocks, MST nodes):
//
//	data, err := codec.Marshal(value)
//	err = codec.Unmarshal(data, &value)
//
// For stream-oriented operations (firehose frames):
//
//	decoder := codec.NewDecoder(frameReader)
package codec

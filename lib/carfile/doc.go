// Copyright 2026 The atproto-go Authors
// SPDX-License-Identifier: Apache-2.0

// Package carfile reads and writes CAR v1 files: a varint-length
// header followed by a sequence of varint-length-prefixed blocks.
//
// This package does not parse the header's DAG-CBOR contents or split
// a block's leading CID from its payload — block retrieval only needs
// the framing, not the CID index. Write only emits the canonical
// empty-roots header; writing real roots is out of scope (this module
// never performs MST writes).
package carfile

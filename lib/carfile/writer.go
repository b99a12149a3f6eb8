// Copyright 2026 The atproto-go Authors
// SPDX-License-Identifier: Apache-2.0

package carfile

import (
	"fmt"
	"io"
	"sort"

	"github.com/atproto-go/sdk/lib/atperror"
)

// canonicalEmptyRootsHeader is the DAG-CBOR encoding of
// {"roots":[],"version":1} under Core Deterministic Encoding (map
// keys sorted bytewise — "roots" sorts before "version"): 17 bytes.
var canonicalEmptyRootsHeader = []byte{
	0xa2,
	0x65, 'r', 'o', 'o', 't', 's', 0x80,
	0x67, 'v', 'e', 'r', 's', 'i', 'o', 'n', 0x01,
}

// Write emits car as a CAR v1 stream: the canonical empty-roots
// header, then each block of car.Blocks varint-length-prefixed, in
// ascending key order.
func Write(w io.Writer, car *CARFile) error {
	if err := writeVarint(w, uint64(len(canonicalEmptyRootsHeader))); err != nil {
		return atperror.Wrap(atperror.KindRepositoryError, "writing car header length", err)
	}
	if _, err := w.Write(canonicalEmptyRootsHeader); err != nil {
		return atperror.Wrap(atperror.KindRepositoryError, "writing car header", err)
	}

	keys := make([]string, 0, len(car.Blocks))
	for key := range car.Blocks {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	for _, key := range keys {
		data := car.Blocks[key]
		if err := writeVarint(w, uint64(len(data))); err != nil {
			return atperror.Wrap(atperror.KindRepositoryError, fmt.Sprintf("writing block %q length", key), err)
		}
		if _, err := w.Write(data); err != nil {
			return atperror.Wrap(atperror.KindRepositoryError, fmt.Sprintf("writing block %q", key), err)
		}
	}
	return nil
}

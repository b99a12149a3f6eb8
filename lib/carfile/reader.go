// Copyright 2026 The atproto-go Authors
// SPDX-License-Identifier: Apache-2.0

package carfile

import (
	"bytes"
	"fmt"
	"io"

	"github.com/atproto-go/sdk/lib/atperror"
)

// CARFile is the parsed framing of a CAR v1 stream: the raw header
// bytes (unparsed — block retrieval never needs the root list) and
// each block's raw bytes, keyed by a synthetic "block-N" label
// reflecting stream order.
type CARFile struct {
	Header []byte
	Blocks map[string][]byte
}

// Read parses a CAR v1 stream: a varint header length, that many
// header bytes (skipped, not decoded), then a sequence of
// varint-length-prefixed blocks read to EOF.
func Read(r io.Reader) (*CARFile, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, atperror.Wrap(atperror.KindRepositoryError, "reading car file", err)
	}
	if len(data) < 2 {
		return nil, atperror.New(atperror.KindRepositoryError, "car file too small")
	}

	reader := bytes.NewReader(data)
	headerLen, err := readVarint(reader)
	if err != nil {
		return nil, atperror.Wrap(atperror.KindRepositoryError, "car file too small: reading header length", err)
	}
	header := make([]byte, headerLen)
	if _, err := io.ReadFull(reader, header); err != nil {
		return nil, atperror.Wrap(atperror.KindRepositoryError, "car file too small: reading header", err)
	}

	blocks := make(map[string][]byte)
	for index := 0; ; index++ {
		blockLen, err := readVarint(reader)
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, atperror.Wrap(atperror.KindRepositoryError, "reading block length", err)
		}
		block := make([]byte, blockLen)
		if _, err := io.ReadFull(reader, block); err != nil {
			return nil, atperror.Wrap(atperror.KindRepositoryError, fmt.Sprintf("car file too small: truncated block %d", index), err)
		}
		blocks[fmt.Sprintf("block-%d", index)] = block
	}

	return &CARFile{Header: header, Blocks: blocks}, nil
}

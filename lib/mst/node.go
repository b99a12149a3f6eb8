// Copyright 2026 The atproto-go Authors
// SPDX-License-Identifier: Apache-2.0

package mst

import (
	"encoding/base32"
	"fmt"
	"strings"

	"github.com/atproto-go/sdk/lib/atid"
	"github.com/atproto-go/sdk/lib/atperror"
	"github.com/atproto-go/sdk/lib/codec"
)

// Entry is one prefix-compressed key/value pair within a Node. The
// full key is reconstructed during a walk as
// previous_key[:PrefixLen] ++ KeySuffix.
type Entry struct {
	PrefixLen int
	KeySuffix []byte
	Value     atid.CIDLink
	Right     *atid.CIDLink
}

// Node is one block of a Merkle Search Tree: an optional leftmost
// subtree link plus a sorted run of Entry values, each of which may
// itself carry a subtree link on its right.
type Node struct {
	Left    *atid.CIDLink
	Entries []Entry
}

// wireNode mirrors the DAG-CBOR map {l, e: [{p, k, v, t}]} fixed by
// the protocol -- field names are not ours to choose.
type wireNode struct {
	Left    *codec.RawMessage `cbor:"l"`
	Entries []wireEntry       `cbor:"e"`
}

type wireEntry struct {
	PrefixLen int               `cbor:"p"`
	KeySuffix []byte            `cbor:"k"`
	Value     codec.RawMessage  `cbor:"v"`
	Right     *codec.RawMessage `cbor:"t"`
}

// DecodeNode decodes one MST block's DAG-CBOR bytes into a Node.
func DecodeNode(data []byte) (*Node, error) {
	var wire wireNode
	if err := codec.Unmarshal(data, &wire); err != nil {
		return nil, atperror.Wrap(atperror.KindMSTError, "decoding node", err)
	}

	node := &Node{}
	if wire.Left != nil {
		left, err := decodeCIDLink(*wire.Left)
		if err != nil {
			return nil, atperror.Wrap(atperror.KindMSTError, "decoding node left link", err)
		}
		node.Left = &left
	}

	node.Entries = make([]Entry, len(wire.Entries))
	for i, we := range wire.Entries {
		value, err := decodeCIDLink(we.Value)
		if err != nil {
			return nil, atperror.Wrap(atperror.KindMSTError, fmt.Sprintf("decoding entry %d value link", i), err)
		}
		entry := Entry{
			PrefixLen: we.PrefixLen,
			KeySuffix: we.KeySuffix,
			Value:     value,
		}
		if we.Right != nil {
			right, err := decodeCIDLink(*we.Right)
			if err != nil {
				return nil, atperror.Wrap(atperror.KindMSTError, fmt.Sprintf("decoding entry %d right link", i), err)
			}
			entry.Right = &right
		}
		node.Entries[i] = entry
	}

	return node, nil
}

// rawBase32 is Go's only unpadded base32 codec; it emits uppercase,
// so encodeBase32Multibase/decodeBase32Multibase fold case at the
// boundary to match the lowercase form the 'b' multibase code requires.
var rawBase32 = base32.StdEncoding.WithPadding(base32.NoPadding)

// encodeBase32Multibase returns the lowercase, unpadded base32
// encoding of data, the form used after the 'b' multibase prefix.
func encodeBase32Multibase(data []byte) string {
	return strings.ToLower(rawBase32.EncodeToString(data))
}

// decodeBase32Multibase reverses encodeBase32Multibase.
func decodeBase32Multibase(s string) ([]byte, error) {
	return rawBase32.DecodeString(strings.ToUpper(s))
}

// decodeCIDLink converts a DAG-CBOR tag-42 CID link (raw, still
// wrapped in its tag envelope) into an atid.CIDLink carrying the
// canonical base32 CIDv1 string -- the same string encodeCIDv1 (in
// memstore.go) produces, so block-store lookups succeed regardless of
// whether the CID came from the wire or was minted locally.
func decodeCIDLink(raw codec.RawMessage) (atid.CIDLink, error) {
	tag, err := codec.UnmarshalTag([]byte(raw))
	if err != nil {
		return atid.CIDLink{}, atperror.Wrap(atperror.KindMSTError, "decoding CID tag", err)
	}
	if tag.Number != 42 {
		return atid.CIDLink{}, atperror.New(atperror.KindMSTError, fmt.Sprintf("unexpected CID tag number %d", tag.Number))
	}
	content, ok := tag.Content.([]byte)
	if !ok {
		return atid.CIDLink{}, atperror.New(atperror.KindMSTError, "CID tag content is not a byte string")
	}
	// DAG-CBOR prefixes the binary CID with a multibase identity byte
	// (0x00) that marks the bytes as already binary, not text-encoded.
	if len(content) == 0 || content[0] != 0x00 {
		return atid.CIDLink{}, atperror.New(atperror.KindMSTError, "CID tag content missing identity multibase prefix")
	}
	return atid.NewCIDLink("b" + encodeBase32Multibase(content[1:]))
}

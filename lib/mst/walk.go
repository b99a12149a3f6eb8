// Copyright 2026 The atproto-go Authors
// SPDX-License-Identifier: Apache-2.0

package mst

import (
	"context"
	"fmt"

	"github.com/atproto-go/sdk/lib/atid"
	"github.com/atproto-go/sdk/lib/atperror"
)

// Record is one key/value leaf recovered from a walk, with the full
// key reconstructed from its prefix-compressed entry.
type Record struct {
	Key   string
	Value atid.CIDLink
}

// Walk performs a full in-order traversal of the tree rooted at root,
// returning every record in ascending key order.
func Walk(ctx context.Context, store BlockStore, root atid.CIDLink) ([]Record, error) {
	var records []Record
	if err := walkNode(ctx, store, root, "", func(r Record) error {
		records = append(records, r)
		return nil
	}); err != nil {
		return nil, err
	}
	return records, nil
}

// Lookup walks the tree rooted at root for the exact key, short-
// circuiting as soon as it is found. The second return value reports
// whether key was present.
func Lookup(ctx context.Context, store BlockStore, root atid.CIDLink, key string) (*Record, bool, error) {
	var found *Record
	stop := fmt.Errorf("mst: lookup short-circuit")

	err := walkNode(ctx, store, root, "", func(r Record) error {
		if r.Key == key {
			rec := r
			found = &rec
			return stop
		}
		if r.Key > key {
			// Keys are visited in ascending order; once we pass key
			// it cannot appear later in the walk.
			return stop
		}
		return nil
	})
	if err != nil && err != stop {
		return nil, false, err
	}
	if found == nil {
		return nil, false, nil
	}
	return found, true, nil
}

// walkNode performs an in-order walk of the subtree rooted at cid,
// invoking visit for each record in ascending key order. lastKey is
// the most recently reconstructed full key at this point in the walk,
// used to expand the next entry's prefix compression. visit returning
// a non-nil error stops the walk immediately and that error propagates
// up through walkNode's recursive calls.
func walkNode(ctx context.Context, store BlockStore, cid atid.CIDLink, lastKey string, visit func(Record) error) error {
	data, ok, err := store.Get(ctx, cid)
	if err != nil {
		return atperror.Wrap(atperror.KindMSTError, fmt.Sprintf("fetching node %s", cid.String()), err)
	}
	if !ok {
		return atperror.New(atperror.KindMSTError, fmt.Sprintf("node %s not found in block store", cid.String()))
	}

	node, err := DecodeNode(data)
	if err != nil {
		return atperror.Wrap(atperror.KindMSTError, fmt.Sprintf("decoding node %s", cid.String()), err)
	}

	if node.Left != nil {
		if err := walkNode(ctx, store, *node.Left, lastKey, visit); err != nil {
			return err
		}
	}

	for _, entry := range node.Entries {
		key, err := reconstructKey(lastKey, entry.PrefixLen, entry.KeySuffix)
		if err != nil {
			return atperror.Wrap(atperror.KindMSTError, fmt.Sprintf("reconstructing key in node %s", cid.String()), err)
		}
		lastKey = key

		if err := visit(Record{Key: key, Value: entry.Value}); err != nil {
			return err
		}

		if entry.Right != nil {
			if err := walkNode(ctx, store, *entry.Right, lastKey, visit); err != nil {
				return err
			}
		}
	}

	return nil
}

// reconstructKey expands a prefix-compressed entry key:
// previousKey[:prefixLen] ++ suffix, interpreted as UTF-8.
func reconstructKey(previousKey string, prefixLen int, suffix []byte) (string, error) {
	if prefixLen < 0 || prefixLen > len(previousKey) {
		return "", fmt.Errorf("prefix length %d out of range for previous key of length %d", prefixLen, len(previousKey))
	}
	return previousKey[:prefixLen] + string(suffix), nil
}

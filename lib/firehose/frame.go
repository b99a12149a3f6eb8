// Copyright 2026 The atproto-go Authors
// SPDX-License-Identifier: Apache-2.0

package firehose

import (
	"bytes"
	"io"
	"strings"

	"github.com/atproto-go/sdk/lib/atperror"
	"github.com/atproto-go/sdk/lib/codec"
)

// Event is the closed variant decoded from one firehose frame.
type Event interface {
	isEvent()
}

// Header is the first CBOR item of a frame: op == 1 means message,
// op == -1 means error; Type selects the body's shape for op == 1.
type Header struct {
	Op   int64   `cbor:"op"`
	Type *string `cbor:"t"`
}

// RepoOp is one operation within a CommitEvent. CID is nil only for a
// delete.
type RepoOp struct {
	Action string
	Path   string
	CID    *string
}

var validRepoOpActions = map[string]bool{
	"create": true,
	"update": true,
	"delete": true,
}

// Collection returns the path segment before the first '/'.
func (op RepoOp) Collection() string {
	if i := strings.IndexByte(op.Path, '/'); i >= 0 {
		return op.Path[:i]
	}
	return ""
}

// Rkey returns the path segment after the first '/'.
func (op RepoOp) Rkey() string {
	if i := strings.IndexByte(op.Path, '/'); i >= 0 {
		return op.Path[i+1:]
	}
	return ""
}

// CommitEvent reports a single repository commit.
type CommitEvent struct {
	Seq    int64
	TooBig bool
	Repo   string
	Rev    string
	Time   string
	Ops    []RepoOp
	Blocks []byte
}

func (CommitEvent) isEvent() {}

// IdentityEvent reports a change to a DID's identity document.
type IdentityEvent struct {
	Seq    int64
	DID    string
	Time   string
	Handle string
}

func (IdentityEvent) isEvent() {}

// HandleEvent reports a handle change for a DID.
type HandleEvent struct {
	Seq    int64
	DID    string
	Handle string
	Time   string
}

func (HandleEvent) isEvent() {}

// AccountEvent reports an account status change.
type AccountEvent struct {
	Seq    int64
	DID    string
	Time   string
	Active bool
	Status string
}

func (AccountEvent) isEvent() {}

// InfoEvent is an informational message from the relay, not tied to
// any repository.
type InfoEvent struct {
	Name    string
	Message string
}

func (InfoEvent) isEvent() {}

// UnknownEvent is any frame whose body type is not recognized. Raw
// carries the entire frame's original bytes.
type UnknownEvent struct {
	Type string
	Raw  []byte
}

func (UnknownEvent) isEvent() {}

type wireRepoOp struct {
	Action string  `cbor:"action"`
	Path   string  `cbor:"path"`
	CID    *string `cbor:"cid"`
}

type wireCommit struct {
	Seq    int64            `cbor:"seq"`
	TooBig bool             `cbor:"tooBig"`
	Repo   string           `cbor:"repo"`
	Rev    string           `cbor:"rev"`
	Time   string           `cbor:"time"`
	Ops    []wireRepoOp     `cbor:"ops"`
	Blocks codec.RawMessage `cbor:"blocks"`
}

type wireIdentity struct {
	Seq    int64  `cbor:"seq"`
	DID    string `cbor:"did"`
	Time   string `cbor:"time"`
	Handle string `cbor:"handle"`
}

type wireHandle struct {
	Seq    int64  `cbor:"seq"`
	DID    string `cbor:"did"`
	Handle string `cbor:"handle"`
	Time   string `cbor:"time"`
}

type wireAccount struct {
	Seq    int64  `cbor:"seq"`
	DID    string `cbor:"did"`
	Time   string `cbor:"time"`
	Active *bool  `cbor:"active"`
	Status string `cbor:"status"`
}

type wireInfo struct {
	Name    string `cbor:"name"`
	Message string `cbor:"message"`
}

// DecodeFrame decodes raw as two concatenated CBOR items: a header
// and a body whose shape is selected by the header's Type. Unknown
// types decode into UnknownEvent, carrying raw unchanged.
func DecodeFrame(raw []byte) (Event, error) {
	decoder := codec.NewDecoder(bytes.NewReader(raw))

	var header Header
	if err := decoder.Decode(&header); err != nil {
		return nil, atperror.Wrap(atperror.KindFrameDecodingError, "decoding frame header", err)
	}

	var body codec.RawMessage
	if err := decoder.Decode(&body); err != nil {
		if err == io.EOF {
			return nil, atperror.New(atperror.KindFrameDecodingError, "no body")
		}
		return nil, atperror.Wrap(atperror.KindFrameDecodingError, "decoding frame body", err)
	}
	if len(body) == 0 {
		return nil, atperror.New(atperror.KindFrameDecodingError, "no body")
	}

	if header.Type == nil {
		return UnknownEvent{Type: "", Raw: raw}, nil
	}

	switch *header.Type {
	case "#commit":
		var wire wireCommit
		if err := codec.Unmarshal(body, &wire); err != nil {
			return nil, atperror.Wrap(atperror.KindFrameDecodingError, "decoding #commit body", err)
		}
		ops := make([]RepoOp, len(wire.Ops))
		for i, wireOp := range wire.Ops {
			action := wireOp.Action
			if !validRepoOpActions[action] {
				action = "create"
			}
			ops[i] = RepoOp{Action: action, Path: wireOp.Path, CID: wireOp.CID}
		}
		return CommitEvent{
			Seq:    wire.Seq,
			TooBig: wire.TooBig,
			Repo:   wire.Repo,
			Rev:    wire.Rev,
			Time:   wire.Time,
			Ops:    ops,
			Blocks: []byte(wire.Blocks),
		}, nil

	case "#identity":
		var wire wireIdentity
		if err := codec.Unmarshal(body, &wire); err != nil {
			return nil, atperror.Wrap(atperror.KindFrameDecodingError, "decoding #identity body", err)
		}
		return IdentityEvent{Seq: wire.Seq, DID: wire.DID, Time: wire.Time, Handle: wire.Handle}, nil

	case "#handle":
		var wire wireHandle
		if err := codec.Unmarshal(body, &wire); err != nil {
			return nil, atperror.Wrap(atperror.KindFrameDecodingError, "decoding #handle body", err)
		}
		return HandleEvent{Seq: wire.Seq, DID: wire.DID, Handle: wire.Handle, Time: wire.Time}, nil

	case "#account":
		var wire wireAccount
		if err := codec.Unmarshal(body, &wire); err != nil {
			return nil, atperror.Wrap(atperror.KindFrameDecodingError, "decoding #account body", err)
		}
		active := wire.Active == nil || *wire.Active
		return AccountEvent{Seq: wire.Seq, DID: wire.DID, Time: wire.Time, Active: active, Status: wire.Status}, nil

	case "#info":
		var wire wireInfo
		if err := codec.Unmarshal(body, &wire); err != nil {
			return nil, atperror.Wrap(atperror.KindFrameDecodingError, "decoding #info body", err)
		}
		return InfoEvent{Name: wire.Name, Message: wire.Message}, nil

	default:
		return UnknownEvent{Type: *header.Type, Raw: raw}, nil
	}
}

// Copyright 2026 The atproto-go Authors
// SPDX-License-Identifier: Apache-2.0

// Package firehose decodes the relay's CBOR-framed event stream and
// drives a long-lived WebSocket subscription over it.
//
// [DecodeFrame] turns one frame's raw bytes into an [Event]; a frame
// is two concatenated CBOR items, a header selecting the body's
// shape and the body itself. [FirehoseClient] owns the subscription
// loop: it builds the subscribeRepos URL, opens a [Transport], and
// yields decoded events on a channel until the context is cancelled
// or the transport fails. Frame-decoding errors are dropped silently
// so one malformed frame does not end the stream; transport errors
// are not.
package firehose

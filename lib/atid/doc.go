// Copyright 2026 The atproto-go Authors
// SPDX-License-Identifier: Apache-2.0

// Package atid provides validated value types for the AT Protocol's
// identifier kinds: DID, Handle, NSID, AT-URI, and TID.
//
// Each type follows the same shape: a Parse function that validates a raw
// string and returns an immutable value (never a pointer), structural
// accessors, a String method that round-trips through Parse, and
// MarshalText/UnmarshalText for use in JSON and other text-based formats.
// Parsing failure is reported through the returned error, never a panic,
// except in the Must-prefixed variants reserved for tests and static
// initialization.
package atid

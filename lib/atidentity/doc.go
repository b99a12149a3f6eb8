// Copyright 2026 The atproto-go Authors
// SPDX-License-Identifier: Apache-2.0

// Package atidentity resolves DIDs and handles to DID documents, PDS
// service endpoints, and OAuth authorization servers.
//
// [DIDResolver] is implemented by [PLCResolver] (the did:plc method),
// [WebResolver] (did:web), and composed by [CompositeResolver], which
// dispatches on method. [HandleResolver] resolves a handle to a DID via
// the HTTP well-known endpoint. [DiscoverPDS] and [DiscoverAuthServer]
// walk a resolved DID document / PDS metadata to find the services a
// client needs to talk to next.
package atidentity

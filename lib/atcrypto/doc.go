// Copyright 2026 The atproto-go Authors
// SPDX-License-Identifier: Apache-2.0

// Package atcrypto provides the P-256/ES256 primitives this module's
// signing, OAuth DPoP, and did:key operations are built on: keypair
// generation, sign/verify, SHA-256, JWK construction, DER-to-raw
// signature conversion, multikey encoding, and base64url helpers.
//
// Private key material is held in a [secret.Buffer] (mmap-backed,
// locked against swap, zeroed on Close) for the lifetime of the
// PrivateKey value. Generate a keypair with [GenerateP256Keypair] and
// close the private key when it is no longer needed.
package atcrypto

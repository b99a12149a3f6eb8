// Copyright 2026 The atproto-go Authors
// SPDX-License-Identifier: Apache-2.0

// atproto-doctor is a diagnostic CLI exercising this module's
// identity resolution, XRPC, and firehose components end to end
// against a live network.
package main

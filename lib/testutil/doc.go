// Copyright 2026 The atproto-go Authors
// SPDX-License-Identifier: Apache-2.0

// Package testutil provides shared test helpers used across this module's
// packages.
//
// [RequireReceive], [RequireSend], and [RequireClosed] encapsulate the
// timeout safety valve pattern (select with time.After fallback) so that
// individual tests do not need direct time.After calls. The timeouts are
// real wall-clock durations.
//
// [UniqueID] generates monotonically increasing identifiers for test
// disambiguation. Use it instead of time.Now() when tests need unique
// record keys, transaction IDs, or request bodies distinguishable across
// concurrent subtests.
//
// All helpers call t.Fatalf on failure rather than returning errors, since
// test setup failures are not recoverable.
package testutil

// Copyright (c) 2020 MinIO Inc. All rights reserved.
// Use of this source code is governed by a license that can be
// found in the LICENSE file.

// Package widehash computes 128 and 256-bit digests of byte buffers in bulk.
//
// Hash128 and Hash256 hold a fixed-width Value. AddFastHash overwrites the
// value with non-cryptographic hashes of its argument (only the second half
// of a Hash256 chains across calls), while Hash256.AddSHA256 streams a
// SHA-256 message across calls.
//
// An Engine runs many independent jobs at once: fast hash jobs fan out over
// goroutines, SHA-256 jobs are interleaved over a fixed number of lanes that
// refill from the job queue as jobs run out of whole blocks, the lanes of a
// step running side by side on every backend but Generic. Batches always
// produce exactly the digests of the equivalent single calls.
//
// Values order as big-endian unsigned numbers; the comparison and the
// SHA-256 block provider follow the Backend detected at start up, which can
// be forced with the WIDEHASH_BACKEND environment variable.
package widehash

// Copyright (c) 2020 MinIO Inc. All rights reserved.
// Use of this source code is governed by a license that can be
// found in the LICENSE file.

package widehash

import "sync"

// parallelHalves is the input size from which AddFastHash computes its two
// halves concurrently.
const parallelHalves = 1024

// Hash256 accumulates a 256-bit digest, either as two fast hash halves or as
// a SHA-256 message. Only one of the two modes should be used between resets.
//
// The zero value is ready to use.
type Hash256 struct {
	sum    Value256
	stream shaStream
}

// Hash256FromValue returns an accumulator holding v. A following AddSHA256
// continues from v's bytes read as a running SHA-256 state, unless v is zero.
func Hash256FromValue(v Value256) Hash256 { return Hash256{sum: v} }

// Sum returns the current digest.
func (h *Hash256) Sum() Value256 { return h.sum }

// Hex returns the current digest in hex.
func (h *Hash256) Hex() string { return h.sum.Hex() }

// Reset clears the digest and any running SHA-256 message.
func (h *Hash256) Reset() { *h = Hash256{} }

// AddFastHash sets half A to fast hash 1 of data, discarding its previous
// value, and half B to fast hash 2 of data seeded with the previous half B.
// Half B therefore chains across calls while half A does not.
//
// Any running SHA-256 message is abandoned.
func (h *Hash256) AddFastHash(data []byte) {
	h.addFastHash(data, len(data) >= parallelHalves)
}

func (h *Hash256) addFastHash(data []byte, parallel bool) {
	_, seed := h.sum.Halves()
	var a, b Value128
	if parallel {
		var wg sync.WaitGroup
		wg.Add(1)
		go func() { b = murmurHash128(data, seed); wg.Done() }()
		a = spookyHash128(data)
		wg.Wait()
	} else {
		a = spookyHash128(data)
		b = murmurHash128(data, seed)
	}
	h.sum = JoinValue256(a, b)
	h.stream.started = false
}

// AddSHA256 appends data to the SHA-256 message and stores the digest of
// everything written so far. Unlike AddFastHash this is incremental: writing
// a message in several calls yields the same digest as a single call.
func (h *Hash256) AddSHA256(data []byte) {
	b := ActiveBackend()
	c := getCompressor(b)
	h.addSHA256(c, data)
	putCompressor(b, c)
}

func (h *Hash256) addSHA256(c *compressor, data []byte) {
	h.stream.begin(&h.sum)
	h.stream.write(c, data)
	h.sum = h.stream.sum(c)
}

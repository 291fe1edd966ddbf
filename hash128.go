// Copyright (c) 2020 MinIO Inc. All rights reserved.
// Use of this source code is governed by a license that can be
// found in the LICENSE file.

package widehash

// Hash128 accumulates a 128-bit fast hash digest. The zero value is ready
// to use.
type Hash128 struct {
	sum Value128
}

// Hash128FromValue returns an accumulator holding v.
func Hash128FromValue(v Value128) Hash128 { return Hash128{sum: v} }

// AddFastHash overwrites the digest with the fast hash of data. It is not
// incremental: the result depends on data only, never on the previous digest.
func (h *Hash128) AddFastHash(data []byte) {
	h.sum = spookyHash128(data)
}

// Sum returns the current digest.
func (h *Hash128) Sum() Value128 { return h.sum }

// Hex returns the current digest in hex.
func (h *Hash128) Hex() string { return h.sum.Hex() }

// Copyright (c) 2020 MinIO Inc. All rights reserved.
// Use of this source code is governed by a license that can be
// found in the LICENSE file.

package widehash

import (
	"encoding/binary"

	"github.com/dgryski/go-spooky"
	"github.com/twmb/murmur3"
)

// spookyHash128 is fast hash 1: SpookyHash V2, 128-bit, fixed zero seed.
func spookyHash128(data []byte) (v Value128) {
	var h1, h2 uint64
	spooky.Hash128(data, &h1, &h2)
	binary.LittleEndian.PutUint64(v[0:], h1)
	binary.LittleEndian.PutUint64(v[8:], h2)
	return v
}

// murmurHash128 is fast hash 2: MurmurHash3 x64 128-bit seeded with both
// words of seed.
func murmurHash128(data []byte, seed Value128) (v Value128) {
	s1 := binary.LittleEndian.Uint64(seed[0:])
	s2 := binary.LittleEndian.Uint64(seed[8:])
	h1, h2 := murmur3.SeedSum128(s1, s2, data)
	binary.LittleEndian.PutUint64(v[0:], h1)
	binary.LittleEndian.PutUint64(v[8:], h2)
	return v
}

// Copyright (c) 2020 MinIO Inc. All rights reserved.
// Use of this source code is governed by a license that can be
// found in the LICENSE file.

package widehash

import "encoding/binary"

// compareBytes is selected together with the active backend. Every
// implementation must agree with compareGeneric on every input.
var compareBytes = compareGeneric

// compareGeneric is the portable byte at a time comparison.
func compareGeneric(a, b []byte) int {
	for i := range a {
		if a[i] != b[i] {
			if a[i] < b[i] {
				return -1
			}
			return 1
		}
	}
	return 0
}

// compareWords compares 8 bytes per step as big-endian words, which keeps
// the most significant byte first. len(a) must be a multiple of 8.
func compareWords(a, b []byte) int {
	for i := 0; i+8 <= len(a); i += 8 {
		x, y := binary.BigEndian.Uint64(a[i:]), binary.BigEndian.Uint64(b[i:])
		if x != y {
			if x < y {
				return -1
			}
			return 1
		}
	}
	return 0
}

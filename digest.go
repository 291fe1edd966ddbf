// Copyright (c) 2020 MinIO Inc. All rights reserved.
// Use of this source code is governed by a license that can be
// found in the LICENSE file.

package widehash

import "hash"

// sha256Digest adapts Hash256's SHA-256 mode to hash.Hash.
type sha256Digest struct {
	h Hash256
}

// NewSHA256 returns a hash.Hash computing SHA-256 through Hash256.AddSHA256.
func NewSHA256() hash.Hash {
	return &sha256Digest{}
}

// Size - Return size of checksum
func (d *sha256Digest) Size() int { return Size256 }

// BlockSize - Return blocksize of checksum
func (d *sha256Digest) BlockSize() int { return BlockSize }

// Reset - reset digest to its initial values
func (d *sha256Digest) Reset() { d.h.Reset() }

// Write to digest
func (d *sha256Digest) Write(p []byte) (nn int, err error) {
	d.h.AddSHA256(p)
	return len(p), nil
}

// Sum - Return SHA-256 sum in bytes
func (d *sha256Digest) Sum(in []byte) []byte {
	h := d.h
	if !h.stream.started {
		// nothing written yet: digest of the empty message
		h.AddSHA256(nil)
	}
	sum := h.Sum()
	return append(in, sum[:]...)
}

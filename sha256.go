// Copyright (c) 2020 MinIO Inc. All rights reserved.
// Use of this source code is governed by a license that can be
// found in the LICENSE file.

package widehash

import (
	"crypto/sha256"
	"encoding"
	"encoding/binary"
	"hash"
	"sync"

	sha256simd "github.com/minio/sha256-simd"
)

// BlockSize is the SHA-256 block size in bytes.
const BlockSize = 64

// Marshaled hash state shared by crypto/sha256 and sha256-simd:
// magic, 8 state words, block buffer, message length.
const (
	stateMagic = "sha\x03"
	stateSize  = len(stateMagic) + 8*4 + BlockSize + 8
)

// SHA-256 initialization constants
var shaInit = [8]uint32{
	0x6a09e667, 0xbb67ae85, 0x3c6ef372, 0xa54ff53a,
	0x510e527f, 0x9b05688c, 0x1f83d9ab, 0x5be0cd19,
}

type stateHash interface {
	hash.Hash
	encoding.BinaryMarshaler
	encoding.BinaryUnmarshaler
}

// compressor exposes block compression and finalization of a SHA-256
// implementation by restoring and capturing its marshaled state. It holds no
// message state between calls.
type compressor struct {
	h   stateHash
	buf [stateSize]byte
}

var compressorPools = [2]sync.Pool{
	{New: func() any { return &compressor{h: sha256.New().(stateHash)} }},
	{New: func() any { return newSIMDCompressor() }},
}

func newSIMDCompressor() *compressor {
	if h, ok := sha256simd.New().(stateHash); ok && stateCompatible(h) {
		return &compressor{h: h}
	}
	return &compressor{h: sha256.New().(stateHash)}
}

// stateCompatible reports whether h marshals its state in the layout load
// and compress rely on.
func stateCompatible(h stateHash) bool {
	b, err := h.MarshalBinary()
	if err != nil || len(b) != stateSize || string(b[:len(stateMagic)]) != stateMagic {
		return false
	}
	return h.UnmarshalBinary(b) == nil
}

func getCompressor(b Backend) *compressor {
	if b == Generic {
		return compressorPools[0].Get().(*compressor)
	}
	return compressorPools[1].Get().(*compressor)
}

func putCompressor(b Backend, c *compressor) {
	if b == Generic {
		compressorPools[0].Put(c)
		return
	}
	compressorPools[1].Put(c)
}

// load restores the hash to state with tail pending; len(tail) must equal
// total%BlockSize.
func (c *compressor) load(state *[8]uint32, tail []byte, total uint64) {
	b := c.buf[:]
	copy(b, stateMagic)
	off := len(stateMagic)
	for i, w := range state {
		binary.BigEndian.PutUint32(b[off+4*i:], w)
	}
	off += 4 * len(state)
	clear(b[off : off+BlockSize])
	copy(b[off:], tail)
	off += BlockSize
	binary.BigEndian.PutUint64(b[off:], total)
	if err := c.h.UnmarshalBinary(b); err != nil {
		panic("widehash: sha256 state rejected: " + err.Error())
	}
}

// compress runs the block function over blocks, a whole number of blocks.
func (c *compressor) compress(state *[8]uint32, blocks []byte) {
	if len(blocks) == 0 {
		return
	}
	if len(blocks)%BlockSize != 0 {
		panic("widehash: partial block passed to compress")
	}
	c.load(state, nil, 0)
	c.h.Write(blocks)
	b, err := c.h.MarshalBinary()
	if err != nil {
		panic("widehash: sha256 state capture failed: " + err.Error())
	}
	for i := range state {
		state[i] = binary.BigEndian.Uint32(b[len(stateMagic)+4*i:])
	}
}

// finalize pads tail with the 0x80 marker and the 64-bit big-endian bit
// length of the total message. state is left untouched.
func (c *compressor) finalize(state *[8]uint32, tail []byte, total uint64) (sum Value256) {
	c.load(state, tail, total)
	c.h.Sum(sum[:0])
	return sum
}

// shaStream is the running SHA-256 message carried by a Hash256.
type shaStream struct {
	state   [8]uint32
	tail    [BlockSize]byte
	ntail   int
	total   uint64
	started bool
}

// begin starts a message unless one is running. An all-zero seed starts
// from the SHA-256 initialization vector, anything else is taken as a
// running state.
func (s *shaStream) begin(seed *Value256) {
	if s.started {
		return
	}
	*s = shaStream{started: true}
	if seed.IsZero() {
		s.state = shaInit
		return
	}
	for i := range s.state {
		s.state[i] = binary.BigEndian.Uint32(seed[4*i:])
	}
}

// prime accounts for p and completes a pending tail from its head. The rest
// of p is returned; its whole blocks have still to be compressed.
func (s *shaStream) prime(c *compressor, p []byte) []byte {
	s.total += uint64(len(p))
	if s.ntail > 0 {
		n := copy(s.tail[s.ntail:], p)
		s.ntail += n
		p = p[n:]
		if s.ntail == BlockSize {
			c.compress(&s.state, s.tail[:])
			s.ntail = 0
		}
	}
	return p
}

// keep stores a leftover of fewer than BlockSize bytes as the new tail.
func (s *shaStream) keep(p []byte) {
	if len(p) > 0 {
		s.ntail = copy(s.tail[:], p)
	}
}

func (s *shaStream) write(c *compressor, p []byte) {
	p = s.prime(c, p)
	n := len(p) &^ (BlockSize - 1)
	c.compress(&s.state, p[:n])
	s.keep(p[n:])
}

func (s *shaStream) sum(c *compressor) Value256 {
	return c.finalize(&s.state, s.tail[:s.ntail], s.total)
}

// Copyright (c) 2020 MinIO Inc. All rights reserved.
// Use of this source code is governed by a license that can be
// found in the LICENSE file.

package widehash

import (
	"crypto/rand"
	"encoding/binary"
	"fmt"
	"io"
	"math"
	"math/bits"
	"unsafe"

	"github.com/seehuhn/mt19937"
)

// Filler fills fixed-width values with pseudo-random bits. Every call seeds
// a fresh generator from the entropy source, so a Filler may be used
// concurrently on disjoint destinations if its entropy source allows it.
type Filler struct {
	entropy io.Reader
}

// NewFiller returns a Filler drawing seeds from entropy.
// If entropy is nil, crypto/rand.Reader is used.
func NewFiller(entropy io.Reader) *Filler {
	if entropy == nil {
		entropy = rand.Reader
	}
	return &Filler{entropy: entropy}
}

var defaultFiller = NewFiller(nil)

// FillQuality writes count random values to dst[:count] using a Mersenne
// Twister (MT19937-64) seeded from f's entropy source. A nil f uses
// crypto/rand.Reader.
//
// ErrFillOverflow is returned if count values do not fit in an int sized
// byte count.
func FillQuality[V Value128 | Value256](f *Filler, dst []V, count int) error {
	if f == nil {
		f = defaultFiller
	}
	var zero V
	size := uint64(unsafe.Sizeof(zero))
	if count < 0 {
		return &ErrLengthOutOfRange{Index: 0, Length: count, Available: len(dst)}
	}
	hi, n := bits.Mul64(uint64(count), size)
	if hi != 0 || n > math.MaxInt {
		return ErrFillOverflow
	}
	if count > len(dst) {
		return &ErrLengthOutOfRange{Index: 0, Length: count, Available: len(dst)}
	}
	if count == 0 {
		return nil
	}

	gen, err := f.generator()
	if err != nil {
		return err
	}
	buf := unsafe.Slice((*byte)(unsafe.Pointer(&dst[0])), int(n))
	for i := 0; i < len(buf); i += 8 {
		binary.LittleEndian.PutUint64(buf[i:], gen.Uint64())
	}
	return nil
}

// FillFast is documented as the cheaper, lower quality fill. It currently
// produces exactly what FillQuality does.
func FillFast[V Value128 | Value256](f *Filler, dst []V, count int) error {
	return FillQuality(f, dst, count)
}

func (f *Filler) generator() (*mt19937.MT19937, error) {
	var seed [4 * 8]byte
	if _, err := io.ReadFull(f.entropy, seed[:]); err != nil {
		return nil, fmt.Errorf("widehash: read entropy: %w", err)
	}
	key := make([]uint64, 4)
	for i := range key {
		key[i] = binary.LittleEndian.Uint64(seed[8*i:])
	}
	gen := mt19937.New()
	gen.SeedFromSlice(key)
	return gen, nil
}

// FillQuality128 fills dst[:count]. See FillQuality.
func (f *Filler) FillQuality128(dst []Value128, count int) error { return FillQuality(f, dst, count) }

// FillQuality256 fills dst[:count]. See FillQuality.
func (f *Filler) FillQuality256(dst []Value256, count int) error { return FillQuality(f, dst, count) }

// FillFast128 fills dst[:count]. See FillFast.
func (f *Filler) FillFast128(dst []Value128, count int) error { return FillFast(f, dst, count) }

// FillFast256 fills dst[:count]. See FillFast.
func (f *Filler) FillFast256(dst []Value256, count int) error { return FillFast(f, dst, count) }

// Copyright (c) 2020 MinIO Inc. All rights reserved.
// Use of this source code is governed by a license that can be
// found in the LICENSE file.

package widehash

import (
	"encoding/hex"
	"fmt"
)

// Byte widths of the fixed-width values.
const (
	Size128 = 16
	Size256 = 32
)

// Value128 is an opaque 128-bit value. Values order as unsigned big
// numbers whose most significant byte is the first byte.
type Value128 [Size128]byte

// Value256 is an opaque 256-bit value with the same ordering rules as
// Value128.
type Value256 [Size256]byte

// Value128FromBytes copies an exactly 16 byte source into a Value128.
func Value128FromBytes(b []byte) (v Value128, err error) {
	if len(b) != Size128 {
		return v, &ErrInvalidLength{Expected: Size128, Actual: len(b)}
	}
	copy(v[:], b)
	return v, nil
}

// ParseValue128 decodes the output of Value128.Hex.
func ParseValue128(s string) (v Value128, err error) {
	err = decodeHex(v[:], s)
	return v, err
}

// Bytes returns a copy of the raw bytes.
func (v Value128) Bytes() []byte { return append([]byte(nil), v[:]...) }

// Equal reports byte-exact equality.
func (v Value128) Equal(o Value128) bool { return v == o }

// Compare returns -1, 0 or +1.
func (v Value128) Compare(o Value128) int { return compareBytes(v[:], o[:]) }

func (v Value128) Less(o Value128) bool         { return v.Compare(o) < 0 }
func (v Value128) LessEqual(o Value128) bool    { return v.Compare(o) <= 0 }
func (v Value128) Greater(o Value128) bool      { return v.Compare(o) > 0 }
func (v Value128) GreaterEqual(o Value128) bool { return v.Compare(o) >= 0 }

// IsZero reports whether every bit is clear.
func (v Value128) IsZero() bool { return v == Value128{} }

// Hex renders the value as 32 lowercase hex digits.
func (v Value128) Hex() string { return hex.EncodeToString(v[:]) }

func (v Value128) String() string { return v.Hex() }

// Value256FromBytes copies an exactly 32 byte source into a Value256.
func Value256FromBytes(b []byte) (v Value256, err error) {
	if len(b) != Size256 {
		return v, &ErrInvalidLength{Expected: Size256, Actual: len(b)}
	}
	copy(v[:], b)
	return v, nil
}

// ParseValue256 decodes the output of Value256.Hex.
func ParseValue256(s string) (v Value256, err error) {
	err = decodeHex(v[:], s)
	return v, err
}

// JoinValue256 places a in the first and b in the second half.
func JoinValue256(a, b Value128) (v Value256) {
	copy(v[:Size128], a[:])
	copy(v[Size128:], b[:])
	return v
}

// Halves splits the value into the two 128-bit halves used by fast hashing.
func (v Value256) Halves() (a, b Value128) {
	copy(a[:], v[:Size128])
	copy(b[:], v[Size128:])
	return a, b
}

// Bytes returns a copy of the raw bytes.
func (v Value256) Bytes() []byte { return append([]byte(nil), v[:]...) }

// Equal reports byte-exact equality.
func (v Value256) Equal(o Value256) bool { return v == o }

// Compare returns -1, 0 or +1.
func (v Value256) Compare(o Value256) int { return compareBytes(v[:], o[:]) }

func (v Value256) Less(o Value256) bool         { return v.Compare(o) < 0 }
func (v Value256) LessEqual(o Value256) bool    { return v.Compare(o) <= 0 }
func (v Value256) Greater(o Value256) bool      { return v.Compare(o) > 0 }
func (v Value256) GreaterEqual(o Value256) bool { return v.Compare(o) >= 0 }

// IsZero reports whether every bit is clear.
func (v Value256) IsZero() bool { return v == Value256{} }

// Hex renders the value as 64 lowercase hex digits.
func (v Value256) Hex() string { return hex.EncodeToString(v[:]) }

func (v Value256) String() string { return v.Hex() }

func decodeHex(dst []byte, s string) error {
	if len(s) != 2*len(dst) {
		return &ErrInvalidLength{Expected: 2 * len(dst), Actual: len(s)}
	}
	if _, err := hex.Decode(dst, []byte(s)); err != nil {
		return fmt.Errorf("widehash: decode %q: %w", s, err)
	}
	return nil
}

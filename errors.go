// Copyright (c) 2020 MinIO Inc. All rights reserved.
// Use of this source code is governed by a license that can be
// found in the LICENSE file.

package widehash

import (
	"errors"
	"fmt"
)

var (
	// ErrPrecondition is wrapped by every error reporting a caller contract
	// violation (mismatched batch arrays, out of range lengths).
	ErrPrecondition = errors.New("widehash: precondition violated")

	// ErrFillOverflow is returned when the byte count of a random fill
	// cannot be represented.
	ErrFillOverflow = errors.New("widehash: fill size overflows")
)

// ErrBatchMismatch indicates that the accumulator, buffer and length arrays
// handed to a batch operation do not have the same number of entries.
type ErrBatchMismatch struct {
	Hashes  int
	Buffers int
	Lengths int
}

func (e *ErrBatchMismatch) Error() string {
	return fmt.Sprintf("widehash: batch mismatch: %d hashes, %d buffers, %d lengths", e.Hashes, e.Buffers, e.Lengths)
}

func (e *ErrBatchMismatch) Unwrap() error { return ErrPrecondition }

// ErrLengthOutOfRange indicates a requested length that the backing slice
// cannot satisfy.
type ErrLengthOutOfRange struct {
	Index     int
	Length    int
	Available int
}

func (e *ErrLengthOutOfRange) Error() string {
	return fmt.Sprintf("widehash: length %d out of range for entry %d (have %d)", e.Length, e.Index, e.Available)
}

func (e *ErrLengthOutOfRange) Unwrap() error { return ErrPrecondition }

// ErrInvalidLength indicates a byte or hex source of the wrong size for a
// fixed-width value.
type ErrInvalidLength struct {
	Expected int
	Actual   int
}

func (e *ErrInvalidLength) Error() string {
	return fmt.Sprintf("widehash: invalid length: expected %d, got %d", e.Expected, e.Actual)
}

// ErrInvalidLanes indicates a lane width outside 1..MaxLanes.
type ErrInvalidLanes struct {
	Lanes int
}

func (e *ErrInvalidLanes) Error() string {
	return fmt.Sprintf("widehash: invalid lane width %d (must be 1..%d)", e.Lanes, MaxLanes)
}

func (e *ErrInvalidLanes) Unwrap() error { return ErrPrecondition }

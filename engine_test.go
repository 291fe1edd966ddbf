// Copyright (c) 2020 MinIO Inc. All rights reserved.
// Use of this source code is governed by a license that can be
// found in the LICENSE file.

package widehash

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// batchLengths mixes empty, short, exact multiple and odd lengths.
var batchLengths = []int{0, 1, 63, 64, 65, 127, 128, 129, 191, 192, 1000, 4096, 5000, 55, 56, 640, 3, 64 * 33}

func batchInput(seed int64, lengths []int) (data [][]byte) {
	for i, l := range lengths {
		// leave slack behind every buffer so lengths[i] is honoured
		data = append(data, randomBytes(seed+int64(i), l+17))
	}
	return data
}

func newTestEngine(t testing.TB, opts ...Option) *Engine {
	e, err := NewEngine(opts...)
	require.NoError(t, err)
	return e
}

func TestBatchAddSHA256Equivalence(t *testing.T) {
	data := batchInput(100, batchLengths)
	want := make([]Value256, len(data))
	for i := range data {
		want[i] = stdSum(data[i][:batchLengths[i]])
	}

	for _, b := range availableBackends() {
		for _, lanes := range []int{1, 2, 3, 4, 8, 16, MaxLanes} {
			t.Run(fmt.Sprintf("%s/%d", b, lanes), func(t *testing.T) {
				e := newTestEngine(t, WithLanes(lanes), WithBackend(b))
				hashes := make([]Hash256, len(data))
				require.NoError(t, e.BatchAddSHA256(context.Background(), hashes, data, batchLengths))
				for i := range hashes {
					require.Equal(t, want[i], hashes[i].Sum(), "job %d length %d", i, batchLengths[i])
				}
			})
		}
	}
}

func TestBatchAddSHA256MatchesSingle(t *testing.T) {
	rng := rand.New(rand.NewSource(5))
	lengths := make([]int, 37)
	for i := range lengths {
		lengths[i] = rng.Intn(2000)
	}
	data := batchInput(200, lengths)

	// both sides continue from a pending tail and from a non-zero value
	prefix := randomBytes(9, 100)
	prepare := func() []Hash256 {
		hashes := make([]Hash256, len(lengths))
		for i := range hashes {
			switch i % 3 {
			case 1:
				hashes[i].AddSHA256(prefix[:i])
			case 2:
				hashes[i] = Hash256FromValue(stdSum(prefix[:i]))
			}
		}
		return hashes
	}

	single := prepare()
	for i := range single {
		single[i].AddSHA256(data[i][:lengths[i]])
	}

	for _, lanes := range []int{1, 2, 4} {
		batch := prepare()
		e := newTestEngine(t, WithLanes(lanes))
		require.NoError(t, e.BatchAddSHA256(context.Background(), batch, data, lengths))
		for i := range batch {
			require.Equal(t, single[i].Sum(), batch[i].Sum(), "lanes %d job %d", lanes, i)
		}

		// the batch keeps streams running like single calls do
		for i := range batch {
			batch[i].AddSHA256(prefix)
			single[i].AddSHA256(prefix)
		}
		for i := range batch {
			require.Equal(t, single[i].Sum(), batch[i].Sum(), "lanes %d job %d after append", lanes, i)
		}
		single = prepare()
		for i := range single {
			single[i].AddSHA256(data[i][:lengths[i]])
		}
	}
}

func TestBatchAddSHA256OrderIndependent(t *testing.T) {
	data := batchInput(300, batchLengths)
	hashes := make([]Hash256, len(data))
	require.NoError(t, BatchAddSHA256(context.Background(), hashes, data, batchLengths))

	perm := rand.New(rand.NewSource(6)).Perm(len(data))
	pdata := make([][]byte, len(data))
	plen := make([]int, len(data))
	for i, p := range perm {
		pdata[i], plen[i] = data[p], batchLengths[p]
	}
	phashes := make([]Hash256, len(data))
	require.NoError(t, BatchAddSHA256(context.Background(), phashes, pdata, plen))
	for i, p := range perm {
		require.Equal(t, hashes[p].Sum(), phashes[i].Sum())
	}
}

func TestBatchAddSHA256DoesNotMutateInput(t *testing.T) {
	data := batchInput(400, batchLengths)
	orig := make([][]byte, len(data))
	for i := range data {
		orig[i] = bytes.Clone(data[i])
	}
	hashes := make([]Hash256, len(data))
	require.NoError(t, BatchAddSHA256(context.Background(), hashes, data, batchLengths))
	assert.Equal(t, orig, data)
}

func TestBatchAddFastHash(t *testing.T) {
	data := batchInput(500, batchLengths)

	want128 := make([]Value128, len(data))
	want256 := make([]Value256, len(data))
	for i := range data {
		var h Hash128
		h.AddFastHash(data[i][:batchLengths[i]])
		want128[i] = h.Sum()
		var h2 Hash256
		h2.AddFastHash(data[i][:batchLengths[i]])
		h2.AddFastHash(data[i][:batchLengths[i]])
		want256[i] = h2.Sum()
	}

	for _, workers := range []int{0, 1, 2, 4, len(data) + 1} {
		t.Run(fmt.Sprint(workers), func(t *testing.T) {
			e := newTestEngine(t, WithWorkers(workers))
			h128 := make([]Hash128, len(data))
			require.NoError(t, e.BatchAddFastHash128(context.Background(), h128, data, batchLengths))
			h256 := make([]Hash256, len(data))
			for round := 0; round < 2; round++ {
				require.NoError(t, e.BatchAddFastHash256(context.Background(), h256, data, batchLengths))
			}
			for i := range data {
				require.Equal(t, want128[i], h128[i].Sum(), "job %d", i)
				require.Equal(t, want256[i], h256[i].Sum(), "job %d", i)
			}
		})
	}
}

func TestBatchPackageLevel(t *testing.T) {
	data := batchInput(600, batchLengths)
	h128 := make([]Hash128, len(data))
	require.NoError(t, BatchAddFastHash128(context.Background(), h128, data, batchLengths))
	h256 := make([]Hash256, len(data))
	require.NoError(t, BatchAddFastHash256(context.Background(), h256, data, batchLengths))
	for i := range data {
		a, _ := h256[i].Sum().Halves()
		assert.Equal(t, h128[i].Sum(), a)
	}
}

func TestBatchPreconditions(t *testing.T) {
	ctx := context.Background()
	data := batchInput(700, []int{10, 20})

	err := BatchAddSHA256(ctx, make([]Hash256, 3), data, []int{10, 20})
	var bm *ErrBatchMismatch
	require.ErrorAs(t, err, &bm)
	assert.Equal(t, 3, bm.Hashes)
	assert.Equal(t, 2, bm.Buffers)
	assert.True(t, errors.Is(err, ErrPrecondition))

	err = BatchAddFastHash128(ctx, make([]Hash128, 2), data, []int{10})
	require.ErrorAs(t, err, &bm)
	assert.Equal(t, 1, bm.Lengths)

	hashes := make([]Hash256, 2)
	err = BatchAddFastHash256(ctx, hashes, data, []int{10, 1000})
	var lr *ErrLengthOutOfRange
	require.ErrorAs(t, err, &lr)
	assert.Equal(t, 1, lr.Index)
	assert.True(t, errors.Is(err, ErrPrecondition))
	// nothing was hashed
	assert.True(t, hashes[0].Sum().IsZero())

	err = BatchAddSHA256(ctx, hashes, data, []int{-1, 0})
	require.ErrorAs(t, err, &lr)
	assert.True(t, hashes[1].Sum().IsZero())
}

func TestBatchEmpty(t *testing.T) {
	require.NoError(t, BatchAddSHA256(context.Background(), nil, nil, nil))
	require.NoError(t, BatchAddFastHash128(context.Background(), nil, nil, nil))
}

func TestBatchCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	data := batchInput(800, []int{4096, 4096})
	lengths := []int{4096, 4096}

	err := BatchAddSHA256(ctx, make([]Hash256, 2), data, lengths)
	require.ErrorIs(t, err, context.Canceled)

	e := newTestEngine(t, WithWorkers(4))
	err = e.BatchAddFastHash128(ctx, make([]Hash128, 2), data, lengths)
	require.ErrorIs(t, err, context.Canceled)
}

func TestBatchCancelledKeepsAccumulators(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	data := batchInput(801, []int{4096, 4096, 300})
	lengths := []int{4096, 4096, 300}
	head := []byte("a pending tail of 34 bytes, or so.")
	rest := bytes.Repeat([]byte{0x5a}, 777)

	for _, b := range availableBackends() {
		e := newTestEngine(t, WithBackend(b), WithLanes(2))
		hashes := make([]Hash256, 3)
		hashes[1].AddSHA256(head)
		before := append([]Hash256(nil), hashes...)

		err := e.BatchAddSHA256(ctx, hashes, data, lengths)
		require.ErrorIs(t, err, context.Canceled)
		require.Equal(t, before, hashes, "backend %s", b)

		// streams continue as if the batch never ran
		hashes[0].AddSHA256(rest)
		hashes[1].AddSHA256(rest)
		assert.Equal(t, stdSum(rest), hashes[0].Sum(), "backend %s", b)
		assert.Equal(t, stdSum(append(append([]byte(nil), head...), rest...)), hashes[1].Sum(), "backend %s", b)
	}
}

func TestNewEngineOptions(t *testing.T) {
	_, err := NewEngine(WithLanes(0))
	var il *ErrInvalidLanes
	require.ErrorAs(t, err, &il)
	_, err = NewEngine(WithLanes(MaxLanes + 1))
	require.ErrorAs(t, err, &il)

	e := newTestEngine(t, WithWorkers(-3), WithLanes(8), WithBackend(Generic), WithLogger(nil))
	assert.Equal(t, 1, e.Workers())
	assert.Equal(t, 8, e.Lanes())
	assert.Equal(t, Generic, e.Backend())

	d := newTestEngine(t)
	assert.Equal(t, DefaultLanes, d.Lanes())
	assert.Equal(t, ActiveBackend(), d.Backend())
}

func TestEngineLogsBatches(t *testing.T) {
	var buf bytes.Buffer
	l := NewLogger(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	e := newTestEngine(t, WithLogger(l), WithBackend(Generic))

	data := batchInput(900, []int{100})
	require.NoError(t, e.BatchAddSHA256(context.Background(), make([]Hash256, 1), data, []int{100}))
	assert.Contains(t, buf.String(), "batch completed")
	assert.Contains(t, buf.String(), "kind=sha256")
	assert.Contains(t, buf.String(), "backend=generic")

	buf.Reset()
	require.Error(t, e.BatchAddSHA256(context.Background(), make([]Hash256, 2), data, []int{100}))
	assert.Contains(t, buf.String(), "batch failed")
}

func benchmarkBatchSHA256(b *testing.B, lanes, size int) {
	const jobs = 64
	data := make([][]byte, jobs)
	lengths := make([]int, jobs)
	for i := range data {
		data[i] = randomBytes(int64(i), size)
		lengths[i] = size
	}
	e := newTestEngine(b, WithLanes(lanes))
	hashes := make([]Hash256, jobs)
	b.SetBytes(int64(jobs * size))
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		for j := range hashes {
			hashes[j].Reset()
		}
		if err := e.BatchAddSHA256(context.Background(), hashes, data, lengths); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkBatchAddSHA256(b *testing.B) {
	for _, lanes := range []int{1, 4, 16} {
		for _, size := range []int{1024, 64 * 1024} {
			b.Run(fmt.Sprintf("lanes%d/%dB", lanes, size), func(b *testing.B) {
				benchmarkBatchSHA256(b, lanes, size)
			})
		}
	}
}

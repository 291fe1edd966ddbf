// Copyright (c) 2020 MinIO Inc. All rights reserved.
// Use of this source code is governed by a license that can be
// found in the LICENSE file.

package widehash

import (
	"context"

	"github.com/remeh/sizedwaitgroup"
)

// Engine runs batches of independent hash jobs. Every batch produces, per
// job, exactly the digest the matching single call would produce; workers,
// lanes and backend only change throughput.
//
// An Engine holds no per-batch state and is safe for concurrent use as long
// as concurrent batches do not share accumulators.
type Engine struct {
	workers int
	lanes   int
	backend Backend
	logger  *Logger
}

// NewEngine creates an Engine.
func NewEngine(opts ...Option) (*Engine, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if o.lanes < 1 || o.lanes > MaxLanes {
		return nil, &ErrInvalidLanes{Lanes: o.lanes}
	}
	return &Engine{
		workers: o.workers,
		lanes:   o.lanes,
		backend: o.backend,
		logger:  o.logger.WithBackend(o.backend),
	}, nil
}

var defaultEngine = func() *Engine {
	e, err := NewEngine()
	if err != nil {
		panic(err)
	}
	return e
}()

// Workers returns the fast hash fan-out bound.
func (e *Engine) Workers() int { return e.workers }

// Lanes returns the SHA-256 lane width.
func (e *Engine) Lanes() int { return e.lanes }

// Backend returns the backend used for SHA-256 compression.
func (e *Engine) Backend() Backend { return e.backend }

// BatchAddFastHash128 calls hashes[i].AddFastHash(data[i][:lengths[i]]) for
// every i.
func (e *Engine) BatchAddFastHash128(ctx context.Context, hashes []Hash128, data [][]byte, lengths []int) error {
	if err := checkBatch(len(hashes), data, lengths); err != nil {
		e.logger.LogBatch(ctx, "fast128", len(hashes), 0, err)
		return err
	}
	err := e.dispatch(ctx, len(hashes), func(i int) {
		hashes[i].AddFastHash(data[i][:lengths[i]])
	})
	e.logger.LogBatch(ctx, "fast128", len(hashes), 0, err)
	return err
}

// BatchAddFastHash256 calls hashes[i].AddFastHash(data[i][:lengths[i]]) for
// every i.
func (e *Engine) BatchAddFastHash256(ctx context.Context, hashes []Hash256, data [][]byte, lengths []int) error {
	if err := checkBatch(len(hashes), data, lengths); err != nil {
		e.logger.LogBatch(ctx, "fast256", len(hashes), 0, err)
		return err
	}
	// split halves only when jobs are not already spread over workers
	split := e.workers <= 1
	err := e.dispatch(ctx, len(hashes), func(i int) {
		p := data[i][:lengths[i]]
		hashes[i].addFastHash(p, split && len(p) >= parallelHalves)
	})
	e.logger.LogBatch(ctx, "fast256", len(hashes), 0, err)
	return err
}

// BatchAddSHA256 calls hashes[i].AddSHA256(data[i][:lengths[i]]) for every
// i, advancing up to Lanes jobs per compression step. Lanes run side by side
// on every backend but Generic. A failed batch leaves hashes as they were.
func (e *Engine) BatchAddSHA256(ctx context.Context, hashes []Hash256, data [][]byte, lengths []int) error {
	if err := checkBatch(len(hashes), data, lengths); err != nil {
		e.logger.LogBatch(ctx, "sha256", len(hashes), e.lanes, err)
		return err
	}
	c := getCompressor(e.backend)
	defer putCompressor(e.backend, c)

	saved := append([]Hash256(nil), hashes...)
	jobs := make([]shaJob, len(hashes))
	for i := range hashes {
		h := &hashes[i]
		h.stream.begin(&h.sum)
		jobs[i] = shaJob{hash: h, msg: h.stream.prime(c, data[i][:lengths[i]])}
	}

	ls := newLaneSet(e.backend, e.lanes, e.backend != Generic)
	err := ls.run(ctx, jobs)
	ls.release()
	if err != nil {
		copy(hashes, saved)
	} else {
		// Finish the retired jobs
		for _, j := range jobs {
			j.hash.stream.keep(j.msg)
			j.hash.sum = j.hash.stream.sum(c)
		}
	}
	e.logger.LogBatch(ctx, "sha256", len(hashes), e.lanes, err)
	return err
}

// dispatch runs fn for 0..n-1 on at most e.workers goroutines.
func (e *Engine) dispatch(ctx context.Context, n int, fn func(i int)) error {
	if e.workers <= 1 || n <= 1 {
		for i := 0; i < n; i++ {
			if err := ctx.Err(); err != nil {
				return err
			}
			fn(i)
		}
		return nil
	}

	swg := sizedwaitgroup.New(e.workers)
	for i := 0; i < n; i++ {
		if err := ctx.Err(); err != nil {
			swg.Wait()
			return err
		}
		swg.Add()
		go func(i int) {
			defer swg.Done()
			fn(i)
		}(i)
	}
	swg.Wait()
	return nil
}

func checkBatch(n int, data [][]byte, lengths []int) error {
	if n != len(data) || n != len(lengths) {
		return &ErrBatchMismatch{Hashes: n, Buffers: len(data), Lengths: len(lengths)}
	}
	for i, l := range lengths {
		if l < 0 || l > len(data[i]) {
			return &ErrLengthOutOfRange{Index: i, Length: l, Available: len(data[i])}
		}
	}
	return nil
}

// BatchAddFastHash128 runs Engine.BatchAddFastHash128 on the default engine.
func BatchAddFastHash128(ctx context.Context, hashes []Hash128, data [][]byte, lengths []int) error {
	return defaultEngine.BatchAddFastHash128(ctx, hashes, data, lengths)
}

// BatchAddFastHash256 runs Engine.BatchAddFastHash256 on the default engine.
func BatchAddFastHash256(ctx context.Context, hashes []Hash256, data [][]byte, lengths []int) error {
	return defaultEngine.BatchAddFastHash256(ctx, hashes, data, lengths)
}

// BatchAddSHA256 runs Engine.BatchAddSHA256 on the default engine.
func BatchAddSHA256(ctx context.Context, hashes []Hash256, data [][]byte, lengths []int) error {
	return defaultEngine.BatchAddSHA256(ctx, hashes, data, lengths)
}

// Copyright (c) 2020 MinIO Inc. All rights reserved.
// Use of this source code is governed by a license that can be
// found in the LICENSE file.

package widehash

import (
	"context"
	"math/bits"
	"sort"
	"sync"
)

// DefaultLanes is the default number of concurrently advanced SHA-256 jobs.
const DefaultLanes = 4

// MaxLanes is the widest supported lane set (one bit per lane in a mask).
const MaxLanes = 64

// shaJob is one accumulator of a SHA-256 batch and the part of its input
// that has not been compressed yet.
type shaJob struct {
	hash *Hash256
	msg  []byte
}

// Helper struct for sorting lanes based on length
type lane struct {
	len uint
	pos uint
}

type lanes []lane

func (lns lanes) Len() int           { return len(lns) }
func (lns lanes) Swap(i, j int)      { lns[i], lns[j] = lns[j], lns[i] }
func (lns lanes) Less(i, j int) bool { return lns[i].len < lns[j].len }

// maskRounds advances every lane set in mask by rounds blocks.
type maskRounds struct {
	mask   uint64
	rounds uint64
}

// generateMaskAndRounds turns the inputs of up to MaxLanes lanes into
// steps. Applying every step compresses exactly the whole blocks of every
// input; lanes with less than a block never appear in a mask.
func generateMaskAndRounds(input [][]byte) (mr []maskRounds) {
	// Sort on blocks length small to large
	sorted := make(lanes, len(input))
	for c, inpt := range input {
		sorted[c] = lane{uint(len(inpt)), uint(c)}
	}
	sort.Sort(sorted)

	// Create mask array including 'rounds' (of processing blocks of 64 bytes) between masks
	m, round := ^uint64(0)>>(MaxLanes-uint(len(input))), uint64(0)
	mr = make([]maskRounds, 0, len(input))
	for _, s := range sorted {
		if s.len > 0 {
			if uint64(s.len)>>6 > round {
				mr = append(mr, maskRounds{m, (uint64(s.len) >> 6) - round})
			}
			round = uint64(s.len) >> 6
		}
		m = m & ^(1 << s.pos)
	}
	return
}

// laneSet runs SHA-256 jobs through a fixed number of lanes. A lane keeps
// its job until fewer than BlockSize bytes are left, then takes the next
// pending job. Every lane owns a compressor; a parallel set advances the
// lanes of a step side by side.
type laneSet struct {
	backend  Backend
	parallel bool
	cs       []*compressor
	lanes    []*shaJob
	input    [][]byte
}

func newLaneSet(b Backend, width int, parallel bool) *laneSet {
	ls := &laneSet{
		backend:  b,
		parallel: parallel,
		cs:       make([]*compressor, width),
		lanes:    make([]*shaJob, width),
		input:    make([][]byte, width),
	}
	for i := range ls.cs {
		ls.cs[i] = getCompressor(b)
	}
	return ls
}

// release returns the lane compressors to their pool.
func (ls *laneSet) release() {
	for i, c := range ls.cs {
		putCompressor(ls.backend, c)
		ls.cs[i] = nil
	}
}

// run compresses the whole blocks of every job. Leftovers stay in the jobs.
func (ls *laneSet) run(ctx context.Context, jobs []shaJob) error {
	next := 0
	for {
		// Fill lanes with work, skipping jobs without a whole block
		for i := range ls.lanes {
			for ls.lanes[i] == nil && next < len(jobs) {
				if len(jobs[next].msg) >= BlockSize {
					ls.lanes[i] = &jobs[next]
				}
				next++
			}
		}

		for i, j := range ls.lanes {
			ls.input[i] = nil
			if j != nil {
				ls.input[i] = j.msg
			}
		}
		steps := generateMaskAndRounds(ls.input)
		if len(steps) == 0 {
			return nil
		}
		if next < len(jobs) {
			// Refill as soon as the shortest lane retires
			steps = steps[:1]
		}
		for _, step := range steps {
			if err := ctx.Err(); err != nil {
				return err
			}
			ls.blocks(step)
		}
	}
}

// blocks advances the lanes in step.mask by step.rounds blocks each and
// retires lanes left with less than a block.
func (ls *laneSet) blocks(step maskRounds) {
	n := int(step.rounds) * BlockSize
	if !ls.parallel || bits.OnesCount64(step.mask) < 2 {
		for i := range ls.lanes {
			if step.mask&(1<<uint(i)) != 0 {
				ls.advance(i, n)
			}
		}
		return
	}

	var wg sync.WaitGroup
	for i := range ls.lanes {
		if step.mask&(1<<uint(i)) == 0 {
			continue
		}
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			ls.advance(i, n)
		}(i)
	}
	wg.Wait()
}

// advance compresses n bytes of lane i with the lane's own compressor.
func (ls *laneSet) advance(i, n int) {
	j := ls.lanes[i]
	if j == nil {
		return
	}
	ls.cs[i].compress(&j.hash.stream.state, j.msg[:n])
	j.msg = j.msg[n:]
	if len(j.msg) < BlockSize {
		ls.lanes[i] = nil
	}
}

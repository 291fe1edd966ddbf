// Copyright (c) 2020 MinIO Inc. All rights reserved.
// Use of this source code is governed by a license that can be
// found in the LICENSE file.

package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"runtime"
	"strings"

	"github.com/minio/widehash"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

// Digest algorithms selectable with --algo.
const (
	algoFast128 = "fast128"
	algoFast256 = "fast256"
	algoSHA256  = "sha256"
)

// hashFlags are shared by every command that hashes input.
type hashFlags struct {
	algo    string
	lanes   int
	workers int
	backend string
}

func (f *hashFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.algo, "algo", "a", algoSHA256, "Digest algorithm (fast128, fast256, sha256)")
	cmd.Flags().IntVarP(&f.lanes, "lanes", "k", widehash.DefaultLanes, "SHA-256 lane width")
	cmd.Flags().IntVarP(&f.workers, "workers", "j", runtime.GOMAXPROCS(0), "Workers for fast hash batches and file reads")
	cmd.Flags().StringVar(&f.backend, "backend", "", "Force a backend (generic, avx2, avx512, shani, armsha2)")
}

func (f *hashFlags) engine(cmd *cobra.Command) (*widehash.Engine, error) {
	logger, err := newLogger(cmd)
	if err != nil {
		return nil, err
	}
	opts := []widehash.Option{
		widehash.WithLanes(f.lanes),
		widehash.WithWorkers(f.workers),
		widehash.WithLogger(logger),
	}
	if f.backend != "" {
		b, ok := widehash.ParseBackend(f.backend)
		if !ok {
			return nil, fmt.Errorf("unknown backend %q", f.backend)
		}
		if !b.Available() {
			return nil, fmt.Errorf("backend %s is not supported by this CPU", b)
		}
		opts = append(opts, widehash.WithBackend(b))
	}
	return widehash.NewEngine(opts...)
}

func newLogger(cmd *cobra.Command) (*widehash.Logger, error) {
	name, err := cmd.Flags().GetString("log-level")
	if err != nil {
		return nil, err
	}
	var level slog.Level
	if err := level.UnmarshalText([]byte(name)); err != nil {
		return nil, fmt.Errorf("invalid log level %q", name)
	}
	return widehash.NewLogger(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level})), nil
}

// input is one file (or stdin) read into memory.
type input struct {
	name string
	data []byte
}

// readInputs reads paths concurrently, keeping argument order. No paths
// means stdin.
func readInputs(ctx context.Context, cmd *cobra.Command, paths []string, workers int) ([]input, error) {
	if len(paths) == 0 {
		data, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return nil, fmt.Errorf("failed to read stdin: %w", err)
		}
		return []input{{name: "-", data: data}}, nil
	}

	inputs := make([]input, len(paths))
	g, _ := errgroup.WithContext(ctx)
	g.SetLimit(max(workers, 1))
	for i, path := range paths {
		i, path := i, path
		g.Go(func() error {
			data, err := os.ReadFile(path)
			if err != nil {
				return fmt.Errorf("failed to read %s: %w", path, err)
			}
			inputs[i] = input{name: path, data: data}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return inputs, nil
}

// digest is the rendered result for one input; key orders and groups them.
type digest struct {
	name string
	key  widehash.Value256
	hex  string
}

// hashInputs runs one batch of the selected algorithm over inputs.
func hashInputs(ctx context.Context, e *widehash.Engine, algo string, inputs []input) ([]digest, error) {
	data := make([][]byte, len(inputs))
	lengths := make([]int, len(inputs))
	for i, in := range inputs {
		data[i], lengths[i] = in.data, len(in.data)
	}

	out := make([]digest, len(inputs))
	switch strings.ToLower(algo) {
	case algoFast128:
		hashes := make([]widehash.Hash128, len(inputs))
		if err := e.BatchAddFastHash128(ctx, hashes, data, lengths); err != nil {
			return nil, err
		}
		for i := range hashes {
			sum := hashes[i].Sum()
			out[i] = digest{name: inputs[i].name, key: widehash.JoinValue256(sum, widehash.Value128{}), hex: sum.Hex()}
		}
	case algoFast256, algoSHA256:
		hashes := make([]widehash.Hash256, len(inputs))
		var err error
		if strings.ToLower(algo) == algoSHA256 {
			err = e.BatchAddSHA256(ctx, hashes, data, lengths)
		} else {
			err = e.BatchAddFastHash256(ctx, hashes, data, lengths)
		}
		if err != nil {
			return nil, err
		}
		for i := range hashes {
			sum := hashes[i].Sum()
			out[i] = digest{name: inputs[i].name, key: sum, hex: sum.Hex()}
		}
	default:
		return nil, fmt.Errorf("unknown algorithm %q", algo)
	}
	return out, nil
}

// Copyright (c) 2020 MinIO Inc. All rights reserved.
// Use of this source code is governed by a license that can be
// found in the LICENSE file.

// Command widesum computes wide fingerprints of files in batches.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	version = "dev"
	commit  = "none"
)

func newRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "widesum",
		Short:         "Batched 128/256-bit fingerprints and SHA-256 digests",
		Version:       fmt.Sprintf("%s (commit: %s)", version, commit),
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	rootCmd.PersistentFlags().String("log-level", "warn", "Log level (debug, info, warn, error)")

	rootCmd.AddCommand(
		newSumCommand(),
		newDedupCommand(),
		newRandomCommand(),
		newBackendCommand(),
	)
	return rootCmd
}

func main() {
	if err := newRootCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "widesum:", err)
		os.Exit(1)
	}
}

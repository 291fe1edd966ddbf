// Copyright (c) 2020 MinIO Inc. All rights reserved.
// Use of this source code is governed by a license that can be
// found in the LICENSE file.

package main

import (
	"fmt"
	"runtime"

	"github.com/klauspost/cpuid/v2"
	"github.com/minio/widehash"
	"github.com/spf13/cobra"
)

func newBackendCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "backend",
		Short: "Show CPU features and the selected backend",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			w := cmd.OutOrStdout()
			fmt.Fprintf(w, "Platform: %s/%s\n", runtime.GOOS, runtime.GOARCH)
			fmt.Fprintf(w, "CPU: %s (%d logical cores)\n", cpuid.CPU.BrandName, cpuid.CPU.LogicalCores)
			fmt.Fprintln(w, "Backends:")
			for _, b := range widehash.Backends() {
				mark := " "
				if b == widehash.ActiveBackend() {
					mark = "*"
				}
				fmt.Fprintf(w, "  %s %-8s available=%v\n", mark, b, b.Available())
			}
			if widehash.IsOverridden() {
				fmt.Fprintf(w, "Selected through %s\n", widehash.BackendEnv)
			}
		},
	}
}

// Copyright (c) 2020 MinIO Inc. All rights reserved.
// Use of this source code is governed by a license that can be
// found in the LICENSE file.

package main

import (
	"fmt"

	"github.com/minio/widehash"
	"github.com/spf13/cobra"
)

func newRandomCommand() *cobra.Command {
	var (
		width int
		count int
		fast  bool
	)

	cmd := &cobra.Command{
		Use:   "random",
		Short: "Print random 128 or 256-bit values",
		RunE: func(cmd *cobra.Command, args []string) error {
			f := widehash.NewFiller(nil)
			switch width {
			case 128:
				vals := make([]widehash.Value128, max(count, 0))
				fill := f.FillQuality128
				if fast {
					fill = f.FillFast128
				}
				if err := fill(vals, count); err != nil {
					return err
				}
				for _, v := range vals {
					fmt.Fprintln(cmd.OutOrStdout(), v)
				}
			case 256:
				vals := make([]widehash.Value256, max(count, 0))
				fill := f.FillQuality256
				if fast {
					fill = f.FillFast256
				}
				if err := fill(vals, count); err != nil {
					return err
				}
				for _, v := range vals {
					fmt.Fprintln(cmd.OutOrStdout(), v)
				}
			default:
				return fmt.Errorf("unsupported width %d (128 or 256)", width)
			}
			return nil
		},
	}

	cmd.Flags().IntVarP(&width, "width", "w", 256, "Value width in bits (128 or 256)")
	cmd.Flags().IntVarP(&count, "count", "n", 1, "Number of values")
	cmd.Flags().BoolVar(&fast, "fast", false, "Use the fast fill")
	return cmd
}

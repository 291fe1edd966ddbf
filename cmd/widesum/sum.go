// Copyright (c) 2020 MinIO Inc. All rights reserved.
// Use of this source code is governed by a license that can be
// found in the LICENSE file.

package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newSumCommand() *cobra.Command {
	var flags hashFlags

	cmd := &cobra.Command{
		Use:   "sum [file...]",
		Short: "Print the digest of every file",
		Long:  "Reads every file (stdin when none is given), hashes all of them in one batch and prints '<digest>  <file>' lines in argument order.",
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := flags.engine(cmd)
			if err != nil {
				return err
			}
			inputs, err := readInputs(cmd.Context(), cmd, args, e.Workers())
			if err != nil {
				return err
			}
			digests, err := hashInputs(cmd.Context(), e, flags.algo, inputs)
			if err != nil {
				return err
			}
			for _, d := range digests {
				fmt.Fprintf(cmd.OutOrStdout(), "%s  %s\n", d.hex, d.name)
			}
			return nil
		},
	}
	flags.register(cmd)
	return cmd
}

// Copyright (c) 2020 MinIO Inc. All rights reserved.
// Use of this source code is governed by a license that can be
// found in the LICENSE file.

package main

import (
	"fmt"
	"sort"

	"github.com/minio/widehash"
	"github.com/spf13/cobra"
)

func newDedupCommand() *cobra.Command {
	var flags hashFlags

	cmd := &cobra.Command{
		Use:   "dedup file...",
		Short: "Group files with identical content",
		Long:  "Hashes every file and prints the groups of files sharing a digest, ordered by digest. Files with unique content are not printed.",
		Args:  cobra.MinimumNArgs(1),
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

			for _, group := range duplicates(digests) {
				fmt.Fprintln(cmd.OutOrStdout(), group[0].hex)
				for _, d := range group {
					fmt.Fprintf(cmd.OutOrStdout(), "\t%s\n", d.name)
				}
			}
			return nil
		},
	}
	flags.register(cmd)
	return cmd
}

// duplicates returns the groups of two or more digests sharing a key,
// ordered by key. Members keep their input order.
func duplicates(digests []digest) [][]digest {
	groups := make(map[widehash.Value256][]digest)
	for _, d := range digests {
		groups[d.key] = append(groups[d.key], d)
	}
	var out [][]digest
	for _, g := range groups {
		if len(g) > 1 {
			out = append(out, g)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i][0].key.Less(out[j][0].key)
	})
	return out
}

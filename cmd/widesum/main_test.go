// Copyright (c) 2020 MinIO Inc. All rights reserved.
// Use of this source code is governed by a license that can be
// found in the LICENSE file.

package main

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/minio/widehash"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func runCommand(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCommand()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func writeFiles(t *testing.T, contents map[string]string) map[string]string {
	t.Helper()
	dir := t.TempDir()
	paths := make(map[string]string)
	for name, body := range contents {
		p := filepath.Join(dir, name)
		require.NoError(t, os.WriteFile(p, []byte(body), 0o644))
		paths[name] = p
	}
	return paths
}

func TestSumSHA256(t *testing.T) {
	files := writeFiles(t, map[string]string{
		"a": "The quick brown fox jumps over the lazy dog",
		"b": strings.Repeat("x", 1000),
		"c": "",
	})
	out, err := runCommand(t, "", "sum", "--lanes", "2", files["a"], files["b"], files["c"])
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "d7a8fbb307d7809469ca9abcb0082e4f8d5651e46d3cdb762d02d0bf37c9e592  "+files["a"], lines[0])
	sum := sha256.Sum256([]byte(strings.Repeat("x", 1000)))
	assert.Equal(t, hex.EncodeToString(sum[:])+"  "+files["b"], lines[1])
	assert.True(t, strings.HasPrefix(lines[2], "e3b0c44298fc1c149afbf4c8996fb92427ae41e4649b934ca495991b7852b855"))
}

func TestSumStdin(t *testing.T) {
	out, err := runCommand(t, "abc", "sum")
	require.NoError(t, err)
	assert.Equal(t, "ba7816bf8f01cfea414140de5dae2223b00361a396177a9cb410ff61f20015ad  -\n", out)
}

func TestSumFastHashes(t *testing.T) {
	files := writeFiles(t, map[string]string{"a": "hello world"})

	out, err := runCommand(t, "", "sum", "--algo", "fast128", "--workers", "1", files["a"])
	require.NoError(t, err)
	var h128 widehash.Hash128
	h128.AddFastHash([]byte("hello world"))
	assert.Equal(t, h128.Hex()+"  "+files["a"]+"\n", out)

	out, err = runCommand(t, "", "sum", "-a", "fast256", files["a"])
	require.NoError(t, err)
	var h256 widehash.Hash256
	h256.AddFastHash([]byte("hello world"))
	assert.Equal(t, h256.Hex()+"  "+files["a"]+"\n", out)
}

func TestSumErrors(t *testing.T) {
	_, err := runCommand(t, "x", "sum", "--algo", "md5")
	require.Error(t, err)

	_, err = runCommand(t, "", "sum", filepath.Join(t.TempDir(), "missing"))
	require.Error(t, err)

	_, err = runCommand(t, "", "sum", "--lanes", "0")
	require.Error(t, err)

	_, err = runCommand(t, "", "sum", "--backend", "quantum")
	require.Error(t, err)

	_, err = runCommand(t, "", "--log-level", "loud", "sum")
	require.Error(t, err)
}

func TestDedup(t *testing.T) {
	files := writeFiles(t, map[string]string{
		"one":   "same content",
		"two":   "same content",
		"three": "other content",
		"four":  "other content",
		"five":  "unique",
	})
	out, err := runCommand(t, "", "dedup", files["one"], files["two"], files["three"], files["four"], files["five"])
	require.NoError(t, err)
	assert.NotContains(t, out, files["five"])
	assert.Contains(t, out, "\t"+files["one"]+"\n\t"+files["two"]+"\n")
	assert.Contains(t, out, "\t"+files["three"]+"\n\t"+files["four"]+"\n")

	_, err = runCommand(t, "", "dedup")
	require.Error(t, err)
}

func TestDuplicatesOrdered(t *testing.T) {
	hi := widehash.Value256{0xff}
	lo := widehash.Value256{0x01}
	groups := duplicates([]digest{
		{name: "a", key: hi}, {name: "b", key: lo}, {name: "c", key: hi},
		{name: "d", key: lo}, {name: "e", key: widehash.Value256{0x80}},
	})
	require.Len(t, groups, 2)
	assert.Equal(t, "b", groups[0][0].name)
	assert.Equal(t, "d", groups[0][1].name)
	assert.Equal(t, "a", groups[1][0].name)
	assert.Equal(t, "c", groups[1][1].name)
}

func TestRandom(t *testing.T) {
	out, err := runCommand(t, "", "random", "--width", "128", "--count", "5")
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 5)
	for _, l := range lines {
		_, err := widehash.ParseValue128(l)
		require.NoError(t, err)
	}

	out, err = runCommand(t, "", "random", "-n", "2", "--fast")
	require.NoError(t, err)
	for _, l := range strings.Split(strings.TrimSpace(out), "\n") {
		assert.Len(t, l, 2*widehash.Size256)
	}

	_, err = runCommand(t, "", "random", "--width", "64")
	require.Error(t, err)
	_, err = runCommand(t, "", "random", "--count", "-1")
	require.Error(t, err)
}

func TestBackendCommand(t *testing.T) {
	out, err := runCommand(t, "", "backend")
	require.NoError(t, err)
	assert.Contains(t, out, "generic")
	assert.Contains(t, out, "* "+widehash.ActiveBackend().String())
}

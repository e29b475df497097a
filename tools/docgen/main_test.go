// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const matchDoc = "# fglob match\n\n" +
	"Short description\nList entries matching\na template.\n\n" +
	"Quick examples\n\n" +
	"```sh\n" +
	"# Typed run column\n" +
	"fglob match   'runs/run-{run:d}/x.csv'\n" +
	"fglob match <template> --stat\n" +
	"```\n"

func TestGenerate(t *testing.T) {
	root := t.TempDir()
	dir := filepath.Join(root, "docs", "commands")
	require.NoError(t, os.MkdirAll(dir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "match.md"), []byte(matchDoc), 0o644))

	n, err := generate(root, true)
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	assert.FileExists(t, filepath.Join(root, "docs", "man", "share", "man1", "fglob-match.1"))

	tldr, err := os.ReadFile(filepath.Join(root, "docs", "tldr", "fglob-match.md"))
	require.NoError(t, err)
	assert.Equal(t, "# fglob-match\n\n"+
		"> List entries matching a template.\n"+
		"> More information: https://github.com/staranto/fglob.\n\n"+
		"- Typed run column:\n\n"+
		"`fglob match 'runs/run-{run:d}/x.csv'`\n"+
		"\n"+
		"- Example:\n\n"+
		"`fglob match {{template}} --stat`\n", string(tldr))
}

func TestGenerate_NoDocs(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(root, "docs", "commands"), 0o755))

	_, err := generate(root, true)
	assert.ErrorContains(t, err, "no command markdown found")
}

func TestExtractTitleAndShortDesc_FallsBackToTitle(t *testing.T) {
	title, short := extractTitleAndShortDesc("# fglob why\n\nnothing else\n")
	assert.Equal(t, "fglob why", title)
	assert.Equal(t, "fglob why.", short)
}

func TestBuildTLDR_NoExamples(t *testing.T) {
	got := buildTLDR("why", "", "", nil)
	assert.Contains(t, got, "> fglob why\n")
	assert.Contains(t, got, "`fglob why --help`")
}

func TestWriteFileIfChanged(t *testing.T) {
	path := filepath.Join(t.TempDir(), "page.md")
	require.NoError(t, writeFileIfChanged(path, []byte("a\n"), true))

	info, err := os.Stat(path)
	require.NoError(t, err)

	require.NoError(t, writeFileIfChanged(path, []byte("a"), true))
	again, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, info.ModTime(), again.ModTime())

	require.NoError(t, writeFileIfChanged(path, []byte("b"), true))
	got, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "b", string(got))
}

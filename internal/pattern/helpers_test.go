// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

package pattern

import (
	"path/filepath"
	"sort"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/require"
)

// runTree is the layout used by most tests, rooted at /work.
var runTree = []string{
	"tmp/run-1/run_nodes3_name-Alice.txt",
	"tmp/run-1/run_nodes4_name-Bob.txt",
	"tmp/run-2/run_nodes3_name-Foo.txt",
	"tmp/run-2/run_nodes4_name-Bar.txt",
}

// newTree creates files (and their parent directories) under /work in an
// in-memory filesystem.
func newTree(t *testing.T, files ...string) afero.Fs {
	t.Helper()

	fsys := afero.NewMemMapFs()
	require.NoError(t, fsys.MkdirAll("/work", 0o755))
	for _, f := range files {
		p := filepath.Join("/work", filepath.FromSlash(f))
		require.NoError(t, fsys.MkdirAll(filepath.Dir(p), 0o755))
		require.NoError(t, afero.WriteFile(fsys, p, []byte(f), 0o644))
	}
	return fsys
}

// work joins slash-separated parts onto /work.
func work(p string) string {
	return filepath.Join("/work", filepath.FromSlash(p))
}

func collect(t *testing.T, template string, opts ...Option) []Match {
	t.Helper()

	seq, err := Find(template, opts...)
	require.NoError(t, err)
	matches, err := Collect(seq)
	require.NoError(t, err)
	return matches
}

func paths(matches []Match) []string {
	out := make([]string, 0, len(matches))
	for _, m := range matches {
		out = append(out, m.Path)
	}
	sort.Strings(out)
	return out
}

func byPath(matches []Match) map[string]Fields {
	out := make(map[string]Fields, len(matches))
	for _, m := range matches {
		out[m.Path] = m.Fields
	}
	return out
}

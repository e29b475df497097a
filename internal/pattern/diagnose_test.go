// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

package pattern

import (
	"bytes"
	"fmt"
	"path/filepath"
	"testing"

	"github.com/apex/log"
	"github.com/apex/log/handlers/discard"
	"github.com/apex/log/handlers/memory"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDescribeNoMatch(t *testing.T) {
	tests := []struct {
		name     string
		files    []string
		template string
		want     string
	}{
		{
			name:     "missing literal folder suggests closest sibling",
			files:    []string{"tmp/run-1/a.txt", "tmp/run-2/a.txt"},
			template: "tmp/run-3/foo.txt",
			want:     fmt.Sprintf(`WARNING: in folder %q no file/folder "run-3" found. Did you mean "run-2"?`, work("tmp")),
		},
		{
			name:     "missing file in existing folder",
			files:    []string{"tmp/run-1/a.txt"},
			template: "tmp/run-1/b.txt",
			want:     fmt.Sprintf(`WARNING: in folder %q no file/folder "b.txt" found. Did you mean "a.txt"?`, work("tmp/run-1")),
		},
		{
			name:     "wildcard folder with no candidates",
			files:    []string{"tmp/other/x"},
			template: "tmp/run-*/x",
			want:     fmt.Sprintf(`WARNING: in folder %q pattern "run-*" not found. Did you mean "other"?`, work("tmp")),
		},
		{
			name:     "only folder matching a wildcard parent",
			files:    []string{"tmp/run-1/a.txt"},
			template: "tmp/run-*/b.txt",
			want:     fmt.Sprintf(`WARNING: in the only folder matching the pattern %q no file/folder "b.txt" found. Did you mean "a.txt"?`, work("tmp/run-*")),
		},
		{
			name:     "several folders matching a placeholder parent",
			files:    []string{"tmp/run-1/a.txt", "tmp/run-2/c.txt"},
			template: "tmp/run-{run:d}/b.txt",
			want:     fmt.Sprintf(`WARNING: in any of the 2 folders matching the pattern %q no file/folder "b.txt" found. Did you mean "c.txt"?`, work("tmp/run-{run:d}")),
		},
		{
			name:     "no suggestion when nothing is close",
			files:    []string{"tmp/a"},
			template: "tmp/completely-different-name",
			want:     fmt.Sprintf(`WARNING: in folder %q no file/folder "completely-different-name" found`, work("tmp")),
		},
		{
			name:     "no suggestion in an empty folder",
			files:    nil,
			template: "nothing-here",
			want:     fmt.Sprintf(`WARNING: in folder %q no file/folder "nothing-here" found`, work("")),
		},
		{
			name:     "every level exists but the leaf matched nothing",
			files:    []string{"tmp/run-a/x.txt"},
			template: "tmp/run-{run:d}/x.txt",
			want:     fmt.Sprintf(`WARNING: in the only folder matching the pattern %q pattern "x.txt" not found`, work("tmp/run-{run:d}")),
		},
		{
			name:     "leaf that matched nothing suggests a different sibling",
			files:    []string{"tmp/run-a/x.txt", "tmp/run-a/y.txt"},
			template: "tmp/run-{run:d}/x.txt",
			want:     fmt.Sprintf(`WARNING: in the only folder matching the pattern %q pattern "x.txt" not found. Did you mean "y.txt"?`, work("tmp/run-{run:d}")),
		},
		{
			name:     "brackets in a literal folder are not glob syntax",
			files:    []string{"tmp/data[1]/run-1/a.txt"},
			template: "tmp/data[1]/run-*/b{n}.txt",
			want:     fmt.Sprintf(`WARNING: in the only folder matching the pattern %q pattern "b{n}.txt" not found. Did you mean "a.txt"?`, work("tmp/data[1]/run-*")),
		},
		{
			name:     "brackets below a wildcard are not glob syntax",
			files:    []string{"tmp/run-1/data[1]/a.txt", "tmp/run-2/data1/b.txt"},
			template: "tmp/run-*/data[1]/b.txt",
			want:     fmt.Sprintf(`WARNING: in the only folder matching the pattern %q no file/folder "b.txt" found. Did you mean "a.txt"?`, work("tmp/run-*/data[1]")),
		},
		{
			name:     "question mark below a wildcard is literal",
			files:    []string{"tmp/run-1/a?b/x.txt", "tmp/run-2/axb/y.txt"},
			template: "tmp/run-*/a?b/x{n}.csv",
			want:     fmt.Sprintf(`WARNING: in the only folder matching the pattern %q pattern "x{n}.csv" not found. Did you mean "x.txt"?`, work("tmp/run-*/a?b")),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fsys := newTree(t, tt.files...)
			got := DescribeNoMatch(work(tt.template), WithFs(fsys))
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDescribeNoMatch_MatchesFindOnBrackets(t *testing.T) {
	fsys := newTree(t, "tmp/data[1]/run-1/a.txt")

	found := collect(t, work("tmp/data[1]/run-*/{n}.txt"), WithFs(fsys))
	require.Len(t, found, 1)

	got := DescribeNoMatch(work("tmp/data[1]/run-*/b{n}.txt"), WithFs(fsys))
	assert.NotContains(t, got, `"run-*" not found`)
}

func TestDescribeNoMatch_RelativeTemplate(t *testing.T) {
	fsys := afero.NewMemMapFs()
	for _, f := range []string{"tmp/run-1/a.txt", "tmp/run-2/a.txt"} {
		require.NoError(t, fsys.MkdirAll(filepath.Dir(filepath.FromSlash(f)), 0o755))
		require.NoError(t, afero.WriteFile(fsys, filepath.FromSlash(f), nil, 0o644))
	}

	found := collect(t, "tmp/run-{r:d}", WithFs(fsys))
	require.Len(t, found, 2)

	tests := []struct {
		template string
		want     string
	}{
		{"tmp/run-3/foo.txt", `WARNING: in folder "tmp" no file/folder "run-3" found. Did you mean "run-2"?`},
		{"tmp/run-*/b.txt", `WARNING: in any of the 2 folders matching the pattern "tmp/run-*" no file/folder "b.txt" found. Did you mean "a.txt"?`},
		{"tpm/run-1", `WARNING: in folder "." no file/folder "tpm" found. Did you mean "tmp"?`},
	}
	for _, tt := range tests {
		t.Run(tt.template, func(t *testing.T) {
			assert.Equal(t, filepath.FromSlash(tt.want), DescribeNoMatch(tt.template, WithFs(fsys)))
		})
	}
}

func TestDescribeNoMatch_BadTemplateStillDescribes(t *testing.T) {
	fsys := newTree(t, "tmp/a")
	got := DescribeNoMatch(work("tmp/{}"), WithFs(fsys))
	assert.Contains(t, got, `no file/folder "{}" found`)
}

func TestMatchTable(t *testing.T) {
	fsys := newTree(t, runTree...)

	var warnings bytes.Buffer
	tbl, err := MatchTable(work("tmp/run-{run:d}/run_nodes{n:f}_name-{name}.txt"), WithFs(fsys), WithWarnings(&warnings))
	require.NoError(t, err)

	assert.Empty(t, warnings.String())
	assert.Equal(t, 4, tbl.Len())
	assert.Equal(t, []string{"run", "n", "name", "filename"}, tbl.Columns)
	assert.ElementsMatch(t, []any{1, 1, 2, 2}, tbl.Column("run"))
	assert.ElementsMatch(t, []any{"Alice", "Bob", "Foo", "Bar"}, tbl.Column("name"))
}

func TestMatchTable_Empty(t *testing.T) {
	fsys := newTree(t, runTree...)

	var warnings bytes.Buffer
	tbl, err := MatchTable(work("tmp/run-3/run_nodes{n}.txt"), WithFs(fsys), WithWarnings(&warnings))
	require.NoError(t, err)

	assert.Equal(t, 0, tbl.Len())
	assert.Empty(t, tbl.Columns)
	assert.Contains(t, warnings.String(), `no file/folder "run-3" found`)
	assert.Contains(t, warnings.String(), `Did you mean "run-2"?`)
}

func TestMatchTable_EmptyOnlyWritesWarnings(t *testing.T) {
	fsys := newTree(t, runTree...)

	h := memory.New()
	log.SetHandler(h)
	log.SetLevel(log.InfoLevel)
	t.Cleanup(func() { log.SetHandler(discard.Default) })

	var warnings bytes.Buffer
	_, err := MatchTable(work("tmp/run-3/{n}.txt"), WithFs(fsys), WithWarnings(&warnings))
	require.NoError(t, err)

	assert.NotEmpty(t, warnings.String())
	assert.Empty(t, h.Entries)
}

func TestMatchTable_TemplateError(t *testing.T) {
	_, err := MatchTable("{a}{a}")
	assert.ErrorIs(t, err, ErrTemplate)
}

func TestTable_AddUnionsColumns(t *testing.T) {
	var tbl Table

	var a, b Fields
	a.Set("x", 1)
	a.Set("filename", "a")
	b.Set("y", "two")
	b.Set("filename", "b")

	tbl.Add(a)
	tbl.Add(b)

	assert.Equal(t, []string{"x", "filename", "y"}, tbl.Columns)
	assert.Equal(t, []any{1, nil}, tbl.Column("x"))
	assert.Equal(t, []any{nil, "two"}, tbl.Column("y"))
}

func TestFields_MarshalJSONKeepsOrder(t *testing.T) {
	var f Fields
	f.Set("run", 2)
	f.Set("n", 7.8)
	f.Set("name", "Bar")
	f.Set("run", 3)

	b, err := f.MarshalJSON()
	require.NoError(t, err)
	assert.Equal(t, `{"run":3,"n":7.8,"name":"Bar"}`, string(b))
	assert.Equal(t, 3, f.Len())
}

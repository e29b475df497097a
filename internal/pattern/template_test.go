// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

package pattern

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name     string
		template string
		wantExpr string
		wantGlob string
		wantRoot string
		fields   []Field
	}{
		{
			name:     "literal only",
			template: "tmp/run-1/a.txt",
			wantExpr: `^tmp/run-1/a\.txt$`,
			wantGlob: "tmp/run-1/a.txt",
			wantRoot: "tmp/run-1/a.txt",
		},
		{
			name:     "plain placeholders",
			template: "tmp/run-1/run_nodes{n}_name-{name}.txt",
			wantExpr: `^tmp/run-1/run_nodes(?P<n>.*)_name-(?P<name>.*)\.txt$`,
			wantGlob: "tmp/run-1/run_nodes*_name-*.txt",
			wantRoot: "tmp/run-1",
			fields:   []Field{{Name: "n", Kind: KindString}, {Name: "name", Kind: KindString}},
		},
		{
			name:     "typed placeholders",
			template: "tmp/run-{run:d}/n{n:f}.txt",
			wantExpr: `^tmp/run-(?P<__int__run>[0-9]*)/n(?P<__float__n>[0-9.]*)\.txt$`,
			wantGlob: "tmp/run-*/n*.txt",
			wantRoot: "tmp",
			fields:   []Field{{Name: "run", Kind: KindInt}, {Name: "n", Kind: KindFloat}},
		},
		{
			name:     "recursive wildcard consumes separator",
			template: "a/**/f_{n}.txt",
			wantExpr: `^a/(.*)f_(?P<n>.*)\.txt$`,
			wantGlob: "a/**/f_*.txt",
			wantRoot: "a",
			fields:   []Field{{Name: "n", Kind: KindString}},
		},
		{
			name:     "single wildcard",
			template: "tmp/*/x",
			wantExpr: `^tmp/(.*)/x$`,
			wantGlob: "tmp/*/x",
			wantRoot: "tmp",
		},
		{
			name:     "leading wildcard roots at cwd",
			template: "*.txt",
			wantExpr: `^(.*)\.txt$`,
			wantGlob: "*.txt",
			wantRoot: ".",
		},
		{
			name:     "unclosed brace is literal",
			template: "tmp/{oops",
			wantExpr: `^tmp/\{oops$`,
			wantGlob: "tmp/{oops",
			wantRoot: "tmp/{oops",
		},
		{
			name:     "forward slashes are cleaned",
			template: "./tmp//run-1/",
			wantExpr: `^tmp/run-1$`,
			wantGlob: "tmp/run-1",
			wantRoot: "tmp/run-1",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tpl, err := Parse(tt.template)
			require.NoError(t, err)
			assert.Equal(t, filepath.FromSlash(tt.wantExpr), tpl.Expr())
			assert.Equal(t, filepath.FromSlash(tt.wantGlob), tpl.GlobString())
			assert.Equal(t, filepath.FromSlash(tt.wantRoot), tpl.FixedRoot())
			assert.Equal(t, tt.fields, tpl.Fields())
		})
	}
}

func TestParse_Errors(t *testing.T) {
	tests := []struct {
		name     string
		template string
		contains string
	}{
		{name: "empty name", template: "tmp/{}", contains: "bad placeholder {}"},
		{name: "empty typed name", template: "tmp/{:d}", contains: "bad placeholder {:d}"},
		{name: "non identifier", template: "tmp/{my-name}", contains: "bad placeholder {my-name}"},
		{name: "leading digit", template: "tmp/{1st}", contains: "bad placeholder {1st}"},
		{name: "unknown type", template: "tmp/{n:x}", contains: "bad placeholder {n:x}"},
		{name: "duplicate name", template: "{n}/{n}", contains: "duplicate placeholder name n"},
		{name: "duplicate across kinds", template: "{n:d}/{n:f}", contains: "duplicate placeholder name n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Compile(tt.template)
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrTemplate))

			var te *TemplateError
			require.ErrorAs(t, err, &te)
			assert.Equal(t, tt.template, te.Template)
			assert.Contains(t, err.Error(), tt.contains)
		})
	}
}

func TestKindString(t *testing.T) {
	assert.Equal(t, "string", KindString.String())
	assert.Equal(t, "int", KindInt.String())
	assert.Equal(t, "float", KindFloat.String())
}

func TestTemplate_Levels(t *testing.T) {
	tpl, err := Parse(filepath.FromSlash("/tmp/data[1]/run-*/**/b{n:d}.txt"))
	require.NoError(t, err)

	assert.Equal(t, []level{
		{shown: "tmp", glob: "tmp"},
		{shown: "data[1]", glob: `data\[1\]`},
		{shown: "run-*", glob: "run-*", wild: true},
		{shown: "**", glob: "**", wild: true},
		{shown: "b{n:d}.txt", glob: "b*.txt", wild: true},
	}, tpl.levels())
}

func TestEscapeGlob(t *testing.T) {
	assert.Equal(t, "plain.txt", escapeGlob("plain.txt"))
	assert.Equal(t, `a\?b\*\[c\]\{d\}\\`, escapeGlob(`a?b*[c]{d}\`))
}

// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package pattern

import (
	"path/filepath"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/spf13/afero"
)

// Glob expands a plain glob pattern (*, ?, [...], {a,b} and recursive **)
// against fsys. Results keep the pattern's base directory as written.
func Glob(fsys afero.Fs, pattern string) ([]string, error) {
	base, rest := doublestar.SplitPattern(filepath.ToSlash(pattern))
	return globUnder(fsys, filepath.FromSlash(base), rest)
}

// globUnder expands the slash separated doublestar pattern rest below the
// directory base, which is taken literally.
func globUnder(fsys afero.Fs, base, rest string) ([]string, error) {
	// BasePathFs refuses to resolve anything under a base of ".".
	dir := fsys
	if base != "." {
		dir = afero.NewBasePathFs(fsys, base)
	}

	matches, err := doublestar.Glob(afero.NewIOFS(dir), rest)
	if err != nil {
		return nil, err
	}

	for i, m := range matches {
		matches[i] = filepath.Join(base, filepath.FromSlash(m))
	}
	return matches, nil
}

// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package paths

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/apex/log"
	"github.com/gobwas/glob"
	"github.com/spf13/afero"

	"github.com/staranto/fglob/internal/pattern"
)

// Result is one resolved path. Fields is empty unless the name was a
// template.
type Result struct {
	Path   string
	Fields pattern.Fields
}

type options struct {
	fs       afero.Fs
	fileName string
	filter   func(string) bool
	exclude  []glob.Glob
	warnings io.Writer
	errs     []error
}

// Option configures Process.
type Option func(*options)

// WithFs sets the filesystem to read. The default is the OS filesystem.
func WithFs(fsys afero.Fs) Option {
	return func(o *options) {
		if fsys != nil {
			o.fs = fsys
		}
	}
}

// WithFileName searches below each name for fileName when the name does not
// already end in fileName's extension: "runs" becomes "runs/**/fileName".
func WithFileName(fileName string) Option {
	return func(o *options) {
		o.fileName = fileName
	}
}

// WithFilter keeps only the paths for which keep returns true.
func WithFilter(keep func(string) bool) Option {
	return func(o *options) {
		o.filter = keep
	}
}

// WithExclude drops paths matching any of the globs. Globs use "/" as the
// separator regardless of platform.
func WithExclude(globs ...string) Option {
	return func(o *options) {
		for _, g := range globs {
			compiled, err := glob.Compile(g, '/')
			if err != nil {
				o.errs = append(o.errs, fmt.Errorf("invalid exclude glob %q: %w", g, err))
				continue
			}
			o.exclude = append(o.exclude, compiled)
		}
	}
}

// WithWarnings sets where no-match diagnostics are written. The default is
// os.Stderr.
func WithWarnings(w io.Writer) Option {
	return func(o *options) {
		if w != nil {
			o.warnings = w
		}
	}
}

// Process resolves every name and concatenates the results in name order.
// A name containing "{" is a template (see pattern.Find); otherwise one
// containing "*" is a recursive glob; otherwise it is kept if it exists.
// When a name resolves to nothing, its no-match diagnostic is written to the
// warnings writer and processing continues.
func Process(names []string, opts ...Option) ([]Result, error) {
	o := options{
		fs:       afero.NewOsFs(),
		warnings: os.Stderr,
	}
	for _, opt := range opts {
		opt(&o)
	}
	if len(o.errs) > 0 {
		return nil, o.errs[0]
	}

	var results []Result
	for _, name := range names {
		found, err := o.resolve(name)
		if err != nil {
			return nil, err
		}
		results = append(results, found...)
	}
	return results, nil
}

// resolve handles a single name.
func (o *options) resolve(name string) ([]Result, error) {
	if o.fileName != "" && filepath.Ext(name) != filepath.Ext(o.fileName) {
		name = filepath.Join(name, "**", o.fileName)
	}

	var found []Result
	switch {
	case strings.Contains(name, "{"):
		seq, err := pattern.Find(name, pattern.WithFs(o.fs))
		if err != nil {
			return nil, err
		}
		for match, err := range seq {
			if err != nil {
				return nil, err
			}
			found = append(found, Result{Path: match.Path, Fields: match.Fields})
		}
	case strings.Contains(name, "*"):
		matches, err := pattern.Glob(o.fs, name)
		if err != nil {
			return nil, fmt.Errorf("failed to glob %s: %w", name, err)
		}
		for _, m := range matches {
			found = append(found, Result{Path: m})
		}
	default:
		ok, err := afero.Exists(o.fs, name)
		if err != nil {
			return nil, fmt.Errorf("failed to stat %s: %w", name, err)
		}
		if ok {
			found = append(found, Result{Path: name})
		}
	}

	found = o.keep(found)
	log.Debugf("%s: %d results", name, len(found))

	if len(found) == 0 {
		fmt.Fprintln(o.warnings, pattern.DescribeNoMatch(name, pattern.WithFs(o.fs)))
	}
	return found, nil
}

// keep applies the filter and exclusions.
func (o *options) keep(found []Result) []Result {
	if o.filter == nil && len(o.exclude) == 0 {
		return found
	}

	kept := found[:0]
resultLoop:
	for _, r := range found {
		if o.filter != nil && !o.filter(r.Path) {
			log.Debugf("filter dropped %s", r.Path)
			continue
		}
		slashed := filepath.ToSlash(r.Path)
		for _, g := range o.exclude {
			if g.Match(slashed) {
				log.Debugf("exclude dropped %s", r.Path)
				continue resultLoop
			}
		}
		kept = append(kept, r)
	}
	return kept
}

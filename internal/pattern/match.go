// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package pattern

import (
	"errors"
	"io"
	"io/fs"
	"iter"
	"os"
	"regexp"
	"strconv"
	"strings"

	"github.com/apex/log"
	"github.com/spf13/afero"
)

// Match is one filesystem entry that satisfied a template.
type Match struct {
	Path   string
	Fields Fields
}

type options struct {
	fs           afero.Fs
	withTemplate bool
	warnings     io.Writer
}

// Option configures Compile, Find, MatchTable and DescribeNoMatch.
type Option func(*options)

// WithFs sets the filesystem to read. The default is the OS filesystem.
func WithFs(fsys afero.Fs) Option {
	return func(o *options) {
		if fsys != nil {
			o.fs = fsys
		}
	}
}

// WithTemplate adds a "template" field to every match. See Matcher.All.
func WithTemplate() Option {
	return func(o *options) {
		o.withTemplate = true
	}
}

// WithWarnings sets where MatchTable writes its no-match diagnostic. The
// default is os.Stderr.
func WithWarnings(w io.Writer) Option {
	return func(o *options) {
		if w != nil {
			o.warnings = w
		}
	}
}

func newOptions(opts []Option) options {
	o := options{
		fs:       afero.NewOsFs(),
		warnings: os.Stderr,
	}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// Matcher is a compiled template bound to a filesystem.
type Matcher struct {
	tpl  *Template
	re   *regexp.Regexp
	root string
	glob string
	opts options
}

// Compile parses the template and builds its matcher. Errors wrap
// ErrTemplate.
func Compile(template string, opts ...Option) (*Matcher, error) {
	tpl, err := Parse(template)
	if err != nil {
		return nil, err
	}

	re, err := regexp.Compile(tpl.Expr())
	if err != nil {
		return nil, &TemplateError{Template: template, Reason: "cannot build expression", Err: err}
	}

	m := &Matcher{
		tpl:  tpl,
		re:   re,
		root: tpl.FixedRoot(),
		glob: tpl.GlobString(),
		opts: newOptions(opts),
	}
	log.Debugf("template %q: expr=%s root=%s", template, re, m.root)
	return m, nil
}

// Template returns the parsed template.
func (m *Matcher) Template() *Template {
	return m.tpl
}

// Root returns the directory the walk starts from.
func (m *Matcher) Root() string {
	return m.root
}

// Expr returns the regular expression paths are matched against.
func (m *Matcher) Expr() string {
	return m.re.String()
}

var errStop = errors.New("stop walking")

// All walks the fixed root and yields every entry whose path matches the
// template. Paths are reported the way the template spells them, so a
// relative template yields relative paths. Order follows the walk and is not
// guaranteed. Each range over the returned sequence reads the filesystem
// once; breaking out of the loop ends the walk.
//
// A conversion failure or unreadable directory is yielded as the error of the
// final step. A missing root yields nothing.
//
// With WithTemplate, the "template" field holds the template re-emitted with
// every wildcard replaced by the text it matched and every placeholder kept
// as written. Its exact form is best-effort.
func (m *Matcher) All() iter.Seq2[Match, error] {
	return func(yield func(Match, error) bool) {
		if m.root == m.glob {
			m.single(yield)
			return
		}

		err := afero.Walk(m.opts.fs, m.root, func(path string, _ fs.FileInfo, err error) error {
			if err != nil {
				if errors.Is(err, fs.ErrNotExist) {
					return nil
				}
				return &IOError{Path: path, Err: err}
			}

			match, ok, err := m.extract(path)
			if err != nil {
				return err
			}
			if !ok {
				return nil
			}
			if !yield(match, nil) {
				return errStop
			}
			return nil
		})
		if err != nil && !errors.Is(err, errStop) {
			yield(Match{}, err)
		}
	}
}

// single handles templates without wildcards or placeholders, which name
// exactly one path.
func (m *Matcher) single(yield func(Match, error) bool) {
	if _, err := m.opts.fs.Stat(m.root); err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			yield(Match{}, &IOError{Path: m.root, Err: err})
		}
		return
	}
	match, ok, err := m.extract(m.root)
	if err != nil || ok {
		yield(match, err)
	}
}

// extract matches one path and builds its fields.
func (m *Matcher) extract(path string) (Match, bool, error) {
	idx := m.re.FindStringSubmatchIndex(path)
	if idx == nil {
		return Match{}, false, nil
	}

	match := Match{Path: path}
	for i, name := range m.re.SubexpNames() {
		if name == "" {
			continue
		}
		text := path[idx[2*i]:idx[2*i+1]]
		value, convErr := convert(name, text)
		if convErr != nil {
			convErr.Path = path
			return Match{}, false, convErr
		}
		match.Fields.Set(stripPrefix(name), value)
	}

	match.Fields.Set("filename", path)
	if m.opts.withTemplate {
		match.Fields.Set("template", m.reconstruct(path, idx))
	}
	return match, true, nil
}

// reconstruct re-emits the template for one match. Capture groups appear in
// node order, one per non-literal node.
func (m *Matcher) reconstruct(path string, idx []int) string {
	var b strings.Builder
	group := 1
	for _, n := range m.tpl.nodes {
		switch n.kind {
		case literalNode, fieldNode:
			b.WriteString(n.text)
		case wildcardNode, recursiveNode:
			b.WriteString(path[idx[2*group]:idx[2*group+1]])
		}
		if n.kind != literalNode {
			group++
		}
	}
	return b.String()
}

// convert parses text according to the kind encoded in the group name.
func convert(group, text string) (any, *FieldConversionError) {
	switch {
	case strings.HasPrefix(group, floatPrefix):
		v, err := strconv.ParseFloat(text, 64)
		if err != nil {
			return nil, &FieldConversionError{Field: stripPrefix(group), Value: text, Kind: KindFloat, Err: err}
		}
		return v, nil
	case strings.HasPrefix(group, intPrefix):
		v, err := strconv.Atoi(text)
		if err != nil {
			return nil, &FieldConversionError{Field: stripPrefix(group), Value: text, Kind: KindInt, Err: err}
		}
		return v, nil
	default:
		return text, nil
	}
}

func stripPrefix(group string) string {
	if s, ok := strings.CutPrefix(group, floatPrefix); ok {
		return s
	}
	if s, ok := strings.CutPrefix(group, intPrefix); ok {
		return s
	}
	return group
}

// Find compiles the template and returns its match sequence.
func Find(template string, opts ...Option) (iter.Seq2[Match, error], error) {
	m, err := Compile(template, opts...)
	if err != nil {
		return nil, err
	}
	return m.All(), nil
}

// Collect drains a match sequence. It stops at the first error and returns
// the matches gathered so far with it.
func Collect(seq iter.Seq2[Match, error]) ([]Match, error) {
	var matches []Match
	for match, err := range seq {
		if err != nil {
			return matches, err
		}
		matches = append(matches, match)
	}
	return matches, nil
}

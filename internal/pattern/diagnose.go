// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package pattern

import (
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"github.com/agext/levenshtein"
	"github.com/apex/log"
	"github.com/spf13/afero"
)

// maxSuggestDistance is the edit distance at or above which no "did you
// mean" suggestion is offered.
const maxSuggestDistance = 10

// segment is the template up to one of its levels. plain is the literal path
// up to the first wildcard level and rest the doublestar pattern below it,
// empty while every level so far is literal.
type segment struct {
	name  string
	shown string
	plain string
	rest  string
	leaf  bool
}

func (s segment) wild() bool {
	return s.rest != ""
}

func (s segment) child(l level) segment {
	c := segment{
		name:  l.shown,
		shown: filepath.Join(s.shown, l.shown),
		plain: s.plain,
		rest:  s.rest,
		leaf:  l.wild,
	}
	switch {
	case s.wild():
		c.rest = s.rest + "/" + l.glob
	case l.wild:
		c.rest = l.glob
	default:
		c.plain = filepath.Join(s.plain, l.shown)
	}
	return c
}

// DescribeNoMatch walks the template down from its root and reports the
// first level that does not exist, with the closest existing sibling name
// when one is near enough. Literal levels are checked with Stat; levels at
// or below a wildcard or placeholder exist when their glob finds at least
// one entry. If every level exists, the last one is reported as a pattern
// that matched nothing.
//
// Relative templates are resolved against the working directory on the OS
// filesystem and against "." on any other.
//
// It never fails: problems reading the filesystem count as "does not exist".
func DescribeNoMatch(template string, opts ...Option) string {
	o := newOptions(opts)

	shown := filepath.Clean(filepath.FromSlash(template))
	if _, ok := o.fs.(*afero.OsFs); ok {
		if abs, err := filepath.Abs(shown); err == nil {
			shown = abs
		}
	}

	root, rel := ".", shown
	sep := string(filepath.Separator)
	if vol := filepath.VolumeName(shown); strings.HasPrefix(shown[len(vol):], sep) {
		root = vol + sep
		rel = shown[len(root):]
	}

	var levels []level
	if tpl, err := Parse(rel); err == nil {
		levels = tpl.levels()
	} else {
		levels = literalLevels(rel)
	}

	count := 1
	parent := segment{shown: root, plain: root}
	for i, l := range levels {
		seg := parent.child(l)
		n := o.exists(seg)
		if n == 0 {
			return o.compose(parent, seg, count, false)
		}
		if i == len(levels)-1 {
			return o.compose(parent, seg, count, true)
		}
		count = n
		parent = seg
	}

	// The template is the filesystem root itself.
	return fmt.Sprintf("WARNING: pattern %q not found", shown)
}

// compose builds the warning for the failing segment seg below parent.
// parentCount is the number of directories the parent resolved to. exhausted
// marks a leaf that exists but matched nothing.
func (o options) compose(parent, seg segment, parentCount int, exhausted bool) string {
	target := fmt.Sprintf("no file/folder %q found", seg.name)
	if exhausted || seg.leaf {
		target = fmt.Sprintf("pattern %q not found", seg.name)
	}

	source := fmt.Sprintf("in folder %q", parent.shown)
	if parent.wild() {
		if parentCount == 1 {
			source = fmt.Sprintf("in the only folder matching the pattern %q", parent.shown)
		} else {
			source = fmt.Sprintf("in any of the %d folders matching the pattern %q", parentCount, parent.shown)
		}
	}

	msg := fmt.Sprintf("WARNING: %s %s", source, target)
	if closest, ok := o.suggest(parent, seg.name); ok {
		msg += fmt.Sprintf(". Did you mean %q?", closest)
	}
	return msg
}

// resolve returns the paths a segment stands for.
func (o options) resolve(s segment) ([]string, error) {
	if !s.wild() {
		return []string{s.plain}, nil
	}
	return globUnder(o.fs, s.plain, s.rest)
}

// exists returns how many entries a segment resolves to.
func (o options) exists(s segment) int {
	if s.wild() {
		matches, err := o.resolve(s)
		if err != nil {
			log.WithError(err).Debugf("glob %s under %s", s.rest, s.plain)
			return 0
		}
		return len(matches)
	}

	ok, err := afero.Exists(o.fs, s.plain)
	if err != nil {
		log.WithError(err).Debugf("stat %s", s.plain)
	}
	if ok {
		return 1
	}
	return 0
}

// suggest returns the sibling name closest to name across every directory
// the parent resolves to. name itself is never suggested. Ties go to the
// name that sorts last, which favours the latest of a numbered series.
func (o options) suggest(parent segment, name string) (string, bool) {
	dirs, err := o.resolve(parent)
	if err != nil {
		return "", false
	}

	seen := map[string]bool{name: true}
	var siblings []string
	for _, dir := range dirs {
		entries, err := afero.ReadDir(o.fs, dir)
		if err != nil {
			continue
		}
		for _, e := range entries {
			if !seen[e.Name()] {
				seen[e.Name()] = true
				siblings = append(siblings, e.Name())
			}
		}
	}
	if len(siblings) == 0 {
		return "", false
	}
	sort.Strings(siblings)

	best, bestDist := "", -1
	for _, s := range siblings {
		d := levenshtein.Distance(name, s, nil)
		if bestDist < 0 || d <= bestDist {
			best, bestDist = s, d
		}
	}
	if bestDist >= maxSuggestDistance {
		return "", false
	}
	return best, true
}

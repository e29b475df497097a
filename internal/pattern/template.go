// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package pattern

import (
	"path/filepath"
	"regexp"
	"slices"
	"strings"
)

// Kind is the declared type of a placeholder.
type Kind int

const (
	KindString Kind = iota
	KindInt
	KindFloat
)

func (k Kind) String() string {
	switch k {
	case KindInt:
		return "int"
	case KindFloat:
		return "float"
	default:
		return "string"
	}
}

// Reserved capture group prefixes used to carry a placeholder's kind through
// the regular expression.
const (
	floatPrefix = "__float__"
	intPrefix   = "__int__"
)

// Field is a named placeholder declared in a template.
type Field struct {
	Name string
	Kind Kind
}

// groupName is the capture group name used for the field in the compiled
// expression.
func (f Field) groupName() string {
	switch f.Kind {
	case KindFloat:
		return floatPrefix + f.Name
	case KindInt:
		return intPrefix + f.Name
	default:
		return f.Name
	}
}

type nodeKind int

const (
	literalNode   nodeKind = iota
	wildcardNode           // *
	recursiveNode          // ** followed by a separator
	fieldNode              // {name}, {name:d}, {name:f}
)

// node is one piece of a parsed template. text always holds the template's
// own spelling of the piece.
type node struct {
	kind  nodeKind
	text  string
	field Field
}

// Template is the parsed form of a template string.
type Template struct {
	raw    string
	nodes  []node
	fields []Field
}

var fieldNameRe = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// Parse normalizes the template to native separators and splits it into
// literal, wildcard and placeholder nodes. A "{" without a closing "}" is
// literal text.
func Parse(template string) (*Template, error) {
	raw := filepath.Clean(filepath.FromSlash(template))
	recursive := "**" + string(filepath.Separator)

	t := &Template{raw: raw}
	seen := map[string]bool{}
	var lit strings.Builder

	flush := func() {
		if lit.Len() > 0 {
			t.nodes = append(t.nodes, node{kind: literalNode, text: lit.String()})
			lit.Reset()
		}
	}

	for i := 0; i < len(raw); {
		switch {
		case strings.HasPrefix(raw[i:], recursive):
			flush()
			t.nodes = append(t.nodes, node{kind: recursiveNode, text: recursive})
			i += len(recursive)
		case raw[i] == '*':
			flush()
			t.nodes = append(t.nodes, node{kind: wildcardNode, text: "*"})
			i++
		case raw[i] == '{':
			end := strings.IndexByte(raw[i:], '}')
			if end < 0 {
				lit.WriteString(raw[i:])
				i = len(raw)
				continue
			}
			token := raw[i : i+end+1]
			field, err := parseField(template, token)
			if err != nil {
				return nil, err
			}
			if seen[field.Name] {
				return nil, &TemplateError{Template: template, Reason: "duplicate placeholder name " + field.Name}
			}
			seen[field.Name] = true

			flush()
			t.nodes = append(t.nodes, node{kind: fieldNode, text: token, field: field})
			t.fields = append(t.fields, field)
			i += len(token)
		default:
			lit.WriteByte(raw[i])
			i++
		}
	}
	flush()

	return t, nil
}

// parseField reads a {name[:d|:f]} token.
func parseField(template, token string) (Field, error) {
	inner := token[1 : len(token)-1]
	f := Field{Name: inner, Kind: KindString}
	switch {
	case strings.HasSuffix(inner, ":f"):
		f = Field{Name: strings.TrimSuffix(inner, ":f"), Kind: KindFloat}
	case strings.HasSuffix(inner, ":d"):
		f = Field{Name: strings.TrimSuffix(inner, ":d"), Kind: KindInt}
	}

	if !fieldNameRe.MatchString(f.Name) {
		return Field{}, &TemplateError{Template: template, Reason: "bad placeholder " + token}
	}
	return f, nil
}

// String returns the normalized template.
func (t *Template) String() string {
	return t.raw
}

// Fields returns the placeholders in template order.
func (t *Template) Fields() []Field {
	return append([]Field(nil), t.fields...)
}

// GlobString returns the template with every placeholder replaced by "*".
func (t *Template) GlobString() string {
	var b strings.Builder
	for _, n := range t.nodes {
		if n.kind == fieldNode {
			b.WriteByte('*')
			continue
		}
		b.WriteString(n.text)
	}
	return b.String()
}

// level is one separator delimited piece of a template. glob is a doublestar
// pattern: literal text is escaped and placeholders become "*".
type level struct {
	shown string
	glob  string
	wild  bool
}

// levels splits the template at separators. Empty levels, left by a leading
// separator, are dropped.
func (t *Template) levels() []level {
	var out []level
	var cur level
	next := func() {
		out = append(out, cur)
		cur = level{}
	}

	for _, n := range t.nodes {
		switch n.kind {
		case literalNode:
			for i, part := range strings.Split(n.text, string(filepath.Separator)) {
				if i > 0 {
					next()
				}
				cur.shown += part
				cur.glob += escapeGlob(part)
			}
		case recursiveNode:
			cur.shown += "**"
			cur.glob += "**"
			cur.wild = true
			next()
		default:
			cur.shown += n.text
			cur.glob += "*"
			cur.wild = true
		}
	}
	next()

	return slices.DeleteFunc(out, func(l level) bool { return l.shown == "" })
}

// literalLevels splits path into levels that are all literal.
func literalLevels(path string) []level {
	var out []level
	for _, part := range strings.Split(path, string(filepath.Separator)) {
		if part != "" {
			out = append(out, level{shown: part, glob: escapeGlob(part)})
		}
	}
	return out
}

// escapeGlob backslash-escapes the characters doublestar treats as syntax.
func escapeGlob(s string) string {
	var b strings.Builder
	for _, r := range s {
		if strings.ContainsRune(`\*?[]{}`, r) {
			b.WriteByte('\\')
		}
		b.WriteRune(r)
	}
	return b.String()
}

// Expr builds the anchored regular expression for the template. Every
// non-literal node is a capture group, in node order: wildcards are unnamed
// and placeholders carry their kind-prefixed name.
func (t *Template) Expr() string {
	var b strings.Builder
	b.WriteByte('^')
	for _, n := range t.nodes {
		switch n.kind {
		case literalNode:
			b.WriteString(regexp.QuoteMeta(n.text))
		case wildcardNode, recursiveNode:
			b.WriteString("(.*)")
		case fieldNode:
			b.WriteString("(?P<" + n.field.groupName() + ">")
			switch n.field.Kind {
			case KindFloat:
				b.WriteString("[0-9.]*")
			case KindInt:
				b.WriteString("[0-9]*")
			default:
				b.WriteString(".*")
			}
			b.WriteByte(')')
		}
	}
	b.WriteByte('$')
	return b.String()
}

// FixedRoot is the deepest ancestor of the template that contains neither a
// wildcard nor a placeholder.
func (t *Template) FixedRoot() string {
	root := t.GlobString()
	for strings.Contains(root, "*") {
		root = filepath.Dir(root)
	}
	return root
}

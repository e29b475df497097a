// Copyright © 2025 Steve Taranto staranto@gmail.com
// SPDX-License-Identifier: MIT

// Package attrs parses the --attrs flag. Each comma separated spec has the
// form key[:output[:transform]] and selects, renames and reshapes one output
// column.
//
// Transform letters:
//
//	u/U  upper case    l/L  lower case (the last case letter wins)
//	t/T  RFC3339 time to the configured timezone
//	h/H  humanize a byte count
//	b/B  last path element
//	N    truncate to N characters, -N elides the middle
package attrs

import (
	"fmt"
	"os"
	"path"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/apex/log"
	"github.com/dustin/go-humanize"

	"github.com/staranto/fglob/internal/config"
)

// Attr is one output column.
type Attr struct {
	// Key is the row key: a placeholder name or one of filename, template,
	// size and modified.
	Key string
	// Include is false for columns only used to filter or sort.
	Include bool
	// OutputKey is the emitted key and the text column title.
	OutputKey string
	// TransformSpec holds the transform letters and lengths, see package doc.
	TransformSpec string
}

var lengthRe = regexp.MustCompile(`-?\d+`)

// Transform reshapes value according to TransformSpec.
func (a *Attr) Transform(value interface{}) interface{} {
	s, ok := value.(string)
	if !ok {
		if a.has("hH") {
			if n, ok := toUint(value); ok {
				return humanize.Bytes(n)
			}
		}
		return value
	}

	if a.has("bB") && s != "" {
		s = path.Base(strings.ReplaceAll(s, `\`, "/"))
	}
	if a.has("tT") {
		s = a.localTime(s)
	}
	s = applyCase(a.TransformSpec, s)
	return applyLength(a.TransformSpec, s)
}

func (a *Attr) has(letters string) bool {
	return strings.ContainsAny(a.TransformSpec, letters)
}

// localTime converts an RFC3339 value to the timezone named by the config
// "timezone" key or TZ. Without either the value is left alone. A value that
// does not parse disables time conversion for the rest of the column.
func (a *Attr) localTime(s string) string {
	tz, _ := config.GetString("timezone", "")
	if tz == "" {
		tz = os.Getenv("TZ")
	}
	if tz == "" {
		return s
	}

	loc, err := time.LoadLocation(tz)
	if err != nil {
		log.WithError(err).WithField("tz", tz).Debug("unknown timezone")
		return s
	}

	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		log.Error("failed to parse time: " + s)
		a.TransformSpec = strings.NewReplacer("t", "", "T", "").Replace(a.TransformSpec)
		return s
	}
	return t.In(loc).Format("2006-01-02T15:04:05MST")
}

// applyCase honours whichever of the case letters comes last, so a per-column
// spec overrides a global one prepended to it.
func applyCase(spec, s string) string {
	lower := strings.LastIndexAny(spec, "lL")
	upper := strings.LastIndexAny(spec, "uU")
	switch {
	case lower > upper:
		return strings.ToLower(s)
	case upper > lower:
		return strings.ToUpper(s)
	}
	return s
}

// applyLength applies the last length in spec. A positive length keeps the
// head, a negative one keeps both ends around "..".
func applyLength(spec, s string) string {
	all := lengthRe.FindAllString(spec, -1)
	if len(all) == 0 {
		return s
	}

	n, _ := strconv.Atoi(all[len(all)-1])
	width := n
	if width < 0 {
		width = -width
	}
	if len(s) <= width {
		return s
	}
	if n >= 0 {
		return s[:n]
	}

	side := max(width/2-1, 0)
	return s[:side] + ".." + s[len(s)-side:]
}

// toUint converts the numeric types a row can hold.
func toUint(value interface{}) (uint64, bool) {
	switch v := value.(type) {
	case int:
		if v >= 0 {
			return uint64(v), true
		}
	case int64:
		if v >= 0 {
			return uint64(v), true
		}
	case float64:
		if v >= 0 {
			return uint64(v), true
		}
	}
	return 0, false
}

// AttrList is the parsed --attrs flag. It satisfies the flag.Value shape.
type AttrList []Attr

// String renders the list back in key:output:transform form.
func (a *AttrList) String() string {
	specs := make([]string, len(*a))
	for i, attr := range *a {
		specs[i] = fmt.Sprintf("%s:%s:%s", attr.Key, attr.OutputKey, attr.TransformSpec)
	}
	return strings.Join(specs, ",")
}

// Set parses value and merges it into the list. A spec naming an existing
// key or output key updates that entry in place rather than appending.
func (a *AttrList) Set(value string) error {
	if value == "" || value == "*" {
		return nil
	}

	for _, spec := range strings.Split(value, ",") {
		attr := parseSpec(spec)
		if i := a.index(attr.Key); i >= 0 {
			(*a)[i].Include = attr.Include
			(*a)[i].OutputKey = attr.OutputKey
			(*a)[i].TransformSpec = attr.TransformSpec
			continue
		}
		*a = append(*a, attr)
	}
	return nil
}

func (a *AttrList) index(key string) int {
	for i, attr := range *a {
		if attr.Key == key || attr.OutputKey == key {
			return i
		}
	}
	return -1
}

// parseSpec parses one key[:output[:transform]] spec. A leading ! excludes
// the column and "*" carries the global transform.
func parseSpec(spec string) Attr {
	fields := strings.SplitN(spec, ":", 3)

	key := strings.TrimSpace(fields[0])
	attr := Attr{Include: true}
	if rest, ok := strings.CutPrefix(key, "!"); ok {
		attr.Include = false
		key = rest
	}
	// Rows are flat, so a jq style leading dot is dropped.
	attr.Key = strings.TrimPrefix(key, ".")
	if attr.Key == "*" {
		attr.Include = false
	}

	switch {
	case len(fields) == 1:
		attr.OutputKey = attr.Key[strings.LastIndex(attr.Key, ".")+1:]
	case strings.TrimSpace(fields[1]) == "":
		attr.OutputKey = attr.Key
	default:
		attr.OutputKey = strings.TrimSpace(fields[1])
	}

	if len(fields) == 3 {
		attr.TransformSpec = strings.TrimSpace(fields[2])
	}
	return attr
}

// SetGlobalTransformSpec prepends the transform of the "*" entry, if any, to
// every entry's spec.
func (a *AttrList) SetGlobalTransformSpec() error {
	i := a.index("*")
	if i < 0 || (*a)[i].TransformSpec == "" {
		return nil
	}

	global := (*a)[i].TransformSpec
	for j := range *a {
		(*a)[j].TransformSpec = global + "," + (*a)[j].TransformSpec
	}
	return nil
}

// Type names the flag value kind for help output.
func (a *AttrList) Type() string {
	return "list"
}

// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

// Package filters implements the --filter expressions applied to result rows.
//
// An expression is key, operator and target, e.g. "run>=2" or "name!~alice".
// Operators:
//
//	=   equal                  ~   equal ignoring case
//	^   has prefix             @   contains (substring, list item or map key)
//	<   less than              >   greater than
//	<=  less than or equal     >=  greater than or equal
//	/   regular expression     %   path glob (* stops at /, ** does not)
//
// Any operator may be negated with a leading '!'. Numbers compare
// numerically. Expressions are comma separated; FGLOB_FILTER_DELIM overrides
// the delimiter.
package filters

import (
	"fmt"
	"os"
	"regexp"
	"strconv"
	"strings"

	"github.com/apex/log"
	"github.com/gobwas/glob"
	"github.com/tidwall/gjson"

	"github.com/staranto/fglob/internal/attrs"
	"github.com/staranto/fglob/internal/driller"
)

// DelimEnvVar overrides the "," between filter expressions.
const DelimEnvVar = "FGLOB_FILTER_DELIM"

var filterRegex = regexp.MustCompile(`^(.*?)(!?)(>=|<=|[=^~<>@/%])(.*)$`)

// Filter is a single parsed --filter expression.
type Filter struct {
	Key     string
	Negate  bool
	Operand string
	Target  string

	re *regexp.Regexp
	g  glob.Glob
}

// Parse parses one expression. Regular expression and glob targets are
// compiled here so that a bad one is reported once.
func Parse(expr string) (Filter, error) {
	parts := filterRegex.FindStringSubmatch(expr)
	if parts == nil || parts[1] == "" {
		return Filter{}, fmt.Errorf("invalid filter: %s", expr)
	}

	f := Filter{
		Key:     parts[1],
		Negate:  parts[2] == "!",
		Operand: parts[3],
		Target:  parts[4],
	}

	var err error
	switch f.Operand {
	case "/":
		if f.re, err = regexp.Compile(f.Target); err != nil {
			return Filter{}, fmt.Errorf("invalid regex in filter %s: %w", expr, err)
		}
	case "%":
		if f.g, err = glob.Compile(f.Target, '/'); err != nil {
			return Filter{}, fmt.Errorf("invalid glob in filter %s: %w", expr, err)
		}
	}
	return f, nil
}

// BuildFilters parses a filter specification string into a slice of Filter.
// Invalid expressions are logged and skipped.
func BuildFilters(spec string) []Filter {
	//nolint:prealloc
	var filters []Filter

	if spec == "" {
		return filters
	}

	delim := ","
	if d, ok := os.LookupEnv(DelimEnvVar); ok && d != "" {
		delim = d
	}

	for _, expr := range strings.Split(spec, delim) {
		f, err := Parse(expr)
		if err != nil {
			log.Error(err.Error())
			continue
		}
		filters = append(filters, f)
	}

	return filters
}

// FilterDataset returns the rows of candidates that satisfy spec, each
// reduced to the attrs keyed by their output key. Transforms are not applied
// here.
func FilterDataset(candidates gjson.Result, attrs attrs.AttrList, spec string) []map[string]interface{} {
	//nolint:prealloc
	var filtered []map[string]interface{}

	filters := BuildFilters(spec)

	for _, candidate := range candidates.Array() {
		if !applyFilters(candidate, attrs, filters) {
			continue
		}

		row := make(map[string]interface{}, len(attrs))
		for _, attr := range attrs {
			row[attr.OutputKey] = driller.Driller(candidate.Raw, attr.Key).Value()
		}
		filtered = append(filtered, row)
	}

	return filtered
}

// applyFilters reports whether candidate satisfies every filter. Keys
// prefixed with _ are reserved and ignored. A filter on a key the row does
// not have is reported and ignored.
func applyFilters(candidate gjson.Result, attrs attrs.AttrList, filters []Filter) bool {
	for _, filter := range filters {
		if strings.HasPrefix(filter.Key, "_") {
			continue
		}

		key, ok := resolveKey(candidate, attrs, filter.Key)
		if !ok {
			log.WithField("key", filter.Key).Warn("filter key not found")
			continue
		}

		if !filter.Match(driller.Driller(candidate.Raw, key).Value()) {
			return false
		}
	}

	return true
}

// resolveKey maps a filter key to a row key. Output keys (renamed columns)
// win, then any key present in the row, including columns dropped by --attrs.
func resolveKey(candidate gjson.Result, attrs attrs.AttrList, key string) (string, bool) {
	for _, attr := range attrs {
		if attr.OutputKey == key {
			return attr.Key, true
		}
	}
	if driller.Driller(candidate.Raw, key).Exists() {
		return key, true
	}
	return "", false
}

// Match reports whether value satisfies the filter. A nil value never
// matches. Lists and maps only support '@'; other operators let them pass.
func (f Filter) Match(value interface{}) bool {
	switch v := value.(type) {
	case nil:
		return false
	case string:
		return f.matchString(v)
	case bool:
		return f.matchString(strconv.FormatBool(v))
	case []interface{}, map[string]interface{}:
		if f.Operand != "@" {
			log.Debugf("filter %s%s ignored for %T", f.Key, f.Operand, value)
			return true
		}
		return f.matchContains(v)
	}

	if num, ok := toFloat64(value); ok {
		return f.matchNumber(num)
	}

	log.Errorf("unsupported type for filtering: %T", value)
	return false
}

// matchContains evaluates '@' against a list or map.
func (f Filter) matchContains(value interface{}) bool {
	var found bool
	switch val := value.(type) {
	case []interface{}:
		for _, item := range val {
			if fmt.Sprint(item) == f.Target {
				found = true
				break
			}
		}
	case map[string]interface{}:
		_, found = val[f.Target]
	}
	return found != f.Negate
}

// matchNumber compares numerically for the ordering operators. The others
// apply to the number's text, so "n^3" matches 3 and 3.5.
func (f Filter) matchNumber(value float64) bool {
	switch f.Operand {
	case "=", "<", ">", "<=", ">=":
	default:
		return f.matchString(strconv.FormatFloat(value, 'f', -1, 64))
	}

	tgt, err := strconv.ParseFloat(strings.TrimSpace(f.Target), 64)
	if err != nil {
		log.Error("invalid numeric target: " + f.Target)
		return false
	}

	var ok bool
	switch f.Operand {
	case "=":
		ok = value == tgt
	case "<":
		ok = value < tgt
	case ">":
		ok = value > tgt
	case "<=":
		ok = value <= tgt
	case ">=":
		ok = value >= tgt
	}
	return ok != f.Negate
}

func (f Filter) matchString(value string) bool {
	var ok bool
	switch f.Operand {
	case "=":
		ok = value == f.Target
	case "~":
		ok = strings.EqualFold(value, f.Target)
	case "^":
		ok = strings.HasPrefix(value, f.Target)
	case "<":
		ok = value < f.Target
	case ">":
		ok = value > f.Target
	case "<=":
		ok = value <= f.Target
	case ">=":
		ok = value >= f.Target
	case "@":
		ok = strings.Contains(value, f.Target)
	case "/":
		re := f.re
		if re == nil {
			var err error
			if re, err = regexp.Compile(f.Target); err != nil {
				log.Error("invalid regex: " + f.Target)
				return false
			}
		}
		ok = re.MatchString(value)
	case "%":
		g := f.g
		if g == nil {
			var err error
			if g, err = glob.Compile(f.Target, '/'); err != nil {
				log.Error("invalid glob: " + f.Target)
				return false
			}
		}
		ok = g.Match(value)
	default:
		log.Error("unsupported filtering operand: " + f.Operand)
		return false
	}
	return ok != f.Negate
}

// toFloat64 normalizes the numeric types rows can carry.
func toFloat64(v interface{}) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case uint:
		return float64(n), true
	case uint32:
		return float64(n), true
	case uint64:
		return float64(n), true
	default:
		return 0, false
	}
}

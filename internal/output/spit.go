// Copyright © 2025 Steve Taranto staranto@gmail.com
// SPDX-License-Identifier: MIT

package output

import (
	"bytes"
	"cmp"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/apex/log"
	"github.com/charmbracelet/lipgloss/v2"
	"github.com/charmbracelet/lipgloss/v2/table"
	"github.com/dustin/go-humanize"
	"github.com/tidwall/gjson"
	"github.com/urfave/cli/v3"
	"gopkg.in/yaml.v2"

	"github.com/staranto/fglob/internal/attrs"
	"github.com/staranto/fglob/internal/config"
	"github.com/staranto/fglob/internal/filters"
	"github.com/staranto/fglob/internal/pattern"
)

// Options controls how SliceDiceSpit filters, sorts and renders rows.
type Options struct {
	// Output is one of text, json, yaml or raw.
	Output string
	Filter string
	Sort   string
	Color  bool
	Titles bool
}

// NewOptions reads Options from the command's flags.
func NewOptions(cmd *cli.Command) Options {
	return Options{
		Output: cmd.String("output"),
		Filter: cmd.String("filter"),
		Sort:   cmd.String("sort"),
		Color:  cmd.Bool("color"),
		Titles: cmd.Bool("titles"),
	}
}

// Column describes one column a template produces.
type Column struct {
	Name string
	Kind string
}

// DumpExamples renders a table of example command usages.
func DumpExamples(w io.Writer, examples [][2]string) {
	if len(examples) == 0 {
		return
	}
	var rows [][]string
	for _, ex := range examples {
		rows = append(rows, []string{ex[0], ex[1]})
	}

	fmt.Fprintln(w, plainTable(rows, "Command", "Description"))
}

// DumpSchema prints the columns a template produces, in row order.
func DumpSchema(w io.Writer, template string, columns []Column) {
	if len(columns) == 0 {
		log.Debugf("no columns for template: %s", template)
		return
	}

	var rows [][]string
	for _, c := range columns {
		rows = append(rows, []string{c.Name, c.Kind})
	}

	fmt.Fprintln(w, "Schema for", template, "--")
	fmt.Fprintln(w, plainTable(rows, "Column", "Type"))
	fmt.Fprintln(w)
	fmt.Fprintln(w,
		`Columns are available to the --attrs, --filter and --sort flags by name.`)
}

func plainTable(rows [][]string, headers ...string) *table.Table {
	t := table.New().
		BorderBottom(false).
		BorderTop(false).
		BorderLeft(false).
		BorderRight(false).
		Border(lipgloss.HiddenBorder()).
		Headers().
		Rows(rows...)

	return t.Headers(headers...).BorderHeader(false)
}

// SliceDiceSpit orchestrates filtering, transforming, sorting and rendering
// of a dataset. raw is a JSON array of row objects.
func SliceDiceSpit(raw bytes.Buffer,
	attrs attrs.AttrList,
	opts Options,
	w io.Writer) error {

	if w == nil {
		w = os.Stdout
	}

	// If raw, just dump it and go home.
	if opts.Output == "raw" {
		_, err := w.Write(raw.Bytes())
		return err
	}

	fullDataset := gjson.Parse(raw.String())

	// Filter out the rows we don't want. Do it here so that the following
	// processes are slightly more efficient since they'll be working on a smaller
	// dataset.
	filteredDataset := filters.FilterDataset(fullDataset, attrs, opts.Filter)

	// Transform each value in each row.
	for _, row := range filteredDataset {
		for i := range attrs {
			if attrs[i].TransformSpec != "" {
				row[attrs[i].OutputKey] = attrs[i].Transform(row[attrs[i].OutputKey])
			}
		}
	}

	SortDataset(filteredDataset, opts.Sort)

	switch opts.Output {
	case "json":
		// Fields keeps the attrs order in the emitted objects.
		ordered := make([]pattern.Fields, 0, len(filteredDataset))
		for _, row := range filteredDataset {
			var f pattern.Fields
			for _, attr := range attrs {
				if attr.Include {
					f.Set(attr.OutputKey, row[attr.OutputKey])
				}
			}
			ordered = append(ordered, f)
		}
		jsonOutput, err := json.Marshal(ordered)
		if err != nil {
			return fmt.Errorf("failed to encode json: %w", err)
		}
		_, err = fmt.Fprintln(w, string(jsonOutput))
		return err
	case "yaml":
		ordered := make([]yaml.MapSlice, 0, len(filteredDataset))
		for _, row := range filteredDataset {
			var m yaml.MapSlice
			for _, attr := range attrs {
				if attr.Include {
					m = append(m, yaml.MapItem{Key: attr.OutputKey, Value: row[attr.OutputKey]})
				}
			}
			ordered = append(ordered, m)
		}
		yamlOutput, err := yaml.Marshal(ordered)
		if err != nil {
			return fmt.Errorf("failed to encode yaml: %w", err)
		}
		_, err = w.Write(yamlOutput)
		return err
	case "", "text":
		TableWriter(filteredDataset, attrs, opts, w)
		return nil
	default:
		return fmt.Errorf("unknown output format: %s", opts.Output)
	}
}

// TableWriter renders the result set in a tabular form honoring color,
// titles and padding options. With titles on, a row count follows the table.
func TableWriter(
	resultSet []map[string]interface{},
	attrs attrs.AttrList,
	opts Options,
	w io.Writer) {

	if len(resultSet) == 0 {
		return
	}

	var (
		headerStyle  = lipgloss.NewStyle().Align(lipgloss.Left)
		cellStyle    = lipgloss.NewStyle().Padding(0, 0).Align(lipgloss.Left)
		evenRowStyle = cellStyle
		oddRowStyle  = cellStyle
	)

	if opts.Color {
		headerColor, evenColor, oddColor := getColors("colors")

		headerStyle = headerStyle.Foreground(lipgloss.Color(headerColor))
		evenRowStyle = evenRowStyle.Foreground(lipgloss.Color(evenColor))
		oddRowStyle = oddRowStyle.Foreground(lipgloss.Color(oddColor))
	}

	pad, _ := config.GetInt("padding", 0)
	log.Debugf("padding: %v", pad)

	var rows [][]string
	for _, result := range resultSet {
		row := make([]string, 0, len(result))
		for _, attr := range attrs {
			if !attr.Include {
				continue
			}
			row = append(row, InterfaceToString(result[attr.OutputKey], "-"))
		}
		rows = append(rows, row)
	}

	t := table.New().
		BorderBottom(false).
		BorderTop(false).
		BorderLeft(false).
		BorderRight(false).
		Border(lipgloss.HiddenBorder()).
		StyleFunc(func(row, col int) lipgloss.Style {
			var style lipgloss.Style
			switch {
			case row == table.HeaderRow:
				style = headerStyle
			case row%2 == 0:
				style = evenRowStyle
			default:
				style = oddRowStyle
			}

			if col > 0 {
				style = style.PaddingLeft(pad)
			}

			return style
		}).
		Headers().
		Rows(rows...)

	if opts.Titles {
		var headers []string
		for _, attr := range attrs {
			if attr.Include {
				headers = append(headers, attr.OutputKey)
			}
		}

		// https://github.com/charmbracelet/lipgloss/issues/261
		t = t.Headers(headers...).BorderHeader(false)
	}
	fmt.Fprintln(w, t)

	if opts.Titles {
		noun := "rows"
		if len(resultSet) == 1 {
			noun = "row"
		}
		fmt.Fprintf(w, "%s %s\n", humanize.Comma(int64(len(resultSet))), noun)
	}
}

// getColors returns configured color values for table rendering.
func getColors(key string) (header string, even string, odd string) {
	header, _ = config.GetString(fmt.Sprintf("%s.title", key), "#f6be00")
	even, _ = config.GetString(fmt.Sprintf("%s.even", key), "#ffffff")
	odd, _ = config.GetString(fmt.Sprintf("%s.odd", key), "#00c8f0")
	return
}

// sortKey is one parsed entry of a --sort spec.
type sortKey struct {
	key           string
	descending    bool
	caseSensitive bool
}

// SortDataset sorts rows in place by spec, a comma separated list of keys. A
// key prefixed with - sorts descending and one prefixed with ! compares
// strings case sensitively. Numbers compare numerically. Rows missing a key
// sort first. The sort is stable.
func SortDataset(rows []map[string]interface{}, spec string) {
	var keys []sortKey
	for _, s := range strings.Split(spec, ",") {
		s = strings.TrimSpace(s)
		k := sortKey{}
		for len(s) > 0 && (s[0] == '-' || s[0] == '!') {
			if s[0] == '-' {
				k.descending = true
			} else {
				k.caseSensitive = true
			}
			s = s[1:]
		}
		if s == "" {
			continue
		}
		k.key = s
		keys = append(keys, k)
	}

	if len(keys) == 0 {
		return
	}

	sort.SliceStable(rows, func(i, j int) bool {
		for _, k := range keys {
			c := compareValues(rows[i][k.key], rows[j][k.key], k.caseSensitive)
			if c == 0 {
				continue
			}
			if k.descending {
				return c > 0
			}
			return c < 0
		}
		return false
	})
}

func compareValues(a, b interface{}, caseSensitive bool) int {
	switch {
	case a == nil && b == nil:
		return 0
	case a == nil:
		return -1
	case b == nil:
		return 1
	}

	if af, ok := toFloat64(a); ok {
		if bf, ok := toFloat64(b); ok {
			return cmp.Compare(af, bf)
		}
	}

	as, bs := InterfaceToString(a), InterfaceToString(b)
	if !caseSensitive {
		as, bs = strings.ToLower(as), strings.ToLower(bs)
	}
	return strings.Compare(as, bs)
}

func toFloat64(v interface{}) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	default:
		return 0, false
	}
}

// InterfaceToString converts supported primitive or composite values to a
// string. nil and the empty string render as emptyValue, "" by default.
func InterfaceToString(value interface{}, emptyValue ...string) string {
	if len(emptyValue) == 0 {
		emptyValue = []string{""}
	}

	if value == nil {
		return emptyValue[0]
	}

	switch value := value.(type) {
	case string:
		if value == "" {
			return emptyValue[0]
		}
		return value
	case int:
		return strconv.Itoa(value)
	case int64:
		return strconv.FormatInt(value, 10)
	case float64:
		return strconv.FormatFloat(value, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(value)
	default:
		jsonBytes, err := json.Marshal(value)
		if err != nil {
			return fmt.Sprintf("%v", value)
		}
		return string(jsonBytes)
	}
}

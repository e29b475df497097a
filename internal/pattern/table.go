// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package pattern

import (
	"fmt"

	"github.com/apex/log"
)

// Table is a match set collected into rows. Columns is the union of every
// row's keys in first-seen order.
type Table struct {
	Columns []string
	Rows    []Fields
}

// Len returns the number of rows.
func (t Table) Len() int {
	return len(t.Rows)
}

// Column returns one value per row for the named column, nil where a row
// lacks it.
func (t Table) Column(name string) []any {
	values := make([]any, len(t.Rows))
	for i, row := range t.Rows {
		values[i] = row.Value(name)
	}
	return values
}

// Add appends a row and extends Columns with any new keys.
func (t *Table) Add(row Fields) {
	known := make(map[string]bool, len(t.Columns))
	for _, c := range t.Columns {
		known[c] = true
	}
	for _, k := range row.Keys() {
		if !known[k] {
			t.Columns = append(t.Columns, k)
			known[k] = true
		}
	}
	t.Rows = append(t.Rows, row)
}

// MatchTable collects every match of the template into a Table. An empty
// result is not an error: the no-match diagnostic is written to the warnings
// writer (see WithWarnings) and an empty table is returned.
func MatchTable(template string, opts ...Option) (Table, error) {
	m, err := Compile(template, opts...)
	if err != nil {
		return Table{}, err
	}

	var t Table
	for match, err := range m.All() {
		if err != nil {
			return Table{}, err
		}
		t.Add(match.Fields)
	}

	if t.Len() == 0 {
		msg := DescribeNoMatch(template, opts...)
		log.WithField("template", template).Debug("no matches")
		fmt.Fprintln(m.opts.warnings, msg)
	}
	return t, nil
}

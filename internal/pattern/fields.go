// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package pattern

import (
	"bytes"
	"encoding/json"
)

// Fields is an insertion-ordered map of field name to value. Values are
// string, int or float64. The zero value is ready to use.
type Fields struct {
	keys   []string
	values map[string]any
}

// Set stores v under k, keeping the position of an existing key.
func (f *Fields) Set(k string, v any) {
	if f.values == nil {
		f.values = map[string]any{}
	}
	if _, ok := f.values[k]; !ok {
		f.keys = append(f.keys, k)
	}
	f.values[k] = v
}

// Get returns the value stored under k.
func (f Fields) Get(k string) (any, bool) {
	v, ok := f.values[k]
	return v, ok
}

// Value returns the value stored under k or nil.
func (f Fields) Value(k string) any {
	return f.values[k]
}

// Keys returns the keys in insertion order.
func (f Fields) Keys() []string {
	return append([]string(nil), f.keys...)
}

func (f Fields) Len() int {
	return len(f.keys)
}

// MarshalJSON encodes the fields as a JSON object in insertion order.
func (f Fields) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, k := range f.keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		kb, err := json.Marshal(k)
		if err != nil {
			return nil, err
		}
		vb, err := json.Marshal(f.values[k])
		if err != nil {
			return nil, err
		}
		buf.Write(kb)
		buf.WriteByte(':')
		buf.Write(vb)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

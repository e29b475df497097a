// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package driller

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/tidwall/gjson"
)

var indexRegex = regexp.MustCompile(`\[(\d+)\]`)

// Driller returns the value at path in raw. Paths are dotted keys with
// optional [n] indexes, e.g. "runs[0].name". A leading dot is ignored. A
// single element array is drilled through as if it were its only element.
func Driller(raw, path string) gjson.Result {
	path = strings.TrimPrefix(path, ".")
	path = indexRegex.ReplaceAllString(path, ".$1")

	current := gjson.Parse(raw)
	if path == "" {
		return current
	}

	for _, seg := range strings.Split(path, ".") {
		if current.IsArray() {
			if _, err := strconv.Atoi(seg); err == nil {
				current = current.Get(seg)
				continue
			}
			if arr := current.Array(); len(arr) == 1 {
				current = arr[0]
			}
		}
		current = current.Get(seg)
		if !current.Exists() {
			return current
		}
	}

	if current.IsArray() {
		if arr := current.Array(); len(arr) == 1 {
			return arr[0]
		}
	}
	return current
}

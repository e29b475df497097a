// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"strings"

	"github.com/staranto/fglob/internal/pattern"
)

// chopMark replaces a chopped prefix.
const chopMark = "..."

// chopPrefix finds common leading sep-delimited segments in the given column
// of rows. If at least 50% of rows share at least 2 common leading segments,
// those segments (and the trailing sep) are replaced with chopMark+sep.
func chopPrefix(rows []pattern.Fields, column, sep string) {
	if len(rows) == 0 {
		return
	}

	type segmentedValue struct {
		idx      int
		value    string
		segments []string
	}
	var segmented []segmentedValue
	maxSegments := 0
	for i, row := range rows {
		str, ok := row.Value(column).(string)
		if !ok {
			continue
		}
		segs := strings.Split(str, sep)
		segmented = append(segmented, segmentedValue{idx: i, value: str, segments: segs})
		maxSegments = max(maxSegments, len(segs))
	}

	if len(segmented) == 0 {
		return
	}

	// Half the rows, and never a single row out of several.
	threshold := max((len(segmented)+1)/2, min(2, len(segmented)))

	// Longest run of leading segments that each appear in at least half.
	var common []string
	for segIdx := 0; segIdx < maxSegments; segIdx++ {
		counts := make(map[string]int)
		for _, sv := range segmented {
			if segIdx < len(sv.segments) && prefixed(sv.segments, common) {
				counts[sv.segments[segIdx]]++
			}
		}

		var best string
		var bestCount int
		for seg, count := range counts {
			if count > bestCount || (count == bestCount && seg < best) {
				best = seg
				bestCount = count
			}
		}

		if bestCount < threshold {
			break
		}
		common = append(common, best)
	}

	if len(common) < 2 {
		return
	}

	prefix := strings.Join(common, sep) + sep
	for _, sv := range segmented {
		if strings.HasPrefix(sv.value, prefix) {
			rows[sv.idx].Set(column, chopMark+sep+sv.value[len(prefix):])
		}
	}
}

// prefixed reports whether segs begins with head.
func prefixed(segs, head []string) bool {
	if len(head) > len(segs) {
		return false
	}
	for i := range head {
		if segs[i] != head[i] {
			return false
		}
	}
	return true
}

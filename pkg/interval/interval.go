// Copyright 2025 walteh LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package interval

import (
	"sort"
)

// 📐 Range is a half-open [Start, End) span of byte offsets in a text buffer
type Range struct {
	Start int // Inclusive start offset
	End   int // Exclusive end offset
}

// 🔍 Len returns the number of bytes covered by the range
func (r Range) Len() int {
	return r.End - r.Start
}

// 🔍 Contains reports whether the offset falls inside the range
func (r Range) Contains(offset int) bool {
	return offset >= r.Start && offset < r.End
}

// 🔍 Overlaps reports whether two half-open ranges share at least one offset
func (r Range) Overlaps(other Range) bool {
	return r.Start < other.End && other.Start < r.End
}

// 🔄 Merge normalizes an arbitrary set of ranges into a minimal sorted,
// non-overlapping set. Ranges with End <= Start are dropped, negative
// offsets are clamped to zero, and touching ranges are coalesced.
// Malformed input is sanitized, never rejected, and merging is idempotent.
func Merge(ranges []Range) []Range {
	// Sanitize: clamp negatives, drop empty or inverted ranges
	cleaned := make([]Range, 0, len(ranges))
	for _, r := range ranges {
		if r.Start < 0 {
			r.Start = 0
		}
		if r.End <= r.Start {
			continue
		}
		cleaned = append(cleaned, r)
	}
	if len(cleaned) == 0 {
		return nil
	}

	sort.Slice(cleaned, func(i, j int) bool {
		if cleaned[i].Start != cleaned[j].Start {
			return cleaned[i].Start < cleaned[j].Start
		}
		return cleaned[i].End < cleaned[j].End
	})

	// Fold left, growing the last output range whenever the next one
	// starts at or before its end (touching counts as overlap)
	merged := cleaned[:1]
	for _, r := range cleaned[1:] {
		last := &merged[len(merged)-1]
		if r.Start <= last.End {
			if r.End > last.End {
				last.End = r.End
			}
			continue
		}
		merged = append(merged, r)
	}

	return merged
}

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

package detect

import (
	"regexp"

	"github.com/walteh/reword/pkg/interval"
)

// A URL or path token runs until whitespace, a backtick, a quote, or a
// closing paren/bracket. Those characters end the token because they are
// natural sentence and markup boundaries, not because they are invalid in
// real filesystems.
const terminators = "[^\\s\"'`)\\]]"

var (
	// 🌐 urlPattern matches http/https URLs, scheme case-insensitive
	urlPattern = regexp.MustCompile(`(?i)https?://` + terminators + `+`)

	// 📁 pathPattern matches drive-letter, home-relative, and dot-relative paths
	pathPattern = regexp.MustCompile(`(?:[A-Za-z]:\\|~/|\.\.?/)` + terminators + `+`)

	// 📁 absPathPattern matches a bare absolute path at a token boundary.
	// Go's regexp has no lookbehind, so the boundary is a capture group and
	// the path itself is submatch 2.
	absPathPattern = regexp.MustCompile(`(^|[\s"'(\[])(/` + terminators + `+)`)
)

// 🔍 Detector scans plain text for URL-looking and path-looking substrings
// that must be excluded from substitution.
type Detector struct {
	absolutePaths bool
}

// ⚙️ Options configures which prefixes count as protected paths
type Options struct {
	// AbsolutePaths controls whether a bare /-prefixed token is protected.
	// Drive-letter, ~/, ./ and ../ prefixes are always protected.
	AbsolutePaths bool
}

// 🏭 New creates a detector with the given options
func New(opts Options) *Detector {
	return &Detector{
		absolutePaths: opts.AbsolutePaths,
	}
}

// 🏭 NewDefault creates a detector with absolute-path protection enabled
func NewDefault() *Detector {
	return New(Options{AbsolutePaths: true})
}

// 🔍 Detect returns the ranges of every URL and path token in text.
// Output is raw: unmerged, unsorted, possibly overlapping. Callers pass it
// through interval.Merge before use. Zero matches yields an empty set.
func (d *Detector) Detect(text string) []interval.Range {
	var ranges []interval.Range

	for _, m := range urlPattern.FindAllStringIndex(text, -1) {
		ranges = append(ranges, interval.Range{Start: m[0], End: m[1]})
	}

	for _, m := range pathPattern.FindAllStringIndex(text, -1) {
		ranges = append(ranges, interval.Range{Start: m[0], End: m[1]})
	}

	if d.absolutePaths {
		for _, m := range absPathPattern.FindAllStringSubmatchIndex(text, -1) {
			// m[4], m[5] bound submatch 2, the path without its boundary char
			ranges = append(ranges, interval.Range{Start: m[4], End: m[5]})
		}
	}

	return ranges
}

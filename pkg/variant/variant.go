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

package variant

import (
	"regexp"
	"sort"
	"strings"

	"gitlab.com/tozd/go/errors"

	"github.com/walteh/reword/pkg/interval"
)

// 🧩 Decomposer splits a target word into its lowercase sub-words.
// It is a pluggable strategy so the engine generalizes to new target words
// without code changes.
type Decomposer func(word string) []string

// 🗺️ decompositions holds the known compound words. Words with an internal
// case boundary would split automatically; these have none, so the split is
// declared here.
var decompositions = map[string][]string{
	"opencode": {"open", "code"},
}

// 🧩 DefaultDecomposer returns the known decomposition for the word, or a
// single-part decomposition for anything unrecognized. Unknown words still
// produce seven variants, most of them degenerate duplicates of the word
// itself.
func DefaultDecomposer(word string) []string {
	if parts, ok := decompositions[strings.ToLower(word)]; ok {
		return parts
	}
	return []string{strings.ToLower(word)}
}

// 📝 capitalize upper-cases the first byte and lower-cases the rest.
// ASCII only, matching the scope of the recognized naming conventions.
func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + strings.ToLower(s[1:])
}

// 🔄 Variants generates the seven recognized spellings of a decomposition,
// in fixed order: camelCase, PascalCase, kebab-case, snake_case,
// SCREAMING_SNAKE, SCREAMING-KEBAB, dot.case.
func Variants(parts []string) []string {
	lower := make([]string, len(parts))
	upper := make([]string, len(parts))
	pascal := make([]string, len(parts))
	camel := make([]string, len(parts))
	for i, p := range parts {
		lower[i] = strings.ToLower(p)
		upper[i] = strings.ToUpper(p)
		pascal[i] = capitalize(p)
		if i == 0 {
			camel[i] = strings.ToLower(p)
		} else {
			camel[i] = capitalize(p)
		}
	}

	return []string{
		strings.Join(camel, ""),
		strings.Join(pascal, ""),
		strings.Join(lower, "-"),
		strings.Join(lower, "_"),
		strings.Join(upper, "_"),
		strings.Join(upper, "-"),
		strings.Join(lower, "."),
	}
}

// 🎯 Matcher locates all occurrences of a target word or its variants.
// It is a pure function from text to an ordered match list: every scan uses
// a stateless find-all call, so no cursor state survives between calls.
type Matcher struct {
	re *regexp.Regexp
}

// 🏭 Compile builds a matcher from case-sensitive literal variants plus
// optional case-insensitive base forms. Every literal is regex-escaped and
// matched as a whole word. Literals are ordered longest first so a shorter
// alternative sharing a prefix can never shadow a longer one.
func Compile(literals []string, baseForms []string) (*Matcher, error) {
	if len(literals) == 0 && len(baseForms) == 0 {
		return nil, errors.Errorf("compiling matcher: no literals or base forms given")
	}

	var alts []string
	if len(baseForms) > 0 {
		alts = append(alts, `(?i:\b(?:`+alternation(baseForms)+`)\b)`)
	}
	if len(literals) > 0 {
		alts = append(alts, `\b(?:`+alternation(literals)+`)\b`)
	}

	re, err := regexp.Compile(strings.Join(alts, "|"))
	if err != nil {
		return nil, errors.Errorf("compiling matcher pattern: %w", err)
	}

	return &Matcher{re: re}, nil
}

// 🏭 CompileFor builds the matcher for a target word. With variants enabled
// the word is decomposed and all seven spellings are matched alongside the
// case-insensitive base word; otherwise only the base word matches.
func CompileFor(word string, dec Decomposer, withVariants bool) (*Matcher, error) {
	if word == "" {
		return nil, errors.Errorf("compiling matcher: target word is empty")
	}
	if dec == nil {
		dec = DefaultDecomposer
	}

	if !withVariants {
		return Compile(nil, []string{word})
	}
	return Compile(Variants(dec(word)), []string{word})
}

// 📝 alternation escapes literals and joins them longest-first
func alternation(literals []string) string {
	escaped := make([]string, len(literals))
	for i, l := range literals {
		escaped[i] = regexp.QuoteMeta(l)
	}
	sort.SliceStable(escaped, func(i, j int) bool {
		return len(escaped[i]) > len(escaped[j])
	})
	return strings.Join(escaped, "|")
}

// 🔍 FindAll returns the ranges of every match in text, in order
func (m *Matcher) FindAll(text string) []interval.Range {
	idx := m.re.FindAllStringIndex(text, -1)
	ranges := make([]interval.Range, 0, len(idx))
	for _, pair := range idx {
		ranges = append(ranges, interval.Range{Start: pair[0], End: pair[1]})
	}
	return ranges
}

// 🔍 MatchString reports whether text contains at least one match
func (m *Matcher) MatchString(text string) bool {
	return m.re.MatchString(text)
}

// 📝 String returns the compiled pattern text
func (m *Matcher) String() string {
	return m.re.String()
}

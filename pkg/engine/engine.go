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

// Package engine performs safety-aware word substitution: it replaces a
// target word and its variants in free-form text while leaving URLs, file
// paths, inline code, and fenced code untouched.
package engine

import (
	"strings"

	"github.com/walteh/reword/pkg/detect"
	"github.com/walteh/reword/pkg/interval"
	"github.com/walteh/reword/pkg/segment"
	"github.com/walteh/reword/pkg/variant"
)

// 🎯 DefaultWord is the target word matched when no matcher is supplied
const DefaultWord = "opencode"

// defaultMatcher matches the base word whole-word, case-insensitively.
// The pattern is static, so a compile failure is a programming error.
var defaultMatcher = func() *variant.Matcher {
	m, err := variant.CompileFor(DefaultWord, nil, false)
	if err != nil {
		panic(err)
	}
	return m
}()

// 🔄 Engine applies word substitution to the unprotected parts of a text.
// It is pure and synchronous: each call allocates only call-scoped data and
// never mutates a caller-supplied matcher, so one Engine is safe for
// concurrent use across unrelated inputs.
type Engine struct {
	detector *detect.Detector
}

// ⚙️ Options configures an Engine
type Options struct {
	// Detector overrides the protected-range detector. Nil selects the
	// default detector, which protects bare absolute paths.
	Detector *detect.Detector
}

// 🏭 New creates an engine with the given options
func New(opts Options) *Engine {
	d := opts.Detector
	if d == nil {
		d = detect.NewDefault()
	}
	return &Engine{detector: d}
}

// 🏭 NewDefault creates an engine with default options
func NewDefault() *Engine {
	return New(Options{})
}

// 🔄 Replace substitutes every eligible occurrence of the target word in
// text with replacement. A nil matcher falls back to whole-word,
// case-insensitive matching of DefaultWord. Fenced code, inline code, URLs,
// and paths are copied byte-for-byte. Empty text is returned unchanged, and
// an empty replacement deletes matches.
//
// Replacement is a single non-recursive pass over the original text's match
// positions; inserted output is never rescanned, so a replacement string
// containing the target word is not re-matched.
func (e *Engine) Replace(text, replacement string, m *variant.Matcher) string {
	out, _ := e.ReplaceN(text, replacement, m)
	return out
}

// 🔄 ReplaceN is Replace plus the number of substitutions made
func (e *Engine) ReplaceN(text, replacement string, m *variant.Matcher) (string, int) {
	if text == "" {
		return text, 0
	}
	if m == nil {
		m = defaultMatcher
	}

	segs := segment.Split(text)
	out := make([]segment.Segment, len(segs))
	total := 0
	for i, seg := range segs {
		if seg.Mode != segment.ModePlain {
			out[i] = seg
			continue
		}
		replaced, n := e.replacePlain(seg.Text, replacement, m)
		total += n
		out[i] = segment.Segment{Text: replaced, Mode: segment.ModePlain}
	}

	return segment.Join(out), total
}

// 🔄 replacePlain substitutes matches in a single plain segment, skipping
// any match that overlaps a protected range.
func (e *Engine) replacePlain(text, replacement string, m *variant.Matcher) (string, int) {
	if text == "" {
		return text, 0
	}

	protected := interval.Merge(e.detector.Detect(text))
	matches := m.FindAll(text)
	if len(matches) == 0 {
		return text, 0
	}

	var b strings.Builder
	pos := 0
	count := 0
	next := 0 // index into protected, which is sorted
	for _, match := range matches {
		for next < len(protected) && protected[next].End <= match.Start {
			next++
		}
		if next < len(protected) && protected[next].Overlaps(match) {
			// Match touches a URL or path; leave it verbatim
			continue
		}
		b.WriteString(text[pos:match.Start])
		b.WriteString(replacement)
		pos = match.End
		count++
	}
	b.WriteString(text[pos:])

	return b.String(), count
}

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

package segment

import (
	"strings"
)

// 🎨 Mode classifies a segment of text relative to code delimiters
type Mode int

const (
	ModePlain  Mode = iota // Outside any code delimiter
	ModeInline             // Inside a single-backtick span
	ModeFenced             // Inside a triple-backtick block
)

// String returns a string representation of Mode
func (m Mode) String() string {
	switch m {
	case ModePlain:
		return "plain"
	case ModeInline:
		return "inline-code"
	case ModeFenced:
		return "fenced-code"
	default:
		return "unknown"
	}
}

// 📄 Segment is a contiguous run of text between delimiters. The delimiter
// tokens themselves are not part of any segment; Join reinserts them from
// the mode transitions.
type Segment struct {
	Text string
	Mode Mode
}

const (
	fenceToken  = "```"
	inlineToken = "`"
)

// 🔀 Split runs a small state machine over text with states plain,
// inline-code, and fenced-code. A triple backtick toggles the fenced state
// wherever it appears; a single backtick toggles the inline state only
// outside fences. Closing a fence resets the inline state, so each
// fenced-out region tracks its own inline parity.
//
// An unterminated delimiter is not an error: the trailing text simply keeps
// whatever state the last token put the machine in.
//
// Join(Split(s)) == s for every s.
func Split(text string) []Segment {
	var segs []Segment
	mode := ModePlain
	start := 0

	emit := func(end int, next Mode) {
		segs = append(segs, Segment{Text: text[start:end], Mode: mode})
		mode = next
	}

	i := 0
	for i < len(text) {
		if strings.HasPrefix(text[i:], fenceToken) {
			if mode == ModeFenced {
				emit(i, ModePlain)
			} else {
				emit(i, ModeFenced)
			}
			i += len(fenceToken)
			start = i
			continue
		}
		if text[i] == '`' && mode != ModeFenced {
			if mode == ModeInline {
				emit(i, ModePlain)
			} else {
				emit(i, ModeInline)
			}
			i += len(inlineToken)
			start = i
			continue
		}
		i++
	}

	segs = append(segs, Segment{Text: text[start:], Mode: mode})
	return segs
}

// 🔗 Join reassembles segments produced by Split, reinserting the exact
// delimiter tokens implied by each mode transition: a fence token whenever
// the fenced state changes, an inline token otherwise.
func Join(segs []Segment) string {
	var b strings.Builder
	for i, seg := range segs {
		if i > 0 {
			if seg.Mode == ModeFenced || segs[i-1].Mode == ModeFenced {
				b.WriteString(fenceToken)
			} else {
				b.WriteString(inlineToken)
			}
		}
		b.WriteString(seg.Text)
	}
	return b.String()
}

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

package status

import (
	"crypto/sha256"
	"encoding/hex"
	"sort"
	"sync"
)

// 📊 FileStatus represents the outcome of processing a file
type FileStatus int

const (
	StatusUnknown   FileStatus = iota
	StatusModified             // Replacements were made
	StatusUnchanged            // File matched nothing
	StatusSkipped              // File excluded by an ignore pattern
	StatusError                // Processing failed
)

// String returns a string representation of FileStatus
func (s FileStatus) String() string {
	switch s {
	case StatusModified:
		return "modified"
	case StatusUnchanged:
		return "unchanged"
	case StatusSkipped:
		return "skipped"
	case StatusError:
		return "error"
	default:
		return "unknown"
	}
}

// 📄 FileInfo contains the processing outcome for one file
type FileInfo struct {
	Path         string     // Relative path to the file
	Status       FileStatus // Processing outcome
	Replacements int        // Number of replacements made
	Checksum     string     // Content hash after processing
	Diff         string     // Rendered diff, dry-run only
	Error        error      // Any error associated with this file
}

// 📊 Summary aggregates a batch run
type Summary struct {
	Total        int
	Modified     int
	Unchanged    int
	Skipped      int
	Errors       int
	Replacements int
}

// 🗃️ Tracker collects per-file outcomes across concurrent workers
type Tracker struct {
	mu    sync.Mutex
	files []FileInfo
}

// 🏭 NewTracker creates an empty tracker
func NewTracker() *Tracker {
	return &Tracker{}
}

// 📝 Record adds one file outcome
func (t *Tracker) Record(info FileInfo) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.files = append(t.files, info)
}

// 🔍 Files returns all recorded outcomes, sorted by path
func (t *Tracker) Files() []FileInfo {
	t.mu.Lock()
	defer t.mu.Unlock()

	out := make([]FileInfo, len(t.files))
	copy(out, t.files)
	sort.Slice(out, func(i, j int) bool { return out[i].Path < out[j].Path })
	return out
}

// 📊 Summary aggregates the recorded outcomes
func (t *Tracker) Summary() Summary {
	t.mu.Lock()
	defer t.mu.Unlock()

	var s Summary
	s.Total = len(t.files)
	for _, f := range t.files {
		switch f.Status {
		case StatusModified:
			s.Modified++
		case StatusUnchanged:
			s.Unchanged++
		case StatusSkipped:
			s.Skipped++
		case StatusError:
			s.Errors++
		}
		s.Replacements += f.Replacements
	}
	return s
}

// 🔑 Checksum returns the hex sha256 of content, used to detect changes
func Checksum(content []byte) string {
	sum := sha256.Sum256(content)
	return hex.EncodeToString(sum[:])
}

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

package processor

import (
	"bytes"
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/sergi/go-diff/diffmatchpatch"
	"gitlab.com/tozd/go/errors"
	"golang.org/x/sync/errgroup"

	"github.com/walteh/reword/pkg/config"
	"github.com/walteh/reword/pkg/detect"
	"github.com/walteh/reword/pkg/engine"
	"github.com/walteh/reword/pkg/log"
	"github.com/walteh/reword/pkg/status"
)

// ⚙️ Options configures a batch run
type Options struct {
	Root    string   // Directory to walk, default "."
	Include []string // Doublestar globs selecting files, default **/*
	Ignore  []string // Doublestar globs excluding files
	DryRun  bool     // Render diffs instead of writing files
	Jobs    int      // Concurrent workers, default NumCPU
}

// 🏭 Processor applies the configured replacement across a file tree
type Processor struct {
	res    *config.Resolved
	eng    *engine.Engine
	logger *log.Logger
	opts   Options
}

// 🏭 New creates a processor for a resolved configuration
func New(res *config.Resolved, logger *log.Logger, opts Options) *Processor {
	if opts.Root == "" {
		opts.Root = "."
	}
	if len(opts.Include) == 0 {
		opts.Include = []string{"**/*"}
	}
	if opts.Jobs <= 0 {
		opts.Jobs = runtime.NumCPU()
	}

	eng := engine.New(engine.Options{
		Detector: detect.New(detect.Options{AbsolutePaths: res.AbsolutePaths()}),
	})

	return &Processor{res: res, eng: eng, logger: logger, opts: opts}
}

// 🏃 Run processes every matching file under the root. Per-file failures
// are recorded and logged, not fatal; only a broken walk aborts the run.
func (p *Processor) Run(ctx context.Context) ([]status.FileInfo, status.Summary, error) {
	tracker := status.NewTracker()

	p.logger.StartBatchOperation(ctx, log.BatchOperation{
		Root:     p.opts.Root,
		Patterns: len(p.opts.Include),
		DryRun:   p.opts.DryRun,
	})
	defer p.logger.EndBatchOperation(ctx)

	files, err := p.collect()
	if err != nil {
		return nil, status.Summary{}, errors.Errorf("collecting files: %w", err)
	}

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(p.opts.Jobs)
	for _, f := range files {
		file := f
		g.Go(func() error {
			p.processFile(ctx, file, tracker)
			return ctx.Err()
		})
	}
	if err := g.Wait(); err != nil {
		return nil, status.Summary{}, errors.Errorf("processing files: %w", err)
	}

	return tracker.Files(), tracker.Summary(), nil
}

// candidate is one file selected by the include globs
type candidate struct {
	rel     string
	abs     string
	ignored bool
}

// 🔍 collect walks the root and selects files by the include and ignore
// globs. Glob matching runs on slash-separated relative paths.
func (p *Processor) collect() ([]candidate, error) {
	var files []candidate

	err := filepath.WalkDir(p.opts.Root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if d.Name() == ".git" {
				return filepath.SkipDir
			}
			return nil
		}

		rel, err := filepath.Rel(p.opts.Root, path)
		if err != nil {
			return errors.Errorf("relativizing %s: %w", path, err)
		}
		rel = filepath.ToSlash(rel)

		if !matchAny(p.opts.Include, rel) {
			return nil
		}

		files = append(files, candidate{
			rel:     rel,
			abs:     path,
			ignored: matchAny(p.opts.Ignore, rel),
		})
		return nil
	})
	if err != nil {
		return nil, err
	}

	return files, nil
}

// 🔄 processFile runs the engine over one file and records the outcome
func (p *Processor) processFile(ctx context.Context, file candidate, tracker *status.Tracker) {
	record := func(info status.FileInfo) {
		tracker.Record(info)
		p.logger.LogReplaceOperation(ctx, log.ReplaceOperation{
			Path:         file.rel,
			Status:       info.Status.String(),
			IsModified:   info.Status == status.StatusModified,
			IsSkipped:    info.Status == status.StatusSkipped,
			IsError:      info.Status == status.StatusError,
			Replacements: info.Replacements,
			DryRun:       p.opts.DryRun,
		})
	}

	if file.ignored {
		record(status.FileInfo{Path: file.rel, Status: status.StatusSkipped})
		return
	}

	data, err := os.ReadFile(file.abs)
	if err != nil {
		record(status.FileInfo{
			Path:   file.rel,
			Status: status.StatusError,
			Error:  errors.Errorf("reading %s: %w", file.rel, err),
		})
		return
	}

	// Binary files are never rewritten
	if bytes.ContainsRune(data, 0) {
		record(status.FileInfo{Path: file.rel, Status: status.StatusSkipped})
		return
	}

	original := string(data)
	replaced, n := p.eng.ReplaceN(original, p.res.Replacement, p.res.Matcher)
	if n == 0 {
		record(status.FileInfo{
			Path:     file.rel,
			Status:   status.StatusUnchanged,
			Checksum: status.Checksum(data),
		})
		return
	}

	info := status.FileInfo{
		Path:         file.rel,
		Status:       status.StatusModified,
		Replacements: n,
		Checksum:     status.Checksum([]byte(replaced)),
	}

	if p.opts.DryRun {
		dmp := diffmatchpatch.New()
		diffs := dmp.DiffCleanupSemantic(dmp.DiffMain(original, replaced, false))
		info.Diff = dmp.DiffPrettyText(diffs)
		record(info)
		return
	}

	mode := fs.FileMode(0o644)
	if st, err := os.Stat(file.abs); err == nil {
		mode = st.Mode()
	}
	if err := os.WriteFile(file.abs, []byte(replaced), mode.Perm()); err != nil {
		record(status.FileInfo{
			Path:   file.rel,
			Status: status.StatusError,
			Error:  errors.Errorf("writing %s: %w", file.rel, err),
		})
		return
	}

	record(info)
}

func matchAny(patterns []string, rel string) bool {
	for _, pattern := range patterns {
		matched, err := doublestar.Match(pattern, rel)
		if err != nil {
			continue
		}
		if matched {
			return true
		}
	}
	return false
}

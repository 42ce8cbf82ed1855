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

// Package hooks wires the substitution engine into a host application's
// lifecycle events. The host hands each event's text through Handle and
// receives the rewritten text back; everything else (which sites run, what
// the replacement is) comes from configuration.
package hooks

import (
	"context"
	"sync"

	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"

	"github.com/walteh/reword/pkg/config"
	"github.com/walteh/reword/pkg/detect"
	"github.com/walteh/reword/pkg/engine"
)

// 🪝 Event is one host lifecycle event carrying replaceable text
type Event struct {
	Site string // One of config.CallSites
	Text string // The text to rewrite
}

// 🖼️ TitleUpdater pushes a rewritten session title back to the host.
// Supplied by the integration, nil when the host has no title surface.
type TitleUpdater interface {
	UpdateTitle(ctx context.Context, title string) error
}

// ⚙️ Options configures a Runner
type Options struct {
	TitleUpdater TitleUpdater
}

// 🏃 Runner applies configured replacement at host call sites. Safe for
// concurrent use; Reload swaps the resolved configuration atomically.
type Runner struct {
	mu       sync.RWMutex
	resolved *config.Resolved
	eng      *engine.Engine
	titles   TitleUpdater
}

// 🏭 NewRunner resolves the configuration and builds the engine
func NewRunner(cfg *config.Config, opts Options) (*Runner, error) {
	r := &Runner{titles: opts.TitleUpdater}
	if err := r.Reload(cfg); err != nil {
		return nil, errors.Errorf("creating hook runner: %w", err)
	}
	return r, nil
}

// 🔄 Reload swaps in a new configuration, recompiling the matcher.
// The previous configuration stays active if the new one fails to resolve.
func (r *Runner) Reload(cfg *config.Config) error {
	resolved, err := cfg.Resolve()
	if err != nil {
		return errors.Errorf("reloading config: %w", err)
	}

	eng := engine.New(engine.Options{
		Detector: detect.New(detect.Options{AbsolutePaths: resolved.AbsolutePaths()}),
	})

	r.mu.Lock()
	r.resolved = resolved
	r.eng = eng
	r.mu.Unlock()
	return nil
}

// 🔍 Config returns the currently active configuration
func (r *Runner) Config() config.Config {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.resolved.Config
}

// 🪝 Handle rewrites the event's text when its call site is enabled and
// returns the result. Disabled sites and unknown sites return the text
// unchanged. For the session-title site the rewritten title is also pushed
// to the host; a host failure there is logged and swallowed so the event
// flow never breaks.
func (r *Runner) Handle(ctx context.Context, ev Event) string {
	r.mu.RLock()
	resolved := r.resolved
	eng := r.eng
	r.mu.RUnlock()

	logger := zerolog.Ctx(ctx)

	if !resolved.EnabledFor(ev.Site) {
		logger.Trace().Str("site", ev.Site).Msg("site disabled, passing text through")
		return ev.Text
	}

	out := eng.Replace(ev.Text, resolved.Replacement, resolved.Matcher)
	logger.Debug().
		Str("site", ev.Site).
		Bool("modified", out != ev.Text).
		Msg("handled hook event")

	if ev.Site == config.SiteSessionTitle && r.titles != nil {
		if err := r.titles.UpdateTitle(ctx, out); err != nil {
			logger.Warn().Err(err).Msg("updating session title failed")
		}
	}

	return out
}

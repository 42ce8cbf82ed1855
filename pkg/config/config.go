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

package config

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"

	"github.com/walteh/reword/pkg/variant"
)

// 🔌 Parser is the interface for config parsers
type Parser interface {
	// 📝 Parse parses the config from bytes
	Parse(ctx context.Context, data []byte) (*Config, error)

	// 🔍 CanParse checks if this parser can handle the given file
	CanParse(filename string) bool
}

var (
	// 🗺️ parsers is a list of available parsers
	parsers []Parser
)

// 📝 Register registers a parser
func Register(p Parser) {
	parsers = append(parsers, p)
}

// 🎯 GetParser returns a parser that can handle the given file
func GetParser(filename string) Parser {
	for _, p := range parsers {
		if p.CanParse(filename) {
			return p
		}
	}
	return nil
}

// 🪝 The five call sites the host can wire replacement into
const (
	SiteUserPrompt      = "user-prompt"
	SiteAssistantOutput = "assistant-output"
	SiteToolOutput      = "tool-output"
	SiteSessionTitle    = "session-title"
	SiteNotification    = "notification"
)

// 🗺️ CallSites lists every recognized call site, in display order
var CallSites = []string{
	SiteUserPrompt,
	SiteAssistantOutput,
	SiteToolOutput,
	SiteSessionTitle,
	SiteNotification,
}

// 📚 Config represents the complete replacement configuration
type Config struct {
	// Enabled toggles replacement globally
	Enabled bool `json:"enabled" yaml:"enabled" hcl:"enabled,optional"`

	// Replacement is the string substituted for the target word. Empty is
	// valid and deletes matches.
	Replacement string `json:"replacement" yaml:"replacement" hcl:"replacement,optional"`

	// Word is the target word. Defaults to "opencode".
	Word string `json:"word,omitempty" yaml:"word,omitempty" hcl:"word,optional"`

	// Parts overrides the word's decomposition into sub-words
	Parts []string `json:"parts,omitempty" yaml:"parts,omitempty" hcl:"parts,optional"`

	// MatchVariants enables the seven case/separator spellings
	MatchVariants bool `json:"match_variants,omitempty" yaml:"match_variants,omitempty" hcl:"match_variants,optional"`

	// ProtectAbsolutePaths controls whether bare /-prefixed paths are
	// protected. Nil means true.
	ProtectAbsolutePaths *bool `json:"protect_absolute_paths,omitempty" yaml:"protect_absolute_paths,omitempty" hcl:"protect_absolute_paths,optional"`

	// Hooks enables or disables individual call sites. A site missing from
	// the map follows the global Enabled flag.
	Hooks map[string]bool `json:"hooks,omitempty" yaml:"hooks,omitempty" hcl:"hooks,optional"`
}

// 🎯 Default returns the safe fallback configuration: replacement disabled
func Default() *Config {
	return &Config{
		Enabled: false,
		Word:    "opencode",
	}
}

// 🎯 Load loads the configuration from a file, applies environment
// overrides, and validates the result
func Load(ctx context.Context, path string) (*Config, error) {
	logger := zerolog.Ctx(ctx)
	logger.Debug().Str("path", path).Msg("loading configuration")

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Errorf("reading config file: %w", err)
	}

	p := GetParser(path)
	if p == nil {
		return nil, errors.Errorf("no parser found for file: %s", path)
	}

	cfg, err := p.Parse(ctx, data)
	if err != nil {
		return nil, errors.Errorf("parsing config: %w", err)
	}

	cfg.ApplyEnv(ctx)

	if err := cfg.Validate(); err != nil {
		return nil, errors.Errorf("validating config: %w", err)
	}

	return cfg, nil
}

// 🎯 LoadOrDefault loads the configuration, falling back to the safe
// disabled default on any failure. The failure is logged, never surfaced.
func LoadOrDefault(ctx context.Context, path string) *Config {
	cfg, err := Load(ctx, path)
	if err != nil {
		zerolog.Ctx(ctx).Warn().Err(err).Str("path", path).
			Msg("config unavailable, falling back to defaults")
		cfg = Default()
		cfg.ApplyEnv(ctx)
		if verr := cfg.Validate(); verr != nil {
			zerolog.Ctx(ctx).Warn().Err(verr).Msg("environment overrides rejected")
			return Default()
		}
	}
	return cfg
}

// 🔍 Validate checks the configuration and fills defaults
func (cfg *Config) Validate() error {
	if cfg.Word == "" {
		cfg.Word = "opencode"
	}
	if strings.ContainsAny(cfg.Word, " \t\n") {
		return errors.Errorf("word %q must not contain whitespace", cfg.Word)
	}
	for _, p := range cfg.Parts {
		if p == "" {
			return errors.Errorf("parts must not contain empty sub-words")
		}
	}
	for site := range cfg.Hooks {
		if !knownSite(site) {
			return errors.Errorf("unknown hook site %q (known: %s)", site, strings.Join(CallSites, ", "))
		}
	}
	return nil
}

// 🔍 EnabledFor reports whether replacement runs at the given call site
func (cfg *Config) EnabledFor(site string) bool {
	if !cfg.Enabled {
		return false
	}
	if on, ok := cfg.Hooks[site]; ok {
		return on
	}
	return true
}

// 🔍 AbsolutePaths resolves the absolute-path protection policy
func (cfg *Config) AbsolutePaths() bool {
	if cfg.ProtectAbsolutePaths == nil {
		return true
	}
	return *cfg.ProtectAbsolutePaths
}

// 🧩 Decomposer returns the decomposition strategy for the target word:
// the explicit Parts override when present, the built-in table otherwise.
func (cfg *Config) Decomposer() variant.Decomposer {
	if len(cfg.Parts) == 0 {
		return variant.DefaultDecomposer
	}
	parts := make([]string, len(cfg.Parts))
	for i, p := range cfg.Parts {
		parts[i] = strings.ToLower(p)
	}
	return func(string) []string { return parts }
}

// 🎯 Resolved is a validated configuration with its compiled matcher.
// The matcher is compiled once per configuration change and reused across
// replacement calls.
type Resolved struct {
	Config
	Matcher *variant.Matcher
}

// 🏭 Resolve compiles the active matcher for the configuration
func (cfg *Config) Resolve() (*Resolved, error) {
	if err := cfg.Validate(); err != nil {
		return nil, errors.Errorf("resolving config: %w", err)
	}

	m, err := variant.CompileFor(cfg.Word, cfg.Decomposer(), cfg.MatchVariants)
	if err != nil {
		return nil, errors.Errorf("compiling matcher for %q: %w", cfg.Word, err)
	}

	return &Resolved{Config: *cfg, Matcher: m}, nil
}

// 📝 String returns a short description of the config
func (cfg *Config) String() string {
	state := "disabled"
	if cfg.Enabled {
		state = "enabled"
	}
	return fmt.Sprintf("%s -> %q (%s, variants=%v)", cfg.Word, cfg.Replacement, state, cfg.MatchVariants)
}

func knownSite(site string) bool {
	for _, s := range CallSites {
		if s == site {
			return true
		}
	}
	return false
}

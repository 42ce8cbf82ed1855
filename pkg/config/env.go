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
	"os"
	"strconv"

	"github.com/rs/zerolog"
)

// 🌍 Environment variables overriding file configuration
const (
	EnvEnabled     = "REWORD_ENABLED"
	EnvReplacement = "REWORD_REPLACEMENT"
	EnvWord        = "REWORD_WORD"
	EnvVariants    = "REWORD_VARIANTS"
)

// 🌍 ApplyEnv overlays environment variables onto the config. Environment
// wins over file values. A malformed boolean is ignored with a debug log
// rather than failing the load.
func (cfg *Config) ApplyEnv(ctx context.Context) {
	logger := zerolog.Ctx(ctx)

	if v, ok := os.LookupEnv(EnvEnabled); ok {
		if b, err := strconv.ParseBool(v); err == nil {
			cfg.Enabled = b
		} else {
			logger.Debug().Str("var", EnvEnabled).Str("value", v).Msg("ignoring malformed boolean")
		}
	}

	if v, ok := os.LookupEnv(EnvReplacement); ok {
		cfg.Replacement = v
	}

	if v, ok := os.LookupEnv(EnvWord); ok && v != "" {
		cfg.Word = v
	}

	if v, ok := os.LookupEnv(EnvVariants); ok {
		if b, err := strconv.ParseBool(v); err == nil {
			cfg.MatchVariants = b
		} else {
			logger.Debug().Str("var", EnvVariants).Str("value", v).Msg("ignoring malformed boolean")
		}
	}
}

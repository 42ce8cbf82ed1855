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

package log

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/fatih/color"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLogger(t *testing.T) {
	// Disable color for testing
	color.NoColor = true
	defer func() { color.NoColor = false }()

	tests := []struct {
		name     string
		op       func(t *testing.T, logger *Logger)
		wantLogs []string
	}{
		{
			name: "log_replace_operation",
			op: func(t *testing.T, logger *Logger) {
				logger.LogReplaceOperation(context.Background(), ReplaceOperation{
					Path:         "notes.md",
					Status:       "replaced",
					IsModified:   true,
					Replacements: 2,
				})
			},
			wantLogs: []string{
				"⟳ notes.md",
				"2 replaced",
			},
		},
		{
			name: "log_skipped_operation",
			op: func(t *testing.T, logger *Logger) {
				logger.LogReplaceOperation(context.Background(), ReplaceOperation{
					Path:      "vendor/big.js",
					Status:    "skipped",
					IsSkipped: true,
				})
			},
			wantLogs: []string{
				"- vendor/big.js",
			},
		},
		{
			name: "log_batch_operation",
			op: func(t *testing.T, logger *Logger) {
				logger.StartBatchOperation(context.Background(), BatchOperation{
					Root:     "./docs",
					Patterns: 2,
					DryRun:   true,
				})
			},
			wantLogs: []string{
				"[rewording ./docs] (dry run)",
			},
		},
		{
			name: "log_messages",
			op: func(t *testing.T, logger *Logger) {
				logger.Info("info message")
				logger.Warning("warning message")
				logger.Error("error message")
				logger.Success("success message")
			},
			wantLogs: []string{
				"ℹ️  info message",
				"⚠️  warning message",
				"❌ error message",
				"✅ success message",
			},
		},
		{
			name: "log_formatted_messages",
			op: func(t *testing.T, logger *Logger) {
				logger.Infof("info %s", "test")
				logger.Successf("success %s", "test")
			},
			wantLogs: []string{
				"ℹ️  info test",
				"✅ success test",
			},
		},
		{
			name: "header",
			op: func(t *testing.T, logger *Logger) {
				logger.Header("processing input")
			},
			wantLogs: []string{
				"reword • processing input",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var console bytes.Buffer
			logger := New(&console, zerolog.Disabled)

			tt.op(t, logger)

			out := console.String()
			for _, want := range tt.wantLogs {
				assert.Contains(t, out, want)
			}
		})
	}
}

func TestLogger_Context(t *testing.T) {
	var console bytes.Buffer
	logger := New(&console, zerolog.Disabled)

	ctx := NewContext(context.Background(), logger)
	require.Same(t, logger, FromContext(ctx))

	require.Panics(t, func() {
		FromContext(context.Background())
	})
}

func TestLogger_EndBatchWithoutStart(t *testing.T) {
	var console bytes.Buffer
	logger := New(&console, zerolog.Disabled)

	// Must be a no-op, not a panic
	logger.EndBatchOperation(context.Background())
	assert.Empty(t, strings.TrimSpace(console.String()))
}

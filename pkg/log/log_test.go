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
	"io"
	"strings"
	"testing"
	"time"

	"github.com/fatih/color"
	"github.com/pterm/pterm"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gitlab.com/tozd/go/errors"
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
			name: "log_updated_file",
			op: func(t *testing.T, logger *Logger) {
				logger.LogFileOperation(context.Background(), FileOperation{
					Path:         "src/user.entity.ts",
					Status:       StatusUpdated,
					Replacements: 2,
					ImportAdded:  true,
				})
			},
			wantLogs: []string{
				"✓ src/user.entity.ts                                 updated        2 wrapped, +import",
			},
		},
		{
			name: "skipped_file_hidden_by_default",
			op: func(t *testing.T, logger *Logger) {
				logger.LogFileOperation(context.Background(), FileOperation{
					Path:   "src/main.ts",
					Status: StatusSkipped,
				})
				logger.Info("done")
			},
			wantLogs: []string{
				"ℹ️  done",
			},
		},
		{
			name: "skipped_file_shown_when_enabled",
			op: func(t *testing.T, logger *Logger) {
				logger.WithSkipped(true).LogFileOperation(context.Background(), FileOperation{
					Path:   "src/main.ts",
					Status: StatusSkipped,
				})
			},
			wantLogs: []string{
				"• src/main.ts                                        skipped",
			},
		},
		{
			name: "log_failed_file",
			op: func(t *testing.T, logger *Logger) {
				logger.LogFileOperation(context.Background(), FileOperation{
					Path:   "src/locked.ts",
					Status: StatusFailed,
					Err:    errors.New("permission denied"),
				})
			},
			wantLogs: []string{
				"✗ src/locked.ts                                      failed         permission denied",
			},
		},
		{
			name: "log_would_update_with_diff",
			op: func(t *testing.T, logger *Logger) {
				logger.LogFileOperation(context.Background(), FileOperation{
					Path:         "a.ts",
					Status:       StatusWouldUpdate,
					Replacements: 1,
					Diff:         "-   1 | a: A;\n+   1 | a: Relation<A>;\n",
				})
			},
			wantLogs: []string{
				"~ a.ts                                               would-update   1 wrapped",
				"-   1 | a: A;",
				"+   1 | a: Relation<A>;",
			},
		},
		{
			name: "log_messages",
			op: func(t *testing.T, logger *Logger) {
				logger.Info("info message")
				logger.Warning("warning message")
				logger.Error("error message")
			},
			wantLogs: []string{
				"ℹ️  info message",
				"⚠️  warning message",
				"❌ error message",
			},
		},
		{
			name: "log_formatted_messages",
			op: func(t *testing.T, logger *Logger) {
				logger.Infof("info %s", "test")
				logger.Warningf("warning %s", "test")
				logger.Errorf("error %s", "test")
			},
			wantLogs: []string{
				"ℹ️  info test",
				"⚠️  warning test",
				"❌ error test",
			},
		},
		{
			name: "log_header",
			op: func(t *testing.T, logger *Logger) {
				logger.Header("fixing ./src")
			},
			wantLogs: []string{
				"swcfix • fixing ./src",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf := &bytes.Buffer{}
			logger := New(buf, zerolog.New(io.Discard))

			tt.op(t, logger)

			output := strings.TrimSpace(buf.String())
			lines := strings.Split(output, "\n")

			require.Equal(t, len(tt.wantLogs), len(lines), "number of log lines should match: %q", output)
			for i, want := range tt.wantLogs {
				assert.Equal(t, want, strings.TrimSpace(lines[i]), "log line %d should match", i)
			}
		})
	}
}

func TestLoggerRecords(t *testing.T) {
	tests := []struct {
		name      string
		op        FileOperation
		level     zerolog.Level
		wantLevel string
		wantMsg   string
	}{
		{
			name:      "updated_is_info",
			op:        FileOperation{Path: "a.ts", Status: StatusUpdated, Replacements: 1},
			level:     zerolog.InfoLevel,
			wantLevel: `"level":"info"`,
			wantMsg:   `"message":"updated file"`,
		},
		{
			name:      "skipped_is_trace",
			op:        FileOperation{Path: "a.ts", Status: StatusSkipped},
			level:     zerolog.TraceLevel,
			wantLevel: `"level":"trace"`,
			wantMsg:   `"message":"skipped file"`,
		},
		{
			name:      "failed_is_error",
			op:        FileOperation{Path: "a.ts", Status: StatusFailed, Err: errors.New("boom")},
			level:     zerolog.InfoLevel,
			wantLevel: `"level":"error"`,
			wantMsg:   `"message":"failed to process file"`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			records := &bytes.Buffer{}
			logger := New(io.Discard, zerolog.New(records).Level(tt.level))

			logger.LogFileOperation(context.Background(), tt.op)

			assert.Contains(t, records.String(), tt.wantLevel)
			assert.Contains(t, records.String(), tt.wantMsg)
			assert.Contains(t, records.String(), `"file":"a.ts"`)
		})
	}

	t.Run("skipped_hidden_at_info", func(t *testing.T) {
		records := &bytes.Buffer{}
		logger := New(io.Discard, zerolog.New(records).Level(zerolog.InfoLevel))
		logger.LogFileOperation(context.Background(), FileOperation{Path: "a.ts", Status: StatusSkipped})
		assert.Empty(t, records.String())
	})

	t.Run("context_logger_preferred", func(t *testing.T) {
		fallback := &bytes.Buffer{}
		scoped := &bytes.Buffer{}
		logger := New(io.Discard, zerolog.New(fallback))
		ctx := zerolog.New(scoped).With().Str("run_id", "abc").Logger().WithContext(context.Background())

		logger.LogFileOperation(ctx, FileOperation{Path: "a.ts", Status: StatusUpdated})

		assert.Empty(t, fallback.String())
		assert.Contains(t, scoped.String(), `"run_id":"abc"`)
	})
}

func TestLogSummary(t *testing.T) {
	pterm.DisableStyling()
	defer pterm.EnableStyling()

	tests := []struct {
		name    string
		summary Summary
		want    string
	}{
		{
			name:    "clean_run",
			summary: Summary{Files: 5, Updated: 2, Skipped: 3, Duration: 1500 * time.Microsecond},
			want:    "2 updated, 3 skipped, 0 failed of 5 files in 2ms",
		},
		{
			name:    "dry_run_with_failure",
			summary: Summary{Files: 4, WouldUpdate: 1, Skipped: 2, Failed: 1},
			want:    "0 updated, 1 would be updated, 2 skipped, 1 failed of 4 files in 0s",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf := &bytes.Buffer{}
			logger := New(buf, zerolog.New(io.Discard))

			logger.LogSummary(context.Background(), tt.summary)

			assert.Contains(t, buf.String(), tt.want)
		})
	}
}

func TestCtx(t *testing.T) {
	logger := New(io.Discard, zerolog.Nop())
	assert.Same(t, logger, Ctx(NewContext(context.Background(), logger)))

	records := &bytes.Buffer{}
	ctx := zerolog.New(records).WithContext(context.Background())
	fallback := Ctx(ctx)
	require.NotNil(t, fallback)

	fallback.LogFileOperation(ctx, FileOperation{Path: "a.ts", Status: StatusUpdated})
	assert.Contains(t, records.String(), `"message":"updated file"`, "fallback should keep zerolog records")

	assert.NotPanics(t, func() {
		Ctx(context.Background()).Info("nobody is listening")
	})
}

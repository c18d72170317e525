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
	"context"
	"fmt"
	"io"
	"strings"
	"sync"
	"time"

	"github.com/fatih/color"
	"github.com/pterm/pterm"
	"github.com/rs/zerolog"
)

// 🎨 Display configuration
const (
	fileIndent  = 4  // spaces to indent file entries
	nameWidth   = 50 // Base width for file path
	statusWidth = 14 // Width for status text
)

// 🏷️ FileStatus is the outcome of processing one file
type FileStatus string

const (
	StatusUpdated     FileStatus = "updated"
	StatusSkipped     FileStatus = "skipped"
	StatusWouldUpdate FileStatus = "would-update"
	StatusFailed      FileStatus = "failed"
)

// 🎯 FileOperation represents a file outcome for logging
type FileOperation struct {
	Path         string     // File path
	Status       FileStatus // Outcome
	Replacements int        // Number of types wrapped
	ImportAdded  bool       // Whether the Relation import was injected
	Rules        []string   // Rules that fired
	Diff         string     // Rendered diff, dry runs only
	Err          error      // Failure cause
}

// 📊 Summary is the tally of a finished batch
type Summary struct {
	Root        string
	Files       int
	Updated     int
	Skipped     int
	WouldUpdate int
	Failed      int
	Duration    time.Duration
}

// 🎯 Logger pairs structured zerolog records with a human console stream
type Logger struct {
	zlog        zerolog.Logger
	console     io.Writer
	mu          sync.Mutex
	showSkipped bool
}

// 🏭 New creates a new logger
func New(console io.Writer, zlog zerolog.Logger) *Logger {
	return &Logger{
		zlog:    zlog,
		console: console,
		mu:      sync.Mutex{},
	}
}

// WithSkipped toggles console lines for skipped files
func (l *Logger) WithSkipped(show bool) *Logger {
	l.showSkipped = show
	return l
}

// 🔑 contextKey is the type for context values
type contextKey struct{}

// Ctx returns the context logger, or one that only emits the context's
// zerolog records when none was attached
func Ctx(ctx context.Context) *Logger {
	if logger, ok := ctx.Value(contextKey{}).(*Logger); ok {
		return logger
	}
	return New(io.Discard, *zerolog.Ctx(ctx))
}

// 🎯 NewContext adds the logger to context
func NewContext(ctx context.Context, l *Logger) context.Context {
	return context.WithValue(ctx, contextKey{}, l)
}

// records prefers the context logger so per-run fields are kept
func (l *Logger) records(ctx context.Context) *zerolog.Logger {
	if zl := zerolog.Ctx(ctx); zl.GetLevel() != zerolog.Disabled {
		return zl
	}
	return &l.zlog
}

// 📝 formatFileOperation formats a file operation for display
func (l *Logger) formatFileOperation(op FileOperation) string {
	var symbol rune
	var symbolColor color.Attribute
	switch op.Status {
	case StatusUpdated:
		symbol = '✓'
		symbolColor = color.FgGreen
	case StatusWouldUpdate:
		symbol = '~'
		symbolColor = color.FgYellow
	case StatusFailed:
		symbol = '✗'
		symbolColor = color.FgRed
	default:
		symbol = '•'
		symbolColor = color.FgCyan
	}

	var detail string
	switch {
	case op.Err != nil:
		detail = color.New(color.FgRed).Sprint(op.Err.Error())
	case op.Replacements > 0:
		detail = fmt.Sprintf("%d wrapped", op.Replacements)
		if op.ImportAdded {
			detail += ", +import"
		}
		detail = color.New(color.Faint).Sprint(detail)
	}

	line := fmt.Sprintf("%s%s %s %s",
		fmt.Sprintf("%*s", fileIndent, ""),
		color.New(symbolColor).Sprint(string(symbol)),
		fmt.Sprintf("%-*s", nameWidth, op.Path),
		fmt.Sprintf("%-*s", statusWidth, op.Status))
	if detail != "" {
		line += " " + detail
	}
	return line
}

// 📝 LogFileOperation records the outcome of one file
func (l *Logger) LogFileOperation(ctx context.Context, op FileOperation) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if op.Status != StatusSkipped || l.showSkipped {
		fmt.Fprintln(l.console, l.formatFileOperation(op))
		if op.Diff != "" {
			for _, line := range strings.Split(strings.TrimRight(op.Diff, "\n"), "\n") {
				fmt.Fprintf(l.console, "%*s%s\n", fileIndent*2, "", colorDiffLine(line))
			}
		}
	}

	zl := l.records(ctx)
	switch op.Status {
	case StatusUpdated:
		zl.Info().
			Str("file", op.Path).
			Int("replacements", op.Replacements).
			Bool("import_added", op.ImportAdded).
			Strs("rules", op.Rules).
			Msg("updated file")
	case StatusWouldUpdate:
		zl.Info().
			Str("file", op.Path).
			Int("replacements", op.Replacements).
			Bool("import_added", op.ImportAdded).
			Strs("rules", op.Rules).
			Msg("file would be updated")
	case StatusFailed:
		zl.Error().
			Str("file", op.Path).
			Err(op.Err).
			Msg("failed to process file")
	default:
		zl.Trace().
			Str("file", op.Path).
			Msg("skipped file")
	}
}

func colorDiffLine(line string) string {
	switch {
	case strings.HasPrefix(line, "+"):
		return color.New(color.FgGreen).Sprint(line)
	case strings.HasPrefix(line, "-"):
		return color.New(color.FgRed).Sprint(line)
	default:
		return line
	}
}

// 📝 LogSummary prints the batch tally
func (l *Logger) LogSummary(ctx context.Context, s Summary) {
	l.mu.Lock()
	defer l.mu.Unlock()

	parts := []string{fmt.Sprintf("%d updated", s.Updated)}
	if s.WouldUpdate > 0 {
		parts = append(parts, fmt.Sprintf("%d would be updated", s.WouldUpdate))
	}
	parts = append(parts,
		fmt.Sprintf("%d skipped", s.Skipped),
		fmt.Sprintf("%d failed", s.Failed))
	msg := fmt.Sprintf("%s of %d files in %s", strings.Join(parts, ", "), s.Files, s.Duration.Round(time.Millisecond))

	printer := pterm.Success
	if s.Failed > 0 {
		printer = pterm.Error
	}
	printer.WithWriter(l.console).Println(msg)

	l.records(ctx).Info().
		Str("root", s.Root).
		Int("files", s.Files).
		Int("updated", s.Updated).
		Int("would_update", s.WouldUpdate).
		Int("skipped", s.Skipped).
		Int("failed", s.Failed).
		Dur("duration", s.Duration).
		Msg("batch complete")
}

// 📝 Header logs a header
func (l *Logger) Header(msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	name := color.New(color.Bold, color.FgCyan).Sprint("swcfix")
	fmt.Fprintf(l.console, "\n%s %s\n\n", name, color.New(color.Faint).Sprint("• "+msg))
	l.zlog.Info().Msg(msg)
}

// 📝 Warning logs a warning message
func (l *Logger) Warning(msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintf(l.console, "⚠️  %s\n", color.New(color.FgYellow).Sprint(msg))
	l.zlog.Warn().Msg(msg)
}

// 📝 Error logs an error message
func (l *Logger) Error(msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintf(l.console, "❌ %s\n", color.New(color.FgRed).Sprint(msg))
	l.zlog.Error().Msg(msg)
}

// 📝 Info logs an info message
func (l *Logger) Info(msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintf(l.console, "ℹ️  %s\n", color.New(color.FgCyan).Sprint(msg))
	l.zlog.Info().Msg(msg)
}

// 📝 Infof logs a formatted info message
func (l *Logger) Infof(format string, args ...interface{}) {
	l.Info(fmt.Sprintf(format, args...))
}

// 📝 Warningf logs a formatted warning message
func (l *Logger) Warningf(format string, args ...interface{}) {
	l.Warning(fmt.Sprintf(format, args...))
}

// 📝 Errorf logs a formatted error message
func (l *Logger) Errorf(format string, args ...interface{}) {
	l.Error(fmt.Sprintf(format, args...))
}

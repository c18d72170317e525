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

package operation

import (
	"context"
	"time"

	"github.com/rs/zerolog"
	"github.com/walteh/swcfix/pkg/log"
	"gitlab.com/tozd/go/errors"
	"golang.org/x/sync/errgroup"
)

// 📊 Summary is the result of a fix batch. Results holds one entry per
// processed file in discovery order.
type Summary struct {
	log.Summary
	Results []FileResult
}

func (s *Summary) add(res FileResult) {
	s.Results = append(s.Results, res)
	switch res.Status {
	case log.StatusUpdated:
		s.Updated++
	case log.StatusWouldUpdate:
		s.WouldUpdate++
	case log.StatusFailed:
		s.Failed++
	default:
		s.Skipped++
	}
}

// 🔧 Fix runs one batch over opts.Root
func Fix(ctx context.Context, opts Options) (*Summary, error) {
	base, err := NewBaseOperation(opts)
	if err != nil {
		return nil, err
	}
	return base.fix(ctx)
}

func (op BaseOperation) fix(ctx context.Context) (*Summary, error) {
	cfg := op.Config
	zerolog.Ctx(ctx).Debug().
		Str("root", op.Root).
		Int("concurrency", cfg.Concurrency).
		Str("extension", cfg.Extension).
		Str("orm_package", cfg.ORMPackage).
		Strs("ignore", cfg.Ignore).
		Bool("dry_run", cfg.DryRun).
		Str("config", cfg.Location()).
		Msg("starting batch")

	start := time.Now()

	files, err := Discover(ctx, op.Root, cfg.Extension, cfg.Ignore)
	if err != nil {
		return nil, errors.Errorf("discovering files: %w", err)
	}

	// each unit owns exactly one slot, so no locking is needed
	results := make([]FileResult, len(files))
	done := make([]bool, len(files))

	var g errgroup.Group
	g.SetLimit(cfg.Concurrency)

	for i, file := range files {
		if ctx.Err() != nil {
			break
		}
		g.Go(func() error {
			if ctx.Err() != nil {
				return nil
			}
			// per-file failures are kept in the result so siblings keep running
			results[i], _ = op.Processor.ProcessFile(ctx, file)
			done[i] = true
			return nil
		})
	}
	_ = g.Wait()

	summary := &Summary{Summary: log.Summary{Root: op.Root, Files: len(files)}}
	var failures []error
	for i, res := range results {
		if !done[i] {
			continue
		}
		summary.add(res)
		if res.Err != nil {
			failures = append(failures, res.Err)
		}
	}
	summary.Duration = time.Since(start)

	if err := ctx.Err(); err != nil {
		return summary, errors.Errorf("batch cancelled after %d of %d files: %w", len(summary.Results), len(files), err)
	}
	if len(failures) > 0 {
		return summary, errors.Errorf("%d of %d files failed: %w", len(failures), len(files), errors.Join(failures...))
	}
	return summary, nil
}

// 🛠️ NewFixOperation creates the operation behind `swcfix [root-dir]`
func NewFixOperation(opts Options) (Operation, error) {
	base, err := NewBaseOperation(opts)
	if err != nil {
		return nil, err
	}
	return &fixOperation{BaseOperation: base}, nil
}

type fixOperation struct {
	BaseOperation
}

// 🏃 Execute runs the batch and prints the summary
func (op *fixOperation) Execute(ctx context.Context) error {
	logger := log.Ctx(ctx)
	if op.Config.DryRun {
		logger.Header("dry run of " + op.Root)
	} else {
		logger.Header("fixing " + op.Root)
	}

	summary, err := op.fix(ctx)
	if summary != nil {
		logger.LogSummary(ctx, summary.Summary)
	}
	return err
}

package operation

import (
	"context"

	"github.com/walteh/swcfix/pkg/log"
	"github.com/walteh/swcfix/pkg/text"
	"gitlab.com/tozd/go/errors"
)

// 📄 FileResult is the outcome of processing one file
type FileResult struct {
	Path         string
	Status       log.FileStatus
	Replacements int
	ImportAdded  bool
	Rules        []string
	Diff         string
	Err          error
}

func (r FileResult) operation() log.FileOperation {
	return log.FileOperation{
		Path:         r.Path,
		Status:       r.Status,
		Replacements: r.Replacements,
		ImportAdded:  r.ImportAdded,
		Rules:        r.Rules,
		Diff:         r.Diff,
		Err:          r.Err,
	}
}

// ⚙️ Processor rewrites a single file with the engine
type Processor struct {
	engine *text.Engine
	store  FileStore
	dryRun bool
}

// 🏭 NewProcessor creates a processor. In dry-run mode nothing is written and
// changed files carry a rendered diff instead.
func NewProcessor(engine *text.Engine, store FileStore, dryRun bool) *Processor {
	return &Processor{
		engine: engine,
		store:  store,
		dryRun: dryRun,
	}
}

// 🔄 ProcessFile reads path, rewrites it and writes it back only when a rule
// fired. The returned error is set exactly when the result status is failed.
func (p *Processor) ProcessFile(ctx context.Context, path string) (FileResult, error) {
	res, err := p.process(ctx, path)
	log.Ctx(ctx).LogFileOperation(ctx, res.operation())
	return res, err
}

func (p *Processor) process(ctx context.Context, path string) (FileResult, error) {
	data, err := p.store.ReadFile(ctx, path)
	if err != nil {
		err = errors.Errorf("reading %s: %w", path, err)
		return FileResult{Path: path, Status: log.StatusFailed, Err: err}, err
	}

	original := string(data)
	rewritten := p.engine.Rewrite(original)
	if rewritten.Status == text.Unchanged {
		return FileResult{Path: path, Status: log.StatusSkipped}, nil
	}

	res := FileResult{
		Path:         path,
		Status:       log.StatusUpdated,
		Replacements: rewritten.Replacements,
		ImportAdded:  rewritten.ImportAdded,
		Rules:        rewritten.Rules,
	}

	if p.dryRun {
		res.Status = log.StatusWouldUpdate
		res.Diff = text.RenderDiff(original, rewritten.Content)
		return res, nil
	}

	if err := p.store.WriteFile(ctx, path, []byte(rewritten.Content)); err != nil {
		err = errors.Errorf("writing %s: %w", path, err)
		res.Status = log.StatusFailed
		res.Err = err
		return res, err
	}

	return res, nil
}

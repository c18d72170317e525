package operation

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog"
	"github.com/walteh/swcfix/pkg/log"
	"gitlab.com/tozd/go/errors"
)

// 👀 Watcher runs an initial batch, then reprocesses files as they are
// created or written. Events are handled one at a time.
type Watcher struct {
	BaseOperation
	ready chan struct{}
}

var _ Operation = (*Watcher)(nil)

// 🏭 NewWatcher creates the operation behind `swcfix watch`
func NewWatcher(opts Options) (*Watcher, error) {
	base, err := NewBaseOperation(opts)
	if err != nil {
		return nil, err
	}
	return &Watcher{
		BaseOperation: base,
		ready:         make(chan struct{}),
	}, nil
}

// Ready is closed once the initial batch has run and the tree is watched
func (w *Watcher) Ready() <-chan struct{} {
	return w.ready
}

// 🏃 Execute blocks until ctx is done
func (w *Watcher) Execute(ctx context.Context) error {
	logger := log.Ctx(ctx)
	logger.Header("watching " + w.Root)

	summary, err := w.fix(ctx)
	if summary != nil {
		logger.LogSummary(ctx, summary.Summary)
	}
	if err != nil {
		if ctx.Err() != nil {
			return nil
		}
		// failed files get another chance on their next write
		logger.Warningf("initial run: %v", err)
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return errors.Errorf("creating watcher: %w", err)
	}
	defer fsw.Close()

	if err := w.addTree(ctx, fsw, w.Root); err != nil {
		return err
	}
	close(w.ready)
	logger.Infof("watching %s for changes, press Ctrl-C to stop", w.Root)

	for {
		select {
		case <-ctx.Done():
			logger.Info("stopped watching")
			return nil
		case event, ok := <-fsw.Events:
			if !ok {
				return nil
			}
			w.handle(ctx, fsw, event)
		case err, ok := <-fsw.Errors:
			if !ok {
				return nil
			}
			logger.Errorf("watch error: %v", err)
		}
	}
}

func (w *Watcher) handle(ctx context.Context, fsw *fsnotify.Watcher, event fsnotify.Event) {
	zl := zerolog.Ctx(ctx)
	if !event.Has(fsnotify.Create) && !event.Has(fsnotify.Write) {
		return
	}

	rel, err := filepath.Rel(w.Root, event.Name)
	if err != nil {
		return
	}
	rel = filepath.ToSlash(rel)

	if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
		if !event.Has(fsnotify.Create) {
			return
		}
		if err := w.addTree(ctx, fsw, event.Name); err != nil {
			zl.Warn().Err(err).Str("dir", rel).Msg("watching new directory")
		}
		return
	}

	if !strings.HasSuffix(event.Name, w.Config.Extension) || Ignorer(w.Config.Ignore).Ignored(rel) {
		return
	}

	zl.Trace().Str("file", rel).Str("op", event.Op.String()).Msg("change detected")
	// the error is already on the result and logged by the processor
	_, _ = w.Processor.ProcessFile(ctx, event.Name)
}

// addTree watches dir and every directory below it that is not ignored.
// Files already inside a newly created directory are processed too.
func (w *Watcher) addTree(ctx context.Context, fsw *fsnotify.Watcher, dir string) error {
	ig := Ignorer(w.Config.Ignore)
	initial := dir == w.Root

	return filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		rel, relErr := filepath.Rel(w.Root, path)
		if relErr != nil {
			return relErr
		}
		rel = filepath.ToSlash(rel)

		if d.IsDir() {
			if ig.IgnoredDir(rel, w.Config.Extension) {
				return filepath.SkipDir
			}
			if err := fsw.Add(path); err != nil {
				return errors.Errorf("watching %s: %w", path, err)
			}
			return nil
		}

		if initial || !d.Type().IsRegular() || !strings.HasSuffix(path, w.Config.Extension) || ig.Ignored(rel) {
			return nil
		}
		_, _ = w.Processor.ProcessFile(ctx, path)
		return nil
	})
}

package operation

import (
	"context"
	"path/filepath"

	"github.com/walteh/swcfix/pkg/config"
	"github.com/walteh/swcfix/pkg/text"
	"gitlab.com/tozd/go/errors"
)

// 🎯 Operation is a unit of work run by the OperationRunner
type Operation interface {
	Execute(ctx context.Context) error
}

// 🔧 Options contains configuration for an operation
type Options struct {
	// Root is the directory to rewrite
	Root string
	// Config holds the merged swcfix settings, nil means defaults
	Config *config.Config
	// Store does the file I/O, nil means the local disk
	Store FileStore
}

// 🏗️ BaseOperation carries what every operation needs
type BaseOperation struct {
	Options
	Engine    *text.Engine
	Processor *Processor
}

// 🏭 NewBaseOperation validates opts and fills in defaults
func NewBaseOperation(opts Options) (BaseOperation, error) {
	if opts.Root == "" {
		return BaseOperation{}, errors.Errorf("root is required")
	}
	if opts.Config == nil {
		opts.Config = config.Default()
	}
	if err := opts.Config.Validate(); err != nil {
		return BaseOperation{}, errors.Errorf("invalid config: %w", err)
	}
	if opts.Store == nil {
		opts.Store = DiskStore{}
	}
	opts.Root = filepath.Clean(opts.Root)

	engine := text.NewEngine(opts.Config.ORMPackage)
	return BaseOperation{
		Options:   opts,
		Engine:    engine,
		Processor: NewProcessor(engine, opts.Store, opts.Config.DryRun),
	}, nil
}

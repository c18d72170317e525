package opts

import (
	"context"
	"io"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/walteh/swcfix/pkg/config"
	"github.com/walteh/swcfix/pkg/log"
	"github.com/walteh/swcfix/pkg/operation"
	"gitlab.com/tozd/go/errors"
)

// RootOpts contains shared options used by all commands
type RootOpts struct {
	ConfigFile  string
	Concurrency int
	Extension   string
	ORMPackage  string
	Ignore      []string
	DryRun      bool
	Debug       bool
	ShowSkipped bool
	Color       string

	Stdout io.Writer
	Stderr io.Writer

	// Logger is set once logging has been configured
	Logger *log.Logger
}

// 🔧 Resolve checks the root, loads the config and applies the flags that
// were set on the command line. Nothing is touched on disk.
func (o *RootOpts) Resolve(cmd *cobra.Command, args []string) (operation.Options, error) {
	ctx := cmd.Context()
	if len(args) != 1 {
		return operation.Options{}, errors.Errorf("expected exactly one root directory, got %d", len(args))
	}
	root := args[0]

	if err := operation.CheckRoot(root); err != nil {
		return operation.Options{}, err
	}

	cfg, err := config.Resolve(ctx, o.ConfigFile, root)
	if err != nil {
		return operation.Options{}, errors.Errorf("loading config: %w", err)
	}

	o.applyFlags(cmd, cfg)

	if err := cfg.Validate(); err != nil {
		return operation.Options{}, errors.Errorf("invalid options: %w", err)
	}

	o.dump(ctx, root, cfg)

	return operation.Options{Root: root, Config: cfg}, nil
}

// flags beat the config file only when given explicitly
func (o *RootOpts) applyFlags(cmd *cobra.Command, cfg *config.Config) {
	flags := cmd.Flags()
	if flags.Changed("concurrency") {
		cfg.Concurrency = o.Concurrency
	}
	if flags.Changed("ext") {
		cfg.Extension = o.Extension
	}
	if flags.Changed("orm-package") {
		cfg.ORMPackage = o.ORMPackage
	}
	if flags.Changed("ignore") {
		cfg.Ignore = append([]string{}, o.Ignore...)
	}
	if flags.Changed("dry-run") {
		cfg.DryRun = o.DryRun
	}
}

func (o *RootOpts) dump(ctx context.Context, root string, cfg *config.Config) {
	zerolog.Ctx(ctx).Debug().
		Str("root", root).
		Str("config_file", cfg.Location()).
		Int("concurrency", cfg.Concurrency).
		Str("extension", cfg.Extension).
		Str("orm_package", cfg.ORMPackage).
		Strs("ignore", cfg.Ignore).
		Bool("dry_run", cfg.DryRun).
		Bool("show_skipped", o.ShowSkipped).
		Str("color", o.Color).
		Msg("parsed arguments")
}

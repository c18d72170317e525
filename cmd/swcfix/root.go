package main

import (
	"io"
	"os"
	"time"

	"github.com/fatih/color"
	"github.com/google/uuid"
	"github.com/mattn/go-isatty"
	"github.com/pterm/pterm"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/walteh/swcfix/cmd/swcfix/commands"
	"github.com/walteh/swcfix/cmd/swcfix/opts"
	"github.com/walteh/swcfix/pkg/config"
	"github.com/walteh/swcfix/pkg/log"
	"gitlab.com/tozd/go/errors"
)

// newRootCmd builds the command tree. Each call gets its own options.
func newRootCmd(stdout, stderr io.Writer) (*cobra.Command, *opts.RootOpts) {
	o := &opts.RootOpts{
		Stdout: stdout,
		Stderr: stderr,
	}

	cmd := &cobra.Command{
		Use:   "swcfix <root-dir>",
		Short: "Wrap circular TypeORM relation types for SWC builds",
		Long: `swcfix rewrites TypeScript sources so NestJS + TypeORM projects compiled with
SWC do not trip over circular imports. It wraps

  - constructor parameters injected with @Inject(forwardRef(() => X))
  - properties decorated with @ManyToOne(() => X, (x) => x.y)

in Relation<...> and adds the Relation import when it is missing. Running it
twice is a no-op.`,
		Args:          cobra.ExactArgs(1),
		SilenceErrors: true,
		SilenceUsage:  true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return setupLogging(cmd, o)
		},
		RunE: commands.RunFix(o),
	}

	cmd.SetOut(stdout)
	cmd.SetErr(stderr)

	addRootFlags(cmd, o)

	cmd.AddCommand(
		commands.NewWatchCmd(o),
		newVersionCmd(),
	)

	return cmd, o
}

// addRootFlags adds shared flags to the root command
func addRootFlags(cmd *cobra.Command, o *opts.RootOpts) {
	flags := cmd.PersistentFlags()
	flags.StringVarP(&o.ConfigFile, "config", "c", "", "config file path (default: .swcfix.{hcl,yaml,yml,json} in the root)")
	flags.IntVarP(&o.Concurrency, "concurrency", "j", config.DefaultConcurrency, "maximum number of files processed at once")
	flags.StringVar(&o.Extension, "ext", config.DefaultExtension, "file extension to process")
	flags.StringVar(&o.ORMPackage, "orm-package", config.DefaultORMPackage, "module the Relation type is imported from")
	flags.StringSliceVar(&o.Ignore, "ignore", config.DefaultIgnore, "doublestar patterns to skip, relative to the root")
	flags.BoolVarP(&o.DryRun, "dry-run", "n", false, "show what would change without writing")
	flags.BoolVarP(&o.Debug, "debug", "d", false, "enable trace logging")
	flags.BoolVar(&o.ShowSkipped, "show-skipped", false, "print a line for files that need no change")
	flags.StringVar(&o.Color, "color", "auto", "colorize output: auto, always or never")
}

// setupLogging configures zerolog and the console logger based on flags
func setupLogging(cmd *cobra.Command, o *opts.RootOpts) error {
	useColor, err := colorEnabled(o.Color, o.Stdout)
	if err != nil {
		return err
	}
	color.NoColor = !useColor
	if useColor {
		pterm.EnableStyling()
	} else {
		pterm.DisableStyling()
	}

	// the console logger already shows every outcome, so records stay quiet
	// unless asked for
	level := zerolog.WarnLevel
	if o.Debug {
		level = zerolog.TraceLevel
	}

	zl := zerolog.New(zerolog.ConsoleWriter{
		Out:        o.Stderr,
		NoColor:    !useColor,
		TimeFormat: time.Kitchen,
	}).Level(level).With().Timestamp().Str("run_id", uuid.NewString()).Logger()

	o.Logger = log.New(o.Stdout, zl).WithSkipped(o.ShowSkipped)

	ctx := zl.WithContext(cmd.Context())
	ctx = log.NewContext(ctx, o.Logger)
	cmd.SetContext(ctx)
	return nil
}

func colorEnabled(mode string, w io.Writer) (bool, error) {
	switch mode {
	case "always":
		return true, nil
	case "never":
		return false, nil
	case "auto", "":
		if os.Getenv("NO_COLOR") != "" {
			return false, nil
		}
		f, ok := w.(*os.File)
		if !ok {
			return false, nil
		}
		return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd()), nil
	default:
		return false, errors.Errorf("invalid --color %q: want auto, always or never", mode)
	}
}

package commands

import (
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/walteh/swcfix/cmd/swcfix/opts"
	"github.com/walteh/swcfix/pkg/operation"
)

// NewWatchCmd creates the watch command
func NewWatchCmd(o *opts.RootOpts) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "watch <root-dir>",
		Short: "Fix files as they change",
		Long: `Watch runs one batch over the root directory and then keeps running.
Every file created or written below the root is rewritten again, and new
directories are picked up as they appear. Stop it with Ctrl-C.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			options, err := o.Resolve(cmd, args)
			if err != nil {
				return err
			}

			watcher, err := operation.NewWatcher(options)
			if err != nil {
				return err
			}

			return operation.NewRunner(zerolog.Ctx(ctx), options.Root).Run(ctx, watcher)
		},
	}

	return cmd
}

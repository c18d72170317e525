package commands

import (
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/walteh/swcfix/cmd/swcfix/opts"
	"github.com/walteh/swcfix/pkg/operation"
)

// RunFix is the action of the root command
func RunFix(o *opts.RootOpts) func(cmd *cobra.Command, args []string) error {
	return func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		options, err := o.Resolve(cmd, args)
		if err != nil {
			return err
		}

		op, err := operation.NewFixOperation(options)
		if err != nil {
			return err
		}

		return operation.NewRunner(zerolog.Ctx(ctx), options.Root).Run(ctx, op)
	}
}

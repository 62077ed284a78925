package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/vadimbarashkov/trimmer/internal/app"
)

func newMigrateCmd(load configLoader) *cobra.Command {
	return &cobra.Command{
		Use:       "migrate [up|down]",
		Short:     "Apply pending migrations or revert the latest one",
		Args:      cobra.MatchAll(cobra.MaximumNArgs(1), cobra.OnlyValidArgs),
		ValidArgs: []string{"up", "down"},
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := load()
			if err != nil {
				return err
			}

			down := len(args) == 1 && args[0] == "down"

			if err := app.Migrate(cfg, down); err != nil {
				return err
			}

			direction := "up"
			if down {
				direction = "down"
			}
			fmt.Fprintf(cmd.OutOrStdout(), "migrations %s: done (%s)\n", direction, cfg.Storage.Driver)

			return nil
		},
	}
}

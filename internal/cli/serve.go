package cli

import (
	"github.com/spf13/cobra"
	"github.com/vadimbarashkov/trimmer/internal/app"
)

func newServeCmd(load configLoader) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP server",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := load()
			if err != nil {
				return err
			}

			return app.Run(cmd.Context(), cfg)
		},
	}
}

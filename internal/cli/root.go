// Package cli implements the trimmer command line: the server entry point
// and a few administrative commands that work directly on the store.
package cli

import (
	"context"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"github.com/vadimbarashkov/trimmer/internal/config"
)

type configLoader func() (*config.Config, error)

// NewRootCmd builds the command tree.
func NewRootCmd() *cobra.Command {
	var configPath string

	root := &cobra.Command{
		Use:   "trimmer",
		Short: "Short links with click analytics",
		Long: `trimmer turns long URLs into short codes or custom aliases,
redirects visitors and keeps per-link click statistics.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.PersistentFlags().StringVarP(&configPath, "config", "c", os.Getenv("CONFIG_PATH"),
		"path to the YAML config file (defaults to $CONFIG_PATH)")

	load := func() (*config.Config, error) {
		if configPath == "" {
			cfg := config.Default()
			return cfg, cfg.Validate()
		}
		return config.Load(configPath)
	}

	root.AddCommand(
		newServeCmd(load),
		newMigrateCmd(load),
		newCreateCmd(load),
		newStatsCmd(load),
	)

	return root
}

// Execute runs the command selected by os.Args.
func Execute(ctx context.Context) error {
	return NewRootCmd().ExecuteContext(ctx)
}

func commandLogger(cmd *cobra.Command) *slog.Logger {
	return slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: slog.LevelWarn}))
}

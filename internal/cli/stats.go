package cli

import (
	"fmt"
	"io"
	"maps"
	"slices"
	"time"

	"github.com/spf13/cobra"
	"github.com/vadimbarashkov/trimmer/internal/app"
	"github.com/vadimbarashkov/trimmer/internal/entity"
)

func newStatsCmd(load configLoader) *cobra.Command {
	var owner string

	cmd := &cobra.Command{
		Use:   "stats <link-id>",
		Short: "Show click statistics of a link",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := load()
			if err != nil {
				return err
			}

			svc, err := app.Build(cmd.Context(), cfg, commandLogger(cmd))
			if err != nil {
				return err
			}
			defer svc.Close()

			stats, err := svc.Links.GetLinkStats(cmd.Context(), args[0], owner)
			if err != nil {
				return err
			}

			printStats(cmd.OutOrStdout(), stats)

			return nil
		},
	}

	cmd.Flags().StringVar(&owner, "owner", "", "owner user ID")
	cmd.MarkFlagRequired("owner")

	return cmd
}

func printStats(w io.Writer, stats *entity.LinkStats) {
	fmt.Fprintf(w, "link:   %s\n", stats.LinkID)
	fmt.Fprintf(w, "clicks: %d\n", stats.ClickCount)

	printBuckets(w, "devices", stats.Devices)
	printBuckets(w, "countries", stats.Countries)

	if len(stats.RecentEvents) == 0 {
		return
	}

	fmt.Fprintln(w, "recent:")
	for _, e := range stats.RecentEvents {
		fmt.Fprintf(w, "  %s  %-7s  %-2s  %s\n",
			e.Timestamp.UTC().Format(time.RFC3339),
			e.Metadata.Device,
			e.Metadata.Country,
			e.Metadata.Referrer,
		)
	}
}

func printBuckets(w io.Writer, name string, buckets map[string]int64) {
	if len(buckets) == 0 {
		return
	}

	fmt.Fprintf(w, "%s:\n", name)
	for _, k := range slices.Sorted(maps.Keys(buckets)) {
		fmt.Fprintf(w, "  %-10s %d\n", k, buckets[k])
	}
}

package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/vadimbarashkov/trimmer/internal/app"
	"github.com/vadimbarashkov/trimmer/internal/usecase"
)

func newCreateCmd(load configLoader) *cobra.Command {
	var in usecase.CreateLinkInput

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a short link",
		Example: `  trimmer create --url https://go.dev/doc --owner alice
  trimmer create --url https://go.dev/blog --owner alice --alias go-blog --title "Go blog"`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := load()
			if err != nil {
				return err
			}

			svc, err := app.Build(cmd.Context(), cfg, commandLogger(cmd))
			if err != nil {
				return err
			}
			defer svc.Close()

			link, err := svc.Links.CreateLink(cmd.Context(), in)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "id:        %s\n", link.ID)
			fmt.Fprintf(out, "key:       %s\n", link.Key())
			fmt.Fprintf(out, "short url: %s/%s\n", strings.TrimRight(cfg.BaseURL, "/"), link.Key())
			fmt.Fprintf(out, "long url:  %s\n", link.LongURL)

			return nil
		},
	}

	cmd.Flags().StringVar(&in.LongURL, "url", "", "destination URL")
	cmd.Flags().StringVar(&in.Title, "title", "", "link title")
	cmd.Flags().StringVar(&in.OwnerID, "owner", "", "owner user ID")
	cmd.Flags().StringVar(&in.Alias, "alias", "", "custom alias")
	cmd.MarkFlagRequired("url")
	cmd.MarkFlagRequired("owner")

	return cmd
}

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/samvad-hq/searchfront/pkg/api"
)

func newExportCommand(c *cli) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Render optics from site preferences",
	}
	cmd.AddCommand(newExploreExportCommand(c), newSitesExportCommand(c))
	return cmd
}

func newExploreExportCommand(c *cli) *cobra.Command {
	var p api.ExploreExportOpticParams

	cmd := &cobra.Command{
		Use:   "explore",
		Short: "Export an optic from explored sites",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			optic, err := api.ExploreExport(cmd.Context(), p, c.api()...).Await(cmd.Context())
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(c.out, optic)
			return err
		},
	}
	cmd.Flags().StringSliceVar(&p.ChosenSites, "chosen", nil, "sites picked as a starting point")
	cmd.Flags().StringSliceVar(&p.SimilarSites, "similar", nil, "similar sites to include")
	return cmd
}

func newSitesExportCommand(c *cli) *cobra.Command {
	var r api.SiteRankings

	cmd := &cobra.Command{
		Use:   "sites",
		Short: "Export an optic from liked, disliked and blocked sites",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			p := api.SitesExportOpticParams{SiteRankings: r}
			optic, err := api.SitesExport(cmd.Context(), p, c.api()...).Await(cmd.Context())
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(c.out, optic)
			return err
		},
	}
	cmd.Flags().StringSliceVar(&r.Liked, "liked", nil, "liked sites")
	cmd.Flags().StringSliceVar(&r.Disliked, "disliked", nil, "disliked sites")
	cmd.Flags().StringSliceVar(&r.Blocked, "blocked", nil, "blocked sites")
	return cmd
}

package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/samvad-hq/searchfront/pkg/api"
)

func newWebgraphCommand(c *cli) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "webgraph",
		Short: "Explore the host and page link graph",
	}
	cmd.AddCommand(
		newEdgesCommand(c, "ingoing", api.WebgraphHostIngoing, api.WebgraphPageIngoing),
		newEdgesCommand(c, "outgoing", api.WebgraphHostOutgoing, api.WebgraphPageOutgoing),
		newKnowsCommand(c),
		newSimilarCommand(c),
	)
	return cmd
}

type hostEdges func(ctx context.Context, p api.SiteParams, opts ...api.Option) *api.Pending[[]api.FullEdge]
type pageEdges func(ctx context.Context, p api.PageParams, opts ...api.Option) *api.Pending[[]api.FullEdge]

func newEdgesCommand(c *cli, direction string, host hostEdges, page pageEdges) *cobra.Command {
	var byPage bool

	cmd := &cobra.Command{
		Use:   direction + " <site|url>",
		Short: "List " + direction + " links of a host or page",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var p *api.Pending[[]api.FullEdge]
			if byPage {
				p = page(cmd.Context(), api.PageParams{Page: args[0]}, c.api()...)
			} else {
				p = host(cmd.Context(), api.SiteParams{Site: args[0]}, c.api()...)
			}
			edges, err := p.Await(cmd.Context())
			if err != nil {
				return err
			}
			if c.jsonOut {
				return printJSON(c.out, edges)
			}
			for _, e := range edges {
				fmt.Fprintf(c.out, "%s -> %s  %s\n", e.From.Name, e.To.Name, e.Label)
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&byPage, "page", false, "treat the argument as a page URL instead of a host")
	return cmd
}

func newKnowsCommand(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "knows <site>",
		Short: "Check whether the graph contains a host",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			res, err := api.WebgraphHostKnows(cmd.Context(), api.SiteParams{Site: args[0]}, c.api()...).Await(cmd.Context())
			if err != nil {
				return err
			}
			if c.jsonOut {
				return printJSON(c.out, res)
			}
			if !res.Known() {
				_, err = fmt.Fprintln(c.out, "unknown")
				return err
			}
			_, err = fmt.Fprintf(c.out, "known as %s\n", res.Site)
			return err
		},
	}
}

func newSimilarCommand(c *cli) *cobra.Command {
	var topN int

	cmd := &cobra.Command{
		Use:   "similar <site>...",
		Short: "Find hosts similar to the given ones",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p := api.SimilarSitesParams{Sites: args, TopN: topN}
			sites, err := api.WebgraphHostSimilar(cmd.Context(), p, c.api()...).Await(cmd.Context())
			if err != nil {
				return err
			}
			if c.jsonOut {
				return printJSON(c.out, sites)
			}
			for _, s := range sites {
				fmt.Fprintf(c.out, "%.3f  %s\n", s.Score, s.Site)
			}
			return nil
		},
	}
	cmd.Flags().IntVar(&topN, "top", 10, "number of similar sites")
	return cmd
}

package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/samvad-hq/searchfront/pkg/api"
)

func newSearchCommand(c *cli) *cobra.Command {
	var (
		q          api.SearchQuery
		region     string
		safe       bool
		clientAddr string
		click      int
		allowStats bool
	)

	cmd := &cobra.Command{
		Use:   "search <query>",
		Short: "Run a web search",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			q.Query = strings.Join(args, " ")
			if region != "" {
				q.SelectedRegion = api.Region(region)
			}
			if cmd.Flags().Changed("safe") {
				q.SafeSearch = &safe
			}

			out, err := c.frontend.Search(cmd.Context(), clientAddr, q)
			if err != nil {
				return err
			}
			if click >= 0 {
				c.frontend.ReportClick(cmd.Context(), out.QueryID, click, allowStats)
			}

			if c.jsonOut {
				return printJSON(c.out, out.Result)
			}
			return printSearch(c, out.Result)
		},
	}

	flags := cmd.Flags()
	flags.IntVar(&q.Page, "page", 0, "result page (0-based)")
	flags.IntVar(&q.NumResults, "results", 0, "results per page")
	flags.StringVar(&q.Optic, "optic", "", "optic program applied to ranking")
	flags.StringVar(&region, "region", "", "restrict results to a region")
	flags.BoolVar(&safe, "safe", false, "enable safe search")
	flags.StringVar(&clientAddr, "client", "cli", "client address used for captcha gating")
	flags.IntVar(&click, "click", -1, "report a click on this result index")
	flags.BoolVar(&allowStats, "allow-stats", false, "allow click statistics to be reported")
	return cmd
}

func printSearch(c *cli, res api.SearchResult) error {
	if res.IsBang() {
		_, err := fmt.Fprintf(c.out, "bang -> %s\n", res.RedirectTo)
		return err
	}

	if sc := res.SpellCorrectedQuery; sc != nil {
		fmt.Fprintf(c.out, "Did you mean: %s\n\n", emphasize(sc.Highlighted))
	}
	if da := res.DirectAnswer; da != nil {
		fmt.Fprintf(c.out, "%s\n  %s\n\n", da.Answer, da.URL)
	}
	for i, wp := range res.Webpages {
		fmt.Fprintf(c.out, "%2d. %s\n    %s\n", i, wp.Title, wp.URL)
		if text := snippetText(wp.Snippet); text != "" {
			fmt.Fprintf(c.out, "    %s\n", text)
		}
	}
	_, err := fmt.Fprintf(c.out, "\n%d hits in %dms\n", res.NumHits, res.SearchDurationMs)
	return err
}

func snippetText(s api.Snippet) string {
	if s.Text == nil {
		return ""
	}
	var b strings.Builder
	for _, f := range s.Text.Fragments {
		if f.Kind == api.FragmentHighlighted {
			b.WriteString(ansiBold + f.Text + ansiReset)
			continue
		}
		b.WriteString(f.Text)
	}
	return b.String()
}

func newSuggestCommand(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "suggest <prefix>",
		Short: "Autocomplete a partial query",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p := api.AutosuggestParams{Q: strings.Join(args, " ")}
			got, err := api.Autosuggest(cmd.Context(), p, c.api()...).Await(cmd.Context())
			if err != nil {
				return err
			}
			if c.jsonOut {
				return printJSON(c.out, got)
			}
			for _, s := range got {
				fmt.Fprintln(c.out, emphasize(s.Highlighted))
			}
			return nil
		},
	}
}

func newFactCheckCommand(c *cli) *cobra.Command {
	var p api.FactCheckParams

	cmd := &cobra.Command{
		Use:   "factcheck",
		Short: "Score how well evidence supports a claim",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			res, err := api.FactCheck(cmd.Context(), p, c.api()...).Await(cmd.Context())
			if err != nil {
				return err
			}
			if c.jsonOut {
				return printJSON(c.out, res)
			}
			_, err = fmt.Fprintf(c.out, "%.3f\n", res.Score)
			return err
		},
	}
	cmd.Flags().StringVar(&p.Claim, "claim", "", "claim to check")
	cmd.Flags().StringVar(&p.Evidence, "evidence", "", "evidence text")
	_ = cmd.MarkFlagRequired("claim")
	_ = cmd.MarkFlagRequired("evidence")
	return cmd
}

func newEndpointsCommand(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "endpoints",
		Short: "List the backend operations this client knows",
		Args:  cobra.NoArgs,
		RunE: func(*cobra.Command, []string) error {
			list := api.Endpoints()
			if c.jsonOut {
				return printJSON(c.out, list)
			}
			for _, e := range list {
				fmt.Fprintf(c.out, "%-22s %-5s %-7s %s\n", e.Name, e.Method, e.Transport, e.Path)
			}
			return nil
		},
	}
}

func newWidgetCommand(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "widget <query>",
		Short: "Compute the widget answer for a query",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			w, err := api.SearchWidget(cmd.Context(), api.WidgetQuery{Query: strings.Join(args, " ")}, c.api()...).Await(cmd.Context())
			if err != nil {
				return err
			}
			if c.jsonOut || w == nil {
				return printJSON(c.out, w)
			}
			_, err = fmt.Fprintf(c.out, "%s = %g\n", w.Value.Input, w.Value.Result)
			return err
		},
	}
}

func newSidebarCommand(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "sidebar <query>",
		Short: "Fetch the entity or StackOverflow sidebar for a query",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			sb, err := api.SearchSidebar(cmd.Context(), api.SidebarQuery{Query: strings.Join(args, " ")}, c.api()...).Await(cmd.Context())
			if err != nil {
				return err
			}
			if c.jsonOut || sb == nil {
				return printJSON(c.out, sb)
			}
			switch sb.Type {
			case api.SidebarEntity:
				e, err := sb.Entity()
				if err != nil {
					return err
				}
				fmt.Fprintln(c.out, e.Title)
				for _, info := range e.Info {
					fmt.Fprintf(c.out, "  %s: %s\n", info.Key, entityText(info.Value))
				}
			case api.SidebarStackOverflow:
				so, err := sb.StackOverflow()
				if err != nil {
					return err
				}
				fmt.Fprintf(c.out, "%s\n  %s\n", so.Title, so.Answer.URL)
			default:
				return printJSON(c.out, sb)
			}
			return nil
		},
	}
}

func entityText(s api.EntitySnippet) string {
	var b strings.Builder
	for _, f := range s.Fragments {
		b.WriteString(f.Text)
	}
	return b.String()
}

func newSpellcheckCommand(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "spellcheck <query>",
		Short: "Suggest a spelling correction for a query",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			sc, err := api.SearchSpellcheck(cmd.Context(), api.SpellcheckQuery{Query: strings.Join(args, " ")}, c.api()...).Await(cmd.Context())
			if err != nil {
				return err
			}
			if c.jsonOut {
				return printJSON(c.out, sc)
			}
			if sc == nil {
				_, err = fmt.Fprintln(c.out, "no correction")
				return err
			}
			_, err = fmt.Fprintln(c.out, emphasize(sc.Highlighted))
			return err
		},
	}
}

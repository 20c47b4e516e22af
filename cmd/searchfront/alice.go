package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/samvad-hq/searchfront/pkg/api"
)

func newAliceCommand(c *cli) *cobra.Command {
	var p api.AliceParams

	cmd := &cobra.Command{
		Use:   "alice <message>",
		Short: "Ask the assistant and stream its answer",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p.Message = strings.Join(args, " ")
			s := api.Alice(cmd.Context(), p, c.api()...)

			return follow(cmd.Context(), s, func(st api.ExecutionState) (bool, error) {
				if c.jsonOut {
					return st.Type == api.ExecutionDone, printJSON(c.out, st)
				}
				switch st.Type {
				case api.ExecutionBeginSearch:
					fmt.Fprintf(c.out, "[searching: %s]\n", st.Query)
				case api.ExecutionSearchResult:
					for _, r := range st.Result {
						fmt.Fprintf(c.out, "  - %s (%s)\n", r.Title, r.URL)
					}
				case api.ExecutionSpeaking:
					fmt.Fprint(c.out, st.Text)
				case api.ExecutionDone:
					fmt.Fprintf(c.out, "\n[state: %s]\n", st.State)
					return true, nil
				}
				return false, nil
			})
		},
	}
	cmd.Flags().StringVar(&p.Optic, "optic", "", "optic applied to assistant searches")
	cmd.Flags().StringVar(&p.PrevState, "prev-state", "", "saved state of a previous conversation")
	cmd.AddCommand(newAliceSaveCommand(c))
	return cmd
}

func newAliceSaveCommand(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "save <state-json>",
		Short: "Persist assistant state and print its handle",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			handle, err := api.AliceSaveState(cmd.Context(), api.SaveStateParams(args[0]), c.api()...).Await(cmd.Context())
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(c.out, handle)
			return err
		},
	}
}

func newSummarizeCommand(c *cli) *cobra.Command {
	var p api.SummarizeParams

	cmd := &cobra.Command{
		Use:   "summarize <query>",
		Short: "Stream a summary of a page with respect to a query",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p.Query = strings.Join(args, " ")
			s := api.Summarize(cmd.Context(), p, c.api()...)

			err := follow(cmd.Context(), s, func(chunk string) (bool, error) {
				_, err := fmt.Fprint(c.out, chunk)
				return false, err
			})
			fmt.Fprintln(c.out)
			return err
		},
	}
	cmd.Flags().StringVar(&p.URL, "url", "", "page to summarize")
	_ = cmd.MarkFlagRequired("url")
	return cmd
}

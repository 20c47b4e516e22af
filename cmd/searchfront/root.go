package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/samvad-hq/searchfront/internal/app"
	"github.com/samvad-hq/searchfront/internal/config"
	"github.com/samvad-hq/searchfront/internal/logger"
	"github.com/samvad-hq/searchfront/pkg/api"
)

// cli carries the state shared by every subcommand once the root pre-run
// has loaded config.
type cli struct {
	out      io.Writer
	base     string
	jsonOut  bool
	frontend *app.Frontend
}

func (c *cli) api() []api.Option {
	return c.frontend.API()
}

func newRootCommand(out io.Writer) (*cobra.Command, *cli) {
	c := &cli{out: out}

	root := &cobra.Command{
		Use:           "searchfront",
		Short:         "Query a search engine backend from the command line",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return c.setup(cmd)
		},
	}
	root.SetOut(out)

	flags := root.PersistentFlags()
	flags.StringVar(&c.base, "base", "", "API base URL (overrides api_base)")
	flags.BoolVar(&c.jsonOut, "json", false, "print raw JSON responses")

	root.AddCommand(
		newSearchCommand(c),
		newSuggestCommand(c),
		newWidgetCommand(c),
		newSidebarCommand(c),
		newSpellcheckCommand(c),
		newFactCheckCommand(c),
		newWebgraphCommand(c),
		newAliceCommand(c),
		newSummarizeCommand(c),
		newExportCommand(c),
		newEndpointsCommand(c),
	)
	return root, c
}

func (c *cli) setup(cmd *cobra.Command) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if c.base != "" {
		cfg.APIBase = c.base
	}

	if _, err := logger.Init(cfg); err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	logger.DebugObj("searchfront starting", "config", cfg)

	f, err := app.NewFrontend(cmd.Context(), cfg, logger.Default())
	if err != nil {
		logger.ErrorObj("failed to initialize frontend", "error", err.Error())
		return err
	}
	c.frontend = f
	return nil
}

// teardown runs after the command whether or not it failed.
func (c *cli) teardown() {
	defer logger.Close()
	if c.frontend == nil {
		return
	}
	if err := c.frontend.Close(); err != nil {
		logger.ErrorObj("frontend close failed", "error", err.Error())
	}
}

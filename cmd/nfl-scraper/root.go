package main

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/spf13/cobra"

	"github.com/myusername/nfl-stats-scraper/internal/config"
	"github.com/myusername/nfl-stats-scraper/internal/telemetry"
	"github.com/myusername/nfl-stats-scraper/internal/utils"
	"github.com/myusername/nfl-stats-scraper/pkg/driver"
	"github.com/myusername/nfl-stats-scraper/pkg/export"
	"github.com/myusername/nfl-stats-scraper/pkg/scraper"
)

const (
	defaultOutput = "data"
	defaultFormat = "csv"
)

type rootFlags struct {
	position  string
	year      string
	week      string
	output    string
	format    string
	config    string
	traceFile string
	verbose   bool
}

// now anchors the default season range
var now = time.Now

func newRootCmd() *cobra.Command {
	var flags rootFlags

	cmd := &cobra.Command{
		Use:   "nfl-scraper",
		Short: "Scrape FantasyPros weekly NFL player stats",
		Long: `nfl-scraper downloads weekly player statistics from FantasyPros and saves
one file per position and season under <output>/<position>/<position>_<year>.<ext>.`,
		Example: `  nfl-scraper --position qb --year 2023 --week 1-4
  nfl-scraper --year 2018-2022 --format parquet --output stats`,
		Version:       version,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			utils.SetupLogging(cmd.OutOrStdout(), flags.verbose)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, flags)
		},
	}

	f := cmd.Flags()
	f.StringVar(&flags.position, "position", "all", "qb, rb, wr, te, k, dst or 'all'")
	f.StringVar(&flags.year, "year", "all", "Single year (e.g. 2023), range (e.g. 2020-2024), or 'all'")
	f.StringVar(&flags.week, "week", "all", "Single week (e.g. 2), range (e.g. 1-4), or 'all' (1-17)")
	f.StringVar(&flags.output, "output", defaultOutput, "Directory to store scraped files")
	f.StringVar(&flags.format, "format", defaultFormat, "Output format: csv, parquet, json (JSON Lines), sqlite or xlsx")
	f.StringVar(&flags.config, "config", config.DefaultFile, "Optional json5 settings file")
	f.StringVar(&flags.traceFile, "trace-file", "", "Write OpenTelemetry spans to this file")
	f.BoolVarP(&flags.verbose, "verbose", "v", false, "Enable debug logging")

	return cmd
}

// pick returns the flag value when it was set explicitly, else the config
// value when present, else the flag default.
func pick(cmd *cobra.Command, name, flagValue, configValue string) string {
	if cmd.Flags().Changed(name) || configValue == "" {
		return flagValue
	}
	return configValue
}

func run(cmd *cobra.Command, flags rootFlags) error {
	ctx := cmd.Context()

	cfg, err := config.Load(flags.config)
	if err != nil {
		return err
	}

	format, err := export.ParseFormat(pick(cmd, "format", flags.format, cfg.Format))
	if err != nil {
		return err
	}
	output := pick(cmd, "output", flags.output, cfg.Output)

	plan, err := driver.Resolve(driver.Options{
		Position:    flags.position,
		Year:        flags.year,
		Week:        flags.week,
		CurrentYear: now().Year(),
		FirstYear:   cfg.StartYear,
	})
	if err != nil {
		return err
	}

	tel, err := telemetry.Setup(flags.traceFile)
	if err != nil {
		return err
	}
	defer func() {
		if err := tel.Shutdown(context.Background()); err != nil {
			slog.Warn("failed to flush traces", "err", err)
		}
	}()

	client := scraper.NewClient(scraper.ClientOptions{
		BaseURL:           cfg.BaseURL,
		UserAgent:         cfg.UserAgent,
		Timeout:           cfg.Timeout(),
		RequestsPerSecond: cfg.RequestsPerSecond,
		BypassCloudflare:  cfg.BypassCloudflare,
	})
	s := scraper.New(client, output, format)
	if lo, hi, ok := cfg.Delays(); ok {
		s.DelayMin, s.DelayMax = lo, hi
	}

	slog.Info("NFL stats scraper starting...",
		"version", version,
		"positions", len(plan.Positions),
		"years", len(plan.Years),
		"weeks", len(plan.Weeks),
		"format", format,
		"output", output,
	)

	t1 := time.Now()
	results, runErr := driver.Run(ctx, plan, s)
	slog.Info("scraping complete", "seconds", time.Since(t1).Seconds())

	utils.DisplayResults(cmd.OutOrStdout(), results)
	if runErr != nil {
		return fmt.Errorf("some scrapes failed: %w", runErr)
	}
	return nil
}

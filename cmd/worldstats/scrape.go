package main

import (
	"fmt"
	"io"
	"sort"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/leofalp/worldstats/core/pipeline"
)

type scrapeOptions struct {
	concurrency     int
	timeout         time.Duration
	populationLimit int
	snapshots       bool
	sourcesFile     string
	userAgent       string
}

func newScrapeCmd(root *rootOptions) *cobra.Command {
	opts := &scrapeOptions{}
	cmd := &cobra.Command{
		Use:   "scrape",
		Short: "Fetch every source and write the per-source and merged CSV files",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := root.config()
			if err != nil {
				return err
			}
			flags := cmd.Flags()
			if flags.Changed("concurrency") {
				cfg.Concurrency = opts.concurrency
			}
			if flags.Changed("timeout") {
				cfg.Timeout = opts.timeout
			}
			if flags.Changed("population-limit") {
				cfg.PopulationLimit = opts.populationLimit
			}
			if flags.Changed("snapshots") {
				cfg.Snapshots = opts.snapshots
			}
			if flags.Changed("sources") {
				cfg.SourcesFile = opts.sourcesFile
			}
			if flags.Changed("user-agent") {
				cfg.UserAgent = opts.userAgent
			}

			p, err := pipeline.New(cfg, pipeline.WithObserver(root.observer(cmd)))
			if err != nil {
				return err
			}
			report, err := p.Run(cmd.Context())
			if err != nil {
				return err
			}
			return printRunReport(cmd.OutOrStdout(), report)
		},
	}

	flags := cmd.Flags()
	flags.IntVar(&opts.concurrency, "concurrency", 1, "sources fetched at once (env WORLDSTATS_CONCURRENCY)")
	flags.DurationVar(&opts.timeout, "timeout", 30*time.Second, "per-request timeout (env WORLDSTATS_TIMEOUT)")
	flags.IntVar(&opts.populationLimit, "population-limit", 50, "countries kept from the population table (env WORLDSTATS_POPULATION_LIMIT)")
	flags.BoolVar(&opts.snapshots, "snapshots", false, "save each located table as Markdown under <output>/snapshots (env WORLDSTATS_SNAPSHOTS)")
	flags.StringVar(&opts.sourcesFile, "sources", "", "YAML or JSON file overriding source URLs, header rows and limits (env WORLDSTATS_SOURCES_FILE)")
	flags.StringVar(&opts.userAgent, "user-agent", "", "User-Agent sent with every request (env WORLDSTATS_USER_AGENT)")
	return cmd
}

func printRunReport(out io.Writer, report *pipeline.Report) error {
	tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "SOURCE\tROWS\tSKIPPED\tSTATUS\tFILE")
	for _, s := range report.Sources {
		fmt.Fprintf(tw, "%s\t%d\t%s\t%s\t%s\n", s.Name, s.Rows, failureSummary(s), sourceStatus(s), s.Path)
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	_, err := fmt.Fprintf(out, "\nmerged %d countries (%d dropped without population or HDI) into %s in %s\n",
		report.Countries, report.Dropped, report.MergedPath, report.Elapsed())
	return err
}

func failureSummary(s pipeline.SourceReport) string {
	if s.Failed() == 0 {
		return "0"
	}
	parts := make([]string, 0, len(s.Failures))
	for kind, n := range s.Failures {
		parts = append(parts, fmt.Sprintf("%s=%d", kind, n))
	}
	sort.Strings(parts)
	return fmt.Sprintf("%d (%s)", s.Failed(), strings.Join(parts, ", "))
}

func sourceStatus(s pipeline.SourceReport) string {
	switch {
	case s.Err != nil:
		return "failed: " + s.Err.Error()
	case s.WriteErr != nil:
		return "not written: " + s.WriteErr.Error()
	}
	return "ok"
}

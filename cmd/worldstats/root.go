package main

import (
	"errors"
	"fmt"
	"io/fs"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/leofalp/worldstats/core/config"
	"github.com/leofalp/worldstats/providers/observability/slogobs"
)

// rootOptions are the flags shared by every subcommand.
type rootOptions struct {
	outputDir string
	envFile   string
	logLevel  string
	logFormat string
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}
	cmd := &cobra.Command{
		Use:   "worldstats",
		Short: "Scrape, merge and report per-country statistics",
		Long: `worldstats reads population, area, GDP, military spending and HDI tables,
writes one CSV file per source and a merged_data.csv with density, GDP per
capita and GDP share.

Settings come from WORLDSTATS_* environment variables, optionally loaded from
a .env file, and from flags, which win.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return opts.loadEnv()
		},
	}

	flags := cmd.PersistentFlags()
	flags.StringVarP(&opts.outputDir, "output", "o", "", "output directory (default \"data\", env "+config.EnvOutputDir+")")
	flags.StringVar(&opts.envFile, "env-file", ".env", "dotenv file loaded before reading the environment; missing files are ignored")
	flags.StringVar(&opts.logLevel, "log-level", "", "trace, debug, info, warn or error (env WORLDSTATS_LOG_LEVEL)")
	flags.StringVar(&opts.logFormat, "log-format", "", "compact, pretty or json (env WORLDSTATS_LOG_FORMAT)")

	cmd.AddCommand(newScrapeCmd(opts), newMergeCmd(opts), newReportCmd(opts))
	return cmd
}

// loadEnv loads the dotenv file without overriding variables already set.
func (o *rootOptions) loadEnv() error {
	if o.envFile == "" {
		return nil
	}
	if err := godotenv.Load(o.envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("load %s: %w", o.envFile, err)
	}
	return nil
}

// config reads the environment and applies the shared flags.
func (o *rootOptions) config() (config.Config, error) {
	cfg, err := config.FromEnv()
	if err != nil {
		return cfg, err
	}
	if o.outputDir != "" {
		cfg.OutputDir = o.outputDir
	}
	return cfg, nil
}

// observer logs to the command's stderr so reports on stdout stay clean.
func (o *rootOptions) observer(cmd *cobra.Command) *slogobs.Observer {
	opts := []slogobs.Option{slogobs.WithOutput(cmd.ErrOrStderr())}
	if o.logLevel != "" {
		opts = append(opts, slogobs.WithLevel(slogobs.ParseLogLevel(o.logLevel)))
	}
	if o.logFormat != "" {
		opts = append(opts, slogobs.WithFormat(slogobs.ParseFormat(o.logFormat)))
	}
	return slogobs.New(opts...)
}

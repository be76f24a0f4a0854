package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/leofalp/worldstats/core/pipeline"
	"github.com/leofalp/worldstats/providers/store/csvfile"
)

func newMergeCmd(root *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "merge",
		Short: "Rebuild merged_data.csv from the per-source files",
		Long: `merge re-reads population.csv, area.csv, gdp.csv, military_spending.csv and
hdi.csv from the output directory, joins them again and rewrites
merged_data.csv. Missing source files count as empty sources.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := root.config()
			if err != nil {
				return err
			}
			store := csvfile.New(cfg.OutputDir)
			t, sets, err := pipeline.Remerge(store)
			if err != nil {
				return err
			}
			path, err := store.WriteMerged(t)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			for _, d := range sets {
				fmt.Fprintf(out, "%-18s %d rows", d.Source(), d.Len())
				if n := len(d.Failures()); n > 0 {
					fmt.Fprintf(out, ", %d unreadable", n)
				}
				fmt.Fprintln(out)
			}
			_, err = fmt.Fprintf(out, "merged %d countries into %s\n", len(t), path)
			return err
		},
	}
}

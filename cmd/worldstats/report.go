package main

import (
	"fmt"
	"io"
	"slices"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/leofalp/worldstats/core/derive"
	"github.com/leofalp/worldstats/core/merge"
	"github.com/leofalp/worldstats/core/pipeline"
	"github.com/leofalp/worldstats/internal/utils"
	"github.com/leofalp/worldstats/providers/store/csvfile"
)

// reportColumns are the columns of the printed and exported table.
var reportColumns = []string{
	merge.ColumnCountry,
	merge.ColumnPopulation,
	merge.ColumnArea,
	merge.ColumnGDP,
	merge.ColumnMilitarySpending,
	merge.ColumnHDI,
	merge.ColumnHDICategory,
	merge.ColumnDensity,
	merge.ColumnGDPPerCapita,
	merge.ColumnGDPShare,
}

type reportOptions struct {
	categories []string
	minPop     float64
	maxPop     float64
	top        int
	corr       bool
	out        string
}

func newReportCmd(root *rootOptions) *cobra.Command {
	opts := &reportOptions{}
	cmd := &cobra.Command{
		Use:   "report",
		Short: "Filter the merged table and print key metrics",
		Long: `report re-merges the per-source files, keeps the rows matching the filters and
prints the key metrics and the table. HDI categories are quartiles of the rows
left after filtering, so they shift as the filters change.

--category selects rows by their category in the full merged table. The rows
it keeps are then re-labelled against each other, so --category "Very High"
can print rows labelled Low through Very High.

Key metrics and the correlation matrix cover every filtered row; --top only
limits the rows printed and written with --out.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := root.config()
			if err != nil {
				return err
			}
			f, err := opts.filter(cmd)
			if err != nil {
				return err
			}

			t, _, err := pipeline.Remerge(csvfile.New(cfg.OutputDir))
			if err != nil {
				return err
			}
			// Metrics and correlations cover the whole filtered set; --top
			// only trims the rows printed and exported.
			top := f.TopN
			f.TopN = 0
			filtered := derive.Select(t, f)
			selected := filtered
			if top > 0 {
				selected = derive.Top(filtered, top)
			}

			out := cmd.OutOrStdout()
			if err := printSummary(out, derive.Summarize(filtered)); err != nil {
				return err
			}
			if err := printTable(out, selected); err != nil {
				return err
			}
			if opts.corr {
				if err := printMatrix(out, derive.Correlation(filtered, derive.CorrelationColumns)); err != nil {
					return err
				}
			}
			if opts.out != "" {
				err := utils.WriteFileAtomic(opts.out, 0o644, func(w io.Writer) error {
					return csvfile.EncodeTable(w, selected, reportColumns)
				})
				if err != nil {
					return fmt.Errorf("write %s: %w", opts.out, err)
				}
				fmt.Fprintf(out, "\nwrote %d rows to %s\n", len(selected), opts.out)
			}
			return nil
		},
	}

	flags := cmd.Flags()
	flags.StringSliceVar(&opts.categories, "category", nil, "keep rows whose HDI category in the full table is one of: "+strings.Join(derive.Categories, ", ")+" (repeatable; survivors are re-categorised)")
	flags.Float64Var(&opts.minPop, "min-pop", 0, "minimum population in millions")
	flags.Float64Var(&opts.maxPop, "max-pop", 0, "maximum population in millions")
	flags.IntVar(&opts.top, "top", 0, "print and export only the N most populous filtered countries")
	flags.BoolVar(&opts.corr, "corr", false, "print the correlation matrix")
	flags.StringVar(&opts.out, "out", "", "also write the filtered table to this CSV file")
	return cmd
}

func (o *reportOptions) filter(cmd *cobra.Command) (derive.Filter, error) {
	f := derive.Filter{TopN: o.top}
	for _, c := range o.categories {
		if !slices.Contains(derive.Categories, c) {
			return f, fmt.Errorf("unknown HDI category %q (want one of: %s)", c, strings.Join(derive.Categories, ", "))
		}
		f.Categories = append(f.Categories, c)
	}
	if o.top < 0 {
		return f, fmt.Errorf("--top must not be negative")
	}
	if cmd.Flags().Changed("min-pop") {
		f.MinPopulation = utils.Ptr(o.minPop * 1e6)
	}
	if cmd.Flags().Changed("max-pop") {
		f.MaxPopulation = utils.Ptr(o.maxPop * 1e6)
	}
	if f.MinPopulation != nil && f.MaxPopulation != nil && *f.MinPopulation > *f.MaxPopulation {
		return f, fmt.Errorf("--min-pop %g is above --max-pop %g", o.minPop, o.maxPop)
	}
	return f, nil
}

func printSummary(out io.Writer, s derive.Summary) error {
	tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "countries\t%d\n", s.Countries)
	fmt.Fprintf(tw, "total population\t%s\n", csvfile.FormatFloat(s.TotalPopulation))
	fmt.Fprintf(tw, "mean HDI\t%s\n", formatOptional(s.MeanHDI, "%.3f"))
	fmt.Fprintf(tw, "mean GDP per capita\t%s\n", formatOptional(s.MeanGDPPerCapita, "%.0f"))
	fmt.Fprintln(tw)
	return tw.Flush()
}

func printTable(out io.Writer, t merge.Table) error {
	tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintln(tw, strings.Join(reportColumns, "\t")+"\t")
	for _, r := range t {
		fields := make([]string, len(reportColumns))
		for i, column := range reportColumns {
			switch column {
			case merge.ColumnCountry:
				fields[i] = r.Country
			case merge.ColumnHDICategory:
				fields[i] = r.HDICategory
			default:
				fields[i] = formatOptional(r.Get(column), "")
			}
			if fields[i] == "" {
				fields[i] = "-"
			}
		}
		fmt.Fprintln(tw, strings.Join(fields, "\t")+"\t")
	}
	return tw.Flush()
}

func printMatrix(out io.Writer, m derive.Matrix) error {
	fmt.Fprintln(out)
	tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintln(tw, "\t"+strings.Join(m.Columns, "\t")+"\t")
	for i, row := range m.Values {
		fields := make([]string, len(row))
		for j, v := range row {
			fields[j] = formatOptional(v, "%.2f")
		}
		fmt.Fprintln(tw, m.Columns[i]+"\t"+strings.Join(fields, "\t")+"\t")
	}
	return tw.Flush()
}

// formatOptional prints nil as "-" and uses the shortest exact form when
// format is empty.
func formatOptional(v *float64, format string) string {
	switch {
	case v == nil:
		return "-"
	case format == "":
		return csvfile.FormatFloat(*v)
	}
	return fmt.Sprintf(format, *v)
}

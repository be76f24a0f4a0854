// Package pipeline runs one scrape: every source is fetched and parsed into
// its own dataset, the datasets are written to per-source CSV files, and the
// outer join with derived metrics is written to merged_data.csv.
//
// A source that cannot be fetched or whose table is missing is logged and
// contributes an empty dataset; the run carries on with the others. Run only
// fails on setup errors and on a failed write of the merged file.
//
//	p, err := pipeline.New(config.Default(), pipeline.WithObserver(slogobs.New()))
//	if err != nil {
//		return err
//	}
//	report, err := p.Run(ctx)
package pipeline

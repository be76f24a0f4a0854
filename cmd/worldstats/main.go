// Command worldstats scrapes country statistics into CSV files and reports
// on them.
//
//	worldstats scrape -o data --concurrency 5
//	worldstats merge -o data
//	worldstats report -o data --category "Very High" --top 10 --corr
package main

import (
	"context"
	"os"
	"os/signal"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err := newRootCmd().ExecuteContext(ctx)
	stop()
	if err != nil {
		os.Exit(1)
	}
}

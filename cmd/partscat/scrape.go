package main

import (
	"fmt"

	"github.com/fwojciec/partscat/scrape"
)

// Run executes the scrape command.
func (c *ScrapeCmd) Run(deps *Dependencies) error {
	if len(deps.Targets) == 0 {
		fmt.Fprintln(deps.Stdout, "No targets configured. Check the brands file.")
		return nil
	}

	fmt.Fprintf(deps.Stdout, "Scraping %d catalogs with the %s driver...\n", len(deps.Targets), c.Driver)

	progress := func(event scrape.ProgressEvent) {
		switch event.Type {
		case scrape.ProgressCompleted:
			fmt.Fprintf(deps.Stdout, "[%d/%d] %s: %d parts → %s\n",
				event.Completed, event.Total, event.Target.BrandProduct(), event.Parts, event.Path)
		case scrape.ProgressFailed:
			fmt.Fprintf(deps.Stderr, "[%d/%d] %s: failed: %s\n",
				event.Completed, event.Total, event.Target.BrandProduct(), event.Error)
		}
	}

	result, err := deps.Scraper.ScrapeAll(deps.Ctx, deps.Targets, progress)
	if err != nil {
		return err
	}

	fmt.Fprintf(deps.Stdout, "Done: %d catalogs, %d parts, %d failed\n",
		result.Catalogs, result.Parts, result.Failed)
	return nil
}

package main

import (
	"fmt"

	"github.com/sdglab/harvest"
)

// Run executes the run command. Per-page and per-publication failures are
// reported on stderr but do not fail the command; only range validation,
// setup, and storage errors do.
func (c *RunCmd) Run(deps *Dependencies) error {
	pages, err := c.pageRange()
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", harvest.ErrorMessage(err))
		return err
	}

	progress := func(p harvest.Progress) {
		switch p.Type {
		case harvest.ProgressStarted:
			fmt.Fprintf(deps.Stdout, "Found %d publications\n", p.Total)
		case harvest.ProgressPageSkipped:
			fmt.Fprintf(deps.Stderr, "  skip page %d: %s\n", p.Page, harvest.ErrorMessage(p.Err))
		case harvest.ProgressFailed:
			fmt.Fprintf(deps.Stderr, "  skip %s: %s\n", p.URL, harvest.ErrorMessage(p.Err))
		}
	}

	summary, err := deps.Runner.Run(deps.Ctx, pages, progress)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", harvest.ErrorMessage(err))
		return err
	}

	fmt.Fprintf(deps.Stdout, "Listed %d pages (%d skipped)\n", summary.PagesListed, summary.PagesSkipped)
	fmt.Fprintf(deps.Stdout, "Saved %d of %d publications (%d skipped, %d failed)\n",
		summary.Saved, summary.Attempted, summary.Skipped, summary.Failed)
	fmt.Fprintf(deps.Stdout, "Files: %d saved, %d failed\n", summary.FilesSaved, summary.FilesFailed)
	return nil
}

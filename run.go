package harvest

import "time"

// PageRange is an inclusive range of listing-page indexes.
type PageRange struct {
	Start int
	End   int
}

// DefaultPageRange returns the default range, pages 0 through 1.
func DefaultPageRange() PageRange {
	return PageRange{Start: 0, End: 1}
}

// Validate returns EINVALID if the range is negative or inverted.
// The pipeline validates the range before any network call.
func (r PageRange) Validate() error {
	if r.Start < 0 || r.End < 0 {
		return Errorf(EINVALID, "page range must be non-negative, got [%d, %d]", r.Start, r.End)
	}
	if r.Start > r.End {
		return Errorf(EINVALID, "page range start %d exceeds end %d", r.Start, r.End)
	}
	return nil
}

// Pages returns the page indexes in increasing order.
func (r PageRange) Pages() []int {
	pages := make([]int, 0, r.End-r.Start+1)
	for p := r.Start; p <= r.End; p++ {
		pages = append(pages, p)
	}
	return pages
}

// RunSummary aggregates the outcome of one pipeline run. A run always
// terminates with a summary, even when every publication failed.
type RunSummary struct {
	Source string
	Pages  PageRange

	PagesListed  int
	PagesSkipped int // listing pages that failed to fetch or parse

	Attempted int // unique cards dispatched
	Saved     int
	Skipped   int // publications without SDG labels or usable content
	Failed    int

	FilesSaved  int
	FilesFailed int
}

// Run records one pipeline invocation in the catalog.
type Run struct {
	ID         string
	Source     string
	Pages      PageRange
	StartedAt  time.Time
	FinishedAt time.Time
	Saved      int
	Failed     int
}

// ProgressType indicates the type of progress event.
type ProgressType int

// Progress event types emitted during a run.
const (
	ProgressStarted ProgressType = iota
	ProgressPageListed
	ProgressPageSkipped
	ProgressSaved
	ProgressSkipped
	ProgressFailed
	ProgressFinished
)

// Progress reports pipeline progress. Page is set on page events, URL on
// publication events.
type Progress struct {
	Type      ProgressType
	Page      int
	URL       string
	Completed int
	Total     int
	Err       error
}

// ProgressFunc is called as the pipeline advances. It is always invoked
// from the collecting goroutine, never concurrently.
type ProgressFunc func(Progress)

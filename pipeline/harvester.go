// Package pipeline orchestrates a harvest run: listing pages, fetching and
// parsing publications with bounded concurrency, and staging results into
// the store and catalog.
package pipeline

import (
	"context"
	"log/slog"
	"net/url"
	"path"
	"strings"

	"github.com/sdglab/harvest"
	"golang.org/x/sync/errgroup"
)

// DefaultConcurrency bounds publication processing when none is configured.
const DefaultConcurrency = 4

// Harvester runs the scraping pipeline for one source.
type Harvester struct {
	Scraper harvest.Scraper
	Fetcher harvest.Fetcher
	Store   harvest.Store

	// Catalog is optional; runs are not recorded when nil.
	Catalog harvest.CatalogService

	Logger      *slog.Logger
	Concurrency int
}

// fileContent pairs a file URL with its downloaded payload.
// data is nil when the download failed.
type fileContent struct {
	url  string
	data []byte
}

// cardResult holds the outcome of processing a single card.
type cardResult struct {
	card     harvest.Card
	pub      *harvest.Publication
	contents []fileContent
	err      error
}

// Run harvests the given page range. Listing pages are walked sequentially;
// publications are processed concurrently but collected and stored in
// listing order so output is deterministic for a fixed input. Failures of
// individual pages or publications are counted, not fatal; storage failures
// abort the run and discard everything staged.
func (h *Harvester) Run(ctx context.Context, pages harvest.PageRange, progress harvest.ProgressFunc) (*harvest.RunSummary, error) {
	if err := pages.Validate(); err != nil {
		return nil, err
	}

	notify := func(p harvest.Progress) {
		if progress != nil {
			progress(p)
		}
	}

	info := h.Scraper.Source()
	summary := &harvest.RunSummary{Source: info.ID, Pages: pages}
	logger := h.logger()

	var run *harvest.Run
	if h.Catalog != nil {
		run = &harvest.Run{Source: info.ID, Pages: pages}
		if err := h.Catalog.CreateRun(ctx, run); err != nil {
			return nil, err
		}
	}

	// Listing pages are walked in order; a failed page is skipped, not
	// fatal. Cards are deduplicated by URL preserving first appearance.
	seen := make(map[string]bool)
	var cards []harvest.Card
	for _, page := range pages.Pages() {
		if err := ctx.Err(); err != nil {
			return nil, h.abort(err)
		}

		listed, err := h.Scraper.ListPage(ctx, page)
		if err != nil {
			summary.PagesSkipped++
			logger.Warn("listing page skipped", "source", info.ID, "page", page, "error", err)
			notify(harvest.Progress{Type: harvest.ProgressPageSkipped, Page: page, Err: err})
			continue
		}
		summary.PagesListed++
		notify(harvest.Progress{Type: harvest.ProgressPageListed, Page: page})

		for _, card := range listed {
			if seen[card.URL] {
				continue
			}
			seen[card.URL] = true
			cards = append(cards, card)
		}
	}

	summary.Attempted = len(cards)
	notify(harvest.Progress{Type: harvest.ProgressStarted, Total: len(cards)})

	concurrency := h.Concurrency
	if concurrency <= 0 {
		concurrency = DefaultConcurrency
	}

	// Workers write into a position-indexed slice so collection happens in
	// listing order regardless of completion order.
	results := make([]cardResult, len(cards))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)
	for i, card := range cards {
		g.Go(func() error {
			results[i] = h.process(gctx, card)
			return nil
		})
	}
	_ = g.Wait()

	if err := ctx.Err(); err != nil {
		return nil, h.abort(err)
	}

	if err := h.collect(ctx, run, results, summary, notify); err != nil {
		return nil, h.abort(err)
	}

	// A partial Commit may have moved some entries already; Abort only
	// removes what is still staged.
	if err := h.Store.Commit(); err != nil {
		return nil, h.abort(err)
	}

	if run != nil {
		run.Saved = summary.Saved
		run.Failed = summary.Failed
		if err := h.Catalog.FinishRun(ctx, run); err != nil {
			// Output is already committed; the incomplete catalog row is
			// not worth failing the run over.
			logger.Warn("finish run", "run", run.ID, "error", err)
		}
	}

	notify(harvest.Progress{Type: harvest.ProgressFinished, Completed: len(cards), Total: len(cards)})
	return summary, nil
}

// process fetches and parses one card. Unlabeled publications and text-mode
// publications without extractable content return no contents, which the
// collector counts as skipped. File download failures are recorded with nil
// data rather than failing the whole publication.
func (h *Harvester) process(ctx context.Context, card harvest.Card) cardResult {
	pub, err := h.Scraper.Publication(ctx, card)
	if err != nil {
		return cardResult{card: card, err: err}
	}

	res := cardResult{card: card, pub: pub}
	if !pub.Labeled() {
		return res
	}

	if pub.Content != "" {
		res.contents = []fileContent{{url: pub.Source, data: []byte(pub.Content)}}
		return res
	}

	for _, f := range pub.Files {
		data, err := h.Fetcher.Fetch(ctx, f.URL)
		if err != nil {
			h.logger().Warn("file download failed", "url", f.URL, "error", err)
			res.contents = append(res.contents, fileContent{url: f.URL})
			continue
		}
		res.contents = append(res.contents, fileContent{url: f.URL, data: data})
	}
	return res
}

// collect stores results in listing order. Store errors are fatal; a
// catalog row failure demotes the publication to failed before its export
// record is staged, so the run goes on and the JSONL export only lists
// publications counted as saved.
func (h *Harvester) collect(ctx context.Context, run *harvest.Run, results []cardResult, summary *harvest.RunSummary, notify harvest.ProgressFunc) error {
	var completed int
	for _, res := range results {
		completed++

		if res.err != nil {
			summary.Failed++
			h.logger().Warn("publication failed", "url", res.card.URL, "error", res.err)
			notify(harvest.Progress{
				Type:      harvest.ProgressFailed,
				URL:       res.card.URL,
				Completed: completed,
				Total:     len(results),
				Err:       res.err,
			})
			continue
		}

		if len(res.contents) == 0 {
			summary.Skipped++
			notify(harvest.Progress{
				Type:      harvest.ProgressSkipped,
				URL:       res.card.URL,
				Completed: completed,
				Total:     len(results),
			})
			continue
		}

		pub := res.pub
		files := make([]harvest.File, 0, len(res.contents))
		for _, content := range res.contents {
			if content.data == nil {
				summary.FilesFailed++
				files = append(files, harvest.File{URL: content.url})
				continue
			}
			ext := "md"
			if pub.Content == "" {
				ext = extension(content.url)
			}
			name, err := h.Store.SaveFile(ctx, content.data, ext)
			if err != nil {
				return err
			}
			summary.FilesSaved++
			files = append(files, harvest.File{URL: content.url, Name: name})
		}
		pub.Files = files

		// The catalog row goes in before the export record so a failed row
		// leaves no JSONL entry and the export agrees with the summary.
		// Files staged above are content-addressed and still committed.
		if run != nil {
			if err := h.Catalog.CreatePublication(ctx, run.ID, pub); err != nil {
				summary.Failed++
				h.logger().Warn("catalog record failed", "url", pub.Source, "error", err)
				notify(harvest.Progress{
					Type:      harvest.ProgressFailed,
					URL:       res.card.URL,
					Completed: completed,
					Total:     len(results),
					Err:       err,
				})
				continue
			}
		}

		if err := h.Store.SavePublication(ctx, pub); err != nil {
			return err
		}

		summary.Saved++
		notify(harvest.Progress{
			Type:      harvest.ProgressSaved,
			URL:       res.card.URL,
			Completed: completed,
			Total:     len(results),
		})
	}
	return nil
}

// abort discards staged output and returns the causing error.
func (h *Harvester) abort(err error) error {
	if aerr := h.Store.Abort(); aerr != nil {
		h.logger().Error("abort staged output", "error", aerr)
	}
	return err
}

func (h *Harvester) logger() *slog.Logger {
	if h.Logger != nil {
		return h.Logger
	}
	return slog.New(slog.DiscardHandler)
}

// extension derives a stored-file extension from the download URL,
// defaulting to pdf when the path has none.
func extension(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return "pdf"
	}
	if ext := strings.TrimPrefix(path.Ext(u.Path), "."); ext != "" {
		return ext
	}
	return "pdf"
}

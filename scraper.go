package harvest

import "context"

// SourceInfo identifies a registered source.
type SourceInfo struct {
	ID      string // stable identifier used on the command line
	Name    string // human-readable name
	BaseURL string
}

// Scraper is implemented once per supported source. A scraper knows how to
// build listing-page URLs, parse listing pages into cards, and parse the
// page behind a card into metadata plus file links or article content.
// Scrapers hold no mutable state and are safe for concurrent use.
type Scraper interface {
	// Source describes the scraper.
	Source() SourceInfo

	// ListPage fetches and parses one listing page. Page indexes are
	// source-specific (most sources are zero-based). An empty result means
	// the page lists nothing, which usually marks the end of pagination.
	ListPage(ctx context.Context, page int) ([]Card, error)

	// Publication fetches and parses the page behind a card.
	// Returns EINVALID if the page structure is unrecognized.
	Publication(ctx context.Context, card Card) (*Publication, error)
}

// Registry resolves source identifiers to scrapers. It is populated at
// process start and read-only thereafter.
type Registry interface {
	// Resolve returns the scraper registered under id.
	// Returns ENOTFOUND if no such source is registered.
	Resolve(id string) (Scraper, error)

	// List returns descriptors for all registered sources, ordered by ID.
	List() []SourceInfo
}

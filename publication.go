package harvest

import "context"

// Card points at one publication found on a listing page. Card identity is
// its URL: two cards with the same URL refer to the same publication
// regardless of any pre-parsed metadata, and the pipeline deduplicates them
// before dispatch.
type Card struct {
	URL string

	// Meta holds metadata already parsed from the listing card itself.
	// Sources whose listings carry enough detail fill it in so the
	// publication page only needs to be consulted for labels and content.
	Meta *Metadata
}

// File is one downloadable artifact linked from a publication page.
// Name is the content-hash file name assigned once the payload is stored;
// it stays empty when the download failed.
type File struct {
	URL  string `json:"url"`
	Name string `json:"name,omitempty"`
}

// Metadata describes one publication.
type Metadata struct {
	// Source is the URL of the publication page.
	Source string `json:"source"`
	Title  string `json:"title"`
	Type   string `json:"type,omitempty"`
	Year   int    `json:"year,omitempty"`

	// Labels holds the publication's SDG goal numbers, ascending.
	Labels []int `json:"labels"`
}

// Publication is the parsed result for one card: metadata plus either file
// links (file-mode sources) or extracted article content (text-mode
// sources).
type Publication struct {
	Metadata
	Files []File `json:"files,omitempty"`

	// Content carries the article body as Markdown for text-mode sources.
	// It is stored as a file of its own, not serialized with the record.
	Content string `json:"-"`
}

// Validate returns an error if the publication contains invalid fields.
func (p *Publication) Validate() error {
	if p.Source == "" {
		return Errorf(EINVALID, "publication source URL required")
	}
	return nil
}

// Labeled reports whether the publication carries at least one SDG label.
// Unlabeled publications are skipped by the pipeline.
func (p *Publication) Labeled() bool {
	return len(p.Labels) > 0
}

// CatalogService records runs and their publications in a cross-run
// catalog so repeated harvests can be audited.
type CatalogService interface {
	// CreateRun inserts a new run, assigning its ID and start time.
	CreateRun(ctx context.Context, run *Run) error

	// FinishRun stores a run's final counters and finish time.
	FinishRun(ctx context.Context, run *Run) error

	// CreatePublication records one saved publication under a run.
	CreatePublication(ctx context.Context, runID string, pub *Publication) error

	// FindPublications retrieves catalogued publications matching the filter.
	FindPublications(ctx context.Context, filter PublicationFilter) ([]*Publication, error)
}

// PublicationFilter filters FindPublications.
type PublicationFilter struct {
	RunID *string
	Year  *int
	Label *int

	Offset int
	Limit  int
}

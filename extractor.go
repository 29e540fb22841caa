package harvest

// ExtractResult holds the article content extracted from an HTML page.
type ExtractResult struct {
	// Title is the page title extracted from metadata.
	Title string

	// ContentHTML is the article body as clean HTML with site boilerplate
	// (nav, footer, related-content blocks) removed.
	ContentHTML string
}

// Extractor pulls the main article content out of a publication page.
// Text-mode scrapers fall back to it when their known content containers
// are absent from the page.
type Extractor interface {
	Extract(html string) (*ExtractResult, error)
}

// Converter converts HTML to Markdown.
type Converter interface {
	// Convert transforms article HTML into Markdown. The input should be
	// clean HTML, e.g. from an Extractor.
	Convert(html string) (string, error)
}

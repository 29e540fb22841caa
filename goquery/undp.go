package goquery

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/sdglab/harvest"
)

// Ensure UNDP implements harvest.Scraper at compile time.
var _ harvest.Scraper = (*UNDP)(nil)

// UNDP scrapes UNDP Publications (https://www.undp.org/publications).
type UNDP struct {
	site
}

// NewUNDP creates the UNDP scraper.
func NewUNDP(fetcher harvest.Fetcher) *UNDP {
	return &UNDP{site{
		fetcher: fetcher,
		info: harvest.SourceInfo{
			ID:      "undp",
			Name:    "UNDP Publications",
			BaseURL: "https://www.undp.org",
		},
	}}
}

// ListPage parses one zero-based listing page into cards.
func (s *UNDP) ListPage(ctx context.Context, page int) ([]harvest.Card, error) {
	u := fmt.Sprintf("%s/publications?page=%d", s.info.BaseURL, page)
	doc, err := s.document(ctx, u)
	if err != nil {
		return nil, err
	}

	var cards []harvest.Card
	doc.Find("div.content-card").Each(func(_ int, card *goquery.Selection) {
		href, ok := card.Find("a").First().Attr("href")
		if !ok {
			return
		}
		cards = append(cards, harvest.Card{URL: resolveURL(s.info.BaseURL, href)})
	})
	return cards, nil
}

// Publication parses a publication page into metadata and PDF links.
func (s *UNDP) Publication(ctx context.Context, card harvest.Card) (*harvest.Publication, error) {
	doc, err := s.document(ctx, card.URL)
	if err != nil {
		return nil, err
	}

	details := parseDetails(doc)
	return &harvest.Publication{
		Metadata: harvest.Metadata{
			Source: card.URL,
			Title:  strings.TrimSpace(doc.Find("h2.coh-heading").First().Text()),
			Type:   strings.Join(details["type"], "|"),
			Year:   parseDateHeading(doc),
			Labels: parseLabelDigits(details["goals"]),
		},
		Files: pdfLinks(doc.Find("a.download-btn"), s.info.BaseURL),
	}, nil
}

// parseDateHeading reads the "January 2, 2006" style date heading.
func parseDateHeading(doc *goquery.Document) int {
	text := strings.TrimSpace(doc.Find("h6.coh-heading").First().Text())
	if text == "" {
		return 0
	}
	t, err := time.Parse("January 2, 2006", text)
	if err != nil {
		return 0
	}
	return t.Year()
}

// parseDetails reads the publication-menu block into key → values, keyed by
// the last word of each heading ("Document type" → "type", "SDG goals" →
// "goals").
func parseDetails(doc *goquery.Document) map[string][]string {
	details := make(map[string][]string)
	doc.Find("div.publication-menu div.coh-row-inner").Each(func(_ int, row *goquery.Selection) {
		heading := strings.TrimSpace(row.Find("h6").First().Text())
		if heading == "" {
			return
		}
		words := strings.Fields(strings.ToLower(heading))
		key := words[len(words)-1]

		var values []string
		row.Find("nav.menu a").Each(func(_ int, a *goquery.Selection) {
			values = append(values, strings.TrimSpace(a.Text()))
		})
		if len(values) > 0 {
			details[key] = values
		}
	})
	return details
}

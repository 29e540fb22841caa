package goquery

import (
	"context"
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/sdglab/harvest"
)

// Ensure UNDESA implements harvest.Scraper at compile time.
var _ harvest.Scraper = (*UNDESA)(nil)

// UNDESA scrapes UN DESA Publications (https://sdgs.un.org/publications).
type UNDESA struct {
	site
}

// NewUNDESA creates the UN DESA scraper.
func NewUNDESA(fetcher harvest.Fetcher) *UNDESA {
	return &UNDESA{site{
		fetcher: fetcher,
		info: harvest.SourceInfo{
			ID:      "undesa",
			Name:    "UN DESA Publications",
			BaseURL: "https://sdgs.un.org",
		},
	}}
}

// ListPage parses one zero-based listing page into cards.
// Listing hrefs are site-relative and resolved against the base URL.
func (s *UNDESA) ListPage(ctx context.Context, page int) ([]harvest.Card, error) {
	u := fmt.Sprintf("%s/publications?page=%d", s.info.BaseURL, page)
	doc, err := s.document(ctx, u)
	if err != nil {
		return nil, err
	}

	var cards []harvest.Card
	doc.Find("div.card-custom").Each(func(_ int, card *goquery.Selection) {
		href, ok := card.Find("a").First().Attr("href")
		if !ok {
			return
		}
		cards = append(cards, harvest.Card{URL: resolveURL(s.info.BaseURL, href)})
	})
	return cards, nil
}

// Publication parses a publication page into metadata and PDF links.
func (s *UNDESA) Publication(ctx context.Context, card harvest.Card) (*harvest.Publication, error) {
	doc, err := s.document(ctx, card.URL)
	if err != nil {
		return nil, err
	}

	var goals []string
	doc.Find("div.goals-content span").Each(func(_ int, span *goquery.Selection) {
		goals = append(goals, strings.TrimSpace(span.Text()))
	})

	return &harvest.Publication{
		Metadata: harvest.Metadata{
			Source: card.URL,
			Title:  strings.TrimSpace(doc.Find("h1").First().Text()),
			Year:   parseYear(doc.Find("span.date").First().Text()),
			Labels: parseLabelDigits(goals),
		},
		Files: pdfLinks(doc.Find("#myTabContent a.document-name"), s.info.BaseURL),
	}, nil
}

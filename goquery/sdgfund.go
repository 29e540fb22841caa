package goquery

import (
	"context"
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/sdglab/harvest"
)

// Ensure SDGFund implements harvest.Scraper at compile time.
var _ harvest.Scraper = (*SDGFund)(nil)

// SDGFund scrapes the SDG Fund Library (https://www.sdgfund.org/library).
// The library has been archived since 2023 but remains accessible.
type SDGFund struct {
	site
}

// NewSDGFund creates the SDG Fund scraper.
func NewSDGFund(fetcher harvest.Fetcher) *SDGFund {
	return &SDGFund{site{
		fetcher: fetcher,
		info: harvest.SourceInfo{
			ID:      "sdgfund",
			Name:    "SDG Fund Library",
			BaseURL: "https://www.sdgfund.org",
		},
	}}
}

// ListPage parses one listing page into cards. Unlike the other sources,
// the library's pagination is one-based.
func (s *SDGFund) ListPage(ctx context.Context, page int) ([]harvest.Card, error) {
	u := fmt.Sprintf("%s/library?submit=search&page=%d", s.info.BaseURL, page)
	doc, err := s.document(ctx, u)
	if err != nil {
		return nil, err
	}

	var cards []harvest.Card
	doc.Find("div.row-publication-teaser").Each(func(_ int, card *goquery.Selection) {
		href, ok := card.Find("a").First().Attr("href")
		if !ok {
			return
		}
		cards = append(cards, harvest.Card{URL: resolveURL(s.info.BaseURL, href)})
	})
	return cards, nil
}

// Publication parses a publication page into metadata and PDF links.
func (s *SDGFund) Publication(ctx context.Context, card harvest.Card) (*harvest.Publication, error) {
	doc, err := s.document(ctx, card.URL)
	if err != nil {
		return nil, err
	}

	var goals []string
	doc.Find("a.sdg-icon-small").Each(func(_ int, a *goquery.Selection) {
		if title, ok := a.Attr("title"); ok {
			goals = append(goals, title)
		}
	})

	return &harvest.Publication{
		Metadata: harvest.Metadata{
			Source: card.URL,
			Title:  strings.TrimSpace(doc.Find("h1").First().Text()),
			Year:   parseYear(doc.Find("span.date-display-single").First().Text()),
			Labels: parseLabelDigits(goals),
		},
		Files: pdfLinks(doc.Find("a.library-link"), s.info.BaseURL),
	}, nil
}

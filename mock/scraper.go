package mock

import (
	"context"

	"github.com/sdglab/harvest"
)

var _ harvest.Scraper = (*Scraper)(nil)

// Scraper is a mock implementation of harvest.Scraper.
type Scraper struct {
	SourceFn      func() harvest.SourceInfo
	ListPageFn    func(ctx context.Context, page int) ([]harvest.Card, error)
	PublicationFn func(ctx context.Context, card harvest.Card) (*harvest.Publication, error)
}

func (s *Scraper) Source() harvest.SourceInfo {
	return s.SourceFn()
}

func (s *Scraper) ListPage(ctx context.Context, page int) ([]harvest.Card, error) {
	return s.ListPageFn(ctx, page)
}

func (s *Scraper) Publication(ctx context.Context, card harvest.Card) (*harvest.Publication, error) {
	return s.PublicationFn(ctx, card)
}

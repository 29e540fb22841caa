package mock

import (
	"context"

	"github.com/sdglab/harvest"
)

var _ harvest.CatalogService = (*CatalogService)(nil)

// CatalogService is a mock implementation of harvest.CatalogService.
type CatalogService struct {
	CreateRunFn         func(ctx context.Context, run *harvest.Run) error
	FinishRunFn         func(ctx context.Context, run *harvest.Run) error
	CreatePublicationFn func(ctx context.Context, runID string, pub *harvest.Publication) error
	FindPublicationsFn  func(ctx context.Context, filter harvest.PublicationFilter) ([]*harvest.Publication, error)
}

func (s *CatalogService) CreateRun(ctx context.Context, run *harvest.Run) error {
	return s.CreateRunFn(ctx, run)
}

func (s *CatalogService) FinishRun(ctx context.Context, run *harvest.Run) error {
	return s.FinishRunFn(ctx, run)
}

func (s *CatalogService) CreatePublication(ctx context.Context, runID string, pub *harvest.Publication) error {
	return s.CreatePublicationFn(ctx, runID, pub)
}

func (s *CatalogService) FindPublications(ctx context.Context, filter harvest.PublicationFilter) ([]*harvest.Publication, error) {
	return s.FindPublicationsFn(ctx, filter)
}

package mock

import (
	"context"

	"github.com/sdglab/harvest"
)

var _ harvest.Store = (*Store)(nil)

// Store is a mock implementation of harvest.Store.
type Store struct {
	SaveFileFn        func(ctx context.Context, content []byte, ext string) (string, error)
	SavePublicationFn func(ctx context.Context, pub *harvest.Publication) error
	CommitFn          func() error
	AbortFn           func() error
}

func (s *Store) SaveFile(ctx context.Context, content []byte, ext string) (string, error) {
	return s.SaveFileFn(ctx, content, ext)
}

func (s *Store) SavePublication(ctx context.Context, pub *harvest.Publication) error {
	return s.SavePublicationFn(ctx, pub)
}

func (s *Store) Commit() error {
	return s.CommitFn()
}

func (s *Store) Abort() error {
	return s.AbortFn()
}

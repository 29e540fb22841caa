package mock

import "github.com/sdglab/harvest"

var _ harvest.Registry = (*Registry)(nil)

// Registry is a mock implementation of harvest.Registry.
type Registry struct {
	ResolveFn func(id string) (harvest.Scraper, error)
	ListFn    func() []harvest.SourceInfo
}

func (r *Registry) Resolve(id string) (harvest.Scraper, error) {
	return r.ResolveFn(id)
}

func (r *Registry) List() []harvest.SourceInfo {
	return r.ListFn()
}

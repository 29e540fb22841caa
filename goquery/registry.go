package goquery

import (
	"sort"

	"github.com/sdglab/harvest"
)

// Ensure Registry implements harvest.Registry at compile time.
var _ harvest.Registry = (*Registry)(nil)

// Registry maps source identifiers to scrapers. It is populated once at
// startup and read-only afterwards, so it needs no locking.
type Registry struct {
	scrapers map[string]harvest.Scraper
}

// NewRegistry creates a Registry holding the given scrapers.
func NewRegistry(scrapers ...harvest.Scraper) *Registry {
	r := &Registry{scrapers: make(map[string]harvest.Scraper)}
	for _, s := range scrapers {
		r.Register(s)
	}
	return r
}

// Register adds a scraper under its source ID, replacing any previous entry.
func (r *Registry) Register(s harvest.Scraper) {
	r.scrapers[s.Source().ID] = s
}

// Resolve returns the scraper registered under id.
func (r *Registry) Resolve(id string) (harvest.Scraper, error) {
	s, ok := r.scrapers[id]
	if !ok {
		return nil, harvest.Errorf(harvest.ENOTFOUND, "unknown source %q", id)
	}
	return s, nil
}

// List returns descriptors for all registered sources, ordered by ID.
func (r *Registry) List() []harvest.SourceInfo {
	infos := make([]harvest.SourceInfo, 0, len(r.scrapers))
	for _, s := range r.scrapers {
		infos = append(infos, s.Source())
	}
	sort.Slice(infos, func(i, j int) bool { return infos[i].ID < infos[j].ID })
	return infos
}

package slog

import (
	"log/slog"

	"github.com/sdglab/harvest"
)

// Ensure LoggingRegistry implements harvest.Registry at compile time.
var _ harvest.Registry = (*LoggingRegistry)(nil)

// LoggingRegistry wraps a Registry with debug logging for source resolution.
type LoggingRegistry struct {
	next   harvest.Registry
	logger *slog.Logger
}

// NewLoggingRegistry creates a new LoggingRegistry.
func NewLoggingRegistry(next harvest.Registry, logger *slog.Logger) *LoggingRegistry {
	return &LoggingRegistry{next: next, logger: logger}
}

// Resolve delegates to the wrapped registry, logging the outcome.
func (r *LoggingRegistry) Resolve(id string) (harvest.Scraper, error) {
	scraper, err := r.next.Resolve(id)
	if err != nil {
		r.logger.Warn("resolve source", "source", id, "err", err)
		return nil, err
	}
	r.logger.Debug("resolve source", "source", id, "name", scraper.Source().Name)
	return scraper, nil
}

// List delegates to the wrapped registry.
func (r *LoggingRegistry) List() []harvest.SourceInfo {
	return r.next.List()
}

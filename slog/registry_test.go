package slog_test

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/sdglab/harvest"
	"github.com/sdglab/harvest/mock"
	harvestslog "github.com/sdglab/harvest/slog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoggingRegistry_Resolve(t *testing.T) {
	t.Parallel()

	t.Run("logs resolved source name", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
		scraper := &mock.Scraper{
			SourceFn: func() harvest.SourceInfo {
				return harvest.SourceInfo{ID: "undp", Name: "UNDP Publications"}
			},
		}
		inner := &mock.Registry{
			ResolveFn: func(id string) (harvest.Scraper, error) {
				return scraper, nil
			},
		}

		registry := harvestslog.NewLoggingRegistry(inner, logger)
		resolved, err := registry.Resolve("undp")

		require.NoError(t, err)
		assert.Equal(t, harvest.Scraper(scraper), resolved)
		output := buf.String()
		assert.Contains(t, output, "resolve source")
		assert.Contains(t, output, "source=undp")
	})

	t.Run("logs unknown source", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&buf, nil))
		inner := &mock.Registry{
			ResolveFn: func(id string) (harvest.Scraper, error) {
				return nil, harvest.Errorf(harvest.ENOTFOUND, "unknown source %q", id)
			},
		}

		registry := harvestslog.NewLoggingRegistry(inner, logger)
		_, err := registry.Resolve("wikipedia")

		require.Error(t, err)
		assert.Contains(t, buf.String(), "unknown source")
	})
}

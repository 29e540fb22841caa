package main_test

import (
	"bytes"
	"context"
	"testing"

	"github.com/sdglab/harvest"
	main "github.com/sdglab/harvest/cmd/harvest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// runnerFunc adapts a function to the main.Runner interface.
type runnerFunc func(ctx context.Context, pages harvest.PageRange, progress harvest.ProgressFunc) (*harvest.RunSummary, error)

func (f runnerFunc) Run(ctx context.Context, pages harvest.PageRange, progress harvest.ProgressFunc) (*harvest.RunSummary, error) {
	return f(ctx, pages, progress)
}

func TestRunCmd_Run(t *testing.T) {
	t.Parallel()

	t.Run("prints summary on success", func(t *testing.T) {
		t.Parallel()

		stdout := &bytes.Buffer{}
		stderr := &bytes.Buffer{}
		var gotPages harvest.PageRange
		deps := &main.Dependencies{
			Ctx:    context.Background(),
			Stdout: stdout,
			Stderr: stderr,
			Runner: runnerFunc(func(_ context.Context, pages harvest.PageRange, progress harvest.ProgressFunc) (*harvest.RunSummary, error) {
				gotPages = pages
				progress(harvest.Progress{Type: harvest.ProgressStarted, Total: 5})
				return &harvest.RunSummary{
					Source:      "undp",
					Pages:       pages,
					PagesListed: 3,
					Attempted:   5,
					Saved:       4,
					Skipped:     1,
					FilesSaved:  6,
				}, nil
			}),
		}

		cmd := &main.RunCmd{Source: "undp", Pages: []int{0, 2}}
		err := cmd.Run(deps)

		require.NoError(t, err)
		assert.Equal(t, harvest.PageRange{Start: 0, End: 2}, gotPages)
		output := stdout.String()
		assert.Contains(t, output, "Found 5 publications")
		assert.Contains(t, output, "Saved 4 of 5 publications (1 skipped, 0 failed)")
		assert.Contains(t, output, "Files: 6 saved, 0 failed")
		assert.Empty(t, stderr.String())
	})

	t.Run("single page value harvests one page", func(t *testing.T) {
		t.Parallel()

		var gotPages harvest.PageRange
		deps := &main.Dependencies{
			Ctx:    context.Background(),
			Stdout: &bytes.Buffer{},
			Stderr: &bytes.Buffer{},
			Runner: runnerFunc(func(_ context.Context, pages harvest.PageRange, _ harvest.ProgressFunc) (*harvest.RunSummary, error) {
				gotPages = pages
				return &harvest.RunSummary{}, nil
			}),
		}

		cmd := &main.RunCmd{Source: "undp", Pages: []int{7}}
		require.NoError(t, cmd.Run(deps))
		assert.Equal(t, harvest.PageRange{Start: 7, End: 7}, gotPages)
	})

	t.Run("per-publication failures go to stderr without failing the command", func(t *testing.T) {
		t.Parallel()

		stdout := &bytes.Buffer{}
		stderr := &bytes.Buffer{}
		deps := &main.Dependencies{
			Ctx:    context.Background(),
			Stdout: stdout,
			Stderr: stderr,
			Runner: runnerFunc(func(_ context.Context, pages harvest.PageRange, progress harvest.ProgressFunc) (*harvest.RunSummary, error) {
				progress(harvest.Progress{
					Type: harvest.ProgressPageSkipped,
					Page: 1,
					Err:  harvest.Errorf(harvest.EINVALID, "malformed listing"),
				})
				progress(harvest.Progress{
					Type: harvest.ProgressFailed,
					URL:  "https://example.org/pub/1",
					Err:  harvest.Errorf(harvest.EUNAVAILABLE, "host down"),
				})
				return &harvest.RunSummary{Attempted: 1, Failed: 1}, nil
			}),
		}

		cmd := &main.RunCmd{Source: "undp", Pages: []int{0, 1}}
		err := cmd.Run(deps)

		require.NoError(t, err)
		assert.Contains(t, stderr.String(), "skip page 1")
		assert.Contains(t, stderr.String(), "https://example.org/pub/1")
		assert.Contains(t, stdout.String(), "1 failed")
	})

	t.Run("rejects more than two page values", func(t *testing.T) {
		t.Parallel()

		deps := &main.Dependencies{
			Ctx:    context.Background(),
			Stdout: &bytes.Buffer{},
			Stderr: &bytes.Buffer{},
			Runner: runnerFunc(func(_ context.Context, _ harvest.PageRange, _ harvest.ProgressFunc) (*harvest.RunSummary, error) {
				t.Fatal("runner should not be called")
				return nil, nil
			}),
		}

		cmd := &main.RunCmd{Source: "undp", Pages: []int{0, 1, 2}}
		err := cmd.Run(deps)
		assert.Equal(t, harvest.EINVALID, harvest.ErrorCode(err))
	})

	t.Run("propagates run errors", func(t *testing.T) {
		t.Parallel()

		stderr := &bytes.Buffer{}
		deps := &main.Dependencies{
			Ctx:    context.Background(),
			Stdout: &bytes.Buffer{},
			Stderr: stderr,
			Runner: runnerFunc(func(_ context.Context, _ harvest.PageRange, _ harvest.ProgressFunc) (*harvest.RunSummary, error) {
				return nil, harvest.Errorf(harvest.EINTERNAL, "disk full")
			}),
		}

		cmd := &main.RunCmd{Source: "undp", Pages: []int{0, 1}}
		err := cmd.Run(deps)

		require.Error(t, err)
		assert.Contains(t, stderr.String(), "disk full")
	})
}

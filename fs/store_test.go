package fs_test

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/sdglab/harvest"
	"github.com/sdglab/harvest/fs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func stagingDir(t *testing.T, base string) string {
	t.Helper()
	entries, err := os.ReadDir(base)
	require.NoError(t, err)
	for _, e := range entries {
		if e.IsDir() && strings.HasPrefix(e.Name(), ".harvest-") {
			return filepath.Join(base, e.Name())
		}
	}
	return ""
}

func TestStore_SaveFileStagesContent(t *testing.T) {
	t.Parallel()

	base := t.TempDir()
	store, err := fs.NewStore(base)
	require.NoError(t, err)

	name, err := store.SaveFile(context.Background(), []byte("pdf bytes"), "pdf")
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(name, ".pdf"))
	assert.Len(t, name, len("0123456789abcdef.pdf"))

	// Staged, not yet in the destination folder.
	staging := stagingDir(t, base)
	require.NotEmpty(t, staging)
	_, err = os.Stat(filepath.Join(staging, name))
	require.NoError(t, err)
	_, err = os.Stat(filepath.Join(base, name))
	assert.True(t, os.IsNotExist(err))
}

func TestStore_FileNameIsContentAddressed(t *testing.T) {
	t.Parallel()

	a := fs.FileName([]byte("same content"), "pdf")
	b := fs.FileName([]byte("same content"), "pdf")
	c := fs.FileName([]byte("other content"), "pdf")

	assert.Equal(t, a, b)
	assert.NotEqual(t, a, c)
}

func TestStore_CommitMovesFilesAndWritesExport(t *testing.T) {
	t.Parallel()

	base := t.TempDir()
	store, err := fs.NewStore(base)
	require.NoError(t, err)

	name, err := store.SaveFile(context.Background(), []byte("report body"), "pdf")
	require.NoError(t, err)

	pub := &harvest.Publication{
		Metadata: harvest.Metadata{
			Source: "https://example.org/pub/1",
			Title:  "Annual Report",
			Year:   2024,
			Labels: []int{3, 13},
		},
		Files: []harvest.File{{URL: "https://example.org/files/report.pdf", Name: name}},
	}
	require.NoError(t, store.SavePublication(context.Background(), pub))
	require.NoError(t, store.Commit())

	// File landed in the destination folder, staging is gone.
	_, err = os.Stat(filepath.Join(base, name))
	require.NoError(t, err)
	assert.Empty(t, stagingDir(t, base))

	// Export is one JSON record per publication.
	matches, err := filepath.Glob(filepath.Join(base, "publications-*.jsonl"))
	require.NoError(t, err)
	require.Len(t, matches, 1)

	data, err := os.ReadFile(matches[0])
	require.NoError(t, err)
	var record harvest.Publication
	require.NoError(t, json.Unmarshal(data, &record))
	assert.Equal(t, "Annual Report", record.Title)
	assert.Equal(t, []int{3, 13}, record.Labels)
	require.Len(t, record.Files, 1)
	assert.Equal(t, name, record.Files[0].Name)
	// Content is never exported.
	assert.NotContains(t, string(data), "\"content\"")
}

func TestStore_CommitWithoutPublicationsWritesNoExport(t *testing.T) {
	t.Parallel()

	base := t.TempDir()
	store, err := fs.NewStore(base)
	require.NoError(t, err)
	require.NoError(t, store.Commit())

	matches, err := filepath.Glob(filepath.Join(base, "publications-*.jsonl"))
	require.NoError(t, err)
	assert.Empty(t, matches)
}

func TestStore_AbortDiscardsStagedFiles(t *testing.T) {
	t.Parallel()

	base := t.TempDir()
	store, err := fs.NewStore(base)
	require.NoError(t, err)

	name, err := store.SaveFile(context.Background(), []byte("half-finished"), "pdf")
	require.NoError(t, err)
	require.NoError(t, store.Abort())

	assert.Empty(t, stagingDir(t, base))
	_, err = os.Stat(filepath.Join(base, name))
	assert.True(t, os.IsNotExist(err))
}

func TestNewStore_UnwritableDestination(t *testing.T) {
	t.Parallel()

	base := t.TempDir()
	file := filepath.Join(base, "not-a-dir")
	require.NoError(t, os.WriteFile(file, []byte("x"), 0644))

	_, err := fs.NewStore(filepath.Join(file, "sub"))
	require.Error(t, err)
	assert.Equal(t, harvest.EINTERNAL, harvest.ErrorCode(err))
}

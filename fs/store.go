// Package fs provides file-based storage for harvested publications.
package fs

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/google/uuid"
	"github.com/sdglab/harvest"
)

// Ensure Store implements harvest.Store at compile time.
var _ harvest.Store = (*Store)(nil)

// Store implements harvest.Store with staged-commit semantics. Files and
// the metadata export are written to a hidden staging directory inside the
// destination folder and moved into place on Commit, so an interrupted run
// never leaves partial output next to previous runs' files.
type Store struct {
	dir     string
	staging string

	mu   sync.Mutex
	pubs []*harvest.Publication
}

// NewStore creates a Store writing into dir. It creates the staging
// directory immediately so an unwritable destination fails before any
// scraping happens.
func NewStore(dir string) (*Store, error) {
	staging := filepath.Join(dir, ".harvest-"+uuid.NewString())
	if err := os.MkdirAll(staging, 0755); err != nil {
		return nil, harvest.Errorf(harvest.EINTERNAL, "create staging directory in %s: %v", dir, err)
	}
	return &Store{dir: dir, staging: staging}, nil
}

// FileName derives the stored name for content: a 64-bit content hash plus
// the extension. Identical content maps to the same name, so re-downloads
// of the same document overwrite rather than accumulate.
func FileName(content []byte, ext string) string {
	return fmt.Sprintf("%016x.%s", xxhash.Sum64(content), ext)
}

// SaveFile writes content to the staging directory and returns the name it
// will have in the destination folder after Commit.
func (s *Store) SaveFile(_ context.Context, content []byte, ext string) (string, error) {
	name := FileName(content, ext)
	if err := os.WriteFile(filepath.Join(s.staging, name), content, 0644); err != nil {
		return "", harvest.Errorf(harvest.EINTERNAL, "write %s: %v", name, err)
	}
	return name, nil
}

// SavePublication records a publication for the metadata export written on
// Commit.
func (s *Store) SavePublication(_ context.Context, pub *harvest.Publication) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pubs = append(s.pubs, pub)
	return nil
}

// Commit writes the metadata export and moves everything staged into the
// destination folder.
func (s *Store) Commit() error {
	if err := s.writeExport(); err != nil {
		return err
	}

	entries, err := os.ReadDir(s.staging)
	if err != nil {
		return harvest.Errorf(harvest.EINTERNAL, "read staging directory: %v", err)
	}
	for _, entry := range entries {
		from := filepath.Join(s.staging, entry.Name())
		to := filepath.Join(s.dir, entry.Name())
		if err := os.Rename(from, to); err != nil {
			return harvest.Errorf(harvest.EINTERNAL, "move %s into place: %v", entry.Name(), err)
		}
	}
	return os.Remove(s.staging)
}

// Abort discards everything staged so far.
func (s *Store) Abort() error {
	return os.RemoveAll(s.staging)
}

// writeExport stages the publications-<timestamp>.jsonl metadata file, one
// JSON record per publication in save order.
func (s *Store) writeExport() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.pubs) == 0 {
		return nil
	}

	name := fmt.Sprintf("publications-%s.jsonl", time.Now().UTC().Format("060102-150405"))
	f, err := os.Create(filepath.Join(s.staging, name))
	if err != nil {
		return harvest.Errorf(harvest.EINTERNAL, "create %s: %v", name, err)
	}

	enc := json.NewEncoder(f)
	for _, pub := range s.pubs {
		if err := enc.Encode(pub); err != nil {
			f.Close()
			return harvest.Errorf(harvest.EINTERNAL, "encode record for %s: %v", pub.Source, err)
		}
	}
	return f.Close()
}

package harvest

import "context"

// Store persists harvested output with staged-commit semantics. Files are
// written to a staging area; Commit publishes them to the destination
// together with the metadata records; Abort discards everything staged.
// A cancelled run must never commit partial output.
type Store interface {
	// SaveFile stages content under a deterministic name derived from the
	// content hash and the extension. Saving identical content twice is
	// idempotent and returns the same name.
	SaveFile(ctx context.Context, content []byte, ext string) (name string, err error)

	// SavePublication records the metadata for one saved publication.
	// Records become a JSON-lines file in the destination on Commit.
	SavePublication(ctx context.Context, pub *Publication) error

	// Commit publishes staged files and metadata records to the destination.
	Commit() error

	// Abort discards staged output. Nothing reaches the destination.
	Abort() error
}

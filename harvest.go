// Package harvest provides a CLI tool for collecting SDG-labelled
// publications from a fixed set of web sources. It walks a source's
// paginated publication index, parses each publication page into metadata
// and file links, downloads the files with bounded concurrency, and writes
// everything to a destination folder, optionally recording the run in a
// SQLite catalog.
//
// This package contains the domain types and interfaces. Implementations
// live in subdirectories named after their primary dependency
// (e.g., goquery/, sqlite/, fs/).
package harvest

package main

import (
	"context"
	"io"
	"log/slog"

	"github.com/sdglab/harvest"
)

// Runner runs the harvest pipeline for a resolved source.
type Runner interface {
	Run(ctx context.Context, pages harvest.PageRange, progress harvest.ProgressFunc) (*harvest.RunSummary, error)
}

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx      context.Context
	Stdout   io.Writer
	Stderr   io.Writer
	Logger   *slog.Logger
	Registry harvest.Registry
	Runner   Runner
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	List ListCmd `cmd:"" help:"List available sources"`
	Run  RunCmd  `cmd:"" help:"Harvest publications from a source"`
}

// ListCmd is the "list" subcommand.
type ListCmd struct{}

// RunCmd is the "run" subcommand.
type RunCmd struct {
	Source      string  `arg:"" help:"Source identifier (see 'harvest list')"`
	Pages       []int   `short:"p" default:"0,1" help:"Inclusive listing-page range as START,END (a single value harvests one page)"`
	Folder      string  `short:"f" env:"HARVEST_FOLDER" default:"." help:"Destination folder for downloaded files and the metadata export"`
	Concurrency int     `short:"c" default:"4" help:"Concurrent publication limit"`
	RPS         float64 `default:"0.5" help:"Outbound requests per second"`
	DB          string  `env:"HARVEST_DB" help:"SQLite catalog path (run is not catalogued when empty)"`
	Verbose     bool    `short:"v" help:"Enable debug logging"`
}

// pageRange converts the pages flag into a PageRange.
func (c *RunCmd) pageRange() (harvest.PageRange, error) {
	switch len(c.Pages) {
	case 1:
		return harvest.PageRange{Start: c.Pages[0], End: c.Pages[0]}, nil
	case 2:
		return harvest.PageRange{Start: c.Pages[0], End: c.Pages[1]}, nil
	default:
		return harvest.PageRange{}, harvest.Errorf(harvest.EINVALID, "pages takes one or two values, got %d", len(c.Pages))
	}
}

// Command harvest collects SDG-labelled publications from supported
// sources: listing pages are walked, publication pages parsed, and files
// or article text stored alongside a JSONL metadata export.
package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/alecthomas/kong"
	"github.com/sdglab/harvest"
	"github.com/sdglab/harvest/fs"
	"github.com/sdglab/harvest/goquery"
	"github.com/sdglab/harvest/htmltomarkdown"
	harvesthttp "github.com/sdglab/harvest/http"
	"github.com/sdglab/harvest/pipeline"
	harvestslog "github.com/sdglab/harvest/slog"
	"github.com/sdglab/harvest/sqlite"
	"github.com/sdglab/harvest/trafilatura"
)

func main() {
	ctx := context.Background()

	m := NewMain()
	defer m.Close()

	if err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// Main represents the program.
type Main struct {
	// SQLite catalog, opened only when the run command is given a DB path.
	DB *sqlite.DB
}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{}
}

// Close gracefully stops the program.
func (m *Main) Close() error {
	if m.DB != nil {
		return m.DB.Close()
	}
	return nil
}

// Run executes the CLI with the given arguments.
func (m *Main) Run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	deps := &Dependencies{
		Ctx:    ctx,
		Stdout: stdout,
		Stderr: stderr,
	}

	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("harvest"),
		kong.Description("Collect SDG-labelled publications from supported sources."),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}), // Don't exit on help
		kong.Bind(deps),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	// Handle help flags using Kong
	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no command specified. Run 'harvest --help' to see available commands")
	}

	cmd := args[0]
	if cmd == "help" || cmd == "--help" || cmd == "-h" {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	kongCtx, err := parser.Parse(args)
	if err != nil {
		return err
	}

	level := slog.LevelInfo
	if cli.Run.Verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))
	deps.Logger = logger

	fetcher := harvestslog.NewLoggingFetcher(harvesthttp.NewClient(
		harvesthttp.WithMaxConnections(cli.Run.Concurrency),
		harvesthttp.WithRateLimit(cli.Run.RPS),
	), logger)
	registry := harvestslog.NewLoggingRegistry(newRegistry(fetcher), logger)
	deps.Registry = registry

	if cmd == "run" {
		scraper, err := registry.Resolve(cli.Run.Source)
		if err != nil {
			fmt.Fprintln(stderr, "Hint: Run 'harvest list' to see available sources")
			return err
		}

		store, err := fs.NewStore(cli.Run.Folder)
		if err != nil {
			fmt.Fprintln(stderr, "Hint: The destination folder must exist and be writable")
			return err
		}

		var catalog harvest.CatalogService
		if cli.Run.DB != "" {
			m.DB = sqlite.NewDB(cli.Run.DB)
			if err := m.DB.Open(); err != nil {
				return fmt.Errorf("failed to open catalog at %q: %w", cli.Run.DB, err)
			}
			catalog = sqlite.NewCatalogService(m.DB)
		}

		deps.Runner = &pipeline.Harvester{
			Scraper:     scraper,
			Fetcher:     fetcher,
			Store:       store,
			Catalog:     catalog,
			Logger:      logger,
			Concurrency: cli.Run.Concurrency,
		}
	}

	return kongCtx.Run(deps)
}

// newRegistry wires up scrapers for all supported sources.
func newRegistry(fetcher harvest.Fetcher) *goquery.Registry {
	return goquery.NewRegistry(
		goquery.NewUNDP(fetcher),
		goquery.NewUNDESA(fetcher),
		goquery.NewSDGFund(fetcher),
		goquery.NewIOM(fetcher, trafilatura.NewExtractor(), htmltomarkdown.NewConverter()),
	)
}

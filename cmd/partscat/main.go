package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/fwojciec/partscat"
	"github.com/fwojciec/partscat/fs"
	"github.com/fwojciec/partscat/goquery"
	partscathttp "github.com/fwojciec/partscat/http"
	"github.com/fwojciec/partscat/mongo"
	"github.com/fwojciec/partscat/playwright"
	"github.com/fwojciec/partscat/rod"
	"github.com/fwojciec/partscat/scrape"
	partscatslog "github.com/fwojciec/partscat/slog"
	"github.com/fwojciec/partscat/sqlite"
	"github.com/fwojciec/partscat/yaml"
)

func main() {
	ctx := context.Background()

	m := NewMain()

	if err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// Main represents the program.
type Main struct {
	// Database path. Set before calling Run().
	DBPath string

	// SQLite database used when no Mongo URI is given.
	DB *sqlite.DB

	// Catalog store for end-to-end testing.
	CatalogService partscat.CatalogService

	closers []func() error
}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{
		DBPath: defaultDBPath(),
	}
}

// Close gracefully stops the program.
func (m *Main) Close() error {
	var firstErr error
	for i := len(m.closers) - 1; i >= 0; i-- {
		if err := m.closers[i](); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	m.closers = nil
	return firstErr
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
		kong.Name("partscat"),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}), // Don't exit on help
		kong.Bind(deps),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no command specified. Run 'partscat --help' to see available commands")
	}

	if cmd := args[0]; cmd == "help" || cmd == "--help" || cmd == "-h" {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	kongCtx, err := parser.Parse(args)
	if err != nil {
		return err
	}
	defer m.Close()

	deps.Logger = newLogger(stderr, cli.Scrape.Verbose || cli.Upload.Verbose)

	// Command() names the selected command plus its positionals
	// (e.g. "query <statement>"); the first word is the command.
	cmd := strings.Fields(kongCtx.Command())[0]
	switch cmd {
	case "scrape":
		if err := m.wireScraper(cli, deps); err != nil {
			return err
		}
	case "upload":
		if err := m.wireCatalogStore(ctx, cli.Upload.MongoURI, cli.Upload.MongoDB, deps); err != nil {
			return err
		}
	case "query":
		if err := m.wireCatalogStore(ctx, cli.Query.MongoURI, cli.Query.MongoDB, deps); err != nil {
			return err
		}
	}

	return kongCtx.Run(deps)
}

// wireScraper assembles the browser engine, proxy pool, extraction
// stack, and writer for the scrape command.
func (m *Main) wireScraper(cli *CLI, deps *Dependencies) error {
	engine, err := partscat.ParseEngine(cli.Scrape.Driver)
	if err != nil {
		return err
	}

	headers, err := yaml.LoadHeaderSource(cli.Scrape.Headers, cli.Scrape.UserAgents)
	if err != nil {
		return err
	}

	targets, err := yaml.LoadTargets(cli.Scrape.Brands, cli.Scrape.BaseURL)
	if err != nil {
		return err
	}
	deps.Targets = targets

	var proxies partscat.ProxyService
	if !cli.Scrape.NoProxy {
		proxies = partscathttp.NewProxyService(deps.Logger)
	}

	manager, err := newSessionManager(engine, headers, proxies, !cli.Scrape.Headful, deps.Logger)
	if err != nil {
		return err
	}
	m.closers = append(m.closers, manager.Close)

	sessions := partscat.SessionManager(manager)
	if cli.Scrape.Verbose {
		sessions = partscatslog.NewLoggingSessionManager(manager, deps.Logger)
	}

	deps.Scraper = &scrape.Scraper{
		Sessions:          sessions,
		Classifier:        goquery.NewClassifier(),
		Extractor:         goquery.NewPartsExtractor(),
		Details:           goquery.NewDetailPageParser(),
		Writer:            fs.NewWriter(cli.Scrape.DataDir),
		MaxDetails:        cli.Scrape.MaxDetails,
		MaxPages:          cli.Scrape.MaxPages,
		RequestsPerSecond: cli.Scrape.Rps,
		Headful:           cli.Scrape.Headful,
		Logger:            deps.Logger,
	}
	return nil
}

// newSessionManager picks the implementation for the requested engine.
func newSessionManager(engine partscat.Engine, headers *partscat.HeaderSource, proxies partscat.ProxyService, headless bool, logger *slog.Logger) (partscat.SessionManager, error) {
	if engine == partscat.EngineFirefox {
		opts := []playwright.ManagerOption{
			playwright.WithHeadless(headless),
			playwright.WithLogger(logger),
		}
		if proxies != nil {
			opts = append(opts, playwright.WithProxies(proxies))
		}
		return playwright.NewManager(engine, headers, opts...)
	}

	opts := []rod.ManagerOption{
		rod.WithHeadless(headless),
		rod.WithLogger(logger),
	}
	if proxies != nil {
		opts = append(opts, rod.WithProxies(proxies))
	}
	return rod.NewManager(engine, headers, opts...)
}

// wireCatalogStore opens SQLite by default, or MongoDB when a URI is
// given.
func (m *Main) wireCatalogStore(ctx context.Context, mongoURI, mongoDB string, deps *Dependencies) error {
	if mongoURI != "" {
		client, coll, err := mongo.Connect(ctx, mongoURI, mongoDB, "catalogs")
		if err != nil {
			return err
		}
		m.closers = append(m.closers, func() error { return client.Disconnect(ctx) })
		m.CatalogService = mongo.NewCatalogService(coll)
	} else {
		m.DB = sqlite.NewDB(m.DBPath)
		if err := m.DB.Open(); err != nil {
			fmt.Fprintf(deps.Stderr, "Hint: Set PARTSCAT_DB to use a different database path\n")
			return fmt.Errorf("failed to open database at %q: %w", m.DBPath, err)
		}
		m.closers = append(m.closers, m.DB.Close)
		m.CatalogService = sqlite.NewCatalogService(m.DB)
	}

	deps.Catalogs = partscatslog.NewLoggingCatalogService(m.CatalogService, deps.Logger)
	return nil
}

// newLogger builds the run's logger; verbose enables debug records.
func newLogger(w io.Writer, verbose bool) *slog.Logger {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

func defaultDBPath() string {
	if path := os.Getenv("PARTSCAT_DB"); path != "" {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "partscat.db"
	}
	dir := filepath.Join(home, ".partscat")
	_ = os.MkdirAll(dir, 0755)
	return filepath.Join(dir, "partscat.db")
}

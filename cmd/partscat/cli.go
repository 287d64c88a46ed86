package main

import (
	"context"
	"io"
	"log/slog"

	"github.com/fwojciec/partscat"
	"github.com/fwojciec/partscat/scrape"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx      context.Context
	Stdout   io.Writer
	Stderr   io.Writer
	Logger   *slog.Logger
	Catalogs partscat.CatalogService
	Scraper  *scrape.Scraper
	Targets  []partscat.Target
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	Scrape  ScrapeCmd  `cmd:"" help:"Scrape part catalogs for the configured brands"`
	Upload  UploadCmd  `cmd:"" help:"Upload saved catalog files to the store"`
	Flatten FlattenCmd `cmd:"" help:"Flatten nested part details in saved catalog files"`
	Query   QueryCmd   `cmd:"" help:"Run a read-only SELECT against the store"`
}

// ScrapeCmd is the "scrape" subcommand.
type ScrapeCmd struct {
	Driver     string  `default:"undetected" help:"Browser engine: undetected, chrome, or firefox"`
	Headful    bool    `help:"Run the browser with a visible window"`
	Verbose    bool    `short:"v" help:"Enable debug logging"`
	NoProxy    bool    `help:"Disable proxy rotation"`
	DataDir    string  `default:"data" help:"Directory for catalog JSON files"`
	MaxDetails int     `default:"3" help:"Parts per catalog to enrich with their own page"`
	MaxPages   int     `default:"100" help:"Pagination cap per catalog"`
	Rps        float64 `default:"1" help:"Page loads per second"`
	Headers    string  `default:"config/headers.yaml" help:"Header template file"`
	UserAgents string  `default:"config/user_agents.yaml" help:"User-agent pool file"`
	Brands     string  `default:"config/brands.json" help:"Brand/category target map"`
	BaseURL    string  `default:"https://www.partselect.com" help:"Site base URL"`
}

// UploadCmd is the "upload" subcommand.
type UploadCmd struct {
	DataDir  string `default:"data" help:"Directory of catalog JSON files"`
	MongoURI string `help:"Upload to MongoDB at this URI instead of SQLite"`
	MongoDB  string `default:"partscat" help:"MongoDB database name"`
	Verbose  bool   `short:"v" help:"Enable debug logging"`
}

// FlattenCmd is the "flatten" subcommand.
type FlattenCmd struct {
	DataDir string `default:"data" help:"Directory of catalog JSON files"`
}

// QueryCmd is the "query" subcommand.
type QueryCmd struct {
	Statement string `arg:"" help:"SELECT statement to run"`
	MongoURI  string `help:"Query MongoDB at this URI instead of SQLite"`
	MongoDB   string `default:"partscat" help:"MongoDB database name"`
}

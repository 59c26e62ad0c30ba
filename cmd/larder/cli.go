package main

import (
	"context"
	"io"
	"log/slog"
	"time"

	"github.com/fwojciec/larder"
	"github.com/fwojciec/larder/crawl"
	"github.com/fwojciec/larder/sqlite"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx       context.Context
	Stdout    io.Writer
	Stderr    io.Writer
	Logger    *slog.Logger
	DB        *sqlite.DB
	Registry  larder.SiteRegistry
	Harvester *crawl.Harvester
	Recipes   larder.RecipeService
	Tagger    larder.Tagger
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	Verbose     bool          `short:"v" help:"Log fetches and extractions to stderr"`
	Timeout     time.Duration `default:"10s" help:"Per-request HTTP timeout"`
	RPS         float64       `name:"rps" default:"1" help:"Requests per second per domain (0 disables limiting)"`
	Concurrency int           `short:"c" default:"4" help:"Concurrent fetch limit"`
	MaxPages    int           `default:"5" help:"Maximum index pages per traversal"`
	Delay       time.Duration `default:"500ms" help:"Pause between index pages (0 disables)"`
	Retries     int           `default:"0" help:"Retries for failed fetches"`

	Discover DiscoverCmd `cmd:"" help:"Discover recipe URLs from site index pages"`
	Scrape   ScrapeCmd   `cmd:"" help:"Extract a single recipe and print it as JSON"`
	Ingest   IngestCmd   `cmd:"" help:"Discover, extract and store recipes"`
	Tag      TagCmd      `cmd:"" help:"Tag stored recipes with Gemini (requires GEMINI_API_KEY)"`
	List     ListCmd     `cmd:"" help:"List stored recipes"`
	Delete   DeleteCmd   `cmd:"" help:"Delete a stored recipe"`
}

// DiscoverCmd is the "discover" subcommand.
type DiscoverCmd struct {
	Site  []string `short:"s" help:"Site to crawl (repeatable, default all)"`
	Index []string `short:"i" help:"Override index URL as site=url (repeatable)"`
}

// ScrapeCmd is the "scrape" subcommand.
type ScrapeCmd struct {
	URL string `arg:"" help:"Recipe page URL"`
}

// IngestCmd is the "ingest" subcommand.
type IngestCmd struct {
	Site   []string `short:"s" help:"Site to crawl (repeatable, default all)"`
	Index  []string `short:"i" help:"Override index URL as site=url (repeatable)"`
	Tag    bool     `help:"Tag recipes with Gemini (requires GEMINI_API_KEY)"`
	DryRun bool     `short:"n" help:"Show new URLs without extracting"`
}

// TagCmd is the "tag" subcommand.
type TagCmd struct {
	Status string `default:"pending" enum:"pending,failed" help:"Tagging status of recipes to tag (pending, failed)"`
	Limit  int    `default:"0" help:"Maximum recipes to tag (0 for all)"`
}

// ListCmd is the "list" subcommand.
type ListCmd struct {
	Host  string `help:"Only show recipes from this host"`
	Limit int    `default:"50" help:"Maximum recipes to show (0 for all)"`
}

// DeleteCmd is the "delete" subcommand.
type DeleteCmd struct {
	ID    string `arg:"" help:"Recipe ID"`
	Force bool   `help:"Confirm deletion"`
}

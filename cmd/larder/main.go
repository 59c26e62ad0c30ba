package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"time"

	"github.com/alecthomas/kong"
	"github.com/fwojciec/larder"
	"github.com/fwojciec/larder/crawl"
	"github.com/fwojciec/larder/gemini"
	"github.com/fwojciec/larder/goquery"
	larderhttp "github.com/fwojciec/larder/http"
	larderslog "github.com/fwojciec/larder/slog"
	"github.com/fwojciec/larder/sqlite"
	"github.com/fwojciec/larder/trafilatura"
	"google.golang.org/genai"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

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

	// SQLite database used by SQLite service implementations.
	DB *sqlite.DB

	// Fetcher overrides the HTTP fetcher, for end-to-end testing.
	Fetcher larder.Fetcher
}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{
		DBPath: defaultDBPath(),
	}
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
		kong.Name("larder"),
		kong.Description("Crawl recipe sites and extract structured recipes."),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}), // Don't exit on help
		kong.Bind(deps),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no command specified. Run 'larder --help' to see available commands")
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
	cmd, _, _ = strings.Cut(kongCtx.Command(), " ")

	level := slog.LevelWarn
	if cli.Verbose {
		level = slog.LevelInfo
	}
	logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))

	// Crawl and extraction stack, shared by every command that touches the network.
	var fetcher larder.Fetcher = m.Fetcher
	if fetcher == nil {
		hf := larderhttp.NewFetcher(larderhttp.WithTimeout(cli.Timeout))
		defer hf.Close()
		fetcher = hf
	}
	registry := goquery.NewDefaultRegistry(trafilatura.NewMetadataExtractor())
	if cli.Verbose {
		fetcher = larderslog.NewLoggingFetcher(fetcher, logger)
		registry.Decorate(func(next larder.RecipeExtractor) larder.RecipeExtractor {
			return larderslog.NewLoggingExtractor(next, logger)
		})
	}
	deps.Logger = logger
	deps.Registry = registry
	delay := cli.Delay
	if delay <= 0 {
		delay = -1
	}
	deps.Harvester = &crawl.Harvester{
		Registry:    registry,
		Fetcher:     fetcher,
		RateLimiter: crawl.NewDomainLimiter(cli.RPS),
		Logger:      logger,
		Concurrency: cli.Concurrency,
		MaxPages:    cli.MaxPages,
		Delay:       delay,
		RetryDelays: retryDelays(cli.Retries),
	}

	if needsDB(cmd) {
		m.DB = sqlite.NewDB(m.DBPath)
		if err := m.DB.Open(); err != nil {
			fmt.Fprintf(stderr, "Hint: Set LARDER_DB to use a different database path\n")
			return fmt.Errorf("failed to open database at %q: %w", m.DBPath, err)
		}
		defer m.Close()

		deps.DB = m.DB
		deps.Recipes = larderslog.NewLoggingRecipeService(sqlite.NewRecipeService(m.DB), logger)
	}

	if cmd == "tag" || (cmd == "ingest" && cli.Ingest.Tag && !cli.Ingest.DryRun) {
		apiKey := os.Getenv("GEMINI_API_KEY")
		if apiKey == "" {
			fmt.Fprintln(stderr, "GEMINI_API_KEY environment variable not set. Get an API key at https://aistudio.google.com/apikey")
			return fmt.Errorf("GEMINI_API_KEY not set. Get a key at https://aistudio.google.com/apikey")
		}

		client, err := genai.NewClient(ctx, &genai.ClientConfig{
			APIKey:  apiKey,
			Backend: genai.BackendGeminiAPI,
		})
		if err != nil {
			fmt.Fprintln(stderr, "Hint: Check your GEMINI_API_KEY is valid")
			return fmt.Errorf("failed to connect to Gemini API: %w", err)
		}

		deps.Tagger = larderslog.NewLoggingTagger(gemini.NewTagger(client), logger)
	}

	return kongCtx.Run(deps)
}

// needsDB reports whether the command touches the recipe store.
func needsDB(cmd string) bool {
	switch cmd {
	case "ingest", "tag", "list", "delete":
		return true
	}
	return false
}

// retryDelays returns an exponential backoff schedule starting at one second.
func retryDelays(n int) []time.Duration {
	if n <= 0 {
		return nil
	}
	delays := make([]time.Duration, n)
	d := time.Second
	for i := range delays {
		delays[i] = d
		d *= 2
	}
	return delays
}

func defaultDBPath() string {
	if path := os.Getenv("LARDER_DB"); path != "" {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "larder.db"
	}
	dir := filepath.Join(home, ".larder")
	_ = os.MkdirAll(dir, 0755)
	return filepath.Join(dir, "larder.db")
}

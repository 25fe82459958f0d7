package cmd

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"

	"github.com/alecthomas/kong"
	"github.com/lepinkainen/botd/cmd/scrape"
	"github.com/lepinkainen/botd/internal/cache"
	"github.com/lepinkainen/botd/internal/config"
	"github.com/lepinkainen/botd/internal/tvmaze"
	"github.com/lepinkainen/humanlog"
	"github.com/spf13/viper"
)

var (
	runScrape  = scrape.Run
	runCatalog = scrape.RunCatalog
)

// CLI represents the complete command structure for the botd application
type CLI struct {
	// Global flags
	Verbose      bool `short:"v" help:"Enable debug logging"`
	KeepExisting bool `help:"Leave existing output files untouched instead of overwriting them"`

	// Datasette flags
	Datasette   bool   `help:"Also export records to Datasette (SQLite by default)"`
	DatasetteDB string `help:"Path to SQLite database file (defaults to datasette.dbfile, ./botd.db)"`

	// Cache flags
	CacheDBFile string `help:"Path to cache SQLite database file (defaults to cache.dbfile, ./cache.db)"`
	CacheTTL    string `help:"Cache time-to-live duration (e.g., 24h)"`

	Scrape  ScrapeCmd  `cmd:"" default:"withargs" help:"Scrape Burger of the Day records and match them to TVMaze episodes"`
	Catalog CatalogCmd `cmd:"" help:"Fetch the TVMaze show and episode list only"`
	Cache   CacheCmd   `cmd:"" help:"Manage the response cache"`
}

// ScrapeCmd represents the scrape command
type ScrapeCmd struct {
	URL                  string `help:"Source page to scrape"`
	Output               string `short:"o" help:"Output JSON path (defaults to data/burger-of-the-day.json)"`
	CSVOutput            string `name:"csv-output" help:"Output CSV path (defaults to data/burger-of-the-day.csv)"`
	TVMazeShowQuery      string `name:"tvmaze-show-query" help:"Show name to search on TVMaze"`
	TVMazeOutput         string `name:"tvmaze-output" help:"Output JSON path for TVMaze show and episode data"`
	IncludeExtraSections bool   `name:"include-extra-sections" help:"Include Shorts and Other TV Shows sections from the source page"`
	SkipTVMaze           bool   `name:"skip-tvmaze" help:"Skip TVMaze enrichment"`
	Simple               bool   `help:"Treat the first bold text in an item cell as the burger name"`
	Browser              bool   `help:"Render the page in headless Chrome instead of a plain HTTP request"`
	Review               bool   `help:"List fuzzy and missing matches in a table after the summary"`
	Denylist             string `type:"path" help:"YAML file replacing the built-in list of excluded item texts"`
}

// CatalogCmd represents the catalog command
type CatalogCmd struct {
	TVMazeShowQuery string `name:"tvmaze-show-query" help:"Show name to search on TVMaze"`
	Output          string `short:"o" help:"Output JSON path (defaults to data/tvmaze-episodes.json)"`
}

// CacheCmd represents the cache command and its subcommands
type CacheCmd struct {
	Invalidate cache.InvalidateCacheCmd `cmd:"" help:"Delete every entry for a cache source (tvmaze, wiki)"`
}

// Execute runs the Kong-based CLI
func Execute() {
	initLogging(false)
	if err := initConfig(); err != nil {
		slog.Error("Fatal error config file", "error", err)
		os.Exit(1)
	}

	var cli CLI
	kctx := kong.Parse(&cli,
		kong.Name("botd"),
		kong.Description("Scrape the Bob's Burgers Burger of the Day list and match it against TVMaze."),
		kong.UsageOnError(),
	)

	if cli.Verbose {
		initLogging(true)
	}
	updateGlobalConfig(&cli)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	kctx.BindTo(ctx, (*context.Context)(nil))

	if err := kctx.Run(); err != nil {
		stop()
		slog.Error("Command failed", "error", err)
		os.Exit(1)
	}
}

func initConfig() error {
	config.SetDefaults()

	viper.SetDefault("cache.dbfile", "./cache.db")
	viper.SetDefault("cache.ttl", "24h")
	viper.SetDefault("tvmaze.base_url", tvmaze.DefaultBaseURL)

	// Enable environment variable support
	viper.AutomaticEnv()

	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return err
		}
		slog.Debug("Config file not found, using defaults")
	}

	config.InitConfig()
	return nil
}

func updateGlobalConfig(cli *CLI) {
	if cli.KeepExisting {
		config.SetOverwriteFiles(false)
	}
	if cli.Datasette {
		viper.Set("datasette.enabled", true)
	}
	if cli.DatasetteDB != "" {
		viper.Set("datasette.dbfile", cli.DatasetteDB)
	}
	if cli.CacheDBFile != "" {
		viper.Set("cache.dbfile", cli.CacheDBFile)
	}
	if cli.CacheTTL != "" {
		viper.Set("cache.ttl", cli.CacheTTL)
	}
}

// Run methods for each command

func (s *ScrapeCmd) Run(ctx context.Context) error {
	return runScrape(ctx, scrape.Params{
		URL:           s.URL,
		Output:        s.Output,
		CSVOutput:     s.CSVOutput,
		ShowQuery:     s.TVMazeShowQuery,
		TVMazeOutput:  s.TVMazeOutput,
		Denylist:      s.Denylist,
		IncludeExtras: s.IncludeExtraSections,
		SkipTVMaze:    s.SkipTVMaze,
		Simple:        s.Simple,
		Browser:       s.Browser,
		Review:        s.Review,
	})
}

func (c *CatalogCmd) Run(ctx context.Context) error {
	if c.TVMazeShowQuery == "" && config.ShowQuery == "" {
		return fmt.Errorf("show query is required (provide via --tvmaze-show-query or tvmaze.show_query in config)")
	}
	return runCatalog(ctx, scrape.CatalogParams{
		ShowQuery: c.TVMazeShowQuery,
		Output:    c.Output,
	})
}

func initLogging(verbose bool) {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}

	// Create a human-readable handler for logging
	handler := humanlog.NewHandler(os.Stdout, &humanlog.Options{
		Level: level,
	})

	// Set the default logger
	slog.SetDefault(slog.New(handler))
}

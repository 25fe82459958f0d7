package cmd

import (
	"context"
	"os"
	"testing"

	"github.com/alecthomas/kong"
	"github.com/lepinkainen/botd/cmd/scrape"
	"github.com/lepinkainen/botd/internal/cache"
	"github.com/lepinkainen/botd/internal/config"
	"github.com/lepinkainen/botd/internal/testutil"
	"github.com/lepinkainen/botd/internal/tvmaze"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func resetCmdState(t *testing.T) {
	testutil.ResetConfig(t)

	origScrape, origCatalog := runScrape, runCatalog
	t.Cleanup(func() {
		runScrape, runCatalog = origScrape, origCatalog
	})
}

func parseCLI(t *testing.T, args ...string) (*CLI, *kong.Context) {
	t.Helper()

	originalArgs := os.Args
	os.Args = append([]string{"botd"}, args...)
	t.Cleanup(func() { os.Args = originalArgs })

	cli := &CLI{}
	ctx := kong.Parse(cli,
		kong.Name("botd"),
		kong.Description("Scrape the Bob's Burgers Burger of the Day list and match it against TVMaze."),
		kong.UsageOnError(),
		kong.Exit(func(code int) {
			t.Fatalf("unexpected Kong exit %d", code)
		}),
	)
	ctx.BindTo(context.Background(), (*context.Context)(nil))

	return cli, ctx
}

func TestUpdateGlobalConfig(t *testing.T) {
	resetCmdState(t)

	config.OverwriteFiles = true
	cli := &CLI{
		KeepExisting: true,
		Datasette:    true,
		DatasetteDB:  "/tmp/botd.db",
		CacheDBFile:  "/tmp/cache.db",
		CacheTTL:     "12h",
	}

	updateGlobalConfig(cli)

	assert.False(t, config.OverwriteFiles)
	assert.True(t, viper.GetBool("datasette.enabled"))
	assert.Equal(t, "/tmp/botd.db", viper.GetString("datasette.dbfile"))
	assert.Equal(t, "/tmp/cache.db", viper.GetString("cache.dbfile"))
	assert.Equal(t, "12h", viper.GetString("cache.ttl"))
}

func TestUpdateGlobalConfigKeepsConfigValues(t *testing.T) {
	resetCmdState(t)

	viper.Set("datasette.enabled", true)
	viper.Set("datasette.dbfile", "from-config.db")
	viper.Set("cache.ttl", "48h")

	config.OverwriteFiles = true
	updateGlobalConfig(&CLI{})

	assert.True(t, config.OverwriteFiles)
	assert.True(t, viper.GetBool("datasette.enabled"))
	assert.Equal(t, "from-config.db", viper.GetString("datasette.dbfile"))
	assert.Equal(t, "48h", viper.GetString("cache.ttl"))
}

func TestScrapeIsDefaultCommand(t *testing.T) {
	resetCmdState(t)

	var got scrape.Params
	runScrape = func(_ context.Context, p scrape.Params) error {
		got = p
		return nil
	}

	_, ctx := parseCLI(t)
	require.NoError(t, ctx.Run())
	assert.Equal(t, scrape.Params{}, got)
}

func TestScrapeCommandParsing(t *testing.T) {
	resetCmdState(t)

	var got scrape.Params
	runScrape = func(_ context.Context, p scrape.Params) error {
		got = p
		return nil
	}

	cli, ctx := parseCLI(t, "--verbose", "scrape",
		"--url", "https://example.test/wiki/Burger_of_the_Day",
		"-o", "out/botd.json",
		"--csv-output", "out/botd.csv",
		"--tvmaze-show-query", "Bobs Burgers",
		"--tvmaze-output", "out/tvmaze.json",
		"--include-extra-sections",
		"--skip-tvmaze",
		"--simple",
		"--browser",
		"--review",
	)
	assert.True(t, cli.Verbose)
	require.NoError(t, ctx.Run())

	assert.Equal(t, scrape.Params{
		URL:           "https://example.test/wiki/Burger_of_the_Day",
		Output:        "out/botd.json",
		CSVOutput:     "out/botd.csv",
		ShowQuery:     "Bobs Burgers",
		TVMazeOutput:  "out/tvmaze.json",
		IncludeExtras: true,
		SkipTVMaze:    true,
		Simple:        true,
		Browser:       true,
		Review:        true,
	}, got)
}

func TestCatalogCommand(t *testing.T) {
	resetCmdState(t)
	config.ShowQuery = config.DefaultShowQuery

	var got scrape.CatalogParams
	runCatalog = func(_ context.Context, p scrape.CatalogParams) error {
		got = p
		return nil
	}

	_, ctx := parseCLI(t, "catalog", "-o", "episodes.json")
	require.NoError(t, ctx.Run())
	assert.Equal(t, scrape.CatalogParams{Output: "episodes.json"}, got)
}

func TestCatalogCommandRequiresQuery(t *testing.T) {
	resetCmdState(t)
	config.ShowQuery = ""

	runCatalog = func(context.Context, scrape.CatalogParams) error {
		t.Fatal("catalog should not run")
		return nil
	}

	_, ctx := parseCLI(t, "catalog")
	err := ctx.Run()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "show query is required")
}

func TestCacheInvalidateCommand(t *testing.T) {
	resetCmdState(t)
	env := testutil.NewTestEnv(t)
	testutil.SetupTestCache(t, env)
	require.NoError(t, cache.ResetGlobalCache())
	t.Cleanup(func() { _ = cache.ResetGlobalCache() })

	db, err := cache.GetGlobalCache()
	require.NoError(t, err)
	require.NoError(t, db.Set(cache.WikiTable, "page", `"<html></html>"`))

	cli, ctx := parseCLI(t, "cache", "invalidate", "wiki")
	assert.Equal(t, "wiki", cli.Cache.Invalidate.Source)
	require.NoError(t, ctx.Run())
	assert.False(t, db.CacheExists(cache.WikiTable, "page"))

	_, ctx = parseCLI(t, "cache", "invalidate", "imdb")
	err = ctx.Run()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "valid sources are: tvmaze, wiki")
}

func TestInitConfigWithoutConfigFile(t *testing.T) {
	resetCmdState(t)
	env := testutil.NewTestEnv(t)
	env.Chdir(".")

	require.NoError(t, initConfig())

	assert.Equal(t, config.DefaultSourceURL, config.SourceURL)
	assert.Equal(t, config.DefaultShowQuery, config.ShowQuery)
	assert.True(t, config.OverwriteFiles)
	assert.Equal(t, "24h", viper.GetString("cache.ttl"))
	assert.Equal(t, tvmaze.DefaultBaseURL, config.TVMazeBaseURL)
	assert.False(t, viper.GetBool("datasette.enabled"))
	assert.False(t, env.FileExists("config.yaml"))
}

func TestInitConfigReadsConfigFile(t *testing.T) {
	resetCmdState(t)
	env := testutil.NewTestEnv(t)
	env.WriteFileString("config.yaml", "tvmaze:\n  show_query: Bob's Burgers (2011)\nsource:\n  fetcher: browser\n")
	env.Chdir(".")

	require.NoError(t, initConfig())

	assert.Equal(t, "Bob's Burgers (2011)", config.ShowQuery)
	assert.True(t, config.UseBrowser())
}

func TestInitConfigRejectsBrokenFile(t *testing.T) {
	resetCmdState(t)
	env := testutil.NewTestEnv(t)
	env.WriteFileString("config.yaml", "tvmaze: [unclosed\n")
	env.Chdir(".")

	assert.Error(t, initConfig())
}

func TestInitLogging(t *testing.T) {
	require.NotPanics(t, func() {
		initLogging(true)
		initLogging(false)
	})
}

// Package config exposes the resolved configuration as package variables.
package config

import (
	"github.com/lepinkainen/botd/internal/wiki"
	"github.com/spf13/viper"
)

// Defaults for the Bob's Burgers wiki and TVMaze. The TVMaze API root is
// left to the tvmaze client unless tvmaze.base_url is set.
const (
	DefaultSourceURL    = wiki.DefaultSourceURL
	DefaultOrigin       = wiki.DefaultOrigin
	DefaultTableClass   = wiki.DefaultTableClass
	DefaultShowQuery    = "Bob's Burgers"
	DefaultJSONOutput   = "data/burger-of-the-day.json"
	DefaultCSVOutput    = "data/burger-of-the-day.csv"
	DefaultTVMazeOutput = "data/tvmaze-episodes.json"
	DefaultDatasetteDB  = "./botd.db"

	FetcherHTTP    = "http"
	FetcherBrowser = "browser"
)

// Global configuration variables
var (
	// OverwriteFiles controls whether existing output files are replaced
	OverwriteFiles bool
	// SourceURL is the wiki page to scrape
	SourceURL string
	// Origin resolves site-relative episode links
	Origin string
	// TableClass selects the burger tables
	TableClass string
	// Fetcher is "http" or "browser"
	Fetcher string
	// ShowQuery is the TVMaze show search term
	ShowQuery string
	// TVMazeBaseURL is the TVMaze API root
	TVMazeBaseURL string
	// DenylistFile replaces the built-in denylist when set
	DenylistFile string
)

// SetDefaults registers default values with viper.
func SetDefaults() {
	viper.SetDefault("source.url", DefaultSourceURL)
	viper.SetDefault("source.origin", DefaultOrigin)
	viper.SetDefault("source.table_class", DefaultTableClass)
	viper.SetDefault("source.fetcher", FetcherHTTP)
	viper.SetDefault("tvmaze.show_query", DefaultShowQuery)
	viper.SetDefault("output.json", DefaultJSONOutput)
	viper.SetDefault("output.csv", DefaultCSVOutput)
	viper.SetDefault("output.tvmaze", DefaultTVMazeOutput)
	viper.SetDefault("denylist.file", "")
	viper.SetDefault("datasette.enabled", false)
	viper.SetDefault("datasette.mode", "local")
	viper.SetDefault("datasette.dbfile", DefaultDatasetteDB)
	viper.SetDefault("OverwriteFiles", true)
}

// InitConfig initializes the global configuration
func InitConfig() {
	SetDefaults()

	OverwriteFiles = viper.GetBool("OverwriteFiles")
	SourceURL = viper.GetString("source.url")
	Origin = viper.GetString("source.origin")
	TableClass = viper.GetString("source.table_class")
	Fetcher = viper.GetString("source.fetcher")
	ShowQuery = viper.GetString("tvmaze.show_query")
	TVMazeBaseURL = viper.GetString("tvmaze.base_url")
	DenylistFile = viper.GetString("denylist.file")
}

// SetOverwriteFiles sets the OverwriteFiles flag
func SetOverwriteFiles(overwrite bool) {
	OverwriteFiles = overwrite
}

// UseBrowser reports whether pages should be rendered in headless Chrome.
func UseBrowser() bool {
	return Fetcher == FetcherBrowser
}

package testutil

import (
	"testing"

	"github.com/lepinkainen/botd/internal/config"
	"github.com/spf13/viper"
)

// ConfigState holds the state of the config package variables.
type ConfigState struct {
	OverwriteFiles bool
	SourceURL      string
	ShowQuery      string
	TVMazeBaseURL  string
	Fetcher        string
}

// SaveConfigState captures the current state of config package variables.
func SaveConfigState() ConfigState {
	return ConfigState{
		OverwriteFiles: config.OverwriteFiles,
		SourceURL:      config.SourceURL,
		ShowQuery:      config.ShowQuery,
		TVMazeBaseURL:  config.TVMazeBaseURL,
		Fetcher:        config.Fetcher,
	}
}

// RestoreConfigState restores the config package variables to a saved state.
func RestoreConfigState(state ConfigState) {
	config.OverwriteFiles = state.OverwriteFiles
	config.SourceURL = state.SourceURL
	config.ShowQuery = state.ShowQuery
	config.TVMazeBaseURL = state.TVMazeBaseURL
	config.Fetcher = state.Fetcher
}

// ResetConfig saves the current config state and schedules restoration
// when the test completes. It also resets viper.
func ResetConfig(t *testing.T) {
	t.Helper()

	// Save current config state
	state := SaveConfigState()

	// Reset viper
	viper.Reset()

	// Schedule restoration on test cleanup
	t.Cleanup(func() {
		RestoreConfigState(state)
		viper.Reset()
	})
}

// SetTestConfig sets up a test configuration with common defaults.
// It saves the current state and restores it when the test completes.
func SetTestConfig(t *testing.T) {
	t.Helper()

	// Save current config state
	state := SaveConfigState()

	// Reset viper and set test defaults
	viper.Reset()

	// Set common test defaults
	config.OverwriteFiles = true
	config.SourceURL = "http://wiki.test/wiki/Burger_of_the_Day"
	config.ShowQuery = "Bob's Burgers"
	config.TVMazeBaseURL = "http://tvmaze.test"

	// Schedule restoration on test cleanup
	t.Cleanup(func() {
		RestoreConfigState(state)
		viper.Reset()
	})
}

// SetTestConfigOption is a functional option for configuring test config.
type SetTestConfigOption func(*testConfigOptions)

type testConfigOptions struct {
	overwriteFiles bool
	sourceURL      string
	showQuery      string
	tvmazeBaseURL  string
}

// WithOverwriteFiles sets the OverwriteFiles option.
func WithOverwriteFiles(v bool) SetTestConfigOption {
	return func(o *testConfigOptions) {
		o.overwriteFiles = v
	}
}

// WithSourceURL points the scraper at a test page.
func WithSourceURL(u string) SetTestConfigOption {
	return func(o *testConfigOptions) {
		o.sourceURL = u
	}
}

// WithShowQuery sets the TVMaze show query.
func WithShowQuery(q string) SetTestConfigOption {
	return func(o *testConfigOptions) {
		o.showQuery = q
	}
}

// WithTVMazeBaseURL points the TVMaze client at a test server.
func WithTVMazeBaseURL(u string) SetTestConfigOption {
	return func(o *testConfigOptions) {
		o.tvmazeBaseURL = u
	}
}

// SetTestConfigWithOptions sets up a test configuration with custom options.
// It saves the current state and restores it when the test completes.
func SetTestConfigWithOptions(t *testing.T, opts ...SetTestConfigOption) {
	t.Helper()

	// Save current config state
	state := SaveConfigState()

	// Reset viper
	viper.Reset()

	// Set defaults
	options := testConfigOptions{
		overwriteFiles: true,
		sourceURL:      "http://wiki.test/wiki/Burger_of_the_Day",
		showQuery:      "Bob's Burgers",
		tvmazeBaseURL:  "http://tvmaze.test",
	}

	// Apply options
	for _, opt := range opts {
		opt(&options)
	}

	// Apply to config
	config.OverwriteFiles = options.overwriteFiles
	config.SourceURL = options.sourceURL
	config.ShowQuery = options.showQuery
	config.TVMazeBaseURL = options.tvmazeBaseURL

	// Schedule restoration on test cleanup
	t.Cleanup(func() {
		RestoreConfigState(state)
		viper.Reset()
	})
}

// SetViperValue sets a viper configuration value and schedules cleanup.
func SetViperValue(t *testing.T, key string, value any) {
	t.Helper()

	// Get the old value (if any)
	oldValue := viper.Get(key)
	hadValue := viper.IsSet(key)

	// Set the new value
	viper.Set(key, value)

	// Schedule cleanup
	t.Cleanup(func() {
		if hadValue {
			viper.Set(key, oldValue)
		}
		// Note: viper doesn't have an Unset function, so we can't
		// restore the "unset" state. This is a known limitation.
	})
}

// SetupTestCache configures viper for test caching with a temporary directory.
// It creates the cache directory and sets up viper configuration.
func SetupTestCache(t *testing.T, env *TestEnv) string {
	t.Helper()

	// Create cache directory
	cacheDir := env.Path("cache")
	env.MkdirAll("cache")

	// Configure viper
	viper.Set("cache.dbfile", env.Path("cache", "test-cache.db"))
	viper.Set("cache.ttl", "24h")

	return cacheDir
}

// SetupDatasetteDB configures datasette database for E2E tests.
// It creates a temporary database file and configures viper with automatic cleanup.
// Returns the database path.
func SetupDatasetteDB(t *testing.T, env *TestEnv) string {
	t.Helper()

	dbPath := env.Path("test.db")

	// Configure datasette using SetViperValue for automatic cleanup
	SetViperValue(t, "datasette.enabled", true)
	SetViperValue(t, "datasette.dbfile", dbPath)

	return dbPath
}

// SetupOutputPaths directs JSON, CSV and catalog output into the test sandbox.
func SetupOutputPaths(t *testing.T, env *TestEnv) {
	t.Helper()

	SetViperValue(t, "output.json", env.Path("data", "burger-of-the-day.json"))
	SetViperValue(t, "output.csv", env.Path("data", "burger-of-the-day.csv"))
	SetViperValue(t, "output.tvmaze", env.Path("data", "tvmaze-episodes.json"))
}

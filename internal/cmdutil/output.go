package cmdutil

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/lepinkainen/botd/internal/config"
	"github.com/spf13/viper"
)

// OutputPaths holds the files a scrape writes.
type OutputPaths struct {
	JSON   string
	CSV    string
	TVMaze string
}

// SetupOutputPaths fills empty paths from config, cleans them and creates
// their parent directories. TVMaze is left empty when skipTVMaze is set.
func SetupOutputPaths(paths *OutputPaths, skipTVMaze bool) error {
	paths.JSON = ResolvePath(paths.JSON, "output.json", config.DefaultJSONOutput)
	paths.CSV = ResolvePath(paths.CSV, "output.csv", config.DefaultCSVOutput)
	if skipTVMaze {
		paths.TVMaze = ""
	} else {
		paths.TVMaze = ResolvePath(paths.TVMaze, "output.tvmaze", config.DefaultTVMazeOutput)
	}

	for _, p := range []string{paths.JSON, paths.CSV, paths.TVMaze} {
		if p == "" {
			continue
		}
		if err := os.MkdirAll(filepath.Dir(p), 0755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
	}
	return nil
}

// ResolvePath returns flagValue, else the configKey setting, else fallback, cleaned.
func ResolvePath(flagValue, configKey, fallback string) string {
	p := flagValue
	if p == "" {
		p = viper.GetString(configKey)
	}
	if p == "" {
		p = fallback
	}
	return filepath.Clean(p)
}

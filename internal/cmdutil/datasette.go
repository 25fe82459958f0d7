package cmdutil

import (
	"fmt"
	"log/slog"

	"github.com/lepinkainen/botd/internal/datastore"
	"github.com/spf13/viper"
)

// WriteToDatastore replaces table with records when datasette export is
// enabled. Mode "local" (the default) writes to datasette.dbfile; "remote"
// posts to datasette.remote_url.
func WriteToDatastore[T any](records []T, schema, table, description string, toMap func(T) map[string]any) error {
	if !viper.GetBool("datasette.enabled") {
		return nil
	}

	var store datastore.Store
	mode := viper.GetString("datasette.mode")
	switch mode {
	case "", "local":
		store = datastore.NewSQLiteStore(viper.GetString("datasette.dbfile"))
	case "remote":
		store = datastore.NewDatasetteClient(
			viper.GetString("datasette.remote_url"),
			viper.GetString("datasette.api_token"),
		)
	default:
		slog.Error("Invalid Datasette mode", "mode", mode)
		return fmt.Errorf("invalid Datasette mode: %s", mode)
	}

	slog.Info("Writing to Datasette", "table", table, "mode", mode, "records", description)
	if err := store.Connect(); err != nil {
		return fmt.Errorf("failed to connect to datastore: %w", err)
	}
	defer func() { _ = store.Close() }()

	if err := store.CreateTable(schema); err != nil {
		return err
	}

	rows := make([]map[string]any, len(records))
	for i, r := range records {
		rows[i] = toMap(r)
	}

	if err := store.ReplaceAll(datastore.DefaultDatabase, table, rows); err != nil {
		return fmt.Errorf("failed to write %s: %w", description, err)
	}

	slog.Info("Successfully wrote to Datasette", "table", table, "count", len(rows))
	return nil
}

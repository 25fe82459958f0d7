// Package datastore exports records to a local SQLite file or a remote
// Datasette instance.
package datastore

// DefaultDatabase is the database name rows are published under.
const DefaultDatabase = "botd"

// Store defines the interface for record export targets
type Store interface {
	// Connect establishes a connection to the data store
	Connect() error

	// CreateTable creates a new table with the given schema if it doesn't exist
	CreateTable(schema string) error

	// ReplaceAll replaces the contents of table with records
	ReplaceAll(database string, table string, records []map[string]any) error

	// Close closes the connection to the data store
	Close() error
}

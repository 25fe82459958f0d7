// Package csvutil reads and writes CSV files of typed rows.
package csvutil

import (
	"encoding/csv"
	"fmt"
	"io"
	"log/slog"
	"os"
	"slices"
)

// ProcessorOptions configures CSV processing behavior.
type ProcessorOptions struct {
	// Header, when set, must match the first row exactly.
	Header []string

	// SkipInvalid controls whether to skip invalid records or return an error.
	SkipInvalid bool
}

// ProcessCSV reads a CSV file and parses each record after the header into
// type T. Rows are expected to have as many fields as the header.
func ProcessCSV[T any](filename string, parser func([]string) (T, error), opts ProcessorOptions) ([]T, error) {
	csvFile, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open CSV file: %w", err)
	}
	defer func() { _ = csvFile.Close() }()

	if fi, err := csvFile.Stat(); err != nil || fi.Size() == 0 {
		return nil, fmt.Errorf("CSV file is empty or cannot be read")
	}

	reader := csv.NewReader(csvFile)

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("failed to read header: %w", err)
	}
	if opts.Header != nil && !slices.Equal(header, opts.Header) {
		return nil, fmt.Errorf("unexpected header %v", header)
	}

	var items []T
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			if opts.SkipInvalid {
				slog.Warn("Error reading record", "error", err)
				continue
			}
			return nil, fmt.Errorf("failed to read record: %w", err)
		}

		item, err := parser(record)
		if err != nil {
			if opts.SkipInvalid {
				slog.Warn("Skipping invalid record", "error", err)
				continue
			}
			return nil, fmt.Errorf("invalid record: %w", err)
		}

		items = append(items, item)
	}

	return items, nil
}

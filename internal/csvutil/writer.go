package csvutil

import (
	"bytes"
	"encoding/csv"
	"fmt"

	"github.com/lepinkainen/botd/internal/fileutil"
)

// WriterOptions configures CSV output.
type WriterOptions struct {
	// UseCRLF terminates rows with \r\n, the line ending spreadsheet tools expect.
	UseCRLF bool

	// Overwrite replaces an existing file instead of skipping it.
	Overwrite bool
}

// Encode renders a header row followed by one row per item.
func Encode[T any](header []string, items []T, row func(T) []string, useCRLF bool) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	w.UseCRLF = useCRLF

	if err := w.Write(header); err != nil {
		return nil, fmt.Errorf("failed to write header: %w", err)
	}
	for i, item := range items {
		fields := row(item)
		if len(fields) != len(header) {
			return nil, fmt.Errorf("row %d has %d fields, header has %d", i, len(fields), len(header))
		}
		if err := w.Write(fields); err != nil {
			return nil, fmt.Errorf("failed to write row %d: %w", i, err)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// WriteCSV writes items to filename, creating parent directories as needed.
// Returns true if the file was written, false if it was skipped.
func WriteCSV[T any](filename string, header []string, items []T, row func(T) []string, opts WriterOptions) (bool, error) {
	data, err := Encode(header, items, row, opts.UseCRLF)
	if err != nil {
		return false, err
	}

	written, err := fileutil.WriteFileWithOverwrite(filename, data, 0644, opts.Overwrite)
	if err != nil {
		return false, fmt.Errorf("failed to write CSV file: %w", err)
	}
	return written, nil
}

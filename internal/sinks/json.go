package sinks

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
)

// JSON writes the report as an array of column-keyed objects. Rows are
// collected in memory (a report is small, one row per travel day) and the
// file is published atomically on Finalize.
type JSON struct {
	path    string
	columns []string
	rows    []map[string]string
	logger  *slog.Logger
}

// NewJSON creates a JSON sink writing to path on Finalize.
func NewJSON(path string, logger *slog.Logger) (*JSON, error) {
	if logger == nil {
		logger = slog.Default()
	}
	return &JSON{path: path, logger: logger}, nil
}

func (j *JSON) WriteHeader(_ context.Context, columns []string) error {
	j.columns = columns
	return nil
}

func (j *JSON) WriteRow(_ context.Context, values []string) error {
	if len(values) != len(j.columns) {
		return fmt.Errorf("row has %d values, header has %d columns", len(values), len(j.columns))
	}
	row := make(map[string]string, len(values))
	for i, v := range values {
		row[j.columns[i]] = v
	}
	j.rows = append(j.rows, row)
	return nil
}

// Finalize marshals the collected rows and moves the file into place.
func (j *JSON) Finalize(_ context.Context) error {
	if j.columns == nil {
		return fmt.Errorf("no header written")
	}
	if j.rows == nil {
		j.rows = []map[string]string{}
	}

	data, err := json.MarshalIndent(j.rows, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling report: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(j.path), filepath.Base(j.path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("creating temporary report file: %w", err)
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("writing report: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("closing temporary report file: %w", err)
	}
	if err := os.Rename(tmp.Name(), j.path); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("placing report at %s: %w", j.path, err)
	}

	j.logger.Info("report written", "file", j.path, "rows", len(j.rows))
	return nil
}

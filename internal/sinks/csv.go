package sinks

import (
	"context"
	"encoding/csv"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
)

// CSV writes the report as a CSV file, built in a temporary file and
// renamed into place on Finalize.
type CSV struct {
	path   string
	tmp    *os.File
	writer *csv.Writer
	rows   int
	logger *slog.Logger
}

// NewCSV creates a CSV sink writing to path on Finalize.
func NewCSV(path string, logger *slog.Logger) (*CSV, error) {
	if logger == nil {
		logger = slog.Default()
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), filepath.Base(path)+".tmp-*")
	if err != nil {
		return nil, fmt.Errorf("creating temporary report file: %w", err)
	}

	return &CSV{
		path:   path,
		tmp:    tmp,
		writer: csv.NewWriter(tmp),
		logger: logger,
	}, nil
}

func (c *CSV) WriteHeader(_ context.Context, columns []string) error {
	if err := c.writer.Write(columns); err != nil {
		return fmt.Errorf("writing csv header: %w", err)
	}
	return nil
}

func (c *CSV) WriteRow(_ context.Context, values []string) error {
	if err := c.writer.Write(values); err != nil {
		return fmt.Errorf("writing csv row: %w", err)
	}
	c.rows++
	return nil
}

// Finalize flushes the temporary file and moves it to the canonical path.
func (c *CSV) Finalize(_ context.Context) error {
	c.writer.Flush()
	if err := c.writer.Error(); err != nil {
		c.discard()
		return fmt.Errorf("flushing csv: %w", err)
	}
	if err := c.tmp.Close(); err != nil {
		os.Remove(c.tmp.Name())
		return fmt.Errorf("closing temporary report file: %w", err)
	}
	if err := os.Rename(c.tmp.Name(), c.path); err != nil {
		os.Remove(c.tmp.Name())
		return fmt.Errorf("placing report at %s: %w", c.path, err)
	}

	c.logger.Info("report written", "file", c.path, "rows", c.rows)
	return nil
}

func (c *CSV) discard() {
	c.tmp.Close()
	os.Remove(c.tmp.Name())
}

// Package sinks provides the persistence sinks a report can be written to,
// behind a name-indexed registry so the output target is configuration.
package sinks

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"sort"

	"github.com/maxonary/LLM-Invoice-Sorter/pkg/api"
	"github.com/maxonary/LLM-Invoice-Sorter/pkg/config"
)

// Options carries everything a sink constructor might need. File sinks use
// Path; the sheets sink needs the HTTP client and sheet naming; the
// postgres sink needs the connection configuration.
type Options struct {
	// Path is the canonical output path for file sinks. The sink must not
	// leave a partial file there: build elsewhere, publish on Finalize.
	Path string

	// HTTPClient is an authenticated client for remote sinks.
	HTTPClient *http.Client
	SheetTitle string
	SheetID    string

	Postgres config.PostgresConfig

	// ReportYear and Language identify the report in sinks that store
	// multiple reports side by side.
	ReportYear int
	Language   string

	Logger *slog.Logger
}

// Builder constructs a ready-to-write sink.
type Builder func(ctx context.Context, opts Options) (api.RowSink, error)

// Registry maps sink names to their builders.
type Registry struct {
	builders map[string]Builder
}

// NewRegistry returns a registry with all built-in sinks registered.
func NewRegistry() *Registry {
	r := &Registry{builders: make(map[string]Builder)}
	r.register("xlsx", func(_ context.Context, opts Options) (api.RowSink, error) {
		return NewXLSX(opts.Path, opts.Logger)
	})
	r.register("csv", func(_ context.Context, opts Options) (api.RowSink, error) {
		return NewCSV(opts.Path, opts.Logger)
	})
	r.register("json", func(_ context.Context, opts Options) (api.RowSink, error) {
		return NewJSON(opts.Path, opts.Logger)
	})
	r.register("sheets", func(ctx context.Context, opts Options) (api.RowSink, error) {
		return NewSheets(ctx, opts)
	})
	r.register("postgres", func(ctx context.Context, opts Options) (api.RowSink, error) {
		return NewPostgres(ctx, opts)
	})
	return r
}

func (r *Registry) register(name string, b Builder) {
	r.builders[name] = b
}

// Create builds the named sink.
func (r *Registry) Create(ctx context.Context, name string, opts Options) (api.RowSink, error) {
	b, ok := r.builders[name]
	if !ok {
		return nil, fmt.Errorf("unknown sink %q (available: %v)", name, r.Names())
	}
	return b(ctx, opts)
}

// Names lists the registered sink names, sorted.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.builders))
	for name := range r.builders {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Ext returns the file extension the named sink writes, or "" for remote
// sinks without an output file.
func Ext(name string) string {
	switch name {
	case "xlsx":
		return ".xlsx"
	case "csv":
		return ".csv"
	case "json":
		return ".json"
	default:
		return ""
	}
}

// Package report implements the travel-expense report pipeline: per-document
// processing, batch fan-out, per-day consolidation and report emission.
package report

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/maxonary/LLM-Invoice-Sorter/pkg/api"
)

// Pipeline runs one full report generation: batch processing, day
// consolidation and emission to the sink.
type Pipeline struct {
	Runner   *Runner
	Sink     api.RowSink
	Language string
	Logger   *slog.Logger
}

// Run generates the report for every document under sortedDir and returns
// the processed/skipped tallies. Zero retained days is a valid outcome (a
// header-only report); only a failure to write the final artifact is an
// error.
func (p *Pipeline) Run(ctx context.Context, sortedDir string) (Summary, error) {
	logger := p.Logger
	if logger == nil {
		logger = slog.Default()
	}
	logger = logger.With("run_id", uuid.NewString())

	byDate, summary, err := p.Runner.Run(ctx, sortedDir)
	if err != nil {
		return summary, fmt.Errorf("processing documents: %w", err)
	}

	rows := Consolidate(byDate, logger)
	logger.Info("consolidated report days",
		"days", len(rows),
		"processed", summary.Processed,
		"skipped", summary.Skipped,
	)

	if err := Emit(ctx, p.Sink, rows, p.Language); err != nil {
		return summary, err
	}

	return summary, nil
}

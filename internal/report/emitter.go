package report

import (
	"context"
	"fmt"
	"strconv"

	"github.com/maxonary/LLM-Invoice-Sorter/pkg/api"
	"github.com/maxonary/LLM-Invoice-Sorter/pkg/config"
)

// Column labels per report language. Both sets cover the same ten semantic
// columns plus the file-path reference.
var (
	columnsEN = []string{
		"Date", "Location", "Purpose", "Duration (hrs)", "Distance (km)",
		"Parking", "Hotel", "Transport", "Meal", "Fee", "File paths",
	}
	columnsDE = []string{
		"Datum", "Ort", "Anlass", "Dauer (Std)", "Entfernung (km)",
		"Parken", "Hotel", "Transport", "Verpflegung", "Gebühr", "Dateipfade",
	}
)

// Columns returns the display labels for the given report language.
func Columns(language string) []string {
	if language == config.LanguageGerman {
		return columnsDE
	}
	return columnsEN
}

// Filename returns the report file name (without extension) for a year and
// language, matching the established report naming.
func Filename(year int, language string) string {
	if language == config.LanguageGerman {
		return fmt.Sprintf("reisekosten_%d_de", year)
	}
	return fmt.Sprintf("travel_report_%d_en", year)
}

// rowValues renders one merged entry in column order.
func rowValues(e *api.Entry) []string {
	duration := ""
	if e.DurationHours != 0 {
		duration = strconv.Itoa(e.DurationHours)
	}
	return []string{
		e.Date, e.Location, e.Purpose, duration, e.DistanceKM,
		e.Parking, e.Hotel, e.Transport, e.Meal, e.Fee, e.FilePaths,
	}
}

// Emit writes the consolidated rows to the sink in their given (sorted)
// order: header first, then one row at a time, then an atomic finalize.
// Zero rows still produce a valid header-only report.
func Emit(ctx context.Context, sink api.RowSink, rows []*api.Entry, language string) error {
	if err := sink.WriteHeader(ctx, Columns(language)); err != nil {
		return fmt.Errorf("writing report header: %w", err)
	}
	for _, row := range rows {
		if err := sink.WriteRow(ctx, rowValues(row)); err != nil {
			return fmt.Errorf("writing report row for %s: %w", row.Date, err)
		}
	}
	if err := sink.Finalize(ctx); err != nil {
		return fmt.Errorf("finalizing report: %w", err)
	}
	return nil
}

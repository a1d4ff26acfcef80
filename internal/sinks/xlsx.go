package sinks

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/xuri/excelize/v2"
)

const sheetName = "Sheet1"

// XLSX writes the report as an Excel workbook. The workbook is assembled in
// memory, saved to a temporary file and only renamed to the canonical path
// on Finalize, so a failed run never leaves a half-written report behind.
type XLSX struct {
	path   string
	file   *excelize.File
	row    int
	logger *slog.Logger
}

// NewXLSX creates an Excel sink writing to path on Finalize.
func NewXLSX(path string, logger *slog.Logger) (*XLSX, error) {
	if logger == nil {
		logger = slog.Default()
	}
	return &XLSX{
		path:   path,
		file:   excelize.NewFile(),
		logger: logger,
	}, nil
}

func (x *XLSX) WriteHeader(_ context.Context, columns []string) error {
	return x.writeRow(columns)
}

func (x *XLSX) WriteRow(_ context.Context, values []string) error {
	return x.writeRow(values)
}

func (x *XLSX) writeRow(values []string) error {
	x.row++
	cell, err := excelize.CoordinatesToCellName(1, x.row)
	if err != nil {
		return fmt.Errorf("computing cell name: %w", err)
	}

	cells := make([]any, len(values))
	for i, v := range values {
		cells[i] = v
	}
	if err := x.file.SetSheetRow(sheetName, cell, &cells); err != nil {
		return fmt.Errorf("writing xlsx row %d: %w", x.row, err)
	}
	return nil
}

// Finalize saves the workbook next to the target and moves it into place.
// The temporary name keeps the .xlsx extension; excelize refuses to save
// under any other one.
func (x *XLSX) Finalize(_ context.Context) error {
	defer x.file.Close()

	tmp := x.path + ".tmp.xlsx"
	if err := x.file.SaveAs(tmp); err != nil {
		return fmt.Errorf("saving workbook: %w", err)
	}
	if err := os.Rename(tmp, x.path); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("placing report at %s: %w", x.path, err)
	}

	x.logger.Info("report written", "file", x.path, "rows", x.row)
	return nil
}

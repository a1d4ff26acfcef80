package sinks

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/avast/retry-go"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"
)

// Sheets writes the report to a Google Sheet. Rows are buffered and
// appended in one call on Finalize; a report in a spreadsheet is only
// visible once that append succeeds, which keeps the publish step atomic
// from the reader's perspective. The caller supplies an authenticated HTTP
// client; credential handling stays outside this package.
type Sheets struct {
	client      *sheets.Service
	spreadsheet *sheets.Spreadsheet
	values      [][]any
	logger      *slog.Logger
}

// NewSheets creates a sheets sink. An existing spreadsheet is reused when
// opts.SheetID resolves; otherwise a new one titled opts.SheetTitle is
// created.
func NewSheets(ctx context.Context, opts Options) (*Sheets, error) {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	if opts.HTTPClient == nil {
		return nil, fmt.Errorf("sheets sink requires an authenticated HTTP client")
	}

	client, err := sheets.NewService(ctx, option.WithHTTPClient(opts.HTTPClient))
	if err != nil {
		return nil, fmt.Errorf("creating sheets service: %w", err)
	}

	s := &Sheets{client: client, logger: logger}

	if opts.SheetID != "" {
		spreadsheet, err := client.Spreadsheets.Get(opts.SheetID).Context(ctx).Do()
		if err == nil {
			logger.Info("using existing spreadsheet", "id", opts.SheetID)
			s.spreadsheet = spreadsheet
			return s, nil
		}
		logger.Warn("failed to get spreadsheet, will create new one", "id", opts.SheetID, "error", err)
	}

	title := opts.SheetTitle
	if title == "" {
		title = fmt.Sprintf("Travel report %d", opts.ReportYear)
	}
	spreadsheet, err := client.Spreadsheets.Create(&sheets.Spreadsheet{
		Properties: &sheets.SpreadsheetProperties{Title: title},
	}).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("creating spreadsheet: %w", err)
	}
	logger.Info("created new spreadsheet", "title", title, "id", spreadsheet.SpreadsheetId)

	s.spreadsheet = spreadsheet
	return s, nil
}

func (s *Sheets) WriteHeader(_ context.Context, columns []string) error {
	s.buffer(columns)
	return nil
}

func (s *Sheets) WriteRow(_ context.Context, values []string) error {
	s.buffer(values)
	return nil
}

func (s *Sheets) buffer(values []string) {
	row := make([]any, len(values))
	for i, v := range values {
		row[i] = v
	}
	s.values = append(s.values, row)
}

// Finalize appends all buffered rows in one request, retrying when the API
// rate-limits.
func (s *Sheets) Finalize(ctx context.Context) error {
	req := &sheets.ValueRange{Values: s.values}

	err := retry.Do(
		func() error {
			_, err := s.client.Spreadsheets.Values.
				Append(s.spreadsheet.SpreadsheetId, "A1", req).
				ValueInputOption("RAW").
				InsertDataOption("INSERT_ROWS").
				Context(ctx).
				Do()
			return err
		},
		retry.RetryIf(func(err error) bool {
			if apiErr, ok := err.(*googleapi.Error); ok {
				return apiErr.Code == 429
			}
			return false
		}),
		retry.Attempts(2),
		retry.Delay(60*time.Second),
		retry.LastErrorOnly(true),
	)
	if err != nil {
		return fmt.Errorf("appending report rows: %w", err)
	}

	s.logger.Info("report written", "spreadsheet_id", s.spreadsheet.SpreadsheetId, "rows", len(s.values)-1)
	return nil
}

package report

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/maxonary/LLM-Invoice-Sorter/pkg/api"
)

// memSink captures emitted rows for inspection.
type memSink struct {
	header    []string
	rows      [][]string
	finalized bool
}

func (s *memSink) WriteHeader(_ context.Context, columns []string) error {
	s.header = columns
	return nil
}

func (s *memSink) WriteRow(_ context.Context, values []string) error {
	s.rows = append(s.rows, values)
	return nil
}

func (s *memSink) Finalize(context.Context) error {
	s.finalized = true
	return nil
}

func TestColumns(t *testing.T) {
	en := Columns("en")
	de := Columns("de")

	require.Len(t, en, 11)
	require.Len(t, de, 11)
	assert.Equal(t, "Date", en[0])
	assert.Equal(t, "Datum", de[0])
	assert.Equal(t, "Verpflegung", de[8])
	assert.Equal(t, en, Columns("unknown"), "unknown language falls back to English")
}

func TestFilename(t *testing.T) {
	assert.Equal(t, "travel_report_2024_en", Filename(2024, "en"))
	assert.Equal(t, "reisekosten_2024_de", Filename(2024, "de"))
}

func TestEmit(t *testing.T) {
	entry := &api.Entry{
		Date:          "2024-03-10",
		Location:      "Berlin",
		Purpose:       "Client visit",
		DurationHours: 10,
		DistanceKM:    "250",
		Hotel:         "45.00",
		Meal:          "12.00",
		FilePaths:     "a.pdf\nb.pdf",
	}

	sink := &memSink{}
	require.NoError(t, Emit(context.Background(), sink, []*api.Entry{entry}, "de"))

	assert.Equal(t, Columns("de"), sink.header)
	require.Len(t, sink.rows, 1)
	assert.Equal(t, []string{
		"2024-03-10", "Berlin", "Client visit", "10", "250",
		"", "45.00", "", "12.00", "", "a.pdf\nb.pdf",
	}, sink.rows[0])
	assert.True(t, sink.finalized)
}

func TestEmit_EmptyReportIsHeaderOnly(t *testing.T) {
	sink := &memSink{}
	require.NoError(t, Emit(context.Background(), sink, nil, "en"))

	assert.Equal(t, Columns("en"), sink.header)
	assert.Empty(t, sink.rows)
	assert.True(t, sink.finalized)
}

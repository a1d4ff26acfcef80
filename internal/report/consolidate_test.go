package report

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/maxonary/LLM-Invoice-Sorter/pkg/api"
)

func travelEntry(date string) *api.Entry {
	return &api.Entry{
		Date:          date,
		Category:      api.CategoryTravel,
		Purpose:       "Client visit",
		Location:      "Berlin",
		DurationHours: api.TravelDurationHours,
		FilePaths:     "Invoices/Travel/" + date + ".pdf",
	}
}

func foodEntry(date, meal string) *api.Entry {
	return &api.Entry{
		Date:      date,
		Category:  api.CategoryFood,
		Purpose:   "lunch receipt",
		Meal:      meal,
		FilePaths: "Invoices/Food/" + date + ".pdf",
	}
}

func TestConsolidate_DropsDaysWithoutTravelEntry(t *testing.T) {
	byDate := map[string][]*api.Entry{
		"2024-03-09": {foodEntry("2024-03-09", "8.00")},
		"2024-03-10": {travelEntry("2024-03-10")},
	}

	rows := Consolidate(byDate, nil)

	require.Len(t, rows, 1)
	assert.Equal(t, "2024-03-10", rows[0].Date)
}

func TestConsolidate_SortsDatesAscending(t *testing.T) {
	byDate := map[string][]*api.Entry{
		"2024-06-01": {travelEntry("2024-06-01")},
		"2024-01-15": {travelEntry("2024-01-15")},
		"2024-03-10": {travelEntry("2024-03-10")},
	}

	rows := Consolidate(byDate, nil)

	require.Len(t, rows, 3)
	assert.Equal(t, "2024-01-15", rows[0].Date)
	assert.Equal(t, "2024-03-10", rows[1].Date)
	assert.Equal(t, "2024-06-01", rows[2].Date)
}

func TestConsolidate_PropagatesPurposeAndLocationToMeals(t *testing.T) {
	meal := foodEntry("2024-03-10", "12.00")
	byDate := map[string][]*api.Entry{
		"2024-03-10": {meal, travelEntry("2024-03-10")},
	}

	rows := Consolidate(byDate, nil)

	require.Len(t, rows, 1)
	assert.Equal(t, "Client visit", rows[0].Purpose)
	assert.Equal(t, "Berlin", rows[0].Location)
	assert.Equal(t, "Client visit", meal.Purpose)
	assert.Equal(t, "Berlin", meal.Location)
}

func TestConsolidate_MergesDayIntoSingleRow(t *testing.T) {
	anchor := travelEntry("2024-03-10")
	anchor.Hotel = "45.00"
	byDate := map[string][]*api.Entry{
		"2024-03-10": {foodEntry("2024-03-10", "12.00"), anchor},
	}

	rows := Consolidate(byDate, nil)

	require.Len(t, rows, 1)
	row := rows[0]
	assert.Equal(t, "45.00", row.Hotel)
	assert.Equal(t, "12.00", row.Meal)
	assert.Equal(t, api.TravelDurationHours, row.DurationHours)
	assert.Equal(t, "Invoices/Travel/2024-03-10.pdf\nInvoices/Food/2024-03-10.pdf", row.FilePaths)
}

func TestAddAmounts(t *testing.T) {
	tests := []struct {
		name            string
		current, extra  string
		want            string
	}{
		{"both empty", "", "", ""},
		{"extra empty keeps current", "12.50", "", "12.50"},
		{"current empty takes extra", "", "7.50", "7.50"},
		{"integral sum keeps decimal point", "12.50", "7.50", "20.0"},
		{"fractional sum", "12.50", "7.25", "19.75"},
		{"non-numeric current is overwritten", "n/a", "7.50", "7.50"},
		{"non-numeric extra overwrites", "12.50", "pending", "pending"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, addAmounts(tc.current, tc.extra))
		})
	}
}

func TestMergeDay_AnchorFirstRegardlessOfArrivalOrder(t *testing.T) {
	anchor := travelEntry("2024-03-10")
	anchor.Transport = "18.50"
	second := foodEntry("2024-03-10", "9.00")
	second.Transport = "4.50"

	forward := mergeDay([]*api.Entry{anchor, second})
	reversed := mergeDay([]*api.Entry{second, anchor})

	assert.Equal(t, "23.0", forward.Transport)
	assert.Equal(t, forward.Transport, reversed.Transport)
	assert.Equal(t, api.CategoryTravel, reversed.Category)
	assert.Equal(t, api.TravelDurationHours, reversed.DurationHours)
}

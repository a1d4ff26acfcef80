package report

import (
	"log/slog"
	"sort"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/maxonary/LLM-Invoice-Sorter/pkg/api"
)

// Consolidate folds each day's entries into one row and returns the rows
// sorted ascending by date. A day is only retained when it has a travel
// entry; its purpose and location are propagated onto the day's meal
// entries before merging.
func Consolidate(byDate map[string][]*api.Entry, logger *slog.Logger) []*api.Entry {
	if logger == nil {
		logger = slog.Default()
	}

	dates := make([]string, 0, len(byDate))
	for date := range byDate {
		dates = append(dates, date)
	}
	sort.Strings(dates)

	var rows []*api.Entry
	for _, date := range dates {
		entries := byDate[date]

		anchor := findTravelEntry(entries)
		if anchor == nil {
			logger.Info("skipping day: no travel entry found", "date", date, "entries", len(entries))
			continue
		}

		for _, e := range entries {
			if e.Meal != "" {
				e.Purpose = anchor.Purpose
				e.Location = anchor.Location
			}
		}

		rows = append(rows, mergeDay(entries))
	}

	return rows
}

func findTravelEntry(entries []*api.Entry) *api.Entry {
	for _, e := range entries {
		if e.IsTravelAnchor() {
			return e
		}
	}
	return nil
}

// mergeDay folds all of a day's entries into the travel entry. The sort is
// stable so merge order, and with it the file-path order, is deterministic
// regardless of how the entries arrived.
func mergeDay(entries []*api.Entry) *api.Entry {
	ordered := make([]*api.Entry, len(entries))
	copy(ordered, entries)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].IsTravelAnchor() && !ordered[j].IsTravelAnchor()
	})

	merged := *ordered[0]
	for _, extra := range ordered[1:] {
		merged.Parking = addAmounts(merged.Parking, extra.Parking)
		merged.Hotel = addAmounts(merged.Hotel, extra.Hotel)
		merged.Transport = addAmounts(merged.Transport, extra.Transport)
		merged.Meal = addAmounts(merged.Meal, extra.Meal)
		merged.Fee = addAmounts(merged.Fee, extra.Fee)
		merged.FilePaths += "\n" + extra.FilePaths
	}
	return &merged
}

// addAmounts merges one amount column of two same-day entries. Both values
// numeric: their sum. Either side non-numeric (or the current side empty):
// the extra value wins as-is. Merging never fails on garbage input.
func addAmounts(current, extra string) string {
	if extra == "" {
		return current
	}
	cur, err := decimal.NewFromString(current)
	if err != nil {
		return extra
	}
	ext, err := decimal.NewFromString(extra)
	if err != nil {
		return extra
	}
	return formatAmount(cur.Add(ext))
}

// formatAmount renders a merged sum; integral values keep a trailing ".0"
// so merged output stays byte-compatible with earlier reports.
func formatAmount(d decimal.Decimal) string {
	s := d.String()
	if !strings.Contains(s, ".") {
		s += ".0"
	}
	return s
}

// Package extract derives dates and amounts from invoice text via pattern
// matching. All functions are pure: no I/O, first match wins, and a miss is
// reported as an empty string rather than an error.
package extract

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

var (
	// Dates appear as 2024.3.7, 2024-03-07 or 2024/3/7 in invoice bodies.
	datePattern = regexp.MustCompile(`(\d{4})[.\-/](\d{1,2})[.\-/](\d{1,2})`)

	// Filenames produced by the sorter use underscores as well.
	filenameDatePattern = regexp.MustCompile(`(\d{4})[.\-_](\d{1,2})[.\-_](\d{1,2})`)

	// Amounts are euro sums with a comma or point decimal, optionally
	// separated from the currency symbol by a space: "45,00 €" or "45.00€".
	amountPattern = regexp.MustCompile(`(\d{1,4}[,.]\d{2}) ?€`)
)

// Date returns the first year-month-day date found in text, zero-padded to
// ISO form (YYYY-MM-DD), or "" when no date pattern matches.
func Date(text string) string {
	return isoDate(datePattern.FindStringSubmatch(text))
}

// FilenameDate returns the first date embedded in a file name, or "".
func FilenameDate(name string) string {
	return isoDate(filenameDatePattern.FindStringSubmatch(name))
}

func isoDate(m []string) string {
	if m == nil {
		return ""
	}
	year, _ := strconv.Atoi(m[1])
	month, _ := strconv.Atoi(m[2])
	day, _ := strconv.Atoi(m[3])
	return fmt.Sprintf("%04d-%02d-%02d", year, month, day)
}

// Amount returns the first euro amount found in text as a decimal string
// with a point separator ("45.00"), or "" when no amount matches. The
// decimal comma of the source locale is normalized to a point.
func Amount(text string) string {
	m := amountPattern.FindStringSubmatch(text)
	if m == nil {
		return ""
	}
	return strings.ReplaceAll(m[1], ",", ".")
}

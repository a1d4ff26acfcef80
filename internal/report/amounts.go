package report

import (
	"strings"

	"github.com/maxonary/LLM-Invoice-Sorter/pkg/api"
)

// bucketRule maps keywords in the model's free-text type hint to one amount
// column of the report.
type bucketRule struct {
	keywords []string
	assign   func(e *api.Entry, amount string)
}

// bucketRules is evaluated in order, first match wins, so at most one of
// parking/hotel/transport/fee is set per entry. Order is precedence:
// a hint like "parking fee" lands in Parking.
var bucketRules = []bucketRule{
	{keywords: []string{"park"}, assign: func(e *api.Entry, a string) { e.Parking = a }},
	{keywords: []string{"hotel"}, assign: func(e *api.Entry, a string) { e.Hotel = a }},
	{keywords: []string{"transport", "taxi", "bahn"}, assign: func(e *api.Entry, a string) { e.Transport = a }},
	{keywords: []string{"fee"}, assign: func(e *api.Entry, a string) { e.Fee = a }},
}

// assignAmountBucket places amount into the entry's amount column matching
// the model's type hint. No keyword match leaves the amount columns empty;
// the Meal column is handled separately by category, not by hint.
func assignAmountBucket(e *api.Entry, typeHint, amount string) {
	if amount == "" {
		return
	}
	hint := strings.ToLower(typeHint)
	for _, rule := range bucketRules {
		for _, kw := range rule.keywords {
			if strings.Contains(hint, kw) {
				rule.assign(e, amount)
				return
			}
		}
	}
}

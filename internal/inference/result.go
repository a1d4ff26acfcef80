// Package inference provides clients for the fact-inference model. All
// backends share the same prompt and the same tolerant response parsing:
// a model answer that cannot be read as the expected JSON degrades to the
// zero result, never to an error, so inference garbage cannot fail a
// document.
package inference

import (
	"encoding/json"
	"strconv"
	"strings"

	"github.com/maxonary/LLM-Invoice-Sorter/pkg/api"
)

// ParseResult reads a model answer into an InferenceResult. Markdown code
// fences are stripped and partially valid objects are read field by field;
// anything unreadable yields the zero result.
func ParseResult(raw string) api.InferenceResult {
	clean := stripFences(raw)

	var fields map[string]json.RawMessage
	if err := json.Unmarshal([]byte(clean), &fields); err != nil {
		return api.InferenceResult{}
	}

	var res api.InferenceResult
	if v, ok := fields["anlass"]; ok {
		res.Purpose = asString(v)
	}
	if v, ok := fields["type"]; ok {
		res.Type = asString(v)
	}
	if v, ok := fields["distance_km"]; ok {
		res.DistanceKM = asNumber(v)
	}
	return res
}

// stripFences removes ```json ... ``` wrappers models add despite being
// told not to.
func stripFences(raw string) string {
	s := strings.TrimSpace(raw)
	if !strings.HasPrefix(s, "```") {
		return s
	}

	// Drop the opening fence line (``` or ```json).
	if idx := strings.Index(s, "\n"); idx != -1 {
		s = s[idx+1:]
	} else {
		return s
	}
	if idx := strings.LastIndex(s, "```"); idx != -1 {
		s = s[:idx]
	}
	return strings.TrimSpace(s)
}

func asString(raw json.RawMessage) string {
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	return strings.TrimSpace(string(raw))
}

// asNumber tolerates numbers delivered as strings ("12" or "12 km").
func asNumber(raw json.RawMessage) float64 {
	var f float64
	if err := json.Unmarshal(raw, &f); err == nil {
		return f
	}

	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return 0
	}
	s = strings.TrimSpace(s)
	if idx := strings.IndexFunc(s, func(r rune) bool {
		return (r < '0' || r > '9') && r != '.' && r != '-'
	}); idx != -1 {
		s = s[:idx]
	}
	f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0
	}
	return f
}

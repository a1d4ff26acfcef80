// Package api defines the core data structures and collaborator interfaces
// for the invoice sorter's travel-expense report pipeline.
package api

import "context"

// Category is the invoice category a document was sorted into.
// Only Travel and Food participate in report consolidation.
type Category string

const (
	CategoryTravel Category = "Travel"
	CategoryFood   Category = "Food"
)

// TravelDurationHours marks an entry as the day's travel entry. A calendar
// day only appears in the report when one of its entries carries this value.
const TravelDurationHours = 10

// ExcerptLimit bounds the document text sent to the model. Invoices carry
// their relevant facts up front; the bound keeps token cost low.
const ExcerptLimit = 2000

// Entry holds the extracted and inferred data for one invoice document.
// Amount fields are decimal strings ("45.00") or empty when not applicable;
// keeping them as strings lets non-numeric model output degrade to an
// overwrite during merging instead of failing the document.
type Entry struct {
	Date     string   `json:"date"` // ISO, YYYY-MM-DD
	Category Category `json:"category"`
	Location string   `json:"location"`
	Purpose  string   `json:"purpose"`

	// DurationHours is TravelDurationHours for travel entries, 0 otherwise.
	DurationHours int    `json:"duration_hours,omitempty"`
	DistanceKM    string `json:"distance_km,omitempty"` // travel only

	Parking   string `json:"parking,omitempty"`
	Hotel     string `json:"hotel,omitempty"`
	Transport string `json:"transport,omitempty"`
	Meal      string `json:"meal,omitempty"`
	Fee       string `json:"fee,omitempty"`

	// FilePaths is the relative path of the source document. Merging a day
	// joins the paths of all merged entries with newlines, in merge order.
	FilePaths string `json:"file_paths"`
}

// IsTravelAnchor reports whether this entry is the day's travel entry.
func (e *Entry) IsTravelAnchor() bool {
	return e.DurationHours == TravelDurationHours
}

// InferenceRequest is one call to the fact-inference model.
type InferenceRequest struct {
	// Text is the document excerpt, at most ExcerptLimit runes.
	Text     string
	Category Category
	// Event is optional calendar context for the document's date.
	Event    string
	Language string
}

// InferenceResult is the structured guess returned by the model. The wire
// key for Purpose is "anlass", matching the JSON contract the prompt asks
// the model to follow.
type InferenceResult struct {
	Purpose    string  `json:"anlass"`
	DistanceKM float64 `json:"distance_km"`
	Type       string  `json:"type"`
}

// TextExtractor returns a bounded plain-text excerpt of a document.
type TextExtractor interface {
	Extract(path string) (string, error)
}

// Inferencer produces a best-effort structured guess for a document.
// Implementations must degrade malformed model responses to the zero
// InferenceResult rather than returning an error; errors are reserved for
// transport failures.
type Inferencer interface {
	Infer(ctx context.Context, req InferenceRequest) (InferenceResult, error)
}

// CalendarLookup maps an ISO date to free-text event labels for that day.
type CalendarLookup interface {
	Events(date string) []string
}

// RowSink receives the final report, one ordered row at a time. WriteHeader
// is called once, before any row. Finalize publishes the report atomically:
// until it returns, no partial report is visible at the canonical output
// location.
type RowSink interface {
	WriteHeader(ctx context.Context, columns []string) error
	WriteRow(ctx context.Context, values []string) error
	Finalize(ctx context.Context) error
}

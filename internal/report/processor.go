package report

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/maxonary/LLM-Invoice-Sorter/internal/extract"
	"github.com/maxonary/LLM-Invoice-Sorter/pkg/api"
)

// Business skip reasons. The runner counts these as skips; they never abort
// a batch.
var (
	ErrNoDate       = errors.New("no date found")
	ErrYearMismatch = errors.New("date does not match report year")
)

// Processor turns one sorted invoice document into a report entry. Every
// failure mode, business rule or collaborator, surfaces as an error the
// runner downgrades to a per-document skip.
type Processor struct {
	Year         int
	ForceInclude bool

	// ReportLanguage is the target report language, part of the cache key
	// and the prompt. Defaults to "en".
	ReportLanguage string

	Extractor  api.TextExtractor
	Inferencer api.Inferencer
	Calendar   api.CalendarLookup

	Logger *slog.Logger
}

// Process extracts, infers and assembles the entry for the document at
// path. The returned entry's date is guaranteed to fall in the report year
// (or the fallback date under force-include).
func (p *Processor) Process(ctx context.Context, path string, category api.Category) (*api.Entry, error) {
	text, err := p.Extractor.Extract(path)
	if err != nil {
		return nil, fmt.Errorf("extraction error: %w", err)
	}

	date, err := p.deriveDate(text, path)
	if err != nil {
		return nil, err
	}

	amount := extract.Amount(text)

	event := ""
	if p.Calendar != nil {
		if events := p.Calendar.Events(date); len(events) > 0 {
			event = strings.Join(events, ", ")
		}
	}

	inferred, err := p.Inferencer.Infer(ctx, api.InferenceRequest{
		Text:     text,
		Category: category,
		Event:    event,
		Language: p.language(),
	})
	if err != nil {
		return nil, fmt.Errorf("inference error: %w", err)
	}

	entry := &api.Entry{
		Date:      date,
		Category:  category,
		Purpose:   inferred.Purpose,
		FilePaths: path,
	}
	if entry.Purpose == "" {
		entry.Purpose = event
	}

	if category == api.CategoryTravel {
		entry.DurationHours = api.TravelDurationHours
		entry.DistanceKM = strconv.FormatFloat(inferred.DistanceKM, 'f', -1, 64)
	}

	assignAmountBucket(entry, inferred.Type, amount)
	if category == api.CategoryFood {
		entry.Meal = amount
	}

	return entry, nil
}

// deriveDate resolves the entry date: document body first, then the file
// name, then the force-include fallback. A date outside the report year is
// a skip unless force-include overrides it to the fallback.
func (p *Processor) deriveDate(text, path string) (string, error) {
	fallback := fmt.Sprintf("%d-01-01", p.Year)

	date := extract.Date(text)
	if date == "" {
		date = extract.FilenameDate(filepath.Base(path))
	}

	if date == "" {
		if !p.ForceInclude {
			return "", ErrNoDate
		}
		p.logger().Warn("no date found, using fallback", "file", path, "date", fallback)
		return fallback, nil
	}

	if !strings.HasPrefix(date, strconv.Itoa(p.Year)) {
		if !p.ForceInclude {
			return "", ErrYearMismatch
		}
		p.logger().Warn("date outside report year, using fallback", "file", path, "date", date, "fallback", fallback)
		return fallback, nil
	}

	return date, nil
}

func (p *Processor) language() string {
	if p.ReportLanguage != "" {
		return p.ReportLanguage
	}
	return "en"
}

func (p *Processor) logger() *slog.Logger {
	if p.Logger != nil {
		return p.Logger
	}
	return slog.Default()
}

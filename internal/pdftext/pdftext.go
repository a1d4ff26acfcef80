// Package pdftext extracts a bounded plain-text excerpt from PDF documents.
package pdftext

import (
	"bytes"
	"fmt"

	"github.com/ledongthuc/pdf"
)

// Extractor reads PDF files and returns the first Limit runes of their
// concatenated page text.
type Extractor struct {
	// Limit is the maximum excerpt length in runes. Zero means no limit.
	Limit int
}

// New returns an Extractor bounded to limit runes.
func New(limit int) *Extractor {
	return &Extractor{Limit: limit}
}

// Extract returns the text excerpt of the PDF at path.
func (e *Extractor) Extract(path string) (string, error) {
	f, r, err := pdf.Open(path)
	if err != nil {
		return "", fmt.Errorf("opening pdf %s: %w", path, err)
	}
	defer f.Close()

	reader, err := r.GetPlainText()
	if err != nil {
		return "", fmt.Errorf("reading pdf text %s: %w", path, err)
	}

	var buf bytes.Buffer
	if _, err := buf.ReadFrom(reader); err != nil {
		return "", fmt.Errorf("reading pdf text %s: %w", path, err)
	}

	return Truncate(buf.String(), e.Limit), nil
}

// Truncate returns at most limit runes of s.
func Truncate(s string, limit int) string {
	if limit <= 0 {
		return s
	}
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit])
}

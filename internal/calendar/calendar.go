// Package calendar provides the date-to-event-labels lookup used to give
// the inference model context about what happened on an invoice's date.
package calendar

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Context maps ISO dates (YYYY-MM-DD) to free-text event labels.
type Context map[string][]string

// Events returns the event labels for date, or nil when none are known.
func (c Context) Events(date string) []string {
	return c[date]
}

// Load reads a calendar context from a YAML file of the form:
//
//	2024-03-10:
//	  - "Client onsite Munich"
//	  - "Team dinner"
//
// An empty path yields an empty context.
func Load(path string) (Context, error) {
	if path == "" {
		return Context{}, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading calendar file: %w", err)
	}

	var ctx Context
	if err := yaml.Unmarshal(data, &ctx); err != nil {
		return nil, fmt.Errorf("parsing calendar file: %w", err)
	}
	if ctx == nil {
		ctx = Context{}
	}
	return ctx, nil
}

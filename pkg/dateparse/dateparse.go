package dateparse

import (
	"fmt"
	"strings"
	"time"

	apperrors "github.com/medikids/clinic-api/pkg/errors"
)

// Layouts accepted by the clinic forms, tried in order. ISO-8601 first,
// then the DD/MM/YYYY style used on the HTML pages.
var layouts = []string{
	"2006-01-02T15:04:05",
	time.RFC3339,
	"2006-01-02",
	"02/01/2006",
}

// Flexible parses a date from form or JSON input. Empty input parses to
// nil rather than the zero time, so optional date fields stay null.
func Flexible(value string) (*time.Time, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil, nil
	}

	for _, layout := range layouts {
		if t, err := time.Parse(layout, value); err == nil {
			return &t, nil
		}
	}

	return nil, apperrors.InvalidArgument(fmt.Sprintf("invalid date format: %q", value), nil)
}

package services

import (
	"errors"
	"fmt"
	"time"
)

// Errors shared across services.
var (
	ErrValidation = errors.New("validation failed")
	ErrDateFormat = errors.New("invalid date format, expected YYYY-MM-DD")
)

const dateLayout = "2006-01-02"

// normalizeDateRange validates optional YYYY-MM-DD bounds and returns them as
// nullable strings for the repositories. Empty strings mean unbounded.
func normalizeDateRange(startDate, endDate string) (*string, *string, error) {
	var start, end *string
	if startDate != "" {
		if _, err := time.Parse(dateLayout, startDate); err != nil {
			return nil, nil, fmt.Errorf("%w: start_date '%s'", ErrDateFormat, startDate)
		}
		start = &startDate
	}
	if endDate != "" {
		if _, err := time.Parse(dateLayout, endDate); err != nil {
			return nil, nil, fmt.Errorf("%w: end_date '%s'", ErrDateFormat, endDate)
		}
		end = &endDate
	}
	if start != nil && end != nil && *start > *end {
		return nil, nil, fmt.Errorf("%w: start_date '%s' is after end_date '%s'", ErrValidation, startDate, endDate)
	}
	return start, end, nil
}

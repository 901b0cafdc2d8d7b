package services

import (
	"math"
	"strings"
	"time"
)

func checkNonNegative(field string, v *float64) error {
	if v == nil {
		return nil
	}
	if math.IsNaN(*v) || math.IsInf(*v, 0) || *v < 0 {
		return validationError(field + " must be a non-negative number")
	}
	return nil
}

// normalizeDate accepts an empty or YYYY-MM-DD date. Empty becomes NULL.
func normalizeDate(date *string) (*string, error) {
	if date == nil {
		return nil, nil
	}
	d := strings.TrimSpace(*date)
	if d == "" {
		return nil, nil
	}
	if _, err := time.Parse(dateLayout, d); err != nil {
		return nil, validationError("date must be formatted as YYYY-MM-DD")
	}
	return &d, nil
}

// creationTime uses the client timestamp when given, otherwise now.
func creationTime(timestamp *string, now time.Time) (time.Time, error) {
	if timestamp == nil || strings.TrimSpace(*timestamp) == "" {
		return now.UTC().Truncate(time.Microsecond), nil
	}
	t, err := time.Parse(time.RFC3339Nano, strings.TrimSpace(*timestamp))
	if err != nil {
		return time.Time{}, validationError("timestamp must be an RFC 3339 date-time")
	}
	return t.UTC().Truncate(time.Microsecond), nil
}

func trimmedPtr(s *string) *string {
	if s == nil {
		return nil
	}
	v := strings.TrimSpace(*s)
	if v == "" {
		return nil
	}
	return &v
}

// nullable dereferences p for use as a query argument, nil becoming NULL.
func nullable[T any](p *T) interface{} {
	if p == nil {
		return nil
	}
	return *p
}

package http

import (
	"net/http"
	"rentpilot/pkg/calendar"
	apperrors "rentpilot/pkg/errors"
)

// ExtractDate reads a YYYY-MM-DD query parameter, returning fallback when it
// is absent.
func ExtractDate(r *http.Request, name string, fallback calendar.Date) (calendar.Date, error) {
	s := r.URL.Query().Get(name)
	if s == "" {
		return fallback, nil
	}
	d, err := calendar.ParseDate(s)
	if err != nil {
		return calendar.Date{}, apperrors.InvalidInput("invalid " + name + " parameter, must be YYYY-MM-DD: " + s)
	}
	return d, nil
}

// ExtractMonth reads a YYYY-MM query parameter, returning fallback when it
// is absent.
func ExtractMonth(r *http.Request, name string, fallback calendar.Month) (calendar.Month, error) {
	s := r.URL.Query().Get(name)
	if s == "" {
		return fallback, nil
	}
	m, err := calendar.ParseMonth(s)
	if err != nil {
		return calendar.Month{}, apperrors.InvalidInput("invalid " + name + " parameter, must be YYYY-MM: " + s)
	}
	return m, nil
}

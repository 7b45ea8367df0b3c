package main

import (
	"fmt"
	"time"
)

// parseMonth interpreta YYYY-MM en UTC. Vacío equivale al mes anterior a now.
func parseMonth(s string, now time.Time) (time.Time, error) {
	if s == "" {
		now = now.UTC()
		return time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC).AddDate(0, -1, 0), nil
	}
	t, err := time.Parse("2006-01", s)
	if err != nil {
		return time.Time{}, fmt.Errorf("--month %q: se espera YYYY-MM", s)
	}
	return t, nil
}

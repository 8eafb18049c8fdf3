// Package month converts "YYYY-MM" tokens into inclusive calendar date ranges.
package month

import (
	"fmt"
	"time"
)

// Range is an inclusive [First, Last] span of calendar days.
type Range struct {
	First time.Time
	Last  time.Time
}

// Parse converts a "YYYY-MM" token into the range covering that whole month,
// using local calendar arithmetic. An empty token means the current month.
func Parse(token string) (Range, error) {
	now := time.Now()

	if token == "" {
		return Of(now.Year(), now.Month()), nil
	}

	t, err := time.ParseInLocation("2006-01", token, time.Local)
	if err != nil {
		return Range{}, fmt.Errorf("invalid month %q: expected YYYY-MM", token)
	}

	return Of(t.Year(), t.Month()), nil
}

// Of returns the range covering the given month. The last day is computed by
// stepping to day zero of the following month, so leap Februaries come out
// right.
func Of(year int, m time.Month) Range {
	first := time.Date(year, m, 1, 0, 0, 0, 0, time.Local)
	last := time.Date(year, m+1, 0, 0, 0, 0, 0, time.Local)

	return Range{First: first, Last: last}
}

// Contains reports whether t falls on a day inside the range.
func (r Range) Contains(t time.Time) bool {
	day := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.Local)
	return !day.Before(r.First) && !day.After(r.Last)
}

// Token renders the range's month back as "YYYY-MM".
func (r Range) Token() string {
	return r.First.Format("2006-01")
}

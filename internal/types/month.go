// Package types implements special types for One Pocket.
package types

import (
	"fmt"
	"regexp"
	"time"
)

var monthPattern = regexp.MustCompile(`^\d{4}-\d{2}$`)

// Month is a calendar month in a specific year.
type Month time.Time

// NewMonth returns a new Month.
func NewMonth(year int, month time.Month) Month {
	return Month(time.Date(year, month, 1, 0, 0, 0, 0, time.UTC))
}

// MonthOf returns the Month in which a time occurs.
func MonthOf(t time.Time) Month {
	year, month, _ := t.Date()
	return Month(time.Date(year, month, 1, 0, 0, 0, 0, time.UTC))
}

// ParseMonth parses a "YYYY-MM" string and returns the Month it represents.
// The format is strict: anything not matching ^\d{4}-\d{2}$ or naming a
// month outside 01-12 is rejected.
func ParseMonth(s string) (Month, error) {
	if !monthPattern.MatchString(s) {
		return Month{}, fmt.Errorf("invalid month %q: must be in YYYY-MM format", s)
	}

	t, err := time.Parse("2006-01", s)
	if err != nil {
		return Month{}, fmt.Errorf("invalid month %q: %w", s, err)
	}
	return MonthOf(t), nil
}

// String returns the month formatted as YYYY-MM.
func (m Month) String() string {
	return fmt.Sprintf("%04d-%02d", time.Time(m).Year(), time.Time(m).Month())
}

// Label returns a human-readable "Jan 2006" label for the month.
func (m Month) Label() string {
	return time.Time(m).Format("Jan 2006")
}

// Bounds returns the first and last instants of the month.
func (m Month) Bounds() (start, end time.Time) {
	t := time.Time(m)
	start = time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
	end = start.AddDate(0, 1, 0).Add(-time.Nanosecond)
	return start, end
}

// AddDate adds a specified amount of years and months.
func (m Month) AddDate(years, months int) Month {
	return MonthOf(time.Time(m).AddDate(years, months, 0))
}

// Before reports whether the month m is before n.
func (m Month) Before(n Month) bool {
	return time.Time(m).Before(time.Time(n))
}

// IsZero reports if the month is the zero value.
func (m Month) IsZero() bool {
	return time.Time(m).IsZero()
}

// LastMonths returns the n months ending at m, oldest first.
func (m Month) LastMonths(n int) []Month {
	if n < 1 {
		return nil
	}
	months := make([]Month, n)
	for i := 0; i < n; i++ {
		months[i] = m.AddDate(0, i-n+1)
	}
	return months
}

package ledger

import (
	"fmt"
	"time"
)

// =============================================================================
// PERIOD - inclusive [Start, End] date range
// =============================================================================

type Period struct {
	Start time.Time
	End   time.Time
}

// Contains reports whether t falls within the period, inclusive on both
// ends. Comparison is at day granularity.
func (p Period) Contains(t time.Time) bool {
	d := dateOnly(t)
	return !d.Before(dateOnly(p.Start)) && !d.After(dateOnly(p.End))
}

func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// =============================================================================
// YEAR-MONTH - "YYYY-MM" textual calendar month
// =============================================================================

// ParseYearMonth parses a "YYYY-MM" string into the first day of that
// month (UTC).
func ParseYearMonth(ym string) (time.Time, error) {
	t, err := time.Parse("2006-01", ym)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid year-month %q: %w", ym, err)
	}
	return t, nil
}

// YearMonthOf formats a date as "YYYY-MM".
func YearMonthOf(t time.Time) string {
	return t.Format("2006-01")
}

// MonthPeriod returns the inclusive period covering a "YYYY-MM" month.
func MonthPeriod(ym string) (Period, error) {
	start, err := ParseYearMonth(ym)
	if err != nil {
		return Period{}, err
	}
	end := start.AddDate(0, 1, -1)
	return Period{Start: start, End: end}, nil
}

// AddMonthsClamped advances a date by n calendar months, preserving the
// day of month where valid and clamping to the last day of the target
// month otherwise (Jan 31 + 1 month = Feb 28/29).
func AddMonthsClamped(t time.Time, n int) time.Time {
	year, month, day := t.Date()
	first := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC).AddDate(0, n, 0)
	last := first.AddDate(0, 1, -1).Day()
	if day > last {
		day = last
	}
	return time.Date(first.Year(), first.Month(), day, 0, 0, 0, 0, time.UTC)
}

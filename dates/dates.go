// Package dates handles the date formats used by the Wikimedia Pageviews
// REST API. The API addresses days with compact 8-digit strings (YYYYMMDD)
// in URL path segments, so this package deals in calendar dates only —
// no clock time, no time zones.
package dates // import "cgt.name/pkg/go-pageviews/dates"

import (
	"fmt"
	"time"
)

// Date is a calendar date. The zero value is not a valid date; construct
// Dates through New or Parse.
type Date struct {
	Year  int
	Month int
	Day   int
}

// ParseError is returned when a date string or (year, month, day) triple
// does not form a structurally valid calendar date. It is always returned
// before any request is issued.
type ParseError struct {
	Input  string
	Reason string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("malformed date %q: %s", e.Input, e.Reason)
}

// New returns the Date for the given year, month, and day.
// It returns a *ParseError if the components do not form a valid
// calendar date (month outside 1-12, day invalid for the month).
// Only structural validity is checked; whether the service has data
// for the date is its own concern.
func New(year, month, day int) (Date, error) {
	input := fmt.Sprintf("%04d-%02d-%02d", year, month, day)
	if year < 1 || year > 9999 {
		return Date{}, &ParseError{input, "year out of range"}
	}
	if month < 1 || month > 12 {
		return Date{}, &ParseError{input, "month out of range"}
	}
	if day < 1 || day > daysIn(year, month) {
		return Date{}, &ParseError{input, "day out of range for month"}
	}
	return Date{year, month, day}, nil
}

// Parse parses a compact 8-digit YYYYMMDD string into a Date.
// It returns a *ParseError if s is not 8 ASCII digits or does not
// form a valid calendar date.
func Parse(s string) (Date, error) {
	if len(s) != 8 {
		return Date{}, &ParseError{s, "must be 8 digits (YYYYMMDD)"}
	}
	for _, c := range s {
		if c < '0' || c > '9' {
			return Date{}, &ParseError{s, "must contain only digits"}
		}
	}
	year := atoi(s[0:4])
	month := atoi(s[4:6])
	day := atoi(s[6:8])
	d, err := New(year, month, day)
	if err != nil {
		return Date{}, &ParseError{s, err.(*ParseError).Reason}
	}
	return d, nil
}

// atoi converts a string of ASCII digits. Callers have already checked
// that every byte is a digit.
func atoi(s string) int {
	n := 0
	for i := 0; i < len(s); i++ {
		n = n*10 + int(s[i]-'0')
	}
	return n
}

// Compact formats the date as the 8-digit YYYYMMDD string the API expects
// in path segments.
func (d Date) Compact() string {
	return fmt.Sprintf("%04d%02d%02d", d.Year, d.Month, d.Day)
}

// String formats the date as YYYY-MM-DD.
func (d Date) String() string {
	return fmt.Sprintf("%04d-%02d-%02d", d.Year, d.Month, d.Day)
}

// Time returns the date as a time.Time at midnight UTC.
func (d Date) Time() time.Time {
	return time.Date(d.Year, time.Month(d.Month), d.Day, 0, 0, 0, 0, time.UTC)
}

// AddDays returns the date n days after d, rolling over month and year
// boundaries.
func (d Date) AddDays(n int) Date {
	t := d.Time().AddDate(0, 0, n)
	return Date{t.Year(), int(t.Month()), t.Day()}
}

// Before reports whether d is earlier than other.
func (d Date) Before(other Date) bool {
	if d.Year != other.Year {
		return d.Year < other.Year
	}
	if d.Month != other.Month {
		return d.Month < other.Month
	}
	return d.Day < other.Day
}

// After reports whether d is later than other.
func (d Date) After(other Date) bool {
	return other.Before(d)
}

// Range returns every date from start through end, inclusive, in order.
// It returns a *ParseError if end is earlier than start.
func Range(start, end Date) ([]Date, error) {
	if end.Before(start) {
		return nil, &ParseError{
			Input:  start.Compact() + "/" + end.Compact(),
			Reason: "end date precedes start date",
		}
	}
	var ds []Date
	for d := start; !end.Before(d); d = d.AddDays(1) {
		ds = append(ds, d)
	}
	return ds, nil
}

// Week returns the rolling 7-day window starting at start: start and the
// six days that follow it. This is not an ISO calendar week.
func Week(start Date) []Date {
	ds := make([]Date, 7)
	for i := range ds {
		ds[i] = start.AddDays(i)
	}
	return ds
}

// Month returns every day of the given month, from the 1st through the
// last day, accounting for leap years.
func Month(year, month int) ([]Date, error) {
	first, err := New(year, month, 1)
	if err != nil {
		return nil, err
	}
	last := Date{year, month, daysIn(year, month)}
	return Range(first, last)
}

func daysIn(year, month int) int {
	// Day 0 of the next month is the last day of this one.
	return time.Date(year, time.Month(month)+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

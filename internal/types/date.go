package types

import (
	"fmt"
	"strings"
	"time"
)

// months is the fixed table of three-letter abbreviations statements print.
// Month resolution never consults locale.
var months = map[string]time.Month{
	"Jan": time.January,
	"Feb": time.February,
	"Mar": time.March,
	"Apr": time.April,
	"May": time.May,
	"Jun": time.June,
	"Jul": time.July,
	"Aug": time.August,
	"Sep": time.September,
	"Oct": time.October,
	"Nov": time.November,
	"Dec": time.December,
}

// PartialDate is a statement date without a year: a day of month and a
// month. Statements only print the year once, so most dates start out
// partial and gain a year during reconciliation.
type PartialDate struct {
	Month time.Month
	Day   int
}

// ParsePartialDate parses dates of the form "05 Jan": exactly two day
// digits, one space, and a known month abbreviation.
func ParsePartialDate(s string) (PartialDate, error) {
	day, mon, ok := strings.Cut(s, " ")
	if !ok || len(day) != 2 || !allDigits(day) {
		return PartialDate{}, fmt.Errorf("%w: bad day in %q", ErrDate, s)
	}
	month, ok := months[mon]
	if !ok {
		return PartialDate{}, fmt.Errorf("%w: bad month in %q", ErrDate, s)
	}
	d := int(day[0]-'0')*10 + int(day[1]-'0')
	if d < 1 || d > 31 {
		return PartialDate{}, fmt.Errorf("%w: day out of range in %q", ErrDate, s)
	}
	return PartialDate{Month: month, Day: d}, nil
}

func allDigits(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

// Before reports whether p falls earlier in a calendar year than o.
func (p PartialDate) Before(o PartialDate) bool {
	if p.Month != o.Month {
		return p.Month < o.Month
	}
	return p.Day < o.Day
}

// InYear pins the partial date to a year. It fails when the combination is
// not a real calendar date rather than letting time.Date normalize it, so
// "29 Feb" only resolves in leap years.
func (p PartialDate) InYear(year int) (time.Time, error) {
	t := time.Date(year, p.Month, p.Day, 0, 0, 0, 0, time.UTC)
	if t.Year() != year || t.Month() != p.Month || t.Day() != p.Day {
		return time.Time{}, fmt.Errorf("%w: %s does not exist in %d", ErrDate, p, year)
	}
	return t, nil
}

func (p PartialDate) String() string {
	return fmt.Sprintf("%02d %s", p.Day, p.Month.String()[:3])
}

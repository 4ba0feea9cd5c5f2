// Package dateformat converts trip dates between the DD-MON-YYYY text users
// type into forms and the YYYY-MM-DD form the database stores.
//
// Nothing in this package returns an error for bad input. Failure is reported
// as false or an empty string so form handlers can always render a result.
package dateformat

import (
	"fmt"
	"time"
)

// Validation messages returned by Formatter.ValidationError.
// Each input maps to at most one of them.
const (
	MsgFormat      = "Please use format DD-MON-YYYY (e.g., 15-JAN-2025)"
	MsgInvalidDate = "Please enter a valid date"
	MsgPastDate    = "Date cannot be in the past"
)

// StorageLayout is the time layout of the storage form.
const StorageLayout = "2006-01-02"

// months is indexed by time.Month-1.
var months = [12]string{"JAN", "FEB", "MAR", "APR", "MAY", "JUN", "JUL", "AUG", "SEP", "OCT", "NOV", "DEC"}

// Date is a whole calendar day with no time-of-day or zone.
type Date struct {
	Year  int
	Month time.Month
	Day   int
}

// FromTime returns the calendar day of t in t's own location.
func FromTime(t time.Time) Date {
	y, m, d := t.Date()
	return Date{Year: y, Month: m, Day: d}
}

// Time returns midnight of d in loc. A nil loc means UTC.
func (d Date) Time(loc *time.Location) time.Time {
	if loc == nil {
		loc = time.UTC
	}
	return time.Date(d.Year, d.Month, d.Day, 0, 0, 0, 0, loc)
}

// Compare returns -1, 0 or +1 as d is before, equal to or after o.
func (d Date) Compare(o Date) int {
	switch {
	case d.Year != o.Year:
		return sign(d.Year - o.Year)
	case d.Month != o.Month:
		return sign(int(d.Month) - int(o.Month))
	default:
		return sign(d.Day - o.Day)
	}
}

// Before reports whether d is strictly earlier than o.
func (d Date) Before(o Date) bool { return d.Compare(o) < 0 }

// Storage renders d as YYYY-MM-DD.
func (d Date) Storage() string {
	return fmt.Sprintf("%04d-%02d-%02d", d.Year, int(d.Month), d.Day)
}

// String renders d in display form.
func (d Date) String() string { return Format(d) }

// Format renders d as DD-MON-YYYY. The year is written as-is without padding.
// A month outside 1..12 renders as the empty string.
func Format(d Date) string {
	if d.Month < time.January || d.Month > time.December {
		return ""
	}
	return fmt.Sprintf("%02d-%s-%d", d.Day, months[d.Month-1], d.Year)
}

// Parse decodes a display-form string. It accepts exactly two digits, a
// hyphen, one of the twelve uppercase month tokens, a hyphen and four digits,
// and the fields must name a real calendar day.
func Parse(s string) (Date, bool) {
	d, ok := lex(s)
	if !ok || !d.real() {
		return Date{}, false
	}
	return d, true
}

// ValidateFormat reports whether s is empty or a parseable display date.
// Required fields must check for emptiness separately.
func ValidateFormat(s string) bool {
	if s == "" {
		return true
	}
	_, ok := Parse(s)
	return ok
}

// ToStorage converts a display-form date to YYYY-MM-DD, or "" if s does not parse.
func ToStorage(s string) string {
	d, ok := Parse(s)
	if !ok {
		return ""
	}
	return d.Storage()
}

// storageLayouts are tried in order by FromStorage.
var storageLayouts = []string{
	StorageLayout,
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
}

// FromStorage renders a stored date (ISO date or timestamp) in display form,
// or returns "" when s is not a recognizable date. The calendar day is taken
// as written, without converting between zones.
func FromStorage(s string) string {
	for _, layout := range storageLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return Format(FromTime(t))
		}
	}
	return ""
}

// FormatInputValue reformats raw keystrokes into the DD-MON-YYYY shape while
// the user is typing. Only letters and digits are kept, uppercased, and at
// most nine of them. Hyphens are inserted once the day slot (2 chars) and the
// month slot (3 chars) are full. No validation is done.
func FormatInputValue(raw string) string {
	cleaned := make([]byte, 0, 9)
	for i := 0; i < len(raw) && len(cleaned) < 9; i++ {
		c := raw[i]
		switch {
		case c >= 'a' && c <= 'z':
			cleaned = append(cleaned, c-'a'+'A')
		case c >= 'A' && c <= 'Z', c >= '0' && c <= '9':
			cleaned = append(cleaned, c)
		}
	}

	n := len(cleaned)
	out := string(cleaned[:min(n, 2)])
	if n > 2 {
		out += "-" + string(cleaned[2:min(n, 5)])
	}
	if n > 5 {
		out += "-" + string(cleaned[5:n])
	}
	return out
}

// lex checks the lexical shape of s and extracts its fields without checking
// that they form a real date.
func lex(s string) (Date, bool) {
	if len(s) != 11 || s[2] != '-' || s[6] != '-' {
		return Date{}, false
	}
	day, ok := atoi(s[0:2])
	if !ok {
		return Date{}, false
	}
	month, ok := monthOf(s[3:6])
	if !ok {
		return Date{}, false
	}
	year, ok := atoi(s[7:11])
	if !ok {
		return Date{}, false
	}
	return Date{Year: year, Month: month, Day: day}, true
}

// real rebuilds d through time.Date and requires every field to survive.
// time.Date normalizes out-of-range days (31-FEB becomes 02-MAR), which is
// what this check catches. Years below 1000 are rejected because Format does
// not pad them back to four digits.
func (d Date) real() bool {
	if d.Year < 1000 {
		return false
	}
	return FromTime(d.Time(time.UTC)) == d
}

func monthOf(tok string) (time.Month, bool) {
	for i, m := range months {
		if m == tok {
			return time.Month(i + 1), true
		}
	}
	return 0, false
}

// atoi parses an all-digit string. Signs and spaces are rejected.
func atoi(s string) (int, bool) {
	n := 0
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c < '0' || c > '9' {
			return 0, false
		}
		n = n*10 + int(c-'0')
	}
	return n, true
}

func sign(n int) int {
	switch {
	case n < 0:
		return -1
	case n > 0:
		return 1
	}
	return 0
}

package dateformat

import "time"

// Formatter holds the clock used by the operations that compare against today.
// The zero-option Formatter reads time.Now in time.Local. It is safe for
// concurrent use.
type Formatter struct {
	now func() time.Time
	loc *time.Location
}

// Option configures a Formatter.
type Option func(*Formatter)

// WithClock replaces time.Now. Tests use it to pin "today".
func WithClock(now func() time.Time) Option {
	return func(f *Formatter) {
		if now != nil {
			f.now = now
		}
	}
}

// WithLocation sets the zone whose midnight defines "today".
func WithLocation(loc *time.Location) Option {
	return func(f *Formatter) {
		f.loc = loc
	}
}

// New builds a Formatter.
func New(opts ...Option) *Formatter {
	f := &Formatter{now: time.Now}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// TodayDate returns the current calendar day. It is read on every call.
func (f *Formatter) TodayDate() Date {
	loc := f.loc
	if loc == nil {
		loc = time.Local
	}
	return FromTime(f.now().In(loc))
}

// Today returns the current day in display form.
func (f *Formatter) Today() string {
	return Format(f.TodayDate())
}

// IsValidForFutureTrip reports whether s parses to today or a later day.
// An empty string is not a valid trip date.
func (f *Formatter) IsValidForFutureTrip(s string) bool {
	if !ValidateFormat(s) {
		return false
	}
	d, ok := Parse(s)
	if !ok {
		return false
	}
	return !d.Before(f.TodayDate())
}

// ValidationError returns the message to show under a date field, or "" when
// there is nothing to report. Empty input is not an error here; required
// fields check that themselves. Checks run in order: shape, calendar
// validity, then past dates.
func (f *Formatter) ValidationError(s string) string {
	if s == "" {
		return ""
	}
	d, ok := lex(s)
	if !ok {
		return MsgFormat
	}
	if !d.real() {
		return MsgInvalidDate
	}
	if d.Before(f.TodayDate()) {
		return MsgPastDate
	}
	return ""
}

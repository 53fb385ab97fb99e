// Package daterange turns a start/end calendar-date pair into the ordered,
// inclusive sequence of days the pipeline iterates. Validation failures here
// are the only fatal errors of a run: they abort before any network I/O.
package daterange

import (
	"fmt"
	"time"
)

// Layout is the canonical date form accepted at the pipeline boundary.
const Layout = "2006-01-02"

// MaxSpanDays bounds the length of a requested range.
const MaxSpanDays = 365

// ErrorKind classifies a range validation failure.
type ErrorKind string

const (
	KindInvalidFormat ErrorKind = "invalid_date_format"
	KindInvalidRange  ErrorKind = "invalid_date_range"
)

// Error is a date-range validation failure.
type Error struct {
	Kind    ErrorKind
	Message string
	Cause   error
}

func (e *Error) Error() string {
	return fmt.Sprintf("[%s] %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// KindOf returns the ErrorKind of err, or "" for foreign errors.
func KindOf(err error) ErrorKind {
	if e, ok := err.(*Error); ok {
		return e.Kind
	}
	return ""
}

// Generate returns every calendar day from start to end inclusive, one entry
// per day. Weekends and holidays are passed through; dates without a
// published bulletin simply fail later at fetch time.
func Generate(start, end string) ([]time.Time, error) {
	from, err := time.Parse(Layout, start)
	if err != nil {
		return nil, &Error{
			Kind:    KindInvalidFormat,
			Message: fmt.Sprintf("start date %q is not in YYYY-MM-DD form", start),
			Cause:   err,
		}
	}
	to, err := time.Parse(Layout, end)
	if err != nil {
		return nil, &Error{
			Kind:    KindInvalidFormat,
			Message: fmt.Sprintf("end date %q is not in YYYY-MM-DD form", end),
			Cause:   err,
		}
	}

	if from.After(to) {
		return nil, &Error{
			Kind:    KindInvalidRange,
			Message: fmt.Sprintf("start date %s is after end date %s", start, end),
		}
	}
	if days := int(to.Sub(from).Hours() / 24); days > MaxSpanDays {
		return nil, &Error{
			Kind:    KindInvalidRange,
			Message: fmt.Sprintf("range spans %d days, maximum is %d", days, MaxSpanDays),
		}
	}

	var dates []time.Time
	for d := from; !d.After(to); d = d.AddDate(0, 0, 1) {
		dates = append(dates, d)
	}
	return dates, nil
}

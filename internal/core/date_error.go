package core

import "fmt"

// DateErrorKind tells which rule a year-month-day triple broke.
type DateErrorKind int

const (
	// UnsupportedYear: year outside MinYear..=MaxYear.
	UnsupportedYear DateErrorKind = iota
	// NotBissextile: Feb 29 of a non-leap year.
	NotBissextile
	// MonthTooShort: Feb 30, Feb 31, or day 31 of a 30-day month.
	MonthTooShort
	// InvalidDay: day outside 1..=31.
	InvalidDay
	// InvalidMonth: month outside Jan..=Dec.
	InvalidMonth
)

// DateError reports an impossible date. Only the fields relevant to Kind
// are set.
type DateError struct {
	Kind  DateErrorKind
	Year  int
	Month Month
	Day   int
}

func (e *DateError) Error() string {
	switch e.Kind {
	case UnsupportedYear:
		return fmt.Sprintf("%d is outside of the supported range for years", e.Year)
	case NotBissextile:
		return fmt.Sprintf("%d is not bissextile, Feb 29 does not exist", e.Year)
	case MonthTooShort:
		return fmt.Sprintf("%s is a short month, it does not have a %dth day", e.Month, e.Day)
	case InvalidMonth:
		return fmt.Sprintf("%d is not a valid month", int(e.Month))
	default:
		return fmt.Sprintf("%d is not a valid day", e.Day)
	}
}

// FixHint suggests how to turn the input into a valid date.
func (e *DateError) FixHint() string {
	switch e.Kind {
	case UnsupportedYear:
		return fmt.Sprintf("year should be between %d and %d inclusive", MinYear, MaxYear)
	case NotBissextile:
		return fmt.Sprintf("did you mean %d-Feb-28 or %d-Mar-01 ?", e.Year, e.Year)
	case MonthTooShort:
		length := 30
		if e.Month == Feb {
			length = max(28, e.Day-1)
		}
		return fmt.Sprintf("%s is only %d days long", e.Month, length)
	case InvalidMonth:
		return "month should be one of Jan, Feb, ..., Dec"
	default:
		return fmt.Sprintf("%d is not in the range 1 ..= 31", e.Day)
	}
}

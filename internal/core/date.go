// Package core provides the temporal and ledger primitives of billig.
//
// Dates are day-precise YYYY-Mmm-DD values, not instants. They support
// jumps expressed in days, weeks, months or years, weekday calculations and
// snapping to the boundaries of a week, month or year. On top of dates the
// package builds intervals, spans, prorated entries and calendars of
// per-category summaries.
package core

import (
	"fmt"
	"time"
)

const (
	// MinYear is the first supported year.
	MinYear = 1000
	// MaxYear is the last supported year.
	MaxYear = 9999
)

// Date is a calendar day. The zero value is not a valid date; build dates
// with NewDate.
type Date struct {
	year  int
	month Month
	day   int
}

var (
	// MinDate sorts before every valid date.
	MinDate = Date{year: MinYear - 1, month: Jan, day: 1}
	// MaxDate sorts after every valid date.
	MaxDate = Date{year: MaxYear + 1, month: Dec, day: 31}
)

// cumulative number of days before the first of each month, non-leap year
var monthOffsets = [12]int{0, 31, 59, 90, 120, 151, 181, 212, 243, 273, 304, 334}

// NewDate validates year-month-day. The returned error is always a *DateError.
func NewDate(year int, month Month, day int) (Date, error) {
	switch {
	case year < MinYear || year > MaxYear:
		return Date{}, &DateError{Kind: UnsupportedYear, Year: year}
	case month < Jan || month > Dec:
		return Date{}, &DateError{Kind: InvalidMonth, Month: month}
	case day < 1 || day > 31:
		return Date{}, &DateError{Kind: InvalidDay, Day: day}
	case day <= month.Days(year):
		return Date{year: year, month: month, day: day}, nil
	case day >= 30:
		return Date{}, &DateError{Kind: MonthTooShort, Month: month, Day: day}
	default:
		return Date{}, &DateError{Kind: NotBissextile, Year: year}
	}
}

// MustDate is NewDate for constants known to be valid. It panics otherwise.
func MustDate(year int, month Month, day int) Date {
	d, err := NewDate(year, month, day)
	if err != nil {
		panic(err)
	}
	return d
}

// FromTime is the calendar day of t in its own location.
func FromTime(t time.Time) (Date, error) {
	return NewDate(t.Year(), Month(t.Month()), t.Day())
}

func (d Date) Year() int    { return d.year }
func (d Date) Month() Month { return d.month }
func (d Date) Day() int     { return d.day }

// String formats the date as YYYY-Mmm-DD.
func (d Date) String() string {
	return fmt.Sprintf("%d-%s-%02d", d.year, d.month, d.day)
}

// Index bijects dates onto integers: d.Index()+1 == d.Next().Index().
func (d Date) Index() int {
	years := d.year
	if d.month <= Feb {
		years--
	}
	leaps := years/4 - years/100 + years/400
	return d.year*365 + d.day + monthOffsets[d.month-1] + leaps
}

// Weekday of the date, weeks start on Monday.
func (d Date) Weekday() Weekday {
	// 2 is the weekday offset of the index origin
	return Weekday((d.Index() - 2) % 7)
}

// Compare returns -1, 0 or +1 depending on whether d is before, equal to
// or after other.
func (d Date) Compare(other Date) int {
	switch {
	case d.year != other.year:
		return sign(d.year - other.year)
	case d.month != other.month:
		return sign(int(d.month) - int(other.month))
	default:
		return sign(d.day - other.day)
	}
}

func (d Date) Before(other Date) bool { return d.Compare(other) < 0 }
func (d Date) After(other Date) bool  { return d.Compare(other) > 0 }

// Lowest and Highest make Date usable as an interval bound.
func (Date) Lowest() Date  { return MinDate }
func (Date) Highest() Date { return MaxDate }

// Next is the day after d.
func (d Date) Next() Date {
	if d.day < d.month.Days(d.year) {
		d.day++
		return d
	}
	if d.month == Dec {
		return Date{year: d.year + 1, month: Jan, day: 1}
	}
	return Date{year: d.year, month: d.month.Next(), day: 1}
}

// Prev is the day before d.
func (d Date) Prev() Date {
	if d.day > 1 {
		d.day--
		return d
	}
	if d.month == Jan {
		return Date{year: d.year - 1, month: Dec, day: 31}
	}
	m := d.month.Prev()
	return Date{year: d.year, month: m, day: m.Days(d.year)}
}

// JumpDay moves count days forward (or backward if negative).
// The result always satisfies d.JumpDay(n).Index() == d.Index()+n.
func (d Date) JumpDay(count int) Date {
	target := d.Index() + count
	cur := d
	if count > 30 || count < -30 {
		// land in the right month before walking
		cur = cur.JumpYear(count / 365)
		cur = cur.JumpMonth((target - cur.Index()) / 31)
	}
	for rest := target - cur.Index(); rest != 0; rest = target - cur.Index() {
		if rest > 0 {
			room := cur.month.Days(cur.year) - cur.day
			if room >= rest {
				cur.day += rest
				continue
			}
			cur.day += room
			cur = cur.Next()
		} else {
			room := cur.day - 1
			if room >= -rest {
				cur.day += rest
				continue
			}
			cur.day = 1
			cur = cur.Prev()
		}
	}
	return cur
}

// JumpMonth moves count months, clamping the day to the length of
// the target month: 2000-Jan-31 + 1 month is 2000-Feb-29.
func (d Date) JumpMonth(count int) Date {
	year := d.year
	month := int(d.month) - 1 + count
	year += month / 12
	month %= 12
	if month < 0 {
		month += 12
		year--
	}
	m := Month(month + 1)
	return Date{year: year, month: m, day: min(d.day, m.Days(year))}
}

// JumpYear moves count years. Feb 29 becomes Feb 28 in non-leap years.
func (d Date) JumpYear(count int) Date {
	year := d.year + count
	if d.month == Feb && d.day == 29 && !IsLeap(year) {
		return Date{year: year, month: Feb, day: 28}
	}
	return Date{year: year, month: d.month, day: d.day}
}

func (d Date) StartOfWeek() Date  { return d.JumpDay(-int(d.Weekday())) }
func (d Date) EndOfWeek() Date    { return d.JumpDay(6 - int(d.Weekday())) }
func (d Date) StartOfMonth() Date { return Date{year: d.year, month: d.month, day: 1} }
func (d Date) EndOfMonth() Date {
	return Date{year: d.year, month: d.month, day: d.month.Days(d.year)}
}
func (d Date) StartOfYear() Date { return Date{year: d.year, month: Jan, day: 1} }
func (d Date) EndOfYear() Date   { return Date{year: d.year, month: Dec, day: 31} }

// CapDay steps backward while the day is at least day and the month has
// not changed. It keeps "same day next month" anniversaries inside the
// month they belong to: Mar-28 capped at 28 is Mar-27, Feb-01 capped at 1
// is Jan-31.
func (d Date) CapDay(day int) Date {
	m := d.month
	for d.day >= day && d.month == m {
		d = d.Prev()
	}
	return d
}

// IsLeap applies the 400/100/4 rule.
func IsLeap(year int) bool {
	switch {
	case year%400 == 0:
		return true
	case year%100 == 0:
		return false
	default:
		return year%4 == 0
	}
}

func sign(n int) int {
	switch {
	case n < 0:
		return -1
	case n > 0:
		return 1
	default:
		return 0
	}
}

package core

import (
	"fmt"
)

// Month is one of the twelve months, Jan is 1.
type Month int

const (
	Jan Month = iota + 1
	Feb
	Mar
	Apr
	May
	Jun
	Jul
	Aug
	Sep
	Oct
	Nov
	Dec
)

var monthNames = [12]string{"Jan", "Feb", "Mar", "Apr", "May", "Jun", "Jul", "Aug", "Sep", "Oct", "Nov", "Dec"}

func (m Month) String() string {
	if m < Jan || m > Dec {
		return fmt.Sprintf("Month(%d)", int(m))
	}
	return monthNames[m-1]
}

// ParseMonth reads a 3-letter month name such as "Jan".
func ParseMonth(s string) (Month, bool) {
	for i, name := range monthNames {
		if s == name {
			return Month(i + 1), true
		}
	}
	return 0, false
}

// Next wraps from Dec to Jan.
func (m Month) Next() Month { return m%12 + 1 }

// Prev wraps from Jan to Dec.
func (m Month) Prev() Month { return (m+10)%12 + 1 }

// Days is the number of days of m in the given year.
func (m Month) Days(year int) int {
	switch m {
	case Apr, Jun, Sep, Nov:
		return 30
	case Feb:
		if IsLeap(year) {
			return 29
		}
		return 28
	default:
		return 31
	}
}

// Weekday uses the Monday-first convention, Mon is 0.
type Weekday int

const (
	Mon Weekday = iota
	Tue
	Wed
	Thu
	Fri
	Sat
	Sun
)

var weekdayNames = [7]string{"Mon", "Tue", "Wed", "Thu", "Fri", "Sat", "Sun"}

func (w Weekday) String() string {
	if w < Mon || w > Sun {
		return fmt.Sprintf("Weekday(%d)", int(w))
	}
	return weekdayNames[w]
}

func (w Weekday) Next() Weekday { return (w + 1) % 7 }
func (w Weekday) Prev() Weekday { return (w + 6) % 7 }


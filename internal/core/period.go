package core

import (
	"fmt"
	"strings"

	"billig/internal/diag"
)

// Period is an inclusive range of days.
type Period = Between[Date]

// NewPeriod is a shorthand for Period{Lo: lo, Hi: hi}.
func NewPeriod(lo, hi Date) Period {
	return Period{Lo: lo, Hi: hi}
}

// Days is the number of days in p, zero or negative when p is inverted.
func Days(p Period) int {
	return p.Hi.Index() - p.Lo.Index() + 1
}

// FormatPeriod renders p compactly by merging the components its two ends
// share: a whole year is "2020", a whole month "2020-Jan", a single day
// "2020-Jan-15", and "2020-Jan-15..Mar-17" keeps the common year once.
// Open ends (MinDate, MaxDate) are omitted and an inverted period is "()".
func FormatPeriod(p Period) string {
	if p.IsEmpty() {
		return "()"
	}
	var b strings.Builder
	lo, hi := p.Lo, p.Hi
	if lo.year != hi.year || lo == MinDate || hi == MaxDate {
		formatYears(&b, lo, hi)
		return b.String()
	}
	fmt.Fprintf(&b, "%d", lo.year)
	switch {
	case lo.month == Jan && lo.day == 1 && hi.month == Dec && hi.day == 31:
	case lo.month == hi.month:
		fmt.Fprintf(&b, "-%s", lo.month)
		formatDays(&b, lo, hi)
	default:
		fmt.Fprintf(&b, "-%s", lo.month)
		if lo.day != 1 {
			fmt.Fprintf(&b, "-%d", lo.day)
		}
		fmt.Fprintf(&b, "..%s", hi.month)
		if hi.day != hi.month.Days(hi.year) {
			fmt.Fprintf(&b, "-%d", hi.day)
		}
	}
	return b.String()
}

func formatDays(b *strings.Builder, lo, hi Date) {
	switch {
	case lo.day == 1 && hi.day == hi.month.Days(hi.year):
	case lo.day == hi.day:
		fmt.Fprintf(b, "-%d", lo.day)
	default:
		fmt.Fprintf(b, "-%d..%d", lo.day, hi.day)
	}
}

func formatYears(b *strings.Builder, lo, hi Date) {
	if lo != MinDate {
		fmt.Fprintf(b, "%d", lo.year)
		if lo.month != Jan || lo.day != 1 {
			fmt.Fprintf(b, "-%s", lo.month)
			if lo.day != 1 {
				fmt.Fprintf(b, "-%d", lo.day)
			}
		}
	}
	b.WriteString("..")
	if hi != MaxDate {
		fmt.Fprintf(b, "%d", hi.year)
		if hi.month != Dec || hi.day != 31 {
			fmt.Fprintf(b, "-%s", hi.month)
			if hi.day != hi.month.Days(hi.year) {
				fmt.Fprintf(b, "-%d", hi.day)
			}
		}
	}
}

// BoundPeriod turns an explicit period into concrete days. A one-sided
// interval is closed by date: After(s) becomes s..date and Before(e)
// becomes date..e. Empty, unbounded and inverted results are reported
// into rec.
func BoundPeriod(rec *diag.Record, loc diag.Loc, iv Interval[Date], date Date) (Period, bool) {
	var p Period
	switch iv.Kind() {
	case KindEmpty, KindUnbounded:
		label := "Period cannot be empty"
		if iv.Kind() == KindUnbounded {
			label = "Period cannot be unbounded"
		}
		diag.New(label).
			Span(loc, "provided here").
			Text("Explicit periods must have a beginning and/or an end").
			Hint("use START.. or ..END or START..END").
			Hint("for a single day simply use `span Day`").
			Register(rec)
		return Period{}, false
	case KindAfter:
		p = NewPeriod(iv.lo, date)
	case KindBefore:
		p = NewPeriod(date, iv.hi)
	default:
		p = NewPeriod(iv.lo, iv.hi)
	}
	if p.IsEmpty() {
		diag.New("Period is accidentally empty").
			Span(loc, "provided here").
			Text("This period has its END smaller than START").
			Hint("empty periods are forbidden here").
			Register(rec)
		return Period{}, false
	}
	return p, true
}

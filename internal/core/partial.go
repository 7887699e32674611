package core

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"

	"billig/internal/diag"
)

// PartialDate is a date with any of its components left out, as typed by
// a user: "2020-Jan-15", "2020-Jan", "2020", "Jan-15", "Jan" or "15".
type PartialDate struct {
	Year  int
	Month Month
	Day   int

	HasYear  bool
	HasMonth bool
	HasDay   bool
}

func (p PartialDate) String() string {
	var parts []string
	if p.HasYear {
		parts = append(parts, strconv.Itoa(p.Year))
	}
	if p.HasMonth {
		parts = append(parts, p.Month.String())
	}
	if p.HasDay {
		parts = append(parts, strconv.Itoa(p.Day))
	}
	return strings.Join(parts, "-")
}

func (p PartialDate) withYear(year int) PartialDate {
	if !p.HasYear {
		p.Year, p.HasYear = year, true
	}
	return p
}

func (p PartialDate) withMonth(m Month) PartialDate {
	if !p.HasMonth {
		p.Month, p.HasMonth = m, true
	}
	return p
}

// complete fills the missing month and day with the first (starting) or
// last day of the period the partial date designates.
func (p PartialDate) complete(rec *diag.Record, loc diag.Loc, starting bool) (Date, bool) {
	if !p.HasYear {
		diag.New("Unspecified year").
			Span(loc, "provided here").
			Text("Impossible to guess year").
			Hint("add YYYY- in front to indicate year of interest").
			Register(rec)
		return Date{}, false
	}
	month := p.Month
	if !p.HasMonth {
		month = Jan
		if !starting {
			month = Dec
		}
	}
	day := p.Day
	if !p.HasDay {
		day = 1
		if !starting {
			day = month.Days(p.Year)
		}
	}
	d, err := NewDate(p.Year, month, day)
	if err != nil {
		de := err.(*DateError)
		diag.New("Invalid date").
			Span(loc, "provided here").
			Text(de.Error()).
			Hint("choose a date that exists").
			Hint(de.FixHint()).
			Register(rec)
		return Date{}, false
	}
	return d, true
}

// PartialInterval is an interval whose bounds are partial dates.
// Start is set for KindAfter and KindBetween, End for KindBefore and
// KindBetween.
type PartialInterval struct {
	Kind  IntervalKind
	Start PartialDate
	End   PartialDate
}

func (pi PartialInterval) String() string {
	switch pi.Kind {
	case KindBetween:
		return pi.Start.String() + ".." + pi.End.String()
	case KindAfter:
		return pi.Start.String() + ".."
	case KindBefore:
		return ".." + pi.End.String()
	case KindUnbounded:
		return ".."
	default:
		return "()"
	}
}

// Make resolves the partial bounds into dates. Missing years, and missing
// months of bounds that name a day, are taken from reference; the end of a
// Between inherits year and month from its start. Without a reference a
// bound lacking its year is reported as "Unspecified year".
func (pi PartialInterval) Make(rec *diag.Record, loc diag.Loc, reference *Date) (Interval[Date], bool) {
	switch pi.Kind {
	case KindEmpty:
		return Empty[Date](), true
	case KindUnbounded:
		return Unbounded[Date](), true
	case KindAfter:
		start, ok := pi.Start.defaulted(reference, Jan).complete(rec, loc, true)
		if !ok {
			return Interval[Date]{}, false
		}
		return After(start), true
	case KindBefore:
		end, ok := pi.End.defaulted(reference, Dec).complete(rec, loc, false)
		if !ok {
			return Interval[Date]{}, false
		}
		return Before(end), true
	}

	start, ok := pi.Start.defaulted(reference, Jan).complete(rec, loc, true)
	if !ok {
		return Interval[Date]{}, false
	}
	end := pi.End
	if !end.HasYear {
		end = end.withYear(start.year)
		switch {
		case pi.Start.HasMonth:
			end = end.withMonth(pi.Start.Month)
		case !end.HasDay:
			end = end.withMonth(Dec)
		case reference != nil:
			end = end.withMonth(reference.month)
		default:
			end = end.withMonth(start.month)
		}
	}
	last, ok := end.complete(rec, loc, false)
	if !ok {
		return Interval[Date]{}, false
	}
	if start.After(last) {
		diag.New("End before start of timeframe").
			Span(loc, "this timeframe").
			Text("Timeframe is empty").
			Hint("If this is intentionnal consider using '()' instead").
			Register(rec)
		return Interval[Date]{}, false
	}
	return Closed(start, last), true
}

// defaulted applies the reference year, and a month: whole when no day is
// given, otherwise the reference month.
func (p PartialDate) defaulted(reference *Date, whole Month) PartialDate {
	if reference == nil {
		return p
	}
	p = p.withYear(reference.year)
	if p.HasDay {
		return p.withMonth(reference.month)
	}
	return p.withMonth(whole)
}

// ParsePartialInterval reads the period syntax: "()", "..", "A..", "..B",
// "A..B" or a lone "A" meaning A..A, where A and B are partial dates.
func ParsePartialInterval(s string) (PartialInterval, error) {
	s = strings.TrimSpace(s)
	switch s {
	case "()":
		return PartialInterval{Kind: KindEmpty}, nil
	case "..":
		return PartialInterval{Kind: KindUnbounded}, nil
	case "":
		return PartialInterval{}, fmt.Errorf("%w: empty period", ErrInvalidPeriod)
	}
	lhs, rhs, between := strings.Cut(s, "..")
	if !between {
		d, err := ParsePartialDate(s)
		if err != nil {
			return PartialInterval{}, err
		}
		return PartialInterval{Kind: KindBetween, Start: d, End: d}, nil
	}
	if strings.Contains(rhs, "..") {
		return PartialInterval{}, fmt.Errorf("%w: %q has more than one '..'", ErrInvalidPeriod, s)
	}
	var pi PartialInterval
	var err error
	switch {
	case lhs == "":
		pi.Kind = KindBefore
		pi.End, err = ParsePartialDate(rhs)
	case rhs == "":
		pi.Kind = KindAfter
		pi.Start, err = ParsePartialDate(lhs)
	default:
		pi.Kind = KindBetween
		if pi.Start, err = ParsePartialDate(lhs); err == nil {
			pi.End, err = ParsePartialDate(rhs)
		}
	}
	if err != nil {
		return PartialInterval{}, err
	}
	return pi, nil
}

// ParsePartialDate reads "YYYY[-Mmm[-DD]]", "Mmm[-DD]" or "DD". Only the
// syntax is checked: "Feb-31" parses and is rejected once completed.
func ParsePartialDate(s string) (PartialDate, error) {
	var p PartialDate
	parts := strings.Split(s, "-")
	bad := func(why string) (PartialDate, error) {
		return PartialDate{}, fmt.Errorf("%w: %q %s", ErrInvalidPeriod, s, why)
	}
	if len(parts) > 3 {
		return bad("has too many components")
	}
	i := 0
	if isDigits(parts[0]) && len(parts[0]) == 4 {
		p.Year, _ = strconv.Atoi(parts[0])
		p.HasYear = true
		i++
	}
	if i < len(parts) && isLetters(parts[i]) {
		m, ok := ParseMonth(parts[i])
		if !ok {
			return bad(fmt.Sprintf("'%s' is not a valid month", parts[i]))
		}
		p.Month, p.HasMonth = m, true
		i++
	} else if p.HasYear && i < len(parts) {
		return bad("expects a month after the year")
	}
	if i < len(parts) {
		if !isDigits(parts[i]) || len(parts[i]) > 2 {
			return bad("expects a 1- or 2-digit day")
		}
		p.Day, _ = strconv.Atoi(parts[i])
		p.HasDay = true
		i++
	}
	if i != len(parts) {
		return bad("has trailing components")
	}
	return p, nil
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

func isLetters(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if !unicode.IsLetter(r) {
			return false
		}
	}
	return true
}

package core

import "fmt"

// Entry is a single monetary fact: an amount spread uniformly over the
// days of a period. Entries are values; prorating builds new ones.
type Entry struct {
	Value    Amount
	Category Category
	Period   Period
	Tag      *string

	length int
}

// NewEntry caches the length of period for constant-time prorating.
func NewEntry(value Amount, cat Category, period Period, tag *string) Entry {
	return Entry{
		Value:    value,
		Category: cat,
		Period:   period,
		Tag:      tag,
		length:   Days(period),
	}
}

// Length is the number of days of the entry period.
func (e Entry) Length() int { return e.length }

// TagText is the tag or the empty string.
func (e Entry) TagText() string {
	if e.Tag == nil {
		return ""
	}
	return *e.Tag
}

// IntersectLoss restricts the entry to period and drops its tag. The value
// kept is
//
//	v*(end+1-lo)/len - v*(start-lo)/len
//
// with day indices and truncating integer division, so the pieces of any
// partition of the entry period add up to exactly v. It returns false when
// the periods do not overlap.
func (e Entry) IntersectLoss(period Period) (Entry, bool) {
	start := maxOf(period.Lo, e.Period.Lo)
	end := minOf(period.Hi, e.Period.Hi)
	if start.After(end) {
		return Entry{}, false
	}
	v := int64(e.Value)
	length := int64(e.length)
	old := int64(e.Period.Lo.Index())
	beforeEnd := v * (int64(end.Index()) + 1 - old) / length
	beforeStart := v * (int64(start.Index()) - old) / length
	return NewEntry(Amount(beforeEnd-beforeStart), e.Category, NewPeriod(start, end), nil), true
}

// Intersect is IntersectLoss keeping the tag.
func (e Entry) Intersect(period Period) (Entry, bool) {
	out, ok := e.IntersectLoss(period)
	if ok {
		out.Tag = e.Tag
	}
	return out, ok
}

func (e Entry) String() string {
	s := fmt.Sprintf("%s %s %s", FormatPeriod(e.Period), e.Category, e.Value)
	if e.Tag != nil {
		s += fmt.Sprintf(" %q", *e.Tag)
	}
	return s
}

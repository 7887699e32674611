package core

import (
	"fmt"
	"log/slog"
)

// Summary holds per-category totals for one reporting bucket.
type Summary struct {
	Period     Period
	Total      Amount
	Categories [CategoryCount]Amount
}

// NewSummary returns a blank summary for period.
func NewSummary(period Period) Summary {
	return Summary{Period: period}
}

// Query is the subtotal of one category.
func (s Summary) Query(c Category) Amount {
	return s.Categories[c]
}

// Add accumulates the share of entry that falls inside the summary period.
func (s *Summary) Add(entry Entry) {
	part, ok := entry.IntersectLoss(s.Period)
	if !ok {
		return
	}
	s.Categories[part.Category] += part.Value
	s.Total += part.Value
}

// Calendar is an ordered sequence of contiguous, pairwise disjoint
// summaries: items[i].Period.Hi.Next() == items[i+1].Period.Lo.
type Calendar struct {
	items []Summary
}

// CalendarFromBoundaries builds buckets d1..d2-1, d2..d3-1, ... from a
// strictly increasing list of boundary dates. The last date is exclusive.
func CalendarFromBoundaries(splits []Date) *Calendar {
	c := &Calendar{}
	for i := 0; i+1 < len(splits); i++ {
		if !splits[i].Before(splits[i+1]) {
			panic(fmt.Sprintf("calendar boundaries are not increasing: %s then %s", splits[i], splits[i+1]))
		}
		c.items = append(c.items, NewSummary(NewPeriod(splits[i], splits[i+1].Prev())))
	}
	return c
}

// CalendarFromStep starts at start and asks step for the start of the
// next bucket until it reports false. Steps must be strictly increasing.
func CalendarFromStep(start Date, step func(Date) (Date, bool)) *Calendar {
	c := &Calendar{}
	for {
		end, ok := step(start)
		if !ok {
			return c
		}
		if !start.Before(end) {
			panic(fmt.Sprintf("calendar step is not increasing: %s then %s", start, end))
		}
		c.items = append(c.items, NewSummary(NewPeriod(start, end.Prev())))
		start = end
	}
}

// CalendarFromSpacing cuts period into buckets of count durations each.
// period.Hi is the exclusive end of the last bucket, which may be shorter
// than the others.
func CalendarFromSpacing(period Period, d Duration, count int) *Calendar {
	return CalendarFromStep(period.Lo, func(date Date) (Date, bool) {
		if !date.Before(period.Hi) {
			return Date{}, false
		}
		var next Date
		switch d {
		case Daily:
			next = date.JumpDay(count)
		case Weekly:
			next = date.JumpDay(7 * count)
		case Monthly:
			next = date.JumpMonth(count)
		default:
			next = date.JumpYear(count)
		}
		return minOf(period.Hi, next), true
	})
}

// Len is the number of buckets.
func (c *Calendar) Len() int { return len(c.items) }

// Contents exposes the buckets in order. The slice must not be modified.
func (c *Calendar) Contents() []Summary { return c.items }

// Dichotomy returns the index of the last bucket starting at or before
// target. Targets before the first bucket give 0 and targets after the
// last one give the last index: callers check actual containment.
func (c *Calendar) Dichotomy(target Date) int {
	return c.dichotomy(target, 0, len(c.items))
}

// dichotomy searches [start, end): start is inclusive, end is strict.
func (c *Calendar) dichotomy(target Date, start, end int) int {
	for start+1 < end {
		mid := (start + end) / 2
		if c.items[mid].Period.Lo.After(target) {
			end = mid
		} else {
			start = mid
		}
	}
	return start
}

// DichotomyRange finds the first and last buckets overlapping period.
func (c *Calendar) DichotomyRange(period Period) (int, int, bool) {
	if len(c.items) == 0 {
		return 0, 0, false
	}
	start := c.Dichotomy(period.Lo)
	end := c.Dichotomy(period.Hi)
	last := c.items[end].Period
	if start <= end && !last.Lo.After(period.Hi) && !last.Hi.Before(period.Lo) {
		return start, end, true
	}
	return 0, 0, false
}

// Register adds every entry to each bucket it overlaps. Entries outside
// the calendar are skipped.
func (c *Calendar) Register(entries ...Entry) {
	for _, e := range entries {
		lo, hi, ok := c.DichotomyRange(e.Period)
		if !ok {
			slog.Debug("Empty range for entry", "period", FormatPeriod(e.Period), "tag", e.TagText())
			continue
		}
		for i := lo; i <= hi; i++ {
			c.items[i].Add(e)
		}
	}
}

// This file implements span resolution as a strategy registry: each
// (duration, window) pair has its own resolver that maps a reference date
// and a count to a concrete period.

package core

import (
	"fmt"
	"strconv"
	"strings"
)

// Duration is the granularity of a span.
type Duration int

const (
	Daily Duration = iota
	Weekly
	Monthly
	Yearly
)

var durationNames = [...]string{"Day", "Week", "Month", "Year"}
var durationFrequencies = [...]string{"Daily", "Weekly", "Monthly", "Yearly"}

func (d Duration) String() string {
	if d < Daily || d > Yearly {
		return fmt.Sprintf("Duration(%d)", int(d))
	}
	return durationNames[d]
}

// TextFrequency is the adverb form: "Daily", "Weekly", ...
func (d Duration) TextFrequency() string {
	if d < Daily || d > Yearly {
		return d.String()
	}
	return durationFrequencies[d]
}

// ParseDuration reads "Day", "Week", "Month" or "Year".
func ParseDuration(s string) (Duration, error) {
	for i, name := range durationNames {
		if s == name {
			return Duration(i), nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownDuration, s)
}

// Window places a span relative to its reference date.
type Window int

const (
	// Current: the periods containing the reference, then count-1 more.
	Current Window = iota
	// Posterior: count periods starting on the reference.
	Posterior
	// Anterior: count periods ending on the reference.
	Anterior
	// Precedent: count whole periods right before the current one.
	Precedent
	// Successor: count whole periods right after the current one.
	Successor
)

var windowNames = [...]string{"Curr", "Post", "Ante", "Pred", "Succ"}

func (w Window) String() string {
	if w < Current || w > Successor {
		return fmt.Sprintf("Window(%d)", int(w))
	}
	return windowNames[w]
}

// ParseWindow reads "Curr", "Post", "Ante", "Pred" or "Succ".
func ParseWindow(s string) (Window, error) {
	for i, name := range windowNames {
		if s == name {
			return Window(i), nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownWindow, s)
}

// Span is a date-relative range descriptor such as "2 months posterior".
type Span struct {
	Duration Duration
	Window   Window
	Count    int
}

// DefaultSpan is Span{d, Posterior, 1}, the meaning of a bare duration.
func DefaultSpan(d Duration) Span {
	return Span{Duration: d, Window: Posterior, Count: 1}
}

func (s Span) String() string {
	return fmt.Sprintf("%s<%s> %d", s.Duration, s.Window, s.Count)
}

// ParseSpan reads "Duration[<Window>][ Count]", for instance "Month",
// "Week<Post> 2" or "Day<Curr>". The window defaults to Post and the count
// to 1.
func ParseSpan(text string) (Span, error) {
	text = strings.TrimSpace(text)
	head, countText, hasCount := strings.Cut(text, " ")
	span := Span{Window: Posterior, Count: 1}

	name, rest, hasWindow := strings.Cut(head, "<")
	d, err := ParseDuration(name)
	if err != nil {
		return Span{}, err
	}
	span.Duration = d
	if hasWindow {
		w, ok := strings.CutSuffix(rest, ">")
		if !ok {
			return Span{}, fmt.Errorf("%w: %q has an unterminated window", ErrInvalidSpan, text)
		}
		if span.Window, err = ParseWindow(w); err != nil {
			return Span{}, err
		}
	}
	if hasCount {
		n, err := strconv.Atoi(strings.TrimSpace(countText))
		if err != nil || n < 1 {
			return Span{}, fmt.Errorf("%w: count %q must be a positive integer", ErrInvalidSpan, countText)
		}
		span.Count = n
	}
	return span, nil
}

// SpanResolver computes the period of a span with a given count around a
// reference date.
type SpanResolver interface {
	Resolve(ref Date, count int) Period
}

// ResolverFunc adapts a function to SpanResolver.
type ResolverFunc func(ref Date, count int) Period

func (f ResolverFunc) Resolve(ref Date, count int) Period { return f(ref, count) }

type spanKey struct {
	duration Duration
	window   Window
}

// spanResolvers covers every (duration, window) pair.
var spanResolvers = map[spanKey]ResolverFunc{
	{Daily, Current}: func(d Date, n int) Period {
		return NewPeriod(d, d.JumpDay(n).Prev())
	},
	{Daily, Posterior}: func(d Date, n int) Period {
		return NewPeriod(d, d.JumpDay(n).Prev())
	},
	{Daily, Anterior}: func(d Date, n int) Period {
		return NewPeriod(d.JumpDay(-n).Next(), d)
	},
	{Daily, Precedent}: func(d Date, n int) Period {
		return NewPeriod(d.JumpDay(-n), d.Prev())
	},
	{Daily, Successor}: func(d Date, n int) Period {
		return NewPeriod(d.Next(), d.JumpDay(n))
	},

	{Weekly, Current}: func(d Date, n int) Period {
		return NewPeriod(d.StartOfWeek(), d.EndOfWeek().JumpDay(7*(n-1)))
	},
	{Weekly, Posterior}: func(d Date, n int) Period {
		return NewPeriod(d, d.JumpDay(7*n).Prev())
	},
	{Weekly, Anterior}: func(d Date, n int) Period {
		return NewPeriod(d.JumpDay(-7*n).Next(), d)
	},
	{Weekly, Precedent}: func(d Date, n int) Period {
		start := d.StartOfWeek()
		return NewPeriod(start.JumpDay(-7*n), start.Prev())
	},
	{Weekly, Successor}: func(d Date, n int) Period {
		end := d.EndOfWeek()
		return NewPeriod(end.Next(), end.JumpDay(7*n))
	},

	{Monthly, Current}: func(d Date, n int) Period {
		return NewPeriod(d.StartOfMonth(), d.JumpMonth(n-1).EndOfMonth())
	},
	{Monthly, Posterior}: func(d Date, n int) Period {
		return NewPeriod(d, d.JumpMonth(n).CapDay(d.day))
	},
	{Monthly, Anterior}: func(d Date, n int) Period {
		return NewPeriod(d.JumpMonth(-n).Next(), d)
	},
	{Monthly, Precedent}: func(d Date, n int) Period {
		start := d.StartOfMonth()
		return NewPeriod(start.JumpMonth(-n), start.Prev())
	},
	{Monthly, Successor}: func(d Date, n int) Period {
		end := d.EndOfMonth()
		return NewPeriod(end.Next(), end.JumpMonth(n).EndOfMonth())
	},

	{Yearly, Current}: func(d Date, n int) Period {
		return NewPeriod(d.StartOfYear(), d.EndOfYear().JumpYear(n-1))
	},
	{Yearly, Posterior}: func(d Date, n int) Period {
		return NewPeriod(d, d.JumpYear(n).CapDay(d.day))
	},
	{Yearly, Anterior}: func(d Date, n int) Period {
		return NewPeriod(d.JumpYear(-n).Next(), d)
	},
	{Yearly, Precedent}: func(d Date, n int) Period {
		start := d.StartOfYear()
		return NewPeriod(start.JumpYear(-n), start.Prev())
	},
	{Yearly, Successor}: func(d Date, n int) Period {
		end := d.EndOfYear()
		return NewPeriod(end.Next(), end.JumpYear(n))
	},
}

// GetSpanResolver returns the resolver for a (duration, window) pair.
// Returns an error if the pair is not supported.
func GetSpanResolver(d Duration, w Window) (SpanResolver, error) {
	r, ok := spanResolvers[spanKey{d, w}]
	if !ok {
		return nil, fmt.Errorf("%w: no resolver for %s<%s>", ErrInvalidSpan, d, w)
	}
	return r, nil
}

// Period resolves the span around ref. Count must be positive.
func (s Span) Period(ref Date) Period {
	r, err := GetSpanResolver(s.Duration, s.Window)
	if err != nil {
		panic(err)
	}
	return r.Resolve(ref, s.Count)
}

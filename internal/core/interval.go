package core

import "fmt"

// Bounded is satisfied by totally ordered types with sentinel extremes.
// Lowest and Highest must not depend on the receiver value, the zero
// value is used to obtain them.
type Bounded[T any] interface {
	Compare(other T) int
	Lowest() T
	Highest() T
}

func lowest[T Bounded[T]]() T {
	var zero T
	return zero.Lowest()
}

func highest[T Bounded[T]]() T {
	var zero T
	return zero.Highest()
}

func maxOf[T Bounded[T]](a, b T) T {
	if a.Compare(b) >= 0 {
		return a
	}
	return b
}

func minOf[T Bounded[T]](a, b T) T {
	if a.Compare(b) <= 0 {
		return a
	}
	return b
}

// Between is the inclusive range [Lo, Hi]. It is empty by convention when
// Lo > Hi.
type Between[T Bounded[T]] struct {
	Lo T
	Hi T
}

// IsEmpty reports Lo > Hi.
func (b Between[T]) IsEmpty() bool { return b.Lo.Compare(b.Hi) > 0 }

// Contains reports Lo <= x <= Hi.
func (b Between[T]) Contains(x T) bool {
	return b.Lo.Compare(x) <= 0 && x.Compare(b.Hi) <= 0
}

// Intersect assumes both sides are non-empty.
func (b Between[T]) Intersect(o Between[T]) Between[T] {
	return Between[T]{Lo: maxOf(b.Lo, o.Lo), Hi: minOf(b.Hi, o.Hi)}
}

// Unite is the smallest range containing both sides.
func (b Between[T]) Unite(o Between[T]) Between[T] {
	return Between[T]{Lo: minOf(b.Lo, o.Lo), Hi: maxOf(b.Hi, o.Hi)}
}

// Interval converts sentinel bounds back into open ends.
func (b Between[T]) Interval() Interval[T] {
	lo, hi := lowest[T](), highest[T]()
	openLo := b.Lo.Compare(lo) == 0
	openHi := b.Hi.Compare(hi) == 0
	switch {
	case b.IsEmpty():
		return Interval[T]{}
	case openLo && openHi:
		return Unbounded[T]()
	case openLo:
		return Before(b.Hi)
	case openHi:
		return After(b.Lo)
	default:
		return Closed(b.Lo, b.Hi)
	}
}

// IntervalKind discriminates the variants of Interval.
type IntervalKind uint8

const (
	KindEmpty IntervalKind = iota
	KindBetween
	KindAfter
	KindBefore
	KindUnbounded
)

var intervalKinds = [...]string{"Empty", "Between", "After", "Before", "Unbounded"}

func (k IntervalKind) String() string {
	if int(k) < len(intervalKinds) {
		return intervalKinds[k]
	}
	return fmt.Sprintf("IntervalKind(%d)", int(k))
}

// Interval is a possibly one-sided or degenerate range. The zero value is
// the empty interval.
type Interval[T Bounded[T]] struct {
	kind IntervalKind
	lo   T
	hi   T
}

// Closed is the interval [lo, hi], normalized to empty when lo > hi.
func Closed[T Bounded[T]](lo, hi T) Interval[T] {
	return Interval[T]{kind: KindBetween, lo: lo, hi: hi}.Normalized()
}

// After is [lo, +inf).
func After[T Bounded[T]](lo T) Interval[T] { return Interval[T]{kind: KindAfter, lo: lo} }

// Before is (-inf, hi].
func Before[T Bounded[T]](hi T) Interval[T] { return Interval[T]{kind: KindBefore, hi: hi} }

// Empty contains nothing.
func Empty[T Bounded[T]]() Interval[T] { return Interval[T]{} }

// Unbounded contains everything.
func Unbounded[T Bounded[T]]() Interval[T] { return Interval[T]{kind: KindUnbounded} }

func (i Interval[T]) Kind() IntervalKind { return i.kind }

// Lo is the lower bound of a Between or After interval.
func (i Interval[T]) Lo() (T, bool) {
	return i.lo, i.kind == KindBetween || i.kind == KindAfter
}

// Hi is the upper bound of a Between or Before interval.
func (i Interval[T]) Hi() (T, bool) {
	return i.hi, i.kind == KindBetween || i.kind == KindBefore
}

// Normalized collapses an inverted Between into Empty.
func (i Interval[T]) Normalized() Interval[T] {
	if i.kind == KindBetween && i.lo.Compare(i.hi) > 0 {
		return Interval[T]{}
	}
	return i
}

// AsBetween replaces open ends with the sentinels of T. Empty becomes the
// inverted (Highest, Lowest).
func (i Interval[T]) AsBetween() Between[T] {
	switch i.kind {
	case KindBetween:
		return Between[T]{Lo: i.lo, Hi: i.hi}
	case KindAfter:
		return Between[T]{Lo: i.lo, Hi: highest[T]()}
	case KindBefore:
		return Between[T]{Lo: lowest[T](), Hi: i.hi}
	case KindUnbounded:
		return Between[T]{Lo: lowest[T](), Hi: highest[T]()}
	default:
		return Between[T]{Lo: highest[T](), Hi: lowest[T]()}
	}
}

// bounds views a non-degenerate interval as an optional lower and upper bound.
type bounds[T Bounded[T]] struct {
	lo, hi       T
	hasLo, hasHi bool
}

func (i Interval[T]) bounds() bounds[T] {
	lo, hasLo := i.Lo()
	hi, hasHi := i.Hi()
	return bounds[T]{lo: lo, hi: hi, hasLo: hasLo, hasHi: hasHi}
}

func (b bounds[T]) interval() Interval[T] {
	switch {
	case b.hasLo && b.hasHi:
		return Closed(b.lo, b.hi)
	case b.hasLo:
		return After(b.lo)
	case b.hasHi:
		return Before(b.hi)
	default:
		return Unbounded[T]()
	}
}

// Intersect is the largest interval contained in both sides. Empty is
// absorbing and Unbounded is neutral.
func (i Interval[T]) Intersect(o Interval[T]) Interval[T] {
	switch {
	case i.kind == KindEmpty || o.kind == KindEmpty:
		return Empty[T]()
	case o.kind == KindUnbounded:
		return i
	case i.kind == KindUnbounded:
		return o
	}
	a, b := i.bounds(), o.bounds()
	out := bounds[T]{hasLo: a.hasLo || b.hasLo, hasHi: a.hasHi || b.hasHi}
	switch {
	case a.hasLo && b.hasLo:
		out.lo = maxOf(a.lo, b.lo)
	case a.hasLo:
		out.lo = a.lo
	default:
		out.lo = b.lo
	}
	switch {
	case a.hasHi && b.hasHi:
		out.hi = minOf(a.hi, b.hi)
	case a.hasHi:
		out.hi = a.hi
	default:
		out.hi = b.hi
	}
	return out.interval()
}

// Unite is the smallest interval containing both sides. Unbounded is
// absorbing and Empty is neutral.
func (i Interval[T]) Unite(o Interval[T]) Interval[T] {
	switch {
	case i.kind == KindUnbounded || o.kind == KindUnbounded:
		return Unbounded[T]()
	case o.kind == KindEmpty:
		return i
	case i.kind == KindEmpty:
		return o
	}
	a, b := i.bounds(), o.bounds()
	out := bounds[T]{hasLo: a.hasLo && b.hasLo, hasHi: a.hasHi && b.hasHi}
	if out.hasLo {
		out.lo = minOf(a.lo, b.lo)
	}
	if out.hasHi {
		out.hi = maxOf(a.hi, b.hi)
	}
	return out.interval()
}

func (i Interval[T]) String() string {
	switch i.kind {
	case KindBetween:
		return fmt.Sprintf("%v..%v", i.lo, i.hi)
	case KindAfter:
		return fmt.Sprintf("%v..", i.lo)
	case KindBefore:
		return fmt.Sprintf("..%v", i.hi)
	case KindUnbounded:
		return ".."
	default:
		return "()"
	}
}

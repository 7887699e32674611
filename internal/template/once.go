package template

import (
	"fmt"

	"billig/internal/diag"
)

// fieldHints are example values shown when a required field is missing.
var fieldHints = map[string]string{
	"val":  "42.69",
	"type": "Food",
	"span": "Week<Post> 2",
	"tag":  `"Some information"`,
}

type onceState int

const (
	unset onceState = iota
	set
	conflicted
)

// Once holds a field that must be defined exactly once in a body.
// A second definition is reported and poisons the field: it then never
// yields a value and never reports itself as missing.
type Once[T any] struct {
	name  string
	loc   diag.Loc
	state onceState
	data  T
}

// NewOnce tracks the field name of the body located at loc.
func NewOnce[T any](name string, loc diag.Loc) *Once[T] {
	return &Once[T]{name: name, loc: loc}
}

// TrySet stores val. at locates the offending definition on a duplicate.
func (o *Once[T]) TrySet(rec *diag.Record, at diag.Loc, val T) {
	if o.state != unset {
		diag.New("Duplicate field definition").
			Span(at, fmt.Sprintf("attempt to override %s", o.name)).
			Text("Each field may only be defined once").
			Hint("remove one of the field definitions").
			Register(rec)
		o.state = conflicted
		return
	}
	o.data = val
	o.state = set
}

// TryGet yields the value of a required field, reporting it when it was
// never defined.
func (o *Once[T]) TryGet(rec *diag.Record) (T, bool) {
	var zero T
	switch o.state {
	case set:
		return o.data, true
	case conflicted:
		return zero, false
	}
	diag.New("Missing field definition").
		Span(o.loc, fmt.Sprintf("'%s' may not be omitted", o.name)).
		Text("Each field must be defined once").
		Hint(fmt.Sprintf("add definition for the missing field: '%s %s'", o.name, fieldHints[o.name])).
		Register(rec)
	return zero, false
}

// Optional yields the value of a field that may be omitted. valid is
// false only when the field was defined twice.
func (o *Once[T]) Optional() (val T, present, valid bool) {
	return o.data, o.state == set, o.state != conflicted
}

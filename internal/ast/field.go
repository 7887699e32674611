package ast

import (
	"billig/internal/core"
	"billig/internal/diag"
)

// Field is one line of an entry or template body.
type Field interface {
	Loc() diag.Loc
	field()
}

// ValueField is a literal amount: "val: -12.50".
type ValueField struct {
	Value core.Amount
	At    diag.Loc
}

// CategoryField names a category keyword: "type: Food". The keyword is
// kept raw so that unknown ones are reported with their location.
type CategoryField struct {
	Name string
	At   diag.Loc
}

// SpanField is a span relative to the entry date: "span: Month<Curr> 2".
type SpanField struct {
	Span core.Span
	At   diag.Loc
}

// PeriodField is an explicit period: "period: 2021-Jan..Mar".
type PeriodField struct {
	Period core.PartialInterval
	At     diag.Loc
}

// TagField is the free-form label of a plain entry.
type TagField struct {
	Text string
	At   diag.Loc
}

// BuiltinField is a bare capitalized keyword such as "Food" or "Month".
type BuiltinField struct {
	Word string
	At   diag.Loc
}

// AmountTemplateField is the value of a template.
type AmountTemplateField struct {
	Value AmountTemplate
	At    diag.Loc
}

// TagTemplateField is the label of a template.
type TagTemplateField struct {
	Tag TagTemplate
	At  diag.Loc
}

func (f *ValueField) Loc() diag.Loc          { return f.At }
func (f *CategoryField) Loc() diag.Loc       { return f.At }
func (f *SpanField) Loc() diag.Loc           { return f.At }
func (f *PeriodField) Loc() diag.Loc         { return f.At }
func (f *TagField) Loc() diag.Loc            { return f.At }
func (f *BuiltinField) Loc() diag.Loc        { return f.At }
func (f *AmountTemplateField) Loc() diag.Loc { return f.At }
func (f *TagTemplateField) Loc() diag.Loc    { return f.At }

func (*ValueField) field()          {}
func (*CategoryField) field()       {}
func (*SpanField) field()           {}
func (*PeriodField) field()         {}
func (*TagField) field()            {}
func (*BuiltinField) field()        {}
func (*AmountTemplateField) field() {}
func (*TagTemplateField) field()    {}

// AmountTemplate sums constants and arguments, then negates the total when
// Sign is false.
type AmountTemplate struct {
	Sign bool
	Sum  []AmountItem
}

// AmountItem is a constant, or a reference to the argument Arg when Arg
// is not empty.
type AmountItem struct {
	Const core.Amount
	Arg   string
}

// TagItemKind discriminates the pieces of a tag template.
type TagItemKind int

const (
	// RawTag is literal text.
	RawTag TagItemKind = iota
	// ArgTag is the rendered value of an argument.
	ArgTag
	// DayTag is the day number of the instance date.
	DayTag
	// MonthTag is the month name of the instance date.
	MonthTag
	// YearTag is the year of the instance date.
	YearTag
	// DateTag is the whole instance date.
	DateTag
	// WeekdayTag is the weekday name of the instance date.
	WeekdayTag
)

// TagItem is one piece of a tag template. Text holds the literal for
// RawTag and the argument name for ArgTag.
type TagItem struct {
	Kind TagItemKind
	Text string
}

// TagTemplate concatenates its items.
type TagTemplate []TagItem

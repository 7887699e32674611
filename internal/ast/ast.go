// Package ast holds the parse tree of a ledger file.
//
// The loader produces these nodes after checking the syntax of every
// scalar; semantic checks (field cardinality, categories, argument counts,
// date legality of periods) happen later in the template package.
package ast

import (
	"billig/internal/core"
	"billig/internal/diag"
)

// Item is a top-level declaration of a ledger file.
type Item interface {
	Loc() diag.Loc
	item()
}

// EntryDecl declares a plain entry on Date.
type EntryDecl struct {
	Date   core.Date
	Fields []Field
	At     diag.Loc
}

// TemplateDecl declares a parameterized entry. Positional parameters are
// bound in order at instantiation, named ones fall back to their default.
type TemplateDecl struct {
	Name       string
	Positional []string
	Named      []NamedArg
	Fields     []Field
	At         diag.Loc
}

// InstanceDecl expands the template Label on Date.
type InstanceDecl struct {
	Date       core.Date
	Label      string
	Positional []Arg
	Named      []NamedArg
	At         diag.Loc
}

// ImportDecl pulls the items of another file, relative to the current one.
type ImportDecl struct {
	Path string
	At   diag.Loc
}

func (d *EntryDecl) Loc() diag.Loc    { return d.At }
func (d *TemplateDecl) Loc() diag.Loc { return d.At }
func (d *InstanceDecl) Loc() diag.Loc { return d.At }
func (d *ImportDecl) Loc() diag.Loc   { return d.At }

func (*EntryDecl) item()    {}
func (*TemplateDecl) item() {}
func (*InstanceDecl) item() {}
func (*ImportDecl) item()   {}

// ArgKind tells which member of Arg is meaningful.
type ArgKind int

const (
	AmountArg ArgKind = iota
	TagArg
)

// Arg is a value passed to a template: an amount or a piece of text.
type Arg struct {
	Kind   ArgKind
	Amount core.Amount
	Tag    string
}

// AmountOf builds an amount argument.
func AmountOf(a core.Amount) Arg { return Arg{Kind: AmountArg, Amount: a} }

// TagOf builds a text argument.
func TagOf(s string) Arg { return Arg{Kind: TagArg, Tag: s} }

// String renders the argument the way it is spliced into tags.
func (a Arg) String() string {
	if a.Kind == AmountArg {
		return a.Amount.String()
	}
	return a.Tag
}

// NamedArg is a name=value pair, used both for template defaults and for
// instance overrides.
type NamedArg struct {
	Name  string
	Value Arg
}

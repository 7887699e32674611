// Package diag collects span-located diagnostics about ledger files and
// renders them for humans.
//
// A diagnostic is built fluently and then registered into a Record:
//
//	diag.New("Unused argument").
//		Nonfatal().
//		Span(instLoc, "in instantiation of 'rent'").
//		Text("Argument 'extra' is provided but not used").
//		Span(templLoc, "defined here").
//		Hint("remove argument or use in template").
//		Register(rec)
//
// Every message passed to the builder should fit on a single line.
package diag

import (
	"strings"

	"github.com/hashicorp/hcl/v2"
)

// Loc is an owned source location: file name plus start and end positions.
// It is copied freely into diagnostics and never borrows from the input.
type Loc = hcl.Range

// At builds a location in file spanning from (line, col) to (endLine, endCol).
// Byte offsets are left at zero when unknown.
func At(file string, line, col, endLine, endCol int) Loc {
	return Loc{
		Filename: file,
		Start:    hcl.Pos{Line: line, Column: col},
		End:      hcl.Pos{Line: endLine, Column: endCol},
	}
}

// Join spans from the start of a to the end of b.
func Join(a, b Loc) Loc {
	return hcl.RangeBetween(a, b)
}

// ItemKind discriminates the parts of an Error.
type ItemKind int

const (
	// BlockItem is a source excerpt with a message.
	BlockItem ItemKind = iota
	// TextItem is an important note.
	TextItem
	// HintItem is a recommendation on how to fix.
	HintItem
)

// Item is one line of a diagnostic. Loc is only meaningful for blocks.
type Item struct {
	Kind    ItemKind
	Loc     Loc
	Message string
}

// Error is a single diagnostic: a label, a severity and an ordered list
// of blocks, notes and hints.
type Error struct {
	fatal bool
	label string
	items []Item
}

// New starts a fatal diagnostic.
func New(label string) *Error {
	return &Error{fatal: true, label: label}
}

// Nonfatal turns the diagnostic into a warning.
func (e *Error) Nonfatal() *Error {
	e.fatal = false
	return e
}

// Span adds a source excerpt and its message.
func (e *Error) Span(loc Loc, msg string) *Error {
	e.items = append(e.items, Item{Kind: BlockItem, Loc: loc, Message: msg})
	return e
}

// Text adds an important note.
func (e *Error) Text(msg string) *Error {
	e.items = append(e.items, Item{Kind: TextItem, Message: msg})
	return e
}

// Hint adds a recommendation.
func (e *Error) Hint(msg string) *Error {
	e.items = append(e.items, Item{Kind: HintItem, Message: msg})
	return e
}

// Register appends the diagnostic to rec. The severity is final from
// this point on.
func (e *Error) Register(rec *Record) {
	rec.add(e)
}

func (e *Error) Fatal() bool   { return e.fatal }
func (e *Error) Label() string { return e.label }

// Items returns a copy of the parts of the diagnostic.
func (e *Error) Items() []Item {
	out := make([]Item, len(e.items))
	copy(out, e.items)
	return out
}

// Texts lists the messages of the items of the given kind, in order.
func (e *Error) Texts(kind ItemKind) []string {
	var out []string
	for _, it := range e.items {
		if it.Kind == kind {
			out = append(out, it.Message)
		}
	}
	return out
}

// String is a compact single-line summary used in logs.
func (e *Error) String() string {
	var b strings.Builder
	if e.fatal {
		b.WriteString("error: ")
	} else {
		b.WriteString("warning: ")
	}
	b.WriteString(e.label)
	for _, t := range e.Texts(TextItem) {
		b.WriteString("; ")
		b.WriteString(t)
	}
	return b.String()
}

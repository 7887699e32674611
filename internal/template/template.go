// Package template turns parsed ledger items into concrete entries.
//
// Plain entries are validated field by field, templates are checked and
// kept in a Library, and instances are expanded against the library.
// Every problem is a diagnostic in a diag.Record; a fatal diagnostic on
// one item does not stop the processing of the others.
package template

import (
	"billig/internal/ast"
	"billig/internal/core"
	"billig/internal/diag"
)

// Template is a validated template declaration.
type Template struct {
	Name       string
	Positional []string
	Named      []ast.NamedArg
	Value      ast.AmountTemplate
	Category   core.Category
	Span       core.Span
	Tag        ast.TagTemplate
	HasTag     bool
	Loc        diag.Loc
}

// Instance is a request to expand the template Label.
type Instance struct {
	Label      string
	Positional []ast.Arg
	Named      []ast.NamedArg
	Loc        diag.Loc
}

// NewInstance copies the arguments of an instance declaration.
func NewInstance(decl *ast.InstanceDecl) Instance {
	return Instance{
		Label:      decl.Label,
		Positional: decl.Positional,
		Named:      decl.Named,
		Loc:        decl.At,
	}
}

// Library maps template names to their definition. Names whose
// declaration was rejected are remembered so that their instances are
// skipped instead of being reported as undeclared.
type Library struct {
	templates map[string]*Template
}

// NewLibrary returns an empty library.
func NewLibrary() *Library {
	return &Library{templates: make(map[string]*Template)}
}

// Add registers t, replacing any previous template with the same name.
func (l *Library) Add(t *Template) {
	l.templates[t.Name] = t
}

// reject remembers a name whose declaration failed validation.
func (l *Library) reject(name string) {
	l.templates[name] = nil
}

// Get looks a template up. declared is true for rejected names too, in
// which case t is nil.
func (l *Library) Get(name string) (t *Template, declared bool) {
	t, declared = l.templates[name]
	return t, declared
}

// Len is the number of valid templates.
func (l *Library) Len() int {
	n := 0
	for _, t := range l.templates {
		if t != nil {
			n++
		}
	}
	return n
}

// Instantiate processes items in order: entries are validated, templates
// are added to a library as they are met, and instances are expanded
// against the templates declared before them. Imports must have been
// inlined by the loader and are ignored here.
//
// The returned entries may be incomplete when rec holds fatal diagnostics.
func Instantiate(rec *diag.Record, items []ast.Item) []core.Entry {
	lib := NewLibrary()
	var entries []core.Entry
	for _, item := range items {
		switch item := item.(type) {
		case *ast.EntryDecl:
			if e, ok := ValidateEntry(rec, item); ok {
				entries = append(entries, e)
			}
		case *ast.TemplateDecl:
			if t, ok := ValidateTemplate(rec, item); ok {
				lib.Add(t)
			} else {
				lib.reject(item.Name)
			}
		case *ast.InstanceDecl:
			if e, ok := lib.Expand(rec, item.Date, NewInstance(item)); ok {
				entries = append(entries, e)
			}
		case *ast.ImportDecl:
		}
	}
	return entries
}

package template

import (
	"fmt"

	"billig/internal/ast"
	"billig/internal/core"
	"billig/internal/diag"
)

// fields gathers the four slots shared by entries and templates. Entries
// hold concrete values, templates hold what expands to them: an amount
// template, a span still relative to its date, a tag template.
type fields[V, S, T any] struct {
	value *Once[V]
	cat   *Once[core.Category]
	span  *Once[S]
	tag   *Once[T]
}

func newFields[V, S, T any](loc diag.Loc) fields[V, S, T] {
	return fields[V, S, T]{
		value: NewOnce[V]("val", loc),
		cat:   NewOnce[core.Category]("type", loc),
		span:  NewOnce[S]("span", loc),
		tag:   NewOnce[T]("tag", loc),
	}
}

// ValidateEntry checks the fields of a plain entry and resolves its span
// or period against the entry date.
func ValidateEntry(rec *diag.Record, decl *ast.EntryDecl) (core.Entry, bool) {
	f := newFields[core.Amount, core.Period, string](decl.At)
	ok := true
	for _, field := range decl.Fields {
		switch field := field.(type) {
		case *ast.ValueField:
			f.value.TrySet(rec, field.At, field.Value)
		case *ast.CategoryField:
			c, good := category(rec, field)
			if good {
				f.cat.TrySet(rec, field.At, c)
			}
			ok = ok && good
		case *ast.SpanField:
			f.span.TrySet(rec, field.At, field.Span.Period(decl.Date))
		case *ast.PeriodField:
			p, good := period(rec, field, decl.Date)
			if good {
				f.span.TrySet(rec, field.At, p)
			}
			ok = ok && good
		case *ast.TagField:
			f.tag.TrySet(rec, field.At, field.Text)
		case *ast.BuiltinField:
			good := builtin(rec, field, f.cat, func(s core.Span) {
				f.span.TrySet(rec, field.At, s.Period(decl.Date))
			})
			ok = ok && good
		default:
			panic(fmt.Sprintf("template: unexpected %T in entry", field))
		}
	}
	// A field that was present but rejected is already reported and
	// must not also count as missing.
	if !ok {
		return core.Entry{}, false
	}

	value, hasValue := f.value.TryGet(rec)
	cat, hasCat := f.cat.TryGet(rec)
	span, hasSpan := f.span.TryGet(rec)
	tag, hasTag, tagValid := f.tag.Optional()
	if !hasValue || !hasCat || !hasSpan || !tagValid {
		return core.Entry{}, false
	}
	var label *string
	if hasTag {
		label = &tag
	}
	return core.NewEntry(value, cat, span, label), true
}

// ValidateTemplate checks the fields of a template declaration.
func ValidateTemplate(rec *diag.Record, decl *ast.TemplateDecl) (*Template, bool) {
	f := newFields[ast.AmountTemplate, core.Span, ast.TagTemplate](decl.At)
	ok := true
	for _, field := range decl.Fields {
		switch field := field.(type) {
		case *ast.AmountTemplateField:
			f.value.TrySet(rec, field.At, field.Value)
		case *ast.ValueField:
			f.value.TrySet(rec, field.At, constant(field.Value))
		case *ast.CategoryField:
			c, good := category(rec, field)
			if good {
				f.cat.TrySet(rec, field.At, c)
			}
			ok = ok && good
		case *ast.SpanField:
			f.span.TrySet(rec, field.At, field.Span)
		case *ast.TagTemplateField:
			f.tag.TrySet(rec, field.At, field.Tag)
		case *ast.TagField:
			f.tag.TrySet(rec, field.At, ast.TagTemplate{{Kind: ast.RawTag, Text: field.Text}})
		case *ast.BuiltinField:
			good := builtin(rec, field, f.cat, func(s core.Span) {
				f.span.TrySet(rec, field.At, s)
			})
			ok = ok && good
		default:
			panic(fmt.Sprintf("template: unexpected %T in template %s", field, decl.Name))
		}
	}
	// A field that was present but rejected is already reported and
	// must not also count as missing.
	if !ok {
		return nil, false
	}

	value, hasValue := f.value.TryGet(rec)
	cat, hasCat := f.cat.TryGet(rec)
	span, hasSpan := f.span.TryGet(rec)
	tag, hasTag, tagValid := f.tag.Optional()
	if !hasValue || !hasCat || !hasSpan || !tagValid {
		return nil, false
	}
	return &Template{
		Name:       decl.Name,
		Positional: decl.Positional,
		Named:      decl.Named,
		Value:      value,
		Category:   cat,
		Span:       span,
		Tag:        tag,
		HasTag:     hasTag,
		Loc:        decl.At,
	}, true
}

// constant wraps a literal amount into an amount template.
func constant(a core.Amount) ast.AmountTemplate {
	return ast.AmountTemplate{Sign: true, Sum: []ast.AmountItem{{Const: a}}}
}

func category(rec *diag.Record, f *ast.CategoryField) (core.Category, bool) {
	c, err := core.ParseCategory(f.Name)
	if err != nil {
		diag.New("Invalid category").
			Span(f.At, "provided here").
			Text(fmt.Sprintf("'%s' is not a valid expense type", f.Name)).
			Hint("use one of Home, Food, Mov, Tech, Pay, Pro, Clean, Fun").
			Register(rec)
		return 0, false
	}
	return c, true
}

func period(rec *diag.Record, f *ast.PeriodField, date core.Date) (core.Period, bool) {
	iv, ok := f.Period.Make(rec, f.At, &date)
	if !ok {
		return core.Period{}, false
	}
	return core.BoundPeriod(rec, f.At, iv, date)
}

// builtin interprets a bare keyword as a category or as a default span,
// which is handed to setSpan.
func builtin(rec *diag.Record, f *ast.BuiltinField, cat *Once[core.Category], setSpan func(core.Span)) bool {
	if c, err := core.ParseCategory(f.Word); err == nil {
		cat.TrySet(rec, f.At, c)
		return true
	}
	if d, err := core.ParseDuration(f.Word); err == nil {
		setSpan(core.DefaultSpan(d))
		return true
	}
	diag.New("Invalid builtin of ambiguous nature").
		Span(f.At, "provided here").
		Text("This keyword is not recognized").
		Hint("maybe you meant one of Food, Mov, Home, ...").
		Hint("or maybe try Day, Week, Month, Year").
		Register(rec)
	return false
}

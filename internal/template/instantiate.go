package template

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"billig/internal/ast"
	"billig/internal/core"
	"billig/internal/diag"
)

// Expand instantiates inst on date. It fails when the template is
// unknown, when the positional arguments do not match, or when an
// argument referenced by the template is missing or mistyped. Hygiene
// warnings about unused arguments are emitted only on success.
func (l *Library) Expand(rec *diag.Record, date core.Date, inst Instance) (core.Entry, bool) {
	templ, declared := l.Get(inst.Label)
	if !declared {
		diag.New("Undeclared template").
			Span(inst.Loc, fmt.Sprintf("attempt to instantiate %s", inst.Label)).
			Text(fmt.Sprintf("'%s' is not declared", inst.Label)).
			Hint("Maybe a typo ?").
			Register(rec)
		return core.Entry{}, false
	}
	if templ == nil {
		// the declaration itself was reported
		return core.Entry{}, false
	}
	args, ok := bindArguments(rec, inst, templ)
	if !ok {
		return core.Entry{}, false
	}
	x := expansion{rec: rec, inst: inst, templ: templ, args: args}
	value, usedInValue, ok := x.amount()
	if !ok {
		return core.Entry{}, false
	}
	tag, usedInTag, ok := x.tag(date)
	if !ok {
		return core.Entry{}, false
	}
	x.hygiene(usedInValue, usedInTag)

	var label *string
	if templ.HasTag {
		label = &tag
	}
	return core.NewEntry(value, templ.Category, templ.Span.Period(date), label), true
}

// bindArguments zips the positional arguments with the parameter names,
// then applies the template defaults and finally the instance overrides.
func bindArguments(rec *diag.Record, inst Instance, templ *Template) (map[string]ast.Arg, bool) {
	given, expected := len(inst.Positional), len(templ.Positional)
	if given != expected {
		hint := fmt.Sprintf("provide the %d missing arguments", expected-given)
		if given > expected {
			hint = fmt.Sprintf("remove %d arguments from instantiation", given-expected)
		}
		diag.New("Argcount mismatch").
			Span(inst.Loc, fmt.Sprintf("instantiation provides %d arguments", given)).
			Span(templ.Loc, fmt.Sprintf("template expects %d arguments", expected)).
			Text("Fix the count mismatch").
			Hint(hint).
			Register(rec)
		return nil, false
	}
	args := make(map[string]ast.Arg, given+len(templ.Named)+len(inst.Named))
	for i, name := range templ.Positional {
		args[name] = inst.Positional[i]
	}
	for _, named := range templ.Named {
		args[named.Name] = named.Value
	}
	for _, named := range inst.Named {
		args[named.Name] = named.Value
	}
	return args, true
}

type expansion struct {
	rec   *diag.Record
	inst  Instance
	templ *Template
	args  map[string]ast.Arg
}

func (x *expansion) context() string {
	return fmt.Sprintf("in instantiation of '%s'", x.inst.Label)
}

func (x *expansion) lookup(name string) (ast.Arg, bool) {
	arg, ok := x.args[name]
	if !ok {
		diag.New("Missing argument").
			Span(x.inst.Loc, x.context()).
			Text(fmt.Sprintf("Argument '%s' is not provided", name)).
			Span(x.templ.Loc, "defined here").
			Hint("remove argument from template body").
			Hint(fmt.Sprintf("or provide a default value: '%s=0'", name)).
			Register(x.rec)
	}
	return arg, ok
}

// amount sums the value template, negated when its sign is unset.
func (x *expansion) amount() (core.Amount, map[string]bool, bool) {
	var sum core.Amount
	used := make(map[string]bool)
	for _, item := range x.templ.Value.Sum {
		if item.Arg == "" {
			sum += item.Const
			continue
		}
		used[item.Arg] = true
		arg, ok := x.lookup(item.Arg)
		if !ok {
			return 0, nil, false
		}
		if arg.Kind != ast.AmountArg {
			diag.New("Type mismatch").
				Span(x.inst.Loc, x.context()).
				Text("Cannot treat tag as a monetary value").
				Span(x.templ.Loc, "defined here").
				Hint("make it a value").
				Hint("or remove from amount calculation").
				Register(x.rec)
			return 0, nil, false
		}
		sum += arg.Amount
	}
	if !x.templ.Value.Sign {
		sum = -sum
	}
	return sum, used, true
}

// tag concatenates the tag template, reading placeholders from date.
func (x *expansion) tag(date core.Date) (string, map[string]bool, bool) {
	var b strings.Builder
	used := make(map[string]bool)
	for _, item := range x.templ.Tag {
		switch item.Kind {
		case ast.RawTag:
			b.WriteString(item.Text)
		case ast.DayTag:
			b.WriteString(strconv.Itoa(date.Day()))
		case ast.MonthTag:
			b.WriteString(date.Month().String())
		case ast.YearTag:
			b.WriteString(strconv.Itoa(date.Year()))
		case ast.DateTag:
			b.WriteString(date.String())
		case ast.WeekdayTag:
			b.WriteString(date.Weekday().String())
		case ast.ArgTag:
			used[item.Text] = true
			arg, ok := x.lookup(item.Text)
			if !ok {
				return "", nil, false
			}
			b.WriteString(arg.String())
		}
	}
	return b.String(), used, true
}

// hygiene warns about arguments never referenced, and about amounts that
// only ever end up in the tag.
func (x *expansion) hygiene(inValue, inTag map[string]bool) {
	names := make([]string, 0, len(x.args))
	for name := range x.args {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		arg := x.args[name]
		switch {
		case !inValue[name] && !inTag[name]:
			diag.New("Unused argument").
				Nonfatal().
				Span(x.inst.Loc, x.context()).
				Text(fmt.Sprintf("Argument '%s' is provided but not used", name)).
				Span(x.templ.Loc, "defined here").
				Hint("remove argument or use in template").
				Register(x.rec)
		case arg.Kind == ast.AmountArg && !inValue[name]:
			diag.New("Needless amount").
				Nonfatal().
				Span(x.inst.Loc, x.context()).
				Text(fmt.Sprintf("Argument '%s' has type amount but could be a string", name)).
				Span(x.templ.Loc, "defined here").
				Hint("argument is used only in tag field").
				Hint(fmt.Sprintf("change to string '\"%s\"' or use in val field", arg.Amount)).
				Register(x.rec)
		}
	}
}

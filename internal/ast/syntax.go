package ast

import (
	"errors"
	"fmt"
	"strings"

	"billig/internal/core"
)

var (
	ErrInvalidAmountTemplate = errors.New("invalid amount template")
	ErrInvalidTagTemplate    = errors.New("invalid tag template")
)

var placeholders = map[string]TagItemKind{
	"@Day":     DayTag,
	"@Month":   MonthTag,
	"@Year":    YearTag,
	"@Date":    DateTag,
	"@Weekday": WeekdayTag,
}

// ParseAmountTemplate reads "[-]TERM", "[-](TERM + TERM ...)" or
// "TERM + TERM ...", where a term is an amount or an argument name.
//
//	ParseAmountTemplate("-(500.00 + extra)") -> {Sign: false, Sum: [500.00, extra]}
func ParseAmountTemplate(s string) (AmountTemplate, error) {
	text := strings.TrimSpace(s)
	out := AmountTemplate{Sign: true}
	if rest, ok := strings.CutPrefix(text, "-"); ok {
		out.Sign = false
		text = strings.TrimSpace(rest)
	}
	if inner, ok := strings.CutPrefix(text, "("); ok {
		inner, ok = strings.CutSuffix(inner, ")")
		if !ok {
			return AmountTemplate{}, fmt.Errorf("%w: %q has an unbalanced parenthesis", ErrInvalidAmountTemplate, s)
		}
		text = inner
	}
	for _, term := range strings.Split(text, "+") {
		term = strings.TrimSpace(term)
		switch {
		case term == "":
			return AmountTemplate{}, fmt.Errorf("%w: %q has an empty term", ErrInvalidAmountTemplate, s)
		case IsIdentifier(term):
			out.Sum = append(out.Sum, AmountItem{Arg: term})
		default:
			a, err := core.ParseAmount(term)
			if err != nil || strings.ContainsAny(term, "+-") {
				return AmountTemplate{}, fmt.Errorf("%w: %q is neither an amount nor an argument", ErrInvalidAmountTemplate, term)
			}
			out.Sum = append(out.Sum, AmountItem{Const: a})
		}
	}
	return out, nil
}

// ParseTagTemplate splits text into literal pieces, "{name}" argument
// references and "{@Day}", "{@Month}", "{@Year}", "{@Date}", "{@Weekday}"
// placeholders. "{{" and "}}" stand for literal braces.
func ParseTagTemplate(s string) (TagTemplate, error) {
	var out TagTemplate
	var raw strings.Builder
	flush := func() {
		if raw.Len() > 0 {
			out = append(out, TagItem{Kind: RawTag, Text: raw.String()})
			raw.Reset()
		}
	}
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c == '{' && strings.HasPrefix(s[i:], "{{"):
			raw.WriteByte('{')
			i++
		case c == '}' && strings.HasPrefix(s[i:], "}}"):
			raw.WriteByte('}')
			i++
		case c == '}':
			return nil, fmt.Errorf("%w: unmatched '}' in %q", ErrInvalidTagTemplate, s)
		case c == '{':
			end := strings.IndexByte(s[i:], '}')
			if end < 0 {
				return nil, fmt.Errorf("%w: unterminated '{' in %q", ErrInvalidTagTemplate, s)
			}
			name := strings.TrimSpace(s[i+1 : i+end])
			item, err := placeholder(name)
			if err != nil {
				return nil, fmt.Errorf("%w: %v in %q", ErrInvalidTagTemplate, err, s)
			}
			flush()
			out = append(out, item)
			i += end
		default:
			raw.WriteByte(c)
		}
	}
	flush()
	return out, nil
}

func placeholder(name string) (TagItem, error) {
	if strings.HasPrefix(name, "@") {
		kind, ok := placeholders[name]
		if !ok {
			return TagItem{}, fmt.Errorf("unknown placeholder %q", name)
		}
		return TagItem{Kind: kind}, nil
	}
	if !IsIdentifier(name) {
		return TagItem{}, fmt.Errorf("%q is not an argument name", name)
	}
	return TagItem{Kind: ArgTag, Text: name}, nil
}

// IsIdentifier reports whether s is a valid argument or template name.
func IsIdentifier(s string) bool {
	if s == "" {
		return false
	}
	for i, r := range s {
		switch {
		case r == '_', r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z':
		case i > 0 && r >= '0' && r <= '9':
		default:
			return false
		}
	}
	return true
}

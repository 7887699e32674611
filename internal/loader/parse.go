package loader

import (
	"errors"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"

	"billig/internal/ast"
	"billig/internal/core"
	"billig/internal/diag"
)

// body tells which fields an item accepts.
type body int

const (
	entryBody body = iota
	templateBody
)

var expectedFields = map[body]string{
	entryBody:    "val, type, span, period, tag",
	templateBody: "params, defaults, val, type, span, tag",
}

// Parse reads one ledger file. Items that fail are dropped after their
// problems are reported into rec; the others are returned in file order.
func Parse(rec *diag.Record, file string, data []byte) []ast.Item {
	var root yaml.Node
	if err := yaml.Unmarshal(data, &root); err != nil {
		line := 1
		fmt.Sscanf(err.Error(), "yaml: line %d:", &line)
		diag.New("Parsing failure").
			Span(diag.At(file, line, 1, line, 1), "in this file").
			Text(err.Error()).
			Hint("a ledger is a YAML sequence of items").
			Register(rec)
		return nil
	}
	if root.Kind == 0 || len(root.Content) == 0 {
		return nil
	}
	doc := root.Content[0]
	p := &parser{rec: rec, file: file}
	if doc.Kind != yaml.SequenceNode {
		diag.New("Invalid ledger").
			Span(p.loc(doc), "provided here").
			Text("The top level of a ledger must be a sequence").
			Hint("start every item with '- entry:', '- template:', '- instance:' or '- import:'").
			Register(rec)
		return nil
	}
	var items []ast.Item
	for _, node := range doc.Content {
		if item, ok := p.item(node); ok {
			items = append(items, item)
		}
	}
	return items
}

type parser struct {
	rec  *diag.Record
	file string
}

// loc spans node, from its first character to the end of its last child.
func (p *parser) loc(node *yaml.Node) diag.Loc {
	line, col := end(node)
	return diag.At(p.file, node.Line, node.Column, line, col)
}

func end(node *yaml.Node) (int, int) {
	n := len(node.Content)
	if node.Kind == yaml.MappingNode && n >= 2 && isNull(node.Content[n-1]) && node.Content[n-1].Value == "" {
		// "Food:" ends with its key.
		return end(node.Content[n-2])
	}
	if n > 0 && node.Kind != yaml.AliasNode {
		return end(node.Content[n-1])
	}
	width := len(node.Value)
	if node.Style&(yaml.DoubleQuotedStyle|yaml.SingleQuotedStyle) != 0 {
		width += 2
	}
	return node.Line, node.Column + max(width, 1)
}

func (p *parser) fail(label string, node *yaml.Node, text, hint string) {
	diag.New(label).
		Span(p.loc(node), "provided here").
		Text(text).
		Hint(hint).
		Register(p.rec)
}

func (p *parser) item(node *yaml.Node) (ast.Item, bool) {
	if node.Kind != yaml.MappingNode || len(node.Content) < 2 {
		p.fail("Unknown item", node, "Ledger items must be mappings",
			"start the item with one of entry:, template:, instance:, import:")
		return nil, false
	}
	key, head := node.Content[0], node.Content[1]
	rest := node.Content[2:]
	at := p.loc(node)
	switch key.Value {
	case "entry":
		date, ok := p.date(head)
		fields, good := p.fields(rest, entryBody)
		if !ok || !good {
			return nil, false
		}
		return &ast.EntryDecl{Date: date, Fields: fields, At: at}, true
	case "template":
		return p.template(head, rest, at)
	case "instance":
		return p.instance(head, rest, at)
	case "import":
		if head.Kind != yaml.ScalarNode || head.Value == "" {
			p.fail("Invalid import", head, "Imports take a relative file path", "write 'import: other.yaml'")
			return nil, false
		}
		return &ast.ImportDecl{Path: head.Value, At: at}, true
	default:
		p.fail("Unknown item", key, fmt.Sprintf("'%s' does not start an item", key.Value),
			"start the item with one of entry:, template:, instance:, import:")
		return nil, false
	}
}

// date reads a complete YYYY-Mmm-DD date.
func (p *parser) date(node *yaml.Node) (core.Date, bool) {
	pd, err := core.ParsePartialDate(node.Value)
	if err != nil || node.Kind != yaml.ScalarNode || !pd.HasYear || !pd.HasMonth || !pd.HasDay {
		p.fail("Invalid date", node, fmt.Sprintf("'%s' is not a date", node.Value),
			"dates are written YYYY-Mmm-DD, e.g. 2021-Mar-05")
		return core.Date{}, false
	}
	d, err := core.NewDate(pd.Year, pd.Month, pd.Day)
	if err != nil {
		var de *core.DateError
		if !errors.As(err, &de) {
			p.fail("Invalid date", node, err.Error(), "choose a date that exists")
			return core.Date{}, false
		}
		diag.New("Invalid date").
			Span(p.loc(node), "provided here").
			Text(de.Error()).
			Hint("choose a date that exists").
			Hint(de.FixHint()).
			Register(p.rec)
		return core.Date{}, false
	}
	return d, true
}

// fields reads key/value pairs of a body. All fields are checked even
// after a failure so that every problem is reported at once.
func (p *parser) fields(pairs []*yaml.Node, ctx body) ([]ast.Field, bool) {
	var out []ast.Field
	ok := true
	for i := 0; i+1 < len(pairs); i += 2 {
		f, good := p.field(pairs[i], pairs[i+1], ctx)
		if good {
			out = append(out, f)
		}
		ok = ok && good
	}
	return out, ok
}

func (p *parser) field(key, val *yaml.Node, ctx body) (ast.Field, bool) {
	at := diag.Join(p.loc(key), p.loc(val))
	if isNull(val) && isBuiltin(key.Value) {
		return &ast.BuiltinField{Word: key.Value, At: p.loc(key)}, true
	}
	if val.Kind != yaml.ScalarNode {
		p.fail("Invalid field", val, fmt.Sprintf("'%s' expects a single value", key.Value),
			"write the field on one line, e.g. 'span: Month<Curr> 1'")
		return nil, false
	}
	switch key.Value {
	case "val":
		if ctx == templateBody {
			t, err := ast.ParseAmountTemplate(val.Value)
			if err != nil {
				p.fail("Invalid amount", val, err.Error(), "write a sum of amounts and arguments, e.g. '-(500.00 + extra)'")
				return nil, false
			}
			return &ast.AmountTemplateField{Value: t, At: at}, true
		}
		a, err := core.ParseAmount(val.Value)
		if err != nil {
			p.fail("Invalid amount", val, fmt.Sprintf("'%s' is not an amount", val.Value), "write amounts as 42.69 or -12,50")
			return nil, false
		}
		return &ast.ValueField{Value: a, At: at}, true
	case "type":
		return &ast.CategoryField{Name: val.Value, At: p.loc(val)}, true
	case "span":
		s, err := core.ParseSpan(val.Value)
		if err != nil {
			p.fail("Invalid span", val, err.Error(), "write Duration<Window> Count, e.g. 'Month<Curr> 2' or 'Week'")
			return nil, false
		}
		return &ast.SpanField{Span: s, At: at}, true
	case "period":
		if ctx == entryBody {
			pi, err := core.ParsePartialInterval(val.Value)
			if err != nil {
				p.fail("Invalid period", val, err.Error(), "write START..END with partial dates, e.g. '2021-Jan..Mar-15'")
				return nil, false
			}
			return &ast.PeriodField{Period: pi, At: p.loc(val)}, true
		}
	case "tag":
		if ctx == templateBody {
			t, err := ast.ParseTagTemplate(val.Value)
			if err != nil {
				p.fail("Invalid tag template", val, err.Error(), "reference arguments as {name} and dates as {@Day}, {@Month}, {@Year}, {@Date}, {@Weekday}")
				return nil, false
			}
			return &ast.TagTemplateField{Tag: t, At: at}, true
		}
		return &ast.TagField{Text: val.Value, At: at}, true
	}
	p.fail("Unknown field", key, fmt.Sprintf("'%s' is not a field", key.Value),
		"expected one of "+expectedFields[ctx]+" or a keyword such as 'Food:' or 'Month:'")
	return nil, false
}

func (p *parser) template(head *yaml.Node, rest []*yaml.Node, at diag.Loc) (ast.Item, bool) {
	decl := &ast.TemplateDecl{Name: head.Value, At: at}
	ok := true
	if head.Kind != yaml.ScalarNode || !ast.IsIdentifier(head.Value) {
		p.fail("Invalid template name", head, fmt.Sprintf("'%s' is not a valid name", head.Value),
			"names are made of letters, digits and '_'")
		ok = false
	}
	var plain []*yaml.Node
	for i := 0; i+1 < len(rest); i += 2 {
		key, val := rest[i], rest[i+1]
		switch key.Value {
		case "params":
			names, good := p.params(val)
			decl.Positional = append(decl.Positional, names...)
			ok = ok && good
		case "defaults":
			named, good := p.namedArgs(val)
			decl.Named = append(decl.Named, named...)
			ok = ok && good
		default:
			plain = append(plain, key, val)
		}
	}
	fields, good := p.fields(plain, templateBody)
	if !ok || !good {
		return nil, false
	}
	decl.Fields = fields
	return decl, true
}

func (p *parser) instance(head *yaml.Node, rest []*yaml.Node, at diag.Loc) (ast.Item, bool) {
	date, ok := p.date(head)
	decl := &ast.InstanceDecl{Date: date, At: at}
	for i := 0; i+1 < len(rest); i += 2 {
		key, val := rest[i], rest[i+1]
		switch key.Value {
		case "use":
			if val.Kind != yaml.ScalarNode || !ast.IsIdentifier(val.Value) {
				p.fail("Invalid template name", val, fmt.Sprintf("'%s' is not a valid name", val.Value),
					"names are made of letters, digits and '_'")
				ok = false
				continue
			}
			decl.Label = val.Value
		case "args":
			if val.Kind != yaml.SequenceNode {
				p.fail("Invalid argument", val, "Positional arguments are a sequence", "write 'args: [500.00, \"Rent\"]'")
				ok = false
				continue
			}
			for _, n := range val.Content {
				arg, good := p.arg(n)
				decl.Positional = append(decl.Positional, arg)
				ok = ok && good
			}
		case "named":
			named, good := p.namedArgs(val)
			decl.Named = append(decl.Named, named...)
			ok = ok && good
		default:
			p.fail("Unknown field", key, fmt.Sprintf("'%s' is not a field of an instance", key.Value),
				"expected one of use, args, named")
			ok = false
		}
	}
	if decl.Label == "" && ok {
		p.fail("Missing template name", head, "Instances must name the template they expand",
			"add 'use: <template>' to the item")
		ok = false
	}
	if !ok {
		return nil, false
	}
	return decl, true
}

func (p *parser) params(node *yaml.Node) ([]string, bool) {
	if node.Kind != yaml.SequenceNode {
		p.fail("Invalid parameters", node, "Parameters are a sequence of names", "write 'params: [amount, who]'")
		return nil, false
	}
	var names []string
	ok := true
	for _, n := range node.Content {
		if n.Kind != yaml.ScalarNode || !ast.IsIdentifier(n.Value) {
			p.fail("Invalid parameters", n, fmt.Sprintf("'%s' is not a valid name", n.Value), "names are made of letters, digits and '_'")
			ok = false
			continue
		}
		names = append(names, n.Value)
	}
	return names, ok
}

func (p *parser) namedArgs(node *yaml.Node) ([]ast.NamedArg, bool) {
	if node.Kind != yaml.MappingNode {
		p.fail("Invalid argument", node, "Named arguments are a mapping", "write 'amount: 500.00' on its own line")
		return nil, false
	}
	var out []ast.NamedArg
	ok := true
	for i := 0; i+1 < len(node.Content); i += 2 {
		key, val := node.Content[i], node.Content[i+1]
		if !ast.IsIdentifier(key.Value) {
			p.fail("Invalid argument", key, fmt.Sprintf("'%s' is not a valid name", key.Value), "names are made of letters, digits and '_'")
			ok = false
			continue
		}
		arg, good := p.arg(val)
		if good {
			out = append(out, ast.NamedArg{Name: key.Value, Value: arg})
		}
		ok = ok && good
	}
	return out, ok
}

// arg reads a YAML number as an amount and a string as a tag.
func (p *parser) arg(node *yaml.Node) (ast.Arg, bool) {
	if node.Kind != yaml.ScalarNode {
		p.fail("Invalid argument", node, "Arguments are amounts or strings", "quote text arguments: \"Rent\"")
		return ast.Arg{}, false
	}
	switch node.ShortTag() {
	case "!!int", "!!float":
		a, err := core.ParseAmount(node.Value)
		if err != nil {
			p.fail("Invalid amount", node, fmt.Sprintf("'%s' is not an amount", node.Value), "write amounts as 42.69")
			return ast.Arg{}, false
		}
		return ast.AmountOf(a), true
	case "!!str":
		return ast.TagOf(node.Value), true
	default:
		p.fail("Invalid argument", node, fmt.Sprintf("'%s' is neither an amount nor a string", node.Value), "quote text arguments: \"Rent\"")
		return ast.Arg{}, false
	}
}

func isNull(node *yaml.Node) bool {
	return node.Kind == yaml.ScalarNode && node.ShortTag() == "!!null"
}

// isBuiltin reports whether a key may stand alone as a keyword.
func isBuiltin(key string) bool {
	return key != "" && strings.ToUpper(key[:1]) == key[:1] && ast.IsIdentifier(key)
}

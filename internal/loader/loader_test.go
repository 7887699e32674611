package loader

import (
	"testing"
	"testing/fstest"

	"github.com/google/go-cmp/cmp"

	"billig/internal/ast"
	"billig/internal/core"
	"billig/internal/diag"
	"billig/internal/template"
)

const household = `
- template: rent
  params: [amount]
  defaults: {extra: 0.00}
  val: -(amount + extra)
  Home:
  span: Month<Curr> 1
  tag: "Rent {@Month}"

- entry: 2021-Mar-05
  val: -3.20
  Food:
  Day:
  tag: "Bakery"

- instance: 2021-Mar-01
  use: rent
  args: [500.00]
  named: {extra: 12}
`

func TestParse_Household(t *testing.T) {
	rec := diag.NewRecord()
	items := Parse(rec, "ledger.yaml", []byte(household))
	if rec.Len() != 0 {
		t.Fatalf("unexpected diagnostics: %v", rec.Labels())
	}
	if len(items) != 3 {
		t.Fatalf("got %d items, want 3", len(items))
	}

	templ, ok := items[0].(*ast.TemplateDecl)
	if !ok {
		t.Fatalf("item 0 is %T, want *ast.TemplateDecl", items[0])
	}
	if templ.Name != "rent" {
		t.Errorf("template name = %q, want rent", templ.Name)
	}
	if diff := cmp.Diff([]string{"amount"}, templ.Positional); diff != "" {
		t.Errorf("params mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]ast.NamedArg{{Name: "extra", Value: ast.AmountOf(0)}}, templ.Named); diff != "" {
		t.Errorf("defaults mismatch (-want +got):\n%s", diff)
	}
	if len(templ.Fields) != 4 {
		t.Fatalf("template has %d fields, want 4", len(templ.Fields))
	}
	val, ok := templ.Fields[0].(*ast.AmountTemplateField)
	if !ok {
		t.Fatalf("template field 0 is %T", templ.Fields[0])
	}
	wantVal := ast.AmountTemplate{Sign: false, Sum: []ast.AmountItem{{Arg: "amount"}, {Arg: "extra"}}}
	if diff := cmp.Diff(wantVal, val.Value); diff != "" {
		t.Errorf("amount template mismatch (-want +got):\n%s", diff)
	}

	entry, ok := items[1].(*ast.EntryDecl)
	if !ok {
		t.Fatalf("item 1 is %T, want *ast.EntryDecl", items[1])
	}
	if got, want := entry.Date, core.MustDate(2021, core.Mar, 5); got != want {
		t.Errorf("entry date = %s, want %s", got, want)
	}
	var words []string
	for _, f := range entry.Fields {
		if b, ok := f.(*ast.BuiltinField); ok {
			words = append(words, b.Word)
		}
	}
	if diff := cmp.Diff([]string{"Food", "Day"}, words); diff != "" {
		t.Errorf("builtins mismatch (-want +got):\n%s", diff)
	}

	inst, ok := items[2].(*ast.InstanceDecl)
	if !ok {
		t.Fatalf("item 2 is %T, want *ast.InstanceDecl", items[2])
	}
	if inst.Label != "rent" {
		t.Errorf("instance label = %q, want rent", inst.Label)
	}
	if diff := cmp.Diff([]ast.Arg{ast.AmountOf(50000)}, inst.Positional); diff != "" {
		t.Errorf("args mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]ast.NamedArg{{Name: "extra", Value: ast.AmountOf(1200)}}, inst.Named); diff != "" {
		t.Errorf("named mismatch (-want +got):\n%s", diff)
	}
}

func TestParse_HouseholdInstantiates(t *testing.T) {
	rec := diag.NewRecord()
	entries := template.Instantiate(rec, Parse(rec, "ledger.yaml", []byte(household)))
	if rec.Len() != 0 {
		t.Fatalf("unexpected diagnostics: %v", rec.Labels())
	}
	var got []string
	for _, e := range entries {
		got = append(got, e.String())
	}
	want := []string{
		`2021-Mar-5 Food -3.20€ "Bakery"`,
		`2021-Mar Home -512.00€ "Rent Mar"`,
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("entries mismatch (-want +got):\n%s", diff)
	}
}

func TestParse_Rejects(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		labels []string
		items  int
	}{
		{
			name:   "syntax error",
			input:  "- entry: \"2021-Mar-01\n  val: 1\n",
			labels: []string{"Parsing failure"},
		},
		{
			name:   "root is not a sequence",
			input:  "entry: 2021-Mar-01\nval: 1\n",
			labels: []string{"Invalid ledger"},
		},
		{
			name:   "unknown item",
			input:  "- expense: 2021-Mar-01\n",
			labels: []string{"Unknown item"},
		},
		{
			name:   "scalar item",
			input:  "- 2021-Mar-01\n",
			labels: []string{"Unknown item"},
		},
		{
			name:   "impossible date",
			input:  "- entry: 2021-Feb-30\n  val: 1\n  Food:\n  Day:\n",
			labels: []string{"Invalid date"},
		},
		{
			name:   "malformed date",
			input:  "- entry: Mar-01\n  val: 1\n  Food:\n  Day:\n",
			labels: []string{"Invalid date"},
		},
		{
			name:   "unknown field",
			input:  "- entry: 2021-Mar-01\n  value: 1\n",
			labels: []string{"Unknown field"},
		},
		{
			name:   "every bad field is reported",
			input:  "- entry: 2021-Mar-01\n  val: lots\n  span: Fortnight\n  period: 2021-Foo\n",
			labels: []string{"Invalid amount", "Invalid span", "Invalid period"},
		},
		{
			name:   "period in a template",
			input:  "- template: t\n  val: 1\n  Food:\n  period: 2021-Mar\n",
			labels: []string{"Unknown field"},
		},
		{
			name:   "bad tag template",
			input:  "- template: t\n  val: 1\n  Food:\n  Day:\n  tag: \"{oops\"\n",
			labels: []string{"Invalid tag template"},
		},
		{
			name:   "bad template name",
			input:  "- template: 2 words\n  val: 1\n  Food:\n  Day:\n",
			labels: []string{"Invalid template name"},
		},
		{
			name:   "instance without template",
			input:  "- instance: 2021-Mar-01\n  args: [1]\n",
			labels: []string{"Missing template name"},
		},
		{
			name:   "boolean argument",
			input:  "- instance: 2021-Mar-01\n  use: t\n  args: [true]\n",
			labels: []string{"Invalid argument"},
		},
		{
			name:   "good items survive bad ones",
			input:  "- entry: 2021-Mar-01\n  value: 1\n- import: other.yaml\n",
			labels: []string{"Unknown field"},
			items:  1,
		},
		{
			name:  "empty file",
			input: "",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := diag.NewRecord()
			items := Parse(rec, "ledger.yaml", []byte(tt.input))
			if diff := cmp.Diff(tt.labels, rec.Labels()); diff != "" {
				t.Errorf("labels mismatch (-want +got):\n%s", diff)
			}
			if len(items) != tt.items {
				t.Errorf("got %d items, want %d", len(items), tt.items)
			}
		})
	}
}

func TestParse_ImpossibleDateHints(t *testing.T) {
	rec := diag.NewRecord()
	Parse(rec, "ledger.yaml", []byte("- entry: 2021-Feb-29\n  val: 1\n  Food:\n  Day:\n"))
	errs := rec.Errors()
	if len(errs) != 1 {
		t.Fatalf("got %d diagnostics, want 1", len(errs))
	}
	want := []string{"choose a date that exists", "did you mean 2021-Feb-28 or 2021-Mar-01 ?"}
	if diff := cmp.Diff(want, errs[0].Texts(diag.HintItem)); diff != "" {
		t.Errorf("hints mismatch (-want +got):\n%s", diff)
	}
}

func TestParse_DuplicateFieldsAreKept(t *testing.T) {
	rec := diag.NewRecord()
	items := Parse(rec, "ledger.yaml", []byte("- entry: 2021-Mar-01\n  val: 1\n  val: 2\n  Food:\n  Day:\n"))
	if rec.Len() != 0 {
		t.Fatalf("unexpected diagnostics: %v", rec.Labels())
	}
	template.Instantiate(rec, items)
	if diff := cmp.Diff([]string{"Duplicate field definition"}, rec.Labels()); diff != "" {
		t.Errorf("labels mismatch (-want +got):\n%s", diff)
	}
}

func TestParse_Locations(t *testing.T) {
	rec := diag.NewRecord()
	items := Parse(rec, "ledger.yaml", []byte("- entry: 2021-Mar-01\n  val: 12.50\n  tag: \"Lunch\"\n  Food:\n  Day:\n"))
	if len(items) != 1 {
		t.Fatalf("got %d items, want 1", len(items))
	}
	entry := items[0].(*ast.EntryDecl)

	type pos struct{ Line, Col, EndLine, EndCol int }
	at := func(l diag.Loc) pos {
		return pos{l.Start.Line, l.Start.Column, l.End.Line, l.End.Column}
	}
	if got, want := at(entry.At), (pos{1, 3, 5, 6}); got != want {
		t.Errorf("item location = %+v, want %+v", got, want)
	}
	want := []pos{
		{2, 3, 2, 13},
		{3, 3, 3, 15},
		{4, 3, 4, 7},
		{5, 3, 5, 6},
	}
	var got []pos
	for _, f := range entry.Fields {
		got = append(got, at(f.Loc()))
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("field locations mismatch (-want +got):\n%s", diff)
	}
	if entry.At.Filename != "ledger.yaml" {
		t.Errorf("filename = %q", entry.At.Filename)
	}
}

func TestLoad_Imports(t *testing.T) {
	fsys := fstest.MapFS{
		"main.yaml": {Data: []byte("- import: sub/rent.yaml\n- instance: 2021-Mar-01\n  use: rent\n")},
		"sub/rent.yaml": {Data: []byte(
			"- template: rent\n  val: -500.00\n  Home:\n  Month:\n" +
				"- import: ../main.yaml\n",
		)},
	}
	sources := diag.NewSources()
	l := New(fsys, sources, nil)
	rec := diag.NewRecord()
	items := l.Load(rec, "main.yaml")
	if rec.Len() != 0 {
		t.Fatalf("unexpected diagnostics: %v", rec.Labels())
	}

	var kinds []string
	for _, item := range items {
		switch item.(type) {
		case *ast.ImportDecl:
			kinds = append(kinds, "import")
		case *ast.TemplateDecl:
			kinds = append(kinds, "template")
		case *ast.InstanceDecl:
			kinds = append(kinds, "instance")
		case *ast.EntryDecl:
			kinds = append(kinds, "entry")
		}
	}
	if diff := cmp.Diff([]string{"import", "template", "import", "instance"}, kinds); diff != "" {
		t.Errorf("item order mismatch (-want +got):\n%s", diff)
	}
	if l.Files() != 2 {
		t.Errorf("Files() = %d, want 2", l.Files())
	}
	if line, ok := sources.Line("sub/rent.yaml", 1); !ok || line != "- template: rent" {
		t.Errorf("sources line = %q, %v", line, ok)
	}
	if got := items[1].Loc().Filename; got != "sub/rent.yaml" {
		t.Errorf("imported item filename = %q", got)
	}

	entries := template.Instantiate(rec, items)
	if len(entries) != 1 || entries[0].Value != -50000 {
		t.Errorf("entries = %v", entries)
	}
}

func TestLoad_MissingFiles(t *testing.T) {
	fsys := fstest.MapFS{
		"main.yaml": {Data: []byte("- import: absent.yaml\n")},
	}

	t.Run("import", func(t *testing.T) {
		rec := diag.NewRecord()
		items := New(fsys, nil, nil).Load(rec, "main.yaml")
		if diff := cmp.Diff([]string{"Import failed"}, rec.Labels()); diff != "" {
			t.Fatalf("labels mismatch (-want +got):\n%s", diff)
		}
		blocks := rec.Errors()[0].Texts(diag.BlockItem)
		if diff := cmp.Diff([]string{"imported here"}, blocks); diff != "" {
			t.Errorf("blocks mismatch (-want +got):\n%s", diff)
		}
		if len(items) != 1 {
			t.Errorf("got %d items, want the import alone", len(items))
		}
	})

	t.Run("root", func(t *testing.T) {
		rec := diag.NewRecord()
		items := New(fsys, nil, nil).Load(rec, "nope.yaml")
		if !rec.IsFatal() {
			t.Fatal("missing root file should be fatal")
		}
		if len(rec.Errors()[0].Texts(diag.BlockItem)) != 0 {
			t.Error("missing root file has no importer to point at")
		}
		if items != nil {
			t.Errorf("items = %v, want nil", items)
		}
	})
}

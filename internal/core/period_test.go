package core

import (
	"errors"
	"strings"
	"testing"

	"billig/internal/diag"
)

func TestFormatPeriod(t *testing.T) {
	tests := []struct {
		lo, hi Date
		want   string
	}{
		{dt(2020, Jan, 15), dt(2021, Mar, 17), "2020-Jan-15..2021-Mar-17"},
		{dt(2020, Jan, 15), dt(2020, Mar, 17), "2020-Jan-15..Mar-17"},
		{dt(2020, Jan, 15), dt(2020, Jan, 17), "2020-Jan-15..17"},
		{dt(2020, Jan, 15), dt(2020, Jan, 15), "2020-Jan-15"},
		{dt(2020, Jan, 1), dt(2020, Jan, 31), "2020-Jan"},
		{dt(2020, Jan, 1), dt(2020, Jan, 15), "2020-Jan-1..15"},
		{dt(2020, Jan, 15), dt(2020, Jan, 31), "2020-Jan-15..31"},
		{dt(2020, Jan, 1), dt(2020, Feb, 15), "2020-Jan..Feb-15"},
		{dt(2020, Jan, 1), dt(2020, Feb, 29), "2020-Jan..Feb"},
		{dt(2020, Jan, 1), dt(2021, Mar, 17), "2020..2021-Mar-17"},
		{dt(2020, Feb, 3), dt(2021, Dec, 31), "2020-Feb-3..2021"},
		{dt(2020, Jan, 1), dt(2021, Mar, 31), "2020..2021-Mar"},
		{dt(2020, Jan, 1), dt(2020, Dec, 31), "2020"},
		{dt(2020, Jan, 1), dt(2023, Dec, 31), "2020..2023"},
		{dt(2020, Jan, 3), dt(2023, Feb, 28), "2020-Jan-3..2023-Feb"},
		{MinDate, dt(2020, Dec, 31), "..2020"},
		{dt(2020, Mar, 1), MaxDate, "2020-Mar.."},
		{MinDate, MaxDate, ".."},
		{dt(2020, Mar, 2), dt(2020, Mar, 1), "()"},
	}
	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			if got := FormatPeriod(NewPeriod(tt.lo, tt.hi)); got != tt.want {
				t.Errorf("FormatPeriod(%s, %s) = %q, want %q", tt.lo, tt.hi, got, tt.want)
			}
		})
	}
}

// describe flattens a record so tests can look for a message anywhere in it.
func describe(rec *diag.Record) string {
	var b strings.Builder
	for _, e := range rec.Errors() {
		b.WriteString(e.Label())
		for _, it := range e.Items() {
			b.WriteString("\n")
			b.WriteString(it.Message)
		}
		b.WriteString("\n")
	}
	return b.String()
}

func TestPartialInterval_Make(t *testing.T) {
	ref := dt(2021, Feb, 1)
	tests := []struct {
		input string
		ok    bool
		want  string
	}{
		{"2020-Jan-15..2021-Mar-17", true, "2020-Jan-15..2021-Mar-17"},
		{"2020-Jan-15..Mar-17", true, "2020-Jan-15..Mar-17"},
		{"2020-Jan-15..17", true, "2020-Jan-15..17"},
		{"2020-Jan-15", true, "2020-Jan-15"},
		{"2020-Jan", true, "2020-Jan"},
		{"2020-Jan-1..15", true, "2020-Jan-1..15"},
		{"2020-Jan-15..31", true, "2020-Jan-15..31"},
		{"2020-Jan..Feb-15", true, "2020-Jan..Feb-15"},
		{"2020-Jan..Feb", true, "2020-Jan..Feb"},
		{"2020..2021-Mar-17", true, "2020..2021-Mar-17"},
		{"2020-Feb-3..2021", true, "2020-Feb-3..2021"},
		{"2020..2021-Mar", true, "2020..2021-Mar"},
		{"2020", true, "2020"},
		{"2020..2023", true, "2020..2023"},
		{"2020-Jan-3..2023-Feb", true, "2020-Jan-3..2023-Feb"},
		{"2020-Jan-10..", true, "2020-Jan-10.."},
		{"..2020", true, "..2020"},
		{"2020..", true, "2020.."},
		{"2020..Mar", true, "2020-Jan..Mar"},
		{"2020-Jan..15", true, "2020-Jan-1..15"},
		{"2020-Jan-15..2020", true, "2020-Jan-15..Dec"},
		{"2020..2020", true, "2020"},
		{"..", true, ".."},
		{"..Feb-15", true, "..2021-Feb-15"},
		{"..1", true, "..2021-Feb-1"},
		{"Mar..", true, "2021-Mar.."},
		{"..Mar", true, "..2021-Mar"},
		{"15..", true, "2021-Feb-15.."},
		{"..15", true, "..2021-Feb-15"},
		{"17..21", true, "2021-Feb-17..21"},
		{"17..Mar-1", true, "2021-Feb-17..Mar-1"},
		{"Mar-13..17", true, "2021-Mar-13..17"},
		{"Mar-13..2021", true, "2021-Mar-13..Dec"},
		{"Mar-13..Oct", true, "2021-Mar-13..Oct"},
		{"15", true, "2021-Feb-15"},
		{"Jan", true, "2021-Jan"},
		{"Jan-15", true, "2021-Jan-15"},
		{"()", true, "()"},
		{"..0", false, "not in the range"},
		{"..45", false, "not in the range"},
		{"0000", false, "outside of the supported range"},
		{"20..15", false, "Timeframe is empty"},
		{"2021-Feb-29", false, "not bissextile"},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			pi, err := ParsePartialInterval(tt.input)
			if err != nil {
				t.Fatalf("ParsePartialInterval(%q) error = %v", tt.input, err)
			}
			rec := diag.NewRecord()
			iv, ok := pi.Make(rec, diag.Loc{}, &ref)
			if ok != tt.ok {
				t.Fatalf("Make(%q) ok = %v, want %v\n%s", tt.input, ok, tt.ok, describe(rec))
			}
			if tt.ok {
				if got := FormatPeriod(iv.AsBetween()); got != tt.want {
					t.Errorf("Make(%q) = %q, want %q", tt.input, got, tt.want)
				}
				if rec.Len() != 0 {
					t.Errorf("Make(%q) reported %d diagnostics", tt.input, rec.Len())
				}
				return
			}
			if !rec.IsFatal() {
				t.Errorf("Make(%q) failed without a fatal diagnostic", tt.input)
			}
			if got := describe(rec); !strings.Contains(got, tt.want) {
				t.Errorf("Make(%q) diagnostics = %q, want mention of %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestParsePartialInterval_Rejects(t *testing.T) {
	tests := []struct {
		input   string
		message string
	}{
		{"Bef..", "not a valid month"},
		{"1..3..5", "more than one"},
		{"2020202", ""},
		{"Jan-20...", ""},
		{"2020-15", ""},
		{"", ""},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			_, err := ParsePartialInterval(tt.input)
			if !errors.Is(err, ErrInvalidPeriod) {
				t.Fatalf("ParsePartialInterval(%q) error = %v, want ErrInvalidPeriod", tt.input, err)
			}
			if !strings.Contains(err.Error(), tt.message) {
				t.Errorf("error = %q, want mention of %q", err, tt.message)
			}
		})
	}
}

func TestPartialInterval_MakeWithoutReference(t *testing.T) {
	pi, err := ParsePartialInterval("Jan-15..20")
	if err != nil {
		t.Fatalf("ParsePartialInterval() error = %v", err)
	}
	rec := diag.NewRecord()
	if _, ok := pi.Make(rec, diag.Loc{}, nil); ok {
		t.Fatal("Make() without a year or reference succeeded")
	}
	if labels := rec.Labels(); len(labels) != 1 || labels[0] != "Unspecified year" {
		t.Errorf("Labels() = %v, want [Unspecified year]", labels)
	}

	pi, _ = ParsePartialInterval("2020-Jan-15..20")
	iv, ok := pi.Make(diag.NewRecord(), diag.Loc{}, nil)
	if !ok {
		t.Fatal("Make() with an explicit year failed")
	}
	if got := iv.String(); got != "2020-Jan-15..2020-Jan-20" {
		t.Errorf("Make() = %s, want 2020-Jan-15..2020-Jan-20", got)
	}
}

func TestBoundPeriod(t *testing.T) {
	date := dt(2021, Mar, 10)
	tests := []struct {
		name      string
		interval  Interval[Date]
		want      Period
		wantLabel string
	}{
		{"after", After(dt(2021, Mar, 1)), NewPeriod(dt(2021, Mar, 1), date), ""},
		{"before", Before(dt(2021, Mar, 20)), NewPeriod(date, dt(2021, Mar, 20)), ""},
		{"between", Closed(dt(2021, Jan, 1), dt(2021, Jan, 2)), NewPeriod(dt(2021, Jan, 1), dt(2021, Jan, 2)), ""},
		{"empty", Empty[Date](), Period{}, "Period cannot be empty"},
		{"unbounded", Unbounded[Date](), Period{}, "Period cannot be unbounded"},
		{"after the date", After(dt(2021, Apr, 1)), Period{}, "Period is accidentally empty"},
		{"before the date", Before(dt(2021, Feb, 1)), Period{}, "Period is accidentally empty"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := diag.NewRecord()
			got, ok := BoundPeriod(rec, diag.Loc{}, tt.interval, date)
			if tt.wantLabel == "" {
				if !ok || got != tt.want {
					t.Errorf("BoundPeriod() = %v, %v, want %v, true", got, ok, tt.want)
				}
				return
			}
			if ok {
				t.Fatalf("BoundPeriod() = %v, want failure", got)
			}
			if labels := rec.Labels(); len(labels) != 1 || labels[0] != tt.wantLabel {
				t.Errorf("Labels() = %v, want [%s]", labels, tt.wantLabel)
			}
		})
	}
}

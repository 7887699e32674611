package ast

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestParseAmountTemplate(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    AmountTemplate
		wantErr bool
	}{
		{
			name:  "negated sum",
			input: "-(500.00 + extra)",
			want:  AmountTemplate{Sign: false, Sum: []AmountItem{{Const: 50000}, {Arg: "extra"}}},
		},
		{
			name:  "plain sum",
			input: "12.50 + bonus",
			want:  AmountTemplate{Sign: true, Sum: []AmountItem{{Const: 1250}, {Arg: "bonus"}}},
		},
		{
			name:  "single argument",
			input: "amount",
			want:  AmountTemplate{Sign: true, Sum: []AmountItem{{Arg: "amount"}}},
		},
		{
			name:  "negated argument",
			input: "-amount",
			want:  AmountTemplate{Sign: false, Sum: []AmountItem{{Arg: "amount"}}},
		},
		{
			name:  "parenthesized constant",
			input: "(3 + 4,5)",
			want:  AmountTemplate{Sign: true, Sum: []AmountItem{{Const: 300}, {Const: 450}}},
		},
		{name: "empty", input: "", wantErr: true},
		{name: "dangling plus", input: "1 +", wantErr: true},
		{name: "unbalanced", input: "-(1 + x", wantErr: true},
		{name: "inner sign", input: "1 + -2", wantErr: true},
		{name: "garbage", input: "1 + $x", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseAmountTemplate(tt.input)
			if tt.wantErr {
				if !errors.Is(err, ErrInvalidAmountTemplate) {
					t.Errorf("ParseAmountTemplate(%q) error = %v, want ErrInvalidAmountTemplate", tt.input, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseAmountTemplate(%q) error = %v", tt.input, err)
			}
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("ParseAmountTemplate(%q) mismatch (-want +got):\n%s", tt.input, diff)
			}
		})
	}
}

func TestParseTagTemplate(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    TagTemplate
		wantErr bool
	}{
		{
			name:  "month placeholder",
			input: "Rent {@Month}",
			want:  TagTemplate{{Kind: RawTag, Text: "Rent "}, {Kind: MonthTag}},
		},
		{
			name:  "argument and date",
			input: "{who} on {@Date}",
			want:  TagTemplate{{Kind: ArgTag, Text: "who"}, {Kind: RawTag, Text: " on "}, {Kind: DateTag}},
		},
		{
			name:  "every placeholder",
			input: "{@Day}{@Month}{@Year}{@Weekday}",
			want:  TagTemplate{{Kind: DayTag}, {Kind: MonthTag}, {Kind: YearTag}, {Kind: WeekdayTag}},
		},
		{
			name:  "escaped braces",
			input: "{{literal}}",
			want:  TagTemplate{{Kind: RawTag, Text: "{literal}"}},
		},
		{name: "empty", input: "", want: nil},
		{name: "unterminated", input: "Rent {who", wantErr: true},
		{name: "unmatched close", input: "Rent }", wantErr: true},
		{name: "unknown placeholder", input: "{@Hour}", wantErr: true},
		{name: "bad name", input: "{1st}", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseTagTemplate(tt.input)
			if tt.wantErr {
				if !errors.Is(err, ErrInvalidTagTemplate) {
					t.Errorf("ParseTagTemplate(%q) error = %v, want ErrInvalidTagTemplate", tt.input, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseTagTemplate(%q) error = %v", tt.input, err)
			}
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("ParseTagTemplate(%q) mismatch (-want +got):\n%s", tt.input, diff)
			}
		})
	}
}

func TestArg_String(t *testing.T) {
	if got := AmountOf(4269).String(); got != "42.69€" {
		t.Errorf("AmountOf(4269).String() = %q, want %q", got, "42.69€")
	}
	if got := TagOf("bread").String(); got != "bread" {
		t.Errorf("TagOf().String() = %q, want %q", got, "bread")
	}
}

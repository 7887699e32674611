package core

import "testing"

func TestParseAmount(t *testing.T) {
	cases := []struct {
		in  string
		out Amount
		ok  bool
	}{
		{"1", 100, true},
		{"1.0", 100, true},
		{"1.23", 123, true},
		{"1,23", 123, true},
		{"0.01", 1, true},
		{"1.005", 101, true}, // half-up rounding
		{"1.004", 100, true},
		{" 2.50 ", 250, true},
		{"-1", -100, true},
		{"+42.69", 4269, true},
		{"0", 0, true},
		{".5", 50, true},
		{"500.", 50000, true},
		{"abc", 0, false},
		{"1.2.3", 0, false},
		{"1e3", 0, false},
		{"-", 0, false},
		{".", 0, false},
		{"", 0, false},
		{"99999999999999999999", 0, false},
		{"1.٣", 0, false},
		{"٤2", 0, false},
		{"１", 0, false},
	}
	for _, tc := range cases {
		got, err := ParseAmount(tc.in)
		if tc.ok {
			if err != nil || got != tc.out {
				t.Fatalf("%q expected %d, got %d (err=%v)", tc.in, tc.out, got, err)
			}
		} else {
			if err == nil {
				t.Fatalf("%q expected error", tc.in)
			}
		}
	}
}

func TestAmount_String(t *testing.T) {
	cases := []struct {
		in  Amount
		out string
	}{
		{0, "0.00€"},
		{5, "0.05€"},
		{4269, "42.69€"},
		{50000, "500.00€"},
		{-1205, "-12.05€"},
		{-7, "-0.07€"},
	}
	for _, tc := range cases {
		if got := tc.in.String(); got != tc.out {
			t.Errorf("Amount(%d).String() = %q, want %q", int64(tc.in), got, tc.out)
		}
	}
}

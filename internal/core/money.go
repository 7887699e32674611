// Money parsing and rendering: amounts are kept as cents.

package core

import (
	"fmt"
	"strconv"
	"strings"
)

// Amount is a signed fixed-point monetary value in cents.
type Amount int64

// String renders the amount as euros with two decimals: "-12.05€".
func (a Amount) String() string {
	sign := ""
	abs := int64(a)
	if abs < 0 {
		sign = "-"
		abs = -abs
	}
	return fmt.Sprintf("%s%d.%02d€", sign, abs/100, abs%100)
}

// Euros returns the value as a float64 for display purposes only.
func (a Amount) Euros() float64 {
	return float64(a) / 100.0
}

// ParseAmount converts a decimal string to cents with proper rounding.
//
// It accepts both dot (12.34) and comma (12,34) decimal separators, an
// optional leading sign, and performs half-up rounding on the third
// decimal place.
//
// Examples:
//
//	ParseAmount("12.34")  -> 1234, nil
//	ParseAmount("-12,34") -> -1234, nil
//	ParseAmount("12.345") -> 1235, nil (rounds up)
//	ParseAmount("12.344") -> 1234, nil (rounds down)
func ParseAmount(s string) (Amount, error) {
	s = strings.TrimSpace(s)
	negative := false
	switch {
	case strings.HasPrefix(s, "-"):
		negative = true
		s = s[1:]
	case strings.HasPrefix(s, "+"):
		s = s[1:]
	}
	if s == "" {
		return 0, ErrInvalidAmount
	}
	// Normalize decimal comma to dot
	s = strings.ReplaceAll(s, ",", ".")
	intPart, fracPart, _ := strings.Cut(s, ".")
	if strings.Contains(fracPart, ".") {
		return 0, ErrInvalidAmount
	}
	if intPart == "" {
		if fracPart == "" {
			return 0, ErrInvalidAmount
		}
		intPart = "0"
	}
	for _, r := range intPart + fracPart {
		if r < '0' || r > '9' {
			return 0, ErrInvalidAmount
		}
	}
	iv, err := strconv.ParseInt(intPart, 10, 64)
	if err != nil {
		return 0, ErrInvalidAmount
	}
	// Prevent overflow when multiplying by 100
	const maxSafeInt64 = (1<<63 - 1) / 100
	if iv >= maxSafeInt64 {
		return 0, ErrInvalidAmount
	}
	// Take first two fractional digits; then half-up rounding on third
	var fracCents int64
	if len(fracPart) > 0 {
		fracCents = int64(fracPart[0]-'0') * 10
		if len(fracPart) > 1 {
			fracCents += int64(fracPart[1] - '0')
			if len(fracPart) > 2 && fracPart[2] >= '5' {
				fracCents++
			}
		}
	}
	cents := iv*100 + fracCents
	if negative {
		cents = -cents
	}
	return Amount(cents), nil
}

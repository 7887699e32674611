package core

import (
	"errors"
	"fmt"
)

// Category is the kind of an expense. The set is closed.
type Category int

const (
	Salary Category = iota
	Home
	School
	Cleaning
	Movement
	Tech
	Food
	Fun
)

// CategoryCount is the number of categories, used to size per-category arrays.
const CategoryCount = 8

var (
	ErrInvalidAmount   = errors.New("invalid amount")
	ErrInvalidPeriod   = errors.New("invalid period")
	ErrUnknownCategory = errors.New("unknown category")
	ErrUnknownDuration = errors.New("unknown duration")
	ErrUnknownWindow   = errors.New("unknown window")
	ErrInvalidSpan     = errors.New("invalid span")
)

var categoryNames = [CategoryCount]string{"Salary", "Home", "School", "Cleaning", "Movement", "Tech", "Food", "Fun"}

// categoryKeywords maps the spelling used in ledger files to categories.
var categoryKeywords = map[string]Category{
	"Pay":   Salary,
	"Food":  Food,
	"Tech":  Tech,
	"Mov":   Movement,
	"Pro":   School,
	"Clean": Cleaning,
	"Home":  Home,
	"Fun":   Fun,
}

func (c Category) String() string {
	if c < 0 || int(c) >= CategoryCount {
		return fmt.Sprintf("Category(%d)", int(c))
	}
	return categoryNames[c]
}

// Sign is true for income and false for spending.
func (c Category) Sign() bool {
	return c == Salary
}

// ParseCategory reads a ledger keyword such as "Mov" or "Pay".
func ParseCategory(s string) (Category, error) {
	if c, ok := categoryKeywords[s]; ok {
		return c, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownCategory, s)
}

// Categories lists every category in declaration order.
func Categories() []Category {
	out := make([]Category, CategoryCount)
	for i := range out {
		out[i] = Category(i)
	}
	return out
}

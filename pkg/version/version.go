// Package version holds patch numbers as exact decimals and decides what a pair of them means.
// Comparison is by decimal value, so "13.10" and "13.1" are the same patch.
package version

import (
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

var one = decimal.NewFromInt(1)

// Version is a patch number as it was written plus its decimal value.
type Version struct {
	text  string
	value decimal.Decimal
}

// Parse reads a plain decimal such as "13.0" or "13.4". Surrounding whitespace is ignored,
// exponent notation is not accepted.
func Parse(s string) (Version, error) {
	text := strings.TrimSpace(s)
	if text == "" {
		return Version{}, errors.New("empty version")
	}
	if strings.ContainsAny(text, "eE") {
		return Version{}, fmt.Errorf("invalid version '%s': exponent is not allowed", text)
	}
	value, err := decimal.NewFromString(text)
	if err != nil {
		return Version{}, fmt.Errorf("invalid version '%s': %w", text, err)
	}
	return Version{text: text, value: value}, nil
}

// MustParse is like Parse but panics on error. Intended for constants and tests.
func MustParse(s string) Version {
	v, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return v
}

func (v Version) String() string {
	if v.text == "" {
		return v.value.String()
	}
	return v.text
}

func (v Version) Decimal() decimal.Decimal {
	return v.value
}

// Cmp compares decimal values: -1 if v < o, 0 if equal, +1 if v > o.
func (v Version) Cmp(o Version) int {
	return v.value.Cmp(o.value)
}

func (v Version) Equal(o Version) bool {
	return v.value.Equal(o.value)
}

func (v Version) LessThan(o Version) bool {
	return v.value.LessThan(o.value)
}

// Ceiling returns v + 1, the exclusive upper bound for candidates when v is the
// maximum allowed version (13 allows 13.4 but not 14.0).
func (v Version) Ceiling() decimal.Decimal {
	return v.value.Add(one)
}

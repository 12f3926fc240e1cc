// Package validation holds small field checkers that collect violations
// for generated entities before they are written.
package validation

import (
	"fmt"
	"sort"
	"strings"

	"github.com/shopspring/decimal"
)

// Violations maps a field name to the rule it broke.
type Violations map[string]string

func (v Violations) Empty() bool { return len(v) == 0 }

// Error renders the violations in a stable field order so it can be used as an error.
func (v Violations) Error() string {
	fields := make([]string, 0, len(v))
	for f := range v {
		fields = append(fields, f)
	}
	sort.Strings(fields)
	parts := make([]string, 0, len(fields))
	for _, f := range fields {
		parts = append(parts, fmt.Sprintf("%s: %s", f, v[f]))
	}
	return strings.Join(parts, ", ")
}

// Basic validators
func Required(field, value string, v Violations) {
	if strings.TrimSpace(value) == "" {
		v[field] = "required"
	}
}

func PositiveInt(field string, val int, v Violations) {
	if val <= 0 {
		v[field] = "must_be_positive"
	}
}

func PositiveDecimal(field string, val decimal.Decimal, v Violations) {
	if !val.IsPositive() {
		v[field] = "must_be_positive"
	}
}

// RangeDecimal accepts minVal <= val < maxVal.
func RangeDecimal(field string, val, minVal, maxVal decimal.Decimal, v Violations) {
	if val.LessThan(minVal) || !val.LessThan(maxVal) {
		v[field] = "out_of_range"
	}
}

// MaxDecimalPlaces rejects values carrying more than places fractional digits.
func MaxDecimalPlaces(field string, val decimal.Decimal, places int32, v Violations) {
	if !val.Equal(val.Round(places)) {
		v[field] = "too_many_decimals"
	}
}

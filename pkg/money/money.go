package money

import (
	"errors"
	"strings"
	"unicode"

	"github.com/shopspring/decimal"
)

var ErrInvalidAmount = errors.New("invalid monetary amount")

// ParseAmount parses a free-text monetary amount that may use either the
// Brazilian ("1.234,56") or the English ("1,234.56" / "6.50") convention,
// optionally prefixed with a currency marker ("R$ 150,50").
//
// Separator roles are fixed, deterministic rules, not configurable:
//   - comma and dot both present: dot is the thousands separator, comma the
//     decimal separator;
//   - only comma: comma is the decimal separator;
//   - only dot: a dot followed by exactly three digits is a thousands
//     separator ("1.500" = 1500), anything else is a decimal separator
//     ("6.50" = 6.5);
//   - neither: plain integer.
//
// The result must be strictly positive.
func ParseAmount(input string) (decimal.Decimal, error) {
	clean := stripCurrency(input)
	if clean == "" {
		return decimal.Zero, ErrInvalidAmount
	}

	hasComma := strings.Contains(clean, ",")
	hasDot := strings.Contains(clean, ".")

	switch {
	case hasComma && hasDot:
		clean = strings.ReplaceAll(clean, ".", "")
		clean = strings.Replace(clean, ",", ".", 1)
	case hasComma:
		clean = strings.Replace(clean, ",", ".", 1)
	case hasDot:
		tail := clean[strings.LastIndexByte(clean, '.')+1:]
		if len(tail) == 3 {
			clean = strings.ReplaceAll(clean, ".", "")
		}
	}

	value, err := decimal.NewFromString(clean)
	if err != nil {
		return decimal.Zero, ErrInvalidAmount
	}

	if !value.IsPositive() {
		return decimal.Zero, ErrInvalidAmount
	}

	return value, nil
}

func stripCurrency(s string) string {
	var b strings.Builder
	for _, r := range s {
		switch {
		case unicode.IsSpace(r):
		case r == 'R' || r == 'r' || r == '$':
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}

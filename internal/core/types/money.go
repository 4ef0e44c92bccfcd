// Package types provides common type aliases and utilities.
package types

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"stockdash/internal/core/apperror"
)

// Money represents a monetary value with full precision.
// Uses decimal.Decimal to avoid floating-point errors.
type Money = decimal.Decimal

// Zero returns zero Money value.
func Zero() Money {
	return decimal.Zero
}

// MustMoney creates a Money value from a string, panics on error.
// Use only for constants and tests.
func MustMoney(s string) Money {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

// ParseAmount parses a monetary amount that may carry a currency-symbol
// prefix ("$12.50", "€ 9.99") into Money. The upstream feed transports all
// amounts in this prefixed-string form; internally everything is decimal and
// the prefix is reapplied only at the presentation boundary.
func ParseAmount(s string) (Money, error) {
	trimmed := stripCurrencyPrefix(s)
	if trimmed == "" {
		return decimal.Zero, apperror.NewMalformedNumeric("amount", s)
	}
	d, err := decimal.NewFromString(trimmed)
	if err != nil {
		return decimal.Zero, apperror.NewMalformedNumeric("amount", s).WithCause(err)
	}
	return d, nil
}

// ParseAmountOrZero parses like ParseAmount but degrades malformed input to
// zero. The feed is not guaranteed well-formed and a bad amount must never
// crash the dashboard.
func ParseAmountOrZero(s string) Money {
	d, err := ParseAmount(s)
	if err != nil {
		return decimal.Zero
	}
	return d
}

// FormatAmount renders Money as a plain decimal string with 2 places.
func FormatAmount(m Money) string {
	return m.StringFixed(2)
}

// stripCurrencyPrefix removes any leading non-numeric run (currency symbol,
// whitespace) in front of the first digit, sign or decimal point.
func stripCurrencyPrefix(s string) string {
	s = strings.TrimSpace(s)
	for i, r := range s {
		if r >= '0' && r <= '9' || r == '-' || r == '+' || r == '.' {
			return s[i:]
		}
	}
	return ""
}

// Quantity is a whole-unit stock count. The upstream feed may deliver it as
// a JSON number, a numeric string, or null/absent - null normalizes to 0.
type Quantity int64

// NewQuantity creates a Quantity from an int.
func NewQuantity(v int64) Quantity { return Quantity(v) }

func (q Quantity) Int64() int64 { return int64(q) }

// Decimal converts the count to a decimal for monetary arithmetic.
func (q Quantity) Decimal() decimal.Decimal { return decimal.NewFromInt(int64(q)) }

func (q Quantity) IsZero() bool { return q == 0 }

// String returns the plain decimal representation.
func (q Quantity) String() string {
	return strconv.FormatInt(int64(q), 10)
}

// MarshalJSON encodes Quantity as a JSON number.
func (q Quantity) MarshalJSON() ([]byte, error) {
	return []byte(q.String()), nil
}

// UnmarshalJSON accepts a JSON number, a numeric string, or null.
// null and empty strings normalize to 0.
func (q *Quantity) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*q = 0
		return nil
	}

	// If string, unquote first.
	if len(data) >= 2 && data[0] == '"' && data[len(data)-1] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		parsed, err := parseQuantityString(s)
		if err != nil {
			return err
		}
		*q = parsed
		return nil
	}

	// Otherwise treat as number token.
	parsed, err := parseQuantityString(string(data))
	if err != nil {
		return err
	}
	*q = parsed
	return nil
}

func parseQuantityString(s string) (Quantity, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, nil
	}

	// Some feeds deliver counts as "5.0"; truncate the fractional part.
	if i := strings.IndexByte(s, '.'); i >= 0 {
		s = s[:i]
	}
	if s == "" || s == "-" || s == "+" {
		return 0, fmt.Errorf("parse quantity: %q", s)
	}

	v, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("parse quantity: %w", err)
	}
	return Quantity(v), nil
}

// ParseQuantityOrZero parses a quantity string, degrading malformed or
// negative input to 0.
func ParseQuantityOrZero(s string) Quantity {
	v, err := parseQuantityString(s)
	if err != nil || v < 0 {
		return 0
	}
	return v
}

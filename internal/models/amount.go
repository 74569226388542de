package models

import (
	"database/sql/driver"
	"fmt"

	"github.com/shopspring/decimal"
)

// Amount is a non-negative currency value. It serializes as decimal text
// with exactly two fractional digits, which is how money crosses the API
// boundary.
type Amount struct {
	decimal.Decimal
}

// NewAmount wraps a decimal as an Amount.
func NewAmount(d decimal.Decimal) Amount {
	return Amount{Decimal: d}
}

// ParseAmount parses decimal text into an Amount.
func ParseAmount(s string) (Amount, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return Amount{}, fmt.Errorf("invalid amount %q: %w", s, err)
	}
	if d.IsNegative() {
		return Amount{}, fmt.Errorf("amount %q must not be negative", s)
	}
	return Amount{Decimal: d}, nil
}

// MarshalJSON renders the amount as a quoted string with two decimals.
func (a Amount) MarshalJSON() ([]byte, error) {
	return []byte(`"` + a.StringFixed(2) + `"`), nil
}

// UnmarshalJSON accepts a quoted decimal string or a bare JSON number.
func (a *Amount) UnmarshalJSON(data []byte) error {
	s := string(data)
	if len(s) >= 2 && s[0] == '"' && s[len(s)-1] == '"' {
		s = s[1 : len(s)-1]
	}
	parsed, err := ParseAmount(s)
	if err != nil {
		return err
	}
	*a = parsed
	return nil
}

// Value stores the amount as its decimal string for NUMERIC columns.
func (a Amount) Value() (driver.Value, error) {
	return a.StringFixed(2), nil
}

// Scan reads NUMERIC columns returned as []byte or string.
func (a *Amount) Scan(value interface{}) error {
	var d decimal.Decimal
	if err := d.Scan(value); err != nil {
		return err
	}
	a.Decimal = d
	return nil
}

package domain

import (
	"encoding/json"
	"strings"

	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

// All engine arithmetic runs on integer minor units (cents). Decimal
// values only appear at the boundary: parsing user-supplied amounts and
// formatting output. Conversion in rounds half-up; interest accrual
// elsewhere floors, so payouts are always biased downward.

// ToMinorUnits converts a decimal currency amount to integer minor units,
// rounding half-up to the nearest cent.
func ToMinorUnits(d decimal.Decimal) int64 {
	return d.Shift(2).Round(0).IntPart()
}

// ParseMinorUnits converts a user-supplied amount string to minor units.
// A missing or non-numeric value yields zero rather than an error.
func ParseMinorUnits(s string) int64 {
	d, err := decimal.NewFromString(strings.TrimSpace(s))
	if err != nil {
		return 0
	}
	return ToMinorUnits(d)
}

// FromMinorUnits converts integer minor units back to a decimal amount.
func FromMinorUnits(n int64) decimal.Decimal {
	return decimal.New(n, -2)
}

// FormatMinorUnits renders minor units as a localized currency string,
// e.g. 123456 -> "$1,234.56".
func FormatMinorUnits(n int64, currencyCode string) string {
	return money.New(n, currencyCode).Display()
}

// Amount is a monetary config field that accepts either a string or a
// number on the wire. Values that fail numeric parsing coerce to zero;
// the engine never rejects a plan over a malformed amount.
type Amount struct {
	decimal.Decimal
}

// NewAmount builds an Amount from a decimal value.
func NewAmount(d decimal.Decimal) Amount { return Amount{d} }

// AmountFromFloat builds an Amount from a float, for tests and defaults.
func AmountFromFloat(f float64) Amount { return Amount{decimal.NewFromFloat(f)} }

// MinorUnits returns the amount in integer minor units, rounded half-up.
func (a Amount) MinorUnits() int64 { return ToMinorUnits(a.Decimal) }

// UnmarshalYAML accepts scalar nodes of any numeric or string shape.
func (a *Amount) UnmarshalYAML(value *yaml.Node) error {
	d, err := decimal.NewFromString(strings.TrimSpace(value.Value))
	if err != nil {
		a.Decimal = decimal.Zero
		return nil
	}
	a.Decimal = d
	return nil
}

// UnmarshalJSON accepts both JSON numbers and quoted strings.
func (a *Amount) UnmarshalJSON(b []byte) error {
	s := strings.Trim(strings.TrimSpace(string(b)), `"`)
	if s == "" || s == "null" {
		a.Decimal = decimal.Zero
		return nil
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		a.Decimal = decimal.Zero
		return nil
	}
	a.Decimal = d
	return nil
}

// MarshalJSON renders the amount as a plain decimal string.
func (a Amount) MarshalJSON() ([]byte, error) {
	return json.Marshal(a.Decimal.String())
}

// MarshalYAML renders the amount as a plain decimal string.
func (a Amount) MarshalYAML() (interface{}, error) {
	return a.Decimal.String(), nil
}

// FlexInt is an integer config field that accepts either a number or a
// numeric string on the wire; malformed input coerces to zero.
type FlexInt int

// Int returns the value as a plain int.
func (f FlexInt) Int() int { return int(f) }

// UnmarshalYAML accepts scalar nodes of numeric or string shape.
func (f *FlexInt) UnmarshalYAML(value *yaml.Node) error {
	d, err := decimal.NewFromString(strings.TrimSpace(value.Value))
	if err != nil {
		*f = 0
		return nil
	}
	*f = FlexInt(d.IntPart())
	return nil
}

// UnmarshalJSON accepts both JSON numbers and quoted strings.
func (f *FlexInt) UnmarshalJSON(b []byte) error {
	s := strings.Trim(strings.TrimSpace(string(b)), `"`)
	d, err := decimal.NewFromString(s)
	if err != nil {
		*f = 0
		return nil
	}
	*f = FlexInt(d.IntPart())
	return nil
}

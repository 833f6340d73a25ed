// Package money represents currency amounts as integer minor units.
//
// Amounts are stored in minor units (cents) to keep arithmetic exact;
// decimal strings only appear at the parse/format boundary. Two amounts
// combine only when their currency codes match.
package money

import (
	"encoding/json"
	"fmt"

	"github.com/shopspring/decimal"
)

// minorDigits is the number of decimal places in a minor unit.
const minorDigits = 2

// Money is an amount in integer minor units tagged with an ISO 4217
// currency code. The zero value is "0 units of no currency" and is only
// valid as a starting accumulator.
type Money struct {
	Amount   int64  `json:"-"`
	Currency string `json:"-"`
}

// MismatchError reports an attempt to combine two different currencies.
type MismatchError struct {
	Left  string
	Right string
}

func (e *MismatchError) Error() string {
	return fmt.Sprintf("currency mismatch: %s vs %s", e.Left, e.Right)
}

// New returns a Money of amount minor units in the given currency.
func New(amount int64, currency string) Money {
	return Money{Amount: amount, Currency: currency}
}

// Parse converts a decimal string like "12.34" into minor units.
// More than two fractional digits is an error rather than silent rounding.
func Parse(s, currency string) (Money, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return Money{}, fmt.Errorf("invalid amount %q: %w", s, err)
	}
	shifted := d.Shift(minorDigits)
	if !shifted.IsInteger() {
		return Money{}, fmt.Errorf("amount %q has more than %d decimal places", s, minorDigits)
	}
	return Money{Amount: shifted.IntPart(), Currency: currency}, nil
}

// Decimal returns the amount in major units as a decimal.
func (m Money) Decimal() decimal.Decimal {
	return decimal.New(m.Amount, -minorDigits)
}

// String formats the amount as "12.34 USD".
func (m Money) String() string {
	return fmt.Sprintf("%s %s", m.Decimal().StringFixed(minorDigits), m.Currency)
}

// Add returns m + other, or a MismatchError if the currencies differ.
// Adding to a zero-valued accumulator adopts the other currency.
func (m Money) Add(other Money) (Money, error) {
	if m.Currency == "" {
		return other, nil
	}
	if other.Currency == "" {
		return m, nil
	}
	if m.Currency != other.Currency {
		return Money{}, &MismatchError{Left: m.Currency, Right: other.Currency}
	}
	return Money{Amount: m.Amount + other.Amount, Currency: m.Currency}, nil
}

// Sub returns m - other, or a MismatchError if the currencies differ.
func (m Money) Sub(other Money) (Money, error) {
	return m.Add(other.Neg())
}

// Neg returns the amount with its sign flipped.
func (m Money) Neg() Money {
	return Money{Amount: -m.Amount, Currency: m.Currency}
}

// Abs returns the amount with a non-negative sign.
func (m Money) Abs() Money {
	if m.Amount < 0 {
		return m.Neg()
	}
	return m
}

// IsZero reports whether the amount is exactly zero minor units.
func (m Money) IsZero() bool { return m.Amount == 0 }

// IsPositive reports whether the amount is strictly above zero.
func (m Money) IsPositive() bool { return m.Amount > 0 }

// Percent returns pct percent of m, rounded half-up to the nearest minor
// unit. The computation runs in decimal space so 33.33% of an amount does
// not drift the way float64 multiplication would.
func (m Money) Percent(pct float64) Money {
	share := m.Decimal().
		Mul(decimal.NewFromFloat(pct)).
		Div(decimal.NewFromInt(100)).
		Round(minorDigits)
	return Money{Amount: share.Shift(minorDigits).IntPart(), Currency: m.Currency}
}

// moneyJSON is the wire form: a decimal string plus a currency code.
type moneyJSON struct {
	Amount   string `json:"amount"`
	Currency string `json:"currency"`
}

// MarshalJSON encodes the amount as {"amount":"12.34","currency":"USD"}.
func (m Money) MarshalJSON() ([]byte, error) {
	return json.Marshal(moneyJSON{
		Amount:   m.Decimal().StringFixed(minorDigits),
		Currency: m.Currency,
	})
}

// UnmarshalJSON decodes the wire form, validating the decimal string.
func (m *Money) UnmarshalJSON(data []byte) error {
	var raw moneyJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	parsed, err := Parse(raw.Amount, raw.Currency)
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}

// Package money provides the fixed-point monetary value used across the ledger.
//
// It is a value object that represents an amount of Brazilian reais.
// Invariants:
//   - Amount is always stored in centavos (the smallest currency unit).
//   - Arithmetic never goes through binary floating point; decimal input is
//     parsed exactly and rejected when it carries sub-centavo precision.
package money

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"

	"github.com/shopspring/decimal"
)

var (
	// ErrInvalidAmount is returned when an amount cannot be parsed as an
	// exact monetary value (malformed input or sub-centavo precision).
	ErrInvalidAmount = errors.New("invalid monetary amount")

	// ErrAmountExceedsMaxSafeInt is returned when an amount, or the result of
	// an operation, does not fit in an int64 number of centavos.
	ErrAmountExceedsMaxSafeInt = errors.New("amount exceeds maximum safe integer value")
)

// CurrencyCode is the ISO 4217 code of the only currency the ledger handles.
const CurrencyCode = "BRL"

// Decimals is the number of decimal places carried by the currency.
const Decimals = 2

// Money represents a BRL monetary value in centavos.
// The zero value is a valid zero amount.
type Money struct {
	amount int64
}

// Zero returns a zero-valued Money.
func Zero() Money { return Money{} }

// FromCentavos creates a Money from an integer number of centavos.
// Used for hydrating values from the store, where amounts are persisted as
// int64 columns.
func FromCentavos(amount int64) Money {
	return Money{amount: amount}
}

// Parse creates a Money from a decimal string such as "100", "99.90" or
// "-0.01". It fails with ErrInvalidAmount if the string is not a number or
// carries more than two decimal places.
func Parse(s string) (Money, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return Money{}, fmt.Errorf("%w: %q", ErrInvalidAmount, s)
	}
	return fromDecimal(d)
}

// FromFloat creates a Money from a float64 number of reais. The float is
// converted through decimal so that values like 100.10 land on exactly 10010
// centavos. Fails with ErrInvalidAmount on NaN, infinities or sub-centavo
// precision.
func FromFloat(f float64) (Money, error) {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return Money{}, fmt.Errorf("%w: %v", ErrInvalidAmount, f)
	}
	return fromDecimal(decimal.NewFromFloat(f))
}

func fromDecimal(d decimal.Decimal) (Money, error) {
	scaled := d.Shift(Decimals)
	if !scaled.IsInteger() {
		return Money{}, fmt.Errorf("%w: more than %d decimal places", ErrInvalidAmount, Decimals)
	}
	if !scaled.BigInt().IsInt64() {
		return Money{}, ErrAmountExceedsMaxSafeInt
	}
	return Money{amount: scaled.IntPart()}, nil
}

// Centavos returns the amount in centavos.
func (m Money) Centavos() int64 { return m.amount }

// Float64 returns the amount in reais. Only for display; never feed the
// result back into arithmetic.
func (m Money) Float64() float64 {
	f, _ := decimal.New(m.amount, -Decimals).Float64()
	return f
}

// IsPositive reports whether the amount is strictly greater than zero.
func (m Money) IsPositive() bool { return m.amount > 0 }

// IsNegative reports whether the amount is strictly less than zero.
func (m Money) IsNegative() bool { return m.amount < 0 }

// IsZero reports whether the amount is exactly zero.
func (m Money) IsZero() bool { return m.amount == 0 }

// Add returns the sum of the two amounts.
// Fails with ErrAmountExceedsMaxSafeInt on int64 overflow.
func (m Money) Add(other Money) (Money, error) {
	sum := m.amount + other.amount
	if (other.amount > 0 && sum < m.amount) || (other.amount < 0 && sum > m.amount) {
		return Money{}, ErrAmountExceedsMaxSafeInt
	}
	return Money{amount: sum}, nil
}

// Subtract returns the difference of the two amounts. The result may be
// negative; callers enforce their own non-negativity rules.
func (m Money) Subtract(other Money) (Money, error) {
	diff := m.amount - other.amount
	if (other.amount < 0 && diff < m.amount) || (other.amount > 0 && diff > m.amount) {
		return Money{}, ErrAmountExceedsMaxSafeInt
	}
	return Money{amount: diff}, nil
}

// GreaterThan reports whether m is strictly greater than other.
func (m Money) GreaterThan(other Money) bool { return m.amount > other.amount }

// LessThan reports whether m is strictly less than other.
func (m Money) LessThan(other Money) bool { return m.amount < other.amount }

// Equals reports whether the two amounts are equal.
func (m Money) Equals(other Money) bool { return m.amount == other.amount }

// String renders the amount in reais, e.g. "100.00".
func (m Money) String() string {
	return decimal.New(m.amount, -Decimals).StringFixed(Decimals)
}

// MarshalJSON implements json.Marshaler.
func (m Money) MarshalJSON() ([]byte, error) {
	return json.Marshal(map[string]any{
		"amount":    m.amount,
		"currency":  CurrencyCode,
		"formatted": m.String(),
	})
}

// UnmarshalJSON implements json.Unmarshaler.
func (m *Money) UnmarshalJSON(data []byte) error {
	var aux struct {
		Amount   int64  `json:"amount"`
		Currency string `json:"currency"`
	}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	if aux.Currency != "" && aux.Currency != CurrencyCode {
		return fmt.Errorf("%w: unsupported currency %q", ErrInvalidAmount, aux.Currency)
	}
	m.amount = aux.Amount
	return nil
}

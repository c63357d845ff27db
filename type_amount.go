package tracker

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// newDecimal is a convenient factory for decimal.Decimal
func newDecimal[T float32 | float64 | int | int32 | int64 | decimal.Decimal](value T) decimal.Decimal {
	switch v := any(value).(type) {
	case decimal.Decimal:
		return v
	case float32:
		return decimal.NewFromFloat32(v)
	case float64:
		return decimal.NewFromFloat(v)
	case int:
		return decimal.NewFromInt(int64(v))
	case int32:
		return decimal.NewFromInt32(v)
	case int64:
		return decimal.NewFromInt(v)
	default:
		panic("unsupported type")
	}
}

// Amount represents a monetary magnitude with two fraction digits.
//
// The sign of a ledger movement never lives here; it comes from the
// transaction type. An Amount can still be negative as the result of
// arithmetic (a balance that went into the red).
type Amount struct {
	value decimal.Decimal
}

func A[T float32 | float64 | int | int32 | int64 | decimal.Decimal](value T) Amount {
	return Amount{value: newDecimal(value)}
}

// ParseAmount parses a monetary magnitude from user or file input. It is
// lenient: currency symbols, grouping separators and any other decoration
// are stripped before parsing, so "$4.50" reads as 4.50.
func ParseAmount(s string) (Amount, error) {
	cleaned := strings.Map(func(r rune) rune {
		switch {
		case r >= '0' && r <= '9', r == '.', r == '-':
			return r
		default:
			return -1
		}
	}, s)
	if cleaned == "" {
		return Amount{}, fmt.Errorf("no numeric value in %q", s)
	}
	d, err := decimal.NewFromString(cleaned)
	if err != nil {
		return Amount{}, fmt.Errorf("invalid amount %q: %w", s, err)
	}
	return Amount{value: d}, nil
}

// Round2 returns the amount rounded half-up to two fraction digits, the
// precision every stored amount carries.
func (a Amount) Round2() Amount { return Amount{value: a.value.Round(2)} }

// String renders the amount with exactly two fraction digits and no grouping.
func (a Amount) String() string { return a.value.StringFixed(2) }

func (a Amount) Equal(b Amount) bool              { return a.value.Equal(b.value) }
func (a Amount) IsZero() bool                     { return a.value.IsZero() }
func (a Amount) IsPositive() bool                 { return a.value.IsPositive() }
func (a Amount) IsNegative() bool                 { return a.value.IsNegative() }
func (a Amount) LessThan(b Amount) bool           { return a.value.LessThan(b.value) }
func (a Amount) LessThanOrEqual(b Amount) bool    { return a.value.LessThanOrEqual(b.value) }
func (a Amount) GreaterThan(b Amount) bool        { return a.value.GreaterThan(b.value) }
func (a Amount) GreaterThanOrEqual(b Amount) bool { return a.value.GreaterThanOrEqual(b.value) }
func (a Amount) Neg() Amount                      { return Amount{value: a.value.Neg()} }
func (a Amount) Add(b Amount) Amount              { return Amount{value: a.value.Add(b.value)} }
func (a Amount) Sub(b Amount) Amount              { return Amount{value: a.value.Sub(b.value)} }

// Float64 returns the nearest float64, for display-side computations only.
func (a Amount) Float64() float64 { return a.value.InexactFloat64() }

// MarshalJSON persists the amount as its fixed two-digit string, the way the
// host application has always stored it.
func (a Amount) MarshalJSON() ([]byte, error) {
	return json.Marshal(a.String())
}

// UnmarshalJSON accepts both the canonical string form ("245.75") and a bare
// JSON number, for tolerance with hand-edited data files.
func (a *Amount) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		d, err := decimal.NewFromString(strings.TrimSpace(s))
		if err != nil {
			return fmt.Errorf("invalid amount %q: %w", s, err)
		}
		a.value = d
		return nil
	}
	return a.value.UnmarshalJSON(data)
}

var _ json.Marshaler = (*Amount)(nil)
var _ json.Unmarshaler = (*Amount)(nil)

package types

import (
	"bytes"
	"fmt"

	"github.com/shopspring/decimal"
)

// Money is a currency amount that serializes as a bare JSON number. Numeric
// strings are accepted on input; anything else is rejected rather than zeroed.
type Money struct {
	decimal.Decimal
}

func NewMoney(d decimal.Decimal) Money {
	return Money{Decimal: d}
}

func MoneyFromInt(v int64) Money {
	return Money{Decimal: decimal.NewFromInt(v)}
}

// MarshalJSON implements json.Marshaler.
func (m Money) MarshalJSON() ([]byte, error) {
	return []byte(m.Decimal.String()), nil
}

// UnmarshalJSON implements json.Unmarshaler.
func (m *Money) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return fmt.Errorf("amount must be a number")
	}
	trimmed = bytes.Trim(trimmed, `"`)
	parsed, err := decimal.NewFromString(string(bytes.TrimSpace(trimmed)))
	if err != nil {
		return fmt.Errorf("amount %s is not numeric", string(data))
	}
	m.Decimal = parsed
	return nil
}

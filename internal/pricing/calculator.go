package pricing

import (
	"fmt"

	pkgerrors "github.com/angelmondragon/coilbill-backend/pkg/errors"
	"github.com/shopspring/decimal"
)

// CurrencyPlaces is the number of decimal places every amount is rounded to.
const CurrencyPlaces = 2

// Line is a single billable row: quantity times the coil (unit) price.
type Line struct {
	Quantity  decimal.Decimal
	UnitPrice decimal.Decimal
}

// Input is the calculator request. TaxRate is accepted but not applied.
type Input struct {
	Lines   []Line
	TaxRate decimal.Decimal
}

// LineResult is a line with its rounded total.
type LineResult struct {
	Quantity  decimal.Decimal
	UnitPrice decimal.Decimal
	Total     decimal.Decimal
}

// Result carries the derived invoice totals.
type Result struct {
	Lines      []LineResult
	Subtotal   decimal.Decimal
	GST        decimal.Decimal
	GrandTotal decimal.Decimal
	TaxRate    decimal.Decimal
}

// LineError names the offending line and field.
type LineError struct {
	Index  int    `json:"index"`
	Field  string `json:"field"`
	Reason string `json:"reason"`
}

// Round rounds an amount to currency precision (half away from zero).
func Round(amount decimal.Decimal) decimal.Decimal {
	return amount.Round(CurrencyPlaces)
}

// LineTotal returns round(quantity x unitPrice).
func LineTotal(quantity, unitPrice decimal.Decimal) decimal.Decimal {
	return Round(quantity.Mul(unitPrice))
}

// Calculate derives line totals, subtotal and grand total. GST is always zero
// and the grand total equals the subtotal regardless of TaxRate.
func Calculate(in Input) (*Result, error) {
	if errs := ValidateLines(in.Lines); len(errs) > 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid line items").
			WithDetails(map[string]any{"lines": errs})
	}

	res := &Result{
		Lines:    make([]LineResult, 0, len(in.Lines)),
		Subtotal: decimal.Zero,
		GST:      decimal.Zero,
		TaxRate:  in.TaxRate,
	}
	for _, line := range in.Lines {
		total := LineTotal(line.Quantity, line.UnitPrice)
		res.Lines = append(res.Lines, LineResult{
			Quantity:  line.Quantity,
			UnitPrice: line.UnitPrice,
			Total:     total,
		})
		res.Subtotal = res.Subtotal.Add(total)
	}
	res.Subtotal = Round(res.Subtotal)
	res.GrandTotal = res.Subtotal
	return res, nil
}

// ValidateLines rejects non-positive quantities and negative prices.
func ValidateLines(lines []Line) []LineError {
	var errs []LineError
	for i, line := range lines {
		if !line.Quantity.IsPositive() {
			errs = append(errs, LineError{Index: i, Field: "qty", Reason: "must be greater than zero"})
		}
		if line.UnitPrice.IsNegative() {
			errs = append(errs, LineError{Index: i, Field: "coilPrice", Reason: "must not be negative"})
		}
	}
	return errs
}

// Scale applies a per-admin price multiplier and rounds to currency.
func Scale(price, multiplier decimal.Decimal) (decimal.Decimal, error) {
	if !multiplier.IsPositive() {
		return decimal.Zero, pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("price multiplier must be positive, got %s", multiplier.String()))
	}
	return Round(price.Mul(multiplier)), nil
}

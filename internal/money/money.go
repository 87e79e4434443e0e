// Package money centralizes the rounding and display rules for monetary
// values. Every amount in the system is a shopspring decimal; rounding to
// centavos happens only here, never in intermediate calculations.
package money

import (
	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

var ptBR = message.NewPrinter(language.BrazilianPortuguese)

// Round2 rounds to 2 decimal places, half away from zero.
// Used when splitting a total into parcelas so each one is a valid
// currency amount. Subtotal math stays full-precision.
func Round2(d decimal.Decimal) decimal.Decimal {
	return d.Round(2)
}

// FormatBRL renders a value with Brazilian grouping and exactly two
// fraction digits: 1234.5 → "R$ 1.234,50".
func FormatBRL(d decimal.Decimal) string {
	f, _ := d.Round(2).Float64()
	return ptBR.Sprintf("R$ %v", number.Decimal(f,
		number.MinFractionDigits(2), number.MaxFractionDigits(2)))
}

// FormatBRLPtr treats a missing value as zero, so callers can pass
// optional fields straight through without guarding.
func FormatBRLPtr(d *decimal.Decimal) string {
	if d == nil {
		return FormatBRL(decimal.Zero)
	}
	return FormatBRL(*d)
}

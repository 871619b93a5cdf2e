// Package money holds the number helpers shared by the calculators and the
// rendered document: ten-cent rounding and pt-BR currency display.
package money

import (
	"math"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

var printer = message.NewPrinter(language.BrazilianPortuguese)

// RoundToNearestTenCents rounds a value to the nearest multiple of 0.10,
// ties away from zero. Item totals are rounded with this rule; aggregate
// totals are not rounded again.
func RoundToNearestTenCents(v float64) float64 {
	return math.Round(v*10) / 10
}

// FormatBRL formats a value as Brazilian currency, e.g. "R$ 1.234,56".
func FormatBRL(v float64) string {
	return printer.Sprintf("R$ %v", number.Decimal(v,
		number.MinFractionDigits(2),
		number.MaxFractionDigits(2),
	))
}

package money

import (
	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

var printer = message.NewPrinter(language.BrazilianPortuguese)

// Round brings an amount to cents, half away from zero.
func Round(amount float64) decimal.Decimal {
	return decimal.NewFromFloat(amount).Round(2)
}

// FormatNumber renders an amount with pt-BR grouping and two decimals,
// e.g. 1234.5 → "1.234,50".
func FormatNumber(amount float64) string {
	rounded := Round(amount)
	if rounded.IsNegative() {
		return "-" + FormatNumber(rounded.Neg().InexactFloat64())
	}
	return printer.Sprint(number.Decimal(rounded.InexactFloat64(), number.Scale(2)))
}

// FormatBRL renders an amount as Brazilian reais, e.g. "R$ 1.234,50".
func FormatBRL(amount float64) string {
	rounded := Round(amount)
	if rounded.IsNegative() {
		return "-R$ " + FormatNumber(rounded.Neg().InexactFloat64())
	}
	return "R$ " + FormatNumber(rounded.InexactFloat64())
}

// Package money formats pound amounts and rates for display.
package money

import (
	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var (
	printer = message.NewPrinter(language.BritishEnglish)
	hundred = decimal.NewFromInt(100)
)

// Pounds formats an amount as whole pounds with digit grouping, e.g. £1,234,567.
func Pounds(amount decimal.Decimal) string {
	whole := amount.Round(0).IntPart()
	if whole < 0 {
		return printer.Sprintf("-£%d", -whole)
	}
	return printer.Sprintf("£%d", whole)
}

// Percent formats a fraction as a percentage with one decimal, e.g. 0.025 -> 2.5%.
func Percent(rate decimal.Decimal) string {
	return rate.Mul(hundred).StringFixed(1) + "%"
}

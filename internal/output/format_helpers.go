package output

import (
	"strconv"

	"github.com/rgehrsitz/pensionproj/pkg/money"
	"github.com/shopspring/decimal"
)

// FormatCurrency formats an amount as whole pounds with digit grouping, e.g. £1,234,567.
func FormatCurrency(amount decimal.Decimal) string {
	return money.Pounds(amount)
}

// FormatPercentage formats a fraction as a percentage with one decimal, e.g. 0.025 -> 2.5%.
func FormatPercentage(rate decimal.Decimal) string {
	return money.Percent(rate)
}

func formatAge(age *int) string {
	if age == nil {
		return "-"
	}
	return strconv.Itoa(*age)
}

func eventNames(names *string) string {
	if names == nil {
		return ""
	}
	return *names
}

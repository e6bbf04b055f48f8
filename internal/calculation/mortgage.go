package calculation

import (
	"github.com/shopspring/decimal"
)

// MORTGAGE ASSUMPTIONS:
//
// The caller's mortgage terms are not known, so every balance is treated as a
// 25-year repayment mortgage at 4%. Each year only 30% of the level payment is
// taken as principal.

const mortgageTermMonths = 300

var (
	mortgageAnnualRate    = decimal.NewFromFloat(0.04)
	mortgagePrincipalPart = decimal.NewFromFloat(0.30)
)

// LevelMonthlyPayment returns the standard amortizing monthly payment for a balance.
func LevelMonthlyPayment(balance decimal.Decimal) decimal.Decimal {
	if !balance.IsPositive() {
		return decimal.Zero
	}
	monthlyRate := mortgageAnnualRate.Div(decimalTwelve)
	growth := decimalOne.Add(monthlyRate).Pow(decimal.NewFromInt(mortgageTermMonths))
	// P = B*r / (1 - (1+r)^-n) = B*r*g / (g - 1)
	return balance.Mul(monthlyRate).Mul(growth).Div(growth.Sub(decimalOne))
}

// AnnualPrincipalReduction is the amount cleared from the balance each year.
func AnnualPrincipalReduction(startingBalance decimal.Decimal) decimal.Decimal {
	return LevelMonthlyPayment(startingBalance).Mul(decimalTwelve).Mul(mortgagePrincipalPart)
}

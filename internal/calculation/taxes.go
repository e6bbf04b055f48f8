package calculation

import (
	"github.com/shopspring/decimal"
)

// TAX CALCULATION ASSUMPTIONS:
//
// 1. UK income tax bands for 2024/25 are used for every projection year
//    - No inflation indexing of thresholds (frozen bands)
//    - Personal allowance: £12,570
//    - Allowance tapers by £1 for every £2 of income over £100,000
//
// 2. Bands apply to income after the allowance:
//    - Basic rate 20% on the first £37,700
//    - Higher rate 40% up to £125,140
//    - Additional rate 45% above
//
// 3. The tax-free lump sum is never passed to the calculator.

// TaxBracket represents an income tax band on income after the personal allowance.
// A zero Max means the band is unbounded.
type TaxBracket struct {
	Min  decimal.Decimal
	Max  decimal.Decimal
	Rate decimal.Decimal
}

// TaxCalculator computes income tax under a progressive band schedule.
type TaxCalculator struct {
	PersonalAllowance decimal.Decimal
	TaperThreshold    decimal.Decimal
	Brackets          []TaxBracket
}

var decimalTwo = decimal.NewFromInt(2)

// NewTaxCalculator creates a calculator with the 2024/25 UK bands.
func NewTaxCalculator() *TaxCalculator {
	return &TaxCalculator{
		PersonalAllowance: decimal.NewFromInt(12570),
		TaperThreshold:    decimal.NewFromInt(100000),
		Brackets: []TaxBracket{
			{decimal.Zero, decimal.NewFromInt(37700), decimal.NewFromFloat(0.20)},
			{decimal.NewFromInt(37700), decimal.NewFromInt(125140), decimal.NewFromFloat(0.40)},
			{decimal.NewFromInt(125140), decimal.Zero, decimal.NewFromFloat(0.45)},
		},
	}
}

// Allowance returns the personal allowance after tapering for the given income.
func (tc *TaxCalculator) Allowance(income decimal.Decimal) decimal.Decimal {
	if income.LessThanOrEqual(tc.TaperThreshold) {
		return tc.PersonalAllowance
	}
	reduction := income.Sub(tc.TaperThreshold).Div(decimalTwo)
	return decimal.Max(decimal.Zero, tc.PersonalAllowance.Sub(reduction))
}

// Calculate returns the income tax due on a year's taxable income.
func (tc *TaxCalculator) Calculate(income decimal.Decimal) decimal.Decimal {
	if !income.IsPositive() {
		return decimal.Zero
	}

	taxableIncome := income.Sub(tc.Allowance(income))
	if taxableIncome.LessThanOrEqual(decimal.Zero) {
		return decimal.Zero
	}

	var totalTax decimal.Decimal
	for _, bracket := range tc.Brackets {
		if taxableIncome.LessThanOrEqual(bracket.Min) {
			break
		}
		top := taxableIncome
		if !bracket.Max.IsZero() {
			top = decimal.Min(taxableIncome, bracket.Max)
		}
		incomeInBracket := top.Sub(bracket.Min)
		if incomeInBracket.GreaterThan(decimal.Zero) {
			totalTax = totalTax.Add(incomeInBracket.Mul(bracket.Rate))
		}
	}

	return totalTax
}

// EffectiveRate returns tax as a fraction of income, zero for no income.
func (tc *TaxCalculator) EffectiveRate(income decimal.Decimal) decimal.Decimal {
	if !income.IsPositive() {
		return decimal.Zero
	}
	return tc.Calculate(income).Div(income)
}

package domain

import (
	"github.com/shopspring/decimal"
)

// The record types below mirror the user data store. Each lookup returns at most one of
// each; a missing record is nil and means "all defaults".

// UserProfile holds demographic data and personal assumptions.
type UserProfile struct {
	UserID                     string           `json:"user_id" yaml:"user_id"`
	Email                      string           `json:"email,omitempty" yaml:"email,omitempty"`
	DateOfBirth                *Date            `json:"date_of_birth,omitempty" yaml:"date_of_birth,omitempty"`
	RetirementAge              *int             `json:"retirement_age,omitempty" yaml:"retirement_age,omitempty"`
	DesiredIncome              *decimal.Decimal `json:"desired_income,omitempty" yaml:"desired_income,omitempty"`
	InflationAssumption        *decimal.Decimal `json:"inflation_assumption,omitempty" yaml:"inflation_assumption,omitempty"`                 // percent, e.g. 2.5
	InvestmentReturnAssumption *decimal.Decimal `json:"investment_return_assumption,omitempty" yaml:"investment_return_assumption,omitempty"` // percent
}

// PensionPot is a defined contribution pension.
type PensionPot struct {
	PotID               string           `json:"pot_id,omitempty" yaml:"pot_id,omitempty"`
	ProviderName        string           `json:"provider_name,omitempty" yaml:"provider_name,omitempty"`
	PotType             string           `json:"pot_type,omitempty" yaml:"pot_type,omitempty"`
	CurrentValue        decimal.Decimal  `json:"current_value" yaml:"current_value"`
	MonthlyContribution *decimal.Decimal `json:"monthly_contribution,omitempty" yaml:"monthly_contribution,omitempty"`
	IsActive            bool             `json:"is_active" yaml:"is_active"`
	LumpSumTaken        bool             `json:"lump_sum_taken" yaml:"lump_sum_taken"`
}

// StatePensionRecord is the state pension entitlement.
type StatePensionRecord struct {
	EstimatedAnnualAmount *decimal.Decimal `json:"estimated_annual_amount,omitempty" yaml:"estimated_annual_amount,omitempty"`
	StatePensionAge       *int             `json:"state_pension_age,omitempty" yaml:"state_pension_age,omitempty"`
}

// Property is the main residence.
type Property struct {
	CurrentValue    decimal.Decimal  `json:"current_value" yaml:"current_value"`
	HasMortgage     bool             `json:"has_mortgage" yaml:"has_mortgage"`
	MortgageBalance *decimal.Decimal `json:"mortgage_balance,omitempty" yaml:"mortgage_balance,omitempty"`
}

// Liability is outstanding debt.
type Liability struct {
	LiabilityType  string          `json:"liability_type,omitempty" yaml:"liability_type,omitempty"`
	CurrentBalance decimal.Decimal `json:"current_balance" yaml:"current_balance"`
}

// UserRecords groups everything known about one user.
type UserRecords struct {
	Profile      *UserProfile        `json:"profile,omitempty" yaml:"profile,omitempty"`
	PensionPot   *PensionPot         `json:"pension_pot,omitempty" yaml:"pension_pot,omitempty"`
	StatePension *StatePensionRecord `json:"state_pension,omitempty" yaml:"state_pension,omitempty"`
	Property     *Property           `json:"property,omitempty" yaml:"property,omitempty"`
	Liability    *Liability          `json:"liabilities,omitempty" yaml:"liabilities,omitempty"`
}

// BuildSnapshot maps stored records onto a FinancialSnapshot, substituting defaults for
// anything missing.
func BuildSnapshot(r UserRecords) FinancialSnapshot {
	snapshot := FinancialSnapshot{RetirementAge: DefaultRetirementAge}

	if p := r.Profile; p != nil {
		snapshot.DateOfBirth = p.DateOfBirth
		if p.RetirementAge != nil {
			snapshot.RetirementAge = *p.RetirementAge
		}
		if p.DesiredIncome != nil {
			snapshot.DesiredIncome = *p.DesiredIncome
		}
	}

	if pot := r.PensionPot; pot != nil {
		snapshot.PensionPot = pot.CurrentValue
		if pot.MonthlyContribution != nil {
			snapshot.MonthlyContribution = *pot.MonthlyContribution
		}
		active := pot.IsActive
		snapshot.StillContributing = &active
		snapshot.LumpSumTaken = pot.LumpSumTaken
	}

	if sp := r.StatePension; sp != nil && sp.EstimatedAnnualAmount != nil {
		amount := *sp.EstimatedAnnualAmount
		snapshot.StatePension = &amount
	}

	if prop := r.Property; prop != nil {
		snapshot.PropertyValue = prop.CurrentValue
	}

	// Liabilities hold the total debt; the property's mortgage balance is only a fallback
	// so a mortgage recorded in both places is not counted twice.
	switch {
	case r.Liability != nil && r.Liability.CurrentBalance.IsPositive():
		snapshot.TotalDebt = r.Liability.CurrentBalance
	case r.Property != nil && r.Property.HasMortgage && r.Property.MortgageBalance != nil:
		snapshot.TotalDebt = *r.Property.MortgageBalance
	}

	return snapshot
}

var hundred = decimal.NewFromInt(100)

// ProfileOverrides derives assumption overrides from the user's stored preferences.
// Percentages on the profile become fractions.
func ProfileOverrides(r UserRecords) AssumptionOverrides {
	var o AssumptionOverrides
	if p := r.Profile; p != nil {
		if p.InflationAssumption != nil {
			v := p.InflationAssumption.Div(hundred)
			o.InflationRate = &v
		}
		if p.InvestmentReturnAssumption != nil {
			v := p.InvestmentReturnAssumption.Div(hundred)
			o.AccumulationGrowthRate = &v
		}
	}
	if sp := r.StatePension; sp != nil && sp.StatePensionAge != nil {
		age := *sp.StatePensionAge
		o.StatePensionAge = &age
	}
	return o
}

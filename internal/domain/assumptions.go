package domain

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// PROJECTION ASSUMPTIONS:
//
// 1. Growth: 5% a year while contributing, 4% once in drawdown.
// 2. Inflation: 2.5%, applied to the state pension and the income target.
// 3. State pension: full new state pension of £11,502.40 (2024/25) from age 67.
// 4. Tax-free lump sum: 25% of the pot on the first retirement year.
// 5. Property: 3% growth a year.
// 6. Planning horizon: projections run to age 95.

// AssumptionSet is a fully resolved set of economic assumptions.
type AssumptionSet struct {
	AccumulationGrowthRate decimal.Decimal `json:"accumulation_growth_rate" yaml:"accumulation_growth_rate"`
	DrawdownGrowthRate     decimal.Decimal `json:"drawdown_growth_rate" yaml:"drawdown_growth_rate"`
	InflationRate          decimal.Decimal `json:"inflation_rate" yaml:"inflation_rate"`
	StatePensionAge        int             `json:"state_pension_age" yaml:"state_pension_age"`
	FullStatePension       decimal.Decimal `json:"full_state_pension" yaml:"full_state_pension"`
	LumpSumRate            decimal.Decimal `json:"lump_sum_rate" yaml:"lump_sum_rate"`
	PropertyGrowthRate     decimal.Decimal `json:"property_growth_rate" yaml:"property_growth_rate"`
	PlanningHorizonAge     int             `json:"planning_horizon_age" yaml:"planning_horizon_age"`
}

// DefaultAssumptions returns the system defaults.
func DefaultAssumptions() AssumptionSet {
	return AssumptionSet{
		AccumulationGrowthRate: decimal.NewFromFloat(0.05),
		DrawdownGrowthRate:     decimal.NewFromFloat(0.04),
		InflationRate:          decimal.NewFromFloat(0.025),
		StatePensionAge:        67,
		FullStatePension:       decimal.NewFromFloat(11502.40),
		LumpSumRate:            decimal.NewFromFloat(0.25),
		PropertyGrowthRate:     decimal.NewFromFloat(0.03),
		PlanningHorizonAge:     95,
	}
}

// AssumptionOverrides holds caller-supplied assumptions. A nil field keeps the default.
type AssumptionOverrides struct {
	AccumulationGrowthRate *decimal.Decimal `json:"accumulation_growth_rate,omitempty" yaml:"accumulation_growth_rate,omitempty"`
	DrawdownGrowthRate     *decimal.Decimal `json:"drawdown_growth_rate,omitempty" yaml:"drawdown_growth_rate,omitempty"`
	InflationRate          *decimal.Decimal `json:"inflation_rate,omitempty" yaml:"inflation_rate,omitempty"`
	StatePensionAge        *int             `json:"state_pension_age,omitempty" yaml:"state_pension_age,omitempty"`
	FullStatePension       *decimal.Decimal `json:"full_state_pension,omitempty" yaml:"full_state_pension,omitempty"`
	LumpSumRate            *decimal.Decimal `json:"lump_sum_rate,omitempty" yaml:"lump_sum_rate,omitempty"`
	PropertyGrowthRate     *decimal.Decimal `json:"property_growth_rate,omitempty" yaml:"property_growth_rate,omitempty"`
	PlanningHorizonAge     *int             `json:"planning_horizon_age,omitempty" yaml:"planning_horizon_age,omitempty"`
}

var (
	minGrowthRate    = decimal.NewFromFloat(-0.50)
	maxGrowthRate    = decimal.NewFromFloat(0.50)
	minInflationRate = decimal.NewFromFloat(-0.10)
	maxInflationRate = decimal.NewFromFloat(0.20)
)

// Validate rejects overrides outside plausible ranges.
func (o AssumptionOverrides) Validate() error {
	rates := []struct {
		name     string
		value    *decimal.Decimal
		min, max decimal.Decimal
	}{
		{"accumulation_growth_rate", o.AccumulationGrowthRate, minGrowthRate, maxGrowthRate},
		{"drawdown_growth_rate", o.DrawdownGrowthRate, minGrowthRate, maxGrowthRate},
		{"property_growth_rate", o.PropertyGrowthRate, minGrowthRate, maxGrowthRate},
		{"inflation_rate", o.InflationRate, minInflationRate, maxInflationRate},
		{"lump_sum_rate", o.LumpSumRate, decimal.Zero, decimal.NewFromInt(1)},
	}
	for _, r := range rates {
		if r.value == nil {
			continue
		}
		if r.value.LessThan(r.min) || r.value.GreaterThan(r.max) {
			return invalidf("%s must be between %s and %s, got %s", r.name, r.min.String(), r.max.String(), r.value.String())
		}
	}
	if o.StatePensionAge != nil && (*o.StatePensionAge < 50 || *o.StatePensionAge > 100) {
		return invalidf("state_pension_age must be between 50 and 100, got %d", *o.StatePensionAge)
	}
	if o.FullStatePension != nil && o.FullStatePension.IsNegative() {
		return invalidf("full_state_pension must not be negative, got %s", o.FullStatePension.String())
	}
	if o.PlanningHorizonAge != nil && (*o.PlanningHorizonAge < 1 || *o.PlanningHorizonAge > maxAge) {
		return invalidf("planning_horizon_age must be between 1 and %d, got %d", maxAge, *o.PlanningHorizonAge)
	}
	return nil
}

// Merge returns o with every non-nil field of other applied on top.
func (o AssumptionOverrides) Merge(other *AssumptionOverrides) AssumptionOverrides {
	if other == nil {
		return o
	}
	merged := o
	if other.AccumulationGrowthRate != nil {
		merged.AccumulationGrowthRate = other.AccumulationGrowthRate
	}
	if other.DrawdownGrowthRate != nil {
		merged.DrawdownGrowthRate = other.DrawdownGrowthRate
	}
	if other.InflationRate != nil {
		merged.InflationRate = other.InflationRate
	}
	if other.StatePensionAge != nil {
		merged.StatePensionAge = other.StatePensionAge
	}
	if other.FullStatePension != nil {
		merged.FullStatePension = other.FullStatePension
	}
	if other.LumpSumRate != nil {
		merged.LumpSumRate = other.LumpSumRate
	}
	if other.PropertyGrowthRate != nil {
		merged.PropertyGrowthRate = other.PropertyGrowthRate
	}
	if other.PlanningHorizonAge != nil {
		merged.PlanningHorizonAge = other.PlanningHorizonAge
	}
	return merged
}

// ResolveAssumptions merges overrides onto the defaults field by field.
func ResolveAssumptions(overrides *AssumptionOverrides) AssumptionSet {
	resolved := DefaultAssumptions()
	if overrides == nil {
		return resolved
	}
	if overrides.AccumulationGrowthRate != nil {
		resolved.AccumulationGrowthRate = *overrides.AccumulationGrowthRate
	}
	if overrides.DrawdownGrowthRate != nil {
		resolved.DrawdownGrowthRate = *overrides.DrawdownGrowthRate
	}
	if overrides.InflationRate != nil {
		resolved.InflationRate = *overrides.InflationRate
	}
	if overrides.StatePensionAge != nil {
		resolved.StatePensionAge = *overrides.StatePensionAge
	}
	if overrides.FullStatePension != nil {
		resolved.FullStatePension = *overrides.FullStatePension
	}
	if overrides.LumpSumRate != nil {
		resolved.LumpSumRate = *overrides.LumpSumRate
	}
	if overrides.PropertyGrowthRate != nil {
		resolved.PropertyGrowthRate = *overrides.PropertyGrowthRate
	}
	if overrides.PlanningHorizonAge != nil {
		resolved.PlanningHorizonAge = *overrides.PlanningHorizonAge
	}
	return resolved
}

// Describe renders the assumptions as human-readable lines for reports.
func (a AssumptionSet) Describe() []string {
	pct := func(d decimal.Decimal) string {
		return d.Mul(decimal.NewFromInt(100)).StringFixed(1) + "%"
	}
	return []string{
		fmt.Sprintf("Growth while saving: %s, in drawdown: %s", pct(a.AccumulationGrowthRate), pct(a.DrawdownGrowthRate)),
		fmt.Sprintf("Inflation: %s", pct(a.InflationRate)),
		fmt.Sprintf("State pension: £%s a year from age %d", a.FullStatePension.StringFixed(2), a.StatePensionAge),
		fmt.Sprintf("Tax-free lump sum: %s of the pot at retirement", pct(a.LumpSumRate)),
		fmt.Sprintf("Property growth: %s", pct(a.PropertyGrowthRate)),
		fmt.Sprintf("Planning horizon: age %d", a.PlanningHorizonAge),
	}
}

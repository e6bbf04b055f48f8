package compare

import (
	"github.com/rgehrsitz/pensionproj/internal/domain"
	"github.com/shopspring/decimal"
)

// ComparisonResult holds the key metrics of one projected scenario and, for
// alternatives, how they differ from the base.
type ComparisonResult struct {
	ScenarioName  string                   `json:"scenario_name"`
	Description   string                   `json:"description,omitempty"`
	Result        *domain.ProjectionResult `json:"-"`
	RetirementAge int                      `json:"retirement_age"`

	PotAtRetirement   decimal.Decimal `json:"pot_at_retirement"`
	LifetimeNetIncome decimal.Decimal `json:"lifetime_net_income"`
	LifetimeTax       decimal.Decimal `json:"lifetime_tax"`
	TotalShortfall    decimal.Decimal `json:"total_shortfall"`
	PotLongevity      int             `json:"pot_longevity"`
	DepletionAge      *int            `json:"depletion_age"`
	FinalPot          decimal.Decimal `json:"final_pot"`
	FinalNetWorth     decimal.Decimal `json:"final_net_worth"`

	PotDiffFromBase       decimal.Decimal `json:"pot_diff_from_base"`
	IncomeDiffFromBase    decimal.Decimal `json:"income_diff_from_base"`
	IncomePctFromBase     decimal.Decimal `json:"income_pct_from_base"`
	LongevityDiff         int             `json:"longevity_diff"`
	TaxDiffFromBase       decimal.Decimal `json:"tax_diff_from_base"`
	NetWorthDiffFromBase  decimal.Decimal `json:"net_worth_diff_from_base"`
	ShortfallDiffFromBase decimal.Decimal `json:"shortfall_diff_from_base"`
}

// ComparisonSet represents a collection of scenario comparisons
type ComparisonSet struct {
	BaseScenarioName   string             `json:"base_scenario_name"`
	BaseResult         *ComparisonResult  `json:"base_result"`
	AlternativeResults []ComparisonResult `json:"alternative_results"`
	ConfigPath         string             `json:"config_path,omitempty"`
}

// MetricsCalculator extracts comparison metrics from projection results
type MetricsCalculator struct{}

// NewMetricsCalculator creates a new metrics calculator
func NewMetricsCalculator() *MetricsCalculator {
	return &MetricsCalculator{}
}

// CalculateMetrics computes the metrics of one projection.
func (mc *MetricsCalculator) CalculateMetrics(name string, retirementAge int, result *domain.ProjectionResult) ComparisonResult {
	s := result.Summary
	return ComparisonResult{
		ScenarioName:      name,
		Result:            result,
		RetirementAge:     retirementAge,
		PotAtRetirement:   s.PotAtRetirement,
		LifetimeNetIncome: mc.lifetimeNetIncome(result.Projections),
		LifetimeTax:       s.TotalTax,
		TotalShortfall:    s.TotalShortfall,
		PotLongevity:      s.PotLongevity,
		DepletionAge:      s.DepletionAge,
		FinalPot:          s.FinalPot,
		FinalNetWorth:     s.FinalNetWorth,
	}
}

// CalculateComparison fills in scenario's differences from base.
func (mc *MetricsCalculator) CalculateComparison(scenario, base ComparisonResult) ComparisonResult {
	scenario.PotDiffFromBase = scenario.PotAtRetirement.Sub(base.PotAtRetirement)
	scenario.IncomeDiffFromBase = scenario.LifetimeNetIncome.Sub(base.LifetimeNetIncome)
	scenario.IncomePctFromBase = decimal.Zero
	if !base.LifetimeNetIncome.IsZero() {
		scenario.IncomePctFromBase = scenario.IncomeDiffFromBase.
			Div(base.LifetimeNetIncome).
			Mul(decimal.NewFromInt(100)).
			Round(2)
	}
	scenario.LongevityDiff = scenario.PotLongevity - base.PotLongevity
	scenario.TaxDiffFromBase = scenario.LifetimeTax.Sub(base.LifetimeTax)
	scenario.NetWorthDiffFromBase = scenario.FinalNetWorth.Sub(base.FinalNetWorth)
	scenario.ShortfallDiffFromBase = scenario.TotalShortfall.Sub(base.TotalShortfall)
	return scenario
}

func (mc *MetricsCalculator) lifetimeNetIncome(years []domain.ProjectionYear) decimal.Decimal {
	total := decimal.Zero
	for _, y := range years {
		total = total.Add(y.NetIncome)
	}
	return total
}

package domain

import (
	"github.com/shopspring/decimal"
)

// Phase labels a projection year.
type Phase string

const (
	PhaseAccumulation Phase = "Accumulation"
	PhaseRetirement   Phase = "Retirement"
)

// ProjectionYear is the result of one simulated year. Monetary fields are rounded to
// whole pounds.
type ProjectionYear struct {
	Year  int   `json:"year"`
	Age   *int  `json:"age"` // nil when the date of birth is unknown
	Phase Phase `json:"phase"`

	PotStart     decimal.Decimal `json:"pot_start"`
	PotEnd       decimal.Decimal `json:"pot_end"`
	Contribution decimal.Decimal `json:"contribution"`
	Growth       decimal.Decimal `json:"growth"`
	Drawdown     decimal.Decimal `json:"drawdown"`
	LumpSum      decimal.Decimal `json:"lump_sum"`
	StatePension decimal.Decimal `json:"state_pension"`

	GrossIncome     decimal.Decimal `json:"gross_income"`
	TaxableIncome   decimal.Decimal `json:"taxable_income"`
	Tax             decimal.Decimal `json:"tax"`
	NetIncome       decimal.Decimal `json:"net_income"`
	IncomeTarget    decimal.Decimal `json:"income_target"`
	IncomeShortfall decimal.Decimal `json:"income_shortfall"`

	LifeEventCost decimal.Decimal `json:"life_event_cost"`
	LifeEvents    *string         `json:"life_events"` // names joined with ", "; nil when none fired

	PropertyValue   decimal.Decimal `json:"property_value"`
	MortgageBalance decimal.Decimal `json:"mortgage_balance"`
	PropertyEquity  decimal.Decimal `json:"property_equity"`
	NetWorth        decimal.Decimal `json:"net_worth"`

	CumulativeDrawdown decimal.Decimal `json:"cumulative_drawdown"`
	CumulativeTaxFree  decimal.Decimal `json:"cumulative_tax_free"`
	FundsDepleted      bool            `json:"funds_depleted"`
}

// IsRetired reports whether the year is in the retirement phase.
func (y ProjectionYear) IsRetired() bool {
	return y.Phase == PhaseRetirement
}

// ProjectionSummary provides key metrics across a projection
type ProjectionSummary struct {
	Years               int             `json:"years"`
	FirstRetirementYear *int            `json:"first_retirement_year"`
	PotAtRetirement     decimal.Decimal `json:"pot_at_retirement"`
	TotalLumpSum        decimal.Decimal `json:"total_lump_sum"`
	TotalDrawdown       decimal.Decimal `json:"total_drawdown"`
	TotalTax            decimal.Decimal `json:"total_tax"`
	TotalShortfall      decimal.Decimal `json:"total_shortfall"`
	DepletionYear       *int            `json:"depletion_year"`
	DepletionAge        *int            `json:"depletion_age"`
	PotLongevity        int             `json:"pot_longevity"` // years before depletion, or all years
	FinalPot            decimal.Decimal `json:"final_pot"`
	FinalNetWorth       decimal.Decimal `json:"final_net_worth"`
}

// ProjectionResult is the complete output of one run.
type ProjectionResult struct {
	Projections []ProjectionYear  `json:"projections"`
	Assumptions AssumptionSet     `json:"assumptions"`
	Summary     ProjectionSummary `json:"summary"`
}

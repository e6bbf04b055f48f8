package domain

import (
	"strings"

	"github.com/shopspring/decimal"
)

// DefaultRetirementAge applies when no planned retirement age is supplied.
const DefaultRetirementAge = 67

// maxAge bounds every age-like input.
const maxAge = 120

// FinancialSnapshot is one person's financial position at the start of a projection.
// It is never modified by the engine.
type FinancialSnapshot struct {
	DateOfBirth         *Date            `json:"date_of_birth,omitempty" yaml:"date_of_birth,omitempty"`
	PensionPot          decimal.Decimal  `json:"pension_pot" yaml:"pension_pot"`
	MonthlyContribution decimal.Decimal  `json:"monthly_contribution" yaml:"monthly_contribution"`
	PropertyValue       decimal.Decimal  `json:"property_value" yaml:"property_value"`
	TotalDebt           decimal.Decimal  `json:"total_debt" yaml:"total_debt"`
	StatePension        *decimal.Decimal `json:"state_pension,omitempty" yaml:"state_pension,omitempty"` // annual; nil uses the full state pension
	DesiredIncome       decimal.Decimal  `json:"desired_income" yaml:"desired_income"`                   // annual, today's money
	RetirementAge       int              `json:"planned_retirement_age" yaml:"planned_retirement_age"`
	LumpSumTaken        bool             `json:"lump_sum_taken" yaml:"lump_sum_taken"`
	StillContributing   *bool            `json:"still_contributing,omitempty" yaml:"still_contributing,omitempty"` // nil means true
}

// Contributing reports whether monthly contributions are still being paid.
func (s FinancialSnapshot) Contributing() bool {
	return s.StillContributing == nil || *s.StillContributing
}

// EffectiveRetirementAge returns the planned retirement age, defaulting when unset.
func (s FinancialSnapshot) EffectiveRetirementAge() int {
	if s.RetirementAge == 0 {
		return DefaultRetirementAge
	}
	return s.RetirementAge
}

// BaseStatePension returns the snapshot's state pension or the supplied full amount.
func (s FinancialSnapshot) BaseStatePension(full decimal.Decimal) decimal.Decimal {
	if s.StatePension != nil {
		return *s.StatePension
	}
	return full
}

// Validate checks amounts and ages. Every failure wraps ErrInvalidInput.
func (s FinancialSnapshot) Validate() error {
	amounts := []struct {
		name  string
		value decimal.Decimal
	}{
		{"pension_pot", s.PensionPot},
		{"monthly_contribution", s.MonthlyContribution},
		{"property_value", s.PropertyValue},
		{"total_debt", s.TotalDebt},
		{"desired_income", s.DesiredIncome},
	}
	for _, a := range amounts {
		if a.value.IsNegative() {
			return invalidf("%s must not be negative, got %s", a.name, a.value.String())
		}
	}
	if s.StatePension != nil && s.StatePension.IsNegative() {
		return invalidf("state_pension must not be negative, got %s", s.StatePension.String())
	}
	if s.RetirementAge < 0 || s.RetirementAge > maxAge {
		return invalidf("planned_retirement_age must be between 0 and %d, got %d", maxAge, s.RetirementAge)
	}
	return nil
}

// LifeEvent is a one-off cost or windfall applied to the pension pot. It triggers on an
// age, a calendar year, or either.
type LifeEvent struct {
	Name string          `json:"name,omitempty" yaml:"name,omitempty"`
	Age  *int            `json:"age,omitempty" yaml:"age,omitempty"`
	Year *int            `json:"year,omitempty" yaml:"year,omitempty"`
	Cost decimal.Decimal `json:"cost" yaml:"cost"` // positive is an expense, negative a windfall
}

// Validate requires at least one trigger.
func (e LifeEvent) Validate() error {
	if e.Age == nil && e.Year == nil {
		return invalidf("life event %q needs an age or a year", e.Name)
	}
	if e.Age != nil && (*e.Age < 0 || *e.Age > maxAge) {
		return invalidf("life event %q age must be between 0 and %d, got %d", e.Name, maxAge, *e.Age)
	}
	return nil
}

// TriggersAt reports whether the event fires for the given simulated age (nil when
// unknown) and calendar year.
func (e LifeEvent) TriggersAt(age *int, year int) bool {
	if e.Year != nil && *e.Year == year {
		return true
	}
	return e.Age != nil && age != nil && *e.Age == *age
}

// DisplayName returns the trimmed name, or "" for anonymous events.
func (e LifeEvent) DisplayName() string {
	return strings.TrimSpace(e.Name)
}

// ProjectionRequest is the input of one projection run, shared by the API and input files.
type ProjectionRequest struct {
	Name        string               `json:"name,omitempty" yaml:"name,omitempty"`
	Data        *FinancialSnapshot   `json:"data" yaml:"data"`
	Events      []LifeEvent          `json:"events,omitempty" yaml:"events,omitempty"`
	Assumptions *AssumptionOverrides `json:"assumptions,omitempty" yaml:"assumptions,omitempty"`
}

// Validate checks the whole request.
func (r ProjectionRequest) Validate() error {
	if r.Data == nil {
		return invalidf("data is required")
	}
	if err := r.Data.Validate(); err != nil {
		return err
	}
	for _, e := range r.Events {
		if err := e.Validate(); err != nil {
			return err
		}
	}
	if r.Assumptions != nil {
		if err := r.Assumptions.Validate(); err != nil {
			return err
		}
	}
	return nil
}

// DeepCopy returns a copy whose snapshot, events and override set can be replaced
// field by field without affecting r.
func (r ProjectionRequest) DeepCopy() *ProjectionRequest {
	c := r
	if r.Data != nil {
		data := *r.Data
		if r.Data.DateOfBirth != nil {
			dob := *r.Data.DateOfBirth
			data.DateOfBirth = &dob
		}
		if r.Data.StatePension != nil {
			sp := *r.Data.StatePension
			data.StatePension = &sp
		}
		if r.Data.StillContributing != nil {
			sc := *r.Data.StillContributing
			data.StillContributing = &sc
		}
		c.Data = &data
	}
	if r.Events != nil {
		c.Events = make([]LifeEvent, len(r.Events))
		copy(c.Events, r.Events)
	}
	if r.Assumptions != nil {
		a := *r.Assumptions
		c.Assumptions = &a
	}
	return &c
}

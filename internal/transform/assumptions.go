package transform

import (
	"fmt"
	"strings"

	"github.com/rgehrsitz/pensionproj/internal/domain"
	"github.com/rgehrsitz/pensionproj/pkg/money"
	"github.com/shopspring/decimal"
)

// SetGrowthRates overrides investment growth. A nil rate keeps the current value.
type SetGrowthRates struct {
	Accumulation *decimal.Decimal
	Drawdown     *decimal.Decimal
}

func (sg *SetGrowthRates) Name() string {
	return "set_growth"
}

func (sg *SetGrowthRates) Description() string {
	var parts []string
	if sg.Accumulation != nil {
		parts = append(parts, "accumulation "+money.Percent(*sg.Accumulation))
	}
	if sg.Drawdown != nil {
		parts = append(parts, "drawdown "+money.Percent(*sg.Drawdown))
	}
	return "Growth: " + strings.Join(parts, ", ")
}

func (sg *SetGrowthRates) Validate(base *domain.ProjectionRequest) error {
	if err := requireData(sg.Name(), base); err != nil {
		return err
	}
	if sg.Accumulation == nil && sg.Drawdown == nil {
		return NewTransformError(sg.Name(), "validate", "at least one growth rate is required", nil)
	}
	o := domain.AssumptionOverrides{AccumulationGrowthRate: sg.Accumulation, DrawdownGrowthRate: sg.Drawdown}
	if err := o.Validate(); err != nil {
		return NewTransformError(sg.Name(), "validate", "rate out of range", err)
	}
	return nil
}

func (sg *SetGrowthRates) Apply(base *domain.ProjectionRequest) (*domain.ProjectionRequest, error) {
	modified := base.DeepCopy()
	merged := overrides(modified).Merge(&domain.AssumptionOverrides{
		AccumulationGrowthRate: sg.Accumulation,
		DrawdownGrowthRate:     sg.Drawdown,
	})
	modified.Assumptions = &merged
	return modified, nil
}

// SetInflation overrides the inflation rate.
type SetInflation struct {
	Rate decimal.Decimal
}

func (si *SetInflation) Name() string {
	return "set_inflation"
}

func (si *SetInflation) Description() string {
	return "Inflation at " + money.Percent(si.Rate)
}

func (si *SetInflation) Validate(base *domain.ProjectionRequest) error {
	if err := requireData(si.Name(), base); err != nil {
		return err
	}
	rate := si.Rate
	if err := (domain.AssumptionOverrides{InflationRate: &rate}).Validate(); err != nil {
		return NewTransformError(si.Name(), "validate", "rate out of range", err)
	}
	return nil
}

func (si *SetInflation) Apply(base *domain.ProjectionRequest) (*domain.ProjectionRequest, error) {
	modified := base.DeepCopy()
	o := overrides(modified)
	rate := si.Rate
	o.InflationRate = &rate
	modified.Assumptions = &o
	return modified, nil
}

// SetLumpSumRate changes the tax-free lump sum share taken at retirement.
type SetLumpSumRate struct {
	Rate decimal.Decimal
}

func (sl *SetLumpSumRate) Name() string {
	return "set_lump_sum"
}

func (sl *SetLumpSumRate) Description() string {
	if sl.Rate.IsZero() {
		return "Take no tax-free lump sum"
	}
	return fmt.Sprintf("Take a %s tax-free lump sum", money.Percent(sl.Rate))
}

func (sl *SetLumpSumRate) Validate(base *domain.ProjectionRequest) error {
	if err := requireData(sl.Name(), base); err != nil {
		return err
	}
	rate := sl.Rate
	if err := (domain.AssumptionOverrides{LumpSumRate: &rate}).Validate(); err != nil {
		return NewTransformError(sl.Name(), "validate", "rate out of range", err)
	}
	return nil
}

func (sl *SetLumpSumRate) Apply(base *domain.ProjectionRequest) (*domain.ProjectionRequest, error) {
	modified := base.DeepCopy()
	o := overrides(modified)
	rate := sl.Rate
	o.LumpSumRate = &rate
	modified.Assumptions = &o
	return modified, nil
}

package domain

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decPtr(v float64) *decimal.Decimal {
	d := decimal.NewFromFloat(v)
	return &d
}

func intPtr(v int) *int {
	return &v
}

func TestResolveAssumptions_NilUsesDefaults(t *testing.T) {
	assert.Equal(t, DefaultAssumptions(), ResolveAssumptions(nil))
	assert.Equal(t, DefaultAssumptions(), ResolveAssumptions(&AssumptionOverrides{}))
}

func TestResolveAssumptions_PartialOverrideKeepsOtherFields(t *testing.T) {
	overrides := &AssumptionOverrides{
		InflationRate:      decPtr(0.03),
		PlanningHorizonAge: intPtr(100),
	}

	resolved := ResolveAssumptions(overrides)
	defaults := DefaultAssumptions()

	assert.True(t, resolved.InflationRate.Equal(decimal.NewFromFloat(0.03)))
	assert.Equal(t, 100, resolved.PlanningHorizonAge)

	// Every other field is untouched.
	assert.True(t, resolved.AccumulationGrowthRate.Equal(defaults.AccumulationGrowthRate))
	assert.True(t, resolved.DrawdownGrowthRate.Equal(defaults.DrawdownGrowthRate))
	assert.Equal(t, defaults.StatePensionAge, resolved.StatePensionAge)
	assert.True(t, resolved.FullStatePension.Equal(defaults.FullStatePension))
	assert.True(t, resolved.LumpSumRate.Equal(defaults.LumpSumRate))
	assert.True(t, resolved.PropertyGrowthRate.Equal(defaults.PropertyGrowthRate))
}

func TestResolveAssumptions_EveryField(t *testing.T) {
	overrides := &AssumptionOverrides{
		AccumulationGrowthRate: decPtr(0.06),
		DrawdownGrowthRate:     decPtr(0.035),
		InflationRate:          decPtr(0.02),
		StatePensionAge:        intPtr(68),
		FullStatePension:       decPtr(12000),
		LumpSumRate:            decPtr(0.1),
		PropertyGrowthRate:     decPtr(0.01),
		PlanningHorizonAge:     intPtr(90),
	}

	resolved := ResolveAssumptions(overrides)

	assert.True(t, resolved.AccumulationGrowthRate.Equal(decimal.NewFromFloat(0.06)))
	assert.True(t, resolved.DrawdownGrowthRate.Equal(decimal.NewFromFloat(0.035)))
	assert.True(t, resolved.InflationRate.Equal(decimal.NewFromFloat(0.02)))
	assert.Equal(t, 68, resolved.StatePensionAge)
	assert.True(t, resolved.FullStatePension.Equal(decimal.NewFromInt(12000)))
	assert.True(t, resolved.LumpSumRate.Equal(decimal.NewFromFloat(0.1)))
	assert.True(t, resolved.PropertyGrowthRate.Equal(decimal.NewFromFloat(0.01)))
	assert.Equal(t, 90, resolved.PlanningHorizonAge)
}

func TestAssumptionOverrides_Merge(t *testing.T) {
	base := AssumptionOverrides{
		InflationRate:   decPtr(0.03),
		StatePensionAge: intPtr(66),
	}
	top := &AssumptionOverrides{
		InflationRate: decPtr(0.02),
		LumpSumRate:   decPtr(0.2),
	}

	merged := base.Merge(top)

	require.NotNil(t, merged.InflationRate)
	assert.True(t, merged.InflationRate.Equal(decimal.NewFromFloat(0.02)), "later overrides win")
	assert.Equal(t, 66, *merged.StatePensionAge, "fields absent from the top layer survive")
	assert.True(t, merged.LumpSumRate.Equal(decimal.NewFromFloat(0.2)))
	assert.Nil(t, merged.DrawdownGrowthRate)

	assert.Equal(t, base, base.Merge(nil))
}

func TestAssumptionOverrides_Validate(t *testing.T) {
	tests := []struct {
		name      string
		overrides AssumptionOverrides
		wantErr   string
	}{
		{"empty", AssumptionOverrides{}, ""},
		{"sane values", AssumptionOverrides{InflationRate: decPtr(0.02), LumpSumRate: decPtr(0.25)}, ""},
		{"inflation too high", AssumptionOverrides{InflationRate: decPtr(0.5)}, "inflation_rate"},
		{"lump sum above one", AssumptionOverrides{LumpSumRate: decPtr(1.5)}, "lump_sum_rate"},
		{"negative lump sum", AssumptionOverrides{LumpSumRate: decPtr(-0.1)}, "lump_sum_rate"},
		{"growth too low", AssumptionOverrides{AccumulationGrowthRate: decPtr(-0.9)}, "accumulation_growth_rate"},
		{"state pension age", AssumptionOverrides{StatePensionAge: intPtr(30)}, "state_pension_age"},
		{"negative state pension", AssumptionOverrides{FullStatePension: decPtr(-1)}, "full_state_pension"},
		{"horizon zero", AssumptionOverrides{PlanningHorizonAge: intPtr(0)}, "planning_horizon_age"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.overrides.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.True(t, IsInvalidInput(err))
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestAssumptionSet_Describe(t *testing.T) {
	lines := DefaultAssumptions().Describe()

	require.Len(t, lines, 6)
	assert.Equal(t, "Growth while saving: 5.0%, in drawdown: 4.0%", lines[0])
	assert.Equal(t, "Inflation: 2.5%", lines[1])
	assert.Equal(t, "State pension: £11502.40 a year from age 67", lines[2])
	assert.Equal(t, "Planning horizon: age 95", lines[5])
}

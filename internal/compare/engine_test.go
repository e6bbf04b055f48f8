package compare

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rgehrsitz/pensionproj/internal/calculation"
	"github.com/rgehrsitz/pensionproj/internal/config"
	"github.com/rgehrsitz/pensionproj/internal/domain"
	"github.com/rgehrsitz/pensionproj/internal/transform"
)

const scenarioPath = "../config/testdata/scenario.yaml"

func testEngine() *CompareEngine {
	e := calculation.NewEngine()
	e.Now = func() time.Time { return time.Date(2026, time.October, 19, 0, 0, 0, 0, time.UTC) }
	return NewCompareEngine(e)
}

func loadBase(t *testing.T) *domain.ProjectionRequest {
	t.Helper()
	req, err := config.NewInputParser().LoadFromFile(scenarioPath)
	require.NoError(t, err)
	return req
}

func firstRetiredYear(t *testing.T, r *domain.ProjectionResult) domain.ProjectionYear {
	t.Helper()
	for _, y := range r.Projections {
		if y.IsRetired() {
			return y
		}
	}
	t.Fatal("no retirement year")
	return domain.ProjectionYear{}
}

func TestCompareEngine_Templates(t *testing.T) {
	base := loadBase(t)
	set, err := testEngine().Compare(context.Background(), base, CompareOptions{
		Templates:  []string{"postpone_1yr", "growth_low", "income_minus_10pct"},
		ConfigPath: scenarioPath,
	})
	require.NoError(t, err)

	assert.Equal(t, "Early retirement at 60", set.BaseScenarioName)
	assert.Equal(t, scenarioPath, set.ConfigPath)
	require.NotNil(t, set.BaseResult)
	assert.Equal(t, 60, set.BaseResult.RetirementAge)
	assert.Len(t, set.BaseResult.Result.Projections, 35)
	require.Len(t, set.AlternativeResults, 3)

	postpone := set.AlternativeResults[0]
	assert.Equal(t, "postpone_1yr", postpone.ScenarioName)
	assert.Equal(t, "Postpone retirement by 1 year", postpone.Description)
	assert.Equal(t, 61, postpone.RetirementAge)
	assert.True(t, postpone.PotDiffFromBase.IsPositive(), "one more year of contributions and growth")

	low := set.AlternativeResults[1]
	assert.True(t, low.PotAtRetirement.LessThan(set.BaseResult.PotAtRetirement))
	assert.Equal(t, "0.03", low.Result.Assumptions.AccumulationGrowthRate.String())
	assert.Equal(t, "0.03", low.Result.Assumptions.InflationRate.String(), "file assumptions are kept")

	cut := set.AlternativeResults[2]
	baseTarget := firstRetiredYear(t, set.BaseResult.Result).IncomeTarget
	cutTarget := firstRetiredYear(t, cut.Result).IncomeTarget
	assert.InDelta(t, baseTarget.InexactFloat64()*0.9, cutTarget.InexactFloat64(), 1)

	for _, alt := range set.AlternativeResults {
		assert.True(t, alt.IncomeDiffFromBase.Equal(alt.LifetimeNetIncome.Sub(set.BaseResult.LifetimeNetIncome)))
		assert.True(t, alt.TaxDiffFromBase.Equal(alt.LifetimeTax.Sub(set.BaseResult.LifetimeTax)))
		assert.Equal(t, alt.PotLongevity-set.BaseResult.PotLongevity, alt.LongevityDiff)
	}

	assert.Equal(t, 60, base.Data.RetirementAge, "base request is untouched")
	assert.Nil(t, base.Assumptions.AccumulationGrowthRate)
}

func TestCompareEngine_TransformSpecs(t *testing.T) {
	set, err := testEngine().Compare(context.Background(), loadBase(t), CompareOptions{
		Transforms: []string{"set_retirement_age:age=63"},
	})
	require.NoError(t, err)
	require.Len(t, set.AlternativeResults, 1)
	alt := set.AlternativeResults[0]
	assert.Equal(t, "set_retirement_age:age=63", alt.ScenarioName)
	assert.Equal(t, "Retire at age 63", alt.Description)
	assert.Equal(t, 63, alt.RetirementAge)
	assert.Equal(t, 2033, firstRetiredYear(t, alt.Result).Year)
}

func TestCompareEngine_NoAlternatives(t *testing.T) {
	set, err := testEngine().Compare(context.Background(), loadBase(t), CompareOptions{})
	require.NoError(t, err)
	assert.Empty(t, set.AlternativeResults)
}

func TestCompareEngine_Errors(t *testing.T) {
	ce := testEngine()
	ctx := context.Background()

	_, err := ce.Compare(ctx, nil, CompareOptions{})
	assert.Error(t, err)

	_, err = ce.Compare(ctx, loadBase(t), CompareOptions{Templates: []string{"retire_on_mars"}})
	assert.ErrorContains(t, err, "template retire_on_mars not found")
	assert.True(t, IsClientError(err))

	_, err = ce.Compare(ctx, loadBase(t), CompareOptions{Transforms: []string{"set_retirement_age:age=old"}})
	assert.ErrorContains(t, err, "invalid age")

	_, err = ce.Compare(ctx, loadBase(t), CompareOptions{Transforms: []string{"set_retirement_age:age=30"}})
	assert.ErrorContains(t, err, "failed to apply")
	assert.True(t, IsClientError(err))

	cancelled, cancel := context.WithCancel(ctx)
	cancel()
	_, err = ce.Compare(cancelled, loadBase(t), CompareOptions{})
	assert.ErrorIs(t, err, context.Canceled)
	assert.False(t, IsClientError(err))
}

func TestMetricsCalculator_CalculateComparison(t *testing.T) {
	mc := NewMetricsCalculator()
	base := ComparisonResult{LifetimeNetIncome: decimal.NewFromInt(400000), PotLongevity: 20, LifetimeTax: decimal.NewFromInt(50000)}
	alt := ComparisonResult{LifetimeNetIncome: decimal.NewFromInt(440000), PotLongevity: 23, LifetimeTax: decimal.NewFromInt(45000)}

	got := mc.CalculateComparison(alt, base)
	assert.Equal(t, "40000", got.IncomeDiffFromBase.String())
	assert.Equal(t, "10", got.IncomePctFromBase.String())
	assert.Equal(t, 3, got.LongevityDiff)
	assert.Equal(t, "-5000", got.TaxDiffFromBase.String())

	got = mc.CalculateComparison(alt, ComparisonResult{})
	assert.True(t, got.IncomePctFromBase.IsZero(), "no percentage against a zero base")
}

func TestCompareEngine_ResolveAlternatives(t *testing.T) {
	ce := testEngine()
	alts, err := ce.resolve(CompareOptions{
		Templates:  []string{"Conservative"},
		Transforms: []string{"set_retirement_age:age=63"},
	})
	require.NoError(t, err)
	require.Len(t, alts, 2)

	assert.Equal(t, "conservative", alts[0].Name)
	assert.Len(t, alts[0].Transforms, 3)

	assert.Equal(t, "set_retirement_age:age=63", alts[1].Name)
	assert.Equal(t, "Retire at age 63", alts[1].Description)
	require.Len(t, alts[1].Transforms, 1)

	modified, err := transform.ApplyTemplate(loadBase(t), alts[1])
	require.NoError(t, err)
	assert.Equal(t, 63, modified.Data.RetirementAge)
}

package calculation

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestTaxCalculator_Calculate(t *testing.T) {
	tc := NewTaxCalculator()

	tests := []struct {
		name     string
		income   int64
		expected int64
	}{
		{"zero income", 0, 0},
		{"below allowance", 10000, 0},
		{"exactly allowance", 12570, 0},
		{"basic rate", 20000, 1486},
		{"top of basic band", 50270, 7540},
		{"higher rate", 60000, 11432},
		{"taper threshold", 100000, 27432},
		{"inside taper", 110000, 33432},
		{"allowance fully tapered", 125140, 42516},
		{"additional rate", 150000, 53703},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tax := tc.Calculate(decimal.NewFromInt(tt.income))
			assert.True(t, tax.Equal(decimal.NewFromInt(tt.expected)),
				"income %d: expected tax %d, got %s", tt.income, tt.expected, tax.String())
		})
	}
}

func TestTaxCalculator_NegativeIncome(t *testing.T) {
	tc := NewTaxCalculator()
	assert.True(t, tc.Calculate(decimal.NewFromInt(-5000)).IsZero())
	assert.True(t, tc.EffectiveRate(decimal.NewFromInt(-5000)).IsZero())
}

func TestTaxCalculator_Allowance(t *testing.T) {
	tc := NewTaxCalculator()

	assert.True(t, tc.Allowance(decimal.NewFromInt(50000)).Equal(decimal.NewFromInt(12570)))
	assert.True(t, tc.Allowance(decimal.NewFromInt(100000)).Equal(decimal.NewFromInt(12570)))
	assert.True(t, tc.Allowance(decimal.NewFromInt(100001)).Equal(decimal.NewFromFloat(12569.5)))
	assert.True(t, tc.Allowance(decimal.NewFromInt(110000)).Equal(decimal.NewFromInt(7570)))
	assert.True(t, tc.Allowance(decimal.NewFromInt(125140)).IsZero())
	assert.True(t, tc.Allowance(decimal.NewFromInt(500000)).IsZero(), "allowance is floored at zero")
}

func TestTaxCalculator_BandBoundaryBelongsToLowerBand(t *testing.T) {
	tc := NewTaxCalculator()

	atBoundary := tc.Calculate(decimal.NewFromInt(50270))
	onePoundOver := tc.Calculate(decimal.NewFromInt(50271))

	assert.True(t, atBoundary.Equal(decimal.NewFromInt(7540)))
	assert.True(t, onePoundOver.Sub(atBoundary).Equal(decimal.NewFromFloat(0.40)))
}

// Tax never falls as income rises and a one pound rise never costs more than a pound.
func TestTaxCalculator_MonotonicNoCliff(t *testing.T) {
	tc := NewTaxCalculator()
	one := decimal.NewFromInt(1)

	prevTax := decimal.Zero
	for income := int64(0); income <= 250000; income += 250 {
		inc := decimal.NewFromInt(income)
		tax := tc.Calculate(inc)
		assert.True(t, tax.GreaterThanOrEqual(prevTax), "tax fell at income %d", income)
		assert.False(t, tax.IsNegative())

		step := tc.Calculate(inc.Add(one)).Sub(tax)
		assert.True(t, step.GreaterThanOrEqual(decimal.Zero), "negative marginal tax at %d", income)
		assert.True(t, step.LessThan(one), "net income fell at %d", income)
		prevTax = tax
	}
}

func TestTaxCalculator_EffectiveRate(t *testing.T) {
	tc := NewTaxCalculator()

	assert.True(t, tc.EffectiveRate(decimal.Zero).IsZero())
	assert.True(t, tc.EffectiveRate(decimal.NewFromInt(12570)).IsZero())

	rate := tc.EffectiveRate(decimal.NewFromInt(60000))
	assert.InDelta(t, 0.19053, rate.InexactFloat64(), 0.0001)
	assert.True(t, rate.LessThan(decimal.NewFromFloat(0.45)))
}

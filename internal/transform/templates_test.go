package transform

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTemplateRegistry_RegisterAndGet(t *testing.T) {
	r := NewTemplateRegistry()
	r.Register(Template{Name: "My_Template", Description: "custom"})

	got, ok := r.Get("my_template")
	require.True(t, ok, "lookup is case-insensitive")
	assert.Equal(t, "custom", got.Description)

	_, ok = r.Get("missing")
	assert.False(t, ok)
}

func TestCreateBuiltInTemplates(t *testing.T) {
	r := CreateBuiltInTemplates()
	names := r.List()

	for _, want := range []string{"postpone_1yr", "retire_early_1yr", "growth_low", "income_minus_10pct", "no_lump_sum", "conservative"} {
		assert.Contains(t, names, want)
	}
	assert.IsIncreasing(t, names)

	base := createTestRequest()
	for _, name := range names {
		tmpl, _ := r.Get(name)
		_, err := ApplyTemplate(base, tmpl)
		assert.NoError(t, err, name)
	}
}

func TestBuiltInTemplate_Conservative(t *testing.T) {
	tmpl, ok := CreateBuiltInTemplates().Get("conservative")
	require.True(t, ok)

	out, err := ApplyTemplate(createTestRequest(), tmpl)
	require.NoError(t, err)
	assert.Equal(t, 62, out.Data.RetirementAge)
	assert.True(t, out.Data.DesiredIncome.Equal(decimal.NewFromInt(27000)))
	assert.Equal(t, "0.03", out.Assumptions.AccumulationGrowthRate.String())
	assert.Equal(t, "0.02", out.Assumptions.DrawdownGrowthRate.String())
}

func TestApplyTemplate_EmptyTransforms(t *testing.T) {
	base := createTestRequest()
	out, err := ApplyTemplate(base, Template{Name: "noop"})
	require.NoError(t, err)
	assert.Equal(t, base, out)
	assert.NotSame(t, base, out)
}

func TestParseTemplateList(t *testing.T) {
	assert.Nil(t, ParseTemplateList(""))
	assert.Equal(t, []string{"postpone_1yr", "growth_low"}, ParseTemplateList(" postpone_1yr, ,growth_low "))
}

func TestGetTemplateHelp(t *testing.T) {
	help := GetTemplateHelp(CreateBuiltInTemplates())
	assert.Contains(t, help, "Retirement Timing:")
	assert.Contains(t, help, "Markets:")
	assert.Contains(t, help, "Spending and Saving:")
	assert.Contains(t, help, "Combinations:")
	assert.Contains(t, help, "postpone_1yr")
	assert.Contains(t, help, "pensionproj compare")

	assert.Equal(t, "No templates registered", GetTemplateHelp(NewTemplateRegistry()))
}

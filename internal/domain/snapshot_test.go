package domain

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestFinancialSnapshot_Validate(t *testing.T) {
	valid := FinancialSnapshot{
		PensionPot:    decimal.NewFromInt(100000),
		DesiredIncome: decimal.NewFromInt(20000),
		RetirementAge: 65,
	}
	assert.NoError(t, valid.Validate())

	negativePot := valid
	negativePot.PensionPot = decimal.NewFromInt(-1)
	err := negativePot.Validate()
	require.Error(t, err)
	assert.True(t, IsInvalidInput(err))
	assert.Contains(t, err.Error(), "pension_pot")

	negativeState := valid
	negativeState.StatePension = decPtr(-5)
	assert.Error(t, negativeState.Validate())

	badAge := valid
	badAge.RetirementAge = 130
	assert.Error(t, badAge.Validate())
}

func TestFinancialSnapshot_Defaults(t *testing.T) {
	var s FinancialSnapshot

	assert.True(t, s.Contributing(), "contributions default to on")
	assert.Equal(t, DefaultRetirementAge, s.EffectiveRetirementAge())
	assert.True(t, s.BaseStatePension(decimal.NewFromInt(11502)).Equal(decimal.NewFromInt(11502)))

	stopped := false
	s.StillContributing = &stopped
	s.RetirementAge = 60
	s.StatePension = decPtr(9000)

	assert.False(t, s.Contributing())
	assert.Equal(t, 60, s.EffectiveRetirementAge())
	assert.True(t, s.BaseStatePension(decimal.NewFromInt(11502)).Equal(decimal.NewFromInt(9000)))
}

func TestLifeEvent_TriggersAt(t *testing.T) {
	age60 := 60
	age61 := 61

	byAge := LifeEvent{Name: "wedding", Age: intPtr(60), Cost: decimal.NewFromInt(10000)}
	byYear := LifeEvent{Name: "car", Year: intPtr(2030), Cost: decimal.NewFromInt(15000)}
	both := LifeEvent{Name: "either", Age: intPtr(61), Year: intPtr(2030)}

	assert.True(t, byAge.TriggersAt(&age60, 2029))
	assert.False(t, byAge.TriggersAt(&age61, 2029))
	assert.False(t, byAge.TriggersAt(nil, 2029), "age triggers never match an unknown age")

	assert.True(t, byYear.TriggersAt(nil, 2030))
	assert.False(t, byYear.TriggersAt(&age60, 2031))

	assert.True(t, both.TriggersAt(&age61, 2035))
	assert.True(t, both.TriggersAt(&age60, 2030))
}

func TestLifeEvent_Validate(t *testing.T) {
	assert.NoError(t, LifeEvent{Age: intPtr(70)}.Validate())
	assert.NoError(t, LifeEvent{Year: intPtr(2040)}.Validate())

	err := LifeEvent{Name: "floating"}.Validate()
	require.Error(t, err)
	assert.True(t, IsInvalidInput(err))
	assert.Contains(t, err.Error(), "floating")

	assert.Error(t, LifeEvent{Age: intPtr(-1)}.Validate())
}

func TestProjectionRequest_Validate(t *testing.T) {
	err := ProjectionRequest{}.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "data is required")

	req := ProjectionRequest{
		Data:   &FinancialSnapshot{RetirementAge: 65},
		Events: []LifeEvent{{Name: "no trigger"}},
	}
	assert.Error(t, req.Validate())

	req.Events = []LifeEvent{{Name: "roof", Age: intPtr(70), Cost: decimal.NewFromInt(8000)}}
	req.Assumptions = &AssumptionOverrides{InflationRate: decPtr(0.9)}
	assert.Error(t, req.Validate())

	req.Assumptions = &AssumptionOverrides{InflationRate: decPtr(0.02)}
	assert.NoError(t, req.Validate())
}

func TestProjectionRequest_DecodeJSON(t *testing.T) {
	body := `{
		"data": {
			"date_of_birth": "1970-01-15",
			"pension_pot": 450000,
			"monthly_contribution": "500",
			"planned_retirement_age": 65
		},
		"events": [{"name": "roof", "age": 70, "cost": 8000}],
		"assumptions": {"inflation_rate": 0.03}
	}`

	var req ProjectionRequest
	require.NoError(t, json.Unmarshal([]byte(body), &req))

	require.NotNil(t, req.Data)
	require.NotNil(t, req.Data.DateOfBirth)
	assert.Equal(t, time.Date(1970, time.January, 15, 0, 0, 0, 0, time.UTC), req.Data.DateOfBirth.Time)
	assert.True(t, req.Data.PensionPot.Equal(decimal.NewFromInt(450000)))
	assert.True(t, req.Data.MonthlyContribution.Equal(decimal.NewFromInt(500)))
	assert.Nil(t, req.Data.StatePension)
	require.Len(t, req.Events, 1)
	assert.Equal(t, 70, *req.Events[0].Age)
	require.NotNil(t, req.Assumptions)
	assert.Nil(t, req.Assumptions.DrawdownGrowthRate)
}

func TestProjectionRequest_DecodeJSONRejectsNonNumeric(t *testing.T) {
	var req ProjectionRequest
	err := json.Unmarshal([]byte(`{"data": {"pension_pot": "lots"}}`), &req)
	assert.Error(t, err)
}

func TestDate_RoundTrip(t *testing.T) {
	d := NewDate(1970, time.January, 15)

	data, err := json.Marshal(d)
	require.NoError(t, err)
	assert.Equal(t, `"1970-01-15"`, string(data))

	var fromRFC Date
	require.NoError(t, json.Unmarshal([]byte(`"1970-01-15T00:00:00Z"`), &fromRFC))
	assert.True(t, d.Equal(fromRFC.Time))

	var bad Date
	assert.Error(t, json.Unmarshal([]byte(`"15/01/1970"`), &bad))
	assert.Error(t, json.Unmarshal([]byte(`19700115`), &bad))

	var fromYAML struct {
		Born Date `yaml:"born"`
	}
	require.NoError(t, yaml.Unmarshal([]byte("born: 1970-01-15\n"), &fromYAML))
	assert.Equal(t, "1970-01-15", fromYAML.Born.String())
}

func TestProjectionRequest_DeepCopy(t *testing.T) {
	dob := NewDate(1970, time.January, 15)
	age := 62
	rate := decimal.NewFromFloat(0.03)
	orig := ProjectionRequest{
		Name:        "base",
		Data:        &FinancialSnapshot{DateOfBirth: &dob, RetirementAge: 60},
		Events:      []LifeEvent{{Name: "Car", Age: &age, Cost: decimal.NewFromInt(20000)}},
		Assumptions: &AssumptionOverrides{InflationRate: &rate},
	}

	c := orig.DeepCopy()
	c.Data.RetirementAge = 65
	c.Events[0].Name = "Boat"
	other := decimal.NewFromFloat(0.05)
	c.Assumptions.InflationRate = &other

	assert.Equal(t, 60, orig.Data.RetirementAge)
	assert.Equal(t, "Car", orig.Events[0].Name)
	assert.Equal(t, "0.03", orig.Assumptions.InflationRate.String())
	assert.Equal(t, "base", c.Name)

	assert.Nil(t, ProjectionRequest{}.DeepCopy().Data)
}

package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/rgehrsitz/pensionproj/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDetectFormat(t *testing.T) {
	assert.Equal(t, FormatJSON, DetectFormat("scenario.json"))
	assert.Equal(t, FormatJSON, DetectFormat("SCENARIO.JSON"))
	assert.Equal(t, FormatYAML, DetectFormat("scenario.yaml"))
	assert.Equal(t, FormatYAML, DetectFormat("scenario.yml"))
	assert.Equal(t, FormatYAML, DetectFormat("scenario"))
}

func TestLoadFromFile_YAML(t *testing.T) {
	req, err := NewInputParser().LoadFromFile("testdata/scenario.yaml")
	require.NoError(t, err)

	assert.Equal(t, "Early retirement at 60", req.Name)
	require.NotNil(t, req.Data)
	require.NotNil(t, req.Data.DateOfBirth)
	assert.Equal(t, time.Date(1970, time.January, 15, 0, 0, 0, 0, time.UTC), req.Data.DateOfBirth.Time)
	assert.True(t, req.Data.PensionPot.Equal(decimal.NewFromInt(450000)))
	assert.True(t, req.Data.MonthlyContribution.Equal(decimal.NewFromInt(500)))
	require.NotNil(t, req.Data.StatePension)
	assert.True(t, req.Data.StatePension.Equal(decimal.NewFromInt(11502)))
	assert.Equal(t, 60, req.Data.RetirementAge)
	assert.True(t, req.Data.Contributing(), "still_contributing defaults to true")

	require.Len(t, req.Events, 2)
	assert.Equal(t, 62, *req.Events[0].Age)
	assert.Nil(t, req.Events[0].Year)
	assert.Equal(t, 2031, *req.Events[1].Year)
	assert.True(t, req.Events[1].Cost.Equal(decimal.NewFromInt(-40000)))

	require.NotNil(t, req.Assumptions)
	assert.True(t, req.Assumptions.InflationRate.Equal(decimal.NewFromFloat(0.03)))
	assert.Equal(t, 90, *req.Assumptions.PlanningHorizonAge)
	assert.Nil(t, req.Assumptions.AccumulationGrowthRate)
}

func TestLoadFromFile_JSON(t *testing.T) {
	req, err := NewInputParser().LoadFromFile("testdata/scenario.json")
	require.NoError(t, err)

	assert.Equal(t, "Minimal", req.Name)
	assert.Nil(t, req.Data.DateOfBirth)
	assert.True(t, req.Data.PensionPot.Equal(decimal.NewFromInt(120000)))
	assert.True(t, req.Data.DesiredIncome.Equal(decimal.NewFromInt(18000)))
	assert.Equal(t, domain.DefaultRetirementAge, req.Data.EffectiveRetirementAge())
	assert.Empty(t, req.Events)
	assert.Nil(t, req.Assumptions)
}

func TestLoadFromFile_Errors(t *testing.T) {
	parser := NewInputParser()

	_, err := parser.LoadFromFile("testdata/does-not-exist.yaml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read file")

	_, err = parser.LoadFromFile("testdata/invalid_event.yaml")
	require.Error(t, err)
	assert.True(t, domain.IsInvalidInput(err))
	assert.Contains(t, err.Error(), "needs an age or a year")
}

func TestParse_MissingData(t *testing.T) {
	_, err := NewInputParser().Parse([]byte("name: empty\n"), FormatYAML)
	require.Error(t, err)
	assert.True(t, domain.IsInvalidInput(err))
	assert.Contains(t, err.Error(), "data is required")
}

func TestParse_Malformed(t *testing.T) {
	parser := NewInputParser()

	_, err := parser.Parse([]byte(`{"data": {"pension_pot": "lots"}}`), FormatJSON)
	require.Error(t, err)
	assert.True(t, domain.IsInvalidInput(err))

	_, err = parser.Parse([]byte("data: [1, 2"), FormatYAML)
	require.Error(t, err)
	assert.True(t, domain.IsInvalidInput(err))
}

func TestValidateInput_DuplicateEventNames(t *testing.T) {
	age := 60
	req := &domain.ProjectionRequest{
		Data: &domain.FinancialSnapshot{},
		Events: []domain.LifeEvent{
			{Name: "Car", Age: &age, Cost: decimal.NewFromInt(1)},
			{Name: "Car", Age: &age, Cost: decimal.NewFromInt(2)},
		},
	}

	err := NewInputParser().ValidateInput(req)
	require.Error(t, err)
	assert.True(t, domain.IsInvalidInput(err))

	assert.Error(t, NewInputParser().ValidateInput(nil))
}

func TestLoadUserRecords(t *testing.T) {
	users, err := NewInputParser().LoadUserRecords("testdata/users.yaml")
	require.NoError(t, err)
	require.Len(t, users, 2)

	first := users[0]
	assert.Equal(t, "u-100", first.Profile.UserID)
	require.NotNil(t, first.PensionPot)
	assert.True(t, first.PensionPot.IsActive)
	assert.True(t, first.PensionPot.CurrentValue.Equal(decimal.NewFromInt(310000)))
	require.NotNil(t, first.Property)
	assert.True(t, first.Property.MortgageBalance.Equal(decimal.NewFromInt(90000)))
	assert.Nil(t, first.Liability)

	second := users[1]
	assert.Equal(t, "u-200", second.Profile.UserID)
	assert.Nil(t, second.PensionPot)
}

func TestLoadUserRecords_RequiresUserID(t *testing.T) {
	path := filepath.Join(t.TempDir(), "users.yaml")
	require.NoError(t, os.WriteFile(path, []byte("users:\n  - pension_pot:\n      current_value: 1000\n"), 0o600))

	_, err := NewInputParser().LoadUserRecords(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "user_id is required")

	empty := filepath.Join(t.TempDir(), "empty.yaml")
	require.NoError(t, os.WriteFile(empty, []byte("users: []\n"), 0o600))
	_, err = NewInputParser().LoadUserRecords(empty)
	assert.True(t, domain.IsInvalidInput(err))
}

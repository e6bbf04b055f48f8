package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/goccy/go-json"
	"github.com/rgehrsitz/pensionproj/internal/calculation"
	"github.com/rgehrsitz/pensionproj/internal/config"
	"github.com/rgehrsitz/pensionproj/internal/storage/cache"
	"github.com/rgehrsitz/pensionproj/internal/storage/sqlite"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	scenarioFile = "../../test/testdata/example_scenario.yaml"
	usersFile    = "../../test/testdata/example_users.yaml"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	var buf bytes.Buffer
	cmd.SetOut(&buf)
	cmd.SetErr(&buf)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return buf.String(), err
}

func TestRootCommand(t *testing.T) {
	cmd := newRootCmd()
	assert.Equal(t, "pensionproj", cmd.Use)
	assert.NotEmpty(t, cmd.Short)

	var names []string
	for _, c := range cmd.Commands() {
		names = append(names, c.Name())
	}
	for _, want := range []string{"project", "compare", "validate", "user", "import", "serve", "version"} {
		assert.Contains(t, names, want)
	}

	out, err := run(t, "--help")
	require.NoError(t, err)
	assert.Contains(t, out, "project")
}

func TestProjectCommand_CSV(t *testing.T) {
	out, err := run(t, "project", scenarioFile, "--format", "csv")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "Year,Age,Phase"))
	assert.Contains(t, out, "Kitchen refit")
	assert.Contains(t, out, "Inheritance")
}

func TestProjectCommand_Console(t *testing.T) {
	out, err := run(t, "project", scenarioFile)
	require.NoError(t, err)
	assert.Contains(t, out, "EARLY RETIREMENT AT 60")
	assert.Contains(t, out, "Planning horizon: age 90")
}

func TestProjectCommand_OutputFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "report.json")
	out, err := run(t, "project", scenarioFile, "-f", "json", "-o", path)
	require.NoError(t, err)
	assert.Contains(t, out, "Wrote json report")

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	var decoded map[string]any
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Contains(t, decoded, "summary")
}

func TestProjectCommand_Errors(t *testing.T) {
	_, err := run(t, "project", scenarioFile, "--format", "pdf")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown output format")

	_, err = run(t, "project", "does-not-exist.yaml")
	assert.Error(t, err)

	_, err = run(t, "project")
	assert.Error(t, err)
}

func TestCompareCommand(t *testing.T) {
	out, err := run(t, "compare", scenarioFile, "--with", "postpone_1yr,growth_low", "--transform", "set_retirement_age:age=63")
	require.NoError(t, err)
	assert.Contains(t, out, "PENSION SCENARIO COMPARISON")
	assert.Contains(t, out, "postpone_1yr (Postpone retirement by 1 year):")
	assert.Contains(t, out, "set_retirement_age:age=63 (Retire at age 63):")

	out, err = run(t, "compare", scenarioFile, "--with", "postpone_1yr", "-f", "json")
	require.NoError(t, err)
	var decoded struct {
		Base struct {
			RetirementAge int `json:"retirement_age"`
		} `json:"base_result"`
		Alternatives []struct {
			ScenarioName  string `json:"scenario_name"`
			RetirementAge int    `json:"retirement_age"`
		} `json:"alternative_results"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &decoded))
	require.Len(t, decoded.Alternatives, 1)
	assert.Equal(t, decoded.Base.RetirementAge+1, decoded.Alternatives[0].RetirementAge)

	path := filepath.Join(t.TempDir(), "compare.csv")
	out, err = run(t, "compare", scenarioFile, "--with", "growth_high", "-f", "csv", "-o", path)
	require.NoError(t, err)
	assert.Contains(t, out, "Wrote comparison to")
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(data), "Scenario,Type,Retirement Age"))

	out, err = run(t, "compare", "--list-templates")
	require.NoError(t, err)
	assert.Contains(t, out, "Retirement Timing:")
	assert.Contains(t, out, "set_retirement_age")

	_, err = run(t, "compare", scenarioFile)
	assert.ErrorContains(t, err, "nothing to compare")
	_, err = run(t, "compare", scenarioFile, "--with", "nope")
	assert.ErrorContains(t, err, "template nope not found")
	_, err = run(t, "compare", scenarioFile, "--with", "postpone_1yr", "-f", "xml")
	assert.ErrorContains(t, err, "unknown comparison format")
	_, err = run(t, "compare")
	assert.Error(t, err)
}

func TestValidateCommand(t *testing.T) {
	out, err := run(t, "validate", scenarioFile)
	require.NoError(t, err)
	assert.Contains(t, out, "is valid")

	_, err = run(t, "validate", "../../internal/config/testdata/invalid_event.yaml")
	assert.Error(t, err)
}

func TestImportAndUserCommands(t *testing.T) {
	db := filepath.Join(t.TempDir(), "users.db")

	out, err := run(t, "import", usersFile, "--db", db)
	require.NoError(t, err)
	assert.Contains(t, out, "Imported 2 users")

	out, err = run(t, "user", "u-100", "--db", db, "--format", "json")
	require.NoError(t, err)

	var result struct {
		Projections []map[string]any `json:"projections"`
		Assumptions map[string]any   `json:"assumptions"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &result))
	require.NotEmpty(t, result.Projections)
	assert.Equal(t, "0.06", result.Assumptions["accumulation_growth_rate"])
	assert.Equal(t, "0.02", result.Assumptions["inflation_rate"])

	out, err = run(t, "user", "nobody", "--db", db, "--format", "summary")
	require.NoError(t, err, "unknown users project from defaults")
	assert.Contains(t, out, "User nobody")
}

func TestImportUsers_InvalidatesCache(t *testing.T) {
	users, err := config.NewInputParser().LoadUserRecords(usersFile)
	require.NoError(t, err)

	store, err := sqlite.Open(filepath.Join(t.TempDir(), "users.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })

	ctx := context.Background()
	cached := cache.NewCachedSource(store, cache.NewMemoryCache(time.Hour), nil)
	require.NoError(t, importUsers(ctx, store, cached, users, calculation.NopLogger{}))

	before, err := cached.LookupUser(ctx, "u-100")
	require.NoError(t, err)
	require.NotNil(t, before.PensionPot)
	assert.Equal(t, "310000", before.PensionPot.CurrentValue.String())

	users[0].PensionPot.CurrentValue = decimal.NewFromInt(325000)
	require.NoError(t, importUsers(ctx, store, cached, users, calculation.NopLogger{}))

	after, err := cached.LookupUser(ctx, "u-100")
	require.NoError(t, err)
	assert.Equal(t, "325000", after.PensionPot.CurrentValue.String(), "re-import is visible through the cache")

	// Without an invalidator the cache keeps serving the old records.
	users[0].PensionPot.CurrentValue = decimal.NewFromInt(999)
	require.NoError(t, importUsers(ctx, store, nil, users, calculation.NopLogger{}))
	stale, err := cached.LookupUser(ctx, "u-100")
	require.NoError(t, err)
	assert.Equal(t, "325000", stale.PensionPot.CurrentValue.String())
}

func TestVersionCommand(t *testing.T) {
	out, err := run(t, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "pensionproj dev")
}

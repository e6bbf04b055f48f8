package compare

import (
	"encoding/csv"
	"strconv"
	"strings"
)

// CSVFormatter formats comparison results as CSV
type CSVFormatter struct{}

// Format generates CSV output for comparison results
func (cf *CSVFormatter) Format(compSet *ComparisonSet) (string, error) {
	var sb strings.Builder
	writer := csv.NewWriter(&sb)

	header := []string{
		"Scenario",
		"Type",
		"Retirement Age",
		"Pot At Retirement",
		"Lifetime Net Income",
		"Lifetime Tax",
		"Total Shortfall",
		"Pot Longevity (Years)",
		"Depletion Age",
		"Final Pot",
		"Final Net Worth",
		"Income Diff from Base",
		"Income % Change",
		"Longevity Diff",
		"Tax Diff from Base",
	}
	if err := writer.Write(header); err != nil {
		return "", err
	}

	if compSet.BaseResult != nil {
		if err := writer.Write(cf.formatRow(compSet.BaseResult, "base")); err != nil {
			return "", err
		}
	}
	for i := range compSet.AlternativeResults {
		if err := writer.Write(cf.formatRow(&compSet.AlternativeResults[i], "alternative")); err != nil {
			return "", err
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return "", err
	}
	return sb.String(), nil
}

func (cf *CSVFormatter) formatRow(result *ComparisonResult, scenarioType string) []string {
	depletion := ""
	if result.DepletionAge != nil {
		depletion = strconv.Itoa(*result.DepletionAge)
	}
	return []string{
		result.ScenarioName,
		scenarioType,
		strconv.Itoa(result.RetirementAge),
		result.PotAtRetirement.StringFixed(0),
		result.LifetimeNetIncome.StringFixed(0),
		result.LifetimeTax.StringFixed(0),
		result.TotalShortfall.StringFixed(0),
		strconv.Itoa(result.PotLongevity),
		depletion,
		result.FinalPot.StringFixed(0),
		result.FinalNetWorth.StringFixed(0),
		result.IncomeDiffFromBase.StringFixed(0),
		result.IncomePctFromBase.StringFixed(2),
		strconv.Itoa(result.LongevityDiff),
		result.TaxDiffFromBase.StringFixed(0),
	}
}

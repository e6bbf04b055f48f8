package compare

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/rgehrsitz/pensionproj/internal/output"
	"github.com/shopspring/decimal"
)

const tableWidth = 92

// TableFormatter formats comparison results as a console table
type TableFormatter struct{}

// Format generates a formatted table comparing scenarios
func (tf *TableFormatter) Format(compSet *ComparisonSet) string {
	var sb strings.Builder

	sb.WriteString("PENSION SCENARIO COMPARISON\n")
	sb.WriteString(strings.Repeat("=", tableWidth) + "\n")
	sb.WriteString(fmt.Sprintf("Base Scenario: %s\n", compSet.BaseScenarioName))
	if compSet.ConfigPath != "" {
		sb.WriteString(fmt.Sprintf("Configuration: %s\n", compSet.ConfigPath))
	}
	sb.WriteString("\n")

	nameWidth := 24
	numWidth := 13

	sb.WriteString(fmt.Sprintf("%-*s %4s %*s %*s %*s %*s %*s\n",
		nameWidth, "Scenario",
		"Age",
		numWidth, "Pot @ Retire",
		numWidth, "Net Income",
		numWidth, "Pot Lasts",
		numWidth, "Shortfall",
		numWidth, "Net Worth"))
	sb.WriteString(strings.Repeat("-", tableWidth) + "\n")

	if compSet.BaseResult != nil {
		sb.WriteString(tf.formatRow(compSet.BaseResult, nameWidth, numWidth, true))
	}

	if len(compSet.AlternativeResults) > 0 {
		sb.WriteString(strings.Repeat("-", tableWidth) + "\n")
		for i := range compSet.AlternativeResults {
			sb.WriteString(tf.formatRow(&compSet.AlternativeResults[i], nameWidth, numWidth, false))
		}
	}
	sb.WriteString(strings.Repeat("=", tableWidth) + "\n")

	if len(compSet.AlternativeResults) > 0 {
		sb.WriteString("\nCOMPARISON TO BASE\n")
		sb.WriteString(strings.Repeat("-", tableWidth) + "\n")

		for _, alt := range compSet.AlternativeResults {
			sb.WriteString(fmt.Sprintf("\n%s", alt.ScenarioName))
			if alt.Description != "" {
				sb.WriteString(fmt.Sprintf(" (%s)", alt.Description))
			}
			sb.WriteString(":\n")

			sb.WriteString(fmt.Sprintf("  Pot at Retirement: %s\n", signedCurrency(alt.PotDiffFromBase)))
			sb.WriteString(fmt.Sprintf("  Lifetime Income:   %s (%s%%)\n",
				signedCurrency(alt.IncomeDiffFromBase), alt.IncomePctFromBase.StringFixed(1)))
			if alt.LongevityDiff != 0 {
				sb.WriteString(fmt.Sprintf("  Pot Longevity:     %+d years\n", alt.LongevityDiff))
			}
			if !alt.ShortfallDiffFromBase.IsZero() {
				sb.WriteString(fmt.Sprintf("  Shortfall:         %s\n", signedCurrency(alt.ShortfallDiffFromBase)))
			}
			if !alt.TaxDiffFromBase.IsZero() {
				sb.WriteString(fmt.Sprintf("  Tax Impact:        %s\n", signedCurrency(alt.TaxDiffFromBase)))
			}
		}
		sb.WriteString("\n")
	}

	return sb.String()
}

func (tf *TableFormatter) formatRow(result *ComparisonResult, nameWidth, numWidth int, isBase bool) string {
	name := result.ScenarioName
	if isBase {
		name += " (base)"
	}

	longevity := fmt.Sprintf("%d years", result.PotLongevity)
	if result.DepletionAge != nil {
		longevity = "to age " + strconv.Itoa(*result.DepletionAge)
	}

	return fmt.Sprintf("%-*s %4d %*s %*s %*s %*s %*s\n",
		nameWidth, truncate(name, nameWidth),
		result.RetirementAge,
		numWidth, output.FormatCurrency(result.PotAtRetirement),
		numWidth, output.FormatCurrency(result.LifetimeNetIncome),
		numWidth, longevity,
		numWidth, output.FormatCurrency(result.TotalShortfall),
		numWidth, output.FormatCurrency(result.FinalNetWorth))
}

func signedCurrency(d decimal.Decimal) string {
	if d.IsPositive() {
		return "+" + output.FormatCurrency(d)
	}
	return output.FormatCurrency(d)
}

func truncate(s string, width int) string {
	r := []rune(s)
	if len(r) <= width {
		return s
	}
	return string(r[:width-3]) + "..."
}

package output

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/rgehrsitz/pensionproj/internal/domain"
)

// ConsoleFormatter renders the full year-by-year table followed by the summary.
type ConsoleFormatter struct{}

func (c ConsoleFormatter) Name() string { return "console" }

func (c ConsoleFormatter) Format(report Report) ([]byte, error) {
	if report.Result == nil {
		return nil, fmt.Errorf("no projection to format")
	}
	var buf bytes.Buffer

	title := "RETIREMENT PROJECTION"
	if report.Name != "" {
		title += ": " + strings.ToUpper(report.Name)
	}
	fmt.Fprintln(&buf, title)
	fmt.Fprintln(&buf, strings.Repeat("=", len(title)))
	fmt.Fprintln(&buf)

	fmt.Fprintf(&buf, "%-6s %-4s %-13s %12s %10s %10s %10s %10s %10s %10s %10s %10s %12s %s\n",
		"Year", "Age", "Phase", "Pot", "Contrib", "Growth", "Lump sum", "Drawdown", "State", "Tax", "Net", "Shortfall", "Net worth", "Events")
	fmt.Fprintln(&buf, strings.Repeat("-", 150))
	for _, y := range report.Result.Projections {
		marker := ""
		if y.FundsDepleted {
			marker = " *"
		}
		fmt.Fprintf(&buf, "%-6d %-4s %-13s %12s %10s %10s %10s %10s %10s %10s %10s %10s %12s %s%s\n",
			y.Year, formatAge(y.Age), y.Phase,
			FormatCurrency(y.PotEnd),
			FormatCurrency(y.Contribution),
			FormatCurrency(y.Growth),
			FormatCurrency(y.LumpSum),
			FormatCurrency(y.Drawdown),
			FormatCurrency(y.StatePension),
			FormatCurrency(y.Tax),
			FormatCurrency(y.NetIncome),
			FormatCurrency(y.IncomeShortfall),
			FormatCurrency(y.NetWorth),
			eventNames(y.LifeEvents), marker)
	}
	fmt.Fprintln(&buf)
	fmt.Fprintln(&buf, "* pension pot depleted")
	fmt.Fprintln(&buf)

	writeSummary(&buf, report.Result)
	return buf.Bytes(), nil
}

// SummaryFormatter renders only the headline figures and assumptions.
type SummaryFormatter struct{}

func (s SummaryFormatter) Name() string { return "summary" }

func (s SummaryFormatter) Format(report Report) ([]byte, error) {
	if report.Result == nil {
		return nil, fmt.Errorf("no projection to format")
	}
	var buf bytes.Buffer
	if report.Name != "" {
		fmt.Fprintf(&buf, "%s\n\n", report.Name)
	}
	writeSummary(&buf, report.Result)
	return buf.Bytes(), nil
}

func writeSummary(buf *bytes.Buffer, result *domain.ProjectionResult) {
	sum := result.Summary

	fmt.Fprintln(buf, "SUMMARY")
	fmt.Fprintln(buf, "-------")
	fmt.Fprintf(buf, "Years projected:        %d\n", sum.Years)
	if sum.FirstRetirementYear != nil {
		fmt.Fprintf(buf, "Retirement begins:      %d\n", *sum.FirstRetirementYear)
		fmt.Fprintf(buf, "Pot at retirement:      %s\n", FormatCurrency(sum.PotAtRetirement))
	} else {
		fmt.Fprintln(buf, "Retirement begins:      not within the projection")
	}
	fmt.Fprintf(buf, "Tax-free lump sum:      %s\n", FormatCurrency(sum.TotalLumpSum))
	fmt.Fprintf(buf, "Total drawdown:         %s\n", FormatCurrency(sum.TotalDrawdown))
	fmt.Fprintf(buf, "Total tax:              %s\n", FormatCurrency(sum.TotalTax))
	fmt.Fprintf(buf, "Total shortfall:        %s\n", FormatCurrency(sum.TotalShortfall))
	switch {
	case sum.DepletionYear != nil && sum.DepletionAge != nil:
		fmt.Fprintf(buf, "Pot depleted:           %d (age %d)\n", *sum.DepletionYear, *sum.DepletionAge)
	case sum.DepletionYear != nil:
		fmt.Fprintf(buf, "Pot depleted:           %d\n", *sum.DepletionYear)
	default:
		fmt.Fprintln(buf, "Pot depleted:           never")
	}
	fmt.Fprintf(buf, "Final pot:              %s\n", FormatCurrency(sum.FinalPot))
	fmt.Fprintf(buf, "Final net worth:        %s\n", FormatCurrency(sum.FinalNetWorth))
	fmt.Fprintln(buf)

	fmt.Fprintln(buf, "ASSUMPTIONS")
	fmt.Fprintln(buf, "-----------")
	for _, line := range result.Assumptions.Describe() {
		fmt.Fprintf(buf, "- %s\n", line)
	}
}

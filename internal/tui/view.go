package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/lipgloss"

	"github.com/rgehrsitz/pensionproj/internal/domain"
	"github.com/rgehrsitz/pensionproj/internal/output"
	"github.com/rgehrsitz/pensionproj/internal/tui/components"
	"github.com/rgehrsitz/pensionproj/internal/tui/tuistyles"
)

// Rows taken by everything except the table; the table's own header is counted
// against the table height.
const chromeHeight = 26

func tableColumns() []table.Column {
	return []table.Column{
		{Title: "Year", Width: 5},
		{Title: "Age", Width: 4},
		{Title: "Phase", Width: 12},
		{Title: "Pot End", Width: 11},
		{Title: "Drawdown", Width: 10},
		{Title: "State Pen.", Width: 10},
		{Title: "Tax", Width: 9},
		{Title: "Net Income", Width: 10},
		{Title: "Shortfall", Width: 10},
		{Title: "Net Worth", Width: 11},
		{Title: "Events", Width: 20},
	}
}

func tableStyles() table.Styles {
	s := table.DefaultStyles()
	s.Header = tuistyles.TableHeaderStyle
	s.Selected = tuistyles.TableHighlightStyle
	return s
}

func tableRows(years []domain.ProjectionYear) []table.Row {
	rows := make([]table.Row, 0, len(years))
	for _, y := range years {
		age := "-"
		if y.Age != nil {
			age = strconv.Itoa(*y.Age)
		}
		events := ""
		if y.LifeEvents != nil {
			events = *y.LifeEvents
		}
		phase := string(y.Phase)
		if y.FundsDepleted {
			phase += " !"
		}
		rows = append(rows, table.Row{
			strconv.Itoa(y.Year),
			age,
			phase,
			tuistyles.FormatCurrency(y.PotEnd),
			tuistyles.FormatCurrency(y.Drawdown),
			tuistyles.FormatCurrency(y.StatePension),
			tuistyles.FormatCurrency(y.Tax),
			tuistyles.FormatCurrency(y.NetIncome),
			tuistyles.FormatCurrency(y.IncomeShortfall),
			tuistyles.FormatCurrency(y.NetWorth),
			events,
		})
	}
	return rows
}

// View renders the dashboard
func (m Model) View() string {
	sections := []string{m.renderTitleBar()}

	switch {
	case m.err != nil:
		sections = append(sections, tuistyles.ErrorStyle.Render("Error: "+m.err.Error()))
	case m.result == nil:
		sections = append(sections, tuistyles.BorderStyle.Render("Loading "+m.configPath+"..."))
	default:
		sections = append(sections,
			m.renderParameters(),
			m.renderMetrics(),
			components.NewPotChart("Pension pot", m.result.Projections).WithHeight(6).Render(),
			tuistyles.BorderStyle.Render(m.table.View()),
		)
	}

	sections = append(sections, m.renderStatusBar())
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m Model) renderTitleBar() string {
	title := tuistyles.TitleStyle.Render("PENSIONPROJ - Retirement Projection")
	subtitle := m.scenarioName()
	if m.calculating {
		subtitle += " (calculating...)"
	}
	return lipgloss.JoinVertical(lipgloss.Left, title, tuistyles.SubtitleStyle.Render(subtitle))
}

func (m Model) renderParameters() string {
	param := func(label, value string) string {
		return tuistyles.ParameterLabelStyle.Render(label+": ") + tuistyles.ParameterValueStyle.Render(value)
	}
	return strings.Join([]string{
		param("Retirement age", strconv.Itoa(m.retirementAge)),
		param("Growth", output.FormatPercentage(m.growthRate)),
		param("Desired income", tuistyles.FormatCurrency(m.income)),
	}, "   ")
}

func (m Model) renderMetrics() string {
	s := m.result.Summary
	base := s
	if m.baseline != nil {
		base = *m.baseline
	}

	depletion := "Never"
	depletionDesc := fmt.Sprintf("lasts %d years", s.PotLongevity)
	if s.DepletionYear != nil {
		depletion = strconv.Itoa(*s.DepletionYear)
		if s.DepletionAge != nil {
			depletionDesc = fmt.Sprintf("at age %d", *s.DepletionAge)
		}
	}

	cards := []*components.MetricCard{
		components.NewMetricCard("Pot at retirement", tuistyles.FormatCurrency(s.PotAtRetirement)).
			WithCurrencyDelta(s.PotAtRetirement, base.PotAtRetirement, true),
		components.NewMetricCard("Pot depleted", depletion).WithDescription(depletionDesc),
		components.NewMetricCard("Total tax", tuistyles.FormatCurrency(s.TotalTax)).
			WithCurrencyDelta(s.TotalTax, base.TotalTax, false),
		components.NewMetricCard("Final net worth", tuistyles.FormatCurrency(s.FinalNetWorth)).
			WithCurrencyDelta(s.FinalNetWorth, base.FinalNetWorth, true),
	}
	return components.MetricGrid(cards, 4)
}

func (m Model) renderStatusBar() string {
	bar := m.help.View(m.keys)
	if m.status != "" {
		bar = tuistyles.InfoStyle.Render(m.status) + "  " + bar
	}
	return tuistyles.StatusBarStyle.Width(m.width).Render(bar)
}

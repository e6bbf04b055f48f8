package tui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

// Update handles all messages and updates the model state
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKeyPress(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.table.SetHeight(max(5, msg.Height-chromeHeight))
		return m, nil

	case ErrorMsg:
		m.err = msg.Err
		return m, nil

	case ScenarioLoadedMsg:
		m.applyRequest(msg.Request)
		m.baseline = nil
		m.err = nil
		return m, m.recalculate()

	case ProjectionCompleteMsg:
		if msg.Seq != m.seq {
			return m, nil
		}
		m.calculating = false
		if msg.Err != nil {
			m.err = msg.Err
			return m, nil
		}
		m.err = nil
		m.result = msg.Result
		if m.baseline == nil {
			summary := msg.Result.Summary
			m.baseline = &summary
		}
		m.table.SetRows(tableRows(msg.Result.Projections))
		return m, nil

	case ClipboardMsg:
		if msg.Err != nil {
			m.status = msg.Err.Error()
		} else {
			m.status = fmt.Sprintf("Copied %d years as CSV", msg.Rows)
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// handleKeyPress processes keyboard input. Parameter keys take precedence over
// the table's own bindings.
func (m Model) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		return m, nil
	}

	if m.request == nil {
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.RetireLater):
		if m.retirementAge < maxRetirementAge {
			m.retirementAge++
			return m, m.recalculate()
		}
		return m, nil

	case key.Matches(msg, m.keys.RetireEarlier):
		if m.retirementAge > minRetirementAge {
			m.retirementAge--
			return m, m.recalculate()
		}
		return m, nil

	case key.Matches(msg, m.keys.GrowthDown):
		if next := m.growthRate.Sub(growthStep); next.GreaterThanOrEqual(minGrowth) {
			m.growthRate = next
			return m, m.recalculate()
		}
		return m, nil

	case key.Matches(msg, m.keys.GrowthUp):
		if next := m.growthRate.Add(growthStep); next.LessThanOrEqual(maxGrowth) {
			m.growthRate = next
			return m, m.recalculate()
		}
		return m, nil

	case key.Matches(msg, m.keys.IncomeDown):
		if next := m.income.Sub(incomeStep); !next.IsNegative() {
			m.income = next
			return m, m.recalculate()
		}
		return m, nil

	case key.Matches(msg, m.keys.IncomeUp):
		m.income = m.income.Add(incomeStep)
		return m, m.recalculate()

	case key.Matches(msg, m.keys.Reset):
		m.applyRequest(m.request)
		m.status = "Parameters reset"
		return m, m.recalculate()

	case key.Matches(msg, m.keys.Copy):
		return m, m.copyCmd()
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// Package tui is an interactive dashboard that re-runs the projection as the
// retirement age, growth rate and income target are adjusted.
package tui

import (
	"context"
	"fmt"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/shopspring/decimal"

	"github.com/rgehrsitz/pensionproj/internal/calculation"
	"github.com/rgehrsitz/pensionproj/internal/config"
	"github.com/rgehrsitz/pensionproj/internal/domain"
	"github.com/rgehrsitz/pensionproj/internal/output"
)

const (
	minRetirementAge = 50
	maxRetirementAge = 80
)

var (
	growthStep = decimal.NewFromFloat(0.005)
	minGrowth  = decimal.NewFromFloat(-0.05)
	maxGrowth  = decimal.NewFromFloat(0.15)
	incomeStep = decimal.NewFromInt(1000)
)

// Model is the dashboard state.
type Model struct {
	configPath string
	engine     *calculation.Engine

	request  *domain.ProjectionRequest
	result   *domain.ProjectionResult
	baseline *domain.ProjectionSummary

	// Adjustable parameters, applied on top of the loaded request.
	retirementAge int
	growthRate    decimal.Decimal
	income        decimal.Decimal

	seq         int
	calculating bool

	table table.Model
	help  help.Model
	keys  keyMap

	width  int
	height int

	status string
	err    error

	copyToClipboard func(string) error
}

// NewModel creates a dashboard for the scenario file at configPath. A nil engine
// uses calculation.NewEngine.
func NewModel(configPath string, engine *calculation.Engine) Model {
	if engine == nil {
		engine = calculation.NewEngine()
	}
	t := table.New(
		table.WithColumns(tableColumns()),
		table.WithFocused(true),
		table.WithHeight(12),
	)
	t.SetStyles(tableStyles())

	return Model{
		configPath:      configPath,
		engine:          engine,
		table:           t,
		help:            help.New(),
		keys:            defaultKeyMap(),
		width:           100,
		height:          40,
		copyToClipboard: clipboard.WriteAll,
	}
}

// Init loads the scenario file.
func (m Model) Init() tea.Cmd {
	return loadScenarioCmd(m.configPath)
}

func loadScenarioCmd(path string) tea.Cmd {
	return func() tea.Msg {
		req, err := config.NewInputParser().LoadFromFile(path)
		if err != nil {
			return ErrorMsg{Err: err}
		}
		return ScenarioLoadedMsg{Request: req}
	}
}

// applyRequest seeds the adjustable parameters from a freshly loaded request.
func (m *Model) applyRequest(req *domain.ProjectionRequest) {
	m.request = req
	m.retirementAge = req.Data.EffectiveRetirementAge()
	m.growthRate = domain.ResolveAssumptions(req.Assumptions).AccumulationGrowthRate
	m.income = req.Data.DesiredIncome
}

// inputs returns the snapshot and overrides with the adjusted parameters applied.
func (m Model) inputs() (domain.FinancialSnapshot, *domain.AssumptionOverrides) {
	snapshot := *m.request.Data
	snapshot.RetirementAge = m.retirementAge
	snapshot.DesiredIncome = m.income

	growth := m.growthRate
	overrides := domain.AssumptionOverrides{}.Merge(m.request.Assumptions)
	overrides.AccumulationGrowthRate = &growth
	return snapshot, &overrides
}

// recalculate starts a projection for the current parameters.
func (m *Model) recalculate() tea.Cmd {
	if m.request == nil {
		return nil
	}
	m.seq++
	m.calculating = true
	seq, engine, events := m.seq, m.engine, m.request.Events
	snapshot, overrides := m.inputs()
	return func() tea.Msg {
		result, err := engine.Project(context.Background(), snapshot, events, overrides)
		return ProjectionCompleteMsg{Seq: seq, Result: result, Err: err}
	}
}

func (m Model) copyCmd() tea.Cmd {
	if m.result == nil {
		return nil
	}
	report := output.Report{Name: m.scenarioName(), Result: m.result}
	write := m.copyToClipboard
	return func() tea.Msg {
		data, err := output.CSVFormatter{}.Format(report)
		if err != nil {
			return ClipboardMsg{Err: err}
		}
		if err := write(string(data)); err != nil {
			return ClipboardMsg{Err: fmt.Errorf("copy to clipboard: %w", err)}
		}
		return ClipboardMsg{Rows: len(report.Result.Projections)}
	}
}

func (m Model) scenarioName() string {
	if m.request != nil && m.request.Name != "" {
		return m.request.Name
	}
	return "Retirement projection"
}

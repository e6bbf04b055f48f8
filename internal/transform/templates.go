package transform

import (
	"fmt"
	"sort"
	"strings"

	"github.com/rgehrsitz/pensionproj/internal/domain"
	"github.com/shopspring/decimal"
)

// TemplateRegistry manages built-in scenario templates
type TemplateRegistry struct {
	templates map[string]Template
}

// Template represents a named collection of transforms
type Template struct {
	Name        string
	Description string
	Transforms  []ScenarioTransform
}

// NewTemplateRegistry creates an empty template registry.
func NewTemplateRegistry() *TemplateRegistry {
	return &TemplateRegistry{
		templates: make(map[string]Template),
	}
}

// Register adds a template to the registry
func (tr *TemplateRegistry) Register(t Template) {
	tr.templates[strings.ToLower(t.Name)] = t
}

// Get retrieves a template by name (case-insensitive)
func (tr *TemplateRegistry) Get(name string) (Template, bool) {
	t, ok := tr.templates[strings.ToLower(name)]
	return t, ok
}

// List returns all registered template names, sorted.
func (tr *TemplateRegistry) List() []string {
	names := make([]string, 0, len(tr.templates))
	for name := range tr.templates {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func rate(v string) *decimal.Decimal {
	d := decimal.RequireFromString(v)
	return &d
}

// CreateBuiltInTemplates returns the common pension what-if scenarios.
func CreateBuiltInTemplates() *TemplateRegistry {
	registry := NewTemplateRegistry()

	// Retirement timing
	registry.Register(Template{
		Name:        "postpone_1yr",
		Description: "Postpone retirement by 1 year",
		Transforms:  []ScenarioTransform{&PostponeRetirement{Years: 1}},
	})
	registry.Register(Template{
		Name:        "postpone_2yr",
		Description: "Postpone retirement by 2 years",
		Transforms:  []ScenarioTransform{&PostponeRetirement{Years: 2}},
	})
	registry.Register(Template{
		Name:        "retire_early_1yr",
		Description: "Retire 1 year earlier",
		Transforms:  []ScenarioTransform{&PostponeRetirement{Years: -1}},
	})
	registry.Register(Template{
		Name:        "retire_early_2yr",
		Description: "Retire 2 years earlier",
		Transforms:  []ScenarioTransform{&PostponeRetirement{Years: -2}},
	})
	registry.Register(Template{
		Name:        "spa_68",
		Description: "State pension age rises to 68",
		Transforms:  []ScenarioTransform{&SetStatePensionAge{Age: 68}},
	})

	// Markets
	registry.Register(Template{
		Name:        "growth_low",
		Description: "Low growth: 3% accumulation, 2% drawdown",
		Transforms:  []ScenarioTransform{&SetGrowthRates{Accumulation: rate("0.03"), Drawdown: rate("0.02")}},
	})
	registry.Register(Template{
		Name:        "growth_high",
		Description: "High growth: 7% accumulation, 6% drawdown",
		Transforms:  []ScenarioTransform{&SetGrowthRates{Accumulation: rate("0.07"), Drawdown: rate("0.06")}},
	})
	registry.Register(Template{
		Name:        "inflation_high",
		Description: "Inflation at 4%",
		Transforms:  []ScenarioTransform{&SetInflation{Rate: *rate("0.04")}},
	})

	// Spending and saving
	registry.Register(Template{
		Name:        "income_minus_10pct",
		Description: "Reduce desired income by 10%",
		Transforms:  []ScenarioTransform{&AdjustIncome{Percent: decimal.NewFromInt(-10)}},
	})
	registry.Register(Template{
		Name:        "income_plus_10pct",
		Description: "Increase desired income by 10%",
		Transforms:  []ScenarioTransform{&AdjustIncome{Percent: decimal.NewFromInt(10)}},
	})
	registry.Register(Template{
		Name:        "contribution_plus_200",
		Description: "Contribute £200 more a month",
		Transforms:  []ScenarioTransform{&AdjustContribution{Delta: decimal.NewFromInt(200)}},
	})
	registry.Register(Template{
		Name:        "no_lump_sum",
		Description: "Leave the tax-free lump sum invested",
		Transforms:  []ScenarioTransform{&SetLumpSumRate{Rate: decimal.Zero}},
	})

	// Combinations
	registry.Register(Template{
		Name:        "conservative",
		Description: "Conservative: postpone 2 years, low growth, 10% less income",
		Transforms: []ScenarioTransform{
			&PostponeRetirement{Years: 2},
			&SetGrowthRates{Accumulation: rate("0.03"), Drawdown: rate("0.02")},
			&AdjustIncome{Percent: decimal.NewFromInt(-10)},
		},
	})
	registry.Register(Template{
		Name:        "work_longer_save_more",
		Description: "Postpone 1 year and contribute £200 more a month",
		Transforms: []ScenarioTransform{
			&PostponeRetirement{Years: 1},
			&AdjustContribution{Delta: decimal.NewFromInt(200)},
		},
	})

	return registry
}

// ApplyTemplate applies a template to a base scenario
func ApplyTemplate(base *domain.ProjectionRequest, template Template) (*domain.ProjectionRequest, error) {
	return ApplyTransforms(base, template.Transforms)
}

// ParseTemplateList parses a comma-separated list of template names
func ParseTemplateList(templateList string) []string {
	if templateList == "" {
		return nil
	}

	parts := strings.Split(templateList, ",")
	templates := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			templates = append(templates, trimmed)
		}
	}
	return templates
}

func templateCategory(name string) string {
	switch {
	case strings.HasPrefix(name, "postpone_"), strings.HasPrefix(name, "retire_"), strings.HasPrefix(name, "spa_"):
		return "Retirement Timing"
	case strings.HasPrefix(name, "growth_"), strings.HasPrefix(name, "inflation_"):
		return "Markets"
	case strings.HasPrefix(name, "income_"), strings.HasPrefix(name, "contribution_"), name == "no_lump_sum":
		return "Spending and Saving"
	default:
		return "Combinations"
	}
}

// GetTemplateHelp returns formatted help text for all templates
func GetTemplateHelp(registry *TemplateRegistry) string {
	if len(registry.templates) == 0 {
		return "No templates registered"
	}

	categories := make(map[string][]Template)
	for _, name := range registry.List() {
		t := registry.templates[name]
		c := templateCategory(name)
		categories[c] = append(categories[c], t)
	}

	var sb strings.Builder
	sb.WriteString("Available Templates:\n\n")
	for _, category := range []string{"Retirement Timing", "Markets", "Spending and Saving", "Combinations"} {
		templates := categories[category]
		if len(templates) == 0 {
			continue
		}
		sb.WriteString(fmt.Sprintf("%s:\n", category))
		for _, t := range templates {
			sb.WriteString(fmt.Sprintf("  %-24s %s\n", t.Name, t.Description))
		}
		sb.WriteString("\n")
	}

	sb.WriteString("Usage:\n")
	sb.WriteString("  pensionproj compare scenario.yaml --with postpone_1yr,growth_low\n")
	sb.WriteString("  pensionproj compare scenario.yaml --transform set_retirement_age:age=63\n")

	return sb.String()
}

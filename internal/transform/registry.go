package transform

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/rgehrsitz/pensionproj/internal/domain"
	"github.com/shopspring/decimal"
)

// TransformRegistry creates transforms from string parameters for the CLI.
type TransformRegistry struct {
	factories map[string]TransformFactory
}

// TransformFactory is a function that creates a transform from parameters.
type TransformFactory func(params map[string]string) (ScenarioTransform, error)

// NewTransformRegistry creates a new registry with all built-in transforms registered.
func NewTransformRegistry() *TransformRegistry {
	registry := &TransformRegistry{
		factories: make(map[string]TransformFactory),
	}

	registry.Register("postpone_retirement", createPostponeRetirement)
	registry.Register("set_retirement_age", createSetRetirementAge)
	registry.Register("set_state_pension_age", createSetStatePensionAge)
	registry.Register("set_growth", createSetGrowthRates)
	registry.Register("set_inflation", createSetInflation)
	registry.Register("set_lump_sum", createSetLumpSumRate)
	registry.Register("adjust_income", createAdjustIncome)
	registry.Register("set_income", createSetDesiredIncome)
	registry.Register("set_contribution", createSetContribution)
	registry.Register("adjust_contribution", createAdjustContribution)
	registry.Register("stop_contributions", func(map[string]string) (ScenarioTransform, error) {
		return &StopContributions{}, nil
	})
	registry.Register("add_event", createAddLifeEvent)

	return registry
}

// Register adds a transform factory to the registry.
func (r *TransformRegistry) Register(name string, factory TransformFactory) {
	r.factories[name] = factory
}

// Create creates a transform by name with the given parameters.
func (r *TransformRegistry) Create(name string, params map[string]string) (ScenarioTransform, error) {
	factory, exists := r.factories[name]
	if !exists {
		return nil, fmt.Errorf("unknown transform: %s", name)
	}
	return factory(params)
}

// List returns the sorted names of all registered transforms.
func (r *TransformRegistry) List() []string {
	names := make([]string, 0, len(r.factories))
	for name := range r.factories {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ParseTransformSpec parses "name" or "name:key=value,key=value", e.g.
// "set_growth:accumulation=0.03,drawdown=0.02".
func (r *TransformRegistry) ParseTransformSpec(spec string) (ScenarioTransform, error) {
	name, paramsStr, _ := strings.Cut(spec, ":")
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("invalid transform spec %q: missing name", spec)
	}

	params := make(map[string]string)
	if paramsStr = strings.TrimSpace(paramsStr); paramsStr != "" {
		for _, pair := range strings.Split(paramsStr, ",") {
			k, v, ok := strings.Cut(pair, "=")
			if !ok {
				return nil, fmt.Errorf("invalid parameter format, expected 'key=value', got: %s", pair)
			}
			params[strings.TrimSpace(k)] = strings.TrimSpace(v)
		}
	}

	return r.Create(name, params)
}

func intParam(transform string, params map[string]string, key string) (int, error) {
	raw, ok := params[key]
	if !ok {
		return 0, fmt.Errorf("%s requires '%s' parameter", transform, key)
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid %s value: %w", key, err)
	}
	return v, nil
}

func decimalParam(transform string, params map[string]string, key string) (decimal.Decimal, error) {
	raw, ok := params[key]
	if !ok {
		return decimal.Zero, fmt.Errorf("%s requires '%s' parameter", transform, key)
	}
	v, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Zero, fmt.Errorf("invalid %s value: %w", key, err)
	}
	return v, nil
}

func optionalDecimalParam(transform string, params map[string]string, key string) (*decimal.Decimal, error) {
	if _, ok := params[key]; !ok {
		return nil, nil
	}
	v, err := decimalParam(transform, params, key)
	if err != nil {
		return nil, err
	}
	return &v, nil
}

func createPostponeRetirement(params map[string]string) (ScenarioTransform, error) {
	years, err := intParam("postpone_retirement", params, "years")
	if err != nil {
		return nil, err
	}
	return &PostponeRetirement{Years: years}, nil
}

func createSetRetirementAge(params map[string]string) (ScenarioTransform, error) {
	age, err := intParam("set_retirement_age", params, "age")
	if err != nil {
		return nil, err
	}
	return &SetRetirementAge{Age: age}, nil
}

func createSetStatePensionAge(params map[string]string) (ScenarioTransform, error) {
	age, err := intParam("set_state_pension_age", params, "age")
	if err != nil {
		return nil, err
	}
	return &SetStatePensionAge{Age: age}, nil
}

func createSetGrowthRates(params map[string]string) (ScenarioTransform, error) {
	acc, err := optionalDecimalParam("set_growth", params, "accumulation")
	if err != nil {
		return nil, err
	}
	draw, err := optionalDecimalParam("set_growth", params, "drawdown")
	if err != nil {
		return nil, err
	}
	if acc == nil && draw == nil {
		return nil, fmt.Errorf("set_growth requires 'accumulation' or 'drawdown' parameter")
	}
	return &SetGrowthRates{Accumulation: acc, Drawdown: draw}, nil
}

func createSetInflation(params map[string]string) (ScenarioTransform, error) {
	rate, err := decimalParam("set_inflation", params, "rate")
	if err != nil {
		return nil, err
	}
	return &SetInflation{Rate: rate}, nil
}

func createSetLumpSumRate(params map[string]string) (ScenarioTransform, error) {
	rate, err := decimalParam("set_lump_sum", params, "rate")
	if err != nil {
		return nil, err
	}
	return &SetLumpSumRate{Rate: rate}, nil
}

func createAdjustIncome(params map[string]string) (ScenarioTransform, error) {
	pct, err := decimalParam("adjust_income", params, "percent")
	if err != nil {
		return nil, err
	}
	return &AdjustIncome{Percent: pct}, nil
}

func createSetDesiredIncome(params map[string]string) (ScenarioTransform, error) {
	amount, err := decimalParam("set_income", params, "amount")
	if err != nil {
		return nil, err
	}
	return &SetDesiredIncome{Amount: amount}, nil
}

func createSetContribution(params map[string]string) (ScenarioTransform, error) {
	monthly, err := decimalParam("set_contribution", params, "monthly")
	if err != nil {
		return nil, err
	}
	return &SetContribution{Monthly: monthly}, nil
}

func createAdjustContribution(params map[string]string) (ScenarioTransform, error) {
	delta, err := decimalParam("adjust_contribution", params, "delta")
	if err != nil {
		return nil, err
	}
	return &AdjustContribution{Delta: delta}, nil
}

func createAddLifeEvent(params map[string]string) (ScenarioTransform, error) {
	cost, err := decimalParam("add_event", params, "cost")
	if err != nil {
		return nil, err
	}
	event := domain.LifeEvent{Name: params["name"], Cost: cost}
	if _, ok := params["age"]; ok {
		age, err := intParam("add_event", params, "age")
		if err != nil {
			return nil, err
		}
		event.Age = &age
	}
	if _, ok := params["year"]; ok {
		year, err := intParam("add_event", params, "year")
		if err != nil {
			return nil, err
		}
		event.Year = &year
	}
	return &AddLifeEvent{Event: event}, nil
}

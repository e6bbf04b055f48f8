package calculation

import (
	"context"
	"fmt"
	"time"

	"github.com/rgehrsitz/pensionproj/internal/domain"
	"github.com/rgehrsitz/pensionproj/pkg/dateutil"
)

const (
	// DefaultHorizonYears is used when the date of birth is unknown.
	DefaultHorizonYears = 30
	MinHorizonYears     = 10
	MaxHorizonYears     = 50
)

// Engine runs retirement projections. It holds no per-run state, so one Engine may
// serve concurrent callers.
type Engine struct {
	TaxCalc *TaxCalculator
	Logger  Logger
	Now     func() time.Time
}

// NewEngine creates a projection engine using the current UK tax bands and wall clock.
func NewEngine() *Engine {
	return &Engine{
		TaxCalc: NewTaxCalculator(),
		Logger:  NopLogger{},
		Now:     time.Now,
	}
}

// SetLogger sets the logger for the engine. If nil is provided, a no-op logger is used.
func (e *Engine) SetLogger(l Logger) {
	if l == nil {
		e.Logger = NopLogger{}
		return
	}
	e.Logger = l
}

// Project runs one projection with a fresh engine.
func Project(snapshot domain.FinancialSnapshot, events []domain.LifeEvent, overrides *domain.AssumptionOverrides) (*domain.ProjectionResult, error) {
	return NewEngine().Project(context.Background(), snapshot, events, overrides)
}

// Project validates the inputs, resolves assumptions and simulates every year from the
// current year to the horizon. It returns all years or an error, never a partial result.
func (e *Engine) Project(ctx context.Context, snapshot domain.FinancialSnapshot, events []domain.LifeEvent, overrides *domain.AssumptionOverrides) (*domain.ProjectionResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	req := domain.ProjectionRequest{Data: &snapshot, Events: events, Assumptions: overrides}
	if err := req.Validate(); err != nil {
		return nil, err
	}

	assumptions := domain.ResolveAssumptions(overrides)
	today := e.Now()

	age, err := CurrentAge(snapshot.DateOfBirth, today)
	if err != nil {
		return nil, err
	}
	horizon := ProjectionHorizon(age, assumptions.PlanningHorizonAge)

	if age != nil {
		e.Logger.Debugf("projecting %d years from age %d (retirement age %d)", horizon, *age, snapshot.EffectiveRetirementAge())
	} else {
		e.Logger.Debugf("projecting %d years with unknown age; age-based triggers disabled", horizon)
	}

	years, st := e.simulate(snapshot, events, assumptions, age, today.Year(), horizon)
	if len(years) != horizon+1 {
		return nil, fmt.Errorf("projection produced %d years, expected %d", len(years), horizon+1)
	}

	return &domain.ProjectionResult{
		Projections: years,
		Assumptions: assumptions,
		Summary:     summarize(years, st),
	}, nil
}

// CurrentAge returns the age on today, or nil when the date of birth is unknown.
func CurrentAge(dob *domain.Date, today time.Time) (*int, error) {
	if dob == nil || dob.IsZero() {
		return nil, nil
	}
	if dob.After(today) {
		return nil, fmt.Errorf("%w: date_of_birth %s is in the future", domain.ErrInvalidInput, dob.String())
	}
	age := dateutil.Age(dob.Time, today)
	return &age, nil
}

// ProjectionHorizon returns the number of years after the current one to simulate.
func ProjectionHorizon(age *int, targetAge int) int {
	if age == nil {
		return DefaultHorizonYears
	}
	horizon := targetAge - *age
	if horizon < MinHorizonYears {
		return MinHorizonYears
	}
	if horizon > MaxHorizonYears {
		return MaxHorizonYears
	}
	return horizon
}

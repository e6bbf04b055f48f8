package transform

import (
	"fmt"

	"github.com/rgehrsitz/pensionproj/internal/domain"
	"github.com/rgehrsitz/pensionproj/pkg/money"
	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// AdjustIncome scales the desired retirement income by a percentage, e.g. -10 for a
// 10% cut.
type AdjustIncome struct {
	Percent decimal.Decimal
}

func (ai *AdjustIncome) Name() string {
	return "adjust_income"
}

func (ai *AdjustIncome) Description() string {
	if ai.Percent.IsNegative() {
		return fmt.Sprintf("Reduce desired income by %s%%", ai.Percent.Neg().String())
	}
	return fmt.Sprintf("Increase desired income by %s%%", ai.Percent.String())
}

func (ai *AdjustIncome) Validate(base *domain.ProjectionRequest) error {
	if err := requireData(ai.Name(), base); err != nil {
		return err
	}
	if ai.Percent.LessThan(hundred.Neg()) {
		return NewTransformError(ai.Name(), "validate", fmt.Sprintf("percent must not be below -100, got %s", ai.Percent.String()), nil)
	}
	return nil
}

func (ai *AdjustIncome) Apply(base *domain.ProjectionRequest) (*domain.ProjectionRequest, error) {
	modified := base.DeepCopy()
	factor := decimal.NewFromInt(1).Add(ai.Percent.Div(hundred))
	modified.Data.DesiredIncome = base.Data.DesiredIncome.Mul(factor).Round(2)
	return modified, nil
}

// AdjustContribution changes the monthly contribution by a fixed amount.
type AdjustContribution struct {
	Delta decimal.Decimal
}

func (ac *AdjustContribution) Name() string {
	return "adjust_contribution"
}

func (ac *AdjustContribution) Description() string {
	if ac.Delta.IsNegative() {
		return fmt.Sprintf("Contribute %s less a month", money.Pounds(ac.Delta.Neg()))
	}
	return fmt.Sprintf("Contribute %s more a month", money.Pounds(ac.Delta))
}

func (ac *AdjustContribution) Validate(base *domain.ProjectionRequest) error {
	if err := requireData(ac.Name(), base); err != nil {
		return err
	}
	if base.Data.MonthlyContribution.Add(ac.Delta).IsNegative() {
		return NewTransformError(ac.Name(), "validate",
			fmt.Sprintf("monthly contribution would become negative (%s)", base.Data.MonthlyContribution.Add(ac.Delta).String()), nil)
	}
	return nil
}

func (ac *AdjustContribution) Apply(base *domain.ProjectionRequest) (*domain.ProjectionRequest, error) {
	modified := base.DeepCopy()
	modified.Data.MonthlyContribution = base.Data.MonthlyContribution.Add(ac.Delta)
	if ac.Delta.IsPositive() {
		contributing := true
		modified.Data.StillContributing = &contributing
	}
	return modified, nil
}

// StopContributions stops monthly contributions from today.
type StopContributions struct{}

func (sc *StopContributions) Name() string {
	return "stop_contributions"
}

func (sc *StopContributions) Description() string {
	return "Stop pension contributions now"
}

func (sc *StopContributions) Validate(base *domain.ProjectionRequest) error {
	return requireData(sc.Name(), base)
}

func (sc *StopContributions) Apply(base *domain.ProjectionRequest) (*domain.ProjectionRequest, error) {
	modified := base.DeepCopy()
	contributing := false
	modified.Data.StillContributing = &contributing
	return modified, nil
}

// AddLifeEvent appends a one-off cost or windfall.
type AddLifeEvent struct {
	Event domain.LifeEvent
}

func (ae *AddLifeEvent) Name() string {
	return "add_event"
}

func (ae *AddLifeEvent) Description() string {
	when := ""
	switch {
	case ae.Event.Age != nil:
		when = fmt.Sprintf(" at age %d", *ae.Event.Age)
	case ae.Event.Year != nil:
		when = fmt.Sprintf(" in %d", *ae.Event.Year)
	}
	label := ae.Event.DisplayName()
	if label == "" {
		label = "Life event"
	}
	return fmt.Sprintf("%s costing %s%s", label, money.Pounds(ae.Event.Cost), when)
}

func (ae *AddLifeEvent) Validate(base *domain.ProjectionRequest) error {
	if err := requireData(ae.Name(), base); err != nil {
		return err
	}
	if err := ae.Event.Validate(); err != nil {
		return NewTransformError(ae.Name(), "validate", "invalid event", err)
	}
	name := ae.Event.DisplayName()
	if name == "" {
		return nil
	}
	for _, e := range base.Events {
		if e.DisplayName() == name {
			return NewTransformError(ae.Name(), "validate", fmt.Sprintf("event %q already exists", name), nil)
		}
	}
	return nil
}

func (ae *AddLifeEvent) Apply(base *domain.ProjectionRequest) (*domain.ProjectionRequest, error) {
	modified := base.DeepCopy()
	modified.Events = append(modified.Events, ae.Event)
	return modified, nil
}

// SetDesiredIncome replaces the desired annual retirement income.
type SetDesiredIncome struct {
	Amount decimal.Decimal
}

func (sd *SetDesiredIncome) Name() string {
	return "set_income"
}

func (sd *SetDesiredIncome) Description() string {
	return fmt.Sprintf("Desired income of %s a year", money.Pounds(sd.Amount))
}

func (sd *SetDesiredIncome) Validate(base *domain.ProjectionRequest) error {
	if err := requireData(sd.Name(), base); err != nil {
		return err
	}
	if sd.Amount.IsNegative() {
		return NewTransformError(sd.Name(), "validate", fmt.Sprintf("amount must not be negative, got %s", sd.Amount.String()), nil)
	}
	return nil
}

func (sd *SetDesiredIncome) Apply(base *domain.ProjectionRequest) (*domain.ProjectionRequest, error) {
	modified := base.DeepCopy()
	modified.Data.DesiredIncome = sd.Amount
	return modified, nil
}

// SetContribution replaces the monthly contribution and resumes contributing when it
// is positive.
type SetContribution struct {
	Monthly decimal.Decimal
}

func (sc *SetContribution) Name() string {
	return "set_contribution"
}

func (sc *SetContribution) Description() string {
	return fmt.Sprintf("Contribute %s a month", money.Pounds(sc.Monthly))
}

func (sc *SetContribution) Validate(base *domain.ProjectionRequest) error {
	if err := requireData(sc.Name(), base); err != nil {
		return err
	}
	if sc.Monthly.IsNegative() {
		return NewTransformError(sc.Name(), "validate", fmt.Sprintf("monthly contribution must not be negative, got %s", sc.Monthly.String()), nil)
	}
	return nil
}

func (sc *SetContribution) Apply(base *domain.ProjectionRequest) (*domain.ProjectionRequest, error) {
	modified := base.DeepCopy()
	modified.Data.MonthlyContribution = sc.Monthly
	if sc.Monthly.IsPositive() {
		contributing := true
		modified.Data.StillContributing = &contributing
	}
	return modified, nil
}

package transform

import (
	"fmt"

	"github.com/rgehrsitz/pensionproj/internal/domain"
)

const (
	minRetirementAge = 40
	maxRetirementAge = 85
)

// PostponeRetirement moves the planned retirement age by a number of years. Negative
// values bring retirement forward.
type PostponeRetirement struct {
	Years int
}

func (pr *PostponeRetirement) Name() string {
	return "postpone_retirement"
}

func (pr *PostponeRetirement) Description() string {
	if pr.Years < 0 {
		return fmt.Sprintf("Retire %d year(s) earlier", -pr.Years)
	}
	return fmt.Sprintf("Postpone retirement by %d year(s)", pr.Years)
}

func (pr *PostponeRetirement) Validate(base *domain.ProjectionRequest) error {
	if err := requireData(pr.Name(), base); err != nil {
		return err
	}
	if pr.Years == 0 {
		return NewTransformError(pr.Name(), "validate", "years must not be zero", nil)
	}
	return checkRetirementAge(pr.Name(), base.Data.EffectiveRetirementAge()+pr.Years)
}

func (pr *PostponeRetirement) Apply(base *domain.ProjectionRequest) (*domain.ProjectionRequest, error) {
	modified := base.DeepCopy()
	modified.Data.RetirementAge = base.Data.EffectiveRetirementAge() + pr.Years
	return modified, nil
}

// SetRetirementAge replaces the planned retirement age.
type SetRetirementAge struct {
	Age int
}

func (sr *SetRetirementAge) Name() string {
	return "set_retirement_age"
}

func (sr *SetRetirementAge) Description() string {
	return fmt.Sprintf("Retire at age %d", sr.Age)
}

func (sr *SetRetirementAge) Validate(base *domain.ProjectionRequest) error {
	if err := requireData(sr.Name(), base); err != nil {
		return err
	}
	return checkRetirementAge(sr.Name(), sr.Age)
}

func (sr *SetRetirementAge) Apply(base *domain.ProjectionRequest) (*domain.ProjectionRequest, error) {
	modified := base.DeepCopy()
	modified.Data.RetirementAge = sr.Age
	return modified, nil
}

// SetStatePensionAge changes the age the state pension starts.
type SetStatePensionAge struct {
	Age int
}

func (ss *SetStatePensionAge) Name() string {
	return "set_state_pension_age"
}

func (ss *SetStatePensionAge) Description() string {
	return fmt.Sprintf("State pension starts at age %d", ss.Age)
}

func (ss *SetStatePensionAge) Validate(base *domain.ProjectionRequest) error {
	if err := requireData(ss.Name(), base); err != nil {
		return err
	}
	if ss.Age < 50 || ss.Age > 100 {
		return NewTransformError(ss.Name(), "validate", fmt.Sprintf("state pension age must be between 50 and 100, got %d", ss.Age), nil)
	}
	return nil
}

func (ss *SetStatePensionAge) Apply(base *domain.ProjectionRequest) (*domain.ProjectionRequest, error) {
	modified := base.DeepCopy()
	o := overrides(modified)
	age := ss.Age
	o.StatePensionAge = &age
	modified.Assumptions = &o
	return modified, nil
}

func checkRetirementAge(name string, age int) error {
	if age < minRetirementAge || age > maxRetirementAge {
		return NewTransformError(name, "validate",
			fmt.Sprintf("retirement age must be between %d and %d, got %d", minRetirementAge, maxRetirementAge, age), nil)
	}
	return nil
}

package transform

import (
	"fmt"

	"github.com/rgehrsitz/pensionproj/internal/domain"
)

// ScenarioTransform is a composable what-if change to a projection request.
// Transforms never modify their input; Apply returns a new request.
type ScenarioTransform interface {
	// Apply returns a modified copy of base.
	Apply(base *domain.ProjectionRequest) (*domain.ProjectionRequest, error)

	// Name returns a short identifier such as "postpone_retirement".
	Name() string

	// Description returns a human-readable summary of the change.
	Description() string

	// Validate checks the transform parameters against base without applying them.
	Validate(base *domain.ProjectionRequest) error
}

// ApplyTransforms applies transforms in order, each receiving the output of the
// previous one. The final request is validated as a whole.
func ApplyTransforms(base *domain.ProjectionRequest, transforms []ScenarioTransform) (*domain.ProjectionRequest, error) {
	if base == nil {
		return nil, fmt.Errorf("base scenario cannot be nil")
	}
	if base.Data == nil {
		return nil, fmt.Errorf("base scenario has no data")
	}

	current := base.DeepCopy()
	for i, t := range transforms {
		if t == nil {
			return nil, fmt.Errorf("transform at index %d is nil", i)
		}
		if err := t.Validate(current); err != nil {
			return nil, fmt.Errorf("transform %s validation failed: %w", t.Name(), err)
		}
		next, err := t.Apply(current)
		if err != nil {
			return nil, fmt.Errorf("transform %s failed: %w", t.Name(), err)
		}
		current = next
	}

	if err := current.Validate(); err != nil {
		return nil, fmt.Errorf("transformed scenario is invalid: %w", err)
	}
	return current, nil
}

// TransformError represents an error that occurred during transformation.
type TransformError struct {
	TransformName string
	Operation     string
	Reason        string
	Err           error
}

func (e *TransformError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("transform %s (%s): %s: %v", e.TransformName, e.Operation, e.Reason, e.Err)
	}
	return fmt.Sprintf("transform %s (%s): %s", e.TransformName, e.Operation, e.Reason)
}

func (e *TransformError) Unwrap() error {
	return e.Err
}

// NewTransformError creates a new TransformError
func NewTransformError(name, operation, reason string, err error) *TransformError {
	return &TransformError{
		TransformName: name,
		Operation:     operation,
		Reason:        reason,
		Err:           err,
	}
}

func requireData(name string, base *domain.ProjectionRequest) error {
	if base == nil || base.Data == nil {
		return NewTransformError(name, "validate", "base scenario has no data", nil)
	}
	return nil
}

// overrides returns a copy of the request's assumption overrides, never nil.
func overrides(req *domain.ProjectionRequest) domain.AssumptionOverrides {
	if req.Assumptions == nil {
		return domain.AssumptionOverrides{}
	}
	return *req.Assumptions
}

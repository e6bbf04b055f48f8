package compare

import (
	"context"
	"errors"
	"fmt"

	"github.com/rgehrsitz/pensionproj/internal/calculation"
	"github.com/rgehrsitz/pensionproj/internal/domain"
	"github.com/rgehrsitz/pensionproj/internal/transform"
)

// ErrUnknownAlternative marks a template name or transform spec that cannot be resolved.
var ErrUnknownAlternative = errors.New("unknown alternative")

// IsClientError reports whether err was caused by the comparison request rather than
// the computation.
func IsClientError(err error) bool {
	var te *transform.TransformError
	return errors.Is(err, ErrUnknownAlternative) || errors.Is(err, domain.ErrInvalidInput) || errors.As(err, &te)
}

// CompareEngine projects a base scenario and what-if alternatives derived from it.
type CompareEngine struct {
	CalcEngine        *calculation.Engine
	MetricsCalculator *MetricsCalculator
	TemplateRegistry  *transform.TemplateRegistry
	TransformRegistry *transform.TransformRegistry
}

// NewCompareEngine creates a new comparison engine with the built-in templates.
func NewCompareEngine(calcEngine *calculation.Engine) *CompareEngine {
	if calcEngine == nil {
		calcEngine = calculation.NewEngine()
	}
	return &CompareEngine{
		CalcEngine:        calcEngine,
		MetricsCalculator: NewMetricsCalculator(),
		TemplateRegistry:  transform.CreateBuiltInTemplates(),
		TransformRegistry: transform.NewTransformRegistry(),
	}
}

// CompareOptions selects the alternatives to run.
type CompareOptions struct {
	Templates  []string // built-in template names
	Transforms []string // ad-hoc transform specs, e.g. "set_retirement_age:age=63"
	ConfigPath string
}

// Compare projects base and every requested alternative, in the order given.
func (ce *CompareEngine) Compare(ctx context.Context, base *domain.ProjectionRequest, options CompareOptions) (*ComparisonSet, error) {
	if base == nil || base.Data == nil {
		return nil, fmt.Errorf("base scenario has no data")
	}

	alternatives, err := ce.resolve(options)
	if err != nil {
		return nil, err
	}

	baseName := base.Name
	if baseName == "" {
		baseName = "Base"
	}

	baseResult, err := ce.run(ctx, baseName, base)
	if err != nil {
		return nil, fmt.Errorf("failed to calculate base scenario: %w", err)
	}

	results := make([]ComparisonResult, 0, len(alternatives))
	for _, alt := range alternatives {
		modified, err := transform.ApplyTemplate(base, alt)
		if err != nil {
			return nil, fmt.Errorf("failed to apply %s: %w", alt.Name, err)
		}
		modified.Name = alt.Name

		r, err := ce.run(ctx, alt.Name, modified)
		if err != nil {
			return nil, fmt.Errorf("failed to calculate scenario %s: %w", alt.Name, err)
		}
		r.Description = alt.Description
		results = append(results, ce.MetricsCalculator.CalculateComparison(r, baseResult))
	}

	return &ComparisonSet{
		BaseScenarioName:   baseName,
		BaseResult:         &baseResult,
		AlternativeResults: results,
		ConfigPath:         options.ConfigPath,
	}, nil
}

// resolve turns template names and ad-hoc transform specs into templates. An ad-hoc
// spec becomes a one-transform template named after the spec.
func (ce *CompareEngine) resolve(options CompareOptions) ([]transform.Template, error) {
	alts := make([]transform.Template, 0, len(options.Templates)+len(options.Transforms))
	for _, name := range options.Templates {
		t, ok := ce.TemplateRegistry.Get(name)
		if !ok {
			return nil, fmt.Errorf("%w: template %s not found (available: %v)", ErrUnknownAlternative, name, ce.TemplateRegistry.List())
		}
		alts = append(alts, t)
	}
	for _, spec := range options.Transforms {
		t, err := ce.TransformRegistry.ParseTransformSpec(spec)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrUnknownAlternative, err)
		}
		alts = append(alts, transform.Template{Name: spec, Description: t.Description(), Transforms: []transform.ScenarioTransform{t}})
	}
	return alts, nil
}

func (ce *CompareEngine) run(ctx context.Context, name string, req *domain.ProjectionRequest) (ComparisonResult, error) {
	result, err := ce.CalcEngine.Project(ctx, *req.Data, req.Events, req.Assumptions)
	if err != nil {
		return ComparisonResult{}, err
	}
	return ce.MetricsCalculator.CalculateMetrics(name, req.Data.EffectiveRetirementAge(), result), nil
}

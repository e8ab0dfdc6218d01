// Package pipeline chains transformers and an optional final estimator behind
// a single Fit/Transform/Predict surface.
package pipeline

import (
	"fmt"

	"gonum.org/v1/gonum/mat"

	"github.com/ezoic/regdiag/core/model"
	"github.com/ezoic/regdiag/pkg/errors"
	"github.com/ezoic/regdiag/pkg/log"
)

var globalProvider log.LoggerProvider

// Step represents a single step in the pipeline.
// Each step is a tuple of (name, transformer/estimator).
type Step struct {
	Name      string      // Name of this step (for identification)
	Estimator interface{} // Can be Transformer or Estimator
}

// Pipeline chains multiple transforms and optionally a final estimator.
// Intermediate steps must be transformers (i.e., have a transform method).
// The final step can be a transformer or an estimator.
type Pipeline struct {
	// State management using composition
	state  *model.StateManager
	logger log.Logger

	// Pipeline configuration
	steps []Step // List of (name, transform/estimator) tuples

	// Fitted state
	namedSteps map[string]interface{} // Access steps by name
}

// New creates a new Pipeline with the given steps.
func New(steps ...Step) *Pipeline {
	namedSteps := make(map[string]interface{})
	for _, step := range steps {
		namedSteps[step.Name] = step.Estimator
	}

	pipeline := &Pipeline{
		steps:      steps,
		namedSteps: namedSteps,
	}

	// Initialize state manager and logger
	pipeline.state = model.NewStateManager()
	if globalProvider == nil {
		globalProvider = log.NewZerologProvider(log.ToLogLevel("info"))
	}
	pipeline.logger = globalProvider.GetLoggerWithName("Pipeline")

	return pipeline
}

// Make is a convenience constructor that generates names for the steps.
func Make(estimators ...interface{}) *Pipeline {
	steps := make([]Step, len(estimators))
	for i, estimator := range estimators {
		name := fmt.Sprintf("step%d", i+1)
		steps[i] = Step{Name: name, Estimator: estimator}
	}
	return New(steps...)
}

// Fit trains the pipeline.
// Fit all the transformers one after the other and transform the
// data, then fit the final estimator.
func (p *Pipeline) Fit(X, y mat.Matrix) error {
	Xt := X
	var err error

	// Fit and transform all steps except the last
	for i := 0; i < len(p.steps)-1; i++ {
		step := p.steps[i]

		transformer, ok := step.Estimator.(model.Transformer)
		if !ok {
			return errors.NewValidationError(
				"pipeline step",
				"all intermediate steps must be transformers",
				step.Name,
			)
		}

		if err = transformer.Fit(Xt); err != nil {
			return errors.Wrap(err, fmt.Sprintf("failed to fit step '%s'", step.Name))
		}

		Xt, err = transformer.Transform(Xt)
		if err != nil {
			return errors.Wrap(err, fmt.Sprintf("failed to transform at step '%s'", step.Name))
		}
	}

	// Fit the final estimator
	if len(p.steps) > 0 {
		finalStep := p.steps[len(p.steps)-1]

		// The final step can be either transformer or estimator
		if fitter, ok := finalStep.Estimator.(model.Fitter); ok {
			if err = fitter.Fit(Xt, y); err != nil {
				return errors.Wrap(err, fmt.Sprintf("failed to fit final step '%s'", finalStep.Name))
			}
		} else if transformer, ok := finalStep.Estimator.(model.Transformer); ok {
			if err = transformer.Fit(Xt); err != nil {
				return errors.Wrap(err, fmt.Sprintf("failed to fit final step '%s'", finalStep.Name))
			}
		} else {
			return errors.NewValidationError(
				"pipeline final step",
				"final step must have Fit method",
				finalStep.Name,
			)
		}
	}

	p.state.SetFitted()
	p.logger.Debug("Pipeline fit completed", "steps", len(p.steps))
	return nil
}

// Predict applies transforms to the data, and predict with the final estimator.
func (p *Pipeline) Predict(X mat.Matrix) (mat.Matrix, error) {
	if err := p.state.RequireFitted("Pipeline", "Predict"); err != nil {
		return nil, err
	}

	Xt, err := p.transform(X)
	if err != nil {
		return nil, err
	}

	if len(p.steps) > 0 {
		finalStep := p.steps[len(p.steps)-1]

		if predictor, ok := finalStep.Estimator.(model.Predictor); ok {
			return predictor.Predict(Xt)
		}

		return nil, errors.NewValidationError(
			"pipeline final step",
			"final step must have Predict method for prediction",
			finalStep.Name,
		)
	}

	return Xt, nil
}

// Transform applies transforms to the data.
// Only valid if every step, including the last, is a transformer.
func (p *Pipeline) Transform(X mat.Matrix) (mat.Matrix, error) {
	if err := p.state.RequireFitted("Pipeline", "Transform"); err != nil {
		return nil, err
	}

	Xt := X
	var err error

	for _, step := range p.steps {
		transformer, ok := step.Estimator.(model.Transformer)
		if !ok {
			return nil, errors.NewValidationError(
				"pipeline step",
				"all steps must be transformers for Transform",
				step.Name,
			)
		}

		Xt, err = transformer.Transform(Xt)
		if err != nil {
			return nil, errors.Wrap(err, fmt.Sprintf("failed to transform at step '%s'", step.Name))
		}
	}

	return Xt, nil
}

// FitTransform fits the pipeline and transforms the data.
// Equivalent to calling Fit followed by Transform on a transformer-only chain.
func (p *Pipeline) FitTransform(X, y mat.Matrix) (mat.Matrix, error) {
	Xt := X
	var err error

	for _, step := range p.steps {
		transformer, ok := step.Estimator.(model.Transformer)
		if !ok {
			return nil, errors.NewValidationError(
				"pipeline step",
				"all steps must be transformers for FitTransform",
				step.Name,
			)
		}

		if err = transformer.Fit(Xt); err != nil {
			return nil, errors.Wrap(err, fmt.Sprintf("failed to fit step '%s'", step.Name))
		}

		Xt, err = transformer.Transform(Xt)
		if err != nil {
			return nil, errors.Wrap(err, fmt.Sprintf("failed to transform at step '%s'", step.Name))
		}
	}

	p.state.SetFitted()
	return Xt, nil
}

// Score returns the score of the final estimator.
func (p *Pipeline) Score(X, y mat.Matrix) (float64, error) {
	if err := p.state.RequireFitted("Pipeline", "Score"); err != nil {
		return 0, err
	}

	Xt, err := p.transform(X)
	if err != nil {
		return 0, err
	}

	if len(p.steps) > 0 {
		finalStep := p.steps[len(p.steps)-1]

		if scorer, ok := finalStep.Estimator.(model.Scorer); ok {
			return scorer.Score(Xt, y)
		}

		return 0, errors.NewValidationError(
			"pipeline final step",
			"final step must have Score method",
			finalStep.Name,
		)
	}

	return 0, errors.New("pipeline has no steps")
}

// GetParams returns the parameters of the pipeline, including parameters
// of each step prefixed with the step name.
func (p *Pipeline) GetParams() map[string]interface{} {
	params := make(map[string]interface{})
	params["steps"] = p.steps

	for _, step := range p.steps {
		if paramsGetter, ok := step.Estimator.(interface {
			GetParams() map[string]interface{}
		}); ok {
			stepParams := paramsGetter.GetParams()
			for key, value := range stepParams {
				params[fmt.Sprintf("%s__%s", step.Name, key)] = value
			}
		}
	}

	return params
}

// NamedSteps returns the steps as a map for easy access by name.
func (p *Pipeline) NamedSteps() map[string]interface{} {
	return p.namedSteps
}

// Steps returns the list of steps.
func (p *Pipeline) Steps() []Step {
	steps := make([]Step, len(p.steps))
	copy(steps, p.steps)
	return steps
}

// transform applies all transforms except the final estimator.
func (p *Pipeline) transform(X mat.Matrix) (mat.Matrix, error) {
	Xt := X
	var err error

	for i := 0; i < len(p.steps)-1; i++ {
		step := p.steps[i]
		transformer, ok := step.Estimator.(model.Transformer)
		if !ok {
			return nil, errors.NewValidationError(
				"pipeline step",
				"intermediate steps must be transformers",
				step.Name,
			)
		}

		Xt, err = transformer.Transform(Xt)
		if err != nil {
			return nil, errors.Wrap(err, fmt.Sprintf("failed to transform at step '%s'", step.Name))
		}
	}

	return Xt, nil
}

// InverseTransform applies inverse transformations in reverse order.
// Only works if all steps are transformers with InverseTransform method.
func (p *Pipeline) InverseTransform(X mat.Matrix) (mat.Matrix, error) {
	if err := p.state.RequireFitted("Pipeline", "InverseTransform"); err != nil {
		return nil, err
	}

	Xt := X
	var err error

	for i := len(p.steps) - 1; i >= 0; i-- {
		step := p.steps[i]

		inverseTransformer, ok := step.Estimator.(interface {
			InverseTransform(mat.Matrix) (mat.Matrix, error)
		})
		if !ok {
			return nil, errors.NewValidationError(
				"pipeline step",
				"all steps must have InverseTransform method",
				step.Name,
			)
		}

		Xt, err = inverseTransformer.InverseTransform(Xt)
		if err != nil {
			return nil, errors.Wrap(err, fmt.Sprintf("failed to inverse transform at step '%s'", step.Name))
		}
	}

	return Xt, nil
}

package model

import "gonum.org/v1/gonum/mat"

// Transformer is a fitted column transformation over numeric matrices.
// Intermediate pipeline steps must satisfy it.
type Transformer interface {
	// Fit learns the transformation parameters from X.
	Fit(X mat.Matrix) error

	// Transform applies the fitted transformation to X.
	Transform(X mat.Matrix) (mat.Matrix, error)

	// FitTransform is Fit followed by Transform on the same data.
	FitTransform(X mat.Matrix) (mat.Matrix, error)
}

// Fitter is a supervised estimator trained from a design matrix and target.
type Fitter interface {
	Fit(X, y mat.Matrix) error
}

// Predictor produces predictions from a fitted estimator.
type Predictor interface {
	Predict(X mat.Matrix) (mat.Matrix, error)
}

// Scorer evaluates a fitted estimator against targets, returning the
// coefficient of determination for regressors.
type Scorer interface {
	Score(X, y mat.Matrix) (float64, error)
}

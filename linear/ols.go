// Package linear provides least-squares regression models.
//
// The central type is OLS, an ordinary least squares fitter solved by
// singular value decomposition:
//
//   - No intercept column is added: the model is y = X·β exactly as given.
//     Callers that want an intercept must append a constant column themselves.
//   - The SVD exposes the design's conditioning: the fitted model records its
//     singular values and condition number for downstream diagnostics.
//   - Residuals and fitted values from training are retained on the model.
//
// Example usage:
//
//	ols := linear.NewOLS()
//	err := ols.Fit(X, y) // X: features, y: target values
//	if err != nil {
//		log.Fatal(err)
//	}
//	predictions, err := ols.Predict(XTest)
//
// The design choice to never add a constant term is deliberate: downstream
// diagnostic tests report the consequences (large condition numbers, tests
// that require an intercept failing) rather than papering over them.
package linear

import (
	"math"
	"time"

	"gonum.org/v1/gonum/mat"

	"github.com/ezoic/regdiag/core/model"
	"github.com/ezoic/regdiag/metrics"
	"github.com/ezoic/regdiag/pkg/errors"
	"github.com/ezoic/regdiag/pkg/log"
)

// OLS is an ordinary least squares regression model without an intercept.
type OLS struct {
	State        *model.StateManager // State manager (composition instead of embedding) - Public for gob encoding
	Coefficients *mat.VecDense       // Model coefficients (β)
	NFeatures    int                 // Number of features
	logger       log.Logger          // Logger instance

	fittedValues    *mat.VecDense
	residuals       *mat.VecDense
	singularValues  []float64
	conditionNumber float64
}

// NewOLS creates a new untrained ordinary least squares model.
//
// The model solves X·β = y by thin SVD without adding an intercept column,
// and must be trained with Fit before making predictions.
//
// Returns:
//   - *OLS: A new untrained model
//
// Example:
//
//	ols := linear.NewOLS()
//	err := ols.Fit(X, y)
//	predictions, err := ols.Predict(X_test)
func NewOLS() *OLS {
	o := &OLS{
		State: model.NewStateManager(),
	}

	// Set up logger with model context
	o.logger = log.GetLoggerWithName("linear").With(
		log.ModelNameKey, "OLS",
		log.ComponentKey, "linear",
	)

	return o
}

// Fit trains the model by solving the least squares problem X·β = y.
//
// The solve uses a thin singular value decomposition. No intercept column is
// added. After a successful fit the model retains its coefficients, the
// training fitted values and residuals, the design's singular values, and the
// condition number σ_max/σ_min.
//
// Parameters:
//   - X: Feature matrix of shape (n_samples, n_features)
//   - y: Target vector of shape (n_samples, 1)
//
// Returns:
//   - error: nil if training succeeds, otherwise an error describing the failure
//
// Errors:
//   - ErrEmptyData: if X or y are empty
//   - DimensionError: if the number of samples in X and y don't match
//   - ValueError: if y is not a column vector
//   - ErrSingularMatrix: if X is rank deficient to machine precision
//
// Example:
//
//	X := mat.NewDense(100, 5, nil) // 100 samples, 5 features
//	y := mat.NewVecDense(100, nil) // 100 target values
//	err := ols.Fit(X, y)
//	if err != nil {
//	    log.Fatal(err)
//	}
func (o *OLS) Fit(X, y mat.Matrix) (err error) {
	defer errors.Recover(&err, "OLS.Fit")

	startTime := time.Now()
	r, c := X.Dims()
	ry, cy := y.Dims()

	if o.logger != nil {
		o.logger.Info("Training started",
			log.OperationKey, log.OperationFit,
			log.PhaseKey, log.PhaseTraining,
			log.SamplesKey, r,
			log.FeaturesKey, c,
		)
	}

	if r == 0 || c == 0 {
		return errors.NewModelError("OLS.Fit", "empty data", errors.ErrEmptyData)
	}

	if ry != r {
		return errors.NewDimensionError("OLS.Fit", r, ry, 0)
	}

	if cy != 1 {
		return errors.NewValueError("OLS.Fit", "y must be a column vector")
	}

	o.NFeatures = c

	var svd mat.SVD
	if ok := svd.Factorize(X, mat.SVDThin); !ok {
		return errors.NewModelError("OLS.Fit", "SVD factorization failed", errors.ErrSingularMatrix)
	}

	sv := svd.Values(nil)

	// Effective rank: singular values below max(r, c)·eps·σ_max count as zero.
	tol := float64(max(r, c)) * machineEpsilon * sv[0]
	rank := 0
	for _, s := range sv {
		if s > tol {
			rank++
		}
	}
	if rank < c {
		return errors.NewModelError("OLS.Fit", "design matrix is rank deficient", errors.ErrSingularMatrix)
	}

	// Condition number of the design: σ_max / σ_min.
	o.singularValues = sv
	o.conditionNumber = sv[0] / sv[len(sv)-1]

	yVec := mat.NewVecDense(r, nil)
	for i := 0; i < r; i++ {
		yVec.SetVec(i, y.At(i, 0))
	}

	var beta mat.Dense
	svd.SolveTo(&beta, yVec, rank)

	o.Coefficients = mat.NewVecDense(c, nil)
	for j := 0; j < c; j++ {
		o.Coefficients.SetVec(j, beta.At(j, 0))
	}

	// Training fitted values and residuals: ŷ = X·β, e = y - ŷ.
	o.fittedValues = mat.NewVecDense(r, nil)
	o.fittedValues.MulVec(X, o.Coefficients)

	o.residuals = mat.NewVecDense(r, nil)
	o.residuals.SubVec(yVec, o.fittedValues)

	o.State.SetFitted()
	o.State.SetDimensions(o.NFeatures, r)

	duration := time.Since(startTime)
	if o.logger != nil {
		o.logger.Info("Training completed",
			log.OperationKey, log.OperationFit,
			log.PhaseKey, log.PhaseTraining,
			log.DurationMsKey, duration.Milliseconds(),
			log.SamplesKey, r,
			log.FeaturesKey, c,
			log.CondKey, o.conditionNumber,
		)
	}

	return nil
}

// Predict generates predictions for the input feature matrix.
//
// Predictions are computed as y_pred = X·β with no intercept term. The model
// must be fitted before calling this method.
//
// Parameters:
//   - X: Feature matrix of shape (n_samples, n_features) for prediction
//
// Returns:
//   - mat.Matrix: Prediction matrix of shape (n_samples, 1)
//   - error: nil if prediction succeeds, otherwise an error describing the failure
//
// Errors:
//   - NotFittedError: if the model hasn't been trained yet
//   - DimensionError: if X has a different number of features than training data
func (o *OLS) Predict(X mat.Matrix) (_ mat.Matrix, err error) {
	defer errors.Recover(&err, "OLS.Predict")
	if err := o.State.RequireFitted("OLS", "Predict"); err != nil {
		return nil, err
	}

	r, c := X.Dims()
	if c != o.NFeatures {
		return nil, errors.NewDimensionError("OLS.Predict", o.NFeatures, c, 1)
	}

	if o.logger != nil {
		o.logger.Debug("Prediction started",
			log.OperationKey, log.OperationPredict,
			log.PhaseKey, log.PhaseInference,
			log.SamplesKey, r,
			log.FeaturesKey, c,
		)
	}

	predictions := mat.NewDense(r, 1, nil)
	for i := 0; i < r; i++ {
		pred := 0.0
		for j := 0; j < c; j++ {
			pred += X.At(i, j) * o.Coefficients.AtVec(j)
		}
		predictions.Set(i, 0, pred)
	}

	if o.logger != nil {
		o.logger.Debug("Prediction completed",
			log.OperationKey, log.OperationPredict,
			log.PredsKey, r,
		)
	}

	return predictions, nil
}

// GetCoefficients returns the fitted coefficients as a slice, nil before fit.
func (o *OLS) GetCoefficients() []float64 {
	if o.Coefficients == nil {
		return nil
	}

	coef := make([]float64, o.Coefficients.Len())
	for i := 0; i < o.Coefficients.Len(); i++ {
		coef[i] = o.Coefficients.AtVec(i)
	}
	return coef
}

// FittedValues returns the training predictions ŷ = X·β.
func (o *OLS) FittedValues() (*mat.VecDense, error) {
	if err := o.State.RequireFitted("OLS", "FittedValues"); err != nil {
		return nil, err
	}
	return o.fittedValues, nil
}

// Residuals returns the training residuals y - ŷ.
func (o *OLS) Residuals() (*mat.VecDense, error) {
	if err := o.State.RequireFitted("OLS", "Residuals"); err != nil {
		return nil, err
	}
	return o.residuals, nil
}

// SingularValues returns the design matrix's singular values in descending
// order.
func (o *OLS) SingularValues() ([]float64, error) {
	if err := o.State.RequireFitted("OLS", "SingularValues"); err != nil {
		return nil, err
	}
	return o.singularValues, nil
}

// ConditionNumber returns σ_max/σ_min of the training design matrix. A very
// large value signals multicollinearity among the features.
func (o *OLS) ConditionNumber() (float64, error) {
	if err := o.State.RequireFitted("OLS", "ConditionNumber"); err != nil {
		return 0, err
	}
	return o.conditionNumber, nil
}

// Score calculates the coefficient of determination (R²) on the given data.
func (o *OLS) Score(X, y mat.Matrix) (_ float64, err error) {
	defer errors.Recover(&err, "OLS.Score")
	if err := o.State.RequireFitted("OLS", "Score"); err != nil {
		return 0, err
	}

	yPred, err := o.Predict(X)
	if err != nil {
		return 0, err
	}

	r, _ := y.Dims()
	yTrueVec := mat.NewVecDense(r, nil)
	yPredVec := mat.NewVecDense(r, nil)
	for i := 0; i < r; i++ {
		yTrueVec.SetVec(i, y.At(i, 0))
		yPredVec.SetVec(i, yPred.At(i, 0))
	}

	return metrics.R2Score(yTrueVec, yPredVec)
}

// machineEpsilon is the double-precision unit roundoff used in the effective
// rank tolerance.
var machineEpsilon = math.Nextafter(1, 2) - 1

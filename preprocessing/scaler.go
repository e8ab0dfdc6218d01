// Package preprocessing provides fitted column transformers for tabular data.
//
// The package implements the three transformers the housing cleaning recipe
// relies on:
//
//   - MedianImputer: replaces missing (NaN) entries with the per-column median
//   - MinMaxScaler: rescales each feature into a fixed range, [0, 1] by default
//   - OneHotEncoder: expands categorical string columns into k-1 indicator columns
//
// All transformers follow the Fit/Transform/FitTransform pattern: Fit learns
// parameters from training data, Transform applies them, and the fitted state
// is tracked so Transform before Fit fails with a NotFittedError.
//
// Example usage:
//
//	scaler := preprocessing.NewMinMaxScalerDefault()
//	scaled, err := scaler.FitTransform(X)
//	if err != nil {
//		log.Fatal(err)
//	}
//
// Transformers do not clip: values outside the fitted range transform to
// values outside the target range. This matters when a transformer fitted on
// training data is applied to unseen rows.
package preprocessing

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"

	"github.com/ezoic/regdiag/core/model"
	"github.com/ezoic/regdiag/pkg/errors"
)

// MinMaxScaler rescales each feature to a target range, default [0, 1].
//
// The transformation for feature j is
//
//	scaled = (x - dataMin[j]) / (dataMax[j] - dataMin[j])
//
// stretched into the configured FeatureRange. Constant features (zero range)
// use a scale of 1 so every value maps to the range minimum.
type MinMaxScaler struct {
	State *model.StateManager // State manager (composition instead of embedding) - Public for gob encoding

	// DataMin holds the per-feature minimum observed at fit time.
	DataMin []float64

	// DataMax holds the per-feature maximum observed at fit time.
	DataMax []float64

	// Scale holds the per-feature data range (DataMax - DataMin), with
	// constant features pinned to 1.
	Scale []float64

	// NFeatures is the number of features seen at fit time.
	NFeatures int

	// FeatureRange is the target range [min, max] of the transformed data.
	FeatureRange [2]float64
}

// NewMinMaxScaler creates a new MinMaxScaler for feature scaling.
//
// MinMaxScaler transforms features by scaling each feature to a given range.
// The transformation is given by: X_scaled = (X - X.min) / (X.max - X.min) * (max - min) + min
//
// Parameters:
//   - featureRange: Target range for scaling [min, max] (typically [0, 1] or [-1, 1])
//
// Returns:
//   - *MinMaxScaler: A new MinMaxScaler instance ready for fitting
//
// Example:
//
//	// Scale to [0, 1] range
//	scaler := preprocessing.NewMinMaxScaler([2]float64{0.0, 1.0})
//	err := scaler.Fit(trainingData)
//	scaledData, err := scaler.Transform(testData)
func NewMinMaxScaler(featureRange [2]float64) *MinMaxScaler {
	return &MinMaxScaler{
		State:        model.NewStateManager(),
		FeatureRange: featureRange,
	}
}

// NewMinMaxScalerDefault creates a MinMaxScaler with the default [0, 1] range.
func NewMinMaxScalerDefault() *MinMaxScaler {
	return NewMinMaxScaler([2]float64{0.0, 1.0})
}

// Fit computes the minimum and maximum values for each feature from training data.
//
// This method calculates the feature-wise minimum and maximum values that will
// be used for scaling transformations. The scaler must be fitted before calling
// Transform or InverseTransform.
//
// Parameters:
//   - X: Training data matrix of shape (n_samples, n_features)
//
// Returns:
//   - error: nil if successful, otherwise an error describing the failure
//
// Errors:
//   - ErrEmptyData: if X is empty
//
// Example:
//
//	scaler := preprocessing.NewMinMaxScalerDefault()
//	err := scaler.Fit(trainingData)
//	if err != nil {
//	    log.Fatal(err)
//	}
func (m *MinMaxScaler) Fit(X mat.Matrix) (err error) {
	defer errors.Recover(&err, "MinMaxScaler.Fit")
	r, c := X.Dims()
	if r == 0 || c == 0 {
		return errors.NewModelError("MinMaxScaler.Fit", "empty data", errors.ErrEmptyData)
	}

	m.NFeatures = c
	m.DataMin = make([]float64, c)
	m.DataMax = make([]float64, c)
	m.Scale = make([]float64, c)

	for j := 0; j < c; j++ {
		min := X.At(0, j)
		max := X.At(0, j)

		for i := 1; i < r; i++ {
			val := X.At(i, j)
			if val < min {
				min = val
			}
			if val > max {
				max = val
			}
		}

		m.DataMin[j] = min
		m.DataMax[j] = max

		dataRange := max - min
		if math.Abs(dataRange) < 1e-8 {
			// Constant feature: use scale 1 to avoid division by zero.
			m.Scale[j] = 1.0
		} else {
			m.Scale[j] = dataRange
		}
	}

	m.State.SetFitted()
	m.State.SetDimensions(c, r)
	return nil
}

// Transform scales input data to the fitted feature range.
//
// Each feature is independently rescaled using the minimum and maximum values
// computed during Fit. Values outside the fitted range are not clipped and
// will land outside the target range.
//
// Parameters:
//   - X: Input data matrix of shape (n_samples, n_features)
//
// Returns:
//   - mat.Matrix: Scaled data matrix
//   - error: nil if successful, otherwise an error describing the failure
//
// Errors:
//   - NotFittedError: if the scaler hasn't been fitted yet
//   - DimensionError: if X doesn't match the number of features from training
func (m *MinMaxScaler) Transform(X mat.Matrix) (_ mat.Matrix, err error) {
	defer errors.Recover(&err, "MinMaxScaler.Transform")
	if err := m.State.RequireFitted("MinMaxScaler", "Transform"); err != nil {
		return nil, err
	}

	r, c := X.Dims()
	if c != m.NFeatures {
		return nil, errors.NewDimensionError("MinMaxScaler.Transform", m.NFeatures, c, 1)
	}

	result := mat.NewDense(r, c, nil)

	featureRange := m.FeatureRange[1] - m.FeatureRange[0]
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			val := X.At(i, j)
			// X_scaled = X_std * (max - min) + min
			// where X_std = (X - X.min) / (X.max - X.min)
			scaled := (val-m.DataMin[j])/m.Scale[j]*featureRange + m.FeatureRange[0]
			result.Set(i, j, scaled)
		}
	}

	return result, nil
}

// FitTransform fits the scaler and transforms the training data in one step.
//
// Equivalent to calling Fit(X) followed by Transform(X).
func (m *MinMaxScaler) FitTransform(X mat.Matrix) (_ mat.Matrix, err error) {
	defer errors.Recover(&err, "MinMaxScaler.FitTransform")
	if err := m.Fit(X); err != nil {
		return nil, err
	}
	return m.Transform(X)
}

// InverseTransform reverses the min-max scaling transformation.
//
// This method transforms scaled data back to the original range using the
// fitted statistics. Useful for interpreting results or recovering original
// data values.
//
// Parameters:
//   - X: Scaled data matrix of shape (n_samples, n_features)
//
// Returns:
//   - mat.Matrix: Data matrix in original scale and range
//   - error: nil if successful, otherwise an error describing the failure
//
// Errors:
//   - NotFittedError: if the scaler hasn't been fitted yet
//   - DimensionError: if X doesn't match the number of features from training
func (m *MinMaxScaler) InverseTransform(X mat.Matrix) (_ mat.Matrix, err error) {
	defer errors.Recover(&err, "MinMaxScaler.InverseTransform")
	if err := m.State.RequireFitted("MinMaxScaler", "InverseTransform"); err != nil {
		return nil, err
	}

	r, c := X.Dims()
	if c != m.NFeatures {
		return nil, errors.NewDimensionError("MinMaxScaler.InverseTransform", m.NFeatures, c, 1)
	}

	result := mat.NewDense(r, c, nil)

	featureRange := m.FeatureRange[1] - m.FeatureRange[0]
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			val := X.At(i, j)
			original := ((val-m.FeatureRange[0])/featureRange)*m.Scale[j] + m.DataMin[j]
			result.Set(i, j, original)
		}
	}

	return result, nil
}

// GetParams returns the scaler's configuration parameters.
func (m *MinMaxScaler) GetParams() map[string]interface{} {
	return map[string]interface{}{
		"feature_range": m.FeatureRange,
	}
}

// String returns a readable representation of the scaler.
func (m *MinMaxScaler) String() string {
	if !m.State.IsFitted() {
		return fmt.Sprintf("MinMaxScaler(feature_range=[%.1f, %.1f])",
			m.FeatureRange[0], m.FeatureRange[1])
	}
	return fmt.Sprintf("MinMaxScaler(feature_range=[%.1f, %.1f], n_features=%d)",
		m.FeatureRange[0], m.FeatureRange[1], m.NFeatures)
}

package preprocessing

import (
	"fmt"
	"math"

	"github.com/montanaflynn/stats"
	"gonum.org/v1/gonum/mat"

	"github.com/ezoic/regdiag/core/model"
	"github.com/ezoic/regdiag/pkg/errors"
)

// MedianImputer fills missing (NaN) entries with the per-column median
// computed at fit time.
//
// Missing values are represented as NaN in the input matrix. Fit computes the
// median of the observed (non-NaN) entries of each column; Transform replaces
// every NaN with the fitted median for its column. Observed values pass
// through unchanged.
type MedianImputer struct {
	State *model.StateManager // State manager (composition instead of embedding) - Public for gob encoding

	// Statistics holds the fitted per-column medians.
	Statistics []float64

	// NFeatures is the number of features seen at fit time.
	NFeatures int
}

// NewMedianImputer creates an unfitted MedianImputer.
func NewMedianImputer() *MedianImputer {
	return &MedianImputer{
		State: model.NewStateManager(),
	}
}

// Fit computes the median of the observed values in each column.
//
// Parameters:
//   - X: Training data matrix of shape (n_samples, n_features), with NaN
//     marking missing entries
//
// Returns:
//   - error: nil if successful, otherwise an error describing the failure
//
// Errors:
//   - ErrEmptyData: if X is empty
//   - ValueError: if a column contains no observed values at all
func (m *MedianImputer) Fit(X mat.Matrix) (err error) {
	defer errors.Recover(&err, "MedianImputer.Fit")
	r, c := X.Dims()
	if r == 0 || c == 0 {
		return errors.NewModelError("MedianImputer.Fit", "empty data", errors.ErrEmptyData)
	}

	m.NFeatures = c
	m.Statistics = make([]float64, c)

	for j := 0; j < c; j++ {
		observed := make([]float64, 0, r)
		for i := 0; i < r; i++ {
			if val := X.At(i, j); !math.IsNaN(val) {
				observed = append(observed, val)
			}
		}

		if len(observed) == 0 {
			return errors.NewValueError("MedianImputer.Fit",
				fmt.Sprintf("column %d has no observed values to impute from", j))
		}

		median, err := stats.Median(observed)
		if err != nil {
			return errors.NewModelError("MedianImputer.Fit",
				fmt.Sprintf("median of column %d", j), err)
		}
		m.Statistics[j] = median
	}

	m.State.SetFitted()
	m.State.SetDimensions(c, r)
	return nil
}

// Transform replaces NaN entries with the fitted per-column medians.
//
// Errors:
//   - NotFittedError: if the imputer hasn't been fitted yet
//   - DimensionError: if X doesn't match the number of features from training
func (m *MedianImputer) Transform(X mat.Matrix) (_ mat.Matrix, err error) {
	defer errors.Recover(&err, "MedianImputer.Transform")
	if err := m.State.RequireFitted("MedianImputer", "Transform"); err != nil {
		return nil, err
	}

	r, c := X.Dims()
	if c != m.NFeatures {
		return nil, errors.NewDimensionError("MedianImputer.Transform", m.NFeatures, c, 1)
	}

	result := mat.NewDense(r, c, nil)
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			val := X.At(i, j)
			if math.IsNaN(val) {
				val = m.Statistics[j]
			}
			result.Set(i, j, val)
		}
	}

	return result, nil
}

// FitTransform fits the imputer and transforms the training data in one step.
func (m *MedianImputer) FitTransform(X mat.Matrix) (_ mat.Matrix, err error) {
	defer errors.Recover(&err, "MedianImputer.FitTransform")
	if err := m.Fit(X); err != nil {
		return nil, err
	}
	return m.Transform(X)
}

// String returns a readable representation of the imputer.
func (m *MedianImputer) String() string {
	if !m.State.IsFitted() {
		return "MedianImputer()"
	}
	return fmt.Sprintf("MedianImputer(n_features=%d)", m.NFeatures)
}

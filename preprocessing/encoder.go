package preprocessing

import (
	"fmt"
	"sort"

	"gonum.org/v1/gonum/mat"

	"github.com/ezoic/regdiag/core/model"
	"github.com/ezoic/regdiag/pkg/errors"
)

// OneHotEncoder expands categorical string columns into binary indicator
// columns, dropping the first category of each variable.
//
// For a variable with k distinct categories the encoder emits k-1 columns:
// the first category in sorted order is the reference level and is encoded as
// all zeros. A value unseen at fit time also encodes as all zeros rather than
// erroring, so a transformed row never carries more than one 1 per variable.
type OneHotEncoder struct {
	State *model.StateManager // State manager (composition instead of embedding) - Public for gob encoding

	// Categories holds the sorted category vocabulary per input column,
	// including the dropped reference level at index 0.
	Categories [][]string

	// CategoryToIdx maps category value to its index in Categories per column.
	CategoryToIdx []map[string]int

	// NFeatures is the number of input columns seen at fit time.
	NFeatures int

	// NOutputs is the number of emitted indicator columns (sum of k-1).
	NOutputs int
}

// NewOneHotEncoder creates an unfitted OneHotEncoder.
//
// Example:
//
//	encoder := preprocessing.NewOneHotEncoder()
//	err := encoder.Fit(data)
//	encoded, err := encoder.Transform(data)
func NewOneHotEncoder() *OneHotEncoder {
	return &OneHotEncoder{
		State: model.NewStateManager(),
	}
}

// Fit collects the sorted category vocabulary of each input column.
//
// Parameters:
//   - data: training data as n_samples rows of n_features string values
//
// Errors:
//   - ErrEmptyData: if data has no rows or no columns
//   - DimensionError: if rows have inconsistent lengths
func (e *OneHotEncoder) Fit(data [][]string) (err error) {
	defer errors.Recover(&err, "OneHotEncoder.Fit")
	if len(data) == 0 {
		return errors.NewModelError("OneHotEncoder.Fit", "empty data", errors.ErrEmptyData)
	}

	if len(data[0]) == 0 {
		return errors.NewModelError("OneHotEncoder.Fit", "empty features", errors.ErrEmptyData)
	}

	nSamples := len(data)
	nFeatures := len(data[0])

	for i, row := range data {
		if len(row) != nFeatures {
			return errors.NewDimensionError("OneHotEncoder.Fit", nFeatures, len(row), i)
		}
	}

	e.NFeatures = nFeatures
	e.Categories = make([][]string, nFeatures)
	e.CategoryToIdx = make([]map[string]int, nFeatures)

	for j := 0; j < nFeatures; j++ {
		categorySet := make(map[string]bool)
		for i := 0; i < nSamples; i++ {
			categorySet[data[i][j]] = true
		}

		categories := make([]string, 0, len(categorySet))
		for category := range categorySet {
			categories = append(categories, category)
		}
		sort.Strings(categories)

		e.Categories[j] = categories

		categoryToIdx := make(map[string]int)
		for idx, category := range categories {
			categoryToIdx[category] = idx
		}
		e.CategoryToIdx[j] = categoryToIdx
	}

	// Each variable contributes k-1 output columns; the reference level
	// (sorted index 0) is dropped.
	e.NOutputs = 0
	for _, categories := range e.Categories {
		e.NOutputs += len(categories) - 1
	}

	e.State.SetFitted()
	e.State.SetDimensions(nFeatures, nSamples)
	return nil
}

// Transform encodes data using the fitted vocabularies.
//
// The reference level of each variable and any value unseen at fit time both
// encode as all zeros across the variable's indicator block.
//
// Errors:
//   - NotFittedError: if the encoder hasn't been fitted yet
//   - DimensionError: if data doesn't match the number of columns from training
func (e *OneHotEncoder) Transform(data [][]string) (_ mat.Matrix, err error) {
	defer errors.Recover(&err, "OneHotEncoder.Transform")
	if err := e.State.RequireFitted("OneHotEncoder", "Transform"); err != nil {
		return nil, err
	}

	if len(data) == 0 {
		return mat.NewDense(0, e.NOutputs, nil), nil
	}

	nSamples := len(data)
	nFeatures := len(data[0])

	if nFeatures != e.NFeatures {
		return nil, errors.NewDimensionError("OneHotEncoder.Transform", e.NFeatures, nFeatures, 1)
	}

	result := mat.NewDense(nSamples, e.NOutputs, nil)

	for i := 0; i < nSamples; i++ {
		outputIdx := 0

		for j := 0; j < nFeatures; j++ {
			category := data[i][j]

			// Sorted index 0 is the dropped reference level; unknown
			// categories leave the block at zero.
			if idx, exists := e.CategoryToIdx[j][category]; exists && idx > 0 {
				result.Set(i, outputIdx+idx-1, 1.0)
			}

			outputIdx += len(e.Categories[j]) - 1
		}
	}

	return result, nil
}

// FitTransform fits the encoder and encodes the training data in one step.
func (e *OneHotEncoder) FitTransform(data [][]string) (_ mat.Matrix, err error) {
	defer errors.Recover(&err, "OneHotEncoder.FitTransform")
	if err := e.Fit(data); err != nil {
		return nil, err
	}
	return e.Transform(data)
}

// GetFeatureNamesOut returns the names of the emitted indicator columns.
//
// Names have the form "<input>_<category>", listed in block order and skipping
// each variable's dropped reference level. When inputFeatures is nil the
// inputs are named "x0", "x1", and so on.
//
// Example:
//   - input feature names ["animal", "size"], categories [[cat dog] [large small]]
//   - output: ["animal_dog", "size_small"]
func (e *OneHotEncoder) GetFeatureNamesOut(inputFeatures []string) []string {
	if !e.State.IsFitted() {
		return nil
	}

	var outputFeatures []string

	for i, categories := range e.Categories {
		var inputFeatureName string
		if inputFeatures != nil && i < len(inputFeatures) {
			inputFeatureName = inputFeatures[i]
		} else {
			inputFeatureName = fmt.Sprintf("x%d", i)
		}

		for _, category := range categories[1:] {
			outputFeatures = append(outputFeatures, fmt.Sprintf("%s_%s", inputFeatureName, category))
		}
	}

	return outputFeatures
}

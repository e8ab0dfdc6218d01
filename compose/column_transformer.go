// Package compose assembles per-column transformers into a single numeric
// design matrix.
package compose

import (
	"fmt"
	"time"

	"gonum.org/v1/gonum/mat"

	"github.com/ezoic/regdiag/core/model"
	"github.com/ezoic/regdiag/dataset"
	"github.com/ezoic/regdiag/pipeline"
	"github.com/ezoic/regdiag/pkg/errors"
	"github.com/ezoic/regdiag/pkg/log"
	"github.com/ezoic/regdiag/preprocessing"
)

// ColumnTransformer turns a string table into a model-ready design matrix.
//
// At fit time the table's columns are partitioned: a column is numeric when
// every non-missing cell parses as a float, categorical otherwise. Numeric
// columns run through a median-impute then min-max-scale pipeline; categorical
// columns run through a drop-first OneHotEncoder. The output is the horizontal
// concatenation of the numeric block followed by the categorical block.
type ColumnTransformer struct {
	State  *model.StateManager // State manager (composition instead of embedding) - Public for gob encoding
	logger log.Logger

	// NumericColumns and CategoricalColumns record the fit-time partition,
	// each in table column order.
	NumericColumns     []string
	CategoricalColumns []string

	numeric *pipeline.Pipeline
	encoder *preprocessing.OneHotEncoder
}

// NewColumnTransformer creates an unfitted ColumnTransformer.
func NewColumnTransformer() *ColumnTransformer {
	ct := &ColumnTransformer{
		State: model.NewStateManager(),
	}

	ct.logger = log.GetLoggerWithName("compose").With(
		log.ModelNameKey, "ColumnTransformer",
		log.ComponentKey, "compose",
	)

	return ct
}

// Fit partitions the table's columns and fits both branches.
//
// Parameters:
//   - t: cleaned feature table (target column already removed)
//
// Errors:
//   - ErrEmptyData: if the table has no rows or no columns
//   - any error from the underlying imputer, scaler, or encoder fits
func (ct *ColumnTransformer) Fit(t *dataset.Table) (err error) {
	defer errors.Recover(&err, "ColumnTransformer.Fit")

	startTime := time.Now()

	if t.NumRows() == 0 || t.NumCols() == 0 {
		return errors.NewModelError("ColumnTransformer.Fit", "empty table", errors.ErrEmptyData)
	}

	if ct.logger != nil {
		ct.logger.Info("Fit started",
			log.OperationKey, log.OperationFit,
			log.PhaseKey, log.PhasePreprocessing,
			log.SamplesKey, t.NumRows(),
			log.FeaturesKey, t.NumCols(),
		)
	}

	ct.NumericColumns = ct.NumericColumns[:0]
	ct.CategoricalColumns = ct.CategoricalColumns[:0]
	for _, name := range t.Columns() {
		if t.IsNumeric(name) {
			ct.NumericColumns = append(ct.NumericColumns, name)
		} else {
			ct.CategoricalColumns = append(ct.CategoricalColumns, name)
		}
	}

	if len(ct.NumericColumns) > 0 {
		X, err := ct.numericMatrix(t)
		if err != nil {
			return err
		}
		ct.numeric = pipeline.New(
			pipeline.Step{Name: "impute", Estimator: preprocessing.NewMedianImputer()},
			pipeline.Step{Name: "scale", Estimator: preprocessing.NewMinMaxScalerDefault()},
		)
		if _, err := ct.numeric.FitTransform(X, nil); err != nil {
			return errors.Wrap(err, "failed to fit numeric pipeline")
		}
	}

	if len(ct.CategoricalColumns) > 0 {
		rows := ct.categoricalRows(t)
		ct.encoder = preprocessing.NewOneHotEncoder()
		if err := ct.encoder.Fit(rows); err != nil {
			return errors.Wrap(err, "failed to fit categorical encoder")
		}
	}

	ct.State.SetFitted()
	ct.State.SetDimensions(t.NumCols(), t.NumRows())

	duration := time.Since(startTime)
	if ct.logger != nil {
		ct.logger.Info("Fit completed",
			log.OperationKey, log.OperationFit,
			log.PhaseKey, log.PhasePreprocessing,
			log.DurationMsKey, duration.Milliseconds(),
			"numeric_columns", len(ct.NumericColumns),
			"categorical_columns", len(ct.CategoricalColumns),
		)
	}

	return nil
}

// Transform applies the fitted branches to a table and concatenates the
// results, numeric block first.
//
// Errors:
//   - NotFittedError: if Fit has not been called
//   - ValueError: if a fitted column is absent or fails to parse
func (ct *ColumnTransformer) Transform(t *dataset.Table) (_ *mat.Dense, err error) {
	defer errors.Recover(&err, "ColumnTransformer.Transform")
	if err := ct.State.RequireFitted("ColumnTransformer", "Transform"); err != nil {
		return nil, err
	}

	nRows := t.NumRows()
	if nRows == 0 {
		return nil, errors.NewModelError("ColumnTransformer.Transform", "empty table", errors.ErrEmptyData)
	}

	var numBlock mat.Matrix
	numCols := 0
	if len(ct.NumericColumns) > 0 {
		X, err := ct.numericMatrix(t)
		if err != nil {
			return nil, err
		}
		numBlock, err = ct.numeric.Transform(X)
		if err != nil {
			return nil, errors.Wrap(err, "failed to transform numeric columns")
		}
		_, numCols = numBlock.Dims()
	}

	var catBlock mat.Matrix
	catCols := 0
	if len(ct.CategoricalColumns) > 0 {
		rows := ct.categoricalRows(t)
		catBlock, err = ct.encoder.Transform(rows)
		if err != nil {
			return nil, errors.Wrap(err, "failed to transform categorical columns")
		}
		_, catCols = catBlock.Dims()
	}

	if numCols+catCols == 0 {
		return nil, errors.NewValueError("ColumnTransformer.Transform", "no output columns")
	}

	result := mat.NewDense(nRows, numCols+catCols, nil)
	for i := 0; i < nRows; i++ {
		for j := 0; j < numCols; j++ {
			result.Set(i, j, numBlock.At(i, j))
		}
		for j := 0; j < catCols; j++ {
			result.Set(i, numCols+j, catBlock.At(i, j))
		}
	}

	return result, nil
}

// FitTransform fits the transformer and transforms the table in one step.
func (ct *ColumnTransformer) FitTransform(t *dataset.Table) (_ *mat.Dense, err error) {
	defer errors.Recover(&err, "ColumnTransformer.FitTransform")
	if err := ct.Fit(t); err != nil {
		return nil, err
	}
	return ct.Transform(t)
}

// FeatureNames returns the output column names: the numeric column names
// followed by the encoder's indicator names.
func (ct *ColumnTransformer) FeatureNames() []string {
	if !ct.State.IsFitted() {
		return nil
	}

	names := make([]string, 0, len(ct.NumericColumns))
	names = append(names, ct.NumericColumns...)
	if ct.encoder != nil {
		names = append(names, ct.encoder.GetFeatureNamesOut(ct.CategoricalColumns)...)
	}
	return names
}

// NumericPipeline exposes the fitted numeric sub-pipeline, nil before Fit or
// when the table had no numeric columns.
func (ct *ColumnTransformer) NumericPipeline() *pipeline.Pipeline {
	return ct.numeric
}

// Encoder exposes the fitted categorical encoder, nil before Fit or when the
// table had no categorical columns.
func (ct *ColumnTransformer) Encoder() *preprocessing.OneHotEncoder {
	return ct.encoder
}

// numericMatrix assembles the numeric columns into a dense matrix, missing
// cells as NaN.
func (ct *ColumnTransformer) numericMatrix(t *dataset.Table) (*mat.Dense, error) {
	X := mat.NewDense(t.NumRows(), len(ct.NumericColumns), nil)
	for j, name := range ct.NumericColumns {
		col, err := t.NumericColumn(name)
		if err != nil {
			return nil, errors.Wrap(err, fmt.Sprintf("numeric column %q", name))
		}
		for i, v := range col {
			X.Set(i, j, v)
		}
	}
	return X, nil
}

// categoricalRows assembles the categorical columns row-major for the encoder.
func (ct *ColumnTransformer) categoricalRows(t *dataset.Table) [][]string {
	rows := make([][]string, t.NumRows())
	for i := range rows {
		row := make([]string, len(ct.CategoricalColumns))
		for j, name := range ct.CategoricalColumns {
			cell, _ := t.Cell(i, name)
			row[j] = cell
		}
		rows[i] = row
	}
	return rows
}

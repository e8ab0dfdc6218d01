package diag

import (
	"math"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat/distuv"

	"github.com/ezoic/regdiag/linear"
	"github.com/ezoic/regdiag/pkg/errors"
)

// DefaultCenterFraction is the share of rows the Rainbow test fits separately.
const DefaultCenterFraction = 0.5

// Rainbow performs the rainbow test for linearity.
//
// The test fits the model a second time on the center fraction of the rows,
// ordered as given, and compares the residual sum of squares of the full fit
// against the center fit. Under the null hypothesis of a correct linear
// specification both fits estimate the same relationship and the statistic
//
//	F = ((RSS_full - RSS_center) / (n - n_center)) / (RSS_center / (n_center - rank))
//
// follows an F distribution with (n - n_center, n_center - rank) degrees of
// freedom. A small p-value indicates the center of the data follows a
// different relationship than the whole, evidence against linearity.
//
// Parameters:
//   - model: Fitted OLS model
//   - X: Feature matrix the model was trained on, shape (n_samples, n_features)
//   - y: Target column, shape (n_samples, 1)
//   - frac: Fraction of rows in the center window, strictly between 0 and 1
//
// Returns:
//   - []float64: {F statistic, p-value}
//   - error: nil on success, otherwise an error describing the failure
//
// Errors:
//   - NotFittedError: if the model hasn't been trained yet
//   - ValueError: if frac is outside (0, 1) or the center window is too small
//   - DimensionError: if X and y row counts differ
func Rainbow(model *linear.OLS, X, y mat.Matrix, frac float64) (stats []float64, err error) {
	defer errors.Recover(&err, "diag.Rainbow")

	if frac <= 0 || frac >= 1 {
		return nil, errors.NewValueError("diag.Rainbow", "center fraction must be strictly between 0 and 1")
	}

	n, _ := X.Dims()
	ry, cy := y.Dims()
	if ry != n {
		return nil, errors.NewDimensionError("diag.Rainbow", n, ry, 0)
	}
	if cy != 1 {
		return nil, errors.NewValueError("diag.Rainbow", "y must be a column vector")
	}

	preds, err := model.Predict(X)
	if err != nil {
		return nil, err
	}

	yVec := columnVector(y)
	residFull := mat.NewVecDense(n, nil)
	for i := 0; i < n; i++ {
		residFull.SetVec(i, yVec.AtVec(i)-preds.At(i, 0))
	}
	ssFull := sumSquares(residFull)

	// Center window [low, upp): ceil(0.5*(1-frac)*n) rows are dropped from
	// the head, the window spans frac*n rows.
	low := int(math.Ceil(0.5 * (1 - frac) * float64(n)))
	upp := int(math.Floor(float64(low) + frac*float64(n)))
	nSub := upp - low

	XSub := sliceRows(X, low, upp)
	ySub := mat.NewVecDense(nSub, nil)
	for i := low; i < upp; i++ {
		ySub.SetVec(i-low, yVec.AtVec(i))
	}

	residSub, rank, err := leastSquares(XSub, ySub)
	if err != nil {
		return nil, errors.Wrap(err, "center window fit failed")
	}
	ssSub := sumSquares(residSub)

	dfNum := n - nSub
	dfDen := nSub - rank
	if dfNum < 1 || dfDen < 1 {
		return nil, errors.NewValueError("diag.Rainbow", "center window leaves no degrees of freedom")
	}

	f := ((ssFull - ssSub) / float64(dfNum)) / (ssSub / float64(dfDen))
	fDist := distuv.F{D1: float64(dfNum), D2: float64(dfDen)}
	p := 1 - fDist.CDF(f)

	return []float64{f, p}, nil
}

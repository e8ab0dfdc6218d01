package diag

import (
	"github.com/montanaflynn/stats"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat/distuv"

	"github.com/ezoic/regdiag/pkg/errors"
)

// BreuschPagan performs the Breusch-Pagan Lagrange multiplier test for
// heteroskedasticity. The squared residuals are regressed on the design
// matrix; LM = n·R² of that auxiliary regression is compared against
// chi-squared(k-1), and the F form of the same hypothesis is reported
// alongside.
//
// Precondition: the design must contain a constant nonzero column to serve
// as the baseline of the auxiliary regression; centered R² is not defined
// without one, so the test returns an error instead of statistics.
//
// Returns {LM statistic, LM p-value, F statistic, F p-value}.
func BreuschPagan(resid *mat.VecDense, X mat.Matrix) (result []float64, err error) {
	defer errors.Recover(&err, "diag.BreuschPagan")

	n, k := X.Dims()
	if n == 0 || k == 0 {
		return nil, errors.NewModelError("diag.BreuschPagan", "empty design", errors.ErrEmptyData)
	}
	if resid.Len() != n {
		return nil, errors.NewDimensionError("diag.BreuschPagan", n, resid.Len(), 0)
	}
	if k < 2 {
		return nil, errors.NewValueError("diag.BreuschPagan",
			"design matrix must have at least one column besides the constant")
	}

	if !hasConstantColumn(X) {
		return nil, errors.NewValueError("diag.BreuschPagan",
			"design matrix must contain a constant column to baseline the auxiliary regression")
	}

	// Auxiliary regression: squared residuals on the full design.
	squared := make([]float64, n)
	y2 := mat.NewVecDense(n, nil)
	for i := 0; i < n; i++ {
		r := resid.AtVec(i)
		squared[i] = r * r
		y2.SetVec(i, r*r)
	}

	residAux, rank, err := leastSquares(X, y2)
	if err != nil {
		return nil, errors.Wrap(err, "auxiliary regression failed")
	}

	meanSq, err := stats.Mean(squared)
	if err != nil {
		return nil, errors.Wrap(err, "squared residual mean")
	}

	tss := 0.0
	for _, v := range squared {
		d := v - meanSq
		tss += d * d
	}
	if tss == 0 {
		return nil, errors.NewValueError("diag.BreuschPagan", "squared residuals have zero variance")
	}

	rss := sumSquares(residAux)
	r2 := 1 - rss/tss

	lm := float64(n) * r2
	chi2 := distuv.ChiSquared{K: float64(k - 1)}
	lmPval := 1 - chi2.CDF(lm)

	dfModel := rank - 1
	dfResid := n - rank
	if dfModel < 1 || dfResid < 1 {
		return nil, errors.NewValueError("diag.BreuschPagan",
			"not enough rows for the F form of the test")
	}
	ess := tss - rss
	f := (ess / float64(dfModel)) / (rss / float64(dfResid))
	fDist := distuv.F{D1: float64(dfModel), D2: float64(dfResid)}
	fPval := 1 - fDist.CDF(f)

	return []float64{lm, lmPval, f, fPval}, nil
}

// hasConstantColumn reports whether any column of X holds a single nonzero
// value in every row. An all-zero column cannot absorb an intercept, so it
// does not count.
func hasConstantColumn(X mat.Matrix) bool {
	n, k := X.Dims()
	for j := 0; j < k; j++ {
		first := X.At(0, j)
		if first == 0 {
			continue
		}
		constant := true
		for i := 1; i < n; i++ {
			if X.At(i, j) != first {
				constant = false
				break
			}
		}
		if constant {
			return true
		}
	}
	return false
}

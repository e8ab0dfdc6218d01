package diag

import (
	"fmt"
	"math"

	"github.com/montanaflynn/stats"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat/distuv"

	"github.com/ezoic/regdiag/linear"
	"github.com/ezoic/regdiag/pkg/errors"
)

// HarveyCollier performs the Harvey-Collier test for linearity.
//
// Rows are consumed in the order given through an expanding window. After a
// warm-up of skip = n_features rows, each step predicts the next observation
// from the coefficients of all preceding rows and standardizes the
// prediction error:
//
//	w_t = (y_t - x_t'β_{t-1}) / √(1 + x_t'(X_{t-1}'X_{t-1})^-1x_t)
//
// Under a correct linear specification the recursive residuals w have mean
// zero, so the test is a one-sample t test of that mean against zero.
//
// Precondition: the warm-up window X[:skip] must be invertible. A design
// whose leading rows carry duplicate or all-zero columns (sparse one-hot
// encodings often do) violates this and the test returns an error wrapping
// ErrSingularMatrix instead of statistics.
//
// Returns {t value, p value}.
func HarveyCollier(model *linear.OLS, X, y mat.Matrix) (result []float64, err error) {
	defer errors.Recover(&err, "diag.HarveyCollier")

	if err := model.State.RequireFitted("OLS", "HarveyCollier"); err != nil {
		return nil, err
	}

	n, k := X.Dims()
	ry, cy := y.Dims()
	if ry != n {
		return nil, errors.NewDimensionError("diag.HarveyCollier", n, ry, 0)
	}
	if cy != 1 {
		return nil, errors.NewValueError("diag.HarveyCollier", "y must be a column vector")
	}
	if k != model.NFeatures {
		return nil, errors.NewDimensionError("diag.HarveyCollier", model.NFeatures, k, 1)
	}

	skip := k
	if n < skip+2 {
		return nil, errors.NewValueError("diag.HarveyCollier",
			"not enough rows beyond the warm-up window to test")
	}

	// Warm-up estimator on the first skip rows.
	X0 := sliceRows(X, 0, skip)
	var xtx mat.Dense
	xtx.Mul(X0.T(), X0)

	var xtxi mat.Dense
	if invErr := xtxi.Inverse(&xtx); invErr != nil {
		return nil, errors.NewModelError("diag.HarveyCollier",
			fmt.Sprintf("initial regressor window X[:%d] is singular; recursive residuals are not defined", skip),
			errors.ErrSingularMatrix)
	}

	yVec := columnVector(y)
	beta := mat.NewVecDense(k, nil)
	xty := mat.NewVecDense(k, nil)
	y0 := mat.NewVecDense(skip, nil)
	for i := 0; i < skip; i++ {
		y0.SetVec(i, yVec.AtVec(i))
	}
	xty.MulVec(X0.T(), y0)
	beta.MulVec(&xtxi, xty)

	// Expanding window: Sherman-Morrison keeps (X'X)^-1 current as each row
	// joins, so no step refactorizes the design.
	w := make([]float64, 0, n-skip)
	xi := mat.NewVecDense(k, nil)
	tmp := mat.NewVecDense(k, nil)
	for i := skip; i < n; i++ {
		for j := 0; j < k; j++ {
			xi.SetVec(j, X.At(i, j))
		}

		pred := mat.Dot(xi, beta)
		resid := yVec.AtVec(i) - pred

		tmp.MulVec(&xtxi, xi)
		ft := 1 + mat.Dot(xi, tmp)
		w = append(w, resid/math.Sqrt(ft))

		// (X'X)^-1 = (X'X)^-1 - tmp·tmp'/ft, β = β + tmp·resid/ft
		xtxi.RankOne(&xtxi, -1/ft, tmp, tmp)
		beta.AddScaledVec(beta, resid/ft, tmp)
	}

	mean, err := stats.Mean(w)
	if err != nil {
		return nil, errors.Wrap(err, "recursive residual mean")
	}
	sd, err := stats.StandardDeviationSample(w)
	if err != nil {
		return nil, errors.Wrap(err, "recursive residual standard deviation")
	}
	if sd == 0 {
		return nil, errors.NewValueError("diag.HarveyCollier", "recursive residuals have zero variance")
	}

	m := float64(len(w))
	t := mean / (sd / math.Sqrt(m))
	tDist := distuv.StudentsT{Mu: 0, Sigma: 1, Nu: m - 1}
	p := 2 * (1 - tDist.CDF(math.Abs(t)))

	return []float64{t, p}, nil
}

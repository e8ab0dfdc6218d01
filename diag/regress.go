package diag

import (
	"math"

	"gonum.org/v1/gonum/mat"

	"github.com/ezoic/regdiag/pkg/errors"
)

// leastSquares solves X·β = y by thin SVD the way a pseudo-inverse does:
// singular values below max(r, c)·eps·σ_max are treated as zero, so a rank
// deficient design still yields the minimum-norm solution. Sub-regressions
// inside the diagnostic tests need this tolerance because a data window can
// drop a one-hot category entirely and zero out its column.
//
// Returns the residual vector y - X·β and the effective rank used.
func leastSquares(X mat.Matrix, y *mat.VecDense) (*mat.VecDense, int, error) {
	r, c := X.Dims()
	if r == 0 || c == 0 {
		return nil, 0, errors.NewModelError("diag.leastSquares", "empty design", errors.ErrEmptyData)
	}
	if y.Len() != r {
		return nil, 0, errors.NewDimensionError("diag.leastSquares", r, y.Len(), 0)
	}

	var svd mat.SVD
	if ok := svd.Factorize(X, mat.SVDThin); !ok {
		return nil, 0, errors.NewModelError("diag.leastSquares", "SVD factorization failed", errors.ErrSingularMatrix)
	}

	sv := svd.Values(nil)
	eps := math.Nextafter(1, 2) - 1
	tol := float64(max(r, c)) * eps * sv[0]
	rank := 0
	for _, s := range sv {
		if s > tol {
			rank++
		}
	}
	if rank == 0 {
		return nil, 0, errors.NewModelError("diag.leastSquares", "design has rank zero", errors.ErrSingularMatrix)
	}

	var beta mat.Dense
	svd.SolveTo(&beta, y, rank)

	coef := mat.NewVecDense(c, nil)
	for j := 0; j < c; j++ {
		coef.SetVec(j, beta.At(j, 0))
	}

	fitted := mat.NewVecDense(r, nil)
	fitted.MulVec(X, coef)

	resid := mat.NewVecDense(r, nil)
	resid.SubVec(y, fitted)
	return resid, rank, nil
}

// sliceRows copies rows [from, to) of X into a new dense matrix.
func sliceRows(X mat.Matrix, from, to int) *mat.Dense {
	_, c := X.Dims()
	out := mat.NewDense(to-from, c, nil)
	for i := from; i < to; i++ {
		for j := 0; j < c; j++ {
			out.Set(i-from, j, X.At(i, j))
		}
	}
	return out
}

// columnVector copies the single column of y into a vector.
func columnVector(y mat.Matrix) *mat.VecDense {
	r, _ := y.Dims()
	v := mat.NewVecDense(r, nil)
	for i := 0; i < r; i++ {
		v.SetVec(i, y.At(i, 0))
	}
	return v
}

// sumSquares returns the sum of squared entries of v.
func sumSquares(v *mat.VecDense) float64 {
	total := 0.0
	for i := 0; i < v.Len(); i++ {
		total += v.AtVec(i) * v.AtVec(i)
	}
	return total
}

package diag

import (
	"math"

	"github.com/montanaflynn/stats"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat/distuv"

	"github.com/ezoic/regdiag/pkg/errors"
)

// JarqueBera tests residuals for normality from their sample skewness S and
// kurtosis K:
//
//	JB = n/6 · (S² + (K - 3)²/4)
//
// Under normality JB is asymptotically chi-squared with 2 degrees of freedom;
// the p-value is the upper tail. Kurtosis here is the raw fourth standardized
// moment (3 for a normal distribution), not excess kurtosis.
//
// Returns {JB statistic, p-value, skewness, kurtosis}.
func JarqueBera(resid *mat.VecDense) (result []float64, err error) {
	defer errors.Recover(&err, "diag.JarqueBera")

	n := resid.Len()
	if n == 0 {
		return nil, errors.NewModelError("diag.JarqueBera", "empty residual vector", errors.ErrEmptyData)
	}

	data := make([]float64, n)
	for i := 0; i < n; i++ {
		data[i] = resid.AtVec(i)
	}

	mean, err := stats.Mean(data)
	if err != nil {
		return nil, errors.Wrap(err, "residual mean")
	}

	var m2, m3, m4 float64
	for _, v := range data {
		d := v - mean
		m2 += d * d
		m3 += d * d * d
		m4 += d * d * d * d
	}
	nf := float64(n)
	m2 /= nf
	m3 /= nf
	m4 /= nf

	if m2 == 0 {
		return nil, errors.NewValueError("diag.JarqueBera", "residuals have zero variance")
	}

	skew := m3 / math.Pow(m2, 1.5)
	kurt := m4 / (m2 * m2)
	jb := nf / 6 * (skew*skew + (kurt-3)*(kurt-3)/4)

	chi2 := distuv.ChiSquared{K: 2}
	p := 1 - chi2.CDF(jb)

	return []float64{jb, p, skew, kurt}, nil
}

package diag

import (
	"gonum.org/v1/gonum/mat"

	"github.com/ezoic/regdiag/linear"
)

// StandardChecks returns the diagnostic suite for a fitted model in report
// order: Rainbow, Harvey-Collier, Jarque-Bera, Breusch-Pagan, and the design
// condition number. X and y are the matrices the model was trained on.
func StandardChecks(model *linear.OLS, X, y mat.Matrix) []Check {
	return []Check{
		{
			Title:     "Rainbow",
			StatNames: []string{"F statistic", "p-value"},
			Run: func() ([]float64, error) {
				return Rainbow(model, X, y, DefaultCenterFraction)
			},
		},
		{
			Title:     "Harvey-Collier",
			StatNames: []string{"t value", "p value"},
			Run: func() ([]float64, error) {
				return HarveyCollier(model, X, y)
			},
		},
		{
			Title:     "Jarque-Bera",
			StatNames: []string{"Jarque-Bera", "Chi^2 two-tail prob", "Skew", "Kurtosis"},
			Run: func() ([]float64, error) {
				resid, err := model.Residuals()
				if err != nil {
					return nil, err
				}
				return JarqueBera(resid)
			},
		},
		{
			Title:     "Breusch-Pagan",
			StatNames: []string{"Lagrange multiplier statistic", "p-value", "f-value", "f p-value"},
			Run: func() ([]float64, error) {
				resid, err := model.Residuals()
				if err != nil {
					return nil, err
				}
				return BreuschPagan(resid, X)
			},
		},
		{
			Title:     "Multicollinearity",
			StatNames: []string{"condition number"},
			Run: func() ([]float64, error) {
				cond, err := model.ConditionNumber()
				if err != nil {
					return nil, err
				}
				return []float64{cond}, nil
			},
		},
	}
}

package diag_test

import (
	"math"
	"strings"
	"testing"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat/distuv"

	"github.com/ezoic/regdiag/diag"
	"github.com/ezoic/regdiag/pkg/errors"
)

func TestBreuschPagan_HandComputed(t *testing.T) {
	// Design [1, x] with x = 0..3 and resid = [1, -1, 2, -2], so the squared
	// residuals are [1, 1, 4, 4]. The auxiliary fit is 0.7 + 1.2x:
	//   rss = 1.8, tss = 9, R² = 0.8
	//   LM  = 4 * 0.8 = 3.2
	//   F   = (7.2/1)/(1.8/2) = 8, with p = 1 - √0.8 for F(1, 2).
	X := mat.NewDense(4, 2, []float64{
		1, 0,
		1, 1,
		1, 2,
		1, 3,
	})
	resid := mat.NewVecDense(4, []float64{1, -1, 2, -2})

	stats, err := diag.BreuschPagan(resid, X)
	if err != nil {
		t.Fatalf("BreuschPagan failed: %v", err)
	}
	if len(stats) != 4 {
		t.Fatalf("Expected 4 statistics, got %d", len(stats))
	}

	if math.Abs(stats[0]-3.2) > epsilon {
		t.Errorf("LM statistic: expected 3.2, got %v", stats[0])
	}
	wantLMP := 1 - distuv.ChiSquared{K: 1}.CDF(3.2)
	if math.Abs(stats[1]-wantLMP) > epsilon {
		t.Errorf("LM p-value: expected %v, got %v", wantLMP, stats[1])
	}
	if math.Abs(stats[2]-8.0) > epsilon {
		t.Errorf("F statistic: expected 8, got %v", stats[2])
	}
	if math.Abs(stats[3]-(1-math.Sqrt(0.8))) > epsilon {
		t.Errorf("F p-value: expected %v, got %v", 1-math.Sqrt(0.8), stats[3])
	}
}

func TestBreuschPagan_MissingConstantColumn(t *testing.T) {
	// No column is constant, which is exactly the shape a min-max scaled
	// one-hot design has. The precondition must fail before any statistics
	// are computed.
	X := mat.NewDense(4, 2, []float64{
		0, 1,
		1, 0,
		0.5, 1,
		1, 0.5,
	})
	resid := mat.NewVecDense(4, []float64{1, -1, 2, -2})

	_, err := diag.BreuschPagan(resid, X)
	if err == nil {
		t.Fatal("Expected error for design without constant column")
	}
	var valErr *errors.ValueError
	if !errors.As(err, &valErr) {
		t.Errorf("Expected ValueError, got %T", err)
	}
	if !strings.Contains(err.Error(), "constant column") {
		t.Errorf("Error should name the missing constant column, got %q", err.Error())
	}
}

func TestBreuschPagan_AllZeroColumnIsNotAConstant(t *testing.T) {
	// An all-zero column cannot absorb an intercept, so it must not satisfy
	// the constant-column precondition.
	X := mat.NewDense(4, 2, []float64{
		0, 1,
		0, 2,
		0, 3,
		0, 4,
	})
	resid := mat.NewVecDense(4, []float64{1, -1, 2, -2})

	_, err := diag.BreuschPagan(resid, X)
	if err == nil {
		t.Fatal("Expected error when the only constant column is all zeros")
	}
	var valErr *errors.ValueError
	if !errors.As(err, &valErr) {
		t.Errorf("Expected ValueError, got %T", err)
	}
}

func TestBreuschPagan_ErrorCases(t *testing.T) {
	t.Run("row count mismatch", func(t *testing.T) {
		X := mat.NewDense(4, 2, []float64{1, 0, 1, 1, 1, 2, 1, 3})
		resid := mat.NewVecDense(3, []float64{1, -1, 2})
		_, err := diag.BreuschPagan(resid, X)
		if err == nil {
			t.Fatal("Expected error for mismatched rows")
		}
		var dimErr *errors.DimensionError
		if !errors.As(err, &dimErr) {
			t.Errorf("Expected DimensionError, got %T", err)
		}
	})

	t.Run("constant only design", func(t *testing.T) {
		X := mat.NewDense(4, 1, []float64{1, 1, 1, 1})
		resid := mat.NewVecDense(4, []float64{1, -1, 2, -2})
		_, err := diag.BreuschPagan(resid, X)
		if err == nil {
			t.Fatal("Expected error for design with only the constant")
		}
	})

	t.Run("zero variance squared residuals", func(t *testing.T) {
		X := mat.NewDense(4, 2, []float64{1, 0, 1, 1, 1, 2, 1, 3})
		resid := mat.NewVecDense(4, []float64{1, -1, 1, -1})
		_, err := diag.BreuschPagan(resid, X)
		if err == nil {
			t.Fatal("Expected error for constant squared residuals")
		}
		var valErr *errors.ValueError
		if !errors.As(err, &valErr) {
			t.Errorf("Expected ValueError, got %T", err)
		}
	})
}

package linear_test

import (
	"math"
	"testing"

	"gonum.org/v1/gonum/mat"

	"github.com/ezoic/regdiag/linear"
	"github.com/ezoic/regdiag/pkg/errors"
)

const epsilon = 1e-10

// mockMatrix lets tests construct shapes gonum's constructors reject.
type mockMatrix struct {
	rows, cols int
	data       []float64
}

func (m *mockMatrix) Dims() (int, int) { return m.rows, m.cols }
func (m *mockMatrix) At(i, j int) float64 {
	return m.data[i*m.cols+j]
}
func (m *mockMatrix) T() mat.Matrix { return mat.Transpose{Matrix: m} }

func TestOLS_ExactSolve(t *testing.T) {
	// y = 2*x1 + 3*x2 exactly, so the solve recovers the coefficients
	// and leaves zero residuals.
	X := mat.NewDense(3, 2, []float64{
		1, 0,
		0, 1,
		1, 1,
	})
	y := mat.NewDense(3, 1, []float64{2, 3, 5})

	ols := linear.NewOLS()
	if err := ols.Fit(X, y); err != nil {
		t.Fatalf("Fit failed: %v", err)
	}

	if !ols.State.IsFitted() {
		t.Error("Model should be fitted after Fit")
	}

	coef := ols.GetCoefficients()
	expected := []float64{2.0, 3.0}
	for i, want := range expected {
		if math.Abs(coef[i]-want) > epsilon {
			t.Errorf("Coefficient %d: expected %f, got %f", i, want, coef[i])
		}
	}

	residuals, err := ols.Residuals()
	if err != nil {
		t.Fatalf("Residuals failed: %v", err)
	}
	for i := 0; i < residuals.Len(); i++ {
		if math.Abs(residuals.AtVec(i)) > epsilon {
			t.Errorf("Residual %d: expected 0, got %f", i, residuals.AtVec(i))
		}
	}
}

func TestOLS_NoInterceptTerm(t *testing.T) {
	// Data generated by y = 2x + 1. A model with an intercept would fit
	// slope 2; the no-intercept solve instead minimizes ||y - Xb|| alone:
	// b = sum(x*y)/sum(x^2) = (1*3 + 2*5 + 3*7) / (1 + 4 + 9) = 34/14 = 17/7.
	X := mat.NewDense(3, 1, []float64{1, 2, 3})
	y := mat.NewDense(3, 1, []float64{3, 5, 7})

	ols := linear.NewOLS()
	if err := ols.Fit(X, y); err != nil {
		t.Fatalf("Fit failed: %v", err)
	}

	coef := ols.GetCoefficients()
	want := 17.0 / 7.0
	if math.Abs(coef[0]-want) > epsilon {
		t.Errorf("Expected no-intercept slope %f, got %f", want, coef[0])
	}

	// Residuals: y - x*(17/7) = [4/7, 1/7, -2/7].
	residuals, err := ols.Residuals()
	if err != nil {
		t.Fatalf("Residuals failed: %v", err)
	}
	expectedResiduals := []float64{4.0 / 7.0, 1.0 / 7.0, -2.0 / 7.0}
	for i, want := range expectedResiduals {
		if math.Abs(residuals.AtVec(i)-want) > epsilon {
			t.Errorf("Residual %d: expected %f, got %f", i, want, residuals.AtVec(i))
		}
	}
}

func TestOLS_Predict(t *testing.T) {
	X := mat.NewDense(3, 2, []float64{
		1, 0,
		0, 1,
		1, 1,
	})
	y := mat.NewDense(3, 1, []float64{2, 3, 5})

	ols := linear.NewOLS()
	if err := ols.Fit(X, y); err != nil {
		t.Fatalf("Fit failed: %v", err)
	}

	XNew := mat.NewDense(2, 2, []float64{
		2, 2,
		-1, 4,
	})
	predictions, err := ols.Predict(XNew)
	if err != nil {
		t.Fatalf("Predict failed: %v", err)
	}

	// 2*2 + 3*2 = 10, 2*(-1) + 3*4 = 10.
	expected := []float64{10.0, 10.0}
	for i, want := range expected {
		got := predictions.At(i, 0)
		if math.Abs(got-want) > epsilon {
			t.Errorf("Prediction %d: expected %f, got %f", i, want, got)
		}
	}
}

func TestOLS_FittedValues(t *testing.T) {
	X := mat.NewDense(3, 1, []float64{1, 2, 3})
	y := mat.NewDense(3, 1, []float64{3, 5, 7})

	ols := linear.NewOLS()
	if err := ols.Fit(X, y); err != nil {
		t.Fatalf("Fit failed: %v", err)
	}

	fitted, err := ols.FittedValues()
	if err != nil {
		t.Fatalf("FittedValues failed: %v", err)
	}

	// Fitted values x*(17/7) = [17/7, 34/7, 51/7].
	expected := []float64{17.0 / 7.0, 34.0 / 7.0, 51.0 / 7.0}
	for i, want := range expected {
		if math.Abs(fitted.AtVec(i)-want) > epsilon {
			t.Errorf("Fitted value %d: expected %f, got %f", i, want, fitted.AtVec(i))
		}
	}

	// Fitted values plus residuals reconstruct y.
	residuals, err := ols.Residuals()
	if err != nil {
		t.Fatalf("Residuals failed: %v", err)
	}
	for i := 0; i < fitted.Len(); i++ {
		sum := fitted.AtVec(i) + residuals.AtVec(i)
		if math.Abs(sum-y.At(i, 0)) > epsilon {
			t.Errorf("Row %d: fitted + residual = %f, expected %f", i, sum, y.At(i, 0))
		}
	}
}

func TestOLS_SingularValuesAndConditionNumber(t *testing.T) {
	// Diagonal design with singular values 3 and 1: condition number 3.
	X := mat.NewDense(3, 2, []float64{
		3, 0,
		0, 1,
		0, 0,
	})
	y := mat.NewDense(3, 1, []float64{6, 2, 0})

	ols := linear.NewOLS()
	if err := ols.Fit(X, y); err != nil {
		t.Fatalf("Fit failed: %v", err)
	}

	sv, err := ols.SingularValues()
	if err != nil {
		t.Fatalf("SingularValues failed: %v", err)
	}
	expectedSV := []float64{3.0, 1.0}
	if len(sv) != len(expectedSV) {
		t.Fatalf("Expected %d singular values, got %d", len(expectedSV), len(sv))
	}
	for i, want := range expectedSV {
		if math.Abs(sv[i]-want) > epsilon {
			t.Errorf("Singular value %d: expected %f, got %f", i, want, sv[i])
		}
	}

	cond, err := ols.ConditionNumber()
	if err != nil {
		t.Fatalf("ConditionNumber failed: %v", err)
	}
	if math.Abs(cond-3.0) > epsilon {
		t.Errorf("Expected condition number 3, got %f", cond)
	}
}

func TestOLS_ConditionNumberOrthonormal(t *testing.T) {
	// Orthonormal columns have all singular values equal to 1.
	X := mat.NewDense(3, 3, []float64{
		1, 0, 0,
		0, 1, 0,
		0, 0, 1,
	})
	y := mat.NewDense(3, 1, []float64{1, 2, 3})

	ols := linear.NewOLS()
	if err := ols.Fit(X, y); err != nil {
		t.Fatalf("Fit failed: %v", err)
	}

	cond, err := ols.ConditionNumber()
	if err != nil {
		t.Fatalf("ConditionNumber failed: %v", err)
	}
	if math.Abs(cond-1.0) > epsilon {
		t.Errorf("Expected condition number 1, got %f", cond)
	}
}

func TestOLS_SingularDesign(t *testing.T) {
	// Second column is twice the first: rank 1 < 2 features.
	X := mat.NewDense(3, 2, []float64{
		1, 2,
		2, 4,
		3, 6,
	})
	y := mat.NewDense(3, 1, []float64{1, 2, 3})

	ols := linear.NewOLS()
	err := ols.Fit(X, y)
	if err == nil {
		t.Fatal("Expected error for rank deficient design")
	}
	if !errors.Is(err, errors.ErrSingularMatrix) {
		t.Errorf("Expected ErrSingularMatrix, got %v", err)
	}
	if ols.State.IsFitted() {
		t.Error("Model should not be fitted after failed Fit")
	}
}

func TestOLS_Score(t *testing.T) {
	X := mat.NewDense(4, 2, []float64{
		1, 0,
		0, 1,
		1, 1,
		2, 1,
	})
	y := mat.NewDense(4, 1, []float64{2, 3, 5, 7})

	ols := linear.NewOLS()
	if err := ols.Fit(X, y); err != nil {
		t.Fatalf("Fit failed: %v", err)
	}

	// y = 2*x1 + 3*x2 holds exactly for every row, so R^2 = 1.
	score, err := ols.Score(X, y)
	if err != nil {
		t.Fatalf("Score failed: %v", err)
	}
	if math.Abs(score-1.0) > epsilon {
		t.Errorf("Expected R^2 = 1 for perfect fit, got %f", score)
	}
}

func TestOLS_ErrorCases(t *testing.T) {
	t.Run("predict before fit", func(t *testing.T) {
		ols := linear.NewOLS()
		X := mat.NewDense(2, 2, []float64{1, 2, 3, 4})

		_, err := ols.Predict(X)
		if err == nil {
			t.Fatal("Expected error when predicting with unfitted model")
		}
		var notFitted *errors.NotFittedError
		if !errors.As(err, &notFitted) {
			t.Errorf("Expected NotFittedError, got %T", err)
		}
	})

	t.Run("accessors before fit", func(t *testing.T) {
		ols := linear.NewOLS()
		if _, err := ols.Residuals(); err == nil {
			t.Error("Expected error from Residuals on unfitted model")
		}
		if _, err := ols.FittedValues(); err == nil {
			t.Error("Expected error from FittedValues on unfitted model")
		}
		if _, err := ols.SingularValues(); err == nil {
			t.Error("Expected error from SingularValues on unfitted model")
		}
		if _, err := ols.ConditionNumber(); err == nil {
			t.Error("Expected error from ConditionNumber on unfitted model")
		}
		if coef := ols.GetCoefficients(); coef != nil {
			t.Errorf("Expected nil coefficients before fit, got %v", coef)
		}
	})

	t.Run("empty data", func(t *testing.T) {
		ols := linear.NewOLS()
		X := &mockMatrix{rows: 0, cols: 1}
		y := &mockMatrix{rows: 0, cols: 1}

		err := ols.Fit(X, y)
		if err == nil {
			t.Fatal("Expected error for empty data")
		}
		if !errors.Is(err, errors.ErrEmptyData) {
			t.Errorf("Expected ErrEmptyData, got %v", err)
		}
	})

	t.Run("sample count mismatch", func(t *testing.T) {
		ols := linear.NewOLS()
		X := mat.NewDense(3, 2, []float64{1, 2, 3, 4, 5, 6})
		y := mat.NewDense(2, 1, []float64{1, 2})

		err := ols.Fit(X, y)
		if err == nil {
			t.Fatal("Expected error for mismatched sample counts")
		}
		var dimErr *errors.DimensionError
		if !errors.As(err, &dimErr) {
			t.Errorf("Expected DimensionError, got %T", err)
		}
	})

	t.Run("target not a column vector", func(t *testing.T) {
		ols := linear.NewOLS()
		X := mat.NewDense(2, 2, []float64{1, 2, 3, 4})
		y := mat.NewDense(2, 2, []float64{1, 2, 3, 4})

		err := ols.Fit(X, y)
		if err == nil {
			t.Fatal("Expected error for wide target matrix")
		}
		var valErr *errors.ValueError
		if !errors.As(err, &valErr) {
			t.Errorf("Expected ValueError, got %T", err)
		}
	})

	t.Run("predict dimension mismatch", func(t *testing.T) {
		ols := linear.NewOLS()
		X := mat.NewDense(3, 2, []float64{1, 0, 0, 1, 1, 1})
		y := mat.NewDense(3, 1, []float64{2, 3, 5})
		if err := ols.Fit(X, y); err != nil {
			t.Fatalf("Fit failed: %v", err)
		}

		XBad := mat.NewDense(2, 3, []float64{1, 2, 3, 4, 5, 6})
		_, err := ols.Predict(XBad)
		if err == nil {
			t.Fatal("Expected error for feature count mismatch")
		}
		var dimErr *errors.DimensionError
		if !errors.As(err, &dimErr) {
			t.Errorf("Expected DimensionError, got %T", err)
		}
	})
}

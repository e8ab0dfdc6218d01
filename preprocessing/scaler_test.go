package preprocessing_test

import (
	"math"
	"testing"

	"gonum.org/v1/gonum/mat"

	"github.com/ezoic/regdiag/pkg/errors"
	"github.com/ezoic/regdiag/preprocessing"
)

const epsilon = 1e-10 // Tolerance for floating-point comparisons

func TestMinMaxScaler_BasicFunctionality(t *testing.T) {
	// Test data: [1,4], [2,5], [3,6]
	// Feature 1: min=1, max=3, range=2, scaled to [0,1] -> [0, 0.5, 1]
	// Feature 2: min=4, max=6, range=2, scaled to [0,1] -> [0, 0.5, 1]
	data := []float64{
		1.0, 4.0,
		2.0, 5.0,
		3.0, 6.0,
	}
	X := mat.NewDense(3, 2, data)

	scaler := preprocessing.NewMinMaxScalerDefault()

	// Fit
	err := scaler.Fit(X)
	if err != nil {
		t.Fatalf("Fit failed: %v", err)
	}

	// Verify statistics
	expectedDataMin := []float64{1.0, 4.0}
	expectedDataMax := []float64{3.0, 6.0}
	expectedScale := []float64{2.0, 2.0}

	for i, expected := range expectedDataMin {
		if math.Abs(scaler.DataMin[i]-expected) > epsilon {
			t.Errorf("DataMin[%d]: expected %f, got %f", i, expected, scaler.DataMin[i])
		}
	}

	for i, expected := range expectedDataMax {
		if math.Abs(scaler.DataMax[i]-expected) > epsilon {
			t.Errorf("DataMax[%d]: expected %f, got %f", i, expected, scaler.DataMax[i])
		}
	}

	for i, expected := range expectedScale {
		if math.Abs(scaler.Scale[i]-expected) > epsilon {
			t.Errorf("Scale[%d]: expected %f, got %f", i, expected, scaler.Scale[i])
		}
	}

	// Transform
	XScaled, err := scaler.Transform(X)
	if err != nil {
		t.Fatalf("Transform failed: %v", err)
	}

	// Expected:
	// [1,4] -> [(1-1)/(3-1), (4-4)/(6-4)] = [0, 0]
	// [2,5] -> [(2-1)/(3-1), (5-4)/(6-4)] = [0.5, 0.5]
	// [3,6] -> [(3-1)/(3-1), (6-4)/(6-4)] = [1, 1]
	expectedScaled := []float64{
		0.0, 0.0,
		0.5, 0.5,
		1.0, 1.0,
	}

	r, c := XScaled.Dims()
	if r != 3 || c != 2 {
		t.Fatalf("Expected 3x2 matrix, got %dx%d", r, c)
	}

	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			actual := XScaled.At(i, j)
			expected := expectedScaled[i*c+j]
			if math.Abs(actual-expected) > epsilon {
				t.Errorf("XScaled[%d][%d]: expected %f, got %f", i, j, expected, actual)
			}
		}
	}
}

func TestMinMaxScaler_CustomRange(t *testing.T) {
	// Scale into the [-1, 1] range
	data := []float64{
		10.0, 100.0,
		20.0, 200.0,
		30.0, 300.0,
	}
	X := mat.NewDense(3, 2, data)

	scaler := preprocessing.NewMinMaxScaler([2]float64{-1.0, 1.0})

	XScaled, err := scaler.FitTransform(X)
	if err != nil {
		t.Fatalf("FitTransform failed: %v", err)
	}

	// Feature 1: min=10, max=30, range=20
	// Feature 2: min=100, max=300, range=200
	// Expected (range [-1, 1]):
	// [10,100] -> [(10-10)/20*2-1, (100-100)/200*2-1] = [-1, -1]
	// [20,200] -> [(20-10)/20*2-1, (200-100)/200*2-1] = [0, 0]
	// [30,300] -> [(30-10)/20*2-1, (300-100)/200*2-1] = [1, 1]
	expectedScaled := []float64{
		-1.0, -1.0,
		0.0, 0.0,
		1.0, 1.0,
	}

	r, c := XScaled.Dims()
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			actual := XScaled.At(i, j)
			expected := expectedScaled[i*c+j]
			if math.Abs(actual-expected) > epsilon {
				t.Errorf("XScaled[%d][%d]: expected %f, got %f", i, j, expected, actual)
			}
		}
	}
}

func TestMinMaxScaler_NoClipping(t *testing.T) {
	// Values outside the fitted range must transform outside [0, 1],
	// not be clipped to the boundary.
	fitData := []float64{
		10.0,
		20.0,
	}
	X := mat.NewDense(2, 1, fitData)

	scaler := preprocessing.NewMinMaxScalerDefault()
	if err := scaler.Fit(X); err != nil {
		t.Fatalf("Fit failed: %v", err)
	}

	// min=10, max=20, range=10
	// 5 -> (5-10)/10 = -0.5 and 25 -> (25-10)/10 = 1.5
	outside := mat.NewDense(2, 1, []float64{5.0, 25.0})
	XScaled, err := scaler.Transform(outside)
	if err != nil {
		t.Fatalf("Transform failed: %v", err)
	}

	if got := XScaled.At(0, 0); math.Abs(got-(-0.5)) > epsilon {
		t.Errorf("Below-range value: expected -0.5, got %f", got)
	}
	if got := XScaled.At(1, 0); math.Abs(got-1.5) > epsilon {
		t.Errorf("Above-range value: expected 1.5, got %f", got)
	}
}

func TestMinMaxScaler_InverseTransform(t *testing.T) {
	data := []float64{
		5.0, 50.0,
		10.0, 100.0,
		15.0, 150.0,
	}
	X := mat.NewDense(3, 2, data)

	scaler := preprocessing.NewMinMaxScalerDefault()

	// Fit and Transform
	XScaled, err := scaler.FitTransform(X)
	if err != nil {
		t.Fatalf("FitTransform failed: %v", err)
	}

	// Inverse Transform
	XRecovered, err := scaler.InverseTransform(XScaled)
	if err != nil {
		t.Fatalf("InverseTransform failed: %v", err)
	}

	// Recovered data must match the original
	r, c := X.Dims()
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			original := X.At(i, j)
			recovered := XRecovered.At(i, j)
			if math.Abs(original-recovered) > epsilon {
				t.Errorf("InverseTransform failed at [%d][%d]: expected %f, got %f", i, j, original, recovered)
			}
		}
	}
}

func TestMinMaxScaler_ConstantFeature(t *testing.T) {
	data := []float64{
		5.0, 1.0,
		5.0, 2.0,
		5.0, 3.0,
	}
	X := mat.NewDense(3, 2, data)

	scaler := preprocessing.NewMinMaxScalerDefault()
	err := scaler.Fit(X)
	if err != nil {
		t.Fatalf("Fit failed: %v", err)
	}

	// A zero-range feature gets scale 1.0
	if math.Abs(scaler.Scale[0]-1.0) > epsilon {
		t.Errorf("Scale[0] should be 1.0 for constant feature, got %f", scaler.Scale[0])
	}

	XScaled, err := scaler.Transform(X)
	if err != nil {
		t.Fatalf("Transform failed: %v", err)
	}

	// Every value of a constant feature maps to the range minimum (0 here)
	for i := 0; i < 3; i++ {
		val := XScaled.At(i, 0)
		if math.Abs(val-0.0) > epsilon {
			t.Errorf("Constant feature should be 0 after scaling, got %f at row %d", val, i)
		}
	}
}

func TestMinMaxScaler_ErrorCases(t *testing.T) {
	scaler := preprocessing.NewMinMaxScalerDefault()

	data := []float64{1.0, 2.0}
	X := mat.NewDense(1, 2, data)

	// Transform before Fit
	_, err := scaler.Transform(X)
	if err == nil {
		t.Error("Expected error for unfitted scaler, got nil")
	}
	var notFitted *errors.NotFittedError
	if !errors.As(err, &notFitted) {
		t.Errorf("Expected NotFittedError, got %T", err)
	}

	// InverseTransform before Fit
	_, err = scaler.InverseTransform(X)
	if err == nil {
		t.Error("Expected error for unfitted scaler, got nil")
	}

	// Feature count mismatch
	_ = scaler.Fit(X) // fitted with 2 features
	wrongData := []float64{1.0, 2.0, 3.0}
	XWrong := mat.NewDense(1, 3, wrongData) // 3 features

	_, err = scaler.Transform(XWrong)
	if err == nil {
		t.Error("Expected error for dimension mismatch, got nil")
	}
	var dimErr *errors.DimensionError
	if !errors.As(err, &dimErr) {
		t.Errorf("Expected DimensionError, got %T", err)
	}
}

func TestMinMaxScaler_EmptyDataError(t *testing.T) {
	scaler := preprocessing.NewMinMaxScalerDefault()

	// Mock matrix reporting 0x0 dimensions
	emptyMatrix := &mockMatrix{rows: 0, cols: 0}

	err := scaler.Fit(emptyMatrix)
	if err == nil {
		t.Error("Expected error for empty data, got nil")
	}
	if !errors.Is(err, errors.ErrEmptyData) {
		t.Errorf("Expected ErrEmptyData, got %v", err)
	}
}

// Mock matrix for testing
type mockMatrix struct {
	rows, cols int
	data       []float64
}

func (m *mockMatrix) Dims() (int, int) {
	return m.rows, m.cols
}

func (m *mockMatrix) At(i, j int) float64 {
	if m.data == nil {
		return 0
	}
	return m.data[i*m.cols+j]
}

func (m *mockMatrix) T() mat.Matrix {
	return m // transpose not needed for these tests
}

func TestMinMaxScaler_GetParams(t *testing.T) {
	scaler := preprocessing.NewMinMaxScaler([2]float64{-2.0, 2.0})
	params := scaler.GetParams()

	featureRange := params["feature_range"].([2]float64)
	expectedRange := [2]float64{-2.0, 2.0}

	if featureRange[0] != expectedRange[0] || featureRange[1] != expectedRange[1] {
		t.Errorf("Expected feature_range=%v, got %v", expectedRange, featureRange)
	}
}

func TestMinMaxScaler_String(t *testing.T) {
	scaler := preprocessing.NewMinMaxScaler([2]float64{-1.0, 2.0})

	// Before fitting
	str := scaler.String()
	expected := "MinMaxScaler(feature_range=[-1.0, 2.0])"
	if str != expected {
		t.Errorf("Expected %q, got %q", expected, str)
	}

	// After fitting
	data := []float64{1.0, 2.0, 3.0, 4.0}
	X := mat.NewDense(2, 2, data)
	_ = scaler.Fit(X)

	str = scaler.String()
	expected = "MinMaxScaler(feature_range=[-1.0, 2.0], n_features=2)"
	if str != expected {
		t.Errorf("Expected %q, got %q", expected, str)
	}
}

package dataset_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/ezoic/regdiag/dataset"
)

func TestNormalizeHeader(t *testing.T) {
	tests := []struct {
		raw  string
		want string
	}{
		{"Gr Liv Area", "GrLivArea"},
		{"Year Remod/Add", "YearRemodAdd"},
		{"3Ssn Porch", "3SsnPorch"},
		{"MS Zoning", "MSZoning"},
		{"SalePrice", "SalePrice"},
		{"Bsmt Unf SF", "BsmtUnfSF"},
		{"  Lot Frontage  ", "LotFrontage"},
	}

	for _, tt := range tests {
		if got := dataset.NormalizeHeader(tt.raw); got != tt.want {
			t.Errorf("NormalizeHeader(%q) = %q, want %q", tt.raw, got, tt.want)
		}
	}
}

func writeTemp(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestReadFileTSV(t *testing.T) {
	path := writeTemp(t, "ames.tsv",
		"Order\tMS Zoning\tGr Liv Area\tSalePrice\n"+
			"1\tRL\t1710\t215000\n"+
			"2\tRM\t896\t105000\n")

	tbl, err := dataset.ReadFile(path)
	require.NoError(t, err)

	assert.Equal(t, 2, tbl.NumRows())
	assert.Equal(t, []string{"Order", "MSZoning", "GrLivArea", "SalePrice"}, tbl.Columns())

	v, err := tbl.Cell(1, "GrLivArea")
	require.NoError(t, err)
	assert.Equal(t, "896", v)
}

func TestReadFileCSV(t *testing.T) {
	path := writeTemp(t, "ames.csv",
		"Order,Neighborhood,SalePrice\n1,NAmes,215000\n")

	tbl, err := dataset.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, 1, tbl.NumRows())

	v, err := tbl.Cell(0, "Neighborhood")
	require.NoError(t, err)
	assert.Equal(t, "NAmes", v)
}

func TestReadFileDelimiterOverride(t *testing.T) {
	// A .csv that is actually tab separated.
	path := writeTemp(t, "tabs.csv", "A\tB\n1\t2\n")

	tbl, err := dataset.ReadFile(path, dataset.WithDelimiter('\t'))
	require.NoError(t, err)
	assert.Equal(t, []string{"A", "B"}, tbl.Columns())
}

func TestReadFileHeaderOnly(t *testing.T) {
	path := writeTemp(t, "empty.csv", "A,B\n")

	_, err := dataset.ReadFile(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "header row and at least one data row")
}

func TestReadFileRaggedRows(t *testing.T) {
	path := writeTemp(t, "ragged.csv", "A,B\n1,2\n3\n")

	_, err := dataset.ReadFile(path)
	require.Error(t, err)
}

func TestReadFileUnsupportedExtension(t *testing.T) {
	path := writeTemp(t, "data.parquet", "not really parquet")

	_, err := dataset.ReadFile(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported file extension")
}

func TestReadFileMissingFile(t *testing.T) {
	_, err := dataset.ReadFile(filepath.Join(t.TempDir(), "absent.csv"))
	require.Error(t, err)
}

func TestReadFileWorkbook(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ames.xlsx")

	f := excelize.NewFile()
	sheet := f.GetSheetName(0)
	require.NoError(t, f.SetSheetRow(sheet, "A1", &[]interface{}{"Order", "Gr Liv Area", "SalePrice"}))
	require.NoError(t, f.SetSheetRow(sheet, "A2", &[]interface{}{1, 1710, 215000}))
	require.NoError(t, f.SetSheetRow(sheet, "A3", &[]interface{}{2, 896, 105000}))
	require.NoError(t, f.SaveAs(path))
	require.NoError(t, f.Close())

	tbl, err := dataset.ReadFile(path)
	require.NoError(t, err)

	assert.Equal(t, []string{"Order", "GrLivArea", "SalePrice"}, tbl.Columns())
	assert.Equal(t, 2, tbl.NumRows())

	v, err := tbl.Cell(0, "GrLivArea")
	require.NoError(t, err)
	assert.Equal(t, "1710", v)
}

func TestReadDelimitedFromReader(t *testing.T) {
	tbl, err := dataset.ReadDelimited(strings.NewReader("A,B\nx,y\n"), ',')
	require.NoError(t, err)
	assert.Equal(t, 1, tbl.NumRows())
}

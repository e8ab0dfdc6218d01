// Package dataset provides the tabular record container and file readers for
// the housing pipeline.
//
// A Table holds raw string cells in row-major order with an ordered column
// schema. Cells equal to the empty string or the literal "NA" are treated as
// missing. Tables are immutable from the caller's point of view: mutating
// operations return a new Table and leave the receiver untouched, which keeps
// the cleaning stage composable and testable in isolation.
package dataset

import (
	"math"
	"strconv"

	"github.com/ezoic/regdiag/pkg/errors"
)

// missingNA is the literal token the Ames distribution uses for absent values.
const missingNA = "NA"

// IsMissing reports whether a raw cell value represents a missing entry.
func IsMissing(v string) bool {
	return v == "" || v == missingNA
}

// Table is an ordered collection of rows over a fixed column schema.
type Table struct {
	cols  []string
	index map[string]int
	cells [][]string
}

// New builds a Table from column names and row-major cells. Every row must
// have exactly len(cols) cells and column names must be unique.
func New(cols []string, rows [][]string) (*Table, error) {
	index := make(map[string]int, len(cols))
	for i, c := range cols {
		if _, dup := index[c]; dup {
			return nil, errors.NewValueError("dataset.New", "duplicate column name "+strconv.Quote(c))
		}
		index[c] = i
	}

	for i, row := range rows {
		if len(row) != len(cols) {
			return nil, errors.NewDimensionError("dataset.New", len(cols), len(row), i)
		}
	}

	t := &Table{
		cols:  append([]string(nil), cols...),
		index: index,
		cells: make([][]string, len(rows)),
	}
	for i, row := range rows {
		t.cells[i] = append([]string(nil), row...)
	}
	return t, nil
}

// Columns returns the column names in order.
func (t *Table) Columns() []string {
	return append([]string(nil), t.cols...)
}

// NumRows returns the number of data rows.
func (t *Table) NumRows() int {
	return len(t.cells)
}

// NumCols returns the number of columns.
func (t *Table) NumCols() int {
	return len(t.cols)
}

// HasColumn reports whether the named column exists.
func (t *Table) HasColumn(name string) bool {
	_, ok := t.index[name]
	return ok
}

// Cell returns the raw value at row i of the named column. Returns an error
// for an unknown column or out-of-range row.
func (t *Table) Cell(i int, name string) (string, error) {
	j, ok := t.index[name]
	if !ok {
		return "", errors.NewValueError("Table.Cell", "unknown column "+strconv.Quote(name))
	}
	if i < 0 || i >= len(t.cells) {
		return "", errors.NewValueError("Table.Cell", "row index out of range: "+strconv.Itoa(i))
	}
	return t.cells[i][j], nil
}

// Column returns a copy of the named column's raw values.
func (t *Table) Column(name string) ([]string, error) {
	j, ok := t.index[name]
	if !ok {
		return nil, errors.NewValueError("Table.Column", "unknown column "+strconv.Quote(name))
	}
	out := make([]string, len(t.cells))
	for i := range t.cells {
		out[i] = t.cells[i][j]
	}
	return out, nil
}

// NumericColumn parses the named column as float64 values. Missing cells
// become NaN. A non-missing cell that does not parse is an error.
func (t *Table) NumericColumn(name string) ([]float64, error) {
	col, err := t.Column(name)
	if err != nil {
		return nil, err
	}
	out := make([]float64, len(col))
	for i, v := range col {
		if IsMissing(v) {
			out[i] = math.NaN()
			continue
		}
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return nil, errors.NewValueError("Table.NumericColumn",
				"column "+strconv.Quote(name)+" has non-numeric value "+strconv.Quote(v))
		}
		out[i] = f
	}
	return out, nil
}

// IsNumeric reports whether every non-missing cell of the named column
// parses as a float. Columns with only missing cells count as numeric.
func (t *Table) IsNumeric(name string) bool {
	j, ok := t.index[name]
	if !ok {
		return false
	}
	for i := range t.cells {
		v := t.cells[i][j]
		if IsMissing(v) {
			continue
		}
		if _, err := strconv.ParseFloat(v, 64); err != nil {
			return false
		}
	}
	return true
}

// Row is a view of one table row for filtering predicates.
type Row struct {
	t *Table
	i int
}

// Get returns the row's value in the named column, or "" if the column does
// not exist.
func (r Row) Get(name string) string {
	j, ok := r.t.index[name]
	if !ok {
		return ""
	}
	return r.t.cells[r.i][j]
}

// Index returns the row's position in the table.
func (r Row) Index() int {
	return r.i
}

// FilterRows returns a new Table containing the rows for which keep returns
// true, preserving order.
func (t *Table) FilterRows(keep func(r Row) bool) *Table {
	kept := make([][]string, 0, len(t.cells))
	for i := range t.cells {
		if keep(Row{t: t, i: i}) {
			kept = append(kept, append([]string(nil), t.cells[i]...))
		}
	}
	return &Table{
		cols:  append([]string(nil), t.cols...),
		index: copyIndex(t.index),
		cells: kept,
	}
}

// DropColumns returns a new Table without the named columns. Names not
// present are ignored.
func (t *Table) DropColumns(names ...string) *Table {
	drop := make(map[string]bool, len(names))
	for _, n := range names {
		drop[n] = true
	}

	keptCols := make([]string, 0, len(t.cols))
	keptIdx := make([]int, 0, len(t.cols))
	for j, c := range t.cols {
		if !drop[c] {
			keptCols = append(keptCols, c)
			keptIdx = append(keptIdx, j)
		}
	}

	cells := make([][]string, len(t.cells))
	for i := range t.cells {
		row := make([]string, len(keptIdx))
		for k, j := range keptIdx {
			row[k] = t.cells[i][j]
		}
		cells[i] = row
	}

	index := make(map[string]int, len(keptCols))
	for j, c := range keptCols {
		index[c] = j
	}
	return &Table{cols: keptCols, index: index, cells: cells}
}

// SetColumn returns a new Table with the named column replaced by values.
// The length of values must equal NumRows.
func (t *Table) SetColumn(name string, values []string) (*Table, error) {
	j, ok := t.index[name]
	if !ok {
		return nil, errors.NewValueError("Table.SetColumn", "unknown column "+strconv.Quote(name))
	}
	if len(values) != len(t.cells) {
		return nil, errors.NewDimensionError("Table.SetColumn", len(t.cells), len(values), 0)
	}

	out := t.Clone()
	for i := range out.cells {
		out.cells[i][j] = values[i]
	}
	return out, nil
}

// Clone returns a deep copy of the table.
func (t *Table) Clone() *Table {
	cells := make([][]string, len(t.cells))
	for i := range t.cells {
		cells[i] = append([]string(nil), t.cells[i]...)
	}
	return &Table{
		cols:  append([]string(nil), t.cols...),
		index: copyIndex(t.index),
		cells: cells,
	}
}

// Equal reports whether two tables have identical schemas and cells.
func (t *Table) Equal(other *Table) bool {
	if other == nil || len(t.cols) != len(other.cols) || len(t.cells) != len(other.cells) {
		return false
	}
	for j := range t.cols {
		if t.cols[j] != other.cols[j] {
			return false
		}
	}
	for i := range t.cells {
		for j := range t.cells[i] {
			if t.cells[i][j] != other.cells[i][j] {
				return false
			}
		}
	}
	return true
}

func copyIndex(in map[string]int) map[string]int {
	out := make(map[string]int, len(in))
	for k, v := range in {
		out[k] = v
	}
	return out
}

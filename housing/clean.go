package housing

import (
	"strconv"

	"gonum.org/v1/gonum/mat"

	"github.com/ezoic/regdiag/dataset"
	"github.com/ezoic/regdiag/pkg/errors"
)

// Clean applies the full preparation sequence to a raw Ames table:
// identifier removal, neighborhood exclusion, living-area bound, default
// filling, and recoding, in that order. The input table is not modified.
//
// Columns referenced by a lookup table but absent from the input are
// silently skipped, so Clean is idempotent: running it on an already
// cleaned table returns an identical table.
func Clean(t *dataset.Table) (*dataset.Table, error) {
	out := DropIdentifiers(t)
	out = DropExcludedNeighborhoods(out)

	out, err := DropLivingAreaOutliers(out)
	if err != nil {
		return nil, err
	}

	out = FillDefaults(out)
	out = Recode(out)
	return out, nil
}

// DropIdentifiers removes the record-key columns. Absent columns are a no-op.
func DropIdentifiers(t *dataset.Table) *dataset.Table {
	return t.DropColumns(IdentifierColumns...)
}

// DropExcludedNeighborhoods removes rows whose Neighborhood value is in the
// excluded set. If the column is absent the table is returned unchanged.
func DropExcludedNeighborhoods(t *dataset.Table) *dataset.Table {
	if !t.HasColumn(NeighborhoodColumn) {
		return t
	}
	return t.FilterRows(func(r dataset.Row) bool {
		return !ExcludedNeighborhoods[r.Get(NeighborhoodColumn)]
	})
}

// DropLivingAreaOutliers removes rows whose above-grade living area exceeds
// LivingAreaMax. Missing values are kept; a non-numeric value is a data-shape
// error. If the column is absent the table is returned unchanged.
func DropLivingAreaOutliers(t *dataset.Table) (*dataset.Table, error) {
	if !t.HasColumn(LivingAreaColumn) {
		return t, nil
	}

	var parseErr error
	out := t.FilterRows(func(r dataset.Row) bool {
		v := r.Get(LivingAreaColumn)
		if dataset.IsMissing(v) {
			return true
		}
		area, err := strconv.ParseFloat(v, 64)
		if err != nil {
			if parseErr == nil {
				parseErr = errors.NewValueError("housing.DropLivingAreaOutliers",
					"non-numeric "+LivingAreaColumn+" value "+strconv.Quote(v)+" at row "+strconv.Itoa(r.Index()))
			}
			return true
		}
		return area <= LivingAreaMax
	})
	if parseErr != nil {
		return nil, parseErr
	}
	return out, nil
}

// FillDefaults replaces missing cells with the configured default in every
// column the Defaults table covers. Columns are independent, so application
// order does not matter. Absent columns are a no-op.
func FillDefaults(t *dataset.Table) *dataset.Table {
	out := t
	for _, name := range t.Columns() {
		def, ok := Defaults[name]
		if !ok {
			continue
		}
		col, err := out.Column(name)
		if err != nil {
			continue
		}
		changed := false
		for i, v := range col {
			if dataset.IsMissing(v) {
				col[i] = def
				changed = true
			}
		}
		if changed {
			// SetColumn cannot fail here: the column exists and col has the
			// table's row count.
			out, _ = out.SetColumn(name, col)
		}
	}
	return out
}

// Recode maps cell values through each column's fixed lookup table, leaving
// values without an entry untouched. Absent columns are a no-op.
func Recode(t *dataset.Table) *dataset.Table {
	out := t
	for _, name := range t.Columns() {
		table, ok := Recodings[name]
		if !ok {
			continue
		}
		col, err := out.Column(name)
		if err != nil {
			continue
		}
		changed := false
		for i, v := range col {
			if mapped, ok := table[v]; ok && mapped != v {
				col[i] = mapped
				changed = true
			}
		}
		if changed {
			out, _ = out.SetColumn(name, col)
		}
	}
	return out
}

// SplitTarget separates the SalePrice column from a cleaned table, returning
// the feature table and the target vector. Every target cell must be a
// finite number; a missing or non-numeric target is a data-shape error.
func SplitTarget(t *dataset.Table) (*dataset.Table, *mat.VecDense, error) {
	if !t.HasColumn(TargetColumn) {
		return nil, nil, errors.NewValueError("housing.SplitTarget",
			"table has no "+TargetColumn+" column")
	}

	col, err := t.Column(TargetColumn)
	if err != nil {
		return nil, nil, err
	}
	if len(col) == 0 {
		return nil, nil, errors.NewModelError("housing.SplitTarget", "no rows", errors.ErrEmptyData)
	}

	y := mat.NewVecDense(len(col), nil)
	for i, v := range col {
		if dataset.IsMissing(v) {
			return nil, nil, errors.NewValueError("housing.SplitTarget",
				"missing "+TargetColumn+" at row "+strconv.Itoa(i))
		}
		price, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return nil, nil, errors.NewValueError("housing.SplitTarget",
				"non-numeric "+TargetColumn+" value "+strconv.Quote(v)+" at row "+strconv.Itoa(i))
		}
		y.SetVec(i, price)
	}

	return t.DropColumns(TargetColumn), y, nil
}

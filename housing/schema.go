// Package housing fixes the Ames dataset schema and implements the cleaning
// stage: identifier removal, outlier filters, missing-value defaults, and
// categorical recoding.
//
// All lookup tables are package-level literals constructed once at init and
// never mutated. Cleaning functions are pure: they return a new table and
// leave their input untouched, so each step can be tested in isolation and
// the whole sequence re-run without side effects.
package housing

// Column roles in the fixed Ames schema. Headers are assumed to be in
// normalized form (punctuation and spaces stripped), as produced by
// dataset.ReadFile.
const (
	// TargetColumn is the sale price the regression predicts.
	TargetColumn = "SalePrice"

	// NeighborhoodColumn carries the categorical outlier filter.
	NeighborhoodColumn = "Neighborhood"

	// LivingAreaColumn carries the numeric outlier filter.
	LivingAreaColumn = "GrLivArea"

	// LivingAreaMax is the inclusive upper bound on above-grade living area.
	// Rows strictly above it are dropped.
	LivingAreaMax = 4000.0
)

// IdentifierColumns are record keys with no predictive value.
var IdentifierColumns = []string{"Order", "PID"}

// ExcludedNeighborhoods are categories removed outright: both have too few
// observations to support the encoded design.
var ExcludedNeighborhoods = map[string]bool{
	"GrnHill": true,
	"Landmrk": true,
}

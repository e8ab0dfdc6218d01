// Package diag implements regression diagnostic tests and the runner that
// formats their results as a plain-text report.
//
// Each test is a pure function of a fitted model (or its residual vector)
// plus test-specific parameters, returning positional statistics that pair
// with a declared list of stat names:
//
//   - Rainbow: linearity F test comparing a center-window fit to the full fit
//   - HarveyCollier: t test on recursive residuals from an expanding window
//   - JarqueBera: residual normality via skewness and kurtosis
//   - BreuschPagan: heteroskedasticity via an auxiliary regression
//
// A test whose precondition does not hold (a singular warm-up window, a
// design without a constant column) returns an error describing the
// precondition. The Runner records it as a failed Result and moves on; no
// test failure aborts the remaining checks.
//
// Example usage:
//
//	checks := diag.StandardChecks(model, X, y)
//	runner := diag.NewRunner(checks...)
//	results := runner.RunAll()
//	diag.Report(os.Stdout, results)
package diag

import (
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/ezoic/regdiag/pkg/errors"
	"github.com/ezoic/regdiag/pkg/log"
)

// Check is a single named diagnostic. Run returns one value per entry in
// StatNames, in the same order.
type Check struct {
	Title     string                    // Report block title, printed as "<Title> test:"
	StatNames []string                  // Names paired positionally with Run's values
	Run       func() ([]float64, error) // The test itself
}

// Result is the outcome of one check: statistics on success, the failure
// message otherwise.
type Result struct {
	Title     string
	StatNames []string
	Stats     []float64
	Err       error
}

// Failed reports whether the check produced an error instead of statistics.
func (r Result) Failed() bool {
	return r.Err != nil
}

// Runner executes checks in order, logging each outcome under a shared
// run identifier.
type Runner struct {
	runID  string
	logger log.Logger
	checks []Check
}

// NewRunner creates a Runner over the given checks with a fresh run ID.
func NewRunner(checks ...Check) *Runner {
	r := &Runner{
		runID:  uuid.NewString(),
		checks: checks,
	}
	r.logger = log.GetLoggerWithName("diag").With(
		log.ComponentKey, "diag",
		log.PhaseKey, log.PhaseDiagnostics,
		log.RunIDKey, r.runID,
	)
	return r
}

// RunID returns the identifier attached to this runner's log records.
func (r *Runner) RunID() string {
	return r.runID
}

// RunAll executes every check in order and returns one Result per check.
//
// A check that returns an error (or panics) is recorded as a failed Result;
// the remaining checks still run. A check that returns a statistic count
// different from its declared name count is also recorded as failed, since
// the report pairs them positionally.
func (r *Runner) RunAll() []Result {
	results := make([]Result, 0, len(r.checks))
	for _, check := range r.checks {
		start := time.Now()
		stats, err := runCheck(check)
		if err == nil && len(stats) != len(check.StatNames) {
			err = errors.Newf("check %q returned %d statistics, declared %d names",
				check.Title, len(stats), len(check.StatNames))
			stats = nil
		}

		if r.logger != nil {
			if err != nil {
				r.logger.Warn("Check failed",
					log.CheckKey, check.Title,
					log.ErrAttrKey, err.Error(),
					log.DurationMsKey, time.Since(start).Milliseconds(),
				)
			} else {
				r.logger.Info("Check completed",
					log.CheckKey, check.Title,
					log.DurationMsKey, time.Since(start).Milliseconds(),
				)
			}
		}

		results = append(results, Result{
			Title:     check.Title,
			StatNames: check.StatNames,
			Stats:     stats,
			Err:       err,
		})
	}
	return results
}

// runCheck isolates one check invocation so a panic inside a test (a
// degenerate matrix operation, say) surfaces as that check's error.
func runCheck(check Check) (stats []float64, err error) {
	defer errors.Recover(&err, "diag."+check.Title)
	return check.Run()
}

// Report writes one block per result:
//
//	<Title> test:
//	    <stat-name>: <value>
//
// with a blank line between blocks. Values are formatted with
// strconv.FormatFloat(v, 'g', -1, 64). A failed check prints its error
// message as the block body instead of statistics.
func Report(w io.Writer, results []Result) error {
	for i, res := range results {
		if i > 0 {
			if _, err := fmt.Fprintln(w); err != nil {
				return err
			}
		}
		if _, err := fmt.Fprintf(w, "%s test:\n", res.Title); err != nil {
			return err
		}
		if res.Err != nil {
			if _, err := fmt.Fprintf(w, "    %s\n", res.Err.Error()); err != nil {
				return err
			}
			continue
		}
		for j, name := range res.StatNames {
			value := strconv.FormatFloat(res.Stats[j], 'g', -1, 64)
			if _, err := fmt.Fprintf(w, "    %s: %s\n", name, value); err != nil {
				return err
			}
		}
	}
	return nil
}

package main

import (
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/ezoic/regdiag/compose"
	"github.com/ezoic/regdiag/dataset"
	"github.com/ezoic/regdiag/diag"
	"github.com/ezoic/regdiag/housing"
	"github.com/ezoic/regdiag/linear"
	"github.com/ezoic/regdiag/pkg/log"
)

var (
	runInput     string
	runDelimiter string
	runAlpha     float64
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the full cleaning, fitting, and diagnostics pipeline",
	Long: `Run loads the housing table, applies the fixed cleaning and recoding
rules, encodes the features, fits the no-intercept OLS model, and prints
the diagnostic report to stdout.

Diagnostics whose preconditions fail print their error in place of the
statistics; the run always attempts every check.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		f := cmd.Flags()
		if f.Changed("input") {
			cfg.Input = runInput
		}
		if f.Changed("delimiter") {
			cfg.Delimiter = runDelimiter
		}
		if f.Changed("alpha") {
			cfg.Alpha = runAlpha
		}
		if err := cfg.validate(); err != nil {
			return err
		}
		return runDiagnostics(cfg)
	},
}

func init() {
	rootCmd.AddCommand(runCmd)
	runCmd.Flags().StringVarP(&runInput, "input", "i", "", "path to the housing table (.csv, .tsv, .txt, .xlsx)")
	runCmd.Flags().StringVar(&runDelimiter, "delimiter", "", "field delimiter override: a single character or \"tab\"")
	runCmd.Flags().Float64Var(&runAlpha, "alpha", 0.05, "significance level for the per-check log outcome")
}

func runDiagnostics(cfg *config) error {
	logger := log.GetLoggerWithName("cmd").With(log.ComponentKey, "cmd")
	start := time.Now()

	raw, err := loadTable(cfg)
	if err != nil {
		return err
	}
	logger.Info("Dataset loaded",
		log.PathKey, cfg.Input,
		log.SamplesKey, raw.NumRows(),
		log.FeaturesKey, raw.NumCols(),
	)

	cleaned, err := housing.Clean(raw)
	if err != nil {
		return err
	}
	logger.Info("Cleaning completed",
		"rows_before", raw.NumRows(),
		"rows_after", cleaned.NumRows(),
	)

	features, y, err := housing.SplitTarget(cleaned)
	if err != nil {
		return err
	}

	X, err := compose.NewColumnTransformer().FitTransform(features)
	if err != nil {
		return err
	}
	n, k := X.Dims()
	logger.Info("Design matrix assembled", log.SamplesKey, n, log.FeaturesKey, k)

	model := linear.NewOLS()
	if err := model.Fit(X, y); err != nil {
		return err
	}
	if r2, err := model.Score(X, y); err != nil {
		logger.Warn("Score failed", log.ErrAttrKey, err)
	} else {
		logger.Info("Model fitted", log.R2ScoreKey, r2)
	}

	runner := diag.NewRunner(diag.StandardChecks(model, X, y)...)
	results := runner.RunAll()
	logSignificance(logger, results, cfg.Alpha)

	if err := diag.Report(os.Stdout, results); err != nil {
		return err
	}

	logger.Info("Run completed",
		log.RunIDKey, runner.RunID(),
		log.DurationMsKey, time.Since(start).Milliseconds(),
	)
	return nil
}

// loadTable reads the configured input file, applying the delimiter override
// when one is set.
func loadTable(cfg *config) (*dataset.Table, error) {
	var opts []dataset.Option
	if cfg.Delimiter != "" {
		d, err := parseDelimiter(cfg.Delimiter)
		if err != nil {
			return nil, err
		}
		opts = append(opts, dataset.WithDelimiter(d))
	}
	return dataset.ReadFile(cfg.Input, opts...)
}

// pValueNames are the statistic names carrying each check's significance
// probability.
var pValueNames = map[string]bool{
	"p-value":             true,
	"p value":             true,
	"Chi^2 two-tail prob": true,
}

// logSignificance logs, for every check that produced a p-value, whether its
// null hypothesis is rejected at the configured level. The printed report is
// unaffected.
func logSignificance(logger log.Logger, results []diag.Result, alpha float64) {
	for _, res := range results {
		if res.Failed() {
			continue
		}
		for i, name := range res.StatNames {
			if !pValueNames[name] {
				continue
			}
			msg := "Null hypothesis not rejected"
			if res.Stats[i] < alpha {
				msg = "Null hypothesis rejected"
			}
			logger.Info(msg,
				log.CheckKey, res.Title,
				"p_value", res.Stats[i],
				"alpha", alpha,
			)
			break
		}
	}
}

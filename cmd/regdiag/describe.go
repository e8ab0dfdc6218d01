package main

import (
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/montanaflynn/stats"
	"github.com/spf13/cobra"

	"github.com/ezoic/regdiag/dataset"
	"github.com/ezoic/regdiag/housing"
	"github.com/ezoic/regdiag/pkg/log"
)

var (
	describeInput     string
	describeDelimiter string
)

var describeCmd = &cobra.Command{
	Use:   "describe",
	Short: "Print per-column summaries of the cleaned housing table",
	Long: `Describe loads the housing table, applies the fixed cleaning and
recoding rules, and prints one summary line per column: count, missing
cells, and mean/median/min/max for numeric columns, or the number of
distinct values for categorical ones.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		f := cmd.Flags()
		if f.Changed("input") {
			cfg.Input = describeInput
		}
		if f.Changed("delimiter") {
			cfg.Delimiter = describeDelimiter
		}
		if err := cfg.validate(); err != nil {
			return err
		}

		logger := log.GetLoggerWithName("cmd").With(log.ComponentKey, "cmd")

		raw, err := loadTable(cfg)
		if err != nil {
			return err
		}
		cleaned, err := housing.Clean(raw)
		if err != nil {
			return err
		}
		logger.Info("Dataset loaded",
			log.PathKey, cfg.Input,
			log.SamplesKey, cleaned.NumRows(),
			log.FeaturesKey, cleaned.NumCols(),
		)

		return describeTable(os.Stdout, cleaned)
	},
}

func init() {
	rootCmd.AddCommand(describeCmd)
	describeCmd.Flags().StringVarP(&describeInput, "input", "i", "", "path to the housing table (.csv, .tsv, .txt, .xlsx)")
	describeCmd.Flags().StringVar(&describeDelimiter, "delimiter", "", "field delimiter override: a single character or \"tab\"")
}

// describeTable writes one summary line per column in table order.
func describeTable(w io.Writer, t *dataset.Table) error {
	width := 0
	for _, name := range t.Columns() {
		if len(name) > width {
			width = len(name)
		}
	}

	for _, name := range t.Columns() {
		line, err := summarizeColumn(t, name)
		if err != nil {
			return err
		}
		if _, err := fmt.Fprintf(w, "%-*s  %s\n", width, name, line); err != nil {
			return err
		}
	}
	return nil
}

func summarizeColumn(t *dataset.Table, name string) (string, error) {
	col, err := t.Column(name)
	if err != nil {
		return "", err
	}

	missing := 0
	for _, v := range col {
		if dataset.IsMissing(v) {
			missing++
		}
	}
	present := len(col) - missing

	if !t.IsNumeric(name) {
		distinct := make(map[string]bool)
		for _, v := range col {
			if !dataset.IsMissing(v) {
				distinct[v] = true
			}
		}
		return fmt.Sprintf("%-11s  count=%d missing=%d distinct=%d",
			"categorical", present, missing, len(distinct)), nil
	}

	values := make([]float64, 0, present)
	for _, v := range col {
		if dataset.IsMissing(v) {
			continue
		}
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return "", err
		}
		values = append(values, f)
	}
	if len(values) == 0 {
		return fmt.Sprintf("%-11s  count=0 missing=%d", "numeric", missing), nil
	}

	// stats errors only on empty input, excluded above.
	mean, _ := stats.Mean(values)
	median, _ := stats.Median(values)
	minVal, _ := stats.Min(values)
	maxVal, _ := stats.Max(values)

	return fmt.Sprintf("%-11s  count=%d missing=%d mean=%s median=%s min=%s max=%s",
		"numeric", present, missing,
		formatStat(mean), formatStat(median), formatStat(minVal), formatStat(maxVal)), nil
}

// formatStat renders a summary value with six significant digits.
func formatStat(v float64) string {
	return strconv.FormatFloat(v, 'g', 6, 64)
}

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ezoic/regdiag/pkg/log"
)

var (
	cfgFile      string
	flagLogLevel string

	// Loaded configuration, populated by initConfig before any RunE runs.
	cfg *config
)

var rootCmd = &cobra.Command{
	Use:   "regdiag",
	Short: "Regression diagnostics for the Ames housing dataset",
	Long: `regdiag loads a housing table, cleans and encodes it, fits an ordinary
least-squares model without an intercept, and runs linearity, normality,
heteroskedasticity, and multicollinearity diagnostics against the fit.

The diagnostic report is written to stdout; structured logs go to stderr.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute is the entry point called by main.main()
func Execute() {
	cobra.OnInitialize(initConfig)
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./regdiag.yaml)")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "log verbosity: debug, info, warn, error")
}

func initConfig() {
	c, err := loadConfig(cfgFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: failed to load config: %v\n", err)
		c = defaultConfig()
	}
	if rootCmd.PersistentFlags().Changed("log-level") {
		c.LogLevel = flagLogLevel
	}
	cfg = c

	log.SetLevel(log.ToLogLevel(cfg.LogLevel))
}

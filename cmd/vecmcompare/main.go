// Command vecmcompare fits the horizon aware VECM forecaster and the dense step reference on a
// synthetic integer table and reports whether both agree at every requested step.
package main

import (
	"fmt"
	"os"

	"github.com/aouyang1/go-vecm/internal/config"
	"github.com/aouyang1/go-vecm/internal/logging"
	"github.com/google/uuid"
	"github.com/pkg/profile"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "vecmcompare",
	Short: "vecmcompare checks the VECM forecaster against the dense step reference",
}

var (
	configPath    string
	seed          uint64
	rows          int
	start         string
	steps         []int
	testSize      float64
	cointRank     int
	diffLags      int
	deterministic string
	format        string
	plotPath      string
	modelOut      string
	cpuProfile    string
)

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Path to a yaml config file")

	runCmd := &cobra.Command{
		Use:           "run",
		Short:         "Run the forecast comparison",
		RunE:          runComparison,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	runCmd.Flags().Uint64VarP(&seed, "seed", "s", 0, "Seed of the synthetic table")
	runCmd.Flags().IntVarP(&rows, "rows", "n", 0, "Number of rows in the synthetic table")
	runCmd.Flags().StringVar(&start, "start", "", "First period of the synthetic table, e.g. 2005-01")
	runCmd.Flags().IntSliceVar(&steps, "horizon", nil, "Comma-separated relative forecast steps")
	runCmd.Flags().Float64Var(&testSize, "test-size", 0, "Fraction of rows held out for testing")
	runCmd.Flags().IntVar(&cointRank, "coint-rank", 0, "Cointegration rank")
	runCmd.Flags().IntVar(&diffLags, "diff-lags", 0, "Number of lagged differences")
	runCmd.Flags().StringVar(&deterministic, "deterministic", "", "Deterministic terms, n or co")
	runCmd.Flags().StringVarP(&format, "format", "f", "", "Report format, json, yaml or table")
	runCmd.Flags().StringVar(&plotPath, "plot", "", "Write an html plot of the fit to this path")
	runCmd.Flags().StringVar(&modelOut, "model-out", "", "Write the fitted model as json to this path")
	runCmd.Flags().StringVar(&cpuProfile, "cpuprofile", "", "Write a cpu profile into this directory")

	rootCmd.AddCommand(runCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// applyFlags overrides the loaded configuration with every flag set on the command line
func applyFlags(cmd *cobra.Command, cfg *config.Config) {
	flags := cmd.Flags()
	if flags.Changed("seed") {
		cfg.Data.Seed = seed
	}
	if flags.Changed("rows") {
		cfg.Data.Rows = rows
	}
	if flags.Changed("start") {
		cfg.Data.Start = start
	}
	if flags.Changed("horizon") {
		cfg.Compare.Horizon = steps
	}
	if flags.Changed("test-size") {
		cfg.Compare.TestSize = testSize
	}
	if flags.Changed("coint-rank") {
		cfg.Model.CointRank = cointRank
	}
	if flags.Changed("diff-lags") {
		cfg.Model.DiffLags = diffLags
	}
	if flags.Changed("deterministic") {
		cfg.Model.Deterministic = deterministic
	}
	if flags.Changed("format") {
		cfg.Report.Format = format
	}
	if flags.Changed("plot") {
		cfg.Report.Plot = plotPath
	}
	if flags.Changed("model-out") {
		cfg.Report.ModelOut = modelOut
	}
	if flags.Changed("cpuprofile") {
		cfg.Report.CPUProfile = cpuProfile
	}
}

func runComparison(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	applyFlags(cmd, cfg)
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid flags, %w", err)
	}

	if cfg.Report.CPUProfile != "" {
		defer profile.Start(profile.CPUProfile, profile.ProfilePath(cfg.Report.CPUProfile), profile.NoShutdownHook).Stop()
	}

	runID := uuid.NewString()
	logger := logging.WithRunID(logging.NewFromConfig(cfg.Logging, os.Stderr), runID)

	report, err := Compare(cfg, runID, logger)
	if err != nil {
		logger.Error().Err(err).Msg("comparison failed")
		return err
	}
	if err := WriteReport(cmd.OutOrStdout(), report, cfg.Report.Format); err != nil {
		return fmt.Errorf("unable to write report, %w", err)
	}
	if !report.Passed {
		return fmt.Errorf("run %s, %w", runID, ErrMismatch)
	}
	return nil
}

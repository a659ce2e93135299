package main

import (
	"os"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"fpcheck/internal/config"
	"fpcheck/internal/discovery"
	"fpcheck/internal/logging"
	"fpcheck/internal/report"
	"fpcheck/internal/store"
	"fpcheck/internal/validator"
	"fpcheck/pkg/models"
)

var (
	// Global flags
	configPath string
	reportPath string
	verbose    bool

	cfg    *config.Config
	logger *zap.Logger
)

var rootCmd = &cobra.Command{
	Use:   "fpcheck [results-dir]",
	Short: "Check that frequent itemset miners agree on their outputs",
	Long: `fpcheck compares the itemset outputs of several mining implementations.

For every baseline file <dataset>_<baseline>.<ext> in the results directory it
looks up <dataset>_<role>.<ext> for each comparison role, compares the itemsets
regardless of order, and prints a per-role score at the end.`,
	Args:              cobra.MaximumNArgs(1),
	SilenceUsage:      true,
	PersistentPreRunE: setup,
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
	RunE: runValidate,
}

var compareCmd = &cobra.Command{
	Use:   "compare <baseline-file> <other-file>",
	Short: "Compare two itemset files directly",
	Args:  cobra.ExactArgs(2),
	RunE:  runCompare,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "fpcheck.yaml", "YAML config file (missing file uses defaults)")
	rootCmd.PersistentFlags().StringVar(&reportPath, "report", "", "write a JSON lines run report to this file")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")

	rootCmd.AddCommand(compareCmd)
}

func setup(cmd *cobra.Command, args []string) error {
	var err error
	cfg, err = config.Load(configPath)
	if err != nil {
		return err
	}
	if reportPath != "" {
		cfg.ReportPath = reportPath
	}

	logger, err = logging.New(cfg.Logging, verbose)
	return err
}

func newReporter(cmd *cobra.Command) *report.Reporter {
	return report.New(cmd.OutOrStdout(), report.Options{
		ExampleThreshold: cfg.Report.ExampleThreshold,
		MaxExamples:      cfg.Report.MaxExamples,
	})
}

func runValidate(cmd *cobra.Command, args []string) (err error) {
	dir := cfg.ResultsDir
	if len(args) == 1 {
		dir = args[0]
	}

	var sink validator.Sink
	if cfg.ReportPath != "" {
		w, werr := store.NewReportWriter(cfg.ReportPath)
		if werr != nil {
			return werr
		}
		// flush errors only show up on close, they must fail the run
		defer func() {
			if cerr := w.Close(); cerr != nil && err == nil {
				logger.Error("report not written", zap.String("path", cfg.ReportPath), zap.Error(cerr))
				err = errors.Wrapf(cerr, "close report %s", cfg.ReportPath)
			}
		}()
		sink = w
	}

	logger.Debug("validating", zap.String("dir", dir), zap.Int64("max_file_bytes", cfg.MaxFileBytes))
	v := validator.New(validator.Options{
		Dir:          dir,
		MaxFileBytes: cfg.MaxFileBytes,
		Naming:       discovery.MarkerNaming{Separator: cfg.Naming.Separator},
		Baseline:     cfg.BaselineRole(),
		Roles:        cfg.ComparisonRoles(),
	}, newReporter(cmd), sink, logger)
	if _, err := v.Run(); err != nil {
		logger.Error("validation aborted", zap.Error(err))
		return err
	}
	return nil
}

func runCompare(cmd *cobra.Command, args []string) error {
	baselinePath, otherPath := args[0], args[1]

	if _, err := os.Stat(baselinePath); os.IsNotExist(err) {
		return errors.Errorf("baseline file %s not found", baselinePath)
	}

	rep := newReporter(cmd)
	baseline := models.Role{Name: "BASE", Label: "Baseline", Marker: "baseline"}
	other := models.Role{Name: "OTHER", Label: "Other", Marker: "other"}
	v := validator.New(validator.Options{
		MaxFileBytes: cfg.MaxFileBytes,
		Baseline:     baseline,
		Roles:        []models.Role{other},
	}, rep, nil, logger)

	rep.Group(baselinePath)
	rec, err := v.ComparePair(baselinePath, models.Member{Role: other, Path: otherPath})
	if err != nil {
		logger.Error("comparison aborted", zap.Error(err))
		return err
	}
	logger.Debug("compared files", zap.String("status", rec.Status))
	return nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"colguard/adapters/report"
	"colguard/adapters/tabular"
	"colguard/app"
	"colguard/domain/anomaly"
	"colguard/domain/core"
)

func main() {
	_ = godotenv.Load()

	rootCmd := &cobra.Command{
		Use:   "colguard",
		Short: "Flag anomalous values in numeric columns of tabular datasets",
	}

	rootCmd.AddCommand(
		newDetectCmd(),
		newStrategiesCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newDetectCmd() *cobra.Command {
	var (
		columns       []string
		strategyIDs   []string
		seed          int64
		ignoreZeros   bool
		workers       int
		reportPath    string
		skipWrite     bool
		estimators    int
		contamination float64
		lofNeighbors  int
		lofThreshold  float64
		zThreshold    float64
		iqrMultiplier float64
	)

	cmd := &cobra.Command{
		Use:   "detect [dataset]",
		Short: "Run anomaly detection over the given CSV or Excel dataset",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := args[0]

			specs, err := buildSpecs(columns, strategyIDs, pairOptions{
				seed:          seed,
				ignoreZeros:   ignoreZeros,
				estimators:    estimators,
				contamination: contamination,
				lofNeighbors:  lofNeighbors,
				lofThreshold:  lofThreshold,
				zThreshold:    zThreshold,
				iqrMultiplier: iqrMultiplier,
			})
			if err != nil {
				return err
			}

			tbl, err := tabular.NewDataReader().Read(path)
			if err != nil {
				return err
			}

			service := app.NewDetectorService(app.WithWorkers(workers))
			runReport, err := service.Run(cmd.Context(), tbl, specs)
			if err != nil {
				return err
			}

			if !skipWrite {
				outPath, err := tabular.NewResultWriter().WriteDataset(tbl, path)
				if err != nil {
					return err
				}
				fmt.Printf("Augmented dataset saved to: %s\n\n", outPath)
			}

			fmt.Print(app.FormatSummary(runReport.Summary))

			if reportPath != "" {
				if err := os.WriteFile(reportPath, []byte(report.Markdown(runReport)), 0o644); err != nil {
					return fmt.Errorf("failed to write report: %w", err)
				}
				fmt.Printf("\nReport written to: %s\n", reportPath)
			}
			return nil
		},
	}

	cmd.Flags().StringSliceVarP(&columns, "columns", "c", nil, "columns to test (required)")
	cmd.Flags().StringSliceVarP(&strategyIDs, "strategies", "s", []string{"zscore"},
		"strategies to apply per column: isolation_forest, lof, zscore, iqr")
	cmd.Flags().Int64Var(&seed, "seed", 42, "random seed for the isolation forest")
	cmd.Flags().BoolVar(&ignoreZeros, "ignore-zeros", false, "exclude zero values from fitting (lof, zscore, iqr)")
	cmd.Flags().IntVar(&workers, "workers", 1, "concurrent pair executions")
	cmd.Flags().StringVar(&reportPath, "report", "", "write a markdown report to this path")
	cmd.Flags().BoolVar(&skipWrite, "no-write", false, "do not persist the augmented dataset")
	cmd.Flags().IntVar(&estimators, "estimators", 100, "isolation forest: ensemble size")
	cmd.Flags().Float64Var(&contamination, "contamination", 0, "isolation forest: expected anomaly fraction, 0 for auto")
	cmd.Flags().IntVar(&lofNeighbors, "lof-neighbors", 20, "lof: neighborhood size")
	cmd.Flags().Float64Var(&lofThreshold, "lof-threshold", 15, "lof: score cutoff")
	cmd.Flags().Float64Var(&zThreshold, "zscore-threshold", 3, "zscore: |z| cutoff")
	cmd.Flags().Float64Var(&iqrMultiplier, "iqr-multiplier", 3, "iqr: whisker multiplier")
	_ = cmd.MarkFlagRequired("columns")

	return cmd
}

type pairOptions struct {
	seed          int64
	ignoreZeros   bool
	estimators    int
	contamination float64
	lofNeighbors  int
	lofThreshold  float64
	zThreshold    float64
	iqrMultiplier float64
}

// buildSpecs expands columns x strategies into the ordered pair set
func buildSpecs(columns, strategyIDs []string, opts pairOptions) ([]anomaly.PairSpec, error) {
	for _, id := range strategyIDs {
		if !anomaly.StrategyName(id).Valid() {
			return nil, fmt.Errorf("%w: %q", core.ErrStrategyUnknown, id)
		}
	}

	var specs []anomaly.PairSpec
	for _, col := range columns {
		for _, id := range strategyIDs {
			spec := anomaly.PairSpec{Column: col, Strategy: anomaly.StrategyName(id)}
			switch spec.Strategy {
			case anomaly.StrategyIsolationForest:
				cfg := anomaly.DefaultForestConfig()
				cfg.Estimators = opts.estimators
				cfg.Contamination = opts.contamination
				cfg.Seed = opts.seed
				spec.Forest = &cfg
			case anomaly.StrategyLOF:
				cfg := anomaly.DefaultLOFConfig()
				cfg.Neighbors = opts.lofNeighbors
				cfg.ScoreThreshold = opts.lofThreshold
				cfg.IgnoreZeros = opts.ignoreZeros
				spec.LOF = &cfg
			case anomaly.StrategyZScore:
				cfg := anomaly.DefaultZScoreConfig()
				cfg.Threshold = opts.zThreshold
				cfg.IgnoreZeros = opts.ignoreZeros
				spec.ZScore = &cfg
			case anomaly.StrategyIQR:
				cfg := anomaly.DefaultIQRConfig()
				cfg.Multiplier = opts.iqrMultiplier
				cfg.IgnoreZeros = opts.ignoreZeros
				spec.IQR = &cfg
			}
			specs = append(specs, spec)
		}
	}
	return specs, nil
}

func newStrategiesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "strategies",
		Short: "List recognized strategy identifiers",
		Run: func(cmd *cobra.Command, args []string) {
			descriptions := map[anomaly.StrategyName]string{
				anomaly.StrategyIsolationForest: "randomized isolation trees, contamination-based threshold",
				anomaly.StrategyLOF:             "local density ratio against n_neighbors, explicit score cutoff",
				anomaly.StrategyZScore:          "distance from mean in standard deviations",
				anomaly.StrategyIQR:             "distance outside the quartile whiskers",
			}
			for _, name := range anomaly.KnownStrategies() {
				fmt.Printf("%-18s %s\n", name, descriptions[name])
			}
		},
	}
}

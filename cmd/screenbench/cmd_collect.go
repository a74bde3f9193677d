package main

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/farnunglab/screenbench/internal/enrichment"
	"github.com/farnunglab/screenbench/internal/summary"
)

func newCollectCommand() *cobra.Command {
	var (
		root        string
		output      string
		writePivots bool
		fprFloor    float64
		seed        int64
	)

	cmd := &cobra.Command{
		Use:   "collect --root <dir>",
		Short: "Aggregate per-target results into summary tables",
		Long: `Walk the root for per-target enrichment results and assemble the final
comparison tables: the long-form auc_summary.csv, optional wide-form pivot
tables, and a per-metric aggregate with a bootstrap confidence interval over
logAUC.

Targets with missing or malformed result files are skipped with a warning;
the aggregation never fails wholesale because of one bad target.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			results, err := summary.Collect(root)
			if err != nil {
				return &SetupError{Message: err.Error()}
			}
			if len(results) == 0 {
				return &SetupError{Message: fmt.Sprintf("no result artifacts found under %s", root)}
			}

			summaryPath := output
			if summaryPath == "" {
				summaryPath = filepath.Join(root, summary.SummaryFileName)
			}
			if err := summary.WriteSummary(results, summaryPath); err != nil {
				return err
			}
			fmt.Printf("wrote %s (%d rows)\n", summaryPath, len(results))

			if writePivots {
				if err := summary.WritePivots(results, root); err != nil {
					return err
				}
				fmt.Printf("wrote pivot tables under %s\n", root)
			}

			metricSummaries := summary.Summarize(results, fprFloor, seed)
			metricPath := filepath.Join(filepath.Dir(summaryPath), "metric_summary.csv")
			if err := summary.WriteMetricSummary(metricSummaries, metricPath); err != nil {
				return err
			}

			fmt.Printf("\n%-28s %8s %10s %10s  %s\n", "metric", "targets", "mean AUC", "mean logAUC", "95% CI (logAUC)")
			for _, s := range metricSummaries {
				marker := ""
				if s.BeatsRandom {
					marker = " *"
				}
				fmt.Printf("%-28s %8d %10.4f %10.4f  [%.4f, %.4f]%s\n",
					s.Metric, s.Targets, s.MeanAUC, s.MeanLogAUC, s.LogAUCCI.Lower, s.LogAUCCI.Upper, marker)
			}
			fmt.Printf("\n* interval clears the random-classifier baseline (%.5f)\n", enrichment.RandomLogAUC(fprFloor))
			return nil
		},
	}

	cmd.Flags().StringVar(&root, "root", "", "Root directory of a completed enrichment run")
	cmd.Flags().StringVarP(&output, "output", "o", "", "Summary CSV path (default: <root>/auc_summary.csv)")
	cmd.Flags().BoolVar(&writePivots, "pivots", true, "Write wide-form pivot tables next to the summary")
	cmd.Flags().Float64Var(&fprFloor, "fpr-floor", enrichment.DefaultFPRFloor, "FPR floor used for the random baseline")
	cmd.Flags().Int64Var(&seed, "seed", -1, "Bootstrap seed (negative: non-deterministic)")
	_ = cmd.MarkFlagRequired("root")

	return cmd
}

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/farnunglab/screenbench/internal/enrichment"
	"github.com/farnunglab/screenbench/internal/orchestration"
	"github.com/farnunglab/screenbench/internal/ranking"
)

func newRunCommand() *cobra.Command {
	var (
		root       string
		jobs       int
		dryRun     bool
		directions string
		fprFloor   float64
		writePlots bool
	)

	cmd := &cobra.Command{
		Use:   "run --root <dir>",
		Short: "Compute enrichment for every split directory under a root",
		Long: `Discover every <metric>/<target> directory containing a split.csv under
the root, rank its candidates in the metric's preferred direction, and write
per-target AUC/logAUC results.

Targets missing a required input (split.csv, ligands.name, decoys.name) are
skipped with a logged warning; the batch carries on. Directories are
independent, so --jobs processes them concurrently.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			registry := ranking.DefaultRegistry()
			if directions != "" {
				var err error
				registry, err = ranking.LoadRegistry(directions)
				if err != nil {
					return err
				}
			}

			runner := &orchestration.Runner{
				Registry:   registry,
				Jobs:       jobs,
				DryRun:     dryRun,
				FPRFloor:   fprFloor,
				WritePlots: writePlots,
			}

			outcomes, err := runner.Run(cmd.Context(), root)
			if err != nil {
				return &SetupError{Message: err.Error()}
			}

			if dryRun {
				fmt.Printf("dry-run: %d target directories discovered\n", len(outcomes))
				return nil
			}

			fmt.Printf("processed %d targets: %d ok, %d skipped, %d degenerate, %d failed\n",
				len(outcomes),
				orchestration.Count(outcomes, orchestration.StatusOK),
				orchestration.Count(outcomes, orchestration.StatusSkipped),
				orchestration.Count(outcomes, orchestration.StatusDegenerate),
				orchestration.Count(outcomes, orchestration.StatusFailed))
			return nil
		},
	}

	cmd.Flags().StringVar(&root, "root", "", "Root directory containing <metric>/<target>/split.csv trees")
	cmd.Flags().IntVar(&jobs, "jobs", 0, "Number of concurrent workers (default: 4)")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Print planned actions without executing")
	cmd.Flags().StringVar(&directions, "directions", "", "YAML file mapping metric names to ranking directions")
	cmd.Flags().Float64Var(&fprFloor, "fpr-floor", enrichment.DefaultFPRFloor, "Minimum FPR of the semilog AUC integral")
	cmd.Flags().BoolVar(&writePlots, "plots", false, "Render roc.png next to each result")
	_ = cmd.MarkFlagRequired("root")

	return cmd
}

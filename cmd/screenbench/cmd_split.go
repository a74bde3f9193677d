package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/farnunglab/screenbench/internal/split"
)

func newSplitCommand() *cobra.Command {
	var (
		outDir     string
		metricName string
		idCol      string
		targetCol  string
		activeCol  string
		dryRun     bool
	)

	cmd := &cobra.Command{
		Use:   "split <table.csv> [table.csv ...]",
		Short: "Partition wide scoring tables into per-target split files",
		Long: `Partition one or more wide scoring tables into one split file per
(metric, target) pair, written to <out>/<metric>/<target>/split.csv.

The metric name is derived from each file name (<metric>_running_sum.csv);
use --metric to override it when splitting a single file. When the activity
column is present, ligands.name and decoys.name are written next to each
split. Gzipped tables (.csv.gz) are decompressed on the fly.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if metricName != "" && len(args) > 1 {
				return fmt.Errorf("--metric applies to a single input file, got %d", len(args))
			}

			for _, path := range args {
				metric := metricName
				if metric == "" {
					metric = split.MetricFromFilename(path)
				}

				stats, err := split.Partition(path, outDir, split.Options{
					Metric:       metric,
					IDColumn:     idCol,
					TargetColumn: targetCol,
					ActiveColumn: activeCol,
					DryRun:       dryRun,
				})
				if err != nil {
					return fmt.Errorf("splitting %s: %w", path, err)
				}

				fmt.Printf("%s: %d rows -> %d targets under %s/%s (%d dropped)\n",
					path, stats.Rows, stats.Targets, outDir, metric, stats.DroppedRows)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&outDir, "out", "o", ".", "Base output directory")
	cmd.Flags().StringVar(&metricName, "metric", "", "Metric column name (default: derived from file name)")
	cmd.Flags().StringVar(&idCol, "id-col", "compound_id", "Candidate identifier column")
	cmd.Flags().StringVar(&targetCol, "target-col", "recp_name", "Target/receptor identifier column")
	cmd.Flags().StringVar(&activeCol, "active-col", "is_active", "0/1 activity column for membership files")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "List planned writes without writing")

	return cmd
}

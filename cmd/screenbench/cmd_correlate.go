package main

import (
	"fmt"
	"math"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/farnunglab/screenbench/internal/dataset"
	"github.com/farnunglab/screenbench/internal/reporting"
	"github.com/farnunglab/screenbench/internal/statistics"
)

func newCorrelateCommand() *cobra.Command {
	var (
		predictedPath    string
		experimentalPath string
		idCol            string
		valueCol         string
		ic50Col          string
		plotPath         string
	)

	cmd := &cobra.Command{
		Use:   "correlate",
		Short: "Correlate predicted affinities with experimental IC50 values",
		Long: `Join a predicted-affinity table with an experimental IC50 table on the
candidate identifier, compute the Spearman rank correlation between the
prediction and log(IC50), and optionally render a scatter plot with a trend
line.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			predicted, err := dataset.LoadCSV(predictedPath)
			if err != nil {
				return err
			}
			experimental, err := dataset.LoadCSV(experimentalPath)
			if err != nil {
				return err
			}

			logIC50 := map[string]float64{}
			for _, row := range experimental {
				id := row[idCol]
				if id == "" {
					continue
				}
				v, err := strconv.ParseFloat(row[ic50Col], 64)
				if err != nil || v <= 0 {
					continue
				}
				logIC50[id] = math.Log(v)
			}

			var xs, ys []float64
			for _, row := range predicted {
				y, ok := logIC50[row[idCol]]
				if !ok {
					continue
				}
				x, err := strconv.ParseFloat(row[valueCol], 64)
				if err != nil {
					continue
				}
				xs = append(xs, x)
				ys = append(ys, y)
			}

			if len(xs) < 2 {
				return fmt.Errorf("only %d joined pairs between %s and %s; need at least 2", len(xs), predictedPath, experimentalPath)
			}

			rho := statistics.Spearman(xs, ys)
			fmt.Printf("%d pairs, Spearman correlation = %.4f\n", len(xs), rho)

			if plotPath != "" {
				title := fmt.Sprintf("%s vs log IC50, Spearman = %.2f", valueCol, rho)
				if err := reporting.WriteCorrelationPlot(xs, ys, title, valueCol, "log IC50", plotPath); err != nil {
					return err
				}
				fmt.Printf("wrote %s\n", plotPath)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&predictedPath, "predicted", "", "CSV of predicted affinities")
	cmd.Flags().StringVar(&experimentalPath, "experimental", "", "CSV of experimental IC50 values")
	cmd.Flags().StringVar(&idCol, "id-col", "zinc_id", "Join column present in both tables")
	cmd.Flags().StringVar(&valueCol, "value-col", "affinity_pred_value", "Predicted value column")
	cmd.Flags().StringVar(&ic50Col, "ic50-col", "ic50", "Experimental IC50 column")
	cmd.Flags().StringVar(&plotPath, "plot", "", "Scatter plot output path (PNG)")
	_ = cmd.MarkFlagRequired("predicted")
	_ = cmd.MarkFlagRequired("experimental")

	return cmd
}

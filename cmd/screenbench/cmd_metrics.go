package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/farnunglab/screenbench/internal/toolparse"
)

func newMetricsCommand() *cobra.Command {
	var (
		baseDir string
		output  string
	)

	cmd := &cobra.Command{
		Use:   "metrics",
		Short: "Collect APoc and DockRMSD accuracy metrics",
		Long: `Parse the APoc pocket-alignment and DockRMSD outputs left in each
per-complex directory, write a metrics.dat line per complex, and combine
everything into one accuracy table. Complexes with missing tool outputs get
blank fields rather than failing the scan.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			rows, err := toolparse.ScanComplexes(baseDir)
			if err != nil {
				return &SetupError{Message: err.Error()}
			}
			if err := toolparse.WriteAll(rows, output); err != nil {
				return err
			}
			fmt.Printf("wrote %s (%d complexes)\n", output, len(rows))
			return nil
		},
	}

	cmd.Flags().StringVar(&baseDir, "dir", "finished_outputs", "Directory of per-complex output directories")
	cmd.Flags().StringVarP(&output, "output", "o", "all_metrics.csv", "Combined accuracy table path")

	return cmd
}

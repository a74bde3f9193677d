package main

import (
	"log/slog"

	"github.com/spf13/cobra"
)

var version = "dev"

func newRootCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "screenbench",
		Short: "screenbench - virtual-screening enrichment benchmark pipeline",
		Long: `screenbench aggregates the scoring half of a structure-prediction
benchmark: it splits wide per-compound scoring tables into per-target work
directories, ranks candidates by each metric's preferred direction, computes
ROC AUC and logAUC enrichment per target, and collects everything into
summary tables.

Structure prediction, pocket alignment, and RMSD computation run as external
tools; screenbench consumes their outputs.`,
		Version:      version,
		SilenceUsage: true,
	}

	debugLogging := cmd.PersistentFlags().Bool("debug", false, "Enable debug logging")
	cmd.PersistentPreRun = func(cmd *cobra.Command, args []string) {
		if *debugLogging {
			slog.SetLogLoggerLevel(slog.LevelDebug)
		}
	}

	// Add subcommands
	cmd.AddCommand(newSplitCommand())
	cmd.AddCommand(newRunCommand())
	cmd.AddCommand(newCollectCommand())
	cmd.AddCommand(newMetricsCommand())
	cmd.AddCommand(newCorrelateCommand())

	return cmd
}

func execute() error {
	rootCmd := newRootCommand()
	return rootCmd.Execute()
}

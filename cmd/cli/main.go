package main

import (
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

// newRootCmd builds the command tree. Subcommands share one logger configured from --log.
func newRootCmd() *cobra.Command {
	logger := logrus.New()
	var logLevel string

	root := &cobra.Command{
		Use:   "sensor-cli",
		Short: "Replay recorded signals through an adaptive-rate sensor",
		Long: `Replay recorded signals through an adaptive-rate sensor.

notes:
  - simulate outputs ticks.csv with decision=TRANSMIT/SUPPRESS per sampling tick
  - ingest merges numbered raw CSV logs into one Parquet table
  - catalog lists the replayable series in a directory for the API`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			level, err := logrus.ParseLevel(logLevel)
			if err != nil {
				return err
			}
			logger.SetLevel(level)
			logger.SetOutput(cmd.ErrOrStderr())
			return nil
		},
	}
	root.PersistentFlags().StringVar(&logLevel, "log", "warn", "Log level (trace, debug, info, warn, error, fatal, panic)")

	root.AddCommand(newSimulateCmd(logger))
	root.AddCommand(newIngestCmd(logger))
	root.AddCommand(newCatalogCmd(logger))
	return root
}

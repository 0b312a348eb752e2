package main

import (
	"fmt"
	"io"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"battery-saving-sensor/internal/data"
)

func newIngestCmd(logger *logrus.Logger) *cobra.Command {
	var rawDir, outPath string
	cmd := &cobra.Command{
		Use:   "ingest",
		Short: "Merge numbered raw CSV logs into one Parquet table",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runIngest(rawDir, outPath, logger, cmd.OutOrStdout())
		},
	}
	cmd.Flags().StringVar(&rawDir, "raw", "", "Directory of raw CSV logs (file names carry a numeric order key)")
	cmd.Flags().StringVar(&outPath, "out", "raw_data_all.parquet", "Output Parquet path")
	_ = cmd.MarkFlagRequired("raw")
	return cmd
}

func runIngest(rawDir, outPath string, logger logrus.FieldLogger, stdout io.Writer) error {
	t, err := data.Ingest(rawDir, logger)
	if err != nil {
		return err
	}
	if err := data.WriteParquet(outPath, t); err != nil {
		return fmt.Errorf("write %s: %w", outPath, err)
	}
	fmt.Fprintf(stdout, "Wrote %d records (%d channels) to %s\n", len(t.Records), len(t.Channels), outPath)
	return nil
}

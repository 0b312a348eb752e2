package main

import (
	"fmt"
	"io"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"battery-saving-sensor/internal/data"
)

func newCatalogCmd(logger *logrus.Logger) *cobra.Command {
	var dir, outPath string
	cmd := &cobra.Command{
		Use:   "catalog",
		Short: "Scan a directory of series files and write the dataset catalog",
		RunE: func(cmd *cobra.Command, args []string) error {
			if outPath == "" {
				outPath = data.DefaultCatalogPath()
			}
			return runCatalog(dir, outPath, logger, cmd.OutOrStdout())
		},
	}
	cmd.Flags().StringVar(&dir, "dir", "data", "Directory holding .parquet, .csv and .json series")
	cmd.Flags().StringVar(&outPath, "out", "", "Output file path (default: $DATASETS_FILE or ./data/datasets.json)")
	return cmd
}

func runCatalog(dir, outPath string, logger logrus.FieldLogger, stdout io.Writer) error {
	c, err := data.ScanCatalog(dir)
	if err != nil {
		return fmt.Errorf("scan %s: %w", dir, err)
	}

	// Existing catalog acts as the seed for display names
	if prev, err := data.LoadCatalog(outPath); err == nil {
		if kept := c.KeepNames(prev); kept > 0 {
			logger.WithField("kept", kept).Info("kept dataset names from existing catalog")
		}
	}

	if err := data.SaveCatalog(c, outPath); err != nil {
		return err
	}
	fmt.Fprintf(stdout, "Saved %d datasets to %s\n", len(c.Datasets), outPath)
	return nil
}

package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"battery-saving-sensor/internal/config"
	"battery-saving-sensor/internal/data"
	"battery-saving-sensor/internal/sensor"
)

type simulateOptions struct {
	dataPath string
	channel  string
	cfgPath  string
	outDir   string
}

func newSimulateCmd(logger *logrus.Logger) *cobra.Command {
	var opts simulateOptions
	cmd := &cobra.Command{
		Use:   "simulate",
		Short: "Run the adaptive sampling policy over a recorded series",
		Example: `  sensor-cli simulate --data raw_data_all.parquet --channel temperature --out results
  sensor-cli simulate --config examples/config.yaml --log debug`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSimulate(opts, logger, cmd.OutOrStdout())
		},
	}
	cmd.Flags().StringVar(&opts.dataPath, "data", "", "Series file (.parquet, .csv or .json); overrides input.path")
	cmd.Flags().StringVar(&opts.channel, "channel", "", "Channel to replay; overrides input.channel")
	cmd.Flags().StringVar(&opts.cfgPath, "config", "", "Path to YAML config (optional)")
	cmd.Flags().StringVar(&opts.outDir, "out", "results", "Output directory for ticks.csv, measured.csv and transmitted.csv")
	return cmd
}

func runSimulate(opts simulateOptions, logger logrus.FieldLogger, stdout io.Writer) error {
	cfg := &config.Config{}
	if opts.cfgPath != "" {
		loaded, err := config.Load(opts.cfgPath)
		if err != nil {
			return err
		}
		cfg = loaded
	}
	if opts.dataPath != "" {
		cfg.Input.Path = opts.dataPath
	}
	if opts.channel != "" {
		cfg.Input.Channel = opts.channel
	}
	if cfg.Input.Path == "" {
		return errors.New("no series to replay: pass --data or set input.path in --config")
	}

	series, err := data.LoadSeries(cfg.Input.Path, cfg.Input.Channel)
	if err != nil {
		return fmt.Errorf("load series: %w", err)
	}

	pol, err := cfg.ResolvePolicy()
	if err != nil {
		return err
	}
	name := cfg.Sensor.Name
	if name == "" {
		name = "default"
	}
	sim := sensor.New(cfg.Sensor.ToModelParams(),
		sensor.WithPolicy(pol),
		sensor.WithLogger(logger.WithField("sensor", name)),
	)
	res, err := sim.Simulate(series)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(opts.outDir, 0o755); err != nil {
		return err
	}
	ticksPath := filepath.Join(opts.outDir, "ticks.csv")
	if err := sensor.WriteTicksCSV(ticksPath, res.Ticks); err != nil {
		return err
	}
	if err := sensor.WriteSamplesCSV(filepath.Join(opts.outDir, "measured.csv"), res.Measured); err != nil {
		return err
	}
	if err := sensor.WriteSamplesCSV(filepath.Join(opts.outDir, "transmitted.csv"), res.Transmitted); err != nil {
		return err
	}

	s := res.Summary()
	fmt.Fprintf(stdout, "Wrote %d ticks to %s\n", s.Ticks, ticksPath)
	fmt.Fprintf(stdout, "Sensor=%s grow=%s shrink=%s\n", name, pol.GrowName, pol.ShrinkName)
	fmt.Fprintf(stdout, "Window %s .. %s\n", s.Start.Format(time.RFC3339), s.End.Format(time.RFC3339))
	fmt.Fprintf(stdout, "Transmitted %d/%d samples, final period %s\n", s.Transmissions, s.Ticks, s.FinalPeriod)
	return nil
}

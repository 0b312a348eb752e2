package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/sirupsen/logrus"

	"battery-saving-sensor/internal/config"
	"battery-saving-sensor/internal/model"
	"battery-saving-sensor/internal/policy"
	"battery-saving-sensor/internal/sensor"
)

// Demo:
// - Build a synthetic minute-resolution series (constant or alternating)
// - Instantiate a sensor with default or configured parameters
// - Replay the series to show how the period reacts to the signal
func main() {
	scenario := flag.String("scenario", "all", "Synthetic series: constant, alternating or all")
	hours := flag.Int("hours", 6, "Length of the synthetic series in hours")
	cfgPath := flag.String("config", "", "Path to YAML config (optional)")
	n := flag.Int("n", 12, "Number of ticks to print per scenario")
	outCSV := flag.String("out", "", "Optional path to write the last scenario's ticks CSV (e.g. results/ticks.csv)")
	verbose := flag.Bool("v", false, "Log every tick")
	flag.Parse()

	log := logrus.New()
	if *verbose {
		log.SetLevel(logrus.DebugLevel)
	} else {
		log.SetLevel(logrus.WarnLevel)
	}

	params, pol, err := loadSetup(*cfgPath)
	if err != nil {
		log.Fatal(err)
	}

	start := time.Date(2021, 6, 1, 0, 0, 0, 0, time.UTC)
	var names []string
	switch *scenario {
	case "constant", "alternating":
		names = []string{*scenario}
	case "all":
		names = []string{"constant", "alternating"}
	default:
		log.Fatalf("unsupported scenario: %q", *scenario)
	}

	var last *sensor.Result
	for _, name := range names {
		series, err := scenarioSeries(name, start, *hours)
		if err != nil {
			log.Fatal(err)
		}

		sim := sensor.New(params,
			sensor.WithPolicy(pol),
			sensor.WithLogger(log.WithField("scenario", name)),
		)
		result, err := sim.Simulate(series)
		if err != nil {
			log.Fatal(err)
		}
		last = result

		fmt.Printf("Scenario=%s (%d samples, deadband=%.1f, grow=%s, shrink=%s)\n",
			name, series.Len(), params.Deadband, pol.GrowName, pol.ShrinkName)
		for i := 0; i < min(*n, len(result.Ticks)); i++ {
			tk := result.Ticks[i]
			fmt.Printf(
				"%s value=%7.2f  decision=%-8s  period=%6s -> %6s\n",
				tk.RequestedAt.Format("2006-01-02 15:04"),
				tk.Value,
				string(tk.Decision),
				tk.PeriodBefore,
				tk.PeriodAfter,
			)
		}
		s := result.Summary()
		fmt.Printf("Transmitted %d/%d  final period=%s\n\n", s.Transmissions, s.Ticks, s.FinalPeriod)
	}

	if *outCSV != "" {
		if err := os.MkdirAll(filepath.Dir(*outCSV), 0o755); err != nil {
			log.Fatal(err)
		}
		if err := sensor.WriteTicksCSV(*outCSV, last.Ticks); err != nil {
			log.Fatal(err)
		}
		fmt.Printf("Wrote CSV: %s\n", *outCSV)
	}
}

// loadSetup returns the default sensor and policy, or those of the config at cfgPath.
func loadSetup(cfgPath string) (model.SensorParams, policy.Policy, error) {
	if cfgPath == "" {
		return model.DefaultSensorParams(), policy.Default(), nil
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return model.SensorParams{}, policy.Policy{}, err
	}
	pol, err := cfg.ResolvePolicy()
	if err != nil {
		return model.SensorParams{}, policy.Policy{}, err
	}
	return cfg.Sensor.ToModelParams(), pol, nil
}

func scenarioSeries(name string, start time.Time, hours int) (*model.Series, error) {
	if hours <= 0 {
		return nil, fmt.Errorf("-hours must be > 0, got %d", hours)
	}
	return model.NewSeries(synthetic(name, start, hours))
}

// synthetic returns minute samples: constant 10, or 0/100 alternating every 5 minutes.
func synthetic(name string, start time.Time, hours int) []model.Sample {
	samples := make([]model.Sample, hours*60)
	for i := range samples {
		v := 10.0
		if name == "alternating" {
			v = float64((i / 5) % 2 * 100)
		}
		samples[i] = model.Sample{Timestamp: start.Add(time.Duration(i) * time.Minute), Value: v}
	}
	return samples
}

package main

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"battery-saving-sensor/internal/data"
)

var t0 = time.Date(2021, 6, 1, 0, 0, 0, 0, time.UTC)

// writeConstantLog writes minutes [from, to) of a constant two-channel log.
func writeConstantLog(t *testing.T, path string, from, to int) {
	t.Helper()
	var b strings.Builder
	b.WriteString("time,temperature,humidity\n")
	for i := from; i < to; i++ {
		fmt.Fprintf(&b, "%s,10,40\n", t0.Add(time.Duration(i)*time.Minute).Format(time.RFC3339))
	}
	require.NoError(t, os.WriteFile(path, []byte(b.String()), 0o644))
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	root := newRootCmd()
	var out, errOut bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&errOut)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func readCSV(t *testing.T, path string) [][]string {
	t.Helper()
	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()
	rows, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	return rows
}

func TestSimulate_CSV(t *testing.T) {
	// GIVEN a constant two-hour log
	dir := t.TempDir()
	logPath := filepath.Join(dir, "log_1.csv")
	writeConstantLog(t, logPath, 0, 120)
	outDir := filepath.Join(dir, "results")

	// WHEN simulated with default parameters
	stdout, err := execute(t, "simulate", "--data", logPath, "--channel", "temperature", "--out", outDir)

	// THEN one transmission across five ticks is written out
	require.NoError(t, err)
	assert.Contains(t, stdout, "Wrote 5 ticks")
	assert.Contains(t, stdout, "grow=additive shrink=reset")
	assert.Contains(t, stdout, "Transmitted 1/5 samples, final period 45m0s")

	ticks := readCSV(t, filepath.Join(outDir, "ticks.csv"))
	require.Len(t, ticks, 6)
	assert.Equal(t, "TRANSMIT", ticks[1][4])
	assert.Equal(t, "SUPPRESS", ticks[2][4])
	assert.Len(t, readCSV(t, filepath.Join(outDir, "measured.csv")), 6)
	assert.Len(t, readCSV(t, filepath.Join(outDir, "transmitted.csv")), 2)
}

func TestSimulate_ConfigFile(t *testing.T) {
	dir := t.TempDir()
	writeConstantLog(t, filepath.Join(dir, "log_1.csv"), 0, 30)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "fast.yaml"), []byte(`
sensor:
  name: fast
  initial_period: PT1M
  min_period: PT1M
  max_period: PT10M
  period_increment: PT1M
`), 0o644))
	cfgPath := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte(`
sensor_file: fast.yaml
sensor:
  deadband: 0.5
input:
  path: log_1.csv
  channel: humidity
`), 0o644))

	stdout, err := execute(t, "simulate", "--config", cfgPath, "--out", filepath.Join(dir, "out"))
	require.NoError(t, err)
	assert.Contains(t, stdout, "Sensor=fast")
	// minutes 0, 1, 3, 6, 10, 15, 21, 28
	assert.Contains(t, stdout, "Transmitted 1/8 samples, final period 8m0s")
}

func TestSimulate_Errors(t *testing.T) {
	dir := t.TempDir()
	logPath := filepath.Join(dir, "log_1.csv")
	writeConstantLog(t, logPath, 0, 10)

	_, err := execute(t, "simulate")
	assert.ErrorContains(t, err, "no series to replay")

	_, err = execute(t, "simulate", "--data", logPath)
	assert.ErrorContains(t, err, "channel is required")

	_, err = execute(t, "simulate", "--data", logPath, "--channel", "temperature", "--log", "loud")
	assert.Error(t, err)

	bad := filepath.Join(dir, "bad.yaml")
	require.NoError(t, os.WriteFile(bad, []byte("policy:\n  grow: doubling\n"), 0o644))
	_, err = execute(t, "simulate", "--config", bad, "--data", logPath, "--channel", "temperature")
	assert.ErrorContains(t, err, `unknown policy "doubling"`)
}

func TestIngestCatalogSimulate(t *testing.T) {
	// GIVEN two raw logs whose numeric keys order them
	raw := t.TempDir()
	writeConstantLog(t, filepath.Join(raw, "log_10.csv"), 60, 120)
	writeConstantLog(t, filepath.Join(raw, "log_2.csv"), 0, 60)
	dataDir := t.TempDir()
	table := filepath.Join(dataDir, "raw_data_all.parquet")

	// WHEN ingested into one table
	stdout, err := execute(t, "ingest", "--raw", raw, "--out", table)
	require.NoError(t, err)
	assert.Contains(t, stdout, "Wrote 240 records (2 channels)")

	// AND catalogued, with a name carried over from the previous catalog
	catalogPath := filepath.Join(t.TempDir(), "datasets.json")
	require.NoError(t, data.SaveCatalog(&data.Catalog{Datasets: []data.Dataset{
		{ID: "raw_data_all:temperature", Name: "Greenhouse"},
	}}, catalogPath))
	stdout, err = execute(t, "catalog", "--dir", dataDir, "--out", catalogPath)
	require.NoError(t, err)
	assert.Contains(t, stdout, "Saved 2 datasets")

	c, err := data.LoadCatalog(catalogPath)
	require.NoError(t, err)
	d, ok := c.Find("raw_data_all:temperature")
	require.True(t, ok)
	assert.Equal(t, "Greenhouse", d.Name)
	assert.Equal(t, "parquet", d.Format)

	// THEN the table replays like the raw logs
	stdout, err = execute(t, "simulate", "--data", table, "--channel", "temperature", "--out", t.TempDir())
	require.NoError(t, err)
	assert.Contains(t, stdout, "Transmitted 1/5 samples")
}

package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/multierr"

	"battery-saving-sensor/internal/model"
	"battery-saving-sensor/internal/policy"
)

func writeFile(t *testing.T, dir, name, body string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestParseDuration(t *testing.T) {
	tests := []struct {
		in   string
		want time.Duration
	}{
		{"", 0},
		{"5m", 5 * time.Minute},
		{"1h30m", 90 * time.Minute},
		{"PT5M", 5 * time.Minute},
		{"PT1H", time.Hour},
		{" 10m ", 10 * time.Minute},
	}
	for _, tc := range tests {
		got, err := ParseDuration(tc.in)
		require.NoError(t, err, tc.in)
		assert.Equal(t, tc.want, got, tc.in)
	}

	_, err := ParseDuration("five minutes")
	assert.ErrorContains(t, err, `invalid duration "five minutes"`)
}

func TestDuration_JSON(t *testing.T) {
	var sc SensorConfig
	require.NoError(t, json.Unmarshal([]byte(`{"min_period":"PT2M","max_period":"2h","deadband":0}`), &sc))
	assert.Equal(t, Duration(2*time.Minute), sc.MinPeriod)
	assert.Equal(t, Duration(2*time.Hour), sc.MaxPeriod)
	require.NotNil(t, sc.Deadband)
	assert.Equal(t, 0.0, *sc.Deadband)
}

func TestLoad_EmptySensorUsesDefaults(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "config.yaml", "input:\n  path: data.parquet\n  channel: temperature\n")

	c, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, model.DefaultSensorParams(), c.Sensor.ToModelParams())
	assert.Equal(t, "data.parquet", c.Input.Path)
	assert.Equal(t, "temperature", c.Input.Channel)

	p, err := c.ResolvePolicy()
	require.NoError(t, err)
	assert.Equal(t, policy.GrowAdditive, p.GrowName)
}

func TestLoad_SensorFileMergedUnderOverrides(t *testing.T) {
	// GIVEN a preset file and a config overriding two of its fields
	dir := t.TempDir()
	writeFile(t, dir, "sensors/slow.yaml", `
sensor:
  name: slow
  initial_period: PT10M
  min_period: 10m
  max_period: 2h
  period_increment: 20m
  deadband: 1.5
`)
	path := writeFile(t, dir, "config.yaml", `
sensor_file: sensors/slow.yaml
sensor:
  max_period: 3h
  deadband: 0
`)

	// WHEN loaded
	c, err := Load(path)
	require.NoError(t, err)

	// THEN overrides win and the rest comes from the preset
	assert.Equal(t, model.SensorParams{
		InitialPeriod:   10 * time.Minute,
		MinPeriod:       10 * time.Minute,
		MaxPeriod:       3 * time.Hour,
		PeriodIncrement: 20 * time.Minute,
		Deadband:        0,
	}, c.Sensor.ToModelParams())
	assert.Equal(t, "slow", c.Sensor.Name)
}

func TestLoad_MissingSensorFile(t *testing.T) {
	path := writeFile(t, t.TempDir(), "config.yaml", "sensor_file: nope.yaml\n")
	_, err := Load(path)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestLoad_ValidationReportsAllProblems(t *testing.T) {
	path := writeFile(t, t.TempDir(), "config.yaml", `
sensor:
  period_increment: -1m
  deadband: -2
policy:
  grow: doubling
  shrink: halving
`)
	_, err := Load(path)
	require.Error(t, err)

	errs := multierr.Errors(err)
	assert.Len(t, errs, 4)
	assert.ErrorContains(t, err, "PeriodIncrement must be >= 0")
	assert.ErrorContains(t, err, "Deadband must be >= 0")
	assert.ErrorContains(t, err, `policy.grow: unknown policy "doubling"`)
	assert.ErrorContains(t, err, `policy.shrink: unknown policy "halving"`)
}

func TestLoad_BadDuration(t *testing.T) {
	path := writeFile(t, t.TempDir(), "config.yaml", "sensor:\n  min_period: soon\n")
	_, err := Load(path)
	assert.ErrorContains(t, err, `invalid duration "soon"`)
}

func TestMergeSensor_KeepsBaseWhenOverrideEmpty(t *testing.T) {
	db := 4.0
	base := SensorConfig{Name: "base", MinPeriod: Duration(time.Minute), Deadband: &db}
	assert.Equal(t, base, MergeSensor(base, SensorConfig{}))
}

func TestLoad_ExplicitZeroIncrement(t *testing.T) {
	// GIVEN a fixed-rate sensor on top of a preset with a non-zero increment
	dir := t.TempDir()
	writeFile(t, dir, "sensors/slow.yaml", "sensor:\n  period_increment: 20m\n")
	path := writeFile(t, dir, "config.yaml", `
sensor_file: sensors/slow.yaml
sensor:
  period_increment: 0s
`)

	// WHEN loaded
	c, err := Load(path)
	require.NoError(t, err)

	// THEN the explicit zero is kept rather than replaced by a default
	assert.Equal(t, time.Duration(0), c.Sensor.ToModelParams().PeriodIncrement)
}

func TestSensorConfig_ZeroIncrementJSON(t *testing.T) {
	var sc SensorConfig
	require.NoError(t, json.Unmarshal([]byte(`{"period_increment":"0s"}`), &sc))
	require.NotNil(t, sc.PeriodIncrement)
	assert.Equal(t, time.Duration(0), sc.ToModelParams().PeriodIncrement)

	var unset SensorConfig
	require.NoError(t, json.Unmarshal([]byte(`{}`), &unset))
	assert.Equal(t, model.DefaultSensorParams().PeriodIncrement, unset.ToModelParams().PeriodIncrement)
}

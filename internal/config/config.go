package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/multierr"
	"gopkg.in/yaml.v3"

	"battery-saving-sensor/internal/model"
	"battery-saving-sensor/internal/policy"
)

// Config is the on-disk configuration shape (YAML).
type Config struct {
	// Optional: load sensor parameters from a separate YAML (e.g. examples/sensors/*.yaml).
	// If both SensorFile and Sensor are provided, Sensor overrides SensorFile.
	SensorFile string       `yaml:"sensor_file"`
	Sensor     SensorConfig `yaml:"sensor"`
	Policy     PolicyConfig `yaml:"policy"`
	Input      InputConfig  `yaml:"input"`
}

// SensorConfig mirrors model.SensorParams. Zero periods and nil pointers fall back to defaults.
type SensorConfig struct {
	Name            string   `yaml:"name" json:"name,omitempty"`
	InitialPeriod   Duration `yaml:"initial_period" json:"initial_period,omitempty"`
	MinPeriod       Duration `yaml:"min_period" json:"min_period,omitempty"`
	MaxPeriod       Duration `yaml:"max_period" json:"max_period,omitempty"`

	// PeriodIncrement and Deadband are pointers because 0 is a meaningful setting
	// (fixed-rate sampling, transmit on any change).
	PeriodIncrement *Duration `yaml:"period_increment" json:"period_increment,omitempty"`
	Deadband        *float64  `yaml:"deadband" json:"deadband,omitempty"`
}

type PolicyConfig struct {
	Grow   string `yaml:"grow"`
	Shrink string `yaml:"shrink"`
}

// InputConfig points at the recorded series to replay.
type InputConfig struct {
	Path    string `yaml:"path"`
	Channel string `yaml:"channel"`
}

func Load(path string) (*Config, error) {
	c, err := LoadUnchecked(path)
	if err != nil {
		return nil, err
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

// LoadUnchecked loads and merges config, but does not validate it.
// Useful for debugging/printing partial configs.
func LoadUnchecked(path string) (*Config, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var c Config
	if err := yaml.Unmarshal(raw, &c); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	if c.SensorFile != "" {
		loaded, err := LoadSensorFile(resolveRelative(path, c.SensorFile))
		if err != nil {
			return nil, err
		}
		c.Sensor = MergeSensor(loaded, c.Sensor)
	}
	if c.Input.Path != "" {
		c.Input.Path = resolveRelative(path, c.Input.Path)
	}
	return &c, nil
}

// resolveRelative interprets ref relative to the config file directory,
// falling back to ref as given (relative to cwd) if that doesn't exist.
func resolveRelative(configPath, ref string) string {
	if filepath.IsAbs(ref) {
		return ref
	}
	cand := filepath.Join(filepath.Dir(configPath), ref)
	if _, err := os.Stat(cand); err == nil {
		return cand
	}
	return ref
}

// Validate reports every problem with the config at once.
func (c *Config) Validate() error {
	if c == nil {
		return errors.New("config is nil")
	}
	var err error
	if verr := c.Sensor.ToModelParams().Validate(); verr != nil {
		for _, e := range multierr.Errors(verr) {
			err = multierr.Append(err, fmt.Errorf("sensor config invalid: %w", e))
		}
	}
	if c.Policy.Grow != "" && !policy.IsGrow(c.Policy.Grow) {
		err = multierr.Append(err, fmt.Errorf("policy.grow: unknown policy %q", c.Policy.Grow))
	}
	if c.Policy.Shrink != "" && !policy.IsShrink(c.Policy.Shrink) {
		err = multierr.Append(err, fmt.Errorf("policy.shrink: unknown policy %q", c.Policy.Shrink))
	}
	return err
}

// ResolvePolicy returns the configured grow/shrink pair.
func (c *Config) ResolvePolicy() (policy.Policy, error) {
	return policy.Lookup(c.Policy.Grow, c.Policy.Shrink)
}

func (s SensorConfig) ToModelParams() model.SensorParams {
	p := model.DefaultSensorParams()
	if s.InitialPeriod != 0 {
		p.InitialPeriod = s.InitialPeriod.Std()
	}
	if s.MinPeriod != 0 {
		p.MinPeriod = s.MinPeriod.Std()
	}
	if s.MaxPeriod != 0 {
		p.MaxPeriod = s.MaxPeriod.Std()
	}
	if s.PeriodIncrement != nil {
		p.PeriodIncrement = s.PeriodIncrement.Std()
	}
	if s.Deadband != nil {
		p.Deadband = *s.Deadband
	}
	return p
}

type sensorFileWrapper struct {
	Sensor SensorConfig `yaml:"sensor"`
}

// LoadSensorFile reads a preset file with a top-level `sensor:` block.
func LoadSensorFile(path string) (SensorConfig, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return SensorConfig{}, err
	}
	var w sensorFileWrapper
	if err := yaml.Unmarshal(raw, &w); err != nil {
		return SensorConfig{}, fmt.Errorf("parse %s: %w", path, err)
	}
	return w.Sensor, nil
}

// MergeSensor overlays set fields from override onto base.
// This is used when loading a sensor file and then applying overrides from the request.
func MergeSensor(base, override SensorConfig) SensorConfig {
	out := base
	if override.Name != "" {
		out.Name = override.Name
	}
	if override.InitialPeriod != 0 {
		out.InitialPeriod = override.InitialPeriod
	}
	if override.MinPeriod != 0 {
		out.MinPeriod = override.MinPeriod
	}
	if override.MaxPeriod != 0 {
		out.MaxPeriod = override.MaxPeriod
	}
	if override.PeriodIncrement != nil {
		out.PeriodIncrement = override.PeriodIncrement
	}
	if override.Deadband != nil {
		out.Deadband = override.Deadband
	}
	return out
}

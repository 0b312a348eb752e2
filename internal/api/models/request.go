package models

import (
	"battery-saving-sensor/internal/config"
	"battery-saving-sensor/internal/model"
)

// SimulateRequest represents the request body for running a simulation
type SimulateRequest struct {
	DataSource DataSourceConfig `json:"data_source" binding:"required"`
	Config     SimulationConfig `json:"config"`
	Options    SimulateOptions  `json:"options,omitempty"`
}

// DataSourceConfig defines where the recorded series comes from
type DataSourceConfig struct {
	Type      string         `json:"type" binding:"required,oneof=dataset inline"`
	DatasetID string         `json:"dataset_id,omitempty"` // catalog id, for type "dataset"
	Samples   []model.Sample `json:"samples,omitempty"`    // for type "inline"
}

// SimulationConfig contains sensor and policy configuration
type SimulationConfig struct {
	SensorFile string              `json:"sensor_file,omitempty"` // preset id under SENSOR_DIR
	Sensor     config.SensorConfig `json:"sensor,omitempty"`
	Policy     PolicyConfig        `json:"policy,omitempty"`
}

// PolicyConfig selects registered grow/shrink adjustments; empty means default
type PolicyConfig struct {
	Grow   string `json:"grow,omitempty"`
	Shrink string `json:"shrink,omitempty"`
}

// SimulateOptions contains optional simulation parameters
type SimulateOptions struct {
	IncludeSamples bool `json:"include_samples,omitempty"` // measured + transmitted series
	IncludeTicks   bool `json:"include_ticks,omitempty"`
}

// CompareRequest represents a request to compare sensor variations over one series
type CompareRequest struct {
	DataSource DataSourceConfig `json:"data_source" binding:"required"`
	BaseConfig SimulationConfig `json:"base_config"`
	Variations []Variation      `json:"variations" binding:"required,min=1,dive"`
}

// Variation defines a variation to test
type Variation struct {
	Name   string           `json:"name" binding:"required"`
	Config SimulationConfig `json:"config"`
}

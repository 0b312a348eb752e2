package models

import (
	"time"

	"battery-saving-sensor/internal/model"
)

// SimulateResponse represents the response from a simulation run
type SimulateResponse struct {
	ID          string            `json:"id"`
	Status      string            `json:"status"`
	Summary     SimulationSummary `json:"summary"`
	Measured    []model.Sample    `json:"measured,omitempty"`
	Transmitted []model.Sample    `json:"transmitted,omitempty"`
	Ticks       []TickRow         `json:"ticks,omitempty"`
}

// SimulationSummary contains run counts
type SimulationSummary struct {
	Sensor             string       `json:"sensor,omitempty"`
	Policy             PolicyConfig `json:"policy"`
	TotalTicks         int          `json:"total_ticks"`
	Transmissions      int          `json:"transmissions"`
	SimulationWindow   TimeWindow   `json:"simulation_window"`
	FinalPeriodSeconds int64        `json:"final_period_seconds"`
}

// TimeWindow represents a time range
type TimeWindow struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// TickRow represents one sampling tick
type TickRow struct {
	Index         int       `json:"index"`
	RequestedAt   time.Time `json:"requested_at"`
	SampleAt      time.Time `json:"sample_at"`
	Value         float64   `json:"value"`
	Decision      string    `json:"decision"` // "TRANSMIT", "SUPPRESS"
	PeriodBeforeS int64     `json:"period_before_s"`
	PeriodAfterS  int64     `json:"period_after_s"`
}

// TicksResponse is returned for a stored simulation
type TicksResponse struct {
	ID    string    `json:"id"`
	Ticks []TickRow `json:"ticks"`
}

// CompareResponse represents the response from a comparison
type CompareResponse struct {
	Comparison []ComparisonResult `json:"comparison"`
}

// ComparisonResult contains results for one variation
type ComparisonResult struct {
	Name    string            `json:"name"`
	Summary SimulationSummary `json:"summary"`
	Error   *ErrorDetail      `json:"error,omitempty"`
}

// SensorInfo represents information about a sensor preset
type SensorInfo struct {
	ID    string      `json:"id"`
	Name  string      `json:"name"`
	File  string      `json:"file"`
	Specs SensorSpecs `json:"specs"`
}

// SensorSpecs contains the effective sensor parameters
type SensorSpecs struct {
	InitialPeriod   string  `json:"initial_period"`
	MinPeriod       string  `json:"min_period"`
	MaxPeriod       string  `json:"max_period"`
	PeriodIncrement string  `json:"period_increment"`
	Deadband        float64 `json:"deadband"`
}

// PolicyInfo represents information about a period adjustment
type PolicyInfo struct {
	Name        string `json:"name"`
	Kind        string `json:"kind"` // "grow" or "shrink"
	Description string `json:"description"`
}

// DatasetInfo represents information about a replayable dataset
type DatasetInfo struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Format  string `json:"format"`
	Channel string `json:"channel,omitempty"`
}

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

// ErrorDetail contains error information
type ErrorDetail struct {
	Code    string                 `json:"code"`
	Message string                 `json:"message"`
	Details map[string]interface{} `json:"details,omitempty"`
}

package model

import (
	"errors"
	"time"

	"go.uber.org/multierr"
)

// SensorParams defines the sampling behaviour of an adaptive-rate sensor.
// Units:
// - periods: wall-clock durations in the series' time base
// - Deadband: same unit as the measured values
type SensorParams struct {
	InitialPeriod   time.Duration
	MinPeriod       time.Duration
	MaxPeriod       time.Duration
	PeriodIncrement time.Duration
	Deadband        float64
}

// DefaultSensorParams returns the reference battery-saving configuration.
func DefaultSensorParams() SensorParams {
	return SensorParams{
		InitialPeriod:   5 * time.Minute,
		MinPeriod:       5 * time.Minute,
		MaxPeriod:       time.Hour,
		PeriodIncrement: 10 * time.Minute,
		Deadband:        3,
	}
}

// Validate reports every problem with p.
// The simulator itself does not call this; callers that build params from user input should.
func (p SensorParams) Validate() error {
	var err error
	if p.MinPeriod <= 0 {
		err = multierr.Append(err, errors.New("MinPeriod must be > 0"))
	}
	if p.MaxPeriod < p.MinPeriod {
		err = multierr.Append(err, errors.New("MaxPeriod must be >= MinPeriod"))
	}
	if p.InitialPeriod < p.MinPeriod || p.InitialPeriod > p.MaxPeriod {
		err = multierr.Append(err, errors.New("InitialPeriod must be within [MinPeriod, MaxPeriod]"))
	}
	if p.PeriodIncrement < 0 {
		err = multierr.Append(err, errors.New("PeriodIncrement must be >= 0"))
	}
	if p.Deadband < 0 {
		err = multierr.Append(err, errors.New("Deadband must be >= 0"))
	}
	return err
}

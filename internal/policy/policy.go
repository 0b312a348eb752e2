package policy

import (
	"time"

	"battery-saving-sensor/internal/model"
)

// GrowFunc returns the measurement period to use after a tick that did not transmit.
type GrowFunc func(current time.Duration, p model.SensorParams) time.Duration

// ShrinkFunc returns the measurement period to use after a tick that transmitted.
type ShrinkFunc func(current time.Duration, p model.SensorParams) time.Duration

// Policy pairs the two period adjustments applied by the simulator.
// Either half can be swapped independently of the simulation loop.
type Policy struct {
	GrowName   string
	ShrinkName string
	Grow       GrowFunc
	Shrink     ShrinkFunc
}

// Default is additive-saturating growth with a hard reset to the floor on transmit.
func Default() Policy {
	return Policy{
		GrowName:   GrowAdditive,
		ShrinkName: ShrinkReset,
		Grow:       AdditiveGrow,
		Shrink:     ResetShrink,
	}
}

// AdditiveGrow adds PeriodIncrement and saturates at MaxPeriod.
func AdditiveGrow(current time.Duration, p model.SensorParams) time.Duration {
	next := current + p.PeriodIncrement
	if next > p.MaxPeriod {
		return p.MaxPeriod
	}
	return next
}

// ResetShrink jumps straight back to MinPeriod regardless of the current period.
func ResetShrink(_ time.Duration, p model.SensorParams) time.Duration {
	return p.MinPeriod
}

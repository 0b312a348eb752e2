package sensor

import (
	"time"

	"battery-saving-sensor/internal/model"
)

// Tick is one row of per-sample output.
// This is the primary artifact for "what happened" in a simulation.
type Tick struct {
	Index int

	// RequestedAt is the simulated clock; SampleAt is the as-of timestamp actually read.
	RequestedAt time.Time
	SampleAt    time.Time

	Value    float64
	Decision model.Decision

	PeriodBefore time.Duration
	PeriodAfter  time.Duration
}

type Result struct {
	Ticks       []Tick
	Measured    []model.Sample
	Transmitted []model.Sample
	FinalPeriod time.Duration
}

// Summary holds run counts. It deliberately carries no derived statistics.
type Summary struct {
	Ticks         int
	Transmissions int
	Start         time.Time
	End           time.Time
	FinalPeriod   time.Duration
}

func (r *Result) Summary() Summary {
	s := Summary{
		Ticks:         len(r.Ticks),
		Transmissions: len(r.Transmitted),
		FinalPeriod:   r.FinalPeriod,
	}
	if n := len(r.Measured); n > 0 {
		s.Start = r.Measured[0].Timestamp
		s.End = r.Measured[n-1].Timestamp
	}
	return s
}

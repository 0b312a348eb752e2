package sensor

import (
	"fmt"
	"io"
	"math"
	"time"

	"github.com/sirupsen/logrus"

	"battery-saving-sensor/internal/model"
	"battery-saving-sensor/internal/policy"
)

// State is the mutable part of a simulator. It is reset at the start of every Simulate call,
// except for MeasurementPeriod which carries over from the previous run.
type State struct {
	MeasurementPeriod time.Duration

	// LastTransmitted is nil until the first transmission of a run.
	LastTransmitted *float64

	Measured    []model.Sample
	Transmitted []model.Sample
}

// Simulator replays a recorded series through an adaptive sampling policy.
// A Simulator is not safe for concurrent use; the series it reads may be shared.
type Simulator struct {
	Params model.SensorParams
	State  State

	policy policy.Policy
	log    logrus.FieldLogger
}

type Option func(*Simulator)

// WithPolicy replaces the period adjustment policy.
func WithPolicy(p policy.Policy) Option {
	return func(s *Simulator) {
		if p.Grow != nil {
			s.policy.Grow, s.policy.GrowName = p.Grow, p.GrowName
		}
		if p.Shrink != nil {
			s.policy.Shrink, s.policy.ShrinkName = p.Shrink, p.ShrinkName
		}
	}
}

// WithLogger sets the logger used for per-tick and per-run messages.
func WithLogger(l logrus.FieldLogger) Option {
	return func(s *Simulator) {
		if l != nil {
			s.log = l
		}
	}
}

// New builds a simulator starting at params.InitialPeriod. Params are not validated.
func New(params model.SensorParams, opts ...Option) *Simulator {
	s := &Simulator{
		Params: params,
		State:  State{MeasurementPeriod: params.InitialPeriod},
		policy: policy.Default(),
		log:    discardLogger(),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.Reset()
	return s
}

func discardLogger() logrus.FieldLogger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

// Policy returns the active period adjustment policy.
func (s *Simulator) Policy() policy.Policy { return s.policy }

// Reset clears the measured and transmitted history and forgets the last transmitted value.
// MeasurementPeriod is left untouched.
func (s *Simulator) Reset() {
	s.State.Measured = []model.Sample{}
	s.State.Transmitted = []model.Sample{}
	s.State.LastTransmitted = nil
}

// Measure samples series as of t and records the result.
func (s *Simulator) Measure(series *model.Series, t time.Time) (model.Sample, error) {
	sample, err := series.AsOf(t)
	if err != nil {
		return model.Sample{}, err
	}
	s.State.Measured = append(s.State.Measured, sample)
	return sample, nil
}

// Transmit records sample as sent.
func (s *Simulator) Transmit(sample model.Sample) {
	s.State.Transmitted = append(s.State.Transmitted, sample)
	v := sample.Value
	s.State.LastTransmitted = &v
}

// ShouldTransmit reports whether value leaves the deadband around the last transmitted value.
// The first comparison of a run always transmits.
func (s *Simulator) ShouldTransmit(value float64) bool {
	if s.State.LastTransmitted == nil {
		return true
	}
	return math.Abs(value-*s.State.LastTransmitted) > s.Params.Deadband
}

func (s *Simulator) GrowPeriod() {
	s.State.MeasurementPeriod = s.policy.Grow(s.State.MeasurementPeriod, s.Params)
}

func (s *Simulator) ShrinkPeriod() {
	s.State.MeasurementPeriod = s.policy.Shrink(s.State.MeasurementPeriod, s.Params)
}

// Simulate replays series from its first to its last timestamp.
// Each tick measures, decides, adjusts the period, then advances time by the adjusted period.
func (s *Simulator) Simulate(series *model.Series) (*Result, error) {
	s.Reset()

	first, err := series.First()
	if err != nil {
		return nil, err
	}
	last, err := series.Last()
	if err != nil {
		return nil, err
	}

	s.State.Measured = make([]model.Sample, 0, series.Len())
	ticks := make([]Tick, 0, series.Len())
	for t, idx := first, 0; !t.After(last); idx++ {
		before := s.State.MeasurementPeriod

		sample, err := s.Measure(series, t)
		if err != nil {
			return nil, fmt.Errorf("tick %d measure: %w", idx, err)
		}

		transmit := s.ShouldTransmit(sample.Value)
		if transmit {
			s.Transmit(sample)
			s.ShrinkPeriod()
		} else {
			s.GrowPeriod()
		}

		after := s.State.MeasurementPeriod
		if after <= 0 {
			return nil, fmt.Errorf("tick %d: %w (got %s)", idx, model.ErrNonPositivePeriod, after)
		}

		tick := Tick{
			Index:        idx,
			RequestedAt:  t,
			SampleAt:     sample.Timestamp,
			Value:        sample.Value,
			Decision:     model.DecisionFromTransmitted(transmit),
			PeriodBefore: before,
			PeriodAfter:  after,
		}
		ticks = append(ticks, tick)
		s.log.WithFields(logrus.Fields{
			"tick":     idx,
			"at":       sample.Timestamp,
			"value":    sample.Value,
			"decision": tick.Decision,
			"period":   after,
		}).Debug("sensor tick")

		t = t.Add(after)
	}

	res := &Result{
		Ticks:       ticks,
		Measured:    s.State.Measured,
		Transmitted: s.State.Transmitted,
		FinalPeriod: s.State.MeasurementPeriod,
	}
	s.log.WithFields(logrus.Fields{
		"ticks":        len(ticks),
		"transmitted":  len(res.Transmitted),
		"final_period": res.FinalPeriod,
		"grow":         s.policy.GrowName,
		"shrink":       s.policy.ShrinkName,
	}).Info("simulation complete")
	return res, nil
}

// Run is a convenience that builds a fresh simulator for in and replays its series.
func Run(in model.SimulationInputs, opts ...Option) (*Result, error) {
	if in.Series == nil {
		return nil, model.ErrEmptySeries
	}
	return New(in.Sensor, opts...).Simulate(in.Series)
}

package model

import (
	"sort"
	"time"
)

// Sample is one (timestamp, value) reading.
type Sample struct {
	Timestamp time.Time `json:"timestamp"`
	Value     float64   `json:"value"`
}

// Series is an immutable, time-indexed numeric series with strictly increasing timestamps.
// It is safe to share a Series between goroutines.
type Series struct {
	samples []Sample
}

// NewSeries copies samples into a Series.
// Timestamps must be strictly increasing; an empty input yields an empty Series.
func NewSeries(samples []Sample) (*Series, error) {
	for i := 1; i < len(samples); i++ {
		if !samples[i].Timestamp.After(samples[i-1].Timestamp) {
			return nil, &UnsortedSeriesError{Index: i, Timestamp: samples[i].Timestamp}
		}
	}
	out := make([]Sample, len(samples))
	copy(out, samples)
	return &Series{samples: out}, nil
}

func (s *Series) Len() int {
	if s == nil {
		return 0
	}
	return len(s.samples)
}

// Samples returns a copy of the underlying samples.
func (s *Series) Samples() []Sample {
	out := make([]Sample, s.Len())
	if s != nil {
		copy(out, s.samples)
	}
	return out
}

// First returns the earliest timestamp.
func (s *Series) First() (time.Time, error) {
	if s.Len() == 0 {
		return time.Time{}, ErrEmptySeries
	}
	return s.samples[0].Timestamp, nil
}

// Last returns the latest timestamp.
func (s *Series) Last() (time.Time, error) {
	if s.Len() == 0 {
		return time.Time{}, ErrEmptySeries
	}
	return s.samples[len(s.samples)-1].Timestamp, nil
}

// AsOf returns the latest sample whose timestamp is at or before t.
func (s *Series) AsOf(t time.Time) (Sample, error) {
	if s.Len() == 0 {
		return Sample{}, ErrEmptySeries
	}
	// index of the first sample strictly after t
	i := sort.Search(len(s.samples), func(i int) bool {
		return s.samples[i].Timestamp.After(t)
	})
	if i == 0 {
		return Sample{}, &NoPriorSampleError{Requested: t, First: s.samples[0].Timestamp}
	}
	return s.samples[i-1], nil
}

package model

import (
	"errors"
	"fmt"
	"time"
)

var (
	// ErrEmptySeries is returned when an operation needs at least one sample.
	ErrEmptySeries = errors.New("series is empty")

	// ErrUnsortedSeries is returned when timestamps are not strictly increasing.
	ErrUnsortedSeries = errors.New("series timestamps must be strictly increasing")

	// ErrNonPositivePeriod is returned when the measurement period would stop time from advancing.
	ErrNonPositivePeriod = errors.New("measurement period must be > 0")
)

// NoPriorSampleError reports an as-of lookup that precedes every timestamp in the series.
type NoPriorSampleError struct {
	Requested time.Time
	First     time.Time
}

func (e *NoPriorSampleError) Error() string {
	return fmt.Sprintf("no sample at or before %s (series starts at %s)",
		e.Requested.Format(time.RFC3339), e.First.Format(time.RFC3339))
}

// UnsortedSeriesError pinpoints the first out-of-order sample.
type UnsortedSeriesError struct {
	Index     int
	Timestamp time.Time
}

func (e *UnsortedSeriesError) Error() string {
	return fmt.Sprintf("sample %d at %s: %v", e.Index, e.Timestamp.Format(time.RFC3339), ErrUnsortedSeries)
}

func (e *UnsortedSeriesError) Unwrap() error { return ErrUnsortedSeries }

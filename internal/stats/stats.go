// Package stats computes descriptive statistics over a sample of run durations.
package stats

import (
	"errors"
	"math"
	"time"
)

// ErrEmptySample is returned when statistics are requested for a sample with no entries.
var ErrEmptySample = errors.New("cannot compute statistics over an empty sample")

// Sample holds elapsed times in milliseconds, in the order the runs completed.
type Sample []float64

// Milliseconds converts a duration to fractional milliseconds.
func Milliseconds(d time.Duration) float64 {
	return d.Seconds() * 1000
}

// FromDurations converts durations to a Sample, preserving order.
func FromDurations(durations []time.Duration) Sample {
	sample := make(Sample, len(durations))
	for i, d := range durations {
		sample[i] = Milliseconds(d)
	}
	return sample
}

// Aggregate is the summary of a Sample. All values are in milliseconds.
type Aggregate struct {
	Count    int
	Min      float64
	Mean     float64
	Max      float64
	Variance float64 // population variance
	StdDev   float64
}

// Calculate computes min, mean, max, population variance and standard deviation.
func Calculate(s Sample) (Aggregate, error) {
	if len(s) == 0 {
		return Aggregate{}, ErrEmptySample
	}

	n := float64(len(s))
	minimum, maximum := math.Inf(1), math.Inf(-1)
	var sum float64
	for _, x := range s {
		sum += x
		minimum = math.Min(minimum, x)
		maximum = math.Max(maximum, x)
	}
	mean := sum / n

	var squares float64
	for _, x := range s {
		d := x - mean
		squares += d * d
	}
	variance := squares / n

	return Aggregate{
		Count:    len(s),
		Min:      minimum,
		Mean:     mean,
		Max:      maximum,
		Variance: variance,
		StdDev:   math.Sqrt(variance),
	}, nil
}

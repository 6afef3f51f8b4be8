package trend

import (
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// Summary holds window statistics for a set of frequency samples.
type Summary struct {
	Count  int
	Mean   float64
	StdDev float64
	Min    float64
	Max    float64
	// Drift is the last sample minus the first, a crude measure of whether
	// the chopper is still settling.
	Drift float64
}

// Summarize computes window statistics over the samples. An empty input
// yields a zero Summary.
func Summarize(samples []Sample) Summary {
	if len(samples) == 0 {
		return Summary{}
	}

	values := make([]float64, len(samples))
	for i, s := range samples {
		values[i] = s.Hz
	}

	sum := Summary{
		Count: len(values),
		Mean:  stat.Mean(values, nil),
		Min:   floats.Min(values),
		Max:   floats.Max(values),
		Drift: values[len(values)-1] - values[0],
	}
	if len(values) > 1 {
		sum.StdDev = stat.StdDev(values, nil)
	}
	return sum
}

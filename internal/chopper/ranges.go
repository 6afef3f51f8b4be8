package chopper

// ParameterRange holds the inclusive bounds for a settable parameter.
type ParameterRange struct {
	Min float64
	Max float64
}

// Contains reports whether v lies within the range.
func (r ParameterRange) Contains(v float64) bool {
	return v >= r.Min && v <= r.Max
}

// check returns a RangeError for param if v is outside the range.
func (r ParameterRange) check(param string, v float64) error {
	if !r.Contains(v) {
		return &RangeError{Param: param, Value: v, Range: r}
	}
	return nil
}

// BladeRanges maps a blade index (0-7) to the internal-frequency range that
// applies when that blade is installed. This is immutable device metadata:
// swapping the blade wheel changes which chop frequencies are physically
// reachable. Slots 6 and 7 are not populated on known hardware and carry a
// zero range, so any frequency set fails until a supported blade is fitted.
var BladeRanges = [8]ParameterRange{
	0: {1.0, 1000.0},
	1: {1.0, 100.0},
	2: {4.0, 400.0},
	3: {10.0, 1000.0},
	4: {20.0, 2000.0},
	5: {40.0, 4000.0},
	6: {0.0, 0.0},
	7: {0.0, 0.0},
}

// RangeSet holds the currently active range for each settable parameter. The
// IntFreq entry is replaced wholesale every time the blade is re-read; the
// other two are fixed device limits.
type RangeSet struct {
	IntFreq ParameterRange
	Blade   ParameterRange
	Ref     ParameterRange
}

// defaultRanges returns the ranges assumed before the blade has ever been
// queried: blade 0's frequency range, the full blade selector span, and the
// two-valued reference mode.
func defaultRanges() RangeSet {
	return RangeSet{
		IntFreq: BladeRanges[0],
		Blade:   ParameterRange{0.0, 7.0},
		Ref:     ParameterRange{0.0, 1.0},
	}
}

// bladeFrequencyRange returns the internal-frequency range for the blade
// index reported by the device. Out-of-table indices clamp to the nearest
// entry rather than panicking on a misbehaving device.
func bladeFrequencyRange(index int) ParameterRange {
	if index < 0 {
		index = 0
	}
	if index > len(BladeRanges)-1 {
		index = len(BladeRanges) - 1
	}
	return BladeRanges[index]
}

package chopper

import (
	"errors"
	"testing"
)

func TestParameterRange_Contains(t *testing.T) {
	r := ParameterRange{1.0, 1000.0}

	tests := []struct {
		v    float64
		want bool
	}{
		{1.0, true},
		{1000.0, true},
		{500.0, true},
		{0.999, false},
		{1000.001, false},
		{-1.0, false},
	}
	for _, tt := range tests {
		if got := r.Contains(tt.v); got != tt.want {
			t.Errorf("Contains(%g) = %v, want %v", tt.v, got, tt.want)
		}
	}
}

func TestParameterRange_Check(t *testing.T) {
	r := ParameterRange{0.0, 1.0}

	if err := r.check("ref", 0.5); err != nil {
		t.Errorf("check(0.5) = %v, want nil", err)
	}

	err := r.check("ref", 2.0)
	var rangeErr *RangeError
	if !errors.As(err, &rangeErr) {
		t.Fatalf("check(2.0) error type = %T, want *RangeError", err)
	}
	if rangeErr.Value != 2.0 {
		t.Errorf("RangeError.Value = %g, want 2.0", rangeErr.Value)
	}
	if rangeErr.Param != "ref" {
		t.Errorf("RangeError.Param = %q, want %q", rangeErr.Param, "ref")
	}
}

func TestZeroRangeRejectsEverything(t *testing.T) {
	// The unused blade slots carry a (0, 0) placeholder: only exactly 0 is
	// inside it, and 0 Hz is not a frequency the device accepts elsewhere
	// anyway. Verify the boundary behaviour is what validation relies on.
	r := BladeRanges[6]
	for _, v := range []float64{1.0, 100.0, -1.0, 0.001} {
		if r.Contains(v) {
			t.Errorf("placeholder range should reject %g", v)
		}
	}
}

func TestDefaultRanges(t *testing.T) {
	rs := defaultRanges()
	if rs.IntFreq != BladeRanges[0] {
		t.Errorf("default IntFreq range = %+v, want blade 0 entry %+v", rs.IntFreq, BladeRanges[0])
	}
	if rs.Blade != (ParameterRange{0.0, 7.0}) {
		t.Errorf("default Blade range = %+v, want 0-7", rs.Blade)
	}
	if rs.Ref != (ParameterRange{0.0, 1.0}) {
		t.Errorf("default Ref range = %+v, want 0-1", rs.Ref)
	}
}

func TestBladeFrequencyRange_ClampsIndex(t *testing.T) {
	if got := bladeFrequencyRange(-1); got != BladeRanges[0] {
		t.Errorf("bladeFrequencyRange(-1) = %+v, want blade 0 entry", got)
	}
	if got := bladeFrequencyRange(12); got != BladeRanges[7] {
		t.Errorf("bladeFrequencyRange(12) = %+v, want blade 7 entry", got)
	}
	if got := bladeFrequencyRange(4); got != BladeRanges[4] {
		t.Errorf("bladeFrequencyRange(4) = %+v, want blade 4 entry", got)
	}
}

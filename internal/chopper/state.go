package chopper

// Measurement is a cached device reading. Known is false until the parameter
// has been queried at least once.
type Measurement struct {
	Value float64
	Known bool
}

// State is the last-observed value of each queryable parameter. It is updated
// only by successful get-operations; a set never writes the cache directly
// because the device may clamp or round the requested value.
type State struct {
	Status  Measurement
	IntFreq Measurement
	ExFreq  Measurement
	Blade   Measurement
	Ref     Measurement
}

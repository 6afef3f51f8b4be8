package chopper

import (
	"errors"
	"fmt"
)

// ErrPortClosed is returned by every operation after Close.
var ErrPortClosed = errors.New("serial port closed")

// ErrShortReply indicates the device returned fewer bytes than the command
// echo plus trailer before the read timeout expired.
var ErrShortReply = errors.New("short reply from device")

// RangeError reports a set value outside the currently active range for a
// parameter. It carries the offending value so callers can surface it.
type RangeError struct {
	Param string
	Value float64
	Range ParameterRange
}

func (e *RangeError) Error() string {
	return fmt.Sprintf("%s value %g is out of range [%g, %g]",
		e.Param, e.Value, e.Range.Min, e.Range.Max)
}

// ParseError reports a reply that could not be decoded: either too short
// (timeout / short read) or a non-numeric payload.
type ParseError struct {
	Command string
	Reply   []byte
	Err     error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("failed to decode reply %q to command %q: %v",
		e.Reply, e.Command, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

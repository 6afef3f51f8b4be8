// Package serialio provides the serial transport used to talk to the chopper
// head. It abstracts the physical port behind a minimal interface so the
// controller can be exercised without real hardware.
package serialio

import (
	"io"
	"time"
)

// Porter defines the minimal interface needed for a serial port.
// This abstraction enables unit testing without a chopper attached.
type Porter interface {
	io.ReadWriter
	io.Closer
}

// TimeoutPorter extends Porter with read-timeout control. Real ports
// implement it; test doubles may choose to.
type TimeoutPorter interface {
	Porter
	// SetReadTimeout sets the read timeout for the serial port.
	SetReadTimeout(timeout time.Duration) error
}

// ReadTimeout is the fixed timeout applied to every reply read. The chopper
// answers well inside a second or not at all.
const ReadTimeout = 1 * time.Second

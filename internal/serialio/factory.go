package serialio

import (
	"fmt"

	"go.bug.st/serial"
)

// Open opens the serial port at the given path with the provided options,
// applies the fixed read timeout, and drains any stale bytes left in the
// device's output buffer from a previous session.
func Open(path string, opts PortOptions) (Porter, error) {
	mode, err := opts.SerialMode()
	if err != nil {
		return nil, err
	}

	port, err := serial.Open(path, mode)
	if err != nil {
		return nil, fmt.Errorf("failed to open serial port %s: %w", path, err)
	}

	if err := port.SetReadTimeout(ReadTimeout); err != nil {
		port.Close()
		return nil, fmt.Errorf("failed to set read timeout on %s: %w", path, err)
	}

	// The chopper keeps talking if the previous session died mid-exchange.
	if err := port.ResetInputBuffer(); err != nil {
		port.Close()
		return nil, fmt.Errorf("failed to reset input buffer on %s: %w", path, err)
	}

	return port, nil
}

package chopper

import (
	"bytes"
	"fmt"
	"io"
	"strconv"
	"strings"
	"sync"
)

// simChopper emulates the chopper firmware behind a serial port: it echoes
// queries followed by the value and the 3-byte trailer, applies sets silently,
// and never replies to a set. Implements serialio.Porter.
type simChopper struct {
	mu sync.Mutex

	freq   float64
	blade  float64
	ref    float64
	enable float64
	input  float64

	// roundFreq, when set, emulates the device clamping or rounding a
	// requested frequency before storing it.
	roundFreq func(float64) float64

	pending  bytes.Buffer
	commands []string
	closed   bool
}

const simTrailer = "OK\r"

func newSimChopper() *simChopper {
	return &simChopper{blade: 0, input: 55.0}
}

func (d *simChopper) Write(p []byte) (int, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.closed {
		return 0, io.ErrClosedPipe
	}

	cmd := string(p)
	d.commands = append(d.commands, cmd)

	switch {
	case strings.HasSuffix(cmd, "?\r"):
		keyword := strings.TrimSuffix(cmd, "?\r")
		value := strconv.FormatFloat(d.value(keyword), 'f', -1, 64)
		d.pending.WriteString(cmd + value + simTrailer)
	case strings.Contains(cmd, "="):
		parts := strings.SplitN(strings.TrimSuffix(cmd, "\r"), "=", 2)
		v, err := strconv.ParseFloat(parts[1], 64)
		if err != nil {
			return 0, fmt.Errorf("sim: bad set value in %q: %w", cmd, err)
		}
		d.apply(parts[0], v)
	default:
		return 0, fmt.Errorf("sim: unrecognised command %q", cmd)
	}
	return len(p), nil
}

func (d *simChopper) value(keyword string) float64 {
	switch keyword {
	case kwFreq:
		return d.freq
	case kwBlade:
		return d.blade
	case kwRef:
		return d.ref
	case kwEnable:
		return d.enable
	case kwInput:
		return d.input
	}
	return 0
}

func (d *simChopper) apply(keyword string, v float64) {
	switch keyword {
	case kwFreq:
		if d.roundFreq != nil {
			v = d.roundFreq(v)
		}
		d.freq = v
	case kwBlade:
		d.blade = v
	case kwRef:
		d.ref = v
	case kwEnable:
		d.enable = v
	}
}

func (d *simChopper) Read(p []byte) (int, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.closed {
		return 0, io.ErrClosedPipe
	}
	// An empty buffer mimics a read timeout with no data.
	if d.pending.Len() == 0 {
		return 0, nil
	}
	return d.pending.Read(p)
}

func (d *simChopper) Close() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.closed = true
	return nil
}

func (d *simChopper) sentCommands() []string {
	d.mu.Lock()
	defer d.mu.Unlock()
	out := make([]string, len(d.commands))
	copy(out, d.commands)
	return out
}

// Package chopper implements the command/response driver for the optical
// chopper head. Commands are short ASCII lines terminated by a carriage
// return; query replies echo the command followed by the numeric value and a
// fixed 3-byte trailer. The driver validates set values against the range
// table of the currently installed blade and keeps a cache of the last
// confirmed device state.
package chopper

import (
	"fmt"
	"sync"

	"github.com/banshee-data/chopctl/internal/choplog"
	"github.com/banshee-data/chopctl/internal/serialio"
)

// Wire keywords understood by the chopper firmware.
const (
	kwFreq   = "freq"
	kwBlade  = "blade"
	kwRef    = "ref"
	kwEnable = "enable"
	kwInput  = "input"
)

// Controller drives a single chopper over its serial port. The protocol has
// no request IDs or pipelining, so a mutex serialises every command/response
// exchange; within one exchange the flow is strictly write-then-read.
type Controller struct {
	mu     sync.Mutex
	port   serialio.Porter
	log    *choplog.Recorder
	ranges RangeSet
	state  State
	closed bool
}

// New creates a Controller on top of an open port. rec may be nil when
// session logging is not wanted.
func New(port serialio.Porter, rec *choplog.Recorder) *Controller {
	return &Controller{
		port:   port,
		log:    rec,
		ranges: defaultRanges(),
	}
}

// record appends a session-log entry when logging is enabled.
func (c *Controller) record(dir choplog.Direction, payload string) {
	if c.log != nil {
		c.log.Record(dir, payload)
	}
}

// send writes a command to the port and logs it. Callers hold c.mu.
func (c *Controller) send(cmd string) error {
	if c.closed {
		return ErrPortClosed
	}
	c.record(choplog.Sent, cmd)
	n, err := c.port.Write([]byte(cmd))
	if err != nil {
		return fmt.Errorf("failed to write command %q: %w", cmd, err)
	}
	if n != len(cmd) {
		return fmt.Errorf("short write for command %q: %d of %d bytes", cmd, n, len(cmd))
	}
	return nil
}

// query sends `<keyword>?\r`, reads a single reply within the port's read
// timeout, and decodes the numeric payload. Callers hold c.mu.
func (c *Controller) query(keyword string) (float64, error) {
	cmd := keyword + "?\r"
	if err := c.send(cmd); err != nil {
		return 0, err
	}

	buf := make([]byte, replyBudget)
	n, err := c.port.Read(buf)
	if err != nil {
		return 0, fmt.Errorf("failed to read reply to %q: %w", cmd, err)
	}

	// The raw payload is recorded even when it fails to decode below; a
	// transcript that drops garbled replies is useless for diagnosing them.
	c.record(choplog.Received, string(buf[:n]))

	return decodeReply(cmd, buf[:n])
}

// setCommand writes `<keyword>=<value>\r`. The chopper's acknowledgement of
// set commands is not trustworthy, so no reply is read here: callers re-query
// the parameter to learn the value the device actually settled on.
func (c *Controller) setCommand(keyword string, value float64) error {
	return c.send(keyword + "=" + formatValue(value) + "\r")
}

// Status queries the run/stop state (1 running, 0 stopped).
func (c *Controller) Status() (float64, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.readStatus()
}

func (c *Controller) readStatus() (float64, error) {
	v, err := c.query(kwEnable)
	if err != nil {
		return 0, err
	}
	c.state.Status = Measurement{Value: v, Known: true}
	return v, nil
}

// InternalFrequency queries the chopper's self-generated reference rate.
func (c *Controller) InternalFrequency() (float64, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.readIntFreq()
}

func (c *Controller) readIntFreq() (float64, error) {
	v, err := c.query(kwFreq)
	if err != nil {
		return 0, err
	}
	c.state.IntFreq = Measurement{Value: v, Known: true}
	return v, nil
}

// SetInternalFrequency sets the internal frequency and returns the value the
// device confirmed, which may be clamped or rounded.
func (c *Controller) SetInternalFrequency(v float64) (float64, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.ranges.IntFreq.check("internal frequency", v); err != nil {
		return 0, err
	}
	if err := c.setCommand(kwFreq, v); err != nil {
		return 0, err
	}
	return c.readIntFreq()
}

// Blade queries the installed blade index and swaps the active
// internal-frequency range to the one belonging to that blade. Until Blade
// has been called at least once, frequency validation runs against the blade
// 0 default and should not be trusted.
func (c *Controller) Blade() (float64, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.readBlade()
}

func (c *Controller) readBlade() (float64, error) {
	v, err := c.query(kwBlade)
	if err != nil {
		return 0, err
	}
	c.state.Blade = Measurement{Value: v, Known: true}
	// Replace the range set as one value so a partially applied update can
	// never be observed.
	c.ranges = RangeSet{
		IntFreq: bladeFrequencyRange(int(v)),
		Blade:   c.ranges.Blade,
		Ref:     c.ranges.Ref,
	}
	return v, nil
}

// SetBlade selects a blade and returns the index the device confirmed. The
// follow-up query goes to the blade itself so the frequency range tracks the
// device's actual blade selection.
func (c *Controller) SetBlade(v float64) (float64, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.ranges.Blade.check("blade", v); err != nil {
		return 0, err
	}
	if err := c.setCommand(kwBlade, v); err != nil {
		return 0, err
	}
	return c.readBlade()
}

// ReferenceMode queries whether the chopper follows its internal oscillator
// (0) or an external reference signal (1).
func (c *Controller) ReferenceMode() (float64, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.readRef()
}

func (c *Controller) readRef() (float64, error) {
	v, err := c.query(kwRef)
	if err != nil {
		return 0, err
	}
	c.state.Ref = Measurement{Value: v, Known: true}
	return v, nil
}

// SetReferenceMode selects the reference source and returns the confirmed
// mode.
func (c *Controller) SetReferenceMode(v float64) (float64, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.ranges.Ref.check("reference mode", v); err != nil {
		return 0, err
	}
	if err := c.setCommand(kwRef, v); err != nil {
		return 0, err
	}
	return c.readRef()
}

// ExternalFrequency queries the frequency of the externally supplied
// reference signal. Read-only; there is no corresponding set.
func (c *Controller) ExternalFrequency() (float64, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.readExFreq()
}

func (c *Controller) readExFreq() (float64, error) {
	v, err := c.query(kwInput)
	if err != nil {
		return 0, err
	}
	c.state.ExFreq = Measurement{Value: v, Known: true}
	return v, nil
}

// Start spins the chopper up. The firmware sends no reply to enable writes.
func (c *Controller) Start() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.setCommand(kwEnable, 1)
}

// Stop halts the chopper. As with Start, no reply is read.
func (c *Controller) Stop() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.setCommand(kwEnable, 0)
}

// ReadAll refreshes every cached parameter in a fixed order and returns the
// resulting snapshot. The first failing query aborts the refresh.
func (c *Controller) ReadAll() (State, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	reads := []func() (float64, error){
		c.readStatus,
		c.readIntFreq,
		c.readExFreq,
		c.readBlade,
		c.readRef,
	}
	for _, read := range reads {
		if _, err := read(); err != nil {
			return c.state, err
		}
	}
	return c.state, nil
}

// Snapshot returns a copy of the cached device state without touching the
// wire.
func (c *Controller) Snapshot() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Ranges returns a copy of the currently active parameter ranges.
func (c *Controller) Ranges() RangeSet {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.ranges
}

// Close releases the serial port. Closing twice is safe; every operation
// after the first Close fails fast with ErrPortClosed instead of touching the
// dead handle.
func (c *Controller) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return nil
	}
	c.closed = true
	return c.port.Close()
}

// Package choplog records the raw serial traffic of a controller session. The
// log is an ordered, append-only sequence of sent/received payloads that can
// be flushed to a writer for inspection or persisted to sqlite.
package choplog

import (
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/banshee-data/chopctl/internal/timeutil"
)

// Direction tags a log entry as outgoing or incoming traffic.
type Direction int

const (
	Sent Direction = iota
	Received
)

// Marker returns the single-character direction tag used in flushed logs.
func (d Direction) Marker() string {
	if d == Sent {
		return ">"
	}
	return "<"
}

// String implements fmt.Stringer.
func (d Direction) String() string {
	if d == Sent {
		return "sent"
	}
	return "received"
}

// Entry is one logged payload with the time it was recorded.
type Entry struct {
	Direction Direction
	Payload   string
	Timestamp time.Time
}

// Recorder accumulates entries in memory while enabled. Recording while
// disabled is a no-op; the flag is checked on every call so logging can be
// toggled mid-session.
type Recorder struct {
	mu      sync.Mutex
	clock   timeutil.Clock
	enabled bool
	entries []Entry
}

// NewRecorder creates a disabled Recorder stamping entries with the given
// clock.
func NewRecorder(clock timeutil.Clock) *Recorder {
	return &Recorder{clock: clock}
}

// SetEnabled toggles recording.
func (r *Recorder) SetEnabled(enabled bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.enabled = enabled
}

// Enabled reports whether entries are currently being recorded.
func (r *Recorder) Enabled() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.enabled
}

// Record appends an entry stamped with the current time. No-op when disabled.
func (r *Recorder) Record(dir Direction, payload string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if !r.enabled {
		return
	}
	r.entries = append(r.entries, Entry{
		Direction: dir,
		Payload:   payload,
		Timestamp: r.clock.Now(),
	})
}

// Len returns the number of buffered entries.
func (r *Recorder) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.entries)
}

// Entries returns a copy of the buffered entries in record order.
func (r *Recorder) Entries() []Entry {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Entry, len(r.entries))
	copy(out, r.entries)
	return out
}

// Drain returns the buffered entries in order and clears the log.
func (r *Recorder) Drain() []Entry {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := r.entries
	r.entries = nil
	return out
}

// FlushTo writes every buffered entry to w in record order, one line per
// entry, then clears the log. A write failure leaves the log intact so the
// flush can be retried.
func (r *Recorder) FlushTo(w io.Writer) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, e := range r.entries {
		line := fmt.Sprintf("[%s][%s] %s\n",
			e.Direction.Marker(), e.Timestamp.Format(time.RFC3339Nano), e.Payload)
		if _, err := io.WriteString(w, line); err != nil {
			return fmt.Errorf("failed to flush session log: %w", err)
		}
	}
	r.entries = nil
	return nil
}

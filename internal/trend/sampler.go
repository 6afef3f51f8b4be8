// Package trend samples the chopper's internal frequency over time and
// summarises how stable it is. It backs the `chopctl watch` command.
package trend

import (
	"context"
	"time"

	"github.com/banshee-data/chopctl/internal/monitoring"
	"github.com/banshee-data/chopctl/internal/timeutil"
)

// Sample is one frequency observation, timed relative to the start of the
// sampling window.
type Sample struct {
	Elapsed time.Duration
	Hz      float64
}

// ReadFunc returns the current internal frequency. In production this is
// Controller.InternalFrequency.
type ReadFunc func() (float64, error)

// Sampler polls a frequency source at a fixed interval.
type Sampler struct {
	Read     ReadFunc
	Clock    timeutil.Clock
	Interval time.Duration
}

// Run polls until the duration has elapsed or ctx is cancelled and returns
// the collected samples. Individual read failures are logged and skipped so a
// single garbled reply does not abort a long watch; cancellation returns the
// samples gathered so far along with ctx.Err().
func (s *Sampler) Run(ctx context.Context, duration time.Duration) ([]Sample, error) {
	start := s.Clock.Now()
	ticker := s.Clock.NewTicker(s.Interval)
	defer ticker.Stop()

	var samples []Sample
	for {
		select {
		case <-ctx.Done():
			return samples, ctx.Err()
		case <-ticker.C():
			elapsed := s.Clock.Since(start)
			if elapsed > duration {
				return samples, nil
			}
			hz, err := s.Read()
			if err != nil {
				monitoring.Logf("trend: dropping sample at %s: %v", elapsed, err)
				continue
			}
			samples = append(samples, Sample{Elapsed: elapsed, Hz: hz})
			if elapsed == duration {
				return samples, nil
			}
		}
	}
}

package cmd

import (
	"context"
	"errors"
	"fmt"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/banshee-data/chopctl/internal/chopper"
	"github.com/banshee-data/chopctl/internal/timeutil"
	"github.com/banshee-data/chopctl/internal/trend"
)

var watchFlags = struct {
	interval time.Duration
	duration time.Duration
	plotFile string
}{}

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Sample the internal frequency over time and summarise its stability",
	Args:  cobra.NoArgs,
	Run:   runWithController(watch),
}

func init() {
	watchCmd.Flags().DurationVar(&watchFlags.interval, "interval", time.Second, "time between samples")
	watchCmd.Flags().DurationVar(&watchFlags.duration, "duration", 30*time.Second, "total sampling window")
	watchCmd.Flags().StringVar(&watchFlags.plotFile, "plot", "", "write a frequency-over-time chart to this file (png, svg, pdf)")
	rootCmd.AddCommand(watchCmd)
}

func watch(c *chopper.Controller, _ *cobra.Command, _ []string) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	sampler := &trend.Sampler{
		Read:     c.InternalFrequency,
		Clock:    timeutil.RealClock{},
		Interval: watchFlags.interval,
	}

	samples, err := sampler.Run(ctx, watchFlags.duration)
	if err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	if len(samples) == 0 {
		return fmt.Errorf("no samples collected")
	}

	sum := trend.Summarize(samples)
	fmt.Printf("samples: %d\n", sum.Count)
	fmt.Printf("mean:    %.3f Hz\n", sum.Mean)
	fmt.Printf("stddev:  %.3f Hz\n", sum.StdDev)
	fmt.Printf("min:     %.3f Hz\n", sum.Min)
	fmt.Printf("max:     %.3f Hz\n", sum.Max)
	fmt.Printf("drift:   %+.3f Hz\n", sum.Drift)

	if watchFlags.plotFile != "" {
		if err := trend.SavePlot(samples, watchFlags.plotFile); err != nil {
			return err
		}
		fmt.Printf("plot written to %s\n", watchFlags.plotFile)
	}
	return nil
}

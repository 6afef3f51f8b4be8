// Package cmd implements the chopctl command line interface.
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/banshee-data/chopctl/internal/choplog"
	"github.com/banshee-data/chopctl/internal/chopper"
	"github.com/banshee-data/chopctl/internal/monitoring"
	"github.com/banshee-data/chopctl/internal/serialio"
	"github.com/banshee-data/chopctl/internal/timeutil"
)

var rootFlags = struct {
	port       string
	logEnabled bool
	logFile    string
	logDB      string
}{}

var rootCmd = &cobra.Command{
	Use:   "chopctl",
	Short: "Control a serial-attached optical chopper.",
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&rootFlags.port, "port", "/dev/ttyUSB0", "serial port the chopper is attached to")
	rootCmd.PersistentFlags().BoolVar(&rootFlags.logEnabled, "log", false, "record the serial traffic of this session")
	rootCmd.PersistentFlags().StringVar(&rootFlags.logFile, "log-file", "chopper-session.log", "file the session log is flushed to")
	rootCmd.PersistentFlags().StringVar(&rootFlags.logDB, "log-db", "", "sqlite database to persist the session log to instead of --log-file")
}

// runWithController opens the serial port, wires up the controller and the
// session log, runs f, then closes the port and flushes the log.
func runWithController(f func(*chopper.Controller, *cobra.Command, []string) error) func(*cobra.Command, []string) {
	return func(cmd *cobra.Command, args []string) {
		port, err := serialio.Open(rootFlags.port, serialio.PortOptions{})
		if err != nil {
			fatalf("cannot open %s: %v", rootFlags.port, err)
		}

		rec := choplog.NewRecorder(timeutil.RealClock{})
		rec.SetEnabled(rootFlags.logEnabled)

		controller := chopper.New(port, rec)
		runErr := f(controller, cmd, args)

		if err := controller.Close(); err != nil {
			monitoring.Logf("failed to close serial port: %v", err)
		}
		flushSessionLog(rec)

		if runErr != nil {
			fatalf("%v", runErr)
		}
	}
}

func fatalf(format string, v ...interface{}) {
	fmt.Fprintf(os.Stderr, format+"\n", v...)
	os.Exit(1)
}

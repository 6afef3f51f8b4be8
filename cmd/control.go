package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/banshee-data/chopctl/internal/chopper"
)

var startCmd = &cobra.Command{
	Use:   "start",
	Short: "Start the chopper",
	Args:  cobra.NoArgs,
	Run:   runWithController(start),
}

var stopCmd = &cobra.Command{
	Use:   "stop",
	Short: "Stop the chopper",
	Args:  cobra.NoArgs,
	Run:   runWithController(stop),
}

func init() {
	rootCmd.AddCommand(startCmd)
	rootCmd.AddCommand(stopCmd)
}

func start(c *chopper.Controller, _ *cobra.Command, _ []string) error {
	if err := c.Start(); err != nil {
		return err
	}
	fmt.Println("start signal sent")
	return nil
}

func stop(c *chopper.Controller, _ *cobra.Command, _ []string) error {
	if err := c.Stop(); err != nil {
		return err
	}
	fmt.Println("stop signal sent")
	return nil
}

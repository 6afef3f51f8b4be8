package cmd

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/banshee-data/chopctl/internal/chopper"
)

var setCmd = &cobra.Command{
	Use:   "set <freq|blade|ref> <value>",
	Short: "Set a chopper parameter and report the device-confirmed value",
	Args:  cobra.ExactArgs(2),
	Run:   runWithController(set),
}

func init() {
	rootCmd.AddCommand(setCmd)
}

func set(c *chopper.Controller, _ *cobra.Command, args []string) error {
	value, err := strconv.ParseFloat(args[1], 64)
	if err != nil {
		return fmt.Errorf("invalid value %q: %w", args[1], err)
	}

	switch args[0] {
	case "freq":
		confirmed, err := c.SetInternalFrequency(value)
		if err != nil {
			return err
		}
		fmt.Printf("internal frequency: %g Hz\n", confirmed)
	case "blade":
		confirmed, err := c.SetBlade(value)
		if err != nil {
			return err
		}
		r := c.Ranges().IntFreq
		fmt.Printf("blade: %d (frequency range %g-%g Hz)\n", int(confirmed), r.Min, r.Max)
	case "ref":
		confirmed, err := c.SetReferenceMode(value)
		if err != nil {
			return err
		}
		fmt.Printf("reference mode: %s\n", refModeName(confirmed))
	default:
		return fmt.Errorf("unknown parameter %q (settable: freq, blade, ref)", args[0])
	}
	return nil
}

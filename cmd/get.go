package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/banshee-data/chopctl/internal/chopper"
)

var getCmd = &cobra.Command{
	Use:       "get <freq|blade|ref|status|input|all>",
	Short:     "Query a chopper parameter",
	Args:      cobra.ExactArgs(1),
	ValidArgs: []string{"freq", "blade", "ref", "status", "input", "all"},
	Run:       runWithController(get),
}

func init() {
	rootCmd.AddCommand(getCmd)
}

func get(c *chopper.Controller, _ *cobra.Command, args []string) error {
	switch args[0] {
	case "freq":
		v, err := c.InternalFrequency()
		if err != nil {
			return err
		}
		fmt.Printf("internal frequency: %g Hz\n", v)
	case "blade":
		v, err := c.Blade()
		if err != nil {
			return err
		}
		r := c.Ranges().IntFreq
		fmt.Printf("blade: %d (frequency range %g-%g Hz)\n", int(v), r.Min, r.Max)
	case "ref":
		v, err := c.ReferenceMode()
		if err != nil {
			return err
		}
		fmt.Printf("reference mode: %s\n", refModeName(v))
	case "status":
		v, err := c.Status()
		if err != nil {
			return err
		}
		fmt.Printf("status: %s\n", statusName(v))
	case "input":
		v, err := c.ExternalFrequency()
		if err != nil {
			return err
		}
		fmt.Printf("external frequency: %g Hz\n", v)
	case "all":
		state, err := c.ReadAll()
		if err != nil {
			return err
		}
		printState(state)
	default:
		return fmt.Errorf("unknown parameter %q", args[0])
	}
	return nil
}

func printState(s chopper.State) {
	fmt.Printf("status:             %s\n", statusName(s.Status.Value))
	fmt.Printf("internal frequency: %g Hz\n", s.IntFreq.Value)
	fmt.Printf("external frequency: %g Hz\n", s.ExFreq.Value)
	fmt.Printf("blade:              %d\n", int(s.Blade.Value))
	fmt.Printf("reference mode:     %s\n", refModeName(s.Ref.Value))
}

func statusName(v float64) string {
	if v == 0 {
		return "stopped"
	}
	return "running"
}

func refModeName(v float64) string {
	if v == 0 {
		return "internal"
	}
	return "external"
}

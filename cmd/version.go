package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/banshee-data/chopctl/internal/version"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print build information",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("chopctl %s (%s, built %s)\n", version.Version, version.GitSHA, version.BuildTime)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}

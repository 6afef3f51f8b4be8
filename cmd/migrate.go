package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate <up|down|version>",
	Short: "Manage the log database schema",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		store := openLogStore()
		defer store.Close()

		switch args[0] {
		case "up":
			// NewStore already migrates up on open.
			fmt.Println("migrations applied")
		case "down":
			if err := store.MigrateDown(); err != nil {
				fatalf("migration down failed: %v", err)
			}
			fmt.Println("rolled back one migration")
		case "version":
			version, dirty, err := store.MigrateVersion()
			if err != nil {
				fatalf("failed to read migration version: %v", err)
			}
			fmt.Printf("version %d (dirty: %v)\n", version, dirty)
		default:
			fatalf("unknown migrate action %q", args[0])
		}
	},
}

func init() {
	rootCmd.AddCommand(migrateCmd)
}

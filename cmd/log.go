package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/banshee-data/chopctl/internal/choplog"
	"github.com/banshee-data/chopctl/internal/monitoring"
)

var logCmd = &cobra.Command{
	Use:   "log",
	Short: "Inspect persisted session logs",
}

var logSessionsCmd = &cobra.Command{
	Use:   "sessions",
	Short: "List sessions stored in the log database",
	Run: func(cmd *cobra.Command, args []string) {
		store := openLogStore()
		defer store.Close()

		sessions, err := store.Sessions()
		if err != nil {
			fatalf("failed to list sessions: %v", err)
		}
		for _, s := range sessions {
			fmt.Printf("%s  %s  %s\n", s.ID, s.OpenedAt.Format(time.RFC3339), s.Port)
		}
	},
}

var logShowCmd = &cobra.Command{
	Use:   "show <session-id>",
	Short: "Print the entries of one persisted session",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		id, err := uuid.Parse(args[0])
		if err != nil {
			fatalf("invalid session id %q: %v", args[0], err)
		}

		store := openLogStore()
		defer store.Close()

		entries, err := store.SessionEntries(id)
		if err != nil {
			fatalf("failed to load session %s: %v", id, err)
		}
		for _, e := range entries {
			fmt.Printf("[%s][%s] %s\n",
				e.Direction.Marker(), e.Timestamp.Format(time.RFC3339Nano), e.Payload)
		}
	},
}

func init() {
	logCmd.AddCommand(logSessionsCmd)
	logCmd.AddCommand(logShowCmd)
	rootCmd.AddCommand(logCmd)
}

func openLogStore() *choplog.Store {
	if rootFlags.logDB == "" {
		fatalf("--log-db is required for this command")
	}
	store, err := choplog.NewStore(rootFlags.logDB)
	if err != nil {
		fatalf("failed to open log database: %v", err)
	}
	return store
}

// flushSessionLog drains the recorder into the configured sink: the sqlite
// store when --log-db is set, the log file otherwise.
func flushSessionLog(rec *choplog.Recorder) {
	if !rec.Enabled() || rec.Len() == 0 {
		return
	}

	if rootFlags.logDB != "" {
		store, err := choplog.NewStore(rootFlags.logDB)
		if err != nil {
			monitoring.Logf("failed to open log database: %v", err)
			return
		}
		defer store.Close()

		id := uuid.New()
		if err := store.SaveSession(id, rootFlags.port, time.Now(), rec.Drain()); err != nil {
			monitoring.Logf("failed to persist session log: %v", err)
			return
		}
		fmt.Printf("session log saved as %s\n", id)
		return
	}

	f, err := os.OpenFile(rootFlags.logFile, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		monitoring.Logf("failed to open session log file: %v", err)
		return
	}
	defer f.Close()

	if err := rec.FlushTo(f); err != nil {
		monitoring.Logf("failed to flush session log: %v", err)
	}
}

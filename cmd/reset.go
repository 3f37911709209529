package cmd

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/spf13/cobra"
)

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Delete the event journal",
	RunE: func(cmd *cobra.Command, args []string) error {
		yes, _ := cmd.Flags().GetBool("yes")

		dbPath, err := resolveDBPath()
		if err != nil {
			return fmt.Errorf("resolve database path: %w", err)
		}

		out := cmd.OutOrStdout()
		if !yes {
			fmt.Fprintf(out, "This deletes every recorded game in %s.\n", dbPath)
			fmt.Fprintln(out, "Run again with --yes to confirm.")
			return nil
		}

		removed := 0
		// SQLite keeps WAL and shared-memory files next to the database.
		for _, p := range []string{dbPath, dbPath + "-wal", dbPath + "-shm"} {
			err := os.Remove(p)
			switch {
			case err == nil:
				removed++
			case errors.Is(err, fs.ErrNotExist):
			default:
				return fmt.Errorf("remove %s: %w", p, err)
			}
		}

		if removed == 0 {
			fmt.Fprintln(out, "No journal found.")
			return nil
		}
		fmt.Fprintf(out, "Deleted %s.\n", dbPath)
		return nil
	},
}

func init() {
	resetCmd.Flags().Bool("yes", false, "Confirm the deletion")
}

package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
)

// dbCmd represents the base command for database operations.
var dbCmd = &cobra.Command{
	Use:   "db",
	Short: "Manage the local request log.",
}

// resetCmd represents the command to reset the database.
var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Delete the local request log database.",
	RunE: func(cmd *cobra.Command, args []string) error {
		dbPath := cfg.History.Path
		out := cmd.OutOrStdout()

		if _, err := os.Stat(dbPath); os.IsNotExist(err) {
			fmt.Fprintln(out, "Database file does not exist. Nothing to do.")
			return nil
		}

		fmt.Fprintf(out, "Are you sure you want to delete the database file at %s? [y/N]: ", dbPath)
		response, _ := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')

		if strings.EqualFold(strings.TrimSpace(response), "y") {
			if err := os.Remove(dbPath); err != nil {
				return fmt.Errorf("error deleting database file: %w", err)
			}
			fmt.Fprintln(out, "Database file successfully deleted.")
		} else {
			fmt.Fprintln(out, "Reset cancelled.")
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(dbCmd)
	dbCmd.AddCommand(resetCmd)
}

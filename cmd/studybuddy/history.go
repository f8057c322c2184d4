package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"study-buddy/internal/db"
)

var historyLimit int

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show recent requests from the local request log.",
	RunE: func(cmd *cobra.Command, args []string) error {
		database, err := db.InitDB(cfg.History.Path)
		if err != nil {
			return fmt.Errorf("error initializing database: %w", err)
		}
		defer database.Close()

		entries, err := db.RecentEntries(cmd.Context(), database, historyLimit)
		if err != nil {
			return err
		}
		printEntries(cmd.OutOrStdout(), entries)
		return nil
	},
}

// historySearchCmd represents the history search command
var historySearchCmd = &cobra.Command{
	Use:   "search [query]",
	Short: "Search the request log.",
	Long:  `Finds logged requests whose input contains the query, or whose feature equals it.`,
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		query := strings.Join(args, " ")
		fmt.Fprintf(cmd.OutOrStdout(), "Searching for: \"%s\"\n\n", query)

		database, err := db.InitDB(cfg.History.Path)
		if err != nil {
			return fmt.Errorf("error initializing database: %w", err)
		}
		defer database.Close()

		entries, err := db.SearchEntries(cmd.Context(), database, query, historyLimit)
		if err != nil {
			return fmt.Errorf("error performing search: %w", err)
		}
		printEntries(cmd.OutOrStdout(), entries)
		return nil
	},
}

func printEntries(out io.Writer, entries []db.Entry) {
	if len(entries) == 0 {
		fmt.Fprintln(out, "No results found.")
		return
	}

	fmt.Fprintf(out, "Found %d results:\n", len(entries))
	for _, e := range entries {
		fmt.Fprintf(out, "----------------------------------------\n")
		fmt.Fprintf(out, "%s  %-9s  %-7s  %dms\n", e.CreatedAt.Local().Format("2006-01-02 15:04:05"), e.Feature, e.Status, e.LatencyMS)
		fmt.Fprintf(out, "Input: %s\n", preview(e.Input, 120))
		if e.Error != "" {
			fmt.Fprintf(out, "Error: %s\n", e.Error)
		}
	}
	fmt.Fprintf(out, "----------------------------------------\n")
}

func preview(s string, n int) string {
	s = strings.Join(strings.Fields(s), " ")
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n]) + "..."
}

func init() {
	rootCmd.AddCommand(historyCmd)
	historyCmd.AddCommand(historySearchCmd)
	historyCmd.PersistentFlags().IntVar(&historyLimit, "limit", 20, "Maximum number of entries to show")
}

package main

import (
	"fmt"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"study-buddy/internal/config"
	"study-buddy/internal/shell"
	"study-buddy/internal/tui"
)

var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Open the terminal UI.",
	RunE: func(cmd *cobra.Command, args []string) error {
		// Log lines would corrupt the screen; send them to a file instead.
		logPath := filepath.Join(config.Dir(), "tui.log")
		if err := os.MkdirAll(filepath.Dir(logPath), 0o755); err != nil {
			return err
		}
		logFile, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
		if err != nil {
			return fmt.Errorf("could not open log file: %w", err)
		}
		defer logFile.Close()
		if err := config.InitLogger(cfg.Log, logFile); err != nil {
			return err
		}

		svc, label, closeFn, err := newService(cmd.Context(), cfg)
		if err != nil {
			return err
		}
		defer closeFn()

		model := tui.New(cmd.Context(), shell.New(svc), label)
		_, err = tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(cmd.Context())).Run()
		return err
	},
}

func init() {
	rootCmd.AddCommand(tuiCmd)
}

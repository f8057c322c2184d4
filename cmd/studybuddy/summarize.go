package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"study-buddy/internal/controller"
)

var notesFile string

// summarizeCmd represents the summarize command
var summarizeCmd = &cobra.Command{
	Use:   "summarize [notes...]",
	Short: "Summarize notes into key bullet points.",
	Long: `Sends your notes to the AI provider and prints a concise bullet-point summary.
Notes are taken from the arguments, from --file, or from standard input.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		notes, err := readNotes(args, notesFile, cmd.InOrStdin())
		if err != nil {
			return err
		}

		svc, _, closeFn, err := newService(cmd.Context(), cfg)
		if err != nil {
			return err
		}
		defer closeFn()

		return runText(cmd.Context(), cmd.OutOrStdout(), controller.NewText(svc.Summarize), notes)
	},
}

// readNotes picks the notes source: arguments first, then the file, then
// piped standard input.
func readNotes(args []string, file string, stdin io.Reader) (string, error) {
	switch {
	case len(args) > 0:
		return strings.Join(args, " "), nil
	case file != "":
		b, err := os.ReadFile(file)
		if err != nil {
			return "", fmt.Errorf("could not read notes: %w", err)
		}
		return string(b), nil
	}
	if f, ok := stdin.(*os.File); ok {
		if info, err := f.Stat(); err == nil && info.Mode()&os.ModeCharDevice != 0 {
			return "", fmt.Errorf("no notes given: pass them as arguments, with --file, or on stdin")
		}
	}
	b, err := io.ReadAll(stdin)
	if err != nil {
		return "", fmt.Errorf("could not read notes: %w", err)
	}
	return string(b), nil
}

func init() {
	rootCmd.AddCommand(summarizeCmd)
	summarizeCmd.Flags().StringVarP(&notesFile, "file", "f", "", "Read notes from this file")
}

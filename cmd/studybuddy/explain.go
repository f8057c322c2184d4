package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"study-buddy/internal/controller"
)

var errNothingToDo = errors.New("input is empty")

var explainCmd = &cobra.Command{
	Use:   "explain <topic...>",
	Short: "Explain a topic in simple terms.",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, _, closeFn, err := newService(cmd.Context(), cfg)
		if err != nil {
			return err
		}
		defer closeFn()

		return runText(cmd.Context(), cmd.OutOrStdout(), controller.NewText(svc.Explain), strings.Join(args, " "))
	},
}

// runText drives a text panel to completion and prints its outcome.
func runText(ctx context.Context, out io.Writer, c *controller.Text, input string) error {
	c.SetInput(input)
	done := c.Submit(ctx)
	if done == nil {
		return errNothingToDo
	}
	select {
	case <-done:
	case <-ctx.Done():
		return ctx.Err()
	}

	snap := c.Snapshot()
	if snap.Status == controller.StatusFailure {
		return errors.New(snap.Error)
	}
	fmt.Fprintln(out, snap.Result)
	return nil
}

func init() {
	rootCmd.AddCommand(explainCmd)
}

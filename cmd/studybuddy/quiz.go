package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"study-buddy/internal/controller"
)

var quizCmd = &cobra.Command{
	Use:   "quiz <topic...>",
	Short: "Generate a multiple-choice quiz and take it.",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, _, closeFn, err := newService(cmd.Context(), cfg)
		if err != nil {
			return err
		}
		defer closeFn()

		out := cmd.OutOrStdout()
		fmt.Fprintln(out, "Generating...")
		q := controller.NewQuiz(svc.Quiz)
		view := q.Generate(cmd.Context(), strings.Join(args, " "))
		switch view.Status {
		case controller.StatusFailure:
			return errors.New(view.Error)
		case controller.StatusIdle:
			return errNothingToDo
		case controller.StatusPending:
			return cmd.Context().Err()
		}
		return takeQuiz(q, cmd.InOrStdin(), out)
	},
}

// takeQuiz asks every question on in, then checks and prints the review.
func takeQuiz(q *controller.Quiz, in io.Reader, out io.Writer) error {
	view := q.View()
	reader := bufio.NewReader(in)

	fmt.Fprintf(out, "\n%s\n", view.Result.Title)
	for i, question := range view.Result.Questions {
		fmt.Fprintf(out, "\n%d. %s\n", i+1, question.Question)
		for o, option := range question.Options {
			fmt.Fprintf(out, "   %d) %s\n", o+1, option)
		}
		for {
			fmt.Fprintf(out, "Your answer [1-%d]: ", len(question.Options))
			line, err := reader.ReadString('\n')
			n, convErr := strconv.Atoi(strings.TrimSpace(line))
			if convErr == nil && n >= 1 && n <= len(question.Options) {
				if err := q.Select(i, question.Options[n-1]); err != nil {
					return err
				}
				break
			}
			if err != nil {
				return fmt.Errorf("quiz aborted: %w", err)
			}
			fmt.Fprintln(out, "Please enter the number of an option.")
		}
	}

	if err := q.Check(); err != nil {
		return err
	}
	printReview(out, q.View())
	return nil
}

func printReview(out io.Writer, view controller.QuizView) {
	fmt.Fprintf(out, "\nQuiz Complete! Your score: %d / %d\n", view.Score, view.Total)
	for i, question := range view.Result.Questions {
		mark := "✗"
		if view.Answers[i] == question.CorrectAnswer {
			mark = "✓"
		}
		fmt.Fprintf(out, "%s %d. %s\n", mark, i+1, question.Question)
		if mark == "✗" {
			fmt.Fprintf(out, "    your answer: %s\n    correct:     %s\n", view.Answers[i], question.CorrectAnswer)
		}
	}
}

func init() {
	rootCmd.AddCommand(quizCmd)
	quizCmd.Flags().Int("questions", 5, "Number of questions to generate")
}

package main

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"study-buddy/internal/controller"
	"study-buddy/internal/db"
	"study-buddy/internal/study"
)

func TestReadNotesSources(t *testing.T) {
	notes, err := readNotes([]string{"cells", "divide"}, "", strings.NewReader("ignored"))
	require.NoError(t, err)
	require.Equal(t, "cells divide", notes)

	path := filepath.Join(t.TempDir(), "notes.txt")
	require.NoError(t, os.WriteFile(path, []byte("from file"), 0o600))
	notes, err = readNotes(nil, path, strings.NewReader("ignored"))
	require.NoError(t, err)
	require.Equal(t, "from file", notes)

	notes, err = readNotes(nil, "", strings.NewReader("piped\nnotes"))
	require.NoError(t, err)
	require.Equal(t, "piped\nnotes", notes)

	_, err = readNotes(nil, filepath.Join(t.TempDir(), "missing.txt"), nil)
	require.Error(t, err)
}

func TestRunText(t *testing.T) {
	var out bytes.Buffer
	ok := controller.NewText(func(ctx context.Context, in string) (string, error) { return "about " + in, nil })
	require.NoError(t, runText(context.Background(), &out, ok, "gravity"))
	require.Equal(t, "about gravity\n", out.String())

	failing := controller.NewText(func(ctx context.Context, in string) (string, error) {
		return "", &study.ProviderError{Feature: study.FeatureExplain, Message: study.MsgExplainFailed, Err: errors.New("timeout")}
	})
	err := runText(context.Background(), &out, failing, "gravity")
	require.EqualError(t, err, study.MsgExplainFailed)

	require.ErrorIs(t, runText(context.Background(), &out, ok, "  "), errNothingToDo)
}

func TestTakeQuiz(t *testing.T) {
	q := controller.NewQuiz(func(ctx context.Context, in string) (*study.Quiz, error) {
		return &study.Quiz{
			Title: "Cells",
			Questions: []study.QuizQuestion{
				{Question: "Powerhouse?", Options: []string{"Nucleus", "Mitochondria", "Ribosome", "Golgi"}, CorrectAnswer: "Mitochondria"},
				{Question: "Holds DNA?", Options: []string{"Nucleus", "Vacuole", "Membrane", "Wall"}, CorrectAnswer: "Nucleus"},
			},
		}, nil
	})
	view := q.Generate(context.Background(), "cells")
	require.True(t, view.Active)

	var out bytes.Buffer
	in := strings.NewReader("x\n9\n2\n3\n")
	require.NoError(t, takeQuiz(q, in, &out))

	require.Contains(t, out.String(), "Please enter the number of an option.")
	require.Contains(t, out.String(), "Your score: 1 / 2")
	require.Contains(t, out.String(), "correct:     Nucleus")
}

func TestTakeQuizAbortsOnEOF(t *testing.T) {
	q := controller.NewQuiz(func(ctx context.Context, in string) (*study.Quiz, error) {
		return &study.Quiz{Title: "t", Questions: []study.QuizQuestion{{Question: "q", Options: []string{"a", "b", "c", "d"}, CorrectAnswer: "a"}}}, nil
	})
	q.Generate(context.Background(), "t")
	err := takeQuiz(q, strings.NewReader(""), &bytes.Buffer{})
	require.ErrorContains(t, err, "quiz aborted")
}

func TestPrintEntries(t *testing.T) {
	var out bytes.Buffer
	printEntries(&out, nil)
	require.Equal(t, "No results found.\n", out.String())

	out.Reset()
	printEntries(&out, []db.Entry{{
		Feature:   "quiz",
		Input:     "the   french\nrevolution",
		Status:    db.StatusFailure,
		Error:     "invalid quiz format received from AI",
		LatencyMS: 42,
		CreatedAt: time.Now(),
	}})
	require.Contains(t, out.String(), "Found 1 results:")
	require.Contains(t, out.String(), "Input: the french revolution")
	require.Contains(t, out.String(), "Error: invalid quiz format")
}

func TestPreviewTruncates(t *testing.T) {
	require.Equal(t, "abc...", preview("abcdef", 3))
	require.Equal(t, "abc", preview("abc", 3))
}

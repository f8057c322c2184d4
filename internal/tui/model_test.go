package tui

import (
	"context"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/require"

	"study-buddy/internal/shell"
	"study-buddy/internal/study"
)

type stubRequester struct{}

func (stubRequester) Explain(ctx context.Context, topic string) (string, error) {
	return "All about " + topic, nil
}

func (stubRequester) Summarize(ctx context.Context, notes string) (string, error) {
	return "- " + strings.ReplaceAll(notes, "\n", " / "), nil
}

func (stubRequester) Quiz(ctx context.Context, topic string) (*study.Quiz, error) {
	return &study.Quiz{
		Title: "Quiz: " + topic,
		Questions: []study.QuizQuestion{
			{Question: "First?", Options: []string{"a", "b", "c", "d"}, CorrectAnswer: "b"},
			{Question: "Second?", Options: []string{"e", "f", "g", "h"}, CorrectAnswer: "e"},
		},
	}, nil
}

func key(k string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
}

func newModel() *Model {
	return New(context.Background(), shell.New(stubRequester{}), "test")
}

func apply(t *testing.T, m *Model, msg tea.Msg) *Model {
	t.Helper()
	next, cmd := m.Update(msg)
	got, ok := next.(*Model)
	require.True(t, ok, "Update returned %T", next)
	return drain(t, got, cmd)
}

// drain runs cmd and every command it produces, feeding messages back in.
func drain(t *testing.T, m *Model, cmd tea.Cmd) *Model {
	t.Helper()
	queue := []tea.Cmd{cmd}
	for i := 0; len(queue) > 0; i++ {
		require.Less(t, i, 64, "command chain too deep")
		c := queue[0]
		queue = queue[1:]
		if c == nil {
			continue
		}
		switch msg := c().(type) {
		case nil:
		case tea.BatchMsg:
			queue = append(queue, msg...)
		default:
			next, nextCmd := m.Update(msg)
			m = next.(*Model)
			queue = append(queue, nextCmd)
		}
	}
	return m
}

func typeText(t *testing.T, m *Model, s string) *Model {
	t.Helper()
	for _, r := range s {
		if r == ' ' {
			m = apply(t, m, tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}})
			continue
		}
		m = apply(t, m, key(string(r)))
	}
	return m
}

func TestExplainTypingAndSubmit(t *testing.T) {
	m := newModel()
	m = typeText(t, m, "black holez")
	m = apply(t, m, tea.KeyMsg{Type: tea.KeyBackspace})
	require.Equal(t, "black hole", m.shell.Explain.Input())

	m = apply(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	snap := m.shell.Explain.Snapshot()
	require.Equal(t, "All about black hole", snap.Result)
	require.False(t, m.spinning)
	require.Contains(t, m.View(), `Explanation for "black hole"`)
}

func TestEnterOnBlankInputDoesNothing(t *testing.T) {
	m := newModel()
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	require.Nil(t, cmd)
	require.Equal(t, "idle", m.shell.Explain.Snapshot().Status.String())
}

func TestTabCyclingDiscardsPanel(t *testing.T) {
	m := newModel()
	m = typeText(t, m, "gravity")
	m = apply(t, m, tea.KeyMsg{Type: tea.KeyTab})
	require.Equal(t, shell.TabSummarize, m.shell.Active())
	require.Empty(t, m.shell.Explain.Input())

	m = apply(t, m, tea.KeyMsg{Type: tea.KeyShiftTab})
	m = apply(t, m, tea.KeyMsg{Type: tea.KeyShiftTab})
	require.Equal(t, shell.TabQuiz, m.shell.Active())
}

func TestSummarizeNewline(t *testing.T) {
	m := newModel()
	m = apply(t, m, tea.KeyMsg{Type: tea.KeyTab})
	m = typeText(t, m, "one")
	m = apply(t, m, tea.KeyMsg{Type: tea.KeyCtrlJ})
	m = typeText(t, m, "two")
	require.Equal(t, "one\ntwo", m.shell.Summarize.Input())

	m = apply(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	require.Equal(t, "- one / two", m.shell.Summarize.Snapshot().Result)
}

func TestQuizAnswerAndCheck(t *testing.T) {
	m := newModel()
	require.NoError(t, m.shell.Select(shell.TabQuiz))
	m = typeText(t, m, "rome")
	m = apply(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	require.True(t, m.shell.Quiz.View().Active)
	require.Contains(t, m.View(), "Quiz: rome")

	// Check is ignored until every question is answered.
	m = apply(t, m, key("c"))
	require.False(t, m.shell.Quiz.View().Submitted)

	m = apply(t, m, key("2"))
	m = apply(t, m, tea.KeyMsg{Type: tea.KeyDown})
	m = apply(t, m, tea.KeyMsg{Type: tea.KeyRight})
	m = apply(t, m, tea.KeyMsg{Type: tea.KeyRight})
	v := m.shell.Quiz.View()
	require.Equal(t, map[int]string{0: "b", 1: "f"}, v.Answers)

	m = apply(t, m, tea.KeyMsg{Type: tea.KeyLeft})
	m = apply(t, m, key("c"))
	v = m.shell.Quiz.View()
	require.True(t, v.Submitted)
	require.Equal(t, 2, v.Score)
	require.Contains(t, m.View(), "Your score: 2 / 2")

	m = apply(t, m, key("n"))
	v = m.shell.Quiz.View()
	require.False(t, v.Active)
	require.Equal(t, "rome", v.Input)
}

func TestQuitKeys(t *testing.T) {
	m := newModel()
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	require.NotNil(t, cmd)
	_, ok := cmd().(tea.QuitMsg)
	require.True(t, ok)
}

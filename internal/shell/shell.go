// Package shell composes the three feature controllers behind tab selection.
package shell

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"study-buddy/internal/controller"
	"study-buddy/internal/study"
)

// Tab identifies a feature panel.
type Tab string

const (
	TabExplain   Tab = "explain"
	TabSummarize Tab = "summarize"
	TabQuiz      Tab = "quiz"
)

// Tabs lists the panels in display order.
var Tabs = []Tab{TabExplain, TabSummarize, TabQuiz}

var ErrUnknownTab = errors.New("unknown tab")

// Label is the tab's display name.
func (t Tab) Label() string {
	switch t {
	case TabExplain:
		return "Explain Topic"
	case TabSummarize:
		return "Summarize Notes"
	case TabQuiz:
		return "Generate Quiz"
	default:
		return string(t)
	}
}

// ParseTab validates a tab name.
func ParseTab(s string) (Tab, error) {
	for _, t := range Tabs {
		if string(t) == s {
			return t, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownTab, s)
}

// Requester is the request layer as seen by the shell.
type Requester interface {
	Explain(ctx context.Context, topic string) (string, error)
	Summarize(ctx context.Context, notes string) (string, error)
	Quiz(ctx context.Context, topicOrNotes string) (*study.Quiz, error)
}

// Shell holds one controller per feature and the active tab. Only the active
// panel keeps state: switching away discards the panel being left.
type Shell struct {
	mu     sync.Mutex
	active Tab

	Explain   *controller.Text
	Summarize *controller.Text
	Quiz      *controller.Quiz
}

func New(r Requester) *Shell {
	return &Shell{
		active:    TabExplain,
		Explain:   controller.NewText(r.Explain),
		Summarize: controller.NewText(r.Summarize),
		Quiz:      controller.NewQuiz(r.Quiz),
	}
}

func (s *Shell) Active() Tab {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.active
}

// Select makes t the active tab. Selecting the active tab does nothing.
func (s *Shell) Select(t Tab) error {
	if _, err := ParseTab(string(t)); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if t == s.active {
		return nil
	}
	s.discard(s.active)
	s.active = t
	return nil
}

func (s *Shell) discard(t Tab) {
	switch t {
	case TabExplain:
		s.Explain.Discard()
	case TabSummarize:
		s.Summarize.Discard()
	case TabQuiz:
		s.Quiz.Discard()
	}
}

// Text returns the text controller behind t, or nil for the quiz tab.
func (s *Shell) Text(t Tab) *controller.Text {
	switch t {
	case TabExplain:
		return s.Explain
	case TabSummarize:
		return s.Summarize
	default:
		return nil
	}
}

// SetInput edits the input of t's panel.
func (s *Shell) SetInput(t Tab, input string) bool {
	if t == TabQuiz {
		return s.Quiz.SetInput(input)
	}
	if c := s.Text(t); c != nil {
		return c.SetInput(input)
	}
	return false
}

// Submit submits t's panel; see controller.Controller.Submit.
func (s *Shell) Submit(ctx context.Context, t Tab) <-chan struct{} {
	if t == TabQuiz {
		return s.Quiz.Submit(ctx)
	}
	if c := s.Text(t); c != nil {
		return c.Submit(ctx)
	}
	return nil
}

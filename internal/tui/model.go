// Package tui is a terminal front end over a shell.Shell.
package tui

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"study-buddy/internal/controller"
	"study-buddy/internal/shell"
)

var spinnerFrames = []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}

const spinnerInterval = 100 * time.Millisecond

// doneMsg reports that a submitted request for tab has resolved.
type doneMsg struct{ tab shell.Tab }

type tickMsg time.Time

// Model is the bubbletea model. All panel state lives in the Shell; the
// model only keeps cursor and rendering state.
type Model struct {
	ctx      context.Context
	shell    *shell.Shell
	provider string

	width    int
	question int
	frame    int
	spinning bool
}

func New(ctx context.Context, sh *shell.Shell, provider string) *Model {
	return &Model{ctx: ctx, shell: sh, provider: provider}
}

func (m *Model) Init() tea.Cmd { return nil }

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		return m, nil
	case tea.KeyMsg:
		return m.handleKey(msg)
	case doneMsg:
		if msg.tab == shell.TabQuiz {
			m.question = 0
		}
		return m, nil
	case tickMsg:
		if !m.loading() {
			m.spinning = false
			return m, nil
		}
		m.frame = (m.frame + 1) % len(spinnerFrames)
		return m, tick()
	}
	return m, nil
}

func (m *Model) handleKey(k tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch k.String() {
	case "ctrl+c", "esc":
		return m, tea.Quit
	case "tab":
		m.switchTab(1)
		return m, nil
	case "shift+tab":
		m.switchTab(-1)
		return m, nil
	}

	active := m.shell.Active()
	if active == shell.TabQuiz && m.shell.Quiz.View().Active {
		return m, m.handleQuizKey(k)
	}

	switch k.Type {
	case tea.KeyEnter:
		return m, m.submit(active)
	case tea.KeyBackspace:
		m.editInput(active, func(s string) string {
			r := []rune(s)
			if len(r) == 0 {
				return s
			}
			return string(r[:len(r)-1])
		})
	case tea.KeyCtrlJ:
		if active == shell.TabSummarize {
			m.editInput(active, func(s string) string { return s + "\n" })
		}
	case tea.KeySpace:
		m.editInput(active, func(s string) string { return s + " " })
	case tea.KeyRunes:
		m.editInput(active, func(s string) string { return s + string(k.Runes) })
	}
	return m, nil
}

func (m *Model) handleQuizKey(k tea.KeyMsg) tea.Cmd {
	v := m.shell.Quiz.View()
	total := len(v.Result.Questions)
	switch k.String() {
	case "up", "k":
		if m.question > 0 {
			m.question--
		}
	case "down", "j":
		if m.question < total-1 {
			m.question++
		}
	case "left", "h":
		m.cycleAnswer(v, -1)
	case "right", "l":
		m.cycleAnswer(v, 1)
	case "1", "2", "3", "4":
		if m.question >= total {
			return nil
		}
		options := v.Result.Questions[m.question].Options
		if i := int(k.Runes[0] - '1'); i < len(options) {
			_ = m.shell.Quiz.Select(m.question, options[i])
		}
	case "c", "enter":
		_ = m.shell.Quiz.Check()
	case "n":
		if m.shell.Quiz.Reset() {
			m.question = 0
		}
	}
	return nil
}

// cycleAnswer moves the current question's answer by step, wrapping around.
func (m *Model) cycleAnswer(v controller.QuizView, step int) {
	if m.question >= len(v.Result.Questions) {
		return
	}
	options := v.Result.Questions[m.question].Options
	if len(options) == 0 {
		return
	}
	next := 0
	if cur, ok := v.Answers[m.question]; ok {
		for i, o := range options {
			if o == cur {
				next = (i + step + len(options)) % len(options)
				break
			}
		}
	}
	_ = m.shell.Quiz.Select(m.question, options[next])
}

func (m *Model) switchTab(step int) {
	tabs := shell.Tabs
	cur := 0
	for i, t := range tabs {
		if t == m.shell.Active() {
			cur = i
		}
	}
	_ = m.shell.Select(tabs[(cur+step+len(tabs))%len(tabs)])
	m.question = 0
}

func (m *Model) editInput(t shell.Tab, edit func(string) string) {
	var cur string
	if t == shell.TabQuiz {
		cur = m.shell.Quiz.Input()
	} else {
		cur = m.shell.Text(t).Input()
	}
	m.shell.SetInput(t, edit(cur))
}

func (m *Model) submit(t shell.Tab) tea.Cmd {
	done := m.shell.Submit(m.ctx, t)
	if done == nil {
		return nil
	}
	wait := func() tea.Msg {
		<-done
		return doneMsg{tab: t}
	}
	if m.spinning {
		return wait
	}
	m.spinning = true
	return tea.Batch(wait, tick())
}

func (m *Model) loading() bool {
	return m.shell.Explain.Snapshot().Loading() ||
		m.shell.Summarize.Snapshot().Loading() ||
		m.shell.Quiz.Snapshot().Loading()
}

func tick() tea.Cmd {
	return tea.Tick(spinnerInterval, func(t time.Time) tea.Msg { return tickMsg(t) })
}

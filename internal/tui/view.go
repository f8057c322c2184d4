package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"study-buddy/internal/controller"
	"study-buddy/internal/shell"
)

func (m *Model) View() string {
	var b strings.Builder
	b.WriteString(headerStyle.Render("Study Buddy"))
	b.WriteString("\n\n")
	b.WriteString(m.renderTabs())
	b.WriteString("\n\n")

	body := ""
	switch m.shell.Active() {
	case shell.TabExplain:
		body = m.renderText(shell.TabExplain)
	case shell.TabSummarize:
		body = m.renderText(shell.TabSummarize)
	case shell.TabQuiz:
		body = m.renderQuiz()
	}
	if m.width > 0 {
		body = lipgloss.NewStyle().Width(m.width - 2).Render(body)
	}
	b.WriteString(body)
	b.WriteString("\n\n")
	b.WriteString(mutedStyle.Render(m.help()))
	if m.provider != "" {
		b.WriteString("\n" + mutedStyle.Render("Powered by "+m.provider+"."))
	}
	return b.String()
}

func (m *Model) renderTabs() string {
	parts := make([]string, 0, len(shell.Tabs))
	for _, t := range shell.Tabs {
		style := tabStyle
		if t == m.shell.Active() {
			style = activeTabStyle
		}
		parts = append(parts, style.Render(t.Label()))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, parts...)
}

type textPanel struct {
	title, hint, placeholder, busy, resultTitle string
}

var textPanels = map[shell.Tab]textPanel{
	shell.TabExplain: {
		title:       "Explain a Complex Topic",
		hint:        "Enter a topic you're struggling with, and the AI will break it down for you in simple terms.",
		placeholder: "e.g., Quantum Computing, Photosynthesis",
		busy:        "Thinking...",
		resultTitle: "Explanation for %q",
	},
	shell.TabSummarize: {
		title:       "Summarize Your Notes",
		hint:        "Paste your study notes below, and the AI will create a concise summary of the key points.",
		placeholder: "Paste your notes here...",
		busy:        "Summarizing...",
		resultTitle: "Summary",
	},
}

func (m *Model) renderText(t shell.Tab) string {
	p := textPanels[t]
	s := m.shell.Text(t).Snapshot()

	var b strings.Builder
	b.WriteString(titleStyle.Render(p.title) + "\n")
	b.WriteString(mutedStyle.Render(p.hint) + "\n\n")
	b.WriteString(m.renderInput(s.Input, p.placeholder, s.Loading()) + "\n")
	b.WriteString(m.renderOutcome(s.Loading(), s.Error, p.busy))
	if s.Result != "" {
		heading := p.resultTitle
		if strings.Contains(heading, "%q") {
			heading = fmt.Sprintf(heading, s.Input)
		}
		b.WriteString("\n" + titleStyle.Render(heading) + "\n\n" + s.Result + "\n")
	}
	return b.String()
}

func (m *Model) renderInput(input, placeholder string, loading bool) string {
	text := input
	switch {
	case text == "":
		text = mutedStyle.Render(placeholder)
	case !loading:
		text += cursorStyle.Render("▏")
	}
	return inputStyle.Render(text)
}

func (m *Model) renderOutcome(loading bool, errMsg, busy string) string {
	switch {
	case loading:
		return loadingStyle.Render(spinnerFrames[m.frame]+" "+busy) + "\n"
	case errMsg != "":
		return errorStyle.Render(errMsg) + "\n"
	}
	return ""
}

func (m *Model) renderQuiz() string {
	v := m.shell.Quiz.View()
	var b strings.Builder
	if !v.Active {
		b.WriteString(titleStyle.Render("Generate a Quiz") + "\n")
		b.WriteString(mutedStyle.Render("Enter a topic or paste notes to create a multiple-choice quiz and test your knowledge.") + "\n\n")
		b.WriteString(m.renderInput(v.Input, "e.g., The French Revolution, Cell Biology", v.Loading()) + "\n")
		b.WriteString(m.renderOutcome(v.Loading(), v.Error, "Generating..."))
		return b.String()
	}

	b.WriteString(titleStyle.Render(v.Result.Title) + "\n")
	if v.Submitted {
		b.WriteString(scoreStyle.Render(fmt.Sprintf("Quiz Complete! Your score: %d / %d", v.Score, v.Total)) + "\n")
	} else {
		b.WriteString(mutedStyle.Render(fmt.Sprintf("Answered %d of %d", v.Answered, v.Total)) + "\n")
	}
	for qi, q := range v.Result.Questions {
		marker := "  "
		if qi == m.question {
			marker = cursorStyle.Render("> ")
		}
		b.WriteString(fmt.Sprintf("\n%s%d. %s\n", marker, qi+1, q.Question))
		for oi, opt := range q.Options {
			b.WriteString("     " + renderOption(v, qi, oi, opt) + "\n")
		}
	}
	return b.String()
}

func renderOption(v controller.QuizView, qi, oi int, opt string) string {
	label := fmt.Sprintf("%d) %s", oi+1, opt)
	if v.Submitted {
		switch v.Review(qi, oi) {
		case controller.ReviewCorrect:
			return correctStyle.Render("✓ " + label)
		case controller.ReviewWrong:
			return wrongStyle.Render("✗ " + label)
		}
		return "  " + label
	}
	if v.Answers[qi] == opt {
		return selectedStyle.Render("● " + label)
	}
	return "○ " + label
}

func (m *Model) help() string {
	keys := []string{"tab/shift+tab switch", "esc quit"}
	switch m.shell.Active() {
	case shell.TabQuiz:
		v := m.shell.Quiz.View()
		switch {
		case !v.Active:
			keys = append([]string{"enter generate"}, keys...)
		case v.Submitted:
			keys = append([]string{"n new quiz"}, keys...)
		default:
			keys = append([]string{"↑/↓ question", "←/→ or 1-4 answer", "c check", "n new quiz"}, keys...)
		}
	case shell.TabSummarize:
		keys = append([]string{"enter summarize", "ctrl+j newline"}, keys...)
	default:
		keys = append([]string{"enter explain"}, keys...)
	}
	return strings.Join(keys, " • ")
}

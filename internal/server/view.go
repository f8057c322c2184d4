package server

import (
	"html/template"
	"strings"

	"study-buddy/internal/controller"
	"study-buddy/internal/shell"
	"study-buddy/internal/study"
)

var templateFuncs = template.FuncMap{
	"lines":       func(s string) []string { return strings.Split(s, "\n") },
	"add1":        func(i int) int { return i + 1 },
	"optionClass": optionClass,
}

// optionClass picks the CSS class of one quiz option button.
func optionClass(v controller.QuizView, qi, oi int, option string) string {
	if !v.Submitted {
		if v.Answers[qi] == option {
			return "selected"
		}
		return ""
	}
	switch v.Review(qi, oi) {
	case controller.ReviewCorrect:
		return "correct"
	case controller.ReviewWrong:
		return "wrong"
	default:
		return ""
	}
}

type tabView struct {
	Tab    shell.Tab
	Label  string
	Active bool
}

type pageView struct {
	Tabs      []tabView
	Active    shell.Tab
	Explain   controller.Snapshot[string]
	Summarize controller.Snapshot[string]
	Quiz      controller.QuizView
	Refresh   bool
	Provider  string
}

func newPageView(sh *shell.Shell, provider string) pageView {
	active := sh.Active()
	v := pageView{
		Active:    active,
		Explain:   sh.Explain.Snapshot(),
		Summarize: sh.Summarize.Snapshot(),
		Quiz:      sh.Quiz.View(),
		Provider:  provider,
	}
	for _, t := range shell.Tabs {
		v.Tabs = append(v.Tabs, tabView{Tab: t, Label: t.Label(), Active: t == active})
	}
	v.Refresh = v.Explain.Loading() || v.Summarize.Loading() || v.Quiz.Loading()
	return v
}

type panelState struct {
	Input   string `json:"input"`
	Status  string `json:"status"`
	Loading bool   `json:"loading"`
	Error   string `json:"error,omitempty"`
	Result  string `json:"result,omitempty"`
}

type quizQuestionState struct {
	Question      string   `json:"question"`
	Options       []string `json:"options"`
	CorrectAnswer string   `json:"correctAnswer,omitempty"`
	Answer        string   `json:"answer,omitempty"`
}

type quizState struct {
	Input     string              `json:"input"`
	Status    string              `json:"status"`
	Loading   bool                `json:"loading"`
	Error     string              `json:"error,omitempty"`
	Title     string              `json:"title,omitempty"`
	Questions []quizQuestionState `json:"questions,omitempty"`
	Answered  int                 `json:"answered"`
	Total     int                 `json:"total"`
	Submitted bool                `json:"submitted"`
	CanCheck  bool                `json:"canCheck"`
	Score     *int                `json:"score,omitempty"`
}

type stateResponse struct {
	Active    shell.Tab  `json:"active"`
	Explain   panelState `json:"explain"`
	Summarize panelState `json:"summarize"`
	Quiz      quizState  `json:"quiz"`
}

func newPanelState(s controller.Snapshot[string]) panelState {
	return panelState{
		Input:   s.Input,
		Status:  s.Status.String(),
		Loading: s.Loading(),
		Error:   s.Error,
		Result:  s.Result,
	}
}

// newQuizState hides correct answers until the answers are checked.
func newQuizState(v controller.QuizView) quizState {
	q := quizState{
		Input:     v.Input,
		Status:    v.Status.String(),
		Loading:   v.Loading(),
		Error:     v.Error,
		Answered:  v.Answered,
		Total:     v.Total,
		Submitted: v.Submitted,
		CanCheck:  v.CanCheck,
	}
	if !v.Active {
		return q
	}
	q.Title = v.Result.Title
	q.Questions = questionStates(v.Result, v.Answers, v.Submitted)
	if v.Submitted {
		score := v.Score
		q.Score = &score
	}
	return q
}

func questionStates(quiz *study.Quiz, answers map[int]string, reveal bool) []quizQuestionState {
	out := make([]quizQuestionState, len(quiz.Questions))
	for i, qq := range quiz.Questions {
		out[i] = quizQuestionState{
			Question: qq.Question,
			Options:  append([]string(nil), qq.Options...),
			Answer:   answers[i],
		}
		if reveal {
			out[i].CorrectAnswer = qq.CorrectAnswer
		}
	}
	return out
}

func newStateResponse(sh *shell.Shell) stateResponse {
	return stateResponse{
		Active:    sh.Active(),
		Explain:   newPanelState(sh.Explain.Snapshot()),
		Summarize: newPanelState(sh.Summarize.Snapshot()),
		Quiz:      newQuizState(sh.Quiz.View()),
	}
}

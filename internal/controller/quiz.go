package controller

import (
	"context"

	"study-buddy/internal/study"
)

// Quiz is the quiz panel: a Controller whose success opens a Session.
type Quiz struct {
	*Controller[*study.Quiz]
	session *Session
}

func NewQuiz(run RunFunc[*study.Quiz]) *Quiz {
	q := &Quiz{Controller: New(run)}
	q.onSuccess = func(quiz *study.Quiz) { q.session = NewSession(quiz) }
	q.onClear = func() { q.session = nil }
	return q
}

// QuizView is a consistent copy of the quiz panel, session included.
type QuizView struct {
	Snapshot[*study.Quiz]
	// Active is set while a quiz is on screen.
	Active    bool
	Answers   map[int]string
	Answered  int
	Total     int
	Submitted bool
	CanCheck  bool
	// Score is only meaningful once Submitted.
	Score   int
	reviews [][]Review
}

// Review classifies option o of question i for display.
func (v QuizView) Review(i, o int) Review {
	if i < 0 || i >= len(v.reviews) || o < 0 || o >= len(v.reviews[i]) {
		return ReviewNeutral
	}
	return v.reviews[i][o]
}

func (q *Quiz) View() QuizView {
	q.mu.Lock()
	defer q.mu.Unlock()

	v := QuizView{Snapshot: q.snapshotLocked()}
	s := q.session
	if s == nil {
		return v
	}
	v.Active = true
	v.Answers = s.Answers()
	v.Answered = s.Answered()
	v.Total = s.Total()
	v.Submitted = s.Submitted()
	v.CanCheck = s.CanCheck()
	v.Score = s.Score()
	v.reviews = make([][]Review, len(s.quiz.Questions))
	for i, question := range s.quiz.Questions {
		v.reviews[i] = make([]Review, len(question.Options))
		for o, option := range question.Options {
			v.reviews[i][o] = s.Review(i, option)
		}
	}
	return v
}

// Select answers question i.
func (q *Quiz) Select(i int, option string) error {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.session == nil {
		return ErrNoQuiz
	}
	return q.session.Select(i, option)
}

// Check locks the answers once every question is answered.
func (q *Quiz) Check() error {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.session == nil {
		return ErrNoQuiz
	}
	return q.session.Check()
}

// Score returns the current score.
func (q *Quiz) Score() (int, error) {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.session == nil {
		return 0, ErrNoQuiz
	}
	return q.session.Score(), nil
}

// Reset discards the quiz and its session and returns the panel to its
// pre-generation state. The input text is kept. It is refused while a quiz
// is being generated and reports whether it took effect.
func (q *Quiz) Reset() bool {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.status == StatusPending {
		return false
	}
	q.gen++
	q.clearLocked()
	return true
}

// Generate is a convenience for callers that want to block: it sets the
// input, submits and waits for the outcome.
func (q *Quiz) Generate(ctx context.Context, input string) QuizView {
	if q.SetInput(input) {
		if done := q.Submit(ctx); done != nil {
			select {
			case <-done:
			case <-ctx.Done():
			}
		}
	}
	return q.View()
}

package controller

import (
	"errors"
	"fmt"

	"study-buddy/internal/study"
)

var (
	ErrNoQuiz           = errors.New("no quiz in progress")
	ErrAlreadySubmitted = errors.New("answers already checked")
	ErrIncomplete       = errors.New("not every question is answered")
	ErrQuestionRange    = errors.New("question index out of range")
	ErrUnknownOption    = errors.New("option is not one of the question's choices")
)

// Review is how an option is presented after answers are checked.
type Review int

const (
	ReviewNeutral Review = iota
	ReviewCorrect
	ReviewWrong
)

// Session tracks answers for one quiz. Answering → Submitted, once.
// It is not safe for concurrent use; Quiz guards it.
type Session struct {
	quiz      *study.Quiz
	answers   map[int]string
	submitted bool
}

func NewSession(quiz *study.Quiz) *Session {
	return &Session{quiz: quiz, answers: make(map[int]string, len(quiz.Questions))}
}

func (s *Session) Quiz() *study.Quiz { return s.quiz }

func (s *Session) Submitted() bool { return s.submitted }

func (s *Session) Total() int { return len(s.quiz.Questions) }

func (s *Session) Answered() int { return len(s.answers) }

// CanCheck reports whether every question has an answer and the session is
// still open.
func (s *Session) CanCheck() bool {
	return !s.submitted && s.Answered() == s.Total()
}

// Answer returns the option selected for question i, if any.
func (s *Session) Answer(i int) (string, bool) {
	a, ok := s.answers[i]
	return a, ok
}

// Answers returns a copy of the recorded answers.
func (s *Session) Answers() map[int]string {
	out := make(map[int]string, len(s.answers))
	for k, v := range s.answers {
		out[k] = v
	}
	return out
}

// Select records option as the answer to question i, replacing any earlier
// choice.
func (s *Session) Select(i int, option string) error {
	if s.submitted {
		return ErrAlreadySubmitted
	}
	if i < 0 || i >= s.Total() {
		return fmt.Errorf("%w: %d", ErrQuestionRange, i)
	}
	if !s.quiz.Questions[i].HasOption(option) {
		return fmt.Errorf("%w: %q", ErrUnknownOption, option)
	}
	s.answers[i] = option
	return nil
}

// Check locks the answers.
func (s *Session) Check() error {
	if s.submitted {
		return ErrAlreadySubmitted
	}
	if s.Answered() != s.Total() {
		return fmt.Errorf("%w: %d of %d", ErrIncomplete, s.Answered(), s.Total())
	}
	s.submitted = true
	return nil
}

// Score counts questions answered correctly. It is computed on every call.
func (s *Session) Score() int {
	score := 0
	for i, q := range s.quiz.Questions {
		if a, ok := s.answers[i]; ok && a == q.CorrectAnswer {
			score++
		}
	}
	return score
}

// Review classifies option of question i for display.
func (s *Session) Review(i int, option string) Review {
	if !s.submitted || i < 0 || i >= s.Total() {
		return ReviewNeutral
	}
	q := s.quiz.Questions[i]
	if option == q.CorrectAnswer {
		return ReviewCorrect
	}
	if a, ok := s.answers[i]; ok && a == option {
		return ReviewWrong
	}
	return ReviewNeutral
}

package study

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// OptionsPerQuestion is the number of choices every quiz question carries.
const OptionsPerQuestion = 4

var (
	// ErrInvalidQuiz marks a quiz that decoded fine but breaks the quiz contract.
	ErrInvalidQuiz = errors.New("invalid quiz format received from AI")
	// ErrMalformedQuiz marks a response that is not a JSON quiz document.
	ErrMalformedQuiz = errors.New("malformed quiz document")
)

// Quiz is a generated multiple-choice quiz. Treat it as read-only.
type Quiz struct {
	Title     string         `json:"title"`
	Questions []QuizQuestion `json:"questions"`
}

type QuizQuestion struct {
	Question      string   `json:"question"`
	Options       []string `json:"options"`
	CorrectAnswer string   `json:"correctAnswer"`
}

// HasOption reports whether option is one of the question's choices.
func (q QuizQuestion) HasOption(option string) bool {
	for _, o := range q.Options {
		if o == option {
			return true
		}
	}
	return false
}

// ParseQuiz decodes a provider response into a Quiz and applies the domain
// checks. With strict set, each question must also have exactly four options
// and a correct answer among them.
func ParseQuiz(raw string, strict bool) (*Quiz, error) {
	clean := stripCodeFence(raw)

	var quiz Quiz
	if err := json.Unmarshal([]byte(clean), &quiz); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedQuiz, err)
	}
	if err := quiz.validate(strict); err != nil {
		return nil, err
	}
	return &quiz, nil
}

func (q *Quiz) validate(strict bool) error {
	if q.Title == "" || len(q.Questions) == 0 {
		return ErrInvalidQuiz
	}
	if !strict {
		return nil
	}
	for i, question := range q.Questions {
		switch {
		case strings.TrimSpace(question.Question) == "":
			return fmt.Errorf("%w: question %d has no text", ErrInvalidQuiz, i+1)
		case len(question.Options) != OptionsPerQuestion:
			return fmt.Errorf("%w: question %d has %d options, want %d", ErrInvalidQuiz, i+1, len(question.Options), OptionsPerQuestion)
		case !question.HasOption(question.CorrectAnswer):
			return fmt.Errorf("%w: question %d correct answer %q is not an option", ErrInvalidQuiz, i+1, question.CorrectAnswer)
		}
	}
	return nil
}

// stripCodeFence trims the response and drops a surrounding ```json fence.
func stripCodeFence(s string) string {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "```") {
		s = strings.TrimPrefix(s, "```json")
		s = strings.TrimPrefix(s, "```")
		s = strings.TrimSuffix(s, "```")
		s = strings.TrimSpace(s)
	}
	return s
}

package study

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"study-buddy/internal/ai"
	"study-buddy/internal/config"
)

// Record describes one finished request-layer call.
type Record struct {
	Feature  Feature
	Input    string
	Err      error
	Latency  time.Duration
	Finished time.Time
}

// Recorder receives a Record after every call. Implementations must be safe
// for concurrent use.
type Recorder interface {
	Record(ctx context.Context, rec Record) error
}

// Options tunes a Service. Zero values fall back to defaults.
type Options struct {
	QuizQuestions    int
	StrictValidation bool
	Recorder         Recorder
}

// Service builds prompts, calls the provider and validates what comes back.
// It holds no per-call state and may be shared by any number of controllers.
type Service struct {
	provider ai.Provider
	opts     Options
	now      func() time.Time
}

func NewService(provider ai.Provider, opts Options) *Service {
	if opts.QuizQuestions <= 0 {
		opts.QuizQuestions = 5
	}
	return &Service{provider: provider, opts: opts, now: time.Now}
}

// Explain asks the provider to explain topic and returns its text unmodified.
func (s *Service) Explain(ctx context.Context, topic string) (string, error) {
	return s.text(ctx, FeatureExplain, topic, explainPrompt(topic))
}

// Summarize asks the provider for a bullet-point summary of notes.
func (s *Service) Summarize(ctx context.Context, notes string) (string, error) {
	return s.text(ctx, FeatureSummarize, notes, summarizePrompt(notes))
}

// Quiz asks the provider for a multiple-choice quiz about topicOrNotes.
func (s *Service) Quiz(ctx context.Context, topicOrNotes string) (*Quiz, error) {
	if isBlank(topicOrNotes) {
		return nil, ErrBlankInput
	}
	start := s.now()
	raw, err := s.provider.Generate(ctx, ai.Request{
		Prompt: quizPrompt(topicOrNotes, s.opts.QuizQuestions),
		Format: ai.FormatJSON,
		Schema: quizSchema(s.opts.QuizQuestions),
	})
	if err != nil {
		return nil, s.fail(ctx, FeatureQuiz, topicOrNotes, start, KindCall, err)
	}

	quiz, err := ParseQuiz(raw, s.opts.StrictValidation)
	if err != nil {
		kind := KindContract
		if errors.Is(err, ErrMalformedQuiz) {
			kind = KindSyntax
		}
		return nil, s.fail(ctx, FeatureQuiz, topicOrNotes, start, kind, err)
	}

	s.record(ctx, FeatureQuiz, topicOrNotes, start, nil)
	config.WithContext(ctx).WithFields(logrus.Fields{
		"feature":   FeatureQuiz,
		"questions": len(quiz.Questions),
	}).Info("quiz generated")
	return quiz, nil
}

func (s *Service) text(ctx context.Context, f Feature, input, prompt string) (string, error) {
	if isBlank(input) {
		return "", ErrBlankInput
	}
	start := s.now()
	out, err := s.provider.Generate(ctx, ai.Request{Prompt: prompt, Format: ai.FormatText})
	if err == nil && strings.TrimSpace(out) == "" {
		err = ai.ErrEmptyResponse
	}
	if err != nil {
		return "", s.fail(ctx, f, input, start, KindCall, err)
	}
	s.record(ctx, f, input, start, nil)
	return out, nil
}

func (s *Service) fail(ctx context.Context, f Feature, input string, start time.Time, kind Kind, cause error) error {
	perr := newProviderError(f, kind, cause)
	config.WithContext(ctx).WithError(cause).WithFields(logrus.Fields{
		"feature": f,
		"kind":    kind.String(),
	}).Error("study request failed")
	s.record(ctx, f, input, start, perr)
	return perr
}

func (s *Service) record(ctx context.Context, f Feature, input string, start time.Time, err error) {
	if s.opts.Recorder == nil {
		return
	}
	now := s.now()
	rec := Record{Feature: f, Input: input, Err: err, Latency: now.Sub(start), Finished: now}
	if rerr := s.opts.Recorder.Record(context.WithoutCancel(ctx), rec); rerr != nil {
		config.WithContext(ctx).WithError(rerr).Warn("could not record request")
	}
}

func isBlank(s string) bool {
	return strings.TrimSpace(s) == ""
}

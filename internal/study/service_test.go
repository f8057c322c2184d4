package study

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"study-buddy/internal/ai"
)

type fakeProvider struct {
	mu    sync.Mutex
	calls []ai.Request
	out   string
	err   error
}

func (f *fakeProvider) Generate(_ context.Context, req ai.Request) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, req)
	return f.out, f.err
}

type memRecorder struct {
	mu   sync.Mutex
	recs []Record
}

func (m *memRecorder) Record(_ context.Context, rec Record) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.recs = append(m.recs, rec)
	return nil
}

const validQuiz = `{
  "title": "Cell Biology",
  "questions": [
    {"question": "Powerhouse of the cell?", "options": ["Nucleus", "Mitochondria", "Ribosome", "Golgi"], "correctAnswer": "Mitochondria"},
    {"question": "Holds DNA?", "options": ["Nucleus", "Vacuole", "Membrane", "Wall"], "correctAnswer": "Nucleus"}
  ]
}`

func TestExplainReturnsRawText(t *testing.T) {
	p := &fakeProvider{out: "## Photosynthesis\n- light  \n"}
	s := NewService(p, Options{})

	out, err := s.Explain(context.Background(), "Photosynthesis")
	require.NoError(t, err)
	require.Equal(t, "## Photosynthesis\n- light  \n", out)
	require.Len(t, p.calls, 1)
	require.Equal(t, ai.FormatText, p.calls[0].Format)
	require.Nil(t, p.calls[0].Schema)
	require.Contains(t, p.calls[0].Prompt, `"Photosynthesis"`)
	require.Contains(t, p.calls[0].Prompt, "high school student")
	require.Contains(t, p.calls[0].Prompt, "headings and bullet points")
}

func TestSummarizeEmbedsNotes(t *testing.T) {
	p := &fakeProvider{out: "- point"}
	s := NewService(p, Options{})

	_, err := s.Summarize(context.Background(), "mitosis has four phases")
	require.NoError(t, err)
	require.Contains(t, p.calls[0].Prompt, "bullet points")
	require.Contains(t, p.calls[0].Prompt, "\n\nNotes:\nmitosis has four phases")
}

func TestTextFailuresUseFixedMessages(t *testing.T) {
	cases := []struct {
		name string
		p    *fakeProvider
	}{
		{"call error", &fakeProvider{err: errors.New("network down")}},
		{"empty text", &fakeProvider{out: "   "}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			s := NewService(tc.p, Options{})

			out, err := s.Explain(context.Background(), "gravity")
			require.Empty(t, out)
			var pe *ProviderError
			require.ErrorAs(t, err, &pe)
			require.Equal(t, MsgExplainFailed, err.Error())
			require.Equal(t, KindCall, pe.Kind)
			require.NotContains(t, err.Error(), "network")

			_, err = s.Summarize(context.Background(), "notes")
			require.EqualError(t, err, MsgSummarizeFailed)
		})
	}
}

func TestProviderErrorKeepsCause(t *testing.T) {
	cause := errors.New("503 from upstream")
	s := NewService(&fakeProvider{err: cause}, Options{})

	_, err := s.Explain(context.Background(), "x")
	require.ErrorIs(t, err, cause)
	require.Equal(t, MsgExplainFailed, UserMessage(err))
	require.Equal(t, "An unknown error occurred.", UserMessage(errors.New("other")))
}

func TestBlankInputNeverCallsProvider(t *testing.T) {
	p := &fakeProvider{out: "x"}
	s := NewService(p, Options{})

	_, err := s.Explain(context.Background(), "  \t")
	require.ErrorIs(t, err, ErrBlankInput)
	_, err = s.Summarize(context.Background(), "")
	require.ErrorIs(t, err, ErrBlankInput)
	_, err = s.Quiz(context.Background(), "\n")
	require.ErrorIs(t, err, ErrBlankInput)
	require.Empty(t, p.calls)
}

func TestQuizRequestCarriesSchema(t *testing.T) {
	p := &fakeProvider{out: validQuiz}
	s := NewService(p, Options{QuizQuestions: 5, StrictValidation: true})

	_, err := s.Quiz(context.Background(), "The French Revolution")
	require.NoError(t, err)

	req := p.calls[0]
	require.Equal(t, ai.FormatJSON, req.Format)
	require.Contains(t, req.Prompt, "5 multiple-choice questions")
	require.Contains(t, req.Prompt, "exactly 4 options")
	require.Contains(t, req.Prompt, `"The French Revolution"`)
	require.Equal(t, []string{"title", "questions"}, req.Schema.Required)
	item := req.Schema.Properties["questions"].Items
	require.Equal(t, []string{"question", "options", "correctAnswer"}, item.Required)
	require.Equal(t, ai.TypeString, item.Properties["options"].Items.Type)
}

func TestQuizReturnsDecodedValuesExactly(t *testing.T) {
	s := NewService(&fakeProvider{out: "\n  " + validQuiz + "\n"}, Options{StrictValidation: true})

	quiz, err := s.Quiz(context.Background(), "cells")
	require.NoError(t, err)
	require.Equal(t, &Quiz{
		Title: "Cell Biology",
		Questions: []QuizQuestion{
			{Question: "Powerhouse of the cell?", Options: []string{"Nucleus", "Mitochondria", "Ribosome", "Golgi"}, CorrectAnswer: "Mitochondria"},
			{Question: "Holds DNA?", Options: []string{"Nucleus", "Vacuole", "Membrane", "Wall"}, CorrectAnswer: "Nucleus"},
		},
	}, quiz)
}

func TestQuizFailures(t *testing.T) {
	cases := []struct {
		name   string
		out    string
		err    error
		strict bool
		kind   Kind
		cause  error
	}{
		{name: "call", err: errors.New("boom"), kind: KindCall},
		{name: "malformed", out: `{"title": "x", "questions": [`, kind: KindSyntax, cause: ErrMalformedQuiz},
		{name: "prose", out: "Here is your quiz!", kind: KindSyntax, cause: ErrMalformedQuiz},
		{name: "empty title", out: `{"title": "", "questions": [{"question":"q","options":["a","b","c","d"],"correctAnswer":"a"}]}`, kind: KindContract, cause: ErrInvalidQuiz},
		{name: "no questions", out: `{"title": "t", "questions": []}`, kind: KindContract, cause: ErrInvalidQuiz},
		{name: "null questions", out: `{"title": "t"}`, kind: KindContract, cause: ErrInvalidQuiz},
		{name: "three options strict", out: `{"title": "t", "questions": [{"question":"q","options":["a","b","c"],"correctAnswer":"a"}]}`, strict: true, kind: KindContract, cause: ErrInvalidQuiz},
		{name: "answer not an option strict", out: `{"title": "t", "questions": [{"question":"q","options":["a","b","c","d"],"correctAnswer":"e"}]}`, strict: true, kind: KindContract, cause: ErrInvalidQuiz},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := &memRecorder{}
			s := NewService(&fakeProvider{out: tc.out, err: tc.err}, Options{StrictValidation: tc.strict, Recorder: rec})

			quiz, err := s.Quiz(context.Background(), "topic")
			require.Nil(t, quiz)
			require.EqualError(t, err, MsgQuizFailed)
			var pe *ProviderError
			require.ErrorAs(t, err, &pe)
			require.Equal(t, tc.kind, pe.Kind)
			require.Equal(t, FeatureQuiz, pe.Feature)
			if tc.cause != nil {
				require.ErrorIs(t, err, tc.cause)
			}
			require.Len(t, rec.recs, 1)
			require.Error(t, rec.recs[0].Err)
		})
	}
}

func TestQuizLenientModeTrustsQuestions(t *testing.T) {
	out := `{"title": "t", "questions": [{"question":"q","options":["a","b","c"],"correctAnswer":"z"}]}`
	s := NewService(&fakeProvider{out: out}, Options{StrictValidation: false})

	quiz, err := s.Quiz(context.Background(), "topic")
	require.NoError(t, err)
	require.Equal(t, []string{"a", "b", "c"}, quiz.Questions[0].Options)
	require.Equal(t, "z", quiz.Questions[0].CorrectAnswer)
}

func TestRecorderSeesEveryCall(t *testing.T) {
	rec := &memRecorder{}
	p := &fakeProvider{out: "text"}
	s := NewService(p, Options{Recorder: rec})

	_, _ = s.Explain(context.Background(), "a")
	p.err = errors.New("down")
	_, _ = s.Summarize(context.Background(), "b")

	require.Len(t, rec.recs, 2)
	require.Equal(t, FeatureExplain, rec.recs[0].Feature)
	require.Equal(t, "a", rec.recs[0].Input)
	require.NoError(t, rec.recs[0].Err)
	require.Equal(t, FeatureSummarize, rec.recs[1].Feature)
	require.Error(t, rec.recs[1].Err)
}

func TestPromptsEmbedInputVerbatim(t *testing.T) {
	notes := "Line one\nHe said \"hi\""
	p := &fakeProvider{out: validQuiz}
	_, err := NewService(p, Options{}).Quiz(context.Background(), notes)
	require.NoError(t, err)
	require.Contains(t, p.calls[0].Prompt, `notes: "Line one`+"\n"+`He said "hi""`)

	p = &fakeProvider{out: "ok"}
	_, err = NewService(p, Options{}).Explain(context.Background(), `the "observer" effect`)
	require.NoError(t, err)
	require.Contains(t, p.calls[0].Prompt, `topic "the "observer" effect" in simple`)
}

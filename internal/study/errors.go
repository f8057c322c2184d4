package study

import "errors"

// ErrBlankInput is returned when a request is made with empty or
// whitespace-only input. Controllers never let that happen.
var ErrBlankInput = errors.New("input is blank")

// Feature names one of the three study operations.
type Feature string

const (
	FeatureExplain   Feature = "explain"
	FeatureSummarize Feature = "summarize"
	FeatureQuiz      Feature = "quiz"
)

// Kind classifies a ProviderError.
type Kind int

const (
	// KindCall means the provider call itself failed or returned nothing.
	KindCall Kind = iota
	// KindSyntax means the response was not a decodable document.
	KindSyntax
	// KindContract means the document decoded but broke the quiz contract.
	KindContract
)

func (k Kind) String() string {
	switch k {
	case KindSyntax:
		return "syntax"
	case KindContract:
		return "contract"
	default:
		return "call"
	}
}

// Messages shown to users; the technical cause is only logged.
const (
	MsgExplainFailed   = "Failed to get explanation from AI. Please try again."
	MsgSummarizeFailed = "Failed to summarize notes. Please check the input and try again."
	MsgQuizFailed      = "Failed to generate quiz. The AI might be unable to create a quiz from the provided text."
)

func failureMessage(f Feature) string {
	switch f {
	case FeatureExplain:
		return MsgExplainFailed
	case FeatureSummarize:
		return MsgSummarizeFailed
	default:
		return MsgQuizFailed
	}
}

// ProviderError is the single failure type of the request layer.
// Error returns the fixed user-facing message; Unwrap exposes the cause.
type ProviderError struct {
	Feature Feature
	Kind    Kind
	Message string
	Err     error
}

func newProviderError(f Feature, kind Kind, cause error) *ProviderError {
	return &ProviderError{Feature: f, Kind: kind, Message: failureMessage(f), Err: cause}
}

func (e *ProviderError) Error() string { return e.Message }

func (e *ProviderError) Unwrap() error { return e.Err }

// UserMessage returns the message to surface for err: the fixed feature
// message for a ProviderError, a generic one otherwise.
func UserMessage(err error) string {
	var pe *ProviderError
	if errors.As(err, &pe) {
		return pe.Message
	}
	return "An unknown error occurred."
}

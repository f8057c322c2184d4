package ai

import (
	"context"
	"errors"
)

// ErrEmptyResponse is returned when a provider answers without any text.
var ErrEmptyResponse = errors.New("ai: provider returned an empty response")

// Format selects how the provider should shape its answer.
type Format int

const (
	FormatText Format = iota
	FormatJSON
)

// Request is a single text-generation call.
type Request struct {
	Prompt string
	Format Format
	// Schema constrains the output when Format is FormatJSON. Optional.
	Schema *Schema
}

// Provider is the interface that all AI providers must implement.
type Provider interface {
	// Generate sends the request to the AI model and returns its raw text,
	// or the serialized JSON document when structured output was requested.
	Generate(ctx context.Context, req Request) (string, error)
}

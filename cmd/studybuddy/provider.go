package main

import (
	"context"
	"database/sql"
	"fmt"

	"study-buddy/internal/ai"
	"study-buddy/internal/config"
	"study-buddy/internal/db"
	"study-buddy/internal/study"
)

// newProvider builds the configured AI provider and a label for footers.
func newProvider(ctx context.Context, c config.Config) (ai.Provider, string, error) {
	if err := c.Validate(); err != nil {
		return nil, "", err
	}

	switch c.Provider.Name {
	case "ollama":
		// Only an explicitly configured key is sent to Ollama, as a bearer
		// token for deployments behind an authenticating proxy.
		client, err := ai.NewHTTPClient(c.Provider.Proxy, v.GetString("provider.api_key"))
		if err != nil {
			return nil, "", fmt.Errorf("invalid proxy URL: %w", err)
		}
		p := ai.NewOllamaProvider(c.Provider.Model, c.Provider.BaseURL, client)
		return p, "Ollama", nil
	default:
		client, err := ai.NewHTTPClient(c.Provider.Proxy, "")
		if err != nil {
			return nil, "", fmt.Errorf("invalid proxy URL: %w", err)
		}
		p, err := ai.NewGeminiProvider(ctx, ai.GeminiOptions{
			APIKey:  c.Provider.APIKey,
			Model:   c.Provider.Model,
			BaseURL: c.Provider.BaseURL,
			Client:  client,
		})
		if err != nil {
			return nil, "", err
		}
		return p, "Google Gemini AI API", nil
	}
}

// newService wires the provider, quiz options and the optional request log.
// The returned close func releases the log database.
func newService(ctx context.Context, c config.Config) (*study.Service, string, func(), error) {
	provider, label, err := newProvider(ctx, c)
	if err != nil {
		return nil, "", nil, err
	}

	opts := study.Options{
		QuizQuestions:    c.Quiz.Questions,
		StrictValidation: c.Quiz.StrictValidation,
	}
	closeFn := func() {}
	if c.History.Enabled {
		database, err := db.InitDB(c.History.Path)
		if err != nil {
			// The request log is optional; run without it.
			config.Logger.WithError(err).Warn("request history disabled")
		} else {
			opts.Recorder = db.NewRecorder(database)
			closeFn = closer(database)
		}
	}
	return study.NewService(provider, opts), label, closeFn, nil
}

func closer(database *sql.DB) func() {
	return func() {
		if err := database.Close(); err != nil {
			config.Logger.WithError(err).Warn("could not close history database")
		}
	}
}

package config

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{"API_KEY", "GEMINI_API_KEY", "STUDYBUDDY_CONFIG", "STUDYBUDDY_PROVIDER_NAME", "STUDYBUDDY_QUIZ_QUESTIONS", "STUDYBUDDY_PROVIDER_API_KEY"} {
		t.Setenv(k, "")
	}
	t.Setenv("HOME", t.TempDir())
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load(New(""))
	require.NoError(t, err)
	require.Equal(t, "gemini", cfg.Provider.Name)
	require.Equal(t, 8080, cfg.Server.Port)
	require.Equal(t, 30*time.Minute, cfg.Server.SessionTTL)
	require.Equal(t, 5, cfg.Quiz.Questions)
	require.True(t, cfg.Quiz.StrictValidation)
	require.True(t, cfg.History.Enabled)
	require.Empty(t, cfg.Provider.APIKey)
}

func TestLoadFileAndEnvOverride(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "config.yaml")
	body := "provider:\n  name: ollama\n  model: llama3:8b\nserver:\n  port: 9000\n  session_ttl: 5m\nquiz:\n  questions: 3\n"
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	t.Setenv("STUDYBUDDY_QUIZ_QUESTIONS", "7")

	cfg, err := Load(New(path))
	require.NoError(t, err)
	require.Equal(t, "ollama", cfg.Provider.Name)
	require.Equal(t, "llama3:8b", cfg.Provider.Model)
	require.Equal(t, 9000, cfg.Server.Port)
	require.Equal(t, 5*time.Minute, cfg.Server.SessionTTL)
	require.Equal(t, 7, cfg.Quiz.Questions)
	require.NoError(t, cfg.Validate())
}

func TestLoadMissingExplicitFileUsesDefaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load(New(filepath.Join(t.TempDir(), "absent.yaml")))
	require.NoError(t, err)
	require.Equal(t, "gemini", cfg.Provider.Name)
}

func TestAPIKeyResolution(t *testing.T) {
	clearEnv(t)
	t.Setenv("GEMINI_API_KEY", "fallback")

	cfg, err := Load(New(""))
	require.NoError(t, err)
	require.Equal(t, "fallback", cfg.Provider.APIKey)

	t.Setenv("API_KEY", " primary ")
	cfg, err = Load(New(""))
	require.NoError(t, err)
	require.Equal(t, "primary", cfg.Provider.APIKey)
}

func TestValidate(t *testing.T) {
	cfg := Config{
		Provider: ProviderConfig{Name: "gemini", APIKeyEnv: "API_KEY"},
		Server:   ServerConfig{SessionTTL: time.Minute},
		Quiz:     QuizConfig{Questions: 5},
	}
	err := cfg.Validate()
	require.True(t, errors.Is(err, ErrMissingAPIKey))

	cfg.Provider.APIKey = "k"
	require.NoError(t, cfg.Validate())

	cfg.Provider.Name = "openai"
	require.Error(t, cfg.Validate())

	cfg.Provider.Name = "ollama"
	cfg.Provider.APIKey = ""
	require.NoError(t, cfg.Validate())

	cfg.Server.SessionTTL = 0
	require.ErrorContains(t, cfg.Validate(), "session_ttl")

	cfg.Server.SessionTTL = time.Minute
	cfg.Quiz.Questions = 0
	require.Error(t, cfg.Validate())
}

func TestWithContextAddsRequestID(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, InitLogger(LogConfig{Level: "debug", Format: "json"}, &buf))
	t.Cleanup(func() { _ = InitLogger(LogConfig{Level: "info"}, os.Stderr) })

	ctx := context.WithValue(context.Background(), middleware.RequestIDKey, "req-42")
	WithContext(ctx).Info("hello")

	require.Contains(t, buf.String(), `"request_id":"req-42"`)
	require.Contains(t, buf.String(), `"msg":"hello"`)
}

func TestInitLoggerRejectsUnknownLevel(t *testing.T) {
	require.Error(t, InitLogger(LogConfig{Level: "loud"}, &bytes.Buffer{}))
}

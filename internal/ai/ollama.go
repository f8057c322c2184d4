package ai

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
)

const (
	DefaultOllamaModel = "llama3:8b"
	defaultOllamaURL   = "http://127.0.0.1:11434"
)

// OllamaProvider implements the Provider interface for Ollama.
type OllamaProvider struct {
	model   string
	baseURL string
	client  *http.Client
}

// NewOllamaProvider creates a new provider for Ollama.
// baseURL defaults to http://127.0.0.1:11434 if empty.
func NewOllamaProvider(model, baseURL string, client *http.Client) *OllamaProvider {
	if model == "" {
		model = DefaultOllamaModel
	}
	if baseURL == "" {
		baseURL = defaultOllamaURL
	}
	if client == nil {
		client = &http.Client{}
	}
	return &OllamaProvider{
		model:   model,
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  client,
	}
}

// ollamaGenerateRequest is the request body for the Ollama API.
type ollamaGenerateRequest struct {
	Model  string `json:"model"`
	Prompt string `json:"prompt"`
	Stream bool   `json:"stream"`
	// Format is either the string "json" or a JSON schema object.
	Format any `json:"format,omitempty"`
}

// ollamaGenerateResponse is a single response object from the streaming API.
type ollamaGenerateResponse struct {
	Response string `json:"response"`
	Done     bool   `json:"done"`
	Error    string `json:"error,omitempty"`
}

// Generate sends a prompt to the Ollama API and returns the response.
func (p *OllamaProvider) Generate(ctx context.Context, req Request) (string, error) {
	body := ollamaGenerateRequest{
		Model:  p.model,
		Prompt: req.Prompt,
		Stream: true, // We'll stream the response
	}
	if req.Format == FormatJSON {
		if req.Schema != nil {
			body.Format = req.Schema
		} else {
			body.Format = "json"
		}
	}

	reqBody, err := json.Marshal(body)
	if err != nil {
		return "", fmt.Errorf("could not marshal ollama request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, p.baseURL+"/api/generate", bytes.NewBuffer(reqBody))
	if err != nil {
		return "", fmt.Errorf("could not create ollama request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := p.client.Do(httpReq)
	if err != nil {
		return "", fmt.Errorf("failed to send request to ollama: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("ollama returned non-200 status: %s", resp.Status)
	}

	var out strings.Builder
	scanner := bufio.NewScanner(resp.Body)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		var line ollamaGenerateResponse
		if err := json.Unmarshal(scanner.Bytes(), &line); err != nil {
			// Ignore lines that are not valid JSON
			continue
		}
		if line.Error != "" {
			return "", fmt.Errorf("ollama: %s", line.Error)
		}
		out.WriteString(line.Response)
		if line.Done {
			break
		}
	}

	if err := scanner.Err(); err != nil {
		return "", fmt.Errorf("error reading ollama stream: %w", err)
	}

	text := out.String()
	if strings.TrimSpace(text) == "" {
		return "", ErrEmptyResponse
	}
	return text, nil
}

package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"time"

	"github.com/rotisserie/eris"
)

// ollamaClient talks to a locally hosted Ollama server. No API key; local
// generation is slow, so the timeout is generous.
type ollamaClient struct {
	model   string
	baseURL string
	http    *http.Client
}

func newOllamaClient(model, baseURL string) *ollamaClient {
	return &ollamaClient{
		model:   model,
		baseURL: baseURL,
		http: &http.Client{
			Timeout: 5 * time.Minute,
		},
	}
}

type ollamaChatRequest struct {
	Model    string        `json:"model"`
	Messages []chatMessage `json:"messages"`
	Stream   bool          `json:"stream"`
}

type ollamaChatResponse struct {
	Message chatMessage `json:"message"`
}

func (c *ollamaClient) Complete(ctx context.Context, system, user string) (string, error) {
	body, err := json.Marshal(ollamaChatRequest{
		Model: c.model,
		Messages: []chatMessage{
			{Role: "system", Content: system},
			{Role: "user", Content: user},
		},
		Stream: false,
	})
	if err != nil {
		return "", eris.Wrap(err, "llm: marshal ollama request")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/chat", bytes.NewReader(body))
	if err != nil {
		return "", eris.Wrap(err, "llm: create ollama request")
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return "", eris.Wrap(err, "llm: send ollama request")
	}
	defer resp.Body.Close() //nolint:errcheck

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", eris.Wrap(err, "llm: read ollama response")
	}

	if resp.StatusCode != http.StatusOK {
		return "", eris.Errorf("llm: ollama unexpected status %d: %s", resp.StatusCode, string(respBody))
	}

	var result ollamaChatResponse
	if err := json.Unmarshal(respBody, &result); err != nil {
		return "", eris.Wrap(err, "llm: unmarshal ollama response")
	}

	return result.Message.Content, nil
}

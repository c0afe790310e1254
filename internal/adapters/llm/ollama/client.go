package ollama

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/chuckie/llmcommit/internal/adapters/llm/llmerr"
	"github.com/chuckie/llmcommit/internal/observability"
	"github.com/chuckie/llmcommit/internal/ports"
)

// Client talks to a local Ollama chat endpoint. Local inference needs no
// credential; unavailability is an ordinary connection error and the caller
// falls through to the next provider.
type Client struct {
	baseURL string
	model   string
	http    *http.Client
}

// NewClient creates a new Ollama client.
func NewClient(baseURL, model string) *Client {
	if baseURL == "" {
		baseURL = "http://localhost:11434"
	}
	if model == "" {
		model = "qwen3:8b"
	}

	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		model:   model,
		http:    &http.Client{Timeout: 0}, // context handles the timeout
	}
}

type chatRequest struct {
	Model    string        `json:"model"`
	Stream   bool          `json:"stream"`
	Messages []chatMessage `json:"messages"`
	Options  chatOptions   `json:"options"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatOptions struct {
	Temperature float64 `json:"temperature"`
}

type chatResponse struct {
	Message struct {
		Content string `json:"content"`
	} `json:"message"`
}

// Generate issues one chat request against {host}/api/chat.
//
// An empty content field is "no result", not an error: the model answered
// but produced nothing usable, and the pipeline should try the next backend.
func (c *Client) Generate(ctx context.Context, input ports.GenerateInput) (string, error) {
	model := input.Model
	if model == "" {
		model = c.model
	}

	reqBody := chatRequest{
		Model:  model,
		Stream: false,
		Messages: []chatMessage{
			{Role: "system", Content: input.System},
			{Role: "user", Content: input.User},
		},
		Options: chatOptions{Temperature: 0.2},
	}

	jsonBody, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, "POST", c.baseURL+"/api/chat", bytes.NewReader(jsonBody))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to call ollama: %w", err)
	}
	defer resp.Body.Close()

	body, readErr := io.ReadAll(resp.Body)
	if readErr != nil {
		return "", fmt.Errorf("failed to read response: %w", readErr)
	}

	if resp.StatusCode != http.StatusOK {
		observability.Logger().Printf(
			"ollama: non-200 status=%d model=%q body_len=%d body_snip=%q",
			resp.StatusCode,
			model,
			len(body),
			observability.Snip(observability.RedactForLog(string(body)), 600),
		)
		return "", llmerr.FromStatus("ollama", resp.StatusCode, observability.Snip(string(body), 300))
	}

	var respData chatResponse
	if err := json.Unmarshal(body, &respData); err != nil {
		observability.Logger().Printf(
			"ollama: failed to unmarshal response JSON: %v; body_len=%d body_snip=%q",
			err,
			len(body),
			observability.Snip(observability.RedactForLog(string(body)), 600),
		)
		return "", fmt.Errorf("failed to parse response: %w", err)
	}

	return strings.TrimSpace(respData.Message.Content), nil
}

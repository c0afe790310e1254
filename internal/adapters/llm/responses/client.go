package responses

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"regexp"
	"strings"

	"github.com/chuckie/llmcommit/internal/adapters/llm/llmerr"
	"github.com/chuckie/llmcommit/internal/observability"
	"github.com/chuckie/llmcommit/internal/ports"
)

const (
	defaultMaxOutputTokens   = 220
	reasoningMaxOutputTokens = 4000

	temperature = 0.2
)

// reasoningModel matches this API's reasoning-model naming: the o-series
// plus the gpt-5 family. Both reject the temperature parameter.
var reasoningModel = regexp.MustCompile(`^(o[0-9]|gpt-5)`)

// Client implements ports.Provider for a /v1/responses endpoint: a single
// combined prompt field in, a nested output-item list out.
type Client struct {
	apiKey  string
	baseURL string
	model   string
	http    *http.Client
}

// NewClient creates a new responses-endpoint client.
func NewClient(apiKey, baseURL, model string) *Client {
	if baseURL == "" {
		baseURL = "https://api.openai.com"
	}
	return &Client{
		apiKey:  apiKey,
		baseURL: strings.TrimRight(baseURL, "/"),
		model:   model,
		http:    &http.Client{Timeout: 0}, // context handles the timeout
	}
}

type request struct {
	Model           string   `json:"model"`
	Instructions    string   `json:"instructions"`
	Input           string   `json:"input"`
	MaxOutputTokens int      `json:"max_output_tokens"`
	Temperature     *float64 `json:"temperature,omitempty"`
	Store           bool     `json:"store"`
}

type response struct {
	OutputText string       `json:"output_text"`
	Output     []outputItem `json:"output"`
}

type outputItem struct {
	Type    string        `json:"type"`
	Role    string        `json:"role"`
	Content []contentPart `json:"content"`
}

type contentPart struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

// Generate issues one request against {base}/v1/responses and concatenates
// every assistant-authored text part of the reply.
func (c *Client) Generate(ctx context.Context, input ports.GenerateInput) (string, error) {
	model := input.Model
	if model == "" {
		model = c.model
	}

	reqBody := request{
		Model:           model,
		Instructions:    input.System,
		Input:           input.User,
		MaxOutputTokens: defaultMaxOutputTokens,
		Store:           false,
	}
	if reasoningModel.MatchString(model) {
		reqBody.MaxOutputTokens = reasoningMaxOutputTokens
	} else {
		t := temperature
		reqBody.Temperature = &t
	}

	jsonBody, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, "POST", c.baseURL+"/v1/responses", bytes.NewReader(jsonBody))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to call responses endpoint: %w", err)
	}
	defer resp.Body.Close()

	body, readErr := io.ReadAll(resp.Body)
	if readErr != nil {
		return "", fmt.Errorf("failed to read response: %w", readErr)
	}

	if resp.StatusCode != http.StatusOK {
		observability.Logger().Printf(
			"responses: non-200 status=%d model=%q body_len=%d body_snip=%q",
			resp.StatusCode,
			model,
			len(body),
			observability.Snip(observability.RedactForLog(string(body)), 1200),
		)
		return "", llmerr.FromStatus("responses", resp.StatusCode, observability.Snip(string(body), 300))
	}

	var respData response
	if err := json.Unmarshal(body, &respData); err != nil {
		observability.Logger().Printf(
			"responses: failed to unmarshal response JSON: %v; body_len=%d body_snip=%q",
			err,
			len(body),
			observability.Snip(observability.RedactForLog(string(body)), 1200),
		)
		return "", fmt.Errorf("failed to parse response: %w", err)
	}

	return extractText(respData), nil
}

// extractText prefers the flat output_text field and falls back to walking
// the structured output list, joining every assistant text part.
func extractText(r response) string {
	if s := strings.TrimSpace(r.OutputText); s != "" {
		return s
	}

	var parts []string
	for _, item := range r.Output {
		if item.Type != "message" || item.Role != "assistant" {
			continue
		}
		for _, part := range item.Content {
			if part.Type != "output_text" && part.Type != "text" {
				continue
			}
			if s := strings.TrimSpace(part.Text); s != "" {
				parts = append(parts, s)
			}
		}
	}
	return strings.TrimSpace(strings.Join(parts, "\n"))
}

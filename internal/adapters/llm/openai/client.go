package openai

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"

	openai "github.com/sashabaranov/go-openai"

	"github.com/chuckie/llmcommit/internal/adapters/llm/llmerr"
	"github.com/chuckie/llmcommit/internal/observability"
	"github.com/chuckie/llmcommit/internal/ports"
)

const (
	defaultMaxTokens = 220
	// Reasoning models spend output tokens on hidden deliberation before
	// emitting text, so the visible budget has to be much larger.
	reasoningMaxTokens = 4000

	temperature = 0.2
)

// reasoningModel matches the o-series naming convention (o1, o3-mini, ...)
// and the gpt-5 family. These models reject the temperature parameter and
// spend output tokens on hidden deliberation.
var reasoningModel = regexp.MustCompile(`^(o[0-9]|gpt-5)`)

// Client implements ports.Provider for a chat/completions endpoint,
// through the go-openai SDK.
type Client struct {
	apiKey  string
	baseURL string
	model   string
}

// NewClient creates a new chat-completions client.
func NewClient(apiKey, baseURL, model string) *Client {
	return &Client{
		apiKey:  apiKey,
		baseURL: baseURL,
		model:   model,
	}
}

// Generate issues one chat completion request and returns the first choice's
// message content.
func (c *Client) Generate(ctx context.Context, input ports.GenerateInput) (string, error) {
	cfg := openai.DefaultConfig(c.apiKey)
	if c.baseURL != "" {
		cfg.BaseURL = c.baseURL
	}
	client := openai.NewClientWithConfig(cfg)

	model := input.Model
	if model == "" {
		model = c.model
	}

	req := openai.ChatCompletionRequest{
		Model:     model,
		MaxTokens: defaultMaxTokens,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: input.System},
			{Role: openai.ChatMessageRoleUser, Content: input.User},
		},
	}
	if reasoningModel.MatchString(model) {
		req.MaxTokens = reasoningMaxTokens
	} else {
		req.Temperature = temperature
	}

	text, err := c.complete(ctx, client, req)
	if err == nil {
		return text, nil
	}

	// Some models reject temperature with a 400 naming the parameter.
	// Retrying once without it beats surfacing a confusing failure.
	var se *llmerr.StatusError
	if errors.As(err, &se) && se.Code == 400 && req.Temperature != 0 &&
		strings.Contains(strings.ToLower(se.Message), "temperature") {
		observability.Logger().Printf("openai: model %q rejected temperature, retrying without it", model)
		req.Temperature = 0
		return c.complete(ctx, client, req)
	}

	return "", err
}

func (c *Client) complete(ctx context.Context, client *openai.Client, req openai.ChatCompletionRequest) (string, error) {
	resp, err := client.CreateChatCompletion(ctx, req)
	if err != nil {
		return "", c.translate(req.Model, err)
	}

	if len(resp.Choices) == 0 {
		return "", nil // no result; let the pipeline move on
	}
	return strings.TrimSpace(resp.Choices[0].Message.Content), nil
}

// translate maps SDK errors into the shared taxonomy. Transport errors pass
// through unchanged so the retry wrapper can classify them as network-class.
func (c *Client) translate(model string, err error) error {
	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		observability.Logger().Printf(
			"openai: API error status=%d model=%q msg=%q",
			apiErr.HTTPStatusCode,
			model,
			observability.Snip(observability.RedactForLog(apiErr.Message), 600),
		)
		return llmerr.FromStatus("openai", apiErr.HTTPStatusCode, apiErr.Message)
	}

	var reqErr *openai.RequestError
	if errors.As(err, &reqErr) {
		return llmerr.FromStatus("openai", reqErr.HTTPStatusCode, reqErr.Error())
	}

	return fmt.Errorf("failed to call openai: %w", err)
}

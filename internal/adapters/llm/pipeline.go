package llm

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/chuckie/llmcommit/internal/observability"
	"github.com/chuckie/llmcommit/internal/ports"
)

// DefaultTimeout bounds one provider call when the spec carries none.
const DefaultTimeout = 25 * time.Second

// Outcome is the fate of one pipeline entry.
type Outcome string

const (
	OutcomeSucceeded Outcome = "succeeded"
	OutcomeFailed    Outcome = "failed"
	OutcomeSkipped   Outcome = "skipped"
)

// Attempt records what happened to one provider during a pipeline run.
type Attempt struct {
	Provider string
	Outcome  Outcome
	Detail   string
}

func (a Attempt) String() string {
	if a.Detail == "" {
		return fmt.Sprintf("%s: %s", a.Provider, a.Outcome)
	}
	return fmt.Sprintf("%s: %s (%s)", a.Provider, a.Outcome, a.Detail)
}

// ExhaustedError means every configured provider was skipped or failed.
// It names each provider's fate for diagnostics.
type ExhaustedError struct {
	Attempts []Attempt
}

func (e *ExhaustedError) Error() string {
	parts := make([]string, 0, len(e.Attempts))
	for _, a := range e.Attempts {
		parts = append(parts, a.String())
	}
	if len(parts) == 0 {
		return "no providers configured"
	}
	return "all providers failed: " + strings.Join(parts, "; ")
}

// Spec describes one pipeline entry: a resolved client, or a skip with its
// reason when the entry cannot be invoked (unknown identity, no credential).
type Spec struct {
	Name       string
	Client     ports.Provider
	Timeout    time.Duration
	SkipReason string
}

// Pipeline iterates an ordered provider list until one yields non-empty
// text. Providers are tried strictly one at a time: every call consumes the
// same prompt, the first success is definitive, and concurrent fan-out would
// only waste cost and latency.
type Pipeline struct {
	specs   []Spec
	retrier Retrier
}

// NewPipeline creates a pipeline over specs with the default retry policy.
func NewPipeline(specs []Spec) *Pipeline {
	return &Pipeline{specs: specs}
}

// NewPipelineWithRetrier creates a pipeline with an explicit retry policy.
func NewPipelineWithRetrier(specs []Spec, retrier Retrier) *Pipeline {
	return &Pipeline{specs: specs, retrier: retrier}
}

// Run tries each provider in order and returns the first non-empty text.
// Any non-empty result is final, however implausible; only empty text or an
// error advances the iteration. The attempt list is returned on success too
// so callers can surface verbose diagnostics.
func (p *Pipeline) Run(ctx context.Context, system, user, modelOverride string) (string, []Attempt, error) {
	attempts := make([]Attempt, 0, len(p.specs))

	for _, spec := range p.specs {
		if spec.SkipReason != "" {
			observability.Logger().Printf("pipeline: skipping %s: %s", spec.Name, spec.SkipReason)
			attempts = append(attempts, Attempt{Provider: spec.Name, Outcome: OutcomeSkipped, Detail: spec.SkipReason})
			continue
		}

		timeout := spec.Timeout
		if timeout <= 0 {
			timeout = DefaultTimeout
		}
		input := ports.GenerateInput{System: system, User: user, Model: modelOverride}

		client := spec.Client
		text, err := p.retrier.Do(ctx, func(ctx context.Context) (string, error) {
			callCtx, cancel := context.WithTimeout(ctx, timeout)
			defer cancel()
			return client.Generate(callCtx, input)
		})
		if err != nil {
			observability.Logger().Printf("pipeline: %s failed: %v", spec.Name, err)
			attempts = append(attempts, Attempt{Provider: spec.Name, Outcome: OutcomeFailed, Detail: err.Error()})
			continue
		}
		if strings.TrimSpace(text) == "" {
			observability.Logger().Printf("pipeline: %s returned empty output", spec.Name)
			attempts = append(attempts, Attempt{Provider: spec.Name, Outcome: OutcomeFailed, Detail: "empty output"})
			continue
		}

		attempts = append(attempts, Attempt{Provider: spec.Name, Outcome: OutcomeSucceeded})
		return text, attempts, nil
	}

	return "", attempts, &ExhaustedError{Attempts: attempts}
}

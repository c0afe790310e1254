package llm

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/chuckie/llmcommit/internal/adapters/llm/llmerr"
	"github.com/chuckie/llmcommit/internal/testutil"
)

func noSleepRetrier() Retrier {
	return Retrier{Sleep: func(context.Context, time.Duration) error { return nil }}
}

func TestPipelineFirstSuccessStops(t *testing.T) {
	first := &testutil.FakeProvider{Err: llmerr.FromStatus("ollama", 404, "no such model")}
	second := &testutil.FakeProvider{Text: "Fix the bug"}
	third := &testutil.FakeProvider{Text: "never asked"}

	p := NewPipelineWithRetrier([]Spec{
		{Name: "ollama", Client: first},
		{Name: "openai", Client: second},
		{Name: "responses", Client: third},
	}, noSleepRetrier())

	text, attempts, err := p.Run(context.Background(), "sys", "user", "")
	if err != nil {
		t.Fatal(err)
	}
	if text != "Fix the bug" {
		t.Errorf("text = %q", text)
	}
	if third.CallCount != 0 {
		t.Error("providers after the first success must not be invoked")
	}

	if len(attempts) != 2 {
		t.Fatalf("attempts = %v", attempts)
	}
	if attempts[0].Outcome != OutcomeFailed || attempts[1].Outcome != OutcomeSucceeded {
		t.Errorf("attempts = %v", attempts)
	}
}

func TestPipelineEmptyOutputAdvances(t *testing.T) {
	first := &testutil.FakeProvider{Text: "   \n"}
	second := &testutil.FakeProvider{Text: "Add retry budget"}

	p := NewPipelineWithRetrier([]Spec{
		{Name: "ollama", Client: first},
		{Name: "openai", Client: second},
	}, noSleepRetrier())

	text, attempts, err := p.Run(context.Background(), "sys", "user", "")
	if err != nil {
		t.Fatal(err)
	}
	if text != "Add retry budget" {
		t.Errorf("text = %q", text)
	}
	if attempts[0].Outcome != OutcomeFailed || attempts[0].Detail != "empty output" {
		t.Errorf("attempts[0] = %v", attempts[0])
	}
}

func TestPipelineSkipsWithoutInvoking(t *testing.T) {
	hosted := &testutil.FakeProvider{Text: "unused"}
	fallback := &testutil.FakeProvider{Text: "Use the fallback"}

	p := NewPipelineWithRetrier([]Spec{
		{Name: "openai", Client: hosted, SkipReason: "no API key configured"},
		{Name: "ollama", Client: fallback},
	}, noSleepRetrier())

	text, attempts, err := p.Run(context.Background(), "sys", "user", "")
	if err != nil {
		t.Fatal(err)
	}
	if text != "Use the fallback" {
		t.Errorf("text = %q", text)
	}
	if hosted.CallCount != 0 {
		t.Error("skipped entries must never be invoked")
	}
	if attempts[0].Outcome != OutcomeSkipped || attempts[0].Detail != "no API key configured" {
		t.Errorf("attempts[0] = %v", attempts[0])
	}
}

func TestPipelineExhaustion(t *testing.T) {
	p := NewPipelineWithRetrier([]Spec{
		{Name: "ollama", Client: &testutil.FakeProvider{Err: llmerr.FromStatus("ollama", 404, "gone")}},
		{Name: "openai", SkipReason: "unknown provider"},
	}, noSleepRetrier())

	_, attempts, err := p.Run(context.Background(), "sys", "user", "")
	var exhausted *ExhaustedError
	if !errors.As(err, &exhausted) {
		t.Fatalf("error = %v, want ExhaustedError", err)
	}
	if len(attempts) != 2 {
		t.Fatalf("attempts = %v", attempts)
	}
	// The message names each provider and its fate.
	msg := err.Error()
	for _, want := range []string{"ollama", "openai", "failed", "skipped"} {
		if !strings.Contains(msg, want) {
			t.Errorf("error %q missing %q", msg, want)
		}
	}
}

func TestPipelineNoSpecs(t *testing.T) {
	p := NewPipeline(nil)
	_, _, err := p.Run(context.Background(), "sys", "user", "")
	if err == nil || !strings.Contains(err.Error(), "no providers configured") {
		t.Fatalf("error = %v", err)
	}
}

func TestPipelineModelOverrideReachesProvider(t *testing.T) {
	provider := &testutil.FakeProvider{Text: "ok"}
	p := NewPipelineWithRetrier([]Spec{{Name: "ollama", Client: provider}}, noSleepRetrier())

	if _, _, err := p.Run(context.Background(), "sys", "user", "llama3.2"); err != nil {
		t.Fatal(err)
	}
	in := provider.LastInput
	if in.Model != "llama3.2" || in.System != "sys" || in.User != "user" {
		t.Errorf("input = %+v", in)
	}
}

func TestPipelineRetriesTransientBeforeAdvancing(t *testing.T) {
	flaky := &testutil.FakeProvider{Results: []testutil.FakeResult{
		{Err: llmerr.FromStatus("openai", 429, "slow down")},
		{Text: "Second try wins"},
	}}
	p := NewPipelineWithRetrier([]Spec{{Name: "openai", Client: flaky}}, noSleepRetrier())

	text, attempts, err := p.Run(context.Background(), "sys", "user", "")
	if err != nil {
		t.Fatal(err)
	}
	if text != "Second try wins" || flaky.CallCount != 2 {
		t.Errorf("text=%q calls=%d", text, flaky.CallCount)
	}
	// One pipeline-level attempt even though the retrier called twice.
	if len(attempts) != 1 || attempts[0].Outcome != OutcomeSucceeded {
		t.Errorf("attempts = %v", attempts)
	}
}

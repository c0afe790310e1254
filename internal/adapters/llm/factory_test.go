package llm

import (
	"testing"

	"github.com/chuckie/llmcommit/internal/config"
)

func TestSpecsFromConfig(t *testing.T) {
	cfg := config.Default()
	cfg.Order = []string{"ollama", "openai", "responses", "mystery"}
	cfg.OpenAI.APIKey = "sk-test"
	cfg.Responses.APIKey = ""

	specs := SpecsFromConfig(cfg)
	if len(specs) != 4 {
		t.Fatalf("specs = %d, want 4", len(specs))
	}

	if specs[0].SkipReason != "" || specs[0].Client == nil {
		t.Errorf("ollama needs no credential: %+v", specs[0])
	}
	if specs[1].SkipReason != "" || specs[1].Client == nil {
		t.Errorf("openai with a key must resolve: %+v", specs[1])
	}
	if specs[2].SkipReason != "no API key configured" {
		t.Errorf("responses without a key must skip: %+v", specs[2])
	}
	if specs[3].SkipReason != "unknown provider" {
		t.Errorf("unknown identity must skip: %+v", specs[3])
	}
}

func TestNewClientUnknownProvider(t *testing.T) {
	if _, err := NewClient("mystery", config.ProviderSpec{}); err == nil {
		t.Fatal("expected error for unknown provider")
	}
}

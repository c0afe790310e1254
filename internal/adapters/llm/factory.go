package llm

import (
	"fmt"
	"strings"

	"github.com/chuckie/llmcommit/internal/adapters/llm/ollama"
	"github.com/chuckie/llmcommit/internal/adapters/llm/openai"
	"github.com/chuckie/llmcommit/internal/adapters/llm/responses"
	"github.com/chuckie/llmcommit/internal/config"
	"github.com/chuckie/llmcommit/internal/ports"
)

// NewClient creates the provider client for one identity.
func NewClient(name string, spec config.ProviderSpec) (ports.Provider, error) {
	switch name {
	case config.ProviderOllama:
		return ollama.NewClient(spec.Host, spec.Model), nil
	case config.ProviderOpenAI:
		return openai.NewClient(spec.APIKey, spec.Host, spec.Model), nil
	case config.ProviderResponses:
		return responses.NewClient(spec.APIKey, spec.Host, spec.Model), nil
	default:
		return nil, fmt.Errorf("unknown provider: %s", name)
	}
}

// SpecsFromConfig resolves the configured provider order into pipeline
// entries. Unknown identities and hosted providers without a credential
// become skips with a diagnostic, never a hard failure; the local provider
// needs no credential.
func SpecsFromConfig(cfg *config.Config) []Spec {
	specs := make([]Spec, 0, len(cfg.Order))
	for _, name := range cfg.Order {
		if !config.Known(name) {
			specs = append(specs, Spec{Name: name, SkipReason: "unknown provider"})
			continue
		}
		ps, _ := cfg.Provider(name)
		if name != config.ProviderOllama && strings.TrimSpace(ps.APIKey) == "" {
			specs = append(specs, Spec{Name: name, SkipReason: "no API key configured"})
			continue
		}

		client, err := NewClient(name, ps)
		if err != nil {
			specs = append(specs, Spec{Name: name, SkipReason: err.Error()})
			continue
		}
		specs = append(specs, Spec{Name: name, Client: client, Timeout: ps.Timeout})
	}
	return specs
}

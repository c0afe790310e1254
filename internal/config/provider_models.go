package config

// Provider identities accepted in the pipeline order.
const (
	ProviderOllama    = "ollama"
	ProviderOpenAI    = "openai"
	ProviderResponses = "responses"
)

// KnownProviders lists every identity this build can construct a client for.
// Unknown names in the configured order are skipped with a diagnostic.
var KnownProviders = []string{ProviderOllama, ProviderOpenAI, ProviderResponses}

// Known reports whether name is a recognized provider identity.
func Known(name string) bool {
	for _, p := range KnownProviders {
		if p == name {
			return true
		}
	}
	return false
}

// DefaultModels holds the built-in model identifier per provider.
var DefaultModels = map[string]string{
	ProviderOllama:    "qwen3:8b",
	ProviderOpenAI:    "gpt-4o-mini",
	ProviderResponses: "gpt-5-mini",
}

// ProviderModels lists common model options per provider, used for help
// output.
var ProviderModels = map[string][]string{
	ProviderOllama: {
		"qwen3:8b",
		"qwen2.5-coder",
		"codellama",
		"deepseek-coder",
		"llama3.1",
		"llama3.2",
		"mistral",
	},
	ProviderOpenAI: {
		"gpt-4o",
		"gpt-4o-mini",
		"gpt-4.1",
		"gpt-4.1-mini",
		"o3-mini",
		"o4-mini",
	},
	ProviderResponses: {
		"gpt-5-mini",
		"gpt-5-nano",
		"gpt-5.2",
		"o3",
		"o4-mini",
	},
}

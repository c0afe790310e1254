package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/chuckie/llmcommit/internal/domain"
	"github.com/chuckie/llmcommit/internal/observability"
)

// ProviderSpec describes one backend: endpoint, model, per-call timeout and
// (for hosted providers) credential.
type ProviderSpec struct {
	Host    string
	Model   string
	APIKey  string
	Timeout time.Duration
}

// Config is the immutable per-run configuration. It is constructed once at
// process start and passed by reference into every component that needs it;
// no component reads ambient environment state directly.
type Config struct {
	Language  string
	Order     []string // pipeline iteration order
	DiffCap   int
	Ollama    ProviderSpec
	OpenAI    ProviderSpec
	Responses ProviderSpec
}

// Provider returns the spec for a known provider identity.
func (c *Config) Provider(name string) (ProviderSpec, bool) {
	switch name {
	case ProviderOllama:
		return c.Ollama, true
	case ProviderOpenAI:
		return c.OpenAI, true
	case ProviderResponses:
		return c.Responses, true
	}
	return ProviderSpec{}, false
}

// ApplyOverrides narrows the pipeline to one provider and/or overrides the
// model for every entry, for the --provider and --model flags.
func (c *Config) ApplyOverrides(provider, model string) {
	if provider != "" {
		c.Order = []string{provider}
	}
	if model != "" {
		c.Ollama.Model = model
		c.OpenAI.Model = model
		c.Responses.Model = model
	}
}

// Default returns the built-in configuration before any file or environment
// overrides.
func Default() *Config {
	return &Config{
		Language: "en",
		Order:    []string{ProviderOllama, ProviderOpenAI, ProviderResponses},
		DiffCap:  domain.DefaultDiffCap,
		Ollama: ProviderSpec{
			Host:    "http://localhost:11434",
			Model:   DefaultModels[ProviderOllama],
			Timeout: 25 * time.Second,
		},
		OpenAI: ProviderSpec{
			Model:   DefaultModels[ProviderOpenAI],
			Timeout: 25 * time.Second,
		},
		Responses: ProviderSpec{
			Host:    "https://api.openai.com",
			Model:   DefaultModels[ProviderResponses],
			Timeout: 25 * time.Second,
		},
	}
}

// Load builds configuration with precedence, lowest to highest:
// built-in defaults, user config file, project config file, environment.
func Load() (*Config, error) {
	cfg := Default()

	// Config files, user then project, best-effort: a missing file is fine,
	// but a present-and-broken one is logged before falling through.
	if path, err := DefaultConfigPath(); err == nil {
		applyPartialConfig(cfg, loadLayer(path))
	}
	applyPartialConfig(cfg, loadLayer(ProjectConfigPath()))

	applyEnv(cfg)

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// loadLayer reads one config file layer. Missing files yield nil; unreadable
// or malformed files also yield nil but leave a trace in the error log so a
// typo'd file does not silently degrade to defaults.
func loadLayer(path string) *PartialConfig {
	fileCfg, err := LoadFromFile(path)
	if err != nil {
		observability.Logger().Printf("config: ignoring %s: %v", path, err)
		return nil
	}
	return fileCfg
}

func applyEnv(cfg *Config) {
	if v := getEnv("LLMCOMMIT_LANG", ""); v != "" {
		cfg.Language = v
	}
	if v := getEnv("LLMCOMMIT_PROVIDERS", ""); v != "" {
		cfg.Order = splitOrder(v)
	}
	cfg.DiffCap = getEnvInt("LLMCOMMIT_DIFF_CAP", cfg.DiffCap)
	if secs := getEnvInt("LLMCOMMIT_TIMEOUT_SECONDS", 0); secs > 0 {
		timeout := time.Duration(secs) * time.Second
		cfg.Ollama.Timeout = timeout
		cfg.OpenAI.Timeout = timeout
		cfg.Responses.Timeout = timeout
	}

	if v := getEnv("OLLAMA_HOST", ""); v != "" {
		cfg.Ollama.Host = strings.TrimRight(v, "/")
	}
	if v := getEnv("OLLAMA_MODEL", ""); v != "" {
		cfg.Ollama.Model = v
	}

	// Both hosted shapes share the same vendor credential and base URL.
	if _, ok := os.LookupEnv("OPENAI_API_KEY"); ok {
		key := strings.TrimSpace(getEnv("OPENAI_API_KEY", ""))
		cfg.OpenAI.APIKey = key
		cfg.Responses.APIKey = key
	}
	if v := getEnv("OPENAI_BASE_URL", ""); v != "" {
		cfg.OpenAI.Host = strings.TrimRight(v, "/")
		cfg.Responses.Host = strings.TrimRight(v, "/")
	}
	if v := getEnv("OPENAI_MODEL", ""); v != "" {
		cfg.OpenAI.Model = v
	}
	if v := getEnv("OPENAI_RESPONSES_MODEL", ""); v != "" {
		cfg.Responses.Model = v
	}
}

func (c *Config) validate() error {
	if c.DiffCap <= 0 {
		return fmt.Errorf("diff cap must be positive, got %d", c.DiffCap)
	}
	if len(c.Order) == 0 {
		return fmt.Errorf("provider order is empty")
	}
	return nil
}

func splitOrder(v string) []string {
	parts := strings.Split(v, ",")
	order := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			order = append(order, p)
		}
	}
	return order
}

func applyPartialConfig(dst *Config, src *PartialConfig) {
	if dst == nil || src == nil {
		return
	}
	if src.Language != nil {
		dst.Language = *src.Language
	}
	if src.Providers != nil {
		dst.Order = append([]string(nil), *src.Providers...)
	}
	if src.DiffCap != nil {
		dst.DiffCap = *src.DiffCap
	}
	applyPartialProvider(&dst.Ollama, src.Ollama)
	applyPartialProvider(&dst.OpenAI, src.OpenAI)
	applyPartialProvider(&dst.Responses, src.Responses)
}

func applyPartialProvider(dst *ProviderSpec, src *PartialProvider) {
	if src == nil {
		return
	}
	if src.Host != nil {
		dst.Host = strings.TrimRight(*src.Host, "/")
	}
	if src.Model != nil {
		dst.Model = *src.Model
	}
	if src.APIKey != nil {
		dst.APIKey = *src.APIKey
	}
	if src.TimeoutSeconds != nil && *src.TimeoutSeconds > 0 {
		dst.Timeout = time.Duration(*src.TimeoutSeconds) * time.Second
	}
}

// getEnv retrieves an environment variable with a default value.
func getEnv(key, defaultValue string) string {
	if val, ok := os.LookupEnv(key); ok {
		return val
	}
	return defaultValue
}

// getEnvInt retrieves an environment variable as int with a default value.
func getEnvInt(key string, defaultValue int) int {
	if val, ok := os.LookupEnv(key); ok {
		if i, err := strconv.Atoi(val); err == nil {
			return i
		}
	}
	return defaultValue
}

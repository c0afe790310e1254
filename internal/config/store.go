package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// PartialConfig represents a config file with optional fields. Pointer
// fields keep missing keys from clobbering values set by a lower layer.
type PartialConfig struct {
	Language  *string          `yaml:"language,omitempty"`
	Providers *[]string        `yaml:"providers,omitempty"`
	DiffCap   *int             `yaml:"diff_cap,omitempty"`
	Ollama    *PartialProvider `yaml:"ollama,omitempty"`
	OpenAI    *PartialProvider `yaml:"openai,omitempty"`
	Responses *PartialProvider `yaml:"responses,omitempty"`
}

// PartialProvider is one provider section of a config file.
type PartialProvider struct {
	Host           *string `yaml:"host,omitempty"`
	Model          *string `yaml:"model,omitempty"`
	APIKey         *string `yaml:"api_key,omitempty"`
	TimeoutSeconds *int    `yaml:"timeout_seconds,omitempty"`
}

// DefaultConfigPath returns the per-user config path.
//
// Typically:
// - Linux:   ~/.config/llmcommit/config.yaml
// - macOS:   ~/Library/Application Support/llmcommit/config.yaml
// - Windows: %AppData%/llmcommit/config.yaml
func DefaultConfigPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("get user config dir: %w", err)
	}
	return filepath.Join(dir, "llmcommit", "config.yaml"), nil
}

// ProjectConfigPath returns the project-level config path, relative to the
// working directory.
func ProjectConfigPath() string {
	return ".llmcommit.yaml"
}

// LoadFromFile loads config from a YAML file. A missing file returns
// (nil, nil).
func LoadFromFile(path string) (*PartialConfig, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("read config: %w", err)
	}

	var cfg PartialConfig
	if err := yaml.Unmarshal(b, &cfg); err != nil {
		return nil, fmt.Errorf("parse config YAML: %w", err)
	}
	return &cfg, nil
}

// SaveToFile saves a partial config as YAML (atomic write). Creates
// directories as needed.
//
// NOTE: this may include API keys. The file is written with 0600 permissions.
func SaveToFile(path string, cfg *PartialConfig) error {
	if cfg == nil {
		return fmt.Errorf("config is nil")
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}

	b, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("encode config YAML: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("create temp config: %w", err)
	}
	tmpName := tmp.Name()
	defer func() {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
	}()

	if err := tmp.Chmod(0o600); err != nil {
		return fmt.Errorf("chmod temp config: %w", err)
	}
	if _, err := tmp.Write(b); err != nil {
		return fmt.Errorf("write temp config: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close temp config: %w", err)
	}

	if err := os.Rename(tmpName, path); err != nil {
		return fmt.Errorf("replace config: %w", err)
	}
	if err := os.Chmod(path, 0o600); err != nil {
		// Best-effort; don't fail after successful rename.
		_ = err
	}

	return nil
}

package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

type Config struct {
	Provider string        `yaml:"provider" validate:"required,oneof=mock groq ollama openai anthropic openrouter custom"`
	APIKey   string        `yaml:"api_key,omitempty"`
	Model    string        `yaml:"model,omitempty"`
	BaseURL  string        `yaml:"base_url,omitempty" validate:"omitempty,url"`
	Timeout  time.Duration `yaml:"timeout" validate:"min=1s,max=5m"`
	LogLevel string        `yaml:"log_level" validate:"oneof=debug info warn error"`

	Audit AuditConfig `yaml:"audit"`
}

type AuditConfig struct {
	Enabled bool   `yaml:"enabled"`
	Path    string `yaml:"path,omitempty" validate:"required_if=Enabled true"`
}

func DefaultConfig() *Config {
	path := "pact-audit.db"
	if dir, err := ConfigDir(); err == nil {
		path = filepath.Join(dir, "audit.db")
	}
	return &Config{
		Provider: "mock",
		Timeout:  30 * time.Second,
		LogLevel: "info",
		Audit: AuditConfig{
			Enabled: false,
			Path:    path,
		},
	}
}

func ConfigDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "pact"), nil
}

func ConfigPath() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.yaml"), nil
}

func Exists(path string) bool {
	if path == "" {
		var err error
		if path, err = ConfigPath(); err != nil {
			return false
		}
	}
	_, err := os.Stat(path)
	return err == nil
}

// Load reads path (or the default location when empty), applies environment
// overrides and validates the result. A missing file yields the defaults.
func Load(path string) (*Config, error) {
	cfg, err := Read(path)
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Read is Load without validation.
func Read(path string) (*Config, error) {
	if path == "" {
		var err error
		if path, err = ConfigPath(); err != nil {
			return nil, err
		}
	}

	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, os.ErrNotExist):
	case err != nil:
		return nil, err
	default:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse %s: %w", path, err)
		}
	}

	cfg.ApplyEnv()
	return cfg, nil
}

// LoadEnvFile loads KEY=VALUE pairs from a .env file without overriding
// variables that are already set. A missing file is not an error.
func LoadEnvFile(path string) error {
	if path == "" {
		path = ".env"
	}
	if err := godotenv.Load(path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("load %s: %w", path, err)
	}
	return nil
}

// ApplyEnv overlays MODEL_PROVIDER, PACT_MODEL, PACT_BASE_URL and the
// provider's API key variable.
func (c *Config) ApplyEnv() {
	if v := strings.TrimSpace(os.Getenv("MODEL_PROVIDER")); v != "" {
		c.Provider = strings.ToLower(v)
	}
	if v := os.Getenv("PACT_MODEL"); v != "" {
		c.Model = v
	}
	if v := os.Getenv("PACT_BASE_URL"); v != "" {
		c.BaseURL = v
	}
	c.resolveAPIKey()
}

func (c *Config) resolveAPIKey() {
	if c.APIKey != "" {
		return
	}
	if p := GetProvider(c.Provider); p != nil && p.EnvKey != "" {
		c.APIKey = os.Getenv(p.EnvKey)
	}
}

// SetProvider switches backend and re-resolves its API key and PACT_MODEL
// from the environment.
func (c *Config) SetProvider(id string) {
	id = strings.ToLower(strings.TrimSpace(id))
	if id == c.Provider {
		return
	}
	c.Provider = id
	c.APIKey = ""
	c.Model = os.Getenv("PACT_MODEL")
	c.resolveAPIKey()
}

var validate = validator.New()

func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			fe := verrs[0]
			return fmt.Errorf("invalid config: %s failed %q (value %v)", fe.Namespace(), fe.Tag(), fe.Value())
		}
		return fmt.Errorf("invalid config: %w", err)
	}
	if c.Provider == "custom" && c.BaseURL == "" {
		return fmt.Errorf("invalid config: custom provider requires base_url")
	}
	return nil
}

func (c *Config) Save(path string) error {
	if path == "" {
		var err error
		if path, err = ConfigPath(); err != nil {
			return err
		}
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0600)
}

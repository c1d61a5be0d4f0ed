package config

import (
	"fmt"
	"net/url"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Backend BackendConfig `yaml:"backend"`
	Chat    ChatConfig    `yaml:"chat"`
	HTTP    HTTPConfig    `yaml:"http"`
	Logging LoggingConfig `yaml:"logging"`
}

type BackendConfig struct {
	Type            string `yaml:"type"`
	APIKey          string `yaml:"api_key"`
	APIKeyEnv       string `yaml:"api_key_env"`
	Project         string `yaml:"project"`
	Location        string `yaml:"location"`
	CredentialsFile string `yaml:"credentials_file"`
	BaseURL         string `yaml:"base_url"`
}

type ChatConfig struct {
	Model             string   `yaml:"model"`
	SystemInstruction string   `yaml:"system_instruction"`
	Temperature       *float64 `yaml:"temperature"`
	Stream            bool     `yaml:"stream"`
}

type HTTPConfig struct {
	HeaderTimeout time.Duration `yaml:"header_timeout"`
}

type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// UnmarshalYAML parses header_timeout from a duration string.
func (h *HTTPConfig) UnmarshalYAML(value *yaml.Node) error {
	type tempConfig struct {
		HeaderTimeout string `yaml:"header_timeout"`
	}

	var temp tempConfig
	if err := value.Decode(&temp); err != nil {
		return err
	}

	if temp.HeaderTimeout == "" {
		h.HeaderTimeout = 0
		return nil
	}

	duration, err := time.ParseDuration(temp.HeaderTimeout)
	if err != nil {
		return fmt.Errorf("invalid header_timeout: %w", err)
	}
	h.HeaderTimeout = duration

	return nil
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	cfg.Normalize()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return &cfg, nil
}

// Normalize fills values that come from the environment or have defaults.
func (c *Config) Normalize() {
	if c.Backend.APIKey == "" && c.Backend.APIKeyEnv != "" {
		c.Backend.APIKey = os.Getenv(c.Backend.APIKeyEnv)
	}
	if c.Backend.Type == "" {
		c.Backend.Type = "gemini"
	}
	if c.Backend.Type == "vertex" && c.Backend.Location == "" {
		c.Backend.Location = "us-central1"
	}
	if c.Logging.Format == "" {
		c.Logging.Format = "text"
	}
}

func (c *Config) Validate() error {
	switch c.Backend.Type {
	case "gemini":
		if c.Backend.APIKey == "" {
			return fmt.Errorf("backend gemini: api_key is required (set api_key or api_key_env)")
		}
	case "vertex":
		if c.Backend.Project == "" {
			return fmt.Errorf("backend vertex: project is required")
		}
	default:
		return fmt.Errorf("invalid backend type: %s (must be gemini or vertex)", c.Backend.Type)
	}

	if c.Backend.BaseURL != "" {
		parsedURL, err := url.Parse(c.Backend.BaseURL)
		if err != nil {
			return fmt.Errorf("invalid base_url: %w", err)
		}
		if parsedURL.Scheme != "http" && parsedURL.Scheme != "https" {
			return fmt.Errorf("base_url must use http or https scheme, got: %s", parsedURL.Scheme)
		}
		if parsedURL.Host == "" {
			return fmt.Errorf("base_url must have a host")
		}
	}

	if c.Chat.Model == "" {
		return fmt.Errorf("chat: model is required")
	}

	if c.Logging.Level != "" {
		validLevels := map[string]bool{"info": true, "debug": true, "warn": true, "error": true}
		if !validLevels[c.Logging.Level] {
			return fmt.Errorf("invalid logging level: %s (must be debug, info, warn, or error)", c.Logging.Level)
		}
	} else {
		c.Logging.Level = "info"
	}

	if c.Logging.Format != "text" && c.Logging.Format != "json" {
		return fmt.Errorf("invalid logging format: %s (must be text or json)", c.Logging.Format)
	}

	return nil
}

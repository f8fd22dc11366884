package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config holds all application configuration.
type Config struct {
	APIBaseURL      string `yaml:"api_base_url"`
	FetchTimeoutSec int    `yaml:"fetch_timeout_secs"`
	PollIntervalSec int    `yaml:"poll_interval_secs"`
	DBPath          string `yaml:"db_path"`
	LogLevel        string `yaml:"log_level"`
	GeminiAPIKey    string `yaml:"gemini_api_key"`
	GeminiModel     string `yaml:"gemini_model"`
}

// Defaults returns a Config with all default values set.
func Defaults() Config {
	return Config{
		APIBaseURL:      "http://localhost:3001/api",
		FetchTimeoutSec: 10,
		PollIntervalSec: 30,
		DBPath:          "./humordrop.db",
		LogLevel:        "info",
		GeminiModel:     "gemini-2.0-flash-lite",
	}
}

// Load reads a YAML config file and returns a validated Config. A missing
// file is not an error; defaults apply. Environment variables
// HUMORDROP_CONFIG, HUMORDROP_API_URL and HUMORDROP_DB override the config
// path, API base URL and db path.
func Load(path string) (Config, error) {
	if envPath := os.Getenv("HUMORDROP_CONFIG"); envPath != "" {
		path = envPath
	}

	cfg := Defaults()

	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return Config{}, fmt.Errorf("reading config file %s: %w", path, err)
	}
	if err == nil {
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("parsing config file: %w", err)
		}
	}

	if envURL := os.Getenv("HUMORDROP_API_URL"); envURL != "" {
		cfg.APIBaseURL = envURL
	}
	if envDB := os.Getenv("HUMORDROP_DB"); envDB != "" {
		cfg.DBPath = envDB
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

// Validate checks that required fields are present and values are valid.
func (c *Config) Validate() error {
	if c.APIBaseURL == "" {
		return fmt.Errorf("api_base_url is required")
	}
	if c.FetchTimeoutSec <= 0 {
		return fmt.Errorf("fetch_timeout_secs must be positive")
	}
	if c.PollIntervalSec <= 0 {
		return fmt.Errorf("poll_interval_secs must be positive")
	}
	switch c.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("invalid log_level %q", c.LogLevel)
	}
	return nil
}

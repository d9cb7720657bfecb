package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// Config holds CLI configuration
type Config struct {
	ServerURL      string        `json:"server_url"`
	Format         string        `json:"format"`
	Quiet          bool          `json:"quiet"`
	NoColor        bool          `json:"no_color"`
	RequestTimeout time.Duration `json:"request_timeout"`
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		ServerURL:      "http://localhost:8080",
		Format:         "table",
		Quiet:          false,
		NoColor:        false,
		RequestTimeout: 30 * time.Second,
	}
}

// LoadConfig loads configuration from file, environment variables, and CLI flags
func LoadConfig(serverFlag, formatFlag string, quietFlag bool) (*Config, error) {
	config := DefaultConfig()

	// Config file is optional, continue with defaults when missing
	_ = config.loadFromFile()

	config.loadFromEnv()

	// CLI flags take highest priority
	if serverFlag != "" {
		config.ServerURL = serverFlag
	}
	if formatFlag != "" {
		config.Format = formatFlag
	}
	if quietFlag {
		config.Quiet = quietFlag
	}

	return config, config.validate()
}

// loadFromFile loads configuration from ~/.sms-tagger.json
func (c *Config) loadFromFile() error {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return err
	}

	configPath := filepath.Join(homeDir, ".sms-tagger.json")
	data, err := os.ReadFile(configPath)
	if err != nil {
		return err
	}

	return json.Unmarshal(data, c)
}

// loadFromEnv loads configuration from environment variables
func (c *Config) loadFromEnv() {
	if serverURL := os.Getenv("SMS_TAGGER_SERVER"); serverURL != "" {
		c.ServerURL = serverURL
	}
	if format := os.Getenv("SMS_TAGGER_FORMAT"); format != "" {
		c.Format = format
	}
	if os.Getenv("SMS_TAGGER_QUIET") == "true" {
		c.Quiet = true
	}
	if os.Getenv("NO_COLOR") != "" {
		c.NoColor = true
	}
	if timeout := os.Getenv("SMS_TAGGER_TIMEOUT"); timeout != "" {
		if d, err := time.ParseDuration(timeout); err == nil {
			c.RequestTimeout = d
		}
	}
}

// validate checks if the configuration is valid
func (c *Config) validate() error {
	if strings.TrimSpace(c.ServerURL) == "" {
		return fmt.Errorf("server URL cannot be empty")
	}

	switch c.Format {
	case "table", "json":
	default:
		return fmt.Errorf("invalid format %q (must be table or json)", c.Format)
	}

	if c.RequestTimeout <= 0 {
		return fmt.Errorf("request timeout must be positive")
	}

	return nil
}

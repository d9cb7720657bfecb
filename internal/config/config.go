package config

import (
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/viper"
)

// Config holds the server configuration
type Config struct {
	ServerPort string
	ServerHost string
	DBPath     string
	LogLevel   string

	// CacheTTL bounds how long an extraction snapshot may be served without
	// re-reading the message store.
	CacheTTL      time.Duration
	CacheDisabled bool

	// Batch tag worker settings
	WorkerCount     int
	WorkerBatchSize int
	WorkerInterval  time.Duration
	WorkerEnabled   bool
}

// Load loads server configuration using Viper: defaults, then an optional
// config file, then SMS_TAGGER_* environment variables.
func Load(v *viper.Viper) (*Config, error) {
	setDefaults(v)
	setupEnvBinding(v)

	if err := loadConfigFile(v); err != nil {
		return nil, fmt.Errorf("failed to load config file: %w", err)
	}

	config := &Config{}
	if err := unmarshal(v, config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := config.validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return config, nil
}

// setDefaults sets default values for server configuration
func setDefaults(v *viper.Viper) {
	// Server defaults
	v.SetDefault("server.port", "8080")
	v.SetDefault("server.host", "localhost")

	// Database defaults
	v.SetDefault("database.path", "./sms-tagger.db")

	// Logging defaults
	v.SetDefault("logging.level", "info")

	// Cache defaults
	v.SetDefault("cache.ttl", "5m")
	v.SetDefault("cache.disabled", false)

	// Batch tag worker defaults
	v.SetDefault("worker.count", 4)
	v.SetDefault("worker.batch_size", 100)
	v.SetDefault("worker.interval", "1m")
	v.SetDefault("worker.enabled", true)
}

// setupEnvBinding sets up environment variable binding for server configuration
func setupEnvBinding(v *viper.Viper) {
	v.SetEnvPrefix("SMS_TAGGER")
	v.AutomaticEnv()

	envBindings := map[string]string{
		"server.port":       "SERVER_PORT",
		"server.host":       "SERVER_HOST",
		"database.path":     "DATABASE_PATH",
		"logging.level":     "LOGGING_LEVEL",
		"cache.ttl":         "CACHE_TTL",
		"cache.disabled":    "CACHE_DISABLED",
		"worker.count":      "WORKER_COUNT",
		"worker.batch_size": "WORKER_BATCH_SIZE",
		"worker.interval":   "WORKER_INTERVAL",
		"worker.enabled":    "WORKER_ENABLED",
	}

	for configKey, envSuffix := range envBindings {
		v.BindEnv(configKey, "SMS_TAGGER_"+envSuffix)
	}
}

// loadConfigFile loads configuration file if it exists
func loadConfigFile(v *viper.Viper) error {
	if v.ConfigFileUsed() == "" {
		v.AddConfigPath(".")
		v.AddConfigPath("./config")
		v.AddConfigPath("$HOME/.sms-tagger")
		v.SetConfigName("config")
	}

	if err := v.ReadInConfig(); err != nil {
		// Config file is optional, only return error if it's not a "not found" error
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return err
		}
	}

	return nil
}

// unmarshal maps Viper keys onto the Config struct
func unmarshal(v *viper.Viper, config *Config) error {
	config.ServerPort = v.GetString("server.port")
	config.ServerHost = v.GetString("server.host")
	config.DBPath = v.GetString("database.path")
	config.LogLevel = v.GetString("logging.level")
	config.CacheDisabled = v.GetBool("cache.disabled")
	config.WorkerCount = v.GetInt("worker.count")
	config.WorkerBatchSize = v.GetInt("worker.batch_size")
	config.WorkerEnabled = v.GetBool("worker.enabled")

	var err error
	config.CacheTTL, err = time.ParseDuration(v.GetString("cache.ttl"))
	if err != nil {
		return fmt.Errorf("invalid cache TTL: %w", err)
	}

	config.WorkerInterval, err = time.ParseDuration(v.GetString("worker.interval"))
	if err != nil {
		return fmt.Errorf("invalid worker interval: %w", err)
	}

	return nil
}

// validate checks the configuration for invalid values
func (c *Config) validate() error {
	port, err := strconv.Atoi(c.ServerPort)
	if err != nil {
		return fmt.Errorf("invalid server port: %s", c.ServerPort)
	}
	if port < 1 || port > 65535 {
		return fmt.Errorf("server port out of range: %d", port)
	}

	if c.DBPath == "" {
		return fmt.Errorf("database path cannot be empty")
	}

	if c.CacheTTL <= 0 {
		return fmt.Errorf("cache TTL must be positive")
	}

	if c.WorkerCount < 1 {
		return fmt.Errorf("worker count must be at least 1")
	}
	if c.WorkerBatchSize < 1 {
		return fmt.Errorf("worker batch size must be at least 1")
	}
	if c.WorkerInterval <= 0 {
		return fmt.Errorf("worker interval must be positive")
	}

	return nil
}

// Address returns the host:port pair the HTTP server listens on
func (c *Config) Address() string {
	return c.ServerHost + ":" + c.ServerPort
}

// Package config loads BioVerse configuration from code defaults, optional YAML
// files, a .env file and environment variables, in that order of precedence.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Environment is the deployment environment name.
type Environment string

const (
	Development Environment = "development"
	Staging     Environment = "staging"
	Production  Environment = "production"
)

// Provider names accepted by TRANSLATE_PROVIDER and SPEECH_PROVIDER.
const (
	ProviderGoogle = "google"
	ProviderAWS    = "aws"
	ProviderPolly  = "polly"
)

// Config holds all application configuration.
type Config struct {
	// Server
	Port        int         `yaml:"port"`
	Host        string      `yaml:"host"`
	Environment Environment `yaml:"-"`
	ServiceName string      `yaml:"service_name"`
	PublicDir   string      `yaml:"public_dir"`
	ConfigDir   string      `yaml:"-"`

	// Logging
	LogLevel string `yaml:"log_level"`

	// Providers
	TranslateProvider string        `yaml:"translate_provider"`
	SpeechProvider    string        `yaml:"speech_provider"`
	ProviderTimeout   time.Duration `yaml:"provider_timeout"`
	ProviderRateLimit float64       `yaml:"provider_rate_limit"`
	ProviderBurst     int           `yaml:"provider_burst"`
	AWSRegion         string        `yaml:"aws_region"`

	// Observability
	EnableMetrics bool   `yaml:"enable_metrics"`
	EnableTracing bool   `yaml:"enable_tracing"`
	OTLPEndpoint  string `yaml:"otlp_endpoint"`
	EnableCORS    bool   `yaml:"enable_cors"`

	// LoadedFrom lists the sources applied, lowest priority first.
	LoadedFrom []string `yaml:"-"`
}

// Default returns the configuration used when nothing else is set.
func Default() *Config {
	return &Config{
		Port:              5002,
		Host:              "0.0.0.0",
		Environment:       Development,
		ServiceName:       "bioverse",
		PublicDir:         "static",
		ConfigDir:         "config",
		LogLevel:          "info",
		TranslateProvider: ProviderGoogle,
		SpeechProvider:    ProviderGoogle,
		ProviderTimeout:   5 * time.Second,
		ProviderRateLimit: 5,
		ProviderBurst:     2,
		AWSRegion:         "us-east-1",
		EnableMetrics:     true,
		EnableTracing:     false,
		OTLPEndpoint:      "localhost:4317",
		EnableCORS:        true,
	}
}

// LoadConfig loads configuration from every source.
func LoadConfig() (*Config, error) {
	if err := loadDotEnv(getEnv("ENV_FILE", ".env")); err != nil {
		return nil, err
	}

	env := Environment(strings.ToLower(getEnv("ENVIRONMENT", string(Development))))
	return NewLoader(getEnv("CONFIG_DIR", "config"), env).Load()
}

// Validate checks the configuration for unusable values.
func (c *Config) Validate() error {
	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("PORT must be between 1 and 65535, got %d", c.Port)
	}
	switch c.Environment {
	case Development, Staging, Production:
	default:
		return fmt.Errorf("unknown ENVIRONMENT %q", c.Environment)
	}
	switch c.TranslateProvider {
	case ProviderGoogle, ProviderAWS:
	default:
		return fmt.Errorf("unknown TRANSLATE_PROVIDER %q", c.TranslateProvider)
	}
	switch c.SpeechProvider {
	case ProviderGoogle, ProviderPolly:
	default:
		return fmt.Errorf("unknown SPEECH_PROVIDER %q", c.SpeechProvider)
	}
	if c.ProviderTimeout <= 0 {
		return fmt.Errorf("PROVIDER_TIMEOUT must be positive")
	}
	if c.ProviderRateLimit < 0 {
		return fmt.Errorf("PROVIDER_RATE_LIMIT must not be negative")
	}
	if _, err := ParseLevel(c.LogLevel); err != nil {
		return err
	}
	if c.PublicDir == "" {
		return fmt.Errorf("PUBLIC_DIR is required")
	}
	if c.UsesAWS() && c.AWSRegion == "" {
		return fmt.Errorf("AWS_REGION is required for AWS providers")
	}
	if c.EnableTracing && c.OTLPEndpoint == "" {
		return fmt.Errorf("OTLP_ENDPOINT is required when tracing is enabled")
	}
	return nil
}

// UsesAWS reports whether any provider needs AWS credentials.
func (c *Config) UsesAWS() bool {
	return c.TranslateProvider == ProviderAWS || c.SpeechProvider == ProviderPolly
}

// IsDevelopment checks if running in development mode
func (c *Config) IsDevelopment() bool {
	return c.Environment == Development
}

// IsProduction checks if running in production mode
func (c *Config) IsProduction() bool {
	return c.Environment == Production
}

// ListenAddress is the host:port the HTTP server binds.
func (c *Config) ListenAddress() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// getEnv gets an environment variable with a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvBool gets a boolean environment variable with a default value
func getEnvBool(key string, defaultValue bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value == "true" || value == "1" || value == "yes"
}

// getEnvInt gets an integer environment variable with a default value
func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getEnvFloat(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if f, err := strconv.ParseFloat(value, 64); err == nil {
			return f
		}
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}

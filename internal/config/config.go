package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds all application configuration.
type Config struct {
	Server    ServerConfig
	Registry  RegistryConfig
	Search    SearchConfig
	Wizard    WizardConfig
	RateLimit RateLimitConfig
	CORS      CORSConfig
}

// ServerConfig holds HTTP server configuration.
type ServerConfig struct {
	Port string
	Env  string
}

// RegistryConfig holds the upstream property-registry endpoint.
type RegistryConfig struct {
	BaseURL string
	Timeout time.Duration
}

// SearchConfig holds search page behaviour.
type SearchConfig struct {
	Delay time.Duration
}

// WizardConfig holds transfer wizard session settings.
type WizardConfig struct {
	SessionTTL time.Duration
}

// RateLimitConfig bounds wizard mutations per client IP.
type RateLimitConfig struct {
	RPS   float64
	Burst int
}

// CORSConfig holds CORS configuration.
type CORSConfig struct {
	Origins []string
}

// Load reads configuration from environment variables.
// A .env file in the working directory is loaded first when present;
// real environment variables take precedence over it.
func Load() (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()

	v.SetDefault("PORT", "8080")
	v.SetDefault("ENV", "development")
	v.SetDefault("REGISTRY_BASE_URL", "http://localhost:8000")
	v.SetDefault("REGISTRY_TIMEOUT", "15s")
	v.SetDefault("SEARCH_DELAY", "300ms")
	v.SetDefault("WIZARD_SESSION_TTL", "30m")
	v.SetDefault("RATE_LIMIT_RPS", 5)
	v.SetDefault("RATE_LIMIT_BURST", 10)
	v.SetDefault("CORS_ORIGINS", "http://localhost:3000,http://localhost:8080")

	v.AutomaticEnv()

	cfg := &Config{
		Server: ServerConfig{
			Port: v.GetString("PORT"),
			Env:  v.GetString("ENV"),
		},
		Registry: RegistryConfig{
			BaseURL: strings.TrimRight(v.GetString("REGISTRY_BASE_URL"), "/"),
			Timeout: v.GetDuration("REGISTRY_TIMEOUT"),
		},
		Search: SearchConfig{
			Delay: v.GetDuration("SEARCH_DELAY"),
		},
		Wizard: WizardConfig{
			SessionTTL: v.GetDuration("WIZARD_SESSION_TTL"),
		},
		RateLimit: RateLimitConfig{
			RPS:   v.GetFloat64("RATE_LIMIT_RPS"),
			Burst: v.GetInt("RATE_LIMIT_BURST"),
		},
		CORS: CORSConfig{
			Origins: parseOrigins(v.GetString("CORS_ORIGINS")),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// Validate checks that required configuration is present and valid.
func (c *Config) Validate() error {
	if c.Server.Port == "" {
		return fmt.Errorf("PORT is required")
	}

	if c.Registry.BaseURL == "" {
		return fmt.Errorf("REGISTRY_BASE_URL is required")
	}
	u, err := url.Parse(c.Registry.BaseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("REGISTRY_BASE_URL must be an absolute URL")
	}
	if c.Registry.Timeout < 0 {
		return fmt.Errorf("REGISTRY_TIMEOUT must be non-negative")
	}

	if c.Search.Delay < 0 {
		return fmt.Errorf("SEARCH_DELAY must be non-negative")
	}
	if c.Wizard.SessionTTL <= 0 {
		return fmt.Errorf("WIZARD_SESSION_TTL must be positive")
	}

	if c.RateLimit.RPS <= 0 {
		return fmt.Errorf("RATE_LIMIT_RPS must be positive")
	}
	if c.RateLimit.Burst < 1 {
		return fmt.Errorf("RATE_LIMIT_BURST must be at least 1")
	}

	if len(c.CORS.Origins) == 0 {
		return fmt.Errorf("CORS_ORIGINS is required")
	}

	return nil
}

// parseOrigins splits a comma-separated string of origins into a slice.
func parseOrigins(origins string) []string {
	if origins == "" {
		return []string{}
	}

	parts := strings.Split(origins, ",")
	result := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			result = append(result, trimmed)
		}
	}
	return result
}

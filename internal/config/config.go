// Package config provides application configuration management.
// Configuration is loaded from environment variables following 12-factor principles.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/caarlos0/env/v10"
)

// Config holds all application configuration.
// All fields are populated from environment variables.
type Config struct {
	// Application settings
	AppEnv  string `env:"APP_ENV" envDefault:"development"`
	AppPort int    `env:"APP_PORT" envDefault:"3000"`

	// Base URL the mini app is served from (used in the manifest and frame)
	BaseURL string `env:"BASE_URL" envDefault:"http://localhost:3000"`

	// Identity resolution (Neynar)
	NeynarAPIKey   string        `env:"NEYNAR_API_KEY"`
	NeynarBaseURL  string        `env:"NEYNAR_BASE_URL" envDefault:"https://api.neynar.com"`
	ResolveTimeout time.Duration `env:"RESOLVE_TIMEOUT" envDefault:"5s"`

	// Chain / minting. Minting is disabled unless all three are set.
	BaseRPC         string        `env:"BASE_RPC"`
	PrivateKey      string        `env:"PRIVATE_KEY"`
	ContractAddress string        `env:"CONTRACT_ADDRESS"`
	ChainID         int64         `env:"CHAIN_ID" envDefault:"8453"`
	MintTimeout     time.Duration `env:"MINT_TIMEOUT" envDefault:"10s"`

	// Leaderboard
	DefaultCategory string `env:"DEFAULT_CATEGORY" envDefault:"songs"`

	// Weekly aggregate reset, cron spec (default: Sunday midnight)
	ResetSchedule string `env:"RESET_SCHEDULE" envDefault:"0 0 * * 0"`

	// Cache (Redis), optional. When set, rewarded endpoints get IP rate limiting.
	RedisURL string `env:"REDIS_URL"`

	// Rate limiting (only effective with REDIS_URL)
	RateLimitRPS   int `env:"RATE_LIMIT_RPS" envDefault:"5"`
	RateLimitBurst int `env:"RATE_LIMIT_BURST" envDefault:"10"`

	// Manifest account association (mini app validation)
	AssociationHeader    string `env:"ASSOCIATION_HEADER"`
	AssociationPayload   string `env:"ASSOCIATION_PAYLOAD"`
	AssociationSignature string `env:"ASSOCIATION_SIGNATURE"`

	// Logging
	LogLevel  string `env:"LOG_LEVEL" envDefault:"info"`
	LogFormat string `env:"LOG_FORMAT" envDefault:"json"`

	// Server timeouts
	ReadTimeout     time.Duration `env:"READ_TIMEOUT" envDefault:"5s"`
	WriteTimeout    time.Duration `env:"WRITE_TIMEOUT" envDefault:"15s"`
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"30s"`

	// CORS configuration
	// Comma-separated list of allowed origins; "*" allows any origin.
	CORSAllowedOrigins string `env:"CORS_ALLOWED_ORIGINS" envDefault:"*"`

	// Request body size limit in bytes (default 64KB; payloads are tiny)
	MaxRequestBodySize int64 `env:"MAX_REQUEST_BODY_SIZE" envDefault:"65536"`
}

// IsDevelopment returns true if running in development mode.
func (c *Config) IsDevelopment() bool {
	return c.AppEnv == "development"
}

// IsProduction returns true if running in production mode.
func (c *Config) IsProduction() bool {
	return c.AppEnv == "production"
}

// MintingConfigured reports whether the chain minter can be constructed.
// The app runs fine without a contract, rewarded actions simply skip the
// mint.
func (c *Config) MintingConfigured() bool {
	return c.BaseRPC != "" && c.PrivateKey != "" && c.ContractAddress != ""
}

// RateLimitEnabled reports whether the Redis-backed IP rate limiter is on.
func (c *Config) RateLimitEnabled() bool {
	return c.RedisURL != ""
}

// GetCORSAllowedOrigins parses the comma-separated origins string into a slice.
func (c *Config) GetCORSAllowedOrigins() []string {
	if c.CORSAllowedOrigins == "" {
		return nil
	}

	origins := strings.Split(c.CORSAllowedOrigins, ",")
	result := make([]string, 0, len(origins))

	for _, origin := range origins {
		trimmed := strings.TrimSpace(origin)
		if trimmed != "" {
			result = append(result, trimmed)
		}
	}

	return result
}

// Load parses environment variables and returns a Config.
// Returns an error if required variables are missing.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	return cfg, nil
}

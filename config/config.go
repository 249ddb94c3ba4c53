package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// minSessionSecretLen is the minimum length of the cookie signing secret.
const minSessionSecretLen = 32

// Config holds the application configuration.
type Config struct {
	Port          string        // Service port
	SSOReadyURL   string        // SSOReady API base URL
	SSOReadyKey   string        // SSOReady API key (service credential)
	BrokerTimeout time.Duration // Per-call timeout for broker requests
	SessionTTL    time.Duration // Session idle timeout
	SessionSecret string        // HMAC secret for the session cookie
	CookieSecure  bool          // Secure flag on the session cookie
	RedisAddr     string        // When set, sessions are stored in Redis
	RedisPassword string        // Redis auth, optional
}

// Load reads configuration from environment variables with sensible
// defaults. A .env file in the working directory is loaded first when
// present, for local development.
func Load() (*Config, error) {
	_ = godotenv.Load()

	config := &Config{
		Port:          getEnv("PORT", "8080"),
		SSOReadyURL:   getEnv("SSOREADY_API_URL", "https://api.ssoready.com"),
		SSOReadyKey:   getEnv("SSOREADY_API_KEY", ""),
		BrokerTimeout: 5 * time.Second,
		SessionTTL:    7 * 24 * time.Hour, // Default 7 days idle timeout
		SessionSecret: getEnv("SESSION_SECRET", ""),
		CookieSecure:  true,
		RedisAddr:     getEnv("REDIS_ADDR", ""),
		RedisPassword: getEnv("REDIS_PASSWORD", ""),
	}

	// Parse SESSION_TTL if provided
	if ttlStr := os.Getenv("SESSION_TTL"); ttlStr != "" {
		duration, err := time.ParseDuration(ttlStr)
		if err != nil {
			return nil, fmt.Errorf("invalid SESSION_TTL format: %w", err)
		}
		config.SessionTTL = duration
	}

	// Parse BROKER_TIMEOUT if provided
	if timeoutStr := os.Getenv("BROKER_TIMEOUT"); timeoutStr != "" {
		duration, err := time.ParseDuration(timeoutStr)
		if err != nil {
			return nil, fmt.Errorf("invalid BROKER_TIMEOUT format: %w", err)
		}
		config.BrokerTimeout = duration
	}

	// Parse COOKIE_SECURE if provided (disabled for plain-HTTP local runs)
	if secureStr := os.Getenv("COOKIE_SECURE"); secureStr != "" {
		secure, err := strconv.ParseBool(secureStr)
		if err != nil {
			return nil, fmt.Errorf("invalid COOKIE_SECURE format: %w", err)
		}
		config.CookieSecure = secure
	}

	// Validate configuration
	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

// Validate checks if the configuration is valid. A missing or rejected
// broker credential is a fatal configuration error, caught here rather than
// surfacing to end users mid-login.
func (c *Config) Validate() error {
	if c.Port == "" {
		return fmt.Errorf("PORT cannot be empty")
	}

	if c.SSOReadyURL == "" {
		return fmt.Errorf("SSOREADY_API_URL cannot be empty")
	}

	if c.SSOReadyKey == "" {
		return fmt.Errorf("SSOREADY_API_KEY is required")
	}

	if len(c.SessionSecret) < minSessionSecretLen {
		return fmt.Errorf("SESSION_SECRET must be at least %d characters", minSessionSecretLen)
	}

	if c.SessionTTL <= 0 {
		return fmt.Errorf("SESSION_TTL must be positive")
	}

	if c.BrokerTimeout <= 0 {
		return fmt.Errorf("BROKER_TIMEOUT must be positive")
	}

	return nil
}

// getEnv retrieves an environment variable or returns a fallback value.
// A KEY_FILE variable pointing at a file takes precedence, so secrets can be
// mounted from files instead of the environment.
func getEnv(key, fallback string) string {
	if fileValue := os.Getenv(key + "_FILE"); fileValue != "" {
		content, err := os.ReadFile(fileValue)
		if err == nil {
			return strings.TrimSpace(string(content))
		}
	}

	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

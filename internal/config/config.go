package config

import (
	"fmt"
	"net/url"
	"time"

	pkgconfig "github.com/utafrali/shopmobile/pkg/config"
)

// Config holds all configuration for the storefront service.
type Config struct {
	Environment string `env:"ENVIRONMENT" envDefault:"development"`
	LogLevel    string `env:"LOG_LEVEL" envDefault:"info"`

	// HTTP server
	HTTPPort int `env:"HTTP_PORT" envDefault:"8080"`

	// Catalog/order backend
	BackendBaseURL        string `env:"BACKEND_BASE_URL" envDefault:"http://localhost:8000"`
	BackendTimeoutSeconds int    `env:"BACKEND_TIMEOUT_SECONDS" envDefault:"10"`
	CircuitBreakerEnabled bool   `env:"CIRCUIT_BREAKER_ENABLED" envDefault:"true"`

	// Session identity. The storefront serves a single demo user; per-user
	// auth is out of scope.
	UserEmail       string `env:"STOREFRONT_USER_EMAIL" envDefault:"demo@shop.com"`
	ShippingAddress string `env:"STOREFRONT_SHIPPING_ADDRESS" envDefault:"Demo Address"`
	PaymentMethod   string `env:"STOREFRONT_PAYMENT_METHOD" envDefault:"cod"`

	// Category cache
	CategoryCacheTTLSeconds int `env:"CATEGORY_CACHE_TTL_SECONDS" envDefault:"300"`

	// Kafka
	KafkaEnabled bool     `env:"KAFKA_ENABLED" envDefault:"false"`
	KafkaBrokers []string `env:"KAFKA_BROKERS" envDefault:"localhost:9092" envSeparator:","`

	// Tracing
	TracingEnabled  bool   `env:"TRACING_ENABLED" envDefault:"false"`
	TracingEndpoint string `env:"TRACING_ENDPOINT" envDefault:"localhost:4318"`
}

// Load reads configuration from environment variables.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := pkgconfig.Load(cfg); err != nil {
		return nil, fmt.Errorf("load storefront config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// validate checks configuration invariants.
func (c *Config) validate() error {
	if c.HTTPPort < 1 || c.HTTPPort > 65535 {
		return fmt.Errorf("invalid HTTP port: %d", c.HTTPPort)
	}
	if c.BackendTimeoutSeconds < 1 {
		return fmt.Errorf("invalid backend timeout: %d", c.BackendTimeoutSeconds)
	}
	u, err := url.Parse(c.BackendBaseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("invalid backend base URL: %q", c.BackendBaseURL)
	}
	if c.UserEmail == "" {
		return fmt.Errorf("storefront user email must not be empty")
	}
	return nil
}

// BackendTimeout returns the backend request timeout as a duration.
func (c *Config) BackendTimeout() time.Duration {
	return time.Duration(c.BackendTimeoutSeconds) * time.Second
}

// CategoryCacheTTL returns the category cache TTL as a duration.
func (c *Config) CategoryCacheTTL() time.Duration {
	return time.Duration(c.CategoryCacheTTLSeconds) * time.Second
}

package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/caarlos0/env/v10"
)

// Config holds the environment driven configuration for the registry
// service.
type Config struct {
	// Service Configuration
	ServiceName     string        `env:"SERVICE_NAME" envDefault:"media-registry"`
	Environment     string        `env:"ENVIRONMENT" envDefault:"development"`
	HTTPPort        int           `env:"REGISTRY_PORT" envDefault:"8290"`
	LogLevel        string        `env:"REGISTRY_LOG_LEVEL" envDefault:"info"`
	EnableTracing   bool          `env:"ENABLE_TRACING" envDefault:"false"`
	OTLPEndpoint    string        `env:"OTEL_EXPORTER_OTLP_ENDPOINT" envDefault:""`
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"10s"`

	// Database (required, no default)
	DatabaseURL    string        `env:"DB_POSTGRESQL_DSN,notEmpty"`
	DBMaxIdleConns int           `env:"DB_MAX_IDLE_CONNS" envDefault:"5"`
	DBMaxOpenConns int           `env:"DB_MAX_OPEN_CONNS" envDefault:"15"`
	DBConnLifetime time.Duration `env:"DB_CONN_MAX_LIFETIME" envDefault:"30m"`

	// Chain identity and token oracle. ChainID names the execution
	// environment this registry serves; origin links on other chains are
	// recorded without live verification.
	ChainID            string        `env:"REGISTRY_CHAIN_ID" envDefault:"1"`
	TokenOracleURL     string        `env:"REGISTRY_TOKEN_ORACLE_URL"`
	TokenOracleTimeout time.Duration `env:"REGISTRY_TOKEN_ORACLE_TIMEOUT" envDefault:"10s"`

	// Registration event webhooks (comma separated, optional)
	WebhookURLs []string `env:"REGISTRY_WEBHOOK_URLS" envSeparator:","`

	// Policy seed values, applied only when the policy table is empty.
	SeedSchemaVersion           int  `env:"REGISTRY_SEED_SCHEMA_VERSION" envDefault:"1"`
	SeedMaxSubComponents        int  `env:"REGISTRY_SEED_MAX_SUBCOMPONENTS" envDefault:"1200"`
	SeedEnforceMaxSubComponents bool `env:"REGISTRY_SEED_ENFORCE_MAX_SUBCOMPONENTS" envDefault:"true"`
	SeedRequireAuthorizedWriter bool `env:"REGISTRY_SEED_REQUIRE_AUTHORIZED_WRITER" envDefault:"false"`

	// BootstrapAdmin is granted the admin role on first start so the
	// role table is never unreachable.
	BootstrapAdmin string `env:"REGISTRY_BOOTSTRAP_ADMIN"`

	// Authentication
	AuthEnabled bool   `env:"AUTH_ENABLED" envDefault:"false"`
	AuthIssuer  string `env:"AUTH_ISSUER"`
	AuthJWKSURL string `env:"AUTH_JWKS_URL"`
	Account     string `env:"ACCOUNT"`
}

// Load parses environment variables into Config.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env config: %w", err)
	}

	cfg.ChainID = strings.TrimSpace(cfg.ChainID)
	cfg.TokenOracleURL = strings.TrimSpace(cfg.TokenOracleURL)
	if cfg.ChainID == "" {
		return nil, fmt.Errorf("REGISTRY_CHAIN_ID must not be blank")
	}
	if cfg.SeedMaxSubComponents <= 0 {
		return nil, fmt.Errorf("REGISTRY_SEED_MAX_SUBCOMPONENTS must be positive")
	}
	if cfg.AuthEnabled {
		if strings.TrimSpace(cfg.AuthIssuer) == "" {
			return nil, fmt.Errorf("AUTH_ISSUER is required when AUTH_ENABLED is true")
		}
		if strings.TrimSpace(cfg.AuthJWKSURL) == "" {
			return nil, fmt.Errorf("AUTH_JWKS_URL is required when AUTH_ENABLED is true")
		}
	}
	return cfg, nil
}

// Addr returns the HTTP listen address.
func (c *Config) Addr() string {
	return fmt.Sprintf(":%d", c.HTTPPort)
}

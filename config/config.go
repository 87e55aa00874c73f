// Package config handles loading and validation of application configuration
// from environment variables.
package config

import (
	"fmt"
	"strings"

	"github.com/bakedbyann/bakery-backend/logger"
	"github.com/spf13/viper"
)

// Environment represents the application's running environment (development or production).
type Environment string

const (
	EnvDevelopment Environment = "development"
	EnvProduction  Environment = "production"
)

// ServerConfig holds server-specific configuration.
type ServerConfig struct {
	Environment    Environment `mapstructure:"ENVIRONMENT" yaml:"environment"`
	Port           string      `mapstructure:"PORT" yaml:"port"`
	AllowedOrigins []string    `mapstructure:"ALLOWED_ORIGINS" yaml:"allowed_origins"`
	Version        string      `mapstructure:"VERSION" yaml:"version"`
}

// EmailConfig holds configuration for sending notification emails.
// FromAddress and Recipient carry the documented Resend sandbox defaults so
// the service works out of the box in development.
type EmailConfig struct {
	FromAddress         string `mapstructure:"FROM_ADDRESS" yaml:"from_address"`
	FromName            string `mapstructure:"FROM_NAME" yaml:"from_name"`
	FeedbackFromAddress string `mapstructure:"FEEDBACK_FROM_ADDRESS" yaml:"feedback_from_address"`
	Recipient           string `mapstructure:"RECIPIENT" yaml:"recipient"`
	ResendAPIKey        string `mapstructure:"RESEND_API_KEY" yaml:"resend_api_key"`
}

// RateLimitConfig holds the per-identifier request budget for the form
// endpoints.
type RateLimitConfig struct {
	MaxRequests   int `mapstructure:"MAX_REQUESTS" yaml:"max_requests"`
	WindowSeconds int `mapstructure:"WINDOW_SECONDS" yaml:"window_seconds"`
}

// RedisConfig holds optional Redis connection details. When Address is empty
// the service uses the in-process rate limiter instead of the shared store.
type RedisConfig struct {
	Address  string `mapstructure:"ADDRESS" yaml:"address"`
	Password string `mapstructure:"PASSWORD" yaml:"password"`
	DB       int    `mapstructure:"DB" yaml:"db"`
	UseTLS   bool   `mapstructure:"USE_TLS" yaml:"use_tls"`
}

// Config is the root configuration object.
type Config struct {
	Server    ServerConfig    `mapstructure:"SERVER" yaml:"server"`
	Email     EmailConfig     `mapstructure:"EMAIL" yaml:"email"`
	RateLimit RateLimitConfig `mapstructure:"RATE_LIMIT" yaml:"rate_limit"`
	Redis     RedisConfig     `mapstructure:"REDIS" yaml:"redis"`
	LogLevel  string          `mapstructure:"LOG_LEVEL" yaml:"log_level"`
}

// IsDevelopment returns true if the application is running in development environment.
func (c *Config) IsDevelopment() bool {
	return c.Server.Environment == EnvDevelopment
}

// IsProduction returns true if the application is running in production environment.
func (c *Config) IsProduction() bool {
	return c.Server.Environment == EnvProduction
}

// bindEnvVars binds multiple environment variables to config keys.
// Format: []{configKey, envVar}
func bindEnvVars(v *viper.Viper, bindings [][2]string) error {
	for _, b := range bindings {
		if err := v.BindEnv(b[0], b[1]); err != nil {
			return fmt.Errorf("failed to bind %s: %w", b[0], err)
		}
	}
	return nil
}

// LoadConfig loads configuration from environment variables using Viper,
// sets default values, binds environment variables to config struct fields,
// unmarshals the configuration, and validates it.
func LoadConfig() (*Config, error) {
	v := viper.New()
	log := logger.GetLogger()

	v.SetDefault("SERVER.ENVIRONMENT", EnvDevelopment)
	v.SetDefault("SERVER.PORT", "8080")
	v.SetDefault("SERVER.ALLOWED_ORIGINS", []string{"*"})
	v.SetDefault("SERVER.VERSION", "dev")
	v.SetDefault("EMAIL.FROM_ADDRESS", "onboarding@resend.dev")
	v.SetDefault("EMAIL.FROM_NAME", "Baked by Ann")
	v.SetDefault("EMAIL.FEEDBACK_FROM_ADDRESS", "")
	v.SetDefault("EMAIL.RECIPIENT", "your-email@example.com")
	v.SetDefault("RATE_LIMIT.MAX_REQUESTS", 3)
	v.SetDefault("RATE_LIMIT.WINDOW_SECONDS", 60)
	v.SetDefault("REDIS.ADDRESS", "")
	v.SetDefault("REDIS.PASSWORD", "")
	v.SetDefault("REDIS.DB", 0)
	v.SetDefault("REDIS.USE_TLS", false)
	v.SetDefault("LOG_LEVEL", "info")

	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	envBindings := [][2]string{
		// Server config
		{"SERVER.ENVIRONMENT", "ENVIRONMENT"},
		{"SERVER.PORT", "PORT"},
		{"SERVER.ALLOWED_ORIGINS", "ALLOWED_ORIGINS"},
		{"SERVER.VERSION", "VERSION"},
		// Email config
		{"EMAIL.FROM_ADDRESS", "EMAIL_FROM_ADDRESS"},
		{"EMAIL.FROM_NAME", "EMAIL_FROM_NAME"},
		{"EMAIL.FEEDBACK_FROM_ADDRESS", "EMAIL_FEEDBACK_FROM_ADDRESS"},
		{"EMAIL.RECIPIENT", "EMAIL_RECIPIENT"},
		{"EMAIL.RESEND_API_KEY", "RESEND_API_KEY"},
		// Rate limit config
		{"RATE_LIMIT.MAX_REQUESTS", "RATE_LIMIT_MAX_REQUESTS"},
		{"RATE_LIMIT.WINDOW_SECONDS", "RATE_LIMIT_WINDOW_SECONDS"},
		// Redis config
		{"REDIS.ADDRESS", "REDIS_ADDRESS"},
		{"REDIS.PASSWORD", "REDIS_PASSWORD"},
		{"REDIS.DB", "REDIS_DB"},
		{"REDIS.USE_TLS", "REDIS_USE_TLS"},
		// Logging
		{"LOG_LEVEL", "LOG_LEVEL"},
	}

	if err := bindEnvVars(v, envBindings); err != nil {
		return nil, err
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	log.Infow("Configuration loaded",
		"environment", cfg.Server.Environment,
		"server_port", cfg.Server.Port,
		"allowed_origins", cfg.Server.AllowedOrigins,
		"email_from", cfg.Email.FromAddress,
		"email_recipient", logger.MaskEmail(cfg.Email.Recipient),
		"resend_api_key", logger.MaskSensitiveString(cfg.Email.ResendAPIKey, 3, 2),
		"rate_limit_max_requests", cfg.RateLimit.MaxRequests,
		"rate_limit_window_seconds", cfg.RateLimit.WindowSeconds,
		"redis_address", cfg.Redis.Address,
	)

	return &cfg, nil
}

// validate enforces invariants the service cannot run without.
func (c *Config) validate() error {
	if c.Server.Environment != EnvDevelopment && c.Server.Environment != EnvProduction {
		return fmt.Errorf("invalid environment: %s", c.Server.Environment)
	}
	if c.RateLimit.MaxRequests <= 0 {
		return fmt.Errorf("rate limit max requests must be positive, got %d", c.RateLimit.MaxRequests)
	}
	if c.RateLimit.WindowSeconds <= 0 {
		return fmt.Errorf("rate limit window must be positive, got %d", c.RateLimit.WindowSeconds)
	}
	if c.IsProduction() && c.Email.ResendAPIKey == "" {
		return fmt.Errorf("RESEND_API_KEY is required in production")
	}
	return nil
}

// FeedbackFrom returns the sender address for feedback notifications,
// falling back to the main from address when not configured separately.
func (c *EmailConfig) FeedbackFrom() string {
	if c.FeedbackFromAddress != "" {
		return c.FeedbackFromAddress
	}
	return c.FromAddress
}

package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, EnvDevelopment, cfg.Server.Environment)
	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, "onboarding@resend.dev", cfg.Email.FromAddress)
	assert.Equal(t, "Baked by Ann", cfg.Email.FromName)
	assert.Equal(t, "your-email@example.com", cfg.Email.Recipient)
	assert.Equal(t, 3, cfg.RateLimit.MaxRequests)
	assert.Equal(t, 60, cfg.RateLimit.WindowSeconds)
	assert.Empty(t, cfg.Redis.Address)
	assert.True(t, cfg.IsDevelopment())
	assert.False(t, cfg.IsProduction())
}

func TestLoadConfigFromEnv(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("EMAIL_FROM_ADDRESS", "hello@bakedbyann.com")
	t.Setenv("EMAIL_RECIPIENT", "orders@bakedbyann.com")
	t.Setenv("RATE_LIMIT_MAX_REQUESTS", "5")
	t.Setenv("REDIS_ADDRESS", "localhost:6379")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.Server.Port)
	assert.Equal(t, "hello@bakedbyann.com", cfg.Email.FromAddress)
	assert.Equal(t, "orders@bakedbyann.com", cfg.Email.Recipient)
	assert.Equal(t, 5, cfg.RateLimit.MaxRequests)
	assert.Equal(t, "localhost:6379", cfg.Redis.Address)
}

func TestLoadConfigProductionRequiresAPIKey(t *testing.T) {
	t.Setenv("ENVIRONMENT", "production")

	_, err := LoadConfig()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "RESEND_API_KEY")

	t.Setenv("RESEND_API_KEY", "re_test_key")
	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.True(t, cfg.IsProduction())
}

func TestLoadConfigRejectsInvalidValues(t *testing.T) {
	t.Setenv("ENVIRONMENT", "staging")
	_, err := LoadConfig()
	assert.Error(t, err)
}

func TestLoadConfigRejectsNonPositiveWindow(t *testing.T) {
	t.Setenv("RATE_LIMIT_WINDOW_SECONDS", "0")
	_, err := LoadConfig()
	assert.Error(t, err)
}

func TestFeedbackFromFallback(t *testing.T) {
	cfg := EmailConfig{FromAddress: "hello@bakedbyann.com"}
	assert.Equal(t, "hello@bakedbyann.com", cfg.FeedbackFrom())

	cfg.FeedbackFromAddress = "feedback@bakedbyann.com"
	assert.Equal(t, "feedback@bakedbyann.com", cfg.FeedbackFrom())
}

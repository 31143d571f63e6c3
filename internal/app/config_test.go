package app

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testPrefix = "EXAM_SHOP_BOT_TEST"

func TestNewEnvConfig(t *testing.T) {
	t.Setenv(testPrefix+"_TELEGRAM_BOT_TOKEN", "123:abc")
	t.Setenv(testPrefix+"_AUTH_JWT_SECRET", "jwt-secret")
	t.Setenv(testPrefix+"_SHOP_PENDING_ORDER_TTL", "2h")
	t.Setenv(testPrefix+"_REDIS_ENABLED", "true")

	cfg, err := NewEnvConfig(testPrefix)
	require.NoError(t, err)

	assert.Equal(t, "123:abc", cfg.Telegram.BotToken)
	assert.False(t, cfg.Telegram.IsWebhookEnabled())
	assert.Equal(t, 2*time.Hour, cfg.Shop.PendingOrderTTL)
	assert.Equal(t, 10, cfg.Shop.CatalogLimit)
	assert.Equal(t, 24*time.Hour, cfg.Auth.TokenTTL)
	assert.True(t, cfg.Redis.Enabled)
	assert.False(t, cfg.Kafka.Enabled)
	assert.Equal(t, "8080", cfg.Server.Port)
}

func TestNewEnvConfig_MissingBotToken(t *testing.T) {
	t.Setenv(testPrefix+"_AUTH_JWT_SECRET", "jwt-secret")

	_, err := NewEnvConfig(testPrefix)
	require.Error(t, err)
}

func TestConfig_Validate(t *testing.T) {
	t.Setenv(testPrefix+"_TELEGRAM_BOT_TOKEN", "123:abc")
	t.Setenv(testPrefix+"_AUTH_JWT_SECRET", "jwt-secret")

	cfg, err := NewEnvConfig(testPrefix)
	require.NoError(t, err)

	cfg.Telegram.UseWebhook = "true"
	cfg.Telegram.WebhookURL = ""
	cfg.Auth.JWTSecret = ""

	err = cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "webhook_url")
	assert.Contains(t, err.Error(), "jwt secret")
}

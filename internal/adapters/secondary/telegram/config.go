package telegram

import (
	"strconv"
	"strings"
	"time"
)

type Config struct {
	BotToken       string        `envconfig:"BOT_TOKEN" required:"true"`
	APIURL         string        `envconfig:"API_URL" default:"https://api.telegram.org"`
	UseWebhook     string        `envconfig:"USE_WEBHOOK"` // строка, т.к. PaaS передают булевы флаги по-разному
	WebhookURL     string        `envconfig:"WEBHOOK_URL"`
	WebhookSecret  string        `envconfig:"WEBHOOK_SECRET"`
	PollingTimeout int           `envconfig:"POLLING_TIMEOUT" default:"30"`
	WebAppURL      string        `envconfig:"WEB_APP_URL"`
	RequestTimeout time.Duration `envconfig:"REQUEST_TIMEOUT" default:"10s"`
}

// IsWebhookEnabled парсит строку UseWebhook в boolean
func (c *Config) IsWebhookEnabled() bool {
	enabled, err := strconv.ParseBool(strings.TrimSpace(c.UseWebhook))
	return err == nil && enabled
}

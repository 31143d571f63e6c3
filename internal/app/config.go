package app

import (
	"errors"

	server "github.com/admin/tg-bots/exam-shop-bot/internal/adapters/primary/http"
	alerterAdapter "github.com/admin/tg-bots/exam-shop-bot/internal/adapters/secondary/alerter"
	kafkaAdapter "github.com/admin/tg-bots/exam-shop-bot/internal/adapters/secondary/kafka"
	"github.com/admin/tg-bots/exam-shop-bot/internal/adapters/secondary/storage/pg"
	redisAdapter "github.com/admin/tg-bots/exam-shop-bot/internal/adapters/secondary/storage/redis"
	s3Adapter "github.com/admin/tg-bots/exam-shop-bot/internal/adapters/secondary/storage/s3"
	"github.com/admin/tg-bots/exam-shop-bot/internal/adapters/secondary/telegram"
	"github.com/admin/tg-bots/exam-shop-bot/internal/pkg/logger"
	"github.com/admin/tg-bots/exam-shop-bot/internal/pkg/session"
	"github.com/admin/tg-bots/exam-shop-bot/internal/usecases/shop"
	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	Postgres *pg.Config             `envconfig:"POSTGRES"`
	Log      *logger.Config         `envconfig:"LOG"`
	Server   *server.Config         `envconfig:"APISERVER"`
	Telegram *telegram.Config       `envconfig:"TELEGRAM"`
	Auth     *session.Config        `envconfig:"AUTH"`
	Shop     *shop.Config           `envconfig:"SHOP"`
	Redis    *redisAdapter.Config   `envconfig:"REDIS"`
	S3       *s3Adapter.Config      `envconfig:"S3"`
	Kafka    *kafkaAdapter.Config   `envconfig:"KAFKA"`
	Alerter  *alerterAdapter.Config `envconfig:"ALERTER"`
}

func NewEnvConfig(envPrefix string) (*Config, error) {
	cfg := &Config{}

	_ = godotenv.Load("deployments/local/.env")

	if err := envconfig.Process(envPrefix, cfg); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate проверки, которые envconfig не выражает тегами
func (c *Config) Validate() error {
	var errs []error

	if c.Telegram == nil || c.Telegram.BotToken == "" {
		errs = append(errs, errors.New("telegram bot token is required"))
	}
	if c.Telegram != nil && c.Telegram.IsWebhookEnabled() && c.Telegram.WebhookURL == "" {
		errs = append(errs, errors.New("webhook_url is required when use_webhook is true"))
	}
	if c.Auth == nil || c.Auth.JWTSecret == "" {
		errs = append(errs, errors.New("auth jwt secret is required"))
	}
	if c.Kafka != nil && c.Kafka.Enabled && len(c.Kafka.GetBrokers()) == 0 {
		errs = append(errs, errors.New("kafka brokers are required when kafka is enabled"))
	}
	if c.Alerter != nil && c.Alerter.Enabled && c.Alerter.ChatID == 0 {
		errs = append(errs, errors.New("alerter chat_id is required when alerter is enabled"))
	}

	return errors.Join(errs...)
}

package alerter

// Config алерты в служебный чат. Без BotToken используется токен основного бота
type Config struct {
	Enabled         bool   `envconfig:"ENABLED" default:"false"`
	BotToken        string `envconfig:"BOT_TOKEN"`
	ChatID          int64  `envconfig:"CHAT_ID"`
	MessageThreadID *int64 `envconfig:"MESSAGE_THREAD_ID"`
}

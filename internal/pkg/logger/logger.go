package logger

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
)

type Config struct {
	Encoding  string `envconfig:"ENCODING" default:"console"`
	Level     string `envconfig:"LEVEL" default:"info"`
	AddSource bool   `envconfig:"ADD_SOURCE" default:"false"`
}

// ключи атрибутов, значения которых никогда не попадают в лог
var secretKeys = map[string]struct{}{
	"token":          {},
	"bot_token":      {},
	"secret":         {},
	"webhook_secret": {},
	"jwt_secret":     {},
	"init_data":      {},
	"authorization":  {},
}

const redacted = "[REDACTED]"

func New(app string, cfg *Config) *slog.Logger {
	return NewWithWriter(app, cfg, nil)
}

// NewWithWriter то же, что New, но с явным приёмником (nil - stdout/stderr по кодировке)
func NewWithWriter(app string, cfg *Config, w io.Writer) *slog.Logger {
	if cfg == nil {
		cfg = &Config{}
	}

	encoding := cfg.Encoding
	if encoding == "" {
		encoding = "console"
	}

	level := cfg.Level
	if level == "" {
		level = "info"
	}

	opts := &slog.HandlerOptions{
		Level:       parseLevel(level),
		AddSource:   cfg.AddSource,
		ReplaceAttr: redactSecrets,
	}

	var handler slog.Handler

	switch encoding {
	case "json":
		if w == nil {
			w = os.Stdout
		}
		handler = slog.NewJSONHandler(w, opts)
	case "console":
		if w == nil {
			w = os.Stderr
		}
		handler = slog.NewTextHandler(w, opts)
	default:
		panic(fmt.Errorf("invalid logger config: encoding %s is not supported", encoding))
	}

	return slog.New(handler).With("app", app)
}

// redactSecrets маскирует значения секретных ключей на любом уровне вложенности групп
func redactSecrets(_ []string, attr slog.Attr) slog.Attr {
	if _, ok := secretKeys[strings.ToLower(attr.Key)]; ok {
		return slog.String(attr.Key, redacted)
	}
	return attr
}

// parseLevel парсит строковый уровень в slog.Level
func parseLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		panic(fmt.Errorf("invalid logger config: level %s is not supported", level))
	}
}

// SetDefault устанавливает логгер по умолчанию
func SetDefault(logger *slog.Logger) {
	slog.SetDefault(logger)
}

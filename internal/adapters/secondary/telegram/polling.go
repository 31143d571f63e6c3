package telegram

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/admin/tg-bots/exam-shop-bot/internal/domain"
	"github.com/admin/tg-bots/exam-shop-bot/internal/ports/service"
)

const (
	defaultPollingTimeout = 30
	pollingRetryDelay     = 5 * time.Second
)

// Poller long polling для локальной разработки без публичного URL
type Poller struct {
	client       *Client
	handler      service.IUpdateHandler
	timeout      int
	lastUpdateID int64
	log          *slog.Logger
	httpClient   *http.Client // отдельный HTTP клиент с увеличенным таймаутом для polling
}

type getUpdatesRequest struct {
	Offset         int64    `json:"offset"`
	Timeout        int      `json:"timeout"`
	AllowedUpdates []string `json:"allowed_updates"`
}

func NewPoller(client *Client, cfg *Config, handler service.IUpdateHandler, log *slog.Logger) *Poller {
	timeout := cfg.PollingTimeout
	if timeout <= 0 {
		timeout = defaultPollingTimeout
	}

	return &Poller{
		client:  client,
		handler: handler,
		timeout: timeout,
		log:     log,
		// HTTP таймаут = polling timeout + запас
		httpClient: &http.Client{Timeout: time.Duration(timeout+10) * time.Second},
	}
}

// Start блокирует до отмены ctx. Ошибки обработчика логируются и не прерывают цикл
func (p *Poller) Start(ctx context.Context) error {
	p.log.Info("starting telegram polling", "timeout", p.timeout)

	for {
		if ctx.Err() != nil {
			p.log.Info("polling stopped")
			return ctx.Err()
		}

		updates, err := p.getUpdates(ctx)
		if err != nil {
			if ctx.Err() != nil {
				continue
			}

			var apiErr *APIError
			if errors.As(err, &apiErr) && apiErr.IsConflict() {
				// другой экземпляр бота или активный вебхук
				p.log.Warn("telegram API conflict - another bot instance or webhook is active",
					"description", apiErr.Description,
				)
			} else {
				p.log.Error("failed to get updates", "error", err)
			}

			select {
			case <-ctx.Done():
			case <-time.After(pollingRetryDelay):
			}
			continue
		}

		for i := range updates {
			update := &updates[i]
			if update.UpdateID >= p.lastUpdateID {
				p.lastUpdateID = update.UpdateID + 1
			}

			if err := p.handler.HandleUpdate(ctx, update); err != nil {
				p.log.Error("failed to handle update",
					"error", err,
					"update_id", update.UpdateID,
				)
			}
		}
	}
}

func (p *Poller) getUpdates(ctx context.Context) ([]domain.Update, error) {
	req := getUpdatesRequest{
		Offset:         p.lastUpdateID,
		Timeout:        p.timeout,
		AllowedUpdates: allowedUpdates,
	}

	var updates []domain.Update
	if err := p.client.callWith(ctx, p.httpClient, "getUpdates", req, &updates); err != nil {
		return nil, err
	}
	return updates, nil
}

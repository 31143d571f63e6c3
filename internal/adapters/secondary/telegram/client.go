package telegram

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/admin/tg-bots/exam-shop-bot/internal/domain"
	"github.com/admin/tg-bots/exam-shop-bot/internal/pkg/metrics"
	"github.com/admin/tg-bots/exam-shop-bot/internal/ports/telegram"
)

const (
	defaultAPIURL     = "https://api.telegram.org"
	defaultAPITimeout = 10 * time.Second
	parseModeHTML     = "HTML"
)

// Client клиент для работы с Telegram Bot API.
// Токен входит только в URL запроса и никогда не попадает в логи и ошибки
type Client struct {
	httpClient *http.Client
	baseURL    string
	log        *slog.Logger
}

var (
	_ telegram.IClient         = (*Client)(nil)
	_ telegram.IWebhookManager = (*Client)(nil)
)

// NewClient создаёт новый клиент для Telegram Bot API
func NewClient(cfg *Config, log *slog.Logger) *Client {
	apiURL := strings.TrimRight(cfg.APIURL, "/")
	if apiURL == "" {
		apiURL = defaultAPIURL
	}

	timeout := cfg.RequestTimeout
	if timeout <= 0 {
		timeout = defaultAPITimeout
	}

	return &Client{
		httpClient: &http.Client{Timeout: timeout},
		baseURL:    apiURL + "/bot" + cfg.BotToken,
		log:        log,
	}
}

// call POST JSON на метод Bot API. result может быть nil, если поле result не нужно
func (c *Client) call(ctx context.Context, method string, payload any, result any) error {
	return c.callWith(ctx, c.httpClient, method, payload, result)
}

func (c *Client) callWith(ctx context.Context, httpClient *http.Client, method string, payload any, result any) error {
	err := c.do(ctx, httpClient, method, payload, result)
	if err != nil {
		metrics.IncrementBotAPIError(method)
	}
	return err
}

func (c *Client) do(ctx context.Context, httpClient *http.Client, method string, payload any, result any) error {
	var body io.Reader = http.NoBody
	if payload != nil {
		jsonData, err := json.Marshal(payload)
		if err != nil {
			return fmt.Errorf("telegram marshal failed [method=%s]: %w", method, err)
		}
		body = bytes.NewReader(jsonData)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/"+method, body)
	if err != nil {
		return fmt.Errorf("%w: telegram create request failed [method=%s]: %v", domain.ErrUpstream, method, stripURL(err))
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := httpClient.Do(httpReq)
	if err != nil {
		c.log.Debug("telegram request failed",
			"method", method,
			"error", stripURL(err),
		)
		return fmt.Errorf("%w: telegram request failed [method=%s]: %v", domain.ErrUpstream, method, stripURL(err))
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("%w: telegram read body failed [method=%s, status=%d]: %v",
			domain.ErrUpstream, method, resp.StatusCode, err)
	}

	var apiResp APIResponse
	if err := json.Unmarshal(respBody, &apiResp); err != nil {
		c.log.Error("failed to unmarshal telegram response",
			"error", err,
			"method", method,
			"status_code", resp.StatusCode,
			"body_preview", truncateString(string(respBody), 200),
		)
		return fmt.Errorf("%w: telegram unmarshal failed [method=%s, status=%d]: %v",
			domain.ErrUpstream, method, resp.StatusCode, err)
	}

	if !apiResp.OK {
		c.log.Debug("telegram API error",
			"method", method,
			"error_code", apiResp.ErrorCode,
			"description", apiResp.Description,
			"status_code", resp.StatusCode,
		)
		return &APIError{Method: method, Code: apiResp.ErrorCode, Description: apiResp.Description}
	}

	if result != nil && len(apiResp.Result) > 0 {
		if err := json.Unmarshal(apiResp.Result, result); err != nil {
			return fmt.Errorf("%w: telegram result decode failed [method=%s]: %v", domain.ErrUpstream, method, err)
		}
	}
	return nil
}

// stripURL убирает URL (с токеном) из ошибок net/http
func stripURL(err error) error {
	var urlErr *url.Error
	if errors.As(err, &urlErr) {
		return urlErr.Err
	}
	return err
}

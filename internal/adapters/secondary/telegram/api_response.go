package telegram

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/admin/tg-bots/exam-shop-bot/internal/domain"
)

// APIResponse базовая структура ответа от Telegram API
type APIResponse struct {
	OK          bool            `json:"ok"`
	Result      json.RawMessage `json:"result,omitempty"`
	Description string          `json:"description,omitempty"`
	ErrorCode   int             `json:"error_code,omitempty"`
}

// APIError ответ с ok=false. Сравнивается с domain.ErrUpstream через errors.Is
type APIError struct {
	Method      string
	Code        int
	Description string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("telegram API error [method=%s, code=%d]: %s", e.Method, e.Code, e.Description)
}

func (e *APIError) Unwrap() error {
	return domain.ErrUpstream
}

// IsNotModified editMessageText с тем же текстом и клавиатурой
func (e *APIError) IsNotModified() bool {
	return e.Code == 400 && strings.Contains(e.Description, "message is not modified")
}

// IsConflict активен другой getUpdates или вебхук
func (e *APIError) IsConflict() bool {
	return e.Code == 409
}

func truncateString(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max] + "..."
}

package telegram

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/admin/tg-bots/exam-shop-bot/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testToken = "123456:SECRET-TOKEN"

func newNoopLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type recordedCall struct {
	Path string
	Body map[string]any
}

// fakeBotAPI отвечает ok=true с заданным result, запоминая запросы
type fakeBotAPI struct {
	mu      sync.Mutex
	calls   []recordedCall
	respond func(method string) string
}

func (f *fakeBotAPI) handler(t *testing.T) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		raw, err := io.ReadAll(r.Body)
		require.NoError(t, err)

		body := map[string]any{}
		if len(raw) > 0 {
			require.NoError(t, json.Unmarshal(raw, &body))
		}

		f.mu.Lock()
		f.calls = append(f.calls, recordedCall{Path: r.URL.Path, Body: body})
		f.mu.Unlock()

		method := r.URL.Path[strings.LastIndex(r.URL.Path, "/")+1:]
		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, f.respond(method))
	}
}

func newTestClient(t *testing.T, fake *fakeBotAPI) *Client {
	t.Helper()
	server := httptest.NewServer(fake.handler(t))
	t.Cleanup(server.Close)

	return NewClient(&Config{BotToken: testToken, APIURL: server.URL}, newNoopLogger())
}

func TestClient_SendMessage(t *testing.T) {
	fake := &fakeBotAPI{respond: func(string) string {
		return `{"ok":true,"result":{"message_id":77,"chat":{"id":1},"date":1}}`
	}}
	client := newTestClient(t, fake)

	markup := &domain.InlineKeyboardMarkup{InlineKeyboard: [][]domain.InlineKeyboardButton{
		{{Text: "📚 ЕГЭ", CallbackData: "category_EGE"}},
	}}
	err := client.SendMessage(context.Background(), 1001, "<b>Привет</b>", markup)
	require.NoError(t, err)

	require.Len(t, fake.calls, 1)
	call := fake.calls[0]
	assert.Equal(t, "/bot"+testToken+"/sendMessage", call.Path)
	assert.Equal(t, float64(1001), call.Body["chat_id"])
	assert.Equal(t, "HTML", call.Body["parse_mode"])
	assert.Equal(t, "<b>Привет</b>", call.Body["text"])

	replyMarkup, ok := call.Body["reply_markup"].(map[string]any)
	require.True(t, ok)
	assert.Contains(t, replyMarkup, "inline_keyboard")
}

func TestClient_SendMessage_WithoutMarkupOmitsField(t *testing.T) {
	fake := &fakeBotAPI{respond: func(string) string { return `{"ok":true,"result":{"message_id":1}}` }}
	client := newTestClient(t, fake)

	require.NoError(t, client.SendMessage(context.Background(), 1, "text", nil))
	require.Len(t, fake.calls, 1)
	assert.NotContains(t, fake.calls[0].Body, "reply_markup")
}

func TestClient_APIErrorIsUpstreamAndHidesToken(t *testing.T) {
	fake := &fakeBotAPI{respond: func(string) string {
		return `{"ok":false,"error_code":403,"description":"Forbidden: bot was blocked by the user"}`
	}}
	client := newTestClient(t, fake)

	err := client.SendMessage(context.Background(), 1, "text", nil)
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrUpstream))
	assert.NotContains(t, err.Error(), testToken)

	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, 403, apiErr.Code)
}

func TestClient_TransportErrorHidesToken(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	server.Close()

	client := NewClient(&Config{BotToken: testToken, APIURL: server.URL}, newNoopLogger())
	err := client.AnswerCallbackQuery(context.Background(), "cb-1", "", false)

	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrUpstream))
	assert.NotContains(t, err.Error(), testToken)
}

func TestClient_EditMessageText_NotModifiedIsSuccess(t *testing.T) {
	fake := &fakeBotAPI{respond: func(string) string {
		return `{"ok":false,"error_code":400,"description":"Bad Request: message is not modified: specified new message content and reply markup are exactly the same"}`
	}}
	client := newTestClient(t, fake)

	err := client.EditMessageText(context.Background(), 1, 10, "same", nil)
	assert.NoError(t, err)

	require.Len(t, fake.calls, 1)
	assert.Equal(t, float64(10), fake.calls[0].Body["message_id"])
	assert.NotContains(t, fake.calls[0].Body, "reply_markup")
}

func TestClient_CreateInvoiceLink(t *testing.T) {
	fake := &fakeBotAPI{respond: func(string) string {
		return `{"ok":true,"result":"https://t.me/$abc"}`
	}}
	client := newTestClient(t, fake)

	link, err := client.CreateInvoiceLink(context.Background(), CreateInvoiceLinkRequest{
		Title:       "Заказ",
		Description: "Математика",
		Payload:     `{"orderId":"1"}`,
		Currency:    domain.CurrencyStars,
		Prices:      []domain.LabeledPrice{{Label: "Математика", Amount: 150}},
	})
	require.NoError(t, err)
	assert.Equal(t, "https://t.me/$abc", link)
	assert.Equal(t, "XTR", fake.calls[0].Body["currency"])
	assert.NotContains(t, fake.calls[0].Body, "provider_token")
}

func TestClient_AnswerPreCheckoutQuery(t *testing.T) {
	fake := &fakeBotAPI{respond: func(string) string { return `{"ok":true,"result":true}` }}
	client := newTestClient(t, fake)

	reason := "Заказ не найден или уже оплачен"
	require.NoError(t, client.AnswerPreCheckoutQuery(context.Background(), "pcq-1", false, &reason))

	body := fake.calls[0].Body
	assert.Equal(t, "pcq-1", body["pre_checkout_query_id"])
	assert.Equal(t, false, body["ok"])
	assert.Equal(t, reason, body["error_message"])
}

func TestClient_WebhookManagement(t *testing.T) {
	fake := &fakeBotAPI{respond: func(method string) string {
		if method == "getWebhookInfo" {
			return `{"ok":true,"result":{"url":"https://shop.example/webhook","pending_update_count":3}}`
		}
		return `{"ok":true,"result":true}`
	}}
	client := newTestClient(t, fake)
	ctx := context.Background()

	require.NoError(t, client.SetWebhook(ctx, "https://shop.example/webhook", "s3cr3t"))
	info, err := client.GetWebhookInfo(ctx)
	require.NoError(t, err)
	assert.Equal(t, "https://shop.example/webhook", info.URL)
	assert.Equal(t, 3, info.PendingUpdateCount)

	setBody := fake.calls[0].Body
	assert.Equal(t, "s3cr3t", setBody["secret_token"])
	assert.ElementsMatch(t, []any{"message", "callback_query", "pre_checkout_query"}, setBody["allowed_updates"])
}

type handlerFunc func(ctx context.Context, update *domain.Update) error

func (f handlerFunc) HandleUpdate(ctx context.Context, update *domain.Update) error {
	return f(ctx, update)
}

func TestPoller_DeliversUpdatesUntilCancelled(t *testing.T) {
	fake := &fakeBotAPI{respond: func(string) string {
		return `{"ok":true,"result":[{"update_id":5,"message":{"message_id":1,"chat":{"id":7,"type":"private"},"text":"/start"}}]}`
	}}
	client := newTestClient(t, fake)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var received []*domain.Update
	poller := NewPoller(client, &Config{PollingTimeout: 1}, handlerFunc(func(_ context.Context, update *domain.Update) error {
		received = append(received, update)
		cancel()
		return nil
	}), newNoopLogger())

	err := poller.Start(ctx)
	assert.ErrorIs(t, err, context.Canceled)

	require.Len(t, received, 1)
	assert.Equal(t, domain.UpdateKindText, received[0].Kind())
	assert.Equal(t, int64(6), poller.lastUpdateID)
	assert.Equal(t, float64(0), fake.calls[0].Body["offset"])
}

func TestConfig_IsWebhookEnabled(t *testing.T) {
	tests := []struct {
		value string
		want  bool
	}{
		{"true", true}, {"1", true}, {"True", true}, {"false", false}, {"", false}, {"yes", false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, (&Config{UseWebhook: tt.value}).IsWebhookEnabled(), tt.value)
	}
}

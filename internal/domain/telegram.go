package domain

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// дока - https://core.telegram.org/bots/api

// CurrencyStars валюта Telegram Stars
const CurrencyStars = "XTR"

// Update - входящее обновление от Telegram Bot API
type Update struct {
	UpdateID         int64             `json:"update_id"`
	Message          *Message          `json:"message,omitempty"`
	CallbackQuery    *CallbackQuery    `json:"callback_query,omitempty"`
	PreCheckoutQuery *PreCheckoutQuery `json:"pre_checkout_query,omitempty"`
}

// UpdateKind вариант обновления после классификации
type UpdateKind int

const (
	UpdateKindUnrecognized UpdateKind = iota
	UpdateKindText
	UpdateKindCallback
	UpdateKindPreCheckout
	UpdateKindSuccessfulPayment
)

func (k UpdateKind) String() string {
	switch k {
	case UpdateKindText:
		return "text"
	case UpdateKindCallback:
		return "callback_query"
	case UpdateKindPreCheckout:
		return "pre_checkout_query"
	case UpdateKindSuccessfulPayment:
		return "successful_payment"
	default:
		return "unrecognized"
	}
}

// Kind классифицирует обновление. Порядок проверок фиксирован:
// текст, callback, pre_checkout, successful_payment.
// Вариант без обязательных полей считается нераспознанным.
func (u *Update) Kind() UpdateKind {
	if u == nil {
		return UpdateKindUnrecognized
	}

	switch {
	case u.Message != nil && u.Message.Text != nil && u.Message.Chat != nil:
		return UpdateKindText
	case u.CallbackQuery != nil && u.CallbackQuery.ID != "":
		return UpdateKindCallback
	case u.PreCheckoutQuery != nil && u.PreCheckoutQuery.ID != "":
		return UpdateKindPreCheckout
	case u.Message != nil && u.Message.SuccessfulPayment != nil && u.Message.Chat != nil:
		return UpdateKindSuccessfulPayment
	default:
		return UpdateKindUnrecognized
	}
}

// CallbackQuery - callback query от Telegram Bot API
type CallbackQuery struct {
	ID      string        `json:"id"`
	From    *TelegramUser `json:"from,omitempty"`
	Message *Message      `json:"message,omitempty"`
	Data    *string       `json:"data,omitempty"` // данные callback кнопки
}

// Message - сообщение от Telegram Bot API
type Message struct {
	MessageID         int64              `json:"message_id"`
	From              *TelegramUser      `json:"from,omitempty"`
	Chat              *Chat              `json:"chat"`
	Date              int64              `json:"date"`
	Text              *string            `json:"text,omitempty"`
	Entities          []Entity           `json:"entities,omitempty"`
	SuccessfulPayment *SuccessfulPayment `json:"successful_payment,omitempty"`
}

// TelegramUser - пользователь Telegram (не domain.Profile)
type TelegramUser struct {
	ID           int64   `json:"id"`
	IsBot        bool    `json:"is_bot"`
	FirstName    string  `json:"first_name"`
	LastName     *string `json:"last_name,omitempty"`
	Username     *string `json:"username,omitempty"`
	LanguageCode *string `json:"language_code,omitempty"`
}

// Chat - чат в Telegram
type Chat struct {
	ID       int64   `json:"id"`
	Type     string  `json:"type"` // "private", "group", "supergroup", "channel"
	Title    *string `json:"title,omitempty"`
	Username *string `json:"username,omitempty"`
}

// Entity - сущность в сообщении (команда, упоминание и т.д.)
type Entity struct {
	Type   string `json:"type"`
	Offset int    `json:"offset"`
	Length int    `json:"length"`
}

// PreCheckoutQuery запрос подтверждения перед списанием оплаты
type PreCheckoutQuery struct {
	ID             string        `json:"id"`
	From           *TelegramUser `json:"from,omitempty"`
	Currency       string        `json:"currency"`
	TotalAmount    int64         `json:"total_amount"`
	InvoicePayload string        `json:"invoice_payload"`
}

// SuccessfulPayment уведомление о прошедшей оплате
type SuccessfulPayment struct {
	Currency                string `json:"currency"`
	TotalAmount             int64  `json:"total_amount"`
	InvoicePayload          string `json:"invoice_payload"`
	TelegramPaymentChargeID string `json:"telegram_payment_charge_id"`
	ProviderPaymentChargeID string `json:"provider_payment_charge_id"`
}

// InvoicePayload содержимое payload счёта: {"orderId": "<uuid>"}
type InvoicePayload struct {
	OrderID uuid.UUID `json:"orderId"`
}

// DecodeInvoicePayload разбирает payload счёта, пустой или битый payload - ErrValidation
func DecodeInvoicePayload(raw string) (InvoicePayload, error) {
	var payload InvoicePayload
	if strings.TrimSpace(raw) == "" {
		return payload, fmt.Errorf("%w: empty invoice payload", ErrValidation)
	}
	if err := json.Unmarshal([]byte(raw), &payload); err != nil {
		return payload, fmt.Errorf("%w: invalid invoice payload: %v", ErrValidation, err)
	}
	if payload.OrderID == uuid.Nil {
		return payload, fmt.Errorf("%w: invoice payload has no orderId", ErrValidation)
	}
	return payload, nil
}

// Encode сериализует payload для createInvoiceLink
func (p InvoicePayload) Encode() string {
	data, _ := json.Marshal(p)
	return string(data)
}

// ReplyTarget куда отвечать: MessageID != 0 - редактируем сообщение на месте, иначе отправляем новое
type ReplyTarget struct {
	ChatID    int64
	MessageID int64
}

func (t ReplyTarget) IsEdit() bool {
	return t.MessageID != 0
}

// ReplyMarkup клавиатура сообщения (inline или reply)
type ReplyMarkup interface {
	isReplyMarkup()
}

type WebAppInfo struct {
	URL string `json:"url"`
}

type InlineKeyboardButton struct {
	Text         string      `json:"text"`
	CallbackData string      `json:"callback_data,omitempty"`
	WebApp       *WebAppInfo `json:"web_app,omitempty"`
}

type InlineKeyboardMarkup struct {
	InlineKeyboard [][]InlineKeyboardButton `json:"inline_keyboard"`
}

func (*InlineKeyboardMarkup) isReplyMarkup() {}

type KeyboardButton struct {
	Text string `json:"text"`
}

type ReplyKeyboardMarkup struct {
	Keyboard       [][]KeyboardButton `json:"keyboard"`
	ResizeKeyboard bool               `json:"resize_keyboard,omitempty"`
	IsPersistent   bool               `json:"is_persistent,omitempty"`
}

func (*ReplyKeyboardMarkup) isReplyMarkup() {}

// Package initdata проверяет подпись и свежесть launch-данных Telegram Mini App.
//
// Алгоритм описан в https://core.telegram.org/bots/webapps#validating-data-received-via-the-mini-app
package initdata

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"net/url"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/admin/tg-bots/exam-shop-bot/internal/domain"
)

// DefaultMaxAge окно, в течение которого подписанные данные принимаются
const DefaultMaxAge = 24 * time.Hour

const webAppDataKey = "WebAppData"

// Data проверенные launch-данные
type Data struct {
	User     domain.WebAppUser
	AuthDate time.Time
	QueryID  string
}

// Validate проверяет initData с окном DefaultMaxAge
func Validate(raw, botToken string, now time.Time) (*Data, error) {
	return ValidateWithMaxAge(raw, botToken, now, DefaultMaxAge)
}

// ValidateWithMaxAge проверяет hash, auth_date и наличие user. Все отказы - domain.ErrValidation
func ValidateWithMaxAge(raw, botToken string, now time.Time, maxAge time.Duration) (*Data, error) {
	if strings.TrimSpace(raw) == "" {
		return nil, fmt.Errorf("%w: empty init data", domain.ErrValidation)
	}

	values, err := url.ParseQuery(raw)
	if err != nil {
		return nil, fmt.Errorf("%w: malformed init data: %v", domain.ErrValidation, err)
	}

	hash := values.Get("hash")
	if hash == "" {
		return nil, fmt.Errorf("%w: hash is missing", domain.ErrValidation)
	}
	values.Del("hash")

	expected := computeHash(values, botToken)
	if !hmac.Equal([]byte(expected), []byte(strings.ToLower(hash))) {
		return nil, fmt.Errorf("%w: hash mismatch", domain.ErrValidation)
	}

	authDateUnix, err := strconv.ParseInt(values.Get("auth_date"), 10, 64)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid auth_date", domain.ErrValidation)
	}
	authDate := time.Unix(authDateUnix, 0)
	if now.Sub(authDate) > maxAge {
		return nil, fmt.Errorf("%w: auth_date is too old", domain.ErrValidation)
	}

	userRaw := values.Get("user")
	if userRaw == "" {
		return nil, fmt.Errorf("%w: user is missing", domain.ErrValidation)
	}

	var user domain.WebAppUser
	if err := json.Unmarshal([]byte(userRaw), &user); err != nil {
		return nil, fmt.Errorf("%w: invalid user json: %v", domain.ErrValidation, err)
	}
	if user.ID == 0 {
		return nil, fmt.Errorf("%w: user id is missing", domain.ErrValidation)
	}

	return &Data{
		User:     user,
		AuthDate: authDate,
		QueryID:  values.Get("query_id"),
	}, nil
}

// Sign подписывает набор полей так же, как это делает Telegram. Возвращает готовую строку initData
func Sign(values url.Values, botToken string) string {
	signed := url.Values{}
	for key, vals := range values {
		if key == "hash" {
			continue
		}
		signed[key] = vals
	}
	signed.Set("hash", computeHash(signed, botToken))
	return signed.Encode()
}

// computeHash hex(HMAC_SHA256(HMAC_SHA256("WebAppData", token), data_check_string)), поле hash игнорируется
func computeHash(values url.Values, botToken string) string {
	keys := make([]string, 0, len(values))
	for key := range values {
		if key == "hash" {
			continue
		}
		keys = append(keys, key)
	}
	sort.Strings(keys)

	lines := make([]string, 0, len(keys))
	for _, key := range keys {
		lines = append(lines, key+"="+values.Get(key))
	}
	dataCheckString := strings.Join(lines, "\n")

	secret := hmac.New(sha256.New, []byte(webAppDataKey))
	secret.Write([]byte(botToken))
	secretKey := secret.Sum(nil)

	mac := hmac.New(sha256.New, secretKey)
	mac.Write([]byte(dataCheckString))
	return hex.EncodeToString(mac.Sum(nil))
}

package initdata

import (
	"errors"
	"net/url"
	"strconv"
	"testing"
	"time"

	"github.com/admin/tg-bots/exam-shop-bot/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testToken = "123456:TEST-token"

func signedPayload(t *testing.T, authDate time.Time, user string) string {
	t.Helper()
	values := url.Values{}
	values.Set("query_id", "AAHdF6IQAAAAAN0XohDhrOrc")
	values.Set("auth_date", strconv.FormatInt(authDate.Unix(), 10))
	if user != "" {
		values.Set("user", user)
	}
	return Sign(values, testToken)
}

func TestValidate_Accepts(t *testing.T) {
	now := time.Unix(1_735_689_600, 0)
	raw := signedPayload(t, now.Add(-time.Hour), `{"id":42,"first_name":"Анна","last_name":"К","username":"anna","photo_url":"https://t.me/i/a.jpg"}`)

	data, err := Validate(raw, testToken, now)
	require.NoError(t, err)
	assert.Equal(t, int64(42), data.User.ID)
	assert.Equal(t, "Анна", data.User.FirstName)
	assert.Equal(t, "anna", data.User.Username)
	assert.Equal(t, "https://t.me/i/a.jpg", data.User.PhotoURL)
	assert.Equal(t, now.Add(-time.Hour).Unix(), data.AuthDate.Unix())
	assert.Equal(t, "AAHdF6IQAAAAAN0XohDhrOrc", data.QueryID)
}

func TestValidate_RejectsWrongSecret(t *testing.T) {
	now := time.Unix(1_735_689_600, 0)
	raw := signedPayload(t, now, `{"id":42,"first_name":"A"}`)

	_, err := Validate(raw, "654321:other", now)
	assert.True(t, errors.Is(err, domain.ErrValidation))
}

func TestValidate_RejectsAnySingleCharacterFlip(t *testing.T) {
	now := time.Unix(1_735_689_600, 0)
	raw := signedPayload(t, now, `{"id":42,"first_name":"A"}`)

	values, err := url.ParseQuery(raw)
	require.NoError(t, err)

	for key := range values {
		if key == "hash" {
			continue
		}
		original := values.Get(key)
		for i := 0; i < len(original); i++ {
			tampered := []byte(original)
			if tampered[i] == 'x' {
				tampered[i] = 'y'
			} else {
				tampered[i] = 'x'
			}

			mutated := url.Values{}
			for k, v := range values {
				mutated[k] = append([]string(nil), v...)
			}
			mutated.Set(key, string(tampered))

			_, err := Validate(mutated.Encode(), testToken, now)
			require.Error(t, err, "field %s position %d", key, i)
			assert.True(t, errors.Is(err, domain.ErrValidation))
		}
	}

	hash := []byte(values.Get("hash"))
	for i := range hash {
		mutated := url.Values{}
		for k, v := range values {
			mutated[k] = append([]string(nil), v...)
		}
		flipped := append([]byte(nil), hash...)
		if flipped[i] == '0' {
			flipped[i] = '1'
		} else {
			flipped[i] = '0'
		}
		mutated.Set("hash", string(flipped))

		_, err := Validate(mutated.Encode(), testToken, now)
		assert.True(t, errors.Is(err, domain.ErrValidation), "hash position %d", i)
	}
}

func TestValidate_ReplayWindow(t *testing.T) {
	now := time.Unix(1_735_689_600, 0)

	fresh := signedPayload(t, now.Add(-86400*time.Second), `{"id":42,"first_name":"A"}`)
	_, err := Validate(fresh, testToken, now)
	assert.NoError(t, err, "exactly 86400s old is still accepted")

	stale := signedPayload(t, now.Add(-86401*time.Second), `{"id":42,"first_name":"A"}`)
	_, err = Validate(stale, testToken, now)
	assert.True(t, errors.Is(err, domain.ErrValidation))
}

func TestValidate_Rejects(t *testing.T) {
	now := time.Unix(1_735_689_600, 0)

	tests := []struct {
		name string
		raw  string
	}{
		{name: "empty", raw: ""},
		{name: "no hash", raw: "auth_date=1&user=%7B%22id%22%3A1%7D"},
		{name: "no user", raw: signedPayload(t, now, "")},
		{name: "user not json", raw: signedPayload(t, now, "not-json")},
		{name: "user without id", raw: signedPayload(t, now, `{"first_name":"A"}`)},
		{name: "bad auth_date", raw: Sign(url.Values{"auth_date": {"yesterday"}, "user": {`{"id":1}`}}, testToken)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Validate(tt.raw, testToken, now)
			assert.True(t, errors.Is(err, domain.ErrValidation))
		})
	}
}

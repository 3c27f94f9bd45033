package domain

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestSession_Expired проверяет вычисление истечения срока сессии
func TestSession_Expired(t *testing.T) {
	now := time.Unix(1_700_000_000, 0)

	assert.False(t, (&Session{ExpiresAt: now.Unix() + 60}).Expired(now))
	assert.True(t, (&Session{ExpiresAt: now.Unix() - 1}).Expired(now))
	assert.True(t, (&Session{ExpiresAt: now.Unix()}).Expired(now), "expiry moment counts as expired")
	assert.False(t, (&Session{ExpiresAt: 0}).Expired(now), "zero expiry means no expiry set")
}

// TestAccessTokenResponse_UnmarshalCapturesRaw проверяет что декодирование
// ответа одновременно заполняет типизированные поля и Raw
func TestAccessTokenResponse_UnmarshalCapturesRaw(t *testing.T) {
	payload := `{
		"access_token": "tok-abc",
		"expires_at": 1999999999,
		"expires_in": 3600,
		"provider_refresh_token": "",
		"provider_token": "",
		"refresh_token": "None",
		"token_type": "bearer",
		"user": {"id": "user-1", "email": "u@x.com"},
		"weak_password": null
	}`

	var resp AccessTokenResponse
	require.NoError(t, json.Unmarshal([]byte(payload), &resp))

	assert.Equal(t, "tok-abc", resp.AccessToken)
	assert.Equal(t, int64(1999999999), resp.ExpiresAt)
	assert.Equal(t, "None", resp.RefreshToken)
	assert.Equal(t, "u@x.com", resp.User["email"])

	// Raw содержит все девять полей в исходном виде
	for _, field := range []string{
		"access_token", "expires_at", "expires_in", "provider_refresh_token",
		"provider_token", "refresh_token", "token_type", "user", "weak_password",
	} {
		assert.Contains(t, resp.Raw, field)
	}
	assert.JSONEq(t, `"None"`, string(resp.Raw["refresh_token"]))
}

// TestProfileFromUser проверяет извлечение профиля с учетом
// непоследовательного именования полей backend
func TestProfileFromUser(t *testing.T) {
	t.Run("snake_case fields", func(t *testing.T) {
		p := ProfileFromUser(map[string]any{
			"id":         "user-1",
			"email":      "u@x.com",
			"first_name": "Ivan",
			"last_name":  "Petrov",
			"avatar":     "http://a/1.png",
		}, "fallback@x.com")

		assert.Equal(t, "user-1", p.ID)
		assert.Equal(t, "u@x.com", p.Email)
		assert.Equal(t, "Ivan", p.FirstName)
		assert.Equal(t, "Petrov", p.LastName)
		assert.Equal(t, "http://a/1.png", p.Avatar)
	})

	t.Run("camelCase and avatar_url variants", func(t *testing.T) {
		p := ProfileFromUser(map[string]any{
			"id":         "user-1",
			"firstName":  "Ivan",
			"lastName":   "Petrov",
			"avatar_url": "http://a/2.png",
		}, "fallback@x.com")

		assert.Equal(t, "Ivan", p.FirstName)
		assert.Equal(t, "Petrov", p.LastName)
		assert.Equal(t, "http://a/2.png", p.Avatar)
		assert.Equal(t, "fallback@x.com", p.Email, "missing email falls back to the login email")
	})

	t.Run("nil user map", func(t *testing.T) {
		p := ProfileFromUser(nil, "fallback@x.com")
		assert.Empty(t, p.ID)
		assert.Equal(t, "fallback@x.com", p.Email)
	})
}

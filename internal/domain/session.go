package domain

import (
	"encoding/json"
	"time"
)

// RefreshTokenSentinel это строка, которую backend возвращает вместо
// отсутствующего refresh токена. Во внутреннее состояние сессии она
// никогда не попадает - на границе переводится в пустую строку.
const RefreshTokenSentinel = "None"

// UserProfile представляет кэшированный профиль пользователя
type UserProfile struct {
	ID        string `json:"id"`
	Email     string `json:"email"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Company   string `json:"company,omitempty"`
	Avatar    string `json:"avatar,omitempty"`
}

// Session представляет аутентифицированное состояние браузера:
// токены, срок действия и кэшированный профиль пользователя.
// Инвариант: AccessToken и ExpiresAt присутствуют только вместе.
type Session struct {
	AccessToken  string
	RefreshToken string // пустая строка когда backend вернул sentinel "None"
	ExpiresAt    int64  // unix секунды
	User         UserProfile
}

// Expired сообщает, истек ли срок действия сессии на момент now
func (s *Session) Expired(now time.Time) bool {
	return s.ExpiresAt != 0 && now.Unix() >= s.ExpiresAt
}

// HasRefreshToken сообщает, есть ли у сессии refresh токен
func (s *Session) HasRefreshToken() bool {
	return s.RefreshToken != ""
}

// AccessTokenResponse представляет ответ backend на sign-in, sign-up
// и refresh-token запросы. Raw хранит исходные JSON поля для проверки
// их наличия и типов валидатором.
type AccessTokenResponse struct {
	AccessToken          string         `json:"access_token"`
	ExpiresAt            int64          `json:"expires_at"`
	ExpiresIn            int64          `json:"expires_in"`
	ProviderRefreshToken string         `json:"provider_refresh_token"`
	ProviderToken        string         `json:"provider_token"`
	RefreshToken         string         `json:"refresh_token"`
	TokenType            string         `json:"token_type"`
	User                 map[string]any `json:"user"`
	WeakPassword         map[string]any `json:"weak_password"`

	Raw map[string]json.RawMessage `json:"-"`
}

// UnmarshalJSON декодирует типизированные поля и одновременно
// сохраняет исходные JSON значения в Raw
func (r *AccessTokenResponse) UnmarshalJSON(data []byte) error {
	type alias AccessTokenResponse
	var a alias
	if err := json.Unmarshal(data, &a); err != nil {
		return err
	}
	*r = AccessTokenResponse(a)
	return json.Unmarshal(data, &r.Raw)
}

// ProfileFromUser извлекает профиль пользователя из объекта user в ответе
// backend. Backend непоследователен в именовании (first_name/firstName,
// avatar/avatar_url), поэтому проверяются оба варианта. fallbackEmail
// используется когда email в ответе отсутствует.
func ProfileFromUser(user map[string]any, fallbackEmail string) UserProfile {
	p := UserProfile{
		ID:        stringField(user, "id"),
		Email:     stringField(user, "email"),
		FirstName: stringField(user, "first_name"),
		LastName:  stringField(user, "last_name"),
		Company:   stringField(user, "company"),
		Avatar:    stringField(user, "avatar"),
	}
	if p.Email == "" {
		p.Email = fallbackEmail
	}
	if p.FirstName == "" {
		p.FirstName = stringField(user, "firstName")
	}
	if p.LastName == "" {
		p.LastName = stringField(user, "lastName")
	}
	if p.Avatar == "" {
		p.Avatar = stringField(user, "avatar_url")
	}
	return p
}

func stringField(m map[string]any, key string) string {
	v, ok := m[key].(string)
	if !ok {
		return ""
	}
	return v
}

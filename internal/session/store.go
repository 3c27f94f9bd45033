// Package session реализует персистентный кэш сессии поверх
// хранилища ключ-значение. Ключи фиксированы и разделяются между
// записью и чтением - несовпадение ключей это баг, а не
// восстановимое состояние.
package session

import (
	"encoding/json"
	"strconv"
	"strings"

	"github.com/aidar/agentbox-gateway/internal/domain"
	"github.com/aidar/agentbox-gateway/internal/storage"
)

// Ключи хранилища. Менять существующие значения нельзя -
// сломается восстановление уже сохраненных сессий.
const (
	KeyAuthToken      = "auth_token"
	KeyRefreshToken   = "refresh_token"
	KeyTokenExpiresAt = "token_expires_at"
	KeyUserInfo       = "user_info"
	KeyCurrentTeamID  = "current_team_id"
	KeyTheme          = "theme"
)

// Store сохраняет и восстанавливает сессию, активную команду и
// пользовательские настройки
type Store struct {
	kv storage.Store
}

// New создает Store поверх указанного хранилища
func New(kv storage.Store) *Store {
	return &Store{kv: kv}
}

// Save записывает сессию в хранилище. Refresh токен, равный sentinel
// "None", сохраняется как отсутствующий.
func (s *Store) Save(sess *domain.Session) error {
	if err := s.kv.Set(KeyAuthToken, sess.AccessToken); err != nil {
		return err
	}
	if err := s.kv.Set(KeyTokenExpiresAt, strconv.FormatInt(sess.ExpiresAt, 10)); err != nil {
		return err
	}

	refresh := sess.RefreshToken
	if strings.EqualFold(refresh, domain.RefreshTokenSentinel) {
		refresh = ""
	}
	if refresh != "" {
		if err := s.kv.Set(KeyRefreshToken, refresh); err != nil {
			return err
		}
	} else {
		if err := s.kv.Delete(KeyRefreshToken); err != nil {
			return err
		}
	}

	profile, err := json.Marshal(sess.User)
	if err != nil {
		return err
	}
	return s.kv.Set(KeyUserInfo, string(profile))
}

// Load восстанавливает сессию из хранилища. Частично записанное или
// поврежденное состояние (нет токена, нет срока действия, нечитаемый
// профиль) трактуется как отсутствие сессии: возвращается (nil, nil).
func (s *Store) Load() (*domain.Session, error) {
	token, err := s.kv.Get(KeyAuthToken)
	if err != nil || token == "" {
		return nil, nil
	}

	// Токен без срока действия нарушает инвариант сессии -
	// считаем запись поврежденной
	rawExpiry, err := s.kv.Get(KeyTokenExpiresAt)
	if err != nil {
		return nil, nil
	}
	expiresAt, err := strconv.ParseInt(rawExpiry, 10, 64)
	if err != nil {
		return nil, nil
	}

	rawProfile, err := s.kv.Get(KeyUserInfo)
	if err != nil {
		return nil, nil
	}
	var user domain.UserProfile
	if err := json.Unmarshal([]byte(rawProfile), &user); err != nil || user.ID == "" {
		return nil, nil
	}

	sess := &domain.Session{
		AccessToken: token,
		ExpiresAt:   expiresAt,
		User:        user,
	}
	if refresh, err := s.kv.Get(KeyRefreshToken); err == nil &&
		!strings.EqualFold(refresh, domain.RefreshTokenSentinel) {
		sess.RefreshToken = refresh
	}
	return sess, nil
}

// Clear удаляет сессию из хранилища. Активная команда и настройки
// при этом сохраняются - их очищают явные действия пользователя.
func (s *Store) Clear() {
	for _, key := range []string{KeyAuthToken, KeyRefreshToken, KeyTokenExpiresAt, KeyUserInfo} {
		_ = s.kv.Delete(key)
	}
}

// AccessToken возвращает сохраненный access токен или пустую строку
func (s *Store) AccessToken() string {
	token, err := s.kv.Get(KeyAuthToken)
	if err != nil {
		return ""
	}
	return token
}

// ActiveTeamID возвращает сохраненный id активной команды или пустую строку
func (s *Store) ActiveTeamID() string {
	id, err := s.kv.Get(KeyCurrentTeamID)
	if err != nil {
		return ""
	}
	return id
}

// SetActiveTeamID сохраняет id активной команды
func (s *Store) SetActiveTeamID(id string) error {
	return s.kv.Set(KeyCurrentTeamID, id)
}

// ClearActiveTeamID удаляет сохраненный id активной команды
func (s *Store) ClearActiveTeamID() {
	_ = s.kv.Delete(KeyCurrentTeamID)
}

// Theme возвращает сохраненную тему интерфейса или пустую строку
func (s *Store) Theme() string {
	theme, err := s.kv.Get(KeyTheme)
	if err != nil {
		return ""
	}
	return theme
}

// SetTheme сохраняет тему интерфейса
func (s *Store) SetTheme(theme string) error {
	return s.kv.Set(KeyTheme, theme)
}

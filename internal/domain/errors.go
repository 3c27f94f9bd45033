package domain

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// Доменные ошибки жизненного цикла сессии и выбора команды
var (
	// ErrNoSession возвращается когда сохраненная сессия отсутствует
	ErrNoSession = errors.New("no stored session")

	// ErrNoRefreshToken возвращается при попытке обновить сессию без refresh токена
	ErrNoRefreshToken = errors.New("no refresh token available")

	// ErrNoActiveTeam возвращается когда операции требуется активная команда
	ErrNoActiveTeam = errors.New("no active team selected")

	// ErrNotAuthenticated возвращается когда операция требует аутентификации
	ErrNotAuthenticated = errors.New("not authenticated")
)

// APIError представляет ошибку backend или транспорта.
// Status 0 означает сетевую ошибку (backend недоступен);
// такие ошибки никогда не передаются клиенту дословно.
type APIError struct {
	Status  int
	Message string
	Payload json.RawMessage // исходное тело ошибки backend, если было
	Err     error           // причина для сетевых ошибок
}

// Error реализует интерфейс error
func (e *APIError) Error() string {
	if e.Status == 0 {
		return fmt.Sprintf("network error: %v", e.Err)
	}
	return fmt.Sprintf("backend returned %d: %s", e.Status, e.Message)
}

// Unwrap возвращает причину ошибки
func (e *APIError) Unwrap() error {
	return e.Err
}

// IsNetwork сообщает, является ли ошибка транспортной
func (e *APIError) IsNetwork() bool {
	return e.Status == 0
}

// ValidationError представляет ошибку валидации ответа или запроса:
// список проблемных полей, каждое ровно один раз
type ValidationError struct {
	Problems []string
}

// Error реализует интерфейс error
func (e *ValidationError) Error() string {
	return "invalid response: " + strings.Join(e.Problems, ", ")
}

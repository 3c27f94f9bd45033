package middleware

import (
	"context"
	"net/http"

	"github.com/aidar/agentbox-gateway/internal/backend"
)

// ContextKey это кастомный тип для ключей контекста
type ContextKey string

// TokenKey ключ контекста для токена сессии
const TokenKey ContextKey = "supabase_token"

// RequireToken проверяет наличие заголовка X-Supabase-Token и кладет
// токен в контекст запроса. Токен не верифицируется - это обязанность
// backend; прокси проверяет только присутствие. Запрос без токена
// отклоняется до единственного обращения к backend.
func RequireToken(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := r.Header.Get(backend.HeaderSupabaseToken)
		if token == "" {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusUnauthorized)
			_, _ = w.Write([]byte(`{"error":"Authentication token is required"}`))
			return
		}

		ctx := context.WithValue(r.Context(), TokenKey, token)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// TokenFromContext извлекает токен сессии из контекста
func TokenFromContext(ctx context.Context) string {
	token, ok := ctx.Value(TokenKey).(string)
	if !ok {
		return ""
	}
	return token
}

package handler

import (
	"encoding/json"
	"net/http"

	"github.com/aidar/agentbox-gateway/internal/backend"
	"github.com/aidar/agentbox-gateway/internal/middleware"
)

// defaultAccessTokenName это имя, под которым dashboard создает
// свой access токен на backend
const defaultAccessTokenName = "dashboard_generated_access_token"

// AccessTokenHandler обрабатывает эндпоинты access токена
type AccessTokenHandler struct {
	fwd *Forwarder
}

// NewAccessTokenHandler создает новый AccessTokenHandler
func NewAccessTokenHandler(fwd *Forwarder) *AccessTokenHandler {
	return &AccessTokenHandler{fwd: fwd}
}

// Get обрабатывает GET /api/access-token
func (h *AccessTokenHandler) Get(w http.ResponseWriter, r *http.Request) {
	h.fwd.relay(w, r, relayRequest{
		method:     http.MethodGet,
		endpoint:   backend.EndpointAccessToken,
		token:      middleware.TokenFromContext(r.Context()),
		successMsg: "Access token fetch succeeded",
		errorMsg:   "Failed to fetch access token",
	})
}

// Patch обрабатывает PATCH /api/access-token.
// Тело запроса формируется на стороне прокси: клиент не выбирает имя
// генерируемого токена. Заголовок команды пересылается если есть.
func (h *AccessTokenHandler) Patch(w http.ResponseWriter, r *http.Request) {
	body, err := json.Marshal(map[string]string{"name": defaultAccessTokenName})
	if err != nil {
		RespondWithError(w, r, http.StatusInternalServerError, MsgInternalError)
		return
	}

	h.fwd.relay(w, r, relayRequest{
		method:     http.MethodPatch,
		endpoint:   backend.EndpointAccessToken,
		body:       body,
		token:      middleware.TokenFromContext(r.Context()),
		teamID:     r.Header.Get(backend.HeaderSupabaseTeam),
		successMsg: "Access token update succeeded",
		errorMsg:   "Failed to update access token",
	})
}

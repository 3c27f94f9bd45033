package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/aidar/agentbox-gateway/internal/backend"
	"github.com/aidar/agentbox-gateway/internal/middleware"
)

// APIKeyHandler обрабатывает эндпоинты API ключей команды.
// Ресурс привязан к команде: без заголовка X-Supabase-Team запрос
// отклоняется до обращения к backend.
type APIKeyHandler struct {
	fwd *Forwarder
}

// NewAPIKeyHandler создает новый APIKeyHandler
func NewAPIKeyHandler(fwd *Forwarder) *APIKeyHandler {
	return &APIKeyHandler{fwd: fwd}
}

// List обрабатывает GET /api/proxy/api-keys
func (h *APIKeyHandler) List(w http.ResponseWriter, r *http.Request) {
	teamID := r.Header.Get(backend.HeaderSupabaseTeam)
	if teamID == "" {
		RespondWithError(w, r, http.StatusBadRequest, MsgTeamRequired)
		return
	}

	h.fwd.relay(w, r, relayRequest{
		method:     http.MethodGet,
		endpoint:   backend.EndpointAPIKeys,
		token:      middleware.TokenFromContext(r.Context()),
		teamID:     teamID,
		successMsg: "API keys fetch succeeded",
		errorMsg:   "Failed to fetch API keys",
	})
}

// Create обрабатывает POST /api/proxy/api-keys
func (h *APIKeyHandler) Create(w http.ResponseWriter, r *http.Request) {
	teamID := r.Header.Get(backend.HeaderSupabaseTeam)
	if teamID == "" {
		RespondWithError(w, r, http.StatusBadRequest, MsgTeamRequired)
		return
	}

	body, raw, err := decodeBody(r)
	if err != nil {
		RespondWithError(w, r, http.StatusBadRequest, MsgInvalidBody)
		return
	}
	if stringBodyField(body, "name") == "" {
		RespondWithError(w, r, http.StatusBadRequest, "API Key name is required")
		return
	}

	h.fwd.relay(w, r, relayRequest{
		method:     http.MethodPost,
		endpoint:   backend.EndpointAPIKeys,
		body:       raw,
		token:      middleware.TokenFromContext(r.Context()),
		teamID:     teamID,
		successMsg: "API Key created successfully",
		errorMsg:   "Failed to create API key",
	})
}

// Update обрабатывает PATCH /api/proxy/api-keys/{keyID}
func (h *APIKeyHandler) Update(w http.ResponseWriter, r *http.Request) {
	teamID := r.Header.Get(backend.HeaderSupabaseTeam)
	if teamID == "" {
		RespondWithError(w, r, http.StatusBadRequest, MsgTeamRequired)
		return
	}
	keyID := chi.URLParam(r, "keyID")
	if keyID == "" {
		RespondWithError(w, r, http.StatusBadRequest, "API Key ID is required")
		return
	}

	_, raw, err := decodeBody(r)
	if err != nil {
		RespondWithError(w, r, http.StatusBadRequest, MsgInvalidBody)
		return
	}

	h.fwd.relay(w, r, relayRequest{
		method:     http.MethodPatch,
		endpoint:   backend.EndpointAPIKey(keyID),
		body:       raw,
		token:      middleware.TokenFromContext(r.Context()),
		teamID:     teamID,
		successMsg: "API Key updated successfully",
		errorMsg:   "Failed to update API key",
	})
}

// Delete обрабатывает DELETE /api/proxy/api-keys/{keyID}.
// Backend отвечает на удаление пустым телом - relay подставит
// синтетическое успешное сообщение.
func (h *APIKeyHandler) Delete(w http.ResponseWriter, r *http.Request) {
	teamID := r.Header.Get(backend.HeaderSupabaseTeam)
	if teamID == "" {
		RespondWithError(w, r, http.StatusBadRequest, MsgTeamRequired)
		return
	}
	keyID := chi.URLParam(r, "keyID")
	if keyID == "" {
		RespondWithError(w, r, http.StatusBadRequest, "API Key ID is required")
		return
	}

	h.fwd.relay(w, r, relayRequest{
		method:     http.MethodDelete,
		endpoint:   backend.EndpointAPIKey(keyID),
		token:      middleware.TokenFromContext(r.Context()),
		teamID:     teamID,
		successMsg: "API Key deleted successfully",
		errorMsg:   "Failed to delete API key",
	})
}

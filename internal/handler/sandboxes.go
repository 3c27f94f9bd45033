package handler

import (
	"net/http"
	"net/url"

	"github.com/aidar/agentbox-gateway/internal/backend"
	"github.com/aidar/agentbox-gateway/internal/middleware"
)

// SandboxHandler обрабатывает эндпоинты окружений.
// Ресурс привязан к команде: без заголовка X-Supabase-Team запрос
// отклоняется до обращения к backend.
type SandboxHandler struct {
	fwd *Forwarder
}

// NewSandboxHandler создает новый SandboxHandler
func NewSandboxHandler(fwd *Forwarder) *SandboxHandler {
	return &SandboxHandler{fwd: fwd}
}

// List обрабатывает GET /api/proxy/sandboxes?state=...
func (h *SandboxHandler) List(w http.ResponseWriter, r *http.Request) {
	teamID := r.Header.Get(backend.HeaderSupabaseTeam)
	if teamID == "" {
		RespondWithError(w, r, http.StatusBadRequest, MsgTeamRequired)
		return
	}

	var params url.Values
	if state := r.URL.Query().Get("state"); state != "" {
		params = url.Values{"state": {state}}
	}

	h.fwd.relay(w, r, relayRequest{
		method:     http.MethodGet,
		endpoint:   backend.EndpointSandboxes,
		params:     params,
		token:      middleware.TokenFromContext(r.Context()),
		teamID:     teamID,
		successMsg: "Sandboxes fetch succeeded",
		errorMsg:   "Failed to fetch sandboxes",
	})
}

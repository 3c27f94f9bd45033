package handler

import (
	"net/http"

	"github.com/aidar/agentbox-gateway/internal/backend"
	"github.com/aidar/agentbox-gateway/internal/middleware"
)

// TeamHandler обрабатывает создание команды
type TeamHandler struct {
	fwd *Forwarder
}

// NewTeamHandler создает новый TeamHandler
func NewTeamHandler(fwd *Forwarder) *TeamHandler {
	return &TeamHandler{fwd: fwd}
}

// Create обрабатывает POST /api/proxy/team.
// Создание команды не требует заголовка команды: новая команда еще
// не существует.
func (h *TeamHandler) Create(w http.ResponseWriter, r *http.Request) {
	body, raw, err := decodeBody(r)
	if err != nil {
		RespondWithError(w, r, http.StatusBadRequest, MsgInvalidBody)
		return
	}
	if stringBodyField(body, "name") == "" {
		RespondWithError(w, r, http.StatusBadRequest, "Team name is required")
		return
	}

	h.fwd.relay(w, r, relayRequest{
		method:     http.MethodPost,
		endpoint:   backend.EndpointTeam,
		body:       raw,
		token:      middleware.TokenFromContext(r.Context()),
		successMsg: "Team created successfully",
		errorMsg:   "Failed to create team",
	})
}

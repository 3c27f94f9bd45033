package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/aidar/agentbox-gateway/internal/backend"
	"github.com/aidar/agentbox-gateway/internal/middleware"
)

// UserTeamHandler обрабатывает членство пользователей в командах
type UserTeamHandler struct {
	fwd *Forwarder
}

// NewUserTeamHandler создает новый UserTeamHandler
func NewUserTeamHandler(fwd *Forwarder) *UserTeamHandler {
	return &UserTeamHandler{fwd: fwd}
}

// Invite обрабатывает POST /api/proxy/user-team
func (h *UserTeamHandler) Invite(w http.ResponseWriter, r *http.Request) {
	body, raw, err := decodeBody(r)
	if err != nil {
		RespondWithError(w, r, http.StatusBadRequest, MsgInvalidBody)
		return
	}
	if stringBodyField(body, "email") == "" || stringBodyField(body, "teamID") == "" {
		RespondWithError(w, r, http.StatusBadRequest, "email and teamID are required")
		return
	}

	h.fwd.relay(w, r, relayRequest{
		method:     http.MethodPost,
		endpoint:   backend.EndpointUserTeam,
		body:       raw,
		token:      middleware.TokenFromContext(r.Context()),
		teamID:     r.Header.Get(backend.HeaderSupabaseTeam),
		successMsg: "User invited successfully",
		errorMsg:   "Failed to invite user to team",
	})
}

// Remove обрабатывает DELETE /api/proxy/user-team/{userID}/{teamID}.
// Backend отвечает 204 без тела - relay подставит синтетическое
// успешное сообщение.
func (h *UserTeamHandler) Remove(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userID")
	teamID := chi.URLParam(r, "teamID")
	if userID == "" || teamID == "" {
		RespondWithError(w, r, http.StatusBadRequest, "userId and teamId are required")
		return
	}

	h.fwd.relay(w, r, relayRequest{
		method:     http.MethodDelete,
		endpoint:   backend.EndpointRemoveTeamMember(userID, teamID),
		token:      middleware.TokenFromContext(r.Context()),
		teamID:     r.Header.Get(backend.HeaderSupabaseTeam),
		successMsg: "User removed from team successfully",
		errorMsg:   "Failed to remove user from team",
	})
}

package handler

import (
	"net/http"
	"net/url"

	"github.com/aidar/agentbox-gateway/internal/backend"
	"github.com/aidar/agentbox-gateway/internal/middleware"
)

// UserHandler обрабатывает запросы пользователей и их команд
type UserHandler struct {
	fwd *Forwarder
}

// NewUserHandler создает новый UserHandler
func NewUserHandler(fwd *Forwarder) *UserHandler {
	return &UserHandler{fwd: fwd}
}

// ByIDs обрабатывает GET /api/proxy/user-by-ids?user_ids=...
func (h *UserHandler) ByIDs(w http.ResponseWriter, r *http.Request) {
	userIDs := r.URL.Query().Get("user_ids")
	if userIDs == "" {
		RespondWithError(w, r, http.StatusBadRequest, "user_ids parameter is required")
		return
	}

	h.fwd.relay(w, r, relayRequest{
		method:     http.MethodGet,
		endpoint:   backend.EndpointUserByIDs,
		params:     url.Values{"user_ids": {userIDs}},
		token:      middleware.TokenFromContext(r.Context()),
		teamID:     r.Header.Get(backend.HeaderSupabaseTeam),
		successMsg: "Users fetch succeeded",
		errorMsg:   "Failed to fetch users",
	})
}

// Teams обрабатывает GET /api/proxy/user-teams?user_id=...
func (h *UserHandler) Teams(w http.ResponseWriter, r *http.Request) {
	userID := r.URL.Query().Get("user_id")
	if userID == "" {
		RespondWithError(w, r, http.StatusBadRequest, "user_id parameter is required")
		return
	}

	h.fwd.relay(w, r, relayRequest{
		method:     http.MethodGet,
		endpoint:   backend.EndpointUserTeams,
		params:     url.Values{"user_id": {userID}},
		token:      middleware.TokenFromContext(r.Context()),
		successMsg: "User teams fetch succeeded",
		errorMsg:   "Failed to fetch user teams",
	})
}

// TeamMembers обрабатывает GET /api/proxy/user-team-by-team?team_id=...
func (h *UserHandler) TeamMembers(w http.ResponseWriter, r *http.Request) {
	teamID := r.URL.Query().Get("team_id")
	if teamID == "" {
		RespondWithError(w, r, http.StatusBadRequest, "team_id parameter is required")
		return
	}

	h.fwd.relay(w, r, relayRequest{
		method:     http.MethodGet,
		endpoint:   backend.EndpointUserTeamByTeam,
		params:     url.Values{"team_id": {teamID}},
		token:      middleware.TokenFromContext(r.Context()),
		teamID:     r.Header.Get(backend.HeaderSupabaseTeam),
		successMsg: "Team members fetch succeeded",
		errorMsg:   "Failed to fetch team members",
	})
}

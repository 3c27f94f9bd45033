package service

import (
	"log/slog"

	"github.com/aidar/agentbox-gateway/internal/domain"
	"github.com/aidar/agentbox-gateway/internal/session"
)

// EmptyTeamsPolicy controls what happens to a saved team id when the
// team list resolves to empty. The caller decides whether an empty list
// is authoritative: a transient load failure should retain the saved id
// for the next resolution, a confirmed empty account should clear it.
type EmptyTeamsPolicy int

// Empty team list policies
const (
	// RetainSavedTeam keeps the saved team id untouched (default)
	RetainSavedTeam EmptyTeamsPolicy = iota

	// ClearSavedTeam drops the saved team id
	ClearSavedTeam
)

// TeamService derives the active team and owns the persisted selection.
// Resolution order: explicit user selection > remembered team id > first
// team returned by the backend.
type TeamService struct {
	sessions *session.Store
	policy   EmptyTeamsPolicy
	logger   *slog.Logger
}

// NewTeamService creates a TeamService with the given empty-list policy
func NewTeamService(sessions *session.Store, policy EmptyTeamsPolicy, logger *slog.Logger) *TeamService {
	return &TeamService{
		sessions: sessions,
		policy:   policy,
		logger:   logger,
	}
}

// ResolveActiveTeam picks the active team from a fresh team list.
// A saved id matching a team wins without touching the store; a stale or
// absent saved id falls back to the first team and persists the
// correction. An empty list yields nil and applies the empty-list policy.
func (s *TeamService) ResolveActiveTeam(teams []domain.Team) *domain.Team {
	if len(teams) == 0 {
		if s.policy == ClearSavedTeam {
			s.sessions.ClearActiveTeamID()
		}
		return nil
	}

	savedID := s.sessions.ActiveTeamID()
	if savedID != "" {
		for i := range teams {
			if teams[i].ID == savedID {
				team := teams[i]
				return &team
			}
		}
		s.logger.Warn("saved team id is stale, falling back to first team",
			"saved_id", savedID, "fallback_id", teams[0].ID)
	}

	first := teams[0]
	if err := s.sessions.SetActiveTeamID(first.ID); err != nil {
		s.logger.Error("failed to persist active team id", "error", err)
	}
	return &first
}

// SetActiveTeam is a direct user action: the saved id is overwritten
// unconditionally
func (s *TeamService) SetActiveTeam(team domain.Team) error {
	return s.sessions.SetActiveTeamID(team.ID)
}

// ActiveTeamID returns the persisted team id, or "" when none is saved
func (s *TeamService) ActiveTeamID() string {
	return s.sessions.ActiveTeamID()
}

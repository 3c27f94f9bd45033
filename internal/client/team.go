package client

import (
	"context"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/aidar/agentbox-gateway/internal/domain"
)

// Teams wraps the team management endpoints of the gateway
type Teams struct {
	c *Client
}

// Teams returns the team client
func (c *Client) Teams() *Teams {
	return &Teams{c: c}
}

// Create creates a new team. The team header is deliberately omitted:
// the team being created does not exist yet.
func (t *Teams) Create(ctx context.Context, name string) (*domain.Team, error) {
	var team domain.Team
	body := map[string]string{"name": name}
	if err := t.c.request(ctx, http.MethodPost, "/api/proxy/team", nil, body, false, &team); err != nil {
		return nil, err
	}
	return &team, nil
}

// Invite invites a user into a team by email
func (t *Teams) Invite(ctx context.Context, email, teamID string) error {
	body := map[string]string{"email": email, "teamID": teamID}
	return t.c.request(ctx, http.MethodPost, "/api/proxy/user-team", nil, body, true, nil)
}

// RemoveMember removes a user from a team
func (t *Teams) RemoveMember(ctx context.Context, userID, teamID string) error {
	path := "/api/proxy/user-team/" + userID + "/" + teamID
	return t.c.request(ctx, http.MethodDelete, path, nil, nil, true, nil)
}

// Members returns the members of a team with profiles and derived
// roles. Two upstream round trips: the membership rows first, then the
// user profiles for every referenced user id.
func (t *Teams) Members(ctx context.Context, team domain.Team) ([]domain.TeamMember, error) {
	var memberships []domain.Membership
	query := url.Values{"team_id": {team.ID}}
	if err := t.c.request(ctx, http.MethodGet, "/api/proxy/user-team-by-team", query, nil, true, &memberships); err != nil {
		return nil, err
	}
	if len(memberships) == 0 {
		return nil, nil
	}

	ids := make([]string, 0, len(memberships))
	for _, m := range memberships {
		ids = append(ids, m.UserID)
	}
	var users []domain.UserProfile
	query = url.Values{"user_ids": {strings.Join(ids, ",")}}
	if err := t.c.request(ctx, http.MethodGet, "/api/proxy/user-by-ids", query, nil, true, &users); err != nil {
		return nil, err
	}

	profiles := make(map[string]domain.UserProfile, len(users))
	for _, u := range users {
		profiles[u.ID] = u
	}

	members := make([]domain.TeamMember, 0, len(memberships))
	for _, m := range memberships {
		profile, ok := profiles[m.UserID]
		if !ok {
			profile = domain.UserProfile{ID: m.UserID, Email: "Unknown"}
		}
		members = append(members, domain.TeamMember{
			ID:     strconv.FormatInt(m.ID, 10),
			UserID: m.UserID,
			TeamID: m.TeamID,
			Role:   domain.ResolveMemberRole(m, profile.Email, team.Email),
			User:   profile,
		})
	}
	return members, nil
}

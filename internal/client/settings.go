package client

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/aidar/agentbox-gateway/internal/domain"
)

// SettingsPage holds the data the team settings page fans out for
type SettingsPage struct {
	APIKeys []domain.APIKey
	Members []domain.TeamMember
}

// FetchSettings fetches API keys and team members in parallel. The two
// resources are independent, so a fan-out/join is safe; the first error
// cancels the sibling fetch.
func (c *Client) FetchSettings(ctx context.Context, team domain.Team) (*SettingsPage, error) {
	if team.ID == "" {
		return nil, domain.ErrNoActiveTeam
	}
	page := &SettingsPage{}

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		keys, err := c.APIKeys().List(ctx)
		if err != nil {
			return err
		}
		page.APIKeys = keys
		return nil
	})
	g.Go(func() error {
		members, err := c.Teams().Members(ctx, team)
		if err != nil {
			return err
		}
		page.Members = members
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return page, nil
}

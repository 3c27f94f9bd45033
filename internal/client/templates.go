package client

import (
	"context"
	"net/http"
	"net/url"

	"github.com/aidar/agentbox-gateway/internal/domain"
)

// Templates wraps the template endpoints of the gateway
type Templates struct {
	c *Client
}

// Templates returns the template client
func (c *Client) Templates() *Templates {
	return &Templates{c: c}
}

// List returns the templates of a team, or the default templates when
// teamID is empty
func (t *Templates) List(ctx context.Context, teamID string) ([]domain.Template, error) {
	var query url.Values
	if teamID != "" {
		query = url.Values{"teamID": {teamID}}
	}
	var templates []domain.Template
	if err := t.c.request(ctx, http.MethodGet, "/api/proxy/templates", query, nil, true, &templates); err != nil {
		return nil, err
	}
	return templates, nil
}

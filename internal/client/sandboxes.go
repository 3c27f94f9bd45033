package client

import (
	"context"
	"net/http"
	"net/url"

	"github.com/aidar/agentbox-gateway/internal/domain"
)

// Sandboxes wraps the sandbox endpoints of the gateway
type Sandboxes struct {
	c *Client
}

// Sandboxes returns the sandbox client
func (c *Client) Sandboxes() *Sandboxes {
	return &Sandboxes{c: c}
}

// Running returns the running sandboxes of the active team. When no
// team is selected the request goes out without a team header and the
// gateway rejects it with 400 before any upstream call.
func (s *Sandboxes) Running(ctx context.Context) ([]domain.Sandbox, error) {
	var sandboxes []domain.Sandbox
	query := url.Values{"state": {"running"}}
	if err := s.c.request(ctx, http.MethodGet, "/api/proxy/sandboxes", query, nil, true, &sandboxes); err != nil {
		return nil, err
	}
	return sandboxes, nil
}

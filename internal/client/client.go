// Package client provides typed clients for the gateway's same-origin
// endpoints. Credentials are read from the session store and the team
// selection at call time, never cached at construction, so a login or
// team switch is picked up by the very next call.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/aidar/agentbox-gateway/internal/backend"
	"github.com/aidar/agentbox-gateway/internal/domain"
	"github.com/aidar/agentbox-gateway/internal/session"
	"github.com/aidar/agentbox-gateway/internal/service"
)

// Client is the shared transport for the typed resource clients.
// One call in, one call out: no caching, no retries, no batching.
type Client struct {
	baseURL    string
	httpClient *http.Client
	sessions   *session.Store
	teams      *service.TeamService
}

// New creates a client for the gateway at baseURL
func New(baseURL string, sessions *session.Store, teams *service.TeamService) *Client {
	return &Client{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		sessions: sessions,
		teams:    teams,
	}
}

// request issues one gateway call. The token header is attached whenever
// a session is stored; the team header only when withTeam is set and a
// team is actually selected - an empty team id is never sent.
func (c *Client) request(ctx context.Context, method, path string, query url.Values, body any, withTeam bool, out any) error {
	target := c.baseURL + path
	if len(query) > 0 {
		target += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal request body: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, target, reader)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	token := c.sessions.AccessToken()
	teamID := ""
	if withTeam {
		teamID = c.teams.ActiveTeamID()
	}
	for name, values := range backend.ComposeHeaders(token, teamID) {
		req.Header[name] = values
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return &domain.APIError{Message: "gateway unreachable", Err: err}
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return &domain.APIError{Message: "failed to read response", Err: err}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := &domain.APIError{
			Status:  resp.StatusCode,
			Message: fmt.Sprintf("HTTP %d: %s", resp.StatusCode, http.StatusText(resp.StatusCode)),
		}
		var envelope struct {
			Error string `json:"error"`
		}
		if json.Unmarshal(data, &envelope) == nil && envelope.Error != "" {
			apiErr.Message = envelope.Error
			apiErr.Payload = json.RawMessage(data)
		}
		return apiErr
	}

	if out == nil {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return &domain.APIError{
			Status:  resp.StatusCode,
			Message: "unexpected response format",
			Err:     err,
		}
	}
	return nil
}

package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/aidar/agentbox-gateway/internal/domain"
)

// Client talks to the backend API. It issues exactly one upstream call
// per operation: no retries, no caching.
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     *slog.Logger
}

// NewClient creates a backend client for the given base URL
func NewClient(baseURL string, timeout time.Duration, logger *slog.Logger) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		logger: logger,
	}
}

// Forward relays a request to the backend as-is: composed credential
// headers, re-serialized JSON body, one upstream call. The caller owns
// the response body. A transport failure is returned as *domain.APIError
// with Status 0 so it never leaks upstream details to the client.
func (c *Client) Forward(ctx context.Context, method, endpoint string, params url.Values, body []byte, token, teamID string) (*http.Response, error) {
	target := BuildURL(c.baseURL, endpoint, params)

	var reader io.Reader
	if len(body) > 0 {
		reader = bytes.NewReader(body)
	}
	req, err := http.NewRequestWithContext(ctx, method, target, reader)
	if err != nil {
		return nil, &domain.APIError{Message: "failed to build request", Err: err}
	}

	req.Header.Set("Content-Type", "application/json")
	for name, values := range ComposeHeaders(token, teamID) {
		req.Header[name] = values
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &domain.APIError{Message: "backend unreachable", Err: err}
	}
	return resp, nil
}

// do issues a JSON request and decodes a 2xx response into out.
// Non-2xx responses become *domain.APIError carrying the backend's
// message field when the error body is parseable.
func (c *Client) do(ctx context.Context, method, endpoint string, params url.Values, body any, token, teamID string, out any) error {
	var payload []byte
	if body != nil {
		var err error
		payload, err = json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal request body: %w", err)
		}
	}

	resp, err := c.Forward(ctx, method, endpoint, params, payload, token, teamID)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return &domain.APIError{Message: "failed to read response", Err: err}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return apiErrorFromResponse(resp.StatusCode, data)
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

// apiErrorFromResponse extracts the backend's message field from an error
// body, falling back to the standard status text when the body has none
func apiErrorFromResponse(status int, body []byte) *domain.APIError {
	apiErr := &domain.APIError{
		Status:  status,
		Message: fmt.Sprintf("HTTP %d: %s", status, http.StatusText(status)),
	}
	var parsed struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal(body, &parsed); err == nil {
		apiErr.Payload = json.RawMessage(body)
		if parsed.Message != "" {
			apiErr.Message = parsed.Message
		}
	}
	return apiErr
}

// SignIn authenticates a user and returns the token response
func (c *Client) SignIn(ctx context.Context, email, password string) (*domain.AccessTokenResponse, error) {
	var resp domain.AccessTokenResponse
	body := map[string]string{"email": email, "password": password}
	if err := c.do(ctx, http.MethodPost, EndpointSignIn, nil, body, "", "", &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// SignUp registers a new user. Registration success does not authenticate:
// the caller still has to sign in explicitly.
func (c *Client) SignUp(ctx context.Context, email, password string) error {
	body := map[string]string{"email": email, "password": password}
	return c.do(ctx, http.MethodPost, EndpointSignUp, nil, body, "", "", nil)
}

// RefreshToken exchanges a refresh token for a new token response
func (c *Client) RefreshToken(ctx context.Context, refreshToken string) (*domain.AccessTokenResponse, error) {
	var resp domain.AccessTokenResponse
	body := map[string]string{"refresh_token": refreshToken}
	if err := c.do(ctx, http.MethodPost, EndpointRefreshToken, nil, body, "", "", &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// ForgotPassword asks the backend to start a password reset for email
func (c *Client) ForgotPassword(ctx context.Context, email string) error {
	body := map[string]string{"email": email}
	return c.do(ctx, http.MethodPost, EndpointForgotPassword, nil, body, "", "", nil)
}

// ResetPassword completes a password reset with the emailed token
func (c *Client) ResetPassword(ctx context.Context, token, password string) error {
	body := map[string]string{"token": token, "password": password}
	return c.do(ctx, http.MethodPost, EndpointResetPassword, nil, body, "", "", nil)
}

// UpdatePassword changes the password of the authenticated user
func (c *Client) UpdatePassword(ctx context.Context, token, currentPassword, newPassword string) error {
	body := map[string]string{
		"currentPassword": currentPassword,
		"newPassword":     newPassword,
	}
	return c.do(ctx, http.MethodPut, EndpointUpdatePassword, nil, body, token, "", nil)
}

// GetUserTeams returns the teams the user belongs to. Doubles as the
// liveness probe for a stored token during session restore.
func (c *Client) GetUserTeams(ctx context.Context, token, userID string) ([]domain.Team, error) {
	var teams []domain.Team
	params := url.Values{"user_id": {userID}}
	if err := c.do(ctx, http.MethodGet, EndpointUserTeams, params, nil, token, "", &teams); err != nil {
		return nil, err
	}
	return teams, nil
}

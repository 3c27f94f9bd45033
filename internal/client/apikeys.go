package client

import (
	"context"
	"net/http"

	"github.com/aidar/agentbox-gateway/internal/domain"
)

// APIKeys wraps the API key endpoints of the gateway
type APIKeys struct {
	c *Client
}

// APIKeys returns the API key client
func (c *Client) APIKeys() *APIKeys {
	return &APIKeys{c: c}
}

// List returns the API keys of the active team
func (k *APIKeys) List(ctx context.Context) ([]domain.APIKey, error) {
	var keys []domain.APIKey
	if err := k.c.request(ctx, http.MethodGet, "/api/proxy/api-keys", nil, nil, true, &keys); err != nil {
		return nil, err
	}
	return keys, nil
}

// Create creates a named API key in the active team
func (k *APIKeys) Create(ctx context.Context, name string) (*domain.APIKey, error) {
	var key domain.APIKey
	body := map[string]string{"name": name}
	if err := k.c.request(ctx, http.MethodPost, "/api/proxy/api-keys", nil, body, true, &key); err != nil {
		return nil, err
	}
	return &key, nil
}

// Update renames an API key
func (k *APIKeys) Update(ctx context.Context, keyID, name string) (*domain.APIKey, error) {
	var key domain.APIKey
	body := map[string]string{"name": name}
	if err := k.c.request(ctx, http.MethodPatch, "/api/proxy/api-keys/"+keyID, nil, body, true, &key); err != nil {
		return nil, err
	}
	return &key, nil
}

// Delete removes an API key
func (k *APIKeys) Delete(ctx context.Context, keyID string) error {
	return k.c.request(ctx, http.MethodDelete, "/api/proxy/api-keys/"+keyID, nil, nil, true, nil)
}

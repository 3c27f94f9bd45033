package client

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aidar/agentbox-gateway/internal/backend"
	"github.com/aidar/agentbox-gateway/internal/domain"
	"github.com/aidar/agentbox-gateway/internal/service"
	"github.com/aidar/agentbox-gateway/internal/session"
	"github.com/aidar/agentbox-gateway/internal/storage"
)

// clientEnv bundles a typed client against a fake gateway server
type clientEnv struct {
	client   *Client
	sessions *session.Store
	gateway  *httptest.Server
	last     atomic.Pointer[http.Request]
}

func newClientEnv(t *testing.T, handler http.HandlerFunc) *clientEnv {
	t.Helper()

	env := &clientEnv{}
	env.gateway = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		env.last.Store(r.Clone(r.Context()))
		handler(w, r)
	}))
	t.Cleanup(env.gateway.Close)

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	env.sessions = session.New(storage.NewMemoryStore())
	teams := service.NewTeamService(env.sessions, service.RetainSavedTeam, logger)
	env.client = New(env.gateway.URL, env.sessions, teams)
	return env
}

func (e *clientEnv) storeSession(t *testing.T, token string) {
	t.Helper()
	require.NoError(t, e.sessions.Save(&domain.Session{
		AccessToken: token,
		ExpiresAt:   time.Now().Add(time.Hour).Unix(),
		User:        domain.UserProfile{ID: "user-1", Email: "u@x.com"},
	}))
}

func okJSON(body string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(body))
	}
}

// Credentials must be read at call time: a login or team switch between
// two calls shows up on the second call
func TestClient_CredentialsAttachedAtCallTime(t *testing.T) {
	env := newClientEnv(t, okJSON(`[]`))

	_, err := env.client.APIKeys().List(context.Background())
	require.NoError(t, err)

	first := env.last.Load()
	require.NotNil(t, first)
	_, tokenSent := first.Header[backend.HeaderSupabaseToken]
	_, teamSent := first.Header[backend.HeaderSupabaseTeam]
	assert.False(t, tokenSent, "no token header before login")
	assert.False(t, teamSent, "no team header before a team is selected")

	env.storeSession(t, "tok-after-login")
	require.NoError(t, env.sessions.SetActiveTeamID("team-1"))

	_, err = env.client.APIKeys().List(context.Background())
	require.NoError(t, err)

	second := env.last.Load()
	require.NotNil(t, second)
	assert.Equal(t, "tok-after-login", second.Header.Get(backend.HeaderSupabaseToken))
	assert.Equal(t, "team-1", second.Header.Get(backend.HeaderSupabaseTeam))
}

func TestClient_ErrorEnvelopeBecomesAPIError(t *testing.T) {
	env := newClientEnv(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"error":"Team ID is required"}`))
	})

	_, err := env.client.Sandboxes().Running(context.Background())

	var apiErr *domain.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusBadRequest, apiErr.Status)
	assert.Equal(t, "Team ID is required", apiErr.Message)
}

func TestClient_GatewayUnreachable(t *testing.T) {
	env := newClientEnv(t, okJSON(`[]`))
	env.gateway.Close()

	_, err := env.client.APIKeys().List(context.Background())

	var apiErr *domain.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.True(t, apiErr.IsNetwork())
}

func TestTeams_CreateOmitsTeamHeader(t *testing.T) {
	env := newClientEnv(t, okJSON(`{"id":"team-9","name":"New Team"}`))
	env.storeSession(t, "tok-123")
	require.NoError(t, env.sessions.SetActiveTeamID("team-1"))

	team, err := env.client.Teams().Create(context.Background(), "New Team")
	require.NoError(t, err)
	assert.Equal(t, "team-9", team.ID)

	sent := env.last.Load()
	require.NotNil(t, sent)
	assert.Equal(t, "/api/proxy/team", sent.URL.Path)
	_, teamSent := sent.Header[backend.HeaderSupabaseTeam]
	assert.False(t, teamSent, "creating a team must not reference the current team")
}

func TestTeams_MembersComposesProfilesAndRoles(t *testing.T) {
	env := newClientEnv(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		switch r.URL.Path {
		case "/api/proxy/user-team-by-team":
			assert.Equal(t, "team-1", r.URL.Query().Get("team_id"))
			_, _ = w.Write([]byte(`[
				{"id": 11, "user_id": "user-1", "team_id": "team-1", "is_default": true},
				{"id": 12, "user_id": "user-2", "team_id": "team-1", "edges": {"role": "admin"}},
				{"id": 13, "user_id": "user-3", "team_id": "team-1"}
			]`))
		case "/api/proxy/user-by-ids":
			assert.Equal(t, "user-1,user-2,user-3", r.URL.Query().Get("user_ids"))
			_, _ = w.Write([]byte(`[
				{"id": "user-1", "email": "owner@x.com"},
				{"id": "user-2", "email": "admin@x.com"}
			]`))
		default:
			t.Errorf("unexpected gateway path %s", r.URL.Path)
		}
	})
	env.storeSession(t, "tok-123")

	members, err := env.client.Teams().Members(context.Background(),
		domain.Team{ID: "team-1", Email: "owner@x.com"})
	require.NoError(t, err)
	require.Len(t, members, 3)

	assert.Equal(t, "11", members[0].ID)
	assert.Equal(t, domain.RoleOwner, members[0].Role)
	assert.Equal(t, "owner@x.com", members[0].User.Email)

	assert.Equal(t, domain.RoleAdmin, members[1].Role)

	// user-3 has no profile in the lookup response
	assert.Equal(t, domain.RoleMember, members[2].Role)
	assert.Equal(t, "Unknown", members[2].User.Email)
	assert.Equal(t, "user-3", members[2].User.ID)
}

func TestTeams_MembersEmptyTeam(t *testing.T) {
	calls := 0
	env := newClientEnv(t, func(w http.ResponseWriter, r *http.Request) {
		calls++
		okJSON(`[]`)(w, r)
	})
	env.storeSession(t, "tok-123")

	members, err := env.client.Teams().Members(context.Background(), domain.Team{ID: "team-1"})
	require.NoError(t, err)
	assert.Empty(t, members)
	assert.Equal(t, 1, calls, "no profile lookup for an empty membership list")
}

func TestSandboxes_RunningFilter(t *testing.T) {
	env := newClientEnv(t, okJSON(`[{"sandboxID":"sbx-1","state":"running"}]`))
	env.storeSession(t, "tok-123")
	require.NoError(t, env.sessions.SetActiveTeamID("team-1"))

	sandboxes, err := env.client.Sandboxes().Running(context.Background())
	require.NoError(t, err)
	require.Len(t, sandboxes, 1)
	assert.Equal(t, "sbx-1", sandboxes[0].SandboxID)

	sent := env.last.Load()
	require.NotNil(t, sent)
	assert.Equal(t, "running", sent.URL.Query().Get("state"))
}

func TestFetchSettings_FansOut(t *testing.T) {
	env := newClientEnv(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		switch r.URL.Path {
		case "/api/proxy/api-keys":
			_, _ = w.Write([]byte(`[{"id":"key-1","name":"default"}]`))
		case "/api/proxy/user-team-by-team":
			_, _ = w.Write([]byte(`[{"id": 11, "user_id": "user-1", "team_id": "team-1", "is_default": true}]`))
		case "/api/proxy/user-by-ids":
			_, _ = w.Write([]byte(`[{"id": "user-1", "email": "owner@x.com"}]`))
		default:
			t.Errorf("unexpected gateway path %s", r.URL.Path)
		}
	})
	env.storeSession(t, "tok-123")
	require.NoError(t, env.sessions.SetActiveTeamID("team-1"))

	page, err := env.client.FetchSettings(context.Background(), domain.Team{ID: "team-1", Email: "owner@x.com"})
	require.NoError(t, err)

	require.Len(t, page.APIKeys, 1)
	assert.Equal(t, "key-1", page.APIKeys[0].ID)
	require.Len(t, page.Members, 1)
	assert.Equal(t, domain.RoleOwner, page.Members[0].Role)
}

func TestFetchSettings_RequiresTeam(t *testing.T) {
	env := newClientEnv(t, okJSON(`[]`))

	_, err := env.client.FetchSettings(context.Background(), domain.Team{})
	assert.ErrorIs(t, err, domain.ErrNoActiveTeam)
}

func TestFetchSettings_FirstErrorWins(t *testing.T) {
	env := newClientEnv(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/api/proxy/api-keys" {
			w.WriteHeader(http.StatusForbidden)
			_, _ = w.Write([]byte(`{"error":"Team quota exceeded"}`))
			return
		}
		okJSON(`[]`)(w, r)
	})
	env.storeSession(t, "tok-123")
	require.NoError(t, env.sessions.SetActiveTeamID("team-1"))

	_, err := env.client.FetchSettings(context.Background(), domain.Team{ID: "team-1"})

	var apiErr *domain.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusForbidden, apiErr.Status)
}

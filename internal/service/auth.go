package service

import (
	"context"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/aidar/agentbox-gateway/internal/backend"
	"github.com/aidar/agentbox-gateway/internal/domain"
	"github.com/aidar/agentbox-gateway/internal/session"
)

// State represents the auth session lifecycle state
type State int

// Session lifecycle states. A fresh service starts in StateRestoring
// until Restore has run; failures collapse into StateUnauthenticated
// with the cause returned to the caller.
const (
	StateRestoring State = iota
	StateUnauthenticated
	StateAuthenticated
)

// String returns a readable state name
func (s State) String() string {
	switch s {
	case StateRestoring:
		return "restoring"
	case StateUnauthenticated:
		return "unauthenticated"
	case StateAuthenticated:
		return "authenticated"
	default:
		return "unknown"
	}
}

// AuthService owns the session lifecycle: restore on startup, login,
// registration, logout, refresh and the password pass-through operations.
// It is the only writer of the session keys in the underlying store.
type AuthService struct {
	backend  *backend.Client
	sessions *session.Store
	teams    *TeamService
	logger   *slog.Logger

	mu         sync.RWMutex
	state      State
	user       *domain.UserProfile
	teamList   []domain.Team
	activeTeam *domain.Team
}

// NewAuthService creates an AuthService in the Restoring state
func NewAuthService(be *backend.Client, sessions *session.Store, teams *TeamService, logger *slog.Logger) *AuthService {
	return &AuthService{
		backend:  be,
		sessions: sessions,
		teams:    teams,
		logger:   logger,
		state:    StateRestoring,
	}
}

// State returns the current lifecycle state
func (s *AuthService) State() State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

// CurrentUser returns the authenticated user profile, or nil
func (s *AuthService) CurrentUser() *domain.UserProfile {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.user == nil {
		return nil
	}
	user := *s.user
	return &user
}

// Teams returns the cached team list of the authenticated user
func (s *AuthService) Teams() []domain.Team {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]domain.Team(nil), s.teamList...)
}

// ActiveTeam returns the resolved active team, or nil when the user
// has no teams
func (s *AuthService) ActiveTeam() *domain.Team {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.activeTeam == nil {
		return nil
	}
	team := *s.activeTeam
	return &team
}

// Restore recovers the session after a process restart: the stored
// session must exist, be unexpired and pass a live backend probe
// (fetching the user's teams with the stored token). Any failure clears
// the store and lands in Unauthenticated silently - a stale session is
// not a user-facing error.
func (s *AuthService) Restore(ctx context.Context) error {
	sess, err := s.sessions.Load()
	if err != nil || sess == nil {
		s.becomeUnauthenticated(false)
		return nil
	}

	if sess.Expired(time.Now()) {
		s.logger.Info("stored session expired, clearing", "expires_at", sess.ExpiresAt)
		s.becomeUnauthenticated(false)
		return nil
	}

	// The probe is sequenced after the user id is known: it doubles as
	// the team fetch, so there is nothing to run in parallel here
	teams, err := s.backend.GetUserTeams(ctx, sess.AccessToken, sess.User.ID)
	if err != nil {
		s.logger.Info("session probe failed, clearing stored session", "error", err)
		s.becomeUnauthenticated(false)
		return nil
	}

	s.mu.Lock()
	s.state = StateAuthenticated
	user := sess.User
	s.user = &user
	s.teamList = teams
	s.activeTeam = s.teams.ResolveActiveTeam(teams)
	s.mu.Unlock()

	s.logger.Info("session restored", "user_id", sess.User.ID, "teams", len(teams))
	return nil
}

// Login authenticates with email and password. The backend response is
// validated for all required fields before anything is persisted; a
// rejected response leaves the store untouched. A failure after the
// session was written rolls the store back to empty. There is no
// fallback to mock data on any path.
func (s *AuthService) Login(ctx context.Context, email, password string) error {
	resp, err := s.backend.SignIn(ctx, email, password)
	if err != nil {
		return err
	}

	validation := ValidateLoginResponse(resp)
	for _, warning := range validation.Warnings {
		s.logger.Warn("login response warning", "warning", warning)
	}
	if !validation.Valid {
		return &domain.ValidationError{Problems: validation.Errors}
	}

	sess := sessionFromResponse(resp, email)
	if err := s.sessions.Save(sess); err != nil {
		s.sessions.Clear()
		return err
	}

	// Team fetch is sequenced after the user id is known. If it fails,
	// login fails as a whole and the just-written session is discarded.
	teams, err := s.backend.GetUserTeams(ctx, sess.AccessToken, sess.User.ID)
	if err != nil {
		s.sessions.Clear()
		s.becomeUnauthenticated(false)
		return err
	}

	s.mu.Lock()
	s.state = StateAuthenticated
	user := sess.User
	s.user = &user
	s.teamList = teams
	s.activeTeam = s.teams.ResolveActiveTeam(teams)
	s.mu.Unlock()

	s.logger.Info("login succeeded", "user_id", sess.User.ID, "teams", len(teams))
	return nil
}

// Register creates a new account. Success never authenticates: the user
// still has to log in explicitly. Backend failures surface unchanged.
func (s *AuthService) Register(ctx context.Context, email, password string) error {
	return s.backend.SignUp(ctx, email, password)
}

// Logout drops the session and the active team selection. It always
// succeeds and never returns an error.
func (s *AuthService) Logout() {
	s.becomeUnauthenticated(true)
	s.logger.Info("logged out")
}

// RefreshSession exchanges the stored refresh token for a new session.
// A backend rejection is treated as an implicit logout and the error is
// re-raised to the caller.
func (s *AuthService) RefreshSession(ctx context.Context) error {
	sess, err := s.sessions.Load()
	if err != nil || sess == nil {
		return domain.ErrNoSession
	}
	if !sess.HasRefreshToken() {
		return domain.ErrNoRefreshToken
	}

	resp, err := s.backend.RefreshToken(ctx, sess.RefreshToken)
	if err != nil {
		s.Logout()
		return err
	}

	refreshed := sessionFromResponse(resp, sess.User.Email)
	if refreshed.User.ID == "" {
		// Refresh responses may omit the user object; keep the cached profile
		refreshed.User = sess.User
	}
	if refreshed.ExpiresAt == 0 {
		// Some refresh responses carry no expires_at; fall back to the
		// exp claim of the token itself
		refreshed.ExpiresAt = tokenExpiry(refreshed.AccessToken)
	}

	if err := s.sessions.Save(refreshed); err != nil {
		return err
	}

	s.mu.Lock()
	user := refreshed.User
	s.user = &user
	s.mu.Unlock()
	return nil
}

// UpdatePassword is a pass-through to the backend; session state is not
// touched on success and failures propagate as-is
func (s *AuthService) UpdatePassword(ctx context.Context, currentPassword, newPassword string) error {
	token := s.sessions.AccessToken()
	if token == "" {
		return domain.ErrNotAuthenticated
	}
	return s.backend.UpdatePassword(ctx, token, currentPassword, newPassword)
}

// ForgotPassword is a pass-through to the backend
func (s *AuthService) ForgotPassword(ctx context.Context, email string) error {
	return s.backend.ForgotPassword(ctx, email)
}

// ResetPassword is a pass-through to the backend
func (s *AuthService) ResetPassword(ctx context.Context, token, newPassword string) error {
	return s.backend.ResetPassword(ctx, token, newPassword)
}

// becomeUnauthenticated clears in-memory state and the stored session.
// The active team selection is only dropped on explicit logout.
func (s *AuthService) becomeUnauthenticated(dropTeamSelection bool) {
	s.sessions.Clear()
	if dropTeamSelection {
		s.sessions.ClearActiveTeamID()
	}

	s.mu.Lock()
	s.state = StateUnauthenticated
	s.user = nil
	s.teamList = nil
	s.activeTeam = nil
	s.mu.Unlock()
}

// sessionFromResponse builds a Session from a validated token response.
// The "None" refresh token sentinel is translated to absence here so it
// never reaches internal state.
func sessionFromResponse(resp *domain.AccessTokenResponse, fallbackEmail string) *domain.Session {
	refresh := resp.RefreshToken
	if strings.EqualFold(refresh, domain.RefreshTokenSentinel) {
		refresh = ""
	}
	return &domain.Session{
		AccessToken:  resp.AccessToken,
		RefreshToken: refresh,
		ExpiresAt:    resp.ExpiresAt,
		User:         domain.ProfileFromUser(resp.User, fallbackEmail),
	}
}

// tokenExpiry extracts the exp claim from an access token without
// verifying the signature. The gateway never trusts the token for
// authorization, it only needs the expiry hint; verification is the
// backend's job.
func tokenExpiry(token string) int64 {
	parsed, _, err := jwt.NewParser().ParseUnverified(token, jwt.MapClaims{})
	if err != nil {
		return 0
	}
	exp, err := parsed.Claims.GetExpirationTime()
	if err != nil || exp == nil {
		return 0
	}
	return exp.Unix()
}

package backend

import (
	"net/url"
	"strings"
)

// Backend resource endpoints
const (
	EndpointSignIn         = "/user/sign-in"
	EndpointSignUp         = "/user/sign-up"
	EndpointRefreshToken   = "/user/refresh-token"
	EndpointForgotPassword = "/user/forgot-password"
	EndpointResetPassword  = "/user/reset-password"
	EndpointUpdatePassword = "/user/update-password"

	EndpointAccessToken    = "/access-token"
	EndpointUserTeams      = "/user-teams"
	EndpointTeam           = "/team"
	EndpointUserTeam       = "/user-team"
	EndpointUserTeamByTeam = "/user-team-by-team"
	EndpointUserByIDs      = "/user-by-ids"

	EndpointSandboxes        = "/sandboxes"
	EndpointTemplates        = "/templates"
	EndpointDefaultTemplates = "/default-templates"
	EndpointAPIKeys          = "/api-keys"
)

// EndpointAPIKey returns the endpoint for a single API key
func EndpointAPIKey(keyID string) string {
	return EndpointAPIKeys + "/" + keyID
}

// EndpointRemoveTeamMember returns the endpoint for removing a user from a team
func EndpointRemoveTeamMember(userID, teamID string) string {
	return EndpointUserTeam + "/" + userID + "/" + teamID
}

// BuildURL joins the backend base URL with an endpoint and optional query
// parameters. A missing leading slash on the endpoint is tolerated.
func BuildURL(base, endpoint string, params url.Values) string {
	if !strings.HasPrefix(endpoint, "/") {
		endpoint = "/" + endpoint
	}
	target := strings.TrimSuffix(base, "/") + endpoint
	if len(params) > 0 {
		target += "?" + params.Encode()
	}
	return target
}

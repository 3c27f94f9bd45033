package backend

import "net/http"

// Header names the backend expects on every authenticated request
const (
	HeaderSupabaseToken = "X-Supabase-Token"
	HeaderSupabaseTeam  = "X-Supabase-Team"
)

// ComposeHeaders builds the credential header set for a backend request.
// Absent inputs simply produce a smaller set: the team header is omitted
// entirely when teamID is empty, never sent as an empty string, and the
// token header is omitted when token is empty.
func ComposeHeaders(token, teamID string) http.Header {
	headers := http.Header{}
	if token != "" {
		headers.Set(HeaderSupabaseToken, token)
	}
	if teamID != "" {
		headers.Set(HeaderSupabaseTeam, teamID)
	}
	return headers
}

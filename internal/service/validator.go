package service

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/aidar/agentbox-gateway/internal/domain"
)

// requiredLoginFields are the nine fields every sign-in response must carry
var requiredLoginFields = []string{
	"access_token",
	"expires_at",
	"expires_in",
	"provider_refresh_token",
	"provider_token",
	"refresh_token",
	"token_type",
	"user",
	"weak_password",
}

// minTokenLength below which a token is suspicious but not invalid
const minTokenLength = 10

// ValidationResult holds the outcome of a login response validation.
// Warnings never make the result invalid.
type ValidationResult struct {
	Valid    bool
	Errors   []string
	Warnings []string
}

// ValidateLoginResponse checks that a backend sign-in response has every
// required field with the right type and an unexpired token. Each
// missing or malformed field is reported exactly once.
func ValidateLoginResponse(resp *domain.AccessTokenResponse) ValidationResult {
	var result ValidationResult

	for _, field := range requiredLoginFields {
		if _, ok := resp.Raw[field]; !ok {
			result.Errors = append(result.Errors, "missing required field: "+field)
		}
	}

	for _, field := range []string{"access_token", "refresh_token", "token_type"} {
		if raw, ok := resp.Raw[field]; ok && !isJSONString(raw) {
			result.Errors = append(result.Errors, field+" must be a string")
		}
	}
	for _, field := range []string{"expires_at", "expires_in"} {
		if raw, ok := resp.Raw[field]; ok && !isJSONNumber(raw) {
			result.Errors = append(result.Errors, field+" must be a number")
		}
	}
	for _, field := range []string{"user", "weak_password"} {
		if raw, ok := resp.Raw[field]; ok && !isJSONObject(raw) {
			result.Errors = append(result.Errors, field+" must be an object")
		}
	}

	if resp.ExpiresAt != 0 && resp.ExpiresAt <= time.Now().Unix() {
		result.Errors = append(result.Errors, fmt.Sprintf("token already expired at %d", resp.ExpiresAt))
	}

	if strings.EqualFold(resp.RefreshToken, domain.RefreshTokenSentinel) {
		result.Warnings = append(result.Warnings, `refresh_token is "None", token refresh is unavailable`)
	} else if resp.RefreshToken != "" && len(resp.RefreshToken) < minTokenLength {
		result.Warnings = append(result.Warnings, "refresh_token looks too short")
	}
	if resp.AccessToken != "" && len(resp.AccessToken) < minTokenLength {
		result.Warnings = append(result.Warnings, "access_token looks too short")
	}
	if resp.User != nil {
		if _, ok := resp.User["id"]; !ok {
			result.Warnings = append(result.Warnings, "user object has no id")
		}
		if _, ok := resp.User["email"]; !ok {
			result.Warnings = append(result.Warnings, "user object has no email")
		}
	}

	result.Valid = len(result.Errors) == 0
	return result
}

func isJSONString(raw json.RawMessage) bool {
	var s string
	return json.Unmarshal(raw, &s) == nil
}

func isJSONNumber(raw json.RawMessage) bool {
	var n float64
	return json.Unmarshal(raw, &n) == nil
}

func isJSONObject(raw json.RawMessage) bool {
	trimmed := strings.TrimSpace(string(raw))
	// null is tolerated: the backend sends weak_password as null
	// for accounts without the weakness flag
	return trimmed == "null" || strings.HasPrefix(trimmed, "{")
}

package handler

import (
	"errors"
	"net/http"

	"github.com/go-chi/render"

	"github.com/aidar/agentbox-gateway/internal/domain"
)

// Сообщения об ошибках, которые прокси отдает клиенту.
// Внутренние детали (текст исключения, stack trace) никогда не утекают.
const (
	MsgTokenRequired = "Authentication token is required"
	MsgTeamRequired  = "Team ID is required"
	MsgInternalError = "Internal server error"
	MsgInvalidBody   = "Invalid request body"
	MsgNotAuthd      = "Not authenticated"
	MsgNoActiveTeam  = "No active team selected"
)

// ErrorResponse представляет единый конверт ошибки прокси
type ErrorResponse struct {
	Error string `json:"error"`
}

// RespondWithError отправляет ответ с ошибкой в едином конверте
func RespondWithError(w http.ResponseWriter, r *http.Request, statusCode int, message string) {
	render.Status(r, statusCode)
	render.JSON(w, r, ErrorResponse{Error: message})
}

// HandleError преобразует доменные ошибки в HTTP ответы
func HandleError(w http.ResponseWriter, r *http.Request, err error) {
	var validationErr *domain.ValidationError
	var apiErr *domain.APIError

	switch {
	case errors.As(err, &validationErr):
		RespondWithError(w, r, http.StatusBadRequest, validationErr.Error())
	case errors.As(err, &apiErr):
		if apiErr.IsNetwork() {
			// Сетевые детали клиенту не передаются
			RespondWithError(w, r, http.StatusInternalServerError, MsgInternalError)
			return
		}
		RespondWithError(w, r, apiErr.Status, apiErr.Message)
	case errors.Is(err, domain.ErrNotAuthenticated), errors.Is(err, domain.ErrNoSession):
		RespondWithError(w, r, http.StatusUnauthorized, MsgNotAuthd)
	case errors.Is(err, domain.ErrNoActiveTeam):
		RespondWithError(w, r, http.StatusBadRequest, MsgNoActiveTeam)
	default:
		RespondWithError(w, r, http.StatusInternalServerError, MsgInternalError)
	}
}

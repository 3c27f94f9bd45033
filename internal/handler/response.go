package handler

import (
	"net/http"

	"github.com/go-chi/render"
)

// RespondWithJSON отправляет JSON ответ с указанным статус кодом
func RespondWithJSON(w http.ResponseWriter, r *http.Request, statusCode int, data any) {
	render.Status(r, statusCode)
	render.JSON(w, r, data)
}

// RespondWithMessage отправляет синтетический успешный ответ
// в конверте {"message": ...}. Используется когда backend ответил
// успехом без читаемого JSON тела.
func RespondWithMessage(w http.ResponseWriter, r *http.Request, message string) {
	RespondWithJSON(w, r, http.StatusOK, map[string]string{"message": message})
}

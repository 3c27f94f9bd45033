package handler

import (
	"net/http"
	"net/url"

	"github.com/aidar/agentbox-gateway/internal/backend"
	"github.com/aidar/agentbox-gateway/internal/middleware"
)

// TemplateHandler обрабатывает эндпоинты шаблонов
type TemplateHandler struct {
	fwd *Forwarder
}

// NewTemplateHandler создает новый TemplateHandler
func NewTemplateHandler(fwd *Forwarder) *TemplateHandler {
	return &TemplateHandler{fwd: fwd}
}

// List обрабатывает GET /api/proxy/templates.
// С параметром teamID запрашиваются шаблоны команды, без него -
// шаблоны по умолчанию. Заголовок команды пересылается если есть.
func (h *TemplateHandler) List(w http.ResponseWriter, r *http.Request) {
	teamID := r.URL.Query().Get("teamID")

	endpoint := backend.EndpointDefaultTemplates
	var params url.Values
	if teamID != "" {
		endpoint = backend.EndpointTemplates
		params = url.Values{"teamID": {teamID}}
	}

	h.fwd.relay(w, r, relayRequest{
		method:     http.MethodGet,
		endpoint:   endpoint,
		params:     params,
		token:      middleware.TokenFromContext(r.Context()),
		teamID:     r.Header.Get(backend.HeaderSupabaseTeam),
		successMsg: "Templates fetch succeeded",
		errorMsg:   "Failed to fetch templates",
	})
}

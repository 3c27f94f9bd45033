package handler

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/url"

	"github.com/aidar/agentbox-gateway/internal/backend"
)

// Forwarder содержит общие зависимости прокси-обработчиков и реализует
// единый шаблон пересылки: ровно один запрос к backend на входящий
// запрос, без повторов, нормализованный конверт ответа.
type Forwarder struct {
	backend *backend.Client
	logger  *slog.Logger
}

// NewForwarder создает новый Forwarder
func NewForwarder(be *backend.Client, logger *slog.Logger) *Forwarder {
	return &Forwarder{
		backend: be,
		logger:  logger,
	}
}

// relayRequest описывает один пересылаемый запрос
type relayRequest struct {
	method   string
	endpoint string
	params   url.Values
	body     []byte
	token    string
	teamID   string

	// successMsg подставляется когда backend ответил успехом
	// с пустым или нечитаемым телом (например 204 на удаление)
	successMsg string

	// errorMsg подставляется когда тело ошибки backend не содержит message
	errorMsg string
}

// relay выполняет пересылку и пишет нормализованный ответ клиенту.
// Все предусловия (токен, команда, обязательные поля) должны быть
// проверены вызывающим обработчиком до вызова relay.
func (f *Forwarder) relay(w http.ResponseWriter, r *http.Request, req relayRequest) {
	f.logger.Debug("proxying request",
		"method", req.method,
		"endpoint", req.endpoint,
		"team", req.teamID,
	)

	resp, err := f.backend.Forward(r.Context(), req.method, req.endpoint, req.params, req.body, req.token, req.teamID)
	if err != nil {
		// Транспортная ошибка или ошибка сборки запроса:
		// детали клиенту не утекают
		f.logger.Error("proxy request failed", "endpoint", req.endpoint, "error", err)
		HandleError(w, r, err)
		return
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		f.logger.Error("failed to read backend response", "endpoint", req.endpoint, "error", err)
		RespondWithError(w, r, http.StatusInternalServerError, MsgInternalError)
		return
	}

	f.logger.Debug("backend responded", "endpoint", req.endpoint, "status", resp.StatusCode)

	if resp.StatusCode >= 200 && resp.StatusCode <= 299 {
		var payload any
		if len(data) == 0 || json.Unmarshal(data, &payload) != nil {
			// Успех с пустым телом (204 и подобные) превращается
			// в синтетический успешный ответ
			RespondWithMessage(w, r, req.successMsg)
			return
		}
		RespondWithJSON(w, r, http.StatusOK, payload)
		return
	}

	// Ошибка backend: пробуем вытащить message, иначе общий fallback;
	// статус backend сохраняется
	message := req.errorMsg
	var parsed struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal(data, &parsed); err == nil && parsed.Message != "" {
		message = parsed.Message
	}
	f.logger.Warn("backend returned error",
		"endpoint", req.endpoint,
		"status", resp.StatusCode,
		"message", message,
	)
	RespondWithError(w, r, resp.StatusCode, message)
}

// decodeBody читает и декодирует JSON тело запроса в карту.
// Возвращает исходные байты для пересериализации при пересылке.
func decodeBody(r *http.Request) (map[string]any, []byte, error) {
	raw, err := io.ReadAll(r.Body)
	if err != nil {
		return nil, nil, err
	}
	var body map[string]any
	if err := json.Unmarshal(raw, &body); err != nil {
		return nil, nil, err
	}
	return body, raw, nil
}

// stringBodyField возвращает строковое значение поля тела запроса
func stringBodyField(body map[string]any, key string) string {
	value, ok := body[key].(string)
	if !ok {
		return ""
	}
	return value
}

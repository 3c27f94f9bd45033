package integration

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/aidar/agentbox-gateway/internal/app"
	"github.com/aidar/agentbox-gateway/internal/config"
)

// MockBackend имитирует внешний backend API: обработчики настраиваются
// per-route из тестов, обращения подсчитываются
type MockBackend struct {
	Server *httptest.Server

	mu     sync.RWMutex
	routes map[string]http.HandlerFunc
	hits   atomic.Int64
}

// NewMockBackend запускает мок backend сервера
func NewMockBackend(t *testing.T) *MockBackend {
	t.Helper()

	mb := &MockBackend{routes: make(map[string]http.HandlerFunc)}
	mb.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mb.hits.Add(1)

		mb.mu.RLock()
		handler, ok := mb.routes[r.Method+" "+r.URL.Path]
		mb.mu.RUnlock()

		if !ok {
			w.WriteHeader(http.StatusNotFound)
			_, _ = w.Write([]byte(`{"message":"no such endpoint"}`))
			return
		}
		handler(w, r)
	}))
	t.Cleanup(mb.Server.Close)
	return mb
}

// Handle регистрирует обработчик для метода и пути backend
func (mb *MockBackend) Handle(method, path string, handler http.HandlerFunc) {
	mb.mu.Lock()
	defer mb.mu.Unlock()
	mb.routes[method+" "+path] = handler
}

// HandleJSON регистрирует обработчик, отвечающий фиксированным JSON
func (mb *MockBackend) HandleJSON(method, path string, status int, body any) {
	mb.Handle(method, path, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_ = json.NewEncoder(w).Encode(body)
	})
}

// Hits возвращает общее число обращений к backend
func (mb *MockBackend) Hits() int64 {
	return mb.hits.Load()
}

// TestEnvironment содержит все ресурсы необходимые для интеграционных тестов
type TestEnvironment struct {
	Backend *MockBackend
	App     *app.App
	BaseURL string
}

// SetupTestEnvironment создает и инициализирует полное тестовое окружение:
// мок backend, приложение поверх него и запущенный HTTP сервер
func SetupTestEnvironment(t *testing.T) *TestEnvironment {
	t.Helper()
	ctx := context.Background()

	backend := NewMockBackend(t)

	// Используем высокий порт для тестов чтобы избежать конфликтов
	testPort := "18082"
	cfg := &config.Config{
		Server: config.ServerConfig{
			Port: testPort,
			Host: "127.0.0.1",
		},
		Backend: config.BackendConfig{
			BaseURL:        backend.Server.URL,
			TimeoutSeconds: 5,
		},
	}

	// Создаем и инициализируем приложение
	application, err := app.New(cfg)
	require.NoError(t, err, "Failed to create application")

	err = application.Initialize(ctx)
	require.NoError(t, err, "Failed to initialize application")

	// Запускаем сервер в фоне
	go func() {
		if err := application.Run(); err != nil && err != http.ErrServerClosed {
			t.Logf("Server error: %v", err)
		}
	}()

	return &TestEnvironment{
		Backend: backend,
		App:     application,
		BaseURL: fmt.Sprintf("http://%s:%s", cfg.Server.Host, testPort),
	}
}

// Cleanup очищает все тестовые ресурсы
func (te *TestEnvironment) Cleanup(t *testing.T) {
	t.Helper()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if te.App != nil {
		_ = te.App.Shutdown(shutdownCtx)
	}
}

// MakeRequest вспомогательная функция для HTTP запросов в тестах
func (te *TestEnvironment) MakeRequest(t *testing.T, method, path string, body io.Reader, token, teamID string) *http.Response {
	t.Helper()

	req, err := http.NewRequest(method, te.BaseURL+path, body)
	require.NoError(t, err, "Failed to create request")

	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("X-Supabase-Token", token)
	}
	if teamID != "" {
		req.Header.Set("X-Supabase-Team", teamID)
	}

	client := &http.Client{
		Timeout: 10 * time.Second,
	}

	resp, err := client.Do(req)
	require.NoError(t, err, "Failed to make request")

	return resp
}

// WaitForHealthCheck ждет пока приложение станет доступным
func (te *TestEnvironment) WaitForHealthCheck(t *testing.T) {
	t.Helper()

	maxRetries := 30
	for i := 0; i < maxRetries; i++ {
		resp, err := http.Get(te.BaseURL + "/health")
		if err == nil && resp.StatusCode == http.StatusOK {
			resp.Body.Close()
			return
		}
		if resp != nil {
			resp.Body.Close()
		}
		time.Sleep(100 * time.Millisecond)
	}

	t.Fatal("Application did not become healthy in time")
}

// DecodeJSON декодирует тело ответа в указанную структуру
func DecodeJSON(t *testing.T, resp *http.Response, out any) {
	t.Helper()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
}

package app

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/aidar/agentbox-gateway/internal/backend"
	"github.com/aidar/agentbox-gateway/internal/config"
	"github.com/aidar/agentbox-gateway/internal/handler"
	"github.com/aidar/agentbox-gateway/internal/middleware"
	"github.com/aidar/agentbox-gateway/internal/session"
	"github.com/aidar/agentbox-gateway/internal/storage"
)

// App представляет приложение со всеми зависимостями
type App struct {
	config   *config.Config
	server   *http.Server
	logger   *slog.Logger
	backend  *backend.Client
	sessions *session.Store
}

// New создает новый экземпляр приложения
func New(cfg *config.Config) (*App, error) {
	// Инициализируем структурированный логгер (JSON формат)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	app := &App{
		config: cfg,
		logger: logger,
	}

	return app, nil
}

// Initialize инициализирует все компоненты приложения
func (a *App) Initialize(ctx context.Context) error {
	// Открываем локальное хранилище сессии
	if err := a.openStorage(); err != nil {
		return fmt.Errorf("failed to open storage: %w", err)
	}

	// Настраиваем HTTP сервер и роутинг
	a.setupServer()

	a.logger.Info("Application initialized successfully")
	return nil
}

// openStorage открывает локальный кэш сессии: файловый по указанному
// пути или in-memory когда путь не задан
func (a *App) openStorage() error {
	var kv storage.Store
	if a.config.Storage.Path != "" {
		fileStore, err := storage.NewFileStore(a.config.Storage.Path)
		if err != nil {
			return err
		}
		kv = fileStore
		a.logger.Info("Using file-backed session storage", "path", a.config.Storage.Path)
	} else {
		kv = storage.NewMemoryStore()
		a.logger.Info("Using in-memory session storage")
	}

	a.sessions = session.New(kv)
	return nil
}

// Sessions возвращает хранилище сессии (используется встраивающим кодом
// и интеграционными тестами)
func (a *App) Sessions() *session.Store {
	return a.sessions
}

// setupServer инициализирует HTTP роутер и обработчики
func (a *App) setupServer() {
	// Клиент внешнего backend API
	a.backend = backend.NewClient(
		a.config.Backend.BaseURL,
		a.config.Backend.GetTimeout(),
		a.logger.With("component", "backend"),
	)

	// Общий шаблон пересылки и обработчики ресурсов
	fwd := handler.NewForwarder(a.backend, a.logger.With("component", "proxy"))
	accessTokenHandler := handler.NewAccessTokenHandler(fwd)
	apiKeyHandler := handler.NewAPIKeyHandler(fwd)
	teamHandler := handler.NewTeamHandler(fwd)
	templateHandler := handler.NewTemplateHandler(fwd)
	userTeamHandler := handler.NewUserTeamHandler(fwd)
	userHandler := handler.NewUserHandler(fwd)
	sandboxHandler := handler.NewSandboxHandler(fwd)

	// Настраиваем роутер
	r := chi.NewRouter()

	// Глобальные middleware (применяются ко всем запросам)
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Logger)
	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.Timeout(60 * time.Second))

	// Health check для мониторинга
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte(`{"status":"ok"}`)); err != nil {
			a.logger.Error("Failed to write health check response", "error", err)
		}
	})

	// Прокси-эндпоинты: все требуют токен сессии, проверка команды
	// и полей выполняется в обработчиках ресурсов
	r.Group(func(r chi.Router) {
		r.Use(middleware.RequireToken)

		r.Route("/api", func(r chi.Router) {
			r.Get("/access-token", accessTokenHandler.Get)
			r.Patch("/access-token", accessTokenHandler.Patch)

			r.Route("/proxy", func(r chi.Router) {
				r.Get("/api-keys", apiKeyHandler.List)
				r.Post("/api-keys", apiKeyHandler.Create)
				r.Patch("/api-keys/{keyID}", apiKeyHandler.Update)
				r.Delete("/api-keys/{keyID}", apiKeyHandler.Delete)

				r.Post("/team", teamHandler.Create)
				r.Get("/templates", templateHandler.List)

				r.Post("/user-team", userTeamHandler.Invite)
				r.Delete("/user-team/{userID}/{teamID}", userTeamHandler.Remove)

				r.Get("/user-by-ids", userHandler.ByIDs)
				r.Get("/user-teams", userHandler.Teams)
				r.Get("/user-team-by-team", userHandler.TeamMembers)

				r.Get("/sandboxes", sandboxHandler.List)
			})
		})
	})

	// Создаем HTTP сервер с настройками таймаутов
	addr := fmt.Sprintf("%s:%s", a.config.Server.Host, a.config.Server.Port)
	a.server = &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	a.logger.Info("HTTP server configured", "addr", addr, "backend", a.config.Backend.BaseURL)
}

// Run запускает HTTP сервер
func (a *App) Run() error {
	a.logger.Info("Starting HTTP server", "addr", a.server.Addr)
	return a.server.ListenAndServe()
}

// Shutdown корректно останавливает приложение
func (a *App) Shutdown(ctx context.Context) error {
	a.logger.Info("Shutting down application")

	// Останавливаем HTTP сервер (ждем завершения текущих запросов)
	if err := a.server.Shutdown(ctx); err != nil {
		return fmt.Errorf("failed to shutdown server: %w", err)
	}

	a.logger.Info("Application stopped gracefully")
	return nil
}

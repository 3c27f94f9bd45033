package config

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// Config содержит всю конфигурацию приложения
type Config struct {
	Server  ServerConfig  // Настройки HTTP сервера
	Backend BackendConfig // Настройки внешнего backend API
	Storage StorageConfig // Настройки локального кэша сессии
}

// ServerConfig содержит настройки HTTP сервера
type ServerConfig struct {
	Port string `envconfig:"SERVER_PORT" default:"3000"`
	Host string `envconfig:"SERVER_HOST" default:"0.0.0.0"`
}

// BackendConfig содержит настройки подключения к backend API.
// Base URL имеет жестко заданный fallback на случай пустого окружения.
type BackendConfig struct {
	BaseURL        string `envconfig:"API_URL" default:"https://api.agentbox.lingyiwanwu.com"`
	TimeoutSeconds int    `envconfig:"BACKEND_TIMEOUT_SECONDS" default:"30"`
}

// GetTimeout возвращает таймаут backend запросов как time.Duration
func (b BackendConfig) GetTimeout() time.Duration {
	return time.Duration(b.TimeoutSeconds) * time.Second
}

// StorageConfig содержит настройки локального хранилища.
// Пустой путь означает in-memory хранилище без персистентности.
type StorageConfig struct {
	Path string `envconfig:"STORAGE_PATH" default:""`
}

// Load читает конфигурацию из переменных окружения
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	return &cfg, nil
}

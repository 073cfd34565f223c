// Package config содержит конфигурацию сервиса заметок.
package config

import (
	"context"
	"fmt"

	"github.com/ilyakaznacheev/cleanenv"
	"go.uber.org/zap"

	"notekeep/pkg/logger"
)

// Константы ошибок и сообщений для конфигурации.
const (
	LogLoadingConfig    = "loading notes service configuration"
	LogConfigLoaded     = "configuration loaded successfully"
	ErrFailedLoadConfig = "failed to load configuration"
)

// Config представляет полную конфигурацию приложения.
type Config struct {
	Storage  StorageConfig  `yaml:"storage"`
	Postgres PostgresConfig `yaml:"postgres"`
	Redis    RedisConfig    `yaml:"redis"`
	HTTP     HTTPConfig     `yaml:"http"`
	Logging  LoggingConfig  `yaml:"logging"`
	Shutdown ShutdownConfig `yaml:"shutdown"`
}

// Load загружает конфигурацию из переменных окружения.
func Load(ctx context.Context) (*Config, error) {
	log := logger.Log(ctx)

	log.Info(ctx, LogLoadingConfig)

	var cfg Config
	if err := cleanenv.ReadEnv(&cfg); err != nil {
		log.Error(ctx, ErrFailedLoadConfig, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", ErrFailedLoadConfig, err)
	}

	log.Info(ctx, LogConfigLoaded,
		zap.String("storage_backend", cfg.Storage.Backend),
		zap.String("http_address", cfg.HTTP.GetAddress()),
		zap.String("log_level", cfg.Logging.Level),
		zap.String("log_mode", cfg.Logging.Mode),
		zap.Int("shutdown_timeout_seconds", cfg.Shutdown.Timeout))

	return &cfg, nil
}

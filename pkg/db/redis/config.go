// Package redis предоставляет клиент Redis, используемый локальным хранилищем
// как примитив ключ-значение.
package redis

import "time"

// Значения по умолчанию для Redis.
const (
	DefaultHost     = "localhost"
	DefaultPort     = 6379
	DefaultPassword = ""
	DefaultDB       = 0
	DefaultPoolSize = 10
	DefaultTimeout  = 5 * time.Second
)

// Config содержит настройки подключения к Redis.
type Config struct {
	Host     string
	Port     int
	Password string
	DB       int
	PoolSize int
	Timeout  time.Duration
}

// DefaultConfig возвращает конфигурацию Redis по умолчанию.
func DefaultConfig() *Config {
	return &Config{
		Host:     DefaultHost,
		Port:     DefaultPort,
		Password: DefaultPassword,
		DB:       DefaultDB,
		PoolSize: DefaultPoolSize,
		Timeout:  DefaultTimeout,
	}
}

package config

import "fmt"

// HTTPConfig содержит настройки HTTP сервера.
type HTTPConfig struct {
	Host string `yaml:"host" env:"NOTEKEEP_HTTP_HOST" env-default:"0.0.0.0"`
	Port int    `yaml:"port" env:"NOTEKEEP_HTTP_PORT" env-default:"8080"`
}

// GetAddress возвращает адрес прослушивания HTTP сервера.
func (h *HTTPConfig) GetAddress() string {
	return fmt.Sprintf("%s:%d", h.Host, h.Port)
}

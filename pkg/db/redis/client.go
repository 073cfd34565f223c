// Package redis предоставляет клиент Redis, используемый локальным хранилищем
// как примитив ключ-значение.
package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// Client обертывает клиент Redis и предоставляет базовые операции.
type Client struct {
	client *redis.Client
}

// NewClient создает новый клиент Redis и проверяет соединение.
func NewClient(cfg *Config) (*Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:         fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		Password:     cfg.Password,
		DB:           cfg.DB,
		PoolSize:     cfg.PoolSize,
		ReadTimeout:  cfg.Timeout,
		WriteTimeout: cfg.Timeout,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return &Client{client: rdb}, nil
}

// Close закрывает соединение с Redis.
func (c *Client) Close() error {
	return c.client.Close()
}

// RawClient возвращает базовый Redis клиент.
func (c *Client) RawClient() *redis.Client {
	return c.client
}

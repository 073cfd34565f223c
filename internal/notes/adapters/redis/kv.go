// Package redis реализует примитив ключ-значение локального хранилища
// поверх Redis.
package redis

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"notekeep/pkg/logger"
)

// Константы для сообщений об ошибках.
const (
	ErrFailedToGet    = "failed to get value from redis"
	ErrFailedToSet    = "failed to set value in redis"
	ErrFailedToDelete = "failed to delete value from redis"
	ErrFailedToClose  = "failed to close redis connection"
)

// KV хранит значения без срока жизни: коллекции заметок и истории живут,
// пока их не перезапишет или не удалит репозиторий.
type KV struct {
	client *redis.Client
}

// NewKV создает примитив ключ-значение поверх существующего клиента Redis.
func NewKV(client *redis.Client) *KV {
	return &KV{client: client}
}

// Get получает значение по ключу. Отсутствующий ключ дает ok=false без ошибки.
func (k *KV) Get(ctx context.Context, key string) (string, bool, error) {
	log := logger.Log(ctx).With(zap.String("method", "KV.Get"), zap.String("key", key))

	value, err := k.client.Get(ctx, key).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", false, nil
		}
		log.Error(ctx, ErrFailedToGet, zap.Error(err))
		return "", false, fmt.Errorf("%s: %w", ErrFailedToGet, err)
	}
	return value, true, nil
}

// Set записывает значение по ключу.
func (k *KV) Set(ctx context.Context, key, value string) error {
	log := logger.Log(ctx).With(zap.String("method", "KV.Set"), zap.String("key", key))

	if err := k.client.Set(ctx, key, value, 0).Err(); err != nil {
		log.Error(ctx, ErrFailedToSet, zap.Error(err))
		return fmt.Errorf("%s: %w", ErrFailedToSet, err)
	}
	return nil
}

// Remove удаляет ключ. Отсутствующий ключ не является ошибкой.
func (k *KV) Remove(ctx context.Context, key string) error {
	log := logger.Log(ctx).With(zap.String("method", "KV.Remove"), zap.String("key", key))

	if err := k.client.Del(ctx, key).Err(); err != nil {
		log.Error(ctx, ErrFailedToDelete, zap.Error(err))
		return fmt.Errorf("%s: %w", ErrFailedToDelete, err)
	}
	return nil
}

// Close закрывает соединение с Redis.
func (k *KV) Close() error {
	if err := k.client.Close(); err != nil {
		return fmt.Errorf("%s: %w", ErrFailedToClose, err)
	}
	return nil
}

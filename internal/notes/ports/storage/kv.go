// Package storage defines the key-value primitive backing the local store.
package storage

import "context"

// KV - асинхронный примитив ключ-значение, под которым локальное хранилище
// держит сериализованные коллекции. Get возвращает ok=false для
// отсутствующего ключа; Remove отсутствующего ключа не является ошибкой.
type KV interface {
	Get(ctx context.Context, key string) (value string, ok bool, err error)
	Set(ctx context.Context, key, value string) error
	Remove(ctx context.Context, key string) error
}

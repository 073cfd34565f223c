package kv_test

import (
	"context"
	"sync"
)

// memKV - потокобезопасный двойник примитива ключ-значение с внедрением отказов.
type memKV struct {
	mu     sync.Mutex
	values map[string]string

	getErr error
	setErr error
	remErr error
}

func newMemKV() *memKV {
	return &memKV{values: make(map[string]string)}
}

func (m *memKV) Get(_ context.Context, key string) (string, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.getErr != nil {
		return "", false, m.getErr
	}
	value, ok := m.values[key]
	return value, ok, nil
}

func (m *memKV) Set(_ context.Context, key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.setErr != nil {
		return m.setErr
	}
	m.values[key] = value
	return nil
}

func (m *memKV) Remove(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.remErr != nil {
		return m.remErr
	}
	delete(m.values, key)
	return nil
}

func (m *memKV) put(key, value string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.values[key] = value
}

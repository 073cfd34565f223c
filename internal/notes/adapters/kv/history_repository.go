package kv

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"sync"

	"go.uber.org/zap"

	"notekeep/internal/notes/ports/repositories"
	"notekeep/internal/notes/ports/storage"
	"notekeep/pkg/logger"
)

// DefaultHistoryKey - ключ, под которым хранится история поиска.
const DefaultHistoryKey = "SEARCH_HISTORY"

// Константы для сообщений об ошибках.
const (
	ErrEncodeHistory  = "failed to encode search history"
	ErrPersistHistory = "failed to persist search history"
	ErrClearHistory   = "failed to clear search history"
)

// LogCorruptHistory - сообщение при нечитаемой истории поиска.
const LogCorruptHistory = "search history unreadable, falling back to empty"

// HistoryRepository хранит историю поиска одним JSON-массивом строк под
// собственным ключом, от самого свежего запроса к самому старому.
// Мутации сериализуются собственным мьютексом, независимым от очереди
// репозитория заметок.
type HistoryRepository struct {
	store storage.KV
	key   string
	mu    sync.Mutex
}

// NewHistoryRepository создает репозиторий истории поиска.
// Пустой key означает DefaultHistoryKey.
func NewHistoryRepository(store storage.KV, key string) *HistoryRepository {
	if key == "" {
		key = DefaultHistoryKey
	}
	return &HistoryRepository{store: store, key: key}
}

// Record добавляет запрос в голову истории. Существующая запись, совпадающая
// без учета регистра, удаляется, так что побеждает последнее написание;
// итог усекается до repositories.HistoryLimit записей. Пустой после обрезки
// запрос игнорируется.
func (r *HistoryRepository) Record(ctx context.Context, term string) error {
	log := logger.Log(ctx).With(zap.String("method", "HistoryRepository.Record"))

	term = strings.TrimSpace(term)
	if term == "" {
		return nil
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	history := r.load(ctx)
	updated := make([]string, 0, len(history)+1)
	updated = append(updated, term)
	for _, existing := range history {
		if !strings.EqualFold(existing, term) {
			updated = append(updated, existing)
		}
	}
	if len(updated) > repositories.HistoryLimit {
		updated = updated[:repositories.HistoryLimit]
	}

	if err := r.save(ctx, updated); err != nil {
		log.Error(ctx, ErrPersistHistory, zap.Error(err))
		return err
	}
	return nil
}

// List возвращает историю поиска от самого свежего запроса к самому старому.
// Отказ чтения дает пустой список.
func (r *HistoryRepository) List(ctx context.Context) ([]string, error) {
	return r.load(ctx), nil
}

// Remove удаляет все записи, совпадающие с запросом без учета регистра -
// та же политика сравнения, что у дедупликации в Record. Отсутствующий
// запрос не является ошибкой.
func (r *HistoryRepository) Remove(ctx context.Context, term string) error {
	log := logger.Log(ctx).With(zap.String("method", "HistoryRepository.Remove"))

	r.mu.Lock()
	defer r.mu.Unlock()

	history := r.load(ctx)
	filtered := make([]string, 0, len(history))
	for _, existing := range history {
		if !strings.EqualFold(existing, term) {
			filtered = append(filtered, existing)
		}
	}

	if len(filtered) == len(history) {
		return nil
	}

	if err := r.save(ctx, filtered); err != nil {
		log.Error(ctx, ErrPersistHistory, zap.Error(err))
		return err
	}
	return nil
}

// Clear удаляет историю целиком. Идемпотентен.
func (r *HistoryRepository) Clear(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if err := r.store.Remove(ctx, r.key); err != nil {
		logger.Log(ctx).Error(ctx, ErrClearHistory, zap.Error(err))
		return fmt.Errorf("%s: %w", ErrClearHistory, err)
	}
	return nil
}

func (r *HistoryRepository) load(ctx context.Context) []string {
	raw, ok, err := r.store.Get(ctx, r.key)
	if err != nil {
		logger.Log(ctx).Warn(ctx, LogCorruptHistory, zap.Error(err))
		return []string{}
	}
	if !ok {
		return []string{}
	}

	var history []string
	if err := json.Unmarshal([]byte(raw), &history); err != nil {
		logger.Log(ctx).Warn(ctx, LogCorruptHistory, zap.Error(err))
		return []string{}
	}
	return history
}

func (r *HistoryRepository) save(ctx context.Context, history []string) error {
	raw, err := json.Marshal(history)
	if err != nil {
		return fmt.Errorf("%s: %w", ErrEncodeHistory, err)
	}
	if err := r.store.Set(ctx, r.key, string(raw)); err != nil {
		return fmt.Errorf("%s: %w", ErrPersistHistory, err)
	}
	return nil
}

package postgres

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"notekeep/internal/notes/ports/repositories"
	"notekeep/pkg/logger"
)

// Константы для сообщений об ошибках.
const (
	ErrRecordTerm  = "failed to record search term"
	ErrRemoveTerm  = "failed to remove search term"
	ErrClearTerms  = "failed to clear search history"
	ErrTrimHistory = "failed to trim search history"
)

// LogListHistoryFailed - сообщение при недоступной истории на чтении.
const LogListHistoryFailed = "failed to list search history, falling back to empty"

// HistoryRepository реализует repositories.HistoryRepository поверх Postgres:
// каждый запрос - отдельная строка с назначаемой сервером отметкой создания,
// чтение идет по убыванию отметки. Мутации сериализуются собственным
// мьютексом, независимым от очереди репозитория заметок.
type HistoryRepository struct {
	db      DB
	timeout time.Duration
	mu      sync.Mutex
}

// NewHistoryRepository создает новый репозиторий истории поиска.
func NewHistoryRepository(db DB, timeout time.Duration) *HistoryRepository {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &HistoryRepository{db: db, timeout: timeout}
}

// Record добавляет запрос: строки, совпадающие без учета регистра, удаляются,
// вставляется свежее написание, история усекается до repositories.HistoryLimit
// строк. Пустой после обрезки запрос игнорируется.
func (r *HistoryRepository) Record(ctx context.Context, term string) error {
	log := logger.Log(ctx).With(zap.String("method", "HistoryRepository.Record"))

	term = strings.TrimSpace(term)
	if term == "" {
		return nil
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	if _, err := r.db.Exec(ctx,
		`DELETE FROM search_history WHERE lower(term) = lower($1)`, term); err != nil {
		log.Error(ctx, ErrRecordTerm, zap.Error(err))
		return fmt.Errorf("%s: %w", ErrRecordTerm, mapErr(err))
	}

	if _, err := r.db.Exec(ctx,
		`INSERT INTO search_history (term) VALUES ($1)`, term); err != nil {
		log.Error(ctx, ErrRecordTerm, zap.Error(err))
		return fmt.Errorf("%s: %w", ErrRecordTerm, mapErr(err))
	}

	if _, err := r.db.Exec(ctx,
		`DELETE FROM search_history
         WHERE id NOT IN (
             SELECT id FROM search_history
             ORDER BY created_at DESC, id DESC
             LIMIT $1
         )`, repositories.HistoryLimit); err != nil {
		log.Error(ctx, ErrTrimHistory, zap.Error(err))
		return fmt.Errorf("%s: %w", ErrTrimHistory, mapErr(err))
	}

	return nil
}

// List возвращает историю от самого свежего запроса к самому старому.
// Недоступность хранилища дает пустой список, не ошибку.
func (r *HistoryRepository) List(ctx context.Context) ([]string, error) {
	log := logger.Log(ctx).With(zap.String("method", "HistoryRepository.List"))

	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	rows, err := r.db.Query(ctx,
		`SELECT term FROM search_history
         ORDER BY created_at DESC, id DESC
         LIMIT $1`, repositories.HistoryLimit)
	if err != nil {
		log.Warn(ctx, LogListHistoryFailed, zap.Error(err))
		return []string{}, nil
	}
	defer rows.Close()

	history := make([]string, 0, repositories.HistoryLimit)
	for rows.Next() {
		var term string
		if err := rows.Scan(&term); err != nil {
			log.Warn(ctx, LogListHistoryFailed, zap.Error(err))
			return []string{}, nil
		}
		history = append(history, term)
	}

	if err := rows.Err(); err != nil {
		log.Warn(ctx, LogListHistoryFailed, zap.Error(err))
		return []string{}, nil
	}

	return history, nil
}

// Remove удаляет строки, совпадающие с запросом без учета регистра.
// Отсутствующий запрос не является ошибкой.
func (r *HistoryRepository) Remove(ctx context.Context, term string) error {
	log := logger.Log(ctx).With(zap.String("method", "HistoryRepository.Remove"))

	r.mu.Lock()
	defer r.mu.Unlock()

	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	if _, err := r.db.Exec(ctx,
		`DELETE FROM search_history WHERE lower(term) = lower($1)`, term); err != nil {
		log.Error(ctx, ErrRemoveTerm, zap.Error(err))
		return fmt.Errorf("%s: %w", ErrRemoveTerm, mapErr(err))
	}
	return nil
}

// Clear удаляет историю целиком. Идемпотентен.
func (r *HistoryRepository) Clear(ctx context.Context) error {
	log := logger.Log(ctx).With(zap.String("method", "HistoryRepository.Clear"))

	r.mu.Lock()
	defer r.mu.Unlock()

	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	if _, err := r.db.Exec(ctx, `DELETE FROM search_history`); err != nil {
		log.Error(ctx, ErrClearTerms, zap.Error(err))
		return fmt.Errorf("%s: %w", ErrClearTerms, mapErr(err))
	}
	return nil
}

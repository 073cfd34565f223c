// Package postgres provides PostgreSQL implementations of repositories.
package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"notekeep/internal/notes/ports/repositories"
)

// DB - подмножество пула pgx, используемое репозиториями. Выделено
// интерфейсом, чтобы тесты могли подставить pgxmock.
type DB interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// DefaultTimeout - предел времени одной операции удаленного хранилища.
const DefaultTimeout = 5 * time.Second

// RepositoryFactory создает репозитории удаленного хранилища.
type RepositoryFactory struct {
	db      DB
	timeout time.Duration
}

// NewRepositoryFactory создает новую фабрику репозиториев. Неположительный
// timeout означает DefaultTimeout.
func NewRepositoryFactory(db DB, timeout time.Duration) *RepositoryFactory {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &RepositoryFactory{db: db, timeout: timeout}
}

// NoteRepository возвращает репозиторий заметок.
func (f *RepositoryFactory) NoteRepository() repositories.NoteRepository {
	return NewNoteRepository(f.db, f.timeout)
}

// HistoryRepository возвращает репозиторий истории поиска.
func (f *RepositoryFactory) HistoryRepository() repositories.HistoryRepository {
	return NewHistoryRepository(f.db, f.timeout)
}

// mapErr переводит истечение времени операции в repositories.ErrTimeout.
func mapErr(err error) error {
	if errors.Is(err, context.DeadlineExceeded) {
		return repositories.ErrTimeout
	}
	return err
}

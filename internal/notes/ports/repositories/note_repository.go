// Package repositories defines repository interfaces for the notes service.
package repositories

import (
	"context"
	"errors"
	"time"

	"notekeep/internal/notes/domain/entities"
)

// Ошибки уровня репозитория, общие для обоих хранилищ.
var (
	// ErrNoteNotFound возвращается Update, когда заметки с таким
	// идентификатором нет. Delete идемпотентен и эту ошибку не возвращает.
	ErrNoteNotFound = errors.New("note not found")

	// ErrTimeout возвращается удаленным хранилищем, когда операция
	// превысила отведенное время.
	ErrTimeout = errors.New("storage operation timed out")
)

// CreateNoteParams - параметры создания заметки.
type CreateNoteParams struct {
	Title      string
	Content    string
	Tags       []string
	Category   string
	TargetDate *time.Time
}

// NoteRepository определяет контракт хранилища заметок.
//
// List никогда не возвращает ошибку чтения: нечитаемое или поврежденное
// хранилище дает пустой список, чтобы не блокировать отображение.
// Ошибки записи всегда доходят до вызывающего. Delete идемпотентен:
// удаление отсутствующего идентификатора завершается успешно.
type NoteRepository interface {
	List(ctx context.Context) ([]entities.Note, error)
	Create(ctx context.Context, params CreateNoteParams) (*entities.Note, error)
	Update(ctx context.Context, note *entities.Note) error
	Delete(ctx context.Context, id string) error
}

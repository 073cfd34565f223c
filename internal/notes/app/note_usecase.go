// Package app implements application business logic for the notes service.
package app

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"notekeep/internal/notes/domain/entities"
	"notekeep/internal/notes/ports/repositories"
	"notekeep/internal/notes/search"
)

// Ошибки уровня бизнес-логики.
var (
	ErrEmptyNote = errors.New("note must have a title or content")
	ErrMissingID = errors.New("note id is required")
)

// NoteUseCase представляет собой бизнес-логику работы с заметками.
type NoteUseCase struct {
	noteRepo repositories.NoteRepository
}

// NewNoteUseCase создает новый экземпляр NoteUseCase.
func NewNoteUseCase(noteRepo repositories.NoteRepository) *NoteUseCase {
	return &NoteUseCase{noteRepo: noteRepo}
}

// CreateNote создает новую заметку. Заметка без заголовка и содержимого
// после обрезки пробелов отклоняется: хранилище не должно получать пустых
// заметок, даже если экран уже проверил ввод.
func (uc *NoteUseCase) CreateNote(ctx context.Context, params repositories.CreateNoteParams) (*entities.Note, error) {
	if strings.TrimSpace(params.Title) == "" && strings.TrimSpace(params.Content) == "" {
		return nil, ErrEmptyNote
	}

	note, err := uc.noteRepo.Create(ctx, params)
	if err != nil {
		return nil, fmt.Errorf("failed to create note: %w", err)
	}
	return note, nil
}

// ListNotes возвращает все заметки от самой новой к самой старой.
func (uc *NoteUseCase) ListNotes(ctx context.Context) ([]entities.Note, error) {
	notes, err := uc.noteRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list notes: %w", err)
	}
	return notes, nil
}

// SearchNotes возвращает заметки, соответствующие запросу. Пустой запрос
// дает полный список.
func (uc *NoteUseCase) SearchNotes(ctx context.Context, query string) ([]entities.Note, error) {
	notes, err := uc.noteRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list notes: %w", err)
	}
	return search.Match(notes, query), nil
}

// UpdateNote обновляет существующую заметку. Отметку изменения проставляет
// репозиторий, не вызывающий.
func (uc *NoteUseCase) UpdateNote(ctx context.Context, note *entities.Note) (*entities.Note, error) {
	if note.ID == "" {
		return nil, ErrMissingID
	}
	if note.IsEmpty() {
		return nil, ErrEmptyNote
	}

	updated := *note
	updated.Title = strings.TrimSpace(updated.Title)
	updated.Content = strings.TrimSpace(updated.Content)

	if err := uc.noteRepo.Update(ctx, &updated); err != nil {
		if errors.Is(err, repositories.ErrNoteNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to update note: %w", err)
	}
	return &updated, nil
}

// DeleteNote удаляет заметку. Удаление отсутствующей заметки успешно.
func (uc *NoteUseCase) DeleteNote(ctx context.Context, id string) error {
	if id == "" {
		return ErrMissingID
	}

	if err := uc.noteRepo.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete note: %w", err)
	}
	return nil
}

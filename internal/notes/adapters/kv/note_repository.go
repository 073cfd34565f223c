// Package kv реализует репозитории поверх примитива ключ-значение: вся
// коллекция хранится одним сериализованным значением, каждая мутация
// читает, преобразует и записывает ее целиком.
package kv

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"notekeep/internal/notes/domain/entities"
	"notekeep/internal/notes/ports/repositories"
	"notekeep/internal/notes/ports/storage"
	"notekeep/pkg/logger"
	"notekeep/pkg/noteid"
)

// DefaultNotesKey - ключ, под которым хранится коллекция заметок.
const DefaultNotesKey = "NOTES_DATA"

// Константы для сообщений об ошибках.
const (
	ErrEncodeNotes  = "failed to encode notes collection"
	ErrPersistNotes = "failed to persist notes collection"
)

// Константы для сообщений logger.
const (
	LogUnreadableNotes = "notes collection unreadable, falling back to empty"
	LogCorruptNotes    = "notes collection corrupt, falling back to empty"
)

// NoteRepository хранит заметки одной JSON-коллекцией под фиксированным ключом,
// от самой новой к самой старой.
//
// Чтение-изменение-запись всей коллекции создает гонку потерянного
// обновления при конкурентных мутациях, поэтому все мутации
// сериализуются мьютексом репозитория. Чтения мьютекс не берут:
// снимок коллекции читается из хранилища атомарно.
type NoteRepository struct {
	store storage.KV
	key   string
	mu    sync.Mutex
}

// NewNoteRepository создает репозиторий заметок поверх примитива ключ-значение.
// Пустой key означает DefaultNotesKey.
func NewNoteRepository(store storage.KV, key string) *NoteRepository {
	if key == "" {
		key = DefaultNotesKey
	}
	return &NoteRepository{store: store, key: key}
}

// List возвращает все заметки от самой новой к самой старой. Нечитаемое или
// поврежденное хранилище дает пустой список, не ошибку: испорченный локальный
// кэш не должен блокировать отображение.
func (r *NoteRepository) List(ctx context.Context) ([]entities.Note, error) {
	return r.load(ctx), nil
}

// Create создает заметку со свежим идентификатором и помещает ее в голову
// коллекции.
func (r *NoteRepository) Create(ctx context.Context, params repositories.CreateNoteParams) (*entities.Note, error) {
	log := logger.Log(ctx).With(zap.String("method", "NoteRepository.Create"))

	note := entities.NewNote(params.Title, params.Content, params.Tags, params.Category, params.TargetDate)
	note.ID = noteid.New()

	r.mu.Lock()
	defer r.mu.Unlock()

	notes := r.load(ctx)
	updated := make([]entities.Note, 0, len(notes)+1)
	updated = append(updated, *note)
	updated = append(updated, notes...)

	if err := r.save(ctx, updated); err != nil {
		log.Error(ctx, ErrPersistNotes, zap.Error(err))
		return nil, err
	}

	log.Debug(ctx, "note created", zap.String("noteID", note.ID))
	return note, nil
}

// Update заменяет сохраненную заметку с совпадающим идентификатором и
// проставляет DateModified. Идентификатор и DateCreated сохраненной версии
// неизменны. Возвращает repositories.ErrNoteNotFound, если заметки нет.
func (r *NoteRepository) Update(ctx context.Context, note *entities.Note) error {
	log := logger.Log(ctx).With(zap.String("method", "NoteRepository.Update"))

	r.mu.Lock()
	defer r.mu.Unlock()

	notes := r.load(ctx)
	for i := range notes {
		if notes[i].ID != note.ID {
			continue
		}

		now := time.Now()
		replacement := *note
		replacement.ID = notes[i].ID
		replacement.DateCreated = notes[i].DateCreated
		replacement.DateModified = &now
		notes[i] = replacement

		if err := r.save(ctx, notes); err != nil {
			log.Error(ctx, ErrPersistNotes, zap.Error(err))
			return err
		}
		return nil
	}

	log.Debug(ctx, "note not found", zap.String("noteID", note.ID))
	return repositories.ErrNoteNotFound
}

// Delete удаляет заметку с совпадающим идентификатором. Удаление
// отсутствующего идентификатора завершается успешно без записи.
func (r *NoteRepository) Delete(ctx context.Context, id string) error {
	log := logger.Log(ctx).With(zap.String("method", "NoteRepository.Delete"))

	r.mu.Lock()
	defer r.mu.Unlock()

	notes := r.load(ctx)
	filtered := make([]entities.Note, 0, len(notes))
	for _, note := range notes {
		if note.ID != id {
			filtered = append(filtered, note)
		}
	}

	if len(filtered) == len(notes) {
		return nil
	}

	if err := r.save(ctx, filtered); err != nil {
		log.Error(ctx, ErrPersistNotes, zap.Error(err))
		return err
	}
	return nil
}

// load читает коллекцию из хранилища. Любой отказ чтения или разбора
// логируется и дает пустую коллекцию.
func (r *NoteRepository) load(ctx context.Context) []entities.Note {
	log := logger.Log(ctx)

	raw, ok, err := r.store.Get(ctx, r.key)
	if err != nil {
		log.Warn(ctx, LogUnreadableNotes, zap.Error(err))
		return []entities.Note{}
	}
	if !ok {
		return []entities.Note{}
	}

	notes, err := decodeNotes([]byte(raw))
	if err != nil {
		log.Warn(ctx, LogCorruptNotes, zap.Error(err))
		return []entities.Note{}
	}
	return notes
}

// save сериализует и записывает коллекцию целиком.
func (r *NoteRepository) save(ctx context.Context, notes []entities.Note) error {
	raw, err := json.Marshal(notes)
	if err != nil {
		return fmt.Errorf("%s: %w", ErrEncodeNotes, err)
	}
	if err := r.store.Set(ctx, r.key, string(raw)); err != nil {
		return fmt.Errorf("%s: %w", ErrPersistNotes, err)
	}
	return nil
}

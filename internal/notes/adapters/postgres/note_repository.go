package postgres

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"notekeep/internal/notes/domain/entities"
	"notekeep/internal/notes/ports/repositories"
	"notekeep/pkg/logger"
)

// Константы для сообщений об ошибках.
const (
	ErrCreateNote = "failed to create note"
	ErrUpdateNote = "failed to update note"
	ErrDeleteNote = "failed to delete note"
)

// LogListNotesFailed - сообщение при недоступном удаленном хранилище на чтении.
const LogListNotesFailed = "failed to list notes, falling back to empty"

// NoteRepository реализует repositories.NoteRepository поверх Postgres:
// каждая заметка - отдельная строка с назначаемой сервером отметкой создания.
// Мутации сериализуются мьютексом репозитория, как и в локальном хранилище.
type NoteRepository struct {
	db      DB
	timeout time.Duration
	mu      sync.Mutex
}

// NewNoteRepository создает новый репозиторий заметок.
func NewNoteRepository(db DB, timeout time.Duration) *NoteRepository {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &NoteRepository{db: db, timeout: timeout}
}

// List возвращает все заметки, отсортированные по серверной отметке создания
// по убыванию. Недоступность хранилища дает пустой список, не ошибку.
func (r *NoteRepository) List(ctx context.Context) ([]entities.Note, error) {
	log := logger.Log(ctx).With(zap.String("method", "NoteRepository.List"))

	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	rows, err := r.db.Query(ctx,
		`SELECT id, title, content, tags, category, target_date, created_at, updated_at
         FROM notes
         ORDER BY created_at DESC, id DESC`)
	if err != nil {
		log.Warn(ctx, LogListNotesFailed, zap.Error(err))
		return []entities.Note{}, nil
	}
	defer rows.Close()

	notes := make([]entities.Note, 0)
	for rows.Next() {
		var note entities.Note
		err := rows.Scan(&note.ID, &note.Title, &note.Content, &note.Tags,
			&note.Category, &note.TargetDate, &note.DateCreated, &note.DateModified)
		if err != nil {
			log.Warn(ctx, LogListNotesFailed, zap.Error(err))
			return []entities.Note{}, nil
		}
		notes = append(notes, note)
	}

	if err := rows.Err(); err != nil {
		log.Warn(ctx, LogListNotesFailed, zap.Error(err))
		return []entities.Note{}, nil
	}

	return notes, nil
}

// Create сохраняет новую заметку. Идентификатор и отметку создания назначает
// сервер; возвращаемая заметка несет оба значения.
func (r *NoteRepository) Create(ctx context.Context, params repositories.CreateNoteParams) (*entities.Note, error) {
	log := logger.Log(ctx).With(zap.String("method", "NoteRepository.Create"))

	note := entities.NewNote(params.Title, params.Content, params.Tags, params.Category, params.TargetDate)

	r.mu.Lock()
	defer r.mu.Unlock()

	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	err := r.db.QueryRow(ctx,
		`INSERT INTO notes (title, content, tags, category, target_date)
         VALUES ($1, $2, $3, $4, $5)
         RETURNING id, created_at`,
		note.Title, note.Content, note.Tags, note.Category, note.TargetDate,
	).Scan(&note.ID, &note.DateCreated)

	if err != nil {
		log.Error(ctx, ErrCreateNote, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", ErrCreateNote, mapErr(err))
	}

	log.Debug(ctx, "note created", zap.String("noteID", note.ID))
	return note, nil
}

// Update заменяет строку заметки и проставляет updated_at на сервере.
// Возвращает repositories.ErrNoteNotFound, если строки с таким
// идентификатором нет.
func (r *NoteRepository) Update(ctx context.Context, note *entities.Note) error {
	log := logger.Log(ctx).With(zap.String("method", "NoteRepository.Update"))

	r.mu.Lock()
	defer r.mu.Unlock()

	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	err := r.db.QueryRow(ctx,
		`UPDATE notes
         SET title = $1, content = $2, tags = $3, category = $4, target_date = $5, updated_at = now()
         WHERE id = $6
         RETURNING updated_at`,
		note.Title, note.Content, note.Tags, note.Category, note.TargetDate, note.ID,
	).Scan(&note.DateModified)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			log.Debug(ctx, "note not found", zap.String("noteID", note.ID))
			return repositories.ErrNoteNotFound
		}
		log.Error(ctx, ErrUpdateNote, zap.Error(err))
		return fmt.Errorf("%s: %w", ErrUpdateNote, mapErr(err))
	}

	return nil
}

// Delete удаляет строку заметки. Отсутствующий идентификатор не является
// ошибкой: контракт удаления идемпотентен для обоих хранилищ.
func (r *NoteRepository) Delete(ctx context.Context, id string) error {
	log := logger.Log(ctx).With(zap.String("method", "NoteRepository.Delete"))

	r.mu.Lock()
	defer r.mu.Unlock()

	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	if _, err := r.db.Exec(ctx, `DELETE FROM notes WHERE id = $1`, id); err != nil {
		log.Error(ctx, ErrDeleteNote, zap.Error(err))
		return fmt.Errorf("%s: %w", ErrDeleteNote, mapErr(err))
	}
	return nil
}

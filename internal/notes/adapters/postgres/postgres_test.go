package postgres_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"notekeep/internal/notes/adapters/postgres"
	"notekeep/internal/notes/domain/entities"
	"notekeep/internal/notes/ports/repositories"
)

var errConnection = errors.New("database connection failed")

func newMock(t *testing.T) pgxmock.PgxPoolIface {
	t.Helper()

	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(mock.Close)

	return mock
}

func TestNoteRepository_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("successful note creation", func(t *testing.T) {
		mock := newMock(t)
		createdAt := time.Now()

		mock.ExpectQuery(`INSERT INTO notes`).
			WithArgs("Trip to Paris", "pack light", []string{"travel"}, "", pgxmock.AnyArg()).
			WillReturnRows(pgxmock.NewRows([]string{"id", "created_at"}).AddRow("note-abc-123", createdAt))

		repo := postgres.NewNoteRepository(mock, 0)
		note, err := repo.Create(ctx, repositories.CreateNoteParams{
			Title:   " Trip to Paris ",
			Content: "pack light",
			Tags:    []string{"travel"},
		})

		require.NoError(t, err)
		assert.Equal(t, "note-abc-123", note.ID)
		assert.True(t, note.DateCreated.Equal(createdAt), "creation time is server-assigned")
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("database connection error", func(t *testing.T) {
		mock := newMock(t)

		mock.ExpectQuery(`INSERT INTO notes`).
			WithArgs(pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg()).
			WillReturnError(errConnection)

		repo := postgres.NewNoteRepository(mock, 0)
		note, err := repo.Create(ctx, repositories.CreateNoteParams{Title: "doomed"})

		require.Error(t, err)
		assert.Nil(t, note)
		assert.Contains(t, err.Error(), postgres.ErrCreateNote)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("deadline maps to timeout error", func(t *testing.T) {
		mock := newMock(t)

		mock.ExpectQuery(`INSERT INTO notes`).
			WithArgs(pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg()).
			WillReturnError(context.DeadlineExceeded)

		repo := postgres.NewNoteRepository(mock, 0)
		_, err := repo.Create(ctx, repositories.CreateNoteParams{Title: "slow"})

		assert.ErrorIs(t, err, repositories.ErrTimeout)
		require.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestNoteRepository_List(t *testing.T) {
	ctx := context.Background()

	t.Run("returns notes in server order", func(t *testing.T) {
		mock := newMock(t)
		now := time.Now()

		mock.ExpectQuery(`SELECT id, title, content, tags, category, target_date, created_at, updated_at`).
			WillReturnRows(pgxmock.NewRows(
				[]string{"id", "title", "content", "tags", "category", "target_date", "created_at", "updated_at"}).
				AddRow("2", "newer", "", []string{}, "", (*time.Time)(nil), now, (*time.Time)(nil)).
				AddRow("1", "older", "", []string{"travel"}, "", (*time.Time)(nil), now.Add(-time.Hour), (*time.Time)(nil)))

		repo := postgres.NewNoteRepository(mock, 0)
		notes, err := repo.List(ctx)

		require.NoError(t, err)
		require.Len(t, notes, 2)
		assert.Equal(t, "2", notes[0].ID)
		assert.Equal(t, []string{"travel"}, notes[1].Tags)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("fails soft on connectivity errors", func(t *testing.T) {
		mock := newMock(t)

		mock.ExpectQuery(`SELECT id, title, content`).
			WillReturnError(errConnection)

		repo := postgres.NewNoteRepository(mock, 0)
		notes, err := repo.List(ctx)

		require.NoError(t, err, "read failures must not propagate")
		assert.Empty(t, notes)
		require.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestNoteRepository_Update(t *testing.T) {
	ctx := context.Background()

	t.Run("stamps updated_at via server", func(t *testing.T) {
		mock := newMock(t)
		modified := time.Now()

		mock.ExpectQuery(`UPDATE notes`).
			WithArgs("new title", "new content", []string{}, "", pgxmock.AnyArg(), "note-1").
			WillReturnRows(pgxmock.NewRows([]string{"updated_at"}).AddRow(&modified))

		repo := postgres.NewNoteRepository(mock, 0)
		note := &entities.Note{ID: "note-1", Title: "new title", Content: "new content", Tags: []string{}}
		err := repo.Update(ctx, note)

		require.NoError(t, err)
		require.NotNil(t, note.DateModified)
		assert.True(t, note.DateModified.Equal(modified))
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("missing note", func(t *testing.T) {
		mock := newMock(t)

		mock.ExpectQuery(`UPDATE notes`).
			WithArgs(pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg()).
			WillReturnError(pgx.ErrNoRows)

		repo := postgres.NewNoteRepository(mock, 0)
		err := repo.Update(ctx, &entities.Note{ID: "ghost", Title: "x", Tags: []string{}})

		assert.ErrorIs(t, err, repositories.ErrNoteNotFound)
		require.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestNoteRepository_Delete(t *testing.T) {
	ctx := context.Background()

	t.Run("idempotent on missing id", func(t *testing.T) {
		mock := newMock(t)

		mock.ExpectExec(`DELETE FROM notes`).
			WithArgs("ghost").
			WillReturnResult(pgxmock.NewResult("DELETE", 0))

		repo := postgres.NewNoteRepository(mock, 0)
		err := repo.Delete(ctx, "ghost")

		require.NoError(t, err, "deleting an absent note must succeed")
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("write failure surfaces", func(t *testing.T) {
		mock := newMock(t)

		mock.ExpectExec(`DELETE FROM notes`).
			WithArgs(pgxmock.AnyArg()).
			WillReturnError(errConnection)

		repo := postgres.NewNoteRepository(mock, 0)
		err := repo.Delete(ctx, "note-1")

		require.Error(t, err)
		assert.Contains(t, err.Error(), postgres.ErrDeleteNote)
		require.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestHistoryRepository_Record(t *testing.T) {
	ctx := context.Background()

	t.Run("dedup insert and trim", func(t *testing.T) {
		mock := newMock(t)

		mock.ExpectExec(`DELETE FROM search_history WHERE lower\(term\) = lower\(\$1\)`).
			WithArgs("paris").
			WillReturnResult(pgxmock.NewResult("DELETE", 1))
		mock.ExpectExec(`INSERT INTO search_history`).
			WithArgs("paris").
			WillReturnResult(pgxmock.NewResult("INSERT", 1))
		mock.ExpectExec(`DELETE FROM search_history\s+WHERE id NOT IN`).
			WithArgs(repositories.HistoryLimit).
			WillReturnResult(pgxmock.NewResult("DELETE", 0))

		repo := postgres.NewHistoryRepository(mock, 0)
		require.NoError(t, repo.Record(ctx, "  paris "))
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("empty term is a no-op", func(t *testing.T) {
		mock := newMock(t)

		repo := postgres.NewHistoryRepository(mock, 0)
		require.NoError(t, repo.Record(ctx, "   "))
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("write failure surfaces", func(t *testing.T) {
		mock := newMock(t)

		mock.ExpectExec(`DELETE FROM search_history WHERE lower\(term\) = lower\(\$1\)`).
			WillReturnError(errConnection)

		repo := postgres.NewHistoryRepository(mock, 0)
		err := repo.Record(ctx, "paris")
		require.Error(t, err)
		assert.Contains(t, err.Error(), postgres.ErrRecordTerm)
	})
}

func TestHistoryRepository_List(t *testing.T) {
	ctx := context.Background()

	t.Run("most recent first", func(t *testing.T) {
		mock := newMock(t)

		mock.ExpectQuery(`SELECT term FROM search_history`).
			WithArgs(repositories.HistoryLimit).
			WillReturnRows(pgxmock.NewRows([]string{"term"}).AddRow("budget").AddRow("paris"))

		repo := postgres.NewHistoryRepository(mock, 0)
		history, err := repo.List(ctx)

		require.NoError(t, err)
		assert.Equal(t, []string{"budget", "paris"}, history)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("fails soft on read errors", func(t *testing.T) {
		mock := newMock(t)

		mock.ExpectQuery(`SELECT term FROM search_history`).
			WillReturnError(errConnection)

		repo := postgres.NewHistoryRepository(mock, 0)
		history, err := repo.List(ctx)

		require.NoError(t, err)
		assert.Empty(t, history)
	})
}

func TestHistoryRepository_RemoveAndClear(t *testing.T) {
	ctx := context.Background()

	t.Run("remove is case-insensitive and idempotent", func(t *testing.T) {
		mock := newMock(t)

		mock.ExpectExec(`DELETE FROM search_history WHERE lower\(term\) = lower\(\$1\)`).
			WithArgs("Paris").
			WillReturnResult(pgxmock.NewResult("DELETE", 0))

		repo := postgres.NewHistoryRepository(mock, 0)
		require.NoError(t, repo.Remove(ctx, "Paris"))
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("clear", func(t *testing.T) {
		mock := newMock(t)

		mock.ExpectExec(`DELETE FROM search_history`).
			WillReturnResult(pgxmock.NewResult("DELETE", 3))

		repo := postgres.NewHistoryRepository(mock, 0)
		require.NoError(t, repo.Clear(ctx))
		require.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestRepositoryFactory(t *testing.T) {
	mock := newMock(t)

	factory := postgres.NewRepositoryFactory(mock, time.Second)

	assert.Implements(t, (*repositories.NoteRepository)(nil), factory.NoteRepository())
	assert.Implements(t, (*repositories.HistoryRepository)(nil), factory.HistoryRepository())
}

package store

import (
	"context"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/devconnect/connect-api/internal/models"
)

func TestPostgresTodoStore_Insert(t *testing.T) {
	t.Run("inserts todo and fills timestamps", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		now := time.Now()
		mock.ExpectQuery(`INSERT INTO todos`).
			WithArgs(pgxmock.AnyArg(), "Write release notes", false).
			WillReturnRows(pgxmock.NewRows([]string{"created_at", "updated_at"}).AddRow(now, now))

		todo := &models.Todo{Title: "Write release notes"}
		repo := NewPostgresTodoStore(mock)
		require.NoError(t, repo.Insert(context.Background(), todo))
		assert.NotEmpty(t, todo.ID)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("duplicate title maps to ErrDuplicate", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		mock.ExpectQuery(`INSERT INTO todos`).WillReturnError(uniqueViolation())

		repo := NewPostgresTodoStore(mock)
		err = repo.Insert(context.Background(), &models.Todo{Title: "Write release notes"})
		assert.ErrorIs(t, err, ErrDuplicate)
	})
}

func TestPostgresTodoStore_GetByID(t *testing.T) {
	t.Run("returns todo", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		now := time.Now()
		mock.ExpectQuery(`SELECT .+ FROM todos WHERE id`).
			WithArgs("todo-1").
			WillReturnRows(pgxmock.NewRows([]string{"id", "title", "completed", "created_at", "updated_at"}).
				AddRow("todo-1", "Write release notes", false, now, now))

		repo := NewPostgresTodoStore(mock)
		todo, err := repo.GetByID(context.Background(), "todo-1")
		require.NoError(t, err)
		assert.Equal(t, "Write release notes", todo.Title)
		assert.False(t, todo.Completed)
	})

	t.Run("no rows maps to ErrNotFound", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		mock.ExpectQuery(`SELECT .+ FROM todos WHERE id`).
			WithArgs("missing").
			WillReturnError(pgx.ErrNoRows)

		repo := NewPostgresTodoStore(mock)
		_, err = repo.GetByID(context.Background(), "missing")
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("malformed id maps to ErrNotFound", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		mock.ExpectQuery(`SELECT .+ FROM todos WHERE id`).
			WithArgs("not-a-uuid").
			WillReturnError(invalidTextRepresentation())

		repo := NewPostgresTodoStore(mock)
		_, err = repo.GetByID(context.Background(), "not-a-uuid")
		assert.ErrorIs(t, err, ErrNotFound)
	})
}

func TestPostgresTodoStore_Update(t *testing.T) {
	t.Run("updates title and completed flag", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		mock.ExpectExec(`UPDATE todos SET`).
			WithArgs("todo-1", "Write release notes", true).
			WillReturnResult(pgxmock.NewResult("UPDATE", 1))

		repo := NewPostgresTodoStore(mock)
		todo := &models.Todo{ID: "todo-1", Title: "Write release notes", Completed: true}
		assert.NoError(t, repo.Update(context.Background(), todo))
	})

	t.Run("duplicate title maps to ErrDuplicate", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		mock.ExpectExec(`UPDATE todos SET`).WillReturnError(uniqueViolation())

		repo := NewPostgresTodoStore(mock)
		todo := &models.Todo{ID: "todo-1", Title: "Taken title"}
		assert.ErrorIs(t, repo.Update(context.Background(), todo), ErrDuplicate)
	})

	t.Run("missing todo maps to ErrNotFound", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		mock.ExpectExec(`UPDATE todos SET`).
			WithArgs("gone", "Write release notes", false).
			WillReturnResult(pgxmock.NewResult("UPDATE", 0))

		repo := NewPostgresTodoStore(mock)
		todo := &models.Todo{ID: "gone", Title: "Write release notes"}
		assert.ErrorIs(t, repo.Update(context.Background(), todo), ErrNotFound)
	})
}

func TestPostgresTodoStore_Delete(t *testing.T) {
	t.Run("first delete succeeds, second returns ErrNotFound", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		mock.ExpectExec(`DELETE FROM todos`).
			WithArgs("todo-1").
			WillReturnResult(pgxmock.NewResult("DELETE", 1))
		mock.ExpectExec(`DELETE FROM todos`).
			WithArgs("todo-1").
			WillReturnResult(pgxmock.NewResult("DELETE", 0))

		repo := NewPostgresTodoStore(mock)
		require.NoError(t, repo.Delete(context.Background(), "todo-1"))
		assert.ErrorIs(t, repo.Delete(context.Background(), "todo-1"), ErrNotFound)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestPostgresTodoStore_List(t *testing.T) {
	t.Run("returns todos in creation order", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		now := time.Now()
		mock.ExpectQuery(`SELECT .+ FROM todos ORDER BY`).
			WillReturnRows(pgxmock.NewRows([]string{"id", "title", "completed", "created_at", "updated_at"}).
				AddRow("todo-1", "First", false, now, now).
				AddRow("todo-2", "Second", true, now, now))

		repo := NewPostgresTodoStore(mock)
		todos, err := repo.List(context.Background())
		require.NoError(t, err)
		require.Len(t, todos, 2)
		assert.Equal(t, "First", todos[0].Title)
		assert.True(t, todos[1].Completed)
	})
}

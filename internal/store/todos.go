package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/devconnect/connect-api/internal/models"
)

// TodoStore provides todo item persistence
type TodoStore interface {
	Insert(ctx context.Context, todo *models.Todo) error
	List(ctx context.Context) ([]*models.Todo, error)
	GetByID(ctx context.Context, id string) (*models.Todo, error)
	Update(ctx context.Context, todo *models.Todo) error
	Delete(ctx context.Context, id string) error
}

// PostgresTodoStore implements TodoStore using PostgreSQL
type PostgresTodoStore struct {
	db DB
}

// NewPostgresTodoStore creates a new PostgreSQL todo store
func NewPostgresTodoStore(db DB) *PostgresTodoStore {
	return &PostgresTodoStore{db: db}
}

// Insert persists a new todo. A duplicate title surfaces as ErrDuplicate.
func (s *PostgresTodoStore) Insert(ctx context.Context, todo *models.Todo) error {
	if todo.ID == "" {
		todo.ID = uuid.New().String()
	}

	err := s.db.QueryRow(ctx,
		`INSERT INTO todos (id, title, completed)
		 VALUES ($1, $2, $3)
		 RETURNING created_at, updated_at`,
		todo.ID, todo.Title, todo.Completed,
	).Scan(&todo.CreatedAt, &todo.UpdatedAt)

	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("todo with title %q: %w", todo.Title, ErrDuplicate)
		}
		return fmt.Errorf("failed to insert todo: %w", err)
	}

	return nil
}

// List retrieves all todos ordered by creation time
func (s *PostgresTodoStore) List(ctx context.Context) ([]*models.Todo, error) {
	rows, err := s.db.Query(ctx,
		`SELECT id, title, completed, created_at, updated_at FROM todos ORDER BY created_at`)
	if err != nil {
		return nil, fmt.Errorf("failed to list todos: %w", err)
	}
	defer rows.Close()

	var todos []*models.Todo
	for rows.Next() {
		var todo models.Todo
		if err := rows.Scan(&todo.ID, &todo.Title, &todo.Completed, &todo.CreatedAt, &todo.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan todo row: %w", err)
		}
		todos = append(todos, &todo)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate todos: %w", err)
	}

	return todos, nil
}

// GetByID retrieves a todo by ID
func (s *PostgresTodoStore) GetByID(ctx context.Context, id string) (*models.Todo, error) {
	var todo models.Todo
	err := s.db.QueryRow(ctx,
		`SELECT id, title, completed, created_at, updated_at FROM todos WHERE id = $1`,
		id,
	).Scan(&todo.ID, &todo.Title, &todo.Completed, &todo.CreatedAt, &todo.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) || isInvalidID(err) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get todo: %w", err)
	}
	return &todo, nil
}

// Update replaces the title and completed flag of an existing todo
func (s *PostgresTodoStore) Update(ctx context.Context, todo *models.Todo) error {
	tag, err := s.db.Exec(ctx,
		`UPDATE todos SET title = $2, completed = $3, updated_at = now() WHERE id = $1`,
		todo.ID, todo.Title, todo.Completed,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("todo with title %q: %w", todo.Title, ErrDuplicate)
		}
		if isInvalidID(err) {
			return ErrNotFound
		}
		return fmt.Errorf("failed to update todo: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete removes a todo by ID
func (s *PostgresTodoStore) Delete(ctx context.Context, id string) error {
	tag, err := s.db.Exec(ctx, `DELETE FROM todos WHERE id = $1`, id)
	if err != nil {
		if isInvalidID(err) {
			return ErrNotFound
		}
		return fmt.Errorf("failed to delete todo: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

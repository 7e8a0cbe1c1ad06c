package store

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/devconnect/connect-api/internal/models"
)

// ConnectionStore provides connection request persistence
type ConnectionStore interface {
	Insert(ctx context.Context, request *models.ConnectionRequest) error
	ExistsBetween(ctx context.Context, userA, userB string) (bool, error)
}

// PostgresConnectionStore implements ConnectionStore using PostgreSQL
type PostgresConnectionStore struct {
	db DB
}

// NewPostgresConnectionStore creates a new PostgreSQL connection store
func NewPostgresConnectionStore(db DB) *PostgresConnectionStore {
	return &PostgresConnectionStore{db: db}
}

// Insert persists a new connection request. The unique index over the
// unordered user pair is the authoritative duplicate guard; a violation
// surfaces as ErrDuplicate.
func (s *PostgresConnectionStore) Insert(ctx context.Context, request *models.ConnectionRequest) error {
	if request.ID == "" {
		request.ID = uuid.New().String()
	}

	err := s.db.QueryRow(ctx,
		`INSERT INTO connection_requests (id, from_user_id, to_user_id, status)
		 VALUES ($1, $2, $3, $4)
		 RETURNING created_at, updated_at`,
		request.ID, request.FromUserID, request.ToUserID, request.Status,
	).Scan(&request.CreatedAt, &request.UpdatedAt)

	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("connection request between %s and %s: %w",
				request.FromUserID, request.ToUserID, ErrDuplicate)
		}
		return fmt.Errorf("failed to insert connection request: %w", err)
	}

	return nil
}

// ExistsBetween reports whether a request already exists between the two
// users in either direction. This is a fast-path pre-check only: the check
// and the insert are separate statements, so a concurrent request can still
// slip between them and is caught by the unique index instead.
func (s *PostgresConnectionStore) ExistsBetween(ctx context.Context, userA, userB string) (bool, error) {
	var exists bool
	err := s.db.QueryRow(ctx,
		`SELECT EXISTS (
			SELECT 1 FROM connection_requests
			WHERE (from_user_id = $1 AND to_user_id = $2)
			   OR (from_user_id = $2 AND to_user_id = $1)
		)`,
		userA, userB,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check existing connection request: %w", err)
	}
	return exists, nil
}

package store

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/devconnect/connect-api/internal/models"
)

// UserStore provides user account persistence
type UserStore interface {
	Insert(ctx context.Context, user *models.User) error
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	GetByID(ctx context.Context, id string) (*models.User, error)
	List(ctx context.Context) ([]*models.User, error)
	Update(ctx context.Context, id string, fields map[string]any) (*models.User, error)
	UpdatePassword(ctx context.Context, id string, hashedPassword string) error
	Delete(ctx context.Context, id string) error
}

// PostgresUserStore implements UserStore using PostgreSQL
type PostgresUserStore struct {
	db DB
}

// NewPostgresUserStore creates a new PostgreSQL user store
func NewPostgresUserStore(db DB) *PostgresUserStore {
	return &PostgresUserStore{db: db}
}

const userColumns = `id, first_name, last_name, email, hashed_password, age, gender, profile_picture, about, skills, created_at, updated_at`

// Insert persists a new user. The ID is generated here when empty. A
// duplicate email surfaces as ErrDuplicate.
func (s *PostgresUserStore) Insert(ctx context.Context, user *models.User) error {
	if user.ID == "" {
		user.ID = uuid.New().String()
	}
	if user.ProfilePicture == "" {
		user.ProfilePicture = models.DefaultProfilePicture
	}
	if user.About == "" {
		user.About = models.DefaultAbout
	}
	user.Email = strings.ToLower(strings.TrimSpace(user.Email))

	err := s.db.QueryRow(ctx,
		`INSERT INTO users (id, first_name, last_name, email, hashed_password, age, gender, profile_picture, about, skills)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		 RETURNING created_at, updated_at`,
		user.ID, user.FirstName, user.LastName, user.Email, user.HashedPassword,
		user.Age, user.Gender, user.ProfilePicture, user.About, user.Skills,
	).Scan(&user.CreatedAt, &user.UpdatedAt)

	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("user with email %s: %w", user.Email, ErrDuplicate)
		}
		return fmt.Errorf("failed to insert user: %w", err)
	}

	return nil
}

// GetByEmail retrieves a user by normalized email
func (s *PostgresUserStore) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	return s.getBy(ctx, `SELECT `+userColumns+` FROM users WHERE email = $1`, email)
}

// GetByID retrieves a user by ID
func (s *PostgresUserStore) GetByID(ctx context.Context, id string) (*models.User, error) {
	return s.getBy(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1`, id)
}

func (s *PostgresUserStore) getBy(ctx context.Context, query string, arg any) (*models.User, error) {
	var user models.User
	err := s.db.QueryRow(ctx, query, arg).Scan(
		&user.ID, &user.FirstName, &user.LastName, &user.Email, &user.HashedPassword,
		&user.Age, &user.Gender, &user.ProfilePicture, &user.About, &user.Skills,
		&user.CreatedAt, &user.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) || isInvalidID(err) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return &user, nil
}

// List retrieves all users ordered by creation time
func (s *PostgresUserStore) List(ctx context.Context) ([]*models.User, error) {
	rows, err := s.db.Query(ctx, `SELECT `+userColumns+` FROM users ORDER BY created_at`)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	defer rows.Close()

	var users []*models.User
	for rows.Next() {
		var user models.User
		if err := rows.Scan(
			&user.ID, &user.FirstName, &user.LastName, &user.Email, &user.HashedPassword,
			&user.Age, &user.Gender, &user.ProfilePicture, &user.About, &user.Skills,
			&user.CreatedAt, &user.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan user row: %w", err)
		}
		users = append(users, &user)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate users: %w", err)
	}

	return users, nil
}

// editableColumns maps allow-listed payload keys to their columns. The
// validation layer has already rejected anything outside this set; the map
// keeps a stray key from ever reaching SQL.
var editableColumns = map[string]string{
	"firstName":      "first_name",
	"lastName":       "last_name",
	"age":            "age",
	"gender":         "gender",
	"profilePicture": "profile_picture",
	"about":          "about",
	"skills":         "skills",
	"password":       "hashed_password",
}

// Update applies a partial, allow-listed field update and returns the
// updated user. Returns ErrNotFound when no row matches the ID.
func (s *PostgresUserStore) Update(ctx context.Context, id string, fields map[string]any) (*models.User, error) {
	setClauses := make([]string, 0, len(fields))
	args := make([]any, 0, len(fields)+1)
	args = append(args, id)

	for key, value := range fields {
		column, ok := editableColumns[key]
		if !ok {
			return nil, fmt.Errorf("field %s is not editable", key)
		}
		args = append(args, value)
		setClauses = append(setClauses, fmt.Sprintf("%s = $%d", column, len(args)))
	}

	query := fmt.Sprintf(
		`UPDATE users SET %s, updated_at = now() WHERE id = $1 RETURNING `+userColumns,
		strings.Join(setClauses, ", "),
	)

	var user models.User
	err := s.db.QueryRow(ctx, query, args...).Scan(
		&user.ID, &user.FirstName, &user.LastName, &user.Email, &user.HashedPassword,
		&user.Age, &user.Gender, &user.ProfilePicture, &user.About, &user.Skills,
		&user.CreatedAt, &user.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) || isInvalidID(err) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to update user: %w", err)
	}

	return &user, nil
}

// UpdatePassword replaces the stored password hash
func (s *PostgresUserStore) UpdatePassword(ctx context.Context, id string, hashedPassword string) error {
	tag, err := s.db.Exec(ctx,
		`UPDATE users SET hashed_password = $2, updated_at = now() WHERE id = $1`,
		id, hashedPassword,
	)
	if err != nil {
		if isInvalidID(err) {
			return ErrNotFound
		}
		return fmt.Errorf("failed to update password: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete removes a user by ID. A second delete of the same ID returns
// ErrNotFound, never a second success.
func (s *PostgresUserStore) Delete(ctx context.Context, id string) error {
	tag, err := s.db.Exec(ctx, `DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		if isInvalidID(err) {
			return ErrNotFound
		}
		return fmt.Errorf("failed to delete user: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// Package store provides PostgreSQL-backed persistence for users,
// connection requests and todos.
package store

import (
	"context"
	"errors"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// Sentinel errors every repository translates driver failures into. The
// gateway maps ErrNotFound to 404 and ErrDuplicate to a 400-class conflict,
// never a 500.
var (
	ErrNotFound  = errors.New("not found")
	ErrDuplicate = errors.New("already exists")
)

// DB is the subset of pgxpool.Pool the repositories need. Narrowed to an
// interface so pgxmock can stand in during tests.
type DB interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

// isUniqueViolation reports whether the error is a PostgreSQL unique
// constraint violation (duplicate email, todo title, connection pair).
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation
}

// isInvalidID reports whether the error is PostgreSQL rejecting a malformed
// id literal. Path parameters flow into uuid columns unparsed, so a lookup
// with a garbage id is a miss, not a server fault.
func isInvalidID(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgerrcode.InvalidTextRepresentation
}

package db

import (
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// Sentinel errors repositories translate Postgres failures into, so callers
// never depend on driver types.
var (
	// ErrNotFound indicates the queried record does not exist.
	ErrNotFound = errors.New("db: record not found")

	// ErrDuplicate indicates an insert collided with a unique constraint.
	ErrDuplicate = errors.New("db: duplicate record")
)

// IsUniqueViolation checks if the error is a PostgreSQL unique constraint violation (code 23505).
func IsUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505"
	}
	return false
}

// IsForeignKeyViolation checks if the error is a PostgreSQL foreign key violation (code 23503).
func IsForeignKeyViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23503"
	}
	return false
}

// IsNoRows reports whether the error is pgx's no-rows result.
func IsNoRows(err error) bool {
	return errors.Is(err, pgx.ErrNoRows)
}

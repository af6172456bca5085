package repositories

import (
	"context"
	"errors"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jmoiron/sqlx"
)

// Storage errors.
var (
	ErrNotFound          = errors.New("record not found")
	ErrDuplicate         = errors.New("unique constraint violated")
	ErrDuplicateEmail    = duplicateError{field: "email"}
	ErrDuplicateUsername = duplicateError{field: "username"}
)

const (
	uniqueViolation  = "23505"
	usersEmailKey    = "users_email_key"
	usersUsernameKey = "users_username_key"
)

// duplicateError names the field whose uniqueness was violated.
type duplicateError struct {
	field string
}

func (e duplicateError) Error() string {
	return e.field + " already exists"
}

// Field returns the colliding column.
func (e duplicateError) Field() string {
	return e.field
}

func (e duplicateError) Unwrap() error {
	return ErrDuplicate
}

// mapConstraintError turns a postgres unique violation into a typed
// duplicate error. Other errors pass through unchanged.
func mapConstraintError(err error) error {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) || pgErr.Code != uniqueViolation {
		return err
	}
	switch {
	case pgErr.ConstraintName == usersEmailKey,
		strings.Contains(pgErr.Detail, "(email)"):
		return ErrDuplicateEmail
	case pgErr.ConstraintName == usersUsernameKey,
		strings.Contains(pgErr.Detail, "(username)"):
		return ErrDuplicateUsername
	default:
		return ErrDuplicate
	}
}

// TxGetter returns the transaction bound to ctx, or nil.
type TxGetter func(ctx context.Context) *sqlx.Tx

// executor picks the request transaction when there is one.
func executor(ctx context.Context, db *sqlx.DB, txGetter TxGetter) sqlx.ExtContext {
	if txGetter != nil {
		if tx := txGetter(ctx); tx != nil {
			return tx
		}
	}
	return db
}

// oneLine collapses a query for logging.
func oneLine(query string) string {
	return strings.Join(strings.Fields(query), " ")
}

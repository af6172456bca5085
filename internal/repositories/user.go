package repositories

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"
	"github.com/sbilibin2017/gw-bookstore/internal/logger"
	"github.com/sbilibin2017/gw-bookstore/internal/models"
)

const userColumns = `id, email, username, password_hash, confirmed, created_at, updated_at`

type UserReadRepository struct {
	db       *sqlx.DB
	txGetter TxGetter
}

func NewUserReadRepository(db *sqlx.DB, txGetter TxGetter) *UserReadRepository {
	return &UserReadRepository{db: db, txGetter: txGetter}
}

func (r *UserReadRepository) GetByID(ctx context.Context, id int64) (*models.User, error) {
	const query = `SELECT ` + userColumns + ` FROM users WHERE id = $1`
	return r.getOne(ctx, query, id)
}

func (r *UserReadRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	const query = `SELECT ` + userColumns + ` FROM users WHERE email = $1`
	return r.getOne(ctx, query, email)
}

func (r *UserReadRepository) getOne(ctx context.Context, query string, arg any) (*models.User, error) {
	var user models.User
	err := sqlx.GetContext(ctx, executor(ctx, r.db, r.txGetter), &user, query, arg)

	// Never log the row itself: it carries the password hash.
	logger.Log.Infow(
		"query", oneLine(query),
		"args", []any{arg},
		"found", err == nil,
		"error", err,
	)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &user, nil
}

// List returns all users ordered by id.
func (r *UserReadRepository) List(ctx context.Context) ([]models.User, error) {
	const query = `SELECT ` + userColumns + ` FROM users ORDER BY id`

	users := []models.User{}
	err := sqlx.SelectContext(ctx, executor(ctx, r.db, r.txGetter), &users, query)

	logger.Log.Infow(
		"query", oneLine(query),
		"result", len(users),
		"error", err,
	)

	if err != nil {
		return nil, err
	}
	return users, nil
}

type UserWriteRepository struct {
	db       *sqlx.DB
	txGetter TxGetter
}

func NewUserWriteRepository(db *sqlx.DB, txGetter TxGetter) *UserWriteRepository {
	return &UserWriteRepository{db: db, txGetter: txGetter}
}

// Create inserts the user and fills in the generated id and timestamps.
// Uniqueness of email and username is left to the table constraints.
func (r *UserWriteRepository) Create(ctx context.Context, user *models.User) error {
	const query = `
		INSERT INTO users (email, username, password_hash, confirmed, created_at, updated_at)
		VALUES ($1, $2, $3, $4, NOW(), NOW())
		RETURNING id, created_at, updated_at
	`

	err := executor(ctx, r.db, r.txGetter).
		QueryRowxContext(ctx, query, user.Email, user.Username, user.PasswordHash, user.Confirmed).
		Scan(&user.ID, &user.CreatedAt, &user.UpdatedAt)

	logger.Log.Infow(
		"query", oneLine(query),
		"args", []any{user.Email, user.Username, user.Confirmed},
		"result", user.ID,
		"error", err,
	)

	if err != nil {
		return mapConstraintError(err)
	}
	return nil
}

// Update overwrites all mutable columns of the user.
func (r *UserWriteRepository) Update(ctx context.Context, user *models.User) error {
	const query = `
		UPDATE users
		SET email = $1, username = $2, password_hash = $3, confirmed = $4, updated_at = NOW()
		WHERE id = $5
		RETURNING updated_at
	`

	err := executor(ctx, r.db, r.txGetter).
		QueryRowxContext(ctx, query, user.Email, user.Username, user.PasswordHash, user.Confirmed, user.ID).
		Scan(&user.UpdatedAt)

	logger.Log.Infow(
		"query", oneLine(query),
		"args", []any{user.Email, user.Username, user.Confirmed, user.ID},
		"error", err,
	)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrNotFound
		}
		return mapConstraintError(err)
	}
	return nil
}

// MarkConfirmed flips confirmed from false to true. It reports false when the
// row was already confirmed, so two concurrent confirmations cannot both win.
func (r *UserWriteRepository) MarkConfirmed(ctx context.Context, id int64) (bool, error) {
	const query = `
		UPDATE users
		SET confirmed = TRUE, updated_at = NOW()
		WHERE id = $1 AND confirmed = FALSE
	`

	res, err := executor(ctx, r.db, r.txGetter).ExecContext(ctx, query, id)
	var rowsAffected int64
	if res != nil {
		rowsAffected, _ = res.RowsAffected()
	}

	logger.Log.Infow(
		"query", oneLine(query),
		"args", []any{id},
		"result", rowsAffected,
		"error", err,
	)

	if err != nil {
		return false, err
	}
	return rowsAffected == 1, nil
}

// Delete removes the user and returns the deleted row.
func (r *UserWriteRepository) Delete(ctx context.Context, id int64) (*models.User, error) {
	const query = `DELETE FROM users WHERE id = $1 RETURNING ` + userColumns

	var user models.User
	err := sqlx.GetContext(ctx, executor(ctx, r.db, r.txGetter), &user, query, id)

	logger.Log.Infow(
		"query", oneLine(query),
		"args", []any{id},
		"found", err == nil,
		"error", err,
	)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &user, nil
}

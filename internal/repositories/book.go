package repositories

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"
	"github.com/sbilibin2017/gw-bookstore/internal/logger"
	"github.com/sbilibin2017/gw-bookstore/internal/models"
)

const bookColumns = `id, book_name, author_name, comments, created_at, updated_at`

// BookReadRepository handles book read operations
type BookReadRepository struct {
	db       *sqlx.DB
	txGetter TxGetter
}

func NewBookReadRepository(db *sqlx.DB, txGetter TxGetter) *BookReadRepository {
	return &BookReadRepository{db: db, txGetter: txGetter}
}

// GetByID retrieves a single book.
func (r *BookReadRepository) GetByID(ctx context.Context, id int64) (*models.Book, error) {
	const query = `SELECT ` + bookColumns + ` FROM books WHERE id = $1`

	var book models.Book
	err := sqlx.GetContext(ctx, executor(ctx, r.db, r.txGetter), &book, query, id)

	logger.Log.Infow(
		"query", oneLine(query),
		"args", []any{id},
		"result", book,
		"error", err,
	)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &book, nil
}

// List returns books ordered by id, optionally filtered by exact name.
func (r *BookReadRepository) List(ctx context.Context, bookName *string) ([]models.Book, error) {
	const query = `
		SELECT ` + bookColumns + `
		FROM books
		WHERE ($1::VARCHAR IS NULL OR book_name = $1)
		ORDER BY id
	`

	books := []models.Book{}
	err := sqlx.SelectContext(ctx, executor(ctx, r.db, r.txGetter), &books, query, bookName)

	logger.Log.Infow(
		"query", oneLine(query),
		"args", []any{bookName},
		"result", len(books),
		"error", err,
	)

	if err != nil {
		return nil, err
	}
	return books, nil
}

// BookWriteRepository handles book write operations
type BookWriteRepository struct {
	db       *sqlx.DB
	txGetter TxGetter
}

func NewBookWriteRepository(db *sqlx.DB, txGetter TxGetter) *BookWriteRepository {
	return &BookWriteRepository{db: db, txGetter: txGetter}
}

// Create inserts the book and fills in the generated id and timestamps.
func (r *BookWriteRepository) Create(ctx context.Context, book *models.Book) error {
	const query = `
		INSERT INTO books (book_name, author_name, comments, created_at, updated_at)
		VALUES ($1, $2, $3, NOW(), NOW())
		RETURNING id, created_at, updated_at
	`
	args := []any{book.BookName, book.AuthorName, book.Comments}

	err := executor(ctx, r.db, r.txGetter).
		QueryRowxContext(ctx, query, args...).
		Scan(&book.ID, &book.CreatedAt, &book.UpdatedAt)

	logger.Log.Infow(
		"query", oneLine(query),
		"args", args,
		"result", book.ID,
		"error", err,
	)

	return err
}

// Update overwrites the mutable columns of the book.
func (r *BookWriteRepository) Update(ctx context.Context, book *models.Book) error {
	const query = `
		UPDATE books
		SET book_name = $1, author_name = $2, comments = $3, updated_at = NOW()
		WHERE id = $4
		RETURNING updated_at
	`
	args := []any{book.BookName, book.AuthorName, book.Comments, book.ID}

	err := executor(ctx, r.db, r.txGetter).
		QueryRowxContext(ctx, query, args...).
		Scan(&book.UpdatedAt)

	logger.Log.Infow(
		"query", oneLine(query),
		"args", args,
		"error", err,
	)

	if errors.Is(err, sql.ErrNoRows) {
		return ErrNotFound
	}
	return err
}

// Delete removes the book and returns the deleted row.
func (r *BookWriteRepository) Delete(ctx context.Context, id int64) (*models.Book, error) {
	const query = `DELETE FROM books WHERE id = $1 RETURNING ` + bookColumns

	var book models.Book
	err := sqlx.GetContext(ctx, executor(ctx, r.db, r.txGetter), &book, query, id)

	logger.Log.Infow(
		"query", oneLine(query),
		"args", []any{id},
		"result", book,
		"error", err,
	)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &book, nil
}

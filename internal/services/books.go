package services

import (
	"context"
	"errors"

	"github.com/sbilibin2017/gw-bookstore/internal/logger"
	"github.com/sbilibin2017/gw-bookstore/internal/models"
	"github.com/sbilibin2017/gw-bookstore/internal/repositories"
)

//go:generate mockgen -source=books.go -destination=books_mock.go -package=services

// BookReader defines read-only operations for books.
type BookReader interface {
	GetByID(ctx context.Context, id int64) (*models.Book, error)
	List(ctx context.Context, bookName *string) ([]models.Book, error)
}

// BookWriter defines write operations for books.
type BookWriter interface {
	Create(ctx context.Context, book *models.Book) error
	Update(ctx context.Context, book *models.Book) error
	Delete(ctx context.Context, id int64) (*models.Book, error)
}

// BookService manages the book catalogue.
type BookService struct {
	reader BookReader
	writer BookWriter
}

// NewBookService creates a new BookService instance.
func NewBookService(reader BookReader, writer BookWriter) *BookService {
	return &BookService{
		reader: reader,
		writer: writer,
	}
}

// Get returns a book by id.
func (svc *BookService) Get(ctx context.Context, id int64) (*models.Book, error) {
	book, err := svc.reader.GetByID(ctx, id)
	if err != nil {
		return nil, svc.mapError("get", id, err)
	}
	return book, nil
}

// List returns books ordered by id, optionally filtered by exact name.
func (svc *BookService) List(ctx context.Context, bookName *string) ([]models.Book, error) {
	books, err := svc.reader.List(ctx, bookName)
	if err != nil {
		logger.Log.Errorw("failed to list books", "err", err)
		return nil, err
	}
	return books, nil
}

// Create stores a new book.
func (svc *BookService) Create(ctx context.Context, book *models.Book) (*models.Book, error) {
	if err := svc.writer.Create(ctx, book); err != nil {
		logger.Log.Errorw("failed to create book", "err", err)
		return nil, err
	}
	return book, nil
}

// Update applies patch to the book with the given id.
func (svc *BookService) Update(ctx context.Context, id int64, patch models.BookPatch) (*models.Book, error) {
	book, err := svc.reader.GetByID(ctx, id)
	if err != nil {
		return nil, svc.mapError("get", id, err)
	}

	if patch.BookName != nil {
		book.BookName = *patch.BookName
	}
	if patch.AuthorName != nil {
		book.AuthorName = patch.AuthorName
	}
	if patch.Comments != nil {
		book.Comments = patch.Comments
	}

	if err := svc.writer.Update(ctx, book); err != nil {
		return nil, svc.mapError("update", id, err)
	}
	return book, nil
}

// Delete removes a book and returns it.
func (svc *BookService) Delete(ctx context.Context, id int64) (*models.Book, error) {
	book, err := svc.writer.Delete(ctx, id)
	if err != nil {
		return nil, svc.mapError("delete", id, err)
	}
	return book, nil
}

func (svc *BookService) mapError(op string, id int64, err error) error {
	if errors.Is(err, repositories.ErrNotFound) {
		return ErrBookNotFound
	}
	logger.Log.Errorw("book operation failed", "op", op, "book_id", id, "err", err)
	return err
}

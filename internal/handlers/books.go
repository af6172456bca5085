package handlers

import (
	"context"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/sbilibin2017/gw-bookstore/internal/models"
)

//go:generate mockgen -source=books.go -destination=books_mock.go -package=handlers

const emptyBookUpdateMessage = "JSON data is empty. To update book, send PUT request with book_name, [author_name] and [comments]."

// BookLister lists books.
type BookLister interface {
	List(ctx context.Context, bookName *string) ([]models.Book, error)
}

// BookGetter fetches a book.
type BookGetter interface {
	Get(ctx context.Context, id int64) (*models.Book, error)
}

// BookCreator stores a new book.
type BookCreator interface {
	Create(ctx context.Context, book *models.Book) (*models.Book, error)
}

// BookUpdater changes a book.
type BookUpdater interface {
	Update(ctx context.Context, id int64, patch models.BookPatch) (*models.Book, error)
}

// BookDeleter removes a book.
type BookDeleter interface {
	Delete(ctx context.Context, id int64) (*models.Book, error)
}

// BookRequest is the body of book create and update requests.
// swagger:model BookRequest
type BookRequest struct {
	// required: true
	// default: Dune
	BookName *string `json:"book_name" validate:"omitempty,min=1"`

	// default: Frank Herbert
	AuthorName *string `json:"author_name"`

	Comments *string `json:"comments"`
}

// BookResponse is the public view of a book.
// swagger:model BookResponse
type BookResponse struct {
	ID         int64   `json:"id"`
	BookName   string  `json:"book_name"`
	AuthorName *string `json:"author_name"`
	Comments   *string `json:"comments"`
	URL        string  `json:"url"`
}

func newBookResponse(b *models.Book) BookResponse {
	return BookResponse{
		ID:         b.ID,
		BookName:   b.BookName,
		AuthorName: b.AuthorName,
		Comments:   b.Comments,
		URL:        "/api/books/" + strconv.FormatInt(b.ID, 10),
	}
}

// BooksResponse lists books.
// swagger:model BooksResponse
type BooksResponse struct {
	Books []BookResponse `json:"books"`
}

// NewListBooksHandler returns an HTTP handler listing books.
// @Summary List books
// @Tags books
// @Produce json
// @Param book_name query string false "Exact book name"
// @Success 200 {object} handlers.BooksResponse
// @Failure 500 {object} handlers.ErrorResponse
// @Router /books [get]
func NewListBooksHandler(svc BookLister) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var bookName *string
		if q := r.URL.Query(); q.Has("book_name") {
			name := q.Get("book_name")
			bookName = &name
		}

		books, err := svc.List(r.Context(), bookName)
		if err != nil {
			writeServiceError(w, err)
			return
		}

		resp := BooksResponse{Books: make([]BookResponse, 0, len(books))}
		for i := range books {
			resp.Books = append(resp.Books, newBookResponse(&books[i]))
		}
		writeJSON(w, http.StatusOK, resp)
	}
}

// NewGetBookHandler returns an HTTP handler fetching one book.
// @Summary Get a book
// @Tags books
// @Produce json
// @Param id path int true "Book id"
// @Success 200 {object} handlers.BookResponse
// @Failure 404 {object} handlers.ErrorResponse
// @Router /books/{id} [get]
func NewGetBookHandler(svc BookGetter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := pathID(w, r)
		if !ok {
			return
		}

		book, err := svc.Get(r.Context(), id)
		if err != nil {
			writeServiceError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, newBookResponse(book))
	}
}

// NewCreateBookHandler returns an HTTP handler adding a book.
// @Summary Add a book
// @Tags books
// @Accept json
// @Produce json
// @Param bookRequest body handlers.BookRequest true "Book"
// @Success 201 {object} handlers.BookResponse
// @Failure 400 {object} handlers.ErrorResponse
// @Router /books [post]
// @Security BasicAuth
func NewCreateBookHandler(svc BookCreator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req BookRequest
		if !decodeAndValidate(w, r, &req) {
			return
		}
		if req.BookName == nil {
			writeError(w, http.StatusBadRequest, "book_name cannot be empty.")
			return
		}

		book, err := svc.Create(r.Context(), &models.Book{
			BookName:   *req.BookName,
			AuthorName: req.AuthorName,
			Comments:   req.Comments,
		})
		if err != nil {
			writeServiceError(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, newBookResponse(book))
	}
}

// NewUpdateBookHandler returns an HTTP handler changing a book.
// @Summary Update a book
// @Tags books
// @Accept json
// @Produce json
// @Param id path int true "Book id"
// @Param bookRequest body handlers.BookRequest true "Changes"
// @Success 200 {object} handlers.BookResponse
// @Failure 400 {object} handlers.ErrorResponse
// @Failure 404 {object} handlers.ErrorResponse
// @Router /books/{id} [put]
// @Security BasicAuth
func NewUpdateBookHandler(svc BookUpdater) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := pathID(w, r)
		if !ok {
			return
		}

		var req BookRequest
		if !decodeAndValidate(w, r, &req) {
			return
		}
		patch := models.BookPatch{
			BookName:   req.BookName,
			AuthorName: req.AuthorName,
			Comments:   req.Comments,
		}
		if patch.IsEmpty() {
			writeError(w, http.StatusBadRequest, emptyBookUpdateMessage)
			return
		}

		book, err := svc.Update(r.Context(), id, patch)
		if err != nil {
			writeServiceError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, newBookResponse(book))
	}
}

// NewDeleteBookHandler returns an HTTP handler removing a book.
// @Summary Delete a book
// @Tags books
// @Produce json
// @Param id path int true "Book id"
// @Success 200 {object} handlers.BookResponse
// @Failure 404 {object} handlers.ErrorResponse
// @Router /books/{id} [delete]
// @Security BasicAuth
func NewDeleteBookHandler(svc BookDeleter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := pathID(w, r)
		if !ok {
			return
		}

		book, err := svc.Delete(r.Context(), id)
		if err != nil {
			writeServiceError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, newBookResponse(book))
	}
}

// RegisterBookReadHandlers registers the public book routes
func RegisterBookReadHandlers(r chi.Router, list, get http.HandlerFunc) {
	r.Get("/books", list)
	r.Get("/books/{id}", get)
}

// RegisterBookWriteHandlers registers the protected book routes
func RegisterBookWriteHandlers(r chi.Router, create, update, del http.HandlerFunc) {
	r.Post("/books", create)
	r.Put("/books/{id}", update)
	r.Delete("/books/{id}", del)
}

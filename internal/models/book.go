package models

import "time"

// Book represents a book row in the database.
type Book struct {
	ID         int64     `json:"id" db:"id"`                   // Primary key
	BookName   string    `json:"book_name" db:"book_name"`     // Title, required
	AuthorName *string   `json:"author_name" db:"author_name"` // Optional author
	Comments   *string   `json:"comments" db:"comments"`       // Optional free text
	CreatedAt  time.Time `json:"-" db:"created_at"`
	UpdatedAt  time.Time `json:"-" db:"updated_at"`
}

// BookPatch carries optional book changes. Nil fields are left untouched.
type BookPatch struct {
	BookName   *string
	AuthorName *string
	Comments   *string
}

// IsEmpty reports whether the patch changes nothing.
func (p BookPatch) IsEmpty() bool {
	return p.BookName == nil && p.AuthorName == nil && p.Comments == nil
}

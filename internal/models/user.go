package models

import "time"

// User represents a user record in the database.
//
// PasswordHash is written only through credentials.Store; the plaintext
// password has no field anywhere in the model.
type User struct {
	ID           int64     `json:"id" db:"id"`                 // Primary key
	Email        string    `json:"email" db:"email"`           // Unique login identifier
	Username     string    `json:"username" db:"username"`     // Unique display name
	PasswordHash string    `json:"-" db:"password_hash"`       // bcrypt hash, never serialized
	Confirmed    bool      `json:"confirmed" db:"confirmed"`   // Set by the confirmation workflow
	CreatedAt    time.Time `json:"created_at" db:"created_at"` // Creation timestamp
	UpdatedAt    time.Time `json:"updated_at" db:"updated_at"` // Last update timestamp
}

// UserPatch carries optional profile changes. Nil fields are left untouched.
type UserPatch struct {
	Email    *string
	Username *string
	Password *string
}

// IsEmpty reports whether the patch changes nothing.
func (p UserPatch) IsEmpty() bool {
	return p.Email == nil && p.Username == nil && p.Password == nil
}

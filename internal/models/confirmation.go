package models

// ConfirmationEvent is published after a confirmation token is issued so the
// mailer can deliver the confirmation link.
type ConfirmationEvent struct {
	UserID     int64  `json:"user_id"`
	Email      string `json:"email"`
	Username   string `json:"username"`
	Token      string `json:"token"`
	ConfirmURL string `json:"confirm_url"`
	IssuedAt   int64  `json:"issued_at"` // Unix seconds
}

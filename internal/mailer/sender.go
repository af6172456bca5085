// Package mailer delivers confirmation mails for events read from Kafka.
package mailer

import (
	"context"
	"fmt"
	"html"

	"github.com/sbilibin2017/gw-bookstore/internal/logger"
	"github.com/sbilibin2017/gw-bookstore/internal/models"
	"github.com/sendgrid/rest"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
)

//go:generate mockgen -source=sender.go -destination=sender_mock.go -package=mailer

const confirmationSubject = "Confirm your bookstore account"

// SendGridClient defines the part of the SendGrid client used here.
type SendGridClient interface {
	SendWithContext(ctx context.Context, email *mail.SGMailV3) (*rest.Response, error)
}

// SendGridSender sends confirmation mails through SendGrid.
type SendGridSender struct {
	client SendGridClient
	from   *mail.Email
}

// NewSendGridSender creates a sender with the given from address.
func NewSendGridSender(client SendGridClient, fromName, fromAddress string) *SendGridSender {
	return &SendGridSender{
		client: client,
		from:   mail.NewEmail(fromName, fromAddress),
	}
}

// Send delivers the confirmation link of event to its recipient.
func (s *SendGridSender) Send(ctx context.Context, event models.ConfirmationEvent) error {
	to := mail.NewEmail(event.Username, event.Email)
	plain, htmlContent := renderConfirmation(event)
	message := mail.NewSingleEmail(s.from, confirmationSubject, to, plain, htmlContent)

	resp, err := s.client.SendWithContext(ctx, message)
	if err != nil {
		logger.Log.Errorw("failed to send confirmation mail", "user_id", event.UserID, "error", err)
		return err
	}
	if resp.StatusCode >= 300 {
		logger.Log.Errorw("sendgrid rejected confirmation mail", "user_id", event.UserID, "status", resp.StatusCode, "body", resp.Body)
		return fmt.Errorf("sendgrid: unexpected status %d", resp.StatusCode)
	}

	logger.Log.Infow("confirmation mail sent", "user_id", event.UserID, "status", resp.StatusCode)
	return nil
}

func renderConfirmation(event models.ConfirmationEvent) (plain, htmlContent string) {
	plain = fmt.Sprintf(
		"Hi %s,\n\nconfirm your account by sending a POST request with your email and password to %s\n",
		event.Username, event.ConfirmURL,
	)
	htmlContent = fmt.Sprintf(
		`<p>Hi %s,</p><p>confirm your account by sending a POST request with your email and password to <a href="%s" target="_blank">%s</a></p>`,
		html.EscapeString(event.Username), html.EscapeString(event.ConfirmURL), html.EscapeString(event.ConfirmURL),
	)
	return plain, htmlContent
}

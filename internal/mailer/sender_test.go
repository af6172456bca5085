package mailer

import (
	"context"
	"errors"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/sbilibin2017/gw-bookstore/internal/models"
	"github.com/sendgrid/rest"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testEvent() models.ConfirmationEvent {
	return models.ConfirmationEvent{
		UserID:     1,
		Email:      "a@x.com",
		Username:   "alice",
		Token:      "tok",
		ConfirmURL: "http://localhost:8080/api/confirm/tok",
	}
}

func TestSendGridSender_Send(t *testing.T) {
	tests := []struct {
		name    string
		resp    *rest.Response
		err     error
		wantErr bool
	}{
		{name: "accepted", resp: &rest.Response{StatusCode: 202}},
		{name: "rejected", resp: &rest.Response{StatusCode: 401, Body: "unauthorized"}, wantErr: true},
		{name: "transport error", err: errors.New("dial tcp: timeout"), wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			client := NewMockSendGridClient(ctrl)
			client.EXPECT().SendWithContext(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, m *mail.SGMailV3) (*rest.Response, error) {
				assert.Equal(t, "Bookstore", m.From.Name)
				assert.Equal(t, "noreply@bookstore.local", m.From.Address)
				assert.Equal(t, confirmationSubject, m.Subject)
				require.Len(t, m.Personalizations, 1)
				require.Len(t, m.Personalizations[0].To, 1)
				assert.Equal(t, "a@x.com", m.Personalizations[0].To[0].Address)
				return tt.resp, tt.err
			})

			sender := NewSendGridSender(client, "Bookstore", "noreply@bookstore.local")
			err := sender.Send(context.Background(), testEvent())
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestRenderConfirmation(t *testing.T) {
	event := testEvent()
	event.Username = "<b>alice</b>"

	plain, htmlContent := renderConfirmation(event)
	assert.Contains(t, plain, event.ConfirmURL)
	assert.Contains(t, htmlContent, `href="http://localhost:8080/api/confirm/tok"`)
	assert.Contains(t, htmlContent, "&lt;b&gt;alice&lt;/b&gt;")
	assert.NotContains(t, htmlContent, "<b>alice</b>")
}

package mailer

import (
	"context"
	"errors"
	"net/smtp"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/zaqqye/agency_backend/internal/models"
)

func TestNotifyLeadSkipsWhenUnconfigured(t *testing.T) {
	m := NewSMTPMailer(SMTPConfig{}, zap.NewNop())
	m.send = func(string, smtp.Auth, string, []string, []byte) error {
		t.Fatal("send must not be called")
		return nil
	}
	assert.NoError(t, m.NotifyLead(context.Background(), models.ContactLead{Reference: "ABC"}))
}

func TestNotifyLeadSends(t *testing.T) {
	m := NewSMTPMailer(SMTPConfig{
		Host: "smtp.example.com", Port: "587",
		Username: "user", Password: "pw",
		From: "site@example.com", To: "sales@example.com",
	}, zap.NewNop())

	var gotAddr string
	var gotTo []string
	var gotMsg string
	m.send = func(addr string, _ smtp.Auth, from string, to []string, msg []byte) error {
		gotAddr, gotTo, gotMsg = addr, to, string(msg)
		return nil
	}

	err := m.NotifyLead(context.Background(), models.ContactLead{
		Reference: "K7P2QX",
		Name:      "Jane\r\nBcc: spam@example.com",
		Email:     "jane@example.com",
		Message:   "<script>hi</script>",
	})
	require.NoError(t, err)

	assert.Equal(t, "smtp.example.com:587", gotAddr)
	assert.Equal(t, []string{"sales@example.com"}, gotTo)
	assert.Contains(t, gotMsg, "Subject: New contact request K7P2QX from Jane  Bcc: spam@example.com\r\n")
	headers := strings.SplitN(gotMsg, "\r\n\r\n", 2)[0]
	assert.NotContains(t, headers, "\r\nBcc:")
	assert.Contains(t, gotMsg, "&lt;script&gt;hi&lt;/script&gt;")
}

func TestNotifyLeadWrapsSendError(t *testing.T) {
	m := NewSMTPMailer(SMTPConfig{Host: "h", Port: "25", To: "x@example.com"}, zap.NewNop())
	boom := errors.New("dial tcp: refused")
	m.send = func(string, smtp.Auth, string, []string, []byte) error { return boom }

	err := m.NotifyLead(context.Background(), models.ContactLead{Reference: "R"})
	assert.ErrorIs(t, err, boom)
}

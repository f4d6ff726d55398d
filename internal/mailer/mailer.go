// Package mailer sends contact-lead notifications to the agency inbox.
package mailer

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"net"
	"net/smtp"
	"strings"

	"go.uber.org/zap"

	"github.com/zaqqye/agency_backend/internal/config"
	"github.com/zaqqye/agency_backend/internal/models"
)

// Notifier is told about every new contact lead.
type Notifier interface {
	NotifyLead(ctx context.Context, lead models.ContactLead) error
}

type SMTPConfig struct {
	Host     string
	Port     string
	Username string
	Password string
	From     string
	To       string
}

func ConfigFrom(cfg *config.Config) SMTPConfig {
	return SMTPConfig{
		Host:     cfg.SMTPHost,
		Port:     cfg.SMTPPort,
		Username: cfg.SMTPUsername,
		Password: cfg.SMTPPassword,
		From:     cfg.SMTPFrom,
		To:       cfg.NotifyEmail,
	}
}

func (c SMTPConfig) configured() bool {
	return c.Host != "" && c.To != ""
}

type sendFunc func(addr string, a smtp.Auth, from string, to []string, msg []byte) error

// SMTPMailer delivers lead notifications over SMTP. When SMTP is not
// configured it only logs the lead.
type SMTPMailer struct {
	cfg    SMTPConfig
	logger *zap.Logger
	send   sendFunc
}

func NewSMTPMailer(cfg SMTPConfig, logger *zap.Logger) *SMTPMailer {
	return &SMTPMailer{cfg: cfg, logger: logger, send: smtp.SendMail}
}

var leadTemplate = template.Must(template.New("lead").Parse(`<h2>New contact request {{.Reference}}</h2>
<table>
<tr><td><b>Name</b></td><td>{{.Name}}</td></tr>
<tr><td><b>Email</b></td><td>{{.Email}}</td></tr>
{{if .Phone}}<tr><td><b>Phone</b></td><td>{{.Phone}}</td></tr>{{end}}
{{if .Company}}<tr><td><b>Company</b></td><td>{{.Company}}</td></tr>{{end}}
{{if .Service}}<tr><td><b>Service</b></td><td>{{.Service}}</td></tr>{{end}}
{{if .Budget}}<tr><td><b>Budget</b></td><td>{{.Budget}}</td></tr>{{end}}
</table>
<p>{{.Message}}</p>
`))

func (m *SMTPMailer) NotifyLead(ctx context.Context, lead models.ContactLead) error {
	if !m.cfg.configured() {
		m.logger.Info("smtp not configured, lead notification skipped",
			zap.String("reference", lead.Reference),
			zap.String("email", lead.Email),
		)
		return nil
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	msg, err := m.buildMessage(lead)
	if err != nil {
		return err
	}
	var auth smtp.Auth
	if m.cfg.Username != "" {
		auth = smtp.PlainAuth("", m.cfg.Username, m.cfg.Password, m.cfg.Host)
	}
	addr := net.JoinHostPort(m.cfg.Host, m.cfg.Port)
	if err := m.send(addr, auth, m.cfg.From, []string{m.cfg.To}, msg); err != nil {
		return fmt.Errorf("send lead %s: %w", lead.Reference, err)
	}
	m.logger.Info("lead notification sent", zap.String("reference", lead.Reference))
	return nil
}

func (m *SMTPMailer) buildMessage(lead models.ContactLead) ([]byte, error) {
	var body bytes.Buffer
	if err := leadTemplate.Execute(&body, lead); err != nil {
		return nil, fmt.Errorf("render lead email: %w", err)
	}
	subject := fmt.Sprintf("New contact request %s from %s", lead.Reference, sanitizeHeader(lead.Name))

	var msg bytes.Buffer
	fmt.Fprintf(&msg, "From: %s\r\n", m.cfg.From)
	fmt.Fprintf(&msg, "To: %s\r\n", m.cfg.To)
	fmt.Fprintf(&msg, "Reply-To: %s\r\n", sanitizeHeader(lead.Email))
	fmt.Fprintf(&msg, "Subject: %s\r\n", subject)
	msg.WriteString("MIME-Version: 1.0\r\n")
	msg.WriteString("Content-Type: text/html; charset=\"UTF-8\"\r\n\r\n")
	msg.Write(body.Bytes())
	return msg.Bytes(), nil
}

func sanitizeHeader(s string) string {
	return strings.NewReplacer("\r", " ", "\n", " ").Replace(s)
}

package email

import (
	"bytes"
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"net/smtp"

	jwemail "github.com/jordan-wright/email"
)

// ErrNotConfigured is returned before any connection is attempted when
// the relay credentials are incomplete.
var ErrNotConfigured = errors.New("smtp relay is not configured: SMTP_USER / SMTP_PASS / FROM_MAIL are required")

type Config struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
}

// SMTPProvider sends mail through an authenticated relay using STARTTLS.
type SMTPProvider struct {
	cfg Config
}

func NewSMTP(cfg Config) *SMTPProvider {
	return &SMTPProvider{cfg: cfg}
}

func (p *SMTPProvider) Send(ctx context.Context, msg Message) error {
	_ = ctx

	if p.cfg.Username == "" || p.cfg.Password == "" || p.cfg.From == "" {
		return ErrNotConfigured
	}

	e := jwemail.NewEmail()
	e.From = p.cfg.From
	e.To = []string{msg.To}
	e.Subject = msg.Subject
	e.Text = []byte(msg.Body)

	if len(msg.Attachment) > 0 {
		if _, err := e.Attach(bytes.NewReader(msg.Attachment), msg.AttachmentName, "application/pdf"); err != nil {
			return fmt.Errorf("attach %s: %w", msg.AttachmentName, err)
		}
	}

	addr := fmt.Sprintf("%s:%d", p.cfg.Host, p.cfg.Port)
	auth := smtp.PlainAuth("", p.cfg.Username, p.cfg.Password, p.cfg.Host)

	return e.SendWithStartTLS(addr, auth, &tls.Config{ServerName: p.cfg.Host})
}

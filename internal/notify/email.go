package notify

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/smtp"

	"github.com/emersion/go-message/mail"

	"github.com/Hemanth040/farm-management-system/internal/model"
)

// smtpSendFunc matches net/smtp.SendMail and is swappable in tests.
type smtpSendFunc func(addr string, a smtp.Auth, from string, to []string, msg []byte) error

// EmailAdapter composes notification emails with go-message and sends
// them over SMTP.
type EmailAdapter struct {
	cfg      model.SMTPConfig
	password string
	send     smtpSendFunc
}

// NewEmailAdapter creates an email adapter. The password is looked up by
// the caller (usually from the system keyring).
func NewEmailAdapter(cfg model.SMTPConfig, password string) *EmailAdapter {
	return &EmailAdapter{cfg: cfg, password: password, send: smtp.SendMail}
}

// Channel implements Adapter.
func (a *EmailAdapter) Channel() model.Channel {
	return model.ChannelEmail
}

// Send implements Adapter.
func (a *EmailAdapter) Send(ctx context.Context, n Notification) error {
	if a.cfg.Host == "" || a.cfg.From == "" || a.cfg.To == "" {
		return fmt.Errorf("smtp not configured")
	}

	msg, err := a.compose(n)
	if err != nil {
		return fmt.Errorf("composing email: %w", err)
	}

	addr := fmt.Sprintf("%s:%d", a.cfg.Host, a.cfg.Port)
	var auth smtp.Auth
	if a.cfg.Username != "" {
		auth = smtp.PlainAuth("", a.cfg.Username, a.password, a.cfg.Host)
	}
	if err := a.send(addr, auth, a.cfg.From, []string{a.cfg.To}, msg); err != nil {
		return fmt.Errorf("sending email via %s: %w", addr, err)
	}
	return nil
}

// compose builds an RFC 5322 message with a plain-text body.
func (a *EmailAdapter) compose(n Notification) ([]byte, error) {
	from := []*mail.Address{{Name: "Farm Dashboard", Address: a.cfg.From}}
	to := []*mail.Address{{Address: a.cfg.To}}

	var h mail.Header
	h.SetAddressList("From", from)
	h.SetAddressList("To", to)
	h.SetSubject(fmt.Sprintf("[%s] %s", n.Priority, n.Title))

	var buf bytes.Buffer
	mw, err := mail.CreateSingleInlineWriter(&buf, h)
	if err != nil {
		return nil, err
	}

	body := n.Body
	if body == "" {
		body = n.Title
	}
	if _, err := io.WriteString(mw, body); err != nil {
		mw.Close()
		return nil, err
	}
	if err := mw.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

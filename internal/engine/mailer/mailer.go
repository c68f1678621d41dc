// Package mailer sends plain-text alert email over an authenticated SMTP
// submission session.
package mailer

import (
	"crypto/tls"
	"fmt"
	"net/smtp"
	"strings"

	"github.com/rs/zerolog/log"
	"hookalert/internal/platform/config"
)

// Mailer opens a fresh SMTP session per call and closes it on every exit
// path. Sender and recipient are the same configured address. No retries.
type Mailer struct {
	cfg config.SMTPConfig
}

func New(cfg config.SMTPConfig) *Mailer {
	return &Mailer{cfg: cfg}
}

// VerifyLogin checks that the configured credentials can complete an SMTP
// handshake: connect, upgrade to TLS when the server offers it, authenticate,
// quit. Returns nil only on full success.
func (m *Mailer) VerifyLogin() error {
	c, err := m.session()
	if err != nil {
		return err
	}
	defer c.Close()
	return c.Quit()
}

// Send submits a single plain-text message addressed to the configured
// sender.
func (m *Mailer) Send(subject, body string) error {
	c, err := m.session()
	if err != nil {
		return err
	}
	defer c.Close()

	if err := c.Mail(m.cfg.Sender); err != nil {
		return fmt.Errorf("mail from %s: %w", m.cfg.Sender, err)
	}
	if err := c.Rcpt(m.cfg.Sender); err != nil {
		return fmt.Errorf("rcpt to %s: %w", m.cfg.Sender, err)
	}

	wc, err := c.Data()
	if err != nil {
		return fmt.Errorf("data: %w", err)
	}
	if _, err := wc.Write([]byte(m.message(subject, body))); err != nil {
		wc.Close()
		return fmt.Errorf("write message: %w", err)
	}
	if err := wc.Close(); err != nil {
		return fmt.Errorf("close message: %w", err)
	}

	if err := c.Quit(); err != nil {
		return fmt.Errorf("quit: %w", err)
	}

	log.Info().Str("subject", subject).Msg("email alert sent")
	return nil
}

// session dials the server and leaves the client authenticated and ready for
// a transaction. STARTTLS runs whenever the server advertises it.
func (m *Mailer) session() (*smtp.Client, error) {
	addr := fmt.Sprintf("%s:%d", m.cfg.Host, m.cfg.Port)

	c, err := smtp.Dial(addr)
	if err != nil {
		return nil, fmt.Errorf("connect %s: %w", addr, err)
	}

	if ok, _ := c.Extension("STARTTLS"); ok {
		if err := c.StartTLS(&tls.Config{ServerName: m.cfg.Host}); err != nil {
			c.Close()
			return nil, fmt.Errorf("starttls: %w", err)
		}
	}

	auth := smtp.PlainAuth("", m.cfg.Sender, m.cfg.Password, m.cfg.Host)
	if err := c.Auth(auth); err != nil {
		c.Close()
		return nil, fmt.Errorf("auth %s: %w", m.cfg.Sender, err)
	}

	return c, nil
}

func (m *Mailer) message(subject, body string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "From: %s\r\n", m.cfg.Sender)
	fmt.Fprintf(&b, "To: %s\r\n", m.cfg.Sender)
	fmt.Fprintf(&b, "Subject: %s\r\n", subject)
	b.WriteString("MIME-Version: 1.0\r\n")
	b.WriteString("Content-Type: text/plain; charset=UTF-8\r\n")
	b.WriteString("\r\n")
	b.WriteString(body)
	b.WriteString("\r\n")
	return b.String()
}

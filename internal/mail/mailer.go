// Package mail delivers email notifications over SMTP
package mail

import (
	"fmt"

	gomail "gopkg.in/gomail.v2"
)

// Mailer sends plain and HTML mail through one SMTP account
type Mailer struct {
	dialer *gomail.Dialer
	from   string
}

// NewMailer creates a mailer, or nil when SMTP is not configured
func NewMailer(host string, port int, username, password, from string) *Mailer {
	if host == "" || from == "" {
		return nil
	}
	return &Mailer{
		dialer: gomail.NewDialer(host, port, username, password),
		from:   from,
	}
}

// Send delivers one message to the given recipients
func (m *Mailer) Send(to []string, subject, htmlBody string) error {
	if len(to) == 0 {
		return nil
	}

	msg := gomail.NewMessage()
	msg.SetHeader("From", m.from)
	msg.SetHeader("To", to...)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/html", htmlBody)

	if err := m.dialer.DialAndSend(msg); err != nil {
		return fmt.Errorf("failed to send mail: %w", err)
	}
	return nil
}

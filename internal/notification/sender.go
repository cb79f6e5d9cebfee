package notification

import (
	"fmt"

	"gopkg.in/mail.v2"
)

// SMTPSender delivers rendered messages through an SMTP server
type SMTPSender struct {
	dialer *mail.Dialer
	from   string
}

// NewSMTPSender creates a sender for the given SMTP server and envelope sender
func NewSMTPSender(host string, port int, username, password, from string) *SMTPSender {
	return &SMTPSender{
		dialer: mail.NewDialer(host, port, username, password),
		from:   from,
	}
}

// Send sends msg as a plain text e-mail
func (s *SMTPSender) Send(msg *Message) error {
	m := mail.NewMessage()
	m.SetAddressHeader("From", s.from, "AI Literacy Toolbox")
	m.SetHeader("To", msg.To)
	if msg.ReplyTo != "" {
		m.SetHeader("Reply-To", msg.ReplyTo)
	}
	m.SetHeader("Subject", msg.Subject)
	m.SetBody("text/plain", msg.Body)

	if err := s.dialer.DialAndSend(m); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}

	return nil
}

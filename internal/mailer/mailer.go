package mailer

import (
	"net/smtp" // SMTP client from the standard library
)

// Sender delivers plain-text email. Handlers depend on this interface so tests
// can substitute a fake.
type Sender interface {
	Send(to, subject, body string) error
}

// SMTPMailer sends mail through an authenticated SMTP relay
type SMTPMailer struct {
	host string // SMTP server host
	port string // SMTP server port
	user string // SMTP username, also used as the From address
	pass string // SMTP password
}

// NewSMTPMailer builds a mailer from SMTP credentials
func NewSMTPMailer(host, port, user, pass string) *SMTPMailer {
	return &SMTPMailer{host: host, port: port, user: user, pass: pass}
}

// Send delivers one plain-text message
func (m *SMTPMailer) Send(to, subject, body string) error {
	msg := "From: " + m.user + "\r\n" +
		"To: " + to + "\r\n" +
		"Subject: " + subject + "\r\n" +
		"MIME-Version: 1.0\r\nContent-Type: text/plain; charset=utf-8\r\n\r\n" +
		body // RFC 822 style message

	var auth smtp.Auth // Auth is optional for local relays
	if m.user != "" {
		auth = smtp.PlainAuth("", m.user, m.pass, m.host) // Plain auth against the relay
	}
	return smtp.SendMail(m.host+":"+m.port, auth, m.user, []string{to}, []byte(msg)) // Deliver
}

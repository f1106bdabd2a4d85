package mailer

import "context"

type Recipient struct {
	Name  string
	Email string
}

// Message is a fully rendered email ready for transport.
type Message struct {
	To      []Recipient
	Subject string
	Text    string
	HTML    string
}

// Sender delivers a rendered message. Implementations: SMTP, MailerSend, and a
// dev sender that only logs.
type Sender interface {
	Send(ctx context.Context, msg *Message) error
}

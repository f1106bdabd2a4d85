package mailer

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/mailersend/mailersend-go"
)

type MailerSendSender struct {
	client *mailersend.Mailersend
	from   mailersend.From
}

func NewMailerSendSender(apiKey, fromName, fromEmail string) (*MailerSendSender, error) {
	if apiKey == "" || fromEmail == "" {
		return nil, fmt.Errorf("mailersend requires an API key and from address")
	}
	return &MailerSendSender{
		client: mailersend.NewMailersend(apiKey),
		from: mailersend.From{
			Name:  fromName,
			Email: fromEmail,
		},
	}, nil
}

func (m *MailerSendSender) Send(ctx context.Context, msg *Message) error {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	var recipients []mailersend.Recipient
	for _, rcpt := range msg.To {
		recipients = append(recipients, mailersend.Recipient{Name: rcpt.Name, Email: rcpt.Email})
	}

	email := m.client.Email.NewMessage()
	email.SetFrom(m.from)
	email.SetRecipients(recipients)
	email.SetSubject(msg.Subject)

	if strings.TrimSpace(msg.Text) != "" {
		email.SetText(msg.Text)
	}
	if strings.TrimSpace(msg.HTML) != "" {
		email.SetHTML(msg.HTML)
	}

	_, err := m.client.Email.Send(ctx, email)
	return err
}

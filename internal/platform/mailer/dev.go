package mailer

import (
	"context"

	"github.com/meridianadvisory/site-backend/pkg/logger"
)

// DevSender logs messages instead of delivering them.
type DevSender struct{}

func NewDevSender() *DevSender {
	return &DevSender{}
}

func (d *DevSender) Send(ctx context.Context, msg *Message) error {
	var to []string
	for _, rcpt := range msg.To {
		to = append(to, rcpt.Email)
	}

	logger.InfoContext(ctx, "[DEV MAIL] email suppressed",
		"to", to,
		"subject", msg.Subject,
		"text", msg.Text,
	)
	return nil
}

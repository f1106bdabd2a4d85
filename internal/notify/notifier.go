package notify

import (
	"context"
	"fmt"

	"github.com/meridianadvisory/site-backend/internal/domain"
	"github.com/meridianadvisory/site-backend/internal/platform/mailer"
	"github.com/meridianadvisory/site-backend/internal/utils"
	"github.com/meridianadvisory/site-backend/pkg/logger"
)

// Service renders and dispatches the notification emails.
type Service interface {
	BookingReceived(ctx context.Context, b *domain.Booking) error
	BookingConfirmed(ctx context.Context, b *domain.Booking) error
	RegistrationReceipt(ctx context.Context, reg *domain.Registration) (*DispatchResult, error)
	PaymentReceipt(ctx context.Context, reg *domain.Registration) (*DispatchResult, error)
}

// DispatchResult distinguishes full success from "user email sent, admin copy
// failed". The admin copy is best-effort; its error is recorded here instead of
// failing the dispatch.
type DispatchResult struct {
	Recipients []string
	AdminErr   error
}

type Notifier struct {
	sender      mailer.Sender
	adminEmails []string
}

func New(sender mailer.Sender, adminEmails []string) *Notifier {
	return &Notifier{
		sender:      sender,
		adminEmails: adminEmails,
	}
}

// BookingReceived alerts the admin list about a new consultation request.
func (n *Notifier) BookingReceived(ctx context.Context, b *domain.Booking) error {
	if len(n.adminEmails) == 0 {
		return fmt.Errorf("no admin recipients configured")
	}

	html, err := render("booking_received", b)
	if err != nil {
		return err
	}

	msg := &mailer.Message{
		To:      adminRecipients(n.adminEmails),
		Subject: fmt.Sprintf("New consultation request from %s", b.FullName()),
		Text: fmt.Sprintf("%s (%s) requested a %s consultation for %s. Booking ID: %s",
			b.FullName(), b.Email, b.ConsultationType, b.PreferredDate, b.ID),
		HTML: html,
	}
	return n.sender.Send(ctx, msg)
}

// BookingConfirmed tells the requester their consultation is locked in.
func (n *Notifier) BookingConfirmed(ctx context.Context, b *domain.Booking) error {
	html, err := render("booking_confirmed", b)
	if err != nil {
		return err
	}

	msg := &mailer.Message{
		To:      []mailer.Recipient{{Name: b.FullName(), Email: b.Email}},
		Subject: "Your consultation is confirmed",
		Text: fmt.Sprintf("Hi %s, your %s consultation is confirmed for %s %s. Reference: %s",
			b.FirstName, b.ConsultationType, b.PreferredDate, b.PreferredTime, b.ID),
		HTML: html,
	}
	return n.sender.Send(ctx, msg)
}

func (n *Notifier) RegistrationReceipt(ctx context.Context, reg *domain.Registration) (*DispatchResult, error) {
	return n.dispatchReceipt(ctx, reg,
		"registration_receipt", fmt.Sprintf("Registration received: %s", reg.EventTitle),
		"admin_registration_alert", fmt.Sprintf("New registration: %s", reg.CompanyName))
}

func (n *Notifier) PaymentReceipt(ctx context.Context, reg *domain.Registration) (*DispatchResult, error) {
	return n.dispatchReceipt(ctx, reg,
		"payment_receipt", fmt.Sprintf("Payment confirmed: %s", reg.EventTitle),
		"admin_payment_alert", fmt.Sprintf("Payment completed: %s", reg.CompanyName))
}

// dispatchReceipt sends the user-facing receipt, then the admin copy. The user
// email failing fails the dispatch; the admin copy failing only lands in the
// result.
func (n *Notifier) dispatchReceipt(ctx context.Context, reg *domain.Registration, userTmpl, userSubject, adminTmpl, adminSubject string) (*DispatchResult, error) {
	html, err := render(userTmpl, reg)
	if err != nil {
		return nil, err
	}

	recipients := []mailer.Recipient{{Name: reg.PrimaryContactName, Email: reg.PrimaryContactEmail}}
	if reg.CompanyEmail != "" && utils.NormalizeEmail(reg.CompanyEmail) != utils.NormalizeEmail(reg.PrimaryContactEmail) {
		recipients = append(recipients, mailer.Recipient{Name: reg.CompanyName, Email: reg.CompanyEmail})
	}

	msg := &mailer.Message{
		To:      recipients,
		Subject: userSubject,
		Text:    fmt.Sprintf("%s for %s (registration %s)", userSubject, reg.EventTitle, reg.RegistrationID),
		HTML:    html,
	}
	if err := n.sender.Send(ctx, msg); err != nil {
		return nil, fmt.Errorf("failed to send receipt email: %w", err)
	}

	result := &DispatchResult{}
	for _, rcpt := range recipients {
		result.Recipients = append(result.Recipients, rcpt.Email)
	}

	if len(n.adminEmails) > 0 {
		adminHTML, err := render(adminTmpl, reg)
		if err != nil {
			result.AdminErr = err
		} else {
			adminMsg := &mailer.Message{
				To:      adminRecipients(n.adminEmails),
				Subject: adminSubject,
				Text:    fmt.Sprintf("%s (registration %s)", adminSubject, reg.RegistrationID),
				HTML:    adminHTML,
			}
			result.AdminErr = n.sender.Send(ctx, adminMsg)
		}
		if result.AdminErr != nil {
			logger.WarnContext(ctx, "Admin notification failed",
				"error", result.AdminErr, "registration_id", reg.RegistrationID)
		}
	}

	return result, nil
}

func adminRecipients(emails []string) []mailer.Recipient {
	var out []mailer.Recipient
	for _, email := range emails {
		out = append(out, mailer.Recipient{Email: email})
	}
	return out
}

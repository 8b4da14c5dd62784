// Package mailer delivers contact form messages over SMTP.
package mailer

import (
	"context"
	"fmt"

	"inkwell/internal/config"

	"github.com/wneessen/go-mail"
)

// ContactMessage is a visitor's contact form submission.
type ContactMessage struct {
	Name    string
	Email   string
	Phone   string
	Message string
}

// Mailer sends contact messages to the configured recipient address.
type Mailer struct {
	host      string
	port      int
	sender    string
	password  string
	recipient string
}

// New creates a Mailer from configuration.
func New(cfg *config.Config) *Mailer {
	return &Mailer{
		host:      cfg.SMTPHost,
		port:      cfg.SMTPPort,
		sender:    cfg.SMTPSender,
		password:  cfg.SMTPPassword,
		recipient: cfg.ContactRecipient,
	}
}

// SendContactMessage delivers one contact form submission. The connection
// upgrades to TLS via STARTTLS and authenticates as the sender account.
func (m *Mailer) SendContactMessage(ctx context.Context, msg ContactMessage) error {
	if m.sender == "" || m.recipient == "" {
		return fmt.Errorf("contact mail is not configured (SMTP_SENDER and CONTACT_RECIPIENT required)")
	}

	mm := mail.NewMsg()
	if err := mm.From(m.sender); err != nil {
		return fmt.Errorf("invalid sender address: %w", err)
	}
	if err := mm.To(m.recipient); err != nil {
		return fmt.Errorf("invalid recipient address: %w", err)
	}
	mm.Subject("Your Blog Contact!")
	mm.SetBodyString(mail.TypeTextPlain, fmt.Sprintf(
		"Name: %s\nPhone: %s\nEmail: %s\nMessage: %s",
		msg.Name, msg.Phone, msg.Email, msg.Message,
	))

	client, err := mail.NewClient(m.host,
		mail.WithPort(m.port),
		mail.WithSMTPAuth(mail.SMTPAuthPlain),
		mail.WithUsername(m.sender),
		mail.WithPassword(m.password),
		mail.WithTLSPolicy(mail.TLSMandatory),
	)
	if err != nil {
		return fmt.Errorf("creating SMTP client: %w", err)
	}

	if err := client.DialAndSendWithContext(ctx, mm); err != nil {
		return fmt.Errorf("sending contact mail: %w", err)
	}
	return nil
}

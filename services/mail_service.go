package services

import (
	"context"
	"fmt"
	"log"

	"gopkg.in/gomail.v2"

	"github.com/cashflowx/cashflowx_backend/config"
)

// Mailer delivers the temporary password issued by forgot-password.
type Mailer interface {
	SendTempPassword(ctx context.Context, to, tempPassword string) error
}

// SMTPMailer sends mail through gomail.
type SMTPMailer struct {
	dialer *gomail.Dialer
	from   string
}

func NewSMTPMailer(cfg config.SMTPConfig) *SMTPMailer {
	return &SMTPMailer{
		dialer: gomail.NewDialer(cfg.Host, cfg.Port, cfg.User, cfg.Password),
		from:   cfg.From,
	}
}

func (m *SMTPMailer) SendTempPassword(_ context.Context, to, tempPassword string) error {
	msg := gomail.NewMessage()
	msg.SetHeader("From", m.from)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", "CashFlowX - Temporary Password")
	msg.SetBody("text/plain", tempPasswordText(tempPassword))
	msg.AddAlternative("text/html", tempPasswordHTML(tempPassword))

	if err := m.dialer.DialAndSend(msg); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}
	log.Printf("Temporary password email sent to %s", to)
	return nil
}

// LogMailer is used when SMTP is not configured. It records that a mail
// would have been sent without the password itself.
type LogMailer struct{}

func (LogMailer) SendTempPassword(_ context.Context, to, _ string) error {
	log.Printf("SMTP not configured; temporary password email for %s not sent", to)
	return nil
}

// NewMailer picks SMTP delivery when it is configured.
func NewMailer(cfg config.SMTPConfig) Mailer {
	if cfg.Enabled() {
		return NewSMTPMailer(cfg)
	}
	return LogMailer{}
}

func tempPasswordText(tempPassword string) string {
	return "CashFlowX - Temporary Password\n\n" +
		"You have requested a temporary password for your CashFlowX account.\n\n" +
		"Your temporary password: " + tempPassword + "\n\n" +
		"Please use this temporary password to sign in to your account. We recommend changing your password after signing in.\n\n" +
		"If you did not request this password, please ignore this email.\n"
}

func tempPasswordHTML(tempPassword string) string {
	return `<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto;">` +
		`<h2 style="color: #6366F1;">CashFlowX - Temporary Password</h2>` +
		`<p>You have requested a temporary password for your CashFlowX account.</p>` +
		`<p>Your temporary password: <span style="font-family: monospace;">` + tempPassword + `</span></p>` +
		`<p>Please use this temporary password to sign in to your account. We recommend changing your password after signing in.</p>` +
		`<p>If you did not request this password, please ignore this email.</p>` +
		`</div>`
}

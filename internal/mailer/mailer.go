// Package mailer sends operational email to the site administrator.
package mailer

import (
	"context"
	"fmt"

	"customcss_backend/platform/config"

	"github.com/wneessen/go-mail"
)

// UpdateNotice is the content of an update notification email.
type UpdateNotice struct {
	CurrentVersion string
	LatestVersion  string
	ReleaseURL     string
	Notes          string
}

// Mailer sends administrator notifications.
type Mailer interface {
	SendUpdateNotice(ctx context.Context, notice UpdateNotice) error
}

// SMTPMailer implements Mailer over SMTP.
type SMTPMailer struct {
	client *mail.Client
	from   string
	to     string
}

// NewSMTP builds an SMTP mailer from the email configuration. Returns nil
// (and no error) when email is disabled, so callers can skip sending.
func NewSMTP(cfg config.EmailConfig) (*SMTPMailer, error) {
	if !cfg.GetEmailEnabled() {
		return nil, nil
	}

	client, err := mail.NewClient(cfg.GetSMTPHost(),
		mail.WithPort(cfg.GetSMTPPort()),
		mail.WithSMTPAuth(mail.SMTPAuthPlain),
		mail.WithUsername(cfg.GetSMTPUsername()),
		mail.WithPassword(cfg.GetSMTPPassword()),
	)
	if err != nil {
		return nil, fmt.Errorf("build smtp client: %w", err)
	}

	return &SMTPMailer{
		client: client,
		from:   cfg.GetEmailFromAddress(),
		to:     cfg.GetAdminEmail(),
	}, nil
}

// SendUpdateNotice emails the administrator that a newer version exists.
func (m *SMTPMailer) SendUpdateNotice(ctx context.Context, notice UpdateNotice) error {
	msg := mail.NewMsg()
	if err := msg.From(m.from); err != nil {
		return fmt.Errorf("set from address: %w", err)
	}
	if err := msg.To(m.to); err != nil {
		return fmt.Errorf("set to address: %w", err)
	}

	msg.Subject(fmt.Sprintf("Custom CSS Manager update available: %s", notice.LatestVersion))
	msg.SetBodyString(mail.TypeTextPlain, fmt.Sprintf(
		"A new version of Custom CSS Manager is available.\n\n"+
			"Installed version: %s\n"+
			"Latest version:    %s\n"+
			"Release page:      %s\n\n"+
			"%s\n",
		notice.CurrentVersion, notice.LatestVersion, notice.ReleaseURL, notice.Notes))

	if err := m.client.DialAndSendWithContext(ctx, msg); err != nil {
		return fmt.Errorf("send update notice: %w", err)
	}
	return nil
}

var _ Mailer = (*SMTPMailer)(nil)

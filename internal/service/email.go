package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/macromind/backend/internal/markdown"
	"github.com/resend/resend-go/v2"
)

type EmailService struct {
	client    *resend.Client
	parser    *markdown.Parser
	fromEmail string
	isDev     bool
	appName   string
}

// NewEmailService returns a service that only logs in development or when
// no API key is configured.
func NewEmailService(apiKey, fromEmail, appName string, isDev bool) *EmailService {
	var client *resend.Client
	if apiKey != "" && !isDev {
		client = resend.NewClient(apiKey)
	}

	return &EmailService{
		client:    client,
		parser:    markdown.NewParser(),
		fromEmail: fromEmail,
		isDev:     isDev,
		appName:   appName,
	}
}

func (s *EmailService) SendWelcomeEmail(ctx context.Context, email, name string) error {
	return s.send(ctx, "welcome", email, name)
}

func (s *EmailService) SendPasswordChangedEmail(ctx context.Context, email, name string) error {
	return s.send(ctx, "password_changed", email, name)
}

func (s *EmailService) SendAccountDeletedEmail(ctx context.Context, email, name string) error {
	return s.send(ctx, "account_deleted", email, name)
}

func (s *EmailService) send(ctx context.Context, kind, to, name string) error {
	msg, err := renderEmail(s.parser, kind, name, s.appName)
	if err != nil {
		return err
	}

	if s.isDev {
		slog.Info("email sent (dev mode)", "type", kind, "to", to, "subject", msg.Subject)
		return nil
	}

	if s.client == nil {
		return fmt.Errorf("email service not configured (missing RESEND_API_KEY)")
	}

	params := &resend.SendEmailRequest{
		From:    s.fromEmail,
		To:      []string{to},
		Subject: msg.Subject,
		Html:    msg.HTML,
		Text:    msg.Text,
	}

	_, err = s.client.Emails.SendWithContext(ctx, params)
	if err == nil {
		slog.Info("email sent", "type", kind, "to", to)
	}
	return err
}

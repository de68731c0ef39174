// Package notification delivers buyer email through SendGrid, or to the log
// when no API key is configured.
package notification

import (
	"context"
	"fmt"
	"strings"

	apporder "github.com/marketplace/backend/internal/application/order"
	"github.com/marketplace/backend/internal/infrastructure/config"
	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
	"go.uber.org/zap"
)

// SendGridMailer sends transactional email through the SendGrid v3 API
type SendGridMailer struct {
	client   *sendgrid.Client
	fromName string
	fromAddr string
	logger   *zap.Logger
}

// SendGridOption configures a SendGridMailer
type SendGridOption func(*SendGridMailer)

// WithEndpoint overrides the mail send URL
func WithEndpoint(url string) SendGridOption {
	return func(m *SendGridMailer) {
		m.client.Request.BaseURL = url
	}
}

// NewSendGridMailer creates a mailer for the given API key
func NewSendGridMailer(apiKey, fromAddr, fromName string, logger *zap.Logger, opts ...SendGridOption) *SendGridMailer {
	if logger == nil {
		logger = zap.NewNop()
	}
	m := &SendGridMailer{
		client:   sendgrid.NewSendClient(apiKey),
		fromName: fromName,
		fromAddr: fromAddr,
		logger:   logger,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Send implements order.Mailer
func (m *SendGridMailer) Send(ctx context.Context, email apporder.Email) error {
	if strings.TrimSpace(email.To) == "" {
		return fmt.Errorf("email has no recipient")
	}

	message := mail.NewSingleEmail(
		mail.NewEmail(m.fromName, m.fromAddr),
		email.Subject,
		mail.NewEmail(email.ToName, email.To),
		email.PlainText,
		email.HTML,
	)

	resp, err := m.client.SendWithContext(ctx, message)
	if err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}
	if resp.StatusCode >= 300 {
		return fmt.Errorf("sendgrid rejected email: status %d: %s", resp.StatusCode, resp.Body)
	}

	m.logger.Debug("email sent",
		zap.String("subject", email.Subject),
		zap.Int("status", resp.StatusCode),
	)
	return nil
}

// LogMailer writes email to the logger instead of sending it. Used in
// development and whenever SendGrid is not configured.
type LogMailer struct {
	logger *zap.Logger
}

// NewLogMailer creates a LogMailer
func NewLogMailer(logger *zap.Logger) *LogMailer {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &LogMailer{logger: logger}
}

// Send implements order.Mailer
func (m *LogMailer) Send(_ context.Context, email apporder.Email) error {
	m.logger.Info("email (not sent)",
		zap.String("to", email.To),
		zap.String("subject", email.Subject),
		zap.String("body", email.PlainText),
	)
	return nil
}

// NewMailer picks SendGrid when an API key is configured
func NewMailer(cfg config.MailConfig, logger *zap.Logger) apporder.Mailer {
	if cfg.SendGridAPIKey == "" {
		return NewLogMailer(logger)
	}
	return NewSendGridMailer(cfg.SendGridAPIKey, cfg.FromAddress, cfg.FromName, logger)
}

var (
	_ apporder.Mailer = (*SendGridMailer)(nil)
	_ apporder.Mailer = (*LogMailer)(nil)
)

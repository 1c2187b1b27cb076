// Package notification delivers outbound email.
package notification

import (
	"context"
	"errors"
	"strings"

	"github.com/RaymondAkiiki/property-management-webapp-sub001/internal/infrastructure/config"
	"go.uber.org/zap"
)

// ErrNoRecipients is returned when an email has no addresses
var ErrNoRecipients = errors.New("notification: email has no recipients")

// Attachment is a file sent with an email
type Attachment struct {
	Filename    string
	ContentType string
	Data        []byte
}

// Email is one outbound message
type Email struct {
	To          []string
	Subject     string
	TextBody    string
	HTMLBody    string
	Attachments []Attachment
}

// Validate checks the minimum fields required for delivery
func (e *Email) Validate() error {
	if len(e.To) == 0 {
		return ErrNoRecipients
	}
	for _, to := range e.To {
		if strings.TrimSpace(to) == "" || strings.ContainsAny(to, "\r\n") {
			return errors.New("notification: invalid recipient address")
		}
	}
	if strings.ContainsAny(e.Subject, "\r\n") {
		return errors.New("notification: subject must be a single line")
	}
	return nil
}

// EmailSender delivers emails
type EmailSender interface {
	Send(ctx context.Context, email *Email) error
}

// NewEmailSender returns an SMTP sender when email is enabled and a host is
// configured, otherwise a sender that only logs
func NewEmailSender(cfg *config.EmailConfig, logger *zap.Logger) EmailSender {
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg == nil || !cfg.Enabled || cfg.Host == "" {
		return NewLogSender(logger)
	}
	return NewSMTPSender(SMTPConfig{
		Host:     cfg.Host,
		Port:     cfg.Port,
		Username: cfg.Username,
		Password: cfg.Password,
		From:     cfg.From,
	}, logger)
}

// LogSender logs emails instead of delivering them
type LogSender struct {
	logger *zap.Logger
}

// NewLogSender creates a LogSender
func NewLogSender(logger *zap.Logger) *LogSender {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &LogSender{logger: logger}
}

// Send implements EmailSender
func (s *LogSender) Send(_ context.Context, email *Email) error {
	if err := email.Validate(); err != nil {
		return err
	}
	s.logger.Info("Email not delivered, email disabled",
		zap.Strings("to", email.To),
		zap.String("subject", email.Subject),
		zap.Int("attachments", len(email.Attachments)))
	return nil
}

var _ EmailSender = (*LogSender)(nil)

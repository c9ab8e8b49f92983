// Package messaging renders templated messages and dispatches them through a
// delivery backend, returning receipts that prove dispatch without exposing
// the destination.
package messaging

import (
	"context"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"worldsmith/internal/account"
	"worldsmith/internal/account/contact"
	"worldsmith/internal/platform/metrics"
	dErrors "worldsmith/pkg/domain-errors"
)

// Service implements message dispatch for the account flows.
type Service struct {
	registry *Registry
	sender   Sender
	logger   *slog.Logger
	metrics  *metrics.Metrics
}

type Option func(*Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Service) {
		s.metrics = m
	}
}

func New(registry *Registry, sender Sender, opts ...Option) *Service {
	s := &Service{
		registry: registry,
		sender:   sender,
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// SendToEmail dispatches to a bare address. The receipt echoes the address
// the caller already submitted.
func (s *Service) SendToEmail(ctx context.Context, templateID string, email contact.Email, locale string, variables map[string]string) (account.SentMessage, error) {
	subject, body, err := s.render(templateID, locale, variables)
	if err != nil {
		return account.SentMessage{}, err
	}
	if err := s.sender.SendEmail(ctx, email, subject, body); err != nil {
		return account.SentMessage{}, dErrors.Wrap(err, dErrors.CodeInternal, "failed to send email message")
	}
	return s.receipt(ctx, templateID, account.ContactTypeEmail, email.Address), nil
}

// SendToPhone dispatches an SMS. The receipt masks the number.
func (s *Service) SendToPhone(ctx context.Context, templateID string, phone contact.Phone, locale string, variables map[string]string) (account.SentMessage, error) {
	_, body, err := s.render(templateID, locale, variables)
	if err != nil {
		return account.SentMessage{}, err
	}
	if err := s.sender.SendSMS(ctx, phone, body); err != nil {
		return account.SentMessage{}, dErrors.Wrap(err, dErrors.CodeInternal, "failed to send sms message")
	}
	return s.receipt(ctx, templateID, account.ContactTypePhone, phone.Masked()), nil
}

// SendToUser dispatches to the user's stored contact of the given type.
func (s *Service) SendToUser(ctx context.Context, templateID string, user *account.User, contactType account.ContactType, locale string, variables map[string]string) (account.SentMessage, error) {
	switch contactType {
	case account.ContactTypeEmail:
		if user.Email == nil {
			return account.SentMessage{}, dErrors.New(dErrors.CodeMissingConfiguration, "the user has no email address").
				WithDetails("user_id", user.ID.String())
		}
		return s.SendToEmail(ctx, templateID, *user.Email, locale, variables)
	case account.ContactTypePhone:
		if user.Phone == nil {
			return account.SentMessage{}, dErrors.New(dErrors.CodeMissingConfiguration, "the user has no phone number").
				WithDetails("user_id", user.ID.String())
		}
		return s.SendToPhone(ctx, templateID, *user.Phone, locale, variables)
	default:
		return account.SentMessage{}, dErrors.Newf(dErrors.CodeInternal, "unknown contact type %q", contactType)
	}
}

func (s *Service) render(templateID, locale string, variables map[string]string) (subject, body string, err error) {
	t, err := s.registry.Resolve(templateID, locale)
	if err != nil {
		return "", "", err
	}
	var b strings.Builder
	if err := t.Body.Execute(&b, variables); err != nil {
		return "", "", dErrors.Wrap(err, dErrors.CodeInternal, "failed to render message")
	}
	return t.Subject, b.String(), nil
}

func (s *Service) receipt(ctx context.Context, templateID string, contactType account.ContactType, maskedContact string) account.SentMessage {
	receipt := account.SentMessage{
		ConfirmationNumber: uuid.NewString(),
		ContactType:        contactType,
		MaskedContact:      maskedContact,
	}
	if s.metrics != nil {
		s.metrics.IncrementMessagesSent(string(contactType))
	}
	s.logger.DebugContext(ctx, "message sent",
		"template", templateID, "contact_type", contactType, "confirmation_number", receipt.ConfirmationNumber)
	return receipt
}

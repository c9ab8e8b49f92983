// Package service implements the account orchestration flows: sign-in,
// password reset, and the OTP-guarded phone flows. It coordinates the user
// directory, token, OTP, messaging, and session collaborators and owns no
// durable state of its own.
package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"

	"worldsmith/internal/account"
	"worldsmith/internal/account/contact"
	"worldsmith/internal/platform/metrics"
)

//go:generate mockgen -source=service.go -destination=mocks/mocks.go -package=mocks

// UserDirectory is the identity store collaborator. Find methods return a
// nil user without error when nothing matches.
type UserDirectory interface {
	FindByIdentifier(ctx context.Context, identifier string) (*account.User, error)
	FindByID(ctx context.Context, id uuid.UUID) (*account.User, error)
	Create(ctx context.Context, email contact.Email) (*account.User, error)
	Authenticate(ctx context.Context, user *account.User, password string) (*account.User, error)
	UpdateEmail(ctx context.Context, id uuid.UUID, email contact.Email) (*account.User, error)
	UpdatePhone(ctx context.Context, id uuid.UUID, phone contact.Phone) (*account.User, error)
	ResetPassword(ctx context.Context, id uuid.UUID, newPassword string) (*account.User, error)
	CompleteProfile(ctx context.Context, id uuid.UUID, completion account.ProfileCompletion) (*account.User, error)
}

// TokenService mints and validates the signed single-purpose tokens.
// Invalidate is best-effort: it reports success and never raises.
type TokenService interface {
	Issue(ctx context.Context, spec account.TokenSpec) (account.IssuedToken, error)
	Validate(ctx context.Context, token, tokenType string, consume bool) (account.TokenClaims, error)
	Invalidate(ctx context.Context, token, tokenType string) bool
}

// OtpService issues and validates one-time passwords. The plaintext code is
// only present on the value returned by Issue.
type OtpService interface {
	Issue(ctx context.Context, userID uuid.UUID, purpose string, phone *contact.Phone) (account.OneTimePassword, error)
	Validate(ctx context.Context, id uuid.UUID, code, purpose string) (account.OneTimePassword, error)
}

// MessageService delivers a templated message and returns a receipt proving
// dispatch without exposing the destination.
type MessageService interface {
	SendToEmail(ctx context.Context, template string, email contact.Email, locale string, variables map[string]string) (account.SentMessage, error)
	SendToPhone(ctx context.Context, template string, phone contact.Phone, locale string, variables map[string]string) (account.SentMessage, error)
	SendToUser(ctx context.Context, template string, user *account.User, contactType account.ContactType, locale string, variables map[string]string) (account.SentMessage, error)
}

// SessionService owns session lifecycles.
type SessionService interface {
	Create(ctx context.Context, user *account.User, attributes map[string]string) (account.Session, error)
	Renew(ctx context.Context, refreshToken string, attributes map[string]string) (account.Session, error)
	Revoke(ctx context.Context, sessionID uuid.UUID) error
	RevokeByUser(ctx context.Context, userID uuid.UUID) error
}

// SignInPublisher notifies downstream consumers of successful sign-ins.
type SignInPublisher interface {
	Publish(ctx context.Context, event account.UserSignedIn) error
}

// Message template identifiers, selected by flow and contact type.
const (
	TemplateAccountAuthentication          = "AccountAuthentication"
	TemplatePasswordRecovery               = "PasswordRecovery"
	TemplateMultiFactorAuthenticationEmail = "MultiFactorAuthenticationEmail"
	TemplateMultiFactorAuthenticationPhone = "MultiFactorAuthenticationPhone"
	TemplateContactVerificationPhone       = "ContactVerificationPhone"
)

// PasswordPolicy bounds user-chosen passwords.
type PasswordPolicy struct {
	MinLength int
}

func DefaultPasswordPolicy() PasswordPolicy {
	return PasswordPolicy{MinLength: 8}
}

// Service orchestrates the account flows. It is stateless; every durable
// artifact lives behind one of the collaborator interfaces.
type Service struct {
	directory UserDirectory
	tokens    TokenService
	otps      OtpService
	messages  MessageService
	sessions  SessionService
	publisher SignInPublisher

	logger    *slog.Logger
	metrics   *metrics.Metrics
	tracer    trace.Tracer
	passwords PasswordPolicy
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

func WithPasswordPolicy(policy PasswordPolicy) Option {
	return func(s *Service) {
		s.passwords = policy
	}
}

func WithTracer(tracer trace.Tracer) Option {
	return func(s *Service) {
		s.tracer = tracer
	}
}

// New constructs a Service. All collaborators are required.
func New(
	directory UserDirectory,
	tokens TokenService,
	otps OtpService,
	messages MessageService,
	sessions SessionService,
	publisher SignInPublisher,
	opts ...Option,
) (*Service, error) {
	if directory == nil {
		return nil, fmt.Errorf("user directory is required")
	}
	if tokens == nil {
		return nil, fmt.Errorf("token service is required")
	}
	if otps == nil {
		return nil, fmt.Errorf("otp service is required")
	}
	if messages == nil {
		return nil, fmt.Errorf("message service is required")
	}
	if sessions == nil {
		return nil, fmt.Errorf("session service is required")
	}
	if publisher == nil {
		return nil, fmt.Errorf("sign-in publisher is required")
	}

	svc := &Service{
		directory: directory,
		tokens:    tokens,
		otps:      otps,
		messages:  messages,
		sessions:  sessions,
		publisher: publisher,
		logger:    slog.Default(),
		tracer:    otel.Tracer("worldsmith/internal/account/service"),
		passwords: DefaultPasswordPolicy(),
	}
	for _, opt := range opts {
		opt(svc)
	}
	return svc, nil
}

func mfaTemplate(contactType account.ContactType) string {
	if contactType == account.ContactTypePhone {
		return TemplateMultiFactorAuthenticationPhone
	}
	return TemplateMultiFactorAuthenticationEmail
}

// Package otp issues and validates short-lived numeric one-time passwords.
// Codes are stored hashed; the plaintext only exists on the value returned
// by Issue so callers can hand it to the message service.
package otp

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"log/slog"
	"math/big"
	"time"

	"github.com/google/uuid"

	"worldsmith/internal/account"
	"worldsmith/internal/account/contact"
	dErrors "worldsmith/pkg/domain-errors"
)

const codeLength = 6

// Record is the stored shape of a one-time password.
type Record struct {
	ID        uuid.UUID      `json:"id"`
	UserID    uuid.UUID      `json:"user_id"`
	Purpose   string         `json:"purpose"`
	CodeHash  string         `json:"code_hash"`
	Phone     *contact.Phone `json:"phone,omitempty"`
	ExpiresAt time.Time      `json:"expires_at"`
}

// Store persists records for the duration of their lifetime. Get returns a
// nil record without error when nothing matches.
type Store interface {
	Save(ctx context.Context, record Record, ttl time.Duration) error
	Get(ctx context.Context, id uuid.UUID) (*Record, error)
	IncrementAttempts(ctx context.Context, id uuid.UUID, ttl time.Duration) (int, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// Service generates and checks codes against a Store.
type Service struct {
	store       Store
	lifetime    time.Duration
	maxAttempts int
	logger      *slog.Logger
	now         func() time.Time
}

type Option func(*Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

// WithClock overrides the time source; tests use it to age codes.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		s.now = now
	}
}

func New(store Store, lifetime time.Duration, maxAttempts int, opts ...Option) *Service {
	s := &Service{
		store:       store,
		lifetime:    lifetime,
		maxAttempts: maxAttempts,
		logger:      slog.Default(),
		now:         time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Issue creates a fresh code bound to the user and purpose. The phone, when
// present, is carried through validation so the caller can mark it verified.
func (s *Service) Issue(ctx context.Context, userID uuid.UUID, purpose string, phone *contact.Phone) (account.OneTimePassword, error) {
	code, err := generateCode()
	if err != nil {
		return account.OneTimePassword{}, dErrors.Wrap(err, dErrors.CodeInternal, "failed to generate one-time password")
	}

	record := Record{
		ID:        uuid.New(),
		UserID:    userID,
		Purpose:   purpose,
		CodeHash:  hashCode(code),
		Phone:     phone,
		ExpiresAt: s.now().Add(s.lifetime),
	}
	if err := s.store.Save(ctx, record, s.lifetime); err != nil {
		return account.OneTimePassword{}, dErrors.Wrap(err, dErrors.CodeInternal, "failed to store one-time password")
	}

	s.logger.DebugContext(ctx, "one-time password issued",
		"one_time_password_id", record.ID, "purpose", purpose, "user_id", userID)

	return account.OneTimePassword{
		ID:        record.ID,
		Code:      code,
		Purpose:   purpose,
		UserID:    userID,
		Phone:     phone,
		ExpiresAt: record.ExpiresAt,
	}, nil
}

// Validate checks a submitted code. The code is single-use: a successful
// validation deletes the record. Wrong codes burn an attempt; once attempts
// are exhausted the code is dead even if the right one arrives later.
func (s *Service) Validate(ctx context.Context, id uuid.UUID, code, purpose string) (account.OneTimePassword, error) {
	record, err := s.store.Get(ctx, id)
	if err != nil {
		return account.OneTimePassword{}, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load one-time password")
	}
	if record == nil {
		return account.OneTimePassword{}, invalidOTP("not_found", id)
	}
	if s.now().After(record.ExpiresAt) {
		return account.OneTimePassword{}, invalidOTP("expired", id)
	}

	if record.Purpose != purpose {
		return account.OneTimePassword{}, dErrors.New(dErrors.CodeInvalidCredentials, "the one-time password is not valid").
			WithDetails("one_time_password_id", id.String(), "expected_purpose", purpose, "actual_purpose", record.Purpose)
	}

	if hashCode(code) != record.CodeHash {
		attempts, err := s.store.IncrementAttempts(ctx, id, time.Until(record.ExpiresAt))
		if err != nil {
			return account.OneTimePassword{}, dErrors.Wrap(err, dErrors.CodeInternal, "failed to record failed attempt")
		}
		if attempts >= s.maxAttempts {
			if err := s.store.Delete(ctx, id); err != nil {
				s.logger.WarnContext(ctx, "failed to delete exhausted one-time password",
					"one_time_password_id", id, "error", err)
			}
			return account.OneTimePassword{}, invalidOTP("exhausted", id)
		}
		return account.OneTimePassword{}, invalidOTP("incorrect", id)
	}

	if err := s.store.Delete(ctx, id); err != nil {
		return account.OneTimePassword{}, dErrors.Wrap(err, dErrors.CodeInternal, "failed to consume one-time password")
	}

	return account.OneTimePassword{
		ID:        record.ID,
		Purpose:   record.Purpose,
		UserID:    record.UserID,
		Phone:     record.Phone,
		ExpiresAt: record.ExpiresAt,
	}, nil
}

func invalidOTP(reason string, id uuid.UUID) error {
	return dErrors.New(dErrors.CodeInvalidCredentials, "the one-time password is not valid").
		WithDetails("one_time_password_id", id.String(), "reason", reason)
}

func generateCode() (string, error) {
	digits := make([]byte, codeLength)
	max := big.NewInt(10)
	for i := range digits {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", err
		}
		digits[i] = byte('0' + n.Int64())
	}
	return string(digits), nil
}

func hashCode(code string) string {
	sum := sha256.Sum256([]byte(code))
	return hex.EncodeToString(sum[:])
}

// Package token implements the single-purpose token collaborator on signed
// JWTs. Single-use semantics come from a consumption registry keyed by the
// token id, so validation-with-consume stays atomic across replicas.
package token

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"worldsmith/internal/account"
	"worldsmith/internal/account/contact"
	dErrors "worldsmith/pkg/domain-errors"
)

// ConsumptionRegistry tracks spent token ids until they expire on their own.
type ConsumptionRegistry interface {
	// Consume marks a token id as spent. It returns false when the id was
	// already spent.
	Consume(ctx context.Context, jti string, ttl time.Duration) (bool, error)
	IsConsumed(ctx context.Context, jti string) (bool, error)
}

type claims struct {
	jwt.RegisteredClaims

	TokenType string `json:"purpose"`
	SingleUse bool   `json:"single_use,omitempty"`

	Email         string `json:"email,omitempty"`
	EmailVerified string `json:"email_verified,omitempty"`

	// PhoneNumber is the E.164 form, with ";ext=" appended when there is
	// an extension.
	PhoneNumber      string `json:"phone_number,omitempty"`
	PhoneVerified    string `json:"phone_number_verified,omitempty"`
	PhoneCountryCode string `json:"phone_country_code,omitempty"`
	PhoneNumberRaw   string `json:"phone_number_raw,omitempty"`
}

// Service signs and validates tokens with a shared HMAC key.
type Service struct {
	signingKey      []byte
	issuer          string
	defaultLifetime time.Duration
	registry        ConsumptionRegistry
	now             func() time.Time
}

type Option func(*Service)

// WithClock overrides the time source; tests use it to age tokens.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		s.now = now
	}
}

func New(signingKey, issuer string, defaultLifetime time.Duration, registry ConsumptionRegistry, opts ...Option) *Service {
	s := &Service{
		signingKey:      []byte(signingKey),
		issuer:          issuer,
		defaultLifetime: defaultLifetime,
		registry:        registry,
		now:             time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Issue mints a signed token for the spec.
func (s *Service) Issue(ctx context.Context, spec account.TokenSpec) (account.IssuedToken, error) {
	_ = ctx

	lifetime := spec.Lifetime
	if lifetime <= 0 {
		lifetime = s.defaultLifetime
	}
	now := s.now()
	expiresAt := now.Add(lifetime)

	c := claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Subject:   spec.Subject,
			Issuer:    s.issuer,
			Audience:  []string{s.issuer},
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
		TokenType: spec.Type,
		SingleUse: spec.SingleUse,
	}
	if spec.Email != nil {
		c.Email = spec.Email.Address
		c.EmailVerified = strconv.FormatBool(spec.Email.Verified)
	}
	if spec.Phone != nil {
		c.PhoneNumber = spec.Phone.RFC3966Extension()
		c.PhoneVerified = strconv.FormatBool(spec.Phone.Verified)
		c.PhoneCountryCode = spec.Phone.CountryCode
		c.PhoneNumberRaw = spec.Phone.Number
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, c).SignedString(s.signingKey)
	if err != nil {
		return account.IssuedToken{}, dErrors.Wrap(err, dErrors.CodeInternal, "failed to sign token")
	}
	return account.IssuedToken{Value: signed, ExpiresAt: expiresAt}, nil
}

// Validate checks signature, expiry, and type, then enforces single-use
// consumption through the registry.
func (s *Service) Validate(ctx context.Context, token, tokenType string, consume bool) (account.TokenClaims, error) {
	c, err := s.parse(token)
	if err != nil {
		return account.TokenClaims{}, err
	}

	if c.TokenType != tokenType {
		return account.TokenClaims{}, dErrors.New(dErrors.CodeInvalidCredentials, "the token is not valid").
			WithDetails("reason", "wrong_type", "expected_type", tokenType, "actual_type", c.TokenType)
	}

	consumed, err := s.registry.IsConsumed(ctx, c.ID)
	if err != nil {
		return account.TokenClaims{}, dErrors.Wrap(err, dErrors.CodeInternal, "failed to check token consumption")
	}
	if consumed {
		return account.TokenClaims{}, dErrors.New(dErrors.CodeInvalidCredentials, "the token is not valid").
			WithDetails("reason", "consumed")
	}

	if consume && c.SingleUse {
		ok, err := s.registry.Consume(ctx, c.ID, time.Until(c.ExpiresAt.Time))
		if err != nil {
			return account.TokenClaims{}, dErrors.Wrap(err, dErrors.CodeInternal, "failed to consume token")
		}
		if !ok {
			return account.TokenClaims{}, dErrors.New(dErrors.CodeInvalidCredentials, "the token is not valid").
				WithDetails("reason", "consumed")
		}
	}

	return toTokenClaims(c), nil
}

// Invalidate marks a token spent regardless of its single-use setting.
// Best-effort: it reports success and never raises.
func (s *Service) Invalidate(ctx context.Context, token, tokenType string) bool {
	c, err := s.parse(token)
	if err != nil || c.TokenType != tokenType {
		return false
	}
	ok, err := s.registry.Consume(ctx, c.ID, time.Until(c.ExpiresAt.Time))
	return err == nil && ok
}

func (s *Service) parse(token string) (*claims, error) {
	parsed, err := jwt.ParseWithClaims(token, &claims{}, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrTokenUnverifiable
		}
		return s.signingKey, nil
	}, jwt.WithTimeFunc(s.now), jwt.WithIssuer(s.issuer))
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, dErrors.New(dErrors.CodeInvalidCredentials, "the token is not valid").
				WithDetails("reason", "expired")
		}
		return nil, dErrors.New(dErrors.CodeInvalidCredentials, "the token is not valid").
			WithDetails("reason", "invalid")
	}
	c, ok := parsed.Claims.(*claims)
	if !ok || !parsed.Valid {
		return nil, dErrors.New(dErrors.CodeInvalidCredentials, "the token is not valid").
			WithDetails("reason", "invalid")
	}
	return c, nil
}

func toTokenClaims(c *claims) account.TokenClaims {
	out := account.TokenClaims{Subject: c.Subject}

	if c.Email != "" {
		verified, _ := strconv.ParseBool(c.EmailVerified)
		out.Email = &contact.Email{Address: c.Email, Verified: verified}
	}

	if c.PhoneNumber != "" && c.PhoneNumberRaw != "" {
		e164, ext := contact.ParseRFC3966(c.PhoneNumber)
		verified, _ := strconv.ParseBool(c.PhoneVerified)
		out.Phone = &contact.Phone{
			CountryCode: c.PhoneCountryCode,
			Number:      c.PhoneNumberRaw,
			Extension:   ext,
			E164:        e164,
			Verified:    verified,
		}
	}
	return out
}

// Package session owns session lifecycles: issuance with rotating refresh
// tokens, renewal, and revocation. Devices are derived from the User-Agent
// attribute when the client supplies one.
package session

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/base64"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/mssola/useragent"

	"worldsmith/internal/account"
	dErrors "worldsmith/pkg/domain-errors"
)

const (
	refreshTokenPrefix = "RT"
	secretLength       = 32
)

// Record is the stored shape of a session. The refresh secret is kept
// hashed; the plaintext only ever lives inside the issued token.
type Record struct {
	ID         uuid.UUID         `json:"id"`
	UserID     uuid.UUID         `json:"user_id"`
	SecretHash []byte            `json:"secret_hash"`
	Attributes map[string]string `json:"attributes,omitempty"`
	Device     *account.Device   `json:"device,omitempty"`
	CreatedAt  time.Time         `json:"created_at"`
	UpdatedAt  time.Time         `json:"updated_at"`
}

// Store persists session records. Get returns nil without error when
// nothing matches.
type Store interface {
	Save(ctx context.Context, record Record) error
	Get(ctx context.Context, id uuid.UUID) (*Record, error)
	Delete(ctx context.Context, id uuid.UUID) error
	DeleteByUser(ctx context.Context, userID uuid.UUID) error
}

// Service implements session issuance and revocation over a Store.
type Service struct {
	store  Store
	logger *slog.Logger
	now    func() time.Time
}

type Option func(*Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		s.now = now
	}
}

func New(store Store, opts ...Option) *Service {
	s := &Service{
		store:  store,
		logger: slog.Default(),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Create issues a session with a fresh refresh token.
func (s *Service) Create(ctx context.Context, user *account.User, attributes map[string]string) (account.Session, error) {
	secret, hash, err := newSecret()
	if err != nil {
		return account.Session{}, dErrors.Wrap(err, dErrors.CodeInternal, "failed to generate session secret")
	}

	now := s.now()
	record := Record{
		ID:         uuid.New(),
		UserID:     user.ID,
		SecretHash: hash,
		Attributes: attributes,
		Device:     deviceFrom(attributes),
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if err := s.store.Save(ctx, record); err != nil {
		return account.Session{}, dErrors.Wrap(err, dErrors.CodeInternal, "failed to store session")
	}

	s.logger.DebugContext(ctx, "session created", "session_id", record.ID, "user_id", user.ID)
	return toSession(record, formatRefreshToken(record.ID, secret)), nil
}

// Renew rotates the refresh token. The old token is dead after a successful
// renewal; attributes, when provided, replace the stored ones.
func (s *Service) Renew(ctx context.Context, refreshToken string, attributes map[string]string) (account.Session, error) {
	id, secret, err := parseRefreshToken(refreshToken)
	if err != nil {
		return account.Session{}, err
	}

	record, err := s.store.Get(ctx, id)
	if err != nil {
		return account.Session{}, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load session")
	}
	if record == nil || !secretMatches(record.SecretHash, secret) {
		return account.Session{}, dErrors.New(dErrors.CodeInvalidCredentials, "the refresh token is not valid")
	}

	newPlain, newHash, err := newSecret()
	if err != nil {
		return account.Session{}, dErrors.Wrap(err, dErrors.CodeInternal, "failed to generate session secret")
	}
	record.SecretHash = newHash
	record.UpdatedAt = s.now()
	if attributes != nil {
		record.Attributes = attributes
		record.Device = deviceFrom(attributes)
	}
	if err := s.store.Save(ctx, *record); err != nil {
		return account.Session{}, dErrors.Wrap(err, dErrors.CodeInternal, "failed to store session")
	}

	return toSession(*record, formatRefreshToken(record.ID, newPlain)), nil
}

func (s *Service) Revoke(ctx context.Context, sessionID uuid.UUID) error {
	if err := s.store.Delete(ctx, sessionID); err != nil {
		return dErrors.Wrap(err, dErrors.CodeInternal, "failed to revoke session")
	}
	s.logger.DebugContext(ctx, "session revoked", "session_id", sessionID)
	return nil
}

func (s *Service) RevokeByUser(ctx context.Context, userID uuid.UUID) error {
	if err := s.store.DeleteByUser(ctx, userID); err != nil {
		return dErrors.Wrap(err, dErrors.CodeInternal, "failed to revoke sessions")
	}
	s.logger.DebugContext(ctx, "sessions revoked", "user_id", userID)
	return nil
}

func toSession(record Record, refreshToken string) account.Session {
	return account.Session{
		ID:           record.ID,
		UserID:       record.UserID,
		RefreshToken: refreshToken,
		Attributes:   record.Attributes,
		Device:       record.Device,
		CreatedAt:    record.CreatedAt,
	}
}

func newSecret() (plain string, hash []byte, err error) {
	raw := make([]byte, secretLength)
	if _, err := rand.Read(raw); err != nil {
		return "", nil, err
	}
	plain = base64.RawURLEncoding.EncodeToString(raw)
	sum := sha256.Sum256([]byte(plain))
	return plain, sum[:], nil
}

func secretMatches(hash []byte, secret string) bool {
	sum := sha256.Sum256([]byte(secret))
	return subtle.ConstantTimeCompare(hash, sum[:]) == 1
}

func formatRefreshToken(id uuid.UUID, secret string) string {
	return fmt.Sprintf("%s.%s.%s", refreshTokenPrefix, id, secret)
}

func parseRefreshToken(token string) (uuid.UUID, string, error) {
	parts := strings.Split(token, ".")
	if len(parts) != 3 || parts[0] != refreshTokenPrefix {
		return uuid.Nil, "", dErrors.New(dErrors.CodeInvalidCredentials, "the refresh token is not valid")
	}
	id, err := uuid.Parse(parts[1])
	if err != nil {
		return uuid.Nil, "", dErrors.New(dErrors.CodeInvalidCredentials, "the refresh token is not valid")
	}
	return id, parts[2], nil
}

// deviceFrom parses the User-Agent attribute, when present, into a Device.
func deviceFrom(attributes map[string]string) *account.Device {
	raw, ok := attributes["User-Agent"]
	if !ok || raw == "" {
		return nil
	}
	ua := useragent.New(raw)
	browser, version := ua.Browser()
	return &account.Device{
		Browser:        browser,
		BrowserVersion: version,
		OS:             ua.OSInfo().Name,
		Mobile:         ua.Mobile(),
	}
}

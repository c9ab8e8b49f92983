// Package directory implements the user identity store. The service owns
// credential hashing and profile mutations; persistence sits behind the
// Store interface with in-memory and Postgres implementations.
package directory

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"worldsmith/internal/account"
	"worldsmith/internal/account/contact"
	dErrors "worldsmith/pkg/domain-errors"
)

// Store persists users and their password hashes. Get methods return nil
// without error when nothing matches.
type Store interface {
	Insert(ctx context.Context, user account.User) error
	Update(ctx context.Context, user account.User) error
	GetByID(ctx context.Context, id uuid.UUID) (*account.User, error)
	GetByIdentifier(ctx context.Context, identifier string) (*account.User, error)
	GetPasswordHash(ctx context.Context, id uuid.UUID) ([]byte, error)
	SetPasswordHash(ctx context.Context, id uuid.UUID, hash []byte) error
}

// Service exposes the directory operations the account flows need.
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

func (s *Service) FindByIdentifier(ctx context.Context, identifier string) (*account.User, error) {
	user, err := s.store.GetByIdentifier(ctx, identifier)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to look up user")
	}
	return user, nil
}

func (s *Service) FindByID(ctx context.Context, id uuid.UUID) (*account.User, error) {
	user, err := s.store.GetByID(ctx, id)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load user")
	}
	return user, nil
}

// Create provisions a passwordless user from a verified email. The unique
// name starts as the address itself.
func (s *Service) Create(ctx context.Context, email contact.Email) (*account.User, error) {
	now := s.now()
	user := account.User{
		ID:         uuid.New(),
		UniqueName: email.Address,
		Email:      &email,
		MFAMode:    account.MFAModeNone,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if err := s.store.Insert(ctx, user); err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to create user")
	}
	s.logger.InfoContext(ctx, "user created", "user_id", user.ID, "unique_name", user.UniqueName)
	return &user, nil
}

// Authenticate checks the password and records the authentication time. The
// failure is deliberately indistinct from an unknown identifier.
func (s *Service) Authenticate(ctx context.Context, user *account.User, password string) (*account.User, error) {
	hash, err := s.store.GetPasswordHash(ctx, user.ID)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load credentials")
	}
	if hash == nil || bcrypt.CompareHashAndPassword(hash, []byte(password)) != nil {
		return nil, dErrors.New(dErrors.CodeInvalidCredentials, "the credentials are not valid")
	}

	updated := *user
	at := s.now()
	updated.AuthenticatedAt = &at
	updated.UpdatedAt = at
	if err := s.store.Update(ctx, updated); err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to record authentication")
	}
	return &updated, nil
}

func (s *Service) UpdateEmail(ctx context.Context, id uuid.UUID, email contact.Email) (*account.User, error) {
	return s.mutate(ctx, id, func(user *account.User) error {
		user.Email = &email
		return nil
	})
}

func (s *Service) UpdatePhone(ctx context.Context, id uuid.UUID, phone contact.Phone) (*account.User, error) {
	return s.mutate(ctx, id, func(user *account.User) error {
		user.Phone = &phone
		return nil
	})
}

func (s *Service) ResetPassword(ctx context.Context, id uuid.UUID, newPassword string) (*account.User, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to hash password")
	}
	return s.mutate(ctx, id, func(user *account.User) error {
		if err := s.store.SetPasswordHash(ctx, id, hash); err != nil {
			return err
		}
		at := s.now()
		user.HasPassword = true
		user.PasswordChangedAt = &at
		return nil
	})
}

// CompleteProfile applies the onboarding data and stamps the completion
// marker. The phone, when present, arrives already verified.
func (s *Service) CompleteProfile(ctx context.Context, id uuid.UUID, completion account.ProfileCompletion) (*account.User, error) {
	var hash []byte
	if completion.Password != nil {
		var err error
		hash, err = bcrypt.GenerateFromPassword([]byte(*completion.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to hash password")
		}
	}

	return s.mutate(ctx, id, func(user *account.User) error {
		user.FirstName = completion.FirstName
		user.MiddleName = completion.MiddleName
		user.LastName = completion.LastName
		user.Birthdate = completion.Birthdate
		user.Gender = completion.Gender
		user.Locale = completion.Locale
		user.TimeZone = completion.TimeZone
		user.MFAMode = completion.MFAMode
		if completion.Phone != nil {
			user.Phone = completion.Phone
		}
		if hash != nil {
			if err := s.store.SetPasswordHash(ctx, id, hash); err != nil {
				return err
			}
			at := s.now()
			user.HasPassword = true
			user.PasswordChangedAt = &at
		}
		at := s.now()
		user.ProfileCompletedAt = &at
		return nil
	})
}

func (s *Service) mutate(ctx context.Context, id uuid.UUID, apply func(*account.User) error) (*account.User, error) {
	user, err := s.store.GetByID(ctx, id)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load user")
	}
	if user == nil {
		return nil, dErrors.Newf(dErrors.CodeNotFound, "user %s no longer exists", id)
	}
	if err := apply(user); err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to update user")
	}
	user.UpdatedAt = s.now()
	if err := s.store.Update(ctx, *user); err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to update user")
	}
	return user, nil
}

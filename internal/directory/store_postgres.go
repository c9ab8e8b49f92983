package directory

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/google/uuid"

	"worldsmith/internal/account"
	"worldsmith/internal/account/contact"
)

// Schema is the DDL for the users table. Applied by deployment tooling, kept
// here so the store and its table evolve together.
const Schema = `
CREATE TABLE IF NOT EXISTS users (
    id                   UUID PRIMARY KEY,
    unique_name          TEXT NOT NULL,
    email_address        TEXT,
    email_verified       BOOLEAN NOT NULL DEFAULT FALSE,
    phone_country_code   TEXT,
    phone_number         TEXT,
    phone_extension      TEXT,
    phone_e164           TEXT,
    phone_verified       BOOLEAN NOT NULL DEFAULT FALSE,
    password_hash        BYTEA,
    first_name           TEXT NOT NULL DEFAULT '',
    middle_name          TEXT NOT NULL DEFAULT '',
    last_name            TEXT NOT NULL DEFAULT '',
    birthdate            TIMESTAMPTZ,
    gender               TEXT NOT NULL DEFAULT '',
    locale               TEXT NOT NULL DEFAULT '',
    time_zone            TEXT NOT NULL DEFAULT '',
    mfa_mode             TEXT NOT NULL DEFAULT 'None',
    profile_completed_at TIMESTAMPTZ,
    created_at           TIMESTAMPTZ NOT NULL,
    updated_at           TIMESTAMPTZ NOT NULL,
    password_changed_at  TIMESTAMPTZ,
    authenticated_at     TIMESTAMPTZ
);

CREATE UNIQUE INDEX IF NOT EXISTS users_unique_name_idx ON users (LOWER(unique_name));
CREATE UNIQUE INDEX IF NOT EXISTS users_email_address_idx ON users (LOWER(email_address)) WHERE email_address IS NOT NULL;
`

const userColumns = `id, unique_name, email_address, email_verified,
	phone_country_code, phone_number, phone_extension, phone_e164, phone_verified,
	password_hash IS NOT NULL,
	first_name, middle_name, last_name, birthdate, gender, locale, time_zone,
	mfa_mode, profile_completed_at, created_at, updated_at, password_changed_at, authenticated_at`

// PostgresStore persists users in a Postgres database via a pgx pool.
type PostgresStore struct {
	pool *pgxpool.Pool
}

func NewPostgresStore(pool *pgxpool.Pool) *PostgresStore {
	return &PostgresStore{pool: pool}
}

func (s *PostgresStore) Insert(ctx context.Context, user account.User) error {
	_, err := s.pool.Exec(ctx, `
		INSERT INTO users (
			id, unique_name, email_address, email_verified,
			phone_country_code, phone_number, phone_extension, phone_e164, phone_verified,
			first_name, middle_name, last_name, birthdate, gender, locale, time_zone,
			mfa_mode, profile_completed_at, created_at, updated_at, password_changed_at, authenticated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20, $21, $22)`,
		insertArgs(user)...)
	if err != nil {
		return fmt.Errorf("insert user %s: %w", user.ID, err)
	}
	return nil
}

func (s *PostgresStore) Update(ctx context.Context, user account.User) error {
	tag, err := s.pool.Exec(ctx, `
		UPDATE users SET
			unique_name = $2, email_address = $3, email_verified = $4,
			phone_country_code = $5, phone_number = $6, phone_extension = $7, phone_e164 = $8, phone_verified = $9,
			first_name = $10, middle_name = $11, last_name = $12, birthdate = $13, gender = $14, locale = $15, time_zone = $16,
			mfa_mode = $17, profile_completed_at = $18, created_at = $19, updated_at = $20, password_changed_at = $21, authenticated_at = $22
		WHERE id = $1`,
		insertArgs(user)...)
	if err != nil {
		return fmt.Errorf("update user %s: %w", user.ID, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("update user %s: no such user", user.ID)
	}
	return nil
}

func (s *PostgresStore) GetByID(ctx context.Context, id uuid.UUID) (*account.User, error) {
	row := s.pool.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1`, id)
	return scanUser(row)
}

func (s *PostgresStore) GetByIdentifier(ctx context.Context, identifier string) (*account.User, error) {
	row := s.pool.QueryRow(ctx, `
		SELECT `+userColumns+` FROM users
		WHERE LOWER(unique_name) = LOWER($1) OR LOWER(email_address) = LOWER($1)
		LIMIT 1`, identifier)
	return scanUser(row)
}

func (s *PostgresStore) GetPasswordHash(ctx context.Context, id uuid.UUID) ([]byte, error) {
	var hash []byte
	err := s.pool.QueryRow(ctx, `SELECT password_hash FROM users WHERE id = $1`, id).Scan(&hash)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load password hash for %s: %w", id, err)
	}
	return hash, nil
}

func (s *PostgresStore) SetPasswordHash(ctx context.Context, id uuid.UUID, hash []byte) error {
	tag, err := s.pool.Exec(ctx, `UPDATE users SET password_hash = $2 WHERE id = $1`, id, hash)
	if err != nil {
		return fmt.Errorf("set password hash for %s: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("set password hash for %s: no such user", id)
	}
	return nil
}

func insertArgs(user account.User) []any {
	var emailAddress *string
	emailVerified := false
	if user.Email != nil {
		emailAddress = &user.Email.Address
		emailVerified = user.Email.Verified
	}

	var phoneCountryCode, phoneNumber, phoneExtension, phoneE164 *string
	phoneVerified := false
	if user.Phone != nil {
		phoneCountryCode = &user.Phone.CountryCode
		phoneNumber = &user.Phone.Number
		phoneExtension = &user.Phone.Extension
		phoneE164 = &user.Phone.E164
		phoneVerified = user.Phone.Verified
	}

	return []any{
		user.ID, user.UniqueName, emailAddress, emailVerified,
		phoneCountryCode, phoneNumber, phoneExtension, phoneE164, phoneVerified,
		user.FirstName, user.MiddleName, user.LastName, user.Birthdate, user.Gender, user.Locale, user.TimeZone,
		string(user.MFAMode), user.ProfileCompletedAt, user.CreatedAt, user.UpdatedAt, user.PasswordChangedAt, user.AuthenticatedAt,
	}
}

func scanUser(row pgx.Row) (*account.User, error) {
	var (
		user account.User

		emailAddress  *string
		emailVerified bool

		phoneCountryCode *string
		phoneNumber      *string
		phoneExtension   *string
		phoneE164        *string
		phoneVerified    bool

		mfaMode string
	)

	err := row.Scan(
		&user.ID, &user.UniqueName, &emailAddress, &emailVerified,
		&phoneCountryCode, &phoneNumber, &phoneExtension, &phoneE164, &phoneVerified,
		&user.HasPassword,
		&user.FirstName, &user.MiddleName, &user.LastName, &user.Birthdate, &user.Gender, &user.Locale, &user.TimeZone,
		&mfaMode, &user.ProfileCompletedAt, &user.CreatedAt, &user.UpdatedAt, &user.PasswordChangedAt, &user.AuthenticatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("scan user: %w", err)
	}

	if emailAddress != nil {
		user.Email = &contact.Email{Address: *emailAddress, Verified: emailVerified}
	}
	if phoneNumber != nil {
		phone := contact.Phone{Number: *phoneNumber, Verified: phoneVerified}
		if phoneCountryCode != nil {
			phone.CountryCode = *phoneCountryCode
		}
		if phoneExtension != nil {
			phone.Extension = *phoneExtension
		}
		if phoneE164 != nil {
			phone.E164 = *phoneE164
		}
		user.Phone = &phone
	}
	user.MFAMode = account.MFAMode(mfaMode)

	return &user, nil
}

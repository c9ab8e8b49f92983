// Package account defines the domain types for authentication and
// onboarding: the sign-in request and outcome variants, the user DTO
// exposed by the directory, and the artifacts exchanged with the token,
// OTP, and messaging collaborators.
package account

import (
	"time"

	"github.com/google/uuid"

	"worldsmith/internal/account/contact"
)

// MFAMode selects the second factor channel required after password
// authentication.
type MFAMode string

const (
	MFAModeNone  MFAMode = "None"
	MFAModeEmail MFAMode = "Email"
	MFAModePhone MFAMode = "Phone"
)

// Valid reports whether the mode is one of the known values.
func (m MFAMode) Valid() bool {
	switch m {
	case MFAModeNone, MFAModeEmail, MFAModePhone:
		return true
	}
	return false
}

// User is the directory's view of an account. The MFA mode and the profile
// completion timestamp are first-class fields here even though the backing
// directory may store them as extension attributes.
type User struct {
	ID         uuid.UUID
	UniqueName string

	Email *contact.Email
	Phone *contact.Phone

	HasPassword bool

	FirstName  string
	MiddleName string
	LastName   string
	Birthdate  *time.Time
	Gender     string
	Locale     string
	TimeZone   string

	MFAMode            MFAMode
	ProfileCompletedAt *time.Time

	CreatedAt         time.Time
	UpdatedAt         time.Time
	PasswordChangedAt *time.Time
	AuthenticatedAt   *time.Time
}

// ProfileCompleted reports whether onboarding is finished. A user may carry
// partial profile data from earlier attempts; only the full set plus the
// explicit completion marker counts.
func (u *User) ProfileCompleted() bool {
	return u.ProfileCompletedAt != nil &&
		u.FirstName != "" &&
		u.LastName != "" &&
		u.Locale != "" &&
		u.TimeZone != ""
}

// Subject returns the token subject bound to this user.
func (u *User) Subject() string { return u.ID.String() }

// Session is issued by the session service once the gate lets a user
// through. Attributes are caller-supplied (client IP, user agent, ...).
type Session struct {
	ID           uuid.UUID
	UserID       uuid.UUID
	RefreshToken string
	Attributes   map[string]string
	Device       *Device
	CreatedAt    time.Time
}

// Device is derived from the User-Agent session attribute when present.
type Device struct {
	Browser        string
	BrowserVersion string
	OS             string
	Mobile         bool
}

// ContactType distinguishes message destinations and receipt kinds.
type ContactType string

const (
	ContactTypeEmail ContactType = "email"
	ContactTypePhone ContactType = "phone"
)

// SentMessage proves a message was dispatched without exposing the full
// destination.
type SentMessage struct {
	ConfirmationNumber string
	ContactType        ContactType
	MaskedContact      string
}

// UserSignedIn is published after every successful session issuance so the
// actor directory can keep its bookkeeping current.
type UserSignedIn struct {
	SessionID uuid.UUID
	UserID    uuid.UUID
	At        time.Time
}

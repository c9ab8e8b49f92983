package account

import (
	"time"

	"github.com/google/uuid"

	"worldsmith/internal/account/contact"
)

// SignInRequest is the inbound payload for the sign-in flow. Exactly one of
// the four branch fields must be populated; the service validates the shape
// and converts it to a closed variant before any side effect.
type SignInRequest struct {
	Locale string

	Credentials         *Credentials
	AuthenticationToken string
	OneTimePassword     *OneTimePasswordSubmission
	Profile             *ProfileCompletionSubmission
}

// Credentials starts a sign-in from an email-shaped identifier. A nil
// Password asks the server whether a password is required or a sign-in link
// should be sent.
type Credentials struct {
	EmailAddress string
	Password     *string
}

// OneTimePasswordSubmission answers a pending OTP challenge.
type OneTimePasswordSubmission struct {
	ID   uuid.UUID
	Code string
}

// ProfileCompletionSubmission finishes onboarding under the authority of a
// profile-completion token.
type ProfileCompletionSubmission struct {
	Token string
	ProfileFields
	// Password is set when the user chooses one during onboarding.
	Password *string
	MFAMode  MFAMode
}

// ProfileFields is the onboarding profile data shared by the completion
// submission and the directory update.
type ProfileFields struct {
	FirstName  string
	MiddleName string
	LastName   string
	Birthdate  *time.Time
	Gender     string
	Locale     string
	TimeZone   string
}

// ProfileCompletion is the directory update applied when onboarding
// finishes. The phone comes from verified token claims, never from the
// submission itself.
type ProfileCompletion struct {
	ProfileFields
	Password *string
	MFAMode  MFAMode
	Phone    *contact.Phone
}

// ResetPasswordRequest is the inbound payload for the two-phase reset flow:
// either an email address (phase A) or a token plus new password (phase B).
type ResetPasswordRequest struct {
	Locale string

	EmailAddress string
	Token        string
	NewPassword  *string
}

// PhoneInput is the raw candidate phone submitted by a client.
type PhoneInput struct {
	CountryCode string
	Number      string
	Extension   string
}

/// ChangePhoneRequest guards a phone mutation for an authenticated user:
// either a new phone (step 1) or an OTP answer (step 2).
type ChangePhoneRequest struct {
	Locale string

	NewPhone        *PhoneInput
	OneTimePassword *OneTimePasswordSubmission
}

// VerifyPhoneRequest is the onboarding variant of the phone flow, authorized
// by a profile-completion token instead of a session.
type VerifyPhoneRequest struct {
	Locale                 string
	ProfileCompletionToken string

	NewPhone        *PhoneInput
	OneTimePassword *OneTimePasswordSubmission
}

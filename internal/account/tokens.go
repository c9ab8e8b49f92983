package account

import (
	"time"

	"github.com/google/uuid"

	"worldsmith/internal/account/contact"
)

// Token types bind every issued token to the single flow allowed to consume
// it. The values are wire-stable; changing one invalidates outstanding
// tokens of that type.
const (
	TokenTypeAuthentication    = "auth+jwt"
	TokenTypePasswordRecovery  = "reset_password+jwt"
	TokenTypeProfileCompletion = "profile+jwt"
)

// OTP purposes play the same role for one-time passwords.
const (
	PurposeMultiFactorAuthentication = "MultiFactorAuthentication"
	PurposeContactVerification       = "ContactVerification"
)

// TokenSpec describes a token to mint. Subject and contact claims are both
// optional: an authentication token for an unregistered email carries only
// the email claim.
type TokenSpec struct {
	Type    string
	Subject string
	Email   *contact.Email
	Phone   *contact.Phone
	// SingleUse tokens are invalidated when validated with consume=true.
	// Profile completion tokens are minted reusable so the phone
	// verification step can present the same token more than once.
	SingleUse bool
	// Lifetime overrides the service default when positive.
	Lifetime time.Duration
}

// IssuedToken is the opaque signed artifact handed to the client.
type IssuedToken struct {
	Value     string
	ExpiresAt time.Time
}

// TokenClaims is the server-side content recovered from a validated token.
type TokenClaims struct {
	Subject string
	Email   *contact.Email
	Phone   *contact.Phone
}

// OneTimePassword is a short-lived numeric challenge bound to a user and a
// purpose. Code is populated only by Issue; Validate returns the metadata
// with the code blanked.
type OneTimePassword struct {
	ID        uuid.UUID
	Code      string
	Purpose   string
	UserID    uuid.UUID
	Phone     *contact.Phone
	ExpiresAt time.Time
}

package account

import "github.com/google/uuid"

// SignInOutcome is the closed set of sign-in results. Exactly one concrete
// type comes back from every successful orchestration call.
type SignInOutcome interface{ isSignInOutcome() }

// ResetPasswordOutcome is the closed set of password-reset results.
type ResetPasswordOutcome interface{ isResetPasswordOutcome() }

// ChangePhoneOutcome is the closed set of phone-change results.
type ChangePhoneOutcome interface{ isChangePhoneOutcome() }

// VerifyPhoneOutcome is the closed set of phone-verification results.
type VerifyPhoneOutcome interface{ isVerifyPhoneOutcome() }

// AuthenticationLinkSent reports that a sign-in link was emailed. The same
// shape is returned whether or not the identifier resolved to an account.
type AuthenticationLinkSent struct {
	Message SentMessage
}

// PasswordRequired tells the client to re-prompt with a password field.
// No external write happened.
type PasswordRequired struct{}

// OneTimePasswordChallenge reports that a code was dispatched and must be
// submitted together with its id.
type OneTimePasswordChallenge struct {
	OneTimePasswordID uuid.UUID
	Message           SentMessage
}

// ProfileCompletionRequired withholds the session until onboarding finishes.
// Token authorizes the completion submission.
type ProfileCompletionRequired struct {
	Token string
}

// SessionIssued is the terminal success.
type SessionIssued struct {
	Session Session
}

// RecoveryLinkSent acknowledges phase A of the reset flow. It is returned
// for unknown addresses too, with a fabricated confirmation number.
type RecoveryLinkSent struct {
	Message SentMessage
}

// PhoneChanged reports a verified phone applied to the user.
type PhoneChanged struct {
	User *User
}

func (AuthenticationLinkSent) isSignInOutcome()    {}
func (PasswordRequired) isSignInOutcome()          {}
func (OneTimePasswordChallenge) isSignInOutcome()  {}
func (ProfileCompletionRequired) isSignInOutcome() {}
func (SessionIssued) isSignInOutcome()             {}

func (RecoveryLinkSent) isResetPasswordOutcome()          {}
func (ProfileCompletionRequired) isResetPasswordOutcome() {}
func (SessionIssued) isResetPasswordOutcome()             {}

func (OneTimePasswordChallenge) isChangePhoneOutcome() {}
func (PhoneChanged) isChangePhoneOutcome()             {}

func (OneTimePasswordChallenge) isVerifyPhoneOutcome()  {}
func (ProfileCompletionRequired) isVerifyPhoneOutcome() {}

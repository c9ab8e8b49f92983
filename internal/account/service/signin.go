package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"

	"worldsmith/internal/account"
	"worldsmith/internal/account/contact"
	dErrors "worldsmith/pkg/domain-errors"
)

// SignIn routes one sign-in submission through exactly one branch and
// returns exactly one outcome. Side effects are sequential and at-most-once;
// retries belong to the collaborators.
func (s *Service) SignIn(ctx context.Context, req account.SignInRequest, attributes map[string]string) (account.SignInOutcome, error) {
	ctx, span := s.tracer.Start(ctx, "account.SignIn")
	defer span.End()

	branch, err := s.validateSignIn(req)
	if err != nil {
		return nil, err
	}

	var outcome account.SignInOutcome
	switch b := branch.(type) {
	case credentialsBranch:
		outcome, err = s.signInWithCredentials(ctx, b, req.Locale, attributes)
	case authenticationTokenBranch:
		outcome, err = s.signInWithToken(ctx, b.token, attributes)
	case oneTimePasswordBranch:
		outcome, err = s.signInWithOneTimePassword(ctx, b, attributes)
	case profileCompletionBranch:
		outcome, err = s.completeProfile(ctx, b, attributes)
	default:
		return nil, dErrors.Newf(dErrors.CodeInternal, "unhandled sign-in branch %T", branch)
	}
	if err != nil {
		return nil, err
	}

	kind := outcomeKind(outcome)
	span.SetAttributes(attribute.String("signin.outcome", kind))
	if s.metrics != nil {
		s.metrics.ObserveSignInOutcome(kind)
	}
	return outcome, nil
}

// signInWithCredentials covers the identifier+password entry point: link
// dispatch for unknown or passwordless accounts, the password re-prompt,
// password authentication, and the MFA fan-out.
func (s *Service) signInWithCredentials(ctx context.Context, b credentialsBranch, locale string, attributes map[string]string) (account.SignInOutcome, error) {
	user, err := s.directory.FindByIdentifier(ctx, b.email.Address)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to look up identifier")
	}

	if user == nil || !user.HasPassword {
		// Uniform branch whether or not the account exists, so response
		// shape and side effects never disclose registration status.
		return s.sendAuthenticationLink(ctx, user, b.email, locale)
	}

	if b.password == nil {
		return account.PasswordRequired{}, nil
	}

	user, err = s.directory.Authenticate(ctx, user, *b.password)
	if err != nil {
		return nil, err
	}

	if user.MFAMode == account.MFAModeNone && user.ProfileCompleted() {
		// Both gate conditions already hold; skip the redundant check.
		return s.issueSession(ctx, user, attributes)
	}

	switch user.MFAMode {
	case account.MFAModeEmail:
		return s.sendMFAChallenge(ctx, user, account.ContactTypeEmail, locale)
	case account.MFAModePhone:
		return s.sendMFAChallenge(ctx, user, account.ContactTypePhone, locale)
	default:
		return s.completionGate(ctx, user, attributes, nil)
	}
}

func (s *Service) sendAuthenticationLink(ctx context.Context, user *account.User, submitted contact.Email, locale string) (account.SignInOutcome, error) {
	email := submitted
	spec := account.TokenSpec{Type: account.TokenTypeAuthentication, SingleUse: true}
	if user != nil {
		spec.Subject = user.Subject()
		if user.Email != nil {
			email = *user.Email
		}
	}
	spec.Email = &email

	token, err := s.tokens.Issue(ctx, spec)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to issue authentication token")
	}

	variables := map[string]string{"Token": token.Value}
	var message account.SentMessage
	if user == nil {
		message, err = s.messages.SendToEmail(ctx, TemplateAccountAuthentication, email, locale, variables)
	} else {
		message, err = s.messages.SendToUser(ctx, TemplateAccountAuthentication, user, account.ContactTypeEmail, locale, variables)
	}
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to send authentication link")
	}
	return account.AuthenticationLinkSent{Message: message}, nil
}

// sendMFAChallenge dispatches a second-factor code over the channel the
// user's own MFA mode selects. A missing contact for that channel is an
// account configuration error, fatal for the request.
func (s *Service) sendMFAChallenge(ctx context.Context, user *account.User, contactType account.ContactType, locale string) (account.SignInOutcome, error) {
	switch contactType {
	case account.ContactTypeEmail:
		if user.Email == nil {
			return nil, dErrors.New(dErrors.CodeMissingConfiguration, "user has no email for multi-factor authentication").
				WithDetails("user_id", user.ID.String())
		}
	case account.ContactTypePhone:
		if user.Phone == nil {
			return nil, dErrors.New(dErrors.CodeMissingConfiguration, "user has no phone for multi-factor authentication").
				WithDetails("user_id", user.ID.String())
		}
	}

	otp, err := s.otps.Issue(ctx, user.ID, account.PurposeMultiFactorAuthentication, nil)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to issue one-time password")
	}
	if otp.Code == "" {
		return nil, dErrors.Newf(dErrors.CodeInternal, "one-time password %s has no code", otp.ID)
	}

	variables := map[string]string{"OneTimePassword": otp.Code}
	message, err := s.messages.SendToUser(ctx, mfaTemplate(contactType), user, contactType, locale, variables)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to send one-time password")
	}
	return account.OneTimePasswordChallenge{OneTimePasswordID: otp.ID, Message: message}, nil
}

// signInWithToken consumes an authentication token. A subject-less token
// with an email claim provisions a brand-new account with that email
// verified; a subject token may refresh the user's email from its claim.
func (s *Service) signInWithToken(ctx context.Context, token string, attributes map[string]string) (account.SignInOutcome, error) {
	claims, err := s.tokens.Validate(ctx, token, account.TokenTypeAuthentication, true)
	if err != nil {
		return nil, err
	}

	var email *contact.Email
	if claims.Email != nil {
		verified := *claims.Email
		verified.Verified = true
		email = &verified
	}

	var user *account.User
	if claims.Subject == "" {
		if email == nil {
			return nil, dErrors.New(dErrors.CodeInvalidCredentials, "authentication token carries neither subject nor email claims")
		}
		user, err = s.directory.Create(ctx, *email)
		if err != nil {
			return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to create user")
		}
		if s.metrics != nil {
			s.metrics.IncrementUsersCreated()
		}
	} else {
		user, err = s.resolveSubject(ctx, claims.Subject)
		if err != nil {
			return nil, err
		}
		if email != nil && (user.Email == nil || !user.Email.Equal(*email)) {
			user, err = s.directory.UpdateEmail(ctx, user.ID, *email)
			if err != nil {
				return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to update email")
			}
		}
	}

	return s.completionGate(ctx, user, attributes, nil)
}

// signInWithOneTimePassword answers a pending MFA challenge. The OTP's own
// user binding is trusted here; only the phone flows cross-check it against
// a caller identity.
func (s *Service) signInWithOneTimePassword(ctx context.Context, b oneTimePasswordBranch, attributes map[string]string) (account.SignInOutcome, error) {
	otp, err := s.otps.Validate(ctx, b.id, b.code, account.PurposeMultiFactorAuthentication)
	if err != nil {
		return nil, err
	}
	if otp.UserID == uuid.Nil {
		return nil, dErrors.Newf(dErrors.CodeInternal, "one-time password %s has no bound user", otp.ID)
	}

	user, err := s.resolveSubject(ctx, otp.UserID.String())
	if err != nil {
		return nil, err
	}
	return s.completionGate(ctx, user, attributes, nil)
}

// completeProfile applies the onboarding submission under the authority of
// a profile-completion token, then falls through to the gate, which now
// sees a completed profile and issues the session.
func (s *Service) completeProfile(ctx context.Context, b profileCompletionBranch, attributes map[string]string) (account.SignInOutcome, error) {
	claims, err := s.tokens.Validate(ctx, b.token, account.TokenTypeProfileCompletion, true)
	if err != nil {
		return nil, err
	}
	if claims.Subject == "" {
		return nil, dErrors.New(dErrors.CodeInvalidCredentials, "profile completion token carries no subject")
	}

	user, err := s.resolveSubject(ctx, claims.Subject)
	if err != nil {
		return nil, err
	}

	completion := account.ProfileCompletion{
		ProfileFields: b.fields,
		Password:      b.password,
		MFAMode:       b.mfaMode,
		Phone:         claims.Phone,
	}
	user, err = s.directory.CompleteProfile(ctx, user.ID, completion)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to complete profile")
	}

	return s.completionGate(ctx, user, attributes, nil)
}

// resolveSubject maps a token or OTP subject back to a user. Absence means
// the collaborators drifted apart; it is not a caller-correctable state.
func (s *Service) resolveSubject(ctx context.Context, subject string) (*account.User, error) {
	userID, err := uuid.Parse(subject)
	if err != nil {
		return nil, dErrors.New(dErrors.CodeInvalidCredentials, "subject is not a valid user id").
			WithDetails("subject", subject)
	}
	user, err := s.directory.FindByID(ctx, userID)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to look up user")
	}
	if user == nil {
		return nil, dErrors.Newf(dErrors.CodeNotFound, "user %s no longer exists", userID).
			WithDetails("user_id", userID.String())
	}
	return user, nil
}

func outcomeKind(outcome any) string {
	switch outcome.(type) {
	case account.AuthenticationLinkSent:
		return "authentication_link_sent"
	case account.PasswordRequired:
		return "password_required"
	case account.OneTimePasswordChallenge:
		return "one_time_password_challenge"
	case account.ProfileCompletionRequired:
		return "profile_completion_required"
	case account.SessionIssued:
		return "session_issued"
	case account.RecoveryLinkSent:
		return "recovery_link_sent"
	case account.PhoneChanged:
		return "phone_changed"
	default:
		return fmt.Sprintf("%T", outcome)
	}
}

package service

import (
	"context"

	"go.opentelemetry.io/otel/attribute"

	"worldsmith/internal/account"
	"worldsmith/internal/account/contact"
	dErrors "worldsmith/pkg/domain-errors"
)

// ChangePhone guards a phone mutation for an authenticated user behind an
// OTP challenge: step 1 dispatches a code to the candidate phone, step 2
// verifies it and applies the phone.
func (s *Service) ChangePhone(ctx context.Context, caller account.Caller, req account.ChangePhoneRequest) (account.ChangePhoneOutcome, error) {
	ctx, span := s.tracer.Start(ctx, "account.ChangePhone")
	defer span.End()

	if caller.Kind != account.CallerKindUser {
		return nil, dErrors.New(dErrors.CodeUnauthorized, "an authenticated user is required")
	}

	branch, err := validatePhoneStep(req.Locale, req.NewPhone, req.OneTimePassword)
	if err != nil {
		return nil, err
	}

	user, err := s.directory.FindByID(ctx, caller.UserID)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to look up user")
	}
	if user == nil {
		return nil, dErrors.New(dErrors.CodeUnauthorized, "an authenticated user is required")
	}

	var outcome account.ChangePhoneOutcome
	switch b := branch.(type) {
	case newPhoneBranch:
		outcome, err = s.sendPhoneVerification(ctx, user, b.phone, req.Locale)
	case phoneOTPBranch:
		outcome, err = s.applyVerifiedPhone(ctx, user, b)
	default:
		return nil, dErrors.Newf(dErrors.CodeInternal, "unhandled phone branch %T", branch)
	}
	if err != nil {
		return nil, err
	}

	span.SetAttributes(attribute.String("phone.outcome", outcomeKind(outcome)))
	return outcome, nil
}

// VerifyPhone is the onboarding variant: the caller proves identity with a
// profile-completion token instead of a session, and a successful
// verification mints a fresh completion token carrying the verified phone.
func (s *Service) VerifyPhone(ctx context.Context, req account.VerifyPhoneRequest) (account.VerifyPhoneOutcome, error) {
	ctx, span := s.tracer.Start(ctx, "account.VerifyPhone")
	defer span.End()

	if req.ProfileCompletionToken == "" {
		return nil, dErrors.New(dErrors.CodeValidation, "the request payload is not valid").
			WithDetails("profile_completion_token", "token is required")
	}
	branch, err := validatePhoneStep(req.Locale, req.NewPhone, req.OneTimePassword)
	if err != nil {
		return nil, err
	}

	// Peek at the token without consuming it; it stays valid for retries
	// until the OTP round-trip succeeds.
	claims, err := s.tokens.Validate(ctx, req.ProfileCompletionToken, account.TokenTypeProfileCompletion, false)
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

	switch b := branch.(type) {
	case newPhoneBranch:
		outcome, err := s.sendPhoneVerification(ctx, user, b.phone, req.Locale)
		if err != nil {
			return nil, err
		}
		span.SetAttributes(attribute.String("phone.outcome", outcomeKind(outcome)))
		return outcome, nil

	case phoneOTPBranch:
		phone, err := s.verifyPhoneOTP(ctx, user, b)
		if err != nil {
			return nil, err
		}
		token, err := s.tokens.Issue(ctx, account.TokenSpec{
			Type:      account.TokenTypeProfileCompletion,
			Subject:   user.Subject(),
			Phone:     phone,
			SingleUse: false,
		})
		if err != nil {
			return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to issue profile completion token")
		}

		// The token that authorized this step is spent; invalidation is
		// best-effort and its failure is deliberately ignored.
		if !s.tokens.Invalidate(ctx, req.ProfileCompletionToken, account.TokenTypeProfileCompletion) {
			s.logger.DebugContext(ctx, "profile completion token invalidation failed",
				"user_id", user.ID.String(),
			)
		}

		span.SetAttributes(attribute.String("phone.outcome", "profile_completion_required"))
		return account.ProfileCompletionRequired{Token: token.Value}, nil

	default:
		return nil, dErrors.Newf(dErrors.CodeInternal, "unhandled phone branch %T", branch)
	}
}

// sendPhoneVerification issues a contact-verification OTP bound to the
// candidate phone and dispatches it over the phone channel.
func (s *Service) sendPhoneVerification(ctx context.Context, user *account.User, phone contact.Phone, locale string) (account.OneTimePasswordChallenge, error) {
	otp, err := s.otps.Issue(ctx, user.ID, account.PurposeContactVerification, &phone)
	if err != nil {
		return account.OneTimePasswordChallenge{}, dErrors.Wrap(err, dErrors.CodeInternal, "failed to issue one-time password")
	}
	if otp.Code == "" {
		return account.OneTimePasswordChallenge{}, dErrors.Newf(dErrors.CodeInternal, "one-time password %s has no code", otp.ID)
	}

	variables := map[string]string{"OneTimePassword": otp.Code}
	message, err := s.messages.SendToPhone(ctx, TemplateContactVerificationPhone, phone, locale, variables)
	if err != nil {
		return account.OneTimePasswordChallenge{}, dErrors.Wrap(err, dErrors.CodeInternal, "failed to send one-time password")
	}
	return account.OneTimePasswordChallenge{OneTimePasswordID: otp.ID, Message: message}, nil
}

// verifyPhoneOTP validates a contact-verification code and enforces the
// cross-check between the OTP's bound user and the acting user. A mismatch
// is an authorization failure naming both ids, not a validation failure.
func (s *Service) verifyPhoneOTP(ctx context.Context, user *account.User, b phoneOTPBranch) (*contact.Phone, error) {
	otp, err := s.otps.Validate(ctx, b.id, b.code, account.PurposeContactVerification)
	if err != nil {
		return nil, err
	}
	if otp.UserID != user.ID {
		return nil, dErrors.New(dErrors.CodeInvalidCredentials, "the one-time password is bound to another user").
			WithDetails(
				"one_time_password_id", otp.ID.String(),
				"expected_user_id", otp.UserID.String(),
				"actual_user_id", user.ID.String(),
			)
	}
	if otp.Phone == nil {
		return nil, dErrors.Newf(dErrors.CodeInternal, "one-time password %s has no bound phone", otp.ID)
	}

	phone := *otp.Phone
	phone.Verified = true
	return &phone, nil
}

// applyVerifiedPhone finishes the change-phone flow by writing the verified
// phone to the directory.
func (s *Service) applyVerifiedPhone(ctx context.Context, user *account.User, b phoneOTPBranch) (account.ChangePhoneOutcome, error) {
	phone, err := s.verifyPhoneOTP(ctx, user, b)
	if err != nil {
		return nil, err
	}
	updated, err := s.directory.UpdatePhone(ctx, user.ID, *phone)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to update phone")
	}
	return account.PhoneChanged{User: updated}, nil
}

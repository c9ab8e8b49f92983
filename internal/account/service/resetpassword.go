package service

import (
	"context"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"

	"worldsmith/internal/account"
	dErrors "worldsmith/pkg/domain-errors"
)

// ResetPassword runs the two-phase recovery flow: phase A emails a recovery
// token, phase B consumes it and sets the new password. Phase A answers
// identically for unknown addresses so account existence stays private.
func (s *Service) ResetPassword(ctx context.Context, req account.ResetPasswordRequest, attributes map[string]string) (account.ResetPasswordOutcome, error) {
	ctx, span := s.tracer.Start(ctx, "account.ResetPassword")
	defer span.End()

	branch, err := s.validateResetPassword(req)
	if err != nil {
		return nil, err
	}

	var outcome account.ResetPasswordOutcome
	switch b := branch.(type) {
	case recoveryRequestBranch:
		outcome, err = s.sendRecoveryLink(ctx, b, req.Locale)
	case newPasswordBranch:
		outcome, err = s.applyNewPassword(ctx, b, attributes)
	default:
		return nil, dErrors.Newf(dErrors.CodeInternal, "unhandled reset-password branch %T", branch)
	}
	if err != nil {
		return nil, err
	}

	span.SetAttributes(attribute.String("reset.outcome", outcomeKind(outcome)))
	return outcome, nil
}

func (s *Service) sendRecoveryLink(ctx context.Context, b recoveryRequestBranch, locale string) (account.ResetPasswordOutcome, error) {
	user, err := s.directory.FindByIdentifier(ctx, b.email.Address)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to look up identifier")
	}

	if user == nil {
		// Fabricated receipt: same shape, fresh confirmation number, no
		// message dispatched. Keeps unknown addresses indistinguishable.
		return account.RecoveryLinkSent{Message: account.SentMessage{
			ConfirmationNumber: uuid.NewString(),
			ContactType:        account.ContactTypeEmail,
			MaskedContact:      b.email.Address,
		}}, nil
	}

	token, err := s.tokens.Issue(ctx, account.TokenSpec{
		Type:      account.TokenTypePasswordRecovery,
		Subject:   user.Subject(),
		SingleUse: true,
	})
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to issue recovery token")
	}

	variables := map[string]string{"Token": token.Value}
	message, err := s.messages.SendToUser(ctx, TemplatePasswordRecovery, user, account.ContactTypeEmail, locale, variables)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to send recovery link")
	}
	return account.RecoveryLinkSent{Message: message}, nil
}

func (s *Service) applyNewPassword(ctx context.Context, b newPasswordBranch, attributes map[string]string) (account.ResetPasswordOutcome, error) {
	claims, err := s.tokens.Validate(ctx, b.token, account.TokenTypePasswordRecovery, true)
	if err != nil {
		return nil, err
	}
	if claims.Subject == "" {
		return nil, dErrors.New(dErrors.CodeInvalidCredentials, "recovery token carries no subject")
	}

	user, err := s.resolveSubject(ctx, claims.Subject)
	if err != nil {
		return nil, err
	}

	user, err = s.directory.ResetPassword(ctx, user.ID, b.newPassword)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to reset password")
	}

	// The reset gate carries the user's email on the completion token so
	// onboarding can prefill it.
	outcome, err := s.completionGate(ctx, user, attributes, user.Email)
	if err != nil {
		return nil, err
	}
	return outcome.(account.ResetPasswordOutcome), nil
}
